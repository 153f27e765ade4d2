package storage

import (
	"context"

	"github.com/iudanet/syncpoint/internal/models"
)

//go:generate moq -out recordstorage_mock.go . RecordStorage

// RecordStorage defines interface for storing sync records on node
type RecordStorage interface {
	// SaveRecord сохраняет или обновляет запись синхронизации по её ID
	SaveRecord(ctx context.Context, record *models.SyncRecord) error

	// GetRecord возвращает запись по ID
	// Returns ErrRecordNotFound if record doesn't exist
	GetRecord(ctx context.Context, id string) (*models.SyncRecord, error)

	// GetLatestRecord возвращает последнюю по времени запись для пары
	// (model_name, record_id) — текущее локальное состояние сущности.
	// Returns ErrRecordNotFound if no record exists for the pair
	GetLatestRecord(ctx context.Context, modelName, recordID string) (*models.SyncRecord, error)

	// ListRecordsSince возвращает записи модели с local_version > sinceVersion,
	// отсортированные по local_version по возрастанию.
	// Used for building push batches
	ListRecordsSince(ctx context.Context, modelName string, sinceVersion int64) ([]*models.SyncRecord, error)

	// ListRecordsByStatus возвращает все записи в указанном статусе
	ListRecordsByStatus(ctx context.Context, status models.Status) ([]*models.SyncRecord, error)
}
