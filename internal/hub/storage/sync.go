package storage

import (
	"context"

	"github.com/iudanet/syncpoint/internal/models"
	"github.com/iudanet/syncpoint/pkg/api"
)

//go:generate moq -out syncstorage_mock.go . SyncStorage

// ApplyOutcome описывает результат применения одной push-записи
type ApplyOutcome string

const (
	// ApplyOutcomeApplied запись принята, версия модели на hub увеличена
	ApplyOutcomeApplied ApplyOutcome = "applied"
	// ApplyOutcomeDuplicate запись с такой контрольной суммой уже есть,
	// повторная доставка
	ApplyOutcomeDuplicate ApplyOutcome = "duplicate"
	// ApplyOutcomeConflict запись отклонена: узел изменял устаревшую базу
	ApplyOutcomeConflict ApplyOutcome = "conflict"
)

// ApplyResult результат ApplyRecord
type ApplyResult struct {
	// Current текущее состояние записи на hub; заполняется при конфликте,
	// чтобы узел мог зафиксировать конфликт локально
	Current *models.HubRecord
	Outcome ApplyOutcome
	// HubVersion версия модели на hub после применения
	HubVersion int64
}

// SyncStorage defines interface for hub-side sync data persistence
type SyncStorage interface {
	// ApplyRecord applies a single pushed record inside one transaction.
	// Duplicate checksums are acknowledged without changes; records built
	// on a stale base version are refused with the current hub state.
	ApplyRecord(ctx context.Context, nodeID string, record api.RemoteRecord) (*ApplyResult, error)

	// GetRecord retrieves the current hub state of a single record
	// Returns ErrRecordNotFound if the record was never pushed
	GetRecord(ctx context.Context, modelName, recordID string) (*models.HubRecord, error)

	// ListSince retrieves records of a model applied after the given hub
	// version, excluding records that originated from the requesting node.
	// Used by pull. Returns empty slice if nothing changed.
	ListSince(ctx context.Context, nodeID, modelName string, since int64) ([]*models.HubRecord, error)

	// GetHubVersions retrieves current hub versions of all known models
	GetHubVersions(ctx context.Context) (map[string]int64, error)

	// NodeBase retrieves the highest source version the hub has accepted
	// from the given node for the model. Returns 0 for unknown pairs.
	NodeBase(ctx context.Context, nodeID, modelName string) (int64, error)

	// ListConflicts retrieves refused pushes, newest first
	ListConflicts(ctx context.Context, limit int) ([]*models.HubConflict, error)
}
