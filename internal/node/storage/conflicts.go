package storage

import (
	"context"

	"github.com/iudanet/syncpoint/internal/models"
)

//go:generate moq -out conflictstorage_mock.go . ConflictStorage

// ConflictStorage defines interface for storing sync conflicts on node
type ConflictStorage interface {
	// SaveConflict сохраняет или обновляет конфликт.
	// Returns ErrConflictResolved при попытке перезаписать конфликт,
	// у которого уже установлен resolved=true (audit trail append-only).
	SaveConflict(ctx context.Context, conflict *models.SyncConflict) error

	// GetConflict возвращает конфликт по ID
	// Returns ErrConflictNotFound if conflict doesn't exist
	GetConflict(ctx context.Context, id string) (*models.SyncConflict, error)

	// ListConflicts возвращает конфликты с указанным значением resolved,
	// отсортированные по detected_at по возрастанию
	ListConflicts(ctx context.Context, resolved bool) ([]*models.SyncConflict, error)
}
