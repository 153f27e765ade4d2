package storage

import (
	"context"

	"github.com/iudanet/syncpoint/internal/models"
)

//go:generate moq -out sessionstorage_mock.go . SessionStorage

// SessionStorage defines interface for storing sync sessions on node
type SessionStorage interface {
	// SaveSession сохраняет или обновляет сессию по её ID
	SaveSession(ctx context.Context, session *models.SyncSession) error

	// GetSession возвращает сессию по ID
	// Returns ErrSessionNotFound if session doesn't exist
	GetSession(ctx context.Context, id string) (*models.SyncSession, error)

	// ListSessions возвращает все сессии узла, отсортированные
	// по started_at по возрастанию
	ListSessions(ctx context.Context, nodeID string) ([]*models.SyncSession, error)
}
