package storage

import (
	"context"
	"time"

	"github.com/iudanet/syncpoint/internal/models"
)

//go:generate moq -out queuestorage_mock.go . QueueStorage

// QueueStorage defines interface for the durable offline operation queue
type QueueStorage interface {
	// SaveOperation сохраняет или обновляет операцию по её ID
	SaveOperation(ctx context.Context, op *models.OfflineOperation) error

	// GetOperation возвращает операцию по ID
	// Returns ErrOperationNotFound if operation doesn't exist
	GetOperation(ctx context.Context, id string) (*models.OfflineOperation, error)

	// ListDue возвращает до limit операций со status=pending и
	// scheduled_for <= now, отсортированных по (priority asc, created_at asc).
	// Истекшие операции тоже возвращаются: их отменяет сервис очереди
	// при drain.
	ListDue(ctx context.Context, now time.Time, limit int) ([]*models.OfflineOperation, error)

	// ListByStatus возвращает все операции в указанном статусе
	ListByStatus(ctx context.Context, status models.Status) ([]*models.OfflineOperation, error)
}
