package storage

import (
	"context"

	"github.com/iudanet/syncpoint/internal/models"
)

//go:generate moq -out vectorstorage_mock.go . VectorStorage

// VectorStorage defines interface for storing version vectors on node
type VectorStorage interface {
	// Bump атомарно инкрементирует версию пары (node_id, model_name)
	// и возвращает новое значение. Vector создается лениво при первом
	// изменении модели. Новая версия durable до возврата из метода;
	// конкурентные вызовы сериализуются — два вызова никогда не получат
	// одно значение.
	Bump(ctx context.Context, nodeID, modelName string) (int64, error)

	// MarkSynced устанавливает last_synced_version = version, только если
	// version >= текущего last_synced_version (монотонность, идемпотентность
	// при повторах).
	MarkSynced(ctx context.Context, nodeID, modelName string, version int64) error

	// GetVector возвращает version vector пары (node_id, model_name)
	// Returns ErrVectorNotFound if vector doesn't exist
	GetVector(ctx context.Context, nodeID, modelName string) (*models.VersionVector, error)

	// ListVectors возвращает все vectors узла
	ListVectors(ctx context.Context, nodeID string) ([]*models.VersionVector, error)
}
