package storage

import "context"

//go:generate moq -out metadatastorage_mock.go . MetadataStorage

// MetadataStorage defines interface for storing node metadata
type MetadataStorage interface {
	// SaveNodeID сохраняет идентификатор узла (генерируется при первом запуске)
	SaveNodeID(ctx context.Context, nodeID string) error

	// GetNodeID возвращает идентификатор узла
	// Возвращает пустую строку, если идентификатор еще не сохранен
	GetNodeID(ctx context.Context) (string, error)

	// SaveHubVersion сохраняет последнюю версию hub по модели,
	// которую узел видел при pull. Это snapshot hub_version_vector —
	// точка отсчета следующего pull.
	SaveHubVersion(ctx context.Context, modelName string, version int64) error

	// GetHubVersion возвращает последнюю известную версию hub по модели
	// Returns 0 if no pull has been performed yet
	GetHubVersion(ctx context.Context, modelName string) (int64, error)

	// GetHubVersions возвращает известные версии hub по всем моделям
	GetHubVersions(ctx context.Context) (map[string]int64, error)
}
