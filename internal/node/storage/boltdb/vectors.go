package boltdb

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.etcd.io/bbolt"

	"github.com/iudanet/syncpoint/internal/models"
	"github.com/iudanet/syncpoint/internal/node/storage"
)

// vectorKey формирует ключ vector по паре (node_id, model_name)
func vectorKey(nodeID, modelName string) []byte {
	return []byte(nodeID + "/" + modelName)
}

// Bump атомарно инкрементирует версию пары (node_id, model_name).
// Инкремент выполняется внутри одной Update-транзакции BoltDB:
// значение durable до возврата и никогда не переиспользуется,
// даже после рестарта процесса.
func (s *Storage) Bump(ctx context.Context, nodeID, modelName string) (int64, error) {
	if s.db == nil {
		return 0, storage.ErrStorageClosed
	}

	var newVersion int64

	err := s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketVectors)
		if bucket == nil {
			return fmt.Errorf("vectors bucket not found")
		}

		key := vectorKey(nodeID, modelName)

		// Vector создается лениво при первом изменении модели
		vector := &models.VersionVector{
			NodeID:    nodeID,
			ModelName: modelName,
		}

		if data := bucket.Get(key); data != nil {
			if err := json.Unmarshal(data, vector); err != nil {
				return fmt.Errorf("failed to unmarshal vector: %w", err)
			}
		}

		vector.Version++
		vector.TotalRecords++
		vector.PendingChanges = vector.Version - vector.LastSyncedVersion
		vector.LastModified = time.Now()

		data, err := json.Marshal(vector)
		if err != nil {
			return fmt.Errorf("failed to marshal vector: %w", err)
		}

		if err := bucket.Put(key, data); err != nil {
			return fmt.Errorf("failed to save vector: %w", err)
		}

		newVersion = vector.Version
		return nil
	})

	if err != nil {
		return 0, fmt.Errorf("bump transaction failed: %w", err)
	}

	return newVersion, nil
}

// MarkSynced устанавливает last_synced_version = version.
// Монотонно: version меньше текущего last_synced_version игнорируется,
// поэтому повторная доставка подтверждения безопасна.
func (s *Storage) MarkSynced(ctx context.Context, nodeID, modelName string, version int64) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	err := s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketVectors)
		if bucket == nil {
			return fmt.Errorf("vectors bucket not found")
		}

		key := vectorKey(nodeID, modelName)

		data := bucket.Get(key)
		if data == nil {
			return storage.ErrVectorNotFound
		}

		vector := &models.VersionVector{}
		if err := json.Unmarshal(data, vector); err != nil {
			return fmt.Errorf("failed to unmarshal vector: %w", err)
		}

		// Идемпотентность при повторах: не откатываем назад
		if version < vector.LastSyncedVersion {
			return nil
		}

		// Инвариант last_synced_version <= version
		if version > vector.Version {
			return fmt.Errorf("cannot mark synced version %d above current version %d", version, vector.Version)
		}

		vector.LastSyncedVersion = version
		vector.PendingChanges = vector.Version - vector.LastSyncedVersion
		vector.LastSynced = time.Now()

		updated, err := json.Marshal(vector)
		if err != nil {
			return fmt.Errorf("failed to marshal vector: %w", err)
		}

		if err := bucket.Put(key, updated); err != nil {
			return fmt.Errorf("failed to save vector: %w", err)
		}

		return nil
	})

	if err != nil {
		return fmt.Errorf("mark synced transaction failed: %w", err)
	}

	return nil
}

// GetVector возвращает version vector пары (node_id, model_name)
func (s *Storage) GetVector(ctx context.Context, nodeID, modelName string) (*models.VersionVector, error) {
	if s.db == nil {
		return nil, storage.ErrStorageClosed
	}

	var vector *models.VersionVector

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketVectors)
		if bucket == nil {
			return storage.ErrVectorNotFound
		}

		data := bucket.Get(vectorKey(nodeID, modelName))
		if data == nil {
			return storage.ErrVectorNotFound
		}

		vector = &models.VersionVector{}
		if err := json.Unmarshal(data, vector); err != nil {
			return fmt.Errorf("failed to unmarshal vector: %w", err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	return vector, nil
}

// ListVectors возвращает все vectors узла
func (s *Storage) ListVectors(ctx context.Context, nodeID string) ([]*models.VersionVector, error) {
	if s.db == nil {
		return nil, storage.ErrStorageClosed
	}

	var vectors []*models.VersionVector
	prefix := []byte(nodeID + "/")

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketVectors)
		if bucket == nil {
			return nil
		}

		return bucket.ForEach(func(k, v []byte) error {
			if !strings.HasPrefix(string(k), string(prefix)) {
				return nil
			}

			vector := &models.VersionVector{}
			if err := json.Unmarshal(v, vector); err != nil {
				return fmt.Errorf("failed to unmarshal vector: %w", err)
			}
			vectors = append(vectors, vector)
			return nil
		})
	})

	if err != nil {
		return nil, fmt.Errorf("failed to list vectors: %w", err)
	}

	return vectors, nil
}
