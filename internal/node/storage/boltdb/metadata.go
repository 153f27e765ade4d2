package boltdb

import (
	"context"
	"encoding/binary"
	"fmt"
	"strings"

	"go.etcd.io/bbolt"

	"github.com/iudanet/syncpoint/internal/node/storage"
)

const (
	keyNodeID           = "node_id"
	hubVersionKeyPrefix = "hub_version/"
)

// SaveNodeID сохраняет идентификатор узла
func (s *Storage) SaveNodeID(ctx context.Context, nodeID string) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketMetadata)
		if bucket == nil {
			return fmt.Errorf("metadata bucket not found")
		}

		if err := bucket.Put([]byte(keyNodeID), []byte(nodeID)); err != nil {
			return fmt.Errorf("failed to save node id: %w", err)
		}

		return nil
	})
}

// GetNodeID возвращает идентификатор узла.
// Возвращает пустую строку, если идентификатор еще не сохранен.
func (s *Storage) GetNodeID(ctx context.Context) (string, error) {
	if s.db == nil {
		return "", storage.ErrStorageClosed
	}

	var nodeID string

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketMetadata)
		if bucket == nil {
			return fmt.Errorf("metadata bucket not found")
		}

		if data := bucket.Get([]byte(keyNodeID)); data != nil {
			nodeID = string(data)
		}

		return nil
	})

	if err != nil {
		return "", fmt.Errorf("failed to get node id: %w", err)
	}

	return nodeID, nil
}

// SaveHubVersion сохраняет последнюю увиденную версию hub по модели
func (s *Storage) SaveHubVersion(ctx context.Context, modelName string, version int64) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketMetadata)
		if bucket == nil {
			return fmt.Errorf("metadata bucket not found")
		}

		// Конвертируем int64 в bytes
		versionBytes := make([]byte, 8)
		binary.BigEndian.PutUint64(versionBytes, uint64(version))

		key := hubVersionKeyPrefix + modelName
		if err := bucket.Put([]byte(key), versionBytes); err != nil {
			return fmt.Errorf("failed to save hub version: %w", err)
		}

		return nil
	})
}

// GetHubVersion возвращает последнюю известную версию hub по модели.
// Возвращает 0, если pull по модели еще не выполнялся.
func (s *Storage) GetHubVersion(ctx context.Context, modelName string) (int64, error) {
	if s.db == nil {
		return 0, storage.ErrStorageClosed
	}

	var version int64

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketMetadata)
		if bucket == nil {
			return fmt.Errorf("metadata bucket not found")
		}

		data := bucket.Get([]byte(hubVersionKeyPrefix + modelName))
		if data == nil {
			// Нет записи — первая синхронизация
			version = 0
			return nil
		}

		version = int64(binary.BigEndian.Uint64(data))
		return nil
	})

	if err != nil {
		return 0, fmt.Errorf("failed to get hub version: %w", err)
	}

	return version, nil
}

// GetHubVersions возвращает известные версии hub по всем моделям
func (s *Storage) GetHubVersions(ctx context.Context) (map[string]int64, error) {
	if s.db == nil {
		return nil, storage.ErrStorageClosed
	}

	versions := make(map[string]int64)

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketMetadata)
		if bucket == nil {
			return fmt.Errorf("metadata bucket not found")
		}

		return bucket.ForEach(func(k, v []byte) error {
			key := string(k)
			if !strings.HasPrefix(key, hubVersionKeyPrefix) {
				return nil
			}

			modelName := strings.TrimPrefix(key, hubVersionKeyPrefix)
			versions[modelName] = int64(binary.BigEndian.Uint64(v))
			return nil
		})
	})

	if err != nil {
		return nil, fmt.Errorf("failed to get hub versions: %w", err)
	}

	return versions, nil
}
