package boltdb

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"go.etcd.io/bbolt"

	"github.com/iudanet/syncpoint/internal/models"
	"github.com/iudanet/syncpoint/internal/node/storage"
)

// SaveConflict сохраняет или обновляет конфликт.
// Разрешенный конфликт перезаписать нельзя: audit trail append-only.
func (s *Storage) SaveConflict(ctx context.Context, conflict *models.SyncConflict) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	data, err := json.Marshal(conflict)
	if err != nil {
		return fmt.Errorf("failed to marshal conflict: %w", err)
	}

	err = s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketConflicts)
		if bucket == nil {
			return fmt.Errorf("conflicts bucket not found")
		}

		// Проверяем существующую запись: разрешенный конфликт неизменяем
		if existing := bucket.Get([]byte(conflict.ID)); existing != nil {
			var current models.SyncConflict
			if err := json.Unmarshal(existing, &current); err != nil {
				return fmt.Errorf("failed to unmarshal existing conflict: %w", err)
			}
			if current.Resolved {
				return storage.ErrConflictResolved
			}
		}

		if err := bucket.Put([]byte(conflict.ID), data); err != nil {
			return fmt.Errorf("failed to save conflict: %w", err)
		}

		return nil
	})

	if err != nil {
		return err
	}

	return nil
}

// GetConflict возвращает конфликт по ID
func (s *Storage) GetConflict(ctx context.Context, id string) (*models.SyncConflict, error) {
	if s.db == nil {
		return nil, storage.ErrStorageClosed
	}

	var conflict *models.SyncConflict

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketConflicts)
		if bucket == nil {
			return storage.ErrConflictNotFound
		}

		data := bucket.Get([]byte(id))
		if data == nil {
			return storage.ErrConflictNotFound
		}

		conflict = &models.SyncConflict{}
		if err := json.Unmarshal(data, conflict); err != nil {
			return fmt.Errorf("failed to unmarshal conflict: %w", err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	return conflict, nil
}

// ListConflicts возвращает конфликты с указанным значением resolved,
// отсортированные по detected_at по возрастанию
func (s *Storage) ListConflicts(ctx context.Context, resolved bool) ([]*models.SyncConflict, error) {
	if s.db == nil {
		return nil, storage.ErrStorageClosed
	}

	var conflicts []*models.SyncConflict

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketConflicts)
		if bucket == nil {
			return nil
		}

		return bucket.ForEach(func(k, v []byte) error {
			var conflict models.SyncConflict
			if err := json.Unmarshal(v, &conflict); err != nil {
				return fmt.Errorf("failed to unmarshal conflict: %w", err)
			}

			if conflict.Resolved == resolved {
				conflicts = append(conflicts, &conflict)
			}

			return nil
		})
	})

	if err != nil {
		return nil, fmt.Errorf("failed to list conflicts: %w", err)
	}

	sort.Slice(conflicts, func(i, j int) bool {
		return conflicts[i].DetectedAt.Before(conflicts[j].DetectedAt)
	})

	return conflicts, nil
}
