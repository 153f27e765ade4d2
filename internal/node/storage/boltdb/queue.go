package boltdb

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"go.etcd.io/bbolt"

	"github.com/iudanet/syncpoint/internal/models"
	"github.com/iudanet/syncpoint/internal/node/storage"
)

// SaveOperation сохраняет или обновляет отложенную операцию
func (s *Storage) SaveOperation(ctx context.Context, op *models.OfflineOperation) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	data, err := json.Marshal(op)
	if err != nil {
		return fmt.Errorf("failed to marshal operation: %w", err)
	}

	err = s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketQueue)
		if bucket == nil {
			return fmt.Errorf("queue bucket not found")
		}

		if err := bucket.Put([]byte(op.ID), data); err != nil {
			return fmt.Errorf("failed to save operation: %w", err)
		}

		return nil
	})

	if err != nil {
		return fmt.Errorf("transaction failed: %w", err)
	}

	return nil
}

// GetOperation возвращает операцию по ID
func (s *Storage) GetOperation(ctx context.Context, id string) (*models.OfflineOperation, error) {
	if s.db == nil {
		return nil, storage.ErrStorageClosed
	}

	var op *models.OfflineOperation

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketQueue)
		if bucket == nil {
			return storage.ErrOperationNotFound
		}

		data := bucket.Get([]byte(id))
		if data == nil {
			return storage.ErrOperationNotFound
		}

		op = &models.OfflineOperation{}
		if err := json.Unmarshal(data, op); err != nil {
			return fmt.Errorf("failed to unmarshal operation: %w", err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	return op, nil
}

// ListDue возвращает до limit операций со status=pending и
// scheduled_for <= now, отсортированных по (priority asc, created_at asc)
func (s *Storage) ListDue(ctx context.Context, now time.Time, limit int) ([]*models.OfflineOperation, error) {
	if s.db == nil {
		return nil, storage.ErrStorageClosed
	}

	var ops []*models.OfflineOperation

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketQueue)
		if bucket == nil {
			return nil
		}

		return bucket.ForEach(func(k, v []byte) error {
			var op models.OfflineOperation
			if err := json.Unmarshal(v, &op); err != nil {
				return fmt.Errorf("failed to unmarshal operation: %w", err)
			}

			// Фильтруем по статусу и расписанию
			if op.Status == models.StatusPending && !op.ScheduledFor.After(now) {
				ops = append(ops, &op)
			}

			return nil
		})
	})

	if err != nil {
		return nil, fmt.Errorf("failed to list due operations: %w", err)
	}

	// Порядок выборки: priority по возрастанию (меньше = срочнее),
	// затем created_at по возрастанию
	sort.Slice(ops, func(i, j int) bool {
		if ops[i].Priority != ops[j].Priority {
			return ops[i].Priority < ops[j].Priority
		}
		return ops[i].CreatedAt.Before(ops[j].CreatedAt)
	})

	if limit > 0 && len(ops) > limit {
		ops = ops[:limit]
	}

	return ops, nil
}

// ListByStatus возвращает все операции в указанном статусе
func (s *Storage) ListByStatus(ctx context.Context, status models.Status) ([]*models.OfflineOperation, error) {
	if s.db == nil {
		return nil, storage.ErrStorageClosed
	}

	var ops []*models.OfflineOperation

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketQueue)
		if bucket == nil {
			return nil
		}

		return bucket.ForEach(func(k, v []byte) error {
			var op models.OfflineOperation
			if err := json.Unmarshal(v, &op); err != nil {
				return fmt.Errorf("failed to unmarshal operation: %w", err)
			}

			if op.Status == status {
				ops = append(ops, &op)
			}

			return nil
		})
	})

	if err != nil {
		return nil, fmt.Errorf("failed to list operations by status: %w", err)
	}

	sort.Slice(ops, func(i, j int) bool {
		return ops[i].CreatedAt.Before(ops[j].CreatedAt)
	})

	return ops, nil
}
