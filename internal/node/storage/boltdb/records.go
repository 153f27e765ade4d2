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

// SaveRecord сохраняет или обновляет запись синхронизации в BoltDB
func (s *Storage) SaveRecord(ctx context.Context, record *models.SyncRecord) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	// Сериализуем record в JSON
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal sync record: %w", err)
	}

	err = s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketRecords)
		if bucket == nil {
			return fmt.Errorf("records bucket not found")
		}

		if err := bucket.Put([]byte(record.ID), data); err != nil {
			return fmt.Errorf("failed to save record: %w", err)
		}

		return nil
	})

	if err != nil {
		return fmt.Errorf("transaction failed: %w", err)
	}

	return nil
}

// GetRecord возвращает запись по ID
func (s *Storage) GetRecord(ctx context.Context, id string) (*models.SyncRecord, error) {
	if s.db == nil {
		return nil, storage.ErrStorageClosed
	}

	var record *models.SyncRecord

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketRecords)
		if bucket == nil {
			return storage.ErrRecordNotFound
		}

		data := bucket.Get([]byte(id))
		if data == nil {
			return storage.ErrRecordNotFound
		}

		record = &models.SyncRecord{}
		if err := json.Unmarshal(data, record); err != nil {
			return fmt.Errorf("failed to unmarshal record: %w", err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	return record, nil
}

// GetLatestRecord возвращает последнюю по времени запись для пары
// (model_name, record_id). Последняя определяется по local_modified_at,
// при равенстве — по local_version.
func (s *Storage) GetLatestRecord(ctx context.Context, modelName, recordID string) (*models.SyncRecord, error) {
	if s.db == nil {
		return nil, storage.ErrStorageClosed
	}

	var latest *models.SyncRecord

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketRecords)
		if bucket == nil {
			return nil
		}

		return bucket.ForEach(func(k, v []byte) error {
			var record models.SyncRecord
			if err := json.Unmarshal(v, &record); err != nil {
				return fmt.Errorf("failed to unmarshal record: %w", err)
			}

			if record.ModelName != modelName || record.RecordID != recordID {
				return nil
			}

			if latest == nil ||
				record.LocalModifiedAt.After(latest.LocalModifiedAt) ||
				(record.LocalModifiedAt.Equal(latest.LocalModifiedAt) && record.LocalVersion > latest.LocalVersion) {
				latest = &record
			}

			return nil
		})
	})

	if err != nil {
		return nil, fmt.Errorf("failed to get latest record: %w", err)
	}

	if latest == nil {
		return nil, storage.ErrRecordNotFound
	}

	return latest, nil
}

// ListRecordsSince возвращает записи модели с local_version > sinceVersion,
// отсортированные по local_version по возрастанию
func (s *Storage) ListRecordsSince(ctx context.Context, modelName string, sinceVersion int64) ([]*models.SyncRecord, error) {
	if s.db == nil {
		return nil, storage.ErrStorageClosed
	}

	var records []*models.SyncRecord

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketRecords)
		if bucket == nil {
			return nil
		}

		return bucket.ForEach(func(k, v []byte) error {
			var record models.SyncRecord
			if err := json.Unmarshal(v, &record); err != nil {
				return fmt.Errorf("failed to unmarshal record: %w", err)
			}

			// Фильтруем по модели и версии
			if record.ModelName == modelName && record.LocalVersion > sinceVersion {
				records = append(records, &record)
			}

			return nil
		})
	})

	if err != nil {
		return nil, fmt.Errorf("failed to list records since version: %w", err)
	}

	// Гарантия порядка применения: по возрастанию local_version
	sort.Slice(records, func(i, j int) bool {
		return records[i].LocalVersion < records[j].LocalVersion
	})

	return records, nil
}

// ListRecordsByStatus возвращает все записи в указанном статусе
func (s *Storage) ListRecordsByStatus(ctx context.Context, status models.Status) ([]*models.SyncRecord, error) {
	if s.db == nil {
		return nil, storage.ErrStorageClosed
	}

	var records []*models.SyncRecord

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketRecords)
		if bucket == nil {
			return nil
		}

		return bucket.ForEach(func(k, v []byte) error {
			var record models.SyncRecord
			if err := json.Unmarshal(v, &record); err != nil {
				return fmt.Errorf("failed to unmarshal record: %w", err)
			}

			if record.Status == status {
				records = append(records, &record)
			}

			return nil
		})
	})

	if err != nil {
		return nil, fmt.Errorf("failed to list records by status: %w", err)
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].LocalVersion < records[j].LocalVersion
	})

	return records, nil
}
