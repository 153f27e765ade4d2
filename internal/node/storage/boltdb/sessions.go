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

// SaveSession сохраняет или обновляет сессию синхронизации
func (s *Storage) SaveSession(ctx context.Context, session *models.SyncSession) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	err = s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketSessions)
		if bucket == nil {
			return fmt.Errorf("sessions bucket not found")
		}

		if err := bucket.Put([]byte(session.ID), data); err != nil {
			return fmt.Errorf("failed to save session: %w", err)
		}

		return nil
	})

	if err != nil {
		return fmt.Errorf("transaction failed: %w", err)
	}

	return nil
}

// GetSession возвращает сессию по ID
func (s *Storage) GetSession(ctx context.Context, id string) (*models.SyncSession, error) {
	if s.db == nil {
		return nil, storage.ErrStorageClosed
	}

	var session *models.SyncSession

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketSessions)
		if bucket == nil {
			return storage.ErrSessionNotFound
		}

		data := bucket.Get([]byte(id))
		if data == nil {
			return storage.ErrSessionNotFound
		}

		session = &models.SyncSession{}
		if err := json.Unmarshal(data, session); err != nil {
			return fmt.Errorf("failed to unmarshal session: %w", err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	return session, nil
}

// ListSessions возвращает все сессии узла,
// отсортированные по started_at по возрастанию
func (s *Storage) ListSessions(ctx context.Context, nodeID string) ([]*models.SyncSession, error) {
	if s.db == nil {
		return nil, storage.ErrStorageClosed
	}

	var sessions []*models.SyncSession

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketSessions)
		if bucket == nil {
			return nil
		}

		return bucket.ForEach(func(k, v []byte) error {
			var session models.SyncSession
			if err := json.Unmarshal(v, &session); err != nil {
				return fmt.Errorf("failed to unmarshal session: %w", err)
			}

			if session.NodeID == nodeID {
				sessions = append(sessions, &session)
			}

			return nil
		})
	})

	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}

	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].StartedAt.Before(sessions[j].StartedAt)
	})

	return sessions, nil
}
