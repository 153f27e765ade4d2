package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/iudanet/syncpoint/internal/hub/storage"
	"github.com/iudanet/syncpoint/internal/models"
	"github.com/iudanet/syncpoint/pkg/api"
)

// ApplyRecord applies a single pushed record inside one transaction.
// Duplicate checksums are acknowledged without changes; records built
// on a stale base version are refused with the current hub state.
func (s *Storage) ApplyRecord(ctx context.Context, nodeID string, record api.RemoteRecord) (*storage.ApplyResult, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	existing, err := getRecordTx(ctx, tx, record.ModelName, record.RecordID)
	if err != nil && !errors.Is(err, storage.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check existing record: %w", err)
	}

	if existing != nil {
		// Повторная доставка того же изменения
		if existing.Checksum == record.Checksum {
			if err := bumpNodeBaseTx(ctx, tx, nodeID, record.ModelName, record.SourceVersion); err != nil {
				return nil, err
			}
			if err := tx.Commit(); err != nil {
				return nil, fmt.Errorf("failed to commit transaction: %w", err)
			}
			return &storage.ApplyResult{
				Outcome:    storage.ApplyOutcomeDuplicate,
				HubVersion: existing.HubVersion,
			}, nil
		}

		// Узел изменял запись, не видев текущей версии hub.
		// Чужие расходящиеся изменения отклоняем; собственную запись
		// узла принимаем, это его же линия версий.
		if existing.HubVersion > record.BaseVersion && existing.SourceNode != nodeID {
			if err := saveConflictTx(ctx, tx, nodeID, record, existing); err != nil {
				return nil, err
			}
			if err := tx.Commit(); err != nil {
				return nil, fmt.Errorf("failed to commit transaction: %w", err)
			}
			return &storage.ApplyResult{
				Outcome:    storage.ApplyOutcomeConflict,
				Current:    existing,
				HubVersion: existing.HubVersion,
			}, nil
		}
	}

	newVersion, err := bumpHubVersionTx(ctx, tx, record.ModelName)
	if err != nil {
		return nil, err
	}

	if err := upsertRecordTx(ctx, tx, record, newVersion); err != nil {
		return nil, err
	}

	if err := bumpNodeBaseTx(ctx, tx, nodeID, record.ModelName, record.SourceVersion); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return &storage.ApplyResult{
		Outcome:    storage.ApplyOutcomeApplied,
		HubVersion: newVersion,
	}, nil
}

// GetRecord retrieves the current hub state of a single record
// Returns ErrRecordNotFound if the record was never pushed
func (s *Storage) GetRecord(ctx context.Context, modelName, recordID string) (*models.HubRecord, error) {
	return getRecord(ctx, s.db, modelName, recordID)
}

// ListSince retrieves records of a model applied after the given hub
// version, excluding records that originated from the requesting node
func (s *Storage) ListSince(ctx context.Context, nodeID, modelName string, since int64) ([]*models.HubRecord, error) {
	query := `
		SELECT model_name, record_id, operation, checksum, data,
		       source_node, source_version, hub_version,
		       modified_at, applied_at
		FROM hub_records
		WHERE model_name = ? AND hub_version > ? AND source_node != ?
		ORDER BY hub_version ASC
	`

	rows, err := s.db.QueryContext(ctx, query, modelName, since, nodeID)
	if err != nil {
		return nil, fmt.Errorf("failed to query records since version: %w", err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			err = cerr
		}
	}()

	return scanRecords(rows)
}

// GetHubVersions retrieves current hub versions of all known models
func (s *Storage) GetHubVersions(ctx context.Context) (map[string]int64, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT model_name, version FROM hub_versions`)
	if err != nil {
		return nil, fmt.Errorf("failed to query hub versions: %w", err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			err = cerr
		}
	}()

	versions := make(map[string]int64)
	for rows.Next() {
		var model string
		var version int64
		if err := rows.Scan(&model, &version); err != nil {
			return nil, fmt.Errorf("failed to scan hub version: %w", err)
		}
		versions[model] = version
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return versions, nil
}

// NodeBase retrieves the highest source version the hub has accepted
// from the given node for the model. Returns 0 for unknown pairs.
func (s *Storage) NodeBase(ctx context.Context, nodeID, modelName string) (int64, error) {
	query := `
		SELECT last_seen_version FROM node_bases
		WHERE node_id = ? AND model_name = ?
	`

	var version int64
	err := s.db.QueryRowContext(ctx, query, nodeID, modelName).Scan(&version)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to get node base: %w", err)
	}

	return version, nil
}

// ListConflicts retrieves refused pushes, newest first
func (s *Storage) ListConflicts(ctx context.Context, limit int) ([]*models.HubConflict, error) {
	if limit <= 0 {
		limit = -1 // без ограничения
	}

	query := `
		SELECT id, node_id, model_name, record_id, node_data, hub_data,
		       node_version, hub_version, detected_at
		FROM hub_conflicts
		ORDER BY detected_at DESC
		LIMIT ?
	`

	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query conflicts: %w", err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			err = cerr
		}
	}()

	var conflicts []*models.HubConflict
	for rows.Next() {
		conflict := &models.HubConflict{}
		var nodeData, hubData string
		var detectedAt int64

		err := rows.Scan(
			&conflict.ID,
			&conflict.NodeID,
			&conflict.ModelName,
			&conflict.RecordID,
			&nodeData,
			&hubData,
			&conflict.NodeVersion,
			&conflict.HubVersion,
			&detectedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan conflict: %w", err)
		}

		conflict.NodeData = []byte(nodeData)
		conflict.HubData = []byte(hubData)
		conflict.DetectedAt = nanosToTime(detectedAt)

		conflicts = append(conflicts, conflict)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return conflicts, nil
}

type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func getRecord(ctx context.Context, q querier, modelName, recordID string) (*models.HubRecord, error) {
	query := `
		SELECT model_name, record_id, operation, checksum, data,
		       source_node, source_version, hub_version,
		       modified_at, applied_at
		FROM hub_records
		WHERE model_name = ? AND record_id = ?
	`

	record := &models.HubRecord{}
	var data string
	var modifiedAt, appliedAt int64

	err := q.QueryRowContext(ctx, query, modelName, recordID).Scan(
		&record.ModelName,
		&record.RecordID,
		&record.Operation,
		&record.Checksum,
		&data,
		&record.SourceNode,
		&record.SourceVersion,
		&record.HubVersion,
		&modifiedAt,
		&appliedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to get record: %w", err)
	}

	record.Data = []byte(data)
	record.ModifiedAt = nanosToTime(modifiedAt)
	record.AppliedAt = nanosToTime(appliedAt)

	return record, nil
}

func getRecordTx(ctx context.Context, tx *sql.Tx, modelName, recordID string) (*models.HubRecord, error) {
	return getRecord(ctx, tx, modelName, recordID)
}

// bumpHubVersionTx увеличивает версию модели на hub и возвращает новую
func bumpHubVersionTx(ctx context.Context, tx *sql.Tx, modelName string) (int64, error) {
	query := `
		INSERT INTO hub_versions (model_name, version) VALUES (?, 1)
		ON CONFLICT(model_name) DO UPDATE SET version = version + 1
		RETURNING version
	`

	var version int64
	if err := tx.QueryRowContext(ctx, query, modelName).Scan(&version); err != nil {
		return 0, fmt.Errorf("failed to bump hub version: %w", err)
	}

	return version, nil
}

func upsertRecordTx(ctx context.Context, tx *sql.Tx, record api.RemoteRecord, hubVersion int64) error {
	query := `
		INSERT INTO hub_records (
			model_name, record_id, operation, checksum, data,
			source_node, source_version, hub_version,
			modified_at, applied_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(model_name, record_id) DO UPDATE SET
			operation = excluded.operation,
			checksum = excluded.checksum,
			data = excluded.data,
			source_node = excluded.source_node,
			source_version = excluded.source_version,
			hub_version = excluded.hub_version,
			modified_at = excluded.modified_at,
			applied_at = excluded.applied_at
	`

	_, err := tx.ExecContext(ctx, query,
		record.ModelName,
		record.RecordID,
		record.Operation,
		record.Checksum,
		string(record.Data),
		record.SourceNode,
		record.SourceVersion,
		hubVersion,
		record.ModifiedAt.UnixNano(),
		time.Now().UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert record: %w", err)
	}

	return nil
}

// bumpNodeBaseTx запоминает максимальную версию, принятую от узла
func bumpNodeBaseTx(ctx context.Context, tx *sql.Tx, nodeID, modelName string, sourceVersion int64) error {
	query := `
		INSERT INTO node_bases (node_id, model_name, last_seen_version, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(node_id, model_name) DO UPDATE SET
			last_seen_version = MAX(last_seen_version, excluded.last_seen_version),
			updated_at = excluded.updated_at
	`

	_, err := tx.ExecContext(ctx, query, nodeID, modelName, sourceVersion, time.Now().UnixNano())
	if err != nil {
		return fmt.Errorf("failed to bump node base: %w", err)
	}

	return nil
}

func saveConflictTx(ctx context.Context, tx *sql.Tx, nodeID string, record api.RemoteRecord, current *models.HubRecord) error {
	query := `
		INSERT INTO hub_conflicts (
			id, node_id, model_name, record_id, node_data, hub_data,
			node_version, hub_version, detected_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := tx.ExecContext(ctx, query,
		uuid.NewString(),
		nodeID,
		record.ModelName,
		record.RecordID,
		string(record.Data),
		string(current.Data),
		record.SourceVersion,
		current.HubVersion,
		time.Now().UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("failed to save conflict: %w", err)
	}

	return nil
}

func scanRecords(rows *sql.Rows) ([]*models.HubRecord, error) {
	var records []*models.HubRecord

	for rows.Next() {
		record := &models.HubRecord{}
		var data string
		var modifiedAt, appliedAt int64

		err := rows.Scan(
			&record.ModelName,
			&record.RecordID,
			&record.Operation,
			&record.Checksum,
			&data,
			&record.SourceNode,
			&record.SourceVersion,
			&record.HubVersion,
			&modifiedAt,
			&appliedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}

		record.Data = []byte(data)
		record.ModifiedAt = nanosToTime(modifiedAt)
		record.AppliedAt = nanosToTime(appliedAt)

		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return records, nil
}

// nanosToTime converts unix nanoseconds to time.Time
func nanosToTime(nanos int64) time.Time {
	return time.Unix(0, nanos)
}
