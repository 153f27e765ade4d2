// Package sync реализует движок синхронизации узла: фиксацию локальных
// изменений, сессии обмена с hub, детектирование и разрешение конфликтов.
package sync

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	gosync "sync"
	"time"

	"github.com/google/uuid"

	"github.com/iudanet/syncpoint/internal/checksum"
	"github.com/iudanet/syncpoint/internal/models"
	"github.com/iudanet/syncpoint/internal/node/queue"
	"github.com/iudanet/syncpoint/internal/node/storage"
	"github.com/iudanet/syncpoint/internal/validation"
	"github.com/iudanet/syncpoint/pkg/api"
)

//go:generate moq -out hubclient_mock.go . HubClient

// HubClient транспорт до hub. Реализуется HTTP-клиентом,
// в тестах подменяется mock-ом.
type HubClient interface {
	// Push отправляет пакет локальных изменений на hub.
	// Транспортные сбои возвращаются как api.ErrHubUnavailable.
	Push(ctx context.Context, req api.PushRequest) (*api.PushResponse, error)

	// Pull запрашивает изменения hub по модели с версии sinceVersion
	Pull(ctx context.Context, nodeID, modelName string, sinceVersion int64) (*api.PullResponse, error)
}

// ApplyFunc callback прикладного слоя: вызывается для каждой удаленной
// записи, которую движок решил применить локально. Ошибка помечает
// запись как failed, но не прерывает пакет.
type ApplyFunc func(ctx context.Context, record *models.SyncRecord) error

//go:generate moq -out service_mock.go . Service

// Service движок синхронизации узла
type Service interface {
	// SubmitLocalChange фиксирует локальное изменение сущности:
	// инкрементирует version vector модели и создает pending-запись.
	// Для operation=delete пустой payload заменяется tombstone-маркером.
	SubmitLocalChange(ctx context.Context, modelName, recordID string, op models.Operation, data json.RawMessage) (*models.SyncRecord, error)

	// StartSession выполняет полную сессию обмена с hub в заданном
	// направлении. Блокирует до завершения. Для узла допускается
	// не более одной активной сессии (ErrSessionActive).
	StartSession(ctx context.Context, direction models.Direction, modules []string) (*models.SyncSession, error)

	// BeginSession открывает сессию без обмена с hub: пакеты доставляет
	// внешний транспорт через IngestRemoteBatch, завершает CompleteSession.
	BeginSession(ctx context.Context, direction models.Direction, modules []string) (*models.SyncSession, error)

	// IngestRemoteBatch применяет пакет удаленных записей в рамках
	// открытой сессии. Записи применяются в порядке возрастания версии
	// источника; записи вне scope сессии пропускаются.
	IngestRemoteBatch(ctx context.Context, sessionID string, records []api.RemoteRecord) (*api.SessionProgress, error)

	// CompleteSession завершает открытую сессию. Итоговый статус
	// completed либо conflict, если сессия оставила неразрешенные конфликты.
	CompleteSession(ctx context.Context, sessionID string) (*models.SyncSession, error)

	// CancelSession отменяет незавершенную сессию. Записи, взятые
	// сессией в работу, возвращаются в очередь отправки; уже
	// примененные остаются примененными.
	CancelSession(ctx context.Context, sessionID string) (*models.SyncSession, error)

	// GetSession возвращает сессию по ID
	GetSession(ctx context.Context, sessionID string) (*models.SyncSession, error)

	// PendingChanges возвращает version vectors узла; по ним видно,
	// сколько изменений каждой модели еще не подтверждено hub
	PendingChanges(ctx context.Context) ([]*models.VersionVector, error)

	// ListUnresolvedConflicts возвращает конфликты, ожидающие решения
	ListUnresolvedConflicts(ctx context.Context) ([]*models.SyncConflict, error)

	// ApplyManualResolution разрешает конфликт внешним решением: data
	// становится новым локальным изменением сущности и уедет следующим push
	ApplyManualResolution(ctx context.Context, conflictID string, data json.RawMessage, resolvedBy string) (*models.SyncConflict, error)
}

// Config зависимости движка синхронизации
type Config struct {
	NodeID    string
	Hub       HubClient
	Vectors   storage.VectorStorage
	Records   storage.RecordStorage
	Conflicts storage.ConflictStorage
	Sessions  storage.SessionStorage
	Queue     queue.Service
	Metadata  storage.MetadataStorage
	Resolver  *Resolver
	Apply     ApplyFunc
	Logger    *slog.Logger
}

type service struct {
	nodeID    string
	hub       HubClient
	vectors   storage.VectorStorage
	records   storage.RecordStorage
	conflicts storage.ConflictStorage
	sessions  storage.SessionStorage
	queue     queue.Service
	metadata  storage.MetadataStorage
	resolver  *Resolver
	apply     ApplyFunc
	logger    *slog.Logger

	mu       gosync.Mutex
	activeID string // ID активной сессии; пусто, если сессий нет
}

// NewService создает движок синхронизации узла
func NewService(cfg Config) Service {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	resolver := cfg.Resolver
	if resolver == nil {
		resolver = NewResolver()
	}
	return &service{
		nodeID:    cfg.NodeID,
		hub:       cfg.Hub,
		vectors:   cfg.Vectors,
		records:   cfg.Records,
		conflicts: cfg.Conflicts,
		sessions:  cfg.Sessions,
		queue:     cfg.Queue,
		metadata:  cfg.Metadata,
		resolver:  resolver,
		apply:     cfg.Apply,
		logger:    logger,
	}
}

func (s *service) SubmitLocalChange(ctx context.Context, modelName, recordID string, op models.Operation, data json.RawMessage) (*models.SyncRecord, error) {
	if err := validation.ValidateModelName(modelName); err != nil {
		return nil, err
	}
	if err := validation.ValidateRecordID(recordID); err != nil {
		return nil, err
	}
	if !op.IsValid() {
		return nil, fmt.Errorf("unknown operation: %s", op)
	}

	if op == models.OperationDelete && len(data) == 0 {
		data = checksum.Tombstone
	}

	sum, err := checksum.Sum(data)
	if err != nil {
		return nil, fmt.Errorf("invalid payload: %w", err)
	}

	// Bump и durable-запись версии происходят до сохранения record:
	// версия никогда не переиспользуется, даже если сохранение упадет
	version, err := s.vectors.Bump(ctx, s.nodeID, modelName)
	if err != nil {
		return nil, fmt.Errorf("failed to bump version vector: %w", err)
	}

	record := &models.SyncRecord{
		ID:              uuid.NewString(),
		NodeID:          s.nodeID,
		ModelName:       modelName,
		RecordID:        recordID,
		Operation:       op,
		Status:          models.StatusPending,
		Data:            data,
		Checksum:        sum,
		LocalVersion:    version,
		LocalModifiedAt: time.Now().UTC(),
	}

	if err := s.records.SaveRecord(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to save sync record: %w", err)
	}

	s.logger.Debug("local change recorded",
		"model", modelName, "record", recordID, "operation", op, "version", version)

	return record, nil
}

func (s *service) BeginSession(ctx context.Context, direction models.Direction, modules []string) (*models.SyncSession, error) {
	if !direction.IsValid() {
		return nil, fmt.Errorf("unknown sync direction: %s", direction)
	}
	for _, m := range modules {
		if err := validation.ValidateModelName(m); err != nil {
			return nil, err
		}
	}

	session := &models.SyncSession{
		ID:        uuid.NewString(),
		NodeID:    s.nodeID,
		Direction: direction,
		Modules:   modules,
		Status:    models.StatusPending,
		StartedAt: time.Now().UTC(),
	}

	if err := s.acquire(session.ID); err != nil {
		return nil, err
	}

	if err := s.sessions.SaveSession(ctx, session); err != nil {
		s.release(session.ID)
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	session.Status = models.StatusInProgress
	if err := s.sessions.SaveSession(ctx, session); err != nil {
		s.release(session.ID)
		return nil, fmt.Errorf("failed to open session: %w", err)
	}

	s.logger.Info("sync session started",
		"session_id", session.ID, "direction", direction, "modules", modules)

	return session, nil
}

func (s *service) StartSession(ctx context.Context, direction models.Direction, modules []string) (*models.SyncSession, error) {
	session, err := s.BeginSession(ctx, direction, modules)
	if err != nil {
		return nil, err
	}

	var runErr error
	switch direction {
	case models.DirectionPush:
		runErr = s.runPush(ctx, session)
	case models.DirectionPull:
		runErr = s.runPull(ctx, session)
	case models.DirectionBidirectional:
		runErr = s.runPush(ctx, session)
		if runErr == nil {
			runErr = s.runPull(ctx, session)
		}
	}

	if runErr != nil {
		s.failSession(ctx, session, runErr)
		return session, runErr
	}

	return s.CompleteSession(ctx, session.ID)
}

func (s *service) IngestRemoteBatch(ctx context.Context, sessionID string, records []api.RemoteRecord) (*api.SessionProgress, error) {
	session, err := s.sessions.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Status != models.StatusInProgress {
		return nil, ErrSessionNotOpen
	}

	batch := make([]api.RemoteRecord, len(records))
	copy(batch, records)
	// Порядок применения: по возрастанию версии источника
	sort.SliceStable(batch, func(i, j int) bool {
		return batch[i].SourceVersion < batch[j].SourceVersion
	})

	for i := range batch {
		if !session.InScope(batch[i].ModelName) {
			s.logger.Debug("remote record out of session scope, skipped",
				"session_id", sessionID, "model", batch[i].ModelName)
			continue
		}
		if err := s.applyRemoteRecord(ctx, session, batch[i]); err != nil {
			return nil, err
		}
	}

	if err := s.sessions.SaveSession(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to save session progress: %w", err)
	}

	return sessionProgress(session), nil
}

func (s *service) CompleteSession(ctx context.Context, sessionID string) (*models.SyncSession, error) {
	session, err := s.sessions.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Status != models.StatusInProgress {
		return nil, ErrSessionNotOpen
	}

	unresolved, err := s.sessionUnresolved(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	session.Status = models.StatusCompleted
	if unresolved > 0 {
		// Транспортно сессия завершена, но данные требуют решения
		session.Status = models.StatusConflict
	}
	now := time.Now().UTC()
	session.CompletedAt = &now

	if err := s.sessions.SaveSession(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to finalize session: %w", err)
	}
	s.release(sessionID)

	s.logger.Info("sync session finished",
		"session_id", sessionID,
		"status", session.Status,
		"processed", session.ProcessedRecords,
		"applied", session.AppliedRecords,
		"conflicts", session.ConflictsCount,
		"failed", session.FailedRecords)

	return session, nil
}

func (s *service) CancelSession(ctx context.Context, sessionID string) (*models.SyncSession, error) {
	session, err := s.sessions.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Status != models.StatusPending && session.Status != models.StatusInProgress {
		return nil, ErrSessionFinished
	}

	// Записи, взятые сессией в работу, возвращаются в очередь отправки.
	// Уже примененные (completed) не трогаем.
	inFlight, err := s.records.ListRecordsByStatus(ctx, models.StatusInProgress)
	if err != nil {
		return nil, fmt.Errorf("failed to list in-flight records: %w", err)
	}
	for _, rec := range inFlight {
		if rec.SessionID != sessionID {
			continue
		}
		rec.Status = models.StatusCancelled
		if err := s.records.SaveRecord(ctx, rec); err != nil {
			return nil, fmt.Errorf("failed to release record %s: %w", rec.ID, err)
		}
	}

	session.Status = models.StatusCancelled
	now := time.Now().UTC()
	session.CompletedAt = &now

	if err := s.sessions.SaveSession(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to cancel session: %w", err)
	}
	s.release(sessionID)

	s.logger.Info("sync session cancelled", "session_id", sessionID)

	return session, nil
}

func (s *service) GetSession(ctx context.Context, sessionID string) (*models.SyncSession, error) {
	return s.sessions.GetSession(ctx, sessionID)
}

func (s *service) PendingChanges(ctx context.Context) ([]*models.VersionVector, error) {
	return s.vectors.ListVectors(ctx, s.nodeID)
}

func (s *service) ListUnresolvedConflicts(ctx context.Context) ([]*models.SyncConflict, error) {
	return s.conflicts.ListConflicts(ctx, false)
}

func (s *service) ApplyManualResolution(ctx context.Context, conflictID string, data json.RawMessage, resolvedBy string) (*models.SyncConflict, error) {
	conflict, err := s.conflicts.GetConflict(ctx, conflictID)
	if err != nil {
		return nil, err
	}
	if conflict.Resolved {
		return nil, storage.ErrConflictResolved
	}
	if len(data) == 0 {
		return nil, ErrEmptyResolution
	}
	if _, err := checksum.Canonicalize(data); err != nil {
		return nil, fmt.Errorf("invalid resolution payload: %w", err)
	}
	if resolvedBy == "" {
		resolvedBy = "manual"
	}

	// Решение становится новым локальным изменением и распространится
	// обычным push
	record, err := s.SubmitLocalChange(ctx, conflict.ModelName, conflict.RecordID, models.OperationUpdate, data)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	res := &Resolution{Strategy: models.StrategyManual, Data: data, Resolved: true}
	audit, err := AuditResolution(conflict, res, now)
	if err != nil {
		return nil, err
	}

	conflict.Resolved = true
	conflict.ResolvedAt = &now
	conflict.ResolvedBy = resolvedBy
	conflict.ResolutionData = audit

	if err := s.conflicts.SaveConflict(ctx, conflict); err != nil {
		return nil, err
	}

	if s.apply != nil {
		if err := s.apply(ctx, record); err != nil {
			s.logger.Warn("apply callback failed for manual resolution",
				"conflict_id", conflictID, "error", err)
		}
	}

	s.logger.Info("conflict resolved manually",
		"conflict_id", conflictID, "resolved_by", resolvedBy)

	return conflict, nil
}

// runPush собирает пакет неподтвержденных локальных изменений
// и отправляет его на hub
func (s *service) runPush(ctx context.Context, session *models.SyncSession) error {
	batch, byKey, maxVersions, err := s.buildPushBatch(ctx, session)
	if err != nil {
		return err
	}
	if len(batch) == 0 {
		return s.sessions.SaveSession(ctx, session)
	}

	resp, err := s.hub.Push(ctx, api.PushRequest{NodeID: s.nodeID, Records: batch})
	if err != nil {
		s.revertBatch(ctx, byKey)
		if errors.Is(err, api.ErrHubUnavailable) {
			// Пакет уходит в offline-очередь и будет доставлен позже
			if qerr := s.enqueuePush(ctx, batch); qerr != nil {
				s.logger.Error("failed to enqueue offline push", "error", qerr)
			} else {
				s.logger.Warn("hub unavailable, push queued for later delivery",
					"session_id", session.ID, "records", len(batch))
			}
		}
		return fmt.Errorf("push failed: %w", err)
	}

	// Hub отклонил часть записей как конфликтные и вернул свое
	// текущее состояние по ним
	conflicted := make(map[string]bool, len(resp.ConflictRecords))
	for _, remote := range resp.ConflictRecords {
		key := recordKey(remote.ModelName, remote.RecordID)
		conflicted[key] = true
		if err := s.raiseConflict(ctx, session, byKey[key], remote); err != nil {
			return err
		}
	}

	now := time.Now().UTC()
	for key, rec := range byKey {
		if conflicted[key] {
			continue
		}
		rec.Status = models.StatusCompleted
		rec.SyncedAt = &now
		if err := s.records.SaveRecord(ctx, rec); err != nil {
			return fmt.Errorf("failed to mark record synced: %w", err)
		}
		session.AppliedRecords++
	}
	session.ProcessedRecords += len(batch)

	// Hub принял решение по каждой записи пакета: подтверждаем версии.
	// Конфликтные записи переотправляются уже как новые изменения.
	for model, version := range maxVersions {
		if err := s.vectors.MarkSynced(ctx, s.nodeID, model, version); err != nil {
			return fmt.Errorf("failed to mark synced for %s: %w", model, err)
		}
	}
	for model, version := range resp.HubVersions {
		if err := s.metadata.SaveHubVersion(ctx, model, version); err != nil {
			return fmt.Errorf("failed to save hub version for %s: %w", model, err)
		}
	}

	return s.sessions.SaveSession(ctx, session)
}

// buildPushBatch выбирает для каждой пары (model, record_id) последнее
// неподтвержденное изменение и помечает выбранные записи in_progress
func (s *service) buildPushBatch(ctx context.Context, session *models.SyncSession) ([]api.RemoteRecord, map[string]*models.SyncRecord, map[string]int64, error) {
	vectors, err := s.vectors.ListVectors(ctx, s.nodeID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to list version vectors: %w", err)
	}

	byKey := make(map[string]*models.SyncRecord)
	for _, v := range vectors {
		if !session.InScope(v.ModelName) {
			continue
		}
		recs, err := s.records.ListRecordsSince(ctx, v.ModelName, v.LastSyncedVersion)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("failed to list records for %s: %w", v.ModelName, err)
		}
		for _, rec := range recs {
			switch rec.Status {
			case models.StatusPending, models.StatusInProgress, models.StatusCancelled:
				// in_progress — осталось от упавшей сессии, cancelled — от отмененной
			default:
				continue
			}
			key := recordKey(rec.ModelName, rec.RecordID)
			if prev, ok := byKey[key]; ok && prev.LocalVersion >= rec.LocalVersion {
				continue
			}
			byKey[key] = rec
		}
	}

	batch := make([]api.RemoteRecord, 0, len(byKey))
	maxVersions := make(map[string]int64)
	for _, rec := range byKey {
		base, err := s.metadata.GetHubVersion(ctx, rec.ModelName)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("failed to get hub version for %s: %w", rec.ModelName, err)
		}

		rec.Status = models.StatusInProgress
		rec.SessionID = session.ID
		if err := s.records.SaveRecord(ctx, rec); err != nil {
			return nil, nil, nil, fmt.Errorf("failed to mark record in progress: %w", err)
		}

		batch = append(batch, api.RemoteRecord{
			ModelName:     rec.ModelName,
			RecordID:      rec.RecordID,
			Operation:     string(rec.Operation),
			Checksum:      rec.Checksum,
			SourceNode:    s.nodeID,
			Data:          rec.Data,
			SourceVersion: rec.LocalVersion,
			BaseVersion:   base,
			ModifiedAt:    rec.LocalModifiedAt,
		})
		if rec.LocalVersion > maxVersions[rec.ModelName] {
			maxVersions[rec.ModelName] = rec.LocalVersion
		}
	}

	// Детерминированный порядок пакета
	sort.Slice(batch, func(i, j int) bool {
		if batch[i].ModelName != batch[j].ModelName {
			return batch[i].ModelName < batch[j].ModelName
		}
		return batch[i].SourceVersion < batch[j].SourceVersion
	})

	return batch, byKey, maxVersions, nil
}

// revertBatch возвращает записи неотправленного пакета в pending
func (s *service) revertBatch(ctx context.Context, byKey map[string]*models.SyncRecord) {
	for _, rec := range byKey {
		rec.Status = models.StatusPending
		rec.SessionID = ""
		if err := s.records.SaveRecord(ctx, rec); err != nil {
			s.logger.Error("failed to revert record after push failure",
				"record_id", rec.ID, "error", err)
		}
	}
}

// runPull запрашивает у hub изменения по каждой модели в scope сессии
func (s *service) runPull(ctx context.Context, session *models.SyncSession) error {
	scope, err := s.pullScope(ctx, session)
	if err != nil {
		return err
	}

	for _, modelName := range scope {
		since, err := s.metadata.GetHubVersion(ctx, modelName)
		if err != nil {
			return fmt.Errorf("failed to get hub version for %s: %w", modelName, err)
		}

		resp, err := s.hub.Pull(ctx, s.nodeID, modelName, since)
		if err != nil {
			if errors.Is(err, api.ErrHubUnavailable) {
				if qerr := s.enqueuePull(ctx, modelName, since); qerr != nil {
					s.logger.Error("failed to enqueue offline pull", "error", qerr)
				} else {
					s.logger.Warn("hub unavailable, pull queued for later delivery",
						"session_id", session.ID, "model", modelName)
				}
			}
			return fmt.Errorf("pull failed for %s: %w", modelName, err)
		}

		records := resp.Records
		sort.SliceStable(records, func(i, j int) bool {
			return records[i].SourceVersion < records[j].SourceVersion
		})
		for i := range records {
			if err := s.applyRemoteRecord(ctx, session, records[i]); err != nil {
				return err
			}
		}

		if version, ok := resp.HubVersions[modelName]; ok {
			if err := s.metadata.SaveHubVersion(ctx, modelName, version); err != nil {
				return fmt.Errorf("failed to save hub version for %s: %w", modelName, err)
			}
		}
	}

	return s.sessions.SaveSession(ctx, session)
}

// pullScope возвращает модели для pull: явный scope сессии либо
// объединение всех моделей, известных узлу
func (s *service) pullScope(ctx context.Context, session *models.SyncSession) ([]string, error) {
	if len(session.Modules) > 0 {
		return session.Modules, nil
	}

	known := make(map[string]bool)
	vectors, err := s.vectors.ListVectors(ctx, s.nodeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list version vectors: %w", err)
	}
	for _, v := range vectors {
		known[v.ModelName] = true
	}
	hubVersions, err := s.metadata.GetHubVersions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get hub versions: %w", err)
	}
	for modelName := range hubVersions {
		known[modelName] = true
	}

	scope := make([]string, 0, len(known))
	for modelName := range known {
		scope = append(scope, modelName)
	}
	sort.Strings(scope)

	return scope, nil
}

// applyRemoteRecord классифицирует удаленную запись относительно
// локального состояния сущности и применяет либо фиксирует конфликт
func (s *service) applyRemoteRecord(ctx context.Context, session *models.SyncSession, remote api.RemoteRecord) error {
	session.ProcessedRecords++

	// Целостность проверяется до любых решений
	if err := checksum.Verify(remote.Data, remote.Checksum); err != nil {
		session.FailedRecords++
		s.logger.Warn("remote record failed integrity check",
			"model", remote.ModelName, "record", remote.RecordID,
			"source", remote.SourceNode, "error", err)
		return nil
	}

	local, err := s.records.GetLatestRecord(ctx, remote.ModelName, remote.RecordID)
	if errors.Is(err, storage.ErrRecordNotFound) {
		// Сущность ранее не встречалась: применяем напрямую
		return s.applyLocally(ctx, session, remote)
	}
	if err != nil {
		return fmt.Errorf("failed to load local record state: %w", err)
	}

	hubKnown, err := s.metadata.GetHubVersion(ctx, remote.ModelName)
	if err != nil {
		return fmt.Errorf("failed to get hub version for %s: %w", remote.ModelName, err)
	}

	class := Classify(
		Side{
			ModifiedAt:  local.LocalModifiedAt,
			Checksum:    local.Checksum,
			Data:        local.Data,
			Version:     local.LocalVersion,
			BaseVersion: hubKnown,
		},
		Side{
			ModifiedAt:  remote.ModifiedAt,
			Checksum:    remote.Checksum,
			Data:        remote.Data,
			Version:     remote.SourceVersion,
			BaseVersion: remote.BaseVersion,
		},
	)

	switch class {
	case ClassNoConflict, ClassLocalWinsClean:
		// Либо стороны уже сошлись, либо локальная версия новее
		// и распространится обычным push
		return nil
	case ClassRemoteWinsClean:
		return s.applyLocally(ctx, session, remote)
	default:
		return s.raiseConflict(ctx, session, local, remote)
	}
}

// applyLocally сохраняет удаленную запись как примененную.
// ID записи детерминирован содержимым, поэтому повторная доставка
// того же изменения идемпотентна.
func (s *service) applyLocally(ctx context.Context, session *models.SyncSession, remote api.RemoteRecord) error {
	now := time.Now().UTC()
	modifiedAt := remote.ModifiedAt
	record := &models.SyncRecord{
		ID:               appliedRecordID(remote),
		NodeID:           s.nodeID,
		ModelName:        remote.ModelName,
		RecordID:         remote.RecordID,
		Operation:        models.Operation(remote.Operation),
		Status:           models.StatusCompleted,
		SessionID:        session.ID,
		Data:             remote.Data,
		Checksum:         remote.Checksum,
		RemoteVersion:    remote.SourceVersion,
		RemoteModifiedAt: &modifiedAt,
		LocalModifiedAt:  now,
		SyncedAt:         &now,
	}

	if s.apply != nil {
		if err := s.apply(ctx, record); err != nil {
			record.Status = models.StatusFailed
			record.ErrorMessage = err.Error()
			session.FailedRecords++
			s.logger.Warn("apply callback failed",
				"model", remote.ModelName, "record", remote.RecordID, "error", err)
			if serr := s.records.SaveRecord(ctx, record); serr != nil {
				return fmt.Errorf("failed to save failed record: %w", serr)
			}
			return nil
		}
	}

	if err := s.records.SaveRecord(ctx, record); err != nil {
		return fmt.Errorf("failed to save applied record: %w", err)
	}
	session.AppliedRecords++

	return nil
}

// raiseConflict фиксирует конфликт и пытается разрешить его
// стратегией модели. Неразрешенный конфликт ждет внешнего решения.
func (s *service) raiseConflict(ctx context.Context, session *models.SyncSession, local *models.SyncRecord, remote api.RemoteRecord) error {
	now := time.Now().UTC()
	conflict := &models.SyncConflict{
		ID:               uuid.NewString(),
		SessionID:        session.ID,
		ModelName:        remote.ModelName,
		RecordID:         remote.RecordID,
		LocalNodeID:      s.nodeID,
		RemoteSource:     remote.SourceNode,
		RemoteData:       remote.Data,
		RemoteModifiedAt: remote.ModifiedAt,
		RemoteVersion:    remote.SourceVersion,
		Strategy:         s.resolver.DefaultStrategy(remote.ModelName),
		DetectedAt:       now,
	}
	if local != nil {
		conflict.LocalData = local.Data
		conflict.LocalModifiedAt = local.LocalModifiedAt
		conflict.LocalVersion = local.LocalVersion

		// Локальная запись выбывает из очереди отправки:
		// её судьбу определяет resolution
		local.Status = models.StatusConflict
		local.SessionID = session.ID
		if err := s.records.SaveRecord(ctx, local); err != nil {
			return fmt.Errorf("failed to park conflicted record: %w", err)
		}
	}
	session.ConflictsCount++

	res, err := s.resolver.Resolve(conflict)
	if err != nil {
		// Стратегия не сработала — конфликт остается ждать решения
		s.logger.Warn("conflict auto-resolution failed",
			"conflict_id", conflict.ID, "model", conflict.ModelName, "error", err)
		return s.conflicts.SaveConflict(ctx, conflict)
	}
	if !res.Resolved {
		s.logger.Info("conflict recorded",
			"conflict_id", conflict.ID, "model", conflict.ModelName,
			"record", conflict.RecordID, "strategy", res.Strategy)
		return s.conflicts.SaveConflict(ctx, conflict)
	}

	if err := s.applyResolution(ctx, session, conflict, res); err != nil {
		return err
	}

	audit, err := AuditResolution(conflict, res, now)
	if err != nil {
		return err
	}
	conflict.Resolved = true
	conflict.ResolvedAt = &now
	conflict.ResolvedBy = "strategy:" + string(res.Strategy)
	conflict.ResolutionData = audit

	s.logger.Info("conflict auto-resolved",
		"conflict_id", conflict.ID, "model", conflict.ModelName,
		"record", conflict.RecordID, "strategy", res.Strategy, "winner", res.Winner)

	return s.conflicts.SaveConflict(ctx, conflict)
}

// applyResolution воплощает исход разрешения: победившие данные
// применяются локально и/или становятся новым локальным изменением
func (s *service) applyResolution(ctx context.Context, session *models.SyncSession, conflict *models.SyncConflict, res *Resolution) error {
	switch {
	case res.Strategy == models.StrategyKeepBoth:
		// Локальная версия переотправляется под исходным id,
		// удаленная сохраняется под производным
		if len(conflict.LocalData) > 0 {
			if _, err := s.SubmitLocalChange(ctx, conflict.ModelName, conflict.RecordID, models.OperationUpdate, conflict.LocalData); err != nil {
				return fmt.Errorf("failed to resubmit local version: %w", err)
			}
		}
		derived, err := s.SubmitLocalChange(ctx, conflict.ModelName, res.DerivedRecordID, models.OperationCreate, res.DerivedData)
		if err != nil {
			return fmt.Errorf("failed to save derived record: %w", err)
		}
		if s.apply != nil {
			if aerr := s.apply(ctx, derived); aerr != nil {
				s.logger.Warn("apply callback failed for derived record",
					"record", res.DerivedRecordID, "error", aerr)
			}
		}
		return nil

	case res.Winner == "remote":
		return s.applyLocally(ctx, session, remoteFromConflict(conflict))

	default: // local либо merge
		record, err := s.SubmitLocalChange(ctx, conflict.ModelName, conflict.RecordID, models.OperationUpdate, res.Data)
		if err != nil {
			return fmt.Errorf("failed to submit resolution outcome: %w", err)
		}
		if res.Winner == "both" && s.apply != nil {
			if aerr := s.apply(ctx, record); aerr != nil {
				s.logger.Warn("apply callback failed for merged record",
					"record", conflict.RecordID, "error", aerr)
			}
		}
		return nil
	}
}

// enqueuePush ставит недоставленный push-пакет в offline-очередь
func (s *service) enqueuePush(ctx context.Context, batch []api.RemoteRecord) error {
	payload, err := json.Marshal(api.PushRequest{NodeID: s.nodeID, Records: batch})
	if err != nil {
		return fmt.Errorf("failed to marshal push payload: %w", err)
	}
	_, err = s.queue.Enqueue(ctx, s.newOfflineOperation(models.OperationTypeSyncPush, payload))
	return err
}

// enqueuePull ставит недоставленный pull-запрос в offline-очередь
func (s *service) enqueuePull(ctx context.Context, modelName string, since int64) error {
	payload, err := json.Marshal(struct {
		ModelName string `json:"model_name"`
		Since     int64  `json:"since"`
	}{ModelName: modelName, Since: since})
	if err != nil {
		return fmt.Errorf("failed to marshal pull payload: %w", err)
	}
	_, err = s.queue.Enqueue(ctx, s.newOfflineOperation(models.OperationTypeSyncPull, payload))
	return err
}

// newOfflineOperation готовит операцию к постановке в очередь.
// ID, статус и retry-параметры заполняет queue.Enqueue; первая попытка
// откладывается на базовую задержку, раз hub только что был недоступен.
func (s *service) newOfflineOperation(opType models.OperationType, payload json.RawMessage) *models.OfflineOperation {
	return &models.OfflineOperation{
		NodeID:        s.nodeID,
		Module:        "sync",
		OperationType: opType,
		Payload:       payload,
		ScheduledFor:  time.Now().UTC().Add(queue.DefaultRetryDelaySeconds * time.Second),
	}
}

// failSession переводит сессию в failed и снимает блокировку узла
func (s *service) failSession(ctx context.Context, session *models.SyncSession, cause error) {
	session.Status = models.StatusFailed
	session.LastError = cause.Error()
	session.RetryCount++
	now := time.Now().UTC()
	session.CompletedAt = &now

	if err := s.sessions.SaveSession(ctx, session); err != nil {
		s.logger.Error("failed to save failed session",
			"session_id", session.ID, "error", err)
	}
	s.release(session.ID)

	s.logger.Error("sync session failed",
		"session_id", session.ID, "error", cause)
}

// sessionUnresolved считает неразрешенные конфликты, созданные сессией
func (s *service) sessionUnresolved(ctx context.Context, sessionID string) (int, error) {
	unresolved, err := s.conflicts.ListConflicts(ctx, false)
	if err != nil {
		return 0, fmt.Errorf("failed to list conflicts: %w", err)
	}
	count := 0
	for _, c := range unresolved {
		if c.SessionID == sessionID {
			count++
		}
	}
	return count, nil
}

func (s *service) acquire(sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.activeID != "" {
		return ErrSessionActive
	}
	s.activeID = sessionID
	return nil
}

func (s *service) release(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.activeID == sessionID {
		s.activeID = ""
	}
}

// appliedRecordID детерминированный ID примененной удаленной записи.
// Повторная доставка того же изменения перезаписывает ту же запись.
func appliedRecordID(remote api.RemoteRecord) string {
	return "applied/" + remote.ModelName + "/" + remote.RecordID + "/" + remote.Checksum
}

func recordKey(modelName, recordID string) string {
	return modelName + "/" + recordID
}

// remoteFromConflict восстанавливает wire-представление удаленной
// стороны конфликта для локального применения
func remoteFromConflict(conflict *models.SyncConflict) api.RemoteRecord {
	sum, err := checksum.Sum(conflict.RemoteData)
	if err != nil {
		// RemoteData уже прошла Verify при приеме
		sum = ""
	}
	return api.RemoteRecord{
		ModelName:     conflict.ModelName,
		RecordID:      conflict.RecordID,
		Operation:     string(models.OperationUpdate),
		Checksum:      sum,
		SourceNode:    conflict.RemoteSource,
		Data:          conflict.RemoteData,
		SourceVersion: conflict.RemoteVersion,
		ModifiedAt:    conflict.RemoteModifiedAt,
	}
}

func sessionProgress(session *models.SyncSession) *api.SessionProgress {
	return &api.SessionProgress{
		SessionID: session.ID,
		Status:    string(session.Status),
		Processed: session.ProcessedRecords,
		Applied:   session.AppliedRecords,
		Conflicts: session.ConflictsCount,
		Failed:    session.FailedRecords,
	}
}
