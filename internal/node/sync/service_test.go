package sync

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/syncpoint/internal/checksum"
	"github.com/iudanet/syncpoint/internal/models"
	"github.com/iudanet/syncpoint/internal/node/queue"
	"github.com/iudanet/syncpoint/internal/node/storage"
	"github.com/iudanet/syncpoint/internal/node/storage/boltdb"
	"github.com/iudanet/syncpoint/pkg/api"
)

func newTestService(t *testing.T, hub HubClient, resolver *Resolver) (Service, *boltdb.Storage) {
	t.Helper()

	store, err := boltdb.New(context.Background(), filepath.Join(t.TempDir(), "node.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := NewService(Config{
		NodeID:    "node-a",
		Hub:       hub,
		Vectors:   store,
		Records:   store,
		Conflicts: store,
		Sessions:  store,
		Queue:     queue.NewService(queue.Config{NodeID: "node-a", Storage: store, Logger: logger}),
		Metadata:  store,
		Resolver:  resolver,
		Logger:    logger,
	})

	return svc, store
}

func wireRecord(t *testing.T, modelName, recordID, source, data string, version, base int64, modifiedAt time.Time) api.RemoteRecord {
	t.Helper()

	sum, err := checksum.Sum([]byte(data))
	require.NoError(t, err)

	return api.RemoteRecord{
		ModelName:     modelName,
		RecordID:      recordID,
		Operation:     string(models.OperationUpdate),
		Checksum:      sum,
		SourceNode:    source,
		Data:          json.RawMessage(data),
		SourceVersion: version,
		BaseVersion:   base,
		ModifiedAt:    modifiedAt,
	}
}

func TestService_SubmitLocalChange(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(t, nil, nil)

	first, err := svc.SubmitLocalChange(ctx, "Document", "doc-1", models.OperationCreate, json.RawMessage(`{"title":"a"}`))
	require.NoError(t, err)
	assert.Equal(t, int64(1), first.LocalVersion)
	assert.Equal(t, models.StatusPending, first.Status)
	assert.NotEmpty(t, first.Checksum)

	second, err := svc.SubmitLocalChange(ctx, "Document", "doc-2", models.OperationCreate, json.RawMessage(`{"title":"b"}`))
	require.NoError(t, err)
	assert.Equal(t, int64(2), second.LocalVersion)

	vector, err := store.GetVector(ctx, "node-a", "Document")
	require.NoError(t, err)
	assert.Equal(t, int64(2), vector.PendingCount())
}

func TestService_SubmitLocalChange_DeleteUsesTombstone(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, nil, nil)

	record, err := svc.SubmitLocalChange(ctx, "Document", "doc-1", models.OperationDelete, nil)
	require.NoError(t, err)
	assert.Equal(t, checksum.SumTombstone(), record.Checksum)
	assert.JSONEq(t, string(checksum.Tombstone), string(record.Data))
}

func TestService_SubmitLocalChange_Validation(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, nil, nil)

	_, err := svc.SubmitLocalChange(ctx, "bad model!", "doc-1", models.OperationCreate, json.RawMessage(`{}`))
	assert.Error(t, err)

	_, err = svc.SubmitLocalChange(ctx, "Document", "", models.OperationCreate, json.RawMessage(`{}`))
	assert.Error(t, err)

	_, err = svc.SubmitLocalChange(ctx, "Document", "doc-1", "truncate", json.RawMessage(`{}`))
	assert.Error(t, err)

	_, err = svc.SubmitLocalChange(ctx, "Document", "doc-1", models.OperationCreate, json.RawMessage(`{broken`))
	assert.Error(t, err)
}

func TestService_StartSession_Push(t *testing.T) {
	ctx := context.Background()
	hub := &HubClientMock{
		PushFunc: func(ctx context.Context, req api.PushRequest) (*api.PushResponse, error) {
			return &api.PushResponse{
				HubVersions: map[string]int64{"Document": 2},
				Accepted:    len(req.Records),
			}, nil
		},
	}
	svc, store := newTestService(t, hub, nil)

	_, err := svc.SubmitLocalChange(ctx, "Document", "doc-1", models.OperationCreate, json.RawMessage(`{"title":"a"}`))
	require.NoError(t, err)
	_, err = svc.SubmitLocalChange(ctx, "Document", "doc-2", models.OperationCreate, json.RawMessage(`{"title":"b"}`))
	require.NoError(t, err)

	session, err := svc.StartSession(ctx, models.DirectionPush, nil)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, session.Status)
	assert.Equal(t, 2, session.ProcessedRecords)
	assert.Equal(t, 2, session.AppliedRecords)
	assert.NotNil(t, session.CompletedAt)

	// Один push с двумя записями узла
	calls := hub.PushCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, "node-a", calls[0].Req.NodeID)
	require.Len(t, calls[0].Req.Records, 2)
	assert.Equal(t, int64(0), calls[0].Req.Records[0].BaseVersion)

	// Версии подтверждены, pending-изменений не осталось
	vector, err := store.GetVector(ctx, "node-a", "Document")
	require.NoError(t, err)
	assert.Equal(t, int64(0), vector.PendingCount())

	hubVersion, err := store.GetHubVersion(ctx, "Document")
	require.NoError(t, err)
	assert.Equal(t, int64(2), hubVersion)

	completed, err := store.ListRecordsByStatus(ctx, models.StatusCompleted)
	require.NoError(t, err)
	assert.Len(t, completed, 2)
}

func TestService_Push_DeduplicatesByRecord(t *testing.T) {
	ctx := context.Background()
	hub := &HubClientMock{
		PushFunc: func(ctx context.Context, req api.PushRequest) (*api.PushResponse, error) {
			return &api.PushResponse{
				HubVersions: map[string]int64{"Document": 1},
				Accepted:    len(req.Records),
			}, nil
		},
	}
	svc, _ := newTestService(t, hub, nil)

	// Две правки одной сущности до синхронизации
	_, err := svc.SubmitLocalChange(ctx, "Document", "doc-1", models.OperationCreate, json.RawMessage(`{"v":1}`))
	require.NoError(t, err)
	_, err = svc.SubmitLocalChange(ctx, "Document", "doc-1", models.OperationUpdate, json.RawMessage(`{"v":2}`))
	require.NoError(t, err)

	_, err = svc.StartSession(ctx, models.DirectionPush, nil)
	require.NoError(t, err)

	// Уходит только последняя версия сущности
	calls := hub.PushCalls()
	require.Len(t, calls, 1)
	require.Len(t, calls[0].Req.Records, 1)
	assert.Equal(t, int64(2), calls[0].Req.Records[0].SourceVersion)
	assert.JSONEq(t, `{"v":2}`, string(calls[0].Req.Records[0].Data))
}

func TestService_Push_HubUnavailable(t *testing.T) {
	ctx := context.Background()
	hub := &HubClientMock{
		PushFunc: func(ctx context.Context, req api.PushRequest) (*api.PushResponse, error) {
			return nil, api.ErrHubUnavailable
		},
	}
	svc, store := newTestService(t, hub, nil)

	_, err := svc.SubmitLocalChange(ctx, "Document", "doc-1", models.OperationCreate, json.RawMessage(`{"title":"a"}`))
	require.NoError(t, err)

	session, err := svc.StartSession(ctx, models.DirectionPush, nil)
	require.ErrorIs(t, err, api.ErrHubUnavailable)
	assert.Equal(t, models.StatusFailed, session.Status)
	assert.Equal(t, 1, session.RetryCount)
	assert.NotEmpty(t, session.LastError)

	// Пакет сохранен в offline-очереди для последующей доставки,
	// retry-параметры заполнены дефолтами очереди
	ops, err := store.ListByStatus(ctx, models.StatusPending)
	require.NoError(t, err)
	require.Len(t, ops, 1)
	assert.Equal(t, models.OperationTypeSyncPush, ops[0].OperationType)
	assert.Equal(t, queue.DefaultPriority, ops[0].Priority)
	assert.Equal(t, queue.DefaultMaxRetries, ops[0].MaxRetries)
	assert.Equal(t, queue.DefaultRetryDelaySeconds, ops[0].RetryDelaySeconds)

	var queued api.PushRequest
	require.NoError(t, json.Unmarshal(ops[0].Payload, &queued))
	require.Len(t, queued.Records, 1)
	assert.Equal(t, "doc-1", queued.Records[0].RecordID)

	// Запись вернулась в очередь отправки
	pending, err := store.ListRecordsByStatus(ctx, models.StatusPending)
	require.NoError(t, err)
	assert.Len(t, pending, 1)

	// Узел не заблокирован упавшей сессией
	_, err = svc.StartSession(ctx, models.DirectionPush, nil)
	require.ErrorIs(t, err, api.ErrHubUnavailable)
}

func TestService_StartSession_Pull(t *testing.T) {
	ctx := context.Background()
	remote := wireRecord(t, "Document", "doc-9", "hub", `{"title":"from hub"}`, 3, 0, time.Now().UTC())
	hub := &HubClientMock{
		PullFunc: func(ctx context.Context, nodeID, modelName string, sinceVersion int64) (*api.PullResponse, error) {
			return &api.PullResponse{
				HubVersions: map[string]int64{"Document": 3},
				Records:     []api.RemoteRecord{remote},
			}, nil
		},
	}
	svc, store := newTestService(t, hub, nil)

	session, err := svc.StartSession(ctx, models.DirectionPull, []string{"Document"})
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, session.Status)
	assert.Equal(t, 1, session.AppliedRecords)

	applied, err := store.GetLatestRecord(ctx, "Document", "doc-9")
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, applied.Status)
	assert.Equal(t, remote.Checksum, applied.Checksum)
	assert.Equal(t, int64(3), applied.RemoteVersion)

	hubVersion, err := store.GetHubVersion(ctx, "Document")
	require.NoError(t, err)
	assert.Equal(t, int64(3), hubVersion)
}

func TestService_Pull_RedeliveryIsIdempotent(t *testing.T) {
	ctx := context.Background()
	remote := wireRecord(t, "Document", "doc-9", "hub", `{"title":"from hub"}`, 3, 0, time.Now().UTC())
	hub := &HubClientMock{
		PullFunc: func(ctx context.Context, nodeID, modelName string, sinceVersion int64) (*api.PullResponse, error) {
			return &api.PullResponse{
				HubVersions: map[string]int64{"Document": 3},
				Records:     []api.RemoteRecord{remote},
			}, nil
		},
	}
	svc, _ := newTestService(t, hub, nil)

	first, err := svc.StartSession(ctx, models.DirectionPull, []string{"Document"})
	require.NoError(t, err)
	assert.Equal(t, 1, first.AppliedRecords)

	// Повторная доставка того же изменения не применяется второй раз
	second, err := svc.StartSession(ctx, models.DirectionPull, []string{"Document"})
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, second.Status)
	assert.Equal(t, 1, second.ProcessedRecords)
	assert.Equal(t, 0, second.AppliedRecords)
	assert.Equal(t, 0, second.ConflictsCount)
}

func TestService_Pull_IntegrityFailure(t *testing.T) {
	ctx := context.Background()
	corrupted := wireRecord(t, "Document", "doc-9", "hub", `{"title":"x"}`, 3, 0, time.Now().UTC())
	corrupted.Data = json.RawMessage(`{"title":"tampered"}`)
	hub := &HubClientMock{
		PullFunc: func(ctx context.Context, nodeID, modelName string, sinceVersion int64) (*api.PullResponse, error) {
			return &api.PullResponse{
				HubVersions: map[string]int64{"Document": 3},
				Records:     []api.RemoteRecord{corrupted},
			}, nil
		},
	}
	svc, store := newTestService(t, hub, nil)

	session, err := svc.StartSession(ctx, models.DirectionPull, []string{"Document"})
	require.NoError(t, err)
	assert.Equal(t, 1, session.FailedRecords)
	assert.Equal(t, 0, session.AppliedRecords)

	// Поврежденная запись не применена
	_, err = store.GetLatestRecord(ctx, "Document", "doc-9")
	require.ErrorIs(t, err, storage.ErrRecordNotFound)
}

func TestService_Pull_ConflictWaitsForManualResolution(t *testing.T) {
	ctx := context.Background()
	remote := wireRecord(t, "Document", "doc-1", "hub", `{"title":"hub version"}`, 5, 0, time.Now().UTC())
	hub := &HubClientMock{
		PullFunc: func(ctx context.Context, nodeID, modelName string, sinceVersion int64) (*api.PullResponse, error) {
			return &api.PullResponse{
				HubVersions: map[string]int64{"Document": 5},
				Records:     []api.RemoteRecord{remote},
			}, nil
		},
	}
	svc, store := newTestService(t, hub, nil)

	local, err := svc.SubmitLocalChange(ctx, "Document", "doc-1", models.OperationUpdate, json.RawMessage(`{"title":"node version"}`))
	require.NoError(t, err)

	session, err := svc.StartSession(ctx, models.DirectionPull, []string{"Document"})
	require.NoError(t, err)
	assert.Equal(t, models.StatusConflict, session.Status)
	assert.Equal(t, 1, session.ConflictsCount)

	conflicts, err := svc.ListUnresolvedConflicts(ctx)
	require.NoError(t, err)
	require.Len(t, conflicts, 1)
	assert.Equal(t, "doc-1", conflicts[0].RecordID)
	assert.JSONEq(t, `{"title":"node version"}`, string(conflicts[0].LocalData))
	assert.JSONEq(t, `{"title":"hub version"}`, string(conflicts[0].RemoteData))

	// Конфликтная локальная запись выбыла из очереди отправки
	parked, err := store.GetRecord(ctx, local.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusConflict, parked.Status)
}

func TestService_Pull_AutoResolveNewerWins(t *testing.T) {
	ctx := context.Background()
	remote := wireRecord(t, "Document", "doc-1", "hub", `{"title":"hub version"}`, 5, 0, time.Now().UTC().Add(time.Hour))
	hub := &HubClientMock{
		PullFunc: func(ctx context.Context, nodeID, modelName string, sinceVersion int64) (*api.PullResponse, error) {
			return &api.PullResponse{
				HubVersions: map[string]int64{"Document": 5},
				Records:     []api.RemoteRecord{remote},
			}, nil
		},
	}
	resolver := NewResolver()
	resolver.SetDefaultStrategy("Document", models.StrategyNewerWins)
	svc, store := newTestService(t, hub, resolver)

	_, err := svc.SubmitLocalChange(ctx, "Document", "doc-1", models.OperationUpdate, json.RawMessage(`{"title":"node version"}`))
	require.NoError(t, err)

	session, err := svc.StartSession(ctx, models.DirectionPull, []string{"Document"})
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, session.Status)
	assert.Equal(t, 1, session.ConflictsCount)

	// Удаленная версия новее и применена локально
	latest, err := store.GetLatestRecord(ctx, "Document", "doc-1")
	require.NoError(t, err)
	assert.Equal(t, remote.Checksum, latest.Checksum)

	resolved, err := store.ListConflicts(ctx, true)
	require.NoError(t, err)
	require.Len(t, resolved, 1)
	assert.Equal(t, "strategy:newer_wins", resolved[0].ResolvedBy)
	assert.NotEmpty(t, resolved[0].ResolutionData)
}

func TestService_Pull_KeepBothPreservesBothVersions(t *testing.T) {
	ctx := context.Background()
	remote := wireRecord(t, "Document", "doc-1", "node-b", `{"title":"their version"}`, 5, 0, time.Now().UTC())
	hub := &HubClientMock{
		PullFunc: func(ctx context.Context, nodeID, modelName string, sinceVersion int64) (*api.PullResponse, error) {
			return &api.PullResponse{
				HubVersions: map[string]int64{"Document": 5},
				Records:     []api.RemoteRecord{remote},
			}, nil
		},
	}
	resolver := NewResolver()
	resolver.SetDefaultStrategy("Document", models.StrategyKeepBoth)
	svc, store := newTestService(t, hub, resolver)

	_, err := svc.SubmitLocalChange(ctx, "Document", "doc-1", models.OperationUpdate, json.RawMessage(`{"title":"our version"}`))
	require.NoError(t, err)

	session, err := svc.StartSession(ctx, models.DirectionPull, []string{"Document"})
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, session.Status)

	// Локальная версия сохраняется под исходным id
	ours, err := store.GetLatestRecord(ctx, "Document", "doc-1")
	require.NoError(t, err)
	assert.JSONEq(t, `{"title":"our version"}`, string(ours.Data))
	assert.Equal(t, models.StatusPending, ours.Status)

	// Удаленная — под производным
	theirs, err := store.GetLatestRecord(ctx, "Document", "doc-1~node-b")
	require.NoError(t, err)
	assert.JSONEq(t, `{"title":"their version"}`, string(theirs.Data))

	resolved, err := store.ListConflicts(ctx, true)
	require.NoError(t, err)
	assert.Len(t, resolved, 1)
}

func TestService_Push_HubRefusesConflictingRecord(t *testing.T) {
	ctx := context.Background()
	hubState := wireRecord(t, "Document", "doc-1", "hub", `{"title":"hub version"}`, 9, 0, time.Now().UTC())
	hub := &HubClientMock{
		PushFunc: func(ctx context.Context, req api.PushRequest) (*api.PushResponse, error) {
			return &api.PushResponse{
				HubVersions:     map[string]int64{"Document": 9},
				ConflictRecords: []api.RemoteRecord{hubState},
				Conflicts:       1,
			}, nil
		},
	}
	svc, store := newTestService(t, hub, nil)

	local, err := svc.SubmitLocalChange(ctx, "Document", "doc-1", models.OperationUpdate, json.RawMessage(`{"title":"node version"}`))
	require.NoError(t, err)

	session, err := svc.StartSession(ctx, models.DirectionPush, nil)
	require.NoError(t, err)
	assert.Equal(t, models.StatusConflict, session.Status)
	assert.Equal(t, 1, session.ConflictsCount)

	conflicts, err := svc.ListUnresolvedConflicts(ctx)
	require.NoError(t, err)
	require.Len(t, conflicts, 1)

	parked, err := store.GetRecord(ctx, local.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusConflict, parked.Status)

	// Hub-версия обновлена: разрешение уедет уже с актуальной базой
	hubVersion, err := store.GetHubVersion(ctx, "Document")
	require.NoError(t, err)
	assert.Equal(t, int64(9), hubVersion)
}

func TestService_ApplyManualResolution(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(t, nil, nil)

	conflict := testConflict(models.StrategyManual)
	require.NoError(t, store.SaveConflict(ctx, conflict))

	_, err := svc.ApplyManualResolution(ctx, conflict.ID, nil, "operator")
	require.ErrorIs(t, err, ErrEmptyResolution)

	resolved, err := svc.ApplyManualResolution(ctx, conflict.ID, json.RawMessage(`{"title":"decided"}`), "operator")
	require.NoError(t, err)
	assert.True(t, resolved.Resolved)
	assert.Equal(t, "operator", resolved.ResolvedBy)
	assert.NotNil(t, resolved.ResolvedAt)
	assert.NotEmpty(t, resolved.ResolutionData)

	// Решение стало новым локальным изменением
	latest, err := store.GetLatestRecord(ctx, "Document", "doc-42")
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, latest.Status)
	assert.JSONEq(t, `{"title":"decided"}`, string(latest.Data))

	// Повторное разрешение запрещено
	_, err = svc.ApplyManualResolution(ctx, conflict.ID, json.RawMessage(`{"title":"again"}`), "operator")
	require.ErrorIs(t, err, storage.ErrConflictResolved)
}

func TestService_SessionLock(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, nil, nil)

	session, err := svc.BeginSession(ctx, models.DirectionPull, nil)
	require.NoError(t, err)

	_, err = svc.BeginSession(ctx, models.DirectionPull, nil)
	require.ErrorIs(t, err, ErrSessionActive)

	_, err = svc.CancelSession(ctx, session.ID)
	require.NoError(t, err)

	_, err = svc.BeginSession(ctx, models.DirectionPull, nil)
	require.NoError(t, err)
}

func TestService_CancelSession(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(t, nil, nil)

	session, err := svc.BeginSession(ctx, models.DirectionPush, nil)
	require.NoError(t, err)

	// Запись, взятая сессией в работу
	inFlight := &models.SyncRecord{
		ID:              "rec-1",
		NodeID:          "node-a",
		ModelName:       "Document",
		RecordID:        "doc-1",
		Operation:       models.OperationCreate,
		Status:          models.StatusInProgress,
		SessionID:       session.ID,
		Data:            json.RawMessage(`{}`),
		LocalVersion:    1,
		LocalModifiedAt: time.Now().UTC(),
	}
	require.NoError(t, store.SaveRecord(ctx, inFlight))

	cancelled, err := svc.CancelSession(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, cancelled.Status)
	assert.NotNil(t, cancelled.CompletedAt)

	// Запись возвращена в очередь отправки
	released, err := store.GetRecord(ctx, "rec-1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, released.Status)

	// Повторная отмена терминальной сессии запрещена
	_, err = svc.CancelSession(ctx, session.ID)
	require.ErrorIs(t, err, ErrSessionFinished)
}

func TestService_IngestRemoteBatch(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, nil, nil)

	session, err := svc.BeginSession(ctx, models.DirectionPull, nil)
	require.NoError(t, err)

	now := time.Now().UTC()
	// Пакет приходит в произвольном порядке версий
	batch := []api.RemoteRecord{
		wireRecord(t, "Document", "doc-2", "hub", `{"n":2}`, 2, 0, now),
		wireRecord(t, "Document", "doc-1", "hub", `{"n":1}`, 1, 0, now),
	}

	progress, err := svc.IngestRemoteBatch(ctx, session.ID, batch)
	require.NoError(t, err)
	assert.Equal(t, 2, progress.Processed)
	assert.Equal(t, 2, progress.Applied)
	assert.Equal(t, 0, progress.Conflicts)

	completed, err := svc.CompleteSession(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, completed.Status)

	// Завершенная сессия пакеты не принимает
	_, err = svc.IngestRemoteBatch(ctx, session.ID, batch)
	require.ErrorIs(t, err, ErrSessionNotOpen)
}

func TestService_StartSession_UnknownDirection(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, nil, nil)

	_, err := svc.StartSession(ctx, "sideways", nil)
	assert.Error(t, err)
}
