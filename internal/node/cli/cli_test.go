package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/syncpoint/internal/models"
	"github.com/iudanet/syncpoint/internal/node/iocli"
	"github.com/iudanet/syncpoint/internal/node/queue"
	"github.com/iudanet/syncpoint/internal/node/sync"
)

func newTestCli(syncMock *sync.ServiceMock, queueMock *queue.ServiceMock, input string) (*Cli, *strings.Builder) {
	out := &strings.Builder{}
	io := &iocli.IOMock{
		PrintlnFunc: func(a ...any) { fmt.Fprintln(out, a...) },
		PrintfFunc:  func(format string, a ...any) { fmt.Fprintf(out, format, a...) },
		ReadInputFunc: func(prompt string) (string, error) {
			return input, nil
		},
		WriteFunc: func(p []byte) (int, error) { return out.Write(p) },
	}
	return New("node-a", syncMock, queueMock, io), out
}

func TestCli_UnknownCommand(t *testing.T) {
	cli, out := newTestCli(&sync.ServiceMock{}, &queue.ServiceMock{}, "")

	err := cli.Run(context.Background(), "teleport", nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "teleport")
	assert.Contains(t, out.String(), "Usage:")
}

func TestCli_Help(t *testing.T) {
	cli, out := newTestCli(&sync.ServiceMock{}, &queue.ServiceMock{}, "")

	require.NoError(t, cli.Run(context.Background(), "help", nil))
	assert.Contains(t, out.String(), "syncpoint-node")
}

func TestCli_Submit(t *testing.T) {
	syncMock := &sync.ServiceMock{
		SubmitLocalChangeFunc: func(ctx context.Context, modelName, recordID string, op models.Operation, data json.RawMessage) (*models.SyncRecord, error) {
			return &models.SyncRecord{
				ModelName:    modelName,
				RecordID:     recordID,
				Operation:    op,
				LocalVersion: 7,
			}, nil
		},
	}
	cli, out := newTestCli(syncMock, &queue.ServiceMock{}, "")

	err := cli.Run(context.Background(), "submit", []string{
		"-model", "Document", "-record", "doc-1", "-op", "create", "-data", `{"title":"x"}`,
	})

	require.NoError(t, err)
	calls := syncMock.SubmitLocalChangeCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, "Document", calls[0].ModelName)
	assert.Equal(t, "doc-1", calls[0].RecordID)
	assert.Equal(t, models.OperationCreate, calls[0].Op)
	assert.JSONEq(t, `{"title":"x"}`, string(calls[0].Data))
	assert.Contains(t, out.String(), "version 7")
}

func TestCli_Submit_InteractivePayload(t *testing.T) {
	syncMock := &sync.ServiceMock{
		SubmitLocalChangeFunc: func(ctx context.Context, modelName, recordID string, op models.Operation, data json.RawMessage) (*models.SyncRecord, error) {
			return &models.SyncRecord{ModelName: modelName, RecordID: recordID, Operation: op, LocalVersion: 1}, nil
		},
	}
	cli, _ := newTestCli(syncMock, &queue.ServiceMock{}, `{"title":"typed"}`)

	err := cli.Run(context.Background(), "submit", []string{"-model", "Document", "-record", "doc-1"})

	require.NoError(t, err)
	calls := syncMock.SubmitLocalChangeCalls()
	require.Len(t, calls, 1)
	assert.JSONEq(t, `{"title":"typed"}`, string(calls[0].Data))
}

func TestCli_Sync(t *testing.T) {
	syncMock := &sync.ServiceMock{
		StartSessionFunc: func(ctx context.Context, direction models.Direction, modules []string) (*models.SyncSession, error) {
			return &models.SyncSession{
				ID:               "session-1",
				Direction:        direction,
				Modules:          modules,
				Status:           models.StatusCompleted,
				ProcessedRecords: 3,
				AppliedRecords:   3,
			}, nil
		},
	}
	cli, out := newTestCli(syncMock, &queue.ServiceMock{}, "")

	err := cli.Run(context.Background(), "sync", []string{"-direction", "push", "-modules", "Document,Invoice"})

	require.NoError(t, err)
	calls := syncMock.StartSessionCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, models.DirectionPush, calls[0].Direction)
	assert.Equal(t, []string{"Document", "Invoice"}, calls[0].Modules)
	assert.Contains(t, out.String(), "session-1 finished: completed")
}

func TestCli_Sync_ConflictHint(t *testing.T) {
	syncMock := &sync.ServiceMock{
		StartSessionFunc: func(ctx context.Context, direction models.Direction, modules []string) (*models.SyncSession, error) {
			return &models.SyncSession{
				ID:             "session-2",
				Status:         models.StatusConflict,
				ConflictsCount: 1,
			}, nil
		},
	}
	cli, out := newTestCli(syncMock, &queue.ServiceMock{}, "")

	require.NoError(t, cli.Run(context.Background(), "sync", nil))
	assert.Contains(t, out.String(), "Unresolved conflicts remain")
}

func TestCli_Status(t *testing.T) {
	syncMock := &sync.ServiceMock{
		PendingChangesFunc: func(ctx context.Context) ([]*models.VersionVector, error) {
			return []*models.VersionVector{
				{ModelName: "Document", Version: 5, LastSyncedVersion: 3},
			}, nil
		},
		ListUnresolvedConflictsFunc: func(ctx context.Context) ([]*models.SyncConflict, error) {
			return []*models.SyncConflict{{ID: "conflict-1"}}, nil
		},
	}
	queueMock := &queue.ServiceMock{
		ListFunc: func(ctx context.Context, status models.Status) ([]*models.OfflineOperation, error) {
			return []*models.OfflineOperation{{ID: "op-1"}}, nil
		},
	}
	cli, out := newTestCli(syncMock, queueMock, "")

	require.NoError(t, cli.Run(context.Background(), "status", nil))

	text := out.String()
	assert.Contains(t, text, "Document")
	assert.Contains(t, text, "2 change(s) waiting for push")
	assert.Contains(t, text, "1 unresolved conflict(s)")
	assert.Contains(t, text, "1 operation(s) in the offline queue")
}

func TestCli_Conflicts_Empty(t *testing.T) {
	syncMock := &sync.ServiceMock{
		ListUnresolvedConflictsFunc: func(ctx context.Context) ([]*models.SyncConflict, error) {
			return nil, nil
		},
	}
	cli, out := newTestCli(syncMock, &queue.ServiceMock{}, "")

	require.NoError(t, cli.Run(context.Background(), "conflicts", nil))
	assert.Contains(t, out.String(), "No unresolved conflicts")
}

func TestCli_Resolve(t *testing.T) {
	syncMock := &sync.ServiceMock{
		ApplyManualResolutionFunc: func(ctx context.Context, conflictID string, data json.RawMessage, resolvedBy string) (*models.SyncConflict, error) {
			return &models.SyncConflict{
				ID:        conflictID,
				ModelName: "Document",
				RecordID:  "doc-1",
				Resolved:  true,
			}, nil
		},
	}
	cli, out := newTestCli(syncMock, &queue.ServiceMock{}, "")

	err := cli.Run(context.Background(), "resolve", []string{
		"-id", "conflict-1", "-data", `{"title":"decided"}`, "-by", "operator",
	})

	require.NoError(t, err)
	calls := syncMock.ApplyManualResolutionCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, "conflict-1", calls[0].ConflictID)
	assert.Equal(t, "operator", calls[0].ResolvedBy)
	assert.Contains(t, out.String(), "resolved")
}

func TestCli_Resolve_RequiresID(t *testing.T) {
	cli, _ := newTestCli(&sync.ServiceMock{}, &queue.ServiceMock{}, "")

	err := cli.Run(context.Background(), "resolve", []string{"-data", `{}`})
	assert.Error(t, err)
}

func TestCli_QueueList(t *testing.T) {
	queueMock := &queue.ServiceMock{
		ListFunc: func(ctx context.Context, status models.Status) ([]*models.OfflineOperation, error) {
			return []*models.OfflineOperation{{
				ID:            "op-1",
				OperationType: models.OperationTypeSyncPush,
				Priority:      100,
				MaxRetries:    5,
				RetryCount:    2,
				ScheduledFor:  time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
				LastError:     "hub is down",
			}}, nil
		},
	}
	cli, out := newTestCli(&sync.ServiceMock{}, queueMock, "")

	require.NoError(t, cli.Run(context.Background(), "queue", []string{"list"}))

	text := out.String()
	assert.Contains(t, text, "op-1")
	assert.Contains(t, text, "retries=2/5")
	assert.Contains(t, text, "hub is down")
}

func TestCli_QueueDrain(t *testing.T) {
	queueMock := &queue.ServiceMock{
		DrainFunc: func(ctx context.Context, limit int) (*queue.DrainResult, error) {
			return &queue.DrainResult{Completed: 2, Retried: 1}, nil
		},
	}
	cli, out := newTestCli(&sync.ServiceMock{}, queueMock, "")

	require.NoError(t, cli.Run(context.Background(), "queue", []string{"drain", "-limit", "10"}))

	calls := queueMock.DrainCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, 10, calls[0].Limit)
	assert.Contains(t, out.String(), "Delivered: 2")
	assert.Contains(t, out.String(), "Rescheduled: 1")
}

func TestCli_Queue_UnknownSubcommand(t *testing.T) {
	cli, _ := newTestCli(&sync.ServiceMock{}, &queue.ServiceMock{}, "")

	err := cli.Run(context.Background(), "queue", []string{"flush"})
	assert.Error(t, err)
}
