package sync

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/syncpoint/internal/models"
)

func testConflict(strategy models.Strategy) *models.SyncConflict {
	return &models.SyncConflict{
		ID:               "conflict-1",
		ModelName:        "Document",
		RecordID:         "doc-42",
		LocalNodeID:      "node-a",
		RemoteSource:     "hub",
		Strategy:         strategy,
		LocalData:        json.RawMessage(`{"title":"local"}`),
		RemoteData:       json.RawMessage(`{"title":"remote"}`),
		LocalModifiedAt:  time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC),
		RemoteModifiedAt: time.Date(2025, 6, 1, 11, 0, 0, 0, time.UTC),
		LocalVersion:     5,
		RemoteVersion:    7,
		DetectedAt:       time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestResolver_NewerWins(t *testing.T) {
	r := NewResolver()

	// Удаленная сторона изменена позже
	res, err := r.Resolve(testConflict(models.StrategyNewerWins))
	require.NoError(t, err)
	assert.True(t, res.Resolved)
	assert.Equal(t, "remote", res.Winner)
	assert.JSONEq(t, `{"title":"remote"}`, string(res.Data))

	// Локальная сторона изменена позже
	conflict := testConflict(models.StrategyNewerWins)
	conflict.LocalModifiedAt = conflict.RemoteModifiedAt.Add(time.Hour)
	res, err = r.Resolve(conflict)
	require.NoError(t, err)
	assert.Equal(t, "local", res.Winner)
	assert.JSONEq(t, `{"title":"local"}`, string(res.Data))
}

func TestResolver_NewerWins_EqualTimestamps(t *testing.T) {
	r := NewResolver()

	// При равных временах исход детерминирован: решает идентификатор источника
	conflict := testConflict(models.StrategyNewerWins)
	conflict.LocalModifiedAt = conflict.RemoteModifiedAt

	res, err := r.Resolve(conflict)
	require.NoError(t, err)
	// "hub" < "node-a", удаленная сторона не новее
	assert.Equal(t, "local", res.Winner)
}

func TestResolver_OlderWins(t *testing.T) {
	r := NewResolver()

	res, err := r.Resolve(testConflict(models.StrategyOlderWins))
	require.NoError(t, err)
	assert.True(t, res.Resolved)
	assert.Equal(t, "local", res.Winner)
}

func TestResolver_FixedPriority(t *testing.T) {
	r := NewResolver()

	res, err := r.Resolve(testConflict(models.StrategyHubWins))
	require.NoError(t, err)
	assert.Equal(t, "remote", res.Winner)
	assert.JSONEq(t, `{"title":"remote"}`, string(res.Data))

	res, err = r.Resolve(testConflict(models.StrategyNodeWins))
	require.NoError(t, err)
	assert.Equal(t, "local", res.Winner)
	assert.JSONEq(t, `{"title":"local"}`, string(res.Data))
}

func TestResolver_Merge(t *testing.T) {
	r := NewResolver()
	r.RegisterMerge("Document", func(local, remote json.RawMessage) (json.RawMessage, error) {
		return json.RawMessage(`{"title":"merged"}`), nil
	})

	res, err := r.Resolve(testConflict(models.StrategyMerge))
	require.NoError(t, err)
	assert.True(t, res.Resolved)
	assert.Equal(t, "both", res.Winner)
	assert.JSONEq(t, `{"title":"merged"}`, string(res.Data))
}

func TestResolver_Merge_NoFuncFallsBackToManual(t *testing.T) {
	r := NewResolver()

	res, err := r.Resolve(testConflict(models.StrategyMerge))
	require.NoError(t, err)
	assert.False(t, res.Resolved)
	assert.Equal(t, models.StrategyManual, res.Strategy)
}

func TestResolver_Merge_FuncError(t *testing.T) {
	r := NewResolver()
	r.RegisterMerge("Document", func(local, remote json.RawMessage) (json.RawMessage, error) {
		return nil, fmt.Errorf("incompatible schemas")
	})

	_, err := r.Resolve(testConflict(models.StrategyMerge))
	assert.Error(t, err)
}

func TestResolver_KeepBoth(t *testing.T) {
	r := NewResolver()

	res, err := r.Resolve(testConflict(models.StrategyKeepBoth))
	require.NoError(t, err)
	assert.True(t, res.Resolved)
	assert.Equal(t, "both", res.Winner)
	// Проигравшая (удаленная) версия сохраняется под производным id
	assert.Equal(t, "doc-42~hub", res.DerivedRecordID)
	assert.JSONEq(t, `{"title":"remote"}`, string(res.DerivedData))
}

func TestResolver_Manual(t *testing.T) {
	r := NewResolver()

	res, err := r.Resolve(testConflict(models.StrategyManual))
	require.NoError(t, err)
	assert.False(t, res.Resolved)
}

func TestResolver_DefaultStrategy(t *testing.T) {
	r := NewResolver()

	// Без конфигурации — manual: данные не отбрасываются молча
	assert.Equal(t, models.StrategyManual, r.DefaultStrategy("Document"))

	r.SetDefaultStrategy("Document", models.StrategyNewerWins)
	assert.Equal(t, models.StrategyNewerWins, r.DefaultStrategy("Document"))
	assert.Equal(t, models.StrategyManual, r.DefaultStrategy("Invoice"))
}

func TestResolver_EmptyStrategyUsesModelDefault(t *testing.T) {
	r := NewResolver()
	r.SetDefaultStrategy("Document", models.StrategyHubWins)

	conflict := testConflict("")
	res, err := r.Resolve(conflict)
	require.NoError(t, err)
	assert.Equal(t, models.StrategyHubWins, res.Strategy)
	assert.Equal(t, "remote", res.Winner)
}

func TestResolver_UnknownStrategy(t *testing.T) {
	r := NewResolver()

	_, err := r.Resolve(testConflict("coin_flip"))
	assert.Error(t, err)
}

func TestDeriveRecordID(t *testing.T) {
	assert.Equal(t, "doc-42~node-b", DeriveRecordID("doc-42", "node-b"))
	// Детерминирован: повторный вызов дает тот же id
	assert.Equal(t, DeriveRecordID("doc-42", "node-b"), DeriveRecordID("doc-42", "node-b"))
}

func TestAuditResolution(t *testing.T) {
	conflict := testConflict(models.StrategyNewerWins)
	r := NewResolver()
	res, err := r.Resolve(conflict)
	require.NoError(t, err)

	resolvedAt := time.Date(2025, 6, 1, 13, 0, 0, 0, time.UTC)
	audit, err := AuditResolution(conflict, res, resolvedAt)
	require.NoError(t, err)

	var parsed map[string]any
	require.NoError(t, json.Unmarshal(audit, &parsed))
	assert.Equal(t, "newer_wins", parsed["strategy"])
	assert.Equal(t, "remote", parsed["winner"])
	assert.Equal(t, float64(5), parsed["local_version"])
	assert.Equal(t, float64(7), parsed["remote_version"])

	// Воспроизводимость: тот же конфликт и исход дают тот же audit
	again, err := AuditResolution(conflict, res, resolvedAt)
	require.NoError(t, err)
	assert.Equal(t, string(audit), string(again))
}
