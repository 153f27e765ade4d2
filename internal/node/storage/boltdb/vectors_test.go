package boltdb

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/syncpoint/internal/node/storage"
)

// createTestStorage создает временное хранилище для тестов
func createTestStorage(t *testing.T) *Storage {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := New(context.Background(), dbPath)
	require.NoError(t, err)
	require.NotNil(t, store)

	t.Cleanup(func() {
		require.NoError(t, store.Close())
	})

	return store
}

func TestStorage_Bump(t *testing.T) {
	ctx := context.Background()
	store := createTestStorage(t)

	// Vector создается лениво: первый bump дает версию 1
	v1, err := store.Bump(ctx, "node-a", "Document")
	require.NoError(t, err)
	assert.Equal(t, int64(1), v1)

	v2, err := store.Bump(ctx, "node-a", "Document")
	require.NoError(t, err)
	assert.Equal(t, int64(2), v2)

	// Другая модель имеет независимый счетчик
	other, err := store.Bump(ctx, "node-a", "Invoice")
	require.NoError(t, err)
	assert.Equal(t, int64(1), other)

	vector, err := store.GetVector(ctx, "node-a", "Document")
	require.NoError(t, err)
	assert.Equal(t, int64(2), vector.Version)
	assert.Equal(t, int64(2), vector.TotalRecords)
	assert.Equal(t, int64(2), vector.PendingChanges)
	assert.False(t, vector.LastModified.IsZero())
}

// TestStorage_Bump_Concurrent проверяет строгую монотонность версий
// при конкурентных инкрементах: значения не повторяются и не пропускаются
func TestStorage_Bump_Concurrent(t *testing.T) {
	ctx := context.Background()
	store := createTestStorage(t)

	const workers = 10
	const bumpsPerWorker = 20

	var mu sync.Mutex
	seen := make(map[int64]bool)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < bumpsPerWorker; j++ {
				version, err := store.Bump(ctx, "node-a", "Document")
				assert.NoError(t, err)

				mu.Lock()
				assert.False(t, seen[version], "version %d returned twice", version)
				seen[version] = true
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	// Все версии от 1 до workers*bumpsPerWorker выданы ровно по одному разу
	assert.Len(t, seen, workers*bumpsPerWorker)

	vector, err := store.GetVector(ctx, "node-a", "Document")
	require.NoError(t, err)
	assert.Equal(t, int64(workers*bumpsPerWorker), vector.Version)
}

// TestStorage_Bump_DurableAcrossReopen проверяет, что версии
// не переиспользуются после рестарта процесса
func TestStorage_Bump_DurableAcrossReopen(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := New(ctx, dbPath)
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		_, err := store.Bump(ctx, "node-a", "Document")
		require.NoError(t, err)
	}
	require.NoError(t, store.Close())

	// Повторное открытие того же файла
	reopened, err := New(ctx, dbPath)
	require.NoError(t, err)
	defer func() {
		require.NoError(t, reopened.Close())
	}()

	version, err := reopened.Bump(ctx, "node-a", "Document")
	require.NoError(t, err)
	assert.Equal(t, int64(6), version)
}

func TestStorage_MarkSynced(t *testing.T) {
	ctx := context.Background()
	store := createTestStorage(t)

	for i := 0; i < 3; i++ {
		_, err := store.Bump(ctx, "node-a", "Document")
		require.NoError(t, err)
	}

	err := store.MarkSynced(ctx, "node-a", "Document", 3)
	require.NoError(t, err)

	vector, err := store.GetVector(ctx, "node-a", "Document")
	require.NoError(t, err)
	assert.Equal(t, int64(3), vector.LastSyncedVersion)
	assert.Equal(t, int64(0), vector.PendingCount())
	assert.False(t, vector.LastSynced.IsZero())
}

// TestStorage_MarkSynced_Idempotent проверяет идемпотентность при повторах:
// подтверждение меньшей версии не откатывает last_synced_version
func TestStorage_MarkSynced_Idempotent(t *testing.T) {
	ctx := context.Background()
	store := createTestStorage(t)

	for i := 0; i < 5; i++ {
		_, err := store.Bump(ctx, "node-a", "Document")
		require.NoError(t, err)
	}

	require.NoError(t, store.MarkSynced(ctx, "node-a", "Document", 4))

	// Повторная доставка старого подтверждения
	require.NoError(t, store.MarkSynced(ctx, "node-a", "Document", 2))

	vector, err := store.GetVector(ctx, "node-a", "Document")
	require.NoError(t, err)
	assert.Equal(t, int64(4), vector.LastSyncedVersion)
	assert.Equal(t, int64(1), vector.PendingCount())
}

// TestStorage_MarkSynced_AboveVersion проверяет инвариант
// last_synced_version <= version
func TestStorage_MarkSynced_AboveVersion(t *testing.T) {
	ctx := context.Background()
	store := createTestStorage(t)

	_, err := store.Bump(ctx, "node-a", "Document")
	require.NoError(t, err)

	err = store.MarkSynced(ctx, "node-a", "Document", 10)
	assert.Error(t, err)
}

func TestStorage_MarkSynced_VectorNotFound(t *testing.T) {
	ctx := context.Background()
	store := createTestStorage(t)

	err := store.MarkSynced(ctx, "node-a", "Unknown", 1)
	assert.ErrorIs(t, err, storage.ErrVectorNotFound)
}

func TestStorage_GetVector_NotFound(t *testing.T) {
	ctx := context.Background()
	store := createTestStorage(t)

	_, err := store.GetVector(ctx, "node-a", "Unknown")
	assert.ErrorIs(t, err, storage.ErrVectorNotFound)
}

func TestStorage_ListVectors(t *testing.T) {
	ctx := context.Background()
	store := createTestStorage(t)

	_, err := store.Bump(ctx, "node-a", "Document")
	require.NoError(t, err)
	_, err = store.Bump(ctx, "node-a", "Invoice")
	require.NoError(t, err)
	_, err = store.Bump(ctx, "node-b", "Document")
	require.NoError(t, err)

	vectors, err := store.ListVectors(ctx, "node-a")
	require.NoError(t, err)
	assert.Len(t, vectors, 2)

	for _, v := range vectors {
		assert.Equal(t, "node-a", v.NodeID)
	}
}

func TestStorage_Closed(t *testing.T) {
	ctx := context.Background()
	store := createTestStorage(t)
	require.NoError(t, store.Close())
	store.db = nil

	_, err := store.Bump(ctx, "node-a", "Document")
	assert.ErrorIs(t, err, storage.ErrStorageClosed)
}
