package iocache

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/huangsam/tweetstats/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resetGlobals gives each test a fresh manager.
func resetGlobals(t *testing.T) {
	t.Helper()
	Manager = &HistoryStoreManager{}
	initOnce = sync.Once{}
	closeOnce = sync.Once{}
	t.Cleanup(func() {
		CloseStores()
		Manager = &HistoryStoreManager{}
		initOnce = sync.Once{}
		closeOnce = sync.Once{}
	})
}

func TestInitStores(t *testing.T) {
	t.Run("none backend", func(t *testing.T) {
		resetGlobals(t)
		require.NoError(t, InitStores(schema.NoneBackend, ""))
		assert.Nil(t, Manager.GetHistoryStore())
	})

	t.Run("sqlite backend", func(t *testing.T) {
		resetGlobals(t)
		dbPath := filepath.Join(t.TempDir(), "history.db")
		require.NoError(t, InitStores(schema.SQLiteBackend, dbPath))
		require.NotNil(t, Manager.GetHistoryStore())

		_, err := os.Stat(dbPath)
		assert.NoError(t, err, "database file is created")
	})

	t.Run("idempotent", func(t *testing.T) {
		resetGlobals(t)
		dbPath := filepath.Join(t.TempDir(), "history.db")
		require.NoError(t, InitStores(schema.SQLiteBackend, dbPath))
		first := Manager.GetHistoryStore()
		require.NoError(t, InitStores(schema.SQLiteBackend, filepath.Join(t.TempDir(), "other.db")))
		assert.Same(t, first, Manager.GetHistoryStore())
	})

	t.Run("bad backend", func(t *testing.T) {
		resetGlobals(t)
		err := InitStores(schema.DatabaseBackend("oracle"), "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to initialize history store")
		assert.Nil(t, Manager.GetHistoryStore())
	})
}

func TestManagerConcurrency(t *testing.T) {
	resetGlobals(t)
	require.NoError(t, InitStores(schema.SQLiteBackend, filepath.Join(t.TempDir(), "history.db")))

	runID, err := Manager.GetHistoryStore().BeginRun(time.Now(), nil)
	require.NoError(t, err)

	const numGoroutines = 10
	var wg sync.WaitGroup
	for range numGoroutines {
		wg.Go(func() {
			store := Manager.GetHistoryStore()
			if !assert.NotNil(t, store) {
				return
			}
			assert.NoError(t, store.RecordCompanyScores(runID, time.Now(), sampleRecord("acme")))
		})
	}
	wg.Wait()

	scores, err := Manager.GetHistoryStore().GetAllCompanyScores()
	require.NoError(t, err)
	assert.Len(t, scores, numGoroutines)
}

func TestGetHistoryStatus(t *testing.T) {
	status, err := GetHistoryStatus(schema.NoneBackend, "")
	require.NoError(t, err)
	assert.False(t, status.Connected)

	status, err = GetHistoryStatus(schema.SQLiteBackend, filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	assert.True(t, status.Connected)
	assert.Contains(t, status.TableSizes, companyScoresTable)
}

func TestClearHistory(t *testing.T) {
	t.Run("sqlite removes the file", func(t *testing.T) {
		dbPath := filepath.Join(t.TempDir(), "history.db")
		store, err := NewHistoryStore(schema.SQLiteBackend, dbPath)
		require.NoError(t, err)
		require.NoError(t, store.Close())

		require.NoError(t, ClearHistory(schema.SQLiteBackend, dbPath))
		_, err = os.Stat(dbPath)
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("sqlite missing file is fine", func(t *testing.T) {
		assert.NoError(t, ClearHistory(schema.SQLiteBackend, filepath.Join(t.TempDir(), "absent.db")))
	})

	t.Run("none backend", func(t *testing.T) {
		assert.NoError(t, ClearHistory(schema.NoneBackend, ""))
	})

	t.Run("unsupported backend", func(t *testing.T) {
		err := ClearHistory(schema.DatabaseBackend("oracle"), "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported history backend")
	})
}
