// Package iocache persists scoring runs so earlier results can be inspected and exported.
package iocache

import (
	"sync"

	"github.com/huangsam/tweetstats/internal/contract"
)

// HistoryStoreManager owns the run history store for the process.
type HistoryStoreManager struct {
	sync.RWMutex
	history contract.HistoryStore
}

var _ contract.StoreManager = &HistoryStoreManager{} // Compile-time check

// GetHistoryStore returns the history store, or nil when tracking is off.
func (m *HistoryStoreManager) GetHistoryStore() contract.HistoryStore {
	m.RLock()
	defer m.RUnlock()
	return m.history
}
