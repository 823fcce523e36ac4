package services

import "sync"

// periodLockManager hands out one RWMutex per accounting period. Postings
// hold the read lock for the duration of the save, period transitions hold
// the write lock, so a close can never race an in-flight posting into the
// same date range.
type periodLockManager struct {
	mu    sync.Mutex
	locks map[string]*sync.RWMutex
}

func newPeriodLockManager() *periodLockManager {
	return &periodLockManager{locks: make(map[string]*sync.RWMutex)}
}

func (m *periodLockManager) lockFor(periodID string) *sync.RWMutex {
	m.mu.Lock()
	defer m.mu.Unlock()
	lock, ok := m.locks[periodID]
	if !ok {
		lock = &sync.RWMutex{}
		m.locks[periodID] = lock
	}
	return lock
}

// forget drops the lock of a deleted period.
func (m *periodLockManager) forget(periodID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.locks, periodID)
}
