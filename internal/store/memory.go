package store

import (
	"sync"

	"github.com/ronniel12/food-sales-dashboard/internal/model"
)

// MemoryStore holds the current dataset snapshot and the transient
// operational flags. There is no persistence behind it: a restart starts
// empty and the next load rebuilds everything.
type MemoryStore struct {
	mu        sync.RWMutex
	dataset   *model.Dataset
	loadError string

	importing bool
	exporting bool
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Dataset returns the current snapshot, nil before the first successful
// load. Callers treat the snapshot as read-only.
func (s *MemoryStore) Dataset() *model.Dataset {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dataset
}

// SetDataset swaps in a new snapshot and clears any recorded load failure.
func (s *MemoryStore) SetDataset(ds *model.Dataset) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dataset = ds
	s.loadError = ""
}

// SetLoadFailure records a failed load. A live snapshot stays live: the
// failure is only surfaced on status when there is nothing to show instead.
func (s *MemoryStore) SetLoadFailure(err error) {
	if err == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.dataset != nil {
		return
	}
	s.loadError = err.Error()
}

// Initialized reports whether a snapshot has been loaded.
func (s *MemoryStore) Initialized() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dataset != nil
}

// LoadError returns the recorded load failure, empty when healthy.
func (s *MemoryStore) LoadError() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadError
}

// CategoryCount returns the number of categories in the snapshot.
func (s *MemoryStore) CategoryCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.dataset == nil {
		return 0
	}
	return len(s.dataset.Categories)
}

// Clear drops the snapshot and any load failure.
func (s *MemoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dataset = nil
	s.loadError = ""
}

// BeginImport claims the single import slot. It returns false when a load
// is already running; the caller must not start another.
func (s *MemoryStore) BeginImport() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.importing {
		return false
	}
	s.importing = true
	return true
}

// EndImport releases the import slot.
func (s *MemoryStore) EndImport() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.importing = false
}

// ImportInProgress reports whether a load is running.
func (s *MemoryStore) ImportInProgress() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.importing
}

// BeginExport claims the single export slot. It returns false when an
// export is already running; concurrent export requests are rejected.
func (s *MemoryStore) BeginExport() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.exporting {
		return false
	}
	s.exporting = true
	return true
}

// EndExport releases the export slot. It runs on every exit path of an
// export, success or failure.
func (s *MemoryStore) EndExport() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.exporting = false
}

// ExportInProgress reports whether an export is running.
func (s *MemoryStore) ExportInProgress() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.exporting
}
