// Package session keeps uploaded datasets in memory for the lifetime of the
// process. Each dataset lives under its own ID with its table and the
// classification computed at load; sessions never share state, and nothing
// here persists beyond the process.
package session

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"datalens/domain/table"
)

// Dataset is one loaded table plus the metadata derived at load time.
// The classification is computed once here and reused for every filter
// change, since filtering cannot change column types.
type Dataset struct {
	ID             string
	Name           string
	UploadedAt     time.Time
	Table          *table.Table
	Classification table.Classification

	// EnergySchema marks datasets validated against the energy variant's
	// required columns at upload.
	EnergySchema bool
}

// Store is a concurrency-safe in-memory dataset registry.
type Store struct {
	mu       sync.RWMutex
	datasets map[string]*Dataset
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{datasets: make(map[string]*Dataset)}
}

// Put registers a dataset under a fresh ID and returns it. A failed upload
// never reaches Put, so previously loaded datasets are always retained.
func (s *Store) Put(name string, t *table.Table, cls table.Classification, energySchema bool) *Dataset {
	ds := &Dataset{
		ID:             uuid.NewString(),
		Name:           name,
		UploadedAt:     time.Now(),
		Table:          t,
		Classification: cls,
		EnergySchema:   energySchema,
	}
	s.mu.Lock()
	s.datasets[ds.ID] = ds
	s.mu.Unlock()
	return ds
}

// Get looks up a dataset by ID.
func (s *Store) Get(id string) (*Dataset, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ds, ok := s.datasets[id]
	return ds, ok
}

// Delete removes a dataset.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	delete(s.datasets, id)
	s.mu.Unlock()
}

// List returns all datasets, newest first.
func (s *Store) List() []*Dataset {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Dataset, 0, len(s.datasets))
	for _, ds := range s.datasets {
		out = append(out, ds)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].UploadedAt.After(out[j].UploadedAt)
	})
	return out
}

// Len returns the number of stored datasets.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.datasets)
}
