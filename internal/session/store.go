// Package session keeps the most recent detection result per automation
// session. Each Put fully replaces the prior snapshot; there is no
// incremental patching.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/steipete/peekaboo-go/internal/model"
	"github.com/steipete/peekaboo-go/internal/operr"
)

// DefaultTTL is how long an untouched session survives before the
// next access sweeps it.
const DefaultTTL = 10 * time.Minute

type entry struct {
	// writeMu enforces single-writer discipline per session id: two
	// concurrent detections for the same id serialize here instead of
	// racing on the snapshot.
	writeMu sync.Mutex
	result  *model.DetectionResult
	touched time.Time
}

// Store is the keyed session store.
type Store struct {
	mu      sync.RWMutex
	entries map[string]*entry
	ttl     time.Duration
	now     func() time.Time
}

// NewStore creates a store with the given eviction TTL.
// ttl <= 0 uses DefaultTTL.
func NewStore(ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{
		entries: make(map[string]*entry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Create registers a new session and returns its id.
func (s *Store) Create() string {
	id := uuid.NewString()
	s.mu.Lock()
	s.entries[id] = &entry{touched: s.now()}
	s.mu.Unlock()
	return id
}

// Put stores the detection result for the session, creating the session
// if needed (a detection without a prior session id creates one
// implicitly). The snapshot is replaced whole.
func (s *Store) Put(id string, result *model.DetectionResult) error {
	if id == "" {
		return operr.New(operr.InvalidInput, "store detection result", "empty session id")
	}
	s.mu.Lock()
	e, ok := s.entries[id]
	if !ok {
		e = &entry{}
		s.entries[id] = e
	}
	s.mu.Unlock()

	e.writeMu.Lock()
	s.mu.Lock()
	e.result = result
	e.touched = s.now()
	s.mu.Unlock()
	e.writeMu.Unlock()

	s.sweep()
	return nil
}

// Get returns the session's last detection result. ok is false when the
// session does not exist, holds no result yet, or was evicted.
func (s *Store) Get(id string) (*model.DetectionResult, bool) {
	s.mu.RLock()
	e, ok := s.entries[id]
	var (
		result  *model.DetectionResult
		touched time.Time
	)
	if ok {
		result = e.result
		touched = e.touched
	}
	s.mu.RUnlock()
	if !ok || result == nil {
		return nil, false
	}
	if s.now().Sub(touched) > s.ttl {
		s.mu.Lock()
		delete(s.entries, id)
		s.mu.Unlock()
		return nil, false
	}
	return result, true
}

// Len returns the number of live sessions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// sweep drops sessions idle past the TTL. Runs opportunistically on Put.
func (s *Store) sweep() {
	cutoff := s.now().Add(-s.ttl)
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, e := range s.entries {
		if e.touched.Before(cutoff) {
			delete(s.entries, id)
		}
	}
}
