package view

import (
	"context"
	"sync"
	"time"
)

type entry struct {
	view    *View
	touched time.Time
}

// Store keeps live views in memory and forgets them after ttl of inactivity.
// At most limit views are held; limit <= 0 means no bound.
type Store struct {
	mu    sync.Mutex
	views map[string]*entry
	ttl   time.Duration
	limit int
	now   func() time.Time
}

func NewStore(ttl time.Duration, limit int) *Store {
	return &Store{
		views: make(map[string]*entry),
		ttl:   ttl,
		limit: limit,
		now:   time.Now,
	}
}

// Put stores v. When the store is full, expired views go first, then the
// least recently used one.
func (s *Store) Put(v *View) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.views[v.Token]; !ok && s.limit > 0 && len(s.views) >= s.limit {
		if s.sweepLocked() == 0 {
			s.evictOldestLocked()
		}
	}

	s.views[v.Token] = &entry{view: v, touched: s.now()}
}

func (s *Store) evictOldestLocked() {
	var (
		oldest  string
		touched time.Time
	)
	for token, e := range s.views {
		if oldest == "" || e.touched.Before(touched) {
			oldest, touched = token, e.touched
		}
	}
	if oldest != "" {
		delete(s.views, oldest)
	}
}

// Get returns a live view and extends its lifetime.
func (s *Store) Get(token string) (*View, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.views[token]
	if !ok {
		return nil, false
	}
	if s.now().Sub(e.touched) > s.ttl {
		delete(s.views, token)
		return nil, false
	}

	e.touched = s.now()
	return e.view, true
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.views)
}

// Sweep removes expired views and returns how many were removed.
func (s *Store) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.sweepLocked()
}

func (s *Store) sweepLocked() int {
	now := s.now()
	removed := 0
	for token, e := range s.views {
		if now.Sub(e.touched) > s.ttl {
			delete(s.views, token)
			removed++
		}
	}

	return removed
}

// Run sweeps every interval until ctx is done.
func (s *Store) Run(ctx context.Context, interval time.Duration, onSweep func(removed int)) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if n := s.Sweep(); n > 0 && onSweep != nil {
				onSweep(n)
			}
		}
	}
}
