package adapters

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

type codeEntry struct {
	code    string
	expires time.Time
}

// MemoryCodeStore keeps phone verification codes in memory. It is safe for concurrent use.
type MemoryCodeStore struct {
	ttl           time.Duration
	sweepInterval time.Duration
	now           func() time.Time

	mux   sync.Mutex
	codes map[string]codeEntry
}

// NewMemoryCodeStore creates a code store whose entries expire after the given ttl.
// Expired entries are removed every sweepInterval once the background jobs are started.
func NewMemoryCodeStore(ttl, sweepInterval time.Duration) *MemoryCodeStore {
	return &MemoryCodeStore{
		ttl:           ttl,
		sweepInterval: sweepInterval,
		now:           time.Now,
		codes:         make(map[string]codeEntry),
	}
}

// Put stores the code for the given phone number, replacing any previous code.
func (s *MemoryCodeStore) Put(phone, code string) {
	s.mux.Lock()
	defer s.mux.Unlock()

	s.codes[phone] = codeEntry{code: code, expires: s.now().Add(s.ttl)}
}

// Get returns the code of the given phone number. Expired codes are reported as missing.
func (s *MemoryCodeStore) Get(phone string) (string, bool) {
	s.mux.Lock()
	defer s.mux.Unlock()

	entry, ok := s.codes[phone]
	if !ok {
		return "", false
	}
	if !s.now().Before(entry.expires) {
		delete(s.codes, phone)
		return "", false
	}

	return entry.code, true
}

// Delete removes the code of the given phone number.
func (s *MemoryCodeStore) Delete(phone string) {
	s.mux.Lock()
	defer s.mux.Unlock()

	delete(s.codes, phone)
}

// Len returns the number of stored codes, including expired ones that were not swept yet.
func (s *MemoryCodeStore) Len() int {
	s.mux.Lock()
	defer s.mux.Unlock()

	return len(s.codes)
}

// Sweep removes all expired codes and returns how many were removed.
func (s *MemoryCodeStore) Sweep() int {
	s.mux.Lock()
	defer s.mux.Unlock()

	now := s.now()
	removed := 0
	for phone, entry := range s.codes {
		if !now.Before(entry.expires) {
			delete(s.codes, phone)
			removed++
		}
	}

	return removed
}

// StartBackgroundJobs sweeps expired codes until the context is cancelled.
func (s *MemoryCodeStore) StartBackgroundJobs(ctx context.Context) {
	if s.sweepInterval <= 0 {
		return
	}

	go func() {
		ticker := time.NewTicker(s.sweepInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				slog.Debug("verification code sweeper stopped")
				return
			case <-ticker.C:
				if removed := s.Sweep(); removed > 0 {
					slog.Debug("removed expired verification codes", "count", removed, "remaining", s.Len())
				}
			}
		}
	}()
}
