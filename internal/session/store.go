package session

import (
	"sync"
	"time"
)

// KeyAnalysisResults is the session key the analyze endpoint writes and the
// result view reads. The payload under it is a JSON-encoded object with a
// nested soil_report_data mapping; any producer must use this exact key.
const KeyAnalysisResults = "analysisResults"

// DefaultTTL bounds how long an idle session survives.
const DefaultTTL = 24 * time.Hour

type entry struct {
	values    map[string]string
	expiresAt time.Time
}

// Store holds per-session key/value state in memory. Values are opaque
// strings; JSON encoding and decoding are the caller's concern.
type Store struct {
	mu   sync.RWMutex
	data map[string]*entry
	ttl  time.Duration
	now  func() time.Time
}

// NewStore constructs a Store with the given TTL (DefaultTTL when zero).
func NewStore(ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{
		data: make(map[string]*entry),
		ttl:  ttl,
		now:  time.Now,
	}
}

// Get returns the value stored under key for the session, if present.
func (s *Store) Get(sessionID, key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.data[sessionID]
	if !ok || s.now().After(e.expiresAt) {
		return "", false
	}
	val, ok := e.values[key]
	return val, ok
}

// Set stores value under key for the session, refreshing its TTL.
func (s *Store) Set(sessionID, key, value string) {
	now := s.now()
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.data[sessionID]
	if !ok || now.After(e.expiresAt) {
		e = &entry{values: make(map[string]string)}
		s.data[sessionID] = e
	}
	e.values[key] = value
	e.expiresAt = now.Add(s.ttl)
}

// Touch refreshes the session TTL without modifying values.
func (s *Store) Touch(sessionID string) {
	now := s.now()
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.data[sessionID]; ok && !now.After(e.expiresAt) {
		e.expiresAt = now.Add(s.ttl)
	}
}

// Sweep drops expired sessions. Callers may run it periodically.
func (s *Store) Sweep() int {
	now := s.now()
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for id, e := range s.data {
		if now.After(e.expiresAt) {
			delete(s.data, id)
			removed++
		}
	}
	return removed
}
