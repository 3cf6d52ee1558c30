package tray

import "sync"

// Store keeps one Tray per owner in memory. Each setter is an unconditional
// overwrite of its own slot; the other slot is never touched. Last write
// wins. Trays live for the process lifetime; there is no explicit clear.
type Store struct {
	mu   sync.RWMutex
	data map[string]Tray
}

// NewStore constructs an empty Store.
func NewStore() *Store {
	return &Store{data: make(map[string]Tray)}
}

// SetSoilReport overwrites the soil-report slot for the owner.
func (s *Store) SetSoilReport(ownerID string, ref FileRef) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := s.data[ownerID]
	t.SoilReport = &ref
	s.data[ownerID] = t
}

// SetCropImage overwrites the crop-image slot for the owner.
func (s *Store) SetCropImage(ownerID string, ref FileRef) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := s.data[ownerID]
	t.CropImage = &ref
	s.data[ownerID] = t
}

// Get returns the owner's tray; both slots nil when nothing was uploaded.
func (s *Store) Get(ownerID string) Tray {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data[ownerID]
}
