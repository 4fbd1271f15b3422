// pkg/mem/leg_cache.go
package mem

import (
	"context"
	"sync"
	"time"
)

// TravelLeg is a cached travel estimate between two places.
type TravelLeg struct {
	DistanceMeters int
	DurationMin    int
}

// LegCache stores travel legs keyed by (mode, from, to). Entries expire
// after their TTL; expired entries are removed lazily on read. Backends
// with network round trips honor the caller's context.
type LegCache interface {
	Get(ctx context.Context, key LegKey) (TravelLeg, bool)
	Set(ctx context.Context, key LegKey, leg TravelLeg, ttl time.Duration)
}

type LegKey struct {
	Mode string // "driving"
	From string // stable POI or depot ID
	To   string
}

type legEntry struct {
	leg       TravelLeg
	expiresAt time.Time
}

type TravelLegs struct {
	mu   sync.RWMutex
	data map[LegKey]legEntry
}

func NewTravelLegs() *TravelLegs {
	return &TravelLegs{
		data: make(map[LegKey]legEntry),
	}
}

func (s *TravelLegs) Get(_ context.Context, key LegKey) (TravelLeg, bool) {
	s.mu.RLock()
	e, ok := s.data[key]
	s.mu.RUnlock()

	if !ok {
		return TravelLeg{}, false
	}
	if time.Now().After(e.expiresAt) {
		s.mu.Lock()
		delete(s.data, key) // cleanup expired
		s.mu.Unlock()
		return TravelLeg{}, false
	}
	return e.leg, true
}

func (s *TravelLegs) Set(_ context.Context, key LegKey, leg TravelLeg, ttl time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = legEntry{
		leg:       leg,
		expiresAt: time.Now().Add(ttl),
	}
}

// Len reports live entries, counting expired ones still awaiting cleanup.
func (s *TravelLegs) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}
