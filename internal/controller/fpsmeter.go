package controller

import (
	"sync"
	"time"
)

// meter is a best-effort frames-per-second counter over a one second sliding
// window. Updated once per successful submit; never blocks the render loop
// beyond a short lock.
type meter struct {
	mu     sync.Mutex
	stamps []time.Time
}

func (m *meter) frame(now time.Time) {
	m.mu.Lock()
	cutoff := now.Add(-time.Second)
	keep := m.stamps[:0]
	for _, t := range m.stamps {
		if t.After(cutoff) {
			keep = append(keep, t)
		}
	}
	m.stamps = append(keep, now)
	m.mu.Unlock()
}

func (m *meter) rate() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	cutoff := time.Now().Add(-time.Second)
	n := 0
	for _, t := range m.stamps {
		if t.After(cutoff) {
			n++
		}
	}
	return float64(n)
}
