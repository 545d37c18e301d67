package clock

import (
	"sync"
	"time"
)

// Clock abstrai o relógio da sessão para que os timers sejam testáveis
type Clock interface {
	Now() time.Time
}

// Real usa o relógio do sistema
type Real struct{}

func (Real) Now() time.Time { return time.Now() }

// Manual é um relógio controlado pelo teste
type Manual struct {
	mu  sync.Mutex
	now time.Time
}

func NewManual(start time.Time) *Manual { return &Manual{now: start} }

func (m *Manual) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

func (m *Manual) Set(t time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = t
}

// Add avança o relógio e retorna o novo instante
func (m *Manual) Add(d time.Duration) time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = m.now.Add(d)
	return m.now
}
