package playback

import (
	"sync"
	"time"
)

// ManualScheduler is a Scheduler whose ticks are fired explicitly. It keeps
// the callbacks of cancelled handles so tests can replay late deliveries.
type ManualScheduler struct {
	// Fail makes Start return ErrSchedulerUnavailable.
	Fail bool

	mu        sync.Mutex
	last      Handle
	live      map[Handle]func()
	cancelled map[Handle]func()
	starts    int
}

func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{
		live:      make(map[Handle]func()),
		cancelled: make(map[Handle]func()),
	}
}

func (s *ManualScheduler) Start(_ time.Duration, onTick func()) (Handle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Fail {
		return 0, ErrSchedulerUnavailable
	}

	s.last++
	s.starts++
	s.live[s.last] = onTick
	return s.last, nil
}

func (s *ManualScheduler) Cancel(h Handle) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if fn, ok := s.live[h]; ok {
		delete(s.live, h)
		s.cancelled[h] = fn
	}
}

// Active returns the number of live handles.
func (s *ManualScheduler) Active() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.live)
}

// Starts returns how many handles were ever issued.
func (s *ManualScheduler) Starts() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.starts
}

// Fire invokes every live callback n times.
func (s *ManualScheduler) Fire(n int) {
	for i := 0; i < n; i++ {
		for _, fn := range s.snapshot(s.live) {
			fn()
		}
	}
}

// FireStale invokes the callback of every cancelled handle once, simulating
// ticks that were already in flight when Cancel ran.
func (s *ManualScheduler) FireStale() {
	for _, fn := range s.snapshot(s.cancelled) {
		fn()
	}
}

func (s *ManualScheduler) snapshot(from map[Handle]func()) []func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	fns := make([]func(), 0, len(from))
	for _, fn := range from {
		fns = append(fns, fn)
	}
	return fns
}
