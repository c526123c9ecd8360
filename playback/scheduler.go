package playback

import (
	"errors"
	"fmt"
	"sync"
	"time"
)

// ErrSchedulerUnavailable is returned by Scheduler.Start when no clock can be scheduled.
var ErrSchedulerUnavailable = errors.New("tick scheduler unavailable")

// Handle identifies a started tick source. The zero Handle is never issued.
type Handle uint64

// Scheduler is a cancellable periodic clock.
type Scheduler interface {
	// Start delivers onTick roughly every interval until the handle is cancelled.
	Start(interval time.Duration, onTick func()) (Handle, error)

	// Cancel stops delivery for h. No onTick for h runs after Cancel returns.
	// Cancelling an unknown or already cancelled handle is a no-op.
	Cancel(h Handle)
}

// TickerScheduler runs one time.Ticker goroutine per handle.
type TickerScheduler struct {
	// MaxActive bounds concurrently running tickers; zero means unbounded.
	MaxActive int

	mu     sync.Mutex
	last   Handle
	active map[Handle]*tickerJob
}

type tickerJob struct {
	stop chan struct{}
	done chan struct{}
}

// NewTickerScheduler returns a scheduler allowing at most maxActive tickers.
func NewTickerScheduler(maxActive int) *TickerScheduler {
	return &TickerScheduler{MaxActive: maxActive}
}

func (s *TickerScheduler) Start(interval time.Duration, onTick func()) (Handle, error) {
	if interval <= 0 {
		return 0, fmt.Errorf("%w: interval %v", ErrSchedulerUnavailable, interval)
	}

	s.mu.Lock()
	if s.active == nil {
		s.active = make(map[Handle]*tickerJob)
	}
	if s.MaxActive > 0 && len(s.active) >= s.MaxActive {
		s.mu.Unlock()
		return 0, fmt.Errorf("%w: %d tickers already running", ErrSchedulerUnavailable, len(s.active))
	}

	s.last++
	h := s.last
	job := &tickerJob{
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}
	s.active[h] = job
	s.mu.Unlock()

	go job.run(interval, onTick)
	return h, nil
}

func (s *TickerScheduler) Cancel(h Handle) {
	s.mu.Lock()
	job, ok := s.active[h]
	delete(s.active, h)
	s.mu.Unlock()

	if !ok {
		return
	}

	close(job.stop)
	<-job.done
}

// Active returns the number of running tickers.
func (s *TickerScheduler) Active() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.active)
}

func (j *tickerJob) run(interval time.Duration, onTick func()) {
	defer close(j.done)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-j.stop:
			return
		case <-ticker.C:
			// stop and tick can be ready together; stop wins.
			select {
			case <-j.stop:
				return
			default:
			}
			onTick()
		}
	}
}
