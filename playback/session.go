package playback

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/nimbus-cli/nimbus/log"
	"github.com/nimbus-cli/nimbus/story"
)

// ErrSessionClosed is returned by commands issued after Close.
var ErrSessionClosed = errors.New("playback session closed")

// Observer is notified with a state copy after every applied command or tick.
// It runs on the session goroutine and must not call back into the session.
type Observer func(State)

// Session owns a Controller on a dedicated goroutine. Commands and ticks share
// one FIFO inbox and are applied one at a time in arrival order, so a command
// issued between two ticks is complete before the next tick is processed.
type Session struct {
	ctrl     *Controller
	inbox    *Queue[event]
	observer Observer

	stop      chan struct{}
	done      chan struct{}
	closeOnce sync.Once
}

// event is either a tick or, when cmd is set, a command.
type event struct {
	tick TickMsg
	cmd  *command
}

type command struct {
	apply func(*Controller) error
	reply chan error
}

// StartSession starts the session goroutine. It ends when ctx is done or
// Close is called; either way the timer is released.
func StartSession(ctx context.Context, scheduler Scheduler, opts Options, observer Observer) *Session {
	inbox := NewQueue[event]()
	deliver := func(tick TickMsg) {
		inbox.Post(event{tick: tick})
	}

	s := &Session{
		ctrl:     NewController(scheduler, deliver, opts),
		inbox:    inbox,
		observer: observer,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}

	go s.run(ctx)
	return s
}

func (s *Session) run(ctx context.Context) {
	defer close(s.done)
	defer s.inbox.Close()
	defer s.ctrl.Close()

	for {
		select {
		case <-ctx.Done():
			return
		case <-s.stop:
			return
		case <-s.inbox.Ready():
			s.apply(s.inbox.Drain())
		}
	}
}

// apply processes events in order. Consecutive ticks are reported to the
// observer once.
func (s *Session) apply(events []event) {
	ticked := false
	for _, ev := range events {
		if ev.cmd == nil {
			if s.ctrl.HandleTick(ev.tick) {
				ticked = true
			}
			continue
		}

		if ticked {
			s.notify()
			ticked = false
		}
		ev.cmd.reply <- ev.cmd.apply(s.ctrl)
		s.notify()
	}

	if ticked {
		s.notify()
	}
}

func (s *Session) notify() {
	if s.observer != nil {
		s.observer(s.ctrl.State())
	}
}

// do queues apply behind every tick and command already in the inbox and
// waits for its result. A command whose ctx ends while queued may still be
// applied later.
func (s *Session) do(ctx context.Context, apply func(*Controller) error) error {
	cmd := &command{apply: apply, reply: make(chan error, 1)}
	if !s.inbox.Offer(event{cmd: cmd}) {
		return ErrSessionClosed
	}

	select {
	case err := <-cmd.reply:
		return err
	case <-s.done:
		select {
		case err := <-cmd.reply:
			return err
		default:
			return ErrSessionClosed
		}
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Load replaces the items and starts autoplay.
func (s *Session) Load(ctx context.Context, items []story.Item) error {
	return s.do(ctx, func(c *Controller) error {
		return c.Load(items)
	})
}

// LoadFrom marks the session as loading, fetches items from source outside
// the session goroutine and loads them. On a fetch failure Load is never
// called and the session stays in the Loading phase.
func (s *Session) LoadFrom(ctx context.Context, source story.Source) error {
	if err := s.do(ctx, func(c *Controller) error {
		c.BeginLoading()
		return nil
	}); err != nil {
		return err
	}

	items, err := source.Fetch(ctx)
	if err != nil {
		log.Errorf("fetch stories from %s: %v", source.Name(), err)
		return fmt.Errorf("fetch stories: %w", err)
	}

	return s.Load(ctx, items)
}

func (s *Session) Advance(ctx context.Context) error {
	return s.do(ctx, func(c *Controller) error {
		c.Advance()
		return nil
	})
}

func (s *Session) Rewind(ctx context.Context) error {
	return s.do(ctx, func(c *Controller) error {
		c.Rewind()
		return nil
	})
}

func (s *Session) ToggleAutoplay(ctx context.Context) error {
	return s.do(ctx, (*Controller).ToggleAutoplay)
}

func (s *Session) StartAutoPlay(ctx context.Context) error {
	return s.do(ctx, (*Controller).StartAutoPlay)
}

func (s *Session) StopAutoPlay(ctx context.Context) error {
	return s.do(ctx, func(c *Controller) error {
		c.StopAutoPlay()
		return nil
	})
}

// Snapshot returns a copy of the current state.
func (s *Session) Snapshot(ctx context.Context) (State, error) {
	var state State
	err := s.do(ctx, func(c *Controller) error {
		state = c.State()
		return nil
	})
	return state, err
}

// Close stops the session and releases its timer. It is the dismiss signal
// and is safe to call more than once.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		close(s.stop)
	})
	<-s.done
}

// Done is closed once the session goroutine has exited.
func (s *Session) Done() <-chan struct{} {
	return s.done
}
