package playback

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/nimbus-cli/nimbus/story"
	. "github.com/smartystreets/goconvey/convey"
)

func snapshotWhen(s *Session, cond func(State) bool) (State, bool) {
	var state State
	ok := eventually(func() bool {
		var err error
		state, err = s.Snapshot(context.Background())
		return err == nil && cond(state)
	})
	return state, ok
}

func TestSession(t *testing.T) {
	Convey("Given a session on a manual scheduler", t, func() {
		ctx := context.Background()
		sched := NewManualScheduler()
		session := StartSession(ctx, sched, DefaultOptions(), nil)
		defer session.Close()

		Convey("Loading from a source should start playback", func() {
			source := &story.Static{Items: story.Mocked()}
			So(session.LoadFrom(ctx, source), ShouldBeNil)

			state, err := session.Snapshot(ctx)
			So(err, ShouldBeNil)
			So(state.Phase(), ShouldEqual, Playing)
			So(state.Items, ShouldHaveLength, 5)
			So(sched.Active(), ShouldEqual, 1)

			Convey("Ticks should be applied on the session goroutine", func() {
				sched.Fire(300)
				state, ok := snapshotWhen(session, func(s State) bool {
					return s.Active.OrElse(-1) == 1
				})
				So(ok, ShouldBeTrue)
				So(state.ProgressOf("1"), ShouldEqual, 1.0)
			})

			Convey("Navigation commands should be serialized", func() {
				So(session.Advance(ctx), ShouldBeNil)
				So(session.Advance(ctx), ShouldBeNil)
				So(session.Rewind(ctx), ShouldBeNil)

				state, err := session.Snapshot(ctx)
				So(err, ShouldBeNil)
				So(state.Active.OrElse(-1), ShouldEqual, 1)
				So(state.Validate(), ShouldBeNil)
			})

			Convey("Toggling should pause and resume with one timer", func() {
				So(session.ToggleAutoplay(ctx), ShouldBeNil)
				So(sched.Active(), ShouldEqual, 0)
				So(session.ToggleAutoplay(ctx), ShouldBeNil)
				So(sched.Active(), ShouldEqual, 1)

				// Late ticks from the cancelled timer land ahead of one live
				// tick; only the live one may count.
				sched.FireStale()
				sched.Fire(1)
				state, err := session.Snapshot(ctx)
				So(err, ShouldBeNil)
				So(state.ProgressOf("1"), ShouldAlmostEqual, 0.01/3.0, 1e-12)
			})

			Convey("Close should release the timer and reject commands", func() {
				session.Close()
				So(sched.Active(), ShouldEqual, 0)
				So(session.Advance(ctx), ShouldEqual, ErrSessionClosed)
				_, err := session.Snapshot(ctx)
				So(err, ShouldEqual, ErrSessionClosed)
			})
		})

		Convey("A failed fetch should leave the session loading", func() {
			source := &story.Static{Err: story.ErrNetwork}
			err := session.LoadFrom(ctx, source)
			So(errors.Is(err, story.ErrNetwork), ShouldBeTrue)

			state, err := session.Snapshot(ctx)
			So(err, ShouldBeNil)
			So(state.IsLoading, ShouldBeTrue)
			So(state.Items, ShouldBeEmpty)
			So(sched.Starts(), ShouldEqual, 0)
		})

		Convey("StartAutoPlay and StopAutoPlay should be exposed", func() {
			So(session.Load(ctx, story.Mocked()[:2]), ShouldBeNil)
			So(session.StopAutoPlay(ctx), ShouldBeNil)
			So(session.StartAutoPlay(ctx), ShouldBeNil)
			So(sched.Active(), ShouldEqual, 1)
		})
	})

	Convey("Given a session whose loop is held inside the observer", t, func() {
		ctx := context.Background()
		sched := NewManualScheduler()

		var hold atomic.Bool
		stalled := make(chan struct{})
		release := make(chan struct{})
		observer := func(State) {
			if hold.CompareAndSwap(true, false) {
				close(stalled)
				<-release
			}
		}

		session := StartSession(ctx, sched, DefaultOptions(), observer)
		defer session.Close()
		So(session.Load(ctx, story.Mocked()), ShouldBeNil)

		Convey("A command queued between two ticks should apply before the second", func() {
			hold.Store(true)
			sched.Fire(1)
			<-stalled

			advanced := make(chan error, 1)
			go func() {
				advanced <- session.Advance(ctx)
			}()
			So(eventually(func() bool {
				return session.inbox.Len() == 1
			}), ShouldBeTrue)

			sched.Fire(1)
			close(release)
			So(<-advanced, ShouldBeNil)

			state, err := session.Snapshot(ctx)
			So(err, ShouldBeNil)
			So(state.Active.OrElse(-1), ShouldEqual, 1)
			So(state.ProgressOf("1"), ShouldEqual, 1.0)
			So(state.ProgressOf("2"), ShouldAlmostEqual, 0.01/3.0, 1e-12)
		})
	})

	Convey("Given a session on a real ticker", t, func() {
		var mu sync.Mutex
		var phases []Phase
		observer := func(s State) {
			mu.Lock()
			defer mu.Unlock()
			phases = append(phases, s.Phase())
		}

		opts := Options{Interval: time.Millisecond, Step: 0.25, Duration: 1, Autoplay: true}
		sched := NewTickerScheduler(1)
		session := StartSession(context.Background(), sched, opts, observer)
		defer session.Close()

		So(session.Load(context.Background(), story.Mocked()[:3]), ShouldBeNil)

		Convey("Playback should run through to the last item", func() {
			state, ok := snapshotWhen(session, func(s State) bool {
				return s.Phase() == Finished
			})
			So(ok, ShouldBeTrue)
			So(state.Active.OrElse(-1), ShouldEqual, 2)
			for _, item := range state.Items {
				So(state.ProgressOf(item.ID), ShouldEqual, 1.0)
			}

			mu.Lock()
			So(phases, ShouldContain, Playing)
			mu.Unlock()
		})

		Convey("Cancelling the context should stop the ticker", func() {
			ctx, cancel := context.WithCancel(context.Background())
			s2 := StartSession(ctx, NewTickerScheduler(0), opts, nil)
			So(s2.Load(ctx, story.Mocked()), ShouldBeNil)
			cancel()
			<-s2.Done()
			So(s2.Advance(context.Background()), ShouldEqual, ErrSessionClosed)
		})
	})
}
