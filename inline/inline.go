// Package inline runs a playback session without a terminal UI and prints
// where it ended up.
package inline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/nimbus-cli/nimbus/history"
	"github.com/nimbus-cli/nimbus/log"
	"github.com/nimbus-cli/nimbus/playback"
	"github.com/nimbus-cli/nimbus/story"
)

func Run(ctx context.Context, options *Options) error {
	if options.Out == nil {
		options.Out = os.Stdout
	}
	if options.Scheduler == nil {
		options.Scheduler = playback.NewTickerScheduler(1)
	}
	if options.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, options.Timeout)
		defer cancel()
	}

	finished := make(chan struct{})
	var once sync.Once
	observer := func(s playback.State) {
		if s.Phase() == playback.Finished {
			once.Do(func() { close(finished) })
		}
	}

	// The session outlives ctx so the final state can still be read after a timeout.
	session := playback.StartSession(context.Background(), options.Scheduler, options.Playback, observer)
	defer session.Close()

	source := options.Source
	if options.Unseen {
		source = unseenSource{source}
	}

	// Without a scheduler the stories stay loaded and paused; manual actions still work.
	if err := session.LoadFrom(ctx, source); err != nil {
		if !errors.Is(err, playback.ErrSchedulerUnavailable) {
			return err
		}
		log.Warnf("stories loaded without autoplay: %v", err)
	}

	for _, action := range options.Actions {
		log.Debugf("inline action %s", action.Name)
		if err := action.apply(session, ctx); err != nil {
			if !errors.Is(err, playback.ErrSchedulerUnavailable) {
				return fmt.Errorf("action %s: %w", action.Name, err)
			}
			log.Warnf("action %s left playback paused: %v", action.Name, err)
		}
	}

	if options.UntilFinished {
		if err := waitFinished(ctx, session, finished); err != nil {
			return err
		}
	}

	state, err := session.Snapshot(context.Background())
	if err != nil {
		return err
	}

	if options.Record && len(state.Items) > 0 {
		if err := history.SaveAll(state.Items, state.Progress); err != nil {
			log.Warnf("record story history: %v", err)
		}
	}

	if options.Json {
		return writeJson(options, source.Name(), state)
	}
	return writeText(options, state)
}

func waitFinished(ctx context.Context, session *playback.Session, finished <-chan struct{}) error {
	// Already finished, or nothing left to drive it there.
	state, err := session.Snapshot(ctx)
	if err != nil {
		return err
	}
	switch state.Phase() {
	case playback.Finished, playback.Empty:
		return nil
	case playback.Paused:
		return errors.New("playback is paused and cannot finish")
	}

	select {
	case <-finished:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("waiting for the last story: %w", ctx.Err())
	}
}

func writeJson(options *Options, source string, state playback.State) error {
	data, err := asJson(source, state)
	if err != nil {
		return err
	}
	_, err = options.Out.Write(append(data, '\n'))
	return err
}

func writeText(options *Options, state playback.State) error {
	active := state.Active.OrElse(-1)
	for i, item := range state.Items {
		marker := " "
		if i == active {
			marker = ">"
		}
		if _, err := fmt.Fprintf(options.Out, "%s %s\t%3.0f%%\t%s\n", marker, item.ID, state.ProgressOf(item.ID)*100, item); err != nil {
			return err
		}
	}
	return nil
}

// unseenSource drops the stories already watched to the end.
type unseenSource struct {
	story.Source
}

func (s unseenSource) Fetch(ctx context.Context) ([]story.Item, error) {
	items, err := s.Source.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	return history.Unseen(items)
}
