// Package playback implements the story playback state machine: per-item
// progress driven by a recurring tick, navigation between items, and
// pausing/resuming autoplay under a single-active-timer guarantee.
package playback

import (
	"fmt"
	"maps"

	"github.com/nimbus-cli/nimbus/story"
	"github.com/samber/lo"
	"github.com/samber/mo"
)

// Phase is the coarse state of a playback session, derived from State.
type Phase int

const (
	Empty Phase = iota
	Loading
	Playing
	Paused
	Finished
)

func (p Phase) String() string {
	switch p {
	case Empty:
		return "empty"
	case Loading:
		return "loading"
	case Playing:
		return "playing"
	case Paused:
		return "paused"
	case Finished:
		return "finished"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// State is the observable playback state. Values returned by Controller.State
// are copies and can be retained freely.
type State struct {
	Items []story.Item
	// Active is the index of the displayed item, absent when Items is empty.
	Active mo.Option[int]
	// Progress maps item ID to fractional completion in [0, 1].
	Progress      map[string]float64
	IsAutoPlaying bool
	IsLoading     bool
}

// ActiveItem returns the displayed item, if any.
func (s State) ActiveItem() mo.Option[story.Item] {
	idx, ok := s.Active.Get()
	if !ok || idx < 0 || idx >= len(s.Items) {
		return mo.None[story.Item]()
	}
	return mo.Some(s.Items[idx])
}

// ProgressOf returns the progress of the item with the given ID, zero if unknown.
func (s State) ProgressOf(id string) float64 {
	return s.Progress[id]
}

// Phase derives the coarse playback phase.
func (s State) Phase() Phase {
	if s.IsLoading {
		return Loading
	}

	idx, ok := s.Active.Get()
	if !ok {
		return Empty
	}

	if idx == len(s.Items)-1 && s.Progress[s.Items[idx].ID] >= 1.0 {
		return Finished
	}

	if s.IsAutoPlaying {
		return Playing
	}
	return Paused
}

// Clone returns a deep copy of the state.
func (s State) Clone() State {
	return State{
		Items:         append([]story.Item(nil), s.Items...),
		Active:        s.Active,
		Progress:      maps.Clone(s.Progress),
		IsAutoPlaying: s.IsAutoPlaying,
		IsLoading:     s.IsLoading,
	}
}

// Validate checks the index and progress invariants.
func (s State) Validate() error {
	idx, ok := s.Active.Get()
	switch {
	case len(s.Items) == 0 && ok:
		return fmt.Errorf("active index %d set without items", idx)
	case len(s.Items) > 0 && !ok:
		return fmt.Errorf("no active index with %d items", len(s.Items))
	case ok && (idx < 0 || idx >= len(s.Items)):
		return fmt.Errorf("active index %d out of range [0, %d)", idx, len(s.Items))
	}

	if len(s.Progress) != len(s.Items) {
		return fmt.Errorf("progress has %d entries for %d items", len(s.Progress), len(s.Items))
	}

	ids := lo.SliceToMap(s.Items, func(item story.Item) (string, struct{}) {
		return item.ID, struct{}{}
	})
	for id, p := range s.Progress {
		if _, ok := ids[id]; !ok {
			return fmt.Errorf("progress entry for unknown item %q", id)
		}
		if p < 0 || p > 1 {
			return fmt.Errorf("progress of %q is %v, outside [0, 1]", id, p)
		}
	}

	return nil
}
