package playback

import (
	"fmt"

	"github.com/nimbus-cli/nimbus/log"
	"github.com/nimbus-cli/nimbus/story"
	"github.com/samber/lo"
	"github.com/samber/mo"
)

// completionEpsilon absorbs the rounding error of summing Step/Duration, so
// that Duration/Step ticks complete an item (300 additions of 0.01/3 fall
// short of 1.0 by ~1e-15).
const completionEpsilon = 1e-9

// Controller owns a playback State and applies commands to it. It is not safe
// for concurrent use: every method must run on the goroutine owning it, and
// scheduler ticks reach it only as TickMsg values passed to HandleTick.
type Controller struct {
	state State
	opts  Options

	scheduler Scheduler
	deliver   func(TickMsg)

	handle     Handle
	generation uint64
}

// NewController returns a controller in the Empty phase with autoplay
// requested, so a toggle before the first Load pauses it. No timer runs until
// Load selects an item. deliver is handed to every scheduler callback and must
// marshal the TickMsg onto the owning goroutine without blocking; Mailbox.Post
// does this.
func NewController(scheduler Scheduler, deliver func(TickMsg), opts Options) *Controller {
	return &Controller{
		state: State{
			Progress:      make(map[string]float64),
			IsAutoPlaying: true,
		},
		opts:      opts,
		scheduler: scheduler,
		deliver:   deliver,
	}
}

// State returns a copy of the current state.
func (c *Controller) State() State {
	return c.state.Clone()
}

// Options returns the cadence the controller was built with.
func (c *Controller) Options() Options {
	return c.opts
}

// Handle returns the live scheduler handle, zero when no timer runs.
func (c *Controller) Handle() Handle {
	return c.handle
}

// BeginLoading marks the item fetch as outstanding.
func (c *Controller) BeginLoading() {
	c.state.IsLoading = true
}

// Load replaces the items, resets all progress to zero and selects the first
// item. With items present and autoplay enabled it starts the scheduler; a
// scheduler failure is returned but the items stay loaded in the Paused phase.
// Items repeating an earlier ID are dropped.
func (c *Controller) Load(items []story.Item) error {
	unique := lo.UniqBy(items, func(item story.Item) string {
		return item.ID
	})
	if dropped := len(items) - len(unique); dropped > 0 {
		log.Warnf("dropped %d stories with duplicate ids", dropped)
	}

	c.state.IsLoading = false
	c.state.Items = unique
	c.state.Progress = make(map[string]float64, len(unique))
	for _, item := range unique {
		c.state.Progress[item.ID] = 0
	}

	if len(unique) == 0 {
		c.state.Active = mo.None[int]()
		c.StopAutoPlay()
		return nil
	}

	c.state.Active = mo.Some(0)
	log.With(log.Fields{"items": len(unique)}).Debug("stories loaded")

	if !c.opts.Autoplay {
		c.StopAutoPlay()
		return nil
	}
	return c.StartAutoPlay()
}

// Tick adds step/duration to the active item's progress. Reaching 1.0 clamps
// the progress to exactly 1.0 and advances. Without an active item, or with
// non-positive arguments, Tick does nothing.
func (c *Controller) Tick(step, duration float64) {
	item, ok := c.state.ActiveItem().Get()
	if !ok || step <= 0 || duration <= 0 {
		return
	}

	progress := c.state.Progress[item.ID] + step/duration
	if progress >= 1.0-completionEpsilon {
		c.state.Progress[item.ID] = 1.0
		c.Advance()
		return
	}

	c.state.Progress[item.ID] = progress
}

// Advance marks the active item as fully watched and moves to the next one.
// The entered item keeps whatever progress it had. At the last item, or with
// no active item, Advance does nothing.
func (c *Controller) Advance() {
	idx, ok := c.state.Active.Get()
	if !ok || idx >= len(c.state.Items)-1 {
		return
	}

	c.state.Progress[c.state.Items[idx].ID] = 1.0
	c.state.Active = mo.Some(idx + 1)
	log.Tracef("advance to story %s", c.state.Items[idx+1].ID)
}

// Rewind restarts the previous item: both the active item and the one entered
// are reset to zero. At the first item, or with no active item, Rewind does
// nothing.
func (c *Controller) Rewind() {
	idx, ok := c.state.Active.Get()
	if !ok || idx == 0 {
		return
	}

	c.state.Progress[c.state.Items[idx].ID] = 0
	c.state.Active = mo.Some(idx - 1)
	c.state.Progress[c.state.Items[idx-1].ID] = 0
	log.Tracef("rewind to story %s", c.state.Items[idx-1].ID)
}

// ToggleAutoplay pauses a playing session or resumes a paused one.
func (c *Controller) ToggleAutoplay() error {
	if c.state.IsAutoPlaying {
		c.StopAutoPlay()
		return nil
	}
	return c.StartAutoPlay()
}

// StartAutoPlay cancels any running timer and starts a new one, so at most one
// timer is ever live. Without an active item only the flag is set; Load starts
// the timer later. If the scheduler is unavailable the controller stays
// paused and the error is returned.
func (c *Controller) StartAutoPlay() error {
	c.cancelTimer()

	if c.state.Active.IsAbsent() {
		c.state.IsAutoPlaying = true
		return nil
	}

	c.generation++
	generation := c.generation
	handle, err := c.scheduler.Start(c.opts.Interval, func() {
		c.deliver(TickMsg{Generation: generation})
	})
	if err != nil {
		c.state.IsAutoPlaying = false
		log.Warnf("autoplay disabled: %v", err)
		return fmt.Errorf("start autoplay: %w", err)
	}

	c.handle = handle
	c.state.IsAutoPlaying = true
	return nil
}

// StopAutoPlay cancels the running timer. Ticks already queued for it are
// rejected by HandleTick.
func (c *Controller) StopAutoPlay() {
	c.cancelTimer()
	c.state.IsAutoPlaying = false
}

// HandleTick applies one tick if msg belongs to the live timer and reports
// whether it did. Ticks from cancelled timers never change the state.
func (c *Controller) HandleTick(msg TickMsg) bool {
	if c.handle == 0 || !c.state.IsAutoPlaying || msg.Generation != c.generation {
		return false
	}

	c.Tick(c.opts.Step, c.opts.Duration)
	return true
}

// Close releases the timer. It is the teardown for a dismissed screen.
func (c *Controller) Close() {
	c.StopAutoPlay()
}

func (c *Controller) cancelTimer() {
	if c.handle != 0 {
		c.scheduler.Cancel(c.handle)
		c.handle = 0
	}
	// Bumping the generation also invalidates ticks queued before the cancel.
	c.generation++
}
