package history

import (
	"fmt"
	"time"

	"github.com/nimbus-cli/nimbus/story"
)

// Record is the furthest progress observed for one story.
type Record struct {
	ID       string    `json:"id"`
	Title    string    `json:"title,omitempty"`
	Progress float64   `json:"progress"`
	SeenAt   time.Time `json:"seen_at"`
}

// Seen reports whether the story was watched to the end.
func (r *Record) Seen() bool {
	return r.Progress >= 1.0
}

func (r *Record) String() string {
	name := r.Title
	if name == "" {
		name = r.ID
	}
	return fmt.Sprintf("%s : %.0f%%", name, r.Progress*100)
}

func newRecord(item story.Item, progress float64) *Record {
	return &Record{
		ID:       item.ID,
		Title:    item.Title,
		Progress: min(max(progress, 0), 1),
		SeenAt:   time.Now(),
	}
}
