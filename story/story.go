// Package story defines the story item model and the sources stories are fetched from.
package story

import "fmt"

// Item is a single story slide. Items are immutable once loaded and are
// compared by ID only.
type Item struct {
	// ID uniquely identifies the story within a feed.
	ID string `json:"id" jsonschema:"required"`
	// Image is a reference to the story's picture (asset name or URL).
	Image string `json:"image" jsonschema:"required"`
	// Title is an optional caption.
	Title string `json:"title,omitempty"`
}

// Is reports whether two items denote the same story.
func (i Item) Is(other Item) bool {
	return i.ID == other.ID
}

// String returns the caption if present, otherwise the identifier.
func (i Item) String() string {
	if i.Title != "" {
		return i.Title
	}
	return fmt.Sprintf("Story %s", i.ID)
}

// Mocked is the built-in story list shipped with the application.
func Mocked() []Item {
	return []Item{
		{ID: "1", Image: "stories_1", Title: "Morning fog over the river"},
		{ID: "2", Image: "stories_2", Title: "Storm front rolling in"},
		{ID: "3", Image: "stories_3", Title: "First snow"},
		{ID: "4", Image: "stories_4", Title: "Rainbow after the rain"},
		{ID: "5", Image: "stories_5", Title: "Clear night sky"},
	}
}
