// Package history remembers how far each story was watched.
package history

import (
	"github.com/metafates/gache"
	"github.com/nimbus-cli/nimbus/filesystem"
	"github.com/nimbus-cli/nimbus/story"
	"github.com/nimbus-cli/nimbus/where"
	"github.com/samber/lo"
)

var cacher = gache.New[map[string]*Record](
	&gache.Options{
		Path:       where.History(),
		FileSystem: &filesystem.GacheFs{},
	},
)

// Get returns every stored record keyed by story ID.
func Get() (map[string]*Record, error) {
	cached, expired, err := cacher.Get()
	if err != nil {
		return nil, err
	}
	if expired || cached == nil {
		return make(map[string]*Record), nil
	}
	return cached, nil
}

// Save stores the progress of item. A lower progress never replaces a
// higher one, so rewatching a story does not mark it unseen.
func Save(item story.Item, progress float64) error {
	return SaveAll([]story.Item{item}, map[string]float64{item.ID: progress})
}

// SaveAll stores the progress of every item in one write.
func SaveAll(items []story.Item, progress map[string]float64) error {
	saved, err := Get()
	if err != nil {
		return err
	}

	for _, item := range items {
		record := newRecord(item, progress[item.ID])
		if existing, ok := saved[item.ID]; ok && existing.Progress > record.Progress {
			record.Progress = existing.Progress
		}
		saved[item.ID] = record
	}

	return cacher.Set(saved)
}

// Remove deletes the record of the story with the given ID.
func Remove(id string) error {
	saved, err := Get()
	if err != nil {
		return err
	}

	delete(saved, id)
	return cacher.Set(saved)
}

// Clear deletes every record.
func Clear() error {
	return cacher.Set(make(map[string]*Record))
}

// Unseen drops the items that were already watched to the end.
func Unseen(items []story.Item) ([]story.Item, error) {
	saved, err := Get()
	if err != nil {
		return nil, err
	}

	return lo.Reject(items, func(item story.Item, _ int) bool {
		record, ok := saved[item.ID]
		return ok && record.Seen()
	}), nil
}
