// Package place keeps named locations the user asked the weather for, ranked
// by how often they were used.
package place

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/metafates/gache"
	"github.com/nimbus-cli/nimbus/filesystem"
	"github.com/nimbus-cli/nimbus/key"
	"github.com/nimbus-cli/nimbus/where"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/viper"
	"golang.org/x/exp/slices"
)

// ErrUnknown is returned when looking up a place that was never remembered.
var ErrUnknown = errors.New("unknown place")

// Place is a remembered location.
type Place struct {
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Rank      int     `json:"rank"`
}

func (p *Place) String() string {
	return fmt.Sprintf("%s (%.3f, %.3f)", p.Name, p.Latitude, p.Longitude)
}

var cacher = gache.New[map[string]*Place](
	&gache.Options{
		Path:       where.Places(),
		FileSystem: &filesystem.GacheFs{},
	},
)

var suggestionCache = make(map[string][]*Place)

func load() map[string]*Place {
	cached, expired, err := cacher.Get()
	if expired || err != nil || cached == nil {
		return make(map[string]*Place)
	}
	return cached
}

// Validate checks the coordinate ranges.
func Validate(lat, long float64) error {
	if lat < -90 || lat > 90 {
		return fmt.Errorf("latitude %v outside [-90, 90]", lat)
	}
	if long < -180 || long > 180 {
		return fmt.Errorf("longitude %v outside [-180, 180]", long)
	}
	return nil
}

// Add stores a place, replacing the coordinates of an existing one with the
// same name while keeping its rank.
func Add(name string, lat, long float64) error {
	name = sanitize(name)
	if name == "" {
		return errors.New("place name is empty")
	}
	if err := Validate(lat, long); err != nil {
		return err
	}

	places := load()
	rank := 0
	if existing, ok := places[name]; ok {
		rank = existing.Rank
	}
	places[name] = &Place{Name: name, Latitude: lat, Longitude: long, Rank: rank}

	clear(suggestionCache)
	return cacher.Set(places)
}

// Remember bumps the rank of a known place by weight.
func Remember(name string, weight int) error {
	name = sanitize(name)
	places := load()

	p, ok := places[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknown, name)
	}
	p.Rank += weight

	clear(suggestionCache)
	return cacher.Set(places)
}

// Get looks up a place by name.
func Get(name string) (*Place, error) {
	p, ok := load()[sanitize(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknown, name)
	}
	return p, nil
}

// List returns every place, most used first.
func List() []*Place {
	places := lo.Values(load())
	sortByRank(places)
	return places
}

// Remove forgets a place.
func Remove(name string) error {
	name = sanitize(name)
	places := load()
	if _, ok := places[name]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknown, name)
	}

	delete(places, name)
	clear(suggestionCache)
	return cacher.Set(places)
}

// Clear forgets every place.
func Clear() error {
	clear(suggestionCache)
	return cacher.Set(make(map[string]*Place))
}

// Suggest returns the best matching place name for a partial input.
func Suggest(q string) mo.Option[string] {
	suggestions := SuggestMany(q)
	if len(suggestions) == 0 {
		return mo.None[string]()
	}
	return mo.Some(suggestions[0])
}

// SuggestMany returns the place names fuzzily matching q, most used first.
func SuggestMany(q string) []string {
	if !viper.GetBool(key.PlacesShowSuggestions) {
		return []string{}
	}

	q = sanitize(q)
	records, ok := suggestionCache[q]
	if !ok {
		for _, p := range load() {
			if fuzzy.Match(q, p.Name) {
				records = append(records, p)
			}
		}
		sortByRank(records)
		suggestionCache[q] = records
	}

	return lo.Map(records, func(p *Place, _ int) string {
		return p.Name
	})
}

func sortByRank(places []*Place) {
	slices.SortFunc(places, func(a, b *Place) int {
		if a.Rank != b.Rank {
			return b.Rank - a.Rank
		}
		return strings.Compare(a.Name, b.Name)
	})
}

func sanitize(name string) string {
	return strings.TrimSpace(strings.ToLower(name))
}
