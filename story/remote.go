package story

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/metafates/gache"
	"github.com/nimbus-cli/nimbus/auth"
	"github.com/nimbus-cli/nimbus/filesystem"
	"github.com/nimbus-cli/nimbus/log"
	"github.com/nimbus-cli/nimbus/network"
	"github.com/nimbus-cli/nimbus/util"
	"github.com/nimbus-cli/nimbus/where"
	"github.com/samber/lo"
)

// Remote fetches a JSON array of items from a feed URL.
type Remote struct {
	URL string
	// Token returns the bearer token for the feed. An empty token sends no
	// Authorization header.
	Token func() (string, error)

	cacher *gache.Cache[[]Item]
}

// NewRemote returns a Remote that caches a successful response for lifetime.
// A zero lifetime disables caching.
func NewRemote(url string, lifetime time.Duration) *Remote {
	r := &Remote{
		URL:   url,
		Token: auth.GetToken,
	}

	if lifetime > 0 {
		r.cacher = gache.New[[]Item](&gache.Options{
			Path:       where.Feed(),
			Lifetime:   lifetime,
			FileSystem: &filesystem.GacheFs{},
		})
	}

	return r
}

func (*Remote) Name() string {
	return "remote"
}

func (r *Remote) Fetch(ctx context.Context) ([]Item, error) {
	if r.cacher != nil {
		cached, expired, err := r.cacher.Get()
		if err == nil && !expired && len(cached) > 0 {
			log.Debugf("story feed served from cache (%d items)", len(cached))
			return cached, nil
		}
	}

	headers := make(map[string]string)
	if r.Token != nil {
		token, err := r.Token()
		switch {
		case err != nil && !errors.Is(err, auth.ErrNoToken):
			log.Warnf("read feed token: %v", err)
		case token != "":
			headers["Authorization"] = "Bearer " + token
		}
	}

	resp, err := network.Get(ctx, r.URL, headers)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNetwork, err)
	}
	defer util.Ignore(resp.Body.Close)

	var items []Item
	if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
		return nil, fmt.Errorf("%w: decode feed: %w", ErrNetwork, err)
	}

	items = lo.Filter(items, func(item Item, _ int) bool {
		return item.ID != ""
	})

	if r.cacher != nil {
		if err := r.cacher.Set(items); err != nil {
			log.Warnf("cache story feed: %v", err)
		}
	}

	return items, nil
}
