package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/nimbus-cli/nimbus/internal/cache"
	"github.com/nimbus-cli/nimbus/key"
	"github.com/nimbus-cli/nimbus/log"
	"github.com/nimbus-cli/nimbus/network"
	"github.com/nimbus-cli/nimbus/where"
	"github.com/spf13/viper"
	"golang.org/x/sync/singleflight"
)

const (
	forecastEndpoint = "/v1/forecast"
	memoryEntries    = 32
)

// Client fetches forecasts. Repeated lookups are served from memory first,
// then from the disk cache, and concurrent lookups of one URL share a request.
type Client struct {
	Host string

	cache  *cache.Store
	memory *expirable.LRU[string, *Weather]
	group  singleflight.Group
}

// NewClient returns a client for host caching responses for ttl. A
// non-positive ttl disables both caches.
func NewClient(host string, ttl time.Duration) *Client {
	client := &Client{
		Host:  host,
		cache: cache.New(where.Forecasts(), ttl),
	}
	if ttl > 0 {
		client.memory = expirable.NewLRU[string, *Weather](memoryEntries, nil, ttl)
	}
	return client
}

// NewClientFromConfig returns a client built from the weather settings.
func NewClientFromConfig() *Client {
	return NewClient(
		viper.GetString(key.WeatherAPIHost),
		time.Duration(viper.GetInt(key.WeatherCacheMinutes))*time.Minute,
	)
}

// LocationFromConfig returns the configured default location.
func LocationFromConfig() Location {
	return Location{
		Lat:      viper.GetFloat64(key.WeatherLatitude),
		Long:     viper.GetFloat64(key.WeatherLongitude),
		CityName: viper.GetString(key.WeatherCity),
	}
}

// URL builds the forecast request URL for loc.
func (c *Client) URL(loc Location) string {
	query := url.Values{}
	query.Set("latitude", strconv.FormatFloat(loc.Lat, 'f', -1, 64))
	query.Set("longitude", strconv.FormatFloat(loc.Long, 'f', -1, 64))
	query.Set("current", "temperature_2m,wind_speed_10m")

	return c.Host + forecastEndpoint + "?" + query.Encode()
}

// Get returns the current weather at loc.
func (c *Client) Get(ctx context.Context, loc Location) (*Weather, error) {
	address := c.URL(loc)

	if c.memory != nil {
		if w, ok := c.memory.Get(address); ok {
			return w, nil
		}
	}

	v, err, shared := c.group.Do(address, func() (any, error) {
		return c.fetch(ctx, loc, address)
	})
	if err != nil {
		return nil, err
	}
	if shared {
		log.Tracef("forecast request for %s shared", loc)
	}

	w := v.(*Weather)
	if c.memory != nil {
		c.memory.Add(address, w)
	}
	return w, nil
}

func (c *Client) fetch(ctx context.Context, loc Location, address string) (*Weather, error) {
	cacheKey := cache.GenerateKey(address)

	var cached Weather
	if c.cache.Read(cacheKey, &cached) {
		log.Debugf("forecast for %s served from cache", loc)
		return &cached, nil
	}

	resp, err := network.Get(ctx, address, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch forecast: %w", err)
	}
	defer resp.Body.Close()

	var w Weather
	if err := json.NewDecoder(resp.Body).Decode(&w); err != nil {
		return nil, fmt.Errorf("decode forecast: %w", err)
	}

	if err := c.cache.Write(cacheKey, w); err != nil {
		log.Warnf("cache forecast: %v", err)
	}

	log.With(log.Fields{"city": loc.CityName, "temperature": w.Current.Temperature}).Info("forecast fetched")
	return &w, nil
}
