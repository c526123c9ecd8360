package main

import (
	"time"

	"github.com/nimbus-cli/nimbus/cmd"
	"github.com/nimbus-cli/nimbus/config"
	"github.com/nimbus-cli/nimbus/internal/cache"
	"github.com/nimbus-cli/nimbus/key"
	"github.com/nimbus-cli/nimbus/log"
	"github.com/nimbus-cli/nimbus/where"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

func main() {
	lo.Must0(config.Setup())
	lo.Must0(log.Setup())

	go func() {
		ttl := time.Duration(viper.GetInt(key.WeatherCacheMinutes)) * time.Minute
		if removed, err := cache.New(where.Forecasts(), ttl).CollectGarbage(); err != nil {
			log.Warnf("collect forecast cache: %v", err)
		} else if removed > 0 {
			log.Debugf("removed %d expired forecasts", removed)
		}
	}()

	cmd.Execute()
}
