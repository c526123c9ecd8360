// Package version checks for newer releases.
package version

import (
	"context"
	"fmt"
	"time"

	"github.com/nimbus-cli/nimbus/color"
	"github.com/nimbus-cli/nimbus/constant"
	"github.com/nimbus-cli/nimbus/icon"
	"github.com/nimbus-cli/nimbus/key"
	"github.com/nimbus-cli/nimbus/style"
	"github.com/nimbus-cli/nimbus/util"
	"github.com/spf13/viper"
)

// Notify prints a notice when a newer release exists.
func Notify() {
	if !viper.GetBool(key.CliVersionCheck) {
		return
	}

	erase := util.PrintErasable(fmt.Sprintf("%s Checking if new version is available...", icon.Get(icon.Progress)))
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	version, err := Latest(ctx)
	erase()
	if err != nil {
		return
	}
	if comp, err := Compare(version, constant.Version); err != nil || comp <= 0 {
		return
	}

	fmt.Printf(`
%s New version is available %s %s
%s

`,
		style.Fg(color.Green)("▇▇▇"),
		style.Bold(version),
		style.Faint(fmt.Sprintf("(You're on %s)", constant.Version)),
		style.Faint("https://github.com/nimbus-cli/nimbus/releases/tag/v"+version),
	)
}
