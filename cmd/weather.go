package cmd

import (
	"context"
	"encoding/json"

	"github.com/nimbus-cli/nimbus/color"
	"github.com/nimbus-cli/nimbus/icon"
	"github.com/nimbus-cli/nimbus/place"
	"github.com/nimbus-cli/nimbus/style"
	"github.com/nimbus-cli/nimbus/weather"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(weatherCmd)

	weatherCmd.Flags().StringP("place", "p", "", "A remembered place to show the weather for")
	lo.Must0(weatherCmd.RegisterFlagCompletionFunc("place", completionPlaces))
	weatherCmd.Flags().Float64("lat", 0, "Latitude of the location")
	weatherCmd.Flags().Float64("long", 0, "Longitude of the location")
	weatherCmd.Flags().BoolP("json", "j", false, "Print the raw forecast as JSON")

	weatherCmd.MarkFlagsRequiredTogether("lat", "long")
	weatherCmd.MarkFlagsMutuallyExclusive("place", "lat")
}

var weatherCmd = &cobra.Command{
	Use:   "weather",
	Short: "Print the current weather",
	Run: func(cmd *cobra.Command, args []string) {
		var (
			loc weather.Location
			err error
		)

		if cmd.Flags().Changed("lat") {
			loc = weather.Location{
				Lat:  lo.Must(cmd.Flags().GetFloat64("lat")),
				Long: lo.Must(cmd.Flags().GetFloat64("long")),
			}
			handleErr(place.Validate(loc.Lat, loc.Long))
		} else {
			loc, err = resolveLocation(lo.Must(cmd.Flags().GetString("place")))
			handleErr(err)
		}

		w, err := weather.NewClientFromConfig().Get(context.Background(), loc)
		handleErr(err)

		if lo.Must(cmd.Flags().GetBool("json")) {
			handleErr(json.NewEncoder(cmd.OutOrStdout()).Encode(w))
			return
		}

		cmd.Printf("%s %s\n", icon.Get(icon.Place), style.Fg(color.Purple)(loc.String()))
		cmd.Println(style.Faint(weather.FormatTime(w.Current.Time.Time)))
		cmd.Printf("%s %s\n", icon.Get(icon.Weather), style.Bold(w.Temperature()))
		cmd.Printf("%s %s\n", style.Faint("wind"), w.WindSpeed())
	},
}
