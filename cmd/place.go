package cmd

import (
	"fmt"
	"strconv"

	"github.com/AlecAivazis/survey/v2"
	"github.com/nimbus-cli/nimbus/color"
	"github.com/nimbus-cli/nimbus/icon"
	"github.com/nimbus-cli/nimbus/place"
	"github.com/nimbus-cli/nimbus/style"
	"github.com/nimbus-cli/nimbus/util"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(placeCmd)
}

var placeCmd = &cobra.Command{
	Use:   "place",
	Short: "Manage remembered places",
}

func init() {
	placeCmd.AddCommand(placeAddCmd)

	placeAddCmd.Flags().Float64("lat", 0, "Latitude of the place")
	placeAddCmd.Flags().Float64("long", 0, "Longitude of the place")
}

var placeAddCmd = &cobra.Command{
	Use:   "add [name]",
	Short: "Remember a place under a name",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		lat := askCoordinate(cmd, "lat", "Latitude")
		long := askCoordinate(cmd, "long", "Longitude")

		handleErr(place.Add(args[0], lat, long))
		fmt.Printf("%s %s remembered\n", icon.Get(icon.Success), style.Fg(color.Purple)(args[0]))
	},
}

// askCoordinate reads the flag when it was given and prompts otherwise.
func askCoordinate(cmd *cobra.Command, flag, title string) float64 {
	if cmd.Flags().Changed(flag) {
		return lo.Must(cmd.Flags().GetFloat64(flag))
	}

	var response string
	input := survey.Input{Message: title}
	handleErr(survey.AskOne(&input, &response, survey.WithValidator(func(ans any) error {
		_, err := strconv.ParseFloat(ans.(string), 64)
		return err
	})))

	return lo.Must(strconv.ParseFloat(response, 64))
}

func init() {
	placeCmd.AddCommand(placeListCmd)
}

var placeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List remembered places, most used first",
	Run: func(cmd *cobra.Command, args []string) {
		places := place.List()
		if len(places) == 0 {
			cmd.Println(style.Faint("no places remembered"))
			return
		}

		for _, p := range places {
			cmd.Printf("%s %s\n", icon.Get(icon.Place), p.String())
		}
		cmd.Println(style.Faint(util.Quantify(len(places), "place", "places")))
	},
}

func init() {
	placeCmd.AddCommand(placeRemoveCmd)
}

var placeRemoveCmd = &cobra.Command{
	Use:               "remove [name]",
	Short:             "Forget a remembered place",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completionPlaces,
	Run: func(cmd *cobra.Command, args []string) {
		handleErr(place.Remove(args[0]))
		fmt.Printf("%s %s forgotten\n", icon.Get(icon.Success), args[0])
	},
}
