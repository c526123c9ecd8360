package cmd

import (
	"github.com/nimbus-cli/nimbus/playback"
	"github.com/nimbus-cli/nimbus/story"
	"github.com/nimbus-cli/nimbus/tui"
	"github.com/nimbus-cli/nimbus/weather"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(storiesCmd)
	storiesCmd.Flags().BoolP("unseen", "u", false, "Hide stories that were already watched to the end")
}

var storiesCmd = &cobra.Command{
	Use:   "stories",
	Short: "Watch the latest stories",
	Long: `Open the stories screen. Stories advance on their own; use ← and → to
move between them, space to pause and esc to leave.`,
	Run: func(cmd *cobra.Command, args []string) {
		options := tui.Options{
			Stories:  true,
			Unseen:   lo.Must(cmd.Flags().GetBool("unseen")),
			Location: weather.LocationFromConfig(),
			Weather:  weather.NewClientFromConfig(),
			Source:   story.FromConfig(),
			Playback: playback.OptionsFromConfig(),
		}
		handleErr(tui.Run(&options))
	},
}
