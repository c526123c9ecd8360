package cmd

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/invopop/jsonschema"
	"github.com/nimbus-cli/nimbus/filesystem"
	"github.com/nimbus-cli/nimbus/inline"
	"github.com/nimbus-cli/nimbus/key"
	"github.com/nimbus-cli/nimbus/playback"
	"github.com/nimbus-cli/nimbus/story"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(inlineCmd)

	inlineCmd.Flags().StringP("actions", "a", "", "Comma separated actions to apply after loading")
	inlineCmd.Flags().BoolP("until-finished", "f", false, "Keep playing until the last story completes")
	inlineCmd.Flags().DurationP("timeout", "t", 0, "Give up after this long; zero waits forever")
	inlineCmd.Flags().BoolP("json", "j", false, "Format the command output as a JSON object")
	inlineCmd.Flags().BoolP("unseen", "u", false, "Skip stories that were already watched to the end")
	inlineCmd.Flags().BoolP("record", "r", false, "Record the resulting progress in the history")
	inlineCmd.Flags().StringP("output", "o", "", "Specify a file path to write the command output")

	inlineCmd.Flags().Bool("autoplay", true, "Start playing as soon as the stories are loaded")
	lo.Must0(viper.BindPFlag(key.PlaybackAutoplay, inlineCmd.Flags().Lookup("autoplay")))
}

var inlineCmd = &cobra.Command{
	Use:   "inline",
	Short: "Play stories without the interactive interface",
	Long: `Load the stories, apply a list of actions and print where playback ended.

Actions:
  next - move to the next story
  prev - restart the previous story
  toggle - pause or resume
  play - resume
  pause - pause
  wait:[duration] - let playback run, e.g. wait:1.5s`,
	Example: "nimbus inline --actions next,next,wait:2s --json",
	Run: func(cmd *cobra.Command, args []string) {
		actions, err := inline.ParseActions(lo.Must(cmd.Flags().GetString("actions")))
		handleErr(err)

		var writer io.Writer
		if output := lo.Must(cmd.Flags().GetString("output")); output != "" {
			file, err := filesystem.API().Create(output)
			handleErr(err)
			defer file.Close()
			writer = file
		} else {
			writer = os.Stdout
		}

		options := &inline.Options{
			Out:           writer,
			Source:        story.FromConfig(),
			Scheduler:     playback.NewTickerScheduler(1),
			Playback:      playback.OptionsFromConfig(),
			Actions:       actions,
			UntilFinished: lo.Must(cmd.Flags().GetBool("until-finished")),
			Timeout:       lo.Must(cmd.Flags().GetDuration("timeout")),
			Unseen:        lo.Must(cmd.Flags().GetBool("unseen")),
			Record:        lo.Must(cmd.Flags().GetBool("record")),
			Json:          lo.Must(cmd.Flags().GetBool("json")),
		}

		handleErr(inline.Run(context.Background(), options))
	},
}

func init() {
	inlineCmd.AddCommand(inlineSchemaCmd)
}

var inlineSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Generate the JSON schema of the inline output",
	Run: func(cmd *cobra.Command, args []string) {
		reflector := new(jsonschema.Reflector)
		reflector.Anonymous = true
		reflector.Namer = func(t reflect.Type) string {
			name := t.Name()
			switch strings.ToLower(name) {
			case "item", "story", "output":
				return filepath.Base(t.PkgPath()) + "." + name
			}

			return name
		}

		handleErr(json.NewEncoder(os.Stdout).Encode(reflector.Reflect(&inline.Output{})))
	},
}
