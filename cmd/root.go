// Package cmd implements the command-line interface for nimbus.
package cmd

import (
	"fmt"
	"os"
	"strings"

	cc "github.com/ivanpirog/coloredcobra"
	"github.com/nimbus-cli/nimbus/color"
	"github.com/nimbus-cli/nimbus/constant"
	"github.com/nimbus-cli/nimbus/icon"
	"github.com/nimbus-cli/nimbus/key"
	"github.com/nimbus-cli/nimbus/log"
	"github.com/nimbus-cli/nimbus/place"
	"github.com/nimbus-cli/nimbus/playback"
	"github.com/nimbus-cli/nimbus/story"
	"github.com/nimbus-cli/nimbus/style"
	"github.com/nimbus-cli/nimbus/tui"
	"github.com/nimbus-cli/nimbus/util"
	"github.com/nimbus-cli/nimbus/version"
	"github.com/nimbus-cli/nimbus/weather"
	"github.com/nimbus-cli/nimbus/where"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Print the application version")

	rootCmd.PersistentFlags().StringP("icons", "I", "", "Set the visual icon variant (e.g., nerd, emoji, squares)")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("icons", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return icon.AvailableVariants(), cobra.ShellCompDirectiveDefault
	}))
	lo.Must0(viper.BindPFlag(key.IconsVariant, rootCmd.PersistentFlags().Lookup("icons")))

	rootCmd.PersistentFlags().BoolP("write-history", "H", true, "Record how far each story was watched")
	lo.Must0(viper.BindPFlag(key.StoriesRecordHistory, rootCmd.PersistentFlags().Lookup("write-history")))

	rootCmd.PersistentFlags().String("feed", "", "Story feed URL; the built-in stories are used when empty")
	lo.Must0(viper.BindPFlag(key.StoriesFeedURL, rootCmd.PersistentFlags().Lookup("feed")))

	rootCmd.Flags().StringP("place", "p", "", "Show the weather for a remembered place")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("place", completionPlaces))

	rootCmd.Flags().BoolP("stories", "s", false, "Open the stories screen directly")
	rootCmd.Flags().BoolP("unseen", "u", false, "Hide stories that were already watched to the end")

	rootCmd.SetOut(os.Stdout)

	helpFunc := rootCmd.HelpFunc()
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		helpFunc(cmd, args)
		version.Notify()
	})

	go func() {
		_ = util.Delete(where.Temp())
	}()
}

var rootCmd = &cobra.Command{
	Use:   constant.Nimbus,
	Short: "Current weather and short stories in your terminal",
	Long: constant.AsciiArtLogo + "\n" +
		style.New().Italic(true).Foreground(color.HiCyan).Render("    - Current weather and short stories in your terminal"),
	Run: func(cmd *cobra.Command, args []string) {
		if cmd.Flags().Changed("version") {
			versionCmd.Run(versionCmd, args)
			return
		}

		loc, err := resolveLocation(lo.Must(cmd.Flags().GetString("place")))
		handleErr(err)

		options := tui.Options{
			Stories:  lo.Must(cmd.Flags().GetBool("stories")),
			Unseen:   lo.Must(cmd.Flags().GetBool("unseen")),
			Location: loc,
			Weather:  weather.NewClientFromConfig(),
			Source:   story.FromConfig(),
			Playback: playback.OptionsFromConfig(),
		}
		handleErr(tui.Run(&options))
	},
}

// Execute runs the root command.
func Execute() {
	if viper.GetBool(key.CliColored) {
		cc.Init(&cc.Config{
			RootCmd:       rootCmd,
			Headings:      cc.HiCyan + cc.Bold + cc.Underline,
			Commands:      cc.HiYellow + cc.Bold,
			Example:       cc.Italic,
			ExecName:      cc.Bold,
			Flags:         cc.Bold,
			FlagsDataType: cc.Italic + cc.HiBlue,
		})
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func handleErr(err error) {
	if err != nil {
		log.Error(err)
		_, _ = fmt.Fprintf(os.Stderr, "%s %s\n", icon.Get(icon.Fail), strings.Trim(err.Error(), " \n"))
		os.Exit(1)
	}
}

// resolveLocation returns the remembered place with the given name, or the
// configured default location when name is empty.
func resolveLocation(name string) (weather.Location, error) {
	if name == "" {
		return weather.LocationFromConfig(), nil
	}

	p, err := place.Get(name)
	if err != nil {
		if suggestion, ok := place.Suggest(name).Get(); ok {
			return weather.Location{}, fmt.Errorf("%w, did you mean %s?", err, style.Fg(color.Yellow)(suggestion))
		}
		return weather.Location{}, err
	}

	if err := place.Remember(p.Name, 1); err != nil {
		log.Warnf("remember place %s: %v", p.Name, err)
	}

	return weather.Location{Lat: p.Latitude, Long: p.Longitude, CityName: p.Name}, nil
}

func completionPlaces(_ *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return place.SuggestMany(toComplete), cobra.ShellCompDirectiveNoFileComp
}
