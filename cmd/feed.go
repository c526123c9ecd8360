package cmd

import (
	"errors"
	"fmt"

	"github.com/AlecAivazis/survey/v2"
	"github.com/nimbus-cli/nimbus/auth"
	"github.com/nimbus-cli/nimbus/color"
	"github.com/nimbus-cli/nimbus/icon"
	"github.com/nimbus-cli/nimbus/key"
	"github.com/nimbus-cli/nimbus/style"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(feedCmd)
}

var feedCmd = &cobra.Command{
	Use:   "feed",
	Short: "Manage access to a remote story feed",
}

func init() {
	feedCmd.AddCommand(feedLoginCmd)
}

var feedLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Store a bearer token for the story feed in the system keyring",
	Run: func(cmd *cobra.Command, args []string) {
		var token string
		input := survey.Password{Message: "Feed token"}
		handleErr(survey.AskOne(&input, &token, survey.WithValidator(survey.Required)))

		handleErr(auth.SetToken(token))
		fmt.Printf("%s token saved\n", icon.Get(icon.Success))
	},
}

func init() {
	feedCmd.AddCommand(feedLogoutCmd)
}

var feedLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Remove the stored feed token",
	Run: func(cmd *cobra.Command, args []string) {
		err := auth.DeleteToken()
		if errors.Is(err, auth.ErrNoToken) {
			fmt.Println(style.Faint("no token stored"))
			return
		}
		handleErr(err)
		fmt.Printf("%s token removed\n", icon.Get(icon.Success))
	},
}

func init() {
	feedCmd.AddCommand(feedStatusCmd)
}

var feedStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show which feed is used and whether a token is stored",
	Run: func(cmd *cobra.Command, args []string) {
		url := viper.GetString(key.StoriesFeedURL)
		if url == "" {
			cmd.Println(style.Fg(color.Yellow)("built-in stories"))
		} else {
			cmd.Println(style.Fg(color.Purple)(url))
		}

		if _, err := auth.GetToken(); err == nil {
			cmd.Printf("%s token stored\n", icon.Get(icon.Success))
		} else {
			cmd.Printf("%s no token\n", icon.Get(icon.Fail))
		}
	},
}
