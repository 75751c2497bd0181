package cmd

import (
	"github.com/oshokin/admin-client/internal/api/user"
	"github.com/oshokin/admin-client/internal/app"
	"github.com/oshokin/admin-client/internal/logger"
	"github.com/spf13/cobra"
)

var (
	//nolint:gochecknoglobals // Cobra command requires a global definition.
	userCmd = &cobra.Command{
		Use:   "user",
		Short: "Session management commands",
		Long: `Manage your session on the admin backend.

Use 'user login' to obtain a token, 'user info' to see who you are logged in as
and 'user logout' to end the session.`,
	}

	//nolint:gochecknoglobals // Cobra command requires a global definition.
	userLoginCmd = &cobra.Command{
		Use:   "login",
		Short: "Log in and save the session token",
		Long: `Sends your credentials to the login endpoint.

The returned token is saved as auth_token in the configuration file and is
sent with every following request.`,
		Args: cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			flags := cmd.Flags()

			username, _ := flags.GetString("username")
			password, _ := flags.GetString("password")

			err := app.ExecuteUserLoginCommand(cmd.Context(), appConfig, streamsOf(cmd), user.Credentials{
				Username: username,
				Password: password,
			})
			if err != nil {
				logger.Fatalf(cmd.Context(), "Login failed: %v", err)
			}
		},
	}

	//nolint:gochecknoglobals // Cobra command requires a global definition.
	userInfoCmd = &cobra.Command{
		Use:   "info",
		Short: "Show the profile of the logged-in user",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			if err := app.ExecuteUserInfoCommand(cmd.Context(), appConfig, streamsOf(cmd)); err != nil {
				logger.Fatalf(cmd.Context(), "Failed to get user info: %v", err)
			}
		},
	}

	//nolint:gochecknoglobals // Cobra command requires a global definition.
	userLogoutCmd = &cobra.Command{
		Use:   "logout",
		Short: "Log out and forget the session token",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			if err := app.ExecuteUserLogoutCommand(cmd.Context(), appConfig, streamsOf(cmd)); err != nil {
				logger.Fatalf(cmd.Context(), "Logout failed: %v", err)
			}
		},
	}
)

//nolint:gochecknoinits // Cobra requires the init function to set up commands.
func init() {
	userLoginCmdFlags := userLoginCmd.Flags()

	userLoginCmdFlags.StringP("username", "u", "", "account name.")
	userLoginCmdFlags.StringP("password", "p", "", "account password.")

	_ = userLoginCmd.MarkFlagRequired("username")
	_ = userLoginCmd.MarkFlagRequired("password")

	userCmd.AddCommand(userLoginCmd, userInfoCmd, userLogoutCmd)
	rootCmd.AddCommand(userCmd)
}

func streamsOf(cmd *cobra.Command) app.Streams {
	return app.Streams{
		In:  cmd.InOrStdin(),
		Out: cmd.OutOrStdout(),
	}
}
