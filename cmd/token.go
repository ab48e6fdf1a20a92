package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"edgetrans/internal/app"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Manage the saved bearer token",
}

var tokenSetCmd = &cobra.Command{
	Use:   "set <token>",
	Short: "Save EDGETRANS_TOKEN to ~/.edgetrans/.env",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return app.RunSetToken(args[0])
	},
}

var tokenFetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch a fresh token from the auth endpoint and print it",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEnv(func(env *app.Env) error {
			tok, err := app.RunFetchToken(cmd.Context(), env.NewAPI())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), tok)
			return nil
		})
	},
}

func init() {
	tokenCmd.AddCommand(tokenSetCmd)
	tokenCmd.AddCommand(tokenFetchCmd)
}
