package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"edgetrans/internal/app"
)

var (
	serveAddr    string
	serveTimeout time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve translations over HTTP",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEnv(func(env *app.Env) error {
			return app.RunServe(cmd.Context(), env, env.NewAPI(), app.ServeOptions{
				Addr:           serveAddr,
				Version:        Version,
				RequestTimeout: serveTimeout,
			})
		})
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "127.0.0.1:8080", "listen address")
	serveCmd.Flags().DurationVar(&serveTimeout, "request-timeout", 0, "per-request translate timeout (0 = none)")
}
