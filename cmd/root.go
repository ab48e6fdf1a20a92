package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"edgetrans/internal/app"
)

var (
	cfgPath     string
	verbose     bool
	logFile     string
	logLevel    string
	showVersion bool
)

var rootCmd = &cobra.Command{
	Use:   "edgetrans",
	Short: "Translate text through the Edge translate endpoint",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if showVersion {
			printVersion(cmd.OutOrStdout())
			return nil
		}
		return cmd.Help()
	},
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			os.Exit(130)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func appOptions() app.Options {
	return app.Options{
		ConfigPath: cfgPath,
		Verbose:    verbose,
		LogFile:    logFile,
		LogLevel:   logLevel,
	}
}

// withEnv loads config and logging for the duration of fn.
func withEnv(fn func(env *app.Env) error) error {
	env, err := app.Setup(appOptions())
	if err != nil {
		return err
	}
	defer func() { _ = env.Close() }()
	return fn(env)
}

func init() {
	rootCmd.SilenceUsage = true
	rootCmd.SilenceErrors = true
	rootCmd.CompletionOptions.HiddenDefaultCmd = true

	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "config file (default ~/.edgetrans/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "emit JSON debug logs and HTTP trace events")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "also append logs to this file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "debug, info, warn or error")
	rootCmd.Flags().BoolVarP(&showVersion, "version", "v", false, "print version")

	rootCmd.AddCommand(translateCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(tokenCmd)
	rootCmd.AddCommand(versionCmd)
}
