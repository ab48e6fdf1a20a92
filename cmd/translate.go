package cmd

import (
	"github.com/spf13/cobra"

	"edgetrans/internal/app"
)

var (
	trTo        string
	trFrom      string
	trFiles     []string
	trFormat    string
	trOut       string
	trRetry     int
	trChunkSize int
)

var translateCmd = &cobra.Command{
	Use:   "translate [text ...]",
	Short: "Translate text arguments and/or lines of files",
	Example: `  edgetrans translate --to ja "Hello" "How are you?"
  edgetrans translate --to de --from en --file strings.txt --format tsv
  cat lines.txt | edgetrans translate --to fr --file -`,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := app.TranslateOptions{
			To:     trTo,
			From:   trFrom,
			Args:   args,
			Files:  trFiles,
			Format: trFormat,
			Out:    trOut,
			Stdin:  cmd.InOrStdin(),
			Stdout: cmd.OutOrStdout(),
		}
		if cmd.Flags().Changed("retry") {
			opts.Retry = &trRetry
		}
		if cmd.Flags().Changed("chunk-size") {
			opts.ChunkSize = &trChunkSize
		}
		return withEnv(func(env *app.Env) error {
			return app.RunTranslate(cmd.Context(), env, env.NewAPI(), opts)
		})
	},
}

func init() {
	f := translateCmd.Flags()
	f.StringVarP(&trTo, "to", "t", "", "target language code")
	f.StringVarP(&trFrom, "from", "f", "", "source language code (detected per chunk when omitted)")
	f.StringArrayVar(&trFiles, "file", nil, "read one item per line from a file or directory; - for stdin")
	f.StringVar(&trFormat, "format", "text", "output format: text, tsv or json")
	f.StringVarP(&trOut, "out", "o", "", "write output to this file instead of stdout")
	f.IntVar(&trRetry, "retry", 0, "retries per chunk for non-throttle errors (default from config)")
	f.IntVar(&trChunkSize, "chunk-size", 0, "items per request (default from config)")
	_ = translateCmd.MarkFlagRequired("to")
}
