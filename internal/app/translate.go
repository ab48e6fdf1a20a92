package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"edgetrans/internal/input"
	"edgetrans/internal/output"
	"edgetrans/internal/translate"
)

type TranslateOptions struct {
	To     string
	From   string
	Args   []string
	Files  []string
	Format string
	// Out is a file path; empty writes to Stdout.
	Out string
	// Retry and ChunkSize override the config file when set.
	Retry     *int
	ChunkSize *int

	Stdin  io.Reader
	Stdout io.Writer
}

func RunTranslate(ctx context.Context, env *Env, api translate.API, opts TranslateOptions) error {
	if opts.Format == "" {
		opts.Format = output.FormatText
	}
	if !output.ValidFormat(opts.Format) {
		return fmt.Errorf("unknown output format %q", opts.Format)
	}
	to, err := translate.ParseLanguage(opts.To)
	if err != nil {
		return fmt.Errorf("--to: %w", err)
	}
	var callOpts []translate.CallOption
	if opts.From != "" {
		from, err := translate.ParseLanguage(opts.From)
		if err != nil {
			return fmt.Errorf("--from: %w", err)
		}
		callOpts = append(callOpts, translate.WithFrom(from))
	}
	if opts.Retry != nil {
		callOpts = append(callOpts, translate.WithRetry(*opts.Retry))
	}
	if opts.ChunkSize != nil {
		callOpts = append(callOpts, translate.WithChunkSize(*opts.ChunkSize))
	}
	if opts.Stdin == nil {
		opts.Stdin = os.Stdin
	}
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}

	texts, err := input.Collect(opts.Args, opts.Files, opts.Stdin)
	if err != nil {
		return err
	}
	if len(texts) == 0 {
		return fmt.Errorf("nothing to translate: pass text arguments or --file")
	}

	start := time.Now()
	tr, err := env.NewTranslator(ctx, api)
	if err != nil {
		return err
	}
	defer tr.Close()

	results, err := tr.Translate(ctx, to, texts, callOpts...)
	if err != nil {
		return err
	}
	env.Log.Event("translate_done", map[string]any{
		"items":       len(results),
		"to":          string(to),
		"duration_ms": time.Since(start).Milliseconds(),
	})
	env.Log.Debug("translated", "items", len(results), "to", to, "elapsed", time.Since(start).Round(time.Millisecond))

	if opts.Out != "" {
		if err := output.WriteFile(opts.Out, results, opts.Format); err != nil {
			return err
		}
		env.Log.Info("wrote translations", "path", opts.Out, "items", len(results))
		return nil
	}
	return output.Write(opts.Stdout, results, opts.Format)
}
