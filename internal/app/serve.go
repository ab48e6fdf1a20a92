package app

import (
	"context"
	"time"

	"edgetrans/internal/server"
	"edgetrans/internal/translate"
)

type ServeOptions struct {
	Addr           string
	Version        string
	RequestTimeout time.Duration
}

func RunServe(ctx context.Context, env *Env, api translate.API, opts ServeOptions) error {
	tr, err := env.NewTranslator(ctx, api)
	if err != nil {
		return err
	}
	defer tr.Close()
	srv := server.New(server.Config{
		Addr:           opts.Addr,
		Translator:     tr,
		Logger:         env.Log.Logger,
		Version:        opts.Version,
		RequestTimeout: opts.RequestTimeout,
	})
	return srv.Run(ctx)
}
