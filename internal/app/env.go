package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"edgetrans/internal/client"
	"edgetrans/internal/config"
	"edgetrans/internal/logging"
	"edgetrans/internal/translate"
)

// Options are the process-wide flags shared by every command.
type Options struct {
	ConfigPath string
	Verbose    bool
	LogFile    string
	LogLevel   string
}

// Env is the loaded config plus the logger built from it.
type Env struct {
	ConfigPath string
	Config     config.Config
	Log        *logging.Logger
}

// Setup resolves and loads the config file, then builds the logger. Flags
// win over the log section of the file.
func Setup(opts Options) (*Env, error) {
	path, err := config.ResolvePath(opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	level := cfg.Log.Level
	if opts.LogLevel != "" {
		level = opts.LogLevel
	}
	if opts.Verbose && opts.LogLevel == "" {
		level = ""
	}
	file := cfg.Log.File
	if opts.LogFile != "" {
		file = opts.LogFile
	}
	lg, err := logging.New(logging.Options{Level: level, Verbose: opts.Verbose, File: file})
	if err != nil {
		return nil, err
	}
	return &Env{ConfigPath: path, Config: cfg, Log: lg}, nil
}

func (e *Env) Close() error {
	if e == nil || e.Log == nil {
		return nil
	}
	return e.Log.Close()
}

// NewAPI builds the HTTP client for the configured endpoints. In verbose mode
// every request and response is emitted as an event, with token bodies
// redacted.
func (e *Env) NewAPI() *client.API {
	api := client.New(e.Config.Endpoints(), e.Config.Timeout())
	api.SetLogger(e.Log.Logger)
	if !e.Log.Verbose() {
		return api
	}
	authURL := e.Config.Endpoint.AuthURL
	api.SetTrace(func(ev client.TraceEvent) {
		resp := ev.Response
		if strings.HasPrefix(ev.URL, authURL) && resp != "" && ev.StatusCode < 300 {
			resp = fmt.Sprintf("<token len=%d>", len(resp))
		}
		e.Log.Event("edge_http_"+ev.Stage, map[string]any{
			"method":      ev.Method,
			"url":         ev.URL,
			"status_code": ev.StatusCode,
			"duration_ms": ev.DurationMs,
			"request":     ev.Request,
			"response":    resp,
			"error":       ev.Error,
		})
	})
	return api
}

// NewTranslator wires the client into a translator. A token from the
// environment or ~/.edgetrans/.env skips the first auth call.
func (e *Env) NewTranslator(ctx context.Context, api translate.API) (*translate.Edge, error) {
	opts := e.Config.TranslateOptions()
	opts.Logger = e.Log.Logger
	token, err := config.LoadToken()
	switch {
	case err == nil:
		opts.Token = token
		e.Log.Debug("using configured token")
	case errors.Is(err, config.ErrTokenNotConfigured):
	default:
		return nil, err
	}
	return translate.New(ctx, api, opts)
}
