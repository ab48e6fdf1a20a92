package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"edgetrans/internal/config"
	"edgetrans/internal/translate"
)

// RunConfigInit writes the default config to path. An existing file is kept
// unless force is set.
func RunConfigInit(path string, force bool, w io.Writer) error {
	p, err := config.ResolvePath(path)
	if err != nil {
		return err
	}
	if _, err := os.Stat(p); err == nil && !force {
		return fmt.Errorf("config already exists: %s (use --force to overwrite)", p)
	} else if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	if err := config.Save(p, config.Default()); err != nil {
		return err
	}
	fmt.Fprintf(w, "wrote %s\n", p)
	return nil
}

// RunConfigShow prints the effective config as YAML.
func RunConfigShow(env *Env, w io.Writer) error {
	b, err := yaml.Marshal(env.Config)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	fmt.Fprintf(w, "# %s\n", env.ConfigPath)
	_, err = w.Write(b)
	return err
}

func RunSetToken(token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return errors.New("token is empty")
	}
	return config.SaveToken(token)
}

// RunFetchToken asks the auth endpoint for a fresh token. Nothing is saved;
// export it as EDGETRANS_TOKEN or pass it to "token set".
func RunFetchToken(ctx context.Context, api translate.API) (string, error) {
	tok, err := api.FetchToken(ctx)
	if err != nil {
		return "", fmt.Errorf("%w: %v", translate.ErrAuthFetch, err)
	}
	return tok, nil
}
