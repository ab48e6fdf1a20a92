package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"edgetrans/internal/util"
)

// TokenEnvName holds a pre-fetched bearer token. The process environment is
// checked first, then ~/.edgetrans/.env.
const TokenEnvName = "EDGETRANS_TOKEN"

var ErrTokenNotConfigured = errors.New("token not configured")

func LoadToken() (string, error) {
	if v := strings.TrimSpace(os.Getenv(TokenEnvName)); v != "" {
		return v, nil
	}
	p, err := util.DefaultEnvPath()
	if err != nil {
		return "", err
	}
	b, err := os.ReadFile(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", ErrTokenNotConfigured
		}
		return "", fmt.Errorf("read .env: %w", err)
	}
	for _, raw := range strings.Split(string(b), "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		k, v, ok := strings.Cut(line, "=")
		if !ok || strings.TrimSpace(k) != TokenEnvName {
			continue
		}
		value := strings.Trim(strings.TrimSpace(v), `"'`)
		if value == "" {
			return "", ErrTokenNotConfigured
		}
		return value, nil
	}
	return "", ErrTokenNotConfigured
}

// SaveToken writes the token into ~/.edgetrans/.env, replacing an existing
// entry and leaving other lines alone.
func SaveToken(token string) error {
	p, err := util.DefaultEnvPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	line := fmt.Sprintf("%s=%s", TokenEnvName, token)

	b, err := os.ReadFile(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return os.WriteFile(p, []byte(line+"\n"), 0o600)
		}
		return fmt.Errorf("read .env: %w", err)
	}

	lines := strings.Split(string(b), "\n")
	replaced := false
	for i, raw := range lines {
		txt := strings.TrimSpace(raw)
		if txt == "" || strings.HasPrefix(txt, "#") {
			continue
		}
		k, _, ok := strings.Cut(txt, "=")
		if ok && strings.TrimSpace(k) == TokenEnvName {
			lines[i] = line
			replaced = true
		}
	}
	if !replaced {
		if len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) != "" {
			lines = append(lines, "")
		}
		lines = append(lines, line)
	}
	content := strings.Join(lines, "\n")
	if !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	if err := os.WriteFile(p, []byte(content), 0o600); err != nil {
		return fmt.Errorf("write .env: %w", err)
	}
	return nil
}
