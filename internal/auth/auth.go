// Package auth keeps the bearer token shared by concurrent translate calls.
//
// The token carries no expiry; a failed request is the only signal that it
// went stale, and the caller reacts by calling Refresh. Overlapping refreshes
// are not coalesced: each one fetches and the last to finish wins.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
)

var ErrEmptyToken = errors.New("auth endpoint returned an empty token")

type Fetcher interface {
	FetchToken(ctx context.Context) (string, error)
}

type Manager struct {
	fetcher Fetcher

	mu    sync.RWMutex
	token string
}

// New returns a Manager holding token, or a freshly fetched one when token
// is empty.
func New(ctx context.Context, fetcher Fetcher, token string) (*Manager, error) {
	m := &Manager{fetcher: fetcher, token: strings.TrimSpace(token)}
	if m.token != "" {
		return m, nil
	}
	if err := m.Refresh(ctx); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Manager) Token() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token
}

// Fetch asks the auth endpoint for a new token without storing it.
func (m *Manager) Fetch(ctx context.Context) (string, error) {
	if m.fetcher == nil {
		return "", errors.New("auth: no token fetcher configured")
	}
	tok, err := m.fetcher.FetchToken(ctx)
	if err != nil {
		return "", fmt.Errorf("fetch token: %w", err)
	}
	tok = strings.TrimSpace(tok)
	if tok == "" {
		return "", ErrEmptyToken
	}
	return tok, nil
}

// Refresh replaces the stored token with a new one. Requests already using
// the old token are not interrupted.
func (m *Manager) Refresh(ctx context.Context) error {
	tok, err := m.Fetch(ctx)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.token = tok
	m.mu.Unlock()
	return nil
}
