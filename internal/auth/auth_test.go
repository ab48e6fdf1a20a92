package auth

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
)

type fetchFunc func(ctx context.Context) (string, error)

func (f fetchFunc) FetchToken(ctx context.Context) (string, error) { return f(ctx) }

func counter() (Fetcher, *atomic.Int32) {
	var n atomic.Int32
	return fetchFunc(func(context.Context) (string, error) {
		return fmt.Sprintf("tok-%d", n.Add(1)), nil
	}), &n
}

func TestNew_UsesSuppliedToken(t *testing.T) {
	f, n := counter()
	m, err := New(context.Background(), f, "  given  ")
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	if m.Token() != "given" {
		t.Fatalf("token=%q", m.Token())
	}
	if n.Load() != 0 {
		t.Fatalf("fetches=%d, want 0", n.Load())
	}
}

func TestNew_FetchesWhenEmpty(t *testing.T) {
	f, n := counter()
	m, err := New(context.Background(), f, "")
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	if m.Token() != "tok-1" || n.Load() != 1 {
		t.Fatalf("token=%q fetches=%d", m.Token(), n.Load())
	}
}

func TestNew_FetchError(t *testing.T) {
	boom := errors.New("boom")
	_, err := New(context.Background(), fetchFunc(func(context.Context) (string, error) {
		return "", boom
	}), "")
	if !errors.Is(err, boom) {
		t.Fatalf("err=%v, want wrapped boom", err)
	}
}

func TestFetch_EmptyToken(t *testing.T) {
	m := &Manager{fetcher: fetchFunc(func(context.Context) (string, error) { return " \n", nil })}
	if _, err := m.Fetch(context.Background()); !errors.Is(err, ErrEmptyToken) {
		t.Fatalf("err=%v, want ErrEmptyToken", err)
	}
}

func TestFetch_DoesNotStore(t *testing.T) {
	f, _ := counter()
	m, err := New(context.Background(), f, "old")
	if err != nil {
		t.Fatal(err)
	}
	tok, err := m.Fetch(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if tok != "tok-1" || m.Token() != "old" {
		t.Fatalf("fetched=%q stored=%q", tok, m.Token())
	}
}

func TestRefresh_ReplacesToken(t *testing.T) {
	f, _ := counter()
	m, err := New(context.Background(), f, "old")
	if err != nil {
		t.Fatal(err)
	}
	if err := m.Refresh(context.Background()); err != nil {
		t.Fatal(err)
	}
	if m.Token() != "tok-1" {
		t.Fatalf("token=%q", m.Token())
	}
}

func TestRefresh_FailureKeepsOldToken(t *testing.T) {
	m := &Manager{
		token:   "old",
		fetcher: fetchFunc(func(context.Context) (string, error) { return "", errors.New("down") }),
	}
	if err := m.Refresh(context.Background()); err == nil {
		t.Fatal("expected error")
	}
	if m.Token() != "old" {
		t.Fatalf("token=%q", m.Token())
	}
}

func TestRefresh_Concurrent(t *testing.T) {
	f, n := counter()
	m, err := New(context.Background(), f, "old")
	if err != nil {
		t.Fatal(err)
	}
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := m.Refresh(context.Background()); err != nil {
				t.Errorf("Refresh error: %v", err)
			}
			_ = m.Token()
		}()
	}
	wg.Wait()
	if n.Load() != 16 {
		t.Fatalf("fetches=%d, want 16 (no coalescing)", n.Load())
	}
	if m.Token() == "old" {
		t.Fatal("token never replaced")
	}
}

func TestFetch_NoFetcher(t *testing.T) {
	m := &Manager{token: "x"}
	if _, err := m.Fetch(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}
