package translate

import (
	"time"

	"github.com/charmbracelet/log"

	"edgetrans/internal/chunk"
	"edgetrans/internal/pacer"
)

const (
	DefaultRetry              = 3
	DefaultCooldown           = 60 * time.Second
	DefaultMaxThrottleRetries = 8
)

// Options configure an Edge translator for its whole lifetime. Start from
// DefaultOptions; zero values are taken literally where they make sense
// (no retries, no cushion, no cooldown). MaxThrottleRetries is the exception.
type Options struct {
	// Token skips the initial auth fetch when set.
	Token string

	ChunkSize int
	Retry     int

	Cushion  time.Duration
	Cooldown time.Duration
	// MaxThrottleRetries bounds the cooldown retries a chunk may take for the
	// server throttle code; 0 means DefaultMaxThrottleRetries. They do not
	// consume Retry.
	MaxThrottleRetries int

	// MaxConcurrent caps in-flight chunks per translator; 0 means one
	// goroutine per chunk with no cap.
	MaxConcurrent int
	// RequestsPerMinute adds a hard dispatch quota; 0 disables it.
	RequestsPerMinute int

	// CacheMaxCost is the number of translated items kept in memory; 0
	// disables the cache.
	CacheMaxCost int64
	CacheTTL     time.Duration

	Logger *log.Logger
}

func DefaultOptions() Options {
	return Options{
		ChunkSize:          chunk.DefaultSize,
		Retry:              DefaultRetry,
		Cushion:            pacer.DefaultCushion,
		Cooldown:           DefaultCooldown,
		MaxThrottleRetries: DefaultMaxThrottleRetries,
	}
}

func (o Options) normalized() Options {
	if o.ChunkSize <= 0 {
		o.ChunkSize = chunk.DefaultSize
	}
	if o.Retry < 0 {
		o.Retry = DefaultRetry
	}
	if o.Cushion < 0 {
		o.Cushion = pacer.DefaultCushion
	}
	if o.Cooldown < 0 {
		o.Cooldown = DefaultCooldown
	}
	if o.MaxThrottleRetries <= 0 {
		o.MaxThrottleRetries = DefaultMaxThrottleRetries
	}
	if o.MaxConcurrent < 0 {
		o.MaxConcurrent = 0
	}
	return o
}

type call struct {
	from      Language
	retry     int
	chunkSize int
}

type CallOption func(*call)

// WithFrom fixes the source language. Without it the service detects the
// language once per chunk.
func WithFrom(l Language) CallOption {
	return func(c *call) { c.from = l }
}

// WithRetry sets how many non-throttle failures a chunk may absorb.
func WithRetry(n int) CallOption {
	return func(c *call) { c.retry = n }
}

func WithChunkSize(n int) CallOption {
	return func(c *call) { c.chunkSize = n }
}
