// Package logging builds the process logger: charmbracelet/log with custom
// level colors on the terminal, JSON lines in verbose mode, and an optional
// plain-text copy appended to a log file.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

type Options struct {
	// Level is one of debug, info, warn, error. Empty means info, or debug
	// when Verbose is set.
	Level   string
	Verbose bool
	// File receives a copy of every line with color codes removed.
	File string
	// Out defaults to stderr.
	Out io.Writer
}

type Logger struct {
	*log.Logger
	verbose bool
	mu      sync.Mutex
	file    *os.File
}

var ansiEscape = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func New(opts Options) (*Logger, error) {
	level, err := parseLevel(opts.Level, opts.Verbose)
	if err != nil {
		return nil, err
	}
	out := opts.Out
	if out == nil {
		out = os.Stderr
	}
	l := &Logger{verbose: opts.Verbose}
	if strings.TrimSpace(opts.File) != "" {
		f, err := openLogFile(opts.File)
		if err != nil {
			return nil, err
		}
		l.file = f
		out = io.MultiWriter(out, plainWriter{w: f})
	}

	lo := log.Options{
		Level:           level,
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
	}
	if opts.Verbose {
		lo.Formatter = log.JSONFormatter
		lo.TimeFormat = time.RFC3339Nano
	}
	l.Logger = log.NewWithOptions(out, lo)
	l.Logger.SetStyles(levelStyles())
	return l, nil
}

// Discard returns a logger that drops everything.
func Discard() *Logger {
	return &Logger{Logger: log.New(io.Discard)}
}

func (l *Logger) Verbose() bool { return l.verbose }

// Event emits a structured event. It is a no-op outside verbose mode.
func (l *Logger) Event(event string, fields map[string]any) {
	if !l.verbose {
		return
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	kv := make([]any, 0, 2+2*len(keys))
	kv = append(kv, "event", event)
	for _, k := range keys {
		kv = append(kv, k, fields[k])
	}
	l.Logger.Info(event, kv...)
}

func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}

func parseLevel(s string, verbose bool) (log.Level, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		if verbose {
			return log.DebugLevel, nil
		}
		return log.InfoLevel, nil
	}
	level, err := log.ParseLevel(s)
	if err != nil {
		return 0, fmt.Errorf("invalid log level %q", s)
	}
	return level, nil
}

func openLogFile(path string) (*os.File, error) {
	dir := filepath.Dir(path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create log dir: %w", err)
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return f, nil
}

type plainWriter struct {
	w io.Writer
}

func (p plainWriter) Write(b []byte) (int, error) {
	if _, err := p.w.Write(ansiEscape.ReplaceAll(b, nil)); err != nil {
		return 0, err
	}
	return len(b), nil
}

func levelStyles() *log.Styles {
	styles := log.DefaultStyles()
	styles.Levels[log.DebugLevel] = lipgloss.NewStyle().
		SetString("DEBUG").
		Foreground(lipgloss.Color("#7F6DFF"))
	styles.Levels[log.InfoLevel] = lipgloss.NewStyle().
		SetString("INFO").
		Foreground(lipgloss.Color("#42E7FF"))
	styles.Levels[log.WarnLevel] = lipgloss.NewStyle().
		SetString("WARN").
		Foreground(lipgloss.Color("#FFE763"))
	styles.Levels[log.ErrorLevel] = lipgloss.NewStyle().
		SetString("ERROR").
		Foreground(lipgloss.Color("#FF4473"))
	return styles
}
