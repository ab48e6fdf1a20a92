// Package input gathers the texts to translate from arguments, files,
// directories and stdin.
package input

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Stdin names standard input in a file list.
const Stdin = "-"

const maxLine = 1 << 20

// Collect returns the positional texts followed by one item per line of each
// source in files. A directory contributes every regular file under it in
// lexical order; the same path is read once. Empty lines are kept.
func Collect(args []string, files []string, stdin io.Reader) ([]string, error) {
	out := append([]string(nil), args...)
	seen := map[string]struct{}{}
	usedStdin := false
	for _, in := range files {
		if in == Stdin {
			if usedStdin {
				continue
			}
			usedStdin = true
			if stdin == nil {
				return nil, fmt.Errorf("stdin is not available")
			}
			lines, err := readLines(stdin)
			if err != nil {
				return nil, fmt.Errorf("read stdin: %w", err)
			}
			out = append(out, lines...)
			continue
		}
		paths, err := expand(in)
		if err != nil {
			return nil, err
		}
		for _, p := range paths {
			if _, ok := seen[p]; ok {
				continue
			}
			seen[p] = struct{}{}
			lines, err := readFile(p)
			if err != nil {
				return nil, err
			}
			out = append(out, lines...)
		}
	}
	return out, nil
}

func expand(in string) ([]string, error) {
	info, err := os.Stat(in)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{filepath.Clean(in)}, nil
	}
	var paths []string
	err = filepath.WalkDir(in, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.Type().IsRegular() {
			paths = append(paths, filepath.Clean(path))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return paths, nil
}

func readFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	lines, err := readLines(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return lines, nil
}

func readLines(r io.Reader) ([]string, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLine)
	var lines []string
	for sc.Scan() {
		line := strings.TrimSuffix(sc.Text(), "\r")
		if len(lines) == 0 {
			line = strings.TrimPrefix(line, "\ufeff")
		}
		lines = append(lines, line)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}
