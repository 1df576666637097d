// Package scan loads the source file set and applies pattern rules to it.
package scan

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/teleprompter-plus/precheck/internal/rules"
	"github.com/teleprompter-plus/precheck/pkg/report"
)

// File is one loaded source file, split into lines.
type File struct {
	Path  string // relative to the project directory
	Lines []string
}

// ReadError records a file that matched the glob but could not be read.
// These surface as failures in the report instead of aborting the run.
type ReadError struct {
	Path string
	Err  error
}

// Tree is the loaded source set for one run.
type Tree struct {
	Files  []File
	Errors []ReadError
}

// Load reads every file matching glob under dir, one directory level.
// A missing project directory is an error; an unreadable individual file is
// recorded on the tree and reported by the battery.
func Load(dir, glob string) (*Tree, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("project directory %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("project directory %s: not a directory", dir)
	}

	paths, err := filepath.Glob(filepath.Join(dir, glob))
	if err != nil {
		return nil, fmt.Errorf("source glob %q: %w", glob, err)
	}

	tree := &Tree{}
	for _, path := range paths {
		rel, relErr := filepath.Rel(dir, path)
		if relErr != nil {
			rel = path
		}
		data, readErr := os.ReadFile(path)
		if readErr != nil {
			tree.Errors = append(tree.Errors, ReadError{Path: rel, Err: readErr})
			continue
		}
		tree.Files = append(tree.Files, File{
			Path:  rel,
			Lines: splitLines(string(data)),
		})
	}
	return tree, nil
}

// Grep applies one compiled rule to every line of every file, honoring the
// rule's comment-prefix and identifier allow-list exclusions. Matches come
// back in file order, then line order.
func (t *Tree) Grep(rule rules.CompiledPattern) []report.Match {
	var matches []report.Match
	for _, f := range t.Files {
		for i, line := range f.Lines {
			if !rule.Re.MatchString(line) {
				continue
			}
			if excluded(line, rule) {
				continue
			}
			matches = append(matches, report.Match{
				File: f.Path,
				Line: i + 1,
				Text: strings.TrimSpace(line),
			})
		}
	}
	return matches
}

func excluded(line string, rule rules.CompiledPattern) bool {
	trimmed := strings.TrimSpace(line)
	for _, prefix := range rule.CommentPrefixes {
		if strings.HasPrefix(trimmed, prefix) {
			return true
		}
	}
	for _, ident := range rule.AllowSubstrings {
		if strings.Contains(line, ident) {
			return true
		}
	}
	return false
}

// splitLines splits on newlines, dropping exactly one trailing empty line so
// a file ending in "\n" does not grow a phantom line.
func splitLines(s string) []string {
	lines := strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}
	return lines
}
