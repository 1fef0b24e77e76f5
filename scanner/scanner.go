// Package scanner collects candidate source files for the CLI: HTML
// documents and scripts under a directory tree, filtered by extension.
package scanner

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

// DefaultExtensions are the extensions scanned when none are given.
var DefaultExtensions = []string{".html", ".htm", ".js", ".mjs"}

// skipDirs are directory names never descended into.
var skipDirs = map[string]bool{
	".git":         true,
	"node_modules": true,
}

type Scanner struct {
	extensions []string
}

func New(extensions ...string) *Scanner {
	if len(extensions) == 0 {
		extensions = DefaultExtensions
	}
	return &Scanner{extensions: extensions}
}

// Scan walks root and returns matching file paths in sorted order. A root
// that is itself a file is returned as-is when it matches.
func (s *Scanner) Scan(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && skipDirs[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		if s.Matches(path) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// Matches reports whether path has one of the scanned extensions.
func (s *Scanner) Matches(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, want := range s.extensions {
		if ext == want {
			return true
		}
	}
	return false
}

// IsScript reports whether path should be lexed starting in script mode
// rather than as an HTML document.
func IsScript(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".js", ".mjs":
		return true
	}
	return false
}
