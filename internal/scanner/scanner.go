// Package scanner discovers the files an analysis run will look at: source
// files by extension, everything else as assets, with glob-based ignore
// rules for Unity's generated folders.
package scanner

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
)

// ErrInvalidPath is returned when the analysis root does not exist or is
// not a directory. This is the only discovery failure that aborts a run.
var ErrInvalidPath = errors.New("invalid project path")

// SourceFile is one source file's text, loaded on demand and discarded
// after extraction.
type SourceFile struct {
	Path    string // Relative to the scan root
	Content string
	Size    int64
}

// Discovery is the outcome of one directory walk.
type Discovery struct {
	SourceFiles []string // Relative paths, sorted
	AssetFiles  []string // Relative paths, sorted; .meta sidecars excluded
	Warnings    []string // Per-entry walk errors, never fatal
}

// Scanner walks a project tree once and splits files into sources and
// assets.
type Scanner struct {
	root             string
	sourceExtensions map[string]bool
	ignore           []glob.Glob
}

// New creates a scanner rooted at root. sourceExtensions carry a leading
// dot (".cs"); ignorePatterns are path globs relative to root
// ("Library/**").
func New(root string, sourceExtensions []string, ignorePatterns []string) (*Scanner, error) {
	s := &Scanner{
		root:             root,
		sourceExtensions: make(map[string]bool, len(sourceExtensions)),
	}
	for _, ext := range sourceExtensions {
		s.sourceExtensions[strings.ToLower(ext)] = true
	}
	for _, pattern := range ignorePatterns {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, fmt.Errorf("compile ignore pattern %q: %w", pattern, err)
		}
		s.ignore = append(s.ignore, g)
	}
	return s, nil
}

// Discover walks the tree. The root must exist and be a directory; every
// other problem is recorded as a warning and the walk continues.
func (s *Scanner) Discover() (*Discovery, error) {
	info, err := os.Stat(s.root)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidPath, s.root)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrInvalidPath, s.root)
	}

	d := &Discovery{}
	walkErr := filepath.WalkDir(s.root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			d.Warnings = append(d.Warnings, fmt.Sprintf("%s: %v", path, err))
			if entry != nil && entry.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		rel, err := filepath.Rel(s.root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if rel == "." {
			return nil
		}

		if entry.IsDir() {
			if s.shouldIgnore(rel) {
				return filepath.SkipDir
			}
			return nil
		}
		if s.shouldIgnore(rel) {
			return nil
		}

		ext := strings.ToLower(filepath.Ext(rel))
		switch {
		case s.sourceExtensions[ext]:
			d.SourceFiles = append(d.SourceFiles, rel)
		case ext == ".meta":
			// Sidecars are read next to their asset, not listed themselves.
		default:
			d.AssetFiles = append(d.AssetFiles, rel)
		}
		return nil
	})
	if walkErr != nil {
		return nil, fmt.Errorf("walk %s: %w", s.root, walkErr)
	}
	return d, nil
}

// Load reads one discovered file. relPath is relative to the scan root.
func (s *Scanner) Load(relPath string) (*SourceFile, error) {
	full := filepath.Join(s.root, filepath.FromSlash(relPath))
	data, err := os.ReadFile(full)
	if err != nil {
		return nil, err
	}
	return &SourceFile{Path: relPath, Content: string(data), Size: int64(len(data))}, nil
}

// Ignored reports whether a root-relative slash path matches the ignore
// globs. Used by the watcher to filter change events with the same rules
// as discovery.
func (s *Scanner) Ignored(rel string) bool {
	return s.shouldIgnore(rel)
}

// shouldIgnore checks a relative slash path against the ignore globs, also
// matching directories as if suffixed with /** so "Library/**" skips the
// Library directory itself.
func (s *Scanner) shouldIgnore(rel string) bool {
	for _, g := range s.ignore {
		if g.Match(rel) || g.Match(rel+"/**") {
			return true
		}
	}
	return false
}
