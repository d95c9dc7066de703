// Package selector decides which files participate in a run: a single
// regular file, or every regular file reachable under a directory root,
// restricted by the non-empty and same-filesystem rules.
package selector

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	internal "github.com/ZanzyTHEbar/xattrsum/xsum"

	ignore "github.com/sabhiram/go-gitignore"
)

// ErrTargetNotFound is returned when the target is neither an existing
// directory nor an existing regular file.
var ErrTargetNotFound = errors.New("target not found")

// Candidate is a regular, non-empty file eligible for processing.
type Candidate struct {
	Path string
	Size int64
}

// Options configures traversal predicates.
type Options struct {
	// SameDevice restricts directory traversal to the filesystem/mount of
	// the target root. Prevents runaway descent onto other volumes.
	SameDevice bool
	// IgnoreFile is the name of an optional per-root ignore file
	// (gitignore syntax). Empty disables ignore handling.
	IgnoreFile string
}

// DefaultOptions returns sensible defaults for file selection.
func DefaultOptions() Options {
	return Options{
		SameDevice: true,
		IgnoreFile: internal.DefaultIgnoreFile,
	}
}

// Selector yields candidate files for a target path.
type Selector struct {
	opts Options
}

// New creates a selector with the given options.
func New(opts Options) *Selector {
	return &Selector{opts: opts}
}

// Select resolves target and calls fn once per candidate file, in lexical
// depth-first order for directories. Traversal is read-only: no attribute
// or digest access happens here. An empty regular file yields no candidate
// and no error. Symbolic links below the root are never followed.
func (s *Selector) Select(ctx context.Context, target string, fn func(Candidate) error) error {
	info, err := os.Stat(target)
	if err != nil {
		if os.IsNotExist(err) {
			return ErrTargetNotFound
		}
		return fmt.Errorf("failed to stat target %s: %w", target, err)
	}

	if info.Mode().IsRegular() {
		if info.Size() == 0 {
			slog.Debug("Skipping empty file", "path", target)
			return nil
		}
		return fn(Candidate{Path: target, Size: info.Size()})
	}

	if !info.IsDir() {
		// Sockets, devices and the like are not processable targets.
		return ErrTargetNotFound
	}

	return s.walk(ctx, target, fn)
}

func (s *Selector) walk(ctx context.Context, root string, fn func(Candidate) error) error {
	rootDev, err := deviceID(root)
	if err != nil {
		return fmt.Errorf("failed to resolve device of %s: %w", root, err)
	}

	ignored := s.loadIgnore(root)

	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			slog.Warn("Skipping unreadable entry",
				"path", path,
				"error", err)
			return nil
		}

		if err := ctx.Err(); err != nil {
			return err
		}

		if path == root {
			return nil
		}

		if ignored != nil && ignored.MatchesPath(path) {
			slog.Debug("Ignoring entry", "path", path)
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			if s.opts.SameDevice {
				dev, err := deviceID(path)
				if err != nil {
					slog.Warn("Cannot resolve device, skipping subtree",
						"path", path,
						"error", err)
					return fs.SkipDir
				}
				if dev != rootDev {
					slog.Debug("Skipping foreign mount",
						"path", path,
						"root", root)
					return fs.SkipDir
				}
			}
			return nil
		}

		// WalkDir does not follow symlinks; anything not a regular file
		// (links, fifos, sockets) is excluded.
		if !d.Type().IsRegular() {
			return nil
		}

		fileInfo, err := d.Info()
		if err != nil {
			slog.Warn("Error getting file info",
				"path", path,
				"error", err)
			return nil
		}
		if fileInfo.Size() == 0 {
			return nil
		}

		return fn(Candidate{Path: path, Size: fileInfo.Size()})
	})
}

// loadIgnore loads ignore patterns from the root's ignore file, if any.
func (s *Selector) loadIgnore(root string) *ignore.GitIgnore {
	if s.opts.IgnoreFile == "" {
		return nil
	}
	ignorePath := filepath.Join(root, s.opts.IgnoreFile)
	if _, err := os.Stat(ignorePath); err != nil {
		return nil
	}
	ignored, err := ignore.CompileIgnoreFile(ignorePath)
	if err != nil {
		slog.Warn("Failed to compile ignore file",
			"path", ignorePath,
			"error", err)
		return nil
	}
	return ignored
}
