// Package runner wires the file selector and the action engine into a
// single run and reduces per-file outcomes into one exit status.
package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/ZanzyTHEbar/xattrsum/xsum/engine"
	"github.com/ZanzyTHEbar/xattrsum/xsum/selector"

	"github.com/google/uuid"
)

// Process exit statuses. 0, 1 and 3 mirror the per-file outcome severities;
// 2 is reserved for target-not-found; 64 is a configuration/usage error,
// distinct from every checksum outcome.
const (
	ExitOK       = 0
	ExitMissing  = 1
	ExitNotFound = 2
	ExitMismatch = 3
	ExitUsage    = 64
)

// Runner drives one run: select candidate files, apply the action to each
// in traversal order, accumulate the worst outcome.
type Runner struct {
	selector *selector.Selector
	engine   *engine.Engine
	stderr   io.Writer
}

// New creates a runner over the given selector and engine.
func New(sel *selector.Selector, eng *engine.Engine, stderr io.Writer) *Runner {
	return &Runner{
		selector: sel,
		engine:   eng,
		stderr:   stderr,
	}
}

// Run executes action against target and returns the process exit status.
// Files are processed strictly one at a time; the severity accumulator is
// a local value, never shared state. A run that selects no files and hits
// no error exits 0.
func (r *Runner) Run(ctx context.Context, action engine.Action, target string) int {
	log := slog.With(
		"run_id", uuid.NewString(),
		"action", string(action),
		"target", target)

	if target == "" {
		// Deliberately not defaulted to "." so a forgotten argument never
		// operates on the current directory.
		fmt.Fprintln(r.stderr, "no target path given")
		log.Error("Empty target path")
		return ExitNotFound
	}

	acc := engine.OutcomeOK
	files := 0
	err := r.selector.Select(ctx, target, func(c selector.Candidate) error {
		files++
		acc = engine.Worse(acc, r.engine.Apply(action, c.Path))
		return nil
	})
	if err != nil {
		if errors.Is(err, selector.ErrTargetNotFound) {
			fmt.Fprintf(r.stderr, "%s: file not found\n", target)
			log.Error("Target not found")
			return ExitNotFound
		}
		fmt.Fprintf(r.stderr, "%s: %v\n", target, err)
		log.Error("Traversal failed", "error", err)
		return ExitNotFound
	}

	log.Debug("Run complete",
		"files", files,
		"status", int(acc))
	return int(acc)
}
