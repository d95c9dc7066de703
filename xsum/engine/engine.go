// Package engine applies one of the five actions to a candidate file and
// reports a per-file outcome. It owns no traversal and no global state;
// callers reduce outcomes into a run-level severity with Worse.
package engine

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/ZanzyTHEbar/xattrsum/xsum/digest"
	"github.com/ZanzyTHEbar/xattrsum/xsum/store"
)

// Engine executes actions against injected collaborators. Diagnostics that
// are part of the CLI contract (missing attributes, mismatches, notices)
// go to stderr; the print action's data lines go to stdout.
type Engine struct {
	store   store.Store
	digest  digest.Provider
	verbose bool
	stdout  io.Writer
	stderr  io.Writer
}

// New creates an engine over the given attribute store and digest provider.
func New(st store.Store, dp digest.Provider, verbose bool, stdout, stderr io.Writer) *Engine {
	return &Engine{
		store:   st,
		digest:  dp,
		verbose: verbose,
		stdout:  stdout,
		stderr:  stderr,
	}
}

// Apply executes the action on the file at path and returns its outcome.
// Store and digest failures are soft: diagnosed, logged, and reported as
// success so the run continues.
func (e *Engine) Apply(action Action, path string) Outcome {
	switch action {
	case ActionAdd:
		return e.add(path)
	case ActionCheck:
		return e.check(path)
	case ActionRemove:
		return e.remove(path)
	case ActionUpdate:
		return e.update(path)
	case ActionPrint:
		return e.print(path)
	default:
		slog.Error("Unknown action", "action", string(action), "path", path)
		return OutcomeOK
	}
}

// add writes a fresh digest unless the attribute is already present.
// It never overwrites. The skip notice is always printed; the write notice
// only under verbose.
func (e *Engine) add(path string) Outcome {
	_, err := e.store.Get(path)
	switch {
	case err == nil:
		fmt.Fprintf(e.stderr, "%s: checksum already present, skipping\n", path)
		return OutcomeOK
	case !errors.Is(err, store.ErrNotFound):
		return e.soft(path, "read attribute", err)
	}

	sum, err := e.digest.SumFile(path)
	if err != nil {
		return e.soft(path, "compute digest", err)
	}
	if err := e.store.Set(path, sum); err != nil {
		return e.soft(path, "write attribute", err)
	}
	if e.verbose {
		fmt.Fprintf(e.stderr, "%s: checksum added\n", path)
	}
	return OutcomeOK
}

// check compares a freshly computed digest against the stored value.
// A stored value that is not a well-formed digest counts as a mismatch.
func (e *Engine) check(path string) Outcome {
	stored, err := e.store.Get(path)
	if errors.Is(err, store.ErrNotFound) {
		fmt.Fprintf(e.stderr, "%s: no checksum attribute\n", path)
		return OutcomeMissing
	}
	if err != nil {
		return e.soft(path, "read attribute", err)
	}

	if !digest.IsWellFormed(stored) {
		fmt.Fprintf(e.stderr, "%s: Checksum mismatch\n", path)
		slog.Warn("Stored value is not a well-formed digest",
			"path", path)
		return OutcomeMismatch
	}

	sum, err := e.digest.SumFile(path)
	if err != nil {
		return e.soft(path, "compute digest", err)
	}
	if sum != stored {
		fmt.Fprintf(e.stderr, "%s: Checksum mismatch\n", path)
		return OutcomeMismatch
	}
	return OutcomeOK
}

// remove deletes the attribute; removal of an absent attribute is a no-op.
func (e *Engine) remove(path string) Outcome {
	err := e.store.Remove(path)
	switch {
	case err == nil:
		if e.verbose {
			fmt.Fprintf(e.stderr, "%s: checksum removed\n", path)
		}
	case errors.Is(err, store.ErrNotFound):
		// nothing to remove
	default:
		return e.soft(path, "remove attribute", err)
	}
	return OutcomeOK
}

// update overwrites a present-but-stale digest. Drift is silently healed:
// the outcome is success whether or not a rewrite happened. A missing
// attribute is reported, never created.
func (e *Engine) update(path string) Outcome {
	stored, err := e.store.Get(path)
	if errors.Is(err, store.ErrNotFound) {
		fmt.Fprintf(e.stderr, "%s: no checksum attribute\n", path)
		return OutcomeMissing
	}
	if err != nil {
		return e.soft(path, "read attribute", err)
	}

	sum, err := e.digest.SumFile(path)
	if err != nil {
		return e.soft(path, "compute digest", err)
	}
	if sum != stored {
		if err := e.store.Set(path, sum); err != nil {
			return e.soft(path, "write attribute", err)
		}
		if e.verbose {
			fmt.Fprintf(e.stderr, "%s: checksum updated\n", path)
		}
	}
	return OutcomeOK
}

// print emits the stored digest in sha256sum-compatible form:
// "<digest>  <path>" with two separating spaces.
func (e *Engine) print(path string) Outcome {
	stored, err := e.store.Get(path)
	if errors.Is(err, store.ErrNotFound) {
		fmt.Fprintf(e.stderr, "%s: no checksum attribute\n", path)
		return OutcomeMissing
	}
	if err != nil {
		return e.soft(path, "read attribute", err)
	}
	fmt.Fprintf(e.stdout, "%s  %s\n", stored, path)
	return OutcomeOK
}

// soft diagnoses a per-file store or digest failure without failing the
// run: the outcome stays success and processing continues.
func (e *Engine) soft(path, op string, err error) Outcome {
	fmt.Fprintf(e.stderr, "%s: cannot %s: %v\n", path, op, err)
	slog.Warn("Per-file operation failed",
		"path", path,
		"op", op,
		"error", err)
	return OutcomeOK
}
