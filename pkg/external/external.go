// Package external drives the terrain editor itself to confirm that a
// generated project file actually opens.
//
// The structural checker catches everything the engine knows how to
// express, but the editor remains the authority on its own format. This
// package launches it against a project file and classifies the outcome
// from its console output. The editor is closed-source and its output is
// not a contract, so the classification is deliberately conservative:
// anything unrecognized is inconclusive rather than a pass.
package external

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// ErrAppNotFound is returned when the editor binary does not exist at the
// configured path.
var ErrAppNotFound = errors.New("editor binary not found")

// DefaultTimeout bounds one validation attempt. Opening a small project
// takes seconds; anything longer means the editor hung on a dialog.
const DefaultTimeout = 60 * time.Second

// Verdict is the tri-state outcome of an external validation run.
type Verdict int

const (
	// Inconclusive means the run produced no recognizable signal. Callers
	// must not treat this as a pass.
	Inconclusive Verdict = iota
	// Opened means the editor loaded the file without complaint.
	Opened
	// Failed means the editor rejected the file.
	Failed
)

// String returns a short label for the verdict.
func (v Verdict) String() string {
	switch v {
	case Opened:
		return "opened"
	case Failed:
		return "failed"
	default:
		return "inconclusive"
	}
}

// Result describes one validation attempt.
type Result struct {
	Verdict Verdict
	Log     string // raw editor output, kept for diagnostics
}

// Options configures a validation run.
type Options struct {
	// AppPath is the editor binary. Required.
	AppPath string

	// Timeout bounds the run; DefaultTimeout when zero.
	Timeout time.Duration
}

// Validate opens projectPath in the editor and classifies the outcome.
//
// A timeout is reported as inconclusive, not as failure: a hung editor
// says nothing about the file. Errors are returned only for problems
// running the editor at all.
func Validate(ctx context.Context, projectPath string, opts Options) (Result, error) {
	if opts.AppPath == "" {
		return Result{}, fmt.Errorf("%w: no path configured", ErrAppNotFound)
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, opts.AppPath, "--open", projectPath, "--validate", "--exit")

	var buf bytes.Buffer
	cmd.Stdout = &buf
	cmd.Stderr = &buf

	err := cmd.Run()
	log := buf.String()

	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return Result{Verdict: Inconclusive, Log: log}, nil
	}
	if errors.Is(err, exec.ErrNotFound) {
		return Result{}, fmt.Errorf("%w: %s", ErrAppNotFound, opts.AppPath)
	}

	verdict := Classify(log, err == nil)
	return Result{Verdict: verdict, Log: log}, nil
}

// failureMarkers are output fragments the editor emits when it rejects a
// file. Matched case-insensitively.
var failureMarkers = []string{
	"failed to load",
	"could not open",
	"unable to parse",
	"invalid project",
	"corrupt",
	"unknown node",
	"deserialization error",
}

// successMarkers are fragments emitted on a clean load.
var successMarkers = []string{
	"project loaded",
	"load complete",
	"opened successfully",
}

// Classify maps editor output and its exit status to a verdict. Failure
// markers win over success markers: an editor that loads a file and then
// complains about its contents did not validate it.
func Classify(log string, exitedCleanly bool) Verdict {
	lower := strings.ToLower(log)

	for _, marker := range failureMarkers {
		if strings.Contains(lower, marker) {
			return Failed
		}
	}
	for _, marker := range successMarkers {
		if strings.Contains(lower, marker) {
			return Opened
		}
	}

	// No recognizable output. A clean exit with silence is still only a
	// weak signal; a dirty exit with silence says even less.
	if exitedCleanly && strings.TrimSpace(log) == "" {
		return Opened
	}
	return Inconclusive
}
