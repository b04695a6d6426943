// Package errs collects sentinel and named error values describing controller
// failures, plus a small bounded diagnostic sink that records them for a
// supervisor to drain. The controller never returns these as Go errors from
// Dispatch; it records ErrUnknownCommand in its Reporter. It is not a logging
// transport: nothing here writes to disk, a socket, or a file descriptor.
package errs

import (
	"errors"
	"fmt"
)

var (
	// ErrNotEnabled describes a motion command that arrives while the
	// machine is disabled.
	ErrNotEnabled = errors.New("machine is not enabled")

	// ErrWrongMode describes a command that arrives in a mode that does
	// not permit it (e.g. a coordinated move while in FREE mode).
	ErrWrongMode = errors.New("command not valid in current motion mode")

	// ErrQueueNotEmpty describes a mode switch or axis count change
	// attempted while a planner queue still holds unexecuted segments.
	ErrQueueNotEmpty = errors.New("queue must be empty for this operation")

	// ErrNotHomed describes coordinated or teleop motion attempted on an
	// inverse-only machine before every active joint has been homed.
	ErrNotHomed = errors.New("one or more axes are not homed")
)

// ErrUnknownCommand is generated when the dispatcher receives a command kind
// it does not recognize.
type ErrUnknownCommand struct {
	Kind int
}

func (e ErrUnknownCommand) Error() string {
	return fmt.Sprintf("command %d not recognized", e.Kind)
}

// ErrBadAxis describes a command that names an axis index outside the valid
// range. The dispatcher does not produce it: out-of-range axis indices are
// silent no-ops there.
type ErrBadAxis struct {
	Axis int
}

func (e ErrBadAxis) Error() string {
	return fmt.Sprintf("axis %d is not a valid index", e.Axis)
}

// ErrLimit describes a commanded target that would cross a soft or hard
// position limit.
type ErrLimit struct {
	Axis  int
	Value float64
}

func (e ErrLimit) Error() string {
	return fmt.Sprintf("axis %d target %g exceeds configured limits", e.Axis, e.Value)
}

// Severity classifies a recorded diagnostic for filtering by a viewer.
type Severity int

const (
	// Info records routine command rejections (bad params, wrong mode).
	Info Severity = iota
	// Warn records conditions that degrade operation but do not halt it.
	Warn
	// Fault records conditions that the (external) cyclic executor should
	// treat as a motion-stopping fault.
	Fault
)

func (s Severity) String() string {
	switch s {
	case Info:
		return "INFO"
	case Warn:
		return "WARN"
	case Fault:
		return "FAULT"
	default:
		return "UNKNOWN"
	}
}

// Capacity is the number of diagnostic records a Reporter retains before it
// begins overwriting the oldest.
const Capacity = 256

// Record is a single diagnostic entry: a timestamp, severity, and the error
// that produced it.
type Record struct {
	Time     float64
	Severity Severity
	Err      error
}

// Reporter is a fixed-capacity ring of Record, the non-realtime-safe
// counterpart of logsvc.Log: where logsvc carries typed numeric samples,
// Reporter carries error conditions for a human or supervisor to read back.
type Reporter struct {
	records []Record
	cursor  int
	full    bool
}

// NewReporter returns a Reporter with room for Capacity records.
func NewReporter() *Reporter {
	return &Reporter{records: make([]Record, Capacity)}
}

// Report appends a diagnostic record, overwriting the oldest once full.
func (r *Reporter) Report(now float64, sev Severity, err error) {
	if err == nil {
		return
	}
	r.records[r.cursor] = Record{Time: now, Severity: sev, Err: err}
	r.cursor++
	if r.cursor == len(r.records) {
		r.cursor = 0
		r.full = true
	}
}

// Records returns the stored records in chronological order (oldest first).
func (r *Reporter) Records() []Record {
	if !r.full {
		out := make([]Record, r.cursor)
		copy(out, r.records[:r.cursor])
		return out
	}
	out := make([]Record, len(r.records))
	copy(out, r.records[r.cursor:])
	copy(out[len(r.records)-r.cursor:], r.records[:r.cursor])
	return out
}

// Len reports the number of records currently stored.
func (r *Reporter) Len() int {
	if r.full {
		return len(r.records)
	}
	return r.cursor
}
