// Package logsvc implements the in-memory, typed record-stream logging
// subsystem. It is deliberately not a transport: nothing here writes to
// disk, a socket, or a file descriptor. It is the fixed-capacity ring buffer
// of tagged samples the dispatcher appends to and the supervisor later
// drains, modeled on a cursor-indexed buffer of samples with
// play/pause/stop semantics, generalized here to a ring of tagged log
// entries rather than a single float64 column.
package logsvc

import "github.com/nasa-jpl/motioncore/pose"

// Type enumerates the kinds of record a log stream can carry
// (EMCMOT_LOG_TYPE_* in a LinuxCNC-style motion controller).
type Type int

const (
	// TypeNone indicates no active log type (used when closed).
	TypeNone Type = iota
	// TypeCmd logs every dispatched command (kind + sequence number).
	TypeCmd
	// TypeAxisPos logs a single axis's position over time. Axis-scoped.
	TypeAxisPos
	// TypeAxisVel logs a single axis's velocity over time. Axis-scoped.
	TypeAxisVel
	// TypePosVoltage logs position and raw output voltage together.
	// Axis-scoped. Cannot be manually started (see Log.Start).
	TypePosVoltage
)

// axisScoped reports whether t requires axis to be a valid index, per the
// OPEN_LOG validity matrix.
func (t Type) axisScoped() bool {
	switch t {
	case TypeAxisPos, TypeAxisVel, TypePosVoltage:
		return true
	default:
		return false
	}
}

// TriggerType selects how a log stream arms.
type TriggerType int

const (
	// TriggerManual arms immediately on START_LOG.
	TriggerManual TriggerType = iota
	// TriggerDelta records the chosen trigger variable's value at OPEN_LOG
	// time as a baseline, alongside the configured threshold. Start does not
	// arm such a log, and nothing in this package arms it when the variable
	// moves past the threshold.
	TriggerDelta
)

// TriggerVariable selects which measurement a delta trigger watches.
type TriggerVariable int

const (
	TriggerOnFerror TriggerVariable = iota
	TriggerOnVolt
	TriggerOnPos
	TriggerOnVel
)

// MaxSize is the largest number of entries a log stream may be opened with.
const MaxSize = 4096

// Entry is a single tagged log sample. Only the fields relevant to Type are
// meaningful; this mirrors a tagged-union log entry (EMCMOT_LOG_TYPE_*
// selects which union member is valid) without requiring unsafe punning in
// Go.
type Entry struct {
	Time float64
	Type Type

	// command-log fields
	Command    int
	CommandNum uint64

	// axis-log fields
	Pos        float64
	Vel        float64
	RawOutput  float64
	FerrorCurr float64

	// reserved for future richer samples (e.g. full pose captures)
	Pose pose.Pose
}

// Log is a fixed-capacity ring of Entry, with an open/start/stop/close
// lifecycle.
type Log struct {
	entries  []Entry
	capacity int
	cursor   int
	full     bool

	open    bool
	started bool

	typ      Type
	axis     int
	skip     int
	skipped  int
	trigType TriggerType
	trigVar  TriggerVariable
	trigThr  float64

	// startVal is the trigger variable's value snapshotted at Open time,
	// used as the delta-trigger baseline.
	startVal float64

	// startTime is set by Start, used to compute relative timestamps by
	// subtracting off the log's own start time.
	startTime float64
}

// Init (re)initializes the log for a new open/start/stop/close cycle,
// matching emcmotLogInit: it discards any previous contents and sets the
// entry type and capacity.
func (l *Log) Init(t Type, size int) {
	l.entries = make([]Entry, size)
	l.capacity = size
	l.cursor = 0
	l.full = false
	l.typ = t
}

// Open validates and opens a log stream. axis is ignored for non-axis-scoped
// types. sample, if non-nil, is called to fetch the current value of the
// chosen trigger variable for a delta trigger's baseline.
func (l *Log) Open(t Type, size, axisIdx, skip int, trigType TriggerType, trigVar TriggerVariable, trigThr float64, sample func(TriggerVariable, int) float64) bool {
	if size <= 0 || size > MaxSize {
		return false
	}
	if t.axisScoped() && (axisIdx < 0 || axisIdx >= 8) {
		return false
	}

	l.Init(t, size)
	l.open = true
	l.started = false
	l.axis = axisIdx
	l.skip = skip
	l.skipped = 0
	l.trigType = trigType
	l.trigVar = trigVar
	l.trigThr = trigThr

	if t.axisScoped() && trigType == TriggerDelta && sample != nil {
		l.startVal = sample(trigVar, axisIdx)
	}
	return true
}

// Start arms the log for appending, if it is open and the trigger is
// manual. Delta-triggered logs do not arm via Start; they rely on the
// baseline captured at Open time. TypePosVoltage never arms via Start.
func (l *Log) Start(now float64) {
	if l.typ == TypePosVoltage {
		return
	}
	if l.open && l.trigType == TriggerManual {
		l.started = true
		l.startTime = now
		l.skipped = 0
	}
}

// Stop disarms the log without releasing its storage.
func (l *Log) Stop() {
	l.started = false
}

// Close releases the log's storage and resets it to the unopened state.
func (l *Log) Close() {
	l.entries = nil
	l.capacity = 0
	l.cursor = 0
	l.full = false
	l.open = false
	l.started = false
	l.typ = TypeNone
}

// Add appends an entry if the log is open and started, honoring the skip
// count (append every skip+1-th sample). It overwrites the oldest entry once
// the ring is full, matching a bounded diagnostic buffer rather than an
// unbounded recording.
func (l *Log) Add(e Entry) {
	if !l.open || !l.started || l.capacity == 0 {
		return
	}
	if l.skipped < l.skip {
		l.skipped++
		return
	}
	l.skipped = 0
	l.entries[l.cursor] = e
	l.cursor++
	if l.cursor == l.capacity {
		l.cursor = 0
		l.full = true
	}
}

// Howmany reports the number of valid entries currently stored.
func (l *Log) Howmany() int {
	if l.full {
		return l.capacity
	}
	return l.cursor
}

// IsOpen reports whether the log stream is open.
func (l *Log) IsOpen() bool { return l.open }

// Started reports whether the log stream is actively appending.
func (l *Log) Started() bool { return l.started }

// Type reports the log stream's configured type.
func (l *Log) Type() Type { return l.typ }

// StartVal reports the delta-trigger baseline captured at Open time.
func (l *Log) StartVal() float64 { return l.startVal }

// Entries returns the valid entries in chronological order (oldest first).
func (l *Log) Entries() []Entry {
	if !l.full {
		out := make([]Entry, l.cursor)
		copy(out, l.entries[:l.cursor])
		return out
	}
	out := make([]Entry, l.capacity)
	copy(out, l.entries[l.cursor:])
	copy(out[l.capacity-l.cursor:], l.entries[:l.cursor])
	return out
}
