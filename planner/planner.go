// Package planner defines the opaque trajectory planner queue contract
// consumed by the controller and provides a reference, in-memory
// implementation of it. The real blending/interpolation math that a
// production planner performs is out of scope here; what the controller
// needs is a queue that accepts segments, rejects them once it is full, and
// can be paused/resumed/aborted — an opaque queue with a small
// published contract.
package planner

import (
	"errors"

	"github.com/nasa-jpl/motioncore/pose"
)

// TermCond is the queue's blending behavior at the end of a segment.
type TermCond int

const (
	// TermCondStop brings velocity to zero before starting the next segment.
	TermCondStop TermCond = iota
	// TermCondBlend blends into the next queued segment without stopping.
	TermCondBlend
)

// ErrQueueFull is returned by AddLine/AddCircle when the queue has no more
// room for additional segments.
var ErrQueueFull = errors.New("planner: queue is full")

// segKind distinguishes the two segment shapes a queue can hold.
type segKind int

const (
	segLine segKind = iota
	segCircle
)

type segment struct {
	kind   segKind
	target pose.Pose

	// circle-only fields
	center pose.Vec3
	normal pose.Vec3
	turns  int
}

// Capacity is the maximum number of queued segments a reference Queue will
// hold before AddLine/AddCircle starts returning ErrQueueFull.
const Capacity = 64

// Queue is a reference implementation of the trajectory planner contract.
// It models each segment as an opaque token; it does not interpolate motion,
// only tracks queue membership, ordering, and the small set of scalar knobs
// (vmax, vlimit, amax, vscale, term condition, id) the controller is allowed
// to set on it.
type Queue struct {
	segs   []segment
	cursor int

	id       int
	vmax     float64
	vlimit   float64
	amax     float64
	vscale   float64
	termCond TermCond
	paused   bool
}

// NewQueue returns an empty, unpaused queue with vscale defaulted to 1 (full
// speed): scale overrides start neutral.
func NewQueue() *Queue {
	return &Queue{vscale: 1}
}

// SetID sets the queue's id tag, reported by ID. Queued segments do not
// record it.
func (q *Queue) SetID(id int) { q.id = id }

// ID returns the most recently set id tag.
func (q *Queue) ID() int { return q.id }

// SetVmax sets the maximum velocity for segments in this queue.
func (q *Queue) SetVmax(v float64) { q.vmax = v }

// Vmax returns the current maximum velocity setting.
func (q *Queue) Vmax() float64 { return q.vmax }

// SetVlimit sets the absolute velocity ceiling for this queue.
func (q *Queue) SetVlimit(v float64) { q.vlimit = v }

// Vlimit returns the current velocity ceiling.
func (q *Queue) Vlimit() float64 { return q.vlimit }

// SetAmax sets the maximum acceleration for this queue.
func (q *Queue) SetAmax(a float64) { q.amax = a }

// Amax returns the current maximum acceleration.
func (q *Queue) Amax() float64 { return q.amax }

// SetVscale sets the speed override scale factor applied to this queue.
func (q *Queue) SetVscale(s float64) { q.vscale = s }

// Vscale returns the current speed override scale factor.
func (q *Queue) Vscale() float64 { return q.vscale }

// SetTermCond sets the blend/exact-stop behavior for segments in this queue.
func (q *Queue) SetTermCond(c TermCond) { q.termCond = c }

// TermCond returns the current termination condition.
func (q *Queue) TermCond() TermCond { return q.termCond }

// AddLine appends a linear move to target. It returns ErrQueueFull if the
// queue has reached Capacity.
func (q *Queue) AddLine(target pose.Pose) error {
	if len(q.segs) >= Capacity {
		return ErrQueueFull
	}
	q.segs = append(q.segs, segment{kind: segLine, target: target})
	return nil
}

// AddCircle appends a circular move ending at target, about center, in the
// plane whose normal is given, turning turns additional full revolutions
// (0 for a single arc). It returns ErrQueueFull if the queue has reached
// Capacity.
func (q *Queue) AddCircle(target pose.Pose, center, normal pose.Vec3, turns int) error {
	if len(q.segs) >= Capacity {
		return ErrQueueFull
	}
	q.segs = append(q.segs, segment{
		kind:   segCircle,
		target: target,
		center: center,
		normal: normal,
		turns:  turns,
	})
	return nil
}

// Pause halts execution of the queue where it stands.
func (q *Queue) Pause() { q.paused = true }

// Resume resumes execution of a paused queue.
func (q *Queue) Resume() { q.paused = false }

// Paused reports whether the queue is currently paused.
func (q *Queue) Paused() bool { return q.paused }

// Abort empties the queue without destroying it; vmax/vlimit/amax/vscale and
// id are left untouched: the queue is reused, not reallocated, across the
// lifetime of the process.
func (q *Queue) Abort() {
	q.segs = q.segs[:0]
	q.cursor = 0
	q.paused = false
}

// Peek returns the target pose of the next not-yet-executed segment and
// whether one exists.
func (q *Queue) Peek() (pose.Pose, bool) {
	if q.Empty() {
		return pose.Pose{}, false
	}
	return q.segs[q.cursor].target, true
}

// Len reports how many segments remain queued (including any in progress).
func (q *Queue) Len() int {
	return len(q.segs) - q.cursor
}

// Empty reports whether the queue has no remaining segments.
func (q *Queue) Empty() bool {
	return q.Len() == 0
}
