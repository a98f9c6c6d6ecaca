package cache

import "fmt"

// Status is the lifecycle state of one cache slot.
type Status uint8

const (
	// Invalid slots hold nothing usable and must be rebuilt before drawing.
	Invalid Status = iota
	// Queued slots have a build in flight.
	Queued
	// Valid slots hold an uploaded mesh for the coordinate they map to.
	Valid
)

func (s Status) String() string {
	switch s {
	case Invalid:
		return "invalid"
	case Queued:
		return "queued"
	case Valid:
		return "valid"
	}
	return fmt.Sprintf("Status(%d)", uint8(s))
}

// Result reports what Draw did with a chunk.
type Result uint8

const (
	// Missed means the slot was invalid and a build has been requested.
	Missed Result = iota
	// Pending means a build for the slot is already in flight.
	Pending
	// Drawn means the chunk was drawn.
	Drawn
)

func (r Result) String() string {
	switch r {
	case Missed:
		return "missed"
	case Pending:
		return "pending"
	case Drawn:
		return "drawn"
	}
	return fmt.Sprintf("Result(%d)", uint8(r))
}

// WindowError is returned by Draw for a chunk more than one step outside the
// cache window. It means the caller's render radius does not fit the cache
// or the viewpoint jumped; the cache is left unchanged.
type WindowError struct {
	X, Z       int
	RefX, RefZ int
	Dim        int
}

func (e *WindowError) Error() string {
	return fmt.Sprintf("chunk (%d, %d) is more than one step outside cache window [%d,%d)x[%d,%d)",
		e.X, e.Z, e.RefX, e.RefX+e.Dim, e.RefZ, e.RefZ+e.Dim)
}
