// Package status implements the sticky error/status model the core uses
// instead of per-call Go errors. A Context or Surface carries a single
// Status value; once it goes non-nil, every subsequent drawing operation
// becomes a no-op until the status is explicitly cleared (or the object
// is restored to a point before the error occurred).
package status

import "fmt"

// Kind enumerates every distinguishable error condition the core can
// raise. Names mirror the cairo_status_t taxonomy this module's error
// model is grounded on.
type Kind int

const (
	Success Kind = iota
	NoMemory
	InvalidRestore
	InvalidPopGroup
	NoCurrentPoint
	InvalidMatrix
	InvalidStatus
	NullPointer
	InvalidString
	InvalidPathData
	ReadError
	WriteError
	SurfaceFinished
	SurfaceTypeMismatch
	PatternTypeMismatch
	InvalidContent
	InvalidFormat
	InvalidVisual
	FileNotFound
	InvalidDashSize
	InvalidDashOffset
	UserFontError
	UserFontImmutable
	UserFontNotForgiving
	InvalidClusters
	InvalidSlant
	InvalidWeight
	InvalidSize
	UserFontNotImplemented
	DeviceError
	DeviceTypeMismatch
	DeviceFinished
	JbigGlobalMissing
	PngError
	FreetypeError
	WinGdiError
	TagError
)

var names = map[Kind]string{
	Success:                "success",
	NoMemory:               "out of memory",
	InvalidRestore:         "invalid restore: no matching save",
	InvalidPopGroup:        "invalid pop group: no matching push",
	NoCurrentPoint:         "no current point",
	InvalidMatrix:          "invalid matrix: not invertible",
	InvalidStatus:          "invalid status value",
	NullPointer:            "null pointer",
	InvalidString:          "invalid string",
	InvalidPathData:        "invalid path data",
	ReadError:              "read error",
	WriteError:             "write error",
	SurfaceFinished:        "surface finished",
	SurfaceTypeMismatch:    "surface type mismatch",
	PatternTypeMismatch:    "pattern type mismatch",
	InvalidContent:         "invalid content",
	InvalidFormat:          "invalid format",
	InvalidVisual:          "invalid visual",
	FileNotFound:           "file not found",
	InvalidDashSize:        "invalid dash pattern size",
	InvalidDashOffset:      "invalid dash offset",
	UserFontError:          "user font error",
	UserFontImmutable:      "user font is immutable",
	UserFontNotForgiving:   "user font not forgiving",
	InvalidClusters:        "invalid clusters",
	InvalidSlant:           "invalid slant",
	InvalidWeight:          "invalid weight",
	InvalidSize:            "invalid size",
	UserFontNotImplemented: "user font method not implemented",
	DeviceError:            "device error",
	DeviceTypeMismatch:     "device type mismatch",
	DeviceFinished:         "device finished",
	JbigGlobalMissing:      "jbig2 global segment missing",
	PngError:               "png error",
	FreetypeError:          "freetype error",
	WinGdiError:            "win32 gdi error",
	TagError:               "tag error",
}

// String implements fmt.Stringer.
func (k Kind) String() string {
	if s, ok := names[k]; ok {
		return s
	}
	return fmt.Sprintf("status(%d)", int(k))
}

// Status is a sticky error carrier. The zero value is success.
type Status struct {
	kind Kind
}

// OK constructs a success Status.
func OK() Status { return Status{kind: Success} }

// New constructs a Status of the given kind.
func New(k Kind) Status { return Status{kind: k} }

// IsSuccess reports whether the status represents no error.
func (s Status) IsSuccess() bool { return s.kind == Success }

// Kind returns the underlying Kind.
func (s Status) Kind() Kind { return s.kind }

// Error implements the error interface so a Status can be returned or
// wrapped at an API boundary that does use idiomatic Go errors.
func (s Status) Error() string { return s.kind.String() }

// Sticky holds a single Status that, once set to a failure, refuses to
// be overwritten by a later failure — the first error wins, matching
// cairo's "once in an error state, stays in that error state" rule.
// Restore (to a gstate snapshot taken before the error) is the only way
// to clear it short of explicit SetOK.
type Sticky struct {
	current Status
}

// Set records a status. If the tracker already holds a failure, later
// failures are dropped; only the first error is kept. Success never
// overwrites an existing failure, and success-over-success is a no-op.
func (s *Sticky) Set(st Status) {
	if s.current.IsSuccess() {
		s.current = st
	}
}

// SetOK forcibly clears the sticky status, used when a restore pops
// back to a state recorded before the error occurred.
func (s *Sticky) SetOK() {
	s.current = OK()
}

// Status returns the current sticky status.
func (s *Sticky) Status() Status {
	return s.current
}

// Failed reports whether the tracker currently holds an error.
func (s *Sticky) Failed() bool {
	return !s.current.IsSuccess()
}
