// Package pathseg defines the verb/point vocabulary shared between the
// root Path type and the internal geometry packages (flatten, filler,
// stroker) that consume it. It exists purely to avoid an import cycle:
// the root package owns Path, but Filler/Stroker are internal packages
// that must not import the root package back.
package pathseg

import "github.com/rasterkit/gg2d/internal/fixed"

// Verb identifies one path element. Arity (number of Points consumed)
// is 1 for MoveTo/LineTo, 3 for CurveTo, 0 for Close.
type Verb uint8

const (
	MoveTo Verb = iota
	LineTo
	CurveTo
	Close
)

// Arity returns the number of points the verb consumes.
func (v Verb) Arity() int {
	switch v {
	case MoveTo, LineTo:
		return 1
	case CurveTo:
		return 3
	default:
		return 0
	}
}

// Segment is one (verb, points) pair yielded by a path iterator.
// Points holds exactly Verb.Arity() entries.
type Segment struct {
	Verb   Verb
	Points [3]fixed.Point
}

// Iterator is satisfied by anything that can walk a path's segments in
// order, forward or reverse. Next returns false once exhausted.
type Iterator interface {
	Next() (Segment, bool)
}

// SliceIterator adapts a pre-built []Segment to the Iterator interface.
type SliceIterator struct {
	segs []Segment
	pos  int
}

// NewSliceIterator wraps segs for sequential iteration.
func NewSliceIterator(segs []Segment) *SliceIterator {
	return &SliceIterator{segs: segs}
}

// Next implements Iterator.
func (it *SliceIterator) Next() (Segment, bool) {
	if it.pos >= len(it.segs) {
		return Segment{}, false
	}
	s := it.segs[it.pos]
	it.pos++
	return s, true
}

// Reversed returns a new slice of segments describing the same set of
// sub-paths traversed backward: each sub-path's points are reversed and
// curve control points swap order, and each closed sub-path gets a Close
// both before its MoveTo and after its last segment; open sub-paths get none.
func Reversed(segs []Segment) []Segment {
	// Split into sub-paths at each MoveTo.
	var subpaths [][]Segment
	var cur []Segment
	for _, s := range segs {
		if s.Verb == MoveTo && len(cur) > 0 {
			subpaths = append(subpaths, cur)
			cur = nil
		}
		cur = append(cur, s)
	}
	if len(cur) > 0 {
		subpaths = append(subpaths, cur)
	}

	var out []Segment
	for i := len(subpaths) - 1; i >= 0; i-- {
		out = append(out, reverseSubpath(subpaths[i])...)
	}
	return out
}

func reverseSubpath(sub []Segment) []Segment {
	// Collect the flattened point sequence implied by this sub-path's
	// verbs (end point of each verb, plus control points for curves),
	// then walk it backward re-synthesizing verbs.
	if len(sub) == 0 {
		return nil
	}
	closed := sub[len(sub)-1].Verb == Close

	type node struct {
		verb Verb
		pts  [3]fixed.Point // for CurveTo: c1, c2, end; else just end in pts[0]
	}
	var nodes []node
	for _, s := range sub {
		if s.Verb == Close {
			continue
		}
		nodes = append(nodes, node{verb: s.Verb, pts: s.Points})
	}
	if len(nodes) == 0 {
		return nil
	}

	out := make([]Segment, 0, len(nodes)+1)
	if closed {
		out = append(out, Segment{Verb: Close})
	}
	// New sub-path starts at the old last point.
	lastPt := nodes[len(nodes)-1].pts[0]
	if nodes[len(nodes)-1].verb == CurveTo {
		lastPt = nodes[len(nodes)-1].pts[2]
	}
	out = append(out, Segment{Verb: MoveTo, Points: [3]fixed.Point{lastPt}})

	for i := len(nodes) - 1; i >= 0; i-- {
		n := nodes[i]
		var prevEnd fixed.Point
		if i == 0 {
			prevEnd = fixed.Point{} // start of sub-path; caller tracks real origin externally if needed
		} else {
			p := nodes[i-1]
			if p.verb == CurveTo {
				prevEnd = p.pts[2]
			} else {
				prevEnd = p.pts[0]
			}
		}
		switch n.verb {
		case MoveTo:
			// swallowed into the initial MoveTo above for i==0; for i>0
			// a MoveTo mid-list shouldn't occur within one sub-path.
		case LineTo:
			out = append(out, Segment{Verb: LineTo, Points: [3]fixed.Point{prevEnd}})
		case CurveTo:
			out = append(out, Segment{Verb: CurveTo, Points: [3]fixed.Point{n.pts[1], n.pts[0], prevEnd}})
		}
	}
	if closed {
		out = append(out, Segment{Verb: Close})
	}
	return out
}
