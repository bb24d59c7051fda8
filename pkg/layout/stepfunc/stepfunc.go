// Package stepfunc implements interval-valued piecewise-constant functions of
// one integer coordinate.
//
// A [Func] models y = f(x) as a sorted list of half-open segments [From, To),
// each with one constant value. Outside its segments a Func is undefined.
// The layout engine uses them as subtree silhouettes: the lower boundary of
// one subtree and the upper boundary of the next tell how far the two may be
// pushed together without crossing.
//
// Funcs are immutable values. [Func.Translate] is O(1): it records an offset
// instead of copying segments, and translating a translated Func adds the
// offsets, so chains never nest. Operations that need concrete segments
// materialize the offset once.
package stepfunc

import (
	"fmt"
	"slices"
	"strings"
)

// Segment is one constant piece of a Func, covering [From, To).
type Segment struct {
	From, To int
	Value    int
}

// Op selects the pointwise operation of [Func.Combine].
type Op int

const (
	Max Op = iota
	Min
)

func (o Op) apply(a, b int) int {
	if o == Max {
		return max(a, b)
	}
	return min(a, b)
}

// Func is a piecewise-constant function. The zero value is the empty function,
// undefined everywhere.
type Func struct {
	segs   []Segment // normalized: sorted, disjoint, non-empty, merged
	dx, dy int
}

// New returns a function with value v on [from, to). An empty interval yields
// the empty function.
func New(from, to, v int) Func {
	if from >= to {
		return Func{}
	}
	return Func{segs: []Segment{{From: from, To: to, Value: v}}}
}

// FromSegments builds a function from arbitrary segments. Overlapping
// segments are resolved with op; uncovered stretches stay undefined.
func FromSegments(op Op, segs ...Segment) Func {
	var pts []int
	for _, s := range segs {
		if s.From < s.To {
			pts = append(pts, s.From, s.To)
		}
	}
	slices.Sort(pts)
	pts = slices.Compact(pts)

	var out []Segment
	for i := 0; i+1 < len(pts); i++ {
		a, b := pts[i], pts[i+1]
		v, covered := 0, false
		for _, s := range segs {
			if s.From <= a && a < s.To {
				if covered {
					v = op.apply(v, s.Value)
				} else {
					v, covered = s.Value, true
				}
			}
		}
		if !covered {
			continue
		}
		if n := len(out); n > 0 && out[n-1].Value == v && out[n-1].To == a {
			out[n-1].To = b
			continue
		}
		out = append(out, Segment{From: a, To: b, Value: v})
	}
	return Func{segs: out}
}

// IsEmpty reports whether f is undefined everywhere.
func (f Func) IsEmpty() bool { return len(f.segs) == 0 }

// Domain returns the hull [from, to) of f's segments.
func (f Func) Domain() (from, to int, ok bool) {
	if f.IsEmpty() {
		return 0, 0, false
	}
	return f.segs[0].From + f.dx, f.segs[len(f.segs)-1].To + f.dx, true
}

// Segments returns f's segments with any pending translation applied.
func (f Func) Segments() []Segment {
	out := make([]Segment, len(f.segs))
	for i, s := range f.segs {
		out[i] = Segment{From: s.From + f.dx, To: s.To + f.dx, Value: s.Value + f.dy}
	}
	return out
}

// Translate shifts the domain by dx and the values by dy.
func (f Func) Translate(dx, dy int) Func {
	if f.IsEmpty() {
		return f
	}
	return Func{segs: f.segs, dx: f.dx + dx, dy: f.dy + dy}
}

// Flatten applies a pending translation to the segments themselves.
func (f Func) Flatten() Func {
	if f.dx == 0 && f.dy == 0 {
		return f
	}
	return Func{segs: f.Segments()}
}

// Evaluate returns the value at x, or false when f is undefined there.
func (f Func) Evaluate(x int) (int, bool) {
	i, ok := f.find(x - f.dx)
	if !ok {
		return 0, false
	}
	return f.segs[i].Value + f.dy, true
}

// find locates the segment covering the untranslated coordinate x.
func (f Func) find(x int) (int, bool) {
	i, _ := slices.BinarySearchFunc(f.segs, x, func(s Segment, x int) int {
		switch {
		case s.To <= x:
			return -1
		case s.From > x:
			return 1
		}
		return 0
	})
	if i < len(f.segs) && f.segs[i].From <= x && x < f.segs[i].To {
		return i, true
	}
	return i, false
}

// extrapolate returns the value used for x where f is undefined: the nearest
// end value outside the hull, the left neighbour inside a hole.
func (f Func) extrapolate(x int) int {
	from, to, _ := f.Domain()
	switch {
	case x < from:
		return f.segs[0].Value + f.dy
	case x >= to:
		return f.segs[len(f.segs)-1].Value + f.dy
	}
	i, _ := f.find(x - f.dx)
	return f.segs[i-1].Value + f.dy
}

// Combine returns the pointwise op of f and g. Where only one function is
// defined its value is used. Where neither is defined but x lies inside the
// hull of both domains, every non-empty operand is extended (its left
// neighbour inside its own holes, its nearest end value outside its hull) and
// op combines the extensions. An empty operand therefore still fills the
// other's holes. Outside the hull the result is undefined.
func (f Func) Combine(g Func, op Op) Func {
	switch {
	case f.IsEmpty():
		return g.fillHoles()
	case g.IsEmpty():
		return f.fillHoles()
	}

	points := breakpoints(f, g)
	out := make([]Segment, 0, len(points))
	for i := 0; i+1 < len(points); i++ {
		a, b := points[i], points[i+1]
		vf, okf := f.Evaluate(a)
		vg, okg := g.Evaluate(a)
		var v int
		switch {
		case okf && okg:
			v = op.apply(vf, vg)
		case okf:
			v = vf
		case okg:
			v = vg
		default:
			v = op.apply(f.extrapolate(a), g.extrapolate(a))
		}
		if n := len(out); n > 0 && out[n-1].Value == v && out[n-1].To == a {
			out[n-1].To = b
			continue
		}
		out = append(out, Segment{From: a, To: b, Value: v})
	}
	return Func{segs: out}
}

// fillHoles extends every segment up to the next one.
func (f Func) fillHoles() Func {
	segs := f.Segments()
	out := make([]Segment, 0, len(segs))
	for i, sg := range segs {
		if i+1 < len(segs) {
			sg.To = segs[i+1].From
		}
		if n := len(out); n > 0 && out[n-1].Value == sg.Value {
			out[n-1].To = sg.To
			continue
		}
		out = append(out, sg)
	}
	return Func{segs: out}
}

// Distance returns the minimum of f(x) - g(x) over the x where both are
// defined, sampled at the breakpoints of both functions. It reports false
// when the domains do not overlap.
func (f Func) Distance(g Func) (int, bool) {
	best, found := 0, false
	for _, x := range breakpoints(f, g) {
		vf, okf := f.Evaluate(x)
		vg, okg := g.Evaluate(x)
		if !okf || !okg {
			continue
		}
		if d := vf - vg; !found || d < best {
			best, found = d, true
		}
	}
	return best, found
}

func breakpoints(fs ...Func) []int {
	var pts []int
	for _, f := range fs {
		for _, s := range f.segs {
			pts = append(pts, s.From+f.dx, s.To+f.dx)
		}
	}
	slices.Sort(pts)
	return slices.Compact(pts)
}

func (f Func) String() string {
	if f.IsEmpty() {
		return "{}"
	}
	var b strings.Builder
	b.WriteByte('{')
	for i, s := range f.Segments() {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "[%d,%d):%d", s.From, s.To, s.Value)
	}
	b.WriteByte('}')
	return b.String()
}
