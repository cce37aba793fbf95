package particle

import (
	"errors"
	"fmt"
	"unsafe"
)

// ErrInvalidRange reports a window whose bounds do not describe a valid
// sub-range of the stack.
var ErrInvalidRange = errors.New("particle: invalid range")

// Span is a non-owning window over a contiguous [begin,end) sub-range of a
// stack. It stores only the boundary positions (as a sub-slice sharing the
// stack's storage): construction is pure pointer arithmetic, never
// allocates, never fails under valid preconditions. A span stays valid only
// while the underlying stack is neither resized nor freed.
type Span struct {
	recs []Particle
}

// View spans an entire stack.
func View(s Stack) Span { return Span{recs: s} }

// Window builds a span over [begin,end) of the stack, rejecting bounds that
// fall outside it. The unchecked constructors (View, Sub) are the hot
// paths; Window is the validated entry point for caller-supplied ranges.
func Window(s Stack, begin, end int) (Span, error) {
	if begin < 0 || end < begin || end > len(s) {
		return Span{}, fmt.Errorf("%w: [%d,%d) of %d", ErrInvalidRange, begin, end, len(s))
	}
	return Span{recs: s[begin:end]}, nil
}

// Sub narrows the span to [begin,end) relative to its own start. Bounds are
// a caller precondition, as with slicing.
func (s Span) Sub(begin, end int) Span {
	return Span{recs: s.recs[begin:end]}
}

// Size reports the number of records in the window.
func (s Span) Size() int { return len(s.recs) }

// At returns a mutable handle to record i of the window.
func (s Span) At(i int) *Particle { return &s.recs[i] }

// Records exposes the window's records for in-order iteration. The slice
// aliases the stack's storage.
func (s Span) Records() []Particle { return s.recs }

// scalars reinterprets the window's storage as a flat float32 sequence.
// Safe because Particle is flat, pointer-free and a whole number of scalars
// (see the compile-time guard in particle.go).
func (s Span) scalars() []float32 {
	if len(s.recs) == 0 {
		return nil
	}
	return unsafe.Slice((*float32)(unsafe.Pointer(&s.recs[0])), len(s.recs)*Stride)
}

// Field returns the strided column view of one float32 field. Element i of
// the view aliases that field's storage inside record i: writes through the
// view are visible through At(i) and vice versa. Construction is O(1) and
// allocation-free.
func (s Span) Field(f Field) Vec {
	if len(s.recs) == 0 {
		return Vec{}
	}
	return Vec{
		data:   s.scalars()[f.offset():],
		stride: Stride,
		n:      len(s.recs),
	}
}

// IDs returns the strided view of the identifier column.
func (s Span) IDs() IntVec {
	if len(s.recs) == 0 {
		return IntVec{}
	}
	data := unsafe.Slice((*int32)(unsafe.Pointer(&s.recs[0])), len(s.recs)*Stride)
	return IntVec{data: data, stride: Stride, n: len(s.recs)}
}

// Span implements the same accessor contract as Ref, so a kernel body
// written once runs on a whole window.

func (s Span) Len() int { return len(s.recs) }

func (s Span) Get(f Field, i int) float32 {
	return *s.recs[i].fieldPtr(f)
}

func (s Span) Set(f Field, i int, v float32) {
	*s.recs[i].fieldPtr(f) = v
}

// Charge is the elementwise comparison-and-cast of the identifier column.
func (s Span) Charge(i int) float32 {
	if s.recs[i].ID != 0 {
		return 1
	}
	return 0
}
