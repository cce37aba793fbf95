package particle

import "unsafe"

// Particle is one fixed-layout record on a particle stack: a signed
// identifier followed by eight float32 kinematic fields. The layout is flat
// and pointer-free so a contiguous []Particle can be read column-wise with a
// constant stride; field order here must match the Field constants.
type Particle struct {
	ID         int32
	Px, Py, Pz float32
	E          float32
	X, Y, Z    float32
	T          float32
}

const (
	scalarSize = unsafe.Sizeof(float32(0))

	// Stride is the record size measured in scalars. Column views step by
	// this amount between consecutive records.
	Stride = int(unsafe.Sizeof(Particle{}) / scalarSize)
)

// Record size must be a whole number of scalars; a remainder makes the
// constant index below out of range and the package fails to compile.
var _ = ([1]struct{}{})[unsafe.Sizeof(Particle{})%scalarSize]

// Charge derives the 0/1 charge indicator that gates energy loss: 1 for any
// particle with a nonzero identifier, 0 otherwise.
func (p *Particle) Charge() float32 {
	if p.ID != 0 {
		return 1
	}
	return 0
}

// Field names one of the float32 columns of a Particle. The constant order
// mirrors the struct layout: the identifier occupies scalar slot 0, so field
// f lives at scalar offset 1+f within a record.
type Field uint8

const (
	FieldPx Field = iota
	FieldPy
	FieldPz
	FieldE
	FieldX
	FieldY
	FieldZ
	FieldT

	numFields
)

func (f Field) String() string {
	switch f {
	case FieldPx:
		return "px"
	case FieldPy:
		return "py"
	case FieldPz:
		return "pz"
	case FieldE:
		return "e"
	case FieldX:
		return "x"
	case FieldY:
		return "y"
	case FieldZ:
		return "z"
	case FieldT:
		return "t"
	default:
		return "unknown"
	}
}

// offset returns the field's scalar offset from the start of a record.
func (f Field) offset() int { return 1 + int(f) }

func (p *Particle) fieldPtr(f Field) *float32 {
	switch f {
	case FieldPx:
		return &p.Px
	case FieldPy:
		return &p.Py
	case FieldPz:
		return &p.Pz
	case FieldE:
		return &p.E
	case FieldX:
		return &p.X
	case FieldY:
		return &p.Y
	case FieldZ:
		return &p.Z
	case FieldT:
		return &p.T
	default:
		panic("particle: unknown field")
	}
}

// Ref adapts a single particle to the same per-field accessor contract that
// Span exposes for a whole range, so kernels written against the contract
// run unchanged on one record. The index argument is ignored; a Ref always
// has length 1.
type Ref struct {
	P *Particle
}

func (r Ref) Len() int                   { return 1 }
func (r Ref) Get(f Field, _ int) float32 { return *r.P.fieldPtr(f) }
func (r Ref) Set(f Field, _ int, v float32) {
	*r.P.fieldPtr(f) = v
}

// Charge reports the record's charge indicator. Kept on the accessor
// contract so the scalar path can skip uncharged particles without touching
// column machinery.
func (r Ref) Charge(_ int) float32 { return r.P.Charge() }
