package particle

import (
	"testing"
	"unsafe"
)

func TestParticleLayout(t *testing.T) {
	size := unsafe.Sizeof(Particle{})

	if size%unsafe.Sizeof(float32(0)) != 0 {
		t.Fatalf("record size %d is not a whole number of scalars", size)
	}
	if Stride != 9 {
		t.Errorf("Stride = %d, want 9", Stride)
	}
	if size != 36 {
		t.Errorf("record size = %d, want 36", size)
	}

	// column offsets must mirror the struct layout
	var p Particle
	base := uintptr(unsafe.Pointer(&p))
	fields := []struct {
		f    Field
		addr uintptr
	}{
		{FieldPx, uintptr(unsafe.Pointer(&p.Px))},
		{FieldPy, uintptr(unsafe.Pointer(&p.Py))},
		{FieldPz, uintptr(unsafe.Pointer(&p.Pz))},
		{FieldE, uintptr(unsafe.Pointer(&p.E))},
		{FieldX, uintptr(unsafe.Pointer(&p.X))},
		{FieldY, uintptr(unsafe.Pointer(&p.Y))},
		{FieldZ, uintptr(unsafe.Pointer(&p.Z))},
		{FieldT, uintptr(unsafe.Pointer(&p.T))},
	}
	for _, tt := range fields {
		want := uintptr(tt.f.offset()) * unsafe.Sizeof(float32(0))
		if got := tt.addr - base; got != want {
			t.Errorf("field %s at offset %d, want %d", tt.f, got, want)
		}
	}
}

func TestCharge(t *testing.T) {
	tests := []struct {
		name string
		id   int32
		want float32
	}{
		{"zero id", 0, 0},
		{"positive id", 7, 1},
		{"negative id", -3, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Particle{ID: tt.id}
			if got := p.Charge(); got != tt.want {
				t.Errorf("Charge() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFieldString(t *testing.T) {
	names := map[Field]string{
		FieldPx: "px", FieldPy: "py", FieldPz: "pz", FieldE: "e",
		FieldX: "x", FieldY: "y", FieldZ: "z", FieldT: "t",
	}
	for f, want := range names {
		if got := f.String(); got != want {
			t.Errorf("Field(%d).String() = %q, want %q", f, got, want)
		}
	}
}

func TestNewBenchStack(t *testing.T) {
	s := NewBenchStack(10)

	if len(s) != 10 {
		t.Fatalf("len = %d, want 10", len(s))
	}

	for i, p := range s {
		if i%3 == 0 {
			if p.ID != 0 {
				t.Errorf("record %d: ID = %d, want 0", i, p.ID)
			}
		} else if p.ID != int32(i) {
			t.Errorf("record %d: ID = %d, want %d", i, p.ID, i)
		}

		if p.Px != 1 || p.Py != 1 || p.Pz != 1 {
			t.Errorf("record %d: momentum = (%v,%v,%v), want unit", i, p.Px, p.Py, p.Pz)
		}
		if p.E != 10 {
			t.Errorf("record %d: E = %v, want 10", i, p.E)
		}

		// in-domain: beta2 must sit strictly inside (0,1)
		beta2 := (p.Px*p.Px + p.Py*p.Py + p.Pz*p.Pz) / (p.E * p.E)
		if beta2 <= 0 || beta2 >= 1 {
			t.Errorf("record %d: beta2 = %v out of (0,1)", i, beta2)
		}
	}
}

func TestRefAccessors(t *testing.T) {
	p := Particle{ID: 1, Px: 2, E: 5}
	r := Ref{P: &p}

	if r.Len() != 1 {
		t.Errorf("Len() = %d, want 1", r.Len())
	}
	if got := r.Get(FieldPx, 0); got != 2 {
		t.Errorf("Get(px) = %v, want 2", got)
	}

	r.Set(FieldE, 0, 7.5)
	if p.E != 7.5 {
		t.Errorf("Set(e) not visible on record: E = %v", p.E)
	}
	if r.Charge(0) != 1 {
		t.Errorf("Charge() = %v, want 1", r.Charge(0))
	}
}

func TestStackGrow(t *testing.T) {
	s := NewStack(3)
	s[2].E = 9

	s = s.Grow(2)
	if len(s) != 5 {
		t.Fatalf("len = %d, want 5", len(s))
	}
	if s[2].E != 9 {
		t.Errorf("existing record lost: E = %v", s[2].E)
	}
	if s[4] != (Particle{}) {
		t.Errorf("new records not zeroed: %+v", s[4])
	}
}
