package particle

// Vec is a fixed-stride view of one float32 column over a particle range.
// Element i aliases the field's storage inside record i; it is a window,
// not a copy. A Vec is valid for as long as the span it came from.
type Vec struct {
	data   []float32
	stride int
	n      int
}

// Len reports the number of elements in the column.
func (v Vec) Len() int { return v.n }

// At reads element i.
func (v Vec) At(i int) float32 {
	if i < 0 || i >= v.n {
		panic("particle: vec index out of range")
	}
	return v.data[i*v.stride]
}

// Set writes element i in place; the write lands in the owning record.
func (v Vec) Set(i int, x float32) {
	if i < 0 || i >= v.n {
		panic("particle: vec index out of range")
	}
	v.data[i*v.stride] = x
}

// Slice copies the column into a fresh contiguous slice. Convenience for
// reporting and tests; kernels go through At/Set to keep aliasing.
func (v Vec) Slice() []float32 {
	out := make([]float32, v.n)
	for i := 0; i < v.n; i++ {
		out[i] = v.data[i*v.stride]
	}
	return out
}

// IntVec is the int32 counterpart of Vec, used for the identifier column.
type IntVec struct {
	data   []int32
	stride int
	n      int
}

func (v IntVec) Len() int { return v.n }

func (v IntVec) At(i int) int32 {
	if i < 0 || i >= v.n {
		panic("particle: vec index out of range")
	}
	return v.data[i*v.stride]
}

func (v IntVec) Set(i int, x int32) {
	if i < 0 || i >= v.n {
		panic("particle: vec index out of range")
	}
	v.data[i*v.stride] = x
}
