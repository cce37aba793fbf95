package particle

// Stack is an owned, contiguous, resizable buffer of particles. It is the
// sole owner of record storage; spans and column views borrow from it and
// must not outlive an append or reallocation.
type Stack []Particle

// NewStack allocates a zeroed stack of n particles.
func NewStack(n int) Stack {
	return make(Stack, n)
}

// NewBenchStack allocates a stack with the deterministic benchmark pattern:
// every third particle gets a zero identifier (and therefore zero charge),
// the rest carry their index. Kinematics start with unit momentum and e=10
// so beta2 = 3/100 sits comfortably inside (0,1).
func NewBenchStack(n int) Stack {
	s := make(Stack, n)
	for i := range s {
		id := int32(i)
		if i%3 == 0 {
			id = 0
		}
		s[i] = Particle{
			ID: id,
			Px: 1, Py: 1, Pz: 1,
			E: 10,
		}
	}
	return s
}

// Grow appends n zeroed particles and returns the stack. Any outstanding
// span or column view over the old storage is invalidated.
func (s Stack) Grow(n int) Stack {
	return append(s, make([]Particle, n)...)
}
