// Package kernel holds the numeric particle updates. Each kernel body is
// written once against the View contract and instantiated for both a single
// record (particle.Ref) and a whole window (particle.Span), so the scalar
// and batch paths share the exact same formula text. That equivalence —
// batch result over N records equals the scalar kernel applied N times in
// index order — is the property the benchmarks exist to compare.
package kernel

import (
	"math"

	"github.com/san-kum/spanbench/internal/particle"
)

// View is the minimal capability set the kernels need: a length, per-field
// element access, and the derived charge indicator.
type View interface {
	Len() int
	Get(f particle.Field, i int) float32
	Set(f particle.Field, i int, v float32)
	Charge(i int) float32
}

// DefaultDt is the fixed time step of the position update.
const DefaultDt float32 = 0.1

// EnergyLoss applies the continuous energy-loss update in place:
//
//	p2    = px² + py² + pz²
//	beta2 = p2 / e²
//	e    -= charge · (ln(beta2/(1−beta2))/beta2 − 1)
//
// Charge is 1 for a nonzero identifier and 0 otherwise, so uncharged
// particles keep their energy. beta2 must lie in (0,1) for every charged
// record — the physical below-lightspeed constraint. That is a caller
// precondition, not a checked error; out-of-domain values yield garbage,
// not a report.
func EnergyLoss[V View](v V) {
	for i, n := 0, v.Len(); i < n; i++ {
		px := v.Get(particle.FieldPx, i)
		py := v.Get(particle.FieldPy, i)
		pz := v.Get(particle.FieldPz, i)
		e := v.Get(particle.FieldE, i)

		p2 := px*px + py*py + pz*pz
		beta2 := p2 / (e * e)
		loss := v.Charge(i) * (log32(beta2/(1-beta2))/beta2 - 1)
		v.Set(particle.FieldE, i, e-loss)
	}
}

// EnergyLossOne is the scalar entry point. It takes the conditional skip
// path for uncharged particles instead of multiplying by zero.
func EnergyLossOne(p *particle.Particle) {
	if p.ID == 0 {
		return
	}
	EnergyLoss(particle.Ref{P: p})
}

// Drift advances positions by the particle momenta over one time step:
// x += px·dt, y += py·dt, z += pz·dt, t += dt.
func Drift[V View](v V, dt float32) {
	for i, n := 0, v.Len(); i < n; i++ {
		v.Set(particle.FieldX, i, v.Get(particle.FieldX, i)+v.Get(particle.FieldPx, i)*dt)
		v.Set(particle.FieldY, i, v.Get(particle.FieldY, i)+v.Get(particle.FieldPy, i)*dt)
		v.Set(particle.FieldZ, i, v.Get(particle.FieldZ, i)+v.Get(particle.FieldPz, i)*dt)
		v.Set(particle.FieldT, i, v.Get(particle.FieldT, i)+dt)
	}
}

// DriftOne advances a single particle.
func DriftOne(p *particle.Particle, dt float32) {
	Drift(particle.Ref{P: p}, dt)
}

func log32(x float32) float32 {
	return float32(math.Log(float64(x)))
}
