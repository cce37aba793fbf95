// Package process represents the closed set of particle operations as a
// tagged value, so a heterogeneous ordered list of operations can be
// applied uniformly to one record or a whole window by dispatching on the
// tag instead of through an interface call.
package process

import (
	"fmt"

	"github.com/san-kum/spanbench/internal/kernel"
)

// Kind tags one member of the closed operation set.
type Kind uint8

const (
	KindEnergyLoss Kind = iota
	KindDrift
	KindNoop
)

func (k Kind) String() string {
	switch k {
	case KindEnergyLoss:
		return "energy_loss"
	case KindDrift:
		return "drift"
	case KindNoop:
		return "noop"
	default:
		return "unknown"
	}
}

// Process is one tagged operation plus its parameters.
type Process struct {
	Kind Kind
	Dt   float32
}

// New builds a process of the given kind with default parameters.
func New(k Kind) Process {
	return Process{Kind: k, Dt: kernel.DefaultDt}
}

// FromName resolves a process by its name, for configuration and the CLI.
func FromName(name string) (Process, error) {
	switch name {
	case "energy_loss":
		return New(KindEnergyLoss), nil
	case "drift":
		return New(KindDrift), nil
	case "noop":
		return New(KindNoop), nil
	default:
		return Process{}, fmt.Errorf("unknown process: %s", name)
	}
}

// Apply dispatches on the tag and runs the operation over v.
func Apply[V kernel.View](p Process, v V) {
	switch p.Kind {
	case KindEnergyLoss:
		kernel.EnergyLoss(v)
	case KindDrift:
		kernel.Drift(v, p.Dt)
	case KindNoop:
	}
}

// List is an ordered sequence of processes.
type List []Process

// ApplyList runs every process of the list over v, in order.
func ApplyList[V kernel.View](l List, v V) {
	for _, p := range l {
		Apply(p, v)
	}
}

// ListFromNames resolves a whole process list.
func ListFromNames(names []string) (List, error) {
	l := make(List, 0, len(names))
	for _, name := range names {
		p, err := FromName(name)
		if err != nil {
			return nil, err
		}
		l = append(l, p)
	}
	return l, nil
}

// Names reports the list's process names, in order.
func (l List) Names() []string {
	names := make([]string, len(l))
	for i, p := range l {
		names[i] = p.Kind.String()
	}
	return names
}
