package model

import (
	"fmt"
	"slices"
)

// Identity passes NDims inputs through unchanged.
type Identity struct {
	Base
	NDims int
}

func NewIdentity(nDims int) *Identity { return &Identity{NDims: nDims} }

func (m *Identity) NInputs() int  { return m.NDims }
func (m *Identity) NOutputs() int { return m.NDims }

func (m *Identity) Rename(name string) Model {
	c := *m
	c.Base = m.renamed(name)
	return &c
}

func (m *Identity) StructuralInverse() (Model, error) {
	return NewIdentity(m.NDims), nil
}

// Const1D maps any input to Amplitude.
type Const1D struct {
	Base
	Amplitude float64
}

func NewConst1D(amplitude float64) *Const1D { return &Const1D{Amplitude: amplitude} }

func (m *Const1D) NInputs() int  { return 1 }
func (m *Const1D) NOutputs() int { return 1 }

func (m *Const1D) Rename(name string) Model {
	c := *m
	c.Base = m.renamed(name)
	return &c
}

// Shift adds Offset to its input.
type Shift struct {
	Base
	Offset float64
}

func NewShift(offset float64) *Shift { return &Shift{Offset: offset} }

func (m *Shift) NInputs() int  { return 1 }
func (m *Shift) NOutputs() int { return 1 }

func (m *Shift) Rename(name string) Model {
	c := *m
	c.Base = m.renamed(name)
	return &c
}

func (m *Shift) StructuralInverse() (Model, error) {
	return NewShift(-m.Offset), nil
}

// Scale multiplies its input by Factor.
type Scale struct {
	Base
	Factor float64
}

func NewScale(factor float64) *Scale { return &Scale{Factor: factor} }

func (m *Scale) NInputs() int  { return 1 }
func (m *Scale) NOutputs() int { return 1 }

func (m *Scale) Rename(name string) Model {
	c := *m
	c.Base = m.renamed(name)
	return &c
}

func (m *Scale) StructuralInverse() (Model, error) {
	if m.Factor == 0 {
		return nil, fmt.Errorf("%w: zero scale factor", ErrNoInverse)
	}
	return NewScale(1 / m.Factor), nil
}

// Rotation2D rotates the plane by Angle degrees.
type Rotation2D struct {
	Base
	Angle float64
}

func NewRotation2D(angle float64) *Rotation2D { return &Rotation2D{Angle: angle} }

func (m *Rotation2D) NInputs() int  { return 2 }
func (m *Rotation2D) NOutputs() int { return 2 }

func (m *Rotation2D) Rename(name string) Model {
	c := *m
	c.Base = m.renamed(name)
	return &c
}

func (m *Rotation2D) StructuralInverse() (Model, error) {
	return NewRotation2D(-m.Angle), nil
}

// Mapping reorders, duplicates or drops inputs: output i is input
// Mapping[i].
type Mapping struct {
	Base
	Mapping []int
	nInputs int
}

// NewMapping builds a mapping. nInputs may be 0, in which case it is
// inferred as 1 + the largest index in mapping.
func NewMapping(mapping []int, nInputs int) (*Mapping, error) {
	inferred := 0
	for _, i := range mapping {
		if i < 0 {
			return nil, fmt.Errorf("negative mapping index %d", i)
		}
		inferred = max(inferred, i+1)
	}
	if nInputs == 0 {
		nInputs = inferred
	}
	if nInputs < inferred {
		return nil, fmt.Errorf("mapping uses input %d but only has %d inputs", inferred-1, nInputs)
	}
	return &Mapping{Mapping: slices.Clone(mapping), nInputs: nInputs}, nil
}

func (m *Mapping) NInputs() int  { return m.nInputs }
func (m *Mapping) NOutputs() int { return len(m.Mapping) }

// InferredInputs reports whether NInputs follows from the mapping alone.
func (m *Mapping) InferredInputs() bool {
	return m.nInputs == slices.Max(append([]int{-1}, m.Mapping...))+1
}

func (m *Mapping) Rename(name string) Model {
	c := *m
	c.Base = m.renamed(name)
	c.Mapping = slices.Clone(m.Mapping)
	return &c
}

// StructuralInverse exists when the mapping is a permutation.
func (m *Mapping) StructuralInverse() (Model, error) {
	if len(m.Mapping) != m.nInputs {
		return nil, fmt.Errorf("%w: mapping is not a permutation", ErrNoInverse)
	}
	inv := make([]int, len(m.Mapping))
	seen := make([]bool, len(m.Mapping))
	for out, in := range m.Mapping {
		if seen[in] {
			return nil, fmt.Errorf("%w: mapping is not a permutation", ErrNoInverse)
		}
		seen[in] = true
		inv[in] = out
	}
	return &Mapping{Mapping: inv, nInputs: len(inv)}, nil
}

// GenericModel only knows its arity.
type GenericModel struct {
	Base
	In, Out int
}

func NewGenericModel(in, out int) *GenericModel { return &GenericModel{In: in, Out: out} }

func (m *GenericModel) NInputs() int  { return m.In }
func (m *GenericModel) NOutputs() int { return m.Out }

func (m *GenericModel) Rename(name string) Model {
	c := *m
	c.Base = m.renamed(name)
	return &c
}
