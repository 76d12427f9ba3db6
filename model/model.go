// Package model is a small library of transform models: the native objects
// converted to and from tagged trees. It carries parameters and the metadata
// slots the converters need (name, custom inverse, meta) and does not
// evaluate anything.
package model

import (
	"errors"
	"fmt"
	"maps"
	"math"
)

var ErrNoInverse = errors.New("no inverse")

// Model is implemented by every transform model.
type Model interface {
	Name() string
	// Rename returns a copy of the model with the given name. The copy
	// keeps the parameters, the custom inverse and the meta data.
	Rename(name string) Model
	NInputs() int
	NOutputs() int
	// Meta returns the auxiliary data of the model. The map is owned by
	// the model and may be written to.
	Meta() map[string]any
	// MetaValue reads one entry of the meta data without allocating.
	MetaValue(key string) (any, bool)
	CustomInverse() Model
	SetCustomInverse(Model)
}

// Invertible is implemented by models whose inverse can be derived from
// their parameters.
type Invertible interface {
	StructuralInverse() (Model, error)
}

// Base holds the metadata shared by all models. It is meant to be embedded.
type Base struct {
	name    string
	inverse Model
	meta    map[string]any
}

func (b *Base) Name() string { return b.name }

func (b *Base) Meta() map[string]any {
	if b.meta == nil {
		b.meta = map[string]any{}
	}
	return b.meta
}

func (b *Base) MetaValue(key string) (any, bool) {
	v, ok := b.meta[key]
	return v, ok
}

func (b *Base) CustomInverse() Model { return b.inverse }

func (b *Base) SetCustomInverse(m Model) { b.inverse = m }

func (b *Base) renamed(name string) Base {
	return Base{name: name, inverse: b.inverse, meta: maps.Clone(b.meta)}
}

// HasCustomInverse reports whether m has an explicitly assigned inverse.
func HasCustomInverse(m Model) bool {
	return m.CustomInverse() != nil
}

// Inverse returns the custom inverse of m if one is set and otherwise the
// structural inverse.
func Inverse(m Model) (Model, error) {
	if inv := m.CustomInverse(); inv != nil {
		return inv, nil
	}
	if s, ok := m.(Invertible); ok {
		return s.StructuralInverse()
	}
	return nil, fmt.Errorf("%w: %T", ErrNoInverse, m)
}

// Named is Rename keeping the concrete type of m.
func Named[M Model](m M, name string) M {
	return m.Rename(name).(M)
}

// Relative tolerance used by FloatsClose.
const Tolerance = 1e-12

// FloatsClose reports whether a and b are equal up to Tolerance.
func FloatsClose(a, b float64) bool {
	if a == b {
		return true
	}
	if math.IsNaN(a) && math.IsNaN(b) {
		return true
	}
	diff := math.Abs(a - b)
	scale := max(math.Abs(a), math.Abs(b))
	if scale < 1 {
		return diff <= Tolerance
	}
	return diff <= Tolerance*scale
}
