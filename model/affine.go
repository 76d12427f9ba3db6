package model

import "fmt"

// AffineTransformation2D maps p to Matrix*p + Translation.
type AffineTransformation2D struct {
	Base
	Matrix      [2][2]float64
	Translation [2]float64
}

func NewAffineTransformation2D(matrix [2][2]float64, translation [2]float64) *AffineTransformation2D {
	return &AffineTransformation2D{Matrix: matrix, Translation: translation}
}

// NewIdentityAffine2D is the affine transformation with unit matrix and no
// translation.
func NewIdentityAffine2D() *AffineTransformation2D {
	return NewAffineTransformation2D([2][2]float64{{1, 0}, {0, 1}}, [2]float64{})
}

func (m *AffineTransformation2D) NInputs() int  { return 2 }
func (m *AffineTransformation2D) NOutputs() int { return 2 }

func (m *AffineTransformation2D) Rename(name string) Model {
	c := *m
	c.Base = m.renamed(name)
	return &c
}

func (m *AffineTransformation2D) StructuralInverse() (Model, error) {
	a, b := m.Matrix[0][0], m.Matrix[0][1]
	c, d := m.Matrix[1][0], m.Matrix[1][1]
	det := a*d - b*c
	if det == 0 {
		return nil, fmt.Errorf("%w: singular matrix", ErrNoInverse)
	}
	inv := [2][2]float64{
		{d / det, -b / det},
		{-c / det, a / det},
	}
	tx, ty := m.Translation[0], m.Translation[1]
	return NewAffineTransformation2D(inv, [2]float64{
		-(inv[0][0]*tx + inv[0][1]*ty),
		-(inv[1][0]*tx + inv[1][1]*ty),
	}), nil
}
