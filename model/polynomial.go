package model

import (
	"fmt"
	"slices"
)

// Polynomial1D is c[0] + c[1]*x + ... + c[degree]*x^degree.
type Polynomial1D struct {
	Base
	Coeffs []float64
}

func NewPolynomial1D(degree int, coeffs ...float64) (*Polynomial1D, error) {
	if degree < 0 {
		return nil, fmt.Errorf("negative degree %d", degree)
	}
	if len(coeffs) > degree+1 {
		return nil, fmt.Errorf("%d coefficients for degree %d", len(coeffs), degree)
	}
	c := make([]float64, degree+1)
	copy(c, coeffs)
	return &Polynomial1D{Coeffs: c}, nil
}

func (m *Polynomial1D) Degree() int   { return len(m.Coeffs) - 1 }
func (m *Polynomial1D) NInputs() int  { return 1 }
func (m *Polynomial1D) NOutputs() int { return 1 }

func (m *Polynomial1D) Rename(name string) Model {
	c := *m
	c.Base = m.renamed(name)
	c.Coeffs = slices.Clone(m.Coeffs)
	return &c
}

// Polynomial2D is the sum of Coeffs[i][j]*x^i*y^j over i+j <= degree.
// Coeffs is a (degree+1)x(degree+1) matrix whose entries with i+j > degree
// are zero.
type Polynomial2D struct {
	Base
	Coeffs [][]float64
}

func NewPolynomial2D(degree int) (*Polynomial2D, error) {
	if degree < 0 {
		return nil, fmt.Errorf("negative degree %d", degree)
	}
	c := make([][]float64, degree+1)
	for i := range c {
		c[i] = make([]float64, degree+1)
	}
	return &Polynomial2D{Coeffs: c}, nil
}

// Polynomial2DFromMatrix validates a coefficient matrix and wraps it.
func Polynomial2DFromMatrix(c [][]float64) (*Polynomial2D, error) {
	n := len(c)
	if n == 0 {
		return nil, fmt.Errorf("empty coefficient matrix")
	}
	res := make([][]float64, n)
	for i, row := range c {
		if len(row) != n {
			return nil, fmt.Errorf("coefficient matrix row %d has %d entries, want %d", i, len(row), n)
		}
		for j, v := range row {
			if i+j > n-1 && v != 0 {
				return nil, fmt.Errorf("coefficient c%d_%d exceeds degree %d", i, j, n-1)
			}
		}
		res[i] = slices.Clone(row)
	}
	return &Polynomial2D{Coeffs: res}, nil
}

// Set assigns the coefficient of x^i*y^j.
func (m *Polynomial2D) Set(i, j int, v float64) error {
	if i < 0 || j < 0 || i+j > m.Degree() {
		return fmt.Errorf("coefficient c%d_%d exceeds degree %d", i, j, m.Degree())
	}
	m.Coeffs[i][j] = v
	return nil
}

func (m *Polynomial2D) Degree() int   { return len(m.Coeffs) - 1 }
func (m *Polynomial2D) NInputs() int  { return 2 }
func (m *Polynomial2D) NOutputs() int { return 1 }

func (m *Polynomial2D) Rename(name string) Model {
	c := *m
	c.Base = m.renamed(name)
	c.Coeffs = make([][]float64, len(m.Coeffs))
	for i, row := range m.Coeffs {
		c.Coeffs[i] = slices.Clone(row)
	}
	return &c
}
