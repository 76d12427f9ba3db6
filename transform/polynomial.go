package transform

import (
	"fmt"

	"github.com/signadot/tony-format/go-xform/convert"
	"github.com/signadot/tony-format/go-xform/ir"
	"github.com/signadot/tony-format/go-xform/model"
)

// polynomialPayload handles both 1D and 2D polynomials. The coefficients
// are an array in 1D and a square matrix in 2D; the degree follows from
// their shape.
type polynomialPayload struct{}

func (polynomialPayload) DecodePayload(ctx *convert.Context, node *ir.Node) (model.Model, error) {
	f, err := convert.Field(node, "coefficients")
	if err != nil {
		return nil, err
	}
	if f.Type != ir.ArrayType || len(f.Values) == 0 {
		return nil, fmt.Errorf("%w: coefficients must be a non-empty array", convert.ErrBadPayload)
	}
	if f.Values[0].Type == ir.ArrayType {
		c, err := convert.FloatMatrix(f)
		if err != nil {
			return nil, fmt.Errorf("coefficients: %w", err)
		}
		p, err := model.Polynomial2DFromMatrix(c)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", convert.ErrBadPayload, err)
		}
		return p, nil
	}
	c, err := convert.FloatSlice(f)
	if err != nil {
		return nil, fmt.Errorf("coefficients: %w", err)
	}
	return model.NewPolynomial1D(len(c)-1, c...)
}

func (polynomialPayload) EncodePayload(ctx *convert.Context, m model.Model) (*ir.Node, error) {
	var coeffs *ir.Node
	switch p := m.(type) {
	case *model.Polynomial1D:
		coeffs = ir.FromFloats(p.Coeffs)
	case *model.Polynomial2D:
		coeffs = convert.FromFloatMatrix(p.Coeffs)
	default:
		return nil, wrongModel("a polynomial", m)
	}
	return ir.FromMap(map[string]*ir.Node{"coefficients": coeffs}), nil
}
