package transform

import (
	"fmt"

	"github.com/signadot/tony-format/go-xform/convert"
	"github.com/signadot/tony-format/go-xform/ir"
	"github.com/signadot/tony-format/go-xform/model"
)

type affinePayload struct{}

func (affinePayload) DecodePayload(ctx *convert.Context, node *ir.Node) (model.Model, error) {
	mf, err := convert.Field(node, "matrix")
	if err != nil {
		return nil, err
	}
	rows, err := convert.FloatMatrix(mf)
	if err != nil {
		return nil, fmt.Errorf("matrix: %w", err)
	}
	if len(rows) != 2 || len(rows[0]) != 2 || len(rows[1]) != 2 {
		return nil, fmt.Errorf("%w: matrix must be 2x2", convert.ErrBadPayload)
	}
	var t []float64
	if tf := ir.Get(node, "translation"); tf != nil {
		t, err = convert.FloatSlice(tf)
		if err != nil {
			return nil, fmt.Errorf("translation: %w", err)
		}
		if len(t) != 2 {
			return nil, fmt.Errorf("%w: translation must have 2 entries, got %d", convert.ErrBadPayload, len(t))
		}
	} else {
		t = []float64{0, 0}
	}
	return model.NewAffineTransformation2D(
		[2][2]float64{{rows[0][0], rows[0][1]}, {rows[1][0], rows[1][1]}},
		[2]float64{t[0], t[1]},
	), nil
}

func (affinePayload) EncodePayload(ctx *convert.Context, m model.Model) (*ir.Node, error) {
	a, ok := m.(*model.AffineTransformation2D)
	if !ok {
		return nil, wrongModel("an affine transformation", m)
	}
	return ir.FromMap(map[string]*ir.Node{
		"matrix":      convert.FromFloatMatrix([][]float64{a.Matrix[0][:], a.Matrix[1][:]}),
		"translation": ir.FromFloats(a.Translation[:]),
	}), nil
}
