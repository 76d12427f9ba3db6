package transform

import (
	"fmt"
	"reflect"

	"github.com/signadot/tony-format/go-xform/convert"
	"github.com/signadot/tony-format/go-xform/ir"
	"github.com/signadot/tony-format/go-xform/model"
)

func typesOf(vs ...any) []reflect.Type {
	res := make([]reflect.Type, len(vs))
	for i, v := range vs {
		res[i] = reflect.TypeOf(v)
	}
	return res
}

func wrongModel(want string, m model.Model) error {
	return fmt.Errorf("%w: %T is not %s", convert.ErrUnregisteredType, m, want)
}

// Unimplemented is a payload for kinds that are known but not supported.
type Unimplemented struct{}

func (Unimplemented) DecodePayload(*convert.Context, *ir.Node) (model.Model, error) {
	return nil, convert.ErrUnimplemented
}

func (Unimplemented) EncodePayload(*convert.Context, model.Model) (*ir.Node, error) {
	return nil, convert.ErrUnimplemented
}

type identityPayload struct{}

func (identityPayload) DecodePayload(ctx *convert.Context, node *ir.Node) (model.Model, error) {
	n, err := convert.IntOr(node, "n_dims", 1)
	if err != nil {
		return nil, err
	}
	if n < 1 {
		return nil, fmt.Errorf("%w: n_dims %d", convert.ErrBadPayload, n)
	}
	return model.NewIdentity(n), nil
}

func (identityPayload) EncodePayload(ctx *convert.Context, m model.Model) (*ir.Node, error) {
	id, ok := m.(*model.Identity)
	if !ok {
		return nil, wrongModel("an identity", m)
	}
	node := ir.Object()
	if id.NDims != 1 {
		node.Set("n_dims", ir.FromInt(int64(id.NDims)))
	}
	return node, nil
}

type constantPayload struct{}

func (constantPayload) DecodePayload(ctx *convert.Context, node *ir.Node) (model.Model, error) {
	v, err := convert.Float(node, "value")
	if err != nil {
		return nil, err
	}
	return model.NewConst1D(v), nil
}

func (constantPayload) EncodePayload(ctx *convert.Context, m model.Model) (*ir.Node, error) {
	c, ok := m.(*model.Const1D)
	if !ok {
		return nil, wrongModel("a constant", m)
	}
	return ir.FromMap(map[string]*ir.Node{"value": ir.FromFloat(c.Amplitude)}), nil
}

type genericPayload struct{}

func (genericPayload) DecodePayload(ctx *convert.Context, node *ir.Node) (model.Model, error) {
	in, err := convert.Int(node, "n_inputs")
	if err != nil {
		return nil, err
	}
	out, err := convert.Int(node, "n_outputs")
	if err != nil {
		return nil, err
	}
	return model.NewGenericModel(in, out), nil
}

func (genericPayload) EncodePayload(ctx *convert.Context, m model.Model) (*ir.Node, error) {
	g, ok := m.(*model.GenericModel)
	if !ok {
		return nil, wrongModel("a generic model", m)
	}
	return ir.FromMap(map[string]*ir.Node{
		"n_inputs":  ir.FromInt(int64(g.In)),
		"n_outputs": ir.FromInt(int64(g.Out)),
	}), nil
}

type shiftPayload struct{}

func (shiftPayload) DecodePayload(ctx *convert.Context, node *ir.Node) (model.Model, error) {
	v, err := convert.Float(node, "offset")
	if err != nil {
		return nil, err
	}
	return model.NewShift(v), nil
}

func (shiftPayload) EncodePayload(ctx *convert.Context, m model.Model) (*ir.Node, error) {
	s, ok := m.(*model.Shift)
	if !ok {
		return nil, wrongModel("a shift", m)
	}
	return ir.FromMap(map[string]*ir.Node{"offset": ir.FromFloat(s.Offset)}), nil
}

type scalePayload struct{}

func (scalePayload) DecodePayload(ctx *convert.Context, node *ir.Node) (model.Model, error) {
	v, err := convert.Float(node, "factor")
	if err != nil {
		return nil, err
	}
	return model.NewScale(v), nil
}

func (scalePayload) EncodePayload(ctx *convert.Context, m model.Model) (*ir.Node, error) {
	s, ok := m.(*model.Scale)
	if !ok {
		return nil, wrongModel("a scale", m)
	}
	return ir.FromMap(map[string]*ir.Node{"factor": ir.FromFloat(s.Factor)}), nil
}

// rotationPayload stores the angle in degrees.
type rotationPayload struct{}

func (rotationPayload) DecodePayload(ctx *convert.Context, node *ir.Node) (model.Model, error) {
	v, err := convert.FloatOr(node, "angle", 0)
	if err != nil {
		return nil, err
	}
	return model.NewRotation2D(v), nil
}

func (rotationPayload) EncodePayload(ctx *convert.Context, m model.Model) (*ir.Node, error) {
	r, ok := m.(*model.Rotation2D)
	if !ok {
		return nil, wrongModel("a rotation", m)
	}
	return ir.FromMap(map[string]*ir.Node{"angle": ir.FromFloat(r.Angle)}), nil
}

// mappingPayload writes n_inputs only when it cannot be inferred from the
// mapping.
type mappingPayload struct{}

func (mappingPayload) DecodePayload(ctx *convert.Context, node *ir.Node) (model.Model, error) {
	f, err := convert.Field(node, "mapping")
	if err != nil {
		return nil, err
	}
	mapping, err := convert.IntSlice(f)
	if err != nil {
		return nil, fmt.Errorf("mapping: %w", err)
	}
	n, err := convert.IntOr(node, "n_inputs", 0)
	if err != nil {
		return nil, err
	}
	m, err := model.NewMapping(mapping, n)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", convert.ErrBadPayload, err)
	}
	return m, nil
}

func (mappingPayload) EncodePayload(ctx *convert.Context, m model.Model) (*ir.Node, error) {
	mp, ok := m.(*model.Mapping)
	if !ok {
		return nil, wrongModel("a mapping", m)
	}
	node := ir.FromMap(map[string]*ir.Node{"mapping": ir.FromInts(mp.Mapping)})
	if !mp.InferredInputs() {
		node.Set("n_inputs", ir.FromInt(int64(mp.NInputs())))
	}
	return node, nil
}
