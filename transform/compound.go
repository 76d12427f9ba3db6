package transform

import (
	"fmt"

	"github.com/signadot/tony-format/go-xform/convert"
	"github.com/signadot/tony-format/go-xform/ir"
	"github.com/signadot/tony-format/go-xform/model"
)

// compoundPayload stores the operands of a binary operator under forward
// as a two element sequence of tagged transforms.
type compoundPayload[K model.OpKind] struct{}

func (compoundPayload[K]) DecodePayload(ctx *convert.Context, node *ir.Node) (model.Model, error) {
	fwd, err := convert.Field(node, "forward")
	if err != nil {
		return nil, err
	}
	if fwd.Type != ir.ArrayType || len(fwd.Values) != 2 {
		return nil, fmt.Errorf("%w: forward must be a sequence of 2 transforms", convert.ErrBadPayload)
	}
	v, err := ctx.DecodeTreeField("forward", fwd)
	if err != nil {
		return nil, err
	}
	ops, _ := v.([]any)
	if len(ops) != 2 {
		return nil, fmt.Errorf("%w: forward has %d decodable operands", convert.ErrBadPayload, len(ops))
	}
	left, lok := ops[0].(model.Model)
	right, rok := ops[1].(model.Model)
	if !lok || !rok {
		return nil, fmt.Errorf("%w: forward operands must be transforms, got %T and %T", convert.ErrBadPayload, ops[0], ops[1])
	}
	m := model.NewCompound[K](left, right)
	if err := model.Validate(m); err != nil {
		return nil, fmt.Errorf("%w: %w", convert.ErrBadPayload, err)
	}
	return m, nil
}

func (compoundPayload[K]) EncodePayload(ctx *convert.Context, m model.Model) (*ir.Node, error) {
	c, ok := m.(*model.Compound[K])
	if !ok {
		return nil, wrongModel("a compound model", m)
	}
	if c.Left == nil || c.Right == nil {
		return nil, fmt.Errorf("%w: %s with a missing operand", convert.ErrBadPayload, c.Op().Name())
	}
	fwd, err := ctx.EncodeTreeField("forward", []any{c.Left, c.Right})
	if err != nil {
		return nil, err
	}
	return ir.FromMap(map[string]*ir.Node{"forward": fwd}), nil
}

// AssertEqual compares the operands through their own bindings.
func (compoundPayload[K]) AssertEqual(ctx *convert.Context, a, b model.Model) error {
	ca, cb := a.(*model.Compound[K]), b.(*model.Compound[K])
	if err := ctx.AssertEqual(ca.Left, cb.Left); err != nil {
		return fmt.Errorf("%s left: %w", ca.Op().Name(), err)
	}
	if err := ctx.AssertEqual(ca.Right, cb.Right); err != nil {
		return fmt.Errorf("%s right: %w", ca.Op().Name(), err)
	}
	return nil
}
