package model

import "fmt"

// Operator combines two models into a compound model.
type Operator int

const (
	OpAdd Operator = iota
	OpSubtract
	OpMultiply
	OpDivide
	OpPower
	OpCompose
	OpConcatenate
)

func Operators() []Operator {
	return []Operator{OpAdd, OpSubtract, OpMultiply, OpDivide, OpPower, OpCompose, OpConcatenate}
}

// String returns the operator symbol.
func (o Operator) String() string {
	switch o {
	case OpAdd:
		return "+"
	case OpSubtract:
		return "-"
	case OpMultiply:
		return "*"
	case OpDivide:
		return "/"
	case OpPower:
		return "**"
	case OpCompose:
		return "|"
	case OpConcatenate:
		return "&"
	default:
		return fmt.Sprintf("<op %d>", int(o))
	}
}

// Name returns the operator name, e.g. "compose".
func (o Operator) Name() string {
	switch o {
	case OpAdd:
		return "add"
	case OpSubtract:
		return "subtract"
	case OpMultiply:
		return "multiply"
	case OpDivide:
		return "divide"
	case OpPower:
		return "power"
	case OpCompose:
		return "compose"
	case OpConcatenate:
		return "concatenate"
	default:
		return o.String()
	}
}

// OpKind selects the operator of a Compound at the type level, so that each
// operator has its own Go type.
type OpKind interface {
	Operator() Operator
}

type (
	AddOp         struct{}
	SubtractOp    struct{}
	MultiplyOp    struct{}
	DivideOp      struct{}
	PowerOp       struct{}
	ComposeOp     struct{}
	ConcatenateOp struct{}
)

func (AddOp) Operator() Operator         { return OpAdd }
func (SubtractOp) Operator() Operator    { return OpSubtract }
func (MultiplyOp) Operator() Operator    { return OpMultiply }
func (DivideOp) Operator() Operator      { return OpDivide }
func (PowerOp) Operator() Operator       { return OpPower }
func (ComposeOp) Operator() Operator     { return OpCompose }
func (ConcatenateOp) Operator() Operator { return OpConcatenate }

// Binary is implemented by all compound models.
type Binary interface {
	Model
	Op() Operator
	Operands() (left, right Model)
}

// Compound combines Left and Right with the operator selected by K.
type Compound[K OpKind] struct {
	Base
	Left, Right Model
}

func NewCompound[K OpKind](left, right Model) *Compound[K] {
	return &Compound[K]{Left: left, Right: right}
}

func Add(l, r Model) *Compound[AddOp]                 { return NewCompound[AddOp](l, r) }
func Subtract(l, r Model) *Compound[SubtractOp]       { return NewCompound[SubtractOp](l, r) }
func Multiply(l, r Model) *Compound[MultiplyOp]       { return NewCompound[MultiplyOp](l, r) }
func Divide(l, r Model) *Compound[DivideOp]           { return NewCompound[DivideOp](l, r) }
func Power(l, r Model) *Compound[PowerOp]             { return NewCompound[PowerOp](l, r) }
func Compose(l, r Model) *Compound[ComposeOp]         { return NewCompound[ComposeOp](l, r) }
func Concatenate(l, r Model) *Compound[ConcatenateOp] { return NewCompound[ConcatenateOp](l, r) }

// Combine builds the compound model for op.
func Combine(op Operator, l, r Model) (Binary, error) {
	switch op {
	case OpAdd:
		return Add(l, r), nil
	case OpSubtract:
		return Subtract(l, r), nil
	case OpMultiply:
		return Multiply(l, r), nil
	case OpDivide:
		return Divide(l, r), nil
	case OpPower:
		return Power(l, r), nil
	case OpCompose:
		return Compose(l, r), nil
	case OpConcatenate:
		return Concatenate(l, r), nil
	}
	return nil, fmt.Errorf("unknown operator %d", int(op))
}

func (m *Compound[K]) Op() Operator {
	var k K
	return k.Operator()
}

func (m *Compound[K]) Operands() (Model, Model) { return m.Left, m.Right }

func (m *Compound[K]) NInputs() int {
	if m.Op() == OpConcatenate {
		return m.Left.NInputs() + m.Right.NInputs()
	}
	return m.Left.NInputs()
}

func (m *Compound[K]) NOutputs() int {
	switch m.Op() {
	case OpConcatenate:
		return m.Left.NOutputs() + m.Right.NOutputs()
	case OpCompose:
		return m.Right.NOutputs()
	}
	return m.Left.NOutputs()
}

func (m *Compound[K]) Rename(name string) Model {
	c := *m
	c.Base = m.renamed(name)
	return &c
}

// StructuralInverse exists for composition and concatenation of invertible
// models.
func (m *Compound[K]) StructuralInverse() (Model, error) {
	op := m.Op()
	if op != OpCompose && op != OpConcatenate {
		return nil, fmt.Errorf("%w: operator %s", ErrNoInverse, op)
	}
	li, err := Inverse(m.Left)
	if err != nil {
		return nil, err
	}
	ri, err := Inverse(m.Right)
	if err != nil {
		return nil, err
	}
	if op == OpCompose {
		return Compose(ri, li), nil
	}
	return Concatenate(li, ri), nil
}

// Validate checks that the operands fit together.
func Validate(m Binary) error {
	l, r := m.Operands()
	if l == nil || r == nil {
		return fmt.Errorf("%s: missing operand", m.Op().Name())
	}
	switch m.Op() {
	case OpConcatenate:
		return nil
	case OpCompose:
		if l.NOutputs() != r.NInputs() {
			return fmt.Errorf("compose: left has %d outputs, right has %d inputs", l.NOutputs(), r.NInputs())
		}
	default:
		if l.NInputs() != r.NInputs() || l.NOutputs() != r.NOutputs() {
			return fmt.Errorf("%s: operands have arities %d->%d and %d->%d",
				m.Op().Name(), l.NInputs(), l.NOutputs(), r.NInputs(), r.NOutputs())
		}
	}
	return nil
}
