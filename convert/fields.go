package convert

import (
	"fmt"
	"math"

	"github.com/signadot/tony-format/go-xform/ir"
)

// Payload helpers. They read fields of an object node and report malformed
// input as ErrBadPayload.

func badPayload(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrBadPayload, fmt.Sprintf(format, args...))
}

// Field returns the value of a required field.
func Field(node *ir.Node, field string) (*ir.Node, error) {
	if node == nil || node.Type != ir.ObjectType {
		return nil, badPayload("expected a mapping holding %q", field)
	}
	v := ir.Get(node, field)
	if v == nil {
		return nil, badPayload("missing field %q", field)
	}
	return v, nil
}

// AsFloat reads a number node. Integers are widened.
func AsFloat(n *ir.Node) (float64, error) {
	if n.Type != ir.NumberType {
		return 0, badPayload("expected a number, got %s", n.Type)
	}
	switch {
	case n.Float64 != nil:
		return *n.Float64, nil
	case n.Int64 != nil:
		return float64(*n.Int64), nil
	}
	return 0, badPayload("number %q out of range", n.Number)
}

// AsInt reads an integer node. Floats with an integral value are accepted.
func AsInt(n *ir.Node) (int, error) {
	if n.Type != ir.NumberType {
		return 0, badPayload("expected an integer, got %s", n.Type)
	}
	switch {
	case n.Int64 != nil:
		return int(*n.Int64), nil
	case n.Float64 != nil:
		f := *n.Float64
		if f == math.Trunc(f) && math.Abs(f) <= math.MaxInt32 {
			return int(f), nil
		}
		return 0, badPayload("expected an integer, got %v", f)
	}
	return 0, badPayload("integer %q out of range", n.Number)
}

func Float(node *ir.Node, field string) (float64, error) {
	v, err := Field(node, field)
	if err != nil {
		return 0, err
	}
	f, err := AsFloat(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", field, err)
	}
	return f, nil
}

// FloatOr is Float with a default for an absent field.
func FloatOr(node *ir.Node, field string, def float64) (float64, error) {
	if ir.Get(node, field) == nil {
		return def, nil
	}
	return Float(node, field)
}

func Int(node *ir.Node, field string) (int, error) {
	v, err := Field(node, field)
	if err != nil {
		return 0, err
	}
	i, err := AsInt(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", field, err)
	}
	return i, nil
}

func IntOr(node *ir.Node, field string, def int) (int, error) {
	if ir.Get(node, field) == nil {
		return def, nil
	}
	return Int(node, field)
}

func String(node *ir.Node, field string) (string, error) {
	v, err := Field(node, field)
	if err != nil {
		return "", err
	}
	if v.Type != ir.StringType {
		return "", badPayload("%s: expected a string, got %s", field, v.Type)
	}
	return v.String, nil
}

func StringOr(node *ir.Node, field, def string) (string, error) {
	if ir.Get(node, field) == nil {
		return def, nil
	}
	return String(node, field)
}

// FloatSlice reads an array of numbers.
func FloatSlice(n *ir.Node) ([]float64, error) {
	if n.Type != ir.ArrayType {
		return nil, badPayload("expected an array, got %s", n.Type)
	}
	res := make([]float64, len(n.Values))
	for i, v := range n.Values {
		f, err := AsFloat(v)
		if err != nil {
			return nil, fmt.Errorf("[%d]: %w", i, err)
		}
		res[i] = f
	}
	return res, nil
}

// FloatMatrix reads an array of arrays of numbers. Rows may differ in
// length; callers check the shape they need.
func FloatMatrix(n *ir.Node) ([][]float64, error) {
	if n.Type != ir.ArrayType {
		return nil, badPayload("expected an array of arrays, got %s", n.Type)
	}
	res := make([][]float64, len(n.Values))
	for i, v := range n.Values {
		row, err := FloatSlice(v)
		if err != nil {
			return nil, fmt.Errorf("[%d]: %w", i, err)
		}
		res[i] = row
	}
	return res, nil
}

func IntSlice(n *ir.Node) ([]int, error) {
	if n.Type != ir.ArrayType {
		return nil, badPayload("expected an array, got %s", n.Type)
	}
	res := make([]int, len(n.Values))
	for i, v := range n.Values {
		x, err := AsInt(v)
		if err != nil {
			return nil, fmt.Errorf("[%d]: %w", i, err)
		}
		res[i] = x
	}
	return res, nil
}

// FromFloatMatrix builds the array-of-arrays node for m.
func FromFloatMatrix(m [][]float64) *ir.Node {
	rows := make([]*ir.Node, len(m))
	for i, r := range m {
		rows[i] = ir.FromFloats(r)
	}
	return ir.FromSlice(rows)
}
