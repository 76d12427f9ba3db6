package ir

import (
	"errors"
	"fmt"
	"maps"
	"math"
	"slices"
	"strconv"
)

var ErrNotPlain = errors.New("not a plain value")

// ToAny converts y into plain Go data: nil, bool, int64, float64, string,
// []any or map[string]any. Tags are dropped.
func ToAny(y *Node) any {
	switch y.Type {
	case NullType:
		return nil
	case BoolType:
		return y.Bool
	case StringType:
		return y.String
	case NumberType:
		if y.Int64 != nil {
			return *y.Int64
		}
		if y.Float64 != nil {
			return *y.Float64
		}
		if f, err := strconv.ParseFloat(y.Number, 64); err == nil {
			return f
		}
		return y.Number
	case ArrayType:
		res := make([]any, len(y.Values))
		for i, v := range y.Values {
			res[i] = ToAny(v)
		}
		return res
	case ObjectType:
		res := make(map[string]any, len(y.Fields))
		for i, f := range y.Fields {
			res[f] = ToAny(y.Values[i])
		}
		return res
	default:
		panic("type")
	}
}

// FromAny converts plain Go data into a node. Maps are emitted with sorted
// keys. A *Node is returned as is.
func FromAny(v any) (*Node, error) {
	switch x := v.(type) {
	case nil:
		return Null(), nil
	case *Node:
		return x, nil
	case bool:
		return FromBool(x), nil
	case string:
		return FromString(x), nil
	case int:
		return FromInt(int64(x)), nil
	case int8:
		return FromInt(int64(x)), nil
	case int16:
		return FromInt(int64(x)), nil
	case int32:
		return FromInt(int64(x)), nil
	case int64:
		return FromInt(x), nil
	case uint8:
		return FromInt(int64(x)), nil
	case uint16:
		return FromInt(int64(x)), nil
	case uint32:
		return FromInt(int64(x)), nil
	case uint:
		return fromUint(uint64(x)), nil
	case uint64:
		return fromUint(x), nil
	case float32:
		return FromFloat(float64(x)), nil
	case float64:
		return FromFloat(x), nil
	case []float64:
		return FromFloats(x), nil
	case []int:
		return FromInts(x), nil
	case []string:
		vs := make([]*Node, len(x))
		for i, s := range x {
			vs[i] = FromString(s)
		}
		return FromSlice(vs), nil
	case []any:
		vs := make([]*Node, len(x))
		for i, e := range x {
			n, err := FromAny(e)
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			vs[i] = n
		}
		return FromSlice(vs), nil
	case map[string]any:
		res := Object()
		for _, k := range slices.Sorted(maps.Keys(x)) {
			n, err := FromAny(x[k])
			if err != nil {
				return nil, fmt.Errorf("%s: %w", k, err)
			}
			res.Set(k, n)
		}
		return res, nil
	case map[string]string:
		res := Object()
		for _, k := range slices.Sorted(maps.Keys(x)) {
			res.Set(k, FromString(x[k]))
		}
		return res, nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrNotPlain, v)
	}
}

func fromUint(u uint64) *Node {
	if u <= math.MaxInt64 {
		return FromInt(int64(u))
	}
	return &Node{Type: NumberType, Number: strconv.FormatUint(u, 10)}
}
