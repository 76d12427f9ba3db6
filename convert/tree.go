package convert

import (
	"fmt"
	"maps"
	"slices"

	"github.com/signadot/tony-format/go-xform/ir"
)

// DecodeTree converts a whole document. Tagged nodes are decoded through
// their bindings; untagged mappings become map[string]any, untagged
// sequences []any and untagged scalars plain Go values. Fields whose tagged
// value was skipped are left out.
func DecodeTree(ctx *Context, node *ir.Node) (any, error) {
	if node == nil {
		return nil, ctx.fail("decode", "", fmt.Errorf("%w: nil node", ErrBadPayload))
	}
	if node.Tag != "" {
		return DecodeAny(ctx, node)
	}
	if !node.Type.IsLeaf() {
		if ctx.depth >= ctx.maxDepth {
			return nil, ctx.fail("decode", "", fmt.Errorf("%w: limit %d", ErrGraphTooDeep, ctx.maxDepth))
		}
		ctx.depth++
		defer func() { ctx.depth-- }()
	}
	switch node.Type {
	case ir.ObjectType:
		res := make(map[string]any, len(node.Fields))
		for i, f := range node.Fields {
			child := node.Values[i]
			v, err := ctx.DecodeTreeField(f, child)
			if err != nil {
				return nil, err
			}
			if v == nil && child.Tag != "" {
				continue
			}
			res[f] = v
		}
		return res, nil
	case ir.ArrayType:
		res := make([]any, 0, len(node.Values))
		for i, child := range node.Values {
			v, err := decodeTreeElem(ctx, i, child)
			if err != nil {
				return nil, err
			}
			if v == nil && child.Tag != "" {
				continue
			}
			res = append(res, v)
		}
		return res, nil
	default:
		return ir.ToAny(node), nil
	}
}

func decodeTreeElem(ctx *Context, i int, n *ir.Node) (any, error) {
	defer ctx.push(indexSeg(i))()
	return DecodeTree(ctx, n)
}

// EncodeTree is the inverse of DecodeTree. Plain data is converted as is;
// any other value must have a registered binding.
func EncodeTree(ctx *Context, v any) (*ir.Node, error) {
	switch x := v.(type) {
	case map[string]any:
		res := ir.Object()
		for _, k := range slices.Sorted(maps.Keys(x)) {
			n, err := ctx.EncodeTreeField(k, x[k])
			if err != nil {
				return nil, err
			}
			res.Set(k, n)
		}
		return res, nil
	case []any:
		vs := make([]*ir.Node, len(x))
		for i, e := range x {
			n, err := encodeTreeElem(ctx, i, e)
			if err != nil {
				return nil, err
			}
			vs[i] = n
		}
		return ir.FromSlice(vs), nil
	}
	if n, err := ir.FromAny(v); err == nil {
		return n, nil
	}
	return EncodeAny(ctx, v)
}

func encodeTreeElem(ctx *Context, i int, v any) (*ir.Node, error) {
	defer ctx.push(indexSeg(i))()
	return EncodeTree(ctx, v)
}

// Walk calls f for every tagged node under root in document order, along
// with its path. Returning false from f skips the node's children. A node
// reached again below itself is not descended into.
func Walk(root *ir.Node, f func(n *ir.Node, path string) bool) {
	onPath := map[*ir.Node]bool{}
	var walk func(n *ir.Node, path string)
	walk = func(n *ir.Node, path string) {
		if onPath[n] {
			return
		}
		if n.Tag != "" && !f(n, path) {
			return
		}
		onPath[n] = true
		defer delete(onPath, n)
		for i, child := range n.Values {
			if n.Type == ir.ObjectType {
				walk(child, ir.AppendField(path, n.Fields[i]))
			} else {
				walk(child, ir.AppendIndex(path, i))
			}
		}
	}
	walk(root, "$")
}
