package convert

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/signadot/tony-format/go-xform/debug"
	"github.com/signadot/tony-format/go-xform/ir"
)

// DecodeAny reconstructs the native object for the tagged node. The binding
// is chosen by the node's tag. In skip mode a node with an unregistered tag
// yields a nil object and a nil error.
func DecodeAny(ctx *Context, node *ir.Node) (any, error) {
	if node == nil || node.Tag == "" {
		return nil, ctx.fail("decode", "", ErrNotTagged)
	}
	if v, ok := ctx.cache[node]; ok {
		return v, nil
	}
	if ctx.active[node] {
		return nil, ctx.fail("decode", node.Tag, ErrCycle)
	}
	if ctx.depth >= ctx.maxDepth {
		return nil, ctx.fail("decode", node.Tag, fmt.Errorf("%w: limit %d", ErrGraphTooDeep, ctx.maxDepth))
	}
	b, err := ctx.reg.ResolveTag(node.Tag)
	if err != nil {
		if ctx.skipUnknown && errors.Is(err, ErrUnknownTag) {
			ctx.log.Warn("skipping unknown tag", "tag", node.Tag, "path", ctx.Path())
			ctx.skipped = append(ctx.skipped, Skipped{Tag: node.Tag, Path: ctx.Path()})
			return nil, nil
		}
		return nil, ctx.fail("decode", node.Tag, err)
	}
	if debug.Decode() {
		debug.Logf("decode %s at %s\n%v", node.Tag, ctx.Path(), node)
	}
	ctx.log.Debug("decode", "tag", node.Tag, "path", ctx.Path())

	ctx.active[node] = true
	ctx.depth++
	v, err := b.Decode(ctx, node)
	ctx.depth--
	delete(ctx.active, node)
	if err != nil {
		return nil, ctx.fail("decode", node.Tag, err)
	}
	ctx.cache[node] = v
	return v, nil
}

// EncodeAny produces the tagged node for v. The binding is chosen by the
// dynamic type of v.
func EncodeAny(ctx *Context, v any) (*ir.Node, error) {
	if v == nil {
		return nil, ctx.fail("encode", "", fmt.Errorf("%w: nil", ErrUnregisteredType))
	}
	rv := reflect.ValueOf(v)
	b, err := ctx.reg.ResolveType(rv.Type())
	if err != nil {
		return nil, ctx.fail("encode", "", err)
	}
	id := b.Tag()
	if rv.Kind() == reflect.Pointer && rv.IsNil() {
		return nil, ctx.fail("encode", id, fmt.Errorf("%w: nil %s", ErrBadPayload, rv.Type()))
	}
	if ctx.depth >= ctx.maxDepth {
		return nil, ctx.fail("encode", id, fmt.Errorf("%w: limit %d", ErrGraphTooDeep, ctx.maxDepth))
	}
	ctx.log.Debug("encode", "tag", id, "path", ctx.Path())

	ctx.depth++
	node, err := b.Encode(ctx, v)
	ctx.depth--
	if err != nil {
		return nil, ctx.fail("encode", id, err)
	}
	if node == nil {
		return nil, ctx.fail("encode", id, fmt.Errorf("%w: binding returned no node", ErrBadPayload))
	}
	node.Tag = id
	if debug.Encode() {
		debug.Logf("encode %s at %s\n%v", id, ctx.Path(), node)
	}
	return node, nil
}

// fail wraps err in an *Error at the current path unless it already is
// one, so that the innermost location is reported.
func (c *Context) fail(op, id string, err error) error {
	var e *Error
	if errors.As(err, &e) {
		return err
	}
	return &Error{Op: op, Tag: id, Path: c.Path(), Err: err}
}
