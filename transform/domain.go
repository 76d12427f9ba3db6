package transform

import (
	"reflect"

	"github.com/signadot/tony-format/go-xform/convert"
	"github.com/signadot/tony-format/go-xform/ir"
)

// DomainTag marks the domain data of a transform.
var DomainTag = ID("domain")

// domainBinding passes domain data through as plain Go values. It claims
// no Go type: domains are only reached through the domain field of a
// transform.
type domainBinding struct{}

func (domainBinding) Tag() string { return DomainTag }

func (domainBinding) Types() []reflect.Type { return nil }

func (domainBinding) Decode(ctx *convert.Context, node *ir.Node) (any, error) {
	_, plain := ir.Untag(node)
	return ir.ToAny(plain), nil
}

func (domainBinding) Encode(ctx *convert.Context, v any) (*ir.Node, error) {
	return convert.EncodeTree(ctx, v)
}

// encodeDomain returns the tagged domain node, or nil when dom is empty.
func encodeDomain(ctx *convert.Context, dom any) (*ir.Node, error) {
	if dom == nil {
		return nil, nil
	}
	b, err := ctx.ResolveTag(DomainTag)
	if err != nil {
		return nil, err
	}
	n, err := b.Encode(ctx, dom)
	if err != nil {
		return nil, err
	}
	if !ir.Truth(n) {
		return nil, nil
	}
	return ir.Tag(DomainTag, n), nil
}
