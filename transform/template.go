// Package transform binds the models of package model to tagged nodes.
//
// Each binding is a Template: the model specific part of the conversion is a
// Payload, and the template adds the fields common to all transforms:
//
//	inverse: a custom inverse, itself a tagged transform
//	name:    the display name of the model
//	domain:  opaque domain data, tagged with DomainTag
package transform

import (
	"fmt"
	"reflect"

	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/signadot/tony-format/go-xform/convert"
	"github.com/signadot/tony-format/go-xform/ir"
	"github.com/signadot/tony-format/go-xform/model"
	"github.com/signadot/tony-format/go-xform/tag"
)

const (
	Namespace = "tag:stsci.edu:asdf"
	Version   = "1.0.0"
)

// ID returns the identifier of the transform kind, e.g. ID("shift") is
// "tag:stsci.edu:asdf/transform/shift-1.0.0".
func ID(kind string) string {
	return tag.New(Namespace, "transform/"+kind, Version)
}

// Payload converts the model specific fields of a transform.
type Payload interface {
	DecodePayload(ctx *convert.Context, node *ir.Node) (model.Model, error)
	EncodePayload(ctx *convert.Context, m model.Model) (*ir.Node, error)
}

// PayloadAsserter is implemented by payloads that compare their models
// themselves. The template still compares the common fields.
type PayloadAsserter interface {
	AssertEqual(ctx *convert.Context, a, b model.Model) error
}

// Template is a convert.Binding for a transform kind.
type Template struct {
	ID      string
	GoTypes []reflect.Type
	Payload Payload
}

func (t *Template) Tag() string { return t.ID }

func (t *Template) Types() []reflect.Type { return t.GoTypes }

func (t *Template) payload() (Payload, error) {
	if t.Payload == nil {
		return nil, fmt.Errorf("%w: %s has no payload", convert.ErrUnimplemented, t.ID)
	}
	return t.Payload, nil
}

func (t *Template) Decode(ctx *convert.Context, node *ir.Node) (any, error) {
	p, err := t.payload()
	if err != nil {
		return nil, err
	}
	if node.Type != ir.ObjectType {
		return nil, fmt.Errorf("%w: expected a mapping, got %s", convert.ErrBadPayload, node.Type)
	}
	m, err := p.DecodePayload(ctx, node)
	if err != nil {
		return nil, err
	}
	if n := ir.Get(node, "inverse"); n != nil {
		v, err := ctx.DecodeField("inverse", n)
		if err != nil {
			return nil, err
		}
		if v != nil {
			inv, ok := v.(model.Model)
			if !ok {
				return nil, fmt.Errorf("%w: inverse decodes to %T, not a model", convert.ErrBadPayload, v)
			}
			m.SetCustomInverse(inv)
		}
	}
	if ir.Get(node, "name") != nil {
		name, err := convert.String(node, "name")
		if err != nil {
			return nil, err
		}
		m = m.Rename(name)
	}
	if n := ir.Get(node, "domain"); n != nil {
		v, err := ctx.DecodeTreeField("domain", n)
		if err != nil {
			return nil, err
		}
		m.Meta()["domain"] = v
	}
	return m, nil
}

func (t *Template) Encode(ctx *convert.Context, v any) (*ir.Node, error) {
	p, err := t.payload()
	if err != nil {
		return nil, err
	}
	m, ok := v.(model.Model)
	if !ok {
		return nil, fmt.Errorf("%w: %T is not a model", convert.ErrUnregisteredType, v)
	}
	node, err := p.EncodePayload(ctx, m)
	if err != nil {
		return nil, err
	}
	if inv := m.CustomInverse(); inv != nil {
		n, err := ctx.EncodeField("inverse", inv)
		if err != nil {
			return nil, err
		}
		node.Set("inverse", n)
	}
	if name := m.Name(); name != "" {
		node.Set("name", ir.FromString(name))
	}
	if dom, ok := m.MetaValue("domain"); ok {
		n, err := encodeDomain(ctx, dom)
		if err != nil {
			return nil, err
		}
		if n != nil {
			node.Set("domain", n)
		}
	}
	return node, nil
}

// AssertEqual compares the payloads, names, custom inverses and domains
// of two models.
func (t *Template) AssertEqual(ctx *convert.Context, a, b any) error {
	ma, okA := a.(model.Model)
	mb, okB := b.(model.Model)
	if !okA || !okB {
		return fmt.Errorf("%w: %T vs %T", convert.ErrNotEqual, a, b)
	}
	if pa, ok := t.Payload.(PayloadAsserter); ok {
		if err := pa.AssertEqual(ctx, ma, mb); err != nil {
			return err
		}
	} else if err := convert.DefaultEqual(a, b, cmpopts.IgnoreTypes(model.Base{})); err != nil {
		return err
	}
	if ma.Name() != mb.Name() {
		return fmt.Errorf("%w: name %q vs %q", convert.ErrNotEqual, ma.Name(), mb.Name())
	}
	ia, ib := ma.CustomInverse(), mb.CustomInverse()
	switch {
	case ia == nil && ib == nil:
	case ia == nil || ib == nil:
		return fmt.Errorf("%w: custom inverse %v vs %v", convert.ErrNotEqual, ia, ib)
	default:
		if err := ctx.AssertEqual(ia, ib); err != nil {
			return fmt.Errorf("inverse: %w", err)
		}
	}
	da, _ := ma.MetaValue("domain")
	db, _ := mb.MetaValue("domain")
	if err := convert.DefaultEqual(plainData(da), plainData(db)); err != nil {
		return fmt.Errorf("domain: %w", err)
	}
	return nil
}

// plainData normalizes v to the form it has after a round trip, so that
// e.g. int and int64 compare equal.
func plainData(v any) any {
	n, err := ir.FromAny(v)
	if err != nil {
		return v
	}
	if !ir.Truth(n) {
		return nil
	}
	return ir.ToAny(n)
}
