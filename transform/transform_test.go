package transform_test

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/signadot/tony-format/go-xform/codec"
	"github.com/signadot/tony-format/go-xform/convert"
	"github.com/signadot/tony-format/go-xform/ir"
	"github.com/signadot/tony-format/go-xform/model"
	"github.com/signadot/tony-format/go-xform/transform"
	"github.com/signadot/tony-format/go-xform/xformtest"
)

func newRegistry(t *testing.T) *convert.Registry {
	t.Helper()
	reg, err := transform.NewRegistry()
	if err != nil {
		t.Fatal(err)
	}
	return reg
}

func TestSingleModels(t *testing.T) {
	mapping, err := model.NewMapping([]int{0, 1, 0}, 0)
	if err != nil {
		t.Fatal(err)
	}
	wideMapping, err := model.NewMapping([]int{1}, 3)
	if err != nil {
		t.Fatal(err)
	}
	p1, err := model.NewPolynomial1D(2, 1, 2, 3)
	if err != nil {
		t.Fatal(err)
	}
	p2, err := model.NewPolynomial2D(1)
	if err != nil {
		t.Fatal(err)
	}
	for _, c := range []struct {
		i, j int
		v    float64
	}{{0, 0, 1}, {0, 1, 2}, {1, 0, 3}} {
		if err := p2.Set(c.i, c.j, c.v); err != nil {
			t.Fatal(err)
		}
	}
	tests := []struct {
		name string
		m    model.Model
	}{
		{"identity", model.NewIdentity(2)},
		{"identity1", model.NewIdentity(1)},
		{"constant", model.NewConst1D(4.5)},
		{"polynomial1d", p1},
		{"polynomial2d", p2},
		{"shift", model.NewShift(2)},
		{"scale", model.NewScale(3.4)},
		{"rotation", model.NewRotation2D(0.1 + 0.2)},
		{"mapping", mapping},
		{"mapping n_inputs", wideMapping},
		{"generic", model.NewGenericModel(2, 3)},
		{"affine", model.NewAffineTransformation2D([2][2]float64{{2, 0}, {0, 2}}, [2]float64{42, 32})},
		{"azp", model.NewSky2PixAZP(0.5, 0.3)},
		{"tan", model.NewPix2SkyTAN()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			xformtest.AssertRoundTrip(t, newRegistry(t), map[string]any{"single_model": tt.m})
		})
	}
}

func TestCompound(t *testing.T) {
	// (shift(1) & shift(2)) | tan | rotation | (affine + rotation(32))
	m := model.Compose(
		model.Compose(
			model.Compose(
				model.Concatenate(model.NewShift(1), model.NewShift(2)),
				model.NewSky2PixTAN(),
			),
			model.NewRotation2D(0),
		),
		model.Add(
			model.NewAffineTransformation2D([2][2]float64{{2, 0}, {0, 2}}, [2]float64{42, 32}),
			model.NewRotation2D(32),
		),
	)
	back := xformtest.AssertRoundTrip(t, newRegistry(t), map[string]any{"compound": m})
	c, ok := back["compound"].(*model.Compound[model.ComposeOp])
	if !ok {
		t.Fatalf("compound decoded as %T", back["compound"])
	}
	if _, ok := c.Right.(*model.Compound[model.AddOp]); !ok {
		t.Errorf("right operand decoded as %T", c.Right)
	}
	if c.NInputs() != 2 || c.NOutputs() != 2 {
		t.Errorf("arity %d->%d", c.NInputs(), c.NOutputs())
	}
}

func TestEveryOperator(t *testing.T) {
	for _, op := range model.Operators() {
		t.Run(op.Name(), func(t *testing.T) {
			m, err := model.Combine(op, model.NewShift(1), model.NewScale(2))
			if err != nil {
				t.Fatal(err)
			}
			back := xformtest.AssertRoundTrip(t, newRegistry(t), map[string]any{"m": m})
			if got := back["m"].(model.Binary).Op(); got != op {
				t.Errorf("operator %s, want %s", got, op)
			}
		})
	}
}

func TestInverse(t *testing.T) {
	rotation := model.NewRotation2D(32)
	rotation.SetCustomInverse(model.NewRotation2D(45))
	tree := map[string]any{
		"rotation":      rotation,
		"real_rotation": model.NewRotation2D(32),
	}
	xformtest.AssertRoundTrip(t, newRegistry(t), tree, func(t testing.TB, back map[string]any) {
		inv, err := model.Inverse(back["rotation"].(model.Model))
		if err != nil {
			t.Fatal(err)
		}
		if got := inv.(*model.Rotation2D).Angle; got != 45 {
			t.Errorf("inverse angle = %v, want 45", got)
		}
		plain := back["real_rotation"].(model.Model)
		if model.HasCustomInverse(plain) {
			t.Error("real_rotation gained a custom inverse")
		}
		inv, err = model.Inverse(plain)
		if err != nil {
			t.Fatal(err)
		}
		if got := inv.(*model.Rotation2D).Angle; got != -32 {
			t.Errorf("structural inverse angle = %v, want -32", got)
		}
	})
}

func TestName(t *testing.T) {
	rot := model.Named(model.NewRotation2D(23), "foo")
	xformtest.AssertRoundTrip(t, newRegistry(t), map[string]any{"rot": rot}, func(t testing.TB, back map[string]any) {
		if got := back["rot"].(model.Model).Name(); got != "foo" {
			t.Errorf("name = %q, want foo", got)
		}
	})
}

func TestDomain(t *testing.T) {
	rot := model.NewRotation2D(23)
	rot.Meta()["domain"] = map[string]any{"lower": 0, "upper": 1, "includes_lower": true}
	reg := newRegistry(t)
	xformtest.AssertRoundTrip(t, reg, map[string]any{"rot": rot}, func(t testing.TB, back map[string]any) {
		got, _ := back["rot"].(model.Model).MetaValue("domain")
		want := map[string]any{"lower": int64(0), "upper": int64(1), "includes_lower": true}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("domain (-want +got):\n%s", diff)
		}
	})

	node, err := convert.EncodeAny(convert.NewContext(reg), rot)
	if err != nil {
		t.Fatal(err)
	}
	if tag := ir.Get(node, "domain").Tag; tag != transform.DomainTag {
		t.Errorf("domain tag = %q, want %q", tag, transform.DomainTag)
	}
}

func TestDocument(t *testing.T) {
	doc := `
rot: !tag:stsci.edu:asdf/transform/rotate2d-1.0.0
  angle: 32
  name: r
  inverse: !tag:stsci.edu:asdf/transform/rotate2d-1.0.0
    angle: 45.0
  domain: {lower: 0}
ident: !tag:stsci.edu:asdf/transform/identity-1.0.0 {n_dims: 3}
`
	node, err := codec.Parse([]byte(doc))
	if err != nil {
		t.Fatal(err)
	}
	v, err := convert.DecodeTree(convert.NewContext(newRegistry(t)), node)
	if err != nil {
		t.Fatal(err)
	}
	tree := v.(map[string]any)
	rot := tree["rot"].(*model.Rotation2D)
	if rot.Angle != 32 || rot.Name() != "r" {
		t.Errorf("rotation = %v %q", rot.Angle, rot.Name())
	}
	if inv := rot.CustomInverse().(*model.Rotation2D); inv.Angle != 45 {
		t.Errorf("inverse angle = %v", inv.Angle)
	}
	if dom, _ := rot.MetaValue("domain"); !cmp.Equal(dom, map[string]any{"lower": int64(0)}) {
		t.Errorf("domain = %v", dom)
	}
	if id := tree["ident"].(*model.Identity); id.NDims != 3 {
		t.Errorf("n_dims = %d", id.NDims)
	}
}

func TestIdentityEncoding(t *testing.T) {
	ctx := convert.NewContext(newRegistry(t))
	for _, tt := range []struct {
		m    *model.Identity
		want string
	}{
		{model.NewIdentity(3), "!tag:stsci.edu:asdf/transform/identity-1.0.0\nn_dims: 3\n"},
		{model.NewIdentity(1), "!tag:stsci.edu:asdf/transform/identity-1.0.0 {}\n"},
	} {
		node, err := convert.EncodeAny(ctx, tt.m)
		if err != nil {
			t.Fatal(err)
		}
		d, err := codec.Marshal(node)
		if err != nil {
			t.Fatal(err)
		}
		if string(d) != tt.want {
			t.Errorf("identity(%d) = %q, want %q", tt.m.NDims, d, tt.want)
		}
	}
}

func TestTagIdempotent(t *testing.T) {
	reg := newRegistry(t)
	ctx := convert.NewContext(reg)
	for _, id := range reg.Tags() {
		b, err := ctx.ResolveTag(id)
		if err != nil {
			t.Fatal(err)
		}
		if b.Tag() != id {
			t.Errorf("binding for %q reports %q", id, b.Tag())
		}
		if !strings.HasPrefix(id, transform.Namespace+"/transform/") || !strings.HasSuffix(id, "-"+transform.Version) {
			t.Errorf("tag %q outside the transform namespace", id)
		}
	}
	node, err := convert.EncodeAny(ctx, model.NewShift(1))
	if err != nil {
		t.Fatal(err)
	}
	once := node.Tag
	v, err := convert.DecodeAny(ctx, node)
	if err != nil {
		t.Fatal(err)
	}
	node, err = convert.EncodeAny(ctx, v)
	if err != nil {
		t.Fatal(err)
	}
	if node.Tag != once || once != transform.ID("shift") {
		t.Errorf("tags %q then %q", once, node.Tag)
	}
}

func TestErrors(t *testing.T) {
	reg := newRegistry(t)
	bad := []struct {
		name string
		doc  string
		want error
	}{
		{"unknown tag", "!tag:stsci.edu:asdf/transform/nope-1.0.0 {}", convert.ErrUnknownTag},
		{"missing offset", "!tag:stsci.edu:asdf/transform/shift-1.0.0 {}", convert.ErrBadPayload},
		{"inverse not a model", `!tag:stsci.edu:asdf/transform/shift-1.0.0
offset: 1
inverse: !tag:stsci.edu:asdf/transform/domain-1.0.0 {lower: 0}
`, convert.ErrBadPayload},
		{"bad arity", `!tag:stsci.edu:asdf/transform/compose-1.0.0
forward:
- !tag:stsci.edu:asdf/transform/shift-1.0.0 {offset: 1}
- !tag:stsci.edu:asdf/transform/rotate2d-1.0.0 {angle: 1}
`, convert.ErrBadPayload},
		{"nested unknown", `!tag:stsci.edu:asdf/transform/add-1.0.0
forward:
- !tag:stsci.edu:asdf/transform/shift-1.0.0 {offset: 1}
- !tag:stsci.edu:asdf/transform/nope-1.0.0 {}
`, convert.ErrUnknownTag},
		{"bad direction", "!tag:stsci.edu:asdf/transform/gnomonic-1.0.0 {direction: up}", convert.ErrBadPayload},
		{"not a mapping", "!tag:stsci.edu:asdf/transform/shift-1.0.0 [1]", convert.ErrBadPayload},
	}
	for _, tt := range bad {
		t.Run(tt.name, func(t *testing.T) {
			node, err := codec.Parse([]byte(tt.doc))
			if err != nil {
				t.Fatal(err)
			}
			_, err = convert.DecodeAny(convert.NewContext(reg), node)
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}

	var e *convert.Error
	node, _ := codec.Parse([]byte(bad[4].doc))
	_, err := convert.DecodeAny(convert.NewContext(reg), node)
	if !errors.As(err, &e) || e.Path != "$.forward[1]" {
		t.Errorf("err = %v, want path $.forward[1]", err)
	}

	type unregistered struct{ model.Identity }
	if _, err := convert.EncodeAny(convert.NewContext(reg), &unregistered{}); !errors.Is(err, convert.ErrUnregisteredType) {
		t.Errorf("err = %v", err)
	}
}

func TestEncodeNilModels(t *testing.T) {
	reg := newRegistry(t)
	if _, err := convert.EncodeAny(convert.NewContext(reg), (*model.Shift)(nil)); !errors.Is(err, convert.ErrBadPayload) {
		t.Errorf("nil shift: err = %v, want ErrBadPayload", err)
	}
	m := model.NewRotation2D(32)
	m.SetCustomInverse((*model.Rotation2D)(nil))
	_, err := convert.EncodeAny(convert.NewContext(reg), m)
	var e *convert.Error
	if !errors.As(err, &e) || e.Path != "$.inverse" || !errors.Is(err, convert.ErrBadPayload) {
		t.Errorf("nil inverse: err = %v, want bad payload at $.inverse", err)
	}
}

func TestSelfReferentialCompound(t *testing.T) {
	node, err := codec.Parse([]byte("&a !" + transform.ID("compose") + " {forward: [*a, *a]}"))
	if err != nil {
		t.Fatal(err)
	}
	_, err = convert.DecodeAny(convert.NewContext(newRegistry(t)), node)
	if !errors.Is(err, convert.ErrCycle) {
		t.Fatalf("err = %v, want ErrCycle", err)
	}
	var e *convert.Error
	if !errors.As(err, &e) || e.Path != "$.forward[0]" {
		t.Errorf("err = %v, want path $.forward[0]", err)
	}
	if _, err := codec.Marshal(node); err == nil {
		t.Error("marshaling a cyclic document succeeded")
	}
}

func TestSkipUnknown(t *testing.T) {
	doc := `
known: !tag:stsci.edu:asdf/transform/shift-1.0.0 {offset: 1}
future: !tag:stsci.edu:asdf/transform/spline-2.0.0 {knots: [1, 2]}
`
	node, err := codec.Parse([]byte(doc))
	if err != nil {
		t.Fatal(err)
	}
	ctx := convert.NewContext(newRegistry(t), convert.SkipUnknownTags(true))
	v, err := convert.DecodeTree(ctx, node)
	if err != nil {
		t.Fatal(err)
	}
	tree := v.(map[string]any)
	if _, ok := tree["future"]; ok {
		t.Error("unknown node kept")
	}
	if _, ok := tree["known"].(*model.Shift); !ok {
		t.Errorf("known = %T", tree["known"])
	}
	if s := ctx.Skipped(); len(s) != 1 || s[0].Path != "$.future" {
		t.Errorf("skipped = %v", s)
	}
}

func TestUnimplemented(t *testing.T) {
	type spline struct{ model.GenericModel }
	reg, err := convert.NewRegistry(
		&transform.Template{ID: transform.ID("spline"), GoTypes: []reflect.Type{reflect.TypeOf(&spline{})}, Payload: transform.Unimplemented{}},
		&transform.Template{ID: transform.ID("nothing")},
	)
	if err != nil {
		t.Fatal(err)
	}
	ctx := convert.NewContext(reg)
	if _, err := convert.EncodeAny(ctx, &spline{}); !errors.Is(err, convert.ErrUnimplemented) {
		t.Errorf("encode err = %v", err)
	}
	for _, id := range []string{transform.ID("spline"), transform.ID("nothing")} {
		if _, err := convert.DecodeAny(ctx, ir.Tag(id, ir.Object())); !errors.Is(err, convert.ErrUnimplemented) {
			t.Errorf("decode %s err = %v", id, err)
		}
	}
}

func TestAssertEqualDetectsDifferences(t *testing.T) {
	ctx := convert.NewContext(newRegistry(t))
	withInv := model.NewShift(1)
	withInv.SetCustomInverse(model.NewShift(-2))
	pairs := []struct {
		name string
		a, b model.Model
	}{
		{"parameter", model.NewShift(1), model.NewShift(1.5)},
		{"name", model.NewShift(1), model.Named(model.NewShift(1), "s")},
		{"inverse", model.NewShift(1), withInv},
		{"operand", model.Add(model.NewShift(1), model.NewShift(2)), model.Add(model.NewShift(1), model.NewShift(3))},
		{"operand name", model.Add(model.NewShift(1), model.NewShift(2)), model.Add(model.NewShift(1), model.Named(model.NewShift(2), "x"))},
	}
	for _, p := range pairs {
		if err := ctx.AssertEqual(p.a, p.b); !errors.Is(err, convert.ErrNotEqual) {
			t.Errorf("%s: err = %v", p.name, err)
		}
	}
	if err := ctx.AssertEqual(model.NewShift(0.1+0.2), model.NewShift(0.3)); err != nil {
		t.Errorf("close floats: %v", err)
	}
}
