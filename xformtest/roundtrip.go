// Package xformtest checks that trees of native objects survive being
// written to a document and read back.
package xformtest

import (
	"bytes"
	"maps"
	"slices"
	"testing"

	"github.com/signadot/tony-format/go-xform/codec"
	"github.com/signadot/tony-format/go-xform/convert"
	"github.com/signadot/tony-format/go-xform/ir"
	"github.com/signadot/tony-format/go-xform/libdiff"
)

// Check inspects the tree read back by AssertRoundTrip.
type Check func(t testing.TB, tree map[string]any)

// AssertRoundTrip encodes tree with the bindings of reg, serializes it as
// YAML, parses and decodes the result and asserts that every top level
// value equals the original one. It then encodes the decoded tree again and
// asserts the serialization is unchanged, and that the JSON form of the
// encoded document reads back identically. The decoded tree is passed to
// checks and returned.
func AssertRoundTrip(t testing.TB, reg *convert.Registry, tree map[string]any, checks ...Check) map[string]any {
	t.Helper()
	node, err := convert.EncodeTree(convert.NewContext(reg), tree)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	d, err := codec.Marshal(node)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	parsed, err := codec.Parse(d)
	if err != nil {
		t.Fatalf("parse: %v\n%s", err, d)
	}
	ctx := convert.NewContext(reg)
	v, err := convert.DecodeTree(ctx, parsed)
	if err != nil {
		t.Fatalf("decode: %v\n%s", err, d)
	}
	back, ok := v.(map[string]any)
	if !ok {
		t.Fatalf("decoded tree is %T, not a mapping", v)
	}
	if got, want := slices.Sorted(maps.Keys(back)), slices.Sorted(maps.Keys(tree)); !slices.Equal(got, want) {
		t.Fatalf("decoded keys %v, want %v", got, want)
	}
	for _, k := range slices.Sorted(maps.Keys(tree)) {
		if err := ctx.AssertEqual(tree[k], back[k]); err != nil {
			t.Errorf("%s: %v", k, err)
		}
	}

	again, err := convert.EncodeTree(convert.NewContext(reg), back)
	if err != nil {
		t.Fatalf("encode decoded tree: %v", err)
	}
	d2, err := codec.Marshal(again)
	if err != nil {
		t.Fatalf("marshal decoded tree: %v", err)
	}
	if !bytes.Equal(d, d2) {
		t.Errorf("serialization changed on round trip:\n%s", libdiff.Lines(string(d), string(d2)))
	}

	j, err := codec.Marshal(node, codec.EncodeFormat(codec.JSONFormat))
	if err != nil {
		t.Fatalf("marshal json: %v", err)
	}
	fromJSON, err := codec.Parse(j, codec.ParseJSON())
	if err != nil {
		t.Fatalf("parse json: %v", err)
	}
	if !ir.Equal(parsed, fromJSON) {
		diff, _ := libdiff.Nodes(parsed, fromJSON)
		t.Errorf("json form differs:\n%s", diff)
	}

	for _, check := range checks {
		check(t, back)
	}
	return back
}
