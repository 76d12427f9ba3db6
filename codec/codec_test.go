package codec

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/signadot/tony-format/go-xform/ir"
)

func TestParseScalars(t *testing.T) {
	tests := []struct {
		in   string
		want *ir.Node
	}{
		{"null", ir.Null()},
		{"~", ir.Null()},
		{"true", ir.FromBool(true)},
		{"3", ir.FromInt(3)},
		{"0x10", ir.FromInt(16)},
		{"2.0", ir.FromFloat(2)},
		{"1e+21", ir.FromFloat(1e21)},
		{"-.inf", ir.FromFloat(math.Inf(-1))},
		{"hello", ir.FromString("hello")},
		{`"3"`, ir.FromString("3")},
		{"!!str 3", ir.FromString("3")},
		{"!!float 3", ir.FromFloat(3)},
		{"!custom 3", ir.FromInt(3).WithTag("custom")},
		{`!custom "3"`, ir.FromString("3").WithTag("custom")},
		{"!<tag:example.org:x/t-1.0> 1", ir.FromInt(1).WithTag("tag:example.org:x/t-1.0")},
		{"18446744073709551615", &ir.Node{Type: ir.NumberType, Number: "18446744073709551615"}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Parse([]byte(tt.in))
			if err != nil {
				t.Fatal(err)
			}
			if !ir.Equal(tt.want, got) {
				t.Errorf("Parse(%q) = %s, want %s", tt.in, MustString(got), MustString(tt.want))
			}
		})
	}
}

func TestRoundTrip(t *testing.T) {
	node := ir.FromMap(map[string]*ir.Node{
		"rot": ir.Tag("tag:stsci.edu:asdf/transform/rotate2d-1.0.0", ir.FromMap(map[string]*ir.Node{
			"angle": ir.FromFloat(32),
			"name":  ir.FromString("true"),
			"inverse": ir.Tag("tag:stsci.edu:asdf/transform/rotate2d-1.0.0", ir.FromMap(map[string]*ir.Node{
				"angle": ir.FromFloat(0.1 + 0.2),
			})),
		})),
		"coefficients": ir.FromFloats([]float64{1, 2.5, -0.0, 1e-300}),
		"empty":        ir.Object(),
		"none":         ir.FromSlice(nil),
		"nested":       ir.FromSlice([]*ir.Node{ir.FromFloats([]float64{1, 0}), ir.FromFloats([]float64{0, 1})}),
		"str":          ir.Tag("note", ir.FromString("12")),
		"multi":        ir.FromString("a\nb\n"),
	})
	for _, f := range []Format{YAMLFormat, JSONFormat} {
		t.Run(f.String(), func(t *testing.T) {
			d, err := Marshal(node, EncodeFormat(f))
			if err != nil {
				t.Fatal(err)
			}
			got, err := Parse(d, WithFormat(f))
			if err != nil {
				t.Fatalf("%v\n%s", err, d)
			}
			if !ir.Equal(node, got) {
				t.Errorf("round trip mismatch:\n%s", d)
			}
		})
	}
}

func TestYAMLTags(t *testing.T) {
	node := ir.Tag("transform/identity", ir.FromMap(map[string]*ir.Node{
		"n_dims": ir.FromInt(3),
	}))
	d, err := Marshal(node)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := string(d), "!transform/identity\nn_dims: 3\n"; got != want {
		t.Errorf("Marshal() = %q, want %q", got, want)
	}
	d, err = Marshal(ir.FromMap(map[string]*ir.Node{"c": ir.FromFloats([]float64{1, 2})}))
	if err != nil {
		t.Fatal(err)
	}
	if got, want := string(d), "c: [1.0, 2.0]\n"; got != want {
		t.Errorf("Marshal() = %q, want %q", got, want)
	}
}

func TestAliases(t *testing.T) {
	doc := `
a: &shared !transform/shift {offset: 1.0}
b: *shared
`
	n, err := Parse([]byte(doc))
	if err != nil {
		t.Fatal(err)
	}
	if ir.Get(n, "a") != ir.Get(n, "b") {
		t.Error("alias does not resolve to the anchored node")
	}
	if ir.Get(n, "a").Tag != "transform/shift" {
		t.Errorf("tag = %q", ir.Get(n, "a").Tag)
	}
	if got := ir.Get(n, "b").Path(); got != "$.a" {
		t.Errorf("shared node path = %q, want $.a", got)
	}
}

func TestSelfAlias(t *testing.T) {
	tests := []struct {
		name string
		in   string
		at   string
	}{
		{"root sequence", "&a [1, *a]", "$[1]"},
		{"tagged mapping", "&a !t {forward: [*a, *a]}", "$.forward[0]"},
		{"nested", "x: &a {y: *a}", "$.x.y"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := Parse([]byte(tt.in))
			if err != nil {
				t.Fatal(err)
			}
			if n.Parent != nil {
				t.Errorf("root has parent at %s", n.Parent.Path())
			}
			if got := n.Path(); got != "$" {
				t.Errorf("root path = %q", got)
			}
			_, err = Marshal(n)
			if err == nil {
				t.Fatal("expected error for cyclic document")
			}
			if !strings.Contains(err.Error(), tt.at) {
				t.Errorf("err = %v, want location %s", err, tt.at)
			}
		})
	}
}

func TestParseAll(t *testing.T) {
	docs, err := ParseAll(strings.NewReader("a: 1\n---\n!t b\n"))
	if err != nil {
		t.Fatal(err)
	}
	if len(docs) != 2 || docs[1].Tag != "t" {
		t.Fatalf("docs = %d, second tag %q", len(docs), docs[len(docs)-1].Tag)
	}
}

func TestParseErrors(t *testing.T) {
	for _, in := range []string{"a: [", "a: 1\na: 2\n", "base: &b {x: 1}\nc:\n  <<: *b\n", "[1]: 2"} {
		if _, err := Parse([]byte(in)); !errors.Is(err, ErrParse) {
			t.Errorf("Parse(%q) err = %v, want ErrParse", in, err)
		}
	}
	if _, err := ParseFormat("tony"); !errors.Is(err, ErrBadFormat) {
		t.Errorf("ParseFormat err = %v", err)
	}
}

func TestFormatOf(t *testing.T) {
	for path, want := range map[string]Format{
		"a.json":      JSONFormat,
		"dir/b.YAML":  YAMLFormat,
		"c.yml":       YAMLFormat,
		"d":           YAMLFormat,
		"-":           YAMLFormat,
		"e.json.orig": YAMLFormat,
	} {
		if got := FormatOf(path); got != want {
			t.Errorf("FormatOf(%q) = %s, want %s", path, got, want)
		}
	}
}

func TestEncodeCycle(t *testing.T) {
	n := ir.Object()
	n.Set("self", n)
	if _, err := Marshal(n); err == nil {
		t.Error("expected error for cyclic node")
	}
}
