package main

import (
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/signadot/tony-format/go-xform/codec"
	"github.com/signadot/tony-format/go-xform/transform"
)

func TestColorTags(t *testing.T) {
	saved := color.NoColor
	color.NoColor = false
	defer func() { color.NoColor = saved }()

	known := func(id string) bool { return id == "a" }
	in := "x: !a {}\ny:\n  - !b 1\nz: not!tagged\n"
	got := string(colorTags([]byte(in), known))
	if !strings.Contains(got, knownTagColor("!%s", "a")) {
		t.Errorf("known tag not colored: %q", got)
	}
	if !strings.Contains(got, unknownTagColor("!%s", "b")) {
		t.Errorf("unknown tag not colored: %q", got)
	}
	if !strings.Contains(got, "z: not!tagged\n") {
		t.Errorf("plain text changed: %q", got)
	}
}

func TestNodeEnv(t *testing.T) {
	reg, err := transform.NewRegistry()
	if err != nil {
		t.Fatal(err)
	}
	doc, err := codec.Parse([]byte("a: !" + transform.ID("shift") + "\n  offset: 1\n  name: s\nb: !other/thing {}\n"))
	if err != nil {
		t.Fatal(err)
	}
	env := nodeEnv(reg, doc.Values[0])
	if env.Kind != "transform/shift" || env.Version != "1.0.0" || env.Name != "s" || !env.Known {
		t.Errorf("env = %+v", env)
	}
	env = nodeEnv(reg, doc.Values[1])
	if env.Known || env.Name != "" {
		t.Errorf("env = %+v", env)
	}
}
