package libdiff

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/signadot/tony-format/go-xform/ir"
)

func TestDiffLines(t *testing.T) {
	got := DiffLines("a\nb\nc\n", "a\nx\nc\n")
	want := []Line{
		{Equal, "a"},
		{Delete, "b"},
		{Insert, "x"},
		{Equal, "c"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("DiffLines (-want +got):\n%s", diff)
	}
}

func TestLines(t *testing.T) {
	if got := Lines("same\n", "same\n"); got != "" {
		t.Errorf("Lines of equal text = %q", got)
	}
	if got, want := Lines("a\nb\n", "a\n"), " a\n-b\n"; got != want {
		t.Errorf("Lines() = %q, want %q", got, want)
	}
}

func TestNodes(t *testing.T) {
	from := ir.FromMap(map[string]*ir.Node{"angle": ir.FromFloat(32), "name": ir.FromString("rot")})
	to := ir.FromMap(map[string]*ir.Node{"angle": ir.FromFloat(45), "name": ir.FromString("rot")})
	got, err := Nodes(from, to)
	if err != nil {
		t.Fatal(err)
	}
	if want := "-angle: 32.0\n+angle: 45.0\n name: rot\n"; got != want {
		t.Errorf("Nodes() = %q, want %q", got, want)
	}
}
