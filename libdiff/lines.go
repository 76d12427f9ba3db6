// Package libdiff renders differences between serialized documents.
package libdiff

import (
	"strings"

	"github.com/signadot/tony-format/go-xform/codec"
	"github.com/signadot/tony-format/go-xform/ir"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

// Op is the kind of a line in a diff.
type Op int

const (
	Equal Op = iota
	Delete
	Insert
)

func (o Op) Prefix() string {
	switch o {
	case Delete:
		return "-"
	case Insert:
		return "+"
	default:
		return " "
	}
}

// Line is one line of a line diff, without its newline.
type Line struct {
	Op   Op
	Text string
}

// DiffLines compares from and to line by line.
func DiffLines(from, to string) []Line {
	dmp := diffpatch.New()
	a, b, lines := dmp.DiffLinesToChars(from, to)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)
	var res []Line
	for _, d := range diffs {
		op := Equal
		switch d.Type {
		case diffpatch.DiffDelete:
			op = Delete
		case diffpatch.DiffInsert:
			op = Insert
		}
		for _, l := range splitLines(d.Text) {
			res = append(res, Line{Op: op, Text: l})
		}
	}
	return res
}

func splitLines(s string) []string {
	s = strings.TrimSuffix(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

// Changed reports whether a diff has any non-equal line.
func Changed(lines []Line) bool {
	for _, l := range lines {
		if l.Op != Equal {
			return true
		}
	}
	return false
}

// Lines returns the line diff of from and to with "-", "+" and " "
// prefixes, or "" when they are equal.
func Lines(from, to string) string {
	ls := DiffLines(from, to)
	if !Changed(ls) {
		return ""
	}
	b := &strings.Builder{}
	for _, l := range ls {
		b.WriteString(l.Op.Prefix())
		b.WriteString(l.Text)
		b.WriteByte('\n')
	}
	return b.String()
}

// Nodes serializes from and to as YAML and returns their line diff.
func Nodes(from, to *ir.Node) (string, error) {
	a, err := codec.Marshal(from)
	if err != nil {
		return "", err
	}
	b, err := codec.Marshal(to)
	if err != nil {
		return "", err
	}
	return Lines(string(a), string(b)), nil
}
