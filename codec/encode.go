package codec

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/signadot/tony-format/go-xform/ir"

	"gopkg.in/yaml.v3"
)

// Encode writes node to w.
func Encode(node *ir.Node, w io.Writer, opts ...EncodeOption) error {
	eo := &encodeOpts{indent: 2}
	for _, opt := range opts {
		opt(eo)
	}
	switch eo.format {
	case JSONFormat:
		enc := json.NewEncoder(w)
		enc.SetIndent("", strings.Repeat(" ", eo.indent))
		return enc.Encode(node)
	case YAMLFormat:
		ty := &toYAML{onPath: map[*ir.Node]bool{}}
		y, err := ty.node(node, "$")
		if err != nil {
			return err
		}
		enc := yaml.NewEncoder(w)
		enc.SetIndent(eo.indent)
		if err := enc.Encode(y); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("%w: %d", ErrBadFormat, eo.format)
	}
}

// Marshal is Encode into a byte slice.
func Marshal(node *ir.Node, opts ...EncodeOption) ([]byte, error) {
	buf := bytes.NewBuffer(nil)
	if err := Encode(node, buf, opts...); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// MustString encodes node as YAML, returning the error text on failure.
func MustString(node *ir.Node) string {
	d, err := Marshal(node)
	if err != nil {
		return "<" + err.Error() + ">"
	}
	return string(d)
}

type toYAML struct {
	onPath map[*ir.Node]bool
}

// node converts n found at path. The path is tracked here rather than
// taken from the parent links, which need not form a tree.
func (ty *toYAML) node(n *ir.Node, path string) (*yaml.Node, error) {
	if ty.onPath[n] {
		return nil, fmt.Errorf("cyclic node at %s", path)
	}
	ty.onPath[n] = true
	defer delete(ty.onPath, n)

	y := &yaml.Node{}
	switch n.Type {
	case ir.NullType:
		y.Kind = yaml.ScalarNode
		y.Tag = "!!null"
		y.Value = "null"
	case ir.BoolType:
		y.Kind = yaml.ScalarNode
		y.Tag = "!!bool"
		y.Value = strconv.FormatBool(n.Bool)
	case ir.NumberType:
		y.Kind = yaml.ScalarNode
		switch {
		case n.Int64 != nil:
			y.Tag = "!!int"
			y.Value = strconv.FormatInt(*n.Int64, 10)
		case n.Float64 != nil:
			y.Tag = "!!float"
			y.Value = formatFloat(*n.Float64)
		default:
			y.Value = n.Number
		}
	case ir.StringType:
		y.Kind = yaml.ScalarNode
		y.Tag = "!!str"
		y.Value = n.String
		if n.Tag != "" && !plainString(n.String) {
			y.Style = yaml.DoubleQuotedStyle
		}
	case ir.ArrayType:
		y.Kind = yaml.SequenceNode
		y.Tag = "!!seq"
		flow := len(n.Values) != 0
		for i, v := range n.Values {
			c, err := ty.node(v, ir.AppendIndex(path, i))
			if err != nil {
				return nil, err
			}
			if !v.Type.IsLeaf() || v.Tag != "" {
				flow = false
			}
			y.Content = append(y.Content, c)
		}
		if flow {
			y.Style = yaml.FlowStyle
		}
	case ir.ObjectType:
		y.Kind = yaml.MappingNode
		y.Tag = "!!map"
		for i, f := range n.Fields {
			c, err := ty.node(n.Values[i], ir.AppendField(path, f))
			if err != nil {
				return nil, err
			}
			k := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: f}
			y.Content = append(y.Content, k, c)
		}
	default:
		return nil, fmt.Errorf("%w: node type %s", ErrBadFormat, n.Type)
	}
	if n.Tag != "" {
		y.Tag = "!" + n.Tag
		y.Style |= yaml.TaggedStyle
	}
	return y, nil
}

// plainString reports whether s reads back as a string when written
// without quotes.
func plainString(s string) bool {
	probe := &yaml.Node{Kind: yaml.ScalarNode, Value: s}
	return probe.ShortTag() == "!!str"
}

func formatFloat(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return ".inf"
	case math.IsInf(f, -1):
		return "-.inf"
	case math.IsNaN(f):
		return ".nan"
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}
