// Package codec reads and writes documents as ir trees.
//
// YAML is handled by gopkg.in/yaml.v3. Type identifiers are written as local
// tags (the identifier prefixed with "!"); core "!!" tags are resolved into
// node types and never surface as ir tags. Anchors and aliases are supported:
// an alias parses to the very node its anchor parsed to.
package codec

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/signadot/tony-format/go-xform/ir"

	"gopkg.in/yaml.v3"
)

// Parse reads the first document in d.
func Parse(d []byte, opts ...ParseOption) (*ir.Node, error) {
	po := &parseOpts{}
	for _, opt := range opts {
		opt(po)
	}
	switch po.format {
	case JSONFormat:
		node := &ir.Node{}
		if err := json.Unmarshal(d, node); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrParse, err)
		}
		return node, nil
	case YAMLFormat:
		doc := &yaml.Node{}
		if err := yaml.Unmarshal(d, doc); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrParse, err)
		}
		return newFromYAML().node(doc)
	default:
		return nil, fmt.Errorf("%w: %d", ErrBadFormat, po.format)
	}
}

// ParseAll reads every document of a YAML stream.
func ParseAll(r io.Reader) ([]*ir.Node, error) {
	dec := yaml.NewDecoder(r)
	var res []*ir.Node
	for i := 0; ; i++ {
		doc := &yaml.Node{}
		err := dec.Decode(doc)
		if errors.Is(err, io.EOF) {
			return res, nil
		}
		if err != nil {
			return nil, fmt.Errorf("%w: document %d: %w", ErrParse, i, err)
		}
		node, err := newFromYAML().node(doc)
		if err != nil {
			return nil, fmt.Errorf("document %d: %w", i, err)
		}
		res = append(res, node)
	}
}

type fromYAML struct {
	memo map[*yaml.Node]*ir.Node
	// nodes attached to a parent, and nodes still being built
	placed   map[*ir.Node]bool
	building map[*ir.Node]bool
}

func newFromYAML() *fromYAML {
	return &fromYAML{
		memo:     map[*yaml.Node]*ir.Node{},
		placed:   map[*ir.Node]bool{},
		building: map[*ir.Node]bool{},
	}
}

// adopt records child as the i'th value of parent. An aliased node keeps
// the parent it was first attached to, and a node is never made the child
// of its own descendant, so the parent links always form a tree.
func (fy *fromYAML) adopt(parent, child *ir.Node, field string, i int) {
	if fy.placed[child] || fy.building[child] {
		return
	}
	fy.placed[child] = true
	child.Parent = parent
	child.ParentField = field
	child.ParentIndex = i
}

func (fy *fromYAML) node(y *yaml.Node) (*ir.Node, error) {
	switch y.Kind {
	case 0:
		return ir.Null(), nil
	case yaml.DocumentNode:
		if len(y.Content) == 0 {
			return ir.Null(), nil
		}
		return fy.node(y.Content[0])
	case yaml.AliasNode:
		if y.Alias == nil {
			return nil, fmt.Errorf("%w: unresolved alias %q at line %d", ErrParse, y.Value, y.Line)
		}
		return fy.node(y.Alias)
	}
	if res, ok := fy.memo[y]; ok {
		return res, nil
	}
	res := &ir.Node{Tag: tagOf(y)}
	fy.memo[y] = res
	fy.building[res] = true
	defer delete(fy.building, res)

	switch y.Kind {
	case yaml.MappingNode:
		res.Type = ir.ObjectType
		for i := 0; i+1 < len(y.Content); i += 2 {
			k := y.Content[i]
			if k.Kind == yaml.AliasNode && k.Alias != nil {
				k = k.Alias
			}
			if k.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("%w: non-scalar key at line %d", ErrParse, k.Line)
			}
			if k.Value == "<<" && k.Tag == "!!merge" {
				return nil, fmt.Errorf("%w: merge keys are not supported (line %d)", ErrParse, k.Line)
			}
			if ir.Get(res, k.Value) != nil {
				return nil, fmt.Errorf("%w: duplicate key %q at line %d", ErrParse, k.Value, k.Line)
			}
			v, err := fy.node(y.Content[i+1])
			if err != nil {
				return nil, err
			}
			res.Fields = append(res.Fields, k.Value)
			res.Values = append(res.Values, v)
			fy.adopt(res, v, k.Value, len(res.Values)-1)
		}
	case yaml.SequenceNode:
		res.Type = ir.ArrayType
		res.Values = make([]*ir.Node, 0, len(y.Content))
		for i, c := range y.Content {
			v, err := fy.node(c)
			if err != nil {
				return nil, err
			}
			res.Values = append(res.Values, v)
			fy.adopt(res, v, "", i)
		}
	case yaml.ScalarNode:
		if err := scalar(res, y); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: unexpected node kind %d", ErrParse, y.Kind)
	}
	return res, nil
}

// tagOf returns the type identifier carried by y, if any.
func tagOf(y *yaml.Node) string {
	t := y.Tag
	if t == "" || t == "!" || strings.HasPrefix(t, "!!") {
		return ""
	}
	return strings.TrimPrefix(t, "!")
}

func scalar(res *ir.Node, y *yaml.Node) error {
	plain := *y
	if res.Tag != "" {
		// resolve the value as if it were untagged
		plain.Tag = ""
		plain.Style &^= yaml.TaggedStyle
	}
	switch plain.ShortTag() {
	case "!!null":
		res.Type = ir.NullType
	case "!!bool":
		var b bool
		if err := plain.Decode(&b); err != nil {
			return fmt.Errorf("%w: line %d: %w", ErrParse, y.Line, err)
		}
		res.Type = ir.BoolType
		res.Bool = b
	case "!!int":
		res.Type = ir.NumberType
		var i int64
		if err := plain.Decode(&i); err != nil {
			// out of int64 range
			res.Number = y.Value
			return nil
		}
		res.Int64 = &i
	case "!!float":
		var f float64
		if err := plain.Decode(&f); err != nil {
			return fmt.Errorf("%w: line %d: %w", ErrParse, y.Line, err)
		}
		res.Type = ir.NumberType
		res.Float64 = &f
	default:
		res.Type = ir.StringType
		res.String = y.Value
	}
	return nil
}
