package ir

import (
	"maps"
	"slices"
	"strconv"
	"strings"
)

type Node struct {
	Type        Type
	Parent      *Node
	ParentIndex int
	ParentField string
	Fields      []string
	Values      []*Node

	Tag string

	String  string
	Bool    bool
	Number  string
	Float64 *float64
	Int64   *int64
}

func (y *Node) WithTag(tag string) *Node {
	y.Tag = tag
	return y
}

// IsTagged reports whether y carries a type identifier.
func (y *Node) IsTagged() bool {
	return y != nil && y.Tag != ""
}

func (y *Node) Clone() *Node {
	res := &Node{}
	return y.CloneTo(res)
}

func (y *Node) CloneTo(dst *Node) *Node {
	dst.Parent = y.Parent
	dst.ParentIndex = y.ParentIndex
	dst.ParentField = y.ParentField
	dst.Type = y.Type
	dst.Tag = y.Tag
	dst.Fields = slices.Clone(y.Fields)
	dst.Values = make([]*Node, len(y.Values))
	for i, yv := range y.Values {
		dstI := yv.CloneTo(&Node{})
		dstI.Parent = dst
		dstI.ParentIndex = i
		dst.Values[i] = dstI
	}
	dst.String = y.String
	dst.Number = y.Number
	if y.Float64 != nil {
		f := *y.Float64
		dst.Float64 = &f
	}
	if y.Int64 != nil {
		i := *y.Int64
		dst.Int64 = &i
	}
	dst.Bool = y.Bool
	return dst
}

func FromString(v string) *Node {
	return &Node{
		Type:   StringType,
		String: v,
	}
}

func FromInt(v int64) *Node {
	return &Node{
		Type:  NumberType,
		Int64: &v,
	}
}

func FromFloat(f float64) *Node {
	return &Node{
		Type:    NumberType,
		Float64: &f,
	}
}

func FromBool(v bool) *Node {
	return &Node{
		Type: BoolType,
		Bool: v,
	}
}

func Null() *Node {
	return &Node{Type: NullType}
}

func FromFloats(fs []float64) *Node {
	vs := make([]*Node, len(fs))
	for i, f := range fs {
		vs[i] = FromFloat(f)
	}
	return FromSlice(vs)
}

func FromInts(is []int) *Node {
	vs := make([]*Node, len(is))
	for i, v := range is {
		vs[i] = FromInt(int64(v))
	}
	return FromSlice(vs)
}

func ToMap(node *Node) map[string]*Node {
	if node.Type != ObjectType {
		return nil
	}
	res := make(map[string]*Node, len(node.Fields))
	for i, field := range node.Fields {
		res[field] = node.Values[i]
	}
	return res
}

// FromMap builds an object whose fields are sorted by key.
func FromMap(yMap map[string]*Node) *Node {
	res := &Node{Type: ObjectType}
	for _, key := range slices.Sorted(maps.Keys(yMap)) {
		res.Set(key, yMap[key])
	}
	return res
}

type KeyVal struct {
	Key string
	Val *Node
}

// FromKeyVals builds an object preserving the order of kvs.
func FromKeyVals(kvs []KeyVal) *Node {
	res := &Node{Type: ObjectType}
	for _, kv := range kvs {
		res.Set(kv.Key, kv.Val)
	}
	return res
}

// Object returns an empty object node.
func Object() *Node {
	return &Node{Type: ObjectType}
}

func FromSlice(ySlice []*Node) *Node {
	res := &Node{
		Type: ArrayType,
	}
	res.Values = make([]*Node, len(ySlice))
	for i, y := range ySlice {
		res.Values[i] = y
		y.Parent = res
		y.ParentIndex = i
		y.ParentField = ""
	}
	return res
}

func Get(y *Node, field string) *Node {
	if y == nil || y.Type != ObjectType {
		return nil
	}
	for i, f := range y.Fields {
		if f == field {
			return y.Values[i]
		}
	}
	return nil
}

// Set adds or replaces field in the object y and returns y.
func (y *Node) Set(field string, v *Node) *Node {
	v.Parent = y
	v.ParentField = field
	for i, f := range y.Fields {
		if f == field {
			v.ParentIndex = i
			y.Values[i] = v
			return y
		}
	}
	v.ParentIndex = len(y.Values)
	y.Fields = append(y.Fields, field)
	y.Values = append(y.Values, v)
	return y
}

// Delete removes field from the object y, reporting whether it was present.
func (y *Node) Delete(field string) bool {
	i := slices.Index(y.Fields, field)
	if i == -1 {
		return false
	}
	y.Fields = slices.Delete(y.Fields, i, i+1)
	y.Values = slices.Delete(y.Values, i, i+1)
	for j := i; j < len(y.Values); j++ {
		y.Values[j].ParentIndex = j
	}
	return true
}

func (y *Node) Visit(f func(y *Node, isPost bool) (bool, error)) error {
	dive, err := f(y, false)
	if err != nil {
		return err
	}
	if dive {
		for _, yy := range y.Values {
			if err := yy.Visit(f); err != nil {
				return err
			}
		}
	}
	if _, err := f(y, true); err != nil {
		return err
	}
	return nil
}

// ancestors returns y followed by its parents up to the root. A parent
// chain that loops back on itself stops before the repeat.
func (y *Node) ancestors() []*Node {
	var res []*Node
	seen := map[*Node]bool{}
	for n := y; n != nil && !seen[n]; n = n.Parent {
		seen[n] = true
		res = append(res, n)
	}
	return res
}

func (y *Node) Root() *Node {
	up := y.ancestors()
	return up[len(up)-1]
}

// Path returns a JSONPath-style location of y relative to its root,
// e.g. "$.compound.forward[0]".
func (y *Node) Path() string {
	up := y.ancestors()
	p := "$"
	for i := len(up) - 2; i >= 0; i-- {
		n := up[i]
		switch n.Parent.Type {
		case ObjectType:
			p = AppendField(p, n.ParentField)
		case ArrayType:
			p = AppendIndex(p, n.ParentIndex)
		default:
			panic("parent but not in container")
		}
	}
	return p
}

// AppendField extends path with an object field, quoting it when needed.
func AppendField(path, f string) string {
	if f != "" && strings.IndexAny(f, "'.*$[] ") == -1 {
		return path + "." + f
	}
	return path + ".'" + strings.ReplaceAll(f, "'", "\\'") + "'"
}

func AppendIndex(path string, i int) string {
	return path + "[" + strconv.Itoa(i) + "]"
}

func Truth(node *Node) bool {
	switch node.Type {
	case ObjectType:
		return len(node.Fields) != 0
	case ArrayType:
		return len(node.Values) != 0
	case StringType:
		return node.String != ""
	case NumberType:
		if node.Int64 != nil {
			return *node.Int64 != 0
		}
		if node.Float64 != nil {
			return *node.Float64 != 0.0
		}
		return node.Number != ""
	case BoolType:
		return node.Bool
	case NullType:
		return false
	default:
		panic("type")
	}
}
