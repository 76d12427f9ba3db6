package ir

import "fmt"

// Type is the kind of value a Node holds.
type Type int

const (
	NullType Type = iota
	NumberType
	StringType
	BoolType
	ObjectType
	ArrayType
)

var typeNames = [...]string{
	NullType:   "Null",
	NumberType: "Number",
	StringType: "String",
	BoolType:   "Bool",
	ObjectType: "Object",
	ArrayType:  "Array",
}

func (t Type) String() string {
	if t < 0 || int(t) >= len(typeNames) {
		return fmt.Sprintf("Type(%d)", int(t))
	}
	return typeNames[t]
}

func (t Type) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *Type) UnmarshalText(d []byte) error {
	for i, name := range typeNames {
		if name == string(d) {
			*t = Type(i)
			return nil
		}
	}
	return fmt.Errorf("unrecognized type %q", d)
}

// IsLeaf reports whether values of type t have no children.
func (t Type) IsLeaf() bool {
	return t != ObjectType && t != ArrayType
}
