package convert

import (
	"reflect"

	"github.com/signadot/tony-format/go-xform/ir"
)

// Binding converts one family of native types to and from nodes tagged with
// a single identifier.
type Binding interface {
	// Tag returns the identifier written on encoded nodes.
	Tag() string
	// Types returns the Go types the binding encodes. Interface types
	// declare a family: any type implementing them falls back to this
	// binding when no exact match is registered. A binding with no types
	// is reachable by tag only.
	Types() []reflect.Type
	// Decode builds the native object for a node carrying Tag(). Nested
	// tagged fields are decoded through the context.
	Decode(ctx *Context, node *ir.Node) (any, error)
	// Encode returns the untagged node for v; the dispatcher tags it.
	Encode(ctx *Context, v any) (*ir.Node, error)
}

// EqualAsserter is implemented by bindings that can tell whether two objects
// they produce are semantically equal. It is used to check round trips.
type EqualAsserter interface {
	AssertEqual(ctx *Context, a, b any) error
}
