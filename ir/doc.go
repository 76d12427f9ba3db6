// Package ir provides the tree representation exchanged between the
// document codec and the conversion core.
//
// # Node Structure
//
// A Node represents a single value in a document. Nodes can be:
//
//   - Atomic types: null, boolean, number, string
//   - Composite types: object (ordered key-value pairs), array (ordered list)
//
// Any node may carry a Tag. A node with a non-empty Tag is a tagged node;
// the tag is the type identifier the conversion core dispatches on. Tags are
// stored without the YAML "!" prefix: the codec adds and strips it.
//
// # Objects
//
// For ObjectType nodes, Fields[i] is the key for the value at Values[i], so
// there will always be the same number of fields as values. Keys are unique.
//
// # Numbers
//
// Number values are placed under:
//   - Int64: if it is an integer (64-bit signed)
//   - Float64: if it is a floating point number (64-bit IEEE float)
//   - Number: as a string fallback if neither Int64 nor Float64 can represent it
//
// A node built with FromFloat stays a float through the codec even when its
// value is integral, so float parameters survive a round trip unchanged.
//
// # Creating Nodes
//
//	num := ir.FromInt(42)
//	obj := ir.FromMap(map[string]*ir.Node{
//	    "offset": ir.FromFloat(2.5),
//	})
//	tagged := ir.Tag("transform/shift-1.0.0", obj)
//
// # Thread Safety
//
// Node structures are not thread-safe. Clone nodes shared across goroutines.
package ir
