// Package ir provides the document node model used by docbuild.
//
// # Overview
//
// A document is a tree of *Node values. Each Node is a tagged union whose
// Type selects which fields carry its value:
//
//   - NullType: no payload
//   - BoolType: Bool
//   - NumberType: Int64 for integers, Float64 for floating point numbers,
//     Number as a textual fallback when neither can represent the value
//   - StringType: String
//   - ArrayType: Values, in order
//   - ObjectType: Fields and Values, where Fields[i] is a String node naming
//     the key of Values[i]
//
// Objects keep insertion order. Nodes placed in a container carry Parent,
// ParentIndex and ParentField links back to it, so Path can report where a
// node lives:
//
//	node.Path() // e.g. "$.b[1]"
//
// # Creating Nodes
//
//	ir.FromString("hello")
//	ir.FromInt(42)
//	ir.FromKeyVals([]ir.KeyVal{{Key: "a", Val: ir.FromInt(1)}})
//	ir.FromSlice([]*ir.Node{ir.FromInt(1), ir.FromInt(2)})
//
// FromAny and ToAny bridge to plain Go values; ToJSON and FromJSON to JSON
// text.
//
// # Comparison and Hashing
//
// Compare defines a total order over nodes and Equal reports structural
// equality. Hash is consistent with Equal within a process.
//
// # Thread Safety
//
// Nodes are not safe for concurrent mutation. Clone a node to hand it to
// another goroutine.
package ir
