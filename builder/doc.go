// Package builder assembles ir documents through a sequence of fluent calls
// and rejects any sequence that would produce a malformed document.
//
// # Usage
//
//	b := builder.New()
//	b.StartDict().
//		Key("a").Value(ir.FromInt(1)).
//		Key("b").StartArray().
//		Value(ir.FromInt(2)).
//		Value(ir.FromInt(3)).
//		EndArray().
//		EndDict()
//	doc, err := b.Build() // {"a": 1, "b": [2, 3]}
//
// # Handles
//
// StartDict, StartArray and Key return handles that only offer the calls
// valid in the state they represent:
//
//   - DictContext, right after StartDict: Key, EndDict
//   - KeyContext, after Key: Value, StartDict, StartArray
//   - ValueContext, after an entry's value: Key, EndDict
//   - ArrayContext, inside an array: Value, StartDict, StartArray, EndArray
//
// Closing a container returns the *Builder itself, since the kind of the
// enclosing container is not known to the type system. A chain that only
// goes through handles cannot, for example, close an object while a key is
// pending.
//
// The *Builder is the root handle and is not restricted: New().Key("a")
// compiles and fails at run time with KeyMisplaced. Only StartDict,
// StartArray, Value and Build are valid on an empty builder.
//
// # Errors
//
// The *Builder offers every operation and checks each call at run time.
// The first invalid call records a *SequenceError; it is reported by Err
// right away and by Build. Later calls do nothing. Use errors.Is with
// ErrSequence or with a reason sentinel such as ErrDanglingKey to inspect it.
//
// # Duplicate keys
//
// When a key is repeated within one object the first entry wins: the new
// value is discarded without error and the key is consumed. A container
// discarded this way is not opened, so the calls that follow apply to the
// enclosing object.
//
// A Builder is not safe for concurrent use.
package builder
