package libdiff

import (
	"fmt"

	"github.com/signadot/docbuild/encode"
	"github.com/signadot/docbuild/format"
	"github.com/signadot/docbuild/ir"
)

type Kind int

const (
	Insert Kind = iota
	Delete
	Replace
)

func (k Kind) String() string {
	switch k {
	case Insert:
		return "insert"
	case Delete:
		return "delete"
	case Replace:
		return "replace"
	}
	return fmt.Sprintf("<kind %d>", int(k))
}

// Change is one difference between two documents. From is nil for inserts
// and To is nil for deletes. Path locates the change in the document it
// comes from: the old one for deletes, the new one otherwise.
type Change struct {
	Kind Kind
	Path string
	From *ir.Node
	To   *ir.Node
}

func (c Change) String() string {
	switch c.Kind {
	case Insert:
		return fmt.Sprintf("%s %s: %s", c.Kind, c.Path, wire(c.To))
	case Delete:
		return fmt.Sprintf("%s %s: %s", c.Kind, c.Path, wire(c.From))
	default:
		return fmt.Sprintf("%s %s: %s -> %s", c.Kind, c.Path, wire(c.From), wire(c.To))
	}
}

func wire(n *ir.Node) string {
	return encode.MustString(n, encode.EncodeFormat(format.JSONFormat), encode.EncodeWire(true))
}

// Diff returns the changes turning from into to, in document order. Object
// entries are matched by key and array elements are aligned on a summary of
// each element, so an insertion in the middle of an array is reported as one
// insert.
func Diff(from, to *ir.Node) []Change {
	return diff(from, to, nil)
}

func diff(from, to *ir.Node, res []Change) []Change {
	if from.Type != to.Type {
		return append(res, replace(from, to))
	}
	switch from.Type {
	case ir.ObjectType:
		return diffObject(from, to, res)
	case ir.ArrayType:
		return diffArray(from, to, res)
	default:
		if ir.Equal(from, to) {
			return res
		}
		return append(res, replace(from, to))
	}
}

func insert(to *ir.Node) Change {
	return Change{Kind: Insert, Path: to.Path(), To: to}
}

func remove(from *ir.Node) Change {
	return Change{Kind: Delete, Path: from.Path(), From: from}
}

func replace(from, to *ir.Node) Change {
	return Change{Kind: Replace, Path: to.Path(), From: from, To: to}
}
