package ir

import (
	"strconv"
	"strings"
)

// Path returns the JSONPath-style location of y within its root, such as
// $.a.b[0].
func (y *Node) Path() string {
	if y.Parent == nil {
		return "$"
	}
	switch y.Parent.Type {
	case ObjectType:
		return y.Parent.FieldPath(y.ParentField)
	case ArrayType:
		return y.Parent.IndexPath(y.ParentIndex)
	default:
		panic("parent but not in container")
	}
}

// FieldPath returns the path of the entry named f in the object y, whether
// or not it is present.
func (y *Node) FieldPath(f string) string {
	prefix := y.Path() + "."
	if f != "" && strings.IndexAny(f, "'.*$[] ") == -1 {
		return prefix + f
	}
	return prefix + "'" + strings.Replace(f, "'", "\\'", -1) + "'"
}

func (y *Node) IndexPath(i int) string {
	return y.Path() + "[" + strconv.Itoa(i) + "]"
}
