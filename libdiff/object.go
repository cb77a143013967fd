package libdiff

import (
	"github.com/signadot/docbuild/ir"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

// diffObject diffs the sequences of field names, then recurses into the
// values of fields present on both sides.
func diffObject(from, to *ir.Node, res []Change) []Change {
	fieldMap := map[string]rune{}
	fromRunes := mapFields(fieldMap, from)
	toRunes := mapFields(fieldMap, to)
	diffs := diffpatch.New().DiffMainRunes(fromRunes, toRunes, false)
	fi, ti := 0, 0
	for i := range diffs {
		n := len([]rune(diffs[i].Text))
		switch diffs[i].Type {
		case diffpatch.DiffDelete:
			for range n {
				res = append(res, remove(from.Values[fi]))
				fi++
			}
		case diffpatch.DiffEqual:
			for range n {
				res = diff(from.Values[fi], to.Values[ti], res)
				fi++
				ti++
			}
		case diffpatch.DiffInsert:
			for range n {
				res = append(res, insert(to.Values[ti]))
				ti++
			}
		}
	}
	return res
}

func mapFields(m map[string]rune, node *ir.Node) []rune {
	rs := make([]rune, len(node.Fields))
	for i := range node.Fields {
		f := node.Fields[i].String
		r, ok := m[f]
		if !ok {
			r = rune(len(m))
			m[f] = r
		}
		rs[i] = r
	}
	return rs
}
