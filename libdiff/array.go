package libdiff

import (
	"strconv"
	"strings"

	"github.com/signadot/docbuild/ir"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

// diffArray aligns elements by summary:
//
//  1. containers summarize to <type>-<hash>, null to its type and other
//     scalars to <type>-<value>
//  2. the sequences of summaries are diffed
//  3. a delete directly followed by an insert pairs elements up, and paired
//     elements are compared in turn
func diffArray(from, to *ir.Node, res []Change) []Change {
	m := map[string]rune{}
	fromRunes := mapValues(m, from)
	toRunes := mapValues(m, to)
	diffs := diffpatch.New().DiffMainRunes(fromRunes, toRunes, false)

	fi, ti := 0, 0
	for i := range diffs {
		n := len([]rune(diffs[i].Text))
		switch diffs[i].Type {
		case diffpatch.DiffDelete:
			ins := 0
			if i+1 < len(diffs) && diffs[i+1].Type == diffpatch.DiffInsert {
				ins = len([]rune(diffs[i+1].Text))
			}
			for j := range n {
				if j < ins {
					res = diff(from.Values[fi], to.Values[ti], res)
					ti++
				} else {
					res = append(res, remove(from.Values[fi]))
				}
				fi++
			}
			if ins > n {
				for range ins - n {
					res = append(res, insert(to.Values[ti]))
					ti++
				}
			}
			if ins > 0 {
				// consumed with the delete
				diffs[i+1].Text = ""
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

func mapValues(m map[string]rune, node *ir.Node) []rune {
	rs := make([]rune, len(node.Values))
	for i, v := range node.Values {
		sum := summaryStr(v)
		r, ok := m[sum]
		if !ok {
			r = rune(len(m))
			m[sum] = r
		}
		rs[i] = r
	}
	return rs
}

func summaryStr(node *ir.Node) string {
	switch node.Type {
	case ir.BoolType:
		return node.Type.String() + "-" + strconv.FormatBool(node.Bool)
	case ir.StringType:
		if strings.Contains(node.String, "\n") {
			return node.Type.String() + "/m"
		}
		return node.Type.String() + "-" + node.String
	case ir.NumberType:
		switch {
		case node.Int64 != nil:
			return node.Type.String() + "-i-" + strconv.FormatInt(*node.Int64, 10)
		case node.Float64 != nil:
			return node.Type.String() + "-f-" + strconv.FormatFloat(*node.Float64, 'f', -1, 64)
		}
		return node.Type.String() + "-" + node.Number
	case ir.ObjectType, ir.ArrayType:
		return node.Type.String() + "-" + strconv.FormatUint(node.Hash(), 16)
	default:
		return node.Type.String()
	}
}
