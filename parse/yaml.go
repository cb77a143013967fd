package parse

import (
	"fmt"
	"math"
	"regexp"

	"github.com/signadot/docbuild/ir"

	"github.com/goccy/go-yaml/ast"
	"github.com/goccy/go-yaml/parser"
	"github.com/goccy/go-yaml/token"
)

// numberRE matches plain scalars that read as numbers even when they do not
// fit an int64, uint64 or float64.
var numberRE = regexp.MustCompile(`^[-+]?(\.[0-9]+|[0-9]+(\.[0-9]*)?)([eE][-+]?[0-9]+)?$`)

// parseYAML walks the syntax tree rather than decoding into Go values so
// that mapping order is kept and plain numeric scalars too large for Go
// numbers stay numbers.
func parseYAML(d []byte) (*ir.Node, error) {
	f, err := parser.ParseBytes(d, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	var body ast.Node
	for _, doc := range f.Docs {
		if doc == nil || doc.Body == nil {
			continue
		}
		if _, ok := doc.Body.(*ast.CommentGroupNode); ok {
			continue
		}
		if body != nil {
			return nil, fmt.Errorf("%w: more than one document", ErrParse)
		}
		body = doc.Body
	}
	if body == nil {
		return nil, fmt.Errorf("%w: empty document", ErrParse)
	}
	c := &yamlConv{anchors: map[string]*ir.Node{}}
	res, err := c.node(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	return res, nil
}

type yamlConv struct {
	anchors map[string]*ir.Node
}

// bigScalar keeps a numeric scalar that Go number types cannot hold as
// number text.
func bigScalar(s string) *ir.Node {
	if !numberRE.MatchString(s) {
		return ir.FromString(s)
	}
	return &ir.Node{Type: ir.NumberType, Number: s}
}

func (c *yamlConv) node(n ast.Node) (*ir.Node, error) {
	switch x := n.(type) {
	case nil:
		return ir.Null(), nil
	case *ast.NullNode:
		return ir.Null(), nil
	case *ast.BoolNode:
		return ir.FromBool(x.Value), nil
	case *ast.IntegerNode:
		if x.Value != nil {
			if res, err := ir.FromAny(x.Value); err == nil {
				return res, nil
			}
		}
		return bigScalar(x.GetToken().Value), nil
	case *ast.FloatNode:
		if token.ToNumber(x.GetToken().Value) == nil {
			return bigScalar(x.GetToken().Value), nil
		}
		return ir.FromFloat(x.Value), nil
	case *ast.InfinityNode:
		return ir.FromFloat(x.Value), nil
	case *ast.NanNode:
		return ir.FromFloat(math.NaN()), nil
	case *ast.StringNode:
		if tk := x.GetToken(); tk != nil && tk.Type == token.StringType && numberRE.MatchString(x.Value) {
			return bigScalar(x.Value), nil
		}
		return ir.FromString(x.Value), nil
	case *ast.LiteralNode:
		if x.Value == nil {
			return ir.FromString(""), nil
		}
		return ir.FromString(x.Value.Value), nil
	case *ast.TagNode:
		return c.tagged(x)
	case *ast.AnchorNode:
		res, err := c.node(x.Value)
		if err != nil {
			return nil, err
		}
		c.anchors[x.Name.GetToken().Value] = res
		return res, nil
	case *ast.AliasNode:
		name := x.Value.GetToken().Value
		res, ok := c.anchors[name]
		if !ok {
			return nil, fmt.Errorf("unknown alias *%s", name)
		}
		return res.Clone(), nil
	case *ast.SequenceEntryNode:
		return c.node(x.Value)
	case *ast.MappingNode:
		res := ir.Object()
		for _, mv := range x.Values {
			if err := c.entry(res, mv); err != nil {
				return nil, err
			}
		}
		return res, nil
	case *ast.MappingValueNode:
		res := ir.Object()
		if err := c.entry(res, x); err != nil {
			return nil, err
		}
		return res, nil
	case *ast.SequenceNode:
		res := ir.Array()
		for i, v := range x.Values {
			e, err := c.node(v)
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			res.Append(e)
		}
		return res, nil
	}
	return nil, fmt.Errorf("unsupported %s", n.Type())
}

func (c *yamlConv) entry(obj *ir.Node, mv *ast.MappingValueNode) error {
	if mv.Key.IsMergeKey() {
		return fmt.Errorf("merge keys are not supported")
	}
	var kn ast.Node = mv.Key
	if mk, ok := kn.(*ast.MappingKeyNode); ok {
		kn = mk.Value
	}
	k, err := c.node(kn)
	if err != nil {
		return err
	}
	key := k.String
	if k.Type != ir.StringType {
		key = kn.GetToken().Value
	}
	v, err := c.node(mv.Value)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	obj.AddField(key, v)
	return nil
}

// tagged honours the core schema tags that change how a scalar reads.
func (c *yamlConv) tagged(x *ast.TagNode) (*ir.Node, error) {
	res, err := c.node(x.Value)
	if err != nil {
		return nil, err
	}
	switch x.Start.Value {
	case "!!str":
		if x.Value != nil && res.Type.IsLeaf() && res.Type != ir.StringType {
			return ir.FromString(x.Value.GetToken().Value), nil
		}
	case "!!float":
		if f, err := res.AsFloat(); err == nil {
			return ir.FromFloat(f), nil
		}
	}
	return res, nil
}
