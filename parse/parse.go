package parse

import (
	"bytes"
	"fmt"

	"github.com/signadot/docbuild/format"
	"github.com/signadot/docbuild/ir"

	"github.com/goccy/go-yaml"
)

// Parse reads one document. YAML is the default and also accepts JSON;
// ParseJSON selects a strict JSON reader. Object keys keep their order in
// both cases, and numbers too large for int64 or float64 are kept as number
// text.
func Parse(d []byte, opts ...ParseOption) (*ir.Node, error) {
	o := &parseOpts{format: format.YAMLFormat}
	for _, opt := range opts {
		opt(o)
	}
	if o.format.IsJSON() {
		return parseJSON(d)
	}
	if len(bytes.TrimSpace(d)) == 0 {
		return nil, fmt.Errorf("%w: empty document", ErrParse)
	}
	return parseYAML(d)
}

// ToValue converts n for yaml.Marshal. Objects become yaml.MapSlice so that
// marshalling keeps their order.
func ToValue(n *ir.Node) any {
	switch n.Type {
	case ir.ObjectType:
		res := make(yaml.MapSlice, len(n.Fields))
		for i, f := range n.Fields {
			res[i] = yaml.MapItem{Key: f.String, Value: ToValue(n.Values[i])}
		}
		return res
	case ir.ArrayType:
		res := make([]any, len(n.Values))
		for i, v := range n.Values {
			res[i] = ToValue(v)
		}
		return res
	case ir.NumberType:
		if n.Int64 == nil && n.Float64 == nil {
			return number(n.Number)
		}
		return ir.ToAny(n)
	default:
		return ir.ToAny(n)
	}
}

// number is a numeric literal with no Go number type, such as an integer
// beyond 64 bits. It is written unquoted.
type number string

func (n number) MarshalYAML() ([]byte, error) {
	return []byte(n), nil
}
