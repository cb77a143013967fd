package ir

import (
	"fmt"
	"math"
	"strconv"
)

// number matches encoding/json.Number and compatible decoder number types.
type number interface {
	Int64() (int64, error)
	Float64() (float64, error)
	String() string
}

// FromAny converts a Go value as produced by JSON or YAML decoders into a
// node. Maps produce objects with sorted keys; use []KeyVal to keep an order.
func FromAny(v any) (*Node, error) {
	switch x := v.(type) {
	case nil:
		return Null(), nil
	case *Node:
		return x.Clone(), nil
	case []*Node:
		res := Array()
		for _, c := range x {
			res.Append(c.Clone())
		}
		return res, nil
	case map[string]*Node:
		m := make(map[string]*Node, len(x))
		for k, c := range x {
			m[k] = c.Clone()
		}
		return FromMap(m), nil
	case []KeyVal:
		res := Object()
		for _, kv := range x {
			res.AddField(kv.Key, kv.Val.Clone())
		}
		return res, nil
	case bool:
		return FromBool(x), nil
	case string:
		return FromString(x), nil
	case int:
		return FromInt(int64(x)), nil
	case int8:
		return FromInt(int64(x)), nil
	case int16:
		return FromInt(int64(x)), nil
	case int32:
		return FromInt(int64(x)), nil
	case int64:
		return FromInt(x), nil
	case uint:
		return fromUint(uint64(x)), nil
	case uint8:
		return FromInt(int64(x)), nil
	case uint16:
		return FromInt(int64(x)), nil
	case uint32:
		return FromInt(int64(x)), nil
	case uint64:
		return fromUint(x), nil
	case float32:
		return FromFloat(float64(x)), nil
	case float64:
		return FromFloat(x), nil
	case number:
		if i, err := x.Int64(); err == nil {
			return FromInt(i), nil
		}
		if f, err := x.Float64(); err == nil {
			return FromFloat(f), nil
		}
		return &Node{Type: NumberType, Number: x.String()}, nil
	case []any:
		res := Array()
		for i, e := range x {
			c, err := FromAny(e)
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			res.Append(c)
		}
		return res, nil
	case map[string]any:
		m := make(map[string]*Node, len(x))
		for k, e := range x {
			c, err := FromAny(e)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", k, err)
			}
			m[k] = c
		}
		return FromMap(m), nil
	case map[any]any:
		m := make(map[string]*Node, len(x))
		for k, e := range x {
			ks, ok := k.(string)
			if !ok {
				ks = fmt.Sprint(k)
			}
			c, err := FromAny(e)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", ks, err)
			}
			m[ks] = c
		}
		return FromMap(m), nil
	}
	return nil, fmt.Errorf("%w: %T", ErrConvert, v)
}

func fromUint(u uint64) *Node {
	if u > math.MaxInt64 {
		return &Node{Type: NumberType, Number: strconv.FormatUint(u, 10)}
	}
	return FromInt(int64(u))
}

// ToAny converts a node to plain Go values: map[string]any, []any, string,
// int64, float64, bool and nil. Numbers with only a textual form are
// returned as strings.
func ToAny(node *Node) any {
	switch node.Type {
	case ObjectType:
		res := make(map[string]any, len(node.Fields))
		for i, field := range node.Fields {
			if _, present := res[field.String]; present {
				continue
			}
			res[field.String] = ToAny(node.Values[i])
		}
		return res
	case ArrayType:
		res := make([]any, len(node.Values))
		for i, elt := range node.Values {
			res[i] = ToAny(elt)
		}
		return res
	case StringType:
		return node.String
	case NumberType:
		if node.Int64 != nil {
			return *node.Int64
		}
		if node.Float64 != nil {
			return *node.Float64
		}
		return node.Number
	case BoolType:
		return node.Bool
	default:
		return nil
	}
}
