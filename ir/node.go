package ir

import (
	"fmt"
	"maps"
	"slices"
)

type Node struct {
	Type        Type
	Parent      *Node
	ParentIndex int
	ParentField string
	Fields      []*Node
	Values      []*Node

	String  string
	Bool    bool
	Number  string
	Float64 *float64
	Int64   *int64
}

func (y *Node) Clone() *Node {
	res := &Node{}
	return y.CloneTo(res)
}

// CloneTo deep copies y into dst and returns dst. Children of dst point back
// at dst; dst keeps the parent links of y.
func (y *Node) CloneTo(dst *Node) *Node {
	dst.Parent = y.Parent
	dst.ParentIndex = y.ParentIndex
	dst.ParentField = y.ParentField
	dst.Type = y.Type
	dst.Values = nil
	dst.Fields = nil
	if y.Values != nil {
		dst.Values = make([]*Node, len(y.Values))
	}
	if y.Fields != nil {
		dst.Fields = make([]*Node, len(y.Fields))
	}
	for i, yv := range y.Values {
		dstI := yv.CloneTo(&Node{})
		dstI.Parent = dst
		dstI.ParentIndex = i
		dst.Values[i] = dstI
	}
	for i, yf := range y.Fields {
		dstI := yf.CloneTo(&Node{})
		dstI.Parent = dst
		dstI.ParentIndex = i
		dstI.ParentField = yf.String
		dst.Fields[i] = dstI
	}

	dst.String = y.String
	dst.Number = y.Number
	dst.Float64 = nil
	dst.Int64 = nil
	if y.Float64 != nil {
		f := *y.Float64
		dst.Float64 = &f
	}
	if y.Int64 != nil {
		i := *y.Int64
		dst.Int64 = &i
	}
	dst.Bool = y.Bool
	return dst
}

func Null() *Node {
	return &Node{Type: NullType}
}

func FromString(v string) *Node {
	return &Node{
		Type:   StringType,
		String: v,
	}
}

func FromInt(v int64) *Node {
	return &Node{
		Type:  NumberType,
		Int64: &v,
	}
}

func FromFloat(f float64) *Node {
	return &Node{
		Type:    NumberType,
		Float64: &f,
	}
}

func FromBool(v bool) *Node {
	return &Node{
		Type: BoolType,
		Bool: v,
	}
}

// Object returns an empty object node.
func Object() *Node {
	return &Node{Type: ObjectType, Fields: []*Node{}, Values: []*Node{}}
}

// Array returns an empty array node.
func Array() *Node {
	return &Node{Type: ArrayType, Values: []*Node{}}
}

func FromSlice(ySlice []*Node) *Node {
	res := Array()
	for _, y := range ySlice {
		res.Append(y)
	}
	return res
}

type KeyVal struct {
	Key string
	Val *Node
}

// FromKeyVals builds an object keeping the order of kvs. Repeated keys are
// kept as given.
func FromKeyVals(kvs []KeyVal) *Node {
	res := Object()
	for _, kv := range kvs {
		res.AddField(kv.Key, kv.Val)
	}
	return res
}

// FromMap builds an object with the keys of yMap in sorted order.
func FromMap(yMap map[string]*Node) *Node {
	res := Object()
	for _, key := range slices.Sorted(maps.Keys(yMap)) {
		res.AddField(key, yMap[key])
	}
	return res
}

func (y *Node) IsObject() bool { return y != nil && y.Type == ObjectType }
func (y *Node) IsArray() bool  { return y != nil && y.Type == ArrayType }
func (y *Node) IsNull() bool   { return y == nil || y.Type == NullType }

// IsContainer reports whether y is an object or an array.
func (y *Node) IsContainer() bool { return y.IsObject() || y.IsArray() }

// Append adds child as the last element of the array y and returns the index
// at which it was placed.
func (y *Node) Append(child *Node) int {
	i := len(y.Values)
	child.Parent = y
	child.ParentIndex = i
	child.ParentField = ""
	y.Values = append(y.Values, child)
	return i
}

// AddField appends key: val to the object y without checking for an existing
// key and returns the index of the new entry.
func (y *Node) AddField(key string, val *Node) int {
	i := len(y.Values)
	field := FromString(key)
	field.Parent = y
	field.ParentIndex = i
	field.ParentField = key
	val.Parent = y
	val.ParentIndex = i
	val.ParentField = key
	y.Fields = append(y.Fields, field)
	y.Values = append(y.Values, val)
	return i
}

// Len returns the number of entries in an object or array, and 0 otherwise.
func (y *Node) Len() int {
	if y.Type.IsLeaf() {
		return 0
	}
	return len(y.Values)
}

func Get(y *Node, field string) *Node {
	for i := range y.Fields {
		if y.Fields[i].String == field {
			return y.Values[i]
		}
	}
	return nil
}

func (y *Node) AsInt() (int64, error) {
	if y.Type != NumberType || y.Int64 == nil {
		return 0, fmt.Errorf("%w: %s is not an integer", ErrType, y.Type)
	}
	return *y.Int64, nil
}

// AsFloat returns the numeric value of y, converting integers.
func (y *Node) AsFloat() (float64, error) {
	if y.Type != NumberType {
		return 0, fmt.Errorf("%w: %s is not a number", ErrType, y.Type)
	}
	switch {
	case y.Float64 != nil:
		return *y.Float64, nil
	case y.Int64 != nil:
		return float64(*y.Int64), nil
	}
	return 0, fmt.Errorf("%w: number %q has no float value", ErrType, y.Number)
}

func (y *Node) AsString() (string, error) {
	if y.Type != StringType {
		return "", fmt.Errorf("%w: %s is not a string", ErrType, y.Type)
	}
	return y.String, nil
}

func (y *Node) AsBool() (bool, error) {
	if y.Type != BoolType {
		return false, fmt.Errorf("%w: %s is not a bool", ErrType, y.Type)
	}
	return y.Bool, nil
}

// Visit calls f on y and then, if f returns true, on each child in order.
// f is called again with isPost set once the children are done. The first
// error stops the walk.
func (y *Node) Visit(f func(y *Node, isPost bool) (bool, error)) error {
	dive, err := f(y, false)
	if err != nil {
		return err
	}
	if dive {
		for _, yy := range y.Values {
			if err := yy.Visit(f); err != nil {
				return err
			}
		}
	}
	if _, err := f(y, true); err != nil {
		return err
	}
	return nil
}
