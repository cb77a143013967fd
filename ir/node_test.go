package ir

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCloneParents(t *testing.T) {
	doc := FromKeyVals([]KeyVal{
		{Key: "list", Val: FromSlice([]*Node{FromInt(2), FromInt(3)})},
	})
	c := doc.Clone()
	list := Get(c, "list")
	if list == nil {
		t.Fatal("no list")
	}
	if list.Parent != c {
		t.Errorf("list parent not rewired to clone")
	}
	if got := list.Values[1].Path(); got != "$.list[1]" {
		t.Errorf("path %q", got)
	}
}

func TestPath(t *testing.T) {
	doc := FromKeyVals([]KeyVal{
		{Key: "a.b", Val: FromSlice([]*Node{FromKeyVals([]KeyVal{{Key: "c", Val: Null()}})})},
	})
	leaf := Get(doc, "a.b").Values[0].Values[0]
	if got, want := leaf.Path(), "$.'a.b'[0].c"; got != want {
		t.Errorf("got %q want %q", got, want)
	}
}

func TestAccessors(t *testing.T) {
	if i, err := FromInt(7).AsInt(); err != nil || i != 7 {
		t.Errorf("AsInt: %d %v", i, err)
	}
	if f, err := FromInt(7).AsFloat(); err != nil || f != 7 {
		t.Errorf("AsFloat: %f %v", f, err)
	}
	if _, err := FromString("x").AsInt(); !errors.Is(err, ErrType) {
		t.Errorf("expected ErrType, got %v", err)
	}
	if s, err := FromString("x").AsString(); err != nil || s != "x" {
		t.Errorf("AsString: %q %v", s, err)
	}
	if b, err := FromBool(true).AsBool(); err != nil || !b {
		t.Errorf("AsBool: %v %v", b, err)
	}
}

func TestAnyRoundTrip(t *testing.T) {
	in := map[string]any{
		"a": int64(1),
		"b": []any{"x", 2.5, true, nil},
		"c": map[string]any{"d": "e"},
	}
	node, err := FromAny(in)
	if err != nil {
		t.Fatal(err)
	}
	if !node.IsObject() || node.Len() != 3 {
		t.Fatalf("unexpected node %v", node)
	}
	if diff := cmp.Diff(in, ToAny(node)); diff != "" {
		t.Errorf("round trip (-want +got):\n%s", diff)
	}
	if _, err := FromAny(struct{}{}); !errors.Is(err, ErrConvert) {
		t.Errorf("expected ErrConvert, got %v", err)
	}
}

func TestJSON(t *testing.T) {
	node := FromKeyVals([]KeyVal{
		{Key: "z", Val: FromInt(1)},
		{Key: "a", Val: FromSlice([]*Node{FromString("q\"uote"), FromFloat(1.5), Null()})},
	})
	d, err := ToJSON(node)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := string(d), `{"z":1,"a":["q\"uote",1.5,null]}`; got != want {
		t.Errorf("got %s want %s", got, want)
	}
	back, err := FromJSON(d)
	if err != nil {
		t.Fatal(err)
	}
	// FromJSON sorts keys.
	want := FromKeyVals([]KeyVal{
		{Key: "a", Val: Get(node, "a").Clone()},
		{Key: "z", Val: FromInt(1)},
	})
	if !Equal(back, want) {
		t.Errorf("decoded %s", mustJSON(t, back))
	}
}

func mustJSON(t *testing.T, n *Node) string {
	t.Helper()
	d, err := ToJSON(n)
	if err != nil {
		t.Fatal(err)
	}
	return string(d)
}
