package patch

import (
	"errors"
	"testing"

	"github.com/signadot/docbuild/encode"
	"github.com/signadot/docbuild/format"
	"github.com/signadot/docbuild/ir"
	"github.com/signadot/docbuild/parse"
)

func wire(n *ir.Node) string {
	return encode.MustString(n, encode.EncodeFormat(format.JSONFormat), encode.EncodeWire(true))
}

func TestApply(t *testing.T) {
	doc, err := parse.Parse([]byte(`{"a": 1, "b": [2, 3]}`), parse.ParseJSON())
	if err != nil {
		t.Fatal(err)
	}
	got, err := Apply(doc, []byte(`[
		{"op": "replace", "path": "/a", "value": "x"},
		{"op": "add", "path": "/b/-", "value": 4},
		{"op": "add", "path": "/c", "value": {"d": null}}
	]`))
	if err != nil {
		t.Fatal(err)
	}
	if got, want := wire(got), `{"a":"x","b":[2,3,4],"c":{"d":null}}`; got != want {
		t.Errorf("got %s want %s", got, want)
	}
	if got, want := wire(doc), `{"a":1,"b":[2,3]}`; got != want {
		t.Errorf("input modified: %s", got)
	}
}

func TestFromNode(t *testing.T) {
	ops, err := parse.Parse([]byte("- op: remove\n  path: /xs/0\n"))
	if err != nil {
		t.Fatal(err)
	}
	p, err := FromNode(ops)
	if err != nil {
		t.Fatal(err)
	}
	if p.Len() != 1 {
		t.Errorf("got %d ops", p.Len())
	}
	got, err := p.Apply(ir.FromKeyVals([]ir.KeyVal{
		{Key: "xs", Val: ir.FromSlice([]*ir.Node{ir.FromInt(1), ir.FromBool(false)})},
	}))
	if err != nil {
		t.Fatal(err)
	}
	if got, want := wire(got), `{"xs":[false]}`; got != want {
		t.Errorf("got %s want %s", got, want)
	}
}

func TestErrors(t *testing.T) {
	doc := ir.FromKeyVals([]ir.KeyVal{{Key: "a", Val: ir.FromInt(1)}})
	if _, err := Apply(doc, []byte(`{"op": "add"}`)); !errors.Is(err, ErrPatch) {
		t.Errorf("bad patch: got %v", err)
	}
	if _, err := Apply(doc, []byte(`[{"op": "remove", "path": "/nope"}]`)); !errors.Is(err, ErrPatch) {
		t.Errorf("missing path: got %v", err)
	}
	if _, err := FromNode(ir.Object()); !errors.Is(err, ErrPatch) {
		t.Errorf("object ops: got %v", err)
	}
}
