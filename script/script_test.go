package script

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/signadot/docbuild/builder"
	"github.com/signadot/docbuild/encode"
	"github.com/signadot/docbuild/format"
	"github.com/signadot/docbuild/ir"
)

func wire(n *ir.Node) string {
	return encode.MustString(n, encode.EncodeFormat(format.JSONFormat), encode.EncodeWire(true))
}

func TestParse(t *testing.T) {
	s, err := Parse([]byte(`
- startDict
- key: a
- value: {y: 1, x: [true, null]}
- key: b
- open: []
- eval: 1 + 1
- endArray
- endDict: null
`))
	if err != nil {
		t.Fatal(err)
	}
	got := make([]string, len(s.Steps))
	for i, step := range s.Steps {
		got[i] = step.String()
	}
	want := []string{
		"startDict",
		`key "a"`,
		`value {"y":1,"x":[true,null]}`,
		`key "b"`,
		"open []",
		`eval "1 + 1"`,
		"endArray",
		"endDict",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("steps (-want +got):\n%s", diff)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
		msg  string
	}{
		{name: "unknown op", in: "- frob", msg: `unknown op "frob"`},
		{name: "missing argument", in: "- key", msg: "key needs an argument"},
		{name: "two ops", in: "- {key: a, value: 1}", msg: "exactly one op"},
		{name: "extra argument", in: "- endDict: 1", msg: "endDict takes no argument"},
		{name: "eval not string", in: "- eval: [1]", msg: "expression string"},
		{name: "bad env", in: "env: [1]\nsteps: []", msg: "env must be a mapping"},
		{name: "unknown field", in: "stepz: []", msg: "unknown field stepz"},
		{name: "scalar", in: "3", msg: "expected a sequence"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.in))
			if !errors.Is(err, ErrScript) {
				t.Fatalf("got %v, want ErrScript", err)
			}
			if !strings.Contains(err.Error(), tt.msg) {
				t.Errorf("error %q does not mention %q", err, tt.msg)
			}
		})
	}
}

func TestRunEnv(t *testing.T) {
	s, err := Parse([]byte(`
env:
  name: docbuild
  n: 21
steps:
- startDict
- key: name
- eval: name + "!"
- key: twice
- eval: n * 2
- key: list
- open: [1]
- value: 2
- endArray
- endDict
`))
	if err != nil {
		t.Fatal(err)
	}
	doc, err := Build(s)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := wire(doc), `{"name":"docbuild!","twice":42,"list":[1,2]}`; got != want {
		t.Errorf("got %s want %s", got, want)
	}

	doc, err = Build(s, WithEnv(map[string]any{"name": "other"}))
	if err != nil {
		t.Fatal(err)
	}
	if got := ir.Get(doc, "name").String; got != "other!" {
		t.Errorf("WithEnv did not override name: %q", got)
	}
}

func TestRunSequenceError(t *testing.T) {
	s := &Script{Steps: []Step{StartDict(), Key("a"), EndDict(), EndDict()}}
	b := builder.New()
	err := Run(b, s)
	if !errors.Is(err, builder.ErrDanglingKey) {
		t.Fatalf("got %v, want ErrDanglingKey", err)
	}
	if !strings.HasPrefix(err.Error(), "step 3 (endDict): ") {
		t.Errorf("unexpected message %q", err)
	}
	var se *builder.SequenceError
	if !errors.As(err, &se) {
		t.Fatalf("%v is not a SequenceError", err)
	}
	if diff := cmp.Diff(&builder.SequenceError{Op: "EndDict", Call: 3, Reason: builder.DanglingKey}, se); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestRunEvalError(t *testing.T) {
	s := &Script{Steps: []Step{StartArray(), Eval("nosuch +")}}
	_, err := Build(s)
	if !errors.Is(err, ErrScript) {
		t.Fatalf("got %v, want ErrScript", err)
	}
	if !strings.HasPrefix(err.Error(), "step 2 (eval): ") {
		t.Errorf("unexpected message %q", err)
	}
}

func TestBuildNotReady(t *testing.T) {
	s := &Script{Steps: []Step{StartArray(), Value(ir.FromInt(1))}}
	_, err := Build(s)
	if !errors.Is(err, builder.ErrNotReady) {
		t.Errorf("got %v, want ErrNotReady", err)
	}
}

func TestRecordRoundTrip(t *testing.T) {
	doc := ir.FromKeyVals([]ir.KeyVal{
		{Key: "name", Val: ir.FromString("hello world")},
		{Key: "n", Val: ir.FromInt(-3)},
		{Key: "f", Val: ir.FromFloat(1.5)},
		{Key: "ok", Val: ir.FromBool(true)},
		{Key: "nothing", Val: ir.Null()},
		{Key: "big", Val: &ir.Node{Type: ir.NumberType, Number: "18446744073709551616"}},
		{Key: "empty", Val: ir.Object()},
		{Key: "list", Val: ir.FromSlice([]*ir.Node{
			ir.FromInt(1),
			ir.Array(),
			ir.FromKeyVals([]ir.KeyVal{{Key: "z", Val: ir.FromInt(2)}, {Key: "a", Val: ir.FromInt(3)}}),
		})},
	})
	steps := Record(doc)
	if got := steps[0].Op; got != OpStartDict {
		t.Errorf("first step %s", got)
	}
	d, err := Encode(&Script{Steps: steps})
	if err != nil {
		t.Fatal(err)
	}
	s, err := Parse(d)
	if err != nil {
		t.Fatalf("%v\n%s", err, d)
	}
	got, err := Build(s)
	if err != nil {
		t.Fatalf("%v\n%s", err, d)
	}
	if !ir.Equal(doc, got) {
		t.Errorf("got %s want %s", wire(got), wire(doc))
	}
	if big := ir.Get(got, "big"); big.Type != ir.NumberType {
		t.Errorf("big: got %s\n%s", big.Type, d)
	}
}

func TestRecordSubtree(t *testing.T) {
	doc := ir.FromKeyVals([]ir.KeyVal{
		{Key: "a", Val: ir.FromSlice([]*ir.Node{ir.FromInt(1), ir.FromKeyVals([]ir.KeyVal{{Key: "b", Val: ir.FromBool(false)}})})},
	})
	got := []string{}
	for _, step := range Record(ir.Get(doc, "a")) {
		got = append(got, step.String())
	}
	want := []string{"startArray", "value 1", "startDict", `key "b"`, "value false", "endDict", "endArray"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("steps (-want +got):\n%s", diff)
	}
}

func TestRecordScalar(t *testing.T) {
	steps := Record(ir.FromString("x"))
	if len(steps) != 1 || steps[0].String() != `value "x"` {
		t.Errorf("got %v", steps)
	}
}

func TestEncodeEnv(t *testing.T) {
	s := &Script{
		Env:   map[string]any{"n": 1},
		Steps: []Step{Eval("n + 1")},
	}
	d, err := Encode(s)
	if err != nil {
		t.Fatal(err)
	}
	back, err := Parse(d)
	if err != nil {
		t.Fatal(err)
	}
	if len(back.Env) != 1 || len(back.Steps) != 1 || back.Steps[0].Expr != "n + 1" {
		t.Errorf("got %+v from\n%s", back, d)
	}
	doc, err := Build(back)
	if err != nil {
		t.Fatal(err)
	}
	if i, err := doc.AsInt(); err != nil || i != 2 {
		t.Errorf("got %s", wire(doc))
	}
}

func TestEvalFuncs(t *testing.T) {
	t.Setenv("DOCBUILD_TEST_VAR", "from-os")
	s, err := Parse([]byte(`
- startDict
- key: here
- eval: whereami()
- key: list
- startArray
- value: 0
- eval: whereami()
- eval: depth()
- endArray
- key: os
- eval: getenv("DOCBUILD_TEST_VAR")
- endDict
`))
	if err != nil {
		t.Fatal(err)
	}
	doc, err := Build(s)
	if err != nil {
		t.Fatal(err)
	}
	want := `{"here":"$.here","list":[0,"$.list[1]",2],"os":"from-os"}`
	if got := wire(doc); got != want {
		t.Errorf("got %s want %s", got, want)
	}
}

func TestWithEnvMergesMappings(t *testing.T) {
	s, err := Parse([]byte("env: {a: {b: 1, c: 2}}\nsteps:\n- startArray\n- eval: a.b\n- eval: a.c\n- endArray\n"))
	if err != nil {
		t.Fatal(err)
	}
	doc, err := Build(s, WithEnv(map[string]any{"a": map[string]any{"b": 5}}))
	if err != nil {
		t.Fatal(err)
	}
	if got, want := wire(doc), `[5,2]`; got != want {
		t.Errorf("got %s want %s", got, want)
	}
	// the script itself is left alone
	doc, err = Build(s)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := wire(doc), `[1,2]`; got != want {
		t.Errorf("got %s want %s", got, want)
	}

	doc, err = Build(s, WithEnv(map[string]any{"a": 7}))
	if err == nil {
		t.Errorf("a.c on a scalar built %s", wire(doc))
	}
}
