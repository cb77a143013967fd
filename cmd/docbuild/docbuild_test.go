package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/signadot/docbuild/builder"
	"github.com/signadot/docbuild/encode"
	"github.com/signadot/docbuild/format"
	"github.com/signadot/docbuild/ir"
	"github.com/signadot/docbuild/parse"
	"github.com/signadot/docbuild/patch"
	"github.com/signadot/docbuild/script"
)

const testScript = `
env:
  greeting: hello
steps:
- startDict
- key: msg
- eval: greeting + " world"
- key: xs
- startArray
- value: 1
- value: 2
- endArray
- endDict
`

func wireString(n *ir.Node) string {
	return encode.MustString(n, encode.EncodeFormat(format.JSONFormat), encode.EncodeWire(true))
}

func mustScript(t *testing.T, src string) *script.Script {
	t.Helper()
	s, err := script.Parse([]byte(src))
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestEnvFunc(t *testing.T) {
	env := map[string]any{}
	for _, a := range []string{"a=1", "b.c=x", "b.d=[true]"} {
		if err := envFunc(env, a); err != nil {
			t.Fatal(err)
		}
	}
	got, err := ir.FromAny(env)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(`{"a":1,"b":{"c":"x","d":[true]}}`, wireString(got)); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	if err := envFunc(env, "a.z=1"); err == nil {
		t.Error("expected an error descending into a scalar")
	}
	if err := envFunc(env, "novalue"); err == nil {
		t.Error("expected a usage error")
	}
}

func TestRunScript(t *testing.T) {
	cfg := &RunConfig{MainConfig: &MainConfig{}, Env: map[string]any{}}
	buf := &bytes.Buffer{}
	if err := runScript(cfg, buf, mustScript(t, testScript), nil); err != nil {
		t.Fatal(err)
	}
	if got, want := buf.String(), "msg: hello world\nxs:\n- 1\n- 2\n"; got != want {
		t.Errorf("got %q want %q", got, want)
	}

	cfg.J = true
	cfg.WireOut = true
	cfg.Env["greeting"] = "bye"
	p, err := patch.Decode([]byte(`[{"op": "remove", "path": "/xs/0"}]`))
	if err != nil {
		t.Fatal(err)
	}
	buf.Reset()
	if err := runScript(cfg, buf, mustScript(t, testScript), p); err != nil {
		t.Fatal(err)
	}
	if got, want := buf.String(), `{"msg":"bye world","xs":[2]}`+"\n"; got != want {
		t.Errorf("got %q want %q", got, want)
	}
}

func TestRunScriptSequenceError(t *testing.T) {
	cfg := &RunConfig{MainConfig: &MainConfig{}}
	s := mustScript(t, "- startArray\n- key: a\n")
	err := runScript(cfg, &bytes.Buffer{}, s, nil)
	if !errors.Is(err, builder.ErrKeyMisplaced) {
		t.Errorf("got %v, want ErrKeyMisplaced", err)
	}
}

func TestCheckScript(t *testing.T) {
	want, err := parse.Parse([]byte("msg: hello world\nxs: [1, 2]\n"))
	if err != nil {
		t.Fatal(err)
	}
	cfg := &CheckConfig{MainConfig: &MainConfig{}}
	buf := &bytes.Buffer{}
	differs, err := checkScript(cfg, buf, mustScript(t, testScript), want)
	if err != nil {
		t.Fatal(err)
	}
	if differs || buf.Len() != 0 {
		t.Errorf("unexpected difference:\n%s", buf)
	}

	want, err = parse.Parse([]byte("msg: hello world\nxs: [1, 3]\n"))
	if err != nil {
		t.Fatal(err)
	}
	differs, err = checkScript(cfg, buf, mustScript(t, testScript), want)
	if err != nil {
		t.Fatal(err)
	}
	if !differs {
		t.Fatal("expected a difference")
	}
	if got, want := buf.String(), " msg: hello world\n xs:\n - 1\n-- 3\n+- 2\n"; got != want {
		t.Errorf("got\n%s\nwant\n%s", got, want)
	}

	buf.Reset()
	cfg.Changes = true
	if _, err := checkScript(cfg, buf, mustScript(t, testScript), want); err != nil {
		t.Fatal(err)
	}
	if got, want := buf.String(), "replace $.xs[1]: 3 -> 2\n"; got != want {
		t.Errorf("got %q want %q", got, want)
	}
}

func TestRecordDocs(t *testing.T) {
	cfg := &RecordConfig{MainConfig: &MainConfig{}}
	buf := &bytes.Buffer{}
	if err := recordDocs(cfg, buf, []byte("a: [1]\n---\ntrue\n")); err != nil {
		t.Fatal(err)
	}
	docs := strings.Split(buf.String(), "---\n")
	if len(docs) != 2 {
		t.Fatalf("got %d scripts:\n%s", len(docs), buf)
	}
	doc, err := script.Build(mustScript(t, docs[0]))
	if err != nil {
		t.Fatal(err)
	}
	want, _ := parse.Parse([]byte(`{"a": [1]}`), parse.ParseFormat(format.JSONFormat))
	if diff := cmp.Diff(wireString(want), wireString(doc)); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	if got := strings.TrimSpace(docs[1]); got != "- value: true" {
		t.Errorf("got %q", got)
	}
}

func TestViewDocs(t *testing.T) {
	cfg := &ViewConfig{MainConfig: &MainConfig{J: true, Indent: 4}}
	buf := &bytes.Buffer{}
	if err := viewDocs(cfg, buf, []byte("b: 1\na: [x]\n")); err != nil {
		t.Fatal(err)
	}
	want := "{\n    \"b\": 1,\n    \"a\": [\n        \"x\"\n    ]\n}\n"
	if got := buf.String(); got != want {
		t.Errorf("got\n%s\nwant\n%s", got, want)
	}
}

func TestRunScriptNestedEnv(t *testing.T) {
	cfg := &RunConfig{MainConfig: &MainConfig{J: true, WireOut: true}, Env: map[string]any{}}
	if err := envFunc(cfg.Env, "a.b=5"); err != nil {
		t.Fatal(err)
	}
	s := mustScript(t, "env: {a: {b: 1, c: 2}}\nsteps:\n- startArray\n- eval: a.b\n- eval: a.c\n- endArray\n")
	buf := &bytes.Buffer{}
	if err := runScript(cfg, buf, s, nil); err != nil {
		t.Fatal(err)
	}
	if got, want := buf.String(), "[5,2]\n"; got != want {
		t.Errorf("got %q want %q", got, want)
	}
}
