package patch

import (
	"errors"
	"fmt"

	"github.com/signadot/docbuild/debug"
	"github.com/signadot/docbuild/ir"
	"github.com/signadot/docbuild/parse"

	jsonpatch "github.com/evanphx/json-patch"
)

var ErrPatch = errors.New("patch error")

// Patch is a decoded RFC 6902 operation list.
type Patch struct {
	ops jsonpatch.Patch
}

// Decode reads a JSON patch from JSON text.
func Decode(d []byte) (*Patch, error) {
	ops, err := jsonpatch.DecodePatch(d)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPatch, err)
	}
	return &Patch{ops: ops}, nil
}

// FromNode reads a JSON patch from an array of operation objects, such as
// one parsed from YAML.
func FromNode(ops *ir.Node) (*Patch, error) {
	if !ops.IsArray() {
		return nil, fmt.Errorf("%w: expected an array of operations, got %s", ErrPatch, ops.Type)
	}
	d, err := ir.ToJSON(ops)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPatch, err)
	}
	return Decode(d)
}

func (p *Patch) Len() int {
	return len(p.ops)
}

// Apply returns a patched copy of doc; doc itself is left alone. Objects
// the patch walks through come back with sorted keys.
func (p *Patch) Apply(doc *ir.Node) (*ir.Node, error) {
	if debug.Script() {
		debug.Logf("patch: %d ops on %v\n", len(p.ops), doc)
	}
	d, err := ir.ToJSON(doc)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPatch, err)
	}
	out, err := p.ops.Apply(d)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPatch, err)
	}
	res, err := parse.Parse(out, parse.ParseJSON())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPatch, err)
	}
	return res, nil
}

// Apply decodes ops and applies them to doc.
func Apply(doc *ir.Node, ops []byte) (*ir.Node, error) {
	p, err := Decode(ops)
	if err != nil {
		return nil, err
	}
	return p.Apply(doc)
}
