package builder

import "github.com/signadot/docbuild/ir"

// handle is the state shared by every restricted view: the builder it
// forwards to.
type handle struct {
	b *Builder
}

// Builder returns the unrestricted builder behind the handle.
func (h handle) Builder() *Builder { return h.b }

// Err returns the first failure recorded by the builder, if any.
func (h handle) Err() error { return h.b.err }

// DictContext is returned right after an object is opened.
type DictContext struct{ handle }

func (c DictContext) Key(name string) KeyContext { return c.b.Key(name) }
func (c DictContext) EndDict() *Builder          { return c.b.EndDict() }

// KeyContext is returned after Key: the paired value must come next.
type KeyContext struct{ handle }

func (c KeyContext) Value(v *ir.Node) ValueContext {
	return ValueContext{handle{c.b.Value(v)}}
}
func (c KeyContext) StartDict() DictContext   { return c.b.StartDict() }
func (c KeyContext) StartArray() ArrayContext { return c.b.StartArray() }

// ValueContext is returned after the value of an object entry.
type ValueContext struct{ handle }

func (c ValueContext) Key(name string) KeyContext { return c.b.Key(name) }
func (c ValueContext) EndDict() *Builder          { return c.b.EndDict() }

// ArrayContext is returned inside an open array.
type ArrayContext struct{ handle }

func (c ArrayContext) Value(v *ir.Node) ArrayContext {
	return ArrayContext{handle{c.b.Value(v)}}
}
func (c ArrayContext) StartDict() DictContext   { return c.b.StartDict() }
func (c ArrayContext) StartArray() ArrayContext { return c.b.StartArray() }
func (c ArrayContext) EndArray() *Builder       { return c.b.EndArray() }
