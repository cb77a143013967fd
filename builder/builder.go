package builder

import (
	"github.com/signadot/docbuild/debug"
	"github.com/signadot/docbuild/ir"
)

// slot is an arena entry for a container opened for nesting. fields maps
// each key of an object to its position and is nil for arrays.
type slot struct {
	node   *ir.Node
	fields map[string]int
}

// Builder assembles one document. The zero value is ready to use.
//
// Operations return the builder, or a handle restricted to the calls that
// are valid next. The first call that would make the document malformed
// records a *SequenceError, available from Err; every later call is a no-op
// and Build returns that error.
type Builder struct {
	root    *ir.Node
	rootSet bool

	// arena holds every container opened for nesting, stack indexes into it.
	// Slots are never removed, so indices stay valid until Reset.
	arena []slot
	stack []int

	key    string
	hasKey bool

	calls int
	err   error
}

func New() *Builder {
	return &Builder{}
}

// Reset discards the document and any recorded error.
func (b *Builder) Reset() {
	*b = Builder{}
}

type ValueOption func(*valueOpts)

type valueOpts struct {
	open bool
}

// Open makes a placed object or array the innermost open container, so
// that following calls fill it until the matching EndDict or EndArray.
func Open() ValueOption {
	return func(o *valueOpts) { o.open = true }
}

func (b *Builder) StartDict() DictContext {
	b.value("StartDict", ir.Object(), true)
	return DictContext{handle{b}}
}

func (b *Builder) StartArray() ArrayContext {
	b.value("StartArray", ir.Array(), true)
	return ArrayContext{handle{b}}
}

func (b *Builder) EndDict() *Builder {
	return b.end("EndDict", ir.ObjectType)
}

func (b *Builder) EndArray() *Builder {
	return b.end("EndArray", ir.ArrayType)
}

// Key sets the key under which the next value is placed in the innermost
// open object.
func (b *Builder) Key(name string) KeyContext {
	const op = "Key"
	if !b.begin(op) {
		return KeyContext{handle{b}}
	}
	if b.complete() {
		b.fail(op, AlreadyComplete)
		return KeyContext{handle{b}}
	}
	top := b.top()
	if top == nil || !top.node.IsObject() || b.hasKey {
		b.fail(op, KeyMisplaced)
		return KeyContext{handle{b}}
	}
	b.key = name
	b.hasKey = true
	if debug.Builder() {
		debug.Logf("builder: %s %q depth %d\n", op, name, len(b.stack))
	}
	return KeyContext{handle{b}}
}

// Value places a copy of v. The first value becomes the root; afterwards a
// value goes under the pending key of the innermost object, or at the end of
// the innermost array.
//
// If the pending key is already present in the object, the existing entry is
// kept, v is dropped and the key is consumed.
func (b *Builder) Value(v *ir.Node, opts ...ValueOption) *Builder {
	o := valueOpts{}
	for _, opt := range opts {
		opt(&o)
	}
	if v == nil {
		v = ir.Null()
	}
	b.value("Value", v.Clone(), o.open)
	return b
}

// Build returns a copy of the finished document. It may be called any
// number of times once the document is complete.
func (b *Builder) Build() (*ir.Node, error) {
	const op = "Build"
	if b.err != nil {
		return nil, b.err
	}
	b.calls++
	if !b.rootSet || len(b.stack) != 0 {
		return nil, &SequenceError{Op: op, Call: b.calls, Reason: NotReady}
	}
	return b.root.Clone(), nil
}

// Err returns the first failure recorded by the builder, if any.
func (b *Builder) Err() error {
	return b.err
}

// Depth returns the number of open containers.
func (b *Builder) Depth() int {
	return len(b.stack)
}

// Complete reports whether a root is set and every container is closed.
func (b *Builder) Complete() bool {
	return b.complete()
}

func (b *Builder) PendingKey() (string, bool) {
	return b.key, b.hasKey
}

// Path returns the location at which the next value would be placed, or ""
// if no value can be placed now.
func (b *Builder) Path() string {
	if b.err != nil {
		return ""
	}
	if !b.rootSet {
		return "$"
	}
	top := b.top()
	switch {
	case top == nil:
		return ""
	case b.hasKey:
		return top.node.FieldPath(b.key)
	case top.node.IsArray():
		return top.node.IndexPath(len(top.node.Values))
	}
	return ""
}

// Calls returns the number of operations performed so far, including the
// one that failed, if any.
func (b *Builder) Calls() int {
	return b.calls
}

func (b *Builder) begin(op string) bool {
	if b.err != nil {
		if debug.Builder() {
			debug.Logf("builder: %s ignored after %v\n", op, b.err)
		}
		return false
	}
	b.calls++
	return true
}

func (b *Builder) fail(op string, r Reason) {
	b.err = &SequenceError{Op: op, Call: b.calls, Reason: r}
	if debug.Builder() {
		debug.Logf("builder: %v\n", b.err)
	}
}

func (b *Builder) complete() bool {
	return b.rootSet && len(b.stack) == 0
}

func (b *Builder) top() *slot {
	if len(b.stack) == 0 {
		return nil
	}
	return &b.arena[b.stack[len(b.stack)-1]]
}

// value puts v, which the builder owns from now on, into the document and,
// when open is set and v is a container, pushes it. It returns the arena
// index of the pushed container, or -1.
func (b *Builder) value(op string, v *ir.Node, open bool) int {
	if !b.begin(op) {
		return -1
	}
	if b.complete() {
		b.fail(op, AlreadyComplete)
		return -1
	}
	top := b.top()
	if b.rootSet && !b.hasKey && (top == nil || !top.node.IsArray()) {
		b.fail(op, BadPlacement)
		return -1
	}
	switch {
	case !b.rootSet:
		v.Parent = nil
		b.root = v
		b.rootSet = true
	case b.hasKey:
		key := b.key
		b.key, b.hasKey = "", false
		if _, present := top.fields[key]; present {
			if debug.Builder() {
				debug.Logf("builder: %s keeps existing %q at %s\n", op, key, top.node.Path())
			}
			return -1
		}
		top.fields[key] = top.node.AddField(key, v)
	default:
		top.node.Append(v)
	}
	if debug.Builder() {
		debug.Logf("builder: %s %s at %s\n", op, v.Type, v.Path())
	}
	if !open || !v.IsContainer() {
		return -1
	}
	return b.push(v)
}

func (b *Builder) push(n *ir.Node) int {
	s := slot{node: n}
	if n.IsObject() {
		s.fields = make(map[string]int, len(n.Fields))
		for i, f := range n.Fields {
			if _, present := s.fields[f.String]; !present {
				s.fields[f.String] = i
			}
		}
	}
	b.arena = append(b.arena, s)
	i := len(b.arena) - 1
	b.stack = append(b.stack, i)
	return i
}

func (b *Builder) end(op string, t ir.Type) *Builder {
	if !b.begin(op) {
		return b
	}
	if b.complete() {
		b.fail(op, AlreadyComplete)
		return b
	}
	if b.hasKey {
		b.fail(op, DanglingKey)
		return b
	}
	top := b.top()
	if top == nil || top.node.Type != t {
		b.fail(op, MismatchedClose)
		return b
	}
	b.stack = b.stack[:len(b.stack)-1]
	if debug.Builder() {
		debug.Logf("builder: %s depth %d\n", op, len(b.stack))
	}
	return b
}
