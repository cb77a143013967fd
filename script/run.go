package script

import (
	"fmt"
	"maps"

	"github.com/signadot/docbuild/builder"
	"github.com/signadot/docbuild/debug"
	"github.com/signadot/docbuild/ir"

	"github.com/expr-lang/expr"
)

type Option func(*runState)

type runState struct {
	env map[string]any
}

// WithEnv adds variables for eval steps, overriding those of the script.
// Mappings present on both sides are merged, so {"a": {"b": 5}} replaces
// a.b and keeps the other entries of a.
func WithEnv(env map[string]any) Option {
	return func(rs *runState) { mergeEnv(rs.env, env) }
}

// mergeEnv sets the entries of src in dst. Nested mappings of dst are
// copied before being merged into, never modified in place.
func mergeEnv(dst, src map[string]any) {
	for k, v := range src {
		sm, sok := v.(map[string]any)
		dm, dok := dst[k].(map[string]any)
		if sok && dok {
			merged := maps.Clone(dm)
			mergeEnv(merged, sm)
			dst[k] = merged
			continue
		}
		dst[k] = v
	}
}

// Run replays the steps of s through b and stops at the first step that
// fails. A step rejected by the builder yields an error wrapping its
// *builder.SequenceError.
func Run(b *builder.Builder, s *Script, opts ...Option) error {
	rs := &runState{env: map[string]any{}}
	maps.Copy(rs.env, s.Env)
	for _, opt := range opts {
		opt(rs)
	}
	for i, step := range s.Steps {
		if debug.Script() {
			debug.Logf("script: step %d %s\n", i+1, step)
		}
		if err := apply(b, step, rs); err != nil {
			return fmt.Errorf("step %d (%s): %w", i+1, step.Op, err)
		}
		if err := b.Err(); err != nil {
			return fmt.Errorf("step %d (%s): %w", i+1, step.Op, err)
		}
	}
	return nil
}

// Build runs s on a new builder and returns the finished document.
func Build(s *Script, opts ...Option) (*ir.Node, error) {
	b := builder.New()
	if err := Run(b, s, opts...); err != nil {
		return nil, err
	}
	return b.Build()
}

func apply(b *builder.Builder, step Step, rs *runState) error {
	switch step.Op {
	case OpStartDict:
		b.StartDict()
	case OpEndDict:
		b.EndDict()
	case OpStartArray:
		b.StartArray()
	case OpEndArray:
		b.EndArray()
	case OpKey:
		b.Key(step.Key)
	case OpValue:
		b.Value(step.Value)
	case OpOpen:
		b.Value(step.Value, builder.Open())
	case OpEval:
		v, err := eval(b, step.Expr, rs.env)
		if err != nil {
			return err
		}
		b.Value(v)
	default:
		return fmt.Errorf("%w: unknown op %s", ErrScript, step.Op)
	}
	return nil
}

func eval(b *builder.Builder, src string, env map[string]any) (*ir.Node, error) {
	program, err := expr.Compile(src, append([]expr.Option{expr.Env(env)}, exprOpts(b)...)...)
	if err != nil {
		return nil, fmt.Errorf("%w: error compiling %q: %w", ErrScript, src, err)
	}
	out, err := expr.Run(program, env)
	if err != nil {
		return nil, fmt.Errorf("%w: error evaluating %q: %w", ErrScript, src, err)
	}
	v, err := ir.FromAny(out)
	if err != nil {
		return nil, fmt.Errorf("%w: result of %q: %w", ErrScript, src, err)
	}
	return v, nil
}
