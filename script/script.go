package script

import (
	"bytes"
	"fmt"
	"maps"
	"strconv"

	"github.com/signadot/docbuild/ir"
	"github.com/signadot/docbuild/parse"

	"github.com/goccy/go-yaml"
)

// Script is a recorded sequence of builder calls with the variables that
// eval steps can refer to.
type Script struct {
	Env   map[string]any
	Steps []Step
}

// Parse reads a script from YAML or JSON. The document is either a sequence
// of steps or a mapping with "steps" and an optional "env".
func Parse(d []byte) (*Script, error) {
	s := &Script{Env: map[string]any{}}
	if len(bytes.TrimSpace(d)) == 0 {
		return s, nil
	}
	doc, err := parse.Parse(d)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScript, err)
	}
	var steps *ir.Node
	switch doc.Type {
	case ir.NullType:
	case ir.ArrayType:
		steps = doc
	case ir.ObjectType:
		for i, f := range doc.Fields {
			v := doc.Values[i]
			switch f.String {
			case "env":
				if v.IsNull() {
					continue
				}
				if !v.IsObject() {
					return nil, fmt.Errorf("%w: env must be a mapping", ErrScript)
				}
				maps.Copy(s.Env, ir.ToAny(v).(map[string]any))
			case "steps":
				if !v.IsNull() && !v.IsArray() {
					return nil, fmt.Errorf("%w: steps must be a sequence", ErrScript)
				}
				steps = v
			default:
				return nil, fmt.Errorf("%w: unknown field %s", ErrScript, f.String)
			}
		}
	default:
		return nil, fmt.Errorf("%w: expected a sequence of steps, got %s", ErrScript, doc.Type)
	}
	if steps.IsNull() {
		return s, nil
	}
	s.Steps = make([]Step, 0, len(steps.Values))
	for i, raw := range steps.Values {
		step, err := parseStep(raw)
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", i+1, err)
		}
		s.Steps = append(s.Steps, step)
	}
	return s, nil
}

func parseStep(raw *ir.Node) (Step, error) {
	switch raw.Type {
	case ir.StringType:
		op, err := ParseOp(raw.String)
		if err != nil {
			return Step{}, err
		}
		if op.HasArg() {
			return Step{}, fmt.Errorf("%w: %s needs an argument", ErrScript, op)
		}
		return Step{Op: op}, nil
	case ir.ObjectType:
		if len(raw.Fields) != 1 {
			return Step{}, fmt.Errorf("%w: a step has exactly one op, got %d", ErrScript, len(raw.Fields))
		}
		op, err := ParseOp(raw.Fields[0].String)
		if err != nil {
			return Step{}, err
		}
		arg := raw.Values[0]
		switch op {
		case OpKey:
			return Key(keyString(arg)), nil
		case OpValue, OpOpen:
			return Step{Op: op, Value: detach(arg)}, nil
		case OpEval:
			if arg.Type != ir.StringType {
				return Step{}, fmt.Errorf("%w: eval needs an expression string", ErrScript)
			}
			return Eval(arg.String), nil
		default:
			// bare ops may be written as "startDict: null"
			if !arg.IsNull() {
				return Step{}, fmt.Errorf("%w: %s takes no argument", ErrScript, op)
			}
			return Step{Op: op}, nil
		}
	default:
		return Step{}, fmt.Errorf("%w: unexpected %s step", ErrScript, raw.Type)
	}
}

// detach copies a step argument out of the script document so that it
// roots its own tree.
func detach(n *ir.Node) *ir.Node {
	res := n.Clone()
	res.Parent = nil
	res.ParentIndex = 0
	res.ParentField = ""
	return res
}

// Encode writes s as YAML that Parse reads back.
func Encode(s *Script) ([]byte, error) {
	return yaml.Marshal(s)
}

// MarshalYAML writes the short form, a plain sequence, when there is no env.
func (s *Script) MarshalYAML() (any, error) {
	steps := make([]any, len(s.Steps))
	for i, step := range s.Steps {
		switch step.Op {
		case OpKey:
			steps[i] = yaml.MapSlice{{Key: step.Op.String(), Value: step.Key}}
		case OpValue, OpOpen:
			v := ir.Null()
			if step.Value != nil {
				v = step.Value
			}
			steps[i] = yaml.MapSlice{{Key: step.Op.String(), Value: parse.ToValue(v)}}
		case OpEval:
			steps[i] = yaml.MapSlice{{Key: step.Op.String(), Value: step.Expr}}
		default:
			steps[i] = step.Op.String()
		}
	}
	if len(s.Env) == 0 {
		return steps, nil
	}
	return yaml.MapSlice{
		{Key: "env", Value: s.Env},
		{Key: "steps", Value: steps},
	}, nil
}

// keyString reads a key step argument. Scalars other than strings are
// taken by their text, so "key: 1" names the key "1".
func keyString(n *ir.Node) string {
	switch n.Type {
	case ir.StringType:
		return n.String
	case ir.NullType:
		return ""
	case ir.BoolType:
		return strconv.FormatBool(n.Bool)
	default:
		d, _ := ir.ToJSON(n)
		return string(d)
	}
}
