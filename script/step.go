package script

import (
	"fmt"
	"strings"

	"github.com/signadot/docbuild/encode"
	"github.com/signadot/docbuild/format"
	"github.com/signadot/docbuild/ir"
)

// Op names one builder operation.
type Op int

const (
	OpStartDict Op = iota
	OpEndDict
	OpStartArray
	OpEndArray
	OpKey
	OpValue
	OpOpen
	OpEval
)

var opNames = [...]string{
	OpStartDict:  "startDict",
	OpEndDict:    "endDict",
	OpStartArray: "startArray",
	OpEndArray:   "endArray",
	OpKey:        "key",
	OpValue:      "value",
	OpOpen:       "open",
	OpEval:       "eval",
}

func (o Op) String() string {
	if o < 0 || int(o) >= len(opNames) {
		return fmt.Sprintf("<op %d>", int(o))
	}
	return opNames[o]
}

// ParseOp looks up an op by name, ignoring case.
func ParseOp(v string) (Op, error) {
	for i, name := range opNames {
		if strings.EqualFold(name, v) {
			return Op(i), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown op %q", ErrScript, v)
}

// HasArg reports whether steps with this op carry an argument.
func (o Op) HasArg() bool {
	switch o {
	case OpKey, OpValue, OpOpen, OpEval:
		return true
	}
	return false
}

// Step is one recorded builder call. Key is set for OpKey, Value for OpValue
// and OpOpen, Expr for OpEval.
type Step struct {
	Op    Op
	Key   string
	Value *ir.Node
	Expr  string
}

func StartDict() Step             { return Step{Op: OpStartDict} }
func EndDict() Step               { return Step{Op: OpEndDict} }
func StartArray() Step            { return Step{Op: OpStartArray} }
func EndArray() Step              { return Step{Op: OpEndArray} }
func Key(name string) Step        { return Step{Op: OpKey, Key: name} }
func Value(v *ir.Node) Step       { return Step{Op: OpValue, Value: v} }
func OpenValue(v *ir.Node) Step   { return Step{Op: OpOpen, Value: v} }
func Eval(expression string) Step { return Step{Op: OpEval, Expr: expression} }

func (s Step) String() string {
	switch s.Op {
	case OpKey:
		return fmt.Sprintf("%s %q", s.Op, s.Key)
	case OpValue, OpOpen:
		if s.Value == nil {
			return s.Op.String() + " null"
		}
		return s.Op.String() + " " + encode.MustString(s.Value, encode.EncodeFormat(format.JSONFormat), encode.EncodeWire(true))
	case OpEval:
		return fmt.Sprintf("%s %q", s.Op, s.Expr)
	default:
		return s.Op.String()
	}
}
