package debug

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/signadot/docbuild/encode"
	"github.com/signadot/docbuild/format"
	"github.com/signadot/docbuild/ir"

	"github.com/goccy/go-json"
)

var out io.Writer = os.Stderr

// SetOutput redirects debug output, returning the previous writer.
func SetOutput(w io.Writer) io.Writer {
	prev := out
	out = w
	return prev
}

type Node struct{ *ir.Node }

func (y Node) String() string {
	x := y.Node
	buf := bytes.NewBuffer(nil)
	if err := encode.Encode(x, buf, encode.EncodeFormat(format.JSONFormat), encode.EncodeWire(true)); err != nil {
		return fmt.Sprintf("[raw *ir.Node] %v", x)
	}
	return buf.String()
}

func Logf(msg string, args ...any) {
	for i := range args {
		a := args[i]
		switch x := a.(type) {
		case map[string]any, []any:
			d, err := json.MarshalIndent(a, "   |", "  ")
			if err != nil {
				args[i] = fmt.Sprintf("%v", a)
				continue
			}
			args[i] = string(d)
		case *ir.Node:
			if x == nil {
				args[i] = "<nil>"
				continue
			}
			args[i] = Node{x}.String()
		}
	}
	fmt.Fprintf(out, msg, args...)
}
