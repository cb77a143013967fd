package libdiff

import (
	"bytes"
	"strings"

	"github.com/signadot/docbuild/encode"
	"github.com/signadot/docbuild/ir"

	"github.com/fatih/color"
	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

// Text diffs from and to line by line.
func Text(from, to string) []diffpatch.Diff {
	dmp := diffpatch.New()
	a, b, lines := dmp.DiffLinesToChars(from, to)
	diffs := dmp.DiffMain(a, b, false)
	return dmp.DiffCharsToLines(diffs, lines)
}

// Changed reports whether diffs contains anything but equal text.
func Changed(diffs []diffpatch.Diff) bool {
	for i := range diffs {
		if diffs[i].Type != diffpatch.DiffEqual {
			return true
		}
	}
	return false
}

// Pretty renders line diffs with a "-", "+" or " " prefix on every line,
// in red and green when colored is set.
func Pretty(diffs []diffpatch.Diff, colored bool) string {
	del, ins := fmtFunc(colored, color.FgRed), fmtFunc(colored, color.FgGreen)
	buf := &strings.Builder{}
	for i := range diffs {
		lines := strings.SplitAfter(diffs[i].Text, "\n")
		if lines[len(lines)-1] == "" {
			lines = lines[:len(lines)-1]
		}
		for _, line := range lines {
			if !strings.HasSuffix(line, "\n") {
				line += "\n"
			}
			switch diffs[i].Type {
			case diffpatch.DiffDelete:
				buf.WriteString(del("-" + line))
			case diffpatch.DiffInsert:
				buf.WriteString(ins("+" + line))
			default:
				buf.WriteString(" " + line)
			}
		}
	}
	return buf.String()
}

func fmtFunc(colored bool, attr color.Attribute) func(string) string {
	if !colored {
		return func(s string) string { return s }
	}
	c := color.New(attr)
	c.EnableColor()
	return func(s string) string {
		// keep the newline outside the escape sequence
		body, nl := strings.CutSuffix(s, "\n")
		if nl {
			return c.Sprint(body) + "\n"
		}
		return c.Sprint(body)
	}
}

// Nodes renders from and to with opts and returns their line diff. The
// result is empty when the renderings are identical.
func Nodes(from, to *ir.Node, opts ...encode.EncodeOption) ([]diffpatch.Diff, error) {
	opts = append(opts[:len(opts):len(opts)], encode.EncodeColors(nil))
	a, err := render(from, opts)
	if err != nil {
		return nil, err
	}
	b, err := render(to, opts)
	if err != nil {
		return nil, err
	}
	if a == b {
		return nil, nil
	}
	return Text(a, b), nil
}

func render(n *ir.Node, opts []encode.EncodeOption) (string, error) {
	buf := bytes.NewBuffer(nil)
	if err := encode.Encode(n, buf, opts...); err != nil {
		return "", err
	}
	return buf.String(), nil
}
