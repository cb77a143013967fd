package encode

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/signadot/docbuild/format"
	"github.com/signadot/docbuild/ir"

	"github.com/goccy/go-json"
)

var ErrEncoding = errors.New("encoding error")

type EncState struct {
	depth, indent int
	format        format.Format
	wire          bool

	Color func(ir.Type, ColorAttr, string) string
}

// Encode writes node to w followed by a newline. JSON is indented unless
// EncodeWire is given; YAML is written in block style, or flow style on the
// wire.
func Encode(node *ir.Node, w io.Writer, opts ...EncodeOption) error {
	es := &EncState{
		indent: 2,
	}
	for _, opt := range opts {
		opt(es)
	}
	if es.format.IsYAML() && es.indent < 2 {
		es.indent = 2
	}
	var err error
	switch {
	case es.format.IsJSON():
		err = encodeJSON(node, w, es)
	case es.wire:
		err = encodeFlow(node, w, es)
	default:
		err = encodeBlock(node, w, es, true)
	}
	if err != nil {
		return err
	}
	return writeString(w, "\n")
}

func writeNL(w io.Writer, es *EncState) error {
	if es.wire {
		return nil
	}
	return writeString(w, "\n"+strings.Repeat(" ", es.indent*es.depth))
}

func writeString(w io.Writer, s string) error {
	_, err := w.Write([]byte(s))
	return err
}

func applyColor(es *EncState, t ir.Type, attr ColorAttr, v string) string {
	if es.Color == nil {
		return v
	}
	return es.Color(t, attr, v)
}

func writeSep(w io.Writer, es *EncState, t ir.Type, sep string) error {
	return writeString(w, applyColor(es, t, SepColor, sep))
}

// writeField writes an object key followed by sep.
func writeField(w io.Writer, es *EncState, key, sep string) error {
	var q string
	if es.format.IsJSON() {
		d, err := json.Marshal(key)
		if err != nil {
			return err
		}
		q = string(d)
	} else {
		q = yamlString(key, es.wire)
	}
	if err := writeString(w, applyColor(es, ir.ObjectType, FieldColor, q)); err != nil {
		return err
	}
	return writeSep(w, es, ir.ObjectType, sep)
}

func (es *EncState) fieldSep() string {
	if es.wire && es.format.IsJSON() {
		return ":"
	}
	return ": "
}

// JSON

func encodeJSON(node *ir.Node, w io.Writer, es *EncState) error {
	switch node.Type {
	case ir.ObjectType:
		if len(node.Fields) == 0 {
			return writeSep(w, es, ir.ObjectType, "{}")
		}
		if err := writeSep(w, es, ir.ObjectType, "{"); err != nil {
			return err
		}
		es.depth++
		for i, field := range node.Fields {
			if i > 0 {
				if err := writeSep(w, es, ir.ObjectType, ","); err != nil {
					return err
				}
			}
			if err := writeNL(w, es); err != nil {
				return err
			}
			if err := writeField(w, es, field.String, es.fieldSep()); err != nil {
				return err
			}
			if err := encodeJSON(node.Values[i], w, es); err != nil {
				return err
			}
		}
		es.depth--
		if err := writeNL(w, es); err != nil {
			return err
		}
		return writeSep(w, es, ir.ObjectType, "}")
	case ir.ArrayType:
		if len(node.Values) == 0 {
			return writeSep(w, es, ir.ArrayType, "[]")
		}
		if err := writeSep(w, es, ir.ArrayType, "["); err != nil {
			return err
		}
		es.depth++
		for i, v := range node.Values {
			if i > 0 {
				if err := writeSep(w, es, ir.ArrayType, ","); err != nil {
					return err
				}
			}
			if err := writeNL(w, es); err != nil {
				return err
			}
			if err := encodeJSON(v, w, es); err != nil {
				return err
			}
		}
		es.depth--
		if err := writeNL(w, es); err != nil {
			return err
		}
		return writeSep(w, es, ir.ArrayType, "]")
	default:
		return encodeScalar(node, w, es)
	}
}

// YAML

func encodeFlow(node *ir.Node, w io.Writer, es *EncState) error {
	switch node.Type {
	case ir.ObjectType:
		if err := writeSep(w, es, ir.ObjectType, "{"); err != nil {
			return err
		}
		for i, field := range node.Fields {
			if i > 0 {
				if err := writeSep(w, es, ir.ObjectType, ", "); err != nil {
					return err
				}
			}
			if err := writeField(w, es, field.String, es.fieldSep()); err != nil {
				return err
			}
			if err := encodeFlow(node.Values[i], w, es); err != nil {
				return err
			}
		}
		return writeSep(w, es, ir.ObjectType, "}")
	case ir.ArrayType:
		if err := writeSep(w, es, ir.ArrayType, "["); err != nil {
			return err
		}
		for i, v := range node.Values {
			if i > 0 {
				if err := writeSep(w, es, ir.ArrayType, ", "); err != nil {
					return err
				}
			}
			if err := encodeFlow(v, w, es); err != nil {
				return err
			}
		}
		return writeSep(w, es, ir.ArrayType, "]")
	default:
		return encodeScalar(node, w, es)
	}
}

// encodeBlock writes node in YAML block style. inline is set when the cursor
// already sits where the first entry belongs: at the start of the document or
// right after a "- " item marker.
func encodeBlock(node *ir.Node, w io.Writer, es *EncState, inline bool) error {
	switch {
	case node.IsObject() && len(node.Fields) != 0:
		for i, field := range node.Fields {
			if i > 0 || !inline {
				if err := writeNL(w, es); err != nil {
					return err
				}
			}
			if err := writeField(w, es, field.String, ":"); err != nil {
				return err
			}
			if err := encodeBlockValue(node.Values[i], w, es); err != nil {
				return err
			}
		}
		return nil
	case node.IsArray() && len(node.Values) != 0:
		marker := "-" + strings.Repeat(" ", es.indent-1)
		for i, v := range node.Values {
			if i > 0 || !inline {
				if err := writeNL(w, es); err != nil {
					return err
				}
			}
			if err := writeSep(w, es, ir.ArrayType, marker); err != nil {
				return err
			}
			if v.IsContainer() && v.Len() != 0 {
				es.depth++
				err := encodeBlock(v, w, es, true)
				es.depth--
				if err != nil {
					return err
				}
				continue
			}
			if err := encodeFlow(v, w, es); err != nil {
				return err
			}
		}
		return nil
	default:
		return encodeFlow(node, w, es)
	}
}

// encodeBlockValue writes the value of an object entry whose "key:" has
// already been written. Arrays under a key are not indented.
func encodeBlockValue(v *ir.Node, w io.Writer, es *EncState) error {
	if !v.IsContainer() || v.Len() == 0 {
		if err := writeString(w, " "); err != nil {
			return err
		}
		return encodeFlow(v, w, es)
	}
	if v.IsArray() {
		return encodeBlock(v, w, es, false)
	}
	es.depth++
	defer func() { es.depth-- }()
	return encodeBlock(v, w, es, false)
}

// Scalars

func encodeScalar(node *ir.Node, w io.Writer, es *EncState) error {
	var v string
	switch node.Type {
	case ir.NullType:
		v = "null"
	case ir.BoolType:
		v = strconv.FormatBool(node.Bool)
	case ir.NumberType:
		s, err := formatNumber(node, es)
		if err != nil {
			return err
		}
		v = s
	case ir.StringType:
		if es.format.IsJSON() {
			d, err := json.Marshal(node.String)
			if err != nil {
				return err
			}
			v = string(d)
		} else {
			v = yamlString(node.String, es.wire)
		}
	default:
		return fmt.Errorf("%w: unexpected %s", ErrEncoding, node.Type)
	}
	return writeString(w, applyColor(es, node.Type, ValueColor, v))
}

func formatNumber(node *ir.Node, es *EncState) (string, error) {
	switch {
	case node.Int64 != nil:
		return strconv.FormatInt(*node.Int64, 10), nil
	case node.Float64 != nil:
		f := *node.Float64
		switch {
		case math.IsNaN(f):
			if es.format.IsJSON() {
				return "", fmt.Errorf("%w: NaN in %s", ErrEncoding, es.format)
			}
			return ".nan", nil
		case math.IsInf(f, 1):
			if es.format.IsJSON() {
				return "", fmt.Errorf("%w: +Inf in %s", ErrEncoding, es.format)
			}
			return ".inf", nil
		case math.IsInf(f, -1):
			if es.format.IsJSON() {
				return "", fmt.Errorf("%w: -Inf in %s", ErrEncoding, es.format)
			}
			return "-.inf", nil
		}
		s := strconv.FormatFloat(f, 'g', -1, 64)
		if es.format.IsYAML() && !strings.ContainsAny(s, ".eEn") {
			// keep the float type visible to YAML readers
			s += ".0"
		}
		return s, nil
	case node.Number != "":
		return node.Number, nil
	}
	return "", fmt.Errorf("%w: number without value", ErrEncoding)
}
