package parse

import "github.com/signadot/docbuild/format"

type parseOpts struct {
	format format.Format
}

type ParseOption func(*parseOpts)

func ParseYAML() ParseOption {
	return func(o *parseOpts) { o.format = format.YAMLFormat }
}
func ParseJSON() ParseOption {
	return func(o *parseOpts) { o.format = format.JSONFormat }
}
func ParseFormat(f format.Format) ParseOption {
	return func(o *parseOpts) { o.format = f }
}
