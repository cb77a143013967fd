package main

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/signadot/docbuild/ir"
	"github.com/signadot/docbuild/parse"
	"github.com/signadot/docbuild/script"

	"github.com/scott-cotton/cli"
)

func readPath(cc *cli.Context, path string) ([]byte, error) {
	var r io.Reader
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	} else {
		r = cc.In
	}
	d, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("error reading %q: %w", path, err)
	}
	return d, nil
}

func getObjFile(cc *cli.Context, path string, opts ...parse.ParseOption) (*ir.Node, error) {
	d, err := readPath(cc, path)
	if err != nil {
		return nil, err
	}
	return parse.Parse(d, opts...)
}

func getScriptFile(cc *cli.Context, path string) (*script.Script, error) {
	d, err := readPath(cc, path)
	if err != nil {
		return nil, err
	}
	return script.Parse(d)
}

// splitDocs splits a YAML stream on document separators.
func splitDocs(in []byte) [][]byte {
	in = bytes.TrimPrefix(in, []byte("---\n"))
	return bytes.Split(in, []byte("\n---\n"))
}

func writeSep(w io.Writer, i, n int) error {
	if i >= n-1 {
		return nil
	}
	if _, err := w.Write([]byte("---\n")); err != nil {
		return fmt.Errorf("error writing document %d: %w", i, err)
	}
	return nil
}

func inputs(args []string) []string {
	if len(args) == 0 {
		return []string{"-"}
	}
	return args
}
