package main

import (
	"fmt"
	"io"

	"github.com/signadot/docbuild/encode"
	"github.com/signadot/docbuild/parse"

	"github.com/scott-cotton/cli"
)

func view(cfg *ViewConfig, cc *cli.Context, args []string) error {
	args, err := cfg.View.Parse(cc, args)
	if err != nil {
		return err
	}
	files := inputs(args)
	for i, file := range files {
		d, err := readPath(cc, file)
		if err != nil {
			return err
		}
		if err := viewDocs(cfg, cc.Out, d); err != nil {
			return fmt.Errorf("error processing %s: %w", file, err)
		}
		if err := writeSep(cc.Out, i, len(files)); err != nil {
			return err
		}
	}
	return nil
}

func viewDocs(cfg *ViewConfig, w io.Writer, in []byte) error {
	docs := splitDocs(in)
	opts := cfg.encOpts(w)
	for i, doc := range docs {
		y, err := parse.Parse(doc, cfg.parseOpts()...)
		if err != nil {
			return fmt.Errorf("error decoding document %d: %w", i, err)
		}
		if err := encode.Encode(y, w, opts...); err != nil {
			return fmt.Errorf("error encoding result %d: %w", i, err)
		}
		if err := writeSep(w, i, len(docs)); err != nil {
			return err
		}
	}
	return nil
}
