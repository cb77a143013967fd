package main

import (
	"fmt"
	"io"

	"github.com/signadot/docbuild/parse"
	"github.com/signadot/docbuild/script"

	"github.com/scott-cotton/cli"
)

func record(cfg *RecordConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Record.Parse(cc, args)
	if err != nil {
		return err
	}
	files := inputs(args)
	for i, file := range files {
		d, err := readPath(cc, file)
		if err != nil {
			return err
		}
		if err := recordDocs(cfg, cc.Out, d); err != nil {
			return fmt.Errorf("error processing %s: %w", file, err)
		}
		if err := writeSep(cc.Out, i, len(files)); err != nil {
			return err
		}
	}
	return nil
}

// recordDocs writes one script per document of in.
func recordDocs(cfg *RecordConfig, w io.Writer, in []byte) error {
	docs := splitDocs(in)
	for i, doc := range docs {
		node, err := parse.Parse(doc, cfg.parseOpts()...)
		if err != nil {
			return fmt.Errorf("error decoding document %d: %w", i, err)
		}
		d, err := script.Encode(&script.Script{Steps: script.Record(node)})
		if err != nil {
			return fmt.Errorf("error encoding script %d: %w", i, err)
		}
		if _, err := w.Write(d); err != nil {
			return err
		}
		if err := writeSep(w, i, len(docs)); err != nil {
			return err
		}
	}
	return nil
}
