package main

import (
	"fmt"
	"io"

	"github.com/signadot/docbuild/encode"
	"github.com/signadot/docbuild/ir"
	"github.com/signadot/docbuild/patch"
	"github.com/signadot/docbuild/script"

	"github.com/scott-cotton/cli"
)

func run(cfg *RunConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Run.Parse(cc, args)
	if err != nil {
		return err
	}
	var p *patch.Patch
	if cfg.Patch != "" {
		ops, err := getObjFile(cc, cfg.Patch)
		if err != nil {
			return fmt.Errorf("error reading patch %s: %w", cfg.Patch, err)
		}
		p, err = patch.FromNode(ops)
		if err != nil {
			return fmt.Errorf("error decoding patch %s: %w", cfg.Patch, err)
		}
	}
	files := inputs(args)
	for i, file := range files {
		s, err := getScriptFile(cc, file)
		if err != nil {
			return fmt.Errorf("error decoding %s: %w", file, err)
		}
		if err := runScript(cfg, cc.Out, s, p); err != nil {
			return fmt.Errorf("error running %s: %w", file, err)
		}
		if err := writeSep(cc.Out, i, len(files)); err != nil {
			return err
		}
	}
	return nil
}

func runScript(cfg *RunConfig, w io.Writer, s *script.Script, p *patch.Patch) error {
	doc, err := buildDoc(s, cfg.Env)
	if err != nil {
		return err
	}
	if p != nil {
		doc, err = p.Apply(doc)
		if err != nil {
			return err
		}
	}
	if err := encode.Encode(doc, w, cfg.encOpts(w)...); err != nil {
		return fmt.Errorf("error encoding result: %w", err)
	}
	return nil
}

func buildDoc(s *script.Script, env map[string]any) (*ir.Node, error) {
	var opts []script.Option
	if len(env) != 0 {
		opts = append(opts, script.WithEnv(env))
	}
	return script.Build(s, opts...)
}
