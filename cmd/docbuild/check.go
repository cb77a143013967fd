package main

import (
	"fmt"
	"io"

	"github.com/signadot/docbuild/encode"
	"github.com/signadot/docbuild/ir"
	"github.com/signadot/docbuild/libdiff"
	"github.com/signadot/docbuild/script"

	"github.com/scott-cotton/cli"
)

func check(cfg *CheckConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Check.Parse(cc, args)
	if err != nil {
		return err
	}
	if cfg.Want == "" {
		return fmt.Errorf("%w: check requires -want", cli.ErrUsage)
	}
	if len(args) > 1 {
		return fmt.Errorf("%w: check takes at most one script, got %v", cli.ErrUsage, args)
	}
	want, err := getObjFile(cc, cfg.Want, cfg.parseOpts()...)
	if err != nil {
		return fmt.Errorf("error decoding %s: %w", cfg.Want, err)
	}
	file := inputs(args)[0]
	s, err := getScriptFile(cc, file)
	if err != nil {
		return fmt.Errorf("error decoding %s: %w", file, err)
	}
	differs, err := checkScript(cfg, cc.Out, s, want)
	if err != nil {
		return fmt.Errorf("error checking %s: %w", file, err)
	}
	if differs {
		return cli.ExitCodeErr(1)
	}
	return nil
}

// checkScript builds s and reports whether the result differs from want,
// writing the differences to w.
func checkScript(cfg *CheckConfig, w io.Writer, s *script.Script, want *ir.Node) (bool, error) {
	got, err := buildDoc(s, cfg.Env)
	if err != nil {
		return false, err
	}
	if ir.Equal(want, got) {
		return false, nil
	}
	diffs, err := libdiff.Nodes(want, got, cfg.diffOpts()...)
	if err != nil {
		return true, err
	}
	// equal renderings of unequal documents, such as 1 and 1.0 in JSON, fall
	// back to a list of changes
	if cfg.Changes || !libdiff.Changed(diffs) {
		for _, c := range libdiff.Diff(want, got) {
			if _, err := fmt.Fprintln(w, c); err != nil {
				return true, err
			}
		}
		return true, nil
	}
	_, err = io.WriteString(w, libdiff.Pretty(diffs, cfg.colored(w)))
	return true, err
}

func (cfg *CheckConfig) diffOpts() []encode.EncodeOption {
	opts := []encode.EncodeOption{encode.EncodeFormat(cfg.outFormat())}
	if cfg.Indent > 0 {
		opts = append(opts, encode.EncodeIndent(cfg.Indent))
	}
	return opts
}
