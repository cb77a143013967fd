package main

import (
	"fmt"
	"io"
	"os"

	"github.com/signadot/docbuild/encode"
	"github.com/signadot/docbuild/format"
	"github.com/signadot/docbuild/parse"

	"github.com/scott-cotton/cli"

	"github.com/mattn/go-isatty"
)

type MainConfig struct {
	Color   bool `cli:"name=color desc='encode with color'"`
	WireOut bool `cli:"name=wire desc='output in compact format'"`
	Indent  int  `cli:"name=indent desc='spaces per indentation level'"`

	J bool `cli:"name=j aliases=json desc='do i/o in json'"`
	Y bool `cli:"name=y aliases=yaml desc='do i/o in yaml'"`

	InFormat, OutFormat *format.Format

	Out      string
	CloseOut func() error

	Main *cli.Command
}

func (cfg *MainConfig) fmtFunc(fps ...**format.Format) cli.FuncOpt {
	return cli.FuncOpt(func(_ *cli.Context, v string) (any, error) {
		f, err := format.ParseFormat(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
		for _, fp := range fps {
			*fp = &f
		}
		return f, nil
	})
}

// flagFormat returns the format selected by -j or -y, YAML if neither.
func (cfg *MainConfig) flagFormat() format.Format {
	if cfg.J {
		return format.JSONFormat
	}
	return format.YAMLFormat
}

func (cfg *MainConfig) parseOpts() []parse.ParseOption {
	fmat := format.YAMLFormat
	if cfg.InFormat != nil {
		fmat = *cfg.InFormat
	}
	return []parse.ParseOption{parse.ParseFormat(fmat)}
}

func (cfg *MainConfig) outFormat() format.Format {
	if cfg.OutFormat != nil {
		return *cfg.OutFormat
	}
	return cfg.flagFormat()
}

func (cfg *MainConfig) encOpts(w io.Writer) []encode.EncodeOption {
	res := []encode.EncodeOption{
		encode.EncodeFormat(cfg.outFormat()),
		encode.EncodeWire(cfg.WireOut),
	}
	if cfg.Indent > 0 {
		res = append(res, encode.EncodeIndent(cfg.Indent))
	}
	if cfg.colored(w) {
		res = append(res, encode.EncodeColors(encode.NewColors()))
	}
	return res
}

// colored reports whether output to w is colored: always with -color,
// never with -color=false, and otherwise when w is a terminal.
func (cfg *MainConfig) colored(w io.Writer) bool {
	if cfg.Color {
		return true
	}
	if cfg.Main != nil {
		for _, opt := range cfg.Main.Opts {
			if opt.Name == "color" && opt.Value != nil {
				return false
			}
		}
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd())
}

type RunConfig struct {
	*MainConfig
	Env   map[string]any
	Patch string `cli:"name=p aliases=patch desc='JSON patch file applied to each document'"`

	Run *cli.Command
}

type CheckConfig struct {
	*MainConfig
	Env     map[string]any
	Want    string `cli:"name=want desc='file with the expected document'"`
	Changes bool   `cli:"name=s desc='list structural changes instead of a line diff'"`

	Check *cli.Command
}

type RecordConfig struct {
	*MainConfig
	Record *cli.Command
}

type ViewConfig struct {
	*MainConfig
	View *cli.Command
}
