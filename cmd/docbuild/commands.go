package main

import (
	"github.com/scott-cotton/cli"
)

func MainCommand() *cli.Command {
	cfg := &MainConfig{}
	sOpts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts := append(sOpts, []*cli.Opt{
		&cli.Opt{
			Name:        "o",
			Description: "output file (default stdout)",
			Type:        cli.NamedFuncOpt(cfg.outOpt, "(filepath)"),
		},
		&cli.Opt{
			Name:        "I",
			Aliases:     []string{"ifmt"},
			Description: "input format: json/j, yaml/y",
			Type:        cli.NamedFuncOpt(cfg.fmtFunc(&cfg.InFormat), "(format)"),
		}, &cli.Opt{
			Name:        "O",
			Aliases:     []string{"ofmt"},
			Description: "output format: json/j, yaml/y",
			Type:        cli.NamedFuncOpt(cfg.fmtFunc(&cfg.OutFormat), "(format)"),
		}}...)

	return cli.NewCommandAt(&cfg.Main, "docbuild").
		WithSynopsis("docbuild [opts] command [opts]").
		WithDescription("docbuild replays document construction scripts.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return docbuildMain(cfg, cc, args)
		}).
		WithSubs(
			RunCommand(cfg),
			CheckCommand(cfg),
			RecordCommand(cfg),
			ViewCommand(cfg))
}

func RunCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &RunConfig{MainConfig: mainCfg, Env: map[string]any{}}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts = append(opts, &cli.Opt{
		Name:        "e",
		Description: "set an eval variable",
		Type:        cli.NamedFuncOpt(cli.FuncOpt(envOptTypeFunc(cfg.Env)), "(name=val)"),
	})
	return cli.NewCommandAt(&cfg.Run, "run").
		WithAliases("r").
		WithSynopsis("run [-e name=val]... [-p patch] [files]").
		WithDescription(runDescription).
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return run(cfg, cc, args)
		})
}

const runDescription = `run replays build scripts and prints the documents they build.

A script is a YAML or JSON sequence of steps:

  - startDict
  - key: name
  - value: docbuild
  - key: tags
  - startArray
  - eval: prefix + "-a"
  - open: {kind: b}
  - endDict
  - endArray
  - endDict

or a mapping {env: {...}, steps: [...]}. Eval steps are expressions over the
env; '-e name=val' overrides entries of the env, val being parsed as YAML.

The first step rejected by the builder stops the run with an error naming the
step. With -p, the JSON patch in the given file (JSON or YAML) is applied to
each document before it is printed.`

func CheckCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &CheckConfig{MainConfig: mainCfg, Env: map[string]any{}}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts = append(opts, &cli.Opt{
		Name:        "e",
		Description: "set an eval variable",
		Type:        cli.NamedFuncOpt(cli.FuncOpt(envOptTypeFunc(cfg.Env)), "(name=val)"),
	})
	return cli.NewCommandAt(&cfg.Check, "check").
		WithAliases("c").
		WithSynopsis("check -want <file> [-s] [script]").
		WithDescription("check that a script builds the expected document, printing a diff if not").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return check(cfg, cc, args)
		})
}

func RecordCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &RecordConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Record, "record").
		WithAliases("rec").
		WithSynopsis("record [files]").
		WithDescription("print the build script of documents").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return record(cfg, cc, args)
		})
}

func ViewCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ViewConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.View, "view").
		WithAliases("v").
		WithSynopsis("view [files]").
		WithDescription("view documents in color").
		WithRun(func(cc *cli.Context, args []string) error {
			return view(cfg, cc, args)
		})
}
