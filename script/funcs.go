package script

import (
	"os"

	"github.com/signadot/docbuild/builder"

	"github.com/expr-lang/expr"
)

// exprOpts returns the functions available to eval steps run on b.
func exprOpts(b *builder.Builder) []expr.Option {
	return []expr.Option{
		expr.Function("whereami", func(params ...any) (any, error) {
			return b.Path(), nil
		},
			new(func() string)),
		expr.Function("depth", func(params ...any) (any, error) {
			return b.Depth(), nil
		},
			new(func() int)),
		expr.Function("getenv", func(params ...any) (any, error) {
			return os.Getenv(params[0].(string)), nil
		},
			new(func(string) string)),
	}
}
