package builder_test

import (
	"errors"
	"fmt"
	"os"

	"github.com/signadot/docbuild/builder"
	"github.com/signadot/docbuild/encode"
	"github.com/signadot/docbuild/format"
	"github.com/signadot/docbuild/ir"
)

func ExampleBuilder() {
	b := builder.New()
	b.StartDict().
		Key("a").Value(ir.FromInt(1)).
		Key("b").StartArray().
		Value(ir.FromInt(2)).
		Value(ir.FromInt(3)).
		EndArray().
		EndDict()
	doc, err := b.Build()
	if err != nil {
		fmt.Println(err)
		return
	}
	if err := encode.Encode(doc, os.Stdout, encode.EncodeFormat(format.JSONFormat)); err != nil {
		fmt.Println(err)
	}
	// Output:
	// {
	//   "a": 1,
	//   "b": [
	//     2,
	//     3
	//   ]
	// }
}

func ExampleBuilder_mismatchedClose() {
	b := builder.New()
	b.StartArray().Value(ir.FromString("x"))
	b.EndDict()
	fmt.Println(errors.Is(b.Err(), builder.ErrMismatchedClose))
	fmt.Println(b.Err())
	// Output:
	// true
	// sequence error: close without matching start at call 3 (EndDict)
}
