// Package script replays recorded builder calls.
//
// A script is a YAML (or JSON) sequence of steps, each naming one builder
// operation:
//
//	- startDict
//	- key: name
//	- value: docbuild
//	- key: tags
//	- open: [a]
//	- eval: env_tag + "-b"
//	- endArray
//	- endDict
//
// The script may instead be a mapping with "steps" and an "env" whose entries
// are visible to eval expressions. Record produces the steps that rebuild a
// given document.
package script
