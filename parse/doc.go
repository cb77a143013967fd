// Package parse reads YAML and JSON documents into *ir.Node, keeping the
// order of object keys.
package parse
