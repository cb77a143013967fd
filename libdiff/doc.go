// Package libdiff compares documents, either structurally with Diff or as
// rendered text with Nodes.
package libdiff
