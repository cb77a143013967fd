// Package patch applies RFC 6902 JSON patches to documents.
package patch
