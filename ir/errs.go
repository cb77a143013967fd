package ir

import "errors"

var (
	ErrType    = errors.New("wrong node type")
	ErrConvert = errors.New("cannot convert to node")
)
