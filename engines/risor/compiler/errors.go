package compiler

import "errors"

var (
	ErrCompileFailed     = errors.New("risor compilation failed")
	ErrContentEmpty      = errors.New("risor content is empty")
	ErrInvalidDefinition = errors.New("invalid function definition")
)
