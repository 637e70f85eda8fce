package sql

import "errors"

var (
	ErrEmptyStatement     = errors.New("empty statement")
	ErrUnknownCommand     = errors.New("unknown command")
	ErrSyntax             = errors.New("syntax error")
	ErrValueCountMismatch = errors.New("value count mismatch")
)
