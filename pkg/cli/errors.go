package cli

import "errors"

// Common CLI errors
var (
	ErrNotFormatted = errors.New("document is not formatted - run: magiql fmt -w")
	ErrNoSchema     = errors.New("no schema configured - pass --schema or set MAGIQL_SCHEMA")
	ErrEmptyInput   = errors.New("input contains no GraphQL document")
)
