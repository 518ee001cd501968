// Package parse provides string parsing utilities for CLI commands.
package parse

import (
	"fmt"
	"strings"

	"github.com/nksaraf/magiql/pkg/gqlast"
)

// KeyValue splits s at the first of delimiters, defaulting to '='.
// Returns the key, value, and a boolean indicating success.
func KeyValue(s string, delimiters ...rune) (key, value string, ok bool) {
	if len(delimiters) == 0 {
		delimiters = []rune{'='}
	}

	for i, c := range s {
		for _, d := range delimiters {
			if c == d {
				return s[:i], s[i+1:], true
			}
		}
	}
	return "", "", false
}

// Argument is one name=value pair given on the command line.
type Argument struct {
	Name  string
	Value gqlast.Value
}

// Arguments parses "name=value" strings where value is a GraphQL input value
// literal, e.g. `id=4`, `name="ada"` or `where={age: {gt: 30}}`.
func Arguments(pairs []string) ([]Argument, error) {
	out := make([]Argument, 0, len(pairs))
	for _, pair := range pairs {
		name, text, ok := KeyValue(pair)
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("argument %q: expected name=value", pair)
		}
		value, err := gqlast.ParseValue(text)
		if err != nil {
			return nil, fmt.Errorf("argument %q: %w", name, err)
		}
		out = append(out, Argument{Name: name, Value: value})
	}
	return out, nil
}
