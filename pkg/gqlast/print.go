package gqlast

import (
	"bytes"
	"errors"

	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/formatter"
	"github.com/vektah/gqlparser/v2/gqlerror"
	"github.com/vektah/gqlparser/v2/parser"
)

// DefaultIndent is the indentation used by Print.
const DefaultIndent = "  "

// Parse parses query text and stamps the resulting document with paths
// rooted at root.
func Parse(text, root string) (*Document, error) {
	q, parseErr := parser.ParseQuery(&ast.Source{Name: root, Input: text})
	if parseErr != nil {
		return nil, toSyntaxError(parseErr)
	}

	doc, err := FromQueryDocument(q)
	if err != nil {
		return nil, err
	}
	Stamp(doc, root)
	return doc, nil
}

func toSyntaxError(err error) *SyntaxError {
	var gqlErr *gqlerror.Error
	if errors.As(err, &gqlErr) {
		se := &SyntaxError{Message: gqlErr.Message}
		if len(gqlErr.Locations) > 0 {
			se.Line = gqlErr.Locations[0].Line
			se.Column = gqlErr.Locations[0].Column
		}
		return se
	}
	return &SyntaxError{Message: err.Error()}
}

// PrintOption configures Print.
type PrintOption func(*printConfig)

type printConfig struct {
	indent string
}

// WithIndent sets the indentation string.
func WithIndent(indent string) PrintOption {
	return func(c *printConfig) {
		c.indent = indent
	}
}

// Print renders doc as query text. Unselected nodes are omitted.
func Print(doc *Document, opts ...PrintOption) (string, error) {
	cfg := printConfig{indent: DefaultIndent}
	for _, opt := range opts {
		opt(&cfg)
	}

	q, err := ToQueryDocument(doc)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	formatter.NewFormatter(&buf, formatter.WithIndent(cfg.indent)).FormatQueryDocument(q)
	return buf.String(), nil
}

// ParseValue parses a single input value literal such as `4`, `"x"`, `[A, B]`
// or `{id: $id}`. The result carries no paths.
func ParseValue(text string) (Value, error) {
	q, parseErr := parser.ParseQuery(&ast.Source{Input: "{ f(v: " + text + ") }"})
	if parseErr != nil {
		return nil, toSyntaxError(parseErr)
	}
	doc, err := FromQueryDocument(q)
	if err != nil {
		return nil, err
	}
	if len(doc.Definitions) != 1 {
		return nil, &SyntaxError{Message: "not a value: " + text}
	}
	op, ok := doc.Definitions[0].(*OperationDefinition)
	if !ok || op.SelectionSet == nil || len(op.SelectionSet.Selections) != 1 {
		return nil, &SyntaxError{Message: "not a value: " + text}
	}
	f, ok := op.SelectionSet.Selections[0].(*Field)
	if !ok || len(f.Arguments) != 1 || len(f.Directives) != 0 || f.SelectionSet != nil {
		return nil, &SyntaxError{Message: "not a value: " + text}
	}
	return f.Arguments[0].Value, nil
}
