package gqlast

import "fmt"

// UnknownKindError is returned when a node kind has no matching handler in a
// grammar category, e.g. a Field found where a Value was expected.
type UnknownKindError struct {
	Path     string
	Kind     Kind
	Category string
}

func (e *UnknownKindError) Error() string {
	if e.Kind == "" {
		return fmt.Sprintf("node at %q has no kind (%s expected)", e.Path, e.Category)
	}
	return fmt.Sprintf("unknown %s kind %q at %q", e.Category, e.Kind, e.Path)
}

// PathCollisionError is returned when a node is written to a path other than
// the one its metadata declares.
type PathCollisionError struct {
	Path     string
	Declared string
}

func (e *PathCollisionError) Error() string {
	return fmt.Sprintf("node declares path %q but was written to %q", e.Declared, e.Path)
}

// Hint returns a user-friendly suggestion for resolving this error.
func (e *PathCollisionError) Hint() string {
	return "Clear the node's metadata path or write it to the path it declares."
}

// SyntaxError wraps a parse failure of query text.
type SyntaxError struct {
	Message string
	Line    int
	Column  int
}

func (e *SyntaxError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("syntax error at %d:%d: %s", e.Line, e.Column, e.Message)
	}
	return "syntax error: " + e.Message
}

// IncompleteNodeError is returned when a node cannot be printed because a
// part the grammar requires, such as a field's name, is unselected or absent.
type IncompleteNodeError struct {
	Path    string
	Kind    Kind
	Missing string
}

func (e *IncompleteNodeError) Error() string {
	return fmt.Sprintf("%s at %q is missing its %s", e.Kind, e.Path, e.Missing)
}

// Hint returns a user-friendly suggestion for resolving this error.
func (e *IncompleteNodeError) Hint() string {
	return "Select the missing part again or remove the node from its list."
}
