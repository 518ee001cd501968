package gqlast

import (
	"strconv"
	"strings"
)

// Separator joins path segments.
const Separator = "."

// Child keys used to build paths. A node field is addressed as
// parent + "." + key and a collection item as parent + "." + key + "." + index.
const (
	KeyName                = "name"
	KeyAlias               = "alias"
	KeyValue               = "value"
	KeyBlock               = "block"
	KeyOperation           = "operation"
	KeyDefinitions         = "definitions"
	KeyVariableDefinitions = "variableDefinitions"
	KeyVariable            = "variable"
	KeyType                = "type"
	KeyDefaultValue        = "defaultValue"
	KeyDirectives          = "directives"
	KeySelectionSet        = "selectionSet"
	KeySelections          = "selections"
	KeyArguments           = "arguments"
	KeyTypeCondition       = "typeCondition"
	KeyValues              = "values"
	KeyFields              = "fields"
)

// Join appends key to parent.
func Join(parent, key string) string {
	if parent == "" {
		return key
	}
	return parent + Separator + key
}

// Item returns the positional path of the i-th element of a collection.
func Item(collection string, i int) string {
	return Join(collection, strconv.Itoa(i))
}

// Parent returns path without its last segment, or "" for a single segment.
func Parent(path string) string {
	i := strings.LastIndex(path, Separator)
	if i < 0 {
		return ""
	}
	return path[:i]
}

// Base returns the last segment of path.
func Base(path string) string {
	i := strings.LastIndex(path, Separator)
	if i < 0 {
		return path
	}
	return path[i+1:]
}

// Depth returns the number of segments in path.
func Depth(path string) int {
	if path == "" {
		return 0
	}
	return strings.Count(path, Separator) + 1
}

// HasPrefix reports whether path equals prefix or lies below it.
func HasPrefix(path, prefix string) bool {
	if prefix == "" {
		return true
	}
	return path == prefix || strings.HasPrefix(path, prefix+Separator)
}
