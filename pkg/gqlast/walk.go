package gqlast

import "reflect"

// Child is a node together with the key it hangs off its parent.
// Index is the position inside a collection, or -1 for a single child.
type Child struct {
	Key   string
	Index int
	Node  Node
}

// Path returns the child's path below parent.
func (c Child) Path(parent string) string {
	p := Join(parent, c.Key)
	if c.Index >= 0 {
		return Item(p, c.Index)
	}
	return p
}

// IsNil reports whether n is nil or a typed nil pointer.
func IsNil(n Node) bool {
	if n == nil {
		return true
	}
	v := reflect.ValueOf(n)
	return v.Kind() == reflect.Pointer && v.IsNil()
}

// Children returns the direct child nodes of n in field order. Nil children
// are skipped; collection items keep their index.
func Children(n Node) []Child {
	var out []Child
	one := func(key string, c Node) {
		if !IsNil(c) {
			out = append(out, Child{Key: key, Index: -1, Node: c})
		}
	}
	directives := func(ds []*Directive) {
		for i, d := range ds {
			if d != nil {
				out = append(out, Child{Key: KeyDirectives, Index: i, Node: d})
			}
		}
	}
	arguments := func(as []*Argument) {
		for i, a := range as {
			if a != nil {
				out = append(out, Child{Key: KeyArguments, Index: i, Node: a})
			}
		}
	}

	switch n := n.(type) {
	case *Document:
		for i, d := range n.Definitions {
			if !IsNil(d) {
				out = append(out, Child{Key: KeyDefinitions, Index: i, Node: d})
			}
		}
	case *OperationDefinition:
		one(KeyName, n.Name)
		for i, v := range n.VariableDefinitions {
			if v != nil {
				out = append(out, Child{Key: KeyVariableDefinitions, Index: i, Node: v})
			}
		}
		directives(n.Directives)
		one(KeySelectionSet, n.SelectionSet)
	case *VariableDefinition:
		one(KeyVariable, n.Variable)
		one(KeyType, n.Type)
		one(KeyDefaultValue, n.DefaultValue)
		directives(n.Directives)
	case *Variable:
		one(KeyName, n.Name)
	case *SelectionSet:
		for i, s := range n.Selections {
			if !IsNil(s) {
				out = append(out, Child{Key: KeySelections, Index: i, Node: s})
			}
		}
	case *Field:
		one(KeyAlias, n.Alias)
		one(KeyName, n.Name)
		arguments(n.Arguments)
		directives(n.Directives)
		one(KeySelectionSet, n.SelectionSet)
	case *Argument:
		one(KeyName, n.Name)
		one(KeyValue, n.Value)
	case *FragmentSpread:
		one(KeyName, n.Name)
		directives(n.Directives)
	case *InlineFragment:
		one(KeyTypeCondition, n.TypeCondition)
		directives(n.Directives)
		one(KeySelectionSet, n.SelectionSet)
	case *FragmentDefinition:
		one(KeyName, n.Name)
		one(KeyTypeCondition, n.TypeCondition)
		directives(n.Directives)
		one(KeySelectionSet, n.SelectionSet)
	case *ListValue:
		for i, v := range n.Values {
			if !IsNil(v) {
				out = append(out, Child{Key: KeyValues, Index: i, Node: v})
			}
		}
	case *ObjectValue:
		for i, f := range n.Fields {
			if f != nil {
				out = append(out, Child{Key: KeyFields, Index: i, Node: f})
			}
		}
	case *ObjectField:
		one(KeyName, n.Name)
		one(KeyValue, n.Value)
	case *Directive:
		one(KeyName, n.Name)
		arguments(n.Arguments)
	case *NamedType:
		one(KeyName, n.Name)
	case *ListType:
		one(KeyType, n.Type)
	case *NonNullType:
		one(KeyType, n.Type)
	}
	return out
}

// Walk visits n and its descendants depth first. Children of a node are
// skipped when fn returns false for it.
func Walk(n Node, fn func(n Node) bool) {
	if IsNil(n) || !fn(n) {
		return
	}
	for _, c := range Children(n) {
		Walk(c.Node, fn)
	}
}

// Stamp assigns path-based metadata to n and every descendant, marking them
// selected. It is how parsed documents get the same paths the projection
// layer synthesizes.
func Stamp(n Node, path string) {
	if IsNil(n) {
		return
	}
	m := n.Meta()
	m.Path = path
	m.ParentPath = Parent(path)
	m.Kind = n.Kind()
	m.IsSelected = true
	for _, c := range Children(n) {
		Stamp(c.Node, c.Path(path))
	}
}

// Find returns the node at path below root, or nil.
func Find(root Node, path string) Node {
	var found Node
	Walk(root, func(n Node) bool {
		if found != nil {
			return false
		}
		p := n.Meta().Path
		if p == path {
			found = n
			return false
		}
		return HasPrefix(path, p)
	})
	return found
}
