package schema

import (
	"fmt"

	"github.com/vektah/gqlparser/v2/ast"

	"github.com/nksaraf/magiql/pkg/gqlast"
)

// PathNotFoundError is returned when no node of the document has the path.
type PathNotFoundError struct {
	Path string
}

func (e *PathNotFoundError) Error() string {
	return fmt.Sprintf("no node at %q", e.Path)
}

// UnknownFieldError is returned when a selected field is not defined on the
// type it is selected from.
type UnknownFieldError struct {
	Type  string
	Field string
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("type %s has no field %q", e.Type, e.Field)
}

// UnknownTypeError is returned for a type condition naming no schema type.
type UnknownTypeError struct {
	Name string
}

func (e *UnknownTypeError) Error() string {
	return fmt.Sprintf("unknown type %q", e.Name)
}

// TypeAt returns the type whose fields can be selected at path: the root
// type for an operation, the type condition of a fragment, the output type of
// a field, and for a selection set the type of its owner.
func (s *Schema) TypeAt(doc *gqlast.Document, path string) (*ast.Definition, error) {
	if doc == nil {
		return nil, &PathNotFoundError{Path: path}
	}
	def, found, err := s.resolve(doc, nil, path)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, &PathNotFoundError{Path: path}
	}
	return def, nil
}

func (s *Schema) resolve(n gqlast.Node, parent *ast.Definition, target string) (*ast.Definition, bool, error) {
	def, err := s.typeOf(n, parent)
	if err != nil {
		return nil, false, err
	}
	if n.Meta().Path == target {
		return def, true, nil
	}
	for _, c := range gqlast.Children(n) {
		if gqlast.HasPrefix(target, c.Node.Meta().Path) {
			return s.resolve(c.Node, def, target)
		}
	}
	return nil, false, nil
}

func (s *Schema) typeOf(n gqlast.Node, parent *ast.Definition) (*ast.Definition, error) {
	switch n := n.(type) {
	case *gqlast.OperationDefinition:
		root := s.RootType(n.Operation)
		if root == nil {
			return nil, &UnknownTypeError{Name: string(n.Operation)}
		}
		return root, nil
	case *gqlast.FragmentDefinition:
		return s.condition(n.TypeCondition, parent)
	case *gqlast.InlineFragment:
		return s.condition(n.TypeCondition, parent)
	case *gqlast.Field:
		if parent == nil || n.Name == nil {
			return nil, nil
		}
		fd := parent.Fields.ForName(n.Name.Value)
		if fd == nil {
			if n.Name.Value == "__typename" {
				return s.GetType("String"), nil
			}
			return nil, &UnknownFieldError{Type: parent.Name, Field: n.Name.Value}
		}
		return s.GetType(fd.Type.Name()), nil
	default:
		return parent, nil
	}
}

func (s *Schema) condition(t *gqlast.NamedType, parent *ast.Definition) (*ast.Definition, error) {
	if t == nil || t.Name == nil {
		return parent, nil
	}
	def := s.GetType(t.Name.Value)
	if def == nil {
		return nil, &UnknownTypeError{Name: t.Name.Value}
	}
	return def, nil
}

// Suggestion is one field, or one fragment type, that can be selected at a
// path.
type Suggestion struct {
	Name string `json:"name"`
	// Type is the GraphQL type, e.g. "[User!]!"; empty for fragments.
	Type      string   `json:"type,omitempty"`
	Arguments []string `json:"arguments,omitempty"`
	// Leaf marks scalar and enum fields, which take no selection set.
	Leaf     bool `json:"leaf"`
	Fragment bool `json:"fragment,omitempty"`
	Selected bool `json:"selected"`
	// Path is the path of the selection when Selected.
	Path        string `json:"path,omitempty"`
	Description string `json:"description,omitempty"`
}

// Suggest lists what can be selected at path: every field of TypeAt(path),
// then an inline fragment per possible type of an abstract type. Entries
// already in the selection set at path are marked Selected.
func (s *Schema) Suggest(doc *gqlast.Document, path string) ([]Suggestion, error) {
	def, err := s.TypeAt(doc, path)
	if err != nil {
		return nil, err
	}
	if def == nil {
		return nil, nil
	}

	selected := selectedAt(gqlast.Find(doc, path))

	var out []Suggestion
	for _, fd := range def.Fields {
		if isIntrospection(fd.Name) {
			continue
		}
		sg := Suggestion{
			Name:        fd.Name,
			Type:        fd.Type.String(),
			Leaf:        s.IsLeafType(fd.Type.Name()),
			Description: fd.Description,
		}
		for _, arg := range fd.Arguments {
			sg.Arguments = append(sg.Arguments, arg.Name+": "+arg.Type.String())
		}
		sg.Path, sg.Selected = selected[fd.Name]
		out = append(out, sg)
	}
	for _, name := range s.PossibleTypes(def.Name) {
		sg := Suggestion{Name: name, Fragment: true}
		sg.Path, sg.Selected = selected["... on "+name]
		out = append(out, sg)
	}
	return out, nil
}

// selectedAt maps field names and "... on Type" keys to the paths of the
// selections under n.
func selectedAt(n gqlast.Node) map[string]string {
	var set *gqlast.SelectionSet
	switch n := n.(type) {
	case *gqlast.SelectionSet:
		set = n
	case *gqlast.OperationDefinition:
		set = n.SelectionSet
	case *gqlast.FragmentDefinition:
		set = n.SelectionSet
	case *gqlast.InlineFragment:
		set = n.SelectionSet
	case *gqlast.Field:
		set = n.SelectionSet
	}

	out := make(map[string]string)
	if set == nil {
		return out
	}
	for _, sel := range set.Selections {
		if m := sel.Meta(); m.Path != "" && !m.IsSelected {
			continue
		}
		switch sel := sel.(type) {
		case *gqlast.Field:
			if sel.Name != nil {
				if _, seen := out[sel.Name.Value]; !seen {
					out[sel.Name.Value] = sel.Meta().Path
				}
			}
		case *gqlast.InlineFragment:
			if sel.TypeCondition != nil && sel.TypeCondition.Name != nil {
				out["... on "+sel.TypeCondition.Name.Value] = sel.Meta().Path
			}
		}
	}
	return out
}
