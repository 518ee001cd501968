package schema

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"

	"github.com/nksaraf/magiql/pkg/gqlast"
)

// Schema is a parsed GraphQL schema indexed for the lookups a query builder
// makes: types by name, root fields by operation, fields by owner type.
type Schema struct {
	ast    *ast.Schema
	source string
	roots  map[gqlast.Operation]map[string]*ast.FieldDefinition
}

// ParseSchema parses SDL text.
func ParseSchema(sdl string) (*Schema, error) {
	return load("schema", sdl)
}

// ParseSchemaFile reads and parses an SDL file.
func ParseSchemaFile(path string) (*Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema file %s: %w", path, err)
	}
	return load(path, string(data))
}

func load(name, sdl string) (*Schema, error) {
	parsed, err := gqlparser.LoadSchema(&ast.Source{Name: name, Input: sdl})
	if err != nil {
		return nil, fmt.Errorf("failed to parse GraphQL schema %s: %w", name, err)
	}

	s := &Schema{
		ast:    parsed,
		source: sdl,
		roots:  make(map[gqlast.Operation]map[string]*ast.FieldDefinition, 3),
	}
	s.indexRoot(gqlast.OperationQuery, parsed.Query)
	s.indexRoot(gqlast.OperationMutation, parsed.Mutation)
	s.indexRoot(gqlast.OperationSubscription, parsed.Subscription)
	return s, nil
}

func (s *Schema) indexRoot(op gqlast.Operation, def *ast.Definition) {
	fields := make(map[string]*ast.FieldDefinition)
	if def != nil {
		for _, f := range def.Fields {
			if !isIntrospection(f.Name) {
				fields[f.Name] = f
			}
		}
	}
	s.roots[op] = fields
}

// isIntrospection reports whether name is reserved for introspection, e.g.
// __typename or __schema.
func isIntrospection(name string) bool {
	return strings.HasPrefix(name, "__")
}

// AST returns the gqlparser schema.
func (s *Schema) AST() *ast.Schema {
	return s.ast
}

// Source returns the SDL the schema was parsed from.
func (s *Schema) Source() string {
	return s.source
}

// GetType returns the named type, or nil.
func (s *Schema) GetType(name string) *ast.Definition {
	return s.ast.Types[name]
}

// RootType returns the type operations of kind op start from, or nil when
// the schema does not define one.
func (s *Schema) RootType(op gqlast.Operation) *ast.Definition {
	switch op {
	case gqlast.OperationMutation:
		return s.ast.Mutation
	case gqlast.OperationSubscription:
		return s.ast.Subscription
	default:
		return s.ast.Query
	}
}

// RootField returns a top-level field of op by name, or nil.
func (s *Schema) RootField(op gqlast.Operation, name string) *ast.FieldDefinition {
	return s.roots[op][name]
}

// ListQueries returns the query field names, sorted.
func (s *Schema) ListQueries() []string { return sortedKeys(s.roots[gqlast.OperationQuery]) }

// ListMutations returns the mutation field names, sorted.
func (s *Schema) ListMutations() []string { return sortedKeys(s.roots[gqlast.OperationMutation]) }

// ListSubscriptions returns the subscription field names, sorted.
func (s *Schema) ListSubscriptions() []string {
	return sortedKeys(s.roots[gqlast.OperationSubscription])
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ListTypes returns type names in sorted order, restricted to kinds when any
// are given. Introspection types are left out.
func (s *Schema) ListTypes(kinds ...ast.DefinitionKind) []string {
	var names []string
	for name, def := range s.ast.Types {
		if isIntrospection(name) {
			continue
		}
		if len(kinds) == 0 || containsKind(kinds, def.Kind) {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

func containsKind(kinds []ast.DefinitionKind, k ast.DefinitionKind) bool {
	for _, want := range kinds {
		if want == k {
			return true
		}
	}
	return false
}

// Validate checks the rules gqlparser leaves to the caller. Queries need a
// Query type with at least one field.
func (s *Schema) Validate() error {
	if len(s.roots[gqlast.OperationQuery]) == 0 {
		return fmt.Errorf("schema must define a Query type with at least one field")
	}
	return nil
}

// ValidateDocument prints doc and validates it against the schema with
// gqlparser's rules.
func (s *Schema) ValidateDocument(doc *gqlast.Document) error {
	text, err := gqlast.Print(doc)
	if err != nil {
		return err
	}
	if _, errs := gqlparser.LoadQuery(s.ast, text); len(errs) > 0 {
		return fmt.Errorf("invalid query: %w", errs)
	}
	return nil
}

// GetField returns the field of typeName called fieldName, or nil.
func (s *Schema) GetField(typeName, fieldName string) *ast.FieldDefinition {
	def := s.GetType(typeName)
	if def == nil {
		return nil
	}
	return def.Fields.ForName(fieldName)
}

// IsLeafType reports whether values of the named type are scalars or enums
// and so take no selection set.
func (s *Schema) IsLeafType(name string) bool {
	switch name {
	case "Int", "Float", "String", "Boolean", "ID":
		return true
	}
	def := s.GetType(name)
	return def != nil && (def.Kind == ast.Scalar || def.Kind == ast.Enum)
}

// EnumValues returns the values of an enum type, or nil.
func (s *Schema) EnumValues(name string) []string {
	def := s.GetType(name)
	if def == nil || def.Kind != ast.Enum {
		return nil
	}
	values := make([]string, 0, len(def.EnumValues))
	for _, v := range def.EnumValues {
		values = append(values, v.Name)
	}
	return values
}

// PossibleTypes returns the object types a fragment on the named abstract
// type can match: the members of a union or the implementors of an
// interface. It returns nil for other kinds.
func (s *Schema) PossibleTypes(name string) []string {
	def := s.GetType(name)
	if def == nil {
		return nil
	}

	var out []string
	switch def.Kind {
	case ast.Union:
		out = append(out, def.Types...)
	case ast.Interface:
		for typeName, candidate := range s.ast.Types {
			if candidate.Kind == ast.Object && containsString(candidate.Interfaces, name) {
				out = append(out, typeName)
			}
		}
	default:
		return nil
	}
	sort.Strings(out)
	return out
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
