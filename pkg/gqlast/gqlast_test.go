package gqlast

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vektah/gqlparser/v2/ast"
)

const richQuery = `
query Foo($id: ID! = 1, $tags: [String!]) @live {
	user(id: $id, filter: {role: ADMIN, active: true, score: 1.5, nick: null}) {
		id
		handle: name
		tags(in: $tags, first: [1, 2])
		... on Admin @include(if: true) { level }
		...UserBits
	}
}

fragment UserBits on User {
	email(format: "plain")
}
`

func normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func TestPaths(t *testing.T) {
	assert.Equal(t, "Foo.selectionSet", Join("Foo", KeySelectionSet))
	assert.Equal(t, "name", Join("", "name"))
	assert.Equal(t, "Foo.selections.2", Item("Foo.selections", 2))
	assert.Equal(t, "Foo.selections", Parent("Foo.selections.2"))
	assert.Equal(t, "", Parent("Foo"))
	assert.Equal(t, "2", Base("Foo.selections.2"))
	assert.Equal(t, 3, Depth("Foo.selections.2"))
	assert.Equal(t, 0, Depth(""))
	assert.True(t, HasPrefix("Foo.a.b", "Foo.a"))
	assert.True(t, HasPrefix("Foo.a", "Foo.a"))
	assert.False(t, HasPrefix("Foo.ab", "Foo.a"))
}

func TestParse_StampsPaths(t *testing.T) {
	doc, err := Parse(`query Foo { user { id name } }`, "Foo")
	require.NoError(t, err)

	assert.Equal(t, Metadata{Path: "Foo", Kind: KindDocument, IsSelected: true}, doc.Metadata)
	require.Len(t, doc.Definitions, 1)

	op, ok := doc.Definitions[0].(*OperationDefinition)
	require.True(t, ok)
	assert.Equal(t, "Foo.definitions.0", op.Metadata.Path)
	assert.Equal(t, "Foo.definitions", op.Metadata.ParentPath)
	assert.Equal(t, OperationQuery, op.Operation)
	assert.Equal(t, "Foo", op.Name.Value)
	assert.Equal(t, "Foo.definitions.0.name", op.Name.Metadata.Path)

	user := op.SelectionSet.Selections[0].(*Field)
	assert.Equal(t, "Foo.definitions.0.selectionSet.selections.0", user.Metadata.Path)
	name := user.SelectionSet.Selections[1].(*Field)
	assert.Equal(t, "Foo.definitions.0.selectionSet.selections.0.selectionSet.selections.1", name.Metadata.Path)
	assert.Equal(t, KindField, name.Metadata.Kind)
	assert.True(t, name.Metadata.IsSelected)
}

func TestParse_SyntaxError(t *testing.T) {
	_, err := Parse("query Foo { user { id }", "Foo")
	require.Error(t, err)

	var syntaxErr *SyntaxError
	require.True(t, errors.As(err, &syntaxErr))
	assert.Positive(t, syntaxErr.Line)
	assert.Contains(t, err.Error(), "syntax error")
}

func TestPrint_RoundTrip(t *testing.T) {
	doc, err := Parse(richQuery, "Foo")
	require.NoError(t, err)

	text, err := Print(doc)
	require.NoError(t, err)

	again, err := Parse(text, "Foo")
	require.NoError(t, err)
	assert.Equal(t, doc, again)

	op := doc.Definitions[0].(*OperationDefinition)
	require.Len(t, op.VariableDefinitions, 2)
	assert.IsType(t, &NonNullType{}, op.VariableDefinitions[0].Type)
	assert.IsType(t, &IntValue{}, op.VariableDefinitions[0].DefaultValue)
	assert.IsType(t, &ListType{}, op.VariableDefinitions[1].Type)

	user := op.SelectionSet.Selections[0].(*Field)
	filter := user.Arguments[1].Value.(*ObjectValue)
	require.Len(t, filter.Fields, 4)
	assert.Equal(t, "ADMIN", filter.Fields[0].Value.(*EnumValue).Value)
	assert.IsType(t, &NullValue{}, filter.Fields[3].Value)

	handle := user.SelectionSet.Selections[1].(*Field)
	assert.Equal(t, "handle", handle.ResponseKey())
	assert.Equal(t, "name", handle.Name.Value)

	assert.IsType(t, &InlineFragment{}, user.SelectionSet.Selections[3])
	assert.IsType(t, &FragmentSpread{}, user.SelectionSet.Selections[4])
	assert.IsType(t, &FragmentDefinition{}, doc.Definitions[1])
}

func TestPrint_SimpleQuery(t *testing.T) {
	doc, err := Parse(`query Foo { user { id name } }`, "Foo")
	require.NoError(t, err)

	text, err := Print(doc)
	require.NoError(t, err)
	assert.Equal(t, "query Foo { user { id name } }", normalize(text))
}

func TestPrint_SkipsUnselected(t *testing.T) {
	doc, err := Parse(`query Foo { user { id name } }`, "Foo")
	require.NoError(t, err)

	user := doc.Definitions[0].(*OperationDefinition).SelectionSet.Selections[0].(*Field)
	user.SelectionSet.Selections[1].Meta().IsSelected = false

	text, err := Print(doc)
	require.NoError(t, err)
	assert.Equal(t, "query Foo { user { id } }", normalize(text))
}

func TestPrint_UnstampedNodes(t *testing.T) {
	doc := &Document{Definitions: []Definition{
		&OperationDefinition{
			Operation: OperationMutation,
			Name:      NewName("Save"),
			SelectionSet: &SelectionSet{Selections: []Selection{
				&Field{
					Name:      NewName("save"),
					Arguments: []*Argument{{Name: NewName("note"), Value: &StringValue{Value: "hi"}}},
				},
			}},
		},
	}}

	text, err := Print(doc)
	require.NoError(t, err)
	assert.Equal(t, `mutation Save { save(note: "hi") }`, normalize(text))
}

func TestToQueryDocument_Values(t *testing.T) {
	block, err := toValue(&StringValue{Value: "doc", Block: true})
	require.NoError(t, err)
	assert.Equal(t, ast.BlockValue, block.Kind)

	boolean, err := toValue(&BooleanValue{Value: true})
	require.NoError(t, err)
	assert.Equal(t, "true", boolean.Raw)

	back, err := fromValue(block)
	require.NoError(t, err)
	assert.Equal(t, &StringValue{Value: "doc", Block: true}, back)
}

func TestFromQueryDocument_Nil(t *testing.T) {
	doc, err := FromQueryDocument(nil)
	require.NoError(t, err)
	assert.Nil(t, doc)
}

func TestWalkAndFind(t *testing.T) {
	doc, err := Parse(`query Foo { user { id name } }`, "Foo")
	require.NoError(t, err)

	var kinds []Kind
	Walk(doc, func(n Node) bool {
		kinds = append(kinds, n.Kind())
		return true
	})
	assert.Equal(t, []Kind{
		KindDocument, KindOperationDefinition, KindName, KindSelectionSet,
		KindField, KindName, KindSelectionSet,
		KindField, KindName,
		KindField, KindName,
	}, kinds)

	n := Find(doc, "Foo.definitions.0.selectionSet.selections.0.selectionSet.selections.1.name")
	require.NotNil(t, n)
	assert.Equal(t, "name", n.(*Name).Value)
	assert.Nil(t, Find(doc, "Foo.definitions.3"))
}

func TestIsNil(t *testing.T) {
	var f *Field
	assert.True(t, IsNil(nil))
	assert.True(t, IsNil(f))
	assert.False(t, IsNil(NewField("id")))
}

func TestErrors(t *testing.T) {
	err := &UnknownKindError{Path: "p", Kind: KindField, Category: "value"}
	assert.Equal(t, `unknown value kind "Field" at "p"`, err.Error())

	collision := &PathCollisionError{Path: "a", Declared: "b"}
	assert.Contains(t, collision.Error(), `"b"`)
	assert.NotEmpty(t, collision.Hint())
}

func TestParseValue(t *testing.T) {
	v, err := ParseValue(`4`)
	require.NoError(t, err)
	assert.Equal(t, &IntValue{Value: "4"}, v)

	v, err = ParseValue(`[A, "b"]`)
	require.NoError(t, err)
	list, ok := v.(*ListValue)
	require.True(t, ok)
	require.Len(t, list.Values, 2)
	assert.Equal(t, "A", list.Values[0].(*EnumValue).Value)
	assert.Empty(t, list.Meta().Path)

	v, err = ParseValue(`$id`)
	require.NoError(t, err)
	assert.Equal(t, "id", v.(*Variable).Name.Value)

	_, err = ParseValue(`{`)
	var syntaxErr *SyntaxError
	assert.True(t, errors.As(err, &syntaxErr))

	for _, text := range []string{
		`1) } query Z { g(v: 2`,
		`1) } fragment F on T { a`,
		`1) @skip(if: true`,
		`1) { a`,
		`1, w: 2`,
	} {
		_, err := ParseValue(text)
		assert.True(t, errors.As(err, &syntaxErr), text)
	}
}

func TestPrint_IncompleteNode(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		path    string
		kind    Kind
		missing string
	}{
		{name: "field name", query: `query Foo { user { id } }`,
			path: "Foo.definitions.0.selectionSet.selections.0.selectionSet.selections.0.name", kind: KindField, missing: KeyName},
		{name: "fragment spread name", query: `query Foo { ...F }`,
			path: "Foo.definitions.0.selectionSet.selections.0.name", kind: KindFragmentSpread, missing: KeyName},
		{name: "argument name", query: `query Foo { user(id: 1) { id } }`,
			path: "Foo.definitions.0.selectionSet.selections.0.arguments.0.name", kind: KindArgument, missing: KeyName},
		{name: "variable type", query: `query Foo($id: ID) { user(id: $id) { id } }`,
			path: "Foo.definitions.0.variableDefinitions.0.type", kind: KindVariableDefinition, missing: KeyType},
		{name: "fragment type condition", query: `fragment Foo on User { id }`,
			path: "Foo.definitions.0.typeCondition", kind: KindFragmentDefinition, missing: KeyTypeCondition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Parse(tt.query, "Foo")
			require.NoError(t, err)
			n := Find(doc, tt.path)
			require.NotNil(t, n)
			n.Meta().IsSelected = false

			text, err := Print(doc)
			var incomplete *IncompleteNodeError
			require.True(t, errors.As(err, &incomplete), "printed %q", text)
			assert.Equal(t, tt.kind, incomplete.Kind)
			assert.Equal(t, tt.missing, incomplete.Missing)
			assert.Empty(t, text)
		})
	}

	// optional parts are simply left out
	doc, err := Parse(`query Foo { a: user { id } }`, "Foo")
	require.NoError(t, err)
	Find(doc, "Foo.definitions.0.selectionSet.selections.0.alias").Meta().IsSelected = false
	Find(doc, "Foo.definitions.0.name").Meta().IsSelected = false
	text, err := Print(doc)
	require.NoError(t, err)
	_, err = Parse(text, "Foo")
	assert.NoError(t, err)
}
