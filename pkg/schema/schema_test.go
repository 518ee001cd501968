package schema

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vektah/gqlparser/v2/ast"

	"github.com/nksaraf/magiql/pkg/gqlast"
)

const testSchema = `
type Query {
	user(id: ID!): User
	users(first: Int, role: Role): [User!]!
	search(term: String!): [SearchResult!]!
	node(id: ID!): Node
}

type Mutation {
	createUser(name: String!): User
	deleteUser(id: ID!): Boolean!
}

type Subscription {
	userCreated: User
}

interface Node {
	id: ID!
}

"A person with an account."
type User implements Node {
	id: ID!
	name: String!
	role: Role!
	"Posts written by the user."
	posts(first: Int): [Post!]!
}

type Post implements Node {
	id: ID!
	title: String!
	author: User!
}

union SearchResult = User | Post

enum Role {
	ADMIN
	USER
}

scalar DateTime
`

func mustSchema(t *testing.T) *Schema {
	t.Helper()
	s, err := ParseSchema(testSchema)
	require.NoError(t, err)
	return s
}

func mustDoc(t *testing.T, text string) *gqlast.Document {
	t.Helper()
	doc, err := gqlast.Parse(text, "Q")
	require.NoError(t, err)
	return doc
}

func TestParseSchema(t *testing.T) {
	s := mustSchema(t)

	assert.Equal(t, []string{"node", "search", "user", "users"}, s.ListQueries())
	assert.Equal(t, []string{"createUser", "deleteUser"}, s.ListMutations())
	assert.Equal(t, []string{"userCreated"}, s.ListSubscriptions())
	assert.Equal(t, testSchema, s.Source())
	assert.NotNil(t, s.AST())
	assert.NoError(t, s.Validate())

	assert.NotNil(t, s.RootField(gqlast.OperationQuery, "user"))
	assert.Nil(t, s.RootField(gqlast.OperationMutation, "user"))
	assert.Equal(t, "Mutation", s.RootType(gqlast.OperationMutation).Name)
}

func TestParseSchema_Invalid(t *testing.T) {
	_, err := ParseSchema(`type Query { user: Missing }`)
	assert.Error(t, err)
}

func TestParseSchemaFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schema.graphql")
	require.NoError(t, os.WriteFile(path, []byte(testSchema), 0o644))

	s, err := ParseSchemaFile(path)
	require.NoError(t, err)
	assert.NotNil(t, s.GetType("User"))

	_, err = ParseSchemaFile(filepath.Join(t.TempDir(), "missing.graphql"))
	assert.Error(t, err)
}

func TestValidate_NoQueryFields(t *testing.T) {
	s, err := ParseSchema(`type Query { _unused: Int } type Mutation { ping: Boolean }`)
	require.NoError(t, err)
	assert.NoError(t, s.Validate())

	s.roots[gqlast.OperationQuery] = nil
	assert.Error(t, s.Validate())
}

func TestSchemaTypes(t *testing.T) {
	s := mustSchema(t)

	assert.Equal(t, []string{"Role"}, s.ListTypes(ast.Enum))
	assert.Contains(t, s.ListTypes(ast.Object), "User")
	assert.Contains(t, s.ListTypes(), "DateTime")

	assert.True(t, s.IsLeafType("ID"))
	assert.True(t, s.IsLeafType("Role"))
	assert.True(t, s.IsLeafType("DateTime"))
	assert.False(t, s.IsLeafType("User"))

	assert.Equal(t, []string{"ADMIN", "USER"}, s.EnumValues("Role"))
	assert.Nil(t, s.EnumValues("User"))

	assert.Equal(t, []string{"Post", "User"}, s.PossibleTypes("SearchResult"))
	assert.Equal(t, []string{"Post", "User"}, s.PossibleTypes("Node"))
	assert.Nil(t, s.PossibleTypes("User"))

	assert.NotNil(t, s.GetField("User", "posts"))
	assert.Nil(t, s.GetField("User", "missing"))
	assert.Nil(t, s.GetField("Missing", "id"))
}

func TestTypeAt(t *testing.T) {
	s := mustSchema(t)
	doc := mustDoc(t, `query Q {
		user(id: 1) { id posts { title } }
		search(term: "x") { ... on Post { author { name } } }
	}
	fragment Bits on User { role }`)

	const (
		op     = "Q.definitions.0"
		user   = op + ".selectionSet.selections.0"
		posts  = user + ".selectionSet.selections.1"
		search = op + ".selectionSet.selections.1"
		onPost = search + ".selectionSet.selections.0"
		author = onPost + ".selectionSet.selections.0"
	)

	tests := []struct {
		path string
		want string
	}{
		{op, "Query"},
		{op + ".selectionSet", "Query"},
		{user, "User"},
		{user + ".selectionSet", "User"},
		{posts, "Post"},
		{search, "SearchResult"},
		{onPost, "Post"},
		{author, "User"},
		{"Q.definitions.1", "User"},
		{user + ".selectionSet.selections.0", "ID"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			def, err := s.TypeAt(doc, tt.path)
			require.NoError(t, err)
			require.NotNil(t, def)
			assert.Equal(t, tt.want, def.Name)
		})
	}

	var notFound *PathNotFoundError
	_, err := s.TypeAt(doc, "Q.definitions.7")
	assert.True(t, errors.As(err, &notFound))
}

func TestTypeAt_Errors(t *testing.T) {
	s := mustSchema(t)

	_, err := s.TypeAt(mustDoc(t, `query Q { user(id: 1) { nope { id } } }`),
		"Q.definitions.0.selectionSet.selections.0.selectionSet.selections.0")
	var unknownField *UnknownFieldError
	require.True(t, errors.As(err, &unknownField))
	assert.Equal(t, "User", unknownField.Type)
	assert.Equal(t, "nope", unknownField.Field)

	_, err = s.TypeAt(mustDoc(t, `fragment F on Ghost { id }`), "Q.definitions.0")
	var unknownType *UnknownTypeError
	require.True(t, errors.As(err, &unknownType))
	assert.Equal(t, "Ghost", unknownType.Name)
}

func TestSuggest(t *testing.T) {
	s := mustSchema(t)
	doc := mustDoc(t, `query Q { user(id: 1) { id name } search(term: "x") { ... on User { id } } }`)

	const user = "Q.definitions.0.selectionSet.selections.0"
	suggestions, err := s.Suggest(doc, user)
	require.NoError(t, err)

	byName := make(map[string]Suggestion)
	for _, sg := range suggestions {
		byName[sg.Name] = sg
	}
	require.Len(t, byName, 4)
	assert.True(t, byName["id"].Selected)
	assert.Equal(t, user+".selectionSet.selections.0", byName["id"].Path)
	assert.True(t, byName["name"].Selected)
	assert.False(t, byName["role"].Selected)
	assert.True(t, byName["role"].Leaf)

	posts := byName["posts"]
	assert.False(t, posts.Leaf)
	assert.Equal(t, "[Post!]!", posts.Type)
	assert.Equal(t, []string{"first: Int"}, posts.Arguments)
	assert.Equal(t, "Posts written by the user.", posts.Description)

	const search = "Q.definitions.0.selectionSet.selections.1"
	suggestions, err = s.Suggest(doc, search)
	require.NoError(t, err)
	require.Len(t, suggestions, 2)
	assert.Equal(t, Suggestion{Name: "Post", Fragment: true}, suggestions[0])
	assert.True(t, suggestions[1].Fragment)
	assert.True(t, suggestions[1].Selected)
	assert.Equal(t, search+".selectionSet.selections.0", suggestions[1].Path)
}

func TestSuggest_SkipsUnselected(t *testing.T) {
	s := mustSchema(t)
	doc := mustDoc(t, `query Q { user(id: 1) { id name } }`)

	set := doc.Definitions[0].(*gqlast.OperationDefinition).SelectionSet.Selections[0].(*gqlast.Field).SelectionSet
	set.Selections[1].Meta().IsSelected = false

	suggestions, err := s.Suggest(doc, "Q.definitions.0.selectionSet.selections.0.selectionSet")
	require.NoError(t, err)
	for _, sg := range suggestions {
		if sg.Name == "name" {
			assert.False(t, sg.Selected)
		}
	}
}

func TestValidateDocument(t *testing.T) {
	s := mustSchema(t)

	assert.NoError(t, s.ValidateDocument(mustDoc(t, `query Q { user(id: 1) { id name } }`)))
	assert.Error(t, s.ValidateDocument(mustDoc(t, `query Q { user(id: 1) { nope } }`)))
	assert.Error(t, s.ValidateDocument(mustDoc(t, `query Q { user { id } }`)), "missing required argument")
}
