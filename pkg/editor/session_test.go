package editor

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nksaraf/magiql/pkg/cell"
	"github.com/nksaraf/magiql/pkg/gqlast"
	"github.com/nksaraf/magiql/pkg/logging"
)

const (
	fooQuery    = `query Foo { user { id name } }`
	rootSet     = "Foo.definitions.0.selectionSet"
	userPath    = "Foo.definitions.0.selectionSet.selections.0"
	userSet     = "Foo.definitions.0.selectionSet.selections.0.selectionSet"
	userIDPath  = "Foo.definitions.0.selectionSet.selections.0.selectionSet.selections.0"
	userNameSel = "Foo.definitions.0.selectionSet.selections.0.selectionSet.selections.1"
)

func newSession(t *testing.T, text string) *Session {
	t.Helper()
	s := New("Foo")
	require.NoError(t, s.SetText(text))
	return s
}

func flat(t *testing.T, s *Session) string {
	t.Helper()
	text, err := s.Text()
	require.NoError(t, err)
	return strings.Join(strings.Fields(text), " ")
}

func TestSession_DecomposeReconstruct(t *testing.T) {
	doc, err := gqlast.Parse(fooQuery, "Foo")
	require.NoError(t, err)

	s := New("Foo")
	empty, err := s.Reconstruct()
	require.NoError(t, err)
	assert.Nil(t, empty)

	require.NoError(t, s.Decompose(doc))
	got, err := s.Reconstruct()
	require.NoError(t, err)
	assert.Equal(t, doc, got)
	assert.NotEmpty(t, s.ID)
	assert.Equal(t, "Foo", s.Root())
}

func TestSession_RemoveScenario(t *testing.T) {
	s := newSession(t, fooQuery)

	require.NoError(t, s.RemoveSelection(userNameSel))
	assert.Equal(t, "query Foo { user { id } }", flat(t, s))

	// the removed node is still readable
	n, err := s.Node(userNameSel)
	require.NoError(t, err)
	require.NotNil(t, n)
	assert.Equal(t, "name", n.(*gqlast.Field).Name.Value)

	var notFound *NotFoundError
	require.True(t, errors.As(s.RemoveSelection(userNameSel), &notFound))
	require.True(t, errors.As(s.RemoveSelection(userPath+".name"), &notFound))
}

func TestSession_SetTextSyntaxError(t *testing.T) {
	s := newSession(t, fooQuery)

	err := s.SetText(`query Foo { user {`)
	var syntaxErr *gqlast.SyntaxError
	require.True(t, errors.As(err, &syntaxErr))
	assert.Equal(t, fooQuery, flat(t, s), "a failed parse leaves the document alone")
}

func TestSession_TextIndent(t *testing.T) {
	s := New("Foo", WithIndent("\t"))
	text, err := s.Text()
	require.NoError(t, err)
	assert.Empty(t, text)

	require.NoError(t, s.SetText(fooQuery))
	text, err = s.Text()
	require.NoError(t, err)
	assert.Contains(t, text, "\n\tuser {")
}

func TestSession_AddField(t *testing.T) {
	s := newSession(t, fooQuery)

	path, err := s.AddField(userSet, "email")
	require.NoError(t, err)
	assert.Equal(t, userSet+".selections.2", path)
	assert.Equal(t, "query Foo { user { id name email } }", flat(t, s))

	// a leaf field grows a selection set
	_, err = s.AddField(userIDPath+".selectionSet", "raw")
	require.NoError(t, err)
	assert.Equal(t, "query Foo { user { id { raw } name email } }", flat(t, s))

	var notFound *NotFoundError
	_, err = s.AddField("Foo.definitions.3.selectionSet", "x")
	require.True(t, errors.As(err, &notFound))
	_, err = s.AddField(userPath, "x")
	require.True(t, errors.As(err, &notFound))
}

func TestSession_AddSelectionReselectsSet(t *testing.T) {
	s := newSession(t, fooQuery)

	require.NoError(t, s.SetSelected(userSet, false))
	assert.Equal(t, "query Foo { user }", flat(t, s))

	_, err := s.AddFragmentSpread(userSet, "UserBits")
	require.NoError(t, err)
	assert.Equal(t, "query Foo { user { id name ... UserBits } }", flat(t, s))
}

func TestSession_Arguments(t *testing.T) {
	s := newSession(t, fooQuery)

	value, err := gqlast.ParseValue(`4`)
	require.NoError(t, err)
	_, err = s.AddArgument(userPath, "id", value)
	require.NoError(t, err)
	assert.Equal(t, "query Foo { user(id: 4) { id name } }", flat(t, s))

	path, err := s.AddArgument(userPath, "id", &gqlast.StringValue{Value: "u1"})
	require.NoError(t, err)
	assert.Equal(t, userPath+".arguments.0", path)
	assert.Equal(t, `query Foo { user(id: "u1") { id name } }`, flat(t, s))

	require.NoError(t, s.RemoveArgument(userPath, "id"))
	assert.Equal(t, fooQuery, flat(t, s))

	var notFound *NotFoundError
	require.True(t, errors.As(s.RemoveArgument(userPath, "id"), &notFound))
	_, err = s.AddArgument(rootSet, "id", value)
	require.True(t, errors.As(err, &notFound))
}

func TestSession_AddArgumentReusesUnselected(t *testing.T) {
	s := newSession(t, fooQuery)

	one, err := gqlast.ParseValue(`1`)
	require.NoError(t, err)
	first, err := s.AddArgument(userPath, "id", one)
	require.NoError(t, err)
	require.NoError(t, s.SetSelected(first, false))
	assert.Equal(t, fooQuery, flat(t, s))

	two, err := gqlast.ParseValue(`2`)
	require.NoError(t, err)
	second, err := s.AddArgument(userPath, "id", two)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, "query Foo { user(id: 2) { id name } }", flat(t, s))

	paths, err := cell.Get(s.store, s.proj.Paths(userPath+".arguments"))
	require.NoError(t, err)
	assert.Equal(t, []string{first}, paths)
}

func TestSession_AddFieldToLeafNotifiesOnce(t *testing.T) {
	s := newSession(t, fooQuery)
	var texts []string
	unsubscribe := s.Subscribe(func(doc *gqlast.Document) {
		text, err := gqlast.Print(doc)
		require.NoError(t, err)
		texts = append(texts, strings.Join(strings.Fields(text), " "))
	})
	defer unsubscribe()

	_, err := s.AddField(userIDPath+".selectionSet", "x")
	require.NoError(t, err)
	assert.Equal(t, []string{"query Foo { user { id { x } name } }"}, texts)
}

func TestSession_TextIncompleteNode(t *testing.T) {
	s := newSession(t, fooQuery)
	require.NoError(t, s.SetSelected(userIDPath+".name", false))

	_, err := s.Text()
	var incomplete *gqlast.IncompleteNodeError
	require.True(t, errors.As(err, &incomplete))
	assert.Equal(t, userIDPath, incomplete.Path)
	assert.Equal(t, gqlast.KindField, incomplete.Kind)
}

func TestSession_Remove(t *testing.T) {
	s := newSession(t, `query Foo { user(id: 1, first: 2) { id name } } fragment F on User { id }`)

	require.NoError(t, s.Remove("Foo.definitions.1"))
	require.NoError(t, s.Remove(userPath+".arguments.1"))
	require.NoError(t, s.Remove(userNameSel))
	assert.Equal(t, "query Foo { user(id: 1) { id } }", flat(t, s))

	var notFound *NotFoundError
	require.True(t, errors.As(s.Remove("Foo.definitions.1"), &notFound))
	assert.Equal(t, "definition", notFound.What)
	require.True(t, errors.As(s.Remove(userSet), &notFound))
	assert.Equal(t, "list item", notFound.What)
}

func TestSession_Subscribe(t *testing.T) {
	s := New("Foo")
	var docs []*gqlast.Document
	unsubscribe := s.Subscribe(func(doc *gqlast.Document) { docs = append(docs, doc) })
	defer unsubscribe()

	require.NoError(t, s.SetText(fooQuery))
	require.Len(t, docs, 1)

	var fields []gqlast.Node
	stop := s.SubscribeNode(userPath, func(n gqlast.Node) { fields = append(fields, n) })
	defer stop()

	_, err := s.AddField(userSet, "email")
	require.NoError(t, err)
	assert.Len(t, docs, 2)
	require.Len(t, fields, 1)
	assert.Len(t, fields[0].(*gqlast.Field).SelectionSet.Selections, 3)

	require.NoError(t, s.SetText(fooQuery+" "))
	assert.Len(t, docs, 3, "re-parsing drops the appended field")
	require.NoError(t, s.SetText(fooQuery))
	assert.Len(t, docs, 3, "same text, no change")
}

func TestSession_Nodes(t *testing.T) {
	s := newSession(t, fooQuery)
	require.NoError(t, s.SetSelected(userNameSel, false))

	nodes, err := s.Nodes()
	require.NoError(t, err)

	byPath := make(map[string]NodeInfo, len(nodes))
	for _, n := range nodes {
		byPath[n.Path] = n
	}
	require.Contains(t, byPath, "Foo")
	assert.Equal(t, gqlast.KindDocument, byPath["Foo"].Kind)
	assert.Equal(t, 0, byPath["Foo"].Depth)

	user := byPath[userPath]
	assert.Equal(t, gqlast.KindField, user.Kind)
	assert.Equal(t, "user", user.Name)
	assert.True(t, user.IsSelected)

	name := byPath[userNameSel]
	assert.Equal(t, "name", name.Name)
	assert.False(t, name.IsSelected)

	SortByDepth(nodes)
	assert.Equal(t, "Foo", nodes[0].Path)
}

func TestSession_Match(t *testing.T) {
	s := newSession(t, fooQuery)

	nodes, err := s.Match("Foo.**.selections.*")
	require.NoError(t, err)
	var names []string
	for _, n := range nodes {
		names = append(names, n.Name)
	}
	assert.ElementsMatch(t, []string{"user", "id", "name"}, names)

	nodes, err = s.Match(userSet + ".selections.*")
	require.NoError(t, err)
	assert.Len(t, nodes, 2)

	_, err = s.Match("Foo.[")
	assert.Error(t, err)
}

func TestSession_Filter(t *testing.T) {
	s := newSession(t, fooQuery)
	require.NoError(t, s.RemoveSelection(userNameSel))
	require.NoError(t, s.SetSelected(userNameSel, false))

	tests := []struct {
		expression string
		want       []string
	}{
		{`kind == "Field"`, []string{"user", "id", "name"}},
		{`kind == "Field" && isSelected`, []string{"user", "id"}},
		{`kind == "Field" && depth > 5`, []string{"id", "name"}},
		{`kind == "OperationDefinition" && name == "Foo"`, []string{"Foo"}},
	}
	for _, tt := range tests {
		t.Run(tt.expression, func(t *testing.T) {
			nodes, err := s.Filter(tt.expression)
			require.NoError(t, err)
			var names []string
			for _, n := range nodes {
				names = append(names, n.Name)
			}
			assert.ElementsMatch(t, tt.want, names)
		})
	}

	_, err := s.Filter(`kind ==`)
	assert.Error(t, err)
	_, err = s.Filter(`depth + 1`)
	assert.Error(t, err, "non-boolean expressions are rejected")
}

func TestSession_Compact(t *testing.T) {
	metrics := cell.NewMetricsObserver()
	var logs bytes.Buffer
	logger := logging.New(logging.Config{Level: logging.LevelDebug, Output: &logs})

	s := New("Foo", WithObserver(metrics), WithLogger(logger))
	require.NoError(t, s.SetText(`query Foo { user { id name friends { id } } }`))
	require.NoError(t, s.RemoveSelection(userSet+".selections.2"))

	dropped, err := s.Compact()
	require.NoError(t, err)
	assert.Positive(t, dropped)
	assert.Equal(t, "query Foo { user { id name } }", flat(t, s))

	assert.Positive(t, metrics.Snapshot().SetCount)
	assert.Contains(t, logs.String(), "store compacted")
	assert.Contains(t, logs.String(), "session="+s.ID)
}
