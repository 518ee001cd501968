// Package editor keeps a GraphQL document in a reactive store and edits it in
// place.
//
// A Session owns a cell.Store and a projection rooted at one path. Text is
// parsed with gqlparser, decomposed into per-path cells, and printed back
// from whatever the cells currently hold:
//
//	s := editor.New("Foo")
//	_ = s.SetText(`query Foo { user { id name } }`)
//	_ = s.RemoveSelection("Foo.definitions.0.selectionSet.selections.0.selectionSet.selections.1")
//	text, _ := s.Text() // query Foo { user { id } }
//
// Removed and unselected nodes keep their cells, so SetSelected can bring
// them back; Compact reclaims the cells of removed nodes. Nodes, Match and
// Filter list the nodes in the store by path glob or by expression.
package editor
