// Package gqlast defines the GraphQL executable-document tree used by the
// projection layer, plus conversion to and from gqlparser documents.
//
// Every grammar category is a closed sum type: Definition, Selection, Value
// and Type are interfaces sealed by unexported marker methods, so a type
// switch over their implementations is exhaustive.
//
// Every node carries Metadata. Its Path is the node's identity and is built
// from the parent path and the key the node hangs off:
//
//	Foo                                           Document
//	Foo.definitions.0                             OperationDefinition
//	Foo.definitions.0.name                        Name
//	Foo.definitions.0.selectionSet                SelectionSet
//	Foo.definitions.0.selectionSet.selections.0   Field
//
// Parse and Print delegate to gqlparser's parser and formatter. Paths are not
// canonicalized; callers must keep them collision-free.
package gqlast
