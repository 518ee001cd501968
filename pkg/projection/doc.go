// Package projection stores GraphQL documents in a cell.Store, one cell per
// field of every node, addressed by path.
//
// Each node kind has a writable derived family. Reading the family at a path
// assembles the node from the cells beneath it; writing a node stamps its
// metadata and fans its fields out into those cells. Writing nil only clears
// the selected flag, so a node's cells outlive its removal and the node can be
// brought back with SetSelected.
//
// Paths follow the node structure:
//
//	Foo                                          document
//	Foo.definitions                              definition list
//	Foo.definitions.0                            operation
//	Foo.definitions.0.selectionSet.selections.1  second top-level selection
//	Foo.definitions.0.name.value                 string leaf
//
// Collections keep an ordered list of item paths at the collection path.
// Removing an item drops it from that list and nothing else; Compact
// reclaims the cells of removed items.
package projection
