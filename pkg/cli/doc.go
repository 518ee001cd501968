// Package cli provides the command-line interface for magiql.
//
// Every command loads a document into an editor session and works on the
// store through node paths:
//   - fmt: Round-trip a document through the store and print it
//   - tree: List node paths, filtered by glob (--match) or expression (--where)
//   - remove: Remove list items such as selections and arguments
//   - add: Add a field or fragment spread, with arguments
//   - fields: List the schema fields selectable at a path
//   - watch: Re-sync the store on every save of a file
//   - version: Show magiql version
//
// Configuration is resolved by pkg/cliconfig with precedence
// flags > env > local file > global file > defaults.
package cli
