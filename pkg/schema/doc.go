// Package schema answers the schema questions a query builder asks about a
// document held in the store: which type is selected at a path, and which of
// its fields are or could be selected there. The store itself never consults
// a schema.
package schema
