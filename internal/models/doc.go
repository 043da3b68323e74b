// Package models defines the domain types persisted by folio.
//
// The JSON encoding of these types is the on-disk format: field names are
// the snake_case attribute names, timestamps are RFC 3339 and optional
// fields serialize as null.
package models
