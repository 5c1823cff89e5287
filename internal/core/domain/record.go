package domain

import "time"

// PostDateLayout is the textual format of the source post_date column.
const PostDateLayout = "2006-01-02 15:04:05"

// KeySize is the byte width of a store key.
const KeySize = 8

// SentinelTimestamp is substituted when a post date cannot be parsed.
// It is epoch zero, which encodes to an all-zero key.
var SentinelTimestamp = time.Unix(0, 0).UTC()

// SourceRow holds the column values of one source row exactly as the
// database driver returned them. Drivers differ: MySQL returns []byte
// for every column, SQLite and Postgres return int64, string or time.Time.
type SourceRow struct {
	// ID is the post identifier column.
	ID any

	// PostDate is the post_date column.
	PostDate any

	// Content is the post_content column.
	Content any

	// Title is the post_title column.
	Title any
}

// Record is a single post ready for migration.
// Every field is populated once constructed; a malformed date yields
// SentinelTimestamp rather than an empty Timestamp.
type Record struct {
	// ID is the source identifier. It is unique within a table only
	// and is kept for diagnostics.
	ID int64

	// Table is the source table the row was read from.
	Table string

	// RawDate is the post_date text as stored at the source.
	RawDate string

	// Timestamp is RawDate parsed as UTC, or SentinelTimestamp.
	Timestamp time.Time

	// Content is the payload written to the store.
	Content string

	// Title is used in diagnostics only; it is not persisted.
	Title string
}

// HasSentinelDate reports whether the record's date failed to parse.
func (r Record) HasSentinelDate() bool {
	return r.Timestamp.Equal(SentinelTimestamp)
}

// StoreEntry is a key/value pair in the ordered store.
type StoreEntry struct {
	// Key is the little-endian encoding of the Unix timestamp.
	Key []byte

	// Value is the raw content bytes.
	Value []byte
}
