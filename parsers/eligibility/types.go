// Package eligibility implements a 384 eligibility file to flat-row parser.
// An eligibility file is a stream of separator-delimited segments (INS, REF,
// NM1, ...); a segment dictionary declares, per segment type, the width of
// its fixed-size payload and how many times it may repeat within one logical
// record. Consecutive segments are grouped into records bounded by the
// dictionary's header segment type and pivoted into one output row per
// record, with a stable column layout derived from the dictionary alone.
package eligibility

import (
	"errors"
	"fmt"
)

// SegmentDefinition declares one segment type: its key, the width of its
// fixed-size payload, and the maximum number of occurrences within one
// logical record. A zero Occurs is treated as 1.
type SegmentDefinition struct {
	Key         string `json:"key"`
	Width       int    `json:"width"`
	Occurs      int    `json:"occurs"`
	Description string `json:"description"` // Optional field description
}

// Row is one pivoted output record: one slot per expanded dictionary
// column, in dictionary order. Slots for segments absent from the source
// record are empty strings.
type Row []string

// SegmentSource produces segments one at a time, each already stripped of
// its trailing separator. Next returns io.EOF when the input is exhausted;
// any other error aborts the parse. Sources are finite and not restartable.
type SegmentSource interface {
	Next() (string, error)
}

// ErrNilCallback is returned by Parse and its variants when no per-record
// callback is supplied.
var ErrNilCallback = errors.New("eligibility: nil record callback")

// MalformedSegmentError reports a raw segment too short for its declared
// payload width. The parse aborts; short segments are never padded.
type MalformedSegmentError struct {
	Key    string // segment type key
	Width  int    // declared payload width
	Length int    // actual length of the raw segment, key included
}

func (e *MalformedSegmentError) Error() string {
	return fmt.Sprintf("eligibility: malformed %s segment: %d bytes, need %d",
		e.Key, e.Length, len(e.Key)+e.Width)
}
