// decoder.go implements the record-grouping state machine, the fixed-width
// field decoder, and the pivot from buffered segments to one output row.

package eligibility

import (
	"io"
)

// rawSegment is one buffered input segment with its resolved definition.
type rawSegment struct {
	text string
	def  *SegmentDefinition
}

// decodeField extracts the fixed-width payload of a raw segment: the width
// bytes immediately after the segment key. Purely positional; no trimming,
// no padding. A segment shorter than key+width fails the parse.
func decodeField(seg rawSegment) (string, error) {
	start := len(seg.def.Key)
	end := start + seg.def.Width
	if len(seg.text) < end {
		return "", &MalformedSegmentError{
			Key:    seg.def.Key,
			Width:  seg.def.Width,
			Length: len(seg.text),
		}
	}
	return seg.text[start:end], nil
}

// assemble pivots the buffered segments of one record into a row sized to
// the dictionary's expanded column list. Instances of a segment type fill
// its slots in arrival order; occurrences past the declared limit are
// dropped. Slots with no matching segment stay empty.
func (d *Dictionary) assemble(buf []rawSegment) (Row, error) {
	row := make(Row, len(d.columns))
	seen := make(map[string]int, len(d.index))
	for _, seg := range buf {
		n := seen[seg.def.Key]
		if n >= seg.def.Occurs {
			continue // first N occurrences win
		}
		value, err := decodeField(seg)
		if err != nil {
			return nil, err
		}
		row[d.offsets[seg.def.Key]+n] = value
		seen[seg.def.Key] = n + 1
	}
	return row, nil
}

// Parse pulls segments from src, groups them into logical records bounded
// by the header segment type, and invokes fn once per record, in input
// order, before pulling further segments. Segments with keys outside the
// dictionary are skipped; known non-header segments seen before the first
// header are discarded. A trailing record at end of input is flushed. Any
// error from fn, from src, or from decoding aborts the parse and is
// returned as-is.
func (d *Dictionary) Parse(src SegmentSource, fn func(Row) error) error {
	if fn == nil {
		return ErrNilCallback
	}
	header := d.HeaderKey()
	var buf []rawSegment
	collecting := false

	flush := func() error {
		if len(buf) == 0 {
			return nil
		}
		row, err := d.assemble(buf)
		if err != nil {
			return err
		}
		return fn(row)
	}

	for {
		text, err := src.Next()
		if err == io.EOF {
			return flush()
		}
		if err != nil {
			return err
		}
		def, known := d.classify(text)
		if !known {
			continue
		}
		if def.Key == header {
			if err := flush(); err != nil {
				return err
			}
			buf = buf[:0]
			collecting = true
		} else if !collecting {
			continue // stray segment before the first header
		}
		buf = append(buf, rawSegment{text: text, def: def})
	}
}

// ParseMap is Parse with each row zipped against the expanded column names
// into a key to value mapping. Intended for tests and ad-hoc inspection.
func (d *Dictionary) ParseMap(src SegmentSource, fn func(map[string]string) error) error {
	if fn == nil {
		return ErrNilCallback
	}
	return d.Parse(src, func(row Row) error {
		m := make(map[string]string, len(d.columns))
		for i, col := range d.columns {
			m[col] = row[i]
		}
		return fn(m)
	})
}
