// dictionary.go implements the segment dictionary: an ordered, immutable
// mapping from segment key to payload width and occurrence limit. The first
// declared key is the record header; declaration order defines the output
// column order.

package eligibility

import (
	"encoding/json"
	"fmt"
)

// Dictionary is the sole configuration input of the parser. Construct one
// with NewDictionary and treat it as read-only afterwards.
type Dictionary struct {
	defs    []SegmentDefinition
	index   map[string]int // key -> position in defs
	columns []string       // expanded column names
	offsets map[string]int // key -> first column slot
}

// NewDictionary builds a dictionary from segment definitions in declaration
// order. The first definition's key becomes the record header. Duplicate
// keys, empty keys, and negative widths are rejected.
func NewDictionary(defs ...SegmentDefinition) (*Dictionary, error) {
	if len(defs) == 0 {
		return nil, fmt.Errorf("dictionary needs at least one segment definition")
	}
	d := &Dictionary{
		defs:    make([]SegmentDefinition, len(defs)),
		index:   make(map[string]int, len(defs)),
		offsets: make(map[string]int, len(defs)),
	}
	copy(d.defs, defs)
	for i := range d.defs {
		def := &d.defs[i]
		if def.Key == "" {
			return nil, fmt.Errorf("segment definition %d has an empty key", i)
		}
		if def.Width < 0 {
			return nil, fmt.Errorf("segment %s has negative width %d", def.Key, def.Width)
		}
		if def.Occurs < 1 {
			def.Occurs = 1
		}
		if _, dup := d.index[def.Key]; dup {
			return nil, fmt.Errorf("duplicate segment key: %s", def.Key)
		}
		d.index[def.Key] = i
		d.offsets[def.Key] = len(d.columns)
		if def.Occurs == 1 {
			d.columns = append(d.columns, def.Key)
			continue
		}
		for n := 1; n <= def.Occurs; n++ {
			d.columns = append(d.columns, fmt.Sprintf("%s_%d", def.Key, n))
		}
	}
	return d, nil
}

// HeaderKey returns the segment key that starts a new logical record.
func (d *Dictionary) HeaderKey() string {
	return d.defs[0].Key
}

// Columns returns the ordered output column names, one per payload slot,
// with repeated segment types expanded (e.g. REF_1..REF_5). The returned
// slice is a copy.
func (d *Dictionary) Columns() []string {
	cols := make([]string, len(d.columns))
	copy(cols, d.columns)
	return cols
}

// Definitions returns a copy of the segment definitions in declaration order.
func (d *Dictionary) Definitions() []SegmentDefinition {
	defs := make([]SegmentDefinition, len(d.defs))
	copy(defs, d.defs)
	return defs
}

// classify resolves a raw segment to its dictionary entry. The key is the
// token before the first element delimiter when that token is declared;
// otherwise the longest declared key that prefixes the segment wins. The
// second return is false for segment types outside the dictionary.
func (d *Dictionary) classify(seg string) (*SegmentDefinition, bool) {
	for i := 0; i < len(seg); i++ {
		if seg[i] == elementDelimiter {
			if at, ok := d.index[seg[:i]]; ok {
				return &d.defs[at], true
			}
			break
		}
	}
	best := -1
	for key, at := range d.index {
		if len(seg) >= len(key) && seg[:len(key)] == key {
			if best < 0 || len(key) > len(d.defs[best].Key) {
				best = at
			}
		}
	}
	if best < 0 {
		return nil, false
	}
	return &d.defs[best], true
}

// Dictionaries contains the built-in segment dictionaries, keyed by name.
var Dictionaries = map[string][]SegmentDefinition{
	"384": {
		{Key: "INS", Width: 60, Occurs: 1, Description: "Member level detail (record header)"},
		{Key: "REF", Width: 30, Occurs: 5, Description: "Reference identification"},
		{Key: "DTP", Width: 35, Occurs: 3, Description: "Date or time period"},
		{Key: "NM1", Width: 66, Occurs: 2, Description: "Individual or organization name"},
		{Key: "PER", Width: 60, Occurs: 1, Description: "Administrative communications contact"},
		{Key: "N3", Width: 55, Occurs: 1, Description: "Street address"},
		{Key: "N4", Width: 50, Occurs: 1, Description: "City, state, ZIP"},
		{Key: "DMG", Width: 30, Occurs: 1, Description: "Demographics"},
		{Key: "HD", Width: 40, Occurs: 10, Description: "Health coverage"},
		{Key: "AMT", Width: 15, Occurs: 2, Description: "Monetary amount"},
	},
	"834_basic": {
		{Key: "INS", Width: 60, Occurs: 1, Description: "Member level detail (record header)"},
		{Key: "REF", Width: 30, Occurs: 3, Description: "Subscriber identifier"},
		{Key: "NM1", Width: 66, Occurs: 1, Description: "Member name"},
		{Key: "DMG", Width: 30, Occurs: 1, Description: "Demographics"},
		{Key: "HD", Width: 40, Occurs: 4, Description: "Health coverage"},
	},
}

// DefaultDictionaryKey names the dictionary used when the caller does not
// pick one explicitly.
const DefaultDictionaryKey = "384"

// GetDictionary builds the built-in dictionary registered under key, or
// returns an error if the key is unknown.
func GetDictionary(key string) (*Dictionary, error) {
	defs, ok := Dictionaries[key]
	if !ok {
		return nil, fmt.Errorf("dictionary not found: %s", key)
	}
	return NewDictionary(defs...)
}

// DictionaryList returns the built-in dictionary keys and a short
// description of each (the header segment's description).
func DictionaryList() map[string]string {
	list := make(map[string]string, len(Dictionaries))
	for key, defs := range Dictionaries {
		list[key] = defs[0].Description
	}
	return list
}

// LoadCustomDictionary parses a JSON dictionary definition: an ordered
// array of segment definitions, first entry being the record header.
func LoadCustomDictionary(jsonData []byte) (*Dictionary, error) {
	var defs []SegmentDefinition
	if err := json.Unmarshal(jsonData, &defs); err != nil {
		return nil, fmt.Errorf("parsing dictionary JSON: %w", err)
	}
	return NewDictionary(defs...)
}
