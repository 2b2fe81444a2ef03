// Package eligibility registers the 384 eligibility file converter: it
// detects separator-delimited eligibility content and converts it to CSV
// and an Excel workbook using the default segment dictionary.
package eligibility

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/roadmaphealthcare/ediot/formats"
	parser "github.com/roadmaphealthcare/ediot/parsers/eligibility"
)

type converter struct{}

func init() {
	formats.Register(converter{})
}

func (converter) Name() string { return "384 Eligibility File" }

func (converter) Extensions() []string {
	return []string{".384", ".edi", ".eli"}
}

// Match sniffs the first segment: delimited eligibility content starts
// with the record header key (INS*) or an interchange envelope (ISA*).
// Delimiterless files are picked up by the extension fallback instead,
// since a bare INS prefix also matches ordinary prose.
func (converter) Match(data []byte) bool {
	head := data
	if len(head) > 16 {
		head = head[:16]
	}
	trimmed := bytes.TrimLeft(head, " \t\r\n")
	return bytes.HasPrefix(trimmed, []byte("INS*")) ||
		bytes.HasPrefix(trimmed, []byte("ISA*"))
}

// Convert parses the file with the default dictionary and returns a CSV
// table plus an xlsx workbook of the same rows.
func (converter) Convert(data []byte) ([]formats.ConvertedFile, error) {
	dict, err := parser.GetDictionary(parser.DefaultDictionaryKey)
	if err != nil {
		return nil, err
	}

	var csvBuf bytes.Buffer
	if err := dict.WriteCSV(parser.NewSegmentScanner(bytes.NewReader(data)), &csvBuf); err != nil {
		return nil, fmt.Errorf("converting to CSV: %w", err)
	}

	xlsxData, err := dict.WriteExcel(parser.NewSegmentScanner(bytes.NewReader(data)))
	if err != nil {
		return nil, fmt.Errorf("converting to Excel: %w", err)
	}

	return []formats.ConvertedFile{
		{
			Name:     "eligibility.csv",
			Data:     csvBuf.Bytes(),
			MimeType: "text/csv",
			Category: "table",
		},
		{
			Name:     "eligibility.xlsx",
			Data:     xlsxData,
			MimeType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
			Category: "workbook",
		},
	}, nil
}

// Summary parses the file and reports record and per-segment counts, for
// the CLI view command.
func Summary(data []byte) (records int, segments map[string]int, err error) {
	dict, err := parser.GetDictionary(parser.DefaultDictionaryKey)
	if err != nil {
		return 0, nil, err
	}
	segments = make(map[string]int)
	cols := dict.Columns()
	err = dict.Parse(parser.NewSegmentScanner(bytes.NewReader(data)), func(row parser.Row) error {
		records++
		for i, value := range row {
			if value != "" {
				segments[columnBase(cols[i])]++
			}
		}
		return nil
	})
	if err != nil {
		return 0, nil, err
	}
	return records, segments, nil
}

// columnBase strips the positional suffix from an expanded column name
// (REF_2 -> REF).
func columnBase(col string) string {
	if i := strings.LastIndexByte(col, '_'); i > 0 {
		return col[:i]
	}
	return col
}
