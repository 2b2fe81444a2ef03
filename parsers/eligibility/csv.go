// csv.go renders parsed eligibility records as delimited text, one CSV line
// per logical record, with the expanded column names as the header row.

package eligibility

import (
	"encoding/csv"
	"fmt"
	"io"
)

// WriteCSV parses src and writes one CSV line per record to w, preceded by
// a header line listing the expanded column names. Fields are quote-escaped
// per standard CSV rules. An empty input produces just the header line.
func (d *Dictionary) WriteCSV(src SegmentSource, w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(d.columns); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}
	err := d.Parse(src, func(row Row) error {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing CSV row: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}

// Rows parses src and collects every record into memory. Convenient for
// small files and the xlsx path; large files should stream via Parse.
func (d *Dictionary) Rows(src SegmentSource) ([]Row, error) {
	var rows []Row
	err := d.Parse(src, func(row Row) error {
		rows = append(rows, row)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}
