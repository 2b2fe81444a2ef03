package eligibility

import (
	"errors"
	"strings"
	"testing"
)

// testDictionary builds the two-segment layout used throughout these tests:
// HDR carries a 3-byte payload and starts each record, LN carries a 2-byte
// payload and may repeat twice.
func testDictionary(t *testing.T) *Dictionary {
	t.Helper()
	d, err := NewDictionary(
		SegmentDefinition{Key: "HDR", Width: 3},
		SegmentDefinition{Key: "LN", Width: 2, Occurs: 2},
	)
	if err != nil {
		t.Fatalf("NewDictionary: %v", err)
	}
	return d
}

func collectRows(t *testing.T, d *Dictionary, segs []string) []Row {
	t.Helper()
	rows, err := d.Rows(Segments(segs))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return rows
}

func rowsEqual(a, b Row) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestParseTwoRecords(t *testing.T) {
	d := testDictionary(t)
	rows := collectRows(t, d, []string{"HDR123", "LN01", "LN02", "HDR456", "LN03"})
	want := []Row{
		{"123", "01", "02"},
		{"456", "03", ""},
	}
	if len(rows) != len(want) {
		t.Fatalf("got %d rows, want %d", len(rows), len(want))
	}
	for i := range want {
		if !rowsEqual(rows[i], want[i]) {
			t.Errorf("row %d = %v, want %v", i, rows[i], want[i])
		}
	}
}

func TestParseFromScanner(t *testing.T) {
	d := testDictionary(t)
	src := NewSegmentScanner(strings.NewReader("HDR123~LN01~LN02~HDR456~LN03~"))
	rows, err := d.Rows(src)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	if !rowsEqual(rows[1], Row{"456", "03", ""}) {
		t.Errorf("row 1 = %v", rows[1])
	}
}

// Space-padded payloads survive the splitter intact: a field whose last
// bytes are spaces decodes at full width instead of failing or shifting.
func TestSpacePaddedPayload(t *testing.T) {
	d := testDictionary(t)
	src := NewSegmentScanner(strings.NewReader("HDR12 ~LN3 ~\nHDR 4 ~"))
	rows, err := d.Rows(src)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	want := []Row{
		{"12 ", "3 ", ""},
		{" 4 ", "", ""},
	}
	if len(rows) != len(want) {
		t.Fatalf("got %d rows, want %d", len(rows), len(want))
	}
	for i := range want {
		if !rowsEqual(rows[i], want[i]) {
			t.Errorf("row %d = %q, want %q", i, rows[i], want[i])
		}
	}
}

func TestSegmentBeforeFirstHeaderDiscarded(t *testing.T) {
	d := testDictionary(t)
	rows := collectRows(t, d, []string{"LN99", "HDR123", "LN01"})
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows))
	}
	if !rowsEqual(rows[0], Row{"123", "01", ""}) {
		t.Errorf("row 0 = %v, want [123 01 ]", rows[0])
	}
}

func TestEmptyInput(t *testing.T) {
	d := testDictionary(t)
	calls := 0
	err := d.Parse(Segments(nil), func(Row) error {
		calls++
		return nil
	})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if calls != 0 {
		t.Errorf("callback invoked %d times on empty input", calls)
	}
}

// Column stability: every row has one slot per expanded column no matter
// which segments the source record contained.
func TestColumnStability(t *testing.T) {
	d := testDictionary(t)
	inputs := [][]string{
		{"HDR123"},
		{"HDR123", "LN01"},
		{"HDR123", "LN01", "LN02"},
	}
	for _, segs := range inputs {
		rows := collectRows(t, d, segs)
		for _, row := range rows {
			if len(row) != len(d.Columns()) {
				t.Errorf("input %v: row has %d slots, want %d", segs, len(row), len(d.Columns()))
			}
		}
	}
}

// Unknown segment types are filtering, not failure: inserting them anywhere
// leaves the emitted rows unchanged.
func TestUnknownSegmentsIgnored(t *testing.T) {
	d := testDictionary(t)
	base := collectRows(t, d, []string{"HDR123", "LN01", "HDR456"})
	noisy := collectRows(t, d, []string{"ZZZjunk", "HDR123", "XXnoise", "LN01", "HDR456", "QQQ"})
	if len(base) != len(noisy) {
		t.Fatalf("row counts differ: %d vs %d", len(base), len(noisy))
	}
	for i := range base {
		if !rowsEqual(base[i], noisy[i]) {
			t.Errorf("row %d differs: %v vs %v", i, base[i], noisy[i])
		}
	}
}

func TestOccursCapDropsExtras(t *testing.T) {
	d := testDictionary(t)
	rows := collectRows(t, d, []string{"HDR123", "LN01", "LN02", "LN03"})
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows))
	}
	if !rowsEqual(rows[0], Row{"123", "01", "02"}) {
		t.Errorf("row = %v, want [123 01 02]", rows[0])
	}
}

func TestConsecutiveHeaders(t *testing.T) {
	d := testDictionary(t)
	rows := collectRows(t, d, []string{"HDR111", "HDR222"})
	want := []Row{
		{"111", "", ""},
		{"222", "", ""},
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	for i := range want {
		if !rowsEqual(rows[i], want[i]) {
			t.Errorf("row %d = %v, want %v", i, rows[i], want[i])
		}
	}
}

func TestShortSegmentFailsParse(t *testing.T) {
	d := testDictionary(t)
	_, err := d.Rows(Segments([]string{"HDR123", "LN1"}))
	if err == nil {
		t.Fatal("expected error for short segment")
	}
	var malformed *MalformedSegmentError
	if !errors.As(err, &malformed) {
		t.Fatalf("error = %v, want MalformedSegmentError", err)
	}
	if malformed.Key != "LN" || malformed.Width != 2 || malformed.Length != 3 {
		t.Errorf("error detail = %+v", malformed)
	}
}

func TestNilCallback(t *testing.T) {
	d := testDictionary(t)
	if err := d.Parse(Segments(nil), nil); !errors.Is(err, ErrNilCallback) {
		t.Errorf("Parse(nil callback) = %v, want ErrNilCallback", err)
	}
	if err := d.ParseMap(Segments(nil), nil); !errors.Is(err, ErrNilCallback) {
		t.Errorf("ParseMap(nil callback) = %v, want ErrNilCallback", err)
	}
}

func TestCallbackErrorAborts(t *testing.T) {
	d := testDictionary(t)
	stop := errors.New("stop")
	calls := 0
	err := d.Parse(Segments([]string{"HDR111", "HDR222", "HDR333"}), func(Row) error {
		calls++
		return stop
	})
	if !errors.Is(err, stop) {
		t.Fatalf("Parse = %v, want the callback error", err)
	}
	if calls != 1 {
		t.Errorf("callback invoked %d times after error, want 1", calls)
	}
}

func TestParseMapZipsColumns(t *testing.T) {
	d := testDictionary(t)
	var got []map[string]string
	err := d.ParseMap(Segments([]string{"HDR123", "LN01"}), func(m map[string]string) error {
		got = append(got, m)
		return nil
	})
	if err != nil {
		t.Fatalf("ParseMap: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d records, want 1", len(got))
	}
	want := map[string]string{"HDR": "123", "LN_1": "01", "LN_2": ""}
	for k, v := range want {
		if got[0][k] != v {
			t.Errorf("record[%q] = %q, want %q", k, got[0][k], v)
		}
	}
}

func TestZeroWidthSegment(t *testing.T) {
	d, err := NewDictionary(
		SegmentDefinition{Key: "HDR", Width: 3},
		SegmentDefinition{Key: "FLG", Width: 0},
	)
	if err != nil {
		t.Fatalf("NewDictionary: %v", err)
	}
	rows, err := d.Rows(Segments([]string{"HDR123", "FLG"}))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !rowsEqual(rows[0], Row{"123", ""}) {
		t.Errorf("row = %v, want [123 ]", rows[0])
	}
}

func TestDefault384Layout(t *testing.T) {
	d, err := GetDictionary("384")
	if err != nil {
		t.Fatalf("GetDictionary: %v", err)
	}
	ins := "INS" + strings.Repeat("a", 60)
	ref := "REF" + strings.Repeat("b", 30)
	rows, err := d.Rows(Segments([]string{ins, ref, ref}))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows))
	}
	cols := d.Columns()
	row := rows[0]
	for i, col := range cols {
		switch col {
		case "INS":
			if row[i] != strings.Repeat("a", 60) {
				t.Errorf("INS slot = %q", row[i])
			}
		case "REF_1", "REF_2":
			if row[i] != strings.Repeat("b", 30) {
				t.Errorf("%s slot = %q", col, row[i])
			}
		case "REF_3":
			if row[i] != "" {
				t.Errorf("REF_3 slot = %q, want empty", row[i])
			}
		}
	}
}
