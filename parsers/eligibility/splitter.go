// splitter.go turns raw file bytes into a lazy sequence of segment strings,
// splitting on the segment separator and stripping it along with any line
// break padding between segments.

package eligibility

import (
	"bufio"
	"bytes"
	"io"
)

const (
	// DefaultSeparator terminates each segment in a 384 eligibility file.
	DefaultSeparator = '~'

	// elementDelimiter separates the segment key from its elements in
	// delimited renditions of the format.
	elementDelimiter = '*'
)

// SegmentScanner reads segments from an io.Reader one at a time, without
// loading the whole file into memory. It implements SegmentSource.
type SegmentScanner struct {
	s   *bufio.Scanner
	sep byte
}

// NewSegmentScanner returns a scanner splitting r on the default `~`
// separator.
func NewSegmentScanner(r io.Reader) *SegmentScanner {
	return NewSegmentScannerSep(r, DefaultSeparator)
}

// NewSegmentScannerSep returns a scanner splitting r on sep.
func NewSegmentScannerSep(r io.Reader, sep byte) *SegmentScanner {
	sc := bufio.NewScanner(r)
	sc.Split(splitOn(sep))
	return &SegmentScanner{s: sc, sep: sep}
}

// Buffer adjusts the maximum segment size, as bufio.Scanner.Buffer does.
func (sc *SegmentScanner) Buffer(buf []byte, max int) {
	sc.s.Buffer(buf, max)
}

// Next returns the next non-empty segment with its separator and any
// surrounding line-break padding stripped, or io.EOF at end of input.
// Spaces are payload in a fixed-width format and are left untouched.
func (sc *SegmentScanner) Next() (string, error) {
	for sc.s.Scan() {
		seg := string(bytes.Trim(sc.s.Bytes(), "\r\n"))
		if seg == "" {
			continue
		}
		return seg, nil
	}
	if err := sc.s.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}

// splitOn returns a bufio.SplitFunc yielding tokens delimited by sep. The
// final token before EOF is yielded even without a trailing separator.
func splitOn(sep byte) bufio.SplitFunc {
	return func(data []byte, atEOF bool) (int, []byte, error) {
		if atEOF && len(data) == 0 {
			return 0, nil, nil
		}
		if i := bytes.IndexByte(data, sep); i >= 0 {
			return i + 1, data[:i], nil
		}
		if atEOF {
			return len(data), data, nil
		}
		return 0, nil, nil
	}
}

// sliceSource adapts an in-memory slice of segments to SegmentSource.
type sliceSource struct {
	segs []string
	at   int
}

// Segments wraps already-split segment strings as a SegmentSource.
func Segments(segs []string) SegmentSource {
	return &sliceSource{segs: segs}
}

func (s *sliceSource) Next() (string, error) {
	if s.at >= len(s.segs) {
		return "", io.EOF
	}
	seg := s.segs[s.at]
	s.at++
	return seg, nil
}
