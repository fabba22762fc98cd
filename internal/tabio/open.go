// Package tabio opens whitespace-delimited column files (plain, gzip or stdin)
// and splits them into fields.
package tabio

import (
	"bufio"
	"compress/gzip"
	"io"
	"os"
	"strings"
)

// multiReadCloser closes multiple io.Closers when Close() is called.
type multiReadCloser struct {
	io.Reader
	closers []io.Closer
}

func (m *multiReadCloser) Close() error {
	var err error
	for _, c := range m.closers {
		if cerr := c.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}

// Open returns a reader for path. "-" reads stdin; gzip input is detected by
// magic number or a .gz suffix.
func Open(path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	var sig [2]byte
	n, _ := fh.Read(sig[:])
	_, _ = fh.Seek(0, io.SeekStart)
	if (n == 2 && sig[0] == 0x1f && sig[1] == 0x8b) || strings.HasSuffix(path, ".gz") {
		gr, err := gzip.NewReader(fh)
		if err != nil {
			_ = fh.Close()
			return nil, err
		}
		return &multiReadCloser{Reader: gr, closers: []io.Closer{gr, fh}}, nil
	}
	return fh, nil
}

// Scanner wraps bufio.Scanner with a line counter and a buffer large enough
// for the widest reference tables.
type Scanner struct {
	sc   *bufio.Scanner
	Line int
}

func NewScanner(r io.Reader) *Scanner {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 4*1024*1024)
	return &Scanner{sc: sc}
}

// Next advances to the next line and returns its whitespace-separated fields.
// Blank lines come back as an empty slice.
func (s *Scanner) Next() ([]string, bool) {
	if !s.sc.Scan() {
		return nil, false
	}
	s.Line++
	return strings.Fields(s.sc.Text()), true
}

// Text returns the raw current line.
func (s *Scanner) Text() string { return s.sc.Text() }

func (s *Scanner) Err() error { return s.sc.Err() }
