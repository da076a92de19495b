/*
Copyright © 2026 the GWMesh authors.
This file is part of GWMesh.

GWMesh is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

GWMesh is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with GWMesh.  If not, see <http://www.gnu.org/licenses/>.
*/

package unstructured

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// lineReader returns the whitespace-separated fields of successive
// non-blank lines of a text mesh file.
type lineReader struct {
	format  string
	scanner *bufio.Scanner
	line    int
}

func newLineReader(r io.Reader, format string) *lineReader {
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 64*1024), 16*1024*1024)
	return &lineReader{format: format, scanner: s}
}

// next returns the fields of the next non-blank line, or an error
// wrapping io.ErrUnexpectedEOF if there are no more lines.
func (lr *lineReader) next() ([]string, error) {
	for lr.scanner.Scan() {
		lr.line++
		f := strings.Fields(lr.scanner.Text())
		if len(f) > 0 {
			return f, nil
		}
	}
	if err := lr.scanner.Err(); err != nil {
		return nil, lr.errorf("%v", err)
	}
	return nil, &FormatError{Format: lr.format, Line: lr.line + 1, Err: io.ErrUnexpectedEOF}
}

// errorf returns a FormatError for the current line.
func (lr *lineReader) errorf(format string, a ...interface{}) error {
	return &FormatError{Format: lr.format, Line: lr.line, Err: fmt.Errorf(format, a...)}
}

// wrap returns a FormatError for the current line wrapping err.
func (lr *lineReader) wrap(err error) error {
	return &FormatError{Format: lr.format, Line: lr.line, Err: err}
}

func (lr *lineReader) atoi(s string) (int, error) {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, lr.errorf("invalid integer %q", s)
	}
	return v, nil
}

func (lr *lineReader) atof(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, lr.errorf("invalid number %q", s)
	}
	return v, nil
}

// count reads a line whose first field is a non-negative integer.
func (lr *lineReader) count(what string) (int, error) {
	f, err := lr.next()
	if err != nil {
		return 0, err
	}
	n, err := lr.atoi(f[0])
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, lr.errorf("negative %s %d", what, n)
	}
	return n, nil
}
