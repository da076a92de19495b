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

// Package grb decodes MODFLOW 6 binary grid (.grb) files.
//
// A binary grid file starts with four fixed-width text lines
//
//	GRID DISU
//	VERSION 1
//	NTXT 13
//	LENTXT 100
//
// followed by NTXT definition lines of LENTXT bytes each, such as
//
//	TOP DOUBLE NDIM 1 121
//	VERTICES DOUBLE NDIM 2 2 148
//
// and then the little-endian binary values of each defined variable,
// in definition order.
package grb

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// headerLen is the width of each of the leading text lines.
const headerLen = 50

const (
	// maxText bounds NTXT and LENTXT.
	maxText = 1 << 12

	// maxValues bounds the number of values in one variable.
	maxValues = 1 << 30

	// chunkLen is the number of values decoded at a time.
	chunkLen = 1 << 12
)

var (
	// ErrMissingVariable is returned when a variable needed to
	// assemble a grid is not defined in the file.
	ErrMissingVariable = errors.New("grb: missing variable")

	// ErrInvalidShape is returned when a variable definition declares
	// negative, overflowing, or implausibly large dimensions.
	ErrInvalidShape = errors.New("grb: invalid variable shape")
)

// Grid holds the decoded contents of a binary grid file.
// Index arrays are converted to zero-based ids.
type Grid struct {
	GridType string // e.g. "DIS", "DISV", "DISU"
	Version  int

	// Nodes and NJA are the node and connection counts
	// declared in the file, or zero if absent.
	Nodes, NJA int

	XOrigin, YOrigin, AngRot float64

	Top, Bot []float64
	IDomain  []int

	// IAC holds the number of connections of each node,
	// including the node itself, and JA the flattened
	// connection list with each node listed first.
	IAC, JA []int

	// Verts holds the x and y coordinate of each vertex.
	// It is nil if the file does not contain vertex data.
	Verts [][2]float64

	// CellCenters holds the x and y coordinate of each cell center.
	CellCenters [][2]float64

	// IVerts holds the vertex ids of each cell.
	// It is nil if the file does not contain vertex data.
	IVerts [][]int
}

// Decoder implements grid decoding for binary grid files.
type Decoder struct{}

// Decode reads a binary grid file from r.
func (Decoder) Decode(r io.Reader) (*Grid, error) { return Decode(r) }

// definition describes one variable stored in the file.
type definition struct {
	name  string
	dtype string
	shape []int
	n     int // product of shape
}

// record holds the values of one variable.
type record struct {
	ints   []int
	floats []float64
}

// ReadFile reads the binary grid file at path.
func ReadFile(path string) (*Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("grb: %v", err)
	}
	defer f.Close()
	return Decode(f)
}

// Decode reads a binary grid file from r.
func Decode(r io.Reader) (*Grid, error) {
	br := bufio.NewReader(r)

	header := make([][]string, 4)
	for i := range header {
		line, err := readText(br, headerLen)
		if err != nil {
			return nil, fmt.Errorf("grb: reading header: %v", err)
		}
		header[i] = strings.Fields(line)
		if len(header[i]) < 2 {
			return nil, fmt.Errorf("grb: invalid header line %q", line)
		}
	}
	if header[0][0] != "GRID" {
		return nil, fmt.Errorf("grb: invalid file type %q", header[0][0])
	}
	g := &Grid{GridType: strings.ToUpper(header[0][1])}
	var err error
	if g.Version, err = headerInt(header[1], "VERSION"); err != nil {
		return nil, err
	}
	ntxt, err := headerInt(header[2], "NTXT")
	if err != nil {
		return nil, err
	}
	lentxt, err := headerInt(header[3], "LENTXT")
	if err != nil {
		return nil, err
	}
	if ntxt < 0 || ntxt > maxText || lentxt < 0 || lentxt > maxText {
		return nil, fmt.Errorf("grb: NTXT %d or LENTXT %d out of range [0, %d]", ntxt, lentxt, maxText)
	}

	defs := make([]definition, ntxt)
	for i := range defs {
		line, err := readText(br, lentxt)
		if err != nil {
			return nil, fmt.Errorf("grb: reading definition %d: %v", i, err)
		}
		if defs[i], err = parseDefinition(line); err != nil {
			return nil, err
		}
	}

	records := make(map[string]record, len(defs))
	for _, d := range defs {
		rec, err := readRecord(br, d)
		if err != nil {
			return nil, fmt.Errorf("grb: reading %s: %w", d.name, err)
		}
		records[d.name] = rec
	}
	if err := g.assemble(records); err != nil {
		return nil, err
	}
	return g, nil
}

func readText(r io.Reader, n int) (string, error) {
	b := make([]byte, n)
	if _, err := io.ReadFull(r, b); err != nil {
		return "", err
	}
	s := string(b)
	if i := strings.IndexByte(s, '#'); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(strings.TrimRight(s, "\x00")), nil
}

func headerInt(fields []string, key string) (int, error) {
	if fields[0] != key {
		return 0, fmt.Errorf("grb: expected %s in header but got %s", key, fields[0])
	}
	v, err := strconv.Atoi(fields[1])
	if err != nil {
		return 0, fmt.Errorf("grb: invalid %s: %v", key, err)
	}
	return v, nil
}

func parseDefinition(line string) (definition, error) {
	f := strings.Fields(line)
	if len(f) < 4 || f[2] != "NDIM" {
		return definition{}, fmt.Errorf("grb: invalid variable definition %q", line)
	}
	d := definition{name: strings.ToUpper(f[0]), dtype: strings.ToUpper(f[1]), n: 1}
	ndim, err := strconv.Atoi(f[3])
	if err != nil || ndim < 0 || len(f) < 4+ndim {
		return definition{}, fmt.Errorf("%w: %q", ErrInvalidShape, line)
	}
	for _, s := range f[4 : 4+ndim] {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			return definition{}, fmt.Errorf("%w: %q", ErrInvalidShape, line)
		}
		if n != 0 && d.n > maxValues/n {
			return definition{}, fmt.Errorf("%w: %q has more than %d values", ErrInvalidShape, line, maxValues)
		}
		d.n *= n
		d.shape = append(d.shape, n)
	}
	return d, nil
}

func readRecord(r io.Reader, d definition) (record, error) {
	switch d.dtype {
	case "INTEGER":
		v, err := readValues[int32](r, d.n)
		if err != nil {
			return record{}, err
		}
		o := make([]int, len(v))
		for i, vv := range v {
			o[i] = int(vv)
		}
		return record{ints: o}, nil
	case "SINGLE":
		v, err := readValues[float32](r, d.n)
		if err != nil {
			return record{}, err
		}
		o := make([]float64, len(v))
		for i, vv := range v {
			o[i] = float64(vv)
		}
		return record{floats: o}, nil
	case "DOUBLE":
		v, err := readValues[float64](r, d.n)
		if err != nil {
			return record{}, err
		}
		return record{floats: v}, nil
	default:
		return record{}, fmt.Errorf("unsupported data type %q", d.dtype)
	}
}

// readValues reads n little-endian values from r. The result grows as
// data arrives, so a file that declares more values than it holds
// fails with io.ErrUnexpectedEOF instead of allocating the full size.
func readValues[T int32 | float32 | float64](r io.Reader, n int) ([]T, error) {
	buf := make([]T, min(n, chunkLen))
	o := make([]T, 0, len(buf))
	for len(o) < n {
		c := buf[:min(n-len(o), len(buf))]
		if err := binary.Read(r, binary.LittleEndian, c); err != nil {
			if err == io.EOF {
				err = io.ErrUnexpectedEOF
			}
			return nil, err
		}
		o = append(o, c...)
	}
	return o, nil
}

func (g *Grid) assemble(records map[string]record) error {
	scalar := func(name string) float64 {
		r := records[name]
		if len(r.floats) > 0 {
			return r.floats[0]
		}
		return 0
	}
	scalarInt := func(name string) int {
		r := records[name]
		if len(r.ints) > 0 {
			return r.ints[0]
		}
		return 0
	}
	g.Nodes = scalarInt("NODES")
	g.NJA = scalarInt("NJA")
	g.XOrigin = scalar("XORIGIN")
	g.YOrigin = scalar("YORIGIN")
	g.AngRot = scalar("ANGROT")
	g.Top = records["TOP"].floats
	g.Bot = records["BOTM"].floats
	if g.Bot == nil {
		g.Bot = records["BOT"].floats
	}
	g.IDomain = records["IDOMAIN"].ints

	if ia, ok := records["IA"]; ok {
		ja, ok := records["JA"]
		if !ok {
			return fmt.Errorf("%w: JA", ErrMissingVariable)
		}
		g.IAC = make([]int, 0, len(ia.ints))
		for i := 1; i < len(ia.ints); i++ {
			g.IAC = append(g.IAC, ia.ints[i]-ia.ints[i-1])
		}
		g.JA = make([]int, len(ja.ints))
		for i, v := range ja.ints {
			g.JA[i] = v - 1
		}
	}

	cx, okx := records["CELLX"]
	cy, oky := records["CELLY"]
	if okx && oky {
		if len(cx.floats) != len(cy.floats) {
			return fmt.Errorf("grb: %d CELLX values but %d CELLY values", len(cx.floats), len(cy.floats))
		}
		g.CellCenters = make([][2]float64, len(cx.floats))
		for i := range cx.floats {
			g.CellCenters[i] = [2]float64{cx.floats[i], cy.floats[i]}
		}
	}

	verts, ok := records["VERTICES"]
	if !ok {
		return nil
	}
	if len(verts.floats)%2 != 0 {
		return fmt.Errorf("grb: odd number of vertex coordinates (%d)", len(verts.floats))
	}
	g.Verts = make([][2]float64, len(verts.floats)/2)
	for i := range g.Verts {
		g.Verts[i] = [2]float64{verts.floats[2*i], verts.floats[2*i+1]}
	}

	iavert, ok := records["IAVERT"]
	if !ok {
		return nil
	}
	javert, ok := records["JAVERT"]
	if !ok {
		return fmt.Errorf("%w: JAVERT", ErrMissingVariable)
	}
	g.IVerts = make([][]int, 0, len(iavert.ints))
	for i := 1; i < len(iavert.ints); i++ {
		i0, i1 := iavert.ints[i-1]-1, iavert.ints[i]-1
		if i0 < 0 || i1 < i0 || i1 > len(javert.ints) {
			return fmt.Errorf("grb: invalid IAVERT range [%d, %d) for cell %d", i0, i1, i-1)
		}
		iv := make([]int, i1-i0)
		for j, v := range javert.ints[i0:i1] {
			iv[j] = v - 1
		}
		g.IVerts = append(g.IVerts, iv)
	}
	return nil
}
