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
	"errors"
	"reflect"
	"testing"

	"github.com/stretchr/testify/require"
)

// squareVertices are the corners of the unit square.
func squareVertices() []Vertex {
	return []Vertex{
		{ID: 0, X: 0, Y: 0},
		{ID: 1, X: 1, Y: 0},
		{ID: 2, X: 1, Y: 1},
		{ID: 3, X: 0, Y: 1},
	}
}

// unitSquare returns a mesh with a single unit square cell.
func unitSquare(t *testing.T) *Mesh {
	t.Helper()
	m, err := New(Options{
		Vertices: squareVertices(),
		IVerts:   [][]int{{0, 1, 2, 3}},
		XCenters: []float64{0.5},
		YCenters: []float64{0.5},
	})
	require.NoError(t, err)
	return m
}

// twoTriangleOptions describes the unit square split along the diagonal
// from (0,0) to (1,1), repeated for two layers:
//
//	3-----2
//	|  1 /|
//	|  /  |
//	|/  0 |
//	0-----1
func twoTriangleOptions() Options {
	return Options{
		Vertices: squareVertices(),
		IVerts:   [][]int{{0, 1, 2}, {0, 2, 3}},
		XCenters: []float64{2. / 3, 1. / 3},
		YCenters: []float64{1. / 3, 2. / 3},
		Top:      []float64{1, 1, 0, 0},
		Botm:     []float64{0, 0, -1, -1},
		NCPL:     []int{2, 2},
	}
}

func twoTriangles(t *testing.T) *Mesh {
	t.Helper()
	m, err := New(twoTriangleOptions())
	require.NoError(t, err)
	return m
}

// layeredTriangles has a different layout in each of its two layers:
// the first layer splits the square along one diagonal and the second
// along the other.
func layeredTriangles(t *testing.T) *Mesh {
	t.Helper()
	m, err := New(Options{
		Vertices: squareVertices(),
		IVerts:   [][]int{{0, 1, 2}, {0, 2, 3}, {0, 1, 3}, {1, 2, 3}},
		XCenters: []float64{2. / 3, 1. / 3, 1. / 3, 2. / 3},
		YCenters: []float64{1. / 3, 2. / 3, 1. / 3, 2. / 3},
		Top:      []float64{1, 1, 0, 0},
		Botm:     []float64{0, 0, -1, -1},
		NCPL:     []int{2, 2},
	})
	require.NoError(t, err)
	return m
}

func TestNew(t *testing.T) {
	m := twoTriangles(t)
	require.Equal(t, []int{2, 2}, m.NCPL())
	require.Equal(t, 2, m.NLay())
	require.Equal(t, 4, m.NNodes())
	require.False(t, m.VariesByLayer())
	require.True(t, m.IsValid())
	require.True(t, m.IsComplete())

	l := layeredTriangles(t)
	require.True(t, l.VariesByLayer())
	require.Equal(t, 4, l.NNodes())
	require.Equal(t, 4, l.NVert())
	require.Equal(t, [][]float64{{1, 1, 0, 0}, {0, 0, -1, -1}}, l.TopBotm())
	require.Nil(t, unitSquare(t).TopBotm())
}

func TestVariesByLayerInvalid(t *testing.T) {
	// Without vertices the layout is treated as shared by all layers.
	m, err := New(Options{IVerts: [][]int{{0, 1, 2}, {0, 2, 3}}, NCPL: []int{2, 2}})
	require.NoError(t, err)
	require.False(t, m.VariesByLayer())

	_, err = New(Options{
		IVerts: [][]int{{0, 1, 2}, {0, 2, 3}, {0, 1, 3}, {1, 2, 3}},
		NCPL:   []int{2, 2},
	})
	require.True(t, errors.Is(err, ErrIVertsLength), "%v", err)
}

func TestNewCopiesInput(t *testing.T) {
	o := twoTriangleOptions()
	m, err := New(o)
	require.NoError(t, err)
	o.IVerts[0][0] = 3
	o.Vertices[0].X = 100
	o.Top[0] = 100
	require.Equal(t, []int{0, 1, 2}, m.IVerts()[0])
	require.Equal(t, 0., m.Vertices()[0].X)
	require.Equal(t, 1., m.Top()[0])

	iv := m.IVerts()
	iv[0][0] = 3
	require.Equal(t, []int{0, 1, 2}, m.IVerts()[0])
}

func TestNewDefaultNCPL(t *testing.T) {
	m := unitSquare(t)
	require.Equal(t, []int{1}, m.NCPL())
	require.Equal(t, 1, m.NNodes())
	require.False(t, m.IsComplete())

	empty, err := New(Options{})
	require.NoError(t, err)
	require.Nil(t, empty.NCPL())
	require.Equal(t, 0, empty.NLay())
	require.False(t, empty.IsValid())
}

func TestNewCell2D(t *testing.T) {
	m, err := New(Options{
		Vertices: squareVertices(),
		Cell2D: []Cell2D{
			{ID: 0, X: 2. / 3, Y: 1. / 3, IVerts: []int{0, 1, 2}},
			{ID: 1, X: 1. / 3, Y: 2. / 3, IVerts: []int{0, 2, 3}},
		},
	})
	require.NoError(t, err)
	require.Equal(t, [][]int{{0, 1, 2}, {0, 2, 3}}, m.IVerts())
	require.Equal(t, []int{2}, m.NCPL())

	cells := m.Cell2D()
	require.Len(t, cells, 2)
	require.Equal(t, 3, cells[1].NVert())
	require.InDelta(t, 1./3, cells[1].X, 1e-12)
}

func TestNCPLForms(t *testing.T) {
	tests := []struct {
		name string
		ncpl interface{}
		want []int
		err  error
	}{
		{name: "int", ncpl: 2, want: []int{2}},
		{name: "int64", ncpl: int64(2), want: []int{2}},
		{name: "integral float", ncpl: 2.0, want: []int{2}},
		{name: "slice", ncpl: []int{2, 2, 2}, want: []int{2, 2, 2}},
		{name: "array", ncpl: [2]int32{2, 2}, want: []int{2, 2}},
		{name: "float slice", ncpl: []float64{2, 2}, want: []int{2, 2}},
		{name: "interface slice", ncpl: []interface{}{2, 2.0}, want: []int{2, 2}},
		{name: "string", ncpl: "2", err: ErrNCPLType},
		{name: "fraction", ncpl: 2.5, err: ErrNCPLType},
		{name: "negative", ncpl: -2, err: ErrNCPLType},
		{name: "nested", ncpl: [][]int{{2}, {2}}, err: ErrNCPLShape},
		{name: "nested interface", ncpl: []interface{}{[]int{2}}, err: ErrNCPLShape},
		{name: "wrong count", ncpl: []int{2, 3}, err: ErrIVertsLength},
		{name: "wrong total", ncpl: 3, err: ErrIVertsLength},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			o := twoTriangleOptions()
			o.Top, o.Botm = nil, nil
			o.NCPL = test.ncpl
			m, err := New(o)
			if test.err != nil {
				require.True(t, errors.Is(err, test.err), "error %v should be %v", err, test.err)
				require.Nil(t, m)
				return
			}
			require.NoError(t, err)
			require.Equal(t, test.want, m.NCPL())
		})
	}
}

func TestNNodesIsSumOfNCPL(t *testing.T) {
	for _, m := range []*Mesh{unitSquare(t), twoTriangles(t), layeredTriangles(t)} {
		sum := 0
		for _, n := range m.NCPL() {
			sum += n
		}
		require.Equal(t, sum, m.NNodes())
		require.Equal(t, len(m.NCPL()), m.NLay())
	}
}

func TestSetNCPL(t *testing.T) {
	m := twoTriangles(t)
	gen := m.generation

	require.NoError(t, m.SetNCPL([]int{2, 2, 2}))
	require.Equal(t, []int{2, 2, 2}, m.NCPL())
	require.Equal(t, gen+1, m.generation)

	err := m.SetNCPL([]int{2, 3})
	require.True(t, errors.Is(err, ErrIVertsLength))
	require.Equal(t, []int{2, 2, 2}, m.NCPL(), "invalid ncpl should leave the grid unchanged")

	require.NoError(t, m.SetNCPL(nil))
	require.Equal(t, []int{2}, m.NCPL())

	err = m.SetNCPL("2")
	require.True(t, errors.Is(err, ErrNCPLType))
}

func TestSetNCPLIdempotent(t *testing.T) {
	m := twoTriangles(t)
	require.NoError(t, m.SetNCPL(m.NCPL()))
	v1, z1, err := m.XYZVertices()
	require.NoError(t, err)
	x1, y1, c1, err := m.XYZCellCenters()
	require.NoError(t, err)

	require.NoError(t, m.SetNCPL(m.NCPL()))
	v2, z2, err := m.XYZVertices()
	require.NoError(t, err)
	x2, y2, c2, err := m.XYZCellCenters()
	require.NoError(t, err)

	if !reflect.DeepEqual(v1, v2) || !reflect.DeepEqual(z1, z2) {
		t.Errorf("vertices changed after second SetNCPL")
	}
	if !reflect.DeepEqual(x1, x2) || !reflect.DeepEqual(y1, y2) || !reflect.DeepEqual(c1, c2) {
		t.Errorf("cell centers changed after second SetNCPL")
	}
}

func TestAccessorsReturnCopies(t *testing.T) {
	m, err := New(Options{
		Vertices: squareVertices(),
		IVerts:   [][]int{{0, 1, 2, 3}},
		XCenters: []float64{0.5},
		YCenters: []float64{0.5},
		IAC:      []int{1},
		JA:       []int{0},
		IDomain:  []int{1},
	})
	require.NoError(t, err)
	m.IAC()[0] = 5
	m.JA()[0] = 5
	m.IDomain()[0] = 5
	m.Vertices()[0].X = 5
	require.Equal(t, []int{1}, m.IAC())
	require.Equal(t, []int{0}, m.JA())
	require.Equal(t, []int{1}, m.IDomain())
	require.Equal(t, 0., m.Vertices()[0].X)
}

func TestInvalidateCache(t *testing.T) {
	m := unitSquare(t)
	g1, err := m.geometryBundle()
	require.NoError(t, err)
	g2, err := m.geometryBundle()
	require.NoError(t, err)
	require.True(t, g1 == g2, "geometry should be cached")

	m.InvalidateCache()
	g3, err := m.geometryBundle()
	require.NoError(t, err)
	require.False(t, g1 == g3, "geometry should be rebuilt after invalidation")
}
