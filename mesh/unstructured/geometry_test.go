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
	"testing"

	"github.com/ctessum/geom"
	"github.com/golang/geo/r2"
	"github.com/spatialmodel/gwmesh/mesh"
	"github.com/spatialmodel/gwmesh/plot"
	"github.com/stretchr/testify/require"
)

func TestXYZCellCenters(t *testing.T) {
	m := twoTriangles(t)
	x, y, z, err := m.XYZCellCenters()
	require.NoError(t, err)
	require.InDeltaSlice(t, []float64{2. / 3, 1. / 3}, x, 1e-12)
	require.InDeltaSlice(t, []float64{1. / 3, 2. / 3}, y, 1e-12)
	require.Equal(t, []float64{0.5, 0.5, -0.5, -0.5}, z)

	x[0] = 100
	x2, _, _, err := m.XYZCellCenters()
	require.NoError(t, err)
	require.InDelta(t, 2./3, x2[0], 1e-12, "returned slices should be copies")

	_, _, z, err = unitSquare(t).XYZCellCenters()
	require.NoError(t, err)
	require.Nil(t, z)
}

func TestXYZVertices(t *testing.T) {
	m := twoTriangles(t)
	cv, z, err := m.XYZVertices()
	require.NoError(t, err)
	require.Equal(t, 2, cv.Len())
	require.Equal(t, []int{0, 3, 6}, cv.Offsets)
	xs, ys := cv.Cell(1)
	require.Equal(t, []float64{0, 1, 0}, xs)
	require.Equal(t, []float64{0, 1, 1}, ys)
	require.Equal(t, [][]float64{{1, 1, 0, 0}, {0, 0, -1, -1}}, z)

	cv.X[0] = 100
	cv2, _, err := m.XYZVertices()
	require.NoError(t, err)
	require.Equal(t, 0., cv2.X[0])
}

func TestSharedGeometryAcrossLayers(t *testing.T) {
	m := twoTriangles(t)
	require.False(t, m.VariesByLayer())
	require.Len(t, m.IVerts(), m.NCPL()[0])
	for node := 0; node < m.NCPL()[0]; node++ {
		want, err := m.CellVerticesOf(node)
		require.NoError(t, err)
		for k := 1; k < m.NLay(); k++ {
			got, err := m.CellVerticesOf(node + k*m.NCPL()[0])
			require.NoError(t, err)
			require.Equal(t, want, got)
		}
	}
}

func TestCellVerticesOf(t *testing.T) {
	m := layeredTriangles(t)
	p, err := m.CellVerticesOf(3)
	require.NoError(t, err)
	require.Equal(t, geom.Path{{X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}}, p)

	_, err = m.CellVerticesOf(4)
	require.True(t, errors.Is(err, ErrNodeRange))
	_, err = m.CellVerticesOf(-1)
	require.True(t, errors.Is(err, ErrNodeRange))
}

func TestReferenceTransform(t *testing.T) {
	o := twoTriangleOptions()
	o.Reference = mesh.Reference{XOff: 10, YOff: 20, AngRot: 90}
	m, err := New(o)
	require.NoError(t, err)

	x, y, _, err := m.XYZCellCenters()
	require.NoError(t, err)
	require.InDeltaSlice(t, []float64{10 - 1./3, 10 - 2./3}, x, 1e-9)
	require.InDeltaSlice(t, []float64{20 + 2./3, 20 + 1./3}, y, 1e-9)

	verts, err := m.Verts()
	require.NoError(t, err)
	require.Len(t, verts, 4)
	require.InDelta(t, 10., verts[1][0], 1e-9)
	require.InDelta(t, 21., verts[1][1], 1e-9)

	e, err := m.Extent()
	require.NoError(t, err)
	require.InDelta(t, 9., e.X.Lo, 1e-9)
	require.InDelta(t, 10., e.X.Hi, 1e-9)
	require.InDelta(t, 20., e.Y.Lo, 1e-9)
	require.InDelta(t, 21., e.Y.Hi, 1e-9)

	// Local coordinates are unchanged.
	require.InDelta(t, 2./3, m.Cell2D()[0].X, 1e-12)
	require.Equal(t, 1., m.Vertices()[1].X)
}

func TestExtent(t *testing.T) {
	e, err := unitSquare(t).Extent()
	require.NoError(t, err)
	require.Equal(t, r2.RectFromPoints(r2.Point{X: 0, Y: 0}, r2.Point{X: 1, Y: 1}), e)

	empty, err := New(Options{})
	require.NoError(t, err)
	e, err = empty.Extent()
	require.True(t, errors.Is(err, ErrInvalid), "%v", err)
	require.True(t, e.IsEmpty())
}

func TestUnknownVertex(t *testing.T) {
	_, err := New(Options{
		Vertices: squareVertices(),
		IVerts:   [][]int{{0, 1, 7}},
		XCenters: []float64{0.5},
		YCenters: []float64{0.5},
	})
	require.True(t, errors.Is(err, ErrUnknownVertex), "%v", err)

	// Vertex ids need not be storage positions.
	vs := squareVertices()
	for i := range vs {
		vs[i].ID += 10
	}
	m, err := New(Options{
		Vertices: vs,
		IVerts:   [][]int{{10, 11, 12, 13}},
		XCenters: []float64{0.5},
		YCenters: []float64{0.5},
	})
	require.NoError(t, err)
	e, err := m.Extent()
	require.NoError(t, err)
	require.Equal(t, 1., e.X.Hi)

	// Geometry built from a corrupted cell reports the bad id.
	m.iverts[0][3] = 7
	m.InvalidateCache()
	_, _, _, err = m.XYZCellCenters()
	require.True(t, errors.Is(err, ErrUnknownVertex))
	_, err = m.Extent()
	require.True(t, errors.Is(err, ErrUnknownVertex))
}

func TestInvalidGeometry(t *testing.T) {
	m, err := New(Options{IVerts: [][]int{{0, 1, 2}}})
	require.NoError(t, err)
	_, _, err = m.XYZVertices()
	require.True(t, errors.Is(err, ErrInvalid))
	_, err = m.GridLines()
	require.True(t, errors.Is(err, ErrInvalid))
}

func TestGridLines(t *testing.T) {
	lines, err := unitSquare(t).GridLines()
	require.NoError(t, err)
	want := [][]plot.XYs{{
		plot.Segment(0, 1, 0, 0),
		plot.Segment(0, 0, 1, 0),
		plot.Segment(1, 0, 1, 1),
		plot.Segment(1, 1, 0, 1),
	}}
	require.Equal(t, want, lines)

	lines, err = twoTriangles(t).GridLines()
	require.NoError(t, err)
	require.Len(t, lines, 1, "shared layout has one group")
	require.Len(t, lines[0], 6)

	lines, err = layeredTriangles(t).GridLines()
	require.NoError(t, err)
	require.Len(t, lines, 2, "varying layout has one group per layer")
	require.Len(t, lines[1], 6)
	require.Equal(t, plot.Segment(0, 1, 0, 0), lines[1][0])
}

func TestMapPolygons(t *testing.T) {
	polys, err := layeredTriangles(t).MapPolygons()
	require.NoError(t, err)
	require.Len(t, polys, 2)
	require.Len(t, polys[0], 2)
	require.Equal(t, geom.Polygon{{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}, {X: 0, Y: 0}}}, polys[1][0])

	m := twoTriangles(t)
	polys, err = m.MapPolygons()
	require.NoError(t, err)
	require.Len(t, polys, 1)
	polys[0][0][0][0].X = 100
	polys2, err := m.MapPolygons()
	require.NoError(t, err)
	require.Equal(t, 0., polys2[0][0][0][0].X, "returned polygons should be copies")
}

func TestPolygonCache(t *testing.T) {
	m := twoTriangles(t)
	p1, err := m.cellPolygons()
	require.NoError(t, err)
	p2, err := m.cellPolygons()
	require.NoError(t, err)
	require.True(t, &p1[0] == &p2[0], "polygons should be cached")

	require.NoError(t, m.SetNCPL([]int{2, 2, 2}))
	p3, err := m.cellPolygons()
	require.NoError(t, err)
	require.False(t, &p1[0] == &p3[0], "polygons should be rebuilt after SetNCPL")
	require.Equal(t, p1, p3)
}

func TestGridLinesPlotRange(t *testing.T) {
	m := twoTriangles(t)
	groups, err := m.GridLines()
	require.NoError(t, err)
	lines, err := plot.Lines(groups[0])
	require.NoError(t, err)
	require.Len(t, lines, 6)

	e, err := m.Extent()
	require.NoError(t, err)
	got := r2.EmptyRect()
	for _, l := range lines {
		xmin, xmax, ymin, ymax := l.DataRange()
		got = got.AddPoint(r2.Point{X: xmin, Y: ymin}).AddPoint(r2.Point{X: xmax, Y: ymax})
	}
	require.Equal(t, e, got)
}
