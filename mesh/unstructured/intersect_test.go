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
	"github.com/spatialmodel/gwmesh/mesh"
	"github.com/stretchr/testify/require"
)

func TestIntersectUnitSquare(t *testing.T) {
	m := unitSquare(t)

	i, err := m.Intersect(0.5, 0.5)
	require.NoError(t, err)
	require.Equal(t, 0, i)

	i, err = m.Intersect(5, 5, Forgive())
	require.NoError(t, err)
	require.Equal(t, NoCell, i)

	i, err = m.Intersect(5, 5)
	require.Equal(t, NoCell, i)
	require.True(t, errors.Is(err, ErrPointOutside))
	var oe *OutsideError
	require.True(t, errors.As(err, &oe))
	require.Equal(t, 5., oe.X)
	require.Nil(t, oe.Z)
}

func TestIntersectEdges(t *testing.T) {
	m := unitSquare(t)
	tests := []struct {
		x, y float64
		want int
	}{
		{x: 0, y: 0, want: 0},
		{x: 1, y: 0.5, want: 0},
		{x: 0.5, y: 1, want: 0},
		{x: 1 + 1e-10, y: 0.5, want: NoCell},
		{x: -1e-6, y: -1e-6, want: NoCell},
	}
	for _, test := range tests {
		i, err := m.Intersect(test.x, test.y, Forgive())
		require.NoError(t, err)
		require.Equal(t, test.want, i, "(%g, %g)", test.x, test.y)
	}
}

func TestIntersectClockwise(t *testing.T) {
	m, err := New(Options{
		Vertices: squareVertices(),
		IVerts:   [][]int{{0, 3, 2, 1}},
		XCenters: []float64{0.5},
		YCenters: []float64{0.5},
	})
	require.NoError(t, err)
	for _, p := range [][2]float64{{0.5, 0.5}, {1, 0.5}, {0, 0}} {
		i, err := m.Intersect(p[0], p[1])
		require.NoError(t, err)
		require.Equal(t, 0, i)
	}
}

func TestIntersectEdgeTolerance(t *testing.T) {
	for _, iverts := range [][]int{{0, 1, 2}, {2, 1, 0}} {
		m, err := New(Options{
			Vertices: squareVertices(),
			IVerts:   [][]int{iverts},
			XCenters: []float64{2. / 3},
			YCenters: []float64{1. / 3},
		})
		require.NoError(t, err)

		// Just above the diagonal, outside the triangle.
		i, err := m.Intersect(0.5, 0.5+1e-10, Forgive())
		require.NoError(t, err)
		require.Equal(t, 0, i, "iverts %v", iverts)

		i, err = m.Intersect(0.5, 0.5+1e-6, Forgive())
		require.NoError(t, err)
		require.Equal(t, NoCell, i, "iverts %v", iverts)
	}
}

func TestIntersectLowestID(t *testing.T) {
	m := twoTriangles(t)
	tests := []struct {
		x, y float64
		want int
	}{
		{x: 0.75, y: 0.25, want: 0},
		{x: 0.25, y: 0.75, want: 1},
		{x: 0.5, y: 0.5, want: 0}, // on the shared diagonal
		{x: 0, y: 1, want: 1},
	}
	for _, test := range tests {
		i, err := m.Intersect(test.x, test.y)
		require.NoError(t, err)
		require.Equal(t, test.want, i, "(%g, %g)", test.x, test.y)
	}
}

func TestIntersectZ(t *testing.T) {
	m := twoTriangles(t)
	tests := []struct {
		x, y, z float64
		want    int
	}{
		{x: 0.75, y: 0.25, z: 0.5, want: 0},
		{x: 0.75, y: 0.25, z: -0.5, want: 2},
		{x: 0.25, y: 0.75, z: -0.5, want: 3},
		{x: 0.25, y: 0.75, z: 0, want: 1}, // layer boundary belongs to the upper layer
		{x: 0.25, y: 0.75, z: -1, want: 3},
	}
	for _, test := range tests {
		i, err := m.Intersect(test.x, test.y, WithZ(test.z))
		require.NoError(t, err)
		require.Equal(t, test.want, i, "(%g, %g, %g)", test.x, test.y, test.z)
	}

	i, err := m.Intersect(0.75, 0.25, WithZ(5))
	require.Equal(t, NoCell, i)
	var oe *OutsideError
	require.True(t, errors.As(err, &oe))
	require.NotNil(t, oe.Z)
	require.Equal(t, 5., *oe.Z)

	i, err = m.Intersect(0.75, 0.25, WithZ(5), Forgive())
	require.NoError(t, err)
	require.Equal(t, NoCell, i)
}

func TestIntersectZVaryingLayout(t *testing.T) {
	m := layeredTriangles(t)
	tests := []struct {
		x, y, z float64
		want    int
	}{
		{x: 0.25, y: 0.25, z: 0.5, want: 0}, // on the first layer diagonal
		{x: 0.75, y: 0.25, z: 0.5, want: 0},
		{x: 0.25, y: 0.75, z: 0.5, want: 1},
		{x: 0.25, y: 0.25, z: -0.5, want: 2},
		{x: 0.75, y: 0.75, z: -0.5, want: 3},
	}
	for _, test := range tests {
		i, err := m.Intersect(test.x, test.y, WithZ(test.z))
		require.NoError(t, err)
		require.Equal(t, test.want, i, "(%g, %g, %g)", test.x, test.y, test.z)
	}
	i, err := m.Intersect(0.75, 0.75)
	require.NoError(t, err)
	require.Equal(t, 0, i)
}

func TestIntersectZIncomplete(t *testing.T) {
	_, err := unitSquare(t).Intersect(0.5, 0.5, WithZ(0))
	require.True(t, errors.Is(err, ErrIncomplete))
}

func TestIntersectLocal(t *testing.T) {
	o := twoTriangleOptions()
	o.Reference = mesh.Reference{XOff: 10, YOff: 20}
	m, err := New(o)
	require.NoError(t, err)

	i, err := m.Intersect(10.25, 20.75)
	require.NoError(t, err)
	require.Equal(t, 1, i)

	i, err = m.Intersect(0.25, 0.75, Local())
	require.NoError(t, err)
	require.Equal(t, 1, i)

	_, err = m.Intersect(0.25, 0.75)
	require.True(t, errors.Is(err, ErrPointOutside))
}

func TestIntersectRebuildsIndex(t *testing.T) {
	m := unitSquare(t)
	_, err := m.Intersect(0.5, 0.5)
	require.NoError(t, err)
	idx := m.cache.index

	_, err = m.Intersect(0.5, 0.5)
	require.NoError(t, err)
	require.True(t, idx == m.cache.index, "index should be cached")

	m.InvalidateCache()
	_, err = m.Intersect(0.5, 0.5)
	require.NoError(t, err)
	require.False(t, idx == m.cache.index, "index should be rebuilt")
}

func TestSegmentDistance(t *testing.T) {
	a, b := geom.Point{X: 0, Y: 0}, geom.Point{X: 2, Y: 0}
	require.InDelta(t, 1., segmentDistance(a, b, geom.Point{X: 1, Y: 1}), 1e-12)
	require.InDelta(t, 5., segmentDistance(a, b, geom.Point{X: 5, Y: 4}), 1e-12)
	require.InDelta(t, 1., segmentDistance(a, a, geom.Point{X: 0, Y: 1}), 1e-12)
}
