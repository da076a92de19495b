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
	"fmt"

	"github.com/ctessum/geom"
	"github.com/golang/geo/r2"
	"github.com/spatialmodel/gwmesh/mesh"
	"github.com/spatialmodel/gwmesh/plot"
)

// CellVertices holds the vertex coordinates of a set of cells in a
// compressed layout: the coordinates of cell i are
// X[Offsets[i]:Offsets[i+1]] and Y[Offsets[i]:Offsets[i+1]].
type CellVertices struct {
	Offsets []int
	X, Y    []float64
}

// Len returns the number of cells.
func (c *CellVertices) Len() int { return len(c.Offsets) - 1 }

// Cell returns the vertex coordinates of cell i. The returned slices
// share memory with c.
func (c *CellVertices) Cell(i int) (xs, ys []float64) {
	return c.X[c.Offsets[i]:c.Offsets[i+1]], c.Y[c.Offsets[i]:c.Offsets[i+1]]
}

// Copy returns a deep copy of c.
func (c *CellVertices) Copy() *CellVertices {
	return &CellVertices{
		Offsets: cloneInts(c.Offsets),
		X:       cloneFloats(c.X),
		Y:       cloneFloats(c.Y),
	}
}

// geometry is the derived world-space geometry of a mesh.
type geometry struct {
	xc, yc, zc []float64
	verts      *CellVertices
	zverts     [][]float64
}

// buildGeometry resolves the vertex ids of each cell to coordinates and
// transforms cell centers and vertices to world coordinates.
func (m *Mesh) buildGeometry() (*geometry, error) {
	if !m.IsValid() {
		return nil, ErrInvalid
	}
	lookup := make(map[int][2]float64, len(m.vertices))
	for _, v := range m.vertices {
		lookup[v.ID] = [2]float64{v.X, v.Y}
	}

	n := 0
	for _, iv := range m.iverts {
		n += len(iv)
	}
	cv := &CellVertices{
		Offsets: make([]int, 1, len(m.iverts)+1),
		X:       make([]float64, 0, n),
		Y:       make([]float64, 0, n),
	}
	for i, iv := range m.iverts {
		for _, id := range iv {
			p, ok := lookup[id]
			if !ok {
				return nil, fmt.Errorf("%w: cell %d references vertex %d", ErrUnknownVertex, i, id)
			}
			cv.X = append(cv.X, p[0])
			cv.Y = append(cv.Y, p[1])
		}
		cv.Offsets = append(cv.Offsets, len(cv.X))
	}

	g := &geometry{
		xc:    cloneFloats(m.xcenters),
		yc:    cloneFloats(m.ycenters),
		verts: cv,
	}
	g.zverts, g.zc = m.zcoords()

	if !m.ref.IsZero() {
		t := m.ref.Transformer()
		var err error
		if g.xc, g.yc, err = mesh.TransformAll(t, g.xc, g.yc); err != nil {
			return nil, err
		}
		if cv.X, cv.Y, err = mesh.TransformAll(t, cv.X, cv.Y); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// zcoords returns the boundary elevations (top followed by bottom)
// and the center elevation of each node. Both are nil unless the mesh
// has top and bottom elevations of equal length.
func (m *Mesh) zcoords() ([][]float64, []float64) {
	if m.top == nil || m.botm == nil || len(m.top) != len(m.botm) {
		return nil, nil
	}
	zc := make([]float64, len(m.top))
	for i := range zc {
		zc[i] = (m.top[i] + m.botm[i]) / 2
	}
	return [][]float64{cloneFloats(m.top), cloneFloats(m.botm)}, zc
}

// XYZCellCenters returns the world coordinates of the cell centers.
// x and y have one entry per cell vertex list; z has one entry per node
// and is nil if the grid has no elevations.
func (m *Mesh) XYZCellCenters() (x, y, z []float64, err error) {
	g, err := m.geometryBundle()
	if err != nil {
		return nil, nil, nil, err
	}
	return cloneFloats(g.xc), cloneFloats(g.yc), cloneFloats(g.zc), nil
}

// XYZVertices returns the world coordinates of the vertices of each
// cell, and the top and bottom boundary elevations of each node
// (nil if the grid has no elevations).
func (m *Mesh) XYZVertices() (*CellVertices, [][]float64, error) {
	g, err := m.geometryBundle()
	if err != nil {
		return nil, nil, err
	}
	var z [][]float64
	if g.zverts != nil {
		z = make([][]float64, len(g.zverts))
		for i, zz := range g.zverts {
			z[i] = cloneFloats(zz)
		}
	}
	return g.verts.Copy(), z, nil
}

// Extent returns the bounding rectangle of all cell vertices in world
// coordinates.
func (m *Mesh) Extent() (r2.Rect, error) {
	g, err := m.geometryBundle()
	if err != nil {
		return r2.EmptyRect(), err
	}
	return pointsBound(g.verts.X, g.verts.Y), nil
}

func pointsBound(xs, ys []float64) r2.Rect {
	r := r2.EmptyRect()
	for i := range xs {
		r = r.AddPoint(r2.Point{X: xs[i], Y: ys[i]})
	}
	return r
}

// layerGroups returns the half-open ranges of cell vertex list indices
// that make up each layer. A grid whose layout is shared by all layers
// has a single group.
func (m *Mesh) layerGroups() [][2]int {
	if !m.VariesByLayer() {
		return [][2]int{{0, len(m.iverts)}}
	}
	o := make([][2]int, len(m.ncpl))
	start := 0
	for k, n := range m.ncpl {
		o[k] = [2]int{start, start + n}
		start += n
	}
	return o
}

// GridLines returns the edges of every cell as two-point lines,
// grouped by layer. There is one group if the cell layout is shared
// by all layers and one group per layer otherwise.
func (m *Mesh) GridLines() ([][]plot.XYs, error) {
	g, err := m.geometryBundle()
	if err != nil {
		return nil, err
	}
	groups := m.layerGroups()
	o := make([][]plot.XYs, len(groups))
	for k, grp := range groups {
		var lines []plot.XYs
		for i := grp[0]; i < grp[1]; i++ {
			xs, ys := g.verts.Cell(i)
			n := len(xs)
			for j := 0; j < n; j++ {
				prev := (j + n - 1) % n
				lines = append(lines, plot.Segment(xs[prev], ys[prev], xs[j], ys[j]))
			}
		}
		o[k] = lines
	}
	return o, nil
}

// MapPolygons returns a closed polygon for every cell, grouped by
// layer in the same way as GridLines.
func (m *Mesh) MapPolygons() ([][]geom.Polygon, error) {
	polys, err := m.cellPolygons()
	if err != nil {
		return nil, err
	}
	groups := m.layerGroups()
	o := make([][]geom.Polygon, len(groups))
	for k, grp := range groups {
		o[k] = make([]geom.Polygon, 0, grp[1]-grp[0])
		for _, p := range polys[grp[0]:grp[1]] {
			o[k] = append(o[k], geom.Polygon{append(geom.Path{}, p[0]...)})
		}
	}
	return o, nil
}

// cellIndexOf returns the index into iverts of node.
func (m *Mesh) cellIndexOf(node int) (int, error) {
	if node < 0 || node >= m.NNodes() {
		return 0, fmt.Errorf("%w: %d", ErrNodeRange, node)
	}
	if m.VariesByLayer() {
		return node, nil
	}
	return node % len(m.iverts), nil
}

// CellVerticesOf returns the world coordinates of the vertices of node.
// Nodes below the first layer of a grid with a shared layout return
// the vertices of the matching first-layer cell.
func (m *Mesh) CellVerticesOf(node int) (geom.Path, error) {
	g, err := m.geometryBundle()
	if err != nil {
		return nil, err
	}
	i, err := m.cellIndexOf(node)
	if err != nil {
		return nil, err
	}
	xs, ys := g.verts.Cell(i)
	p := make(geom.Path, len(xs))
	for j := range xs {
		p[j] = geom.Point{X: xs[j], Y: ys[j]}
	}
	return p, nil
}
