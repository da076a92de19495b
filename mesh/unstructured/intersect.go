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
	"math"
	"sort"

	"github.com/ctessum/geom"
	"github.com/ctessum/geom/index/rtree"
	"github.com/golang/geo/r2"
)

// NoCell is returned by Intersect when a forgiving query
// does not find a cell.
const NoCell = -1

// edgeTolerance is the distance from a cell edge within which a point
// is still considered to be inside the cell.
const edgeTolerance = 1e-9

type intersectConfig struct {
	z       *float64
	local   bool
	forgive bool
}

// IntersectOption modifies the behavior of Intersect.
type IntersectOption func(*intersectConfig)

// WithZ restricts the result to the node whose top and bottom
// elevations bracket z.
func WithZ(z float64) IntersectOption {
	return func(c *intersectConfig) { c.z = &z }
}

// Local specifies that the query point is in local grid coordinates
// rather than world coordinates.
func Local() IntersectOption {
	return func(c *intersectConfig) { c.local = true }
}

// Forgive specifies that NoCell should be returned instead of an
// error when no cell contains the point.
func Forgive() IntersectOption {
	return func(c *intersectConfig) { c.forgive = true }
}

// Intersect returns the id of the node containing the point (x, y).
// Points on a cell edge are inside the cell. When more than one cell
// contains the point, the lowest id is returned.
func (m *Mesh) Intersect(x, y float64, opts ...IntersectOption) (int, error) {
	c := new(intersectConfig)
	for _, o := range opts {
		o(c)
	}
	if c.local {
		var err error
		if x, y, err = m.ref.Transformer()(x, y); err != nil {
			return NoCell, err
		}
	}
	if c.z != nil && (m.top == nil || m.botm == nil) {
		return NoCell, ErrIncomplete
	}
	idx, err := m.spatialIndex()
	if err != nil {
		return NoCell, err
	}

	for _, i := range idx.containing(x, y) {
		if c.z == nil {
			return i, nil
		}
		if node, ok := m.nodeAtElevation(i, *c.z); ok {
			return node, nil
		}
	}
	if c.forgive {
		return NoCell, nil
	}
	return NoCell, &OutsideError{X: x, Y: y, Z: c.z}
}

// nodeAtElevation returns the node whose vertical extent includes z,
// given the index i of a cell vertex list that contains the query point.
// For grids with a shared layout the layers are searched from the top
// down.
func (m *Mesh) nodeAtElevation(i int, z float64) (int, bool) {
	within := func(node int) bool {
		return node < len(m.top) && node < len(m.botm) && m.top[node] >= z && z >= m.botm[node]
	}
	if m.VariesByLayer() {
		return i, within(i)
	}
	node := i
	for k := range m.ncpl {
		if k != 0 {
			node += m.ncpl[k-1]
		}
		if within(node) {
			return node, true
		}
	}
	return NoCell, false
}

// cellIndex is an rtree of cell polygons.
type cellIndex struct {
	tree *rtree.Rtree
}

// indexedCell is a cell polygon stored in the index.
type indexedCell struct {
	geom.Polygon
	i      int
	bounds r2.Rect
}

func newCellIndex(polys []geom.Polygon) *cellIndex {
	idx := &cellIndex{tree: rtree.NewTree(25, 50)}
	for i, p := range polys {
		if len(p) == 0 || len(p[0]) == 0 {
			continue
		}
		c := &indexedCell{Polygon: p, i: i, bounds: r2.EmptyRect()}
		for _, pt := range p[0] {
			c.bounds = c.bounds.AddPoint(r2.Point{X: pt.X, Y: pt.Y})
		}
		idx.tree.Insert(c)
	}
	return idx
}

// containing returns the indices of the cells that contain (x, y),
// in ascending order.
func (idx *cellIndex) containing(x, y float64) []int {
	b := &geom.Bounds{
		Min: geom.Point{X: x - edgeTolerance, Y: y - edgeTolerance},
		Max: geom.Point{X: x + edgeTolerance, Y: y + edgeTolerance},
	}
	var o []int
	for _, g := range idx.tree.SearchIntersect(b) {
		c := g.(*indexedCell)
		if c.contains(x, y) {
			o = append(o, c.i)
		}
	}
	sort.Ints(o)
	return o
}

// contains returns whether (x, y) is inside the cell or within
// edgeTolerance of its boundary. Points outside the cell bounding
// rectangle are never contained.
func (c *indexedCell) contains(x, y float64) bool {
	if !c.bounds.ContainsPoint(r2.Point{X: x, Y: y}) {
		return false
	}
	p := geom.Point{X: x, Y: y}
	if p.Within(c.Polygon) != geom.Outside {
		return true
	}
	return nearBoundary(c.Polygon[0], p, edgeTolerance)
}

// nearBoundary returns whether p is within tol of any edge of path.
func nearBoundary(path geom.Path, p geom.Point, tol float64) bool {
	n := len(path)
	for j := 0; j < n; j++ {
		if segmentDistance(path[(j+n-1)%n], path[j], p) <= tol {
			return true
		}
	}
	return false
}

// segmentDistance returns the distance from p to the segment a-b.
func segmentDistance(a, b, p geom.Point) float64 {
	dx, dy := b.X-a.X, b.Y-a.Y
	l2 := dx*dx + dy*dy
	if l2 == 0 {
		return math.Hypot(p.X-a.X, p.Y-a.Y)
	}
	t := ((p.X-a.X)*dx + (p.Y-a.Y)*dy) / l2
	t = math.Max(0, math.Min(1, t))
	return math.Hypot(p.X-(a.X+t*dx), p.Y-(a.Y+t*dy))
}
