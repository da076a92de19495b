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
	"github.com/ctessum/geom"
	"github.com/sirupsen/logrus"
)

// geometryCache holds derived geometry together with the mesh
// generation it was built from. An entry is current only while its
// generation equals the mesh generation; generation zero means the
// entry was never built.
//
// Values in the cache are shared with internal callers and must be
// copied before they are handed out.
type geometryCache struct {
	geometry    *geometry
	geometryGen uint64

	polygons    []geom.Polygon
	polygonsGen uint64

	index    *cellIndex
	indexGen uint64
}

// neighborCache holds an adjacency map and the generation it was built
// from.
type neighborCache struct {
	neighbors  map[int][]int
	generation uint64
}

// geometryBundle returns the current vertex and center geometry,
// rebuilding it if the mesh has changed since it was last built.
func (m *Mesh) geometryBundle() (*geometry, error) {
	if m.cache.geometry != nil && m.cache.geometryGen == m.generation {
		return m.cache.geometry, nil
	}
	g, err := m.buildGeometry()
	if err != nil {
		return nil, err
	}
	m.cache.geometry = g
	m.cache.geometryGen = m.generation
	Log.WithFields(logrus.Fields{
		"cells":      g.verts.Len(),
		"generation": m.generation,
	}).Debug("unstructured: built grid geometry")
	return g, nil
}

// cellPolygons returns one closed polygon per cell vertex list.
func (m *Mesh) cellPolygons() ([]geom.Polygon, error) {
	if m.cache.polygons != nil && m.cache.polygonsGen == m.generation {
		return m.cache.polygons, nil
	}
	g, err := m.geometryBundle()
	if err != nil {
		return nil, err
	}
	polys := make([]geom.Polygon, g.verts.Len())
	for i := range polys {
		polys[i] = geom.Polygon{closedPath(g.verts.Cell(i))}
	}
	m.cache.polygons = polys
	m.cache.polygonsGen = m.generation
	return polys, nil
}

// spatialIndex returns the cell search index.
func (m *Mesh) spatialIndex() (*cellIndex, error) {
	if m.cache.index != nil && m.cache.indexGen == m.generation {
		return m.cache.index, nil
	}
	polys, err := m.cellPolygons()
	if err != nil {
		return nil, err
	}
	m.cache.index = newCellIndex(polys)
	m.cache.indexGen = m.generation
	return m.cache.index, nil
}

// closedPath returns the points of a cell boundary with the first
// point repeated at the end if it is not already.
func closedPath(xs, ys []float64) geom.Path {
	p := make(geom.Path, len(xs), len(xs)+1)
	for i := range xs {
		p[i] = geom.Point{X: xs[i], Y: ys[i]}
	}
	if len(p) > 0 && p[0] != p[len(p)-1] {
		p = append(p, p[0])
	}
	return p
}
