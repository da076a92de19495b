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

	"gonum.org/v1/gonum/floats"
)

// ConvertGrid returns a copy of the grid with all coordinates,
// elevations and offsets multiplied by factor, for example to change
// length units. Simulation metadata lengths and areas are converted
// too. The rotation angle is not changed. The grid must be complete.
func (m *Mesh) ConvertGrid(factor float64) (*Mesh, error) {
	if !m.IsComplete() {
		return nil, fmt.Errorf("unstructured: converting grid: %w", ErrIncomplete)
	}
	o := m.options()
	for i := range o.Vertices {
		o.Vertices[i].X *= factor
		o.Vertices[i].Y *= factor
	}
	for _, s := range [][]float64{o.XCenters, o.YCenters, o.Top, o.Botm} {
		floats.Scale(factor, s)
	}
	o.Reference = m.ref.Scaled(factor)
	if o.Metadata != nil {
		o.Metadata.scale(factor)
	}
	return New(o)
}

// CleanIVerts merges vertices that have identical coordinates. The
// vertices are renumbered from zero in order of first appearance and
// the cell vertex lists are updated to match. If inplace is true the
// receiver is modified and returned; otherwise a new grid is returned
// and the receiver is unchanged.
func (m *Mesh) CleanIVerts(inplace bool) (*Mesh, error) {
	type xy struct{ x, y float64 }
	ids := make(map[xy]int)
	remap := make(map[int]int, len(m.vertices))
	var vertices []Vertex
	for _, v := range m.vertices {
		k := xy{v.X, v.Y}
		id, ok := ids[k]
		if !ok {
			id = len(vertices)
			ids[k] = id
			vertices = append(vertices, Vertex{ID: id, X: v.X, Y: v.Y})
		}
		remap[v.ID] = id
	}

	iverts := make([][]int, len(m.iverts))
	for i, iv := range m.iverts {
		iverts[i] = make([]int, len(iv))
		for j, v := range iv {
			id, ok := remap[v]
			if !ok {
				return nil, fmt.Errorf("%w: cell %d references vertex %d", ErrUnknownVertex, i, v)
			}
			iverts[i][j] = id
		}
	}
	if m.vertices != nil && vertices == nil {
		vertices = []Vertex{}
	}
	if m.iverts == nil {
		iverts = nil
	}
	Log.WithField("merged", len(m.vertices)-len(vertices)).Debug("unstructured: cleaned vertices")

	if inplace {
		m.vertices = vertices
		m.iverts = iverts
		m.InvalidateCache()
		return m, nil
	}
	o := m.options()
	o.Vertices = vertices
	o.IVerts = iverts
	return New(o)
}
