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
	"sort"
)

// LayerNodeRange returns the half-open range of node ids in layer.
func (m *Mesh) LayerNodeRange(layer int) (start, stop int, err error) {
	if layer < 0 || layer >= len(m.ncpl) {
		return 0, 0, fmt.Errorf("unstructured: layer %d out of range [0, %d)", layer, len(m.ncpl))
	}
	start = m.layerOffset(layer)
	return start, start + m.ncpl[layer], nil
}

// LayerCellCenters returns the world coordinates of the cell centers
// of one layer.
func (m *Mesh) LayerCellCenters(layer int) (x, y []float64, err error) {
	start, stop, err := m.LayerNodeRange(layer)
	if err != nil {
		return nil, nil, err
	}
	g, err := m.geometryBundle()
	if err != nil {
		return nil, nil, err
	}
	if !m.VariesByLayer() {
		start, stop = 0, len(g.xc)
	}
	if stop > len(g.xc) || stop > len(g.yc) {
		return nil, nil, fmt.Errorf("unstructured: %d cell centers but layer %d ends at node %d",
			len(g.xc), layer, stop)
	}
	return cloneFloats(g.xc[start:stop]), cloneFloats(g.yc[start:stop]), nil
}

// LayerCellVertices returns the world coordinates of the vertices of
// the cells of one layer (all cells for a shared layout).
func (m *Mesh) LayerCellVertices(layer int) (*CellVertices, error) {
	start, stop, err := m.LayerNodeRange(layer)
	if err != nil {
		return nil, err
	}
	g, err := m.geometryBundle()
	if err != nil {
		return nil, err
	}
	if !m.VariesByLayer() {
		return g.verts.Copy(), nil
	}
	if stop > g.verts.Len() {
		return nil, fmt.Errorf("unstructured: %d cells but layer %d ends at node %d",
			g.verts.Len(), layer, stop)
	}
	lo, hi := g.verts.Offsets[start], g.verts.Offsets[stop]
	o := &CellVertices{
		Offsets: make([]int, stop-start+1),
		X:       cloneFloats(g.verts.X[lo:hi]),
		Y:       cloneFloats(g.verts.Y[lo:hi]),
	}
	for i := range o.Offsets {
		o.Offsets[i] = g.verts.Offsets[start+i] - lo
	}
	return o, nil
}

// PlottableLayers returns the number of single-layer arrays that can
// be taken from a: the number of layers if a has one value per node,
// and zero otherwise.
func (m *Mesh) PlottableLayers(a []float64) int {
	if len(a) == m.NNodes() {
		return m.NLay()
	}
	return 0
}

// ArrayLen returns the length of an array with one value per cell of
// layer, or with one value per node if layer is negative.
func (m *Mesh) ArrayLen(layer int) (int, error) {
	if layer < 0 {
		return m.NNodes(), nil
	}
	if layer >= len(m.ncpl) {
		return 0, fmt.Errorf("unstructured: layer %d out of range [0, %d)", layer, len(m.ncpl))
	}
	return m.ncpl[layer], nil
}

// LayerArray returns the values of a for one layer. a holds either one
// value per node or one value per cell of the layer.
func (m *Mesh) LayerArray(a []float64, layer int) ([]float64, error) {
	start, stop, err := m.LayerNodeRange(layer)
	if err != nil {
		return nil, err
	}
	switch len(a) {
	case m.ncpl[layer]:
		return cloneFloats(a), nil
	case m.NNodes():
		return cloneFloats(a[start:stop]), nil
	}
	return nil, fmt.Errorf("unstructured: array length %d is neither %d nodes nor %d cells in layer %d",
		len(a), m.NNodes(), m.ncpl[layer], layer)
}

// NCPLFromIHC returns the number of cells in each layer, taking the
// layer number of each node from the diagonal (self-connection) entry of
// the ihc connection array. It returns nil if the layer numbers found
// are not consecutive.
func NCPLFromIHC(ihc, iac []int) ([]int, error) {
	counts := make(map[int]int)
	pos := 0
	for node, n := range iac {
		if pos >= len(ihc) {
			return nil, fmt.Errorf("unstructured: ihc has %d entries but node %d starts at %d",
				len(ihc), node, pos)
		}
		counts[ihc[pos]]++
		pos += n
	}
	layers := make([]int, 0, len(counts))
	for l := range counts {
		layers = append(layers, l)
	}
	sort.Ints(layers)
	ncpl := make([]int, len(layers))
	for i, l := range layers {
		if i > 0 && l != layers[i-1]+1 {
			return nil, nil
		}
		ncpl[i] = counts[l]
	}
	return ncpl, nil
}
