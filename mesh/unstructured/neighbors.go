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

	"github.com/spatialmodel/gwmesh/mesh"
)

// Neighbors returns the ids of the nodes adjacent to node.
//
// With mesh.IAC the neighbors are read from the iac/ja connectivity and
// cached until reset is true. With mesh.Rook or mesh.Queen they are
// derived from shared cell edges or vertices and cached until reset is
// true or the grid changes; for a grid with a shared layout, the
// neighbors of a node lie in the same layer as the node.
func (m *Mesh) Neighbors(node int, method mesh.NeighborMethod, reset bool) ([]int, error) {
	nb, err := m.neighborMap(method, reset)
	if err != nil {
		return nil, err
	}
	if method == mesh.IAC {
		if node < 0 || node >= len(m.iac) {
			return nil, fmt.Errorf("%w: %d", ErrNodeRange, node)
		}
		return cloneInts(nb[node]), nil
	}
	if node < 0 || node >= m.NNodes() {
		return nil, fmt.Errorf("%w: %d", ErrNodeRange, node)
	}
	if m.VariesByLayer() {
		return cloneInts(nb[node]), nil
	}
	offset := m.layerOffset(m.layerOf(node))
	o := make([]int, len(nb[node-offset]))
	for i, n := range nb[node-offset] {
		o[i] = n + offset
	}
	return o, nil
}

// NeighborMap returns the neighbors of every node as computed by
// Neighbors. For a grid with a shared layout and the mesh.Rook or
// mesh.Queen method, only the first layer is included.
func (m *Mesh) NeighborMap(method mesh.NeighborMethod, reset bool) (map[int][]int, error) {
	nb, err := m.neighborMap(method, reset)
	if err != nil {
		return nil, err
	}
	o := make(map[int][]int, len(nb))
	for k, v := range nb {
		o[k] = cloneInts(v)
	}
	return o, nil
}

func (m *Mesh) neighborMap(method mesh.NeighborMethod, reset bool) (map[int][]int, error) {
	if m.neighbors == nil {
		m.neighbors = make(map[mesh.NeighborMethod]neighborCache)
	}
	c, ok := m.neighbors[method]
	if ok && !reset && (method == mesh.IAC || c.generation == m.generation) {
		return c.neighbors, nil
	}
	var nb map[int][]int
	var err error
	if method == mesh.IAC {
		nb, err = m.iacNeighbors()
	} else {
		if m.iverts == nil {
			return nil, ErrInvalid
		}
		nb, err = mesh.Adjacency(m.iverts, method)
	}
	if err != nil {
		return nil, err
	}
	m.neighbors[method] = neighborCache{neighbors: nb, generation: m.generation}
	return nb, nil
}

// iacNeighbors splits ja into per-node neighbor lists, leaving out the
// leading self reference of each node.
func (m *Mesh) iacNeighbors() (map[int][]int, error) {
	if m.iac == nil || m.ja == nil {
		return nil, ErrNoConnectivity
	}
	o := make(map[int][]int, len(m.iac))
	start := 0
	for node, n := range m.iac {
		if n < 0 || start+n > len(m.ja) {
			return nil, fmt.Errorf("unstructured: iac entry %d for node %d overruns ja (length %d)",
				n, node, len(m.ja))
		}
		nb := []int{}
		if n > 1 {
			nb = append(nb, m.ja[start+1:start+n]...)
		}
		o[node] = nb
		start += n
	}
	return o, nil
}
