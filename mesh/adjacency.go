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

package mesh

import (
	"fmt"
	"sort"
)

// edge is an undirected cell edge, keyed by its vertex ids
// with the lower id first.
type edge [2]int

func newEdge(a, b int) edge {
	if a > b {
		a, b = b, a
	}
	return edge{a, b}
}

// Adjacency determines which cells are neighbors based only on
// the vertex ids that make up each cell. cells[i] holds the ordered
// vertex ids of cell i. With Rook, cells sharing an edge (two
// consecutive vertices) are neighbors; with Queen, cells sharing any
// vertex are. The returned map holds an entry, sorted ascending,
// for every cell.
func Adjacency(cells [][]int, method NeighborMethod) (map[int][]int, error) {
	// index maps an edge or vertex key to the cells that contain it.
	var index map[interface{}][]int
	switch method {
	case Rook:
		index = make(map[interface{}][]int)
		for i, c := range cells {
			for j := range c {
				a, b := c[(j+len(c)-1)%len(c)], c[j]
				if a == b {
					// Closing vertex of an explicitly closed polygon.
					continue
				}
				index[newEdge(a, b)] = appendUnique(index[newEdge(a, b)], i)
			}
		}
	case Queen:
		index = make(map[interface{}][]int)
		for i, c := range cells {
			for _, v := range c {
				index[v] = appendUnique(index[v], i)
			}
		}
	default:
		return nil, fmt.Errorf("mesh: adjacency cannot be computed geometrically with method %v", method)
	}

	sets := make([]map[int]struct{}, len(cells))
	for i := range sets {
		sets[i] = make(map[int]struct{})
	}
	for _, members := range index {
		for _, i := range members {
			for _, j := range members {
				if i != j {
					sets[i][j] = struct{}{}
				}
			}
		}
	}
	o := make(map[int][]int, len(cells))
	for i, s := range sets {
		nb := make([]int, 0, len(s))
		for j := range s {
			nb = append(nb, j)
		}
		sort.Ints(nb)
		o[i] = nb
	}
	return o, nil
}

func appendUnique(s []int, v int) []int {
	if len(s) > 0 && s[len(s)-1] == v {
		return s
	}
	return append(s, v)
}
