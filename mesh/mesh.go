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

/*Package mesh defines interfaces and shared helpers for groundwater model grids.*/
package mesh

import (
	"fmt"
	"strings"

	"github.com/golang/geo/r2"
)

// Grid describes a layered model grid.
type Grid interface {
	// NNodes is the total number of cells in this Grid,
	// summed over all layers.
	NNodes() int

	// NLay returns the number of layers in this grid.
	NLay() int

	// Extent returns the bounding rectangle of the grid
	// in world coordinates.
	Extent() (r2.Rect, error)

	// Neighbors returns the ids of the cells adjacent to node,
	// using the specified method for determining adjacency.
	// Cached adjacency is rebuilt when reset is true.
	Neighbors(node int, method NeighborMethod, reset bool) ([]int, error)

	// GeoJSON serializes the cell polygons of this grid
	// into a GeoJSON FeatureCollection.
	GeoJSON() ([]byte, error)

	// InvalidateCache marks all derived geometry as out of date.
	InvalidateCache()
}

// NeighborMethod specifies how cell adjacency is determined.
type NeighborMethod int

const (
	// IAC specifies that neighbors are read from explicit
	// iac/ja connectivity.
	IAC NeighborMethod = iota
	// Rook specifies that cells are neighbors if they
	// share an edge.
	Rook
	// Queen specifies that cells are neighbors if they
	// share at least one vertex.
	Queen
)

func (m NeighborMethod) String() string {
	switch m {
	case IAC:
		return "iac"
	case Rook:
		return "rook"
	case Queen:
		return "queen"
	default:
		return fmt.Sprintf("NeighborMethod(%d)", int(m))
	}
}

// ParseNeighborMethod returns the NeighborMethod with the given name.
func ParseNeighborMethod(s string) (NeighborMethod, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "iac":
		return IAC, nil
	case "rook":
		return Rook, nil
	case "queen":
		return Queen, nil
	}
	return 0, fmt.Errorf("mesh: invalid neighbor method %q", s)
}
