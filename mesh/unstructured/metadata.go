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

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/floats"
)

// DISU holds the unstructured discretization and time discretization
// values read with a grid from simulation input. They are carried
// with the grid but do not affect its geometry.
type DISU struct {
	Nodes   int   // total number of nodes
	NJAG    int   // total number of connections, including self connections
	IDSymRd int   // connection arrays are symmetric (0) or full (1)
	IVSD    int   // vertical sub-discretization flag
	LayCBD  []int // confining bed flag of each layer
	NodeLay []int // number of nodes in each layer

	Area []float64 // horizontal area of each node

	// IVC flags each connection as horizontal (0) or vertical (1).
	IVC []int

	// CL1, CL2 and CL12 are connection lengths, and FAHL the face area
	// of vertical connections or the face width of horizontal ones.
	CL1, CL2, CL12 []float64
	FAHL           []float64

	NPer   int // number of stress periods
	ITMUni int // time unit code
	PerLen []float64
	NStp   []int
	TSMult []float64
	Steady []bool
}

// Copy returns a deep copy of d.
func (d *DISU) Copy() *DISU {
	if d == nil {
		return nil
	}
	o := *d
	o.LayCBD = cloneInts(d.LayCBD)
	o.NodeLay = cloneInts(d.NodeLay)
	o.Area = cloneFloats(d.Area)
	o.IVC = cloneInts(d.IVC)
	o.CL1 = cloneFloats(d.CL1)
	o.CL2 = cloneFloats(d.CL2)
	o.CL12 = cloneFloats(d.CL12)
	o.FAHL = cloneFloats(d.FAHL)
	o.PerLen = cloneFloats(d.PerLen)
	o.NStp = cloneInts(d.NStp)
	o.TSMult = cloneFloats(d.TSMult)
	if d.Steady != nil {
		o.Steady = append([]bool{}, d.Steady...)
	}
	return &o
}

// scale multiplies the lengths and areas in d by factor.
// Face values are scaled as areas where IVC marks a vertical
// connection and as widths otherwise. Without IVC they are left
// unchanged.
func (d *DISU) scale(factor float64) {
	floats.Scale(factor*factor, d.Area)
	for _, s := range [][]float64{d.CL1, d.CL2, d.CL12} {
		floats.Scale(factor, s)
	}
	if len(d.FAHL) == 0 {
		return
	}
	if len(d.IVC) != len(d.FAHL) {
		Log.WithFields(logrus.Fields{
			"ivc":  len(d.IVC),
			"fahl": len(d.FAHL),
		}).Warn("unstructured: connection types unknown; face areas not converted")
		return
	}
	for i, v := range d.IVC {
		if v == 1 {
			d.FAHL[i] *= factor * factor
		} else {
			d.FAHL[i] *= factor
		}
	}
}

// check makes sure the counts in d agree with the grid.
func (d *DISU) check(m *Mesh) error {
	if d.Nodes > 0 && len(m.ncpl) > 0 && d.Nodes != m.NNodes() {
		return fmt.Errorf("%w: %d nodes but the grid has %d", ErrMetadata, d.Nodes, m.NNodes())
	}
	if d.NJAG > 0 && m.ja != nil && d.NJAG != len(m.ja) {
		return fmt.Errorf("%w: njag is %d but ja has %d entries", ErrMetadata, d.NJAG, len(m.ja))
	}
	if d.NodeLay != nil && len(m.ncpl) > 0 && !equalInts(d.NodeLay, m.ncpl) {
		return fmt.Errorf("%w: nodelay %v does not match ncpl %v", ErrMetadata, d.NodeLay, m.ncpl)
	}
	return nil
}

// Metadata returns a copy of the simulation metadata of the grid,
// or nil if there is none.
func (m *Mesh) Metadata() *DISU { return m.metadata.Copy() }

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
