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

// Package plot holds grid outputs in a form that can be passed
// directly to gonum plotters.
package plot

import (
	"fmt"

	"gonum.org/v1/plot/plotter"
)

var _ plotter.XYer = XYs{}

// XYs implements the gonum.org/v1/plot/plotter.XYer interface.
type XYs []XY

// XY is an x and y value.
type XY struct{ X, Y float64 }

// Segment returns a two-point line from (x0, y0) to (x1, y1).
func Segment(x0, y0, x1, y1 float64) XYs {
	return XYs{{X: x0, Y: y0}, {X: x1, Y: y1}}
}

// Len returns the number of X,Y pairs.
func (xys XYs) Len() int {
	return len(xys)
}

// XY return the x and y values at index i, where i < Len()
func (xys XYs) XY(i int) (float64, float64) {
	return xys[i].X, xys[i].Y
}

// Lines returns a gonum line plotter for each polyline in xys,
// ready to be added to a plot.
func Lines(xys []XYs) ([]*plotter.Line, error) {
	o := make([]*plotter.Line, len(xys))
	for i, l := range xys {
		var err error
		if o[i], err = plotter.NewLine(l); err != nil {
			return nil, fmt.Errorf("plot: line %d: %v", i, err)
		}
	}
	return o, nil
}
