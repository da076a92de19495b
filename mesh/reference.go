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
	"math"

	"github.com/ctessum/geom/proj"
)

// Reference locates a grid's local coordinate system in the world.
// Local coordinates are rotated counter-clockwise by AngRot degrees
// about the local origin and then shifted by (XOff, YOff).
type Reference struct {
	XOff   float64 `toml:"xoff"`
	YOff   float64 `toml:"yoff"`
	AngRot float64 `toml:"angrot"` // degrees
	CRS    string  `toml:"crs"`    // carried for consumers; not interpreted here
}

// IsZero returns whether r leaves coordinates unchanged.
func (r Reference) IsZero() bool {
	return r.XOff == 0 && r.YOff == 0 && r.AngRot == 0
}

// Scaled returns a copy of r with the offsets multiplied by factor.
// The rotation is unchanged.
func (r Reference) Scaled(factor float64) Reference {
	r.XOff *= factor
	r.YOff *= factor
	return r
}

// Transformer returns a function converting local coordinates
// to world coordinates.
func (r Reference) Transformer() proj.Transformer {
	sin, cos := math.Sincos(r.AngRot * math.Pi / 180)
	return func(x, y float64) (float64, float64, error) {
		return r.XOff + x*cos - y*sin, r.YOff + x*sin + y*cos, nil
	}
}

// Inverse returns a function converting world coordinates
// to local coordinates.
func (r Reference) Inverse() proj.Transformer {
	sin, cos := math.Sincos(r.AngRot * math.Pi / 180)
	return func(x, y float64) (float64, float64, error) {
		x -= r.XOff
		y -= r.YOff
		return x*cos + y*sin, -x*sin + y*cos, nil
	}
}

// Transform converts the local coordinates xs and ys to world coordinates.
// The inputs are not modified.
func (r Reference) Transform(xs, ys []float64) ([]float64, []float64, error) {
	return TransformAll(r.Transformer(), xs, ys)
}

// TransformAll applies t to each coordinate pair.
func TransformAll(t proj.Transformer, xs, ys []float64) ([]float64, []float64, error) {
	if len(xs) != len(ys) {
		return nil, nil, fmt.Errorf("mesh: %d x coordinates but %d y coordinates", len(xs), len(ys))
	}
	ox := make([]float64, len(xs))
	oy := make([]float64, len(ys))
	for i := range xs {
		var err error
		ox[i], oy[i], err = t(xs[i], ys[i])
		if err != nil {
			return nil, nil, err
		}
	}
	return ox, oy, nil
}
