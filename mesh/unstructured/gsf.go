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
	"io"
	"os"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/floats"
)

const gsfFormat = "grid specification"

// ReadGridSpec reads a grid specification (GSF) file.
func ReadGridSpec(path string) (*Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("unstructured: %v", err)
	}
	defer f.Close()
	return FromGridSpec(f)
}

// FromGridSpec reads a grid in grid specification (GSF) format:
//
//	UNSTRUCTURED
//	nnodes
//	nverts
//	x y z                               (nverts lines)
//	id x y z layer nv v1 v2 ... vnv     (nnodes lines, 1-based vertex ids)
//
// Lines starting with "#" before the header are skipped. The top and
// bottom of each cell are the highest and lowest elevation
// of its vertices, and each distinct layer value, in ascending order,
// becomes one layer. The cells of a layer are expected to be listed
// together.
func FromGridSpec(r io.Reader) (*Mesh, error) {
	lr := newLineReader(r, gsfFormat)
	header, err := lr.next()
	for err == nil && strings.HasPrefix(header[0], "#") {
		header, err = lr.next()
	}
	if err != nil {
		return nil, err
	}
	for i, h := range header {
		header[i] = strings.ToUpper(h)
	}
	// TODO: this rejects "UNSTRUCTURED GWF" headers; confirm the intended
	// header grammar before accepting model type tags.
	if !(len(header) == 1 && header[0] == "UNSTRUCTURED") ||
		(len(header) == 2 && header[0] == "UNSTRUCTURED" && header[1] == "GWF") {
		return nil, lr.wrap(fmt.Errorf("%w: %q", ErrInvalidHeader, strings.Join(header, " ")))
	}

	nnodes, err := lr.count("number of nodes")
	if err != nil {
		return nil, err
	}
	nverts, err := lr.count("number of vertices")
	if err != nil {
		return nil, err
	}

	vertices := make([]Vertex, nverts)
	zverts := make([]float64, nverts)
	for i := range vertices {
		f, err := lr.next()
		if err != nil {
			return nil, err
		}
		if len(f) < 3 {
			return nil, lr.errorf("expected x, y and z of vertex %d", i+1)
		}
		v := Vertex{ID: i}
		if v.X, err = lr.atof(f[0]); err != nil {
			return nil, err
		}
		if v.Y, err = lr.atof(f[1]); err != nil {
			return nil, err
		}
		if zverts[i], err = lr.atof(f[2]); err != nil {
			return nil, err
		}
		vertices[i] = v
	}

	iverts := make([][]int, nnodes)
	xc := make([]float64, nnodes)
	yc := make([]float64, nnodes)
	top := make([]float64, nnodes)
	botm := make([]float64, nnodes)
	layerCells := make(map[float64]int)
	for n := 0; n < nnodes; n++ {
		f, err := lr.next()
		if err != nil {
			return nil, err
		}
		if len(f) < 6 {
			return nil, lr.errorf("expected at least 6 fields in cell record but got %d", len(f))
		}
		if xc[n], err = lr.atof(f[1]); err != nil {
			return nil, err
		}
		if yc[n], err = lr.atof(f[2]); err != nil {
			return nil, err
		}
		lay, err := lr.atof(f[4])
		if err != nil {
			return nil, err
		}
		nv, err := lr.atoi(f[5])
		if err != nil {
			return nil, err
		}
		ids := f[6:]
		if nv != len(ids) {
			return nil, lr.wrap(&VertexCountError{Node: n, Declared: nv, Found: len(ids)})
		}
		iv := make([]int, len(ids))
		z := make([]float64, len(ids))
		for j, s := range ids {
			v, err := lr.atoi(s)
			if err != nil {
				return nil, err
			}
			if v < 1 || v > nverts {
				return nil, lr.wrap(fmt.Errorf("%w: %d", ErrUnknownVertex, v))
			}
			iv[j] = v - 1
			z[j] = zverts[v-1]
		}
		iverts[n] = iv
		if len(z) > 0 {
			top[n] = floats.Max(z)
			botm[n] = floats.Min(z)
		}
		layerCells[lay]++
	}

	layers := make([]float64, 0, len(layerCells))
	for lay := range layerCells {
		layers = append(layers, lay)
	}
	sort.Float64s(layers)
	ncpl := make([]int, len(layers))
	for k, lay := range layers {
		ncpl[k] = layerCells[lay]
	}

	Log.WithFields(logrus.Fields{
		"format": gsfFormat,
		"nodes":  nnodes,
		"verts":  nverts,
		"nlay":   len(ncpl),
	}).Debug("unstructured: imported mesh")
	o := Options{
		Vertices: vertices,
		IVerts:   iverts,
		XCenters: xc,
		YCenters: yc,
		Top:      top,
		Botm:     botm,
	}
	if len(ncpl) > 0 {
		o.NCPL = ncpl
	}
	return New(o)
}
