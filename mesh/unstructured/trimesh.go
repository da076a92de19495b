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
	"strconv"

	"github.com/ctessum/geom"
	"github.com/sirupsen/logrus"
)

const trimeshFormat = "trimesh"

// ReadTrimesh reads a triangular mesh exported in the legacy trimesh
// format and repeats it for nlay layers.
func ReadTrimesh(path string, nlay int) (*Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("unstructured: %v", err)
	}
	defer f.Close()
	return FromTrimesh(f, nlay)
}

// FromTrimesh reads a triangular mesh in the legacy trimesh format:
//
//	ncells nverts
//	tag id x y          (nverts lines, 1-based ids)
//	tag tag v0 v1 v2    (ncells lines, 1-based vertex ids)
//
// A line after the header that is not a vertex record is skipped.
// Every triangle is closed by repeating its first vertex and its
// center is the triangle centroid. The same layout is used for each
// of the nlay layers.
func FromTrimesh(r io.Reader, nlay int) (*Mesh, error) {
	if nlay < 1 {
		return nil, fmt.Errorf("unstructured: invalid number of layers %d", nlay)
	}
	lr := newLineReader(r, trimeshFormat)
	f, err := lr.next()
	if err != nil {
		return nil, err
	}
	if len(f) < 2 {
		return nil, lr.errorf("expected ncells and nverts but got %q", f)
	}
	ncells, err := lr.atoi(f[0])
	if err != nil {
		return nil, err
	}
	nverts, err := lr.atoi(f[1])
	if err != nil {
		return nil, err
	}
	if ncells < 0 || nverts < 0 {
		return nil, lr.errorf("negative ncells or nverts")
	}

	vertices := make([]Vertex, nverts)
	coords := make(map[int]geom.Point, nverts)
	if nverts > 0 {
		// Exports may carry a title line between the header and the
		// first vertex.
		if f, err = lr.next(); err != nil {
			return nil, err
		}
		if !isVertexRecord(f) {
			f = nil
		}
	}
	for i := range vertices {
		if i > 0 || f == nil {
			if f, err = lr.next(); err != nil {
				return nil, err
			}
		}
		if len(f) < 4 {
			return nil, lr.errorf("expected 4 fields in vertex record but got %d", len(f))
		}
		id, err := lr.atoi(f[1])
		if err != nil {
			return nil, err
		}
		x, err := lr.atof(f[2])
		if err != nil {
			return nil, err
		}
		y, err := lr.atof(f[3])
		if err != nil {
			return nil, err
		}
		vertices[i] = Vertex{ID: id - 1, X: x, Y: y}
		coords[id-1] = geom.Point{X: x, Y: y}
	}

	iverts := make([][]int, ncells)
	xc := make([]float64, ncells)
	yc := make([]float64, ncells)
	for i := range iverts {
		if f, err = lr.next(); err != nil {
			return nil, err
		}
		if len(f) < 5 {
			return nil, lr.errorf("expected 5 fields in cell record but got %d", len(f))
		}
		iv := make([]int, 0, 4)
		for _, s := range f[2:5] {
			v, err := lr.atoi(s)
			if err != nil {
				return nil, err
			}
			if _, ok := coords[v-1]; !ok {
				return nil, lr.wrap(fmt.Errorf("%w: %d", ErrUnknownVertex, v))
			}
			iv = append(iv, v-1)
		}
		if iv[0] != iv[len(iv)-1] {
			iv = append(iv, iv[0])
		}
		iverts[i] = iv

		ring := make(geom.Path, len(iv))
		for j, v := range iv {
			ring[j] = coords[v]
		}
		c := geom.Polygon{ring}.Centroid()
		xc[i], yc[i] = c.X, c.Y
	}

	ncpl := make([]int, nlay)
	for k := range ncpl {
		ncpl[k] = len(iverts)
	}
	Log.WithFields(logrus.Fields{
		"format": trimeshFormat,
		"cells":  ncells,
		"verts":  nverts,
		"nlay":   nlay,
	}).Debug("unstructured: imported mesh")
	return New(Options{
		Vertices: vertices,
		IVerts:   iverts,
		XCenters: xc,
		YCenters: yc,
		NCPL:     ncpl,
	})
}

// isVertexRecord returns whether f starts with the integer tag and id
// of a vertex line.
func isVertexRecord(f []string) bool {
	if len(f) < 2 {
		return false
	}
	for _, s := range f[:2] {
		if _, err := strconv.Atoi(s); err != nil {
			return false
		}
	}
	return true
}
