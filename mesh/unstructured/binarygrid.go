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

	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/gwmesh/mesh"
	"github.com/spatialmodel/gwmesh/mesh/grb"
)

// GridDecoder decodes a binary grid file.
type GridDecoder interface {
	Decode(r io.Reader) (*grb.Grid, error)
}

// ReadBinaryGridFile reads an unstructured grid from the binary grid
// file at path. If dec is nil, grb.Decoder is used.
func ReadBinaryGridFile(path string, dec GridDecoder) (*Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("unstructured: %v", err)
	}
	defer f.Close()
	return FromBinaryGrid(f, dec)
}

// FromBinaryGrid reads an unstructured grid from a binary grid file.
// The file must describe a DISU grid and include vertex information.
// Connectivity stored in the file is kept for use with mesh.IAC
// neighbor queries.
func FromBinaryGrid(r io.Reader, dec GridDecoder) (*Mesh, error) {
	if dec == nil {
		dec = grb.Decoder{}
	}
	g, err := dec.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("unstructured: decoding binary grid file: %w", err)
	}
	if g.GridType != "DISU" {
		return nil, fmt.Errorf("%w: got %s", ErrUnsupportedGridType, g.GridType)
	}
	if g.IVerts == nil || g.Verts == nil {
		return nil, ErrNoVertexData
	}

	vertices := make([]Vertex, len(g.Verts))
	for i, v := range g.Verts {
		vertices[i] = Vertex{ID: i, X: v[0], Y: v[1]}
	}
	xc := make([]float64, len(g.CellCenters))
	yc := make([]float64, len(g.CellCenters))
	for i, c := range g.CellCenters {
		xc[i], yc[i] = c[0], c[1]
	}

	var md *DISU
	if g.Nodes > 0 || g.NJA > 0 {
		md = &DISU{Nodes: g.Nodes, NJAG: g.NJA}
	}

	Log.WithFields(logrus.Fields{
		"format": "binary grid",
		"nodes":  len(g.IVerts),
		"verts":  len(g.Verts),
	}).Debug("unstructured: imported mesh")
	return New(Options{
		Vertices: vertices,
		IVerts:   g.IVerts,
		XCenters: xc,
		YCenters: yc,
		Top:      g.Top,
		Botm:     g.Bot,
		IDomain:  g.IDomain,
		IAC:      g.IAC,
		JA:       g.JA,
		Metadata: md,
		Reference: mesh.Reference{
			XOff:   g.XOrigin,
			YOff:   g.YOrigin,
			AngRot: g.AngRot,
		},
	})
}
