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
	"path/filepath"
	"strings"

	"github.com/spatialmodel/gwmesh/mesh"
)

// Open reads the mesh file at path, choosing the format from the file
// extension: ".grb" for binary grid files, ".gsf" for grid
// specification files, and ".tri" or ".trimesh" for trimesh exports.
//
// If c is not nil, c.Layers() sets the number of layers of trimesh
// imports, a non-zero c.Reference replaces the reference stored in the
// file, and c.LengthUnits sets the length units.
func Open(path string, c *mesh.Config) (*Mesh, error) {
	if c == nil {
		c = new(mesh.Config)
	}
	var m *Mesh
	var err error
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".grb":
		m, err = ReadBinaryGridFile(path, nil)
	case ".gsf":
		m, err = ReadGridSpec(path)
	case ".tri", ".trimesh":
		m, err = ReadTrimesh(path, c.Layers())
	default:
		return nil, fmt.Errorf("unstructured: unknown mesh file extension %q", ext)
	}
	if err != nil {
		return nil, err
	}
	if !c.Reference.IsZero() || c.Reference.CRS != "" {
		m.SetReference(c.Reference)
	}
	if c.LengthUnits != "" {
		m.lengthUnits = c.LengthUnits
	}
	return m, nil
}

// SetReference moves the grid to a new location in world coordinates
// and invalidates all cached geometry.
func (m *Mesh) SetReference(r mesh.Reference) {
	m.ref = r
	m.InvalidateCache()
}
