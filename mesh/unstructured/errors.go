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
	"errors"
	"fmt"
)

// Construction errors.
var (
	ErrNCPLType      = errors.New("unstructured: ncpl must be an integer or a flat sequence of non-negative integers")
	ErrNCPLShape     = errors.New("unstructured: ncpl must be one-dimensional")
	ErrIVertsLength  = errors.New("unstructured: length of iverts does not match the grid shape")
	ErrUnknownVertex = errors.New("unstructured: cell references an unknown vertex id")
	ErrMetadata      = errors.New("unstructured: simulation metadata does not match the grid")
)

// Format errors.
var (
	ErrUnsupportedGridType = errors.New("unstructured: binary grid file does not describe an unstructured (DISU) grid")
	ErrNoVertexData        = errors.New("unstructured: binary grid file does not contain vertex information")
	ErrInvalidHeader       = errors.New("unstructured: invalid grid specification file header")
)

// State and query errors.
var (
	ErrInvalid        = errors.New("unstructured: grid is missing vertices, iverts, or cell centers")
	ErrIncomplete     = errors.New("unstructured: grid is missing top or bottom elevations")
	ErrNoConnectivity = errors.New("unstructured: grid does not have iac/ja connectivity")
	ErrNodeRange      = errors.New("unstructured: node id out of range")
	ErrPointOutside   = errors.New("unstructured: point is not inside any grid cell")
)

// OutsideError is returned by Intersect when no cell contains the
// requested point. It matches ErrPointOutside with errors.Is.
type OutsideError struct {
	X, Y float64
	Z    *float64 // nil when no elevation was requested
}

func (e *OutsideError) Error() string {
	if e.Z != nil {
		return fmt.Sprintf("unstructured: point (%g, %g, %g) is not inside any grid cell", e.X, e.Y, *e.Z)
	}
	return fmt.Sprintf("unstructured: point (%g, %g) is not inside any grid cell", e.X, e.Y)
}

// Is reports whether target is ErrPointOutside.
func (e *OutsideError) Is(target error) bool { return target == ErrPointOutside }

// VertexCountError indicates that a cell declares a different number of
// vertices than are listed for it.
type VertexCountError struct {
	Node     int
	Declared int
	Found    int
}

func (e *VertexCountError) Error() string {
	return fmt.Sprintf("unstructured: cell %d declares %d vertices but lists %d",
		e.Node, e.Declared, e.Found)
}

// FormatError locates a problem in an imported mesh file.
type FormatError struct {
	Format string
	Line   int
	Err    error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("unstructured: %s line %d: %v", e.Format, e.Line, e.Err)
}

func (e *FormatError) Unwrap() error { return e.Err }
