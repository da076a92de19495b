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

// Package unstructured implements grids made of arbitrary polygonal
// cells, where the cell layout can either be shared by all layers or
// differ from layer to layer.
package unstructured

import (
	"fmt"
	"math"
	"reflect"

	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/gwmesh/mesh"
	"github.com/spf13/cast"
)

// Log receives debugging information about imports and
// geometry rebuilds.
var Log logrus.FieldLogger = logrus.StandardLogger()

// Make sure our grid fulfills the interface.
var _ mesh.Grid = &Mesh{}

// Vertex is a grid vertex in local coordinates.
type Vertex struct {
	ID   int
	X, Y float64
}

// Cell2D describes one cell of the horizontal grid layout: its id,
// cell center and the ids of the vertices around its boundary.
type Cell2D struct {
	ID     int
	X, Y   float64
	IVerts []int
}

// NVert returns the number of vertices of the cell.
func (c Cell2D) NVert() int { return len(c.IVerts) }

// Options holds the arrays a Mesh is built from. Either IVerts,
// XCenters and YCenters or Cell2D should be set.
type Options struct {
	Vertices []Vertex

	// IVerts holds the ordered vertex ids of each cell. It has one
	// entry per node when the layout varies by layer and one entry
	// per cell of the first layer otherwise.
	IVerts             [][]int
	XCenters, YCenters []float64

	// Cell2D replaces IVerts, XCenters and YCenters.
	Cell2D []Cell2D

	// Top and Botm hold the elevation of each node.
	Top, Botm []float64

	// NCPL gives the number of cells in each layer. It may be nil,
	// an integer, or a flat slice or array of integer values.
	NCPL interface{}

	// IAC and JA hold optional explicit cell connectivity.
	IAC, JA []int

	IDomain     []int
	Reference   mesh.Reference
	LengthUnits string

	// Metadata holds optional simulation values. When NCPL is nil,
	// Metadata.NodeLay is used in its place.
	Metadata *DISU
}

// Mesh is an unstructured grid. Apart from SetNCPL and an in-place
// CleanIVerts, a Mesh is not modified after creation. A Mesh is not
// safe for concurrent use.
type Mesh struct {
	vertices           []Vertex
	iverts             [][]int
	xcenters, ycenters []float64
	top, botm          []float64
	ncpl               []int
	iac, ja            []int
	idomain            []int
	ref                mesh.Reference
	lengthUnits        string
	metadata           *DISU

	// generation is incremented by every change that affects
	// derived geometry.
	generation uint64
	cache      geometryCache
	neighbors  map[mesh.NeighborMethod]neighborCache
}

// New creates a new unstructured grid. The input slices are copied.
func New(o Options) (*Mesh, error) {
	m := &Mesh{
		vertices:    cloneVertices(o.Vertices),
		iverts:      cloneIVerts(o.IVerts),
		xcenters:    cloneFloats(o.XCenters),
		ycenters:    cloneFloats(o.YCenters),
		top:         cloneFloats(o.Top),
		botm:        cloneFloats(o.Botm),
		iac:         cloneInts(o.IAC),
		ja:          cloneInts(o.JA),
		idomain:     cloneInts(o.IDomain),
		ref:         o.Reference,
		lengthUnits: o.LengthUnits,
		metadata:    o.Metadata.Copy(),
		generation:  1,
	}
	if o.Cell2D != nil {
		m.iverts = make([][]int, len(o.Cell2D))
		m.xcenters = make([]float64, len(o.Cell2D))
		m.ycenters = make([]float64, len(o.Cell2D))
		for i, c := range o.Cell2D {
			m.iverts[i] = append([]int{}, c.IVerts...)
			m.xcenters[i] = c.X
			m.ycenters[i] = c.Y
		}
	}
	ncpl, err := normalizeNCPL(o.NCPL)
	if err != nil {
		return nil, err
	}
	if ncpl == nil && m.metadata != nil && m.metadata.NodeLay != nil {
		ncpl = cloneInts(m.metadata.NodeLay)
	}
	if ncpl == nil && m.IsValid() {
		ncpl = []int{len(m.iverts)}
	}
	m.ncpl = ncpl
	if err := m.checkShape(); err != nil {
		return nil, err
	}
	if err := m.checkVertexIDs(); err != nil {
		return nil, err
	}
	if m.metadata != nil {
		if err := m.metadata.check(m); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// checkVertexIDs makes sure every cell references a known vertex.
func (m *Mesh) checkVertexIDs() error {
	if m.vertices == nil || m.iverts == nil {
		return nil
	}
	ids := make(map[int]bool, len(m.vertices))
	for _, v := range m.vertices {
		ids[v.ID] = true
	}
	for i, iv := range m.iverts {
		for _, id := range iv {
			if !ids[id] {
				return fmt.Errorf("%w: cell %d references vertex %d", ErrUnknownVertex, i, id)
			}
		}
	}
	return nil
}

// checkShape makes sure the number of cell vertex lists matches ncpl.
func (m *Mesh) checkShape() error {
	if m.iverts == nil || len(m.ncpl) == 0 {
		return nil
	}
	if m.VariesByLayer() {
		if len(m.iverts) != m.NNodes() {
			return fmt.Errorf("%w: %d cells but %d nodes", ErrIVertsLength, len(m.iverts), m.NNodes())
		}
		return nil
	}
	for k, n := range m.ncpl {
		if n != len(m.iverts) {
			return fmt.Errorf("%w: %d cells but layer %d has %d cells", ErrIVertsLength, len(m.iverts), k, n)
		}
	}
	return nil
}

// normalizeNCPL converts the accepted ncpl representations to
// a slice of cell counts.
func normalizeNCPL(v interface{}) ([]int, error) {
	if v == nil {
		return nil, nil
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			return nil, nil
		}
		for i := 0; i < rv.Len(); i++ {
			e := rv.Index(i)
			for e.Kind() == reflect.Interface && !e.IsNil() {
				e = e.Elem()
			}
			if e.Kind() == reflect.Slice || e.Kind() == reflect.Array {
				return nil, ErrNCPLShape
			}
			if !isInteger(e) {
				return nil, fmt.Errorf("%w: element %d is %v", ErrNCPLType, i, e)
			}
		}
		o, err := cast.ToIntSliceE(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrNCPLType, err)
		}
		o = append([]int{}, o...)
		for _, n := range o {
			if n < 0 {
				return nil, fmt.Errorf("%w: negative cell count %d", ErrNCPLType, n)
			}
		}
		return o, nil
	default:
		if !isInteger(rv) {
			return nil, fmt.Errorf("%w: got %T", ErrNCPLType, v)
		}
		n, err := cast.ToIntE(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrNCPLType, err)
		}
		if n < 0 {
			return nil, fmt.Errorf("%w: negative cell count %d", ErrNCPLType, n)
		}
		return []int{n}, nil
	}
}

// isInteger returns whether v holds an integer value, possibly
// stored in a floating point type.
func isInteger(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	case reflect.Float32, reflect.Float64:
		f := v.Float()
		return !math.IsInf(f, 0) && f == math.Trunc(f)
	}
	return false
}

// SetNCPL replaces the number of cells per layer and invalidates
// all cached geometry. value accepts the same forms as Options.NCPL.
// The grid is left unchanged if value is invalid.
func (m *Mesh) SetNCPL(value interface{}) error {
	ncpl, err := normalizeNCPL(value)
	if err != nil {
		return err
	}
	if ncpl == nil && m.IsValid() {
		ncpl = []int{len(m.iverts)}
	}
	old := m.ncpl
	m.ncpl = ncpl
	if err := m.checkShape(); err != nil {
		m.ncpl = old
		return err
	}
	m.InvalidateCache()
	return nil
}

// InvalidateCache marks all derived geometry as out of date.
func (m *Mesh) InvalidateCache() {
	m.generation++
	Log.WithField("generation", m.generation).Debug("unstructured: geometry cache invalidated")
}

// NCPL returns the number of cells in each layer.
func (m *Mesh) NCPL() []int { return cloneInts(m.ncpl) }

// NLay returns the number of layers.
func (m *Mesh) NLay() int { return len(m.ncpl) }

// NNodes returns the total number of cells in all layers.
func (m *Mesh) NNodes() int {
	n := 0
	for _, c := range m.ncpl {
		n += c
	}
	return n
}

// VariesByLayer returns whether each layer has its own cell layout.
// It is false for a grid that is not valid.
func (m *Mesh) VariesByLayer() bool {
	if len(m.ncpl) == 0 || !m.IsValid() {
		return false
	}
	return m.ncpl[0] != len(m.iverts)
}

// IsValid returns whether the vertices, cell vertex lists and cell
// centers are all present.
func (m *Mesh) IsValid() bool {
	return m.iverts != nil && m.vertices != nil && m.xcenters != nil && m.ycenters != nil
}

// IsComplete returns whether the grid is valid and has
// top and bottom elevations.
func (m *Mesh) IsComplete() bool {
	return m.IsValid() && m.top != nil && m.botm != nil
}

// IVerts returns the vertex ids of each cell.
func (m *Mesh) IVerts() [][]int { return cloneIVerts(m.iverts) }

// Vertices returns the grid vertices in local coordinates.
func (m *Mesh) Vertices() []Vertex { return cloneVertices(m.vertices) }

// NVert returns the number of vertices.
func (m *Mesh) NVert() int { return len(m.vertices) }

// Top returns the top elevation of each node.
func (m *Mesh) Top() []float64 { return cloneFloats(m.top) }

// Botm returns the bottom elevation of each node.
func (m *Mesh) Botm() []float64 { return cloneFloats(m.botm) }

// TopBotm returns the top and bottom elevations of each node as two
// rows, or nil if either is missing.
func (m *Mesh) TopBotm() [][]float64 {
	if m.top == nil || m.botm == nil {
		return nil
	}
	return [][]float64{m.Top(), m.Botm()}
}

// IDomain returns the domain flag of each node, if set.
func (m *Mesh) IDomain() []int { return cloneInts(m.idomain) }

// IAC returns the number of connections of each node, if set.
func (m *Mesh) IAC() []int { return cloneInts(m.iac) }

// JA returns the flattened connection list, if set.
func (m *Mesh) JA() []int { return cloneInts(m.ja) }

// Reference returns the location of the grid in world coordinates.
func (m *Mesh) Reference() mesh.Reference { return m.ref }

// LengthUnits returns the name of the grid length unit.
func (m *Mesh) LengthUnits() string { return m.lengthUnits }

// Cell2D returns the cell table of the horizontal layout,
// in local coordinates.
func (m *Mesh) Cell2D() []Cell2D {
	if !m.IsValid() {
		return nil
	}
	o := make([]Cell2D, len(m.iverts))
	for i, iv := range m.iverts {
		o[i] = Cell2D{ID: i, IVerts: append([]int{}, iv...)}
		if i < len(m.xcenters) {
			o[i].X = m.xcenters[i]
		}
		if i < len(m.ycenters) {
			o[i].Y = m.ycenters[i]
		}
	}
	return o
}

// Verts returns the x and y world coordinates of each vertex,
// in vertex storage order.
func (m *Mesh) Verts() ([][2]float64, error) {
	xs := make([]float64, len(m.vertices))
	ys := make([]float64, len(m.vertices))
	for i, v := range m.vertices {
		xs[i], ys[i] = v.X, v.Y
	}
	if !m.ref.IsZero() {
		var err error
		if xs, ys, err = m.ref.Transform(xs, ys); err != nil {
			return nil, err
		}
	}
	o := make([][2]float64, len(xs))
	for i := range xs {
		o[i] = [2]float64{xs[i], ys[i]}
	}
	return o, nil
}

// options returns the construction options that recreate m.
func (m *Mesh) options() Options {
	o := Options{
		Vertices:    m.Vertices(),
		IVerts:      m.IVerts(),
		XCenters:    cloneFloats(m.xcenters),
		YCenters:    cloneFloats(m.ycenters),
		Top:         m.Top(),
		Botm:        m.Botm(),
		IAC:         m.IAC(),
		JA:          m.JA(),
		IDomain:     m.IDomain(),
		Reference:   m.ref,
		LengthUnits: m.lengthUnits,
		Metadata:    m.Metadata(),
	}
	if m.ncpl != nil {
		o.NCPL = m.NCPL()
	}
	return o
}

// layerOffset returns the id of the first node of layer k.
func (m *Mesh) layerOffset(k int) int {
	n := 0
	for _, c := range m.ncpl[:k] {
		n += c
	}
	return n
}

// layerOf returns the layer containing node.
func (m *Mesh) layerOf(node int) int {
	for k, c := range m.ncpl {
		if node < c {
			return k
		}
		node -= c
	}
	return -1
}

func cloneVertices(s []Vertex) []Vertex {
	if s == nil {
		return nil
	}
	o := make([]Vertex, len(s))
	copy(o, s)
	return o
}

func cloneFloats(s []float64) []float64 {
	if s == nil {
		return nil
	}
	o := make([]float64, len(s))
	copy(o, s)
	return o
}

func cloneInts(s []int) []int {
	if s == nil {
		return nil
	}
	o := make([]int, len(s))
	copy(o, s)
	return o
}

func cloneIVerts(s [][]int) [][]int {
	if s == nil {
		return nil
	}
	o := make([][]int, len(s))
	for i, iv := range s {
		o[i] = cloneInts(iv)
	}
	return o
}
