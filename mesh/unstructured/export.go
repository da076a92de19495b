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
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/ctessum/geom"
	"github.com/ctessum/geom/encoding/shp"
	goshp "github.com/jonas-p/go-shp"
	gogeom "github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"
)

// cellFeature is one exported cell polygon.
type cellFeature struct {
	poly        geom.Polygon
	node, layer int
}

// cellFeatures returns the cell polygons in world coordinates with the
// node and layer they represent. A grid with a shared layout exports
// the cells of its first layer.
func (m *Mesh) cellFeatures() ([]cellFeature, error) {
	groups, err := m.MapPolygons()
	if err != nil {
		return nil, err
	}
	var o []cellFeature
	node := 0
	for k, polys := range groups {
		for _, p := range polys {
			o = append(o, cellFeature{poly: p, node: node, layer: k})
			node++
		}
	}
	return o, nil
}

// GeoJSON returns the cell polygons as a GeoJSON feature collection
// in world coordinates. Each feature has "node" and "layer" properties.
func (m *Mesh) GeoJSON() ([]byte, error) {
	cells, err := m.cellFeatures()
	if err != nil {
		return nil, err
	}
	fc := &geojson.FeatureCollection{Features: make([]*geojson.Feature, len(cells))}
	for i, c := range cells {
		rings := make([][]gogeom.Coord, len(c.poly))
		for j, path := range c.poly {
			rings[j] = make([]gogeom.Coord, len(path))
			for k, p := range path {
				rings[j][k] = gogeom.Coord{p.X, p.Y}
			}
		}
		g, err := gogeom.NewPolygon(gogeom.XY).SetCoords(rings)
		if err != nil {
			return nil, fmt.Errorf("unstructured: creating GeoJSON polygon for node %d: %v", c.node, err)
		}
		fc.Features[i] = &geojson.Feature{
			ID:       strconv.Itoa(c.node),
			Geometry: g,
			Properties: map[string]interface{}{
				"node":  c.node,
				"layer": c.layer,
			},
		}
	}
	b, err := json.Marshal(fc)
	if err != nil {
		return nil, fmt.Errorf("unstructured: encoding GeoJSON: %v", err)
	}
	return b, nil
}

// WriteShapefile writes the cell polygons in world coordinates to the
// shapefile at path, with "node" and "layer" attribute columns. Any
// existing shapefile with the same name is replaced.
func (m *Mesh) WriteShapefile(path string) error {
	cells, err := m.cellFeatures()
	if err != nil {
		return err
	}
	base := strings.TrimSuffix(path, ".shp")
	for _, ext := range []string{".shp", ".prj", ".dbf", ".shx"} {
		os.Remove(base + ext)
	}
	fields := []goshp.Field{
		goshp.NumberField("node", 10),
		goshp.NumberField("layer", 10),
	}
	e, err := shp.NewEncoderFromFields(base+".shp", goshp.POLYGON, fields...)
	if err != nil {
		return fmt.Errorf("unstructured: creating shapefile: %v", err)
	}
	for _, c := range cells {
		if err := e.EncodeFields(c.poly, c.node, c.layer); err != nil {
			e.Close()
			return fmt.Errorf("unstructured: writing shapefile: %v", err)
		}
	}
	e.Close()
	Log.WithField("cells", len(cells)).Debug("unstructured: wrote shapefile")
	return nil
}
