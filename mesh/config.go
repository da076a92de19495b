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
	"io"
	"os"

	"github.com/BurntSushi/toml"
)

// Config holds the settings used when building a grid from
// an external mesh file.
type Config struct {
	// Reference places the grid in world coordinates.
	Reference Reference `toml:"reference"`

	// NLay is the number of layers to create for mesh formats
	// that only describe a single 2-D layout. Zero means one layer.
	NLay int `toml:"nlay"`

	// LengthUnits is the name of the length unit of the grid
	// coordinates, e.g. "meters" or "feet".
	LengthUnits string `toml:"length_units"`
}

// Layers returns the configured number of layers, which is
// at least one.
func (c *Config) Layers() int {
	if c.NLay < 1 {
		return 1
	}
	return c.NLay
}

// LoadConfig reads a toml configuration from r.
func LoadConfig(r io.Reader) (*Config, error) {
	c := new(Config)
	if _, err := toml.DecodeReader(r, c); err != nil {
		return nil, fmt.Errorf("mesh: reading configuration: %v", err)
	}
	if c.NLay < 0 {
		return nil, fmt.Errorf("mesh: invalid number of layers %d in configuration", c.NLay)
	}
	return c, nil
}

// ReadConfig reads a toml configuration file.
func ReadConfig(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("mesh: %v", err)
	}
	defer f.Close()
	return LoadConfig(f)
}
