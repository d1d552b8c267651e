// Package convert runs the land cover to geogrid conversion: it splits a
// global CCI raster into hemispheres, converts the class codes to USGS land
// use categories and writes each hemisphere as a grid of geogrid tiles.
package convert

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/DHI-GRAS/raster-to-geogrid/tile"
)

// Size of the global CCI land cover raster (300 m, 1/360 degree cells).
const (
	GlobeWidth  = 129600
	GlobeHeight = 64800
	GridSize    = 10
)

var ErrInvalidConfig = errors.New("geotiles: invalid config")

// Format selects the tile sink.
type Format string

const (
	FormatGeogrid Format = "geogrid"
	FormatSQLite  Format = "sqlite"
)

func (f Format) Valid() bool {
	return f == FormatGeogrid || f == FormatSQLite
}

// Config describes a full conversion run.
type Config struct {
	InputPath string
	WestPath  string
	EastPath  string
	WestDir   string
	EastDir   string

	Width    int
	Height   int
	GridSize int

	Format     Format
	Streaming  bool
	WriteIndex bool

	Logger *slog.Logger
	// OnRow is called after each row of the input has been split.
	OnRow func(row int)
	// OnTile is called after each tile has been written.
	OnTile func(hemisphere Hemisphere, tileID tile.ID)
}

// DefaultConfig returns a Config for the global CCI raster without any paths.
func DefaultConfig() Config {
	return Config{
		Width:      GlobeWidth,
		Height:     GlobeHeight,
		GridSize:   GridSize,
		Format:     FormatGeogrid,
		WriteIndex: true,
	}
}

func (c *Config) validate() error {
	for name, value := range map[string]string{
		"input path":            c.InputPath,
		"west path":             c.WestPath,
		"east path":             c.EastPath,
		"west output directory": c.WestDir,
		"east output directory": c.EastDir,
	} {
		if value == "" {
			return fmt.Errorf("%w: missing %v", ErrInvalidConfig, name)
		}
	}
	if !c.Format.Valid() {
		return fmt.Errorf("%w: unknown format %q", ErrInvalidConfig, c.Format)
	}
	return nil
}
