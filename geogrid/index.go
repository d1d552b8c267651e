package geogrid

import (
	"bytes"
	"fmt"
	"strconv"
)

// Index holds the fields of a geogrid "index" metadata file.
type Index struct {
	Type         string
	CategoryMin  int
	CategoryMax  int
	Projection   string
	DX           float64
	DY           float64
	KnownX       float64
	KnownY       float64
	KnownLat     float64
	KnownLon     float64
	WordSize     int
	TileX        int
	TileY        int
	TileZ        int
	Units        string
	Description  string
	MissingValue int
	RowOrder     string
}

// LandUseIndex returns the index of a USGS land use tileset of tile size
// tileX x tileY, on a regular lat/lon grid of cell size dx by dy degrees
// whose first (top-left) cell is centered at knownLat, knownLon. For rows
// numbered from the north, dy is negative.
func LandUseIndex(tileX, tileY int, dx, dy, knownLat, knownLon float64) Index {
	return Index{
		Type:         "categorical",
		CategoryMin:  101,
		CategoryMax:  124,
		Projection:   "regular_ll",
		DX:           dx,
		DY:           dy,
		KnownX:       1,
		KnownY:       1,
		KnownLat:     knownLat,
		KnownLon:     knownLon,
		WordSize:     1,
		TileX:        tileX,
		TileY:        tileY,
		TileZ:        1,
		Units:        "category",
		Description:  "CCI land cover converted to USGS land use",
		MissingValue: 0,
		RowOrder:     "top_bottom",
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func (i Index) MarshalText() ([]byte, error) {
	if i.TileX <= 0 || i.TileY <= 0 {
		return nil, fmt.Errorf("geotiles: invalid index tile size %dx%d", i.TileX, i.TileY)
	}

	var b bytes.Buffer
	line := func(key, value string) {
		fmt.Fprintf(&b, "%s=%s\n", key, value)
	}

	line("type", i.Type)
	if i.Type == "categorical" {
		line("category_min", strconv.Itoa(i.CategoryMin))
		line("category_max", strconv.Itoa(i.CategoryMax))
	}
	line("projection", i.Projection)
	line("dx", formatFloat(i.DX))
	line("dy", formatFloat(i.DY))
	line("known_x", formatFloat(i.KnownX))
	line("known_y", formatFloat(i.KnownY))
	line("known_lat", formatFloat(i.KnownLat))
	line("known_lon", formatFloat(i.KnownLon))
	line("wordsize", strconv.Itoa(i.WordSize))
	line("tile_x", strconv.Itoa(i.TileX))
	line("tile_y", strconv.Itoa(i.TileY))
	line("tile_z", strconv.Itoa(i.TileZ))
	line("units", strconv.Quote(i.Units))
	line("description", strconv.Quote(i.Description))
	line("missing_value", strconv.Itoa(i.MissingValue))
	line("row_order", i.RowOrder)

	return b.Bytes(), nil
}
