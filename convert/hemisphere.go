package convert

import (
	"fmt"

	"github.com/DHI-GRAS/raster-to-geogrid/geogrid"
)

type Hemisphere string

const (
	West Hemisphere = "west"
	East Hemisphere = "east"
)

// ParseHemisphere accepts "west" and "east".
func ParseHemisphere(s string) (Hemisphere, error) {
	switch h := Hemisphere(s); h {
	case West, East:
		return h, nil
	}
	return "", fmt.Errorf("%w: unknown hemisphere %q", ErrInvalidConfig, s)
}

// Index returns the geogrid index of the hemisphere of a globeWidth x
// globeHeight raster whose first row is at 90N and first column at 180W,
// cut into an n x n grid.
//
// Rows are numbered from the top, so dy is negative: row y is centered at
// known_lat + (y-known_y)*dy, and the last row sits just north of 90S.
func (h Hemisphere) Index(globeWidth, globeHeight, n int) geogrid.Index {
	dx := 360 / float64(globeWidth)
	dy := -180 / float64(globeHeight)

	knownLon := -180 + dx/2
	if h == East {
		knownLon = dx / 2
	}

	return geogrid.LandUseIndex(globeWidth/2/n, globeHeight/n, dx, dy, 90+dy/2, knownLon)
}
