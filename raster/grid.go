package raster

import (
	"fmt"

	"github.com/DHI-GRAS/raster-to-geogrid/tile"
)

// Grid partitions a width x height raster into n*n equally sized tiles.
//
// Tiles are ordered by column range first: all tiles of the first column
// range, top to bottom, precede those of the second column range.
func Grid(width, height, n int) ([]tile.ID, error) {
	if _, err := byteSize(width, height); err != nil {
		return nil, err
	}
	if n <= 0 {
		return nil, fmt.Errorf("%w: grid size %d", ErrInvalidSize, n)
	}
	if width%n != 0 || height%n != 0 {
		return nil, fmt.Errorf("%w: %dx%d by %d", ErrNotDivisible, width, height, n)
	}

	tileX := width / n
	tileY := height / n

	tileIDs := make([]tile.ID, 0, n*n)
	for i := range n {
		xRange := tile.Range{Start: i * tileX, End: (i + 1) * tileX}
		for j := range n {
			yRange := tile.Range{Start: j * tileY, End: (j + 1) * tileY}
			tileIDs = append(tileIDs, tile.ID{X: xRange, Y: yRange})
		}
	}
	return tileIDs, nil
}

func checkBounds(tileID tile.ID, width, height int) error {
	if !tileID.Valid() || tileID.X.End > width || tileID.Y.End > height {
		return fmt.Errorf("%w: tile %v outside %dx%d raster", ErrInvalidSize, tileID, width, height)
	}
	return nil
}
