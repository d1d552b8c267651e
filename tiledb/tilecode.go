package tiledb

import (
	"math/bits"

	"github.com/DHI-GRAS/raster-to-geogrid/tile"
	"github.com/google/hilbert"
)

// gridSide returns the smallest power of two that fits count grid cells per axis.
func gridSide(count int) int {
	if count <= 1 {
		return 1
	}
	return 1 << bits.Len(uint(count-1))
}

// EncodeTileID returns the position of the tile along a Hilbert curve laid
// over the tile grid, so that neighbouring tiles get nearby codes.
// The grid is rounded up to a power of two per axis.
func EncodeTileID(tileID tile.ID, width, height int) int64 {
	col := tileID.X.Start / tileID.X.Len()
	row := tileID.Y.Start / tileID.Y.Len()
	side := max(gridSide(width/tileID.X.Len()), gridSide(height/tileID.Y.Len()))

	h, err := hilbert.NewHilbert(side)
	if err != nil {
		panic(err)
	}
	tileCode, err := h.MapInverse(col, row)
	if err != nil {
		panic(err)
	}
	return int64(tileCode)
}
