package raster

import (
	"fmt"

	"github.com/DHI-GRAS/raster-to-geogrid/tile"
)

// Assemble places every tile visited by tiles into a new width x height
// Dataset. Cells not covered by any tile are zero.
func Assemble(width, height int, tiles tile.Visitor) (*Dataset, error) {
	size, err := byteSize(width, height)
	if err != nil {
		return nil, err
	}
	data := make([]byte, size)

	err = tiles.VisitTiles(func(tileID tile.ID, tileData []byte) error {
		if err := checkBounds(tileID, width, height); err != nil {
			return err
		}
		if len(tileData) != tileID.Size() {
			return fmt.Errorf("%w: tile %v has %d bytes, want %d", ErrTruncated, tileID, len(tileData), tileID.Size())
		}
		rowLength := tileID.X.Len()
		for i := range tileID.Y.Len() {
			offset := (tileID.Y.Start+i)*width + tileID.X.Start
			copy(data[offset:offset+rowLength], tileData[i*rowLength:(i+1)*rowLength])
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &Dataset{width: width, height: height, data: data}, nil
}
