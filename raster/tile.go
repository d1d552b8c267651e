package raster

import "github.com/DHI-GRAS/raster-to-geogrid/tile"

// Tile is a view of a rectangular region of a Dataset.
// It does not own any data and must not be used after the Dataset is discarded.
type Tile struct {
	dataset *Dataset
	id      tile.ID
}

// Tile returns the view of the region tileID.
func (d *Dataset) Tile(tileID tile.ID) (Tile, error) {
	if err := checkBounds(tileID, d.width, d.height); err != nil {
		return Tile{}, err
	}
	return Tile{dataset: d, id: tileID}, nil
}

// Tiles partitions the dataset into n*n tiles, in Grid order.
// No tile is returned if the dataset size is not divisible by n.
func (d *Dataset) Tiles(n int) ([]Tile, error) {
	tileIDs, err := Grid(d.width, d.height, n)
	if err != nil {
		return nil, err
	}
	tiles := make([]Tile, len(tileIDs))
	for i, tileID := range tileIDs {
		tiles[i] = Tile{dataset: d, id: tileID}
	}
	return tiles, nil
}

func (t Tile) ID() tile.ID {
	return t.id
}

// VisitRows passes each row of the tile to visitor, top to bottom.
// Rows are slices of the dataset buffer.
func (t Tile) VisitRows(visitor func([]byte) error) error {
	width := t.dataset.width
	for y := t.id.Y.Start; y < t.id.Y.End; y++ {
		start := y*width + t.id.X.Start
		end := y*width + t.id.X.End
		if err := visitor(t.dataset.data[start:end:end]); err != nil {
			return err
		}
	}
	return nil
}
