package raster_test

import (
	"errors"
	"testing"

	"github.com/DHI-GRAS/raster-to-geogrid/internal"
	"github.com/DHI-GRAS/raster-to-geogrid/raster"
	"github.com/DHI-GRAS/raster-to-geogrid/tile"
	"github.com/google/go-cmp/cmp"
)

func TestAssemble(t *testing.T) {
	for _, n := range []int{1, 2, 3, 6} {
		data := internal.CCIRaster(12, 6, uint64(n))
		dataset, err := raster.New(12, 6, data)
		if err != nil {
			t.Fatalf("New failed: %v", err)
		}
		rasterTiles, err := dataset.Tiles(n)
		if err != nil {
			t.Fatalf("Tiles(%d) failed: %v", n, err)
		}

		tiles := make(internal.Tiles)
		for _, rasterTile := range rasterTiles {
			tileID, err := tile.ParseName(rasterTile.ID().Name())
			if err != nil {
				t.Fatalf("ParseName failed: %v", err)
			}
			tiles[tileID], err = internal.CollectRows(rasterTile)
			if err != nil {
				t.Fatalf("VisitRows failed: %v", err)
			}
		}

		assembled, err := raster.Assemble(12, 6, tiles)
		if err != nil {
			t.Fatalf("Assemble failed: %v", err)
		}
		if diff := cmp.Diff(data, assembled.Data()); diff != "" {
			t.Errorf("Assemble(Tiles(%d)) mismatch (-want+got):\n%v", n, diff)
		}
	}
}

func TestAssembleErrors(t *testing.T) {
	outside := internal.Tiles{
		{X: tile.Range{Start: 2, End: 5}, Y: tile.Range{Start: 0, End: 1}}: make([]byte, 3),
	}
	if _, err := raster.Assemble(4, 4, outside); !errors.Is(err, raster.ErrInvalidSize) {
		t.Errorf("Assemble(outside) error = %v, want = %v", err, raster.ErrInvalidSize)
	}

	short := internal.Tiles{
		{X: tile.Range{Start: 0, End: 2}, Y: tile.Range{Start: 0, End: 2}}: make([]byte, 3),
	}
	if _, err := raster.Assemble(4, 4, short); !errors.Is(err, raster.ErrTruncated) {
		t.Errorf("Assemble(short) error = %v, want = %v", err, raster.ErrTruncated)
	}
}
