// Package internal provides helpers shared by tests.
package internal

import (
	"math/rand/v2"
	"os"
	"path/filepath"
	"testing"

	"github.com/DHI-GRAS/raster-to-geogrid/tile"
)

// CCICodes lists the CCI land cover class codes.
var CCICodes = []byte{
	0, 10, 11, 12, 20, 30, 40, 50, 60, 61, 62, 70, 71, 72, 80, 81, 82, 90, 100,
	110, 120, 121, 122, 130, 140, 150, 151, 152, 153, 160, 170, 180, 190, 200,
	201, 202, 210, 220,
}

// CCIRaster returns width*height pseudo-random CCI class codes.
func CCIRaster(width, height int, seed uint64) []byte {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	data := make([]byte, width*height)
	for i := range data {
		data[i] = CCICodes[rng.IntN(len(CCICodes))]
	}
	return data
}

// Sequence returns width*height bytes where each cell holds its offset modulo 251.
func Sequence(width, height int) []byte {
	data := make([]byte, width*height)
	for i := range data {
		data[i] = byte(i % 251)
	}
	return data
}

// WriteFile writes data to a new file named name in a temporary directory.
func WriteFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	filePath := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(filePath, data, 0644); err != nil {
		t.Fatal(err)
	}
	return filePath
}

// Tiles implements tile.Visitor over a map.
type Tiles map[tile.ID][]byte

func (m Tiles) VisitTiles(visitor func(tile.ID, []byte) error) error {
	for tileID, tileData := range m {
		if err := visitor(tileID, tileData); err != nil {
			return err
		}
	}
	return nil
}

// CollectRows returns a copy of every row produced by rows.
func CollectRows(rows tile.RowVisitor) ([]byte, error) {
	var data []byte
	err := rows.VisitRows(func(row []byte) error {
		data = append(data, row...)
		return nil
	})
	return data, err
}
