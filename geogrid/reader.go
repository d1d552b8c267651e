package geogrid

import (
	"os"
	"path/filepath"

	"github.com/DHI-GRAS/raster-to-geogrid/tile"
)

// Reader implements tile.Reader and tile.Visitor interfaces for geogrid tile directories.
type Reader struct {
	dirPath string
}

// NewReader creates a new Reader for the existing directory dirPath.
func NewReader(dirPath string) (*Reader, error) {
	if err := CheckDirectory(dirPath); err != nil {
		return nil, err
	}
	return &Reader{dirPath}, nil
}

func (r *Reader) ReadTile(tileID tile.ID) ([]byte, error) {
	tileData, err := os.ReadFile(filepath.Join(r.dirPath, tileID.Name()))
	if os.IsNotExist(err) {
		return make([]byte, 0), nil
	}
	if err != nil {
		return nil, err
	}
	return tileData, nil
}

// VisitTiles visits tiles in filename order. Files whose names are not tile
// names, such as the index file, are skipped.
func (r *Reader) VisitTiles(visitor func(tile.ID, []byte) error) error {
	entries, err := os.ReadDir(r.dirPath)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		tileID, err := tile.ParseName(entry.Name())
		if err != nil {
			continue
		}

		tileData, err := os.ReadFile(filepath.Join(r.dirPath, entry.Name()))
		if err != nil {
			return err
		}

		if err := visitor(tileID, tileData); err != nil {
			return err
		}
	}
	return nil
}
