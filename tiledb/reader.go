package tiledb

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"github.com/DHI-GRAS/raster-to-geogrid/tile"
)

// Reader implements tile.Reader and tile.Visitor interfaces for tile databases.
type Reader struct {
	db   *sql.DB
	stmt *sql.Stmt
}

// NewReader creates a new Reader for the given database file path.
//
// The returned Reader must be closed after use to release database resources.
func NewReader(filePath string) (*Reader, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?mode=ro", filePath))
	if err != nil {
		return nil, err
	}

	stmt, err := db.Prepare("SELECT tile_data FROM tiles WHERE name = ?")
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Reader{db: db, stmt: stmt}, nil
}

func (r *Reader) Close() error {
	return errors.Join(r.stmt.Close(), r.db.Close())
}

func (r *Reader) ReadMetadata() (map[string]string, error) {
	metadata := make(map[string]string)

	rows, err := r.db.Query("SELECT name, value FROM metadata")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var name, value string
		if err := rows.Scan(&name, &value); err != nil {
			return nil, err
		}
		metadata[name] = value
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return metadata, nil
}

// Size returns the raster dimensions recorded by the Writer.
func (r *Reader) Size() (width, height int, err error) {
	metadata, err := r.ReadMetadata()
	if err != nil {
		return 0, 0, err
	}
	if width, err = strconv.Atoi(metadata["width"]); err != nil {
		return 0, 0, fmt.Errorf("geotiles: invalid width metadata: %w", err)
	}
	if height, err = strconv.Atoi(metadata["height"]); err != nil {
		return 0, 0, fmt.Errorf("geotiles: invalid height metadata: %w", err)
	}
	return width, height, nil
}

func (r *Reader) ReadTile(tileID tile.ID) ([]byte, error) {
	var tileData []byte
	if err := r.stmt.QueryRow(tileID.Name()).Scan(&tileData); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return make([]byte, 0), nil
		}
		return nil, err
	}

	return tileData, nil
}

// VisitTiles visits tiles in tile code order.
func (r *Reader) VisitTiles(visitor func(tile.ID, []byte) error) error {
	rows, err := r.db.Query("SELECT x1, x2, y1, y2, tile_data FROM tiles ORDER BY tile_code")
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var x1, x2, y1, y2 int
		var tileData []byte

		if err := rows.Scan(&x1, &x2, &y1, &y2, &tileData); err != nil {
			return err
		}

		tileID := tile.ID{
			X: tile.Range{Start: x1 - 1, End: x2},
			Y: tile.Range{Start: y1 - 1, End: y2},
		}
		if err := visitor(tileID, tileData); err != nil {
			return err
		}
	}

	if err := rows.Err(); err != nil {
		return err
	}

	return nil
}
