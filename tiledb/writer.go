// Package tiledb provides API for storing geogrid tiles in a SQLite database.
//
// Note: User must properly initialize the sqlite3 library generic driver
// (e.g. import _ "github.com/mattn/go-sqlite3") before using this package.
package tiledb

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/DHI-GRAS/raster-to-geogrid/tile"
)

// Filename is the database file name used inside an output directory.
const Filename = "tiles.db"

// Writer implements tile.Writer interface for tile databases.
type Writer struct {
	db     *sql.DB
	stmt   *sql.Stmt
	width  int
	height int
	logger *slog.Logger
}

type writerConfig struct {
	Metadata map[string]string
	Logger   *slog.Logger
}

type WriterOption func(*writerConfig)

func WithMetadata(metadata map[string]string) WriterOption {
	return func(c *writerConfig) { c.Metadata = metadata }
}

func WithLogger(logger *slog.Logger) WriterOption {
	return func(c *writerConfig) { c.Logger = logger }
}

// NewWriter creates a new Writer for tiles of a width x height raster.
// The database file must not contain tile tables yet.
func NewWriter(filePath string, width, height int, opts ...WriterOption) (*Writer, error) {
	config := writerConfig{
		Logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(&config)
	}

	var err error
	db, err := sql.Open("sqlite3", filePath)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			db.Close()
		}
	}()

	_, err = db.Exec(`
		CREATE TABLE metadata (name TEXT, value TEXT);
		CREATE TABLE tiles (
			tile_code INTEGER PRIMARY KEY,
			name TEXT,
			x1 INTEGER,
			x2 INTEGER,
			y1 INTEGER,
			y2 INTEGER,
			tile_data BLOB
		);
	`)
	if err != nil {
		return nil, err
	}

	metadata := map[string]string{
		"width":  strconv.Itoa(width),
		"height": strconv.Itoa(height),
	}
	for k, v := range config.Metadata {
		metadata[k] = v
	}
	for k, v := range metadata {
		_, err = db.Exec("INSERT INTO metadata (name, value) VALUES (?, ?)", k, v)
		if err != nil {
			return nil, err
		}
	}

	stmt, err := db.Prepare("INSERT INTO tiles (tile_code, name, x1, x2, y1, y2, tile_data) VALUES (?, ?, ?, ?, ?, ?, ?)")
	if err != nil {
		return nil, err
	}

	return &Writer{db, stmt, width, height, config.Logger}, nil
}

func (w *Writer) Close() error {
	return errors.Join(w.stmt.Close(), w.db.Close())
}

// WriteTile stores the tile. Ranges are stored 1-based and inclusive, as in tile names.
func (w *Writer) WriteTile(tileID tile.ID, rows tile.RowVisitor) error {
	if tileID.X.End > w.width || tileID.Y.End > w.height || !tileID.Valid() {
		return fmt.Errorf("geotiles: tile %v outside %dx%d raster", tileID, w.width, w.height)
	}

	tileData := make([]byte, 0, tileID.Size())
	err := rows.VisitRows(func(row []byte) error {
		if len(row) != tileID.X.Len() {
			return fmt.Errorf("geotiles: tile %v row has %d bytes, want %d", tileID, len(row), tileID.X.Len())
		}
		tileData = append(tileData, row...)
		return nil
	})
	if err != nil {
		return err
	}
	if len(tileData) != tileID.Size() {
		return fmt.Errorf("geotiles: tile %v has %d bytes, want %d", tileID, len(tileData), tileID.Size())
	}

	tileCode := EncodeTileID(tileID, w.width, w.height)
	_, err = w.stmt.Exec(tileCode, tileID.Name(),
		tileID.X.Start+1, tileID.X.End, tileID.Y.Start+1, tileID.Y.End, tileData)
	return err
}

func (w *Writer) Finalize() error {
	w.logger.Debug("tiledb: creating index")
	_, err := w.db.Exec("CREATE UNIQUE INDEX tile_name_index ON tiles (name)")

	w.logger.Debug("tiledb: done!")
	return err
}
