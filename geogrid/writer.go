package geogrid

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/DHI-GRAS/raster-to-geogrid/tile"
)

// Writer implements tile.Writer interface for geogrid tile directories.
type Writer struct {
	dirPath string
	index   *Index
	logger  *slog.Logger
}

type writerConfig struct {
	Index  *Index
	Logger *slog.Logger
}

type WriterOption func(*writerConfig)

// WithIndex makes Finalize write index into the tile directory.
func WithIndex(index Index) WriterOption {
	return func(c *writerConfig) { c.Index = &index }
}

func WithLogger(logger *slog.Logger) WriterOption {
	return func(c *writerConfig) { c.Logger = logger }
}

// NewWriter creates a new Writer for the existing directory dirPath.
func NewWriter(dirPath string, opts ...WriterOption) (*Writer, error) {
	config := writerConfig{
		Logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(&config)
	}

	if err := CheckDirectory(dirPath); err != nil {
		return nil, err
	}

	return &Writer{dirPath, config.Index, config.Logger}, nil
}

func (w *Writer) WriteTile(tileID tile.ID, rows tile.RowVisitor) error {
	w.logger.Debug("geogrid: write tile", "name", tileID.Name())
	return WriteTile(w.dirPath, tileID, rows)
}

func (w *Writer) Finalize() error {
	if w.index == nil {
		return nil
	}
	w.logger.Debug("geogrid: write index")
	indexData, err := w.index.MarshalText()
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(w.dirPath, IndexFilename), indexData, 0644)
}

// WriteTile writes the rows of a tile into a file in dirPath named after
// tileID. Every row is written separately and must be tileID.X.Len() bytes
// long. On failure the file is left as it is.
func WriteTile(dirPath string, tileID tile.ID, rows tile.RowVisitor) (err error) {
	if err := CheckDirectory(dirPath); err != nil {
		return err
	}

	file, err := os.Create(filepath.Join(dirPath, tileID.Name()))
	if err != nil {
		return err
	}
	defer func() { err = errors.Join(err, file.Close()) }()

	rowCount := 0
	err = rows.VisitRows(func(row []byte) error {
		if len(row) != tileID.X.Len() {
			return fmt.Errorf("geotiles: tile %v row %d has %d bytes, want %d", tileID, rowCount, len(row), tileID.X.Len())
		}
		if rowCount == tileID.Y.Len() {
			return fmt.Errorf("geotiles: tile %v has more than %d rows", tileID, tileID.Y.Len())
		}
		if _, err := file.Write(row); err != nil {
			return err
		}
		rowCount++
		return nil
	})
	if err != nil {
		return err
	}
	if rowCount != tileID.Y.Len() {
		return fmt.Errorf("geotiles: tile %v has %d rows, want %d", tileID, rowCount, tileID.Y.Len())
	}
	return nil
}
