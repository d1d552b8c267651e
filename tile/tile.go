// Package tile provides common tile interfaces and types.
package tile

import "fmt"

// Range is a half-open interval [Start, End) of pixel indices.
type Range struct {
	Start int
	End   int
}

func (r Range) Len() int {
	return r.End - r.Start
}

func (r Range) Valid() bool {
	return r.Start >= 0 && r.End > r.Start
}

func (r Range) String() string {
	return fmt.Sprintf("[%d,%d)", r.Start, r.End)
}

// ID identifies a tile by its column range X and row range Y inside a raster.
type ID struct {
	X Range
	Y Range
}

func (t ID) Valid() bool {
	return t.X.Valid() && t.Y.Valid()
}

// Size returns the number of cells (bytes) covered by the tile.
func (t ID) Size() int {
	return t.X.Len() * t.Y.Len()
}

func (t ID) String() string {
	return fmt.Sprintf("x%v y%v", t.X, t.Y)
}

// RowVisitor produces the rows of a tile in ascending row order.
// The row slice passed to the visitor is only valid during the call.
type RowVisitor interface {
	VisitRows(visitor func(row []byte) error) error
}

// Writer defines an interface for writing tiles to a tileset.
type Writer interface {
	// WriteTile writes a single tile, one row at a time.
	WriteTile(tileID ID, rows RowVisitor) error

	// Finalize completes the writing process: flushes buffers, writes metadata.
	// It must be called before closing the Writer.
	Finalize() error
}

type Reader interface {
	// ReadTile reads a single tile from the tileset.
	// If the tile does not exist, it returns an empty slice with no error.
	ReadTile(tileID ID) ([]byte, error)
}

type Visitor interface {
	// VisitTiles visits all tiles in the tileset, calling the visitor for each.
	// Order of tiles is implementation-defined.
	VisitTiles(visitor func(ID, []byte) error) error
}

// Rows is a RowVisitor over in-memory rows.
type Rows [][]byte

func (r Rows) VisitRows(visitor func([]byte) error) error {
	for _, row := range r {
		if err := visitor(row); err != nil {
			return err
		}
	}
	return nil
}
