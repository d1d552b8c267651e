package tile

import (
	"errors"
	"iter"
)

var errVisitCancelled = errors.New("visit cancelled")

// IterTiles returns an iterator over all tiles in the tileset.
// It yields tile IDs and their data. Iteration may panic on unrecoverable errors.
func IterTiles(r Visitor) iter.Seq2[ID, []byte] {
	return func(yield func(ID, []byte) bool) {
		err := r.VisitTiles(func(tileID ID, tileData []byte) error {
			if !yield(tileID, tileData) {
				return errVisitCancelled
			}
			return nil
		})
		if err != nil && err != errVisitCancelled {
			panic(err)
		}
	}
}

// IterRows returns an iterator over the rows of a tile.
// Iteration may panic if producing a row fails.
func IterRows(r RowVisitor) iter.Seq[[]byte] {
	return func(yield func([]byte) bool) {
		err := r.VisitRows(func(row []byte) error {
			if !yield(row) {
				return errVisitCancelled
			}
			return nil
		})
		if err != nil && err != errVisitCancelled {
			panic(err)
		}
	}
}
