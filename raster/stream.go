package raster

import (
	"fmt"
	"io"

	"github.com/DHI-GRAS/raster-to-geogrid/tile"
)

// Stream reads tiles of a raster directly from storage, one row segment at a
// time, so that the whole raster never has to be held in memory.
type Stream struct {
	r      io.ReaderAt
	width  int
	height int
}

// NewStream creates a Stream over r, which holds size bytes.
// Bytes beyond width*height are ignored.
func NewStream(r io.ReaderAt, size int64, width, height int) (*Stream, error) {
	want, err := byteSize(width, height)
	if err != nil {
		return nil, err
	}
	if size < int64(want) {
		return nil, fmt.Errorf("%w: got %d bytes, want %d", ErrTruncated, size, want)
	}
	return &Stream{r: r, width: width, height: height}, nil
}

// StreamTile is a region of a Stream. Its rows are read on each VisitRows call.
type StreamTile struct {
	stream *Stream
	id     tile.ID
}

// Tiles partitions the stream into n*n tiles, in Grid order.
func (s *Stream) Tiles(n int) ([]StreamTile, error) {
	tileIDs, err := Grid(s.width, s.height, n)
	if err != nil {
		return nil, err
	}
	tiles := make([]StreamTile, len(tileIDs))
	for i, tileID := range tileIDs {
		tiles[i] = StreamTile{stream: s, id: tileID}
	}
	return tiles, nil
}

func (t StreamTile) ID() tile.ID {
	return t.id
}

// VisitRows reads each row of the tile and passes it to visitor, top to bottom.
// The row buffer is reused between calls.
func (t StreamTile) VisitRows(visitor func([]byte) error) error {
	width := int64(t.stream.width)
	row := make([]byte, t.id.X.Len())
	for y := t.id.Y.Start; y < t.id.Y.End; y++ {
		offset := int64(y)*width + int64(t.id.X.Start)
		n, err := t.stream.r.ReadAt(row, offset)
		if n < len(row) {
			if err == nil || err == io.EOF {
				return fmt.Errorf("%w: row %d of tile %v", ErrTruncated, y, t.id)
			}
			return err
		}
		if err := visitor(row); err != nil {
			return err
		}
	}
	return nil
}
