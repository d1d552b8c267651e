// Package raster provides an in-memory model of flat single-byte rasters
// and the operations used to cut them into geogrid tiles.
//
// A raster is stored row-major: the cell at column x and row y lives at
// offset y*width + x. Files carry no header; their dimensions are given by
// the caller.
package raster

import (
	"errors"
	"fmt"
	"io"
	"os"
)

var (
	ErrTruncated    = errors.New("geotiles: raster data truncated")
	ErrNotDivisible = errors.New("geotiles: raster size not divisible")
	ErrInvalidSize  = errors.New("geotiles: invalid raster size")
)

func byteSize(width, height int) (int, error) {
	if width <= 0 || height <= 0 {
		return 0, fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	return width * height, nil
}

// Dataset owns a raster buffer of exactly width*height bytes.
type Dataset struct {
	width  int
	height int
	data   []byte
}

// New creates a Dataset over data. Bytes beyond width*height are ignored.
func New(width, height int, data []byte) (*Dataset, error) {
	size, err := byteSize(width, height)
	if err != nil {
		return nil, err
	}
	if len(data) < size {
		return nil, fmt.Errorf("%w: got %d bytes, want %d", ErrTruncated, len(data), size)
	}
	return &Dataset{width: width, height: height, data: data[:size:size]}, nil
}

// Load reads exactly width*height bytes from r into a new Dataset.
// Any further data in r is left unread.
func Load(r io.Reader, width, height int) (*Dataset, error) {
	size, err := byteSize(width, height)
	if err != nil {
		return nil, err
	}

	data := make([]byte, size)
	if n, err := io.ReadFull(r, data); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return nil, fmt.Errorf("%w: got %d bytes, want %d", ErrTruncated, n, size)
		}
		return nil, err
	}

	return &Dataset{width: width, height: height, data: data}, nil
}

// LoadFile loads a Dataset from the raster file at filePath.
func LoadFile(filePath string, width, height int) (*Dataset, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return Load(file, width, height)
}

func (d *Dataset) Width() int  { return d.width }
func (d *Dataset) Height() int { return d.height }

// Data returns the raster buffer. Cells may be modified in place.
func (d *Dataset) Data() []byte {
	return d.data
}

// Row returns row y of the raster.
func (d *Dataset) Row(y int) []byte {
	offset := y * d.width
	return d.data[offset : offset+d.width : offset+d.width]
}
