package raster

import (
	"errors"
	"fmt"
	"io"
	"os"
)

type splitConfig struct {
	onRow func(row int)
}

type SplitOption func(*splitConfig)

// WithRowCallback sets a function called after each row has been written to
// both halves.
func WithRowCallback(onRow func(row int)) SplitOption {
	return func(c *splitConfig) { c.onRow = onRow }
}

// CheckSplit reports whether a width x height raster can be split into halves.
func CheckSplit(width, height int) error {
	if _, err := byteSize(width, height); err != nil {
		return err
	}
	if width%2 != 0 {
		return fmt.Errorf("%w: odd width %d", ErrNotDivisible, width)
	}
	return nil
}

// Split streams a width x height raster from r and writes the left half of
// every row to west and the right half to east. Only one row is held in
// memory. Data after the last row is not read.
func Split(r io.Reader, west, east io.Writer, width, height int, opts ...SplitOption) error {
	config := splitConfig{
		onRow: func(int) {},
	}
	for _, opt := range opts {
		opt(&config)
	}

	if err := CheckSplit(width, height); err != nil {
		return err
	}
	half := width / 2

	row := make([]byte, width)
	for y := range height {
		if _, err := io.ReadFull(r, row); err != nil {
			if err == io.EOF || err == io.ErrUnexpectedEOF {
				return fmt.Errorf("%w: row %d of %d", ErrTruncated, y, height)
			}
			return err
		}
		if _, err := west.Write(row[:half]); err != nil {
			return err
		}
		if _, err := east.Write(row[half:]); err != nil {
			return err
		}
		config.onRow(y)
	}
	return nil
}

// SplitFile splits the raster file at inputPath into westPath and eastPath.
// Nothing is created if the size cannot be split.
func SplitFile(inputPath, westPath, eastPath string, width, height int, opts ...SplitOption) (err error) {
	if err := CheckSplit(width, height); err != nil {
		return err
	}

	input, err := os.Open(inputPath)
	if err != nil {
		return err
	}
	defer input.Close()

	west, err := os.Create(westPath)
	if err != nil {
		return err
	}
	defer func() { err = errors.Join(err, west.Close()) }()

	east, err := os.Create(eastPath)
	if err != nil {
		return err
	}
	defer func() { err = errors.Join(err, east.Close()) }()

	return Split(input, west, east, width, height, opts...)
}
