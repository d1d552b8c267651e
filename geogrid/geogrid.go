// Package geogrid provides API for reading and writing tiles in the WPS geogrid
// binary directory format, where every tile is stored as a raw file named by
// its pixel ranges, e.g. "/west/00001-06480.00001-06480".
package geogrid

import (
	"errors"
	"fmt"
	"os"
)

var ErrNotDirectory = errors.New("geotiles: not a directory")

// IndexFilename is the name of the metadata file geogrid expects next to the tiles.
const IndexFilename = "index"

// CheckDirectory returns ErrNotDirectory unless dirPath is an existing directory.
func CheckDirectory(dirPath string) error {
	info, err := os.Stat(dirPath)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrNotDirectory, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %v", ErrNotDirectory, dirPath)
	}
	return nil
}
