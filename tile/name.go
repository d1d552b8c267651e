package tile

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
)

var ErrInvalidName = errors.New("geotiles: invalid tile name")

var namePattern = regexp.MustCompile(`^(\d{5,})-(\d{5,})\.(\d{5,})-(\d{5,})$`)

// Name returns the geogrid filename of the tile, "xxxxx-XXXXX.yyyyy-YYYYY".
// Ranges are rendered 1-based and inclusive: [start, end) becomes start+1 and end.
func (t ID) Name() string {
	return fmt.Sprintf("%05d-%05d.%05d-%05d", t.X.Start+1, t.X.End, t.Y.Start+1, t.Y.End)
}

// ParseName is the inverse of ID.Name.
func ParseName(name string) (ID, error) {
	matches := namePattern.FindStringSubmatch(name)
	if matches == nil {
		return ID{}, fmt.Errorf("%w: %q", ErrInvalidName, name)
	}

	var values [4]int
	for i := range values {
		v, err := strconv.Atoi(matches[i+1])
		if err != nil {
			return ID{}, fmt.Errorf("%w: %q: %w", ErrInvalidName, name, err)
		}
		values[i] = v
	}

	tileID := ID{
		X: Range{Start: values[0] - 1, End: values[1]},
		Y: Range{Start: values[2] - 1, End: values[3]},
	}
	if !tileID.Valid() {
		return ID{}, fmt.Errorf("%w: %q: empty range", ErrInvalidName, name)
	}
	return tileID, nil
}
