// Package landcover converts ESA CCI land cover class codes into the USGS
// land use categories used by WPS geogrid.
package landcover

import (
	"errors"
	"fmt"

	"github.com/DHI-GRAS/raster-to-geogrid/tile"
)

var ErrUnknownClass = errors.New("geotiles: unknown land cover class")

// cciToUSGS maps CCI class codes to USGS categories (offset by 100).
// Code 0 is no data and stays 0.
var cciToUSGS = map[byte]byte{
	0:   0,
	10:  102,
	11:  102,
	12:  115,
	20:  103,
	30:  106,
	40:  106,
	50:  113,
	60:  111,
	61:  111,
	62:  111,
	70:  114,
	71:  114,
	72:  114,
	80:  112,
	81:  112,
	82:  112,
	90:  115,
	100: 109,
	110: 109,
	120: 108,
	121: 108,
	122: 108,
	130: 107,
	140: 123,
	150: 119,
	151: 119,
	152: 119,
	153: 119,
	160: 118,
	170: 118,
	180: 117,
	190: 101,
	200: 119,
	201: 119,
	202: 119,
	210: 116,
	220: 124,
}

type entry struct {
	value byte
	valid bool
}

var table [256]entry

func init() {
	for k, v := range cciToUSGS {
		table[k] = entry{value: v, valid: true}
	}
}

// ToUSGS returns the USGS category for a CCI class code.
func ToUSGS(code byte) (byte, error) {
	e := table[code]
	if !e.valid {
		return 0, fmt.Errorf("%w: %d", ErrUnknownClass, code)
	}
	return e.value, nil
}

// Codes returns the number of known CCI class codes.
func Codes() int {
	return len(cciToUSGS)
}

// Remap converts every cell of data in place. It stops at the first unknown
// code; cells before it are already converted.
func Remap(data []byte) error {
	for i, code := range data {
		e := table[code]
		if !e.valid {
			return fmt.Errorf("%w: %d at offset %d", ErrUnknownClass, code, i)
		}
		data[i] = e.value
	}
	return nil
}

type remappedRows struct {
	rows tile.RowVisitor
}

// RemapRows returns a RowVisitor that converts each row of rows in place
// before passing it on.
func RemapRows(rows tile.RowVisitor) tile.RowVisitor {
	return remappedRows{rows}
}

func (r remappedRows) VisitRows(visitor func([]byte) error) error {
	return r.rows.VisitRows(func(row []byte) error {
		if err := Remap(row); err != nil {
			return err
		}
		return visitor(row)
	})
}
