package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"path/filepath"

	"github.com/DHI-GRAS/raster-to-geogrid/convert"
	"github.com/DHI-GRAS/raster-to-geogrid/geogrid"
	"github.com/DHI-GRAS/raster-to-geogrid/landcover"
	"github.com/DHI-GRAS/raster-to-geogrid/raster"
	"github.com/DHI-GRAS/raster-to-geogrid/tile"
	"github.com/DHI-GRAS/raster-to-geogrid/tiledb"
	"github.com/google/subcommands"
)

type verifyCmd struct {
	tilesDir      string
	referencePath string
	format        string
	width         int
	height        int
}

func (c *verifyCmd) Name() string     { return "verify" }
func (c *verifyCmd) Synopsis() string { return "check tiles against the hemisphere raster they were made from" }
func (c *verifyCmd) Usage() string {
	return "geotiles verify -t <dir> -r <path> [-f <format> -width <w> -height <h>]\n"
}
func (c *verifyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.tilesDir, "t", "", "Tile directory")
	f.StringVar(&c.referencePath, "r", "", "Hemisphere raster with CCI classes")
	f.StringVar(&c.format, "f", string(convert.FormatGeogrid), "Tile format (geogrid, sqlite)")
	f.IntVar(&c.width, "width", convert.GlobeWidth/2, "Hemisphere raster width")
	f.IntVar(&c.height, "height", convert.GlobeHeight, "Hemisphere raster height")
}

func (c *verifyCmd) openTiles() (tile.Visitor, error) {
	switch convert.Format(c.format) {
	case convert.FormatGeogrid:
		return geogrid.NewReader(c.tilesDir)
	case convert.FormatSQLite:
		return tiledb.NewReader(filepath.Join(c.tilesDir, tiledb.Filename))
	default:
		return nil, fmt.Errorf("%w: unknown format %q", convert.ErrInvalidConfig, c.format)
	}
}

func (c *verifyCmd) verify() error {
	reference, err := raster.LoadFile(c.referencePath, c.width, c.height)
	if err != nil {
		return err
	}
	if err := landcover.Remap(reference.Data()); err != nil {
		return err
	}

	tiles, err := c.openTiles()
	if err != nil {
		return err
	}
	if closer, ok := tiles.(io.Closer); ok {
		defer closer.Close()
	}

	assembled, err := raster.Assemble(c.width, c.height, tiles)
	if err != nil {
		return err
	}

	want, got := reference.Data(), assembled.Data()
	for i := range want {
		if want[i] != got[i] {
			return fmt.Errorf("mismatch at column %d row %d: got %d, want %d", i%c.width, i/c.width, got[i], want[i])
		}
	}
	return nil
}

func (c *verifyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	if c.tilesDir == "" || c.referencePath == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}

	if err := c.verify(); err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}

	fmt.Println("ok")
	return subcommands.ExitSuccess
}
