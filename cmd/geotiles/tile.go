package main

import (
	"context"
	"flag"
	"log"
	"log/slog"

	"github.com/DHI-GRAS/raster-to-geogrid/convert"
	"github.com/DHI-GRAS/raster-to-geogrid/tile"
	"github.com/google/subcommands"
)

type tileCmd struct {
	params     convert.TileParams
	format     string
	hemisphere string
}

func (c *tileCmd) Name() string     { return "tile" }
func (c *tileCmd) Synopsis() string { return "convert a hemisphere raster to USGS classes and write geogrid tiles" }
func (c *tileCmd) Usage() string {
	return "geotiles tile -i <path> -o <dir> [-hemisphere west|east -n <grid size> -f <format>]\n"
}
func (c *tileCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.params.InputPath, "i", "", "Input hemisphere raster path")
	f.StringVar(&c.params.OutputDir, "o", "", "Existing output directory")
	f.IntVar(&c.params.Width, "width", convert.GlobeWidth/2, "Hemisphere raster width")
	f.IntVar(&c.params.Height, "height", convert.GlobeHeight, "Hemisphere raster height")
	f.IntVar(&c.params.GridSize, "n", convert.GridSize, "Number of tiles per axis")
	f.StringVar(&c.format, "f", string(convert.FormatGeogrid), "Output format (geogrid, sqlite)")
	f.BoolVar(&c.params.Streaming, "stream", false, "Read tiles directly from the input file instead of loading it")
	f.StringVar(&c.hemisphere, "hemisphere", "", "Write a geogrid index for this hemisphere (west, east)")
}

func (c *tileCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	if c.params.InputPath == "" || c.params.OutputDir == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}

	if c.hemisphere != "" {
		hemisphere, err := convert.ParseHemisphere(c.hemisphere)
		if err != nil {
			log.Println(err)
			return subcommands.ExitUsageError
		}
		index := hemisphere.Index(c.params.Width*2, c.params.Height, c.params.GridSize)
		c.params.Index = &index
	}
	c.params.Format = convert.Format(c.format)
	c.params.Logger = slog.Default()

	var p progress
	p.start(c.params.GridSize*c.params.GridSize, "tiles")
	c.params.OnTile = func(tile.ID) { p.add() }
	err := convert.Tile(c.params)
	p.finish()

	if err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}

	return subcommands.ExitSuccess
}
