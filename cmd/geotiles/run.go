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

type runCmd struct {
	config convert.Config
	format string
}

func (c *runCmd) Name() string     { return "run" }
func (c *runCmd) Synopsis() string { return "split a global CCI raster and write geogrid tiles for both hemispheres" }
func (c *runCmd) Usage() string {
	return "geotiles run -i <path> -west <path> -east <path> -west-dir <dir> -east-dir <dir> [-n <grid size>]\n"
}
func (c *runCmd) SetFlags(f *flag.FlagSet) {
	c.config = convert.DefaultConfig()
	f.StringVar(&c.config.InputPath, "i", "", "Input global raster path")
	f.StringVar(&c.config.WestPath, "west", "", "Output west hemisphere raster path")
	f.StringVar(&c.config.EastPath, "east", "", "Output east hemisphere raster path")
	f.StringVar(&c.config.WestDir, "west-dir", "", "Existing output directory for west tiles")
	f.StringVar(&c.config.EastDir, "east-dir", "", "Existing output directory for east tiles")
	f.IntVar(&c.config.Width, "width", c.config.Width, "Global raster width")
	f.IntVar(&c.config.Height, "height", c.config.Height, "Global raster height")
	f.IntVar(&c.config.GridSize, "n", c.config.GridSize, "Number of tiles per axis")
	f.StringVar(&c.format, "f", string(c.config.Format), "Output format (geogrid, sqlite)")
	f.BoolVar(&c.config.Streaming, "stream", false, "Read tiles directly from the hemisphere files instead of loading them")
	f.BoolVar(&c.config.WriteIndex, "index", c.config.WriteIndex, "Write geogrid index files")
}

func (c *runCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	c.config.Format = convert.Format(c.format)
	c.config.Logger = slog.Default()

	var p progress
	defer p.finish()

	var current convert.Hemisphere
	c.config.OnRow = func(row int) {
		if row == 0 {
			p.start(c.config.Height, "split")
		}
		p.add()
	}
	c.config.OnTile = func(hemisphere convert.Hemisphere, _ tile.ID) {
		if hemisphere != current {
			current = hemisphere
			p.start(c.config.GridSize*c.config.GridSize, string(hemisphere))
		}
		p.add()
	}

	if err := convert.Run(c.config); err != nil {
		p.finish()
		log.Println(err)
		return subcommands.ExitFailure
	}

	return subcommands.ExitSuccess
}
