package main

import (
	"context"
	"flag"
	"log"

	"github.com/DHI-GRAS/raster-to-geogrid/convert"
	"github.com/DHI-GRAS/raster-to-geogrid/raster"
	"github.com/google/subcommands"
)

type splitCmd struct {
	inputPath string
	westPath  string
	eastPath  string
	width     int
	height    int
}

func (c *splitCmd) Name() string     { return "split" }
func (c *splitCmd) Synopsis() string { return "split a global raster into west and east halves" }
func (c *splitCmd) Usage() string {
	return "geotiles split -i <path> -west <path> -east <path> [-width <w> -height <h>]\n"
}
func (c *splitCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.inputPath, "i", "", "Input global raster path")
	f.StringVar(&c.westPath, "west", "", "Output west hemisphere raster path")
	f.StringVar(&c.eastPath, "east", "", "Output east hemisphere raster path")
	f.IntVar(&c.width, "width", convert.GlobeWidth, "Global raster width")
	f.IntVar(&c.height, "height", convert.GlobeHeight, "Global raster height")
}

func (c *splitCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	if c.inputPath == "" || c.westPath == "" || c.eastPath == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}

	var p progress
	p.start(c.height, "split")
	err := raster.SplitFile(c.inputPath, c.westPath, c.eastPath, c.width, c.height,
		raster.WithRowCallback(func(int) { p.add() }))
	p.finish()

	if err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}

	return subcommands.ExitSuccess
}
