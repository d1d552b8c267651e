package convert

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/DHI-GRAS/raster-to-geogrid/geogrid"
	"github.com/DHI-GRAS/raster-to-geogrid/landcover"
	"github.com/DHI-GRAS/raster-to-geogrid/raster"
	"github.com/DHI-GRAS/raster-to-geogrid/tile"
	"github.com/DHI-GRAS/raster-to-geogrid/tiledb"
)

// TileParams describes the conversion of one hemisphere raster file into tiles.
type TileParams struct {
	InputPath string
	OutputDir string
	Width     int
	Height    int
	GridSize  int
	Format    Format
	Streaming bool
	// Index, if set, is written next to geogrid tiles.
	Index  *geogrid.Index
	Logger *slog.Logger
	OnTile func(tileID tile.ID)
}

type tileSource interface {
	ID() tile.ID
	tile.RowVisitor
}

// Run splits the input raster and converts both hemispheres.
// It stops at the first error; files already written are left in place.
func Run(config Config) error {
	if err := config.validate(); err != nil {
		return err
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	// Sizes and output directories are checked up front so that a bad run
	// fails before anything is written.
	if err := raster.CheckSplit(config.Width, config.Height); err != nil {
		return err
	}
	if _, err := raster.Grid(config.Width/2, config.Height, config.GridSize); err != nil {
		return err
	}
	for _, dirPath := range []string{config.WestDir, config.EastDir} {
		if err := geogrid.CheckDirectory(dirPath); err != nil {
			return err
		}
	}

	logger.Debug("convert: split", "input", config.InputPath)
	var splitOpts []raster.SplitOption
	if config.OnRow != nil {
		splitOpts = append(splitOpts, raster.WithRowCallback(config.OnRow))
	}
	err := raster.SplitFile(config.InputPath, config.WestPath, config.EastPath, config.Width, config.Height, splitOpts...)
	if err != nil {
		return fmt.Errorf("split: %w", err)
	}

	for _, h := range []struct {
		hemisphere Hemisphere
		inputPath  string
		outputDir  string
	}{
		{West, config.WestPath, config.WestDir},
		{East, config.EastPath, config.EastDir},
	} {
		params := TileParams{
			InputPath: h.inputPath,
			OutputDir: h.outputDir,
			Width:     config.Width / 2,
			Height:    config.Height,
			GridSize:  config.GridSize,
			Format:    config.Format,
			Streaming: config.Streaming,
			Logger:    logger.With("hemisphere", h.hemisphere),
		}
		if config.WriteIndex {
			index := h.hemisphere.Index(config.Width, config.Height, config.GridSize)
			params.Index = &index
		}
		if config.OnTile != nil {
			hemisphere := h.hemisphere
			params.OnTile = func(tileID tile.ID) { config.OnTile(hemisphere, tileID) }
		}

		if err := Tile(params); err != nil {
			return fmt.Errorf("%v hemisphere: %w", h.hemisphere, err)
		}
	}

	logger.Debug("convert: done!")
	return nil
}

// Tile converts the class codes of one raster file and writes it as an n x n
// grid of tiles into params.OutputDir.
func Tile(params TileParams) (err error) {
	logger := params.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if params.Format == "" {
		params.Format = FormatGeogrid
	}
	if !params.Format.Valid() {
		return fmt.Errorf("%w: unknown format %q", ErrInvalidConfig, params.Format)
	}

	if _, err := raster.Grid(params.Width, params.Height, params.GridSize); err != nil {
		return err
	}
	if err := geogrid.CheckDirectory(params.OutputDir); err != nil {
		return err
	}

	var sources []tileSource
	if params.Streaming {
		logger.Debug("convert: open stream", "input", params.InputPath)
		file, err := os.Open(params.InputPath)
		if err != nil {
			return err
		}
		defer file.Close()

		info, err := file.Stat()
		if err != nil {
			return err
		}

		stream, err := raster.NewStream(file, info.Size(), params.Width, params.Height)
		if err != nil {
			return err
		}
		streamTiles, err := stream.Tiles(params.GridSize)
		if err != nil {
			return err
		}
		for _, streamTile := range streamTiles {
			sources = append(sources, remappedTile{streamTile})
		}
	} else {
		logger.Debug("convert: load", "input", params.InputPath)
		dataset, err := raster.LoadFile(params.InputPath, params.Width, params.Height)
		if err != nil {
			return err
		}

		logger.Debug("convert: remap")
		if err := landcover.Remap(dataset.Data()); err != nil {
			return err
		}

		rasterTiles, err := dataset.Tiles(params.GridSize)
		if err != nil {
			return err
		}
		for _, rasterTile := range rasterTiles {
			sources = append(sources, rasterTile)
		}
	}

	writer, closeWriter, err := openWriter(params, logger)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := closeWriter(); err == nil {
			err = closeErr
		}
	}()

	for _, source := range sources {
		if err := writer.WriteTile(source.ID(), source); err != nil {
			return fmt.Errorf("tile %v: %w", source.ID().Name(), err)
		}
		if params.OnTile != nil {
			params.OnTile(source.ID())
		}
	}

	return writer.Finalize()
}

type remappedTile struct {
	raster.StreamTile
}

func (t remappedTile) VisitRows(visitor func([]byte) error) error {
	return landcover.RemapRows(t.StreamTile).VisitRows(visitor)
}

func openWriter(params TileParams, logger *slog.Logger) (tile.Writer, func() error, error) {
	switch params.Format {
	case FormatSQLite:
		writer, err := tiledb.NewWriter(
			filepath.Join(params.OutputDir, tiledb.Filename),
			params.Width,
			params.Height,
			tiledb.WithMetadata(map[string]string{"grid_size": fmt.Sprint(params.GridSize)}),
			tiledb.WithLogger(logger),
		)
		if err != nil {
			return nil, nil, err
		}
		return writer, writer.Close, nil
	default:
		opts := []geogrid.WriterOption{geogrid.WithLogger(logger)}
		if params.Index != nil {
			opts = append(opts, geogrid.WithIndex(*params.Index))
		}
		writer, err := geogrid.NewWriter(params.OutputDir, opts...)
		if err != nil {
			return nil, nil, err
		}
		return writer, func() error { return nil }, nil
	}
}
