package convert_test

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/DHI-GRAS/raster-to-geogrid/convert"
	"github.com/DHI-GRAS/raster-to-geogrid/geogrid"
	"github.com/DHI-GRAS/raster-to-geogrid/internal"
	"github.com/DHI-GRAS/raster-to-geogrid/landcover"
	"github.com/DHI-GRAS/raster-to-geogrid/raster"
	"github.com/DHI-GRAS/raster-to-geogrid/tile"
	"github.com/DHI-GRAS/raster-to-geogrid/tiledb"
	"github.com/google/go-cmp/cmp"
	_ "github.com/mattn/go-sqlite3"
)

const (
	testWidth  = 20
	testHeight = 10
	testGrid   = 5
)

func testConfig(t *testing.T, data []byte) convert.Config {
	t.Helper()
	rootDir := t.TempDir()
	config := convert.DefaultConfig()
	config.InputPath = internal.WriteFile(t, "raster.dat", data)
	config.WestPath = filepath.Join(rootDir, "west.dat")
	config.EastPath = filepath.Join(rootDir, "east.dat")
	config.WestDir = filepath.Join(rootDir, "west")
	config.EastDir = filepath.Join(rootDir, "east")
	config.Width = testWidth
	config.Height = testHeight
	config.GridSize = testGrid
	for _, dir := range []string{config.WestDir, config.EastDir} {
		if err := os.Mkdir(dir, 0755); err != nil {
			t.Fatal(err)
		}
	}
	return config
}

// requireNothingWritten checks that neither split files nor tiles exist.
func requireNothingWritten(t *testing.T, config convert.Config) {
	t.Helper()
	for _, path := range []string{config.WestPath, config.EastPath} {
		if _, err := os.Stat(path); !os.IsNotExist(err) {
			t.Errorf("%v written by failed run", path)
		}
	}
	for _, dir := range []string{config.WestDir, config.EastDir} {
		entries, _ := os.ReadDir(dir)
		if len(entries) != 0 {
			t.Errorf("%v has %d entries after failed run", dir, len(entries))
		}
	}
}

// halves returns the remapped west and east halves of data.
func halves(t *testing.T, data []byte) (west, east []byte) {
	t.Helper()
	for y := range testHeight {
		west = append(west, data[y*testWidth:y*testWidth+testWidth/2]...)
		east = append(east, data[y*testWidth+testWidth/2:(y+1)*testWidth]...)
	}
	if err := landcover.Remap(west); err != nil {
		t.Fatal(err)
	}
	if err := landcover.Remap(east); err != nil {
		t.Fatal(err)
	}
	return west, east
}

func TestRun(t *testing.T) {
	for _, tc := range []struct {
		name      string
		format    convert.Format
		streaming bool
	}{
		{"Geogrid", convert.FormatGeogrid, false},
		{"GeogridStreaming", convert.FormatGeogrid, true},
		{"SQLite", convert.FormatSQLite, false},
		{"SQLiteStreaming", convert.FormatSQLite, true},
	} {
		t.Run(tc.name, func(t *testing.T) {
			data := internal.CCIRaster(testWidth, testHeight, 99)
			config := testConfig(t, data)
			config.Format = tc.format
			config.Streaming = tc.streaming

			var rows int
			var order []string
			config.OnRow = func(int) { rows++ }
			config.OnTile = func(h convert.Hemisphere, tileID tile.ID) {
				order = append(order, string(h)+"/"+tileID.Name())
			}

			if err := convert.Run(config); err != nil {
				t.Fatalf("Run failed: %v", err)
			}

			if got, want := rows, testHeight; got != want {
				t.Errorf("OnRow called %d times, want = %d", got, want)
			}
			if got, want := len(order), 2*testGrid*testGrid; got != want {
				t.Fatalf("OnTile called %d times, want = %d", got, want)
			}
			for _, want := range []string{"west/00001-00002.00001-00002", "west/00001-00002.00003-00004", "east/00009-00010.00009-00010"} {
				found := false
				for _, got := range order {
					found = found || got == want
				}
				if !found {
					t.Errorf("tile %v not written", want)
				}
			}
			if got, want := order[1], "west/00001-00002.00003-00004"; got != want {
				t.Errorf("second tile = %v, want = %v", got, want)
			}
			if got, want := order[len(order)-1], "east/00009-00010.00009-00010"; got != want {
				t.Errorf("last tile = %v, want = %v", got, want)
			}

			wantWest, wantEast := halves(t, data)
			for dir, want := range map[string][]byte{config.WestDir: wantWest, config.EastDir: wantEast} {
				var tiles tile.Visitor
				if tc.format == convert.FormatSQLite {
					reader, err := tiledb.NewReader(filepath.Join(dir, tiledb.Filename))
					if err != nil {
						t.Fatalf("tiledb.NewReader failed: %v", err)
					}
					defer reader.Close()
					tiles = reader
				} else {
					reader, err := geogrid.NewReader(dir)
					if err != nil {
						t.Fatalf("geogrid.NewReader failed: %v", err)
					}
					tiles = reader
				}
				assembled, err := raster.Assemble(testWidth/2, testHeight, tiles)
				if err != nil {
					t.Fatalf("Assemble failed: %v", err)
				}
				if diff := cmp.Diff(want, assembled.Data()); diff != "" {
					t.Errorf("%v tiles mismatch (-want+got):\n%v", dir, diff)
				}
			}
		})
	}
}

func TestRunIndex(t *testing.T) {
	config := testConfig(t, internal.CCIRaster(testWidth, testHeight, 1))
	if err := convert.Run(config); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	for _, tc := range []struct {
		dir      string
		knownLon string
	}{
		{config.WestDir, "known_lon=-171\n"},
		{config.EastDir, "known_lon=9\n"},
	} {
		indexData, err := os.ReadFile(filepath.Join(tc.dir, geogrid.IndexFilename))
		if err != nil {
			t.Fatalf("ReadFile(index) failed: %v", err)
		}
		for _, line := range []string{tc.knownLon, "known_lat=81\n", "dx=18\n", "dy=-18\n", "tile_x=2\n", "tile_y=2\n"} {
			if !strings.Contains(string(indexData), line) {
				t.Errorf("%v index does not contain %q:\n%s", tc.dir, line, indexData)
			}
		}
	}
}

func TestRunErrors(t *testing.T) {
	t.Run("UnknownClass", func(t *testing.T) {
		data := internal.CCIRaster(testWidth, testHeight, 2)
		data[len(data)-1] = 255
		config := testConfig(t, data)
		if err := convert.Run(config); !errors.Is(err, landcover.ErrUnknownClass) {
			t.Errorf("Run error = %v, want = %v", err, landcover.ErrUnknownClass)
		}
	})

	t.Run("UnknownClassStreaming", func(t *testing.T) {
		data := internal.CCIRaster(testWidth, testHeight, 2)
		data[0] = 1
		config := testConfig(t, data)
		config.Streaming = true
		if err := convert.Run(config); !errors.Is(err, landcover.ErrUnknownClass) {
			t.Errorf("Run error = %v, want = %v", err, landcover.ErrUnknownClass)
		}
	})

	t.Run("NotDivisible", func(t *testing.T) {
		config := testConfig(t, internal.CCIRaster(testWidth, testHeight, 3))
		config.GridSize = 3
		if err := convert.Run(config); !errors.Is(err, raster.ErrNotDivisible) {
			t.Errorf("Run error = %v, want = %v", err, raster.ErrNotDivisible)
		}
		requireNothingWritten(t, config)
	})

	t.Run("Truncated", func(t *testing.T) {
		config := testConfig(t, internal.CCIRaster(testWidth, testHeight-1, 4))
		if err := convert.Run(config); !errors.Is(err, raster.ErrTruncated) {
			t.Errorf("Run error = %v, want = %v", err, raster.ErrTruncated)
		}
	})

	t.Run("MissingDirectory", func(t *testing.T) {
		config := testConfig(t, internal.CCIRaster(testWidth, testHeight, 5))
		config.EastDir = filepath.Join(config.EastDir, "missing")
		if err := convert.Run(config); !errors.Is(err, geogrid.ErrNotDirectory) {
			t.Errorf("Run error = %v, want = %v", err, geogrid.ErrNotDirectory)
		}
		requireNothingWritten(t, config)
	})

	t.Run("OddWidth", func(t *testing.T) {
		config := testConfig(t, internal.CCIRaster(testWidth, testHeight, 5))
		config.Width = 15
		config.GridSize = 1
		if err := convert.Run(config); !errors.Is(err, raster.ErrNotDivisible) {
			t.Errorf("Run error = %v, want = %v", err, raster.ErrNotDivisible)
		}
		requireNothingWritten(t, config)
	})

	t.Run("MissingPath", func(t *testing.T) {
		config := testConfig(t, internal.CCIRaster(testWidth, testHeight, 6))
		config.WestPath = ""
		if err := convert.Run(config); !errors.Is(err, convert.ErrInvalidConfig) {
			t.Errorf("Run error = %v, want = %v", err, convert.ErrInvalidConfig)
		}
	})

	t.Run("UnknownFormat", func(t *testing.T) {
		config := testConfig(t, internal.CCIRaster(testWidth, testHeight, 7))
		config.Format = "png"
		if err := convert.Run(config); !errors.Is(err, convert.ErrInvalidConfig) {
			t.Errorf("Run error = %v, want = %v", err, convert.ErrInvalidConfig)
		}
	})
}

func TestTile(t *testing.T) {
	data := internal.CCIRaster(8, 8, 8)
	outputDir := t.TempDir()
	params := convert.TileParams{
		InputPath: internal.WriteFile(t, "west.dat", data),
		OutputDir: outputDir,
		Width:     8,
		Height:    8,
		GridSize:  2,
	}
	if err := convert.Tile(params); err != nil {
		t.Fatalf("Tile failed: %v", err)
	}

	reader, err := geogrid.NewReader(outputDir)
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}
	assembled, err := raster.Assemble(8, 8, reader)
	if err != nil {
		t.Fatalf("Assemble failed: %v", err)
	}
	if err := landcover.Remap(data); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(data, assembled.Data()); diff != "" {
		t.Errorf("tiles mismatch (-want+got):\n%v", diff)
	}
	if _, err := os.Stat(filepath.Join(outputDir, geogrid.IndexFilename)); !os.IsNotExist(err) {
		t.Errorf("index written without Index param")
	}
}

func TestParseHemisphere(t *testing.T) {
	for _, s := range []string{"west", "east"} {
		h, err := convert.ParseHemisphere(s)
		if err != nil || string(h) != s {
			t.Errorf("ParseHemisphere(%q) = %v, %v", s, h, err)
		}
	}
	if _, err := convert.ParseHemisphere("north"); !errors.Is(err, convert.ErrInvalidConfig) {
		t.Errorf("ParseHemisphere(north) error = %v, want = %v", err, convert.ErrInvalidConfig)
	}
}

func TestHemisphereIndex(t *testing.T) {
	index := convert.West.Index(convert.GlobeWidth, convert.GlobeHeight, convert.GridSize)
	if got, want := index.TileX, 6480; got != want {
		t.Errorf("TileX = %v, want = %v", got, want)
	}
	if got, want := index.TileY, 6480; got != want {
		t.Errorf("TileY = %v, want = %v", got, want)
	}
	if index.KnownLon >= -179.99 || index.KnownLon <= -180 {
		t.Errorf("west KnownLon = %v, want just east of -180", index.KnownLon)
	}
	for _, h := range []convert.Hemisphere{convert.West, convert.East} {
		index := h.Index(convert.GlobeWidth, convert.GlobeHeight, convert.GridSize)
		if index.DY >= 0 {
			t.Errorf("%v DY = %v, want negative for rows numbered from the north", h, index.DY)
		}
		cellLat := func(y int) float64 { return index.KnownLat + (float64(y)-index.KnownY)*index.DY }
		halfCell := 90.0 / convert.GlobeHeight
		if got, want := cellLat(1), 90-halfCell; math.Abs(got-want) > 1e-9 {
			t.Errorf("%v latitude of first row = %v, want = %v", h, got, want)
		}
		if got, want := cellLat(convert.GlobeHeight), -90+halfCell; math.Abs(got-want) > 1e-9 {
			t.Errorf("%v latitude of last row = %v, want = %v", h, got, want)
		}
		cellLon := func(x int) float64 { return index.KnownLon + (float64(x)-index.KnownX)*index.DX }
		halfColumn := 180.0 / convert.GlobeWidth
		lastLon := -halfColumn
		if h == convert.East {
			lastLon = 180 - halfColumn
		}
		if got, want := cellLon(convert.GlobeWidth/2), lastLon; math.Abs(got-want) > 1e-9 {
			t.Errorf("%v longitude of last column = %v, want = %v", h, got, want)
		}
	}

	east := convert.East.Index(convert.GlobeWidth, convert.GlobeHeight, convert.GridSize)
	if east.KnownLon <= 0 || east.KnownLon >= 0.01 {
		t.Errorf("east KnownLon = %v, want just east of 0", east.KnownLon)
	}
}
