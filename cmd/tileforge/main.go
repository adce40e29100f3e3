package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/pterm/pterm"
	"github.com/unixpickle/essentials"
	"github.com/unixpickle/tileforge"
)

func main() {
	cfg := tileforge.DefaultConfig()

	catalogPath := flag.String("catalog", "", "path to (glyph,value,count) CSV catalog")
	svgPath := flag.String("svg", "", "output path for the SVG cut layout (empty to skip)")
	mode := flag.String("mode", cfg.Mode.String(), "text mode: emboss or deboss")
	flag.StringVar(&cfg.FontPath, "font", "", "path to TTF/OTF font file (empty to skip solids)")
	flag.StringVar(&cfg.OutDir, "out", cfg.OutDir, "output directory for STL files")
	flag.Float64Var(&cfg.TileWidth, "tile-width", cfg.TileWidth, "tile width in mm")
	flag.Float64Var(&cfg.TileDepth, "tile-depth", cfg.TileDepth, "tile depth in mm")
	flag.Float64Var(&cfg.TileHeight, "tile-height", cfg.TileHeight, "tile height in mm")
	flag.Float64Var(&cfg.LetterDepth, "letter-depth", cfg.LetterDepth, "letter extrusion depth in mm")
	flag.Float64Var(&cfg.ValueDepth, "value-depth", cfg.ValueDepth, "value extrusion depth in mm")
	flag.Float64Var(&cfg.MeshDelta, "mesh-delta", cfg.MeshDelta, "marching cubes grid spacing in mm")
	flag.IntVar(&cfg.Workers, "workers", cfg.Workers, "parallel synthesis workers (0 = all cores)")
	flag.Parse()

	if *catalogPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	specs := readCatalog(*catalogPath)

	if *svgPath != "" {
		writeLayout(*svgPath, specs)
	}

	if cfg.FontPath == "" {
		pterm.Warning.Println("no -font given; skipping solid generation")
		return
	}

	m, err := tileforge.ParseMode(*mode)
	if err != nil {
		essentials.Die(err)
	}
	cfg.Mode = m

	font, err := tileforge.LoadFont(cfg.FontPath)
	if err != nil {
		essentials.Die(err)
	}
	syn, err := tileforge.NewSynthesizer(cfg, font)
	if err != nil {
		essentials.Die(err)
	}

	sum := tileforge.RunBatch(context.Background(), syn, specs)
	printSummary(sum)
	if sum.Skipped > 0 {
		os.Exit(1)
	}
}

func readCatalog(path string) []tileforge.TileSpec {
	f, err := os.Open(path)
	if err != nil {
		essentials.Die(err)
	}
	defer f.Close()
	specs, err := tileforge.ReadCatalog(f)
	if err != nil {
		essentials.Die(err)
	}
	return specs
}

func writeLayout(path string, specs []tileforge.TileSpec) {
	out, err := os.Create(path)
	if err != nil {
		essentials.Die(err)
	}
	defer out.Close()
	if err := tileforge.WriteLayout(out, specs, tileforge.DefaultLayoutConfig()); err != nil {
		essentials.Die(err)
	}
	pterm.Info.Printf("wrote layout %s\n", path)
}

func printSummary(sum tileforge.Summary) {
	data := [][]string{
		{"Tile", "Status", "File"},
	}
	for _, r := range sum.Results {
		status := "exported"
		switch {
		case r.Err != nil:
			status = "skipped: " + r.Err.Error()
		case len(r.Degraded) > 0:
			status = fmt.Sprintf("degraded (%d element failures)", len(r.Degraded))
		}
		data = append(data, []string{r.Spec.Label(), status, r.Path})
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()

	if sum.Skipped > 0 {
		pterm.Warning.Printf("%d exported (%d degraded), %d skipped\n",
			sum.Exported, sum.Degraded, sum.Skipped)
	} else {
		pterm.Success.Printf("%d exported (%d degraded)\n", sum.Exported, sum.Degraded)
	}
}
