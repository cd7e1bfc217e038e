package main

import (
	"context"
	"flag"
	"log"

	"github.com/google/subcommands"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/setanarut/quadimage"
	"github.com/setanarut/quadimage/utils"
)

type paletteCmd struct {
	inputPath  string
	outputPath string
	colors     int
	method     string
	tileSize   int
	maxDepth   int
	threshold  float64
}

func (c *paletteCmd) Name() string     { return "palette" }
func (c *paletteCmd) Synopsis() string { return "extract a palette strip from an image" }
func (c *paletteCmd) Usage() string {
	return "quadimage palette -i <image> -o <out.png> [-colors <k> -method <dominantcolor|kmeans|leaves>]\n"
}
func (c *paletteCmd) SetFlags(f *flag.FlagSet) {
	opt := quadimage.DefaultOptions()
	f.StringVar(&c.inputPath, "i", "", "Input image path")
	f.StringVar(&c.outputPath, "o", "", "Output PNG path")
	f.IntVar(&c.colors, "colors", 7, "Number of palette colors")
	f.StringVar(&c.method, "method", "dominantcolor", "Extraction method (dominantcolor, kmeans, leaves)")
	f.IntVar(&c.tileSize, "tile-size", 64, "Swatch size in pixels")
	f.IntVar(&c.maxDepth, "max-depth", opt.MaxDepth, "Maximum subdivision depth (leaves method)")
	f.Float64Var(&c.threshold, "threshold", opt.ErrorThreshold, "Color error threshold (leaves method)")
}

func (c *paletteCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	if c.inputPath == "" || c.outputPath == "" || c.colors <= 0 {
		f.Usage()
		return subcommands.ExitUsageError
	}

	img, err := utils.ReadImage(c.inputPath)
	if err != nil {
		log.Fatalf("read input: %v", err)
	}

	var pal []colorful.Color
	switch c.method {
	case "leaves":
		tree := quadimage.NewFromImage(img, quadimage.Options{
			MaxDepth:       c.maxDepth,
			ErrorThreshold: c.threshold,
		})
		pal = utils.LeafPalette(tree, c.colors)
	case "kmeans":
		pal = utils.ExtractPalette(img, c.colors, utils.PaletteMethodKMeans)
	case "dominantcolor":
		pal = utils.ExtractPalette(img, c.colors, utils.PaletteMethodDominantColor)
	default:
		f.Usage()
		return subcommands.ExitUsageError
	}

	utils.SortPaletteByBrightness(pal)
	if err := utils.SavePalette(pal, c.tileSize, c.outputPath); err != nil {
		log.Fatalf("write output: %v", err)
	}
	return subcommands.ExitSuccess
}
