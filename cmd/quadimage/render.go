package main

import (
	"context"
	"flag"
	"log"

	"github.com/google/subcommands"
	"github.com/setanarut/quadimage"
	"github.com/setanarut/quadimage/utils"
)

type renderCmd struct {
	inputPath  string
	outputPath string
	depth      int
	maxDepth   int
	threshold  float64
	lines      bool
}

func (c *renderCmd) Name() string     { return "render" }
func (c *renderCmd) Synopsis() string { return "render a quadtree approximation still" }
func (c *renderCmd) Usage() string {
	return "quadimage render -i <image> -o <out.png> [-depth <n> -max-depth <n> -threshold <f> -lines]\n"
}
func (c *renderCmd) SetFlags(f *flag.FlagSet) {
	opt := quadimage.DefaultOptions()
	f.StringVar(&c.inputPath, "i", "", "Input image path")
	f.StringVar(&c.outputPath, "o", "", "Output PNG path")
	f.IntVar(&c.depth, "depth", -1, "Render depth (-1 renders full refinement)")
	f.IntVar(&c.maxDepth, "max-depth", opt.MaxDepth, "Maximum subdivision depth")
	f.Float64Var(&c.threshold, "threshold", opt.ErrorThreshold, "Color error threshold")
	f.BoolVar(&c.lines, "lines", false, "Outline painted rectangles")
}

func (c *renderCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	if c.inputPath == "" || c.outputPath == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}

	img, err := utils.ReadImage(c.inputPath)
	if err != nil {
		log.Fatalf("read input: %v", err)
	}

	tree := quadimage.NewFromImage(img, quadimage.Options{
		MaxDepth:       c.maxDepth,
		ErrorThreshold: c.threshold,
	})

	depth := c.depth
	if depth < 0 {
		depth = tree.TreeHeight
	}
	if err := utils.SaveImage(tree.Image(depth, c.lines), c.outputPath); err != nil {
		log.Fatalf("write output: %v", err)
	}
	return subcommands.ExitSuccess
}
