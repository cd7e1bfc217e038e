package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"log"

	"github.com/google/subcommands"
	"github.com/schollz/progressbar/v3"
	"github.com/setanarut/quadimage"
	"github.com/setanarut/quadimage/utils"
)

type animateCmd struct {
	inputPath  string
	outputPath string
	maxDepth   int
	threshold  float64
	lines      bool
	duration   int
	loop       int
}

func (c *animateCmd) Name() string     { return "animate" }
func (c *animateCmd) Synopsis() string { return "export the progressive refinement animation" }
func (c *animateCmd) Usage() string {
	return "quadimage animate -i <image> -o <out.gif> [-duration <n> -loop <n> -max-depth <n> -threshold <f> -lines]\n"
}
func (c *animateCmd) SetFlags(f *flag.FlagSet) {
	opt := quadimage.DefaultOptions()
	f.StringVar(&c.inputPath, "i", "", "Input image path")
	f.StringVar(&c.outputPath, "o", "", "Output GIF path")
	f.IntVar(&c.maxDepth, "max-depth", opt.MaxDepth, "Maximum subdivision depth")
	f.Float64Var(&c.threshold, "threshold", opt.ErrorThreshold, "Color error threshold")
	f.BoolVar(&c.lines, "lines", false, "Outline painted rectangles")
	f.IntVar(&c.duration, "duration", 100, "Per-frame delay in 10ms units")
	f.IntVar(&c.loop, "loop", 0, "Loop count (0 loops forever)")
}

func (c *animateCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	if c.inputPath == "" || c.outputPath == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}
	if c.duration <= 0 || c.loop < 0 {
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

	// Same sequence as QuadTree.Frames, rendered here so the bar can track
	// per-depth progress.
	bar := progressbar.NewOptions(tree.TreeHeight+1, progressbar.OptionShowIts(), progressbar.OptionShowCount())
	frames := make([]*image.RGBA, 0, tree.TreeHeight+5)
	for d := 0; d < tree.TreeHeight; d++ {
		frames = append(frames, tree.Image(d, c.lines))
		bar.Add(1)
	}
	final := tree.Image(tree.TreeHeight, c.lines)
	bar.Add(1)
	for i := 0; i < 5; i++ {
		frames = append(frames, final)
	}
	bar.Finish()
	fmt.Println()

	if err := utils.SaveGIF(frames, c.outputPath, c.duration, c.loop); err != nil {
		log.Fatalf("write output: %v", err)
	}
	return subcommands.ExitSuccess
}
