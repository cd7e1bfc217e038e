package quadimage

import (
	"image"
	"image/color"
	"image/draw"
)

var black = color.RGBA{A: 255}

// Image flattens the tree into a raster at the requested depth. Traversal
// paints the first node on each path that is a leaf or sits exactly at
// depth, so a non-leaf node at the requested depth becomes one flat block of
// its average color even though finer children exist. The painted
// rectangles tile the canvas exactly. With showLines each rectangle gets a
// one-pixel black outline.
func (t *QuadTree) Image(depth int, showLines bool) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, t.Width, t.Height))
	draw.Draw(img, img.Bounds(), image.NewUniform(black), image.Point{}, draw.Src)

	t.walk(t.Root, depth, func(n *Node) {
		if n.Bounds.Empty() {
			return
		}
		draw.Draw(img, n.Bounds, image.NewUniform(n.Color), image.Point{}, draw.Src)
		if showLines {
			outline(img, n.Bounds)
		}
	})
	return img
}

// walk visits the nodes selected for painting at the given depth, halting
// descent at each selected node.
func (t *QuadTree) walk(n *Node, depth int, visit func(*Node)) {
	if n.Leaf() || n.Depth == depth {
		visit(n)
		return
	}
	for _, child := range n.children {
		t.walk(child, depth, visit)
	}
}

func outline(img *image.RGBA, r image.Rectangle) {
	for x := r.Min.X; x < r.Max.X; x++ {
		img.SetRGBA(x, r.Min.Y, black)
		img.SetRGBA(x, r.Max.Y-1, black)
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		img.SetRGBA(r.Min.X, y, black)
		img.SetRGBA(r.Max.X-1, y, black)
	}
}

// Frames renders the progressive refinement sequence: one frame per depth
// from 0 up to but not including TreeHeight, then the fully refined frame
// five times so playback holds on it.
func (t *QuadTree) Frames(showLines bool) []*image.RGBA {
	frames := make([]*image.RGBA, 0, t.TreeHeight+5)
	for d := 0; d < t.TreeHeight; d++ {
		frames = append(frames, t.Image(d, showLines))
	}
	final := t.Image(t.TreeHeight, showLines)
	for i := 0; i < 5; i++ {
		frames = append(frames, final)
	}
	return frames
}
