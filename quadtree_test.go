package quadimage_test

import (
	"image"
	"image/color"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/setanarut/quadimage"
)

func uniformImage(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

// checkerboard alternates black and white per pixel.
func checkerboard(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := color.RGBA{A: 255}
			if (x+y)%2 == 0 {
				c = color.RGBA{R: 255, G: 255, B: 255, A: 255}
			}
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

// gradient varies every channel with position so no region is uniform.
func gradient(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, color.RGBA{
				R: uint8(x * 255 / max(w-1, 1)),
				G: uint8(y * 255 / max(h-1, 1)),
				B: uint8((x ^ y) * 17),
				A: 255,
			})
		}
	}
	return img
}

func walkNodes(n *quadimage.Node, visit func(*quadimage.Node)) {
	visit(n)
	for _, child := range n.Children() {
		walkNodes(child, visit)
	}
}

// selectedAt mirrors the render selection rule: the first node on each path
// that is a leaf or sits exactly at depth.
func selectedAt(t *quadimage.QuadTree, depth int) []image.Rectangle {
	var rects []image.Rectangle
	var walk func(*quadimage.Node)
	walk = func(n *quadimage.Node) {
		if n.Leaf() || n.Depth == depth {
			rects = append(rects, n.Bounds)
			return
		}
		for _, child := range n.Children() {
			walk(child)
		}
	}
	walk(t.Root)
	return rects
}

func TestUniformImageSingleLeaf(t *testing.T) {
	c := color.RGBA{R: 40, G: 160, B: 220, A: 255}
	tree := quadimage.NewFromImage(uniformImage(8, 8, c), quadimage.DefaultOptions())

	if !tree.Root.Leaf() {
		t.Fatal("root of a uniform image is not a leaf")
	}
	if tree.Root.Error != 0 {
		t.Errorf("root error = %v, want 0", tree.Root.Error)
	}
	if tree.TreeHeight != 0 {
		t.Errorf("tree height = %d, want 0", tree.TreeHeight)
	}
	if tree.Root.Color != c {
		t.Errorf("root color = %v, want %v", tree.Root.Color, c)
	}

	for _, depth := range []int{0, 3, 10} {
		img := tree.Image(depth, false)
		for y := 0; y < 8; y++ {
			for x := 0; x < 8; x++ {
				if got := img.RGBAAt(x, y); got != c {
					t.Fatalf("depth %d: pixel (%d,%d) = %v, want %v", depth, x, y, got, c)
				}
			}
		}
	}
}

func TestCheckerboardSubdivides(t *testing.T) {
	tree := quadimage.NewFromImage(checkerboard(4, 4), quadimage.DefaultOptions())

	if tree.Root.Leaf() {
		t.Fatal("checkerboard root is a leaf, expected subdivision")
	}
	if tree.Root.Error <= quadimage.DefaultOptions().ErrorThreshold {
		t.Errorf("root error = %v, expected above threshold", tree.Root.Error)
	}

	// 2×2 quadrants are still mixed; 1×1 regions are uniform.
	if tree.TreeHeight != 2 {
		t.Errorf("tree height = %d, want 2", tree.TreeHeight)
	}
	tree.Leaves(func(n *quadimage.Node) {
		if n.Error != 0 && n.Depth < tree.MaxDepth {
			t.Errorf("leaf %v at depth %d has error %v, want 0", n.Bounds, n.Depth, n.Error)
		}
	})
}

func TestLeafXorChildren(t *testing.T) {
	tree := quadimage.NewFromImage(gradient(16, 16), quadimage.Options{MaxDepth: 4, ErrorThreshold: 5})
	walkNodes(tree.Root, func(n *quadimage.Node) {
		switch children := n.Children(); {
		case n.Leaf() && children != nil:
			t.Errorf("node %v: leaf with children", n.Bounds)
		case !n.Leaf() && len(children) != 4:
			t.Errorf("node %v: interior node with %d children", n.Bounds, len(children))
		}
	})
}

func TestMaxDepthZero(t *testing.T) {
	tree := quadimage.NewFromImage(checkerboard(8, 8), quadimage.Options{MaxDepth: 0, ErrorThreshold: 13})
	if !tree.Root.Leaf() {
		t.Fatal("root is not a leaf with MaxDepth 0")
	}
	if tree.Root.Error == 0 {
		t.Error("checkerboard root error = 0, expected positive")
	}
	if tree.TreeHeight != 0 {
		t.Errorf("tree height = %d, want 0", tree.TreeHeight)
	}
}

func TestTreeHeightBound(t *testing.T) {
	for _, maxDepth := range []int{1, 3, 6} {
		tree := quadimage.NewFromImage(gradient(16, 16), quadimage.Options{MaxDepth: maxDepth, ErrorThreshold: 0})
		if tree.TreeHeight > maxDepth {
			t.Errorf("MaxDepth %d: tree height = %d", maxDepth, tree.TreeHeight)
		}
	}
}

func TestDeterminism(t *testing.T) {
	img := gradient(17, 13) // odd sizes exercise uneven splits
	opt := quadimage.Options{MaxDepth: 5, ErrorThreshold: 8}
	a := quadimage.NewFromImage(img, opt)
	b := quadimage.NewFromImage(img, opt)
	if diff := cmp.Diff(a, b, cmp.AllowUnexported(quadimage.Node{})); diff != "" {
		t.Errorf("trees differ between identical builds (-a+b):\n%s", diff)
	}
}

func TestSelectionPartitionsCanvas(t *testing.T) {
	tree := quadimage.NewFromImage(gradient(17, 13), quadimage.Options{MaxDepth: 5, ErrorThreshold: 8})
	for depth := 0; depth <= tree.TreeHeight; depth++ {
		covered := make([]int, tree.Width*tree.Height)
		for _, r := range selectedAt(tree, depth) {
			for y := r.Min.Y; y < r.Max.Y; y++ {
				for x := r.Min.X; x < r.Max.X; x++ {
					covered[y*tree.Width+x]++
				}
			}
		}
		for i, n := range covered {
			if n != 1 {
				t.Fatalf("depth %d: pixel (%d,%d) covered %d times", depth, i%tree.Width, i/tree.Width, n)
			}
		}
	}
}

func TestRenderFlattensAtRequestedDepth(t *testing.T) {
	tree := quadimage.NewFromImage(checkerboard(4, 4), quadimage.DefaultOptions())

	// Depth 0 flattens the whole image into the root's average color even
	// though finer children exist.
	want := tree.Root.Color
	img := tree.Image(0, false)
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			if got := img.RGBAAt(x, y); got != want {
				t.Fatalf("pixel (%d,%d) = %v, want root color %v", x, y, got, want)
			}
		}
	}
}

func TestRenderOutlines(t *testing.T) {
	c := color.RGBA{R: 200, G: 50, B: 50, A: 255}
	tree := quadimage.NewFromImage(uniformImage(8, 8, c), quadimage.DefaultOptions())

	img := tree.Image(0, true)
	black := color.RGBA{A: 255}
	if got := img.RGBAAt(0, 0); got != black {
		t.Errorf("corner pixel = %v, want black outline", got)
	}
	if got := img.RGBAAt(7, 7); got != black {
		t.Errorf("corner pixel = %v, want black outline", got)
	}
	if got := img.RGBAAt(4, 4); got != c {
		t.Errorf("interior pixel = %v, want %v", got, c)
	}
}

func TestFramesSequence(t *testing.T) {
	tree := quadimage.NewFromImage(checkerboard(8, 8), quadimage.DefaultOptions())
	if tree.TreeHeight != 3 {
		t.Fatalf("tree height = %d, want 3", tree.TreeHeight)
	}

	frames := tree.Frames(false)
	if len(frames) != tree.TreeHeight+5 {
		t.Fatalf("len(frames) = %d, want %d", len(frames), tree.TreeHeight+5)
	}

	final := tree.Image(tree.TreeHeight, false)
	for i := tree.TreeHeight; i < len(frames); i++ {
		if diff := cmp.Diff(final, frames[i]); diff != "" {
			t.Errorf("held frame %d differs from the refined frame:\n%s", i, diff)
		}
	}
	if diff := cmp.Diff(tree.Image(0, false), frames[0]); diff != "" {
		t.Errorf("frame 0 is not the depth-0 render:\n%s", diff)
	}
}

func TestFramesUniformImage(t *testing.T) {
	tree := quadimage.NewFromImage(uniformImage(4, 4, color.RGBA{R: 9, G: 9, B: 9, A: 255}), quadimage.DefaultOptions())
	if got := len(tree.Frames(false)); got != 5 {
		t.Errorf("len(frames) = %d, want 5 held copies for tree height 0", got)
	}
}
