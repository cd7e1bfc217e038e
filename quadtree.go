// Package quadimage approximates a raster image by recursively partitioning
// it into quadrants of near-uniform color. The resulting tree renders either
// as a single compressed-looking still or as a coarse-to-fine animation of
// progressive refinement.
package quadimage

import (
	"image"
	"image/color"
)

type Options struct {
	// Maximum subdivision depth; the root sits at depth 0. Construction
	// never descends past it, whatever the color error.
	MaxDepth int
	// Regions whose luma-weighted color error does not exceed this value
	// are kept whole.
	ErrorThreshold float64
}

func DefaultOptions() Options {
	return Options{
		MaxDepth:       10,
		ErrorThreshold: 13,
	}
}

// Node is one rectangular region of the source image, carrying the region's
// average color and the error that decided its fate. Nodes are created
// during New and never change afterwards.
type Node struct {
	Bounds image.Rectangle
	Depth  int
	Color  color.RGBA
	Error  float64

	children *[4]*Node // nil for leaves, otherwise exactly four
}

// Leaf reports whether the node was not subdivided.
func (n *Node) Leaf() bool { return n.children == nil }

// Children returns the node's children in top-left, top-right, bottom-left,
// bottom-right order, or nil for a leaf.
func (n *Node) Children() []*Node {
	if n.children == nil {
		return nil
	}
	return n.children[:]
}

// QuadTree is the finished, immutable partition of an image. TreeHeight is
// the deepest leaf depth and never exceeds MaxDepth.
type QuadTree struct {
	Root       *Node
	Width      int
	Height     int
	MaxDepth   int
	TreeHeight int
}

// New builds a quadtree over a width×height pixel source. Construction is a
// single depth-first pass: each node samples its region once, then is either
// kept as a leaf or split into four children. Identical pixel data and
// options always produce an identical tree.
func New(src PixelSource, width, height int, opt Options) *QuadTree {
	t := &QuadTree{
		Width:    width,
		Height:   height,
		MaxDepth: opt.MaxDepth,
	}
	t.Root = newNode(src, image.Rect(0, 0, width, height), 0)
	t.build(t.Root, src, opt)
	return t
}

// NewFromImage decodes img into a pixel plane and builds a tree over it.
func NewFromImage(img image.Image, opt Options) *QuadTree {
	p := NewPixels(img)
	return New(p, p.W, p.H, opt)
}

func newNode(src PixelSource, bounds image.Rectangle, depth int) *Node {
	c, e := colorFromRegion(src, bounds)
	return &Node{
		Bounds: bounds,
		Depth:  depth,
		Color:  c,
		Error:  e,
	}
}

func (t *QuadTree) build(n *Node, src PixelSource, opt Options) {
	if n.Depth >= opt.MaxDepth || n.Error <= opt.ErrorThreshold {
		if n.Depth > t.TreeHeight {
			t.TreeHeight = n.Depth
		}
		return
	}
	subdivide(n, src)
	for _, child := range n.children {
		t.build(child, src, opt)
	}
}

// subdivide splits n at the integer midpoint of its bounds into four
// children ordered top-left, top-right, bottom-left, bottom-right. The
// children tile the parent exactly. Zero-area children are legal: their
// histograms are empty, so they come out black with error 0 and stop
// immediately.
func subdivide(n *Node, src PixelSource) {
	b := n.Bounds
	mx := b.Min.X + (b.Max.X-b.Min.X)/2
	my := b.Min.Y + (b.Max.Y-b.Min.Y)/2
	n.children = &[4]*Node{
		newNode(src, image.Rect(b.Min.X, b.Min.Y, mx, my), n.Depth+1),
		newNode(src, image.Rect(mx, b.Min.Y, b.Max.X, my), n.Depth+1),
		newNode(src, image.Rect(b.Min.X, my, mx, b.Max.Y), n.Depth+1),
		newNode(src, image.Rect(mx, my, b.Max.X, b.Max.Y), n.Depth+1),
	}
}

// Leaves calls visit for every leaf node in depth-first order.
func (t *QuadTree) Leaves(visit func(*Node)) {
	var walk func(*Node)
	walk = func(n *Node) {
		if n.Leaf() {
			visit(n)
			return
		}
		for _, child := range n.children {
			walk(child)
		}
	}
	walk(t.Root)
}
