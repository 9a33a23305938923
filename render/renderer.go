package render

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/benz9527/bstviz/anim"
	"github.com/benz9527/bstviz/lib/infra"
	"github.com/benz9527/bstviz/lib/tree"
	"github.com/benz9527/bstviz/xlog"
)

var _ anim.Renderer[int] = (*TreeRenderer[int])(nil)

// TreeRenderer draws a tree onto a Surface, one frame per call.
type TreeRenderer[K infra.OrderedKey] struct {
	surface Surface
	logger  xlog.XLogger
	frames  int64
}

func (r *TreeRenderer[K]) Frames() int64 {
	return r.frames
}

func (r *TreeRenderer[K]) Render(bst tree.BST[K]) {
	r.surface.Clear()
	r.drawTree(bst)
	r.flush()
}

func (r *TreeRenderer[K]) RenderHighlighted(bst tree.BST[K], ev tree.VisitEvent[K]) {
	r.surface.Clear()
	r.drawTree(bst)
	width, _ := r.surface.Size()
	r.drawNode(PathPoint(width, ev.Path), ev.Key, ColorOf(ev.Color))
	r.flush()
}

func (r *TreeRenderer[K]) drawTree(bst tree.BST[K]) {
	if bst == nil {
		return
	}
	root := bst.Root()
	if root == nil || !root.HasKey() {
		return
	}
	width, _ := r.surface.Size()
	r.drawSubtree(root, rootPoint(width), 0)
}

// Edges first, the node circle is painted over the edge ends.
func (r *TreeRenderer[K]) drawSubtree(node tree.BSTNode[K], p Point, level int) {
	if left := node.Left(); left != nil && left.HasKey() {
		c := childPoint(p, tree.Left, level)
		r.surface.Line(p.X, p.Y, c.X, c.Y)
		r.drawSubtree(left, c, level+1)
	}
	if right := node.Right(); right != nil && right.HasKey() {
		c := childPoint(p, tree.Right, level)
		r.surface.Line(p.X, p.Y, c.X, c.Y)
		r.drawSubtree(right, c, level+1)
	}
	r.drawNode(p, node.Key(), ColorDefault)
}

func (r *TreeRenderer[K]) drawNode(p Point, key K, fill Color) {
	r.surface.Circle(p.X, p.Y, NodeRadius, fill)
	r.surface.Text(p.X, p.Y+LabelBaseline, fmt.Sprintf("%v", key))
}

func (r *TreeRenderer[K]) flush() {
	r.frames++
	if err := r.surface.Flush(); err != nil && r.logger != nil {
		r.logger.Error(err, "render frame failed", zap.Int64("frame", r.frames))
	}
}

type TreeRendererOption[K infra.OrderedKey] func(*TreeRenderer[K])

func WithTreeRendererLogger[K infra.OrderedKey](logger xlog.XLogger) TreeRendererOption[K] {
	return func(r *TreeRenderer[K]) {
		if logger != nil {
			r.logger = logger.Named("render")
		}
	}
}

func NewTreeRenderer[K infra.OrderedKey](surface Surface, opts ...TreeRendererOption[K]) (*TreeRenderer[K], error) {
	if surface == nil {
		return nil, ErrNilSurface
	}
	r := &TreeRenderer[K]{
		surface: surface,
	}
	for _, o := range opts {
		if o == nil {
			continue
		}
		o(r)
	}
	return r, nil
}
