package render

import (
	"github.com/benz9527/bstviz/lib/tree"
)

const (
	RootY         = 50.0
	LevelHeight   = 60.0
	NodeRadius    = 20.0
	BaseOffset    = 150.0
	LabelBaseline = 6.0
)

type Point struct {
	X, Y float64
}

// childOffset is the horizontal distance between a node at level and its children.
// It shrinks with depth so that deep subtrees draw narrower.
func childOffset(level int) float64 {
	return BaseOffset / float64(level+1)
}

func rootPoint(width int) Point {
	return Point{X: float64(width) / 2, Y: RootY}
}

func childPoint(parent Point, dir tree.Direction, level int) Point {
	return Point{
		X: parent.X + float64(dir)*childOffset(level),
		Y: parent.Y + LevelHeight,
	}
}

// PathPoint is the center of the node slot reached by walking path from the root.
func PathPoint(width int, path []tree.Direction) Point {
	p := rootPoint(width)
	for level, dir := range path {
		p = childPoint(p, dir, level)
	}
	return p
}
