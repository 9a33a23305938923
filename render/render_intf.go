package render

import (
	"github.com/cockroachdb/errors"

	"github.com/benz9527/bstviz/lib/tree"
)

var (
	ErrNilSurface   = errors.New("[render] nil surface")
	ErrInvalidSize  = errors.New("[render] invalid surface size")
	ErrUnknownKind  = errors.New("[render] unknown surface kind")
	// ErrSurfaceWrite is matched by both the standard and the cockroachdb
	// errors.Is, the failed write is attached as a secondary error.
	ErrSurfaceWrite = errors.New("[render] surface write failed")
)

func surfaceWriteError(cause error, format string, args ...any) error {
	return errors.WithSecondaryError(errors.Wrapf(ErrSurfaceWrite, format, args...), cause)
}

// Color is a named fill color, the names are CSS color keywords.
type Color string

const (
	ColorDefault   Color = "lightblue"
	ColorVisiting  Color = "yellow"
	ColorFound     Color = "green"
	ColorDeleting  Color = "red"
	ColorTraversal Color = "orange"
	ColorStroke    Color = "black"
)

func ColorOf(c tree.HighlightColor) Color {
	switch c {
	case tree.Visiting:
		return ColorVisiting
	case tree.Found:
		return ColorFound
	case tree.Deleting:
		return ColorDeleting
	case tree.TraversalOrder:
		return ColorTraversal
	default:
	}
	return ColorDefault
}

// Surface is a 2D drawing target in pixel coordinates, origin at the top left.
// A frame is everything drawn between Clear and Flush.
// Draw calls never fail, the first failure is kept and reported by Err.
type Surface interface {
	Size() (width, height int)
	Clear()
	Line(x1, y1, x2, y2 float64)
	Circle(x, y, r float64, fill Color)
	// Text is centered horizontally on x, y is the baseline.
	Text(x, y float64, label string)
	// Flush ends the frame and emits it.
	Flush() error
	Err() error
}

type SurfaceKind string

const (
	GridSurfaceKind SurfaceKind = "grid"
	SVGSurfaceKind  SurfaceKind = "svg"
	NopSurfaceKind  SurfaceKind = "none"
)
