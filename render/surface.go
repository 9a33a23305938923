package render

import (
	"io"
	"strings"

	"github.com/cockroachdb/errors"
)

var _ Surface = (*NopSurface)(nil)

// NopSurface discards every draw call, it only counts frames.
type NopSurface struct {
	width  int
	height int
	frames int64
}

func NewNopSurface(width, height int) *NopSurface {
	return &NopSurface{width: width, height: height}
}

func (s *NopSurface) Size() (width, height int)          { return s.width, s.height }
func (s *NopSurface) Clear()                             {}
func (s *NopSurface) Line(x1, y1, x2, y2 float64)        {}
func (s *NopSurface) Circle(x, y, r float64, fill Color) {}
func (s *NopSurface) Text(x, y float64, label string)    {}
func (s *NopSurface) Err() error                         { return nil }
func (s *NopSurface) Frames() int64                      { return s.frames }

func (s *NopSurface) Flush() error {
	s.frames++
	return nil
}

type SurfaceConfig struct {
	Kind   SurfaceKind
	Out    io.Writer
	SVGDir string
	Width  int
	Height int
	ANSI   bool
}

func ParseSurfaceKind(kind string) (SurfaceKind, error) {
	switch k := SurfaceKind(strings.ToLower(strings.TrimSpace(kind))); k {
	case GridSurfaceKind, SVGSurfaceKind, NopSurfaceKind:
		return k, nil
	case "":
		return GridSurfaceKind, nil
	default:
	}
	return "", errors.Wrapf(ErrUnknownKind, "%q", kind)
}

func NewSurface(cfg SurfaceConfig) (Surface, error) {
	switch cfg.Kind {
	case GridSurfaceKind, "":
		return NewGridSurface(cfg.Out, cfg.Width, cfg.Height, WithGridANSI(cfg.ANSI))
	case SVGSurfaceKind:
		return NewSVGSurface(cfg.SVGDir, cfg.Width, cfg.Height)
	case NopSurfaceKind:
		return NewNopSurface(cfg.Width, cfg.Height), nil
	default:
	}
	return nil, errors.Wrapf(ErrUnknownKind, "%q", cfg.Kind)
}
