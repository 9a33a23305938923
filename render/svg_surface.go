package render

import (
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"go.uber.org/multierr"
)

var _ Surface = (*SVGSurface)(nil)

// SVGSurface writes every frame as a standalone SVG document named
// frame-00001.svg, frame-00002.svg and so on, under dir.
type SVGSurface struct {
	dir     string
	width   int
	height  int
	body    strings.Builder
	frames  int64
	written []string
	err     error
}

func (s *SVGSurface) Size() (width, height int) {
	return s.width, s.height
}

func (s *SVGSurface) Frames() int64 {
	return s.frames
}

// Written lists the frame files in the write order.
func (s *SVGSurface) Written() []string {
	return s.written
}

func (s *SVGSurface) Clear() {
	s.body.Reset()
}

func (s *SVGSurface) Line(x1, y1, x2, y2 float64) {
	fmt.Fprintf(&s.body, `  <line x1="%g" y1="%g" x2="%g" y2="%g" stroke="%s"/>`+"\n",
		x1, y1, x2, y2, ColorStroke)
}

func (s *SVGSurface) Circle(x, y, r float64, fill Color) {
	fmt.Fprintf(&s.body, `  <circle cx="%g" cy="%g" r="%g" fill="%s" stroke="%s"/>`+"\n",
		x, y, r, fill, ColorStroke)
}

func (s *SVGSurface) Text(x, y float64, label string) {
	fmt.Fprintf(&s.body,
		`  <text x="%g" y="%g" text-anchor="middle" font-family="Arial" font-size="16" fill="%s">%s</text>`+"\n",
		x, y, ColorStroke, html.EscapeString(label))
}

func (s *SVGSurface) Document() string {
	builder := strings.Builder{}
	fmt.Fprintf(&builder,
		`<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`+"\n",
		s.width, s.height, s.width, s.height)
	builder.WriteString(s.body.String())
	builder.WriteString("</svg>\n")
	return builder.String()
}

func (s *SVGSurface) Flush() (err error) {
	s.frames++
	path := filepath.Join(s.dir, fmt.Sprintf("frame-%05d.svg", s.frames))
	f, err := os.Create(path)
	if err != nil {
		return s.fail(err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			err = s.fail(multierr.Append(err, closeErr))
		}
	}()
	if _, err = f.WriteString(s.Document()); err != nil {
		return s.fail(err)
	}
	s.written = append(s.written, path)
	return nil
}

func (s *SVGSurface) fail(err error) error {
	err = surfaceWriteError(err, "svg frame %d", s.frames)
	if s.err == nil {
		s.err = err
	}
	return err
}

func (s *SVGSurface) Err() error {
	return s.err
}

func NewSVGSurface(dir string, width, height int) (*SVGSurface, error) {
	if width <= 0 || height <= 0 {
		return nil, errors.Wrapf(ErrInvalidSize, "%dx%d", width, height)
	}
	if len(strings.TrimSpace(dir)) == 0 {
		return nil, errors.New("[render] empty svg dir")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "[render] svg dir %s", dir)
	}
	return &SVGSurface{
		dir:    dir,
		width:  width,
		height: height,
	}, nil
}
