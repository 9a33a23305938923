package render

import (
	"io"
	"math"
	"strings"

	"github.com/cockroachdb/errors"
)

const (
	DefaultGridCellWidth  = 10
	DefaultGridCellHeight = 20

	ansiReset       = "\x1b[0m"
	ansiClearScreen = "\x1b[H\x1b[2J"
)

var _ Surface = (*GridSurface)(nil)

var (
	gridBrackets = map[Color][2]rune{
		ColorDefault:   {'(', ')'},
		ColorVisiting:  {'[', ']'},
		ColorFound:     {'{', '}'},
		ColorDeleting:  {'<', '>'},
		ColorTraversal: {'*', '*'},
	}
	ansiBackgrounds = map[Color]string{
		ColorDefault:   "\x1b[46;30m",
		ColorVisiting:  "\x1b[43;30m",
		ColorFound:     "\x1b[42;30m",
		ColorDeleting:  "\x1b[41;30m",
		ColorTraversal: "\x1b[48;5;208;30m",
	}
)

type gridCell struct {
	ch   rune
	fill Color
}

// GridSurface rasterizes frames into a character grid, one cell covers
// cellW x cellH pixels. Without ANSI the fill color is told apart by the
// node brackets.
type GridSurface struct {
	w      io.Writer
	width  int
	height int
	cellW  int
	cellH  int
	ansi   bool
	cells  [][]gridCell
	frames int64
	err    error
}

func (g *GridSurface) Size() (width, height int) {
	return g.width, g.height
}

func (g *GridSurface) Frames() int64 {
	return g.frames
}

func (g *GridSurface) Clear() {
	for r := range g.cells {
		for c := range g.cells[r] {
			g.cells[r][c] = gridCell{ch: ' '}
		}
	}
}

func (g *GridSurface) cellOf(x, y float64) (col, row int) {
	return int(math.Round(x / float64(g.cellW))), int(math.Floor(y / float64(g.cellH)))
}

func (g *GridSurface) inside(col, row int) bool {
	return row >= 0 && row < len(g.cells) && col >= 0 && col < len(g.cells[row])
}

func (g *GridSurface) set(col, row int, ch rune) {
	if g.inside(col, row) {
		g.cells[row][col].ch = ch
	}
}

// Line only marks the rows strictly between both ends, the ends are
// covered by node circles.
func (g *GridSurface) Line(x1, y1, x2, y2 float64) {
	c1, r1 := g.cellOf(x1, y1)
	c2, r2 := g.cellOf(x2, y2)
	if r1 > r2 {
		c1, r1, c2, r2 = c2, r2, c1, r1
	}
	if r1 == r2 {
		if c1 > c2 {
			c1, c2 = c2, c1
		}
		for c := c1 + 1; c < c2; c++ {
			g.set(c, r1, '-')
		}
		return
	}
	ch := '|'
	if c2 < c1 {
		ch = '/'
	} else if c2 > c1 {
		ch = '\\'
	}
	for r := r1 + 1; r < r2; r++ {
		t := float64(r-r1) / float64(r2-r1)
		c := c1 + int(math.Round(float64(c2-c1)*t))
		g.set(c, r, ch)
	}
}

func (g *GridSurface) Circle(x, y, r float64, fill Color) {
	col, row := g.cellOf(x, y)
	rc := int(r) / g.cellW
	if rc < 1 {
		rc = 1
	}
	brackets, ok := gridBrackets[fill]
	if !ok {
		brackets = gridBrackets[ColorDefault]
	}
	for c := col - rc; c <= col+rc; c++ {
		if !g.inside(c, row) {
			continue
		}
		g.cells[row][c] = gridCell{ch: ' ', fill: fill}
	}
	g.set(col-rc, row, brackets[0])
	g.set(col+rc, row, brackets[1])
}

func (g *GridSurface) Text(x, y float64, label string) {
	runes := []rune(label)
	col, row := g.cellOf(x, y)
	start := col - len(runes)/2
	for i, ch := range runes {
		g.set(start+i, row, ch)
	}
}

func (g *GridSurface) String() string {
	lines := make([]string, 0, len(g.cells))
	for _, row := range g.cells {
		lines = append(lines, g.renderRow(row))
	}
	for len(lines) > 0 && len(lines[len(lines)-1]) == 0 {
		lines = lines[:len(lines)-1]
	}
	return strings.Join(lines, "\n")
}

func (g *GridSurface) renderRow(row []gridCell) string {
	last := -1
	for c, cell := range row {
		if cell.ch != ' ' || (g.ansi && cell.fill != "") {
			last = c
		}
	}
	builder := strings.Builder{}
	var current Color
	for c := 0; c <= last; c++ {
		cell := row[c]
		if g.ansi && cell.fill != current {
			if current != "" {
				builder.WriteString(ansiReset)
			}
			if bg, ok := ansiBackgrounds[cell.fill]; ok {
				builder.WriteString(bg)
			}
			current = cell.fill
		}
		builder.WriteRune(cell.ch)
	}
	if g.ansi && current != "" {
		builder.WriteString(ansiReset)
	}
	return builder.String()
}

func (g *GridSurface) Flush() error {
	g.frames++
	builder := strings.Builder{}
	if g.ansi {
		builder.WriteString(ansiClearScreen)
	}
	builder.WriteString(g.String())
	builder.WriteString("\n\n")
	if _, err := io.WriteString(g.w, builder.String()); err != nil {
		err = surfaceWriteError(err, "grid frame %d", g.frames)
		if g.err == nil {
			g.err = err
		}
		return err
	}
	return nil
}

func (g *GridSurface) Err() error {
	return g.err
}

type GridSurfaceOption func(*GridSurface)

// WithGridANSI colors the node cells and clears the screen before each frame.
func WithGridANSI(enabled bool) GridSurfaceOption {
	return func(g *GridSurface) {
		g.ansi = enabled
	}
}

func WithGridCellSize(cellW, cellH int) GridSurfaceOption {
	return func(g *GridSurface) {
		if cellW > 0 && cellH > 0 {
			g.cellW, g.cellH = cellW, cellH
		}
	}
}

func NewGridSurface(w io.Writer, width, height int, opts ...GridSurfaceOption) (*GridSurface, error) {
	if w == nil {
		return nil, ErrNilSurface
	}
	g := &GridSurface{
		w:      w,
		width:  width,
		height: height,
		cellW:  DefaultGridCellWidth,
		cellH:  DefaultGridCellHeight,
	}
	for _, o := range opts {
		if o == nil {
			continue
		}
		o(g)
	}
	if width < g.cellW || height < g.cellH {
		return nil, errors.Wrapf(ErrInvalidSize, "%dx%d", width, height)
	}
	cols, rows := width/g.cellW+1, height/g.cellH
	g.cells = make([][]gridCell, rows)
	for r := range g.cells {
		g.cells[r] = make([]gridCell, cols)
	}
	g.Clear()
	return g, nil
}
