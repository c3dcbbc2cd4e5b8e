package render

import (
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/guidoenr/ledwall/internal/colorspace"
	"golang.org/x/term"
)

var (
	resetANSI       = "\x1b[0m"
	precomputedANSI [256]string
)

func init() {
	for i := range precomputedANSI {
		precomputedANSI[i] = "\x1b[38;5;" + strconv.Itoa(i) + "m"
	}
}

// TerminalConfig controls a Terminal renderer.
type TerminalConfig struct {
	Out io.Writer
	// Cols and Rows fix the character grid. Zero means follow the size of
	// the controlling terminal.
	Cols, Rows int
	Palette    string
	StatusBar  bool
	AltScreen  bool
	Status     string
}

// Terminal rasterizes elements into colored glyphs, one character cell per
// group of nearby LEDs.
type Terminal struct {
	out       io.Writer
	fd        int
	fixed     bool
	cols      int
	rows      int
	glyphs    []rune
	statusBar bool
	altScreen bool
	label     string

	cells   []colorspace.RGB
	builder strings.Builder
	started bool
	last    time.Time
	fps     float64
}

// NewTerminal creates a terminal renderer. Without a fixed size it falls
// back to 80x24 when stdout is not a terminal.
func NewTerminal(cfg TerminalConfig) *Terminal {
	t := &Terminal{
		out:       cfg.Out,
		fd:        -1,
		fixed:     cfg.Cols > 0 && cfg.Rows > 0,
		cols:      cfg.Cols,
		rows:      cfg.Rows,
		glyphs:    Palette(cfg.Palette),
		statusBar: cfg.StatusBar,
		altScreen: cfg.AltScreen,
		label:     cfg.Status,
	}
	if t.out == nil {
		t.out = os.Stdout
		t.fd = int(os.Stdout.Fd())
	}
	if !t.fixed {
		t.cols, t.rows = 80, 24
		t.ensureDimensions()
	}
	return t
}

// Size returns the current character grid, excluding the status bar.
func (t *Terminal) Size() (cols, rows int) {
	return t.cols, t.renderRows()
}

func (t *Terminal) renderRows() int {
	rows := t.rows
	if t.statusBar && rows > 1 {
		rows--
	}
	return rows
}

func (t *Terminal) ensureDimensions() {
	if t.fixed || t.fd < 0 {
		return
	}
	w, h, err := term.GetSize(t.fd)
	if err != nil || w <= 0 || h <= 0 {
		return
	}
	t.cols, t.rows = w, h
}

func (t *Terminal) Draw(f Frame) error {
	if !t.started {
		t.start()
	}
	t.ensureDimensions()
	t.tick()

	cols, rows := t.Size()
	t.rasterize(f, cols, rows)

	b := &t.builder
	b.Reset()
	b.Grow(cols*rows*4 + 64)
	b.WriteString("\x1b[H")
	for y := 0; y < rows; y++ {
		lastColor := -1
		row := t.cells[y*cols : (y+1)*cols]
		for _, c := range row {
			v := brightness(c)
			if v > 0 {
				code := rgbToANSI(c)
				if code != lastColor {
					b.WriteString(colorCode(code))
					lastColor = code
				}
			}
			b.WriteRune(glyph(t.glyphs, v))
		}
		b.WriteString(resetANSI)
		if y < rows-1 || t.statusBar {
			b.WriteString("\r\n")
		}
	}
	if t.statusBar {
		b.WriteString(statusLine(t.status(f), cols))
	}

	_, err := io.WriteString(t.out, b.String())
	return err
}

// rasterize keeps the brightest element landing in each cell.
func (t *Terminal) rasterize(f Frame, cols, rows int) {
	n := cols * rows
	if cap(t.cells) < n {
		t.cells = make([]colorspace.RGB, n)
	}
	t.cells = t.cells[:n]
	clear(t.cells)
	if f.Width <= 0 || f.Height <= 0 {
		return
	}

	sx := float64(cols) / f.Width
	sy := float64(rows) / f.Height
	for _, e := range f.Elements {
		x := int(math.Floor(e.X * sx))
		y := int(math.Floor(e.Y * sy))
		if x < 0 || x >= cols || y < 0 || y >= rows {
			continue
		}
		idx := y*cols + x
		if brightness(e.Color) > brightness(t.cells[idx]) {
			t.cells[idx] = e.Color
		}
	}
}

func (t *Terminal) tick() {
	now := time.Now()
	if !t.last.IsZero() {
		if dt := now.Sub(t.last).Seconds(); dt > 0 {
			t.fps = t.fps*0.9 + (1/dt)*0.1
		}
	}
	t.last = now
}

func (t *Terminal) status(f Frame) string {
	var b strings.Builder
	if t.label != "" {
		b.WriteString(t.label)
		b.WriteString(" | ")
	}
	b.WriteString(strconv.Itoa(f.Stripes))
	b.WriteString("x")
	b.WriteString(strconv.Itoa(f.LEDs))
	b.WriteString(" | frame ")
	b.WriteString(strconv.FormatUint(f.Version, 10))
	b.WriteString(" | fps ")
	b.WriteString(strconv.FormatFloat(t.fps, 'f', 1, 64))
	b.WriteString(" | q to quit")
	return b.String()
}

func (t *Terminal) start() {
	t.started = true
	if t.altScreen {
		_, _ = io.WriteString(t.out, "\x1b[?1049h\x1b[2J\x1b[H\x1b[?25l")
	}
}

// Close restores the cursor and leaves the alternate screen.
func (t *Terminal) Close() error {
	if !t.started || !t.altScreen {
		return nil
	}
	t.started = false
	_, err := io.WriteString(t.out, "\x1b[?25h\x1b[?1049l\x1b[0m")
	return err
}

func statusLine(text string, width int) string {
	if width <= 0 {
		return text
	}
	if len(text) >= width {
		return text[:width]
	}
	return text + strings.Repeat(" ", width-len(text))
}

// brightness is the HSV value of c, so saturated blues are as visible as
// greens.
func brightness(c colorspace.RGB) float64 {
	m := c.R
	if c.G > m {
		m = c.G
	}
	if c.B > m {
		m = c.B
	}
	return float64(m) / 255
}

func colorCode(index int) string {
	if index < 0 {
		index = 0
	} else if index >= len(precomputedANSI) {
		index = len(precomputedANSI) - 1
	}
	return precomputedANSI[index]
}

// rgbToANSI maps c to the xterm 256-color cube, using the grayscale ramp
// for near-neutral colors.
func rgbToANSI(c colorspace.RGB) int {
	r := float64(c.R) / 255
	g := float64(c.G) / 255
	b := float64(c.B) / 255

	if math.Abs(r-g) < 0.02 && math.Abs(g-b) < 0.02 {
		gray := int(clampFloat(math.Round(r*23), 0, 23))
		return 232 + gray
	}

	ri := int(clampFloat(r*5+0.5, 0, 5))
	gi := int(clampFloat(g*5+0.5, 0, 5))
	bi := int(clampFloat(b*5+0.5, 0, 5))
	return 16 + 36*ri + 6*gi + bi
}

func clampFloat(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
