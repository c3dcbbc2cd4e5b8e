package render

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/guidoenr/ledwall/internal/colorspace"
	"github.com/guidoenr/ledwall/internal/geometry"
	"github.com/guidoenr/ledwall/internal/grid"
)

func testLayout() geometry.Layout {
	return geometry.Layout{Stripes: 4, LEDs: 6, StripeSpacing: 70, LEDSpacing: 5, LEDSize: 8}
}

func TestProjectorKeepsOrderAndColors(t *testing.T) {
	g := grid.New(4, 6)
	g.Set(2, 3, colorspace.RGB{R: 10, G: 20, B: 30})

	p := NewProjector(testLayout(), geometry.ModeLinear, 800, 600)
	f := p.Project(g, 0)

	if len(f.Elements) != 24 {
		t.Fatalf("expected 24 elements, got %d", len(f.Elements))
	}
	if f.Stripes != 4 || f.LEDs != 6 {
		t.Fatalf("frame shape %dx%d", f.Stripes, f.LEDs)
	}
	if got := f.Elements[2*6+3].Color; got != (colorspace.RGB{R: 10, G: 20, B: 30}) {
		t.Fatalf("element (2,3) color = %+v", got)
	}
	if f.Elements[0].Radius != 4 {
		t.Fatalf("radius = %v, want 4", f.Elements[0].Radius)
	}
	for _, e := range f.Elements {
		if e.X < 0 || e.X > 800 || e.Y < 0 || e.Y > 600 {
			t.Fatalf("element outside viewport: %+v", e)
		}
	}
}

func TestProjectorCircularRotates(t *testing.T) {
	g := grid.New(4, 6)
	p := NewProjector(testLayout(), geometry.ModeCircular, 600, 600)

	a := p.Project(g, 0).Elements[0]
	b := p.Project(g, math.Pi/2).Elements[0]

	if math.Abs(a.X-600) > 1e-9 || math.Abs(a.Y-300) > 1e-9 {
		t.Fatalf("outermost element of stripe 0 at theta 0 = (%v, %v)", a.X, a.Y)
	}
	if math.Abs(b.X-300) > 1e-9 || math.Abs(b.Y-600) > 1e-9 {
		t.Fatalf("after a quarter turn = (%v, %v)", b.X, b.Y)
	}
}

func TestTerminalDrawsColoredGlyph(t *testing.T) {
	var out bytes.Buffer
	term := NewTerminal(TerminalConfig{Out: &out, Cols: 10, Rows: 5})

	f := Frame{
		Width:  100,
		Height: 50,
		Elements: []Element{
			{X: 55, Y: 25, Color: colorspace.RGB{R: 255}},
		},
	}
	if err := term.Draw(f); err != nil {
		t.Fatalf("Draw: %v", err)
	}

	s := out.String()
	if !strings.HasPrefix(s, "\x1b[H") {
		t.Fatalf("frame should start by homing the cursor: %q", s[:8])
	}
	if !strings.Contains(s, colorCode(196)+"@") {
		t.Fatalf("expected a bright red glyph in %q", s)
	}
	lines := strings.Split(s, "\r\n")
	if len(lines) != 5 {
		t.Fatalf("expected 5 rows, got %d", len(lines))
	}
}

func TestTerminalKeepsBrightestElementPerCell(t *testing.T) {
	term := NewTerminal(TerminalConfig{Out: &bytes.Buffer{}, Cols: 2, Rows: 1})
	f := Frame{
		Width:  2,
		Height: 1,
		Elements: []Element{
			{X: 0.2, Y: 0.5, Color: colorspace.RGB{G: 40}},
			{X: 0.4, Y: 0.5, Color: colorspace.RGB{B: 200}},
			{X: 0.6, Y: 0.5, Color: colorspace.RGB{R: 100}},
			{X: 5, Y: 5, Color: colorspace.White},
		},
	}
	term.rasterize(f, 2, 1)
	if term.cells[0] != (colorspace.RGB{B: 200}) {
		t.Fatalf("cell 0 = %+v", term.cells[0])
	}
	if term.cells[1] != (colorspace.RGB{}) {
		t.Fatalf("cell 1 should be unlit, got %+v", term.cells[1])
	}
}

func TestTerminalStatusBarAndAltScreen(t *testing.T) {
	var out bytes.Buffer
	term := NewTerminal(TerminalConfig{Out: &out, Cols: 30, Rows: 4, StatusBar: true, AltScreen: true})
	if _, rows := term.Size(); rows != 3 {
		t.Fatalf("status bar should take a row, got %d render rows", rows)
	}
	if err := term.Draw(Frame{Width: 1, Height: 1, Stripes: 16, LEDs: 67, Version: 9}); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out.String(), "\x1b[?1049h") {
		t.Fatalf("expected alt screen enter")
	}
	if !strings.Contains(out.String(), "16x67 | frame 9") {
		t.Fatalf("status line missing in %q", out.String())
	}
	out.Reset()
	if err := term.Close(); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "\x1b[?1049l") {
		t.Fatalf("expected alt screen exit, got %q", out.String())
	}
}

func TestRGBToANSI(t *testing.T) {
	cases := map[colorspace.RGB]int{
		{R: 255}:        196,
		{G: 255}:        46,
		{B: 255}:        21,
		colorspace.White: 255,
		{}:              232,
	}
	for c, want := range cases {
		if got := rgbToANSI(c); got != want {
			t.Errorf("rgbToANSI(%+v) = %d, want %d", c, got, want)
		}
	}
}

func TestGlyph(t *testing.T) {
	ramp := Palette("dots")
	if glyph(ramp, 0) != ' ' {
		t.Fatalf("unlit cell should be blank")
	}
	if glyph(ramp, 0.001) == ' ' {
		t.Fatalf("any lit cell should be visible")
	}
	if glyph(ramp, 1) != '@' {
		t.Fatalf("full brightness = %q", glyph(ramp, 1))
	}
}

type failing struct{ err error }

func (f failing) Draw(Frame) error { return f.err }
func (f failing) Close() error     { return f.err }

func TestMulti(t *testing.T) {
	first := &Headless{}
	last := &Headless{}
	m := Multi{first, failing{err: ErrRendererQuit}, last}

	if err := m.Draw(Frame{}); !errors.Is(err, ErrRendererQuit) {
		t.Fatalf("expected quit, got %v", err)
	}
	if first.Frames() != 1 || last.Frames() != 0 {
		t.Fatalf("draw should stop at the failing renderer: %d %d", first.Frames(), last.Frames())
	}
	if err := m.Close(); !errors.Is(err, ErrRendererQuit) {
		t.Fatalf("close should join errors, got %v", err)
	}
	if !first.Closed() || !last.Closed() {
		t.Fatalf("every renderer must be closed")
	}
}

func TestHeadlessQuitAfter(t *testing.T) {
	h := &Headless{QuitAfter: 3}
	for i := 0; i < 2; i++ {
		if err := h.Draw(Frame{Version: uint64(i)}); err != nil {
			t.Fatalf("frame %d: %v", i, err)
		}
	}
	if err := h.Draw(Frame{Version: 7}); !errors.Is(err, ErrRendererQuit) {
		t.Fatalf("expected quit on third frame, got %v", err)
	}
	if h.Last().Version != 7 {
		t.Fatalf("last version = %d", h.Last().Version)
	}
}

func TestSDLStubOrBuild(t *testing.T) {
	if SupportsSDL() {
		t.Skip("built with sdl; needs a display")
	}
	if _, err := NewSDL("ledwall", 100, 100); err == nil {
		t.Fatalf("stub NewSDL should fail")
	}
}
