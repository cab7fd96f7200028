package draw

import (
	"bytes"
	"strings"
	"testing"

	"github.com/lucasb-eyer/go-colorful"
)

func TestCanvasRenderDiffs(t *testing.T) {
	c := NewScaledCanvas(10, 5, 100, 100)
	c.SetColor(colorful.Color{R: 1, G: 0, B: 0})
	c.SetFloat(50, 50)

	var buf bytes.Buffer
	c.Render(&buf)
	out := buf.String()
	if !strings.Contains(out, "\033[38;2;255;0;0m") {
		t.Fatalf("expected red truecolor escape, got %q", out)
	}

	// Nothing changed: nothing to write.
	buf.Reset()
	c.Render(&buf)
	if buf.Len() != 0 {
		t.Fatalf("unchanged frame wrote %q", buf.String())
	}

	// Pixel removed: the cell is blanked.
	c.Clear()
	buf.Reset()
	c.Render(&buf)
	if !strings.Contains(buf.String(), " ") {
		t.Fatalf("cleared pixel was not blanked: %q", buf.String())
	}
}

func TestCanvasHalfBlocks(t *testing.T) {
	c := NewScaledCanvas(1, 1, 1, 2)
	red := colorful.Color{R: 1}
	blue := colorful.Color{B: 1}

	c.SetColor(red)
	c.setPixel(0, 0)
	c.SetColor(blue)
	c.setPixel(0, 1)

	var buf bytes.Buffer
	c.Render(&buf)
	out := buf.String()
	if !strings.Contains(out, "38;2;255;0;0m") || !strings.Contains(out, "48;2;0;0;255m") || !strings.ContainsRune(out, BlockUpperHalf) {
		t.Fatalf("expected red-over-blue half block, got %q", out)
	}
}

func TestDrawCircleFillsCenter(t *testing.T) {
	c := NewScaledCanvas(80, 30, 800, 600)
	c.DrawCircle(400, 300, 50, true)
	px := c.pixels[30*80+40]
	if px == 0 {
		t.Fatal("filled circle left its center empty")
	}
	if c.pixels[0] != 0 {
		t.Fatal("circle painted the corner")
	}
}

func TestResizeForcesRedraw(t *testing.T) {
	c := NewScaledCanvas(4, 2, 4, 4)
	c.SetFloat(1, 1)
	var buf bytes.Buffer
	c.Render(&buf)

	c.Resize(8, 4)
	c.SetFloat(1, 1)
	buf.Reset()
	c.Render(&buf)
	if buf.Len() == 0 {
		t.Fatal("resize did not redraw")
	}
	if c.TerminalWidth() != 8 || c.TerminalHeight() != 4 {
		t.Fatalf("size = %dx%d", c.TerminalWidth(), c.TerminalHeight())
	}
}

func TestChunkWriterOffset(t *testing.T) {
	var out bytes.Buffer
	cw := NewChunkWriter(&out, 2, 3)
	cw.WriteAt(1, 1, "hi")
	if out.Len() != 0 {
		t.Fatal("wrote before Flush")
	}
	if err := cw.Flush(); err != nil {
		t.Fatal(err)
	}
	if out.String() != "\033[4;3Hhi" {
		t.Fatalf("got %q", out.String())
	}
}

func TestMarkTextDirtyRepaintsCells(t *testing.T) {
	c := NewScaledCanvas(10, 5, 10, 10)
	var buf bytes.Buffer
	c.Render(&buf)

	// Blank canvas, nothing changed: only marked cells are written.
	c.MarkTextDirty(3, 2, 4)
	c.MarkTextDirty(1, 99, 4) // off-canvas rows are ignored
	buf.Reset()
	c.Render(&buf)
	out := buf.String()
	if got := strings.Count(out, "H "); got != 4 {
		t.Fatalf("repainted %d cells, want 4: %q", got, out)
	}
	if !strings.Contains(out, "\033[2;3H") {
		t.Fatalf("first marked cell not repainted: %q", out)
	}

	buf.Reset()
	c.Render(&buf)
	if buf.Len() != 0 {
		t.Fatalf("marks survived a render: %q", buf.String())
	}
}

func TestChunkWriterWriteCenteredCountsRunes(t *testing.T) {
	var out bytes.Buffer
	cw := NewChunkWriter(&out, 0, 0)

	if col := cw.WriteCentered(10, 1, "abcd"); col != 8 {
		t.Fatalf("ascii col = %d, want 8", col)
	}
	if col := cw.WriteCentered(10, 2, "████"); col != 8 {
		t.Fatalf("block col = %d, want 8", col)
	}
	if err := cw.Flush(); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "\033[2;8H████") {
		t.Fatalf("got %q", out.String())
	}
}
