package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

type brailleBuf struct {
	w, h int       // in cells
	m    [][]uint8 // per-cell 8-bit mask
	ink  [][]colorful.Color
	has  [][]bool
}

func newBrailleBuf(w, h int) *brailleBuf {
	m := make([][]uint8, h)
	ink := make([][]colorful.Color, h)
	has := make([][]bool, h)
	for i := range m {
		m[i] = make([]uint8, w)
		ink[i] = make([]colorful.Color, w)
		has[i] = make([]bool, w)
	}
	return &brailleBuf{w: w, h: h, m: m, ink: ink, has: has}
}

// setPixel sets a micro-pixel at micro coords (2x4 per cell)
func (b *brailleBuf) setPixel(mx, my int) {
	if mx < 0 || my < 0 {
		return
	}
	cx, rx := mx/2, mx%2
	cy, ry := my/4, my%4
	if cy >= b.h || cx >= b.w {
		return
	}
	var bit uint8
	if rx == 0 {
		switch ry {
		case 0:
			bit = 0x01
		case 1:
			bit = 0x02
		case 2:
			bit = 0x04
		case 3:
			bit = 0x40
		}
	} else {
		switch ry {
		case 0:
			bit = 0x08
		case 1:
			bit = 0x10
		case 2:
			bit = 0x20
		case 3:
			bit = 0x80
		}
	}
	b.m[cy][cx] |= bit
}

// tint records c for the cell holding the micro-pixel; the darkest ink wins
// so wall outlines stay visible over filled areas.
func (b *brailleBuf) tint(mx, my int, c colorful.Color) {
	cx, cy := mx/2, my/4
	if mx < 0 || my < 0 || cy >= b.h || cx >= b.w {
		return
	}
	if !b.has[cy][cx] {
		b.ink[cy][cx], b.has[cy][cx] = c, true
		return
	}
	l, _, _ := c.Lab()
	cur, _, _ := b.ink[cy][cx].Lab()
	if l < cur {
		b.ink[cy][cx] = c
	}
}

func (b *brailleBuf) toLines() []string {
	out := make([]string, b.h)
	for y := 0; y < b.h; y++ {
		row := make([]rune, b.w)
		for x := 0; x < b.w; x++ {
			mask := b.m[y][x]
			if mask == 0 {
				row[x] = ' '
			} else {
				row[x] = rune(0x2800 + int(mask))
			}
		}
		out[y] = string(row)
	}
	return out
}

// toStyledLines is toLines with each run of equally tinted cells colored.
func (b *brailleBuf) toStyledLines() []string {
	plain := b.toLines()
	out := make([]string, b.h)
	for y := 0; y < b.h; y++ {
		row := []rune(plain[y])
		var sb strings.Builder
		start := 0
		for x := 1; x <= b.w; x++ {
			if x < b.w && b.cellColor(x, y) == b.cellColor(start, y) {
				continue
			}
			run := string(row[start:x])
			if hex := b.cellColor(start, y); hex != "" {
				run = lipgloss.NewStyle().Foreground(lipgloss.Color(hex)).Render(run)
			}
			sb.WriteString(run)
			start = x
		}
		out[y] = sb.String()
	}
	return out
}

func (b *brailleBuf) cellColor(x, y int) string {
	if b.m[y][x] == 0 || !b.has[y][x] {
		return ""
	}
	return b.ink[y][x].Clamped().Hex()
}
