package ui

import (
	"math/rand"
	"strings"
)

// particleField is the decorative falling-hearts effect on the
// celebrate screen. Purely cosmetic; it carries no state the rest of
// the program depends on.
type particle struct {
	x, y   float64
	vx, vy float64
	glyph  rune
}

type particleField struct {
	rng    *rand.Rand
	parts  []particle
	glyphs []rune
	limit  int
}

func newParticleField(ascii bool, seed int64) *particleField {
	glyphs := []rune{'♥', '❤', '♡', '✿', '*'}
	if ascii {
		glyphs = []rune{'*', '+', 'o', '.'}
	}
	return &particleField{
		rng:    rand.New(rand.NewSource(seed)),
		glyphs: glyphs,
		limit:  48,
	}
}

func (f *particleField) reset() {
	f.parts = f.parts[:0]
}

// step advances the field by one animation tick.
func (f *particleField) step(cols, rows int) {
	if cols <= 0 || rows <= 0 {
		return
	}
	if len(f.parts) < f.limit && f.rng.Intn(3) == 0 {
		f.parts = append(f.parts, particle{
			x:     f.rng.Float64() * float64(cols),
			y:     -1,
			vx:    (f.rng.Float64() - 0.5) * 0.3,
			vy:    0.12 + f.rng.Float64()*0.25,
			glyph: f.glyphs[f.rng.Intn(len(f.glyphs))],
		})
	}
	alive := f.parts[:0]
	for _, p := range f.parts {
		p.x += p.vx
		p.y += p.vy
		if p.y < float64(rows) && p.x >= 0 && p.x < float64(cols) {
			alive = append(alive, p)
		}
	}
	f.parts = alive
}

// paint writes the particles over a plain-text frame. Only blank cells
// are overwritten so the message stays readable.
func (f *particleField) paint(base string, cols, rows int) string {
	if len(f.parts) == 0 || cols <= 0 || rows <= 0 {
		return base
	}
	lines := strings.Split(base, "\n")
	for len(lines) < rows {
		lines = append(lines, "")
	}
	grid := make([][]rune, rows)
	for i := 0; i < rows; i++ {
		grid[i] = []rune(padRune(lines[i], cols))
	}
	for _, p := range f.parts {
		x, y := int(p.x), int(p.y)
		if y < 0 || y >= rows || x < 0 || x >= cols {
			continue
		}
		if grid[y][x] == ' ' {
			grid[y][x] = p.glyph
		}
	}
	out := make([]string, rows)
	for i := range grid {
		out[i] = string(grid[i])
	}
	return strings.Join(out, "\n")
}
