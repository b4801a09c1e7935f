package render

import (
	"strings"

	"github.com/skylinelab/watertower/pkg/skyline/reduce"
)

// Glyphs used by [Text]. Exported so the TUI can recognize water cells
// when styling frames.
const (
	GlyphBuilding = '█'
	GlyphWater    = '~'
	GlyphAir      = ' '
)

// Text renders a height profile as ASCII art, one rune per column per
// level, top row first. Water cells are filled with tildes up to the level
// each column floods to. Returns "" for an empty profile.
//
//	Text([]int{5, 2, 2, 5})
//
//	█~~█
//	█~~█
//	█~~█
//	████
//	████
func Text(heights []int) string {
	if len(heights) == 0 {
		return ""
	}

	water, err := reduce.WaterColumns(heights)
	if err != nil {
		// Callers validate heights first; a negative height here is a bug.
		panic(err)
	}

	top := 0
	for i, h := range heights {
		top = max(top, h+water[i])
	}

	var b strings.Builder
	for level := top; level >= 1; level-- {
		for i, h := range heights {
			switch {
			case h >= level:
				b.WriteRune(GlyphBuilding)
			case h+water[i] >= level:
				b.WriteRune(GlyphWater)
			default:
				b.WriteRune(GlyphAir)
			}
		}
		if level > 1 {
			b.WriteRune('\n')
		}
	}
	return b.String()
}
