package render

import (
	"github.com/gdamore/tcell/v2"
)

// drawText writes s starting at x,y, clipped to the screen
func drawText(s tcell.Screen, x, y int, text string, style tcell.Style) {
	w, h := s.Size()
	if y < 0 || y >= h {
		return
	}
	for _, r := range text {
		if x >= w {
			return
		}
		if x >= 0 {
			s.SetContent(x, y, r, nil, style)
		}
		x++
	}
}

// drawCentered writes text centered on row y
func drawCentered(s tcell.Screen, y int, text string, style tcell.Style) {
	w, _ := s.Size()
	drawText(s, (w-len([]rune(text)))/2, y, text, style)
}

// drawBar draws a horizontal progress bar of the given fraction
func drawBar(s tcell.Screen, x, y, width int, fraction float32, fill, empty tcell.Style) {
	filled := int(float32(width) * min(max(fraction, 0), 1))
	for i := range width {
		if i < filled {
			s.SetContent(x+i, y, '█', nil, fill)
		} else {
			s.SetContent(x+i, y, '░', nil, empty)
		}
	}
}
