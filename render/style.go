package render

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/boss-rush/asset"
)

// palette is the resolved tcell styles of a theme
type palette struct {
	theme asset.Theme

	base      tcell.Style
	accent    tcell.Style
	highlight tcell.Style
	dim       tcell.Style
	ground    tcell.Style
}

func newPalette(th asset.Theme) palette {
	bg := tcell.GetColor(th.Background)
	base := tcell.StyleDefault.Background(bg).Foreground(tcell.GetColor(th.Foreground))
	return palette{
		theme:     th,
		base:      base,
		accent:    base.Foreground(tcell.GetColor(th.Accent)).Bold(true),
		highlight: base.Foreground(tcell.GetColor(th.Highlight)).Reverse(true),
		dim:       base.Foreground(tcell.GetColor(th.Dim)),
		ground:    base.Foreground(tcell.GetColor(th.Ground)),
	}
}
