package render

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/boss-rush/asset"
	"github.com/lixenwraith/boss-rush/engine"
	"github.com/lixenwraith/boss-rush/parameter"
	"github.com/lixenwraith/boss-rush/system"
)

// Renderer draws the active screen of a game to a tcell screen
// Draw must run on the frame goroutine after Game.Frame
type Renderer struct {
	screen  tcell.Screen
	palette palette
}

// NewRenderer creates a renderer for an initialized screen
func NewRenderer(screen tcell.Screen) *Renderer {
	return &Renderer{
		screen:  screen,
		palette: newPalette(asset.DefaultTheme()),
	}
}

// Resize resynchronizes the screen after a terminal resize
func (r *Renderer) Resize() {
	r.screen.Sync()
}

// Draw renders one frame
func (r *Renderer) Draw(g *engine.Game) {
	lib, ok := engine.GetResource[*asset.Library](g.World.Resources)
	if !ok {
		lib = asset.NewLibrary()
	}
	if lib.Theme != r.palette.theme {
		r.palette = newPalette(lib.Theme)
	}

	s := r.screen
	s.Fill(' ', r.palette.base)

	switch g.States.Current() {
	case engine.StateLoading:
		r.drawLabels(g)
		r.drawLoading(g)
	case engine.StateInGame:
		r.drawWorld(g, lib)
		r.drawHUD(g)
		if g.States.IsActive(engine.SubPaused) {
			r.drawLabels(g)
			r.drawButtons(g, lib.Cursor)
		}
	default:
		r.drawLabels(g)
		r.drawButtons(g, lib.Cursor)
	}

	s.Show()
}

func (r *Renderer) drawLoading(g *engine.Game) {
	l, ok := engine.GetResource[*system.Loading](g.World.Resources)
	if !ok {
		return
	}
	w, h := r.screen.Size()
	margin := int(float64(w) * parameter.LoadingBarMarginFraction)
	width := w - 2*margin
	if width <= 0 {
		return
	}
	drawBar(r.screen, margin, h/2, width, l.Tracker.Fraction(), r.palette.accent, r.palette.dim)

	pending, ready, failed := l.Tracker.Counts()
	status := fmt.Sprintf("%d/%d", ready, pending+ready+failed)
	if failed > 0 {
		status += fmt.Sprintf(" (%d failed)", failed)
	}
	drawCentered(r.screen, h/2+1, status, r.palette.dim)
}

func (r *Renderer) drawLabels(g *engine.Game) {
	_, h := r.screen.Size()
	labels := g.World.Components.Label
	for _, e := range labels.All() {
		l, ok := labels.Get(e)
		if !ok {
			continue
		}
		style := r.palette.base
		if l.Title {
			style = r.palette.accent
		}
		drawCentered(r.screen, h/2+l.Row, l.Text, style)
	}
}

func (r *Renderer) drawButtons(g *engine.Game, cursor string) {
	_, h := r.screen.Size()
	menu, _ := engine.GetResource[*system.Menu](g.World.Resources)

	for i, e := range system.SortedButtons(g.World) {
		b, ok := g.World.Components.Button.Get(e)
		if !ok {
			continue
		}
		text := "  " + b.Label + "  "
		style := r.palette.base
		if menu != nil && i == menu.Focus {
			text = cursor + " " + b.Label + "  "
			style = r.palette.highlight
		}
		drawCentered(r.screen, h/2+parameter.MenuButtonGap+i, text, style)
	}
}

func (r *Renderer) drawHUD(g *engine.Game) {
	w, h := r.screen.Size()
	drawText(r.screen, 1, 0, formatClock(g.Clock.Elapsed()), r.palette.base)

	hud, ok := engine.GetResource[*system.HUD](g.World.Resources)
	if ok && hud.Debug {
		sub, _ := g.States.CurrentSub(engine.StateInGame)
		info := fmt.Sprintf("%s/%s %3.0f fps %d steps", g.States.Name(g.States.Current()), g.States.Name(sub), hud.FPS, g.LastSteps())
		drawText(r.screen, w-len(info)-1, 0, info, r.palette.dim)
	}
	if g.States.IsActive(engine.SubRunning) {
		drawCentered(r.screen, h-1, "wasd/hjkl move  esc pause  x end", r.palette.dim)
	}
}

// formatClock renders a duration as hh:mm:ss
func formatClock(d time.Duration) string {
	total := int(d / time.Second)
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, total/60%60, total%60)
}
