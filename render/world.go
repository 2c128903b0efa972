package render

import (
	"math"
	"sort"

	"github.com/lixenwraith/boss-rush/asset"
	"github.com/lixenwraith/boss-rush/core"
	"github.com/lixenwraith/boss-rush/engine"
	"github.com/lixenwraith/boss-rush/parameter"
	"github.com/lixenwraith/boss-rush/vmath"
)

// view maps world positions to screen cells around a camera
type view struct {
	camera vmath.Vec2
	width  int
	height int
}

// cell returns the screen cell of world position p, world Y grows upward
func (v view) cell(p vmath.Vec2) (int, int) {
	x := v.width/2 + int(math.Round((p.X-v.camera.X)*parameter.WorldScale))
	y := v.height/2 - int(math.Round((p.Y-v.camera.Y)*parameter.WorldScale*parameter.CellAspect))
	return x, y
}

func (r *Renderer) drawWorld(g *engine.Game, lib *asset.Library) {
	c := &g.World.Components
	w, h := r.screen.Size()
	v := view{width: w, height: h}
	if cams := c.Camera.All(); len(cams) > 0 {
		if cam, ok := c.Camera.Get(cams[0]); ok {
			v.camera = cam.Position
		}
	}

	r.drawGround(v)

	sprites := c.Sprite.All()
	sort.SliceStable(sprites, func(i, j int) bool {
		a, _ := c.Sprite.Get(sprites[i])
		b, _ := c.Sprite.Get(sprites[j])
		return a.Z < b.Z
	})
	for _, e := range sprites {
		r.drawSprite(g, lib, v, e)
	}
}

// drawGround marks a fixed world grid so camera motion is visible
func (r *Renderer) drawGround(v view) {
	originX := int(math.Floor(v.camera.X * parameter.WorldScale))
	originY := int(math.Floor(v.camera.Y * parameter.WorldScale * parameter.CellAspect))
	for y := 1; y < v.height-1; y++ {
		wy := originY - (y - v.height/2)
		if mod(wy, parameter.GroundSpacingY) != 0 {
			continue
		}
		for x := range v.width {
			if mod(originX+x-v.width/2, parameter.GroundSpacingX) == 0 {
				r.screen.SetContent(x, y, '·', nil, r.palette.ground)
			}
		}
	}
}

func (r *Renderer) drawSprite(g *engine.Game, lib *asset.Library, v view, e core.Entity) {
	c := &g.World.Components
	sprite, ok := c.Sprite.Get(e)
	if !ok {
		return
	}
	tf, ok := c.Transform.Get(e)
	if !ok {
		return
	}
	atlas, ok := lib.Atlas(sprite.Atlas)
	if !ok {
		return
	}
	rows, ok := atlas.Frame(sprite.Frame)
	if !ok {
		return
	}

	cx, cy := v.cell(tf.Position)
	x0 := cx - atlas.Width/2
	y0 := cy - atlas.Height/2
	style := r.palette.base
	if c.Player.Has(e) {
		style = r.palette.accent
	}
	for dy, row := range rows {
		y := y0 + dy
		if y < 0 || y >= v.height {
			continue
		}
		x := x0
		for _, ch := range row {
			// Spaces are transparent
			if ch != ' ' && x >= 0 && x < v.width {
				r.screen.SetContent(x, y, ch, nil, style)
			}
			x++
		}
	}
}

func mod(a, b int) int {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}
