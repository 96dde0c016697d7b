package justrun

import (
	"fmt"
	"math"
	"strings"

	"github.com/nprice1/just-run/internal/core"
	"github.com/nprice1/just-run/internal/games/justrun/enemies"
	"github.com/nprice1/just-run/internal/games/justrun/geom"
	"github.com/nprice1/just-run/internal/games/justrun/physics"
	"github.com/nprice1/just-run/internal/games/justrun/pickups"
	"github.com/nprice1/just-run/internal/games/justrun/sprite"
	"github.com/nprice1/just-run/internal/games/justrun/tilemap"
	"github.com/nprice1/just-run/internal/games/justrun/vehicle"
)

// Renderer draws one sprite at page-relative game coordinates.
type Renderer interface {
	Draw(s sprite.Sprite, sx, sy float64)
}

// Draw hands every entity overlapping the active page to r, back to front:
// vehicle, parts, traps, powerups, killed zombies, zombies, player.
func (w *World) Draw(r Renderer) {
	ox, oy := w.m.PageOrigin()
	span := geom.FromTile(w.m.PageSize())
	page := geom.R(ox, oy, span, span)

	draw := func(s sprite.Sprite, x, y float64) {
		if !geom.R(x, y, s.W, s.H).CollidesWith(page) {
			return
		}
		sx, sy := w.m.ProjectActive(x, y)
		r.Draw(s, sx, sy)
	}

	if w.vehicle != nil {
		x, y := w.vehicle.Position()
		draw(w.vehicle.Sprite(), x, y)
	}
	for _, p := range w.parts {
		x, y := p.Position()
		draw(p.Sprite(), x, y)
	}
	for _, t := range w.traps {
		x, y := t.Position()
		draw(t.Sprite(), x, y)
	}
	for _, t := range w.tripped {
		x, y := t.Position()
		draw(t.Sprite(), x, y)
	}
	for _, p := range w.powerups {
		x, y := p.Position()
		draw(p.Sprite(), x, y)
	}
	for _, p := range w.activated {
		x, y := p.Position()
		draw(p.Sprite(), x, y)
	}
	for _, z := range w.killed {
		x, y := z.Position()
		draw(z.Sprite(), x, y)
	}
	for _, z := range w.zombies {
		x, y := z.Position()
		draw(z.Sprite(), x, y)
	}
	if w.player != nil && w.phase != PhaseCinematic {
		x, y := w.player.Position()
		draw(w.player.Sprite(), x, y)
		if held := w.player.Held(); held != nil {
			hx, hy := held.Position()
			draw(held.Sprite(), hx, hy)
		}
	}
}

// Terminal layout: one tile is two cells wide and one row tall, with the
// HUD on the first row.
const (
	cellsPerTile = 2
	hudRows      = 1
)

// ScreenRenderer draws into a core.Screen with the page at (OffsetX,
// OffsetY).
type ScreenRenderer struct {
	Screen  *core.Screen
	OffsetX int
	OffsetY int
}

// toCells converts a page-relative offset to whole cells, rounding down so
// sprites hanging off the left or top edge stay aligned.
func toCells(v float64, per int) int {
	return int(math.Floor(v / geom.TileSize * float64(per)))
}

// Draw implements Renderer.
func (r ScreenRenderer) Draw(s sprite.Sprite, sx, sy float64) {
	x := r.OffsetX + toCells(sx, cellsPerTile)
	y := r.OffsetY + toCells(sy, 1)

	if s.Kind == sprite.KindVehicle {
		r.drawVehicle(s, x, y)
		return
	}
	ch, color := glyph(s)
	w := max(toCells(s.W, cellsPerTile), 1)
	h := max(toCells(s.H, 1), 1)
	if !core.NewRect(x, y, w, h).Intersects(r.bounds()) {
		return
	}
	for dy := 0; dy < h; dy++ {
		for dx := 0; dx < w; dx++ {
			c := ch
			// Two-cell actors show a facing hint on their trailing cell.
			if dx == 1 && w == cellsPerTile && (s.Kind == sprite.KindPlayer || s.Kind == sprite.KindZombie) {
				c = facing(s)
			}
			r.Screen.SetColor(x+dx, y+dy, c, color)
		}
	}
}

func (r ScreenRenderer) bounds() core.Rect {
	return core.NewRect(0, 0, r.Screen.Width(), r.Screen.Height())
}

func facing(s sprite.Sprite) rune {
	if s.Movement.Motion == physics.Standing {
		return ' '
	}
	if s.Movement.Facing == physics.West {
		return '<'
	}
	return '>'
}

// rotor frames for a built helicopter.
var rotor = []rune{'-', '\\', '|', '/'}

func (r ScreenRenderer) drawVehicle(s sprite.Sprite, x, y int) {
	w := toCells(s.W, cellsPerTile)
	h := toCells(s.H, 1)
	heliW, _ := vehicle.Footprint(vehicle.Helicopter)

	color := core.ColorDarkGray
	if s.Has(sprite.FlagBuilt) {
		color = core.ColorBrightWhite
	}
	r.Screen.DrawBox(core.NewRect(x, y, w, max(h, 2)), color)

	label := "CAR"
	if s.W == heliW {
		label = "HELI"
	}
	label = fmt.Sprintf("%s %d", label, s.Variant)
	r.Screen.DrawTextColor(x+(w-len(label))/2, y+max(h, 2)/2, label, color)

	if s.Has(sprite.FlagBuilt) && s.W == heliW {
		blade := rotor[s.Frame%len(rotor)]
		for dx := 1; dx < w-1; dx++ {
			r.Screen.SetColor(x+dx, y, blade, core.ColorBrightCyan)
		}
	}
}

var zombieColors = map[enemies.Kind]core.Color{
	enemies.Slow:   core.ColorGreen,
	enemies.Crazy:  core.ColorBrightRed,
	enemies.Random: core.ColorMagenta,
	enemies.Cloud:  core.ColorGray,
}

var powerupGlyphs = map[pickups.Kind]rune{
	pickups.CricketBat: '/',
	pickups.KillZombie: '+',
	pickups.WipeOut:    '*',
	pickups.Freeze:     '~',
	pickups.Teleport:   '%',
	pickups.Nuke:       '!',
}

var partGlyphs = map[int]rune{
	int(vehicle.Helicopter)*10 + int(vehicle.Prop):       'P',
	int(vehicle.Helicopter)*10 + int(vehicle.Windshield): 'W',
	int(vehicle.Helicopter)*10 + int(vehicle.Bar):        'B',
	int(vehicle.Car)*10 + int(vehicle.Tire):              'O',
	int(vehicle.Car)*10 + int(vehicle.Door):              'D',
	int(vehicle.Car)*10 + int(vehicle.Engine):            'E',
}

// glyph picks the rune and color for a non-vehicle sprite.
func glyph(s sprite.Sprite) (rune, core.Color) {
	switch s.Kind {
	case sprite.KindPlayer:
		switch {
		case s.Has(sprite.FlagTeleport):
			return '@', core.ColorBrightCyan
		case s.Has(sprite.FlagImmune) && s.Frame%2 == 1:
			return '@', core.ColorDarkGray
		case s.Has(sprite.FlagBat):
			return '@', core.ColorBrightYellow
		}
		return '@', core.ColorBrightWhite
	case sprite.KindZombie:
		return 'Z', zombieColors[enemies.Kind(s.Variant)] //#nosec G115 -- variant is a zombie kind
	case sprite.KindKilled:
		return 'x', core.ColorDarkGray
	case sprite.KindPowerup:
		ch, ok := powerupGlyphs[pickups.Kind(s.Variant)] //#nosec G115 -- variant is a powerup kind
		if !ok {
			ch = '?'
		}
		switch {
		case s.Has(sprite.FlagSprung):
			return ch, core.ColorWhite
		case s.Has(sprite.FlagDebuff):
			return ch, core.ColorRed
		}
		return ch, core.ColorBrightGreen
	case sprite.KindTrap:
		if s.Has(sprite.FlagSprung) {
			return 'X', core.ColorBrown
		}
		return '^', core.ColorBrown
	case sprite.KindPart:
		if ch, ok := partGlyphs[s.Variant]; ok {
			return ch, core.ColorYellow
		}
		return '#', core.ColorYellow
	}
	return '?', core.ColorDefault
}

// RenderScreen draws the active page, every visible entity, the HUD and the
// phase overlay.
func RenderScreen(dst *core.Screen, w *World) {
	dst.Clear()
	pageW := w.m.PageSize() * cellsPerTile
	pageH := w.m.PageSize()
	ox := max((dst.Width()-pageW)/2, 0)
	oy := hudRows

	drawTiles(dst, w.m, ox, oy)
	w.Draw(ScreenRenderer{Screen: dst, OffsetX: ox, OffsetY: oy})
	drawHUD(dst, w)

	switch w.phase {
	case PhaseTitle:
		drawMessage(dst, oy+pageH/2, "JUST RUN",
			fmt.Sprintf("High score: %d", w.highScore),
			"Press P or move to start")
	case PhasePaused:
		drawMessage(dst, oy+pageH/2, "PAUSED", "Press P to resume")
	case PhaseCinematic:
		drawMessage(dst, oy+2, fmt.Sprintf("LEVEL %d CLEARED", w.level))
	case PhaseDying:
		drawMessage(dst, oy+pageH/2, "YOU DIED")
	case PhaseGameOver:
		lines := []string{"GAME OVER", fmt.Sprintf("Score: %d  Best: %d", w.score, w.highScore)}
		if w.newBest {
			lines = append(lines, "New high score!")
		}
		lines = append(lines, "Press P to play again, Q to quit")
		drawMessage(dst, oy+pageH/2, lines...)
	}
}

func drawTiles(dst *core.Screen, m *tilemap.Map, ox, oy int) {
	pr, pc := m.Page()
	size := m.PageSize()
	for row := 0; row < size; row++ {
		for col := 0; col < size; col++ {
			r, c := pr*size+row, pc*size+col
			if r >= m.Rows() || c >= m.Cols() {
				continue
			}
			ch, color := '·', core.ColorDarkGray
			if m.Kind(r, c) == tilemap.Wall {
				ch, color = '█', core.ColorGray
			}
			for i := 0; i < cellsPerTile; i++ {
				dst.SetColor(ox+col*cellsPerTile+i, oy+row, ch, color)
			}
		}
	}
}

func drawHUD(dst *core.Screen, w *World) {
	var hearts string
	if w.player != nil {
		hearts = strings.Repeat("♥", w.player.Health())
	}
	text := fmt.Sprintf("Score %d  Level %d  Time %d  Kills %d  %s",
		w.score, w.level, w.SecondsLeft(), w.kills, hearts)
	dst.DrawTextColor(1, 0, text, core.ColorBrightWhite)

	var tags []string
	if w.player != nil && w.player.HasBat() {
		tags = append(tags, "BAT")
	}
	if w.freeze > 0 {
		tags = append(tags, "FROZEN")
	}
	if w.vehicle != nil {
		tags = append(tags, fmt.Sprintf("%s %d/3", w.vehicle.Kind(), w.vehicle.InstalledCount()))
	}
	right := strings.Join(tags, " ")
	dst.DrawTextColor(dst.Width()-len([]rune(right))-1, 0, right, core.ColorYellow)
}

// drawMessage draws a boxed, centered block of lines around row cy.
func drawMessage(dst *core.Screen, cy int, lines ...string) {
	width := 0
	for _, l := range lines {
		width = max(width, len([]rune(l)))
	}
	boxW, boxH := width+4, len(lines)+2
	box := core.NewRect((dst.Width()-boxW)/2, cy-boxH/2, boxW, boxH)
	dst.DrawRect(box, ' ')
	dst.DrawBox(box, core.ColorBrightWhite)
	for i, l := range lines {
		dst.DrawTextCenteredColor(box.Y+1+i, l, core.ColorBrightWhite)
	}
}
