package space

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/plus3/arcade/ecs"
	"github.com/plus3/arcade/geom"
)

// Screen dimensions and the stage-to-pixel mapping. The visible window
// covers x in [-9, 9] and y in [-2, 30]; the rest of the corridor is
// off-screen travel time.
const (
	ScreenWidth  = 540
	ScreenHeight = 960

	pixelsPerUnit = 30.0
	screenBottomY = -2.0
)

func toScreen(v geom.Vec2) (float32, float32) {
	return float32(v.X*pixelsPerUnit + ScreenWidth/2),
		float32(ScreenHeight - (v.Y-screenBottomY)*pixelsPerUnit)
}

// CursorToStage maps a window pixel position back to stage coordinates.
func CursorToStage(x, y int) geom.Vec2 {
	return geom.V(
		(float64(x)-ScreenWidth/2)/pixelsPerUnit,
		(ScreenHeight-float64(y))/pixelsPerUnit+screenBottomY,
	)
}

var (
	starColor      = color.RGBA{R: 180, G: 180, B: 200, A: 255}
	enemyColor     = color.RGBA{R: 220, G: 70, B: 70, A: 255}
	laserColor     = color.RGBA{R: 120, G: 220, B: 255, A: 255}
	uberLaserColor = color.RGBA{R: 255, G: 240, B: 160, A: 255}
	grenadeColor   = color.RGBA{R: 160, G: 160, B: 160, A: 255}
	playerColor    = color.RGBA{R: 230, G: 230, B: 240, A: 255}
	explosionColor = color.RGBA{R: 255, G: 170, B: 60, A: 255}
)

type starDrawView struct {
	Star     *Star
	Position *Position
	Scale    *Scale
}

type enemyDrawView struct {
	Enemy    *Enemy
	Position *Position
	Scale    *Scale
}

type laserDrawView struct {
	Laser    *Laser
	Position *Position
}

type uberDrawView struct {
	Uber     *UberLaser
	Position *Position
}

type grenadeDrawView struct {
	Grenade  *Grenade
	Position *Position
	Altitude *Altitude
}

type upgradeDrawView struct {
	Upgrade  *Upgrade
	Position *Position
	Tint     *Tint
}

type supportDrawView struct {
	Support  *Support
	Position *Position
	Tint     *Tint
}

type playerDrawView struct {
	Player   *Player
	Position *Position
}

type explosionDrawView struct {
	Explosion *Explosion
	Position  *Position
	Scale     *Scale
}

type segmentDrawView struct {
	Segment  *HealthBarSegment
	Position *Position
	Scale    *Scale
	Tint     *Tint
}

// Renderer draws the shooter with flat shapes. It reads the world through
// views and never mutates it.
type Renderer struct {
	session *ecs.Singleton[Session]

	stars      *ecs.View[starDrawView]
	enemies    *ecs.View[enemyDrawView]
	lasers     *ecs.View[laserDrawView]
	ubers      *ecs.View[uberDrawView]
	grenades   *ecs.View[grenadeDrawView]
	upgrades   *ecs.View[upgradeDrawView]
	supports   *ecs.View[supportDrawView]
	players    *ecs.View[playerDrawView]
	explosions *ecs.View[explosionDrawView]
	segments   *ecs.View[segmentDrawView]
}

// NewRenderer builds the render views over the game's storage.
func NewRenderer(storage *ecs.Storage) *Renderer {
	return &Renderer{
		session:    ecs.NewSingleton[Session](storage),
		stars:      ecs.NewView[starDrawView](storage),
		enemies:    ecs.NewView[enemyDrawView](storage),
		lasers:     ecs.NewView[laserDrawView](storage),
		ubers:      ecs.NewView[uberDrawView](storage),
		grenades:   ecs.NewView[grenadeDrawView](storage),
		upgrades:   ecs.NewView[upgradeDrawView](storage),
		supports:   ecs.NewView[supportDrawView](storage),
		players:    ecs.NewView[playerDrawView](storage),
		explosions: ecs.NewView[explosionDrawView](storage),
		segments:   ecs.NewView[segmentDrawView](storage),
	}
}

// Draw renders one frame onto the screen.
func (r *Renderer) Draw(screen *ebiten.Image) {
	for view := range r.stars.Values() {
		x, y := toScreen(view.Position.Pos)
		vector.DrawFilledCircle(screen, x, y, float32(view.Scale.F*pixelsPerUnit*0.15), starColor, false)
	}

	for view := range r.lasers.Values() {
		x, y := toScreen(view.Position.Pos)
		vector.DrawFilledRect(screen, x-2, y-12, 4, 12, laserColor, false)
	}

	for view := range r.ubers.Values() {
		_, y := toScreen(view.Position.Pos)
		vector.DrawFilledRect(screen, 0, y-24, ScreenWidth, 24, uberLaserColor, false)
	}

	for view := range r.grenades.Values() {
		x, y := toScreen(view.Position.Pos)
		// Height above the plane reads as size.
		radius := (0.3 + view.Altitude.H*0.05) * pixelsPerUnit
		vector.DrawFilledCircle(screen, x, y, float32(radius), grenadeColor, true)
	}

	for view := range r.upgrades.Values() {
		x, y := toScreen(view.Position.Pos)
		vector.DrawFilledCircle(screen, x, y, 0.5*pixelsPerUnit, view.Tint.C, true)
	}

	for view := range r.supports.Values() {
		x, y := toScreen(view.Position.Pos)
		vector.DrawFilledCircle(screen, x, y, 0.35*pixelsPerUnit, view.Tint.C, true)
	}

	for view := range r.enemies.Values() {
		x, y := toScreen(view.Position.Pos)
		radius := enemyDamageRadius * view.Scale.F * pixelsPerUnit
		vector.DrawFilledCircle(screen, x, y, float32(radius), enemyColor, true)
	}

	for view := range r.players.Values() {
		r.drawPlayer(screen, view)
	}

	for view := range r.explosions.Values() {
		x, y := toScreen(view.Position.Pos)
		vector.DrawFilledCircle(screen, x, y, float32(view.Scale.F*pixelsPerUnit), explosionColor, false)
	}

	for view := range r.segments.Values() {
		x, y := toScreen(view.Position.Pos)
		w := float32(view.Scale.F * pixelsPerUnit)
		vector.DrawFilledRect(screen, x-w/2, y, w-1, 8, view.Tint.C, false)
	}

	r.drawHUD(screen)
}

func (r *Renderer) drawPlayer(screen *ebiten.Image, view playerDrawView) {
	x, y := toScreen(view.Position.Pos)
	vector.DrawFilledCircle(screen, x, y, 0.5*pixelsPerUnit, playerColor, true)

	// Wings swing with the tilt so sideways motion reads on screen.
	for _, side := range []float64{-1, 1} {
		offset := geom.V(side*0.8, -0.3).Rotate(view.Player.TiltAngle)
		wx, wy := toScreen(view.Position.Pos.Add(offset))
		vector.DrawFilledCircle(screen, wx, wy, 0.25*pixelsPerUnit, playerColor, true)
	}
}

var hudFace = text.NewGoXFace(basicfont.Face7x13)

func (r *Renderer) drawHUD(screen *ebiten.Image) {
	sess := r.session.Get()

	drawText(screen, fmt.Sprintf("SCORE %d", sess.Score), 8, 8, 2)
	drawText(screen, fmt.Sprintf("WAVE %d", sess.WaveIndex+1), 8, 40, 2)

	switch sess.State {
	case StateStart:
		drawTextCentered(screen, "PRESS SPACE TO START", ScreenHeight/2, 3)
	case StateEnded:
		drawTextCentered(screen, "GAME OVER", ScreenHeight/2-48, 4)
		drawTextCentered(screen, "PRESS SPACE TO RESTART", ScreenHeight/2+16, 2)
	}
}

func drawText(screen *ebiten.Image, s string, x, y, scale float64) {
	op := &text.DrawOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(x, y)
	text.Draw(screen, s, hudFace, op)
}

func drawTextCentered(screen *ebiten.Image, s string, y, scale float64) {
	width, _ := text.Measure(s, hudFace, 0)
	drawText(screen, s, (ScreenWidth-width*scale)/2, y, scale)
}
