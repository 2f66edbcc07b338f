package tanks

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/plus3/arcade/ecs"
	"github.com/plus3/arcade/geom"
)

const (
	ScreenWidth  = 960
	ScreenHeight = 720

	pixelsPerUnit = 18.0
	gridStep      = 10.0
)

var (
	gridColor   = color.RGBA{R: 50, G: 60, B: 50, A: 255}
	shadowColor = color.RGBA{R: 0, G: 0, B: 0, A: 90}
)

type tankDrawView struct {
	Tank     *Tank
	Position *Position
	Tint     *Tint
	Glow     *Glow `ecs:"optional"`
}

type shotDrawView struct {
	Cannonball *Cannonball
	Position   *Position
	Tint       *Tint
}

// Renderer draws the battle centered on the camera.
type Renderer struct {
	camera *ecs.Singleton[Camera]
	tanks  *ecs.View[tankDrawView]
	shots  *ecs.View[shotDrawView]
}

// NewRenderer builds the render views over the game's storage.
func NewRenderer(storage *ecs.Storage) *Renderer {
	return &Renderer{
		camera: ecs.NewSingleton[Camera](storage),
		tanks:  ecs.NewView[tankDrawView](storage),
		shots:  ecs.NewView[shotDrawView](storage),
	}
}

func (r *Renderer) toScreen(v geom.Vec2) (float32, float32) {
	rel := v.Sub(r.camera.Get().Pos)
	return float32(rel.X*pixelsPerUnit + ScreenWidth/2),
		float32(ScreenHeight/2 - rel.Y*pixelsPerUnit)
}

// Draw renders one frame onto the screen.
func (r *Renderer) Draw(screen *ebiten.Image) {
	r.drawGrid(screen)

	for view := range r.shots.Values() {
		x, y := r.toScreen(view.Position.Pos)
		vector.DrawFilledCircle(screen, x, y, 0.15*pixelsPerUnit, shadowColor, true)

		// Height above the ground reads as size and a screen-space lift.
		radius := (0.15 + view.Cannonball.H*0.03) * pixelsPerUnit
		lift := float32(view.Cannonball.H * pixelsPerUnit * 0.5)
		vector.DrawFilledCircle(screen, x, y-lift, float32(radius), view.Tint.C, true)
	}

	for view := range r.tanks.Values() {
		x, y := r.toScreen(view.Position.Pos)
		if view.Glow != nil {
			halo := view.Tint.C
			halo.A = 70
			vector.DrawFilledCircle(screen, x, y, 0.9*pixelsPerUnit, halo, true)
		}
		vector.DrawFilledCircle(screen, x, y, 0.5*pixelsPerUnit, view.Tint.C, true)

		barrel := view.Position.Pos.Add(geom.FromAngle(view.Tank.Angle).Scale(0.9))
		bx, by := r.toScreen(barrel)
		vector.StrokeLine(screen, x, y, bx, by, 4, view.Tint.C, true)
	}
}

// drawGrid anchors the scrolling ground to world space.
func (r *Renderer) drawGrid(screen *ebiten.Image) {
	cam := r.camera.Get().Pos

	unitsWide := ScreenWidth / pixelsPerUnit
	unitsHigh := ScreenHeight / pixelsPerUnit

	startX := gridSnap(cam.X - unitsWide/2)
	for wx := startX; wx <= cam.X+unitsWide/2; wx += gridStep {
		x, _ := r.toScreen(geom.V(wx, cam.Y))
		vector.StrokeLine(screen, x, 0, x, ScreenHeight, 1, gridColor, false)
	}

	startY := gridSnap(cam.Y - unitsHigh/2)
	for wy := startY; wy <= cam.Y+unitsHigh/2; wy += gridStep {
		_, y := r.toScreen(geom.V(cam.X, wy))
		vector.StrokeLine(screen, 0, y, ScreenWidth, y, 1, gridColor, false)
	}
}

func gridSnap(x float64) float64 {
	snapped := float64(int(x/gridStep)) * gridStep
	if snapped > x {
		snapped -= gridStep
	}
	return snapped
}
