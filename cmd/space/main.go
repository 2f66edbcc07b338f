package main

import (
	"flag"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/plus3/arcade/audio"
	"github.com/plus3/arcade/event"
	"github.com/plus3/arcade/space"
)

var backgroundColor = color.RGBA{R: 10, G: 10, B: 24, A: 255}

type app struct {
	game     *space.Game
	renderer *space.Renderer
}

func (a *app) Update() error {
	if ebiten.IsKeyPressed(ebiten.KeyQ) || ebiten.IsKeyPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	in := a.game.Input()
	mx, my := ebiten.CursorPosition()
	in.Cursor = space.CursorToStage(mx, my)
	in.CursorActive = true
	in.StartPressed = inpututil.IsKeyJustPressed(ebiten.KeySpace)

	a.game.Step(1.0 / float64(ebiten.TPS()))
	return nil
}

func (a *app) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)
	a.renderer.Draw(screen)
}

func (a *app) Layout(outsideWidth, outsideHeight int) (int, int) {
	return space.ScreenWidth, space.ScreenHeight
}

func main() {
	seed := flag.Int64("seed", 1, "The world seed.")
	mute := flag.Bool("mute", false, "Disable sound output.")
	volume := flag.Float64("volume", 0.8, "Master volume in [0, 1].")
	flag.Parse()

	bus := event.NewDispatcher()

	if !*mute {
		manager := audio.NewManager(*volume)
		if err := manager.Initialize(); err != nil {
			log.Printf("Audio unavailable, continuing muted: %v", err)
		} else {
			manager.Attach(bus)
			defer manager.Cleanup()
		}
	}

	game, err := space.New(space.Config{Seed: *seed, Bus: bus})
	if err != nil {
		log.Fatalf("Failed to create game: %v", err)
	}

	ebiten.SetWindowSize(space.ScreenWidth, space.ScreenHeight)
	ebiten.SetWindowTitle("Space")

	if err := ebiten.RunGame(&app{game: game, renderer: space.NewRenderer(game.Storage())}); err != nil {
		log.Fatalf("Game loop failed: %v", err)
	}
}
