package main

import (
	"flag"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/plus3/arcade/audio"
	"github.com/plus3/arcade/event"
	"github.com/plus3/arcade/tanks"
)

var groundColor = color.RGBA{R: 34, G: 44, B: 34, A: 255}

type app struct {
	game     *tanks.Game
	renderer *tanks.Renderer
}

func (a *app) Update() error {
	if ebiten.IsKeyPressed(ebiten.KeyQ) || ebiten.IsKeyPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	in := a.game.Input()

	in.Turn = 0
	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		in.Turn += 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		in.Turn -= 1
	}

	in.Forward = 0
	if ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		in.Forward += 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		in.Forward -= 1
	}

	in.Fire = ebiten.IsKeyPressed(ebiten.KeySpace)

	a.game.Step(1.0 / float64(ebiten.TPS()))
	return nil
}

func (a *app) Draw(screen *ebiten.Image) {
	screen.Fill(groundColor)
	a.renderer.Draw(screen)
}

func (a *app) Layout(outsideWidth, outsideHeight int) (int, int) {
	return tanks.ScreenWidth, tanks.ScreenHeight
}

func main() {
	seed := flag.Int64("seed", 1, "The world seed.")
	aiFireInterval := flag.Float64("ai-fire-interval", 1.5, "Seconds between AI shots; 0 fires every frame.")
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

	game := tanks.New(tanks.Config{
		Seed:           *seed,
		AIFireInterval: *aiFireInterval,
		Bus:            bus,
	})

	ebiten.SetWindowSize(tanks.ScreenWidth, tanks.ScreenHeight)
	ebiten.SetWindowTitle("Tanks")

	if err := ebiten.RunGame(&app{game: game, renderer: tanks.NewRenderer(game.Storage())}); err != nil {
		log.Fatalf("Game loop failed: %v", err)
	}
}
