package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"wolfcaster/model"
)

func anyPressed(keys ...ebiten.Key) bool {
	for _, k := range keys {
		if ebiten.IsKeyPressed(k) {
			return true
		}
	}
	return false
}

func justPressed(keys ...ebiten.Key) bool {
	for _, k := range keys {
		if inpututil.IsKeyJustPressed(k) {
			return true
		}
	}
	return false
}

// readControls maps the held keys to movement for this tick. A and D turn,
// W and S walk, shift sprints.
func readControls() model.Controls {
	return model.Controls{
		Forward: anyPressed(ebiten.KeyW, ebiten.KeyUp),
		Back:    anyPressed(ebiten.KeyS, ebiten.KeyDown),
		Left:    anyPressed(ebiten.KeyA, ebiten.KeyLeft),
		Right:   anyPressed(ebiten.KeyD, ebiten.KeyRight),
		Sprint:  anyPressed(ebiten.KeyShift),
	}
}

// playActions are the one-shot commands read in the play state.
type playActions struct {
	menu    bool
	use     bool
	fire    bool
	minimap bool
	debug   bool
}

func readPlayActions() playActions {
	return playActions{
		menu:    justPressed(ebiten.KeyEscape),
		use:     justPressed(ebiten.KeyEnter, ebiten.KeyE),
		fire:    justPressed(ebiten.KeySpace, ebiten.KeyControl),
		minimap: justPressed(ebiten.KeyM),
		debug:   justPressed(ebiten.KeyF3),
	}
}
