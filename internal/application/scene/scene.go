// Package scene defines the Scene interface for game screens.
package scene

import "github.com/hajimehoshi/ebiten/v2"

// Scene is one screen of the game. The game loop delegates Update and Draw
// to the current scene and switches scenes when Update returns a new one.
type Scene interface {
	// Update advances the scene by one tick of dt seconds.
	// A non-nil next scene replaces this one. An error ends the game.
	Update(dt float64) (next Scene, err error)

	// Draw renders the scene to the screen.
	Draw(screen *ebiten.Image)

	// OnEnter is called each time the scene becomes current.
	OnEnter()

	// OnExit is called when the scene is replaced or the game ends.
	// Recordings and progress are flushed here.
	OnExit()
}
