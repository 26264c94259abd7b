package graphics

import (
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Window configures the host window.
type Window struct {
	Width      int
	Height     int
	Title      string
	Fullscreen bool // monitor-sized fullscreen; Width and Height are then ignored
	TargetFPS  int
	Background color.RGBA
}

// Run opens the window and runs the main loop. Each frame it calls update (input, simulation),
// then clears the screen to the background colour and calls draw. The loop ends when the window
// is closed or update returns true.
// ESC is left to the terminal, so it does not close the window.
func Run(w Window, update func() (quit bool), draw func()) {
	width, height := int32(w.Width), int32(w.Height)
	if w.Fullscreen {
		rl.SetConfigFlags(rl.FlagFullscreenMode)
		width, height = int32(rl.GetMonitorWidth(0)), int32(rl.GetMonitorHeight(0))
	} else {
		rl.SetConfigFlags(rl.FlagWindowResizable)
	}
	rl.InitWindow(width, height, w.Title)
	defer rl.CloseWindow()

	rl.SetExitKey(rl.KeyNull)
	rl.SetTargetFPS(int32(w.TargetFPS))

	for !rl.WindowShouldClose() {
		if update() {
			return
		}

		rl.BeginDrawing()
		rl.ClearBackground(w.Background)
		draw()
		rl.EndDrawing()
	}
}

// FrameTime returns the duration of the last frame in seconds.
func FrameTime() float64 {
	return float64(rl.GetFrameTime())
}

// ScreenSize returns the current drawable size in pixels.
func ScreenSize() (width, height int) {
	return rl.GetScreenWidth(), rl.GetScreenHeight()
}

// Cursor returns the mouse position in screen pixels.
func Cursor() (x, y int) {
	return int(rl.GetMouseX()), int(rl.GetMouseY())
}
