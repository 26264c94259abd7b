package graphics

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"gravity-sandbox/internal/input"
)

// keyMap binds raylib keys to sandbox keys: arrows pan, W/S zoom, A/D time scale, R resets.
var keyMap = map[int32]input.Key{
	rl.KeyLeft:  input.KeyLeft,
	rl.KeyRight: input.KeyRight,
	rl.KeyUp:    input.KeyUp,
	rl.KeyDown:  input.KeyDown,
	rl.KeyW:     input.KeyZoomIn,
	rl.KeyS:     input.KeyZoomOut,
	rl.KeyD:     input.KeyFaster,
	rl.KeyA:     input.KeySlower,
	rl.KeyR:     input.KeyReset,
}

// keyOrder fixes the order keys pressed in the same frame are reported in.
var keyOrder = []int32{rl.KeyLeft, rl.KeyRight, rl.KeyUp, rl.KeyDown, rl.KeyW, rl.KeyS, rl.KeyD, rl.KeyA, rl.KeyR}

var buttonMap = []struct {
	rl  rl.MouseButton
	btn input.Button
}{
	{rl.MouseButtonLeft, input.ButtonPrimary},
	{rl.MouseButtonRight, input.ButtonSecondary},
}

// Poller turns raylib's per-frame input state into sandbox events.
type Poller struct {
	width, height int
	events        []input.Event
}

// NewPoller returns a poller that reports a Resize when the screen differs from width x height.
func NewPoller(width, height int) *Poller {
	return &Poller{width: width, height: height}
}

// Poll returns this frame's events in a fixed order: resize, quit (Ctrl+Q), keys, button presses,
// button releases.
// Keys are skipped when keyboard is false (the console has the keyboard).
// The returned slice is reused by the next call.
func (p *Poller) Poll(keyboard bool) []input.Event {
	p.events = p.events[:0]

	if w, h := rl.GetScreenWidth(), rl.GetScreenHeight(); w != p.width || h != p.height {
		p.events = append(p.events, input.Resize{W: w, H: h})
		p.width, p.height = w, h
	}

	if keyboard {
		ctrl := rl.IsKeyDown(rl.KeyLeftControl) || rl.IsKeyDown(rl.KeyRightControl)
		if ctrl && rl.IsKeyPressed(rl.KeyQ) {
			p.events = append(p.events, input.Quit{})
		}
		var mods input.Mods
		if rl.IsKeyDown(rl.KeyLeftShift) || rl.IsKeyDown(rl.KeyRightShift) {
			mods |= input.ModBoost
		}
		for _, k := range keyOrder {
			if rl.IsKeyPressed(k) || rl.IsKeyPressedRepeat(k) {
				p.events = append(p.events, input.KeyPress{Key: keyMap[k], Mods: mods})
			}
		}
	}

	x, y := int(rl.GetMouseX()), int(rl.GetMouseY())
	for _, b := range buttonMap {
		if rl.IsMouseButtonPressed(b.rl) {
			p.events = append(p.events, input.MouseDown{Button: b.btn, X: x, Y: y})
		}
	}
	for _, b := range buttonMap {
		if rl.IsMouseButtonReleased(b.rl) {
			p.events = append(p.events, input.MouseUp{Button: b.btn, X: x, Y: y})
		}
	}
	return p.events
}
