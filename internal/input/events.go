package input

// Event is one discrete input from the host, applied in arrival order.
type Event interface {
	isEvent()
}

// Key is a logical key. The host maps its own key codes onto these.
type Key int

const (
	KeyNone Key = iota
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyZoomIn
	KeyZoomOut
	KeyFaster
	KeySlower
	KeyReset
)

// Mods is a set of held modifier keys.
type Mods uint8

// ModBoost is the "larger step" modifier (shift on a keyboard).
const ModBoost Mods = 1 << iota

// Button is a mouse button.
type Button int

const (
	ButtonPrimary Button = iota + 1
	ButtonSecondary
)

// Quit asks the host loop to stop.
type Quit struct{}

// Resize reports the new window size in pixels.
type Resize struct {
	W, H int
}

// KeyPress reports a key press with the modifiers held at the time.
type KeyPress struct {
	Key  Key
	Mods Mods
}

// MouseDown reports a button press at screen coordinates.
type MouseDown struct {
	Button Button
	X, Y   int
}

// MouseUp reports a button release at screen coordinates.
type MouseUp struct {
	Button Button
	X, Y   int
}

func (Quit) isEvent()      {}
func (Resize) isEvent()    {}
func (KeyPress) isEvent()  {}
func (MouseDown) isEvent() {}
func (MouseUp) isEvent()   {}
