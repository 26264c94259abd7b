package terminal

import (
	"unicode/utf8"

	rl "github.com/gen2brain/raylib-go/raylib"

	"gravity-sandbox/internal/commands"
	"gravity-sandbox/internal/logger"
)

const (
	BarHeight = 40
	prompt    = "> "
	fontSize  = 20
	padding   = 8
	// Number of log lines drawn above the input bar when the terminal is open.
	maxLinesOnScreen = 14
	lineHeight       = fontSize + 4
	maxLineChars     = 200
)

var (
	// Reused every frame when drawing the terminal bar to avoid per-frame color allocations.
	termBarColor    = rl.NewColor(40, 40, 40, 255)
	termLineColor   = rl.NewColor(80, 80, 80, 255)
	termChatBgColor = rl.NewColor(24, 24, 24, 220)
)

// Terminal is the console input bar at the bottom of the screen. It is shown/hidden with ESC.
// When open it owns the keyboard: typing, backspace, Up/Down through earlier lines, Enter to submit.
// Submitted lines go to the console, which runs "cmd ..." lines through the command registry.
type Terminal struct {
	log      *logger.Logger
	console  *commands.Console
	inputBuf string
	open     bool
	history  []string
	histPos  int // index into history while browsing; len(history) when not browsing
}

// New returns a Terminal that logs lines and runs "cmd ..." through reg. It starts closed (hidden); press ESC to open.
func New(log *logger.Logger, reg *commands.Registry) *Terminal {
	return &Terminal{log: log, console: &commands.Console{Log: log, Registry: reg}}
}

// IsOpen returns true when the terminal is visible and capturing the keyboard.
func (t *Terminal) IsOpen() bool {
	return t.open
}

// Update handles ESC (toggle open/closed), and when open: typing, paste, history, backspace, enter. Call once per frame.
func (t *Terminal) Update() {
	if rl.IsKeyPressed(rl.KeyEscape) {
		t.open = !t.open
	}
	if !t.open {
		return
	}
	// Paste: Ctrl+V (Windows/Linux) or Cmd+V (macOS)
	if rl.IsKeyPressed(rl.KeyV) && (rl.IsKeyDown(rl.KeyLeftControl) || rl.IsKeyDown(rl.KeyRightControl) || rl.IsKeyDown(rl.KeyLeftSuper) || rl.IsKeyDown(rl.KeyRightSuper)) {
		if pasted := rl.GetClipboardText(); pasted != "" {
			t.inputBuf += pasted
		}
	} else {
		for {
			c := rl.GetCharPressed()
			if c == 0 {
				break
			}
			t.inputBuf += string(rune(c))
		}
	}
	if (rl.IsKeyPressed(rl.KeyBackspace) || rl.IsKeyPressedRepeat(rl.KeyBackspace)) && len(t.inputBuf) > 0 {
		_, size := utf8.DecodeLastRuneInString(t.inputBuf)
		t.inputBuf = t.inputBuf[:len(t.inputBuf)-size]
	}
	if rl.IsKeyPressed(rl.KeyUp) && t.histPos > 0 {
		t.histPos--
		t.inputBuf = t.history[t.histPos]
	}
	if rl.IsKeyPressed(rl.KeyDown) && t.histPos < len(t.history) {
		t.histPos++
		t.inputBuf = ""
		if t.histPos < len(t.history) {
			t.inputBuf = t.history[t.histPos]
		}
	}
	if (rl.IsKeyPressed(rl.KeyEnter) || rl.IsKeyPressed(rl.KeyKpEnter)) && t.inputBuf != "" {
		line := t.inputBuf
		t.inputBuf = ""
		t.history = append(t.history, line)
		t.histPos = len(t.history)
		t.console.Submit(line)
	}
}

// Draw draws the terminal bar at the bottom when open, and the recent log lines above it.
func (t *Terminal) Draw() {
	if !t.open {
		return
	}
	screenW := rl.GetScreenWidth()
	screenH := rl.GetScreenHeight()
	barY := screenH - BarHeight

	chatHeight := maxLinesOnScreen * lineHeight
	chatY := barY - chatHeight
	if chatY < 0 {
		chatHeight = barY
		chatY = 0
	}
	if chatHeight > 0 {
		rl.DrawRectangle(0, int32(chatY), int32(screenW), int32(chatHeight), termChatBgColor)
	}
	for i, line := range t.log.Tail(maxLinesOnScreen) {
		y := chatY + i*lineHeight + padding
		if len(line) > maxLineChars {
			line = line[:maxLineChars-3] + "..."
		}
		rl.DrawText(line, int32(padding), int32(y), fontSize, rl.LightGray)
	}

	rl.DrawRectangle(0, int32(barY), int32(screenW), int32(BarHeight), termBarColor)
	rl.DrawRectangle(0, int32(barY), int32(screenW), 1, termLineColor)
	rl.DrawText(prompt+t.inputBuf+"|", int32(padding), int32(barY+padding), fontSize, rl.White)
}
