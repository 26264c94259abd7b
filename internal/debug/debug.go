package debug

import (
	"fmt"
	"runtime"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	fontSize   = 20
	padding    = 12
	lineHeight = fontSize + 4
	// updateInterval: only refresh the text every N frames to reduce allocations.
	updateInterval = 30
)

// Debug draws the HUD at the top-right: FPS and heap when ShowFPS is set, and the lines returned
// by Stats when ShowStats is set. Both are off by default.
type Debug struct {
	ShowFPS   bool
	ShowStats bool
	// Stats returns the stats lines (body count, time scale, zoom). Called every updateInterval frames.
	Stats func() []string

	frameCount uint32
	fpsText    string
	memText    string
	statsText  []string
	memStats   runtime.MemStats
}

// New returns a Debug system with all overlays hidden.
func New() *Debug {
	return &Debug{}
}

// SetShowFPS sets whether the FPS and heap counters are drawn.
func (d *Debug) SetShowFPS(show bool) {
	d.ShowFPS = show
}

// SetShowStats sets whether the simulation stats are drawn.
func (d *Debug) SetShowStats(show bool) {
	d.ShowStats = show
}

// Draw renders any enabled overlays. Call last in the draw loop.
func (d *Debug) Draw() {
	d.frameCount++
	update := d.frameCount%updateInterval == 0
	if d.ShowFPS && d.fpsText == "" || d.ShowStats && d.statsText == nil {
		update = true
	}

	var lines []string
	if d.ShowFPS {
		if update {
			runtime.ReadMemStats(&d.memStats)
			d.fpsText = fmt.Sprintf("FPS: %d", rl.GetFPS())
			d.memText = fmt.Sprintf("Mem: %.2f MiB", float64(d.memStats.Alloc)/(1024*1024))
		}
		lines = append(lines, d.fpsText, d.memText)
	}
	if d.ShowStats && d.Stats != nil {
		if update {
			d.statsText = d.Stats()
		}
		lines = append(lines, d.statsText...)
	}

	screenW := int32(rl.GetScreenWidth())
	y := int32(padding)
	for _, text := range lines {
		w := rl.MeasureText(text, fontSize)
		rl.DrawText(text, screenW-w-padding, y, fontSize, rl.Green)
		y += lineHeight
	}
}
