package main

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/sensconv/sensitivity"
	"golang.org/x/image/colornames"
)

// Dial shows how far a profile has turned for the mouse travel so far.
type Dial struct {
	Profile *sensitivity.Profile
	Color   color.Color

	// degrees, unbounded so full turns can be counted
	angle float64
}

// Turn rotates the dial for counts reported by a mouse at mouseDPI. The
// counts are rescaled to the profile's own DPI first.
func (d *Dial) Turn(counts, mouseDPI float64) {
	if !d.Profile.Convertible() {
		return
	}
	d.angle += counts * d.Profile.DPI() / mouseDPI * d.Profile.DegreesPerCount()
}

func (d *Dial) Reset() {
	d.angle = 0
}

// Heading is the dial angle folded into [0, 360).
func (d *Dial) Heading() float64 {
	h := math.Mod(d.angle, sensitivity.FullTurnDegrees)
	if h < 0 {
		h += sensitivity.FullTurnDegrees
	}
	return h
}

// Turns is the signed number of completed full rotations.
func (d *Dial) Turns() int {
	return int(d.angle / sensitivity.FullTurnDegrees)
}

func (d *Dial) Draw(screen *ebiten.Image, cx, cy, r float32) {
	vector.StrokeCircle(screen, cx, cy, r, 3, colornames.Lightgrey, true)

	for i := 0; i < 4; i++ {
		a := float64(i) * math.Pi / 2
		x0 := cx + float32(math.Sin(a))*(r-10)
		y0 := cy - float32(math.Cos(a))*(r-10)
		x1 := cx + float32(math.Sin(a))*r
		y1 := cy - float32(math.Cos(a))*r
		vector.StrokeLine(screen, x0, y0, x1, y1, 2, colornames.Lightgrey, true)
	}

	rad := d.Heading() * math.Pi / 180
	hx := cx + float32(math.Sin(rad))*(r-6)
	hy := cy - float32(math.Cos(rad))*(r-6)
	vector.StrokeLine(screen, cx, cy, hx, hy, 4, d.Color, true)

	label := fmt.Sprintf("%s\n%.1f deg  turns %d", d.Profile.Name(), d.Heading(), d.Turns())
	if !d.Profile.Convertible() {
		label = fmt.Sprintf("%s\nunsupported engine %s", d.Profile.Name(), d.Profile.Engine())
	}
	ebitenutil.DebugPrintAt(screen, label, int(cx-r), int(cy+r+10))
}
