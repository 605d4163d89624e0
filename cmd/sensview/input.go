package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Input holds the per-frame state the preview reacts to.
type Input struct {
	// DeltaX is horizontal mouse travel in counts since the last frame.
	DeltaX int
	// ToggleCapture is true on the frame Esc was pressed.
	ToggleCapture bool
	// Reset is true on the frame R was pressed.
	Reset bool
	// Convert is true on the frame C was pressed.
	Convert bool
	// Quit is true on the frame F12 was pressed.
	Quit bool

	tracker cursorTracker
}

func NewInput() *Input {
	return &Input{}
}

// Update polls keyboard and cursor.
func (i *Input) Update() {
	i.ToggleCapture = inpututil.IsKeyJustPressed(ebiten.KeyEscape)
	i.Reset = inpututil.IsKeyJustPressed(ebiten.KeyR)
	i.Convert = inpututil.IsKeyJustPressed(ebiten.KeyC)
	i.Quit = inpututil.IsKeyJustPressed(ebiten.KeyF12)

	if ebiten.CursorMode() != ebiten.CursorModeCaptured {
		i.tracker.release()
		i.DeltaX = 0
		return
	}
	x, _ := ebiten.CursorPosition()
	i.DeltaX = i.tracker.step(x)
}

// cursorTracker turns absolute cursor positions into deltas. The first
// sample after a release only primes it.
type cursorTracker struct {
	lastX  int
	primed bool
}

func (t *cursorTracker) step(x int) int {
	if !t.primed {
		t.lastX = x
		t.primed = true
		return 0
	}
	d := x - t.lastX
	t.lastX = x
	return d
}

func (t *cursorTracker) release() {
	t.primed = false
}
