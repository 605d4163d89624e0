package main

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/sensconv/report"
	"github.com/milk9111/sensconv/sensitivity"
	"golang.org/x/image/colornames"
)

const (
	baseWidth  = 1280
	baseHeight = 720
	dialRadius = 150
)

// Viewer spins one dial per profile as the captured mouse moves, so the
// two games' sensitivities can be compared by eye.
type Viewer struct {
	input *Input
	panel *InfoPanel

	// dpi of the physical mouse
	mouseDPI float64

	source *Dial
	target *Dial
}

func NewViewer(source, target *sensitivity.Profile) *Viewer {
	v := &Viewer{
		input:    NewInput(),
		panel:    NewInfoPanel(),
		mouseDPI: source.DPI(),
		source:   &Dial{Profile: source, Color: colornames.Crimson},
		target:   &Dial{Profile: target, Color: colornames.Deepskyblue},
	}
	v.refresh()
	return v
}

func (v *Viewer) refresh() {
	v.panel.SetReports(panelReport(v.source.Profile), panelReport(v.target.Profile))
}

// panelReport is the text report plus the mouse counts a full turn takes
// at the profile's own DPI.
func panelReport(p *sensitivity.Profile) string {
	s := report.Profile(p)
	if p.Convertible() {
		s += fmt.Sprintf("%-25s%.0f\n", "Counts/360:", p.CountsPer360())
	}
	return s
}

// move applies counts of horizontal travel to both dials.
func (v *Viewer) move(counts int) {
	if counts == 0 {
		return
	}
	v.source.Turn(float64(counts), v.mouseDPI)
	v.target.Turn(float64(counts), v.mouseDPI)
}

// convert matches the target to the source and restarts the comparison.
func (v *Viewer) convert() {
	res, err := sensitivity.Convert(v.source.Profile, v.target.Profile)
	if err != nil {
		v.panel.SetStatus(err.Error())
		return
	}
	v.source.Reset()
	v.target.Reset()
	v.refresh()
	if res.Changed {
		v.panel.SetStatus(fmt.Sprintf("target sensitivity %.3f -> %.3f", res.Previous, res.Target.InGameSens()))
	} else {
		v.panel.SetStatus("already matched")
	}
}

func (v *Viewer) Update() error {
	v.input.Update()

	if v.input.Quit {
		return ebiten.Termination
	}
	if v.input.ToggleCapture {
		if ebiten.CursorMode() == ebiten.CursorModeCaptured {
			ebiten.SetCursorMode(ebiten.CursorModeVisible)
		} else {
			ebiten.SetCursorMode(ebiten.CursorModeCaptured)
		}
	}
	if v.input.Reset {
		v.source.Reset()
		v.target.Reset()
		v.panel.SetStatus("")
	}
	if v.input.Convert {
		v.convert()
	}

	v.move(v.input.DeltaX)
	v.panel.UI.Update()
	return nil
}

func (v *Viewer) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 0x18, G: 0x18, B: 0x1c, A: 0xff})

	cy := float32(baseHeight)/2 + 60
	v.source.Draw(screen, float32(baseWidth)*0.35, cy, dialRadius)
	v.target.Draw(screen, float32(baseWidth)*0.70, cy, dialRadius)

	v.panel.UI.Draw(screen)
}

func (v *Viewer) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return baseWidth, baseHeight
}

func (v *Viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
