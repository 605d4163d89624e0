package main

import (
	"image/color"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"
)

const hintText = "Esc: capture/release mouse   C: convert target   R: reset dials   F12: quit"

// InfoPanel is the report text shown beside the dials.
type InfoPanel struct {
	UI *ebitenui.UI

	source *widget.Text
	target *widget.Text
	status *widget.Text
}

// NewInfoPanel builds a top-left panel with one text block per profile.
// It uses the built-in basic font so no theme fonts need loading.
func NewInfoPanel() *InfoPanel {
	panelImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x00, G: 0x00, B: 0x00, A: 200})

	goFace := ebtext.NewGoXFace(basicfont.Face7x13)
	var face ebtext.Face = goFace

	white := color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	newText := func(label string) *widget.Text {
		return widget.NewText(
			widget.TextOpts.Text(label, &face, white),
			widget.TextOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionStart})),
		)
	}

	p := &InfoPanel{
		source: newText(""),
		target: newText(""),
		status: newText(hintText),
	}

	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(panelImg),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(10),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 12, Bottom: 12, Left: 16, Right: 16}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{HorizontalPosition: widget.AnchorLayoutPositionStart, VerticalPosition: widget.AnchorLayoutPositionStart}),
		),
	)
	panel.AddChild(p.source)
	panel.AddChild(p.target)
	panel.AddChild(p.status)

	root := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)
	root.AddChild(panel)

	p.UI = &ebitenui.UI{Container: root}
	return p
}

// SetReports replaces the two profile reports.
func (p *InfoPanel) SetReports(source, target string) {
	p.source.Label = "Initial game...\n" + source
	p.target.Label = "Suggested sensitivity...\n" + target
}

// SetStatus shows msg under the reports; an empty msg restores the key hints.
func (p *InfoPanel) SetStatus(msg string) {
	if msg == "" {
		msg = hintText
	}
	p.status.Label = msg
}
