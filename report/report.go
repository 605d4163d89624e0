// Package report renders profiles and conversion results as text.
package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/milk9111/sensconv/sensitivity"
)

// Profile formats the values a player needs to compare two games.
func Profile(p *sensitivity.Profile) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%-25s%s, %s\n", "Game:", p.Name(), p.Engine())
	if p.Convertible() {
		fmt.Fprintf(&b, "%-25s%4.5f\n", "cm/360:", p.RealSensitivityCm())
		fmt.Fprintf(&b, "%-25s%4.5f\n", "in/360:", p.RealSensitivityIn())
	} else {
		fmt.Fprintf(&b, "%-25s%s\n", "cm/360:", "n/a")
	}
	fmt.Fprintf(&b, "%-25s%4.5f\n", "DPI:", p.DPI())
	fmt.Fprintf(&b, "%-25s%2.3f\n", "Game Sensitivity:", p.InGameSens())
	return b.String()
}

// Conversion writes the source profile followed by the suggested target
// and the target sensitivity it replaces.
func Conversion(w io.Writer, res sensitivity.Result) error {
	var b strings.Builder
	b.WriteString("Initial game...\n")
	b.WriteString(Profile(res.Source))
	b.WriteString("\nSuggested sensitivity...\n")
	b.WriteString(Profile(res.Target))
	if res.Changed {
		fmt.Fprintf(&b, "%-25s%2.3f -> %2.3f\n", "Current Sensitivity:", res.Previous, res.Target.InGameSens())
	} else {
		b.WriteString("(already matched, nothing changed)\n")
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// Suggested is the bare value worth putting on a clipboard.
func Suggested(res sensitivity.Result) string {
	return fmt.Sprintf("%.3f", res.Target.InGameSens())
}

// EngineRow is one line of the engine listing.
type EngineRow struct {
	ID    string
	Yaw   float64
	Games []string
	Notes string
}

// Engines writes an aligned table of engines.
func Engines(w io.Writer, rows []EngineRow) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ENGINE\tYAW\tGAMES\tNOTES")
	for _, r := range rows {
		yaw := "unsupported"
		if r.Yaw > 0 {
			yaw = fmt.Sprintf("%.5f", r.Yaw)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", r.ID, yaw, strings.Join(r.Games, ", "), r.Notes)
	}
	return tw.Flush()
}

// Calibration reports a derived yaw coefficient.
func Calibration(w io.Writer, ref *sensitivity.Profile, dpi, pointer, sens, yaw float64) error {
	_, err := fmt.Fprintf(w, "%-25s%s, %s (%.5f cm/360)\n%-25s%.3f @ %g dpi x%g\n%-25s%.5f\n",
		"Reference:", ref.Name(), ref.Engine(), ref.RealSensitivityCm(),
		"Known sensitivity:", sens, dpi, pointer,
		"Derived yaw:", yaw)
	return err
}
