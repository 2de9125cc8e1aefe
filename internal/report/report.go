// Package report renders command results on the console.
package report

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/oblq/ipmifc/internal/curve"
)

// speedColor returns the color of speed given the max speed.
func speedColor(speed, maxSpeed int) lipgloss.Color {
	switch {
	case speed == 0:
		return lipgloss.Color("245") // grey
	case maxSpeed > 0 && speed >= maxSpeed:
		return lipgloss.Color("196") // red
	case maxSpeed > 0 && float64(speed) >= float64(maxSpeed)*0.5:
		return lipgloss.Color("208") // orange
	default:
		return lipgloss.Color("78") // soft green
	}
}

// Preview writes the temperature/speed table.
// Colors are only emitted when w is a color terminal.
func Preview(w io.Writer, points []curve.Point, maxSpeed int) error {
	r := lipgloss.NewRenderer(w)
	header := r.NewStyle().Bold(true)

	if _, err := fmt.Fprintf(w, "%s\t%s\n", header.Render("Temperature"), header.Render("Fan Speed")); err != nil {
		return err
	}

	for _, p := range points {
		speed := r.NewStyle().Foreground(speedColor(p.Speed, maxSpeed)).
			Render(fmt.Sprintf("%3d%%", p.Speed))
		if _, err := fmt.Fprintf(w, "%3d°C\t\t%s\n", p.Temperature, speed); err != nil {
			return err
		}
	}
	return nil
}

// Info writes the status summary verbatim.
func Info(w io.Writer, summary string) error {
	_, err := fmt.Fprintln(w, summary)
	return err
}
