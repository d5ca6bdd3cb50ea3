package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/fortuna-events/crosslink/pkg/entity"
)

var (
	colorGreen  = lipgloss.Color("35")  // success
	colorYellow = lipgloss.Color("220") // warnings
	colorRed    = lipgloss.Color("167") // errors
	colorBlue   = lipgloss.Color("75")  // links
	colorDim    = lipgloss.Color("240") // muted text
)

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)

	styleLink = lipgloss.NewStyle().Foreground(colorBlue).Underline(true)
	styleDim  = lipgloss.NewStyle().Foreground(colorDim)
)

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconPending = "·"
	iconArrow   = "→"
)

// printSuccess prints a success message.
func printSuccess(format string, args ...any) {
	fmt.Println(styleIconSuccess.Render(iconSuccess) + " " + fmt.Sprintf(format, args...))
}

// printError prints an error message.
func printError(format string, args ...any) {
	fmt.Println(styleIconError.Render(iconError) + " " + fmt.Sprintf(format, args...))
}

// printWarning prints a warning message.
func printWarning(format string, args ...any) {
	fmt.Println(styleIconWarning.Render("!") + " " + fmt.Sprintf(format, args...))
}

// appStyle returns the id style for an entity, filled with its application's
// preview color so the board matches the PNG preview.
func appStyle(e *entity.Entity) lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(e.App.Color()))
}

// printBoard prints one line per entity: app-colored id, status icon, and the
// resolved link when present. Entities appear in file order.
func printBoard(g *entity.Graph) {
	for _, e := range g.Entities() {
		icon := styleDim.Render(iconPending)
		detail := styleDim.Render(e.Status.String())
		switch e.Status {
		case entity.StatusResolved:
			icon = styleIconSuccess.Render(iconSuccess)
			detail = styleLink.Render(e.Link)
		case entity.StatusError:
			icon = styleIconError.Render(iconError)
		}
		fmt.Printf("%s %s %s %s\n", icon, appStyle(e).Render(e.ID), styleDim.Render(iconArrow), detail)
	}
}
