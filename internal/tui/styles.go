package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/muurk/wordlebuddy/internal/board"
	"github.com/muurk/wordlebuddy/internal/effect"
	"github.com/muurk/wordlebuddy/internal/ui"
	"github.com/muurk/wordlebuddy/internal/version"
)

// Application branding constants
const (
	AppName   = "WORDLEBUDDY"
	GitHubURL = "github.com/muurk/wordlebuddy"
)

// Default terminal size used until the first tea.WindowSizeMsg arrives
const (
	DefaultWidth  = 100
	DefaultHeight = 40
)

// Tile colours
var (
	GrayTile   = lipgloss.Color("#3A3A3C")
	YellowTile = lipgloss.Color("#B59F3B")
	GreenTile  = lipgloss.Color("#538D4E")
	EmptyTile  = lipgloss.Color("#121213")
	KeyColor   = lipgloss.Color("#818384")
	FlashTile  = lipgloss.Color(effect.FlashColor)

	BorderColor    = ui.PrimaryColor
	SubtleColor    = ui.MutedColor
	HighlightColor = ui.SuccessColor
)

var (
	// PanelStyle frames the analysis panel
	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(BorderColor).
			Padding(0, 1)

	PanelTitleStyle = lipgloss.NewStyle().
			Foreground(ui.PrimaryColor).
			Bold(true)

	PanelLabelStyle = lipgloss.NewStyle().
			Foreground(SubtleColor)

	PanelValueStyle = lipgloss.NewStyle().
			Foreground(ui.TextColor).
			Bold(true)

	StatusStyle = lipgloss.NewStyle().
			Foreground(ui.WarningColor)

	SpinnerStyle = lipgloss.NewStyle().
			Foreground(ui.PrimaryColor)
)

// tileColor maps a tag to its tile background
func tileColor(t board.Tag) lipgloss.Color {
	switch t {
	case board.TagGray:
		return GrayTile
	case board.TagYellow:
		return YellowTile
	case board.TagGreen:
		return GreenTile
	default:
		return EmptyTile
	}
}

// keyColor maps the best tag seen for a letter to its key background
func keyColor(t board.Tag) lipgloss.Color {
	if t == board.TagNone {
		return KeyColor
	}
	return tileColor(t)
}

// BuildHeaderContent creates header content with app name and GitHub URL
func BuildHeaderContent() string {
	left := lipgloss.NewStyle().
		Foreground(ui.TextColor).
		Bold(true).
		Render(AppName + " v" + version.Version)

	right := lipgloss.NewStyle().
		Foreground(SubtleColor).
		Render(GitHubURL)

	return lipgloss.JoinHorizontal(lipgloss.Top, left, " ", right)
}

// RenderApplicationContainer wraps the board screen in the bordered frame
// with a one-line header and a help footer.
//
// The frame has a fixed geometry that hit-testing relies on: the outer border
// takes one column on the left and one row on top, and the header takes two
// rows (text and rule). Content therefore starts at column containerLeft, row
// containerTop.
func RenderApplicationContainer(content string, footerText string, terminalWidth int, terminalHeight int) string {
	headerStyle := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(BorderColor).
		Width(terminalWidth - 2)

	footerStyle := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderTop(true).
		BorderForeground(BorderColor).
		Width(terminalWidth - 2)

	inner := lipgloss.JoinVertical(
		lipgloss.Left,
		headerStyle.Render(BuildHeaderContent()),
		lipgloss.NewStyle().Width(terminalWidth-2).Render(content),
		footerStyle.Render(lipgloss.NewStyle().Foreground(SubtleColor).Render(footerText)),
	)

	bordered := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(BorderColor).
		Width(terminalWidth - 2).
		AlignVertical(lipgloss.Top).
		Render(inner)

	return lipgloss.Place(terminalWidth, terminalHeight, lipgloss.Left, lipgloss.Top, bordered)
}
