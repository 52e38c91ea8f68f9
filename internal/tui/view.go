package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/muurk/wordlebuddy/internal/board"
	"github.com/muurk/wordlebuddy/internal/input"
	"github.com/muurk/wordlebuddy/internal/ui"
)

// View renders the board screen
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	width, height := m.Width, m.Height
	if width <= 0 || height <= 0 {
		width, height = DefaultWidth, DefaultHeight
	}

	left := lipgloss.JoinVertical(lipgloss.Left,
		m.renderGrid(),
		"",
		m.renderKeyboard(),
		"",
		m.renderStatus(),
	)
	left = lipgloss.NewStyle().Width(m.layout.leftWidth()).Render(left)

	content := left
	if m.showAnalysis {
		content = lipgloss.JoinHorizontal(lipgloss.Top, left, strings.Repeat(" ", panelGap), m.renderPanel())
	}
	content = lipgloss.NewStyle().
		PaddingLeft(marginLeft).
		PaddingTop(marginTop).
		Render(content)

	return RenderApplicationContainer(content, m.help.View(m.keys), width, height)
}

func (m Model) renderGrid() string {
	rows := make([]string, 0, m.board.Rows())
	for r := 0; r < m.board.Rows(); r++ {
		cells := make([]string, 0, 2*m.board.Cols())
		for c := 0; c < m.board.Cols(); c++ {
			if c > 0 {
				cells = append(cells, strings.Repeat(" ", cellGap))
			}
			cells = append(cells, m.renderCell(r, c))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m Model) renderCell(row, col int) string {
	cell, err := m.board.Cell(row, col)
	if err != nil {
		return ""
	}

	frame := m.effects.Frame(row, col, m.now())

	bg := tileColor(cell.Tag)
	if frame.Background != "" {
		bg = lipgloss.Color(frame.Background)
	}

	border := lipgloss.RoundedBorder()
	if frame.Emphasis {
		border = lipgloss.ThickBorder()
	}

	edge := SubtleColor
	curRow, curCol := m.board.Cursor()
	switch {
	case row == m.selRow && col == m.selCol:
		edge = HighlightColor
	case row == curRow && col == curCol:
		edge = ui.TextColor
	}

	letter := " "
	switch {
	case cell.IsPlaceholder():
		letter = string(board.Placeholder)
	case cell.HasLetter():
		letter = string(cell.Letter)
	}

	return lipgloss.NewStyle().
		Border(border).
		BorderForeground(edge).
		Background(bg).
		Foreground(ui.TextColor).
		Bold(true).
		Width(cellWidth - 2).
		Align(lipgloss.Center).
		Render(letter)
}

func (m Model) renderKeyboard() string {
	tags := m.board.LetterTags()
	lines := make([]string, 0, len(keyboardRows)+1)

	for i, row := range keyboardRows {
		keys := make([]string, 0, len(row))
		for _, k := range row {
			bg := KeyColor
			if k.kind == keyLetter {
				bg = keyColor(tags[k.letter])
			}
			keys = append(keys, keyStyle(keyWidth, bg).Render(k.label))
		}
		lines = append(lines, strings.Repeat(" ", keyboardIndent[i])+strings.Join(keys, strings.Repeat(" ", keyGap)))
	}

	lines = append(lines, strings.Repeat(" ", spaceKeyIndent)+keyStyle(spaceKeyWidth, KeyColor).Render(string(board.Placeholder)))
	return strings.Join(lines, "\n")
}

func keyStyle(width int, bg lipgloss.Color) lipgloss.Style {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Background(bg).
		Foreground(ui.TextColor)
}

func (m Model) renderStatus() string {
	var parts []string

	if m.ctrl.Pending() || m.busy > 0 {
		label := "Asking solver..."
		if m.ctrl.Pending() {
			label = "Checking word..."
		}
		parts = append(parts, m.spinner.View()+" "+label)
	}
	if m.ctrl.State() == input.StateDone {
		parts = append(parts, "Board complete - ctrl+n for a new board")
	}
	if m.status != "" {
		parts = append(parts, StatusStyle.Render(m.status))
	}

	return strings.Join(parts, "\n")
}

func (m Model) renderPanel() string {
	hardcore := "off"
	if m.hardcore {
		hardcore = "on"
	}

	lines := []string{
		PanelTitleStyle.Render("ANALYSIS"),
		"",
		PanelLabelStyle.Render("Suggested Guess:") + " " + PanelValueStyle.Render(m.suggestion),
		PanelLabelStyle.Render("Possible Words Left:") + " " + PanelValueStyle.Render(m.remaining),
		PanelLabelStyle.Render("Hardcore:") + " " + PanelValueStyle.Render(hardcore),
	}
	return PanelStyle.Render(strings.Join(lines, "\n"))
}
