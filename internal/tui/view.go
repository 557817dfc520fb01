package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"

	"github.com/mamadbah2/foodboard/internal/domain/models"
)

const defaultWidth = 80

func (m Model) View() string {
	width := m.width
	if width <= 0 {
		width = defaultWidth
	}

	header := titleStyle.Render("Foodboard") + " " + mutedStyle.Render(fmt.Sprintf("%d dishes", len(m.foods)))
	if m.inflight > 0 {
		header += "  " + m.spinner.View() + mutedStyle.Render("syncing")
	}

	var body string
	switch {
	case m.view.EditModalOpen:
		body = m.editForm.view(width, m.editBusy())
	case m.view.ModalOpen:
		body = m.addForm.view(width, m.adding)
	default:
		body = m.renderList(width)
	}

	status := statusStyle.Render(m.status)
	if m.err != nil {
		status = errorStyle.Render("Error: " + m.err.Error())
	}

	helpView := m.help.View(m.keys)
	if m.view.AnyModalOpen() {
		helpView = m.help.View(formKeys)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		"",
		body,
		"",
		status,
		lipgloss.NewStyle().PaddingLeft(1).Render(helpView),
	)
}

func (m Model) renderList(width int) string {
	if len(m.foods) == 0 {
		return mutedStyle.Render("No dishes yet. Press a to add one.")
	}

	rows := make([]string, 0, len(m.foods))
	for i, f := range m.foods {
		rows = append(rows, m.renderRow(f, i == m.cursor, width))
	}
	return strings.Join(rows, "\n")
}

func (m Model) renderRow(f models.Food, selected bool, width int) string {
	marker := "  "
	name := nameStyle.Render(f.Name)
	if selected {
		marker = selectedStyle.Render("› ")
		name = selectedStyle.Render(f.Name)
	}

	availability := availableStyle.Render("● available")
	if !f.Available {
		availability = unavailableStyle.Render("○ unavailable")
	}

	line := fmt.Sprintf("%s%s  %s  %s", marker, name, priceStyle.Render(models.FormatPrice(f.Price)), availability)
	if m.sync.Pending(f.ID) {
		line += mutedStyle.Render("  …")
	}

	if f.Description != "" {
		limit := width - 4
		if limit < 10 {
			limit = 10
		}
		desc := truncate.StringWithTail(f.Description, uint(limit), "…")
		line += "\n    " + mutedStyle.Render(desc)
	}
	return line
}
