package cli

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/roach88/heroes/internal/hero"
)

var heroHeaders = []string{"ID", "NAME", "BRAND", "POWER"}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

// renderHeroes renders records as a bordered table.
func renderHeroes(records []hero.Record) string {
	rows := make([][]string, len(records))
	for i, r := range records {
		rows[i] = heroRow(r)
	}
	return table.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers(heroHeaders...).
		Rows(rows...).
		String()
}
