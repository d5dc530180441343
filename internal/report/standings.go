// Package report renders the endgame scoreboard for console output.
package report

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"

	"RiskCockpit/internal/model"
)

// RenderStandings formats final standings as a text table, best first.
func RenderStandings(standings []model.Standing) string {
	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"#", "Team", "Score", "RAROC", "Archetype"})
	for _, s := range standings {
		t.AppendRow(table.Row{
			s.Rank,
			s.Team,
			fmt.Sprintf("%.1f", s.Score),
			fmt.Sprintf("%.1f%%", s.RAROC),
			s.Archetype,
		})
	}
	return t.Render()
}
