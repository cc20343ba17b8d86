package update

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/prodo-app/prodo/internal/stats"
)

func (m Model) handleStatsKey(msg tea.KeyMsg) Model {
	if m.Stats == nil {
		return m
	}
	switch msg.String() {
	case "w":
		m.applyPeriod(stats.PeriodWeek)
	case "m":
		m.applyPeriod(stats.PeriodMonth)
	case "y":
		m.applyPeriod(stats.PeriodYear)
	case "h", "left":
		m.StatsResult = m.Stats.Previous(m.ctx())
		m.Status = StatusBar{Text: "period: " + m.StatsResult.PeriodLabel, IsError: false}
	case "l", "right":
		m.StatsResult = m.Stats.Next(m.ctx())
		m.Status = StatusBar{Text: "period: " + m.StatsResult.PeriodLabel, IsError: false}
	}
	return m
}

func (m *Model) applyPeriod(p stats.Period) {
	res, changed := m.Stats.SetPeriod(m.ctx(), p)
	if !changed {
		return
	}
	m.StatsResult = res
	m.Status = StatusBar{Text: "period: " + res.PeriodLabel, IsError: false}
}

func (m *Model) refreshStats() {
	if m.Stats == nil {
		return
	}
	m.StatsResult = m.Stats.Refresh(m.ctx())
}
