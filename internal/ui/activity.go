package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/roost/internal/logtail"
)

// activityLines is how much of the activity log the view keeps.
const activityLines = 400

type activityMsg struct {
	entries []logtail.Entry
}

func loadActivityCmd(path string) tea.Cmd {
	if path == "" {
		return nil
	}
	return func() tea.Msg {
		entries, err := logtail.Tail(path, activityLines)
		if err != nil {
			entries = []logtail.Entry{{Level: "ERROR", Message: err.Error()}}
		}
		return activityMsg{entries: entries}
	}
}

func (m Model) handleActivityKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Top):
		m.activityViewport.GotoTop()
		return m, nil
	case key.Matches(msg, m.keys.Bottom):
		m.activityViewport.GotoBottom()
		return m, nil
	}
	var cmd tea.Cmd
	m.activityViewport, cmd = m.activityViewport.Update(msg)
	return m, cmd
}

func (m *Model) updateActivityViewport() {
	if !m.ready {
		return
	}
	follow := m.activityViewport.AtBottom()
	m.activityViewport.SetContent(m.renderActivity())
	if follow {
		m.activityViewport.GotoBottom()
	}
}

// renderActivity renders log entries, newest last.
func (m Model) renderActivity() string {
	styles := m.theme.Styles()
	if len(m.activity) == 0 {
		return styles.FaintText.Render("No activity yet. Log: " + m.logPath)
	}

	lines := make([]string, 0, len(m.activity))
	for _, e := range m.activity {
		var b strings.Builder
		if !e.Time.IsZero() {
			b.WriteString(styles.FaintText.Render(e.Time.Local().Format("15:04:05")))
			b.WriteString(" ")
		}
		if e.Level != "" {
			b.WriteString(styles.LevelStyle(e.Level).Render(padRight(e.Level, 5)))
			b.WriteString(" ")
		}
		b.WriteString(styles.Text.Render(e.Message))
		for _, a := range e.Attrs {
			b.WriteString(" ")
			b.WriteString(styles.AccentText.Render(a.Key + "="))
			b.WriteString(styles.MutedText.Render(a.Value))
		}
		lines = append(lines, b.String())
	}
	return strings.Join(lines, "\n")
}

