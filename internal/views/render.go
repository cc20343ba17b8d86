package views

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

// paneWidth keeps both panes and the markdown preview on one budget so
// side-by-side views line up.
const paneWidth = 58

type AppData struct {
	Header       string
	LeftPane     string
	RightPane    string
	StatusLine   string
	StatusError  bool
	Footer       string
	Notification string
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	okStatus    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	badStatus   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	paneStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1).Width(paneWidth)
	noticeStyle = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).Padding(0, 1).Foreground(lipgloss.Color("11"))
	footStyle   = lipgloss.NewStyle().Faint(true)
	barStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("13"))
)

// RenderApp lays the frame out top to bottom: header, panes, status,
// notice, footer. Views without side content collapse to a single pane.
func RenderApp(data AppData) string {
	panes := paneStyle.Render(data.LeftPane)
	if strings.TrimSpace(data.RightPane) != "" {
		panes = lipgloss.JoinHorizontal(lipgloss.Top, panes, paneStyle.Render(data.RightPane))
	}

	lines := []string{titleStyle.Render(data.Header), panes}
	if data.StatusLine != "" {
		if data.StatusError {
			lines = append(lines, badStatus.Render(data.StatusLine))
		} else {
			lines = append(lines, okStatus.Render(data.StatusLine))
		}
	}
	if data.Notification != "" {
		lines = append(lines, noticeStyle.Render(data.Notification))
	}
	if data.Footer != "" {
		lines = append(lines, footStyle.Render(data.Footer))
	}
	return strings.Join(lines, "\n")
}

// RenderMarkdown renders task notes wrapped to the pane budget. On any
// renderer failure the raw markdown is shown rather than nothing.
func RenderMarkdown(md string) string {
	if strings.TrimSpace(md) == "" {
		return ""
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(paneWidth-4),
	)
	if err != nil {
		return md
	}
	out, err := renderer.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimSpace(out)
}
