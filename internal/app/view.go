package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/perthho/dailyReco/internal/journal"
	"github.com/perthho/dailyReco/internal/session"
)

// View renders the full TUI.
func (m Model) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	var sections []string

	sections = append(sections, m.renderHeader())
	sections = append(sections, m.theme.Divider.Render(strings.Repeat("─", m.width)))

	switch m.screen {
	case ScreenHome:
		sections = append(sections, m.renderHome())
	case ScreenRecord:
		sections = append(sections, m.renderRecord())
	case ScreenEntries:
		sections = append(sections, m.renderEntries())
	case ScreenStats:
		sections = append(sections, m.renderStats())
	}

	sections = append(sections, m.theme.Divider.Render(strings.Repeat("─", m.width)))
	if m.errorMessage != "" {
		sections = append(sections, m.renderErrorBar())
	}
	sections = append(sections, m.renderFooter())

	return strings.Join(sections, "\n")
}

func (m Model) renderHeader() string {
	title := m.theme.Title.Render("DAILYRECO")

	var streak string
	if m.summary.StreakDays > 0 {
		noun := "days"
		if m.summary.StreakDays == 1 {
			noun = "day"
		}
		streak = "  " + m.theme.Streak.Render(
			fmt.Sprintf("%d %s streak", m.summary.StreakDays, noun))
	}

	var conn string
	if !m.connected {
		if m.reconnecting {
			conn = "  " + m.theme.ErrorText.Render("daemon offline")
		} else {
			conn = "  " + m.theme.Dim.Render("connecting...")
		}
	}

	return title + streak + conn
}

func (m Model) renderHome() string {
	night := "off"
	if m.cfg.NightMode {
		night = "on"
	}

	lines := []string{
		"",
		"  " + m.theme.Status.Render("One short video journal entry a day."),
		"",
		m.menuLine("r", "Record today's entry"),
		m.menuLine("e", fmt.Sprintf("Journal (%d entries)", m.store.Len())),
		m.menuLine("s", "Stats"),
		m.menuLine("n", "Night mode: "+night),
		m.menuLine("q", "Quit"),
	}
	return m.padToContent(lines)
}

func (m Model) menuLine(key, desc string) string {
	return "  " + m.theme.FooterKey.Render("["+key+"]") + " " + desc
}

func (m Model) renderRecord() string {
	var lines []string
	lines = append(lines, "")

	// Date and duration picker
	picker := "  " + m.theme.Dim.Render("Date:") + " " + m.date +
		"   " + m.theme.Dim.Render("Length:") + " " + durationLabel(durations[m.durationIdx])
	lines = append(lines, picker)
	lines = append(lines, "")

	// Status line
	switch m.sess.State() {
	case session.StateRecording:
		dot := m.theme.Recording.Render("● REC")
		countdown := m.theme.Countdown.Render(m.sess.CountdownLabel())
		lines = append(lines, "  "+dot+"  "+countdown)
	case session.StateDeviceReady:
		lines = append(lines, "  "+m.theme.Ready.Render("○ READY")+"  "+
			m.theme.Status.Render(m.statusText))
	case session.StateDeviceFailed:
		lines = append(lines, "  "+m.theme.Error.Render("✗ "+m.statusText))
		if reason := m.sess.FailReason(); reason != "" {
			lines = append(lines, "  "+m.theme.Dim.Render(reason))
		}
	default:
		lines = append(lines, "  "+m.theme.Status.Render(m.statusText))
	}
	lines = append(lines, "")

	// Live transcript
	textWidth := max(20, m.width-4)
	if text := strings.Join(m.sess.FinalSegments(), " "); text != "" {
		for _, wl := range wrapText(text, textWidth) {
			lines = append(lines, "  "+wl)
		}
	}
	if interim := m.sess.Interim(); interim != "" {
		for _, wl := range wrapText(interim+"▌", textWidth) {
			lines = append(lines, "  "+m.theme.Interim.Render(wl))
		}
	}

	return m.padToContent(lines)
}

func (m Model) renderEntries() string {
	entries := m.store.List()
	var lines []string
	lines = append(lines, "")

	if len(entries) == 0 {
		lines = append(lines, "  "+m.theme.Dim.Render("No entries yet. Press Esc, then r to record one."))
		return m.padToContent(lines)
	}

	for i, e := range entries {
		selected := i == m.selected
		line := m.renderEntryLine(e, selected)
		lines = append(lines, truncateToWidth(line, m.width))

		if selected {
			lines = append(lines, m.renderEntryDetail(e)...)
		}
	}

	if m.confirmDelete {
		lines = append(lines, "")
		lines = append(lines, "  "+m.theme.Error.Render("Delete this entry? (y/n)"))
	}
	if m.input == inputNotes {
		lines = append(lines, "")
		lines = append(lines, "  "+m.theme.Selected.Render("Notes: ")+m.inputBuf+"▌")
	}
	if m.input == inputBookmark {
		lines = append(lines, "")
		lines = append(lines, "  "+m.theme.Selected.Render("Bookmark (seconds): ")+m.inputBuf+"▌")
	}

	return m.padToContent(lines)
}

func (m Model) renderEntryLine(e journal.Entry, selected bool) string {
	prefix := "  "
	if selected {
		prefix = m.theme.Selected.Render("> ")
	}

	date := e.Date
	if selected {
		date = m.theme.Selected.Render(date)
	}

	var filler string
	if fa := e.FillerAnalysis; fa != nil {
		filler = m.theme.Dim.Render(fmt.Sprintf("%d fillers (%.1f%%)",
			fa.TotalFillerCount, fa.FillerRatioPercent))
	}

	parts := []string{date, m.theme.Dim.Render(e.Duration), m.renderStars(e.Rating)}
	if filler != "" {
		parts = append(parts, filler)
	}
	if e.Bookmark != nil {
		parts = append(parts, m.theme.Bookmark.Render(
			fmt.Sprintf("⚑ %s", formatSeconds(*e.Bookmark))))
	}

	return prefix + strings.Join(parts, "  ")
}

func (m Model) renderEntryDetail(e journal.Entry) []string {
	var lines []string
	textWidth := max(20, m.width-8)

	if e.Notes != "" {
		for _, wl := range wrapText(e.Notes, textWidth) {
			lines = append(lines, "      "+m.theme.Status.Render(wl))
		}
	}
	if e.Transcription != "" {
		excerpt := e.Transcription
		const maxExcerpt = 200
		if runes := []rune(excerpt); len(runes) > maxExcerpt {
			excerpt = string(runes[:maxExcerpt]) + "…"
		}
		for _, wl := range wrapText(excerpt, textWidth) {
			lines = append(lines, "      "+m.theme.Dim.Render(wl))
		}
	}
	lines = append(lines, "      "+m.theme.Timestamp.Render(
		e.Timestamp.Format("Mon Jan 2 15:04")))
	return lines
}

func (m Model) renderStars(rating int) string {
	var b strings.Builder
	for i := 1; i <= 5; i++ {
		if i <= rating {
			b.WriteString(m.theme.Star.Render("★"))
		} else {
			b.WriteString(m.theme.StarEmpty.Render("☆"))
		}
	}
	return b.String()
}

func (m Model) renderStats() string {
	s := m.summary
	noun := "days"
	if s.StreakDays == 1 {
		noun = "day"
	}

	lines := []string{
		"",
		"  " + m.theme.Dim.Render("Entries:") + fmt.Sprintf("          %d", s.TotalEntries),
		"  " + m.theme.Dim.Render("Current streak:") + "   " +
			m.theme.Streak.Render(fmt.Sprintf("%d %s", s.StreakDays, noun)),
		"  " + m.theme.Dim.Render("Avg filler words:") + fmt.Sprintf(" %.1f per entry", s.AverageFillerCount),
	}
	return m.padToContent(lines)
}

func (m Model) renderErrorBar() string {
	return m.theme.Error.Render("Error: ") + m.theme.ErrorText.Render(m.errorMessage)
}

func (m Model) renderFooter() string {
	var parts []string
	for _, h := range m.keyHints() {
		parts = append(parts, m.theme.FooterKey.Render(h.key)+m.theme.FooterDesc.Render(" "+h.desc))
	}
	return strings.Join(parts, "  ")
}

// padToContent pads lines to fill the space between header and footer.
func (m Model) padToContent(lines []string) string {
	// Reserve: header(1) + dividers(2) + error(1) + footer(1)
	want := max(3, m.height-5)
	for len(lines) < want {
		lines = append(lines, "")
	}
	if len(lines) > want {
		lines = lines[:want]
	}
	return strings.Join(lines, "\n")
}

// Helpers

func formatSeconds(secs float64) string {
	total := int(secs)
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}

// truncateToWidth cuts s to width cells, escape-sequence aware, so styled
// lines never lose a closing reset.
func truncateToWidth(s string, width int) string {
	if lipgloss.Width(s) <= width {
		return s
	}
	return ansi.Truncate(s, width, "…")
}

func wrapText(text string, width int) []string {
	if width <= 0 {
		return []string{text}
	}

	var lines []string
	for _, paragraph := range strings.Split(text, "\n") {
		var current string
		for _, word := range strings.Fields(paragraph) {
			if current == "" {
				current = word
			} else if len(current)+1+len(word) <= width {
				current += " " + word
			} else {
				lines = append(lines, current)
				current = word
			}
		}
		if current != "" {
			lines = append(lines, current)
		} else {
			lines = append(lines, "")
		}
	}
	if len(lines) == 0 {
		return []string{""}
	}
	return lines
}
