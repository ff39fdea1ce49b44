package app

import "github.com/perthho/dailyReco/internal/session"

// keyHint is one footer help item.
type keyHint struct {
	key  string
	desc string
}

// keyHints returns the footer help for the active screen and state.
func (m Model) keyHints() []keyHint {
	if m.input != inputNone {
		return []keyHint{
			{"Enter", "Save"},
			{"Esc", "Cancel"},
		}
	}

	switch m.screen {
	case ScreenRecord:
		if m.sess.State() == session.StateRecording {
			return []keyHint{
				{"Space", "Stop"},
				{"q", "Quit"},
			}
		}
		return []keyHint{
			{"Space", "Record"},
			{"d", "Length"},
			{"←/→", "Date"},
			{"Esc", "Back"},
			{"q", "Quit"},
		}

	case ScreenEntries:
		return []keyHint{
			{"j/k", "Nav"},
			{"1-5", "Rate"},
			{"n", "Notes"},
			{"b", "Bookmark"},
			{"d", "Delete"},
			{"Esc", "Back"},
			{"q", "Quit"},
		}

	case ScreenStats:
		return []keyHint{
			{"e", "Journal"},
			{"Esc", "Back"},
			{"q", "Quit"},
		}
	}

	return []keyHint{
		{"r", "Record"},
		{"e", "Journal"},
		{"s", "Stats"},
		{"n", "Night mode"},
		{"q", "Quit"},
	}
}
