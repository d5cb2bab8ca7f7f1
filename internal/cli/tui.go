package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/staveline/staveline/pkg/music"
)

// List styles
var listDimStyle = lipgloss.NewStyle().Foreground(colorDim)

// =============================================================================
// MeasureListModel - Interactive measure browsing
// =============================================================================

// MeasureSelection holds the measure picked in the browser.
type MeasureSelection struct {
	Index   int
	Measure music.Measure
}

// MeasureListModel is the bubbletea model for browsing a score's measures.
type MeasureListModel struct {
	Score    music.Score
	Cursor   int
	Selected *MeasureSelection
	Height   int
	Offset   int
}

// NewMeasureListModel creates a new measure list model.
func NewMeasureListModel(score music.Score) MeasureListModel {
	return MeasureListModel{
		Score:  score,
		Cursor: 0,
		Height: 15,
		Offset: 0,
	}
}

func (m MeasureListModel) Init() tea.Cmd {
	return nil
}

func (m MeasureListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Score.Measures)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			if len(m.Score.Measures) == 0 {
				return m, tea.Quit
			}
			m.Selected = &MeasureSelection{
				Index:   m.Cursor,
				Measure: m.Score.Measures[m.Cursor],
			}
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m MeasureListModel) View() string {
	var b strings.Builder

	title := m.Score.Title
	if title == "" {
		title = "Untitled Score"
	}
	b.WriteString(StyleTitle.Render(title))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Score.Measures) {
		end = len(m.Score.Measures)
	}

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		measure := m.Score.Measures[i]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		beats := trackBeats(measure.Treble)
		if bb := trackBeats(measure.Bass); bb > beats {
			beats = bb
		}

		rows = append(rows, []string{
			cursor,
			fmt.Sprintf("%d", i+1),
			trackSummary(measure.Treble),
			trackSummary(measure.Bass),
			fmt.Sprintf("%.2f", beats),
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "#", "Treble", "Bass", "Beats").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}

			actualIdx := m.Offset + row
			if actualIdx >= len(m.Score.Measures) {
				return lipgloss.NewStyle()
			}
			isCurrent := actualIdx == m.Cursor

			base := lipgloss.NewStyle()
			if col == 4 {
				base = base.Foreground(colorDim)
			}

			if isCurrent {
				if col == 4 {
					return base.Bold(true)
				}
				return base.Foreground(colorCyan).Bold(true)
			}
			if col == 4 {
				return base
			}
			return base.Foreground(colorWhite)
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Score.Measures))))

	return b.String()
}

// trackSummary renders a short preview of one track's chords.
// Long tracks are truncated with an ellipsis.
func trackSummary(chords []music.Chord) string {
	if len(chords) == 0 {
		return "—"
	}
	parts := make([]string, 0, len(chords))
	for _, c := range chords {
		parts = append(parts, c.String())
	}
	s := strings.Join(parts, "  ")
	if len(s) > 40 {
		s = s[:37] + "..."
	}
	return s
}
