package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/staveline/staveline/pkg/music"
	"github.com/staveline/staveline/pkg/scorefile"
)

// inspectCommand creates the inspect command for examining score files.
func (c *CLI) inspectCommand() *cobra.Command {
	var interactive bool

	cmd := &cobra.Command{
		Use:   "inspect [score.toml]",
		Short: "Print score statistics without rendering",
		Long: `Print score statistics without rendering.

The inspect command parses a score file and reports its title, key
signature, and measure contents. Use --interactive to browse measures
in a scrollable list.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runInspect(args[0], interactive)
		},
	}

	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "browse measures interactively")

	return cmd
}

// runInspect loads the score and prints its summary.
func (c *CLI) runInspect(input string, interactive bool) error {
	score, err := scorefile.Load(input)
	if err != nil {
		return fmt.Errorf("load score %s: %w", input, err)
	}

	if interactive {
		return browseMeasures(score)
	}

	title := score.Title
	if title == "" {
		title = "(untitled)"
	}
	printKeyValue("Title", title)
	printKeyValue("Key", keyString(score.Key))
	printKeyValue("Measures", fmt.Sprintf("%d", len(score.Measures)))
	printKeyValue("Notes", fmt.Sprintf("%d", score.NoteCount()))
	printKeyValue("Duration", fmt.Sprintf("%.2f beats", scoreBeats(score)))

	for i, m := range score.Measures {
		printDetail("measure %d: %d treble, %d bass", i+1, len(m.Treble), len(m.Bass))
		if tb, bb := trackBeats(m.Treble), trackBeats(m.Bass); tb != bb {
			printWarning("measure %d: treble spans %.2f beats, bass %.2f", i+1, tb, bb)
		}
	}

	printNextStep("Render it", fmt.Sprintf("%s engrave %s", appName, input))
	return nil
}

// browseMeasures runs the interactive measure list and prints the selection.
func browseMeasures(score music.Score) error {
	model := NewMeasureListModel(score)
	final, err := tea.NewProgram(model).Run()
	if err != nil {
		return fmt.Errorf("interactive browser: %w", err)
	}

	m, ok := final.(MeasureListModel)
	if !ok || m.Selected == nil {
		return nil
	}

	printInfo("Measure %d", m.Selected.Index+1)
	printDetail("treble: %s", chordList(m.Selected.Measure.Treble))
	printDetail("bass:   %s", chordList(m.Selected.Measure.Bass))
	return nil
}

// keyString describes a key signature, e.g. "2 sharps (F#, C#)".
func keyString(k music.Key) string {
	letters, acc := k.Altered()
	if len(letters) == 0 {
		return "C (no accidentals)"
	}

	names := make([]string, len(letters))
	for i, l := range letters {
		names[i] = l.String() + acc.String()
	}

	word := "sharps"
	if acc == music.Flat {
		word = "flats"
	}
	if len(letters) == 1 {
		word = strings.TrimSuffix(word, "s")
	}
	return fmt.Sprintf("%d %s (%s)", len(letters), word, strings.Join(names, ", "))
}

// scoreBeats returns the score's duration counting each measure at the
// length of its longer track.
func scoreBeats(s music.Score) float64 {
	var total float64
	for _, m := range s.Measures {
		tb, bb := trackBeats(m.Treble), trackBeats(m.Bass)
		if bb > tb {
			tb = bb
		}
		total += tb
	}
	return total
}

// trackBeats sums the rhythmic values of a chord sequence.
func trackBeats(chords []music.Chord) float64 {
	var beats float64
	for _, c := range chords {
		beats += c.Rhythmic().Beats()
	}
	return beats
}

// chordList joins chords for display, e.g. "C4:8 E4:8 | G4:4".
func chordList(chords []music.Chord) string {
	if len(chords) == 0 {
		return "(empty)"
	}
	parts := make([]string, len(chords))
	for i, c := range chords {
		parts[i] = c.String()
	}
	return strings.Join(parts, " | ")
}
