package music

import (
	"strings"

	"github.com/staveline/staveline/pkg/errors"
)

// Chord is a non-empty ordered set of simultaneous notes. All notes in
// a chord share a rhythmic value and an x-position; they differ only in
// pitch. Note order is preserved as given, which pins down the
// deterministic within-chord evaluation order of the accidental tracker.
type Chord struct {
	Notes []Note
}

// NewChord builds a chord from notes. Empty chords are malformed input
// and are rejected up front; the layout engine assumes at least one
// note per chord.
func NewChord(notes ...Note) (Chord, error) {
	if len(notes) == 0 {
		return Chord{}, errors.New(errors.ErrCodeInvalidScore, "chord must contain at least one note")
	}
	rv := notes[0].Rhythmic
	for _, n := range notes[1:] {
		if n.Rhythmic != rv {
			return Chord{}, errors.New(errors.ErrCodeInvalidScore,
				"chord notes must share a rhythmic value: %s vs %s", rv, n.Rhythmic)
		}
	}
	return Chord{Notes: notes}, nil
}

// MustChord is NewChord for statically known-good input; it panics on
// malformed chords. Intended for tests and fixtures.
func MustChord(notes ...Note) Chord {
	c, err := NewChord(notes...)
	if err != nil {
		panic(err)
	}
	return c
}

// Rhythmic returns the rhythmic value shared by the chord's notes.
func (c Chord) Rhythmic() RhythmicValue { return c.Notes[0].Rhythmic }

// AveragePitch returns the mean absolute pitch of the chord's notes.
func (c Chord) AveragePitch() float64 {
	var sum int
	for _, n := range c.Notes {
		sum += n.Pitch()
	}
	return float64(sum) / float64(len(c.Notes))
}

// String returns the chord's notes in score-file form, e.g. "C4:8 E4:8".
func (c Chord) String() string {
	parts := make([]string, len(c.Notes))
	for i, n := range c.Notes {
		parts[i] = n.String()
	}
	return strings.Join(parts, " ")
}
