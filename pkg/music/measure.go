package music

// Measure carries one ordered chord sequence per clef. The two tracks
// are laid out independently within the measure and reconciled at the
// bar line.
type Measure struct {
	Treble []Chord
	Bass   []Chord
}

// Track returns the measure's chord sequence for the given clef.
func (m Measure) Track(c Clef) []Chord {
	if c == Bass {
		return m.Bass
	}
	return m.Treble
}

// ChordCount returns the total number of chords across both tracks.
func (m Measure) ChordCount() int { return len(m.Treble) + len(m.Bass) }

// Score is a titled sequence of measures in a single key.
type Score struct {
	Title    string
	Key      Key
	Measures []Measure
}

// NoteCount returns the total number of notes in the score.
func (s Score) NoteCount() int {
	var n int
	for _, m := range s.Measures {
		for _, c := range m.Treble {
			n += len(c.Notes)
		}
		for _, c := range m.Bass {
			n += len(c.Notes)
		}
	}
	return n
}
