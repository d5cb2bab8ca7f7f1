package engrave

import "github.com/staveline/staveline/pkg/music"

// AccidentalState tracks which accidental is currently in force for
// each letter within a measure. It is an explicit value threaded
// through the layout pass, never shared state: each measure and clef
// pass starts from a fresh state seeded by the key signature.
type AccidentalState map[music.Letter]music.Accidental

// NewAccidentalState returns the state at the start of a measure: each
// letter carries the key signature's accidental, or none.
func NewAccidentalState(key music.Key) AccidentalState {
	s := make(AccidentalState, 7)
	for _, l := range music.Letters() {
		if a := key.Accidental(l); a != music.NoAccidental {
			s[l] = a
		}
	}
	return s
}

// effective normalizes an accidental for comparison: an absent
// accidental and an explicit natural leave the pitch equally unaltered,
// so both compare as Natural.
func effective(a music.Accidental) music.Accidental {
	if a == music.NoAccidental {
		return music.Natural
	}
	return a
}

// Display decides which accidental, if any, must be drawn for the note
// given the state in force. A symbol is drawn only when the note's
// spelling differs from what the state already implies; a note with no
// accidental whose letter is currently altered is drawn with an
// explicit natural.
func (s AccidentalState) Display(n music.Note) (music.Accidental, bool) {
	inForce := effective(s[n.Label.Letter])
	want := effective(n.Label.Accidental)
	if want == inForce {
		return music.NoAccidental, false
	}
	return want, true
}

// Apply returns the state after a whole chord has been rendered. Chord
// members are evaluated against the pre-chord state and then applied as
// a batch: within the chord the given note order decides, with the last
// write winning for repeated letters. The receiver is not modified.
func (s AccidentalState) Apply(c music.Chord) AccidentalState {
	next := make(AccidentalState, len(s)+len(c.Notes))
	for l, a := range s {
		next[l] = a
	}
	for _, n := range c.Notes {
		next[n.Label.Letter] = effective(n.Label.Accidental)
	}
	return next
}
