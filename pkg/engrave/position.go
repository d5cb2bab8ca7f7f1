package engrave

import "github.com/staveline/staveline/pkg/music"

// StaffPosition maps a note to its integer staff position for the given
// clef. The bottom staff line is position 2 (so the middle line is 6
// and the top line 10) and each unit is one line or one gap (half a
// staff-line height vertically).
//
// Two notes one octave apart are exactly 7 positions apart. The
// octave-borderline spellings Cb and B# are written in the octave
// neighboring their sounding pitch, so a Cb sits exactly one position
// above the B of the same pitch octave, and a B# one position below
// the C of the same pitch octave.
func StaffPosition(n music.Note, clef music.Clef) int {
	pos := int(n.Label.Letter) + clef.PositionOffset()
	octave := n.Octave + n.WrittenOctaveShift()
	return pos + (octave-clef.BaseOctave())*7
}

// NoteY returns the y coordinate of the note's head center.
func NoteY(n music.Note, clef music.Clef, m Metrics) float64 {
	return m.YForPosition(StaffPosition(n, clef), clef)
}
