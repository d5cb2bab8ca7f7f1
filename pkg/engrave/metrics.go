// Package engrave implements the layout engine: the pure geometric and
// musical computations that turn a sequence of labeled notes and chords
// into staff positions, note-head placement, stem direction, accidental
// display, and beam grouping. The engine produces final geometry only;
// drawing is delegated to the sinks in pkg/render/sink.
package engrave

import "github.com/staveline/staveline/pkg/music"

// Sizing ratios. All vertical geometry derives from the overall frame
// height; the documented proportions are 20% padding, 20% per staff,
// 20% inter-staff gap, note gap of five staff-line heights per quarter
// beat, and a brace occupying 5% of the frame width.
const (
	paddingRatio = 0.20
	staffRatio   = 0.20
	gapRatio     = 0.20

	// noteGapRatio scales the horizontal advance per quarter-note beat,
	// expressed in staff-line heights.
	noteGapRatio = 5.0

	braceWidthRatio = 0.05

	// headWidthRatio is the note-head half-width in staff-line heights.
	// Stems attach at exactly this offset from the head center.
	headWidthRatio = 0.65

	// headHeightRatio is the note-head half-height in staff-line heights.
	headHeightRatio = 0.5

	// headRotation tilts filled and half note heads for the customary
	// engraved look; whole notes stay upright.
	headRotation = -20.0

	// stemLengthLines is the free (unbeamed) stem length in staff-line heights.
	stemLengthLines = 3.0

	// beamClearanceLines is the minimum distance between a beam and the
	// closest note head at the group's start column, in staff-line heights.
	beamClearanceLines = 2.0

	// beamSlope is the fixed visual slope magnitude of a beam. The sign
	// follows the group's pitch trend; the magnitude never varies.
	beamSlope = 0.20

	// strokeRatio derives the line stroke width from the staff-line height.
	strokeRatio = 0.1
)

// Metrics converts the abstract staff-position space into frame
// coordinates. All quantities derive from the frame height by fixed
// ratios, so two layouts with the same height are geometrically
// identical regardless of content.
type Metrics struct {
	Height          float64
	Padding         float64
	StaffHeight     float64
	StaffGap        float64
	StaffLineHeight float64
	NoteGap         float64 // horizontal advance per quarter-note beat
	StrokeWidth     float64
}

// NewMetrics derives metrics from an overall frame height.
func NewMetrics(height float64) Metrics {
	staffHeight := height * staffRatio
	lineHeight := staffHeight / 4
	return Metrics{
		Height:          height,
		Padding:         height * paddingRatio,
		StaffHeight:     staffHeight,
		StaffGap:        height * gapRatio,
		StaffLineHeight: lineHeight,
		NoteGap:         lineHeight * noteGapRatio,
		StrokeWidth:     lineHeight * strokeRatio,
	}
}

// StaffTop returns the y of the clef's top staff line. The treble staff
// sits below the top padding; the bass staff follows after the
// inter-staff gap.
func (m Metrics) StaffTop(clef music.Clef) float64 {
	if clef == music.Bass {
		return m.Padding + m.StaffHeight + m.StaffGap
	}
	return m.Padding
}

// StaffBottom returns the y of the clef's bottom staff line, the
// reference for staff position 0.
func (m Metrics) StaffBottom(clef music.Clef) float64 {
	return m.StaffTop(clef) + m.StaffHeight
}

// MiddleLineY returns the y of the clef's middle staff line.
func (m Metrics) MiddleLineY(clef music.Clef) float64 {
	return m.StaffTop(clef) + 2*m.StaffLineHeight
}

// YForPosition converts a staff position to a y coordinate. Each unit
// is half a staff-line height and higher positions (higher pitches) map
// to smaller y. Position 2 sits on the bottom staff line in both clefs
// (E4 for treble, G2 for bass), which puts the clef's base C one ledger
// step below the staff.
func (m Metrics) YForPosition(pos int, clef music.Clef) float64 {
	return m.StaffBottom(clef) - float64(pos-bottomLinePosition)*m.StaffLineHeight/2
}

// HeadRX returns the note-head horizontal radius.
func (m Metrics) HeadRX() float64 { return m.StaffLineHeight * headWidthRatio }

// HeadRY returns the note-head vertical radius.
func (m Metrics) HeadRY() float64 { return m.StaffLineHeight * headHeightRatio }

// StemLength returns the free stem length.
func (m Metrics) StemLength() float64 { return m.StaffLineHeight * stemLengthLines }

// Advance returns the horizontal space a chord of the given rhythmic
// value occupies: wider values get proportionally more room.
func (m Metrics) Advance(v music.RhythmicValue) float64 {
	return m.NoteGap * v.Beats()
}

// BarGap returns the fixed space between a bar line and the first chord
// of the next measure.
func (m Metrics) BarGap() float64 { return m.StaffLineHeight * 2 }
