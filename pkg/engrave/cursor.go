package engrave

import "github.com/staveline/staveline/pkg/music"

// Cursor advances an x position across one clef track of a measure.
// It is a plain value: copying it forks the track, and a fresh cursor
// is created for every measure pass, so repeated layouts of the same
// data are identical.
type Cursor struct {
	X float64
}

// Advance moves the cursor past a chord of the given rhythmic value and
// returns the x at which the chord was placed.
func (c *Cursor) Advance(v music.RhythmicValue, m Metrics) float64 {
	x := c.X
	c.X += m.Advance(v)
	return x
}

// ReconcileBar places a bar line after a measure. The bar sits at the
// farther of the two track cursors so bar lines always align across the
// staves, and both tracks resume from the bar plus a fixed gap. The
// shorter track is deliberately padded out; under-packing one staff is
// the accepted cost of keeping the grand staff synchronized.
func ReconcileBar(treble, bass *Cursor, m Metrics) (barX float64) {
	barX = max(treble.X, bass.X)
	next := barX + m.BarGap()
	treble.X = next
	bass.X = next
	return barX
}
