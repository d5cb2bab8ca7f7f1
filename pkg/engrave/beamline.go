package engrave

import "github.com/staveline/staveline/pkg/music"

// BeamLine is the affine function a beam follows across its group,
// plus the side it sits on. It is scoped to one beam group.
type BeamLine struct {
	Slope     float64
	Intercept float64
	Above     bool
}

// YAt evaluates the beam line at x.
func (b BeamLine) YAt(x float64) float64 { return b.Slope*x + b.Intercept }

// SolveBeam computes the beam line for a group whose first chord sits
// at startX and whose chords advance by noteWidth each. Groups of size
// one produce no beam.
//
// The slope's sign follows the group's overall pitch trend but its
// magnitude is fixed for visual consistency. The side comes from the
// group's average position relative to the clef's middle line: groups
// skewing below the middle get stems up and the beam above, and vice
// versa. The intercept anchors the line two staff-line heights clear of
// the note head that comes closest to it at the group's start column.
func SolveBeam(g BeamGroup, clef music.Clef, startX, noteWidth float64, m Metrics) (BeamLine, bool) {
	if !g.Beamed() {
		return BeamLine{}, false
	}

	avgs := make([]float64, len(g.Chords))
	for i, c := range g.Chords {
		avgs[i] = c.AveragePitch()
	}

	// Average of consecutive differences reduces to the endpoint spread.
	trend := (avgs[len(avgs)-1] - avgs[0]) / float64(len(avgs)-1)
	var slope float64
	switch {
	case trend > 0:
		slope = beamSlope
	case trend < 0:
		slope = -beamSlope
	}

	var skew float64
	middle := float64(clef.MiddlePitch())
	for _, a := range avgs {
		skew += a - middle
	}
	above := skew < 0

	// Project each chord's closest head edge onto the start column and
	// keep the extreme: the head the line must clear.
	closest := closestHeadY(g.Chords[0], clef, above, m)
	for i, c := range g.Chords[1:] {
		y := closestHeadY(c, clef, above, m) - slope*float64(i+1)*noteWidth
		if (above && y < closest) || (!above && y > closest) {
			closest = y
		}
	}

	clearance := beamClearanceLines * m.StaffLineHeight
	yAtStart := closest + clearance
	if above {
		yAtStart = closest - clearance
	}

	return BeamLine{
		Slope:     slope,
		Intercept: yAtStart - slope*startX,
		Above:     above,
	}, true
}

// closestHeadY returns the y of the chord's note head nearest the beam
// side: the minimum y when the beam sits above, the maximum when below.
func closestHeadY(c music.Chord, clef music.Clef, above bool, m Metrics) float64 {
	y := NoteY(c.Notes[0], clef, m)
	for _, n := range c.Notes[1:] {
		ny := NoteY(n, clef, m)
		if (above && ny < y) || (!above && ny > y) {
			y = ny
		}
	}
	return y
}
