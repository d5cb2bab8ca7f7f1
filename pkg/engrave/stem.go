package engrave

import (
	"github.com/staveline/staveline/pkg/music"
	"github.com/staveline/staveline/pkg/render"
)

// Staff positions of the bottom and middle staff lines. The same
// positions hold for both clefs because the clef offset is already
// folded into StaffPosition.
const (
	bottomLinePosition = 2
	middleLinePosition = 6
)

// StemFor computes the stem for an unbeamed note. Whole notes carry no
// stem. Notes at or above the middle staff line get a downward stem
// attached on the head's left side; lower notes get an upward stem on
// the right side. Free stems are a fixed three staff-line heights long.
func StemFor(n music.Note, headX, headY float64, clef music.Clef, m Metrics) (render.Stem, bool) {
	if !n.Rhythmic.HasStem() {
		return render.Stem{}, false
	}
	if StaffPosition(n, clef) >= middleLinePosition {
		// Stem down, left side.
		return render.Stem{
			X:  headX - m.HeadRX(),
			Y1: headY,
			Y2: headY + m.StemLength(),
		}, true
	}
	return render.Stem{
		X:  headX + m.HeadRX(),
		Y1: headY,
		Y2: headY - m.StemLength(),
	}, true
}

// BeamedStem computes the stem for a note inside a beam group. The
// second endpoint is pinned to the beam line at the stem's x, and the
// attachment side follows from where that endpoint lies: below the head
// means a downward stem on the left, above means upward on the right.
func BeamedStem(headX, headY, stemEndY float64, m Metrics) render.Stem {
	if stemEndY > headY {
		return render.Stem{X: headX - m.HeadRX(), Y1: headY, Y2: stemEndY}
	}
	return render.Stem{X: headX + m.HeadRX(), Y1: headY, Y2: stemEndY}
}
