package engrave

import (
	"math"

	"github.com/staveline/staveline/pkg/music"
)

const (
	// maxBeamGroup caps the number of chords sharing one beam.
	maxBeamGroup = 4

	// beamProximity is the largest allowed distance, in semitones,
	// between a candidate chord's average pitch and every chord already
	// in the group. One octave.
	beamProximity = 12
)

// BeamGroup is a maximal run of chords that share one beam. A group of
// size one renders no beam line.
type BeamGroup struct {
	Chords []music.Chord
}

// Beamed reports whether the group actually draws a beam.
func (g BeamGroup) Beamed() bool { return len(g.Chords) > 1 }

// GroupBeams partitions a measure's ordered chords into beam groups
// with a single greedy left-to-right pass. A chord joins the current
// group only when the group is under the size cap, both the chord and
// the group share a beamable subdivision, and the chord's average pitch
// stays within an octave of every member already in the group;
// otherwise it starts a new group.
func GroupBeams(chords []music.Chord) []BeamGroup {
	if len(chords) == 0 {
		return nil
	}

	groups := []BeamGroup{{Chords: []music.Chord{chords[0]}}}
	for _, c := range chords[1:] {
		cur := &groups[len(groups)-1]
		if joinable(*cur, c) {
			cur.Chords = append(cur.Chords, c)
			continue
		}
		groups = append(groups, BeamGroup{Chords: []music.Chord{c}})
	}
	return groups
}

// joinable decides whether chord c may extend group g.
func joinable(g BeamGroup, c music.Chord) bool {
	if len(g.Chords) >= maxBeamGroup {
		return false
	}
	first := g.Chords[0].Rhythmic()
	if !first.Beamable() || !c.Rhythmic().Beamable() || c.Rhythmic() != first {
		return false
	}

	// Proximity is checked against every existing member, not just the
	// immediate predecessor, so a group never spans more than an octave
	// of average pitch.
	avg := c.AveragePitch()
	for _, member := range g.Chords {
		if math.Abs(avg-member.AveragePitch()) > beamProximity {
			return false
		}
	}
	return true
}
