package music

import "fmt"

// Clef is the staff reading convention. All clef-derived constants are
// centralized here so the layout code never branches on clef identity
// beyond a lookup.
type Clef int

// Supported clefs.
const (
	Treble Clef = iota
	Bass
)

// clefInfo holds the constants a clef contributes to layout.
type clefInfo struct {
	name string
	// positionOffset shifts the letter index so that position 0 lands
	// on the clef's bottom-line reference.
	positionOffset int
	// baseOctave is the octave whose C sits at the clef's reference.
	baseOctave int
	// middlePitch is the absolute pitch of the middle staff line
	// (B4 for treble, D3 for bass), used for stem and beam side decisions.
	middlePitch int
	glyph       string
}

var clefs = [...]clefInfo{
	Treble: {name: "treble", positionOffset: 0, baseOctave: 4, middlePitch: 71, glyph: "𝄞"},
	Bass:   {name: "bass", positionOffset: -2, baseOctave: 2, middlePitch: 50, glyph: "𝄢"},
}

// String returns "treble" or "bass".
func (c Clef) String() string {
	if !c.Valid() {
		return fmt.Sprintf("Clef(%d)", int(c))
	}
	return clefs[c].name
}

// Valid reports whether c is a defined clef.
func (c Clef) Valid() bool { return c == Treble || c == Bass }

// PositionOffset returns the staff-position shift the clef applies to
// the letter index.
func (c Clef) PositionOffset() int { return clefs[c].positionOffset }

// BaseOctave returns the octave anchored at the clef's reference position.
func (c Clef) BaseOctave() int { return clefs[c].baseOctave }

// MiddlePitch returns the absolute pitch of the clef's middle staff line.
func (c Clef) MiddlePitch() int { return clefs[c].middlePitch }

// Glyph returns the Unicode clef symbol.
func (c Clef) Glyph() string { return clefs[c].glyph }

// ParseClef converts a clef name to its value.
func ParseClef(s string) (Clef, error) {
	switch s {
	case "treble":
		return Treble, nil
	case "bass":
		return Bass, nil
	}
	return 0, fmt.Errorf("unknown clef: %q", s)
}
