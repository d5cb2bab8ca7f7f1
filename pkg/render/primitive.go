// Package render defines the drawable primitives the layout engine
// produces and shared format-conversion helpers. Primitives are final
// geometry: positions, sizes, and orientation, with no behavior. The
// sinks in pkg/render/sink turn them into SVG, PNG, PDF, or JSON.
package render

// Point is a coordinate in frame space. The origin is the top-left
// corner; y grows downward, so higher pitches map to smaller y.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// NoteHead is an ellipse at a note's staff position. Whole and half
// notes are drawn as outlines; shorter values are filled. Rotation is
// in degrees around the center.
type NoteHead struct {
	Center   Point   `json:"center"`
	RX       float64 `json:"rx"`
	RY       float64 `json:"ry"`
	Filled   bool    `json:"filled"`
	Rotation float64 `json:"rotation,omitempty"`
}

// Stem is a vertical line attached to a note head. Y1 is the head end,
// Y2 the free end (or the beam attachment point for beamed notes).
type Stem struct {
	X  float64 `json:"x"`
	Y1 float64 `json:"y1"`
	Y2 float64 `json:"y2"`
}

// Down reports whether the stem extends below the head.
func (s Stem) Down() bool { return s.Y2 > s.Y1 }

// AccidentalGlyph is an accidental symbol placed left of a note head.
type AccidentalGlyph struct {
	Pos      Point   `json:"pos"`
	Glyph    string  `json:"glyph"`
	FontSize float64 `json:"font_size"`
}

// BeamSegment is the thick line connecting the stems of a beam group.
type BeamSegment struct {
	From      Point   `json:"from"`
	To        Point   `json:"to"`
	Thickness float64 `json:"thickness"`
}

// BarLine separates measures. It spans both staves so the grand staff
// stays visually synchronized.
type BarLine struct {
	X  float64 `json:"x"`
	Y1 float64 `json:"y1"`
	Y2 float64 `json:"y2"`
}

// StaffLine is one of the five horizontal lines of a staff.
type StaffLine struct {
	Y  float64 `json:"y"`
	X1 float64 `json:"x1"`
	X2 float64 `json:"x2"`
}

// Brace is the curly bracket joining the two staves at the left edge.
type Brace struct {
	X     float64 `json:"x"`
	Y1    float64 `json:"y1"`
	Y2    float64 `json:"y2"`
	Width float64 `json:"width"`
}

// ClefGlyph is a clef symbol at the start of a staff.
type ClefGlyph struct {
	Pos      Point   `json:"pos"`
	Glyph    string  `json:"glyph"`
	FontSize float64 `json:"font_size"`
}
