package engrave

import (
	"golang.org/x/sync/errgroup"

	"github.com/staveline/staveline/pkg/errors"
	"github.com/staveline/staveline/pkg/music"
	"github.com/staveline/staveline/pkg/render"
)

// Default frame dimensions in user units.
const (
	DefaultWidth  = 800.0
	DefaultHeight = 600.0
)

// Options configures an engraving pass.
type Options struct {
	// Width is the minimum frame width; the frame grows to fit the
	// score's measures.
	Width float64
	// Height fixes the frame height, from which all staff geometry is
	// derived.
	Height float64
}

func (o *Options) setDefaults() {
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
}

// Layout is the complete engraved geometry of a score: pure drawable
// primitives ordered left to right within each kind. Sinks decide paint
// order across kinds (staff furniture below beams, beams below heads).
type Layout struct {
	Title  string  `json:"title,omitempty"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`

	StaffLines  []render.StaffLine       `json:"staff_lines"`
	Braces      []render.Brace           `json:"braces,omitempty"`
	Clefs       []render.ClefGlyph       `json:"clefs"`
	Signature   []render.AccidentalGlyph `json:"signature,omitempty"`
	Heads       []render.NoteHead        `json:"heads"`
	Stems       []render.Stem            `json:"stems,omitempty"`
	Accidentals []render.AccidentalGlyph `json:"accidentals,omitempty"`
	Beams       []render.BeamSegment     `json:"beams,omitempty"`
	BarLines    []render.BarLine         `json:"bar_lines,omitempty"`

	// StrokeWidth is the line weight sinks should draw thin lines with.
	StrokeWidth float64 `json:"stroke_width"`
}

// PrimitiveCount returns the total number of drawable primitives.
func (l Layout) PrimitiveCount() int {
	return len(l.StaffLines) + len(l.Braces) + len(l.Clefs) + len(l.Signature) +
		len(l.Heads) + len(l.Stems) + len(l.Accidentals) + len(l.Beams) + len(l.BarLines)
}

// Engrave lays out a whole score on a grand staff. The treble and bass
// tracks of each measure are laid out concurrently; they share no
// mutable state and are reconciled at every bar line so bar lines align
// across the staves. The result is deterministic for identical input.
func Engrave(score music.Score, opts Options) (Layout, error) {
	opts.setDefaults()
	m := NewMetrics(opts.Height)

	l := Layout{
		Title:       score.Title,
		Height:      opts.Height,
		StrokeWidth: m.StrokeWidth,
	}

	leftEdge := m.StaffLineHeight * 2
	braceWidth := opts.Width * braceWidthRatio
	contentStart := l.layoutFurniture(score.Key, leftEdge, braceWidth, m)

	treble := Cursor{X: contentStart}
	bass := Cursor{X: contentStart}
	lastBar := contentStart

	for i, measure := range score.Measures {
		if err := validateMeasure(measure, i); err != nil {
			return Layout{}, err
		}

		var trebleOut, bassOut trackLayout
		var g errgroup.Group
		trebleCur, bassCur := treble, bass
		g.Go(func() error {
			var err error
			trebleOut, err = layoutTrack(measure.Treble, music.Treble, score.Key, trebleCur, m)
			return err
		})
		g.Go(func() error {
			var err error
			bassOut, err = layoutTrack(measure.Bass, music.Bass, score.Key, bassCur, m)
			return err
		})
		if err := g.Wait(); err != nil {
			return Layout{}, err
		}

		l.merge(trebleOut)
		l.merge(bassOut)
		treble, bass = trebleOut.cursor, bassOut.cursor

		barX := ReconcileBar(&treble, &bass, m)
		l.BarLines = append(l.BarLines, render.BarLine{
			X:  barX,
			Y1: m.StaffTop(music.Treble),
			Y2: m.StaffBottom(music.Bass),
		})
		lastBar = barX
	}

	l.Width = max(opts.Width, lastBar+m.StaffLineHeight*2)
	l.extendStaffLines(leftEdge, lastBar, m)
	return l, nil
}

// validateMeasure guards against malformed upstream data. Empty chords
// are a programming error in the producer, surfaced immediately rather
// than deep inside the geometry code.
func validateMeasure(mm music.Measure, idx int) error {
	for _, track := range [][]music.Chord{mm.Treble, mm.Bass} {
		for _, c := range track {
			if len(c.Notes) == 0 {
				return errors.New(errors.ErrCodeInvalidScore, "measure %d contains an empty chord", idx+1)
			}
		}
	}
	return nil
}

// layoutFurniture emits braces, clef glyphs, and key signature glyphs,
// and returns the x where the first measure's content starts.
func (l *Layout) layoutFurniture(key music.Key, leftEdge, braceWidth float64, m Metrics) float64 {
	l.Braces = append(l.Braces, render.Brace{
		X:     leftEdge,
		Y1:    m.StaffTop(music.Treble),
		Y2:    m.StaffBottom(music.Bass),
		Width: braceWidth,
	})

	clefX := leftEdge + braceWidth + m.StaffLineHeight
	for _, clef := range []music.Clef{music.Treble, music.Bass} {
		l.Clefs = append(l.Clefs, render.ClefGlyph{
			Pos:      render.Point{X: clefX, Y: m.MiddleLineY(clef)},
			Glyph:    clef.Glyph(),
			FontSize: m.StaffHeight,
		})
	}

	sigX := clefX + 3*m.StaffLineHeight
	letters, accidental := key.Altered()
	for i, letter := range letters {
		x := sigX + float64(i)*1.2*m.StaffLineHeight
		for _, clef := range []music.Clef{music.Treble, music.Bass} {
			l.Signature = append(l.Signature, render.AccidentalGlyph{
				Pos: render.Point{
					X: x,
					Y: m.YForPosition(signaturePosition(letter, accidental, clef), clef),
				},
				Glyph:    accidental.Glyph(),
				FontSize: 2 * m.StaffLineHeight,
			})
		}
	}

	end := sigX + float64(len(letters))*1.2*m.StaffLineHeight
	return end + m.NoteGap/2
}

// Conventional key signature staff positions (treble); the bass
// signature sits two positions lower.
var (
	sharpSignaturePos = map[music.Letter]int{
		music.F: 10, music.C: 7, music.G: 11, music.D: 8, music.A: 5, music.E: 9, music.B: 6,
	}
	flatSignaturePos = map[music.Letter]int{
		music.B: 6, music.E: 9, music.A: 5, music.D: 8, music.G: 4, music.C: 7, music.F: 3,
	}
)

func signaturePosition(letter music.Letter, accidental music.Accidental, clef music.Clef) int {
	pos := sharpSignaturePos[letter]
	if accidental == music.Flat {
		pos = flatSignaturePos[letter]
	}
	if clef == music.Bass {
		pos -= 2
	}
	return pos
}

// extendStaffLines draws the five lines of each staff from the left
// edge to the final bar line.
func (l *Layout) extendStaffLines(leftEdge, lastBar float64, m Metrics) {
	for _, clef := range []music.Clef{music.Treble, music.Bass} {
		top := m.StaffTop(clef)
		for i := 0; i < 5; i++ {
			l.StaffLines = append(l.StaffLines, render.StaffLine{
				Y:  top + float64(i)*m.StaffLineHeight,
				X1: leftEdge,
				X2: lastBar,
			})
		}
	}
}

// trackLayout accumulates one clef track's primitives for a measure.
type trackLayout struct {
	heads  []render.NoteHead
	stems  []render.Stem
	accs   []render.AccidentalGlyph
	beams  []render.BeamSegment
	cursor Cursor
}

// merge appends a track's primitives to the layout. Tracks are merged
// in a fixed order (treble before bass) so output is deterministic.
func (l *Layout) merge(t trackLayout) {
	l.Heads = append(l.Heads, t.heads...)
	l.Stems = append(l.Stems, t.stems...)
	l.Accidentals = append(l.Accidentals, t.accs...)
	l.Beams = append(l.Beams, t.beams...)
}

// layoutTrack lays out one clef's chord sequence for a single measure:
// beam grouping, then per chord the head, accidental, and stem geometry,
// with the accidental state threaded through and applied per chord.
func layoutTrack(chords []music.Chord, clef music.Clef, key music.Key, cur Cursor, m Metrics) (trackLayout, error) {
	out := trackLayout{cursor: cur}
	state := NewAccidentalState(key)

	for _, group := range GroupBeams(chords) {
		noteWidth := m.Advance(group.Chords[0].Rhythmic())
		line, beamed := SolveBeam(group, clef, out.cursor.X, noteWidth, m)

		var firstStem, lastStem render.Stem
		for i, chord := range group.Chords {
			if len(chord.Notes) == 0 {
				return trackLayout{}, errors.New(errors.ErrCodeInvalidScore, "empty chord")
			}
			x := out.cursor.Advance(chord.Rhythmic(), m)

			for _, note := range chord.Notes {
				y := NoteY(note, clef, m)

				if acc, show := state.Display(note); show {
					out.accs = append(out.accs, render.AccidentalGlyph{
						Pos:      render.Point{X: x - 2.2*m.HeadRX(), Y: y},
						Glyph:    acc.Glyph(),
						FontSize: 2 * m.StaffLineHeight,
					})
				}

				rotation := headRotation
				if note.Rhythmic == music.Whole {
					rotation = 0
				}
				out.heads = append(out.heads, render.NoteHead{
					Center:   render.Point{X: x, Y: y},
					RX:       m.HeadRX(),
					RY:       m.HeadRY(),
					Filled:   note.Rhythmic.Filled(),
					Rotation: rotation,
				})

				if beamed {
					s := BeamedStem(x, y, line.YAt(x), m)
					s.Y2 = line.YAt(s.X)
					out.stems = append(out.stems, s)
					if i == 0 {
						firstStem = s
					}
					lastStem = s
				} else if s, ok := StemFor(note, x, y, clef, m); ok {
					out.stems = append(out.stems, s)
				}
			}

			state = state.Apply(chord)
		}

		if beamed {
			out.beams = append(out.beams, render.BeamSegment{
				From:      render.Point{X: firstStem.X, Y: line.YAt(firstStem.X)},
				To:        render.Point{X: lastStem.X, Y: line.YAt(lastStem.X)},
				Thickness: m.StaffLineHeight / 2,
			})
		}
	}

	return out, nil
}
