package engrave

import (
	"math"
	"reflect"
	"testing"

	"github.com/staveline/staveline/pkg/errors"
	"github.com/staveline/staveline/pkg/music"
)

func testScore(t *testing.T) music.Score {
	t.Helper()
	return music.Score{
		Title: "Etude",
		Key:   music.KeyOfC(),
		Measures: []music.Measure{
			{
				Treble: []music.Chord{
					music.MustChord(music.NewNote(music.C, music.NoAccidental, 4, music.Eighth)),
					music.MustChord(music.NewNote(music.D, music.NoAccidental, 4, music.Eighth)),
					music.MustChord(
						music.NewNote(music.E, music.NoAccidental, 4, music.Half),
						music.NewNote(music.G, music.NoAccidental, 4, music.Half),
					),
				},
				Bass: []music.Chord{
					music.MustChord(music.NewNote(music.C, music.NoAccidental, 3, music.Whole)),
				},
			},
			{
				Treble: []music.Chord{
					music.MustChord(music.NewNote(music.F, music.Sharp, 4, music.Quarter)),
					music.MustChord(music.NewNote(music.F, music.NoAccidental, 4, music.Quarter)),
				},
				Bass: []music.Chord{
					music.MustChord(music.NewNote(music.G, music.NoAccidental, 2, music.Half)),
				},
			},
		},
	}
}

func TestEngraveCounts(t *testing.T) {
	score := testScore(t)
	l, err := Engrave(score, Options{})
	if err != nil {
		t.Fatalf("Engrave: %v", err)
	}

	if got, want := len(l.Heads), score.NoteCount(); got != want {
		t.Errorf("heads = %d, want %d (one per note)", got, want)
	}
	if got, want := len(l.BarLines), len(score.Measures); got != want {
		t.Errorf("bar lines = %d, want %d", got, want)
	}
	if got := len(l.StaffLines); got != 10 {
		t.Errorf("staff lines = %d, want 10 (five per staff)", got)
	}
	if got := len(l.Braces); got != 1 {
		t.Errorf("braces = %d, want 1", got)
	}
	if got := len(l.Clefs); got != 2 {
		t.Errorf("clefs = %d, want 2", got)
	}
	// C4:8 D4:8 beam together; the whole note and quarters do not.
	if got := len(l.Beams); got != 1 {
		t.Errorf("beams = %d, want 1", got)
	}
	// The F# is shown, the following F gets a courtesy natural. Nothing
	// else deviates from the key of C.
	if got := len(l.Accidentals); got != 2 {
		t.Errorf("accidentals = %d, want 2", got)
	}
	// Every note except the bass whole carries a stem.
	if got, want := len(l.Stems), score.NoteCount()-1; got != want {
		t.Errorf("stems = %d, want %d", got, want)
	}
}

func TestEngraveDeterministic(t *testing.T) {
	score := testScore(t)
	first, err := Engrave(score, Options{})
	if err != nil {
		t.Fatalf("Engrave: %v", err)
	}
	second, err := Engrave(score, Options{})
	if err != nil {
		t.Fatalf("Engrave: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("two engravings of the same score differ")
	}
}

func TestEngraveHeadFill(t *testing.T) {
	l, err := Engrave(testScore(t), Options{})
	if err != nil {
		t.Fatalf("Engrave: %v", err)
	}
	filled, hollow := 0, 0
	for _, h := range l.Heads {
		if h.Filled {
			filled++
		} else {
			hollow++
		}
	}
	// Hollow: the E4/G4 half chord, the bass whole, the bass half.
	if hollow != 4 {
		t.Errorf("hollow heads = %d, want 4", hollow)
	}
	if filled != 4 {
		t.Errorf("filled heads = %d, want 4", filled)
	}
}

func TestEngraveBeamedStemsTouchBeam(t *testing.T) {
	score := music.Score{
		Key: music.KeyOfC(),
		Measures: []music.Measure{{
			Treble: []music.Chord{
				music.MustChord(music.NewNote(music.C, music.NoAccidental, 4, music.Eighth)),
				music.MustChord(music.NewNote(music.E, music.NoAccidental, 4, music.Eighth)),
				music.MustChord(music.NewNote(music.G, music.NoAccidental, 4, music.Eighth)),
			},
			Bass: []music.Chord{
				music.MustChord(music.NewNote(music.C, music.NoAccidental, 3, music.Whole)),
			},
		}},
	}
	l, err := Engrave(score, Options{})
	if err != nil {
		t.Fatalf("Engrave: %v", err)
	}
	if len(l.Beams) != 1 {
		t.Fatalf("beams = %d, want 1", len(l.Beams))
	}
	beam := l.Beams[0]
	slope := (beam.To.Y - beam.From.Y) / (beam.To.X - beam.From.X)

	touching := 0
	for _, s := range l.Stems {
		onBeam := beam.From.Y + slope*(s.X-beam.From.X)
		if s.X >= beam.From.X && s.X <= beam.To.X && math.Abs(s.Y2-onBeam) < 1e-9 {
			touching++
		}
	}
	if touching != 3 {
		t.Errorf("stems ending on the beam line = %d, want 3", touching)
	}
}

func TestEngraveWidthGrowsWithScore(t *testing.T) {
	short := testScore(t)
	long := short
	long.Measures = append(append([]music.Measure{}, short.Measures...),
		short.Measures...)
	long.Measures = append(long.Measures, short.Measures...)

	ls, err := Engrave(short, Options{Width: 100})
	if err != nil {
		t.Fatalf("Engrave short: %v", err)
	}
	ll, err := Engrave(long, Options{Width: 100})
	if err != nil {
		t.Fatalf("Engrave long: %v", err)
	}
	if ll.Width <= ls.Width {
		t.Errorf("long score width %v not greater than short %v", ll.Width, ls.Width)
	}
	lastBar := ls.BarLines[len(ls.BarLines)-1].X
	if ls.Width <= lastBar {
		t.Errorf("frame width %v does not clear last bar at %v", ls.Width, lastBar)
	}
}

func TestEngraveBarLinesSpanBothStaves(t *testing.T) {
	l, err := Engrave(testScore(t), Options{})
	if err != nil {
		t.Fatalf("Engrave: %v", err)
	}
	m := NewMetrics(l.Height)
	for i, bar := range l.BarLines {
		if bar.Y1 != m.StaffTop(music.Treble) || bar.Y2 != m.StaffBottom(music.Bass) {
			t.Errorf("bar %d spans [%v, %v], want [%v, %v]",
				i, bar.Y1, bar.Y2, m.StaffTop(music.Treble), m.StaffBottom(music.Bass))
		}
		if i > 0 && bar.X <= l.BarLines[i-1].X {
			t.Errorf("bar %d at x %v does not advance past bar %d at %v",
				i, bar.X, i-1, l.BarLines[i-1].X)
		}
	}
}

func TestEngraveRejectsEmptyChord(t *testing.T) {
	score := music.Score{
		Key: music.KeyOfC(),
		Measures: []music.Measure{{
			Treble: []music.Chord{{}},
		}},
	}
	_, err := Engrave(score, Options{})
	if err == nil {
		t.Fatal("expected error for empty chord")
	}
	if code := errors.GetCode(err); code != errors.ErrCodeInvalidScore {
		t.Errorf("error code = %v, want %v", code, errors.ErrCodeInvalidScore)
	}
}

func TestEngraveEmptyScore(t *testing.T) {
	l, err := Engrave(music.Score{Key: music.KeyOfC()}, Options{})
	if err != nil {
		t.Fatalf("Engrave: %v", err)
	}
	if len(l.Heads) != 0 || len(l.BarLines) != 0 {
		t.Errorf("empty score produced %d heads, %d bars", len(l.Heads), len(l.BarLines))
	}
	if len(l.StaffLines) != 10 {
		t.Errorf("staff lines = %d, want 10 even with no measures", len(l.StaffLines))
	}
	if l.Width != DefaultWidth || l.Height != DefaultHeight {
		t.Errorf("frame = %vx%v, want defaults %vx%v", l.Width, l.Height, DefaultWidth, DefaultHeight)
	}
}
