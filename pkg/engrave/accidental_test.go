package engrave

import (
	"testing"

	"github.com/staveline/staveline/pkg/music"
)

func fSharpKey(t *testing.T) music.Key {
	t.Helper()
	k, err := music.KeyOfSharps(1)
	if err != nil {
		t.Fatalf("KeyOfSharps(1): %v", err)
	}
	return k
}

func TestAccidentalStateSeededFromKey(t *testing.T) {
	state := NewAccidentalState(fSharpKey(t))

	// F# matches the signature, so no symbol is drawn.
	fs := music.NewNote(music.F, music.Sharp, 4, music.Quarter)
	if _, show := state.Display(fs); show {
		t.Error("F# in a one-sharp key should not display an accidental")
	}

	// An unaltered letter with no accidental stays silent.
	g := music.NewNote(music.G, music.NoAccidental, 4, music.Quarter)
	if _, show := state.Display(g); show {
		t.Error("plain G should not display an accidental")
	}
}

func TestAccidentalSequenceInForce(t *testing.T) {
	// Key with F#: the sequence F#4, F4, F4 displays [none, natural, none].
	state := NewAccidentalState(fSharpKey(t))

	notes := []music.Note{
		music.NewNote(music.F, music.Sharp, 4, music.Quarter),
		music.NewNote(music.F, music.NoAccidental, 4, music.Quarter),
		music.NewNote(music.F, music.NoAccidental, 4, music.Quarter),
	}
	want := []struct {
		acc  music.Accidental
		show bool
	}{
		{music.NoAccidental, false},
		{music.Natural, true},
		{music.NoAccidental, false},
	}

	for i, n := range notes {
		acc, show := state.Display(n)
		if show != want[i].show || acc != want[i].acc {
			t.Errorf("note %d: Display() = (%v, %v), want (%v, %v)",
				i, acc, show, want[i].acc, want[i].show)
		}
		state = state.Apply(music.MustChord(n))
	}
}

func TestAccidentalNaturalCancelsSharp(t *testing.T) {
	state := NewAccidentalState(music.KeyOfC())
	state = state.Apply(music.MustChord(music.NewNote(music.C, music.Sharp, 4, music.Quarter)))

	// After a C#, an explicit-natural C must be drawn.
	cn := music.NewNote(music.C, music.Natural, 4, music.Quarter)
	acc, show := state.Display(cn)
	if !show || acc != music.Natural {
		t.Errorf("Display(Cn after C#) = (%v, %v), want (Natural, true)", acc, show)
	}
}

func TestAccidentalExplicitNaturalMatchesUnaltered(t *testing.T) {
	// An explicit natural alters the pitch exactly as no accidental does,
	// so a Cn in C major is already in force and draws nothing.
	state := NewAccidentalState(music.KeyOfC())

	cn := music.NewNote(music.C, music.Natural, 4, music.Quarter)
	if acc, show := state.Display(cn); show {
		t.Errorf("Display(Cn in C major) = (%v, %v), want hidden", acc, show)
	}

	// The writeback is equally neutral: a following plain C stays hidden.
	state = state.Apply(music.MustChord(cn))
	c := music.NewNote(music.C, music.NoAccidental, 4, music.Quarter)
	if acc, show := state.Display(c); show {
		t.Errorf("Display(C after Cn) = (%v, %v), want hidden", acc, show)
	}
}

func TestAccidentalChordMembersUsePreChordState(t *testing.T) {
	// Two sharped Cs in one chord: both compare against the pre-chord
	// state, so both display their sharp.
	state := NewAccidentalState(music.KeyOfC())
	chord := music.MustChord(
		music.NewNote(music.C, music.Sharp, 4, music.Eighth),
		music.NewNote(music.C, music.Sharp, 5, music.Eighth),
	)

	for i, n := range chord.Notes {
		acc, show := state.Display(n)
		if !show || acc != music.Sharp {
			t.Errorf("chord note %d: Display() = (%v, %v), want (Sharp, true)", i, acc, show)
		}
	}

	// After the batch update the letter is altered; a following C# is hidden.
	state = state.Apply(chord)
	if _, show := state.Display(music.NewNote(music.C, music.Sharp, 4, music.Eighth)); show {
		t.Error("C# after a sharped chord should be hidden")
	}
}

func TestAccidentalChordLastWriteWins(t *testing.T) {
	// Same letter, different accidentals within one chord: the chord's
	// note order is the evaluation order and the last write wins.
	state := NewAccidentalState(music.KeyOfC())
	chord := music.MustChord(
		music.NewNote(music.F, music.Sharp, 4, music.Eighth),
		music.NewNote(music.F, music.NoAccidental, 5, music.Eighth),
	)
	state = state.Apply(chord)

	// State now holds natural for F, so a plain F is hidden and an F#
	// must be drawn again.
	if _, show := state.Display(music.NewNote(music.F, music.NoAccidental, 4, music.Quarter)); show {
		t.Error("plain F after last-write natural should be hidden")
	}
	acc, show := state.Display(music.NewNote(music.F, music.Sharp, 4, music.Quarter))
	if !show || acc != music.Sharp {
		t.Errorf("F# after last-write natural: Display() = (%v, %v), want (Sharp, true)", acc, show)
	}
}

func TestAccidentalApplyDoesNotMutateReceiver(t *testing.T) {
	before := NewAccidentalState(fSharpKey(t))
	_ = before.Apply(music.MustChord(music.NewNote(music.F, music.NoAccidental, 4, music.Quarter)))

	if got := before[music.F]; got != music.Sharp {
		t.Errorf("receiver state mutated: F = %v, want Sharp", got)
	}
}

func TestAccidentalStateResetPerMeasure(t *testing.T) {
	key := fSharpKey(t)
	state := NewAccidentalState(key)
	state = state.Apply(music.MustChord(music.NewNote(music.F, music.NoAccidental, 4, music.Quarter)))

	// A fresh measure starts from the signature again.
	fresh := NewAccidentalState(key)
	if _, show := fresh.Display(music.NewNote(music.F, music.Sharp, 4, music.Quarter)); show {
		t.Error("F# at the start of a new measure should be hidden again")
	}
}
