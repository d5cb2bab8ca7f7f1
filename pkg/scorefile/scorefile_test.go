package scorefile

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/staveline/staveline/pkg/errors"
	"github.com/staveline/staveline/pkg/music"
)

func TestParseNote(t *testing.T) {
	tests := []struct {
		in       string
		letter   music.Letter
		acc      music.Accidental
		octave   int
		rhythmic music.RhythmicValue
	}{
		{"C4:4", music.C, music.NoAccidental, 4, music.Quarter},
		{"F#4:8", music.F, music.Sharp, 4, music.Eighth},
		{"Bb2:2", music.B, music.Flat, 2, music.Half},
		{"En5:16", music.E, music.Natural, 5, music.Sixteenth},
		{"A0:1", music.A, music.NoAccidental, 0, music.Whole},
		// Octave-crossing spellings normalize to the sounding octave.
		{"Cb4:4", music.C, music.Flat, 3, music.Quarter},
		{"B#3:4", music.B, music.Sharp, 4, music.Quarter},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			n, err := ParseNote(tt.in)
			if err != nil {
				t.Fatalf("ParseNote(%q): %v", tt.in, err)
			}
			if n.Label.Letter != tt.letter || n.Label.Accidental != tt.acc {
				t.Errorf("label = %v%v, want %v%v", n.Label.Letter, n.Label.Accidental, tt.letter, tt.acc)
			}
			if n.Octave != tt.octave {
				t.Errorf("octave = %d, want %d", n.Octave, tt.octave)
			}
			if n.Rhythmic != tt.rhythmic {
				t.Errorf("rhythmic = %v, want %v", n.Rhythmic, tt.rhythmic)
			}
		})
	}
}

func TestParseNoteErrors(t *testing.T) {
	tests := []string{
		"",          // empty
		"C4",        // no rhythmic value
		"C4:3",      // unsupported denominator
		"C4:32",     // too fine
		"H4:4",      // no such letter
		"c4:4",      // lowercase letter
		"C:4",       // missing octave
		"C#:8",      // accidental but no octave
		"C44:4",     // octave too long
		"C#x4:4",    // junk after accidental
		"C4:quarter",
	}

	for _, in := range tests {
		t.Run(in, func(t *testing.T) {
			if _, err := ParseNote(in); err == nil {
				t.Errorf("ParseNote(%q) succeeded, want error", in)
			} else if code := errors.GetCode(err); code != errors.ErrCodeInvalidNote {
				t.Errorf("code = %v, want %v", code, errors.ErrCodeInvalidNote)
			}
		})
	}
}

func TestParseChord(t *testing.T) {
	c, err := ParseChord("C4:8 E4:8 G4:8")
	if err != nil {
		t.Fatalf("ParseChord: %v", err)
	}
	if len(c.Notes) != 3 {
		t.Fatalf("notes = %d, want 3", len(c.Notes))
	}
	if c.Rhythmic() != music.Eighth {
		t.Errorf("rhythmic = %v, want eighth", c.Rhythmic())
	}
}

func TestParseChordMixedRhythm(t *testing.T) {
	if _, err := ParseChord("C4:8 E4:4"); err == nil {
		t.Error("mixed rhythmic values accepted, want error")
	}
}

func TestParseChordEmpty(t *testing.T) {
	_, err := ParseChord("   ")
	if err == nil {
		t.Fatal("blank chord accepted, want error")
	}
	if code := errors.GetCode(err); code != errors.ErrCodeInvalidScore {
		t.Errorf("code = %v, want %v", code, errors.ErrCodeInvalidScore)
	}
}

const sampleScore = `
title = "Invention"

[key]
sharps = 1

[[measure]]
treble = ["C4:8 E4:8", "D4:8", "G4:4"]
bass = ["C3:2"]

[[measure]]
treble = ["F#4:2"]
bass = ["G2:1"]
`

func TestParseScore(t *testing.T) {
	score, err := Parse([]byte(sampleScore))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if score.Title != "Invention" {
		t.Errorf("title = %q, want Invention", score.Title)
	}
	if got := score.Key.Accidental(music.F); got != music.Sharp {
		t.Errorf("key accidental for F = %v, want sharp", got)
	}
	if len(score.Measures) != 2 {
		t.Fatalf("measures = %d, want 2", len(score.Measures))
	}
	if got := len(score.Measures[0].Treble); got != 3 {
		t.Errorf("measure 1 treble chords = %d, want 3", got)
	}
	if got := len(score.Measures[0].Treble[0].Notes); got != 2 {
		t.Errorf("first chord notes = %d, want 2", got)
	}
	if score.NoteCount() != 7 {
		t.Errorf("note count = %d, want 7", score.NoteCount())
	}
}

func TestParseScoreDefaultKey(t *testing.T) {
	score, err := Parse([]byte(`[[measure]]` + "\n" + `treble = ["C4:4"]`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if letters, _ := score.Key.Altered(); len(letters) != 0 {
		t.Errorf("default key alters %v, want none", letters)
	}
}

func TestParseScoreMixedKey(t *testing.T) {
	_, err := Parse([]byte("[key]\nsharps = 2\nflats = 1\n"))
	if err == nil {
		t.Fatal("key with sharps and flats accepted, want error")
	}
	if code := errors.GetCode(err); code != errors.ErrCodeInvalidKey {
		t.Errorf("code = %v, want %v", code, errors.ErrCodeInvalidKey)
	}
}

func TestParseScoreBadNoteNamesMeasure(t *testing.T) {
	_, err := Parse([]byte("[[measure]]\ntreble = [\"C4:4\"]\n[[measure]]\nbass = [\"X2:4\"]\n"))
	if err == nil {
		t.Fatal("bad note accepted, want error")
	}
	if got := err.Error(); !strings.Contains(got, "measure 2") {
		t.Errorf("error %q does not name the failing measure", got)
	}
}

func TestParseScoreMalformedTOML(t *testing.T) {
	_, err := Parse([]byte("title = "))
	if err == nil {
		t.Fatal("malformed TOML accepted, want error")
	}
	if code := errors.GetCode(err); code != errors.ErrCodeInvalidScore {
		t.Errorf("code = %v, want %v", code, errors.ErrCodeInvalidScore)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "score.toml")
	if err := os.WriteFile(path, []byte(sampleScore), 0o644); err != nil {
		t.Fatal(err)
	}
	score, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if score.Title != "Invention" {
		t.Errorf("title = %q, want Invention", score.Title)
	}
}

func TestLoadRelativePathWithParentSegments(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "score.toml"), []byte(sampleScore), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.Mkdir(filepath.Join(dir, "sub"), 0o755); err != nil {
		t.Fatal(err)
	}

	// Paths are local CLI arguments, so ".." segments are legitimate.
	// Built by concatenation because filepath.Join would clean them away.
	path := filepath.Join(dir, "sub") + string(filepath.Separator) + ".." + string(filepath.Separator) + "score.toml"
	if !strings.Contains(path, "..") {
		t.Fatalf("test path %q should contain a parent segment", path)
	}
	score, err := Load(path)
	if err != nil {
		t.Fatalf("Load(%q): %v", path, err)
	}
	if score.Title != "Invention" {
		t.Errorf("title = %q, want Invention", score.Title)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err == nil {
		t.Fatal("missing file accepted, want error")
	}
	if code := errors.GetCode(err); code != errors.ErrCodeFileNotFound {
		t.Errorf("code = %v, want %v", code, errors.ErrCodeFileNotFound)
	}
}
