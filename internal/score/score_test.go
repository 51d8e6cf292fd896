package score

import (
	"errors"
	"testing"

	"cdgen/internal/cdgerr"
)

func TestValidateAcceptsMonotone(t *testing.T) {
	s := Score{Lines: []Line{{
		Text:    "hi",
		StartMS: 0,
		Words: []Word{{
			StartMS:   0,
			Syllables: []Syllable{{StartMS: 0}, {StartMS: 100}, {StartMS: 100}},
		}},
	}}}
	if err := s.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateRejectsNonMonotone(t *testing.T) {
	s := Score{Lines: []Line{{
		Words: []Word{{
			Syllables: []Syllable{{StartMS: 200}, {StartMS: 100}},
		}},
	}}}
	err := s.Validate()
	if err == nil {
		t.Fatal("expected an error for non-monotone syllable times")
	}
	if !errors.Is(err, cdgerr.ErrInvalidScore) {
		t.Errorf("expected ErrInvalidScore, got %v", err)
	}
}

func TestValidateRejectsNegativeTimes(t *testing.T) {
	s := Score{Lines: []Line{{StartMS: -1}}}
	if err := s.Validate(); !errors.Is(err, cdgerr.ErrInvalidScore) {
		t.Fatalf("expected ErrInvalidScore, got %v", err)
	}
}

func TestHighlightStartEnd(t *testing.T) {
	l := Line{Words: []Word{
		{Syllables: []Syllable{{StartMS: 500, EndMS: 800}}},
		{Syllables: []Syllable{{StartMS: 900}}},
	}}
	if got := l.HighlightStart(); got != 500 {
		t.Errorf("HighlightStart = %d, want 500", got)
	}
	if got := l.HighlightEnd(200); got != 1100 {
		t.Errorf("HighlightEnd = %d, want 1100 (900+200 default)", got)
	}
}
