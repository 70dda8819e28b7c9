package domain

import (
	"errors"
	"testing"
)

func TestPersonaResolveDifficulty(t *testing.T) {
	tests := []struct {
		level int
		want  string
	}{
		{1, "using very simple words and short sentences"},
		{2, "using simple language that is easy to understand"},
		{3, "with a balanced level of detail and clarity"},
		{4, "with detailed explanations and examples"},
		{5, "with comprehensive detail and technical depth"},
	}
	for _, tt := range tests {
		got, err := Persona{Mode: PersonaModeDifficulty, Level: tt.level}.Resolve()
		if err != nil {
			t.Fatalf("level %d: %v", tt.level, err)
		}
		if got != tt.want {
			t.Fatalf("level %d: got %q want %q", tt.level, got, tt.want)
		}
	}
	for _, level := range []int{0, 6, -1} {
		if _, err := (Persona{Mode: PersonaModeDifficulty, Level: level}).Resolve(); !errors.Is(err, ErrInvalidPersona) {
			t.Fatalf("level %d: expected ErrInvalidPersona, got %v", level, err)
		}
	}
}

func TestPersonaResolveCustom(t *testing.T) {
	got, err := Persona{Mode: PersonaModeCustom, Value: "  a medieval blacksmith "}.Resolve()
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got != "a medieval blacksmith" {
		t.Fatalf("got %q", got)
	}
	if _, err := (Persona{Mode: PersonaModeCustom, Value: "   "}).Resolve(); !errors.Is(err, ErrInvalidPersona) {
		t.Fatalf("blank custom persona: expected ErrInvalidPersona, got %v", err)
	}
}

func TestPersonaResolveCharacter(t *testing.T) {
	got, err := Persona{Mode: PersonaModeCharacter, Value: "five-year-old"}.Resolve()
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got != "I'm 5 years old" {
		t.Fatalf("got %q", got)
	}
	if _, err := (Persona{Mode: PersonaModeCharacter, Value: "astronaut-cat"}).Resolve(); !errors.Is(err, ErrInvalidPersona) {
		t.Fatalf("unknown card: expected ErrInvalidPersona, got %v", err)
	}
}

func TestPersonaResolveDefault(t *testing.T) {
	got, err := Persona{}.Resolve()
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got != DefaultPersonaPhrase {
		t.Fatalf("got %q want %q", got, DefaultPersonaPhrase)
	}
}

func TestCharacterCardsHaveLabels(t *testing.T) {
	for _, card := range CharacterCards() {
		if card.Label == "" {
			t.Fatalf("card %s has no label", card.ID)
		}
		if card.Phrase == "" {
			t.Fatalf("card %s has no phrase", card.ID)
		}
	}
}

func TestCountWords(t *testing.T) {
	tests := []struct {
		text string
		want int
	}{
		{"", 0},
		{"   ", 0},
		{"hello", 1},
		{"hello  world\nagain", 3},
	}
	for _, tt := range tests {
		if got := CountWords(tt.text); got != tt.want {
			t.Fatalf("CountWords(%q) = %d, want %d", tt.text, got, tt.want)
		}
	}
}

func TestValidateRewriteText(t *testing.T) {
	if err := ValidateRewriteText("some short text", 700, 5000); err != nil {
		t.Fatalf("valid text rejected: %v", err)
	}
	if err := ValidateRewriteText("", 700, 5000); !errors.Is(err, ErrEmptyText) {
		t.Fatalf("expected ErrEmptyText, got %v", err)
	}
	long := make([]byte, 5001)
	for i := range long {
		long[i] = 'a'
	}
	if err := ValidateRewriteText(string(long), 700, 5000); !errors.Is(err, ErrTextTooLong) {
		t.Fatalf("expected ErrTextTooLong for char limit, got %v", err)
	}
	words := ""
	for i := 0; i < 701; i++ {
		words += "w "
	}
	if err := ValidateRewriteText(words, 700, 5000); !errors.Is(err, ErrTextTooLong) {
		t.Fatalf("expected ErrTextTooLong for word limit, got %v", err)
	}
}
