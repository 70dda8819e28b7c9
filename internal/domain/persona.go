package domain

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// PersonaMode selects how the target audience is described.
type PersonaMode string

const (
	// PersonaModeCharacter picks one of the built-in audience cards.
	PersonaModeCharacter PersonaMode = "character"
	// PersonaModeCustom uses a free-text audience phrase.
	PersonaModeCustom PersonaMode = "custom"
	// PersonaModeDifficulty maps a 1-5 level to a detail phrase.
	PersonaModeDifficulty PersonaMode = "difficulty"
)

// DefaultPersonaPhrase is used when no persona was selected at all.
const DefaultPersonaPhrase = "I'm 5 years old"

// Persona describes the target audience of a rewrite.
type Persona struct {
	Mode  PersonaMode `json:"mode"`
	Value string      `json:"value,omitempty"`
	Level int         `json:"level,omitempty"`
}

// DifficultyStep is one position of the 1-5 detail slider.
type DifficultyStep struct {
	Level  int    `json:"level"`
	Label  string `json:"label"`
	Phrase string `json:"phrase"`
}

// Levels 1-5; the phrases are part of the product contract and feed the
// provider prompt verbatim.
var difficultySteps = map[int]DifficultyStep{
	1: {Label: "Very Simple", Phrase: "using very simple words and short sentences"},
	2: {Label: "Simple", Phrase: "using simple language that is easy to understand"},
	3: {Label: "Medium Detail", Phrase: "with a balanced level of detail and clarity"},
	4: {Label: "Detailed", Phrase: "with detailed explanations and examples"},
	5: {Label: "Very Detailed", Phrase: "with comprehensive detail and technical depth"},
}

// CharacterCard is a built-in audience preset offered by the UI.
type CharacterCard struct {
	ID     string `json:"id"`
	Label  string `json:"label"`
	Phrase string `json:"phrase"`
}

var characterCards = []CharacterCard{
	{ID: "five-year-old", Phrase: "I'm 5 years old"},
	{ID: "teenager", Phrase: "a teenager in high school"},
	{ID: "grandparent", Phrase: "a grandparent who never used a computer"},
	{ID: "college-student", Phrase: "a busy college student"},
	{ID: "scientist", Phrase: "a scientist who wants precise detail"},
	{ID: "manager", Phrase: "a manager who only wants the bottom line"},
}

// CharacterCards returns the built-in persona cards with display labels.
func CharacterCards() []CharacterCard {
	titler := cases.Title(language.English)
	out := make([]CharacterCard, len(characterCards))
	for i, c := range characterCards {
		c.Label = titler.String(strings.ReplaceAll(c.ID, "-", " "))
		out[i] = c
	}
	return out
}

// DifficultySteps returns the slider levels in order.
func DifficultySteps() []DifficultyStep {
	out := make([]DifficultyStep, 0, len(difficultySteps))
	for level := 1; level <= len(difficultySteps); level++ {
		step := difficultySteps[level]
		step.Level = level
		out = append(out, step)
	}
	return out
}

// Resolve turns the descriptor into the audience phrase sent to the provider.
// An empty descriptor resolves to DefaultPersonaPhrase.
func (p Persona) Resolve() (string, error) {
	switch p.Mode {
	case PersonaModeDifficulty:
		step, ok := difficultySteps[p.Level]
		if !ok {
			return "", ErrInvalidPersona
		}
		return step.Phrase, nil
	case PersonaModeCustom:
		phrase := strings.TrimSpace(p.Value)
		if phrase == "" {
			return "", ErrInvalidPersona
		}
		return phrase, nil
	case PersonaModeCharacter:
		for _, c := range characterCards {
			if c.ID == p.Value {
				return c.Phrase, nil
			}
		}
		return "", ErrInvalidPersona
	case "":
		if strings.TrimSpace(p.Value) == "" && p.Level == 0 {
			return DefaultPersonaPhrase, nil
		}
		return "", ErrInvalidPersona
	default:
		return "", ErrInvalidPersona
	}
}
