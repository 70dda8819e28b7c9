package handlers

import (
	"net/http"

	"elix-server/internal/domain"
)

type personasResponse struct {
	Default    string                 `json:"default"`
	Characters []domain.CharacterCard `json:"characters"`
	Difficulty []domain.DifficultyStep `json:"difficulty"`
}

func (a *App) Personas(w http.ResponseWriter, r *http.Request) {
	a.json(w, http.StatusOK, personasResponse{
		Default:    domain.DefaultPersonaPhrase,
		Characters: domain.CharacterCards(),
		Difficulty: domain.DifficultySteps(),
	})
}
