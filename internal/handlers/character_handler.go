package handlers

import (
	"errors"
	"net/http"

	"numbergalaxy/internal/characters"
	"numbergalaxy/internal/models"
	"numbergalaxy/internal/service"
)

// CharacterHandler handles collectible character HTTP requests
type CharacterHandler struct {
	characterService *service.CharacterService
	profileService   *service.ProfileService
}

// NewCharacterHandler creates a new character handler
func NewCharacterHandler(characterService *service.CharacterService, profileService *service.ProfileService) *CharacterHandler {
	return &CharacterHandler{
		characterService: characterService,
		profileService:   profileService,
	}
}

// Catalog returns the full character catalog for a theme
func (h *CharacterHandler) Catalog(w http.ResponseWriter, r *http.Request) {
	theme := models.Theme(r.URL.Query().Get("theme"))
	if theme != models.ThemeSparkle && theme != models.ThemeLego {
		http.Error(w, "Unknown theme", http.StatusBadRequest)
		return
	}

	respondWithJSON(w, http.StatusOK, toCharacterViews(characters.ForTheme(theme)))
}

// Unlocked returns the characters a learner has unlocked
func (h *CharacterHandler) Unlocked(w http.ResponseWriter, r *http.Request) {
	unlocked, err := h.characterService.UnlockedCharacters(r.PathValue("id"))
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Internal server error", "Error loading unlocked characters", err)
		return
	}

	respondWithJSON(w, http.StatusOK, toCharacterViews(unlocked))
}

// CheckUnlocks evaluates unlock conditions against current progress and
// returns only the characters newly unlocked by this call
func (h *CharacterHandler) CheckUnlocks(w http.ResponseWriter, r *http.Request) {
	profileID := r.PathValue("id")

	profile, err := h.profileService.GetProfile(profileID)
	if err != nil {
		if errors.Is(err, service.ErrProfileNotFound) {
			http.Error(w, "Profile not found", http.StatusNotFound)
			return
		}
		respondWithError(w, http.StatusInternalServerError, "Internal server error", "Error getting profile", err)
		return
	}

	newlyUnlocked, err := h.characterService.CheckAndUnlockCharacters(profileID, profile.Theme)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Internal server error", "Error checking character unlocks", err)
		return
	}

	respondWithJSON(w, http.StatusOK, toCharacterViews(newlyUnlocked))
}
