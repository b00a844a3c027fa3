package handlers

import (
	"errors"
	"net/http"

	"numbergalaxy/internal/models"
	"numbergalaxy/internal/service"
	"numbergalaxy/internal/validation"
)

// ProfileHandler handles learner profile HTTP requests
type ProfileHandler struct {
	profileService *service.ProfileService
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(profileService *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

type createProfileRequest struct {
	Name        string `json:"name"`
	Theme       string `json:"theme"`
	AvatarID    string `json:"avatarId"`
	InputMethod string `json:"inputMethod"`
}

type updateProfileRequest struct {
	Name        string `json:"name"`
	Theme       string `json:"theme"`
	AvatarID    string `json:"avatarId"`
	InputMethod string `json:"inputMethod"`
}

type setOperationsRequest struct {
	Operations []string `json:"operations"`
}

type setDifficultyRequest struct {
	Difficulty string `json:"difficulty"`
}

// ListProfiles returns all profiles, most recently active first
func (h *ProfileHandler) ListProfiles(w http.ResponseWriter, r *http.Request) {
	profiles, err := h.profileService.ListProfiles()
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Internal server error", "Error listing profiles", err)
		return
	}

	views := make([]ProfileView, 0, len(profiles))
	for i := range profiles {
		views = append(views, toProfileView(&profiles[i]))
	}
	respondWithJSON(w, http.StatusOK, views)
}

// CreateProfile creates a new learner profile with seeded progress
func (h *ProfileHandler) CreateProfile(w http.ResponseWriter, r *http.Request) {
	var req createProfileRequest
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	profile, err := h.profileService.CreateProfile(
		req.Name,
		models.Theme(req.Theme),
		req.AvatarID,
		models.InputMethod(req.InputMethod),
	)
	if err != nil {
		var verr validation.ValidationError
		if errors.As(err, &verr) {
			http.Error(w, verr.Error(), http.StatusBadRequest)
			return
		}
		respondWithError(w, http.StatusInternalServerError, "Internal server error", "Error creating profile", err)
		return
	}

	respondWithJSON(w, http.StatusCreated, toProfileView(profile))
}

// GetProfile returns one profile by ID
func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := h.profileService.GetProfile(r.PathValue("id"))
	if err != nil {
		if errors.Is(err, service.ErrProfileNotFound) {
			http.Error(w, "Profile not found", http.StatusNotFound)
			return
		}
		respondWithError(w, http.StatusInternalServerError, "Internal server error", "Error getting profile", err)
		return
	}

	respondWithJSON(w, http.StatusOK, toProfileView(profile))
}

// SelectProfile marks a profile active and returns it
func (h *ProfileHandler) SelectProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := h.profileService.SelectProfile(r.PathValue("id"))
	if err != nil {
		if errors.Is(err, service.ErrProfileNotFound) {
			http.Error(w, "Profile not found", http.StatusNotFound)
			return
		}
		respondWithError(w, http.StatusInternalServerError, "Internal server error", "Error selecting profile", err)
		return
	}

	respondWithJSON(w, http.StatusOK, toProfileView(profile))
}

// UpdateProfile updates a profile's display and input settings
func (h *ProfileHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req updateProfileRequest
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	profile, err := h.profileService.GetProfile(r.PathValue("id"))
	if err != nil {
		if errors.Is(err, service.ErrProfileNotFound) {
			http.Error(w, "Profile not found", http.StatusNotFound)
			return
		}
		respondWithError(w, http.StatusInternalServerError, "Internal server error", "Error getting profile", err)
		return
	}

	profile.Name = req.Name
	profile.Theme = models.Theme(req.Theme)
	profile.AvatarID = req.AvatarID
	profile.InputMethod = models.InputMethod(req.InputMethod)

	if err := h.profileService.UpdateProfile(profile); err != nil {
		var verr validation.ValidationError
		if errors.As(err, &verr) {
			http.Error(w, verr.Error(), http.StatusBadRequest)
			return
		}
		respondWithError(w, http.StatusInternalServerError, "Internal server error", "Error updating profile", err)
		return
	}

	respondWithJSON(w, http.StatusOK, toProfileView(profile))
}

// SetOperations replaces a profile's enabled operation set
func (h *ProfileHandler) SetOperations(w http.ResponseWriter, r *http.Request) {
	var req setOperationsRequest
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	ops := make([]models.Operation, len(req.Operations))
	for i, op := range req.Operations {
		ops[i] = models.Operation(op)
	}

	err := h.profileService.SetEnabledOperations(r.PathValue("id"), ops)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrLastOperation):
			http.Error(w, "At least one operation must stay enabled", http.StatusBadRequest)
		case errors.Is(err, service.ErrProfileNotFound):
			http.Error(w, "Profile not found", http.StatusNotFound)
		default:
			var verr validation.ValidationError
			if errors.As(err, &verr) {
				http.Error(w, verr.Error(), http.StatusBadRequest)
				return
			}
			respondWithError(w, http.StatusInternalServerError, "Internal server error", "Error setting operations", err)
		}
		return
	}

	respondWithJSON(w, http.StatusOK, nil)
}

// SetDifficulty updates a profile's difficulty level
func (h *ProfileHandler) SetDifficulty(w http.ResponseWriter, r *http.Request) {
	var req setDifficultyRequest
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	err := h.profileService.SetDifficulty(r.PathValue("id"), models.Difficulty(req.Difficulty))
	if err != nil {
		if errors.Is(err, service.ErrProfileNotFound) {
			http.Error(w, "Profile not found", http.StatusNotFound)
			return
		}
		respondWithError(w, http.StatusInternalServerError, "Internal server error", "Error setting difficulty", err)
		return
	}

	respondWithJSON(w, http.StatusOK, nil)
}

// DeleteProfile removes a profile and all its records. Parental gate required.
func (h *ProfileHandler) DeleteProfile(w http.ResponseWriter, r *http.Request) {
	err := h.profileService.DeleteProfile(r.PathValue("id"), PinVerified(r.Context()))
	if err != nil {
		if errors.Is(err, service.ErrParentalGate) {
			http.Error(w, "Parent PIN required", http.StatusUnauthorized)
			return
		}
		respondWithError(w, http.StatusInternalServerError, "Internal server error", "Error deleting profile", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
