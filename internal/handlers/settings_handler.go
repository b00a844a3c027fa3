package handlers

import (
	"errors"
	"net/http"

	"numbergalaxy/internal/service"
	"numbergalaxy/internal/validation"
)

// SettingsHandler handles app settings HTTP requests
type SettingsHandler struct {
	settingsService *service.SettingsService
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(settingsService *service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

type verifyPinRequest struct {
	Pin string `json:"pin"`
}

type updatePinRequest struct {
	NewPin string `json:"newPin"`
}

type breakReminderRequest struct {
	Minutes int `json:"minutes"`
}

type toggleRequest struct {
	Enabled bool `json:"enabled"`
}

// GetSettings returns the app settings. The PIN hash is never included.
func (h *SettingsHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.settingsService.GetSettings()
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Internal server error", "Error loading settings", err)
		return
	}

	respondWithJSON(w, http.StatusOK, SettingsView{
		BreakReminderMinutes: settings.BreakReminderMinutes,
		SoundEnabled:         settings.SoundEnabled,
		ReadAloudEnabled:     settings.ReadAloudEnabled,
	})
}

// VerifyPin checks a candidate PIN and reports the result
func (h *SettingsHandler) VerifyPin(w http.ResponseWriter, r *http.Request) {
	var req verifyPinRequest
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	valid, err := h.settingsService.VerifyPin(req.Pin)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Internal server error", "Error verifying PIN", err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]bool{"valid": valid})
}

// UpdatePin replaces the parental PIN. Parental gate required.
func (h *SettingsHandler) UpdatePin(w http.ResponseWriter, r *http.Request) {
	var req updatePinRequest
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	err := h.settingsService.UpdatePin(req.NewPin, PinVerified(r.Context()))
	if err != nil {
		h.respondSettingsError(w, "Error updating PIN", err)
		return
	}

	respondWithJSON(w, http.StatusOK, nil)
}

// UpdateBreakReminder sets the break-reminder interval. Parental gate required.
func (h *SettingsHandler) UpdateBreakReminder(w http.ResponseWriter, r *http.Request) {
	var req breakReminderRequest
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	err := h.settingsService.UpdateBreakReminder(req.Minutes, PinVerified(r.Context()))
	if err != nil {
		h.respondSettingsError(w, "Error updating break reminder", err)
		return
	}

	respondWithJSON(w, http.StatusOK, nil)
}

// SetSound toggles sound effects. Parental gate required.
func (h *SettingsHandler) SetSound(w http.ResponseWriter, r *http.Request) {
	var req toggleRequest
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	err := h.settingsService.SetSoundEnabled(req.Enabled, PinVerified(r.Context()))
	if err != nil {
		h.respondSettingsError(w, "Error updating sound setting", err)
		return
	}

	respondWithJSON(w, http.StatusOK, nil)
}

// SetReadAloud toggles problem read-aloud. Parental gate required.
func (h *SettingsHandler) SetReadAloud(w http.ResponseWriter, r *http.Request) {
	var req toggleRequest
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	err := h.settingsService.SetReadAloudEnabled(req.Enabled, PinVerified(r.Context()))
	if err != nil {
		h.respondSettingsError(w, "Error updating read-aloud setting", err)
		return
	}

	respondWithJSON(w, http.StatusOK, nil)
}

func (h *SettingsHandler) respondSettingsError(w http.ResponseWriter, logMsg string, err error) {
	var verr validation.ValidationError
	switch {
	case errors.Is(err, service.ErrParentalGate):
		http.Error(w, "Parent PIN required", http.StatusUnauthorized)
	case errors.As(err, &verr):
		http.Error(w, verr.Error(), http.StatusBadRequest)
	default:
		respondWithError(w, http.StatusInternalServerError, "Internal server error", logMsg, err)
	}
}
