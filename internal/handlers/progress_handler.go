package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"numbergalaxy/internal/models"
	"numbergalaxy/internal/service"
	"numbergalaxy/internal/validation"
)

// ProgressHandler handles progress, quiz and reward HTTP requests
type ProgressHandler struct {
	progressService  *service.ProgressService
	factService      *service.FactService
	streakService    *service.StreakService
	characterService *service.CharacterService
	profileService   *service.ProfileService
}

// NewProgressHandler creates a new progress handler
func NewProgressHandler(
	progressService *service.ProgressService,
	factService *service.FactService,
	streakService *service.StreakService,
	characterService *service.CharacterService,
	profileService *service.ProfileService,
) *ProgressHandler {
	return &ProgressHandler{
		progressService:  progressService,
		factService:      factService,
		streakService:    streakService,
		characterService: characterService,
		profileService:   profileService,
	}
}

type submitQuizRequest struct {
	TimeSpentSeconds int                  `json:"timeSpentSeconds"`
	Problems         []quizProblemRequest `json:"problems"`
}

type quizProblemRequest struct {
	Multiplicand   int  `json:"multiplicand"`
	Multiplier     int  `json:"multiplier"`
	CorrectAnswer  int  `json:"correctAnswer"`
	UserAnswer     *int `json:"userAnswer"`
	IsCorrect      bool `json:"isCorrect"`
	TimeToAnswerMs int  `json:"timeToAnswerMs"`
}

type submitQuizResponse struct {
	AttemptID     string          `json:"attemptId"`
	Score         int             `json:"score"`
	Mastered      bool            `json:"mastered"`
	Milestone     *MilestoneView  `json:"milestone,omitempty"`
	NewCharacters []CharacterView `json:"newCharacters"`
}

type recordFactRequest struct {
	Fact    string `json:"fact"`
	Correct bool   `json:"correct"`
}

type starsRequest struct {
	Amount int `json:"amount"`
}

type assessmentRequest struct {
	KnownTables         []int `json:"knownTables"`
	SuggestedStartTable int   `json:"suggestedStartTable"`
}

type saveSessionRequest struct {
	StartTime         time.Time  `json:"startTime"`
	EndTime           *time.Time `json:"endTime"`
	TablesWorked      []int      `json:"tablesWorked"`
	ProblemsAttempted int        `json:"problemsAttempted"`
	ProblemsCorrect   int        `json:"problemsCorrect"`
}

// GetProgress returns a learner's full progress snapshot
func (h *ProgressHandler) GetProgress(w http.ResponseWriter, r *http.Request) {
	summary, err := h.progressService.LoadProgress(r.PathValue("id"))
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Internal server error", "Error loading progress", err)
		return
	}

	respondWithJSON(w, http.StatusOK, toProgressView(summary))
}

// CompleteTeaching marks the teaching step for a table as finished
func (h *ProgressHandler) CompleteTeaching(w http.ResponseWriter, r *http.Request) {
	tableNumber, ok := parseTableNumber(w, r)
	if !ok {
		return
	}

	if err := h.progressService.CompleteTeaching(r.PathValue("id"), tableNumber); err != nil {
		respondWithError(w, http.StatusInternalServerError, "Internal server error", "Error completing teaching", err)
		return
	}

	respondWithJSON(w, http.StatusOK, nil)
}

// CompleteGuidedPractice marks guided practice for a table as finished
func (h *ProgressHandler) CompleteGuidedPractice(w http.ResponseWriter, r *http.Request) {
	tableNumber, ok := parseTableNumber(w, r)
	if !ok {
		return
	}

	if err := h.progressService.CompleteGuidedPractice(r.PathValue("id"), tableNumber); err != nil {
		respondWithError(w, http.StatusInternalServerError, "Internal server error", "Error completing guided practice", err)
		return
	}

	respondWithJSON(w, http.StatusOK, nil)
}

// SubmitQuiz records a completed quiz: stores the attempt, feeds every
// problem into the fact engine, updates table mastery, credits the daily
// streak and reports any newly unlocked characters.
func (h *ProgressHandler) SubmitQuiz(w http.ResponseWriter, r *http.Request) {
	profileID := r.PathValue("id")
	tableNumber, ok := parseTableNumber(w, r)
	if !ok {
		return
	}

	var req submitQuizRequest
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if len(req.Problems) == 0 {
		http.Error(w, "Quiz must contain at least one problem", http.StatusBadRequest)
		return
	}

	profile, err := h.profileService.GetProfile(profileID)
	if err != nil {
		if errors.Is(err, service.ErrProfileNotFound) {
			http.Error(w, "Profile not found", http.StatusNotFound)
			return
		}
		respondWithError(w, http.StatusInternalServerError, "Internal server error", "Error getting profile", err)
		return
	}

	attempt := &models.QuizAttempt{
		ProfileID:        profileID,
		TableNumber:      tableNumber,
		TotalProblems:    len(req.Problems),
		TimeSpentSeconds: req.TimeSpentSeconds,
	}
	for _, p := range req.Problems {
		if p.IsCorrect {
			attempt.CorrectAnswers++
		}
		attempt.Problems = append(attempt.Problems, models.QuizProblem{
			Multiplicand:   p.Multiplicand,
			Multiplier:     p.Multiplier,
			CorrectAnswer:  p.CorrectAnswer,
			UserAnswer:     p.UserAnswer,
			IsCorrect:      p.IsCorrect,
			TimeToAnswerMs: p.TimeToAnswerMs,
		})

		fact := models.FactKey(p.Multiplicand, models.OpMultiplication, p.Multiplier)
		if _, err := h.factService.RecordFactAttempt(profileID, fact, p.IsCorrect); err != nil {
			respondWithError(w, http.StatusInternalServerError, "Internal server error", "Error recording fact attempt", err)
			return
		}
	}

	if err := h.progressService.SaveQuizAttempt(attempt); err != nil {
		respondWithError(w, http.StatusInternalServerError, "Internal server error", "Error saving quiz attempt", err)
		return
	}

	score := attempt.Score()
	mastered, err := h.progressService.UpdateMastery(profileID, tableNumber, score)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Internal server error", "Error updating mastery", err)
		return
	}

	milestone, err := h.streakService.UpdateDailyStreak(profileID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Internal server error", "Error updating streak", err)
		return
	}

	newCharacters, err := h.characterService.CheckAndUnlockCharacters(profileID, profile.Theme)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Internal server error", "Error checking character unlocks", err)
		return
	}

	resp := submitQuizResponse{
		AttemptID:     attempt.ID,
		Score:         score,
		Mastered:      mastered,
		NewCharacters: toCharacterViews(newCharacters),
	}
	if milestone != nil {
		resp.Milestone = &MilestoneView{Days: milestone.Days, Bonus: milestone.Bonus, Message: milestone.Message}
	}
	respondWithJSON(w, http.StatusOK, resp)
}

// RecordFactAttempt feeds a single answer into the spaced-repetition engine
func (h *ProgressHandler) RecordFactAttempt(w http.ResponseWriter, r *http.Request) {
	var req recordFactRequest
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Fact == "" {
		http.Error(w, "Fact is required", http.StatusBadRequest)
		return
	}

	stat, err := h.factService.RecordFactAttempt(r.PathValue("id"), req.Fact, req.Correct)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Internal server error", "Error recording fact attempt", err)
		return
	}

	respondWithJSON(w, http.StatusOK, toFactStatView(*stat))
}

// DueFacts returns the facts whose review date has arrived
func (h *ProgressHandler) DueFacts(w http.ResponseWriter, r *http.Request) {
	stats, err := h.factService.DueFacts(r.PathValue("id"))
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Internal server error", "Error loading due facts", err)
		return
	}

	views := make([]FactStatView, 0, len(stats))
	for _, s := range stats {
		views = append(views, toFactStatView(s))
	}
	respondWithJSON(w, http.StatusOK, views)
}

// AwardStars credits stars to both the spendable and lifetime totals
func (h *ProgressHandler) AwardStars(w http.ResponseWriter, r *http.Request) {
	var req starsRequest
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Amount <= 0 {
		http.Error(w, "Amount must be positive", http.StatusBadRequest)
		return
	}

	profileID := r.PathValue("id")
	if err := h.streakService.AddStars(profileID, req.Amount); err != nil {
		respondWithError(w, http.StatusInternalServerError, "Internal server error", "Error awarding stars", err)
		return
	}

	balance, err := h.streakService.GetStarBalance(profileID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Internal server error", "Error loading star balance", err)
		return
	}

	respondWithJSON(w, http.StatusOK, StarBalanceView{
		TotalStars:    balance.TotalStars,
		LifetimeStars: balance.LifetimeStars,
	})
}

// SpendStars deducts stars from the spendable balance
func (h *ProgressHandler) SpendStars(w http.ResponseWriter, r *http.Request) {
	var req starsRequest
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	profileID := r.PathValue("id")
	if err := h.streakService.SpendStars(profileID, req.Amount); err != nil {
		if errors.Is(err, service.ErrInsufficientStars) {
			http.Error(w, "Not enough stars", http.StatusConflict)
			return
		}
		respondWithError(w, http.StatusInternalServerError, "Internal server error", "Error spending stars", err)
		return
	}

	balance, err := h.streakService.GetStarBalance(profileID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Internal server error", "Error loading star balance", err)
		return
	}

	respondWithJSON(w, http.StatusOK, StarBalanceView{
		TotalStars:    balance.TotalStars,
		LifetimeStars: balance.LifetimeStars,
	})
}

// ApplyAssessment records the onboarding assessment and unlocks tables
func (h *ProgressHandler) ApplyAssessment(w http.ResponseWriter, r *http.Request) {
	var req assessmentRequest
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	for _, t := range req.KnownTables {
		if err := validation.ValidateTableNumber(t); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}
	if err := validation.ValidateTableNumber(req.SuggestedStartTable); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	result := &models.AssessmentResult{
		ProfileID:           r.PathValue("id"),
		KnownTables:         req.KnownTables,
		SuggestedStartTable: req.SuggestedStartTable,
		CompletedAt:         time.Now(),
	}
	if err := h.progressService.ApplyAssessment(result); err != nil {
		respondWithError(w, http.StatusInternalServerError, "Internal server error", "Error applying assessment", err)
		return
	}

	respondWithJSON(w, http.StatusOK, nil)
}

// GetAssessment returns a profile's assessment result, 404 if never assessed
func (h *ProgressHandler) GetAssessment(w http.ResponseWriter, r *http.Request) {
	result, err := h.progressService.GetAssessment(r.PathValue("id"))
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Internal server error", "Error loading assessment", err)
		return
	}
	if result == nil {
		http.Error(w, "No assessment recorded", http.StatusNotFound)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"knownTables":         result.KnownTables,
		"suggestedStartTable": result.SuggestedStartTable,
		"completedAt":         result.CompletedAt.Format(time.RFC3339),
	})
}

// SaveSession records one sitting of app usage for the parent dashboard
func (h *ProgressHandler) SaveSession(w http.ResponseWriter, r *http.Request) {
	var req saveSessionRequest
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	session := &models.Session{
		ProfileID:         r.PathValue("id"),
		StartTime:         req.StartTime,
		EndTime:           req.EndTime,
		TablesWorked:      req.TablesWorked,
		ProblemsAttempted: req.ProblemsAttempted,
		ProblemsCorrect:   req.ProblemsCorrect,
	}
	if err := h.progressService.SaveSession(session); err != nil {
		respondWithError(w, http.StatusInternalServerError, "Internal server error", "Error saving session", err)
		return
	}

	respondWithJSON(w, http.StatusCreated, map[string]string{"id": session.ID})
}

func parseTableNumber(w http.ResponseWriter, r *http.Request) (int, bool) {
	tableNumber, err := strconv.Atoi(r.PathValue("table"))
	if err != nil {
		http.Error(w, "Invalid table number", http.StatusBadRequest)
		return 0, false
	}
	if err := validation.ValidateTableNumber(tableNumber); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return 0, false
	}
	return tableNumber, true
}
