package session

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/AI-killer-project-team/backend/internal/model/interview"
	"github.com/AI-killer-project-team/backend/internal/service/question"
	sessionService "github.com/AI-killer-project-team/backend/internal/service/session"
	"github.com/AI-killer-project-team/backend/pkg/utils"
)

// Handler serves session lifecycle endpoints.
type Handler struct {
	store     *sessionService.Store
	generator *question.Generator
}

// New creates the session handler.
func New(store *sessionService.Store, generator *question.Generator) *Handler {
	return &Handler{store: store, generator: generator}
}

// RegisterRoutes mounts the session routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/session/start", h.handleStart)
	r.Post("/session/end", h.handleEnd)
}

type startRequest struct {
	CompanyID       string  `json:"company_id"`
	JobID           string  `json:"job_id"`
	ResumeText      string  `json:"resume_text"`
	SelfIntroText   string  `json:"self_intro_text"`
	JDText          string  `json:"jd_text"`
	QuestionCount   int     `json:"question_count"`
	Voice           string  `json:"voice"`
	Style           string  `json:"style"`
	TTSInstructions string  `json:"tts_instructions"`
	TTSSpeed        float64 `json:"tts_speed"`
}

type startResponse struct {
	SessionID      string             `json:"session_id"`
	TotalQuestions int                `json:"total_questions"`
	Question       interview.Question `json:"question"`
}

func (h *Handler) handleStart(w http.ResponseWriter, r *http.Request) {
	var payload startRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if payload.CompanyID == "" || payload.JobID == "" {
		utils.RespondError(w, http.StatusBadRequest, "company_id and job_id are required")
		return
	}
	if payload.QuestionCount < 0 {
		utils.RespondError(w, http.StatusBadRequest, "question_count must be positive")
		return
	}

	switch payload.Style {
	case "", "friendly", "pressure":
	default:
		utils.RespondError(w, http.StatusBadRequest, "style must be friendly or pressure")
		return
	}

	questions := h.generator.Generate(r.Context(), question.Params{
		CompanyID:     payload.CompanyID,
		JobID:         payload.JobID,
		ResumeText:    payload.ResumeText,
		SelfIntroText: payload.SelfIntroText,
		JDText:        payload.JDText,
		Style:         payload.Style,
		Count:         payload.QuestionCount,
	})

	sess, err := h.store.Create(r.Context(), sessionService.CreateParams{
		CompanyID:     payload.CompanyID,
		JobID:         payload.JobID,
		ResumeText:    payload.ResumeText,
		SelfIntroText: payload.SelfIntroText,
		JDText:        payload.JDText,
		Delivery: interview.Delivery{
			Voice:        payload.Voice,
			Style:        payload.Style,
			Instructions: payload.TTSInstructions,
			Speed:        payload.TTSSpeed,
		},
		Questions: questions,
	})
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "failed to create session")
		return
	}

	first, err := h.store.NextQuestion(r.Context(), sess.ID)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "failed to serve first question")
		return
	}

	utils.RespondJSON(w, http.StatusCreated, startResponse{
		SessionID:      sess.ID,
		TotalQuestions: len(sess.Questions),
		Question:       first,
	})
}

func (h *Handler) handleEnd(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		SessionID string `json:"session_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if _, err := h.store.Get(r.Context(), payload.SessionID); err != nil {
		if errors.Is(err, sessionService.ErrSessionNotFound) {
			utils.RespondError(w, http.StatusNotFound, "session not found")
			return
		}
		utils.RespondError(w, http.StatusInternalServerError, "failed to load session")
		return
	}

	h.store.End(r.Context(), payload.SessionID)
	utils.RespondJSON(w, http.StatusOK, map[string]string{"status": "ended"})
}
