package speech

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	sessionService "github.com/AI-killer-project-team/backend/internal/service/session"
	speechService "github.com/AI-killer-project-team/backend/internal/service/speech"
	"github.com/AI-killer-project-team/backend/pkg/utils"
)

// Handler serves the question read-out endpoint.
type Handler struct {
	store  *sessionService.Store
	speech *speechService.Service
}

// New creates the speech handler.
func New(store *sessionService.Store, speech *speechService.Service) *Handler {
	return &Handler{store: store, speech: speech}
}

// RegisterRoutes mounts the speech routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/tts/speak", h.handleSpeak)
}

type speakRequest struct {
	SessionID      string  `json:"session_id"`
	QuestionID     string  `json:"question_id"`
	Text           string  `json:"text"`
	Voice          string  `json:"voice"`
	Instructions   string  `json:"instructions"`
	Speed          float64 `json:"speed"`
	ResponseFormat string  `json:"response_format"`
}

func (h *Handler) handleSpeak(w http.ResponseWriter, r *http.Request) {
	var payload speakRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	sess, err := h.store.Get(r.Context(), payload.SessionID)
	if err != nil {
		if errors.Is(err, sessionService.ErrSessionNotFound) {
			utils.RespondError(w, http.StatusNotFound, "session not found")
			return
		}
		utils.RespondError(w, http.StatusInternalServerError, "failed to load session")
		return
	}

	text := payload.Text
	if text == "" && payload.QuestionID != "" {
		for _, q := range sess.Questions {
			if q.ID == payload.QuestionID {
				text = q.Text
				break
			}
		}
	}
	if text == "" {
		utils.RespondError(w, http.StatusBadRequest, "text or question_id required")
		return
	}

	if h.speech == nil {
		utils.RespondError(w, http.StatusBadRequest, "speech synthesis not configured")
		return
	}

	voice := payload.Voice
	if voice == "" {
		voice = sess.Delivery.Voice
	}
	speed := payload.Speed
	if speed <= 0 {
		speed = sess.Delivery.Speed
	}
	instructions := payload.Instructions
	if instructions == "" {
		instructions = sess.Delivery.Instructions
	}

	audio, format, err := h.speech.Synthesize(r.Context(), speechService.SynthesisRequest{
		Text:         text,
		Voice:        voice,
		Style:        sess.Delivery.Style,
		Instructions: instructions,
		Speed:        speed,
		Format:       payload.ResponseFormat,
	})
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "failed to synthesize audio")
		return
	}

	contentType := "audio/mpeg"
	if format == "wav" {
		contentType = "audio/wav"
	}
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(audio)
}
