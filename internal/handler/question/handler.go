package question

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/AI-killer-project-team/backend/internal/analysis/answer"
	"github.com/AI-killer-project-team/backend/internal/model/interview"
	sessionService "github.com/AI-killer-project-team/backend/internal/service/session"
	speechService "github.com/AI-killer-project-team/backend/internal/service/speech"
	"github.com/AI-killer-project-team/backend/pkg/utils"
)

// maxAudioBytes caps uploaded answer recordings.
const maxAudioBytes = 25 << 20

// Handler serves question flow endpoints: next question and answer
// submission.
type Handler struct {
	store  *sessionService.Store
	speech *speechService.Service
}

// New creates the question handler. speech may be nil; audio submissions then
// record timing only.
func New(store *sessionService.Store, speech *speechService.Service) *Handler {
	return &Handler{store: store, speech: speech}
}

// RegisterRoutes mounts the question routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/question/next", h.handleNext)
	r.Post("/question/answer", h.handleAnswer)
}

func (h *Handler) handleNext(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		SessionID string `json:"session_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	q, err := h.store.NextQuestion(r.Context(), payload.SessionID)
	if err != nil {
		switch {
		case errors.Is(err, sessionService.ErrSessionNotFound):
			utils.RespondError(w, http.StatusNotFound, "session not found")
		case errors.Is(err, sessionService.ErrNoMoreQuestions):
			utils.RespondError(w, http.StatusNotFound, "no more questions")
		default:
			utils.RespondError(w, http.StatusInternalServerError, "failed to serve question")
		}
		return
	}

	utils.RespondJSON(w, http.StatusOK, q)
}

type answerRequest struct {
	SessionID     string  `json:"session_id"`
	QuestionID    string  `json:"question_id"`
	AnswerSeconds float64 `json:"answer_seconds"`
	Transcript    string  `json:"transcript"`
}

func (h *Handler) handleAnswer(w http.ResponseWriter, r *http.Request) {
	var payload answerRequest
	var ok bool
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		payload, ok = h.parseMultipartAnswer(w, r)
	} else {
		payload, ok = parseJSONAnswer(w, r)
	}
	if !ok {
		return
	}

	sess, err := h.store.Get(r.Context(), payload.SessionID)
	if err != nil {
		utils.RespondError(w, http.StatusNotFound, "session not found")
		return
	}

	q, found := findQuestion(sess, payload.QuestionID)
	if !found {
		utils.RespondError(w, http.StatusNotFound, "question not found")
		return
	}

	if payload.AnswerSeconds < 0 || payload.AnswerSeconds > float64(q.TimeLimitSeconds) {
		utils.RespondError(w, http.StatusBadRequest, "answer_seconds out of range")
		return
	}

	wordCount, wordsPerMinute := answer.ComputeRate(payload.Transcript, payload.AnswerSeconds)

	if err := h.store.RecordAnswer(r.Context(), payload.SessionID, payload.QuestionID, payload.AnswerSeconds, payload.Transcript, wordCount, wordsPerMinute); err != nil {
		utils.RespondError(w, http.StatusNotFound, "session not found")
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]any{
		"status":        "ok",
		"word_count":    wordCount,
		"words_per_min": wordsPerMinute,
	})
}

func parseJSONAnswer(w http.ResponseWriter, r *http.Request) (answerRequest, bool) {
	var payload answerRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return answerRequest{}, false
	}
	return payload, true
}

// parseMultipartAnswer accepts the recorded-audio variant of answer
// submission. Transcription is best-effort: a failed or unconfigured speech
// service leaves the transcript empty and the submission still records
// timing.
func (h *Handler) parseMultipartAnswer(w http.ResponseWriter, r *http.Request) (answerRequest, bool) {
	if err := r.ParseMultipartForm(maxAudioBytes); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid multipart body")
		return answerRequest{}, false
	}

	seconds, err := strconv.ParseFloat(r.FormValue("answer_seconds"), 64)
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "answer_seconds must be a number")
		return answerRequest{}, false
	}

	payload := answerRequest{
		SessionID:     r.FormValue("session_id"),
		QuestionID:    r.FormValue("question_id"),
		AnswerSeconds: seconds,
		Transcript:    r.FormValue("transcript"),
	}

	if payload.Transcript == "" && h.speech != nil {
		if file, header, err := r.FormFile("audio"); err == nil {
			defer file.Close()
			audio, readErr := io.ReadAll(io.LimitReader(file, maxAudioBytes))
			if readErr != nil {
				utils.RespondError(w, http.StatusBadRequest, "failed to read audio")
				return answerRequest{}, false
			}
			transcript, transcribeErr := h.speech.Transcribe(r.Context(), audio, header.Filename)
			if transcribeErr != nil {
				log.Printf("[question] transcription unavailable for session=%s: %v", payload.SessionID, transcribeErr)
			} else {
				payload.Transcript = transcript
			}
		}
	}

	return payload, true
}

func findQuestion(sess interview.Session, questionID string) (interview.Question, bool) {
	for _, q := range sess.Questions {
		if q.ID == questionID {
			return q, true
		}
	}
	return interview.Question{}, false
}
