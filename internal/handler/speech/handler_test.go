package speech

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/AI-killer-project-team/backend/internal/model/interview"
	sessionService "github.com/AI-killer-project-team/backend/internal/service/session"
)

func setupRouter(t *testing.T) (*chi.Mux, interview.Session) {
	t.Helper()

	store := sessionService.NewStore()
	sess, err := store.Create(context.Background(), sessionService.CreateParams{
		CompanyID: "nexon-kr",
		JobID:     "server-dev",
		Questions: []interview.Question{
			{ID: "q1", Text: "자기소개를 해주세요.", TimeLimitSeconds: 120},
		},
	})
	if err != nil {
		t.Fatalf("Create err: %v", err)
	}

	handler := New(store, nil)
	r := chi.NewRouter()
	handler.RegisterRoutes(r)
	return r, sess
}

func postJSON(t *testing.T, r http.Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal err: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func TestSpeakUnconfigured(t *testing.T) {
	r, sess := setupRouter(t)

	resp := postJSON(t, r, "/tts/speak", map[string]string{
		"session_id": sess.ID,
		"text":       "읽어 주세요",
	})

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 when synthesis is unconfigured, got %d", resp.Code)
	}
	var body struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal err: %v", err)
	}
	if body.Error == "" {
		t.Fatal("expected a JSON error body")
	}
}

func TestSpeakUnknownSession(t *testing.T) {
	r, _ := setupRouter(t)

	resp := postJSON(t, r, "/tts/speak", map[string]string{
		"session_id": "missing",
		"text":       "읽어 주세요",
	})
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}

func TestSpeakMissingText(t *testing.T) {
	r, sess := setupRouter(t)

	resp := postJSON(t, r, "/tts/speak", map[string]string{"session_id": sess.ID})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing text, got %d", resp.Code)
	}
}

func TestSpeakResolvesQuestionText(t *testing.T) {
	r, sess := setupRouter(t)

	// Resolving text from the question id happens before the synthesis
	// availability check, so an unknown question id surfaces as missing text.
	resp := postJSON(t, r, "/tts/speak", map[string]string{
		"session_id":  sess.ID,
		"question_id": "missing",
	})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unresolvable question text, got %d", resp.Code)
	}
}
