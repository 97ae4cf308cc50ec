package session

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/AI-killer-project-team/backend/internal/config"
	"github.com/AI-killer-project-team/backend/internal/service/company"
	questionService "github.com/AI-killer-project-team/backend/internal/service/question"
	sessionService "github.com/AI-killer-project-team/backend/internal/service/session"
)

func setupRouter() (*chi.Mux, *sessionService.Store) {
	store := sessionService.NewStore()
	generator := questionService.NewGenerator(company.NewDirectory(nil), nil, config.InterviewConfig{
		DefaultQuestionCount: 3,
		TimeLimitSeconds:     120,
	})
	handler := New(store, generator)

	r := chi.NewRouter()
	handler.RegisterRoutes(r)
	return r, store
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

func TestStartSession(t *testing.T) {
	r, _ := setupRouter()

	resp := postJSON(t, r, "/session/start", map[string]any{
		"company_id": "nexon-kr",
		"job_id":     "server-dev",
	})

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.Code, resp.Body.String())
	}

	var body struct {
		SessionID      string `json:"session_id"`
		TotalQuestions int    `json:"total_questions"`
		Question       struct {
			ID               string `json:"question_id"`
			Text             string `json:"text"`
			TimeLimitSeconds int    `json:"time_limit_seconds"`
		} `json:"question"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal err: %v", err)
	}
	if body.SessionID == "" {
		t.Fatal("expected a session id")
	}
	if body.TotalQuestions != 3 {
		t.Fatalf("expected 3 questions, got %d", body.TotalQuestions)
	}
	if body.Question.Text == "" || body.Question.TimeLimitSeconds != 120 {
		t.Fatalf("unexpected first question: %+v", body.Question)
	}
}

func TestStartSessionMissingFields(t *testing.T) {
	r, _ := setupRouter()

	resp := postJSON(t, r, "/session/start", map[string]any{"company_id": "nexon-kr"})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestStartSessionInvalidStyle(t *testing.T) {
	r, _ := setupRouter()

	resp := postJSON(t, r, "/session/start", map[string]any{
		"company_id": "nexon-kr",
		"job_id":     "server-dev",
		"style":      "hostile",
	})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestEndSession(t *testing.T) {
	r, store := setupRouter()

	start := postJSON(t, r, "/session/start", map[string]any{
		"company_id": "nexon-kr",
		"job_id":     "server-dev",
	})
	var body struct {
		SessionID string `json:"session_id"`
	}
	if err := json.Unmarshal(start.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal err: %v", err)
	}

	resp := postJSON(t, r, "/session/end", map[string]string{"session_id": body.SessionID})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	sess, err := store.Get(context.Background(), body.SessionID)
	if err != nil {
		t.Fatalf("Get err: %v", err)
	}
	if !sess.Ended {
		t.Fatal("expected session flagged ended")
	}
}

func TestEndSessionNotFound(t *testing.T) {
	r, _ := setupRouter()

	resp := postJSON(t, r, "/session/end", map[string]string{"session_id": "missing"})
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}
