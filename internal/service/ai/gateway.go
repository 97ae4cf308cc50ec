package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	"github.com/AI-killer-project-team/backend/internal/config"
	"github.com/AI-killer-project-team/backend/internal/model/report"
	"github.com/AI-killer-project-team/backend/internal/service/company"
)

// QuestionRequest is the context handed to question generation.
type QuestionRequest struct {
	CompanyID     string
	JobID         string
	ResumeText    string
	SelfIntroText string
	JDText        string
	Style         string
	Count         int
}

// Feedback pairs a model answer with a one-sentence coaching comment.
type Feedback struct {
	ModelAnswer string `json:"model_answer"`
	Feedback    string `json:"feedback"`
}

// AnswerContext is the per-answer slice of session state shared with the
// summary prompt.
type AnswerContext struct {
	QuestionID     string  `json:"question_id"`
	AnswerSeconds  float64 `json:"answer_seconds"`
	Transcript     string  `json:"transcript,omitempty"`
	WordsPerMinute float64 `json:"words_per_min"`
}

// Gateway is the text-generation capability consumed by the question
// generator and the report builder. Every call is best-effort: callers treat
// errors as "content unavailable, retry on a later request" and a nil Gateway
// as generation being unconfigured.
type Gateway interface {
	Questions(ctx context.Context, req QuestionRequest) ([]string, error)
	ModelAnswer(ctx context.Context, companyID, jobID, questionText string) (string, error)
	Feedback(ctx context.Context, companyID, jobID, questionText, transcript string) (Feedback, error)
	SummaryLines(ctx context.Context, summary report.Summary, answers []AnswerContext) ([]string, error)
}

// Service implements Gateway on top of an Ark chat model driven through a
// compiled eino chain.
type Service struct {
	chatModel model.ChatModel
	directory *company.Directory
	timeout   time.Duration
	chain     compose.Runnable[map[string]any, *schema.Message]
}

// NewService creates the generation service and compiles its prompt chain.
func NewService(ctx context.Context, directory *company.Directory, cfg config.AIConfig) (*Service, error) {
	chatModel, err := cfg.NewChatModel(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat model: %w", err)
	}

	promptTemplate := prompt.FromMessages(
		schema.FString,
		schema.SystemMessage("{system}"),
		schema.UserMessage("{query}"),
	)

	chain := compose.NewChain[map[string]any, *schema.Message]()
	chain.AppendChatTemplate(promptTemplate)
	chain.AppendChatModel(chatModel)

	runnable, err := chain.Compile(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compile generation chain: %w", err)
	}

	return &Service{
		chatModel: chatModel,
		directory: directory,
		timeout:   time.Duration(cfg.TimeoutSeconds) * time.Second,
		chain:     runnable,
	}, nil
}

// Questions asks the model for req.Count Korean interview questions.
func (s *Service) Questions(ctx context.Context, req QuestionRequest) ([]string, error) {
	text, err := s.invoke(ctx, questionSystemPrompt, s.buildQuestionQuery(req))
	if err != nil {
		return nil, err
	}

	var questions []string
	if err := decodeJSON(text, &questions); err != nil {
		return nil, fmt.Errorf("failed to parse question list: %w", err)
	}

	out := make([]string, 0, len(questions))
	for _, q := range questions {
		if q = strings.TrimSpace(q); q != "" {
			out = append(out, q)
		}
	}
	log.Printf("[ai] generated %d question candidates for company=%s job=%s", len(out), req.CompanyID, req.JobID)
	return out, nil
}

// ModelAnswer asks the model for a short model-answer outline for a question.
func (s *Service) ModelAnswer(ctx context.Context, companyID, jobID, questionText string) (string, error) {
	text, err := s.invoke(ctx, modelAnswerSystemPrompt, s.buildModelAnswerQuery(companyID, jobID, questionText))
	if err != nil {
		return "", err
	}

	var payload struct {
		ModelAnswer string `json:"model_answer"`
	}
	if err := decodeJSON(text, &payload); err != nil {
		return "", fmt.Errorf("failed to parse model answer: %w", err)
	}
	return strings.TrimSpace(payload.ModelAnswer), nil
}

// Feedback asks the model for a model answer plus a single feedback sentence
// grounded in the candidate's transcript.
func (s *Service) Feedback(ctx context.Context, companyID, jobID, questionText, transcript string) (Feedback, error) {
	text, err := s.invoke(ctx, feedbackSystemPrompt, s.buildFeedbackQuery(companyID, jobID, questionText, transcript))
	if err != nil {
		return Feedback{}, err
	}

	var fb Feedback
	if err := decodeJSON(text, &fb); err != nil {
		return Feedback{}, fmt.Errorf("failed to parse feedback: %w", err)
	}
	fb.ModelAnswer = strings.TrimSpace(fb.ModelAnswer)
	fb.Feedback = strings.TrimSpace(fb.Feedback)
	return fb, nil
}

// SummaryLines asks the model for exactly three Korean coaching lines.
func (s *Service) SummaryLines(ctx context.Context, summary report.Summary, answers []AnswerContext) ([]string, error) {
	text, err := s.invoke(ctx, summarySystemPrompt, buildSummaryQuery(summary, answers))
	if err != nil {
		return nil, err
	}

	var raw []string
	if err := decodeJSON(text, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse summary lines: %w", err)
	}

	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines, nil
}

// invoke runs the chain with a bounded timeout so a stalled upstream call
// cannot hang a report request.
func (s *Service) invoke(ctx context.Context, system, query string) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	response, err := s.chain.Invoke(callCtx, map[string]any{
		"system": system,
		"query":  query,
	})
	if err != nil {
		return "", fmt.Errorf("failed to run generation chain: %w", err)
	}
	return response.Content, nil
}

// decodeJSON unmarshals model output, tolerating markdown code fences around
// the JSON body.
func decodeJSON(text string, v any) error {
	cleaned := strings.TrimSpace(text)
	if strings.HasPrefix(cleaned, "```") {
		cleaned = strings.TrimPrefix(cleaned, "```json")
		cleaned = strings.TrimPrefix(cleaned, "```")
		if idx := strings.LastIndex(cleaned, "```"); idx >= 0 {
			cleaned = cleaned[:idx]
		}
		cleaned = strings.TrimSpace(cleaned)
	}
	if cleaned == "" {
		return fmt.Errorf("empty generation output")
	}
	return json.Unmarshal([]byte(cleaned), v)
}
