package ai

import (
	"encoding/json"
	"fmt"

	"github.com/AI-killer-project-team/backend/internal/model/report"
)

const (
	questionSystemPrompt = "You are a Korean interview coach. " +
		"Generate distinct interview questions in Korean for the given company, job and candidate context. " +
		"The first question MUST ask the candidate for a short self-introduction. " +
		"Return ONLY a JSON array of question strings."

	modelAnswerSystemPrompt = "You are a Korean interview coach. " +
		"Provide a short model answer structure in Korean for the question. " +
		"Return ONLY JSON with the key: model_answer."

	feedbackSystemPrompt = "You are a Korean interview coach. " +
		"Provide a short model answer structure and a one-sentence feedback (one strength + one improvement) in Korean. " +
		"Return ONLY JSON with keys: model_answer, feedback."

	summarySystemPrompt = "You are a Korean interview coach. " +
		"Summarize the interview performance in exactly 3 concise Korean lines. " +
		"Return ONLY a JSON array of strings."
)

func (s *Service) companyContext(companyID, jobID string) map[string]any {
	ctx := map[string]any{"company_id": companyID, "job_id": jobID}

	if s.directory == nil {
		return ctx
	}
	if c, ok := s.directory.LookupCompany(companyID); ok {
		ctx["company"] = map[string]any{
			"name":           c.Name,
			"summary":        c.Summary,
			"talent_profile": c.TalentProfile,
			"culture_fit":    c.CultureFit,
		}
	}
	if j, ok := s.directory.LookupJob(companyID, jobID); ok {
		ctx["job"] = map[string]any{
			"title":        j.Title,
			"focus_points": j.FocusPoints,
		}
	}
	return ctx
}

func (s *Service) buildQuestionQuery(req QuestionRequest) string {
	payload := s.companyContext(req.CompanyID, req.JobID)
	payload["resume_text"] = req.ResumeText
	payload["self_intro_text"] = req.SelfIntroText
	payload["jd_text"] = req.JDText
	payload["style"] = req.Style
	payload["constraints"] = map[string]any{
		"language": "ko",
		"count":    req.Count,
		"format":   "JSON array of strings",
	}
	return marshalQuery(payload)
}

func (s *Service) buildModelAnswerQuery(companyID, jobID, questionText string) string {
	payload := s.companyContext(companyID, jobID)
	payload["question"] = questionText
	payload["constraints"] = map[string]any{
		"language": "ko",
		"schema":   map[string]string{"model_answer": "string"},
	}
	return marshalQuery(payload)
}

func (s *Service) buildFeedbackQuery(companyID, jobID, questionText, transcript string) string {
	payload := s.companyContext(companyID, jobID)
	payload["question"] = questionText
	payload["answer"] = transcript
	payload["constraints"] = map[string]any{
		"language": "ko",
		"schema": map[string]string{
			"model_answer": "string",
			"feedback":     "string (one sentence: good + improve)",
		},
	}
	return marshalQuery(payload)
}

func buildSummaryQuery(summary report.Summary, answers []AnswerContext) string {
	payload := map[string]any{
		"summary": map[string]any{
			"average_seconds":       summary.AverageSeconds,
			"min_seconds":           summary.MinSeconds,
			"max_seconds":           summary.MaxSeconds,
			"std_dev_seconds":       summary.StdDevSeconds,
			"average_words_per_min": summary.AverageWordsPerMin,
			"pace":                  summary.Pace,
		},
		"answers": answers,
		"constraints": map[string]any{
			"language": "ko",
			"lines":    3,
			"format":   "JSON array of strings",
		},
	}
	return marshalQuery(payload)
}

func marshalQuery(payload map[string]any) string {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Sprintf("Context: %v", payload)
	}
	return "Context: " + string(data)
}
