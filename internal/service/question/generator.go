package question

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"

	"github.com/AI-killer-project-team/backend/internal/config"
	"github.com/AI-killer-project-team/backend/internal/model/interview"
	"github.com/AI-killer-project-team/backend/internal/service/ai"
	"github.com/AI-killer-project-team/backend/internal/service/company"
)

const selfIntroQuestion = "간단히 자기소개를 해주세요."

const fillerQuestion = "어려운 상황을 겪었던 경험과 그 상황을 어떻게 해결했는지 말씀해 주세요."

// Params carries everything question generation may condition on.
type Params struct {
	CompanyID     string
	JobID         string
	ResumeText    string
	SelfIntroText string
	JDText        string
	Style         string
	Count         int
}

// Generator produces the ordered question list for a new session. When a
// generation gateway is configured it is asked first; the rule-based list
// fills whatever the gateway could not provide.
type Generator struct {
	directory *company.Directory
	gateway   ai.Gateway
	cfg       config.InterviewConfig
}

// NewGenerator wires the generator. gateway may be nil.
func NewGenerator(directory *company.Directory, gateway ai.Gateway, cfg config.InterviewConfig) *Generator {
	return &Generator{directory: directory, gateway: gateway, cfg: cfg}
}

// Generate returns exactly params.Count deduplicated questions, the first
// always a self-introduction prompt, each with a fresh id and the configured
// time limit.
func (g *Generator) Generate(ctx context.Context, params Params) []interview.Question {
	count := params.Count
	if count < 1 {
		count = g.cfg.DefaultQuestionCount
	}

	var texts []string
	if g.gateway != nil {
		generated, err := g.gateway.Questions(ctx, ai.QuestionRequest{
			CompanyID:     params.CompanyID,
			JobID:         params.JobID,
			ResumeText:    params.ResumeText,
			SelfIntroText: params.SelfIntroText,
			JDText:        params.JDText,
			Style:         params.Style,
			Count:         count,
		})
		if err != nil {
			log.Printf("[question] generation unavailable, using templates: %v", err)
		} else {
			texts = generated
		}
	}

	texts = append(texts, g.templateQuestions(params)...)
	texts = normalize(texts, count)

	questions := make([]interview.Question, 0, len(texts))
	for _, text := range texts {
		questions = append(questions, interview.Question{
			ID:               strings.ReplaceAll(uuid.NewString(), "-", ""),
			Text:             text,
			TimeLimitSeconds: g.cfg.TimeLimitSeconds,
		})
	}
	return questions
}

// templateQuestions is the rule-based question list used when the gateway is
// absent or comes up short.
func (g *Generator) templateQuestions(params Params) []string {
	companyName := "저희 회사"
	jobTitle := "지원 직무"
	var focusPoints []string

	if g.directory != nil {
		if c, ok := g.directory.LookupCompany(params.CompanyID); ok && c.Name != "" {
			companyName = c.Name
		}
		if j, ok := g.directory.LookupJob(params.CompanyID, params.JobID); ok {
			if j.Title != "" {
				jobTitle = j.Title
			}
			focusPoints = j.FocusPoints
		}
	}

	texts := []string{
		selfIntroQuestion,
		fmt.Sprintf("%s의 %s 직무에 지원한 이유는 무엇인가요?", companyName, jobTitle),
	}

	if params.ResumeText != "" || params.SelfIntroText != "" {
		texts = append(texts, "이력서에서 본인의 강점을 가장 잘 보여주는 프로젝트나 경험을 말씀해 주세요.")
	}
	if params.JDText != "" {
		texts = append(texts, "채용 공고의 요구사항 중 본인과 가장 잘 맞는 항목은 무엇이며, 그 이유는 무엇인가요?")
	}
	for _, point := range focusPoints {
		texts = append(texts, fmt.Sprintf("%s 관련 경험이 있다면 사례를 들어 말씀해 주세요.", point))
	}

	return texts
}

// normalize deduplicates, forces the self-introduction prompt into the first
// slot, pads with generic filler and clamps to count entries.
func normalize(texts []string, count int) []string {
	seen := make(map[string]struct{}, len(texts))
	out := []string{selfIntroQuestion}
	seen[selfIntroQuestion] = struct{}{}

	for i, text := range texts {
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		// A gateway-produced first entry is its own self-introduction
		// wording; the fixed prompt already covers it.
		if i == 0 && looksLikeSelfIntro(text) {
			continue
		}
		if _, ok := seen[text]; ok {
			continue
		}
		seen[text] = struct{}{}
		out = append(out, text)
		if len(out) == count {
			return out
		}
	}

	for len(out) < count {
		candidate := fillerQuestion
		if _, ok := seen[candidate]; ok {
			candidate = fmt.Sprintf("%s (%d)", fillerQuestion, len(out)+1)
		}
		seen[candidate] = struct{}{}
		out = append(out, candidate)
	}
	return out[:count]
}

func looksLikeSelfIntro(text string) bool {
	return strings.Contains(text, "자기소개") || strings.Contains(strings.ToLower(text), "introduce yourself")
}
