package report

import (
	"context"
	"log"

	"github.com/AI-killer-project-team/backend/internal/analysis/answer"
	"github.com/AI-killer-project-team/backend/internal/model/interview"
	"github.com/AI-killer-project-team/backend/internal/model/report"
	"github.com/AI-killer-project-team/backend/internal/service/ai"
	"github.com/AI-killer-project-team/backend/internal/service/session"
	"github.com/AI-killer-project-team/backend/pkg/utils"
)

// unreliableFeedback is the terminal notice stored when the transcript was
// too poor to coach on. Once set it is never replaced by generated feedback.
const unreliableFeedback = "음성 인식이 충분하지 않아 피드백을 생성하지 못했습니다. 조용한 환경에서 또박또박 다시 답변해 주세요."

// fallbackSummaryLines is served when no generated summary is available. It
// is deliberately not cached so a later report request can still attempt real
// generation.
var fallbackSummaryLines = []string{
	"답변 시간을 일정하게 유지하며 핵심부터 말하는 연습을 해보세요.",
	"결론-근거-사례 순서로 답변을 구성하면 전달력이 좋아집니다.",
	"조용한 환경에서 또렷하게 답변을 녹음하면 더 정확한 피드백을 받을 수 있습니다.",
}

// Builder assembles session reports, degrading gracefully whenever generated
// content is unavailable.
type Builder struct {
	store   *session.Store
	gateway ai.Gateway
}

// NewBuilder wires the report builder. gateway may be nil when generation is
// unconfigured.
func NewBuilder(store *session.Store, gateway ai.Gateway) *Builder {
	return &Builder{store: store, gateway: gateway}
}

// Build produces a complete report for the session at its current state. No
// questions need to be answered; generation failures never escape, they only
// leave optional fields empty or fall back to fixed content.
func (b *Builder) Build(ctx context.Context, sessionID string) (report.Report, error) {
	sess, err := b.store.Get(ctx, sessionID)
	if err != nil {
		return report.Report{}, err
	}

	ordered := orderedAnswers(sess)
	summary := aggregate(ordered)

	reliable := make(map[string]bool, len(ordered))
	reliableCount := 0
	for _, rec := range ordered {
		ok := rec.Transcript != "" && answer.IsReliable(rec.Transcript)
		reliable[rec.QuestionID] = ok
		if ok {
			reliableCount++
		}
	}

	summary.Lines = b.summaryLines(ctx, sess, summary, ordered, reliableCount)

	questionText := make(map[string]string, len(sess.Questions))
	for _, q := range sess.Questions {
		questionText[q.ID] = q.Text
	}

	answers := make([]report.Answer, 0, len(ordered))
	for _, rec := range ordered {
		enriched := b.enrich(ctx, sess, rec, questionText[rec.QuestionID], reliable[rec.QuestionID])
		answers = append(answers, report.Answer{
			QuestionID:     enriched.QuestionID,
			QuestionText:   questionText[enriched.QuestionID],
			AnswerSeconds:  enriched.AnswerSeconds,
			Transcript:     enriched.Transcript,
			WordCount:      enriched.WordCount,
			WordsPerMinute: enriched.WordsPerMinute,
			Pace:           string(answer.PaceLabel(enriched.WordsPerMinute)),
			Reliable:       reliable[enriched.QuestionID],
			ModelAnswer:    enriched.ModelAnswer,
			Feedback:       enriched.Feedback,
		})
	}

	return report.Report{
		SessionID:         sess.ID,
		TotalQuestions:    len(sess.Questions),
		AnsweredQuestions: len(answers),
		Summary:           summary,
		Answers:           answers,
	}, nil
}

// orderedAnswers reconstructs the answered list in question-sequence order,
// not answer-submission order. Records referencing unknown question ids are
// excluded rather than reported.
func orderedAnswers(sess interview.Session) []*interview.AnswerRecord {
	out := make([]*interview.AnswerRecord, 0, len(sess.Answers))
	for _, q := range sess.Questions {
		if rec, ok := sess.Answers[q.ID]; ok {
			out = append(out, rec)
		}
	}
	return out
}

func aggregate(ordered []*interview.AnswerRecord) report.Summary {
	var summary report.Summary
	if len(ordered) == 0 {
		summary.Pace = string(answer.PaceUnknown)
		return summary
	}

	times := make([]float64, 0, len(ordered))
	summary.MinSeconds = ordered[0].AnswerSeconds
	summary.MaxSeconds = ordered[0].AnswerSeconds
	for _, rec := range ordered {
		times = append(times, rec.AnswerSeconds)
		if rec.AnswerSeconds < summary.MinSeconds {
			summary.MinSeconds = rec.AnswerSeconds
		}
		if rec.AnswerSeconds > summary.MaxSeconds {
			summary.MaxSeconds = rec.AnswerSeconds
		}
	}
	summary.AverageSeconds = utils.Average(times)
	summary.StdDevSeconds = utils.StdDev(times)

	var rates []float64
	for _, rec := range ordered {
		if rec.WordsPerMinute > 0 {
			rates = append(rates, rec.WordsPerMinute)
		}
	}
	summary.AverageWordsPerMin = utils.Average(rates)
	summary.Pace = string(answer.PaceLabel(summary.AverageWordsPerMin))

	return summary
}

// summaryLines applies the memoize-once policy: a cached summary is reused
// unconditionally; a successful non-empty generation is cached; everything
// else falls back to the fixed lines without touching the cache.
func (b *Builder) summaryLines(ctx context.Context, sess interview.Session, summary report.Summary, ordered []*interview.AnswerRecord, reliableCount int) []string {
	if len(sess.SummaryLines) > 0 {
		return sess.SummaryLines
	}

	if b.gateway != nil && reliableCount > 0 {
		answers := make([]ai.AnswerContext, 0, len(ordered))
		for _, rec := range ordered {
			answers = append(answers, ai.AnswerContext{
				QuestionID:     rec.QuestionID,
				AnswerSeconds:  rec.AnswerSeconds,
				Transcript:     rec.Transcript,
				WordsPerMinute: rec.WordsPerMinute,
			})
		}

		lines, err := b.gateway.SummaryLines(ctx, summary, answers)
		if err != nil {
			log.Printf("[report] summary generation failed for session=%s: %v", sess.ID, err)
		} else if len(lines) > 0 {
			cached, err := b.store.SetSummaryLines(ctx, sess.ID, lines)
			if err == nil {
				return cached
			}
			log.Printf("[report] failed to cache summary for session=%s: %v", sess.ID, err)
			return lines
		}
	}

	return fallbackSummaryLines
}

// enrich fills the record's generated fields per the fill-once policy and
// returns the record with whatever could be filled this time.
func (b *Builder) enrich(ctx context.Context, sess interview.Session, rec *interview.AnswerRecord, questionText string, isReliable bool) *interview.AnswerRecord {
	if rec.Transcript == "" || !isReliable {
		if rec.ModelAnswer == "" && b.gateway != nil {
			modelAnswer, err := b.gateway.ModelAnswer(ctx, sess.CompanyID, sess.JobID, questionText)
			if err != nil {
				log.Printf("[report] model answer generation failed for session=%s question=%s: %v", sess.ID, rec.QuestionID, err)
			} else if modelAnswer != "" {
				if err := b.store.SetModelAnswer(ctx, sess.ID, rec.QuestionID, modelAnswer); err == nil {
					rec.ModelAnswer = modelAnswer
				}
			}
		}
		if rec.Feedback == "" {
			if err := b.store.SetFeedback(ctx, sess.ID, rec.QuestionID, unreliableFeedback); err == nil {
				rec.Feedback = unreliableFeedback
			}
		}
		return rec
	}

	if rec.Feedback == "" && b.gateway != nil {
		fb, err := b.gateway.Feedback(ctx, sess.CompanyID, sess.JobID, questionText, rec.Transcript)
		if err != nil {
			log.Printf("[report] feedback generation failed for session=%s question=%s: %v", sess.ID, rec.QuestionID, err)
		} else {
			if fb.ModelAnswer != "" && rec.ModelAnswer == "" {
				if err := b.store.SetModelAnswer(ctx, sess.ID, rec.QuestionID, fb.ModelAnswer); err == nil {
					rec.ModelAnswer = fb.ModelAnswer
				}
			}
			if fb.Feedback != "" {
				if err := b.store.SetFeedback(ctx, sess.ID, rec.QuestionID, fb.Feedback); err == nil {
					rec.Feedback = fb.Feedback
				}
			}
		}
	}

	if rec.ModelAnswer == "" && b.gateway != nil {
		modelAnswer, err := b.gateway.ModelAnswer(ctx, sess.CompanyID, sess.JobID, questionText)
		if err != nil {
			log.Printf("[report] model answer generation failed for session=%s question=%s: %v", sess.ID, rec.QuestionID, err)
		} else if modelAnswer != "" {
			if err := b.store.SetModelAnswer(ctx, sess.ID, rec.QuestionID, modelAnswer); err == nil {
				rec.ModelAnswer = modelAnswer
			}
		}
	}

	return rec
}
