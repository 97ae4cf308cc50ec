package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/AI-killer-project-team/backend/internal/model/interview"
)

var (
	ErrSessionNotFound  = errors.New("session not found")
	ErrNoMoreQuestions  = errors.New("no more questions")
	ErrAnswerNotFound   = errors.New("answer not found")
	ErrQuestionsMissing = errors.New("at least one question is required")
)

// CreateParams carries the immutable per-session inputs.
type CreateParams struct {
	CompanyID     string
	JobID         string
	ResumeText    string
	SelfIntroText string
	JDText        string
	Delivery      interview.Delivery
	Questions     []interview.Question
}

// Store is the in-memory session registry. It exclusively owns all sessions
// and their answer records; every mutation goes through a Store operation
// under the store lock, which also makes NextQuestion's read-increment atomic.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*interview.Session
}

// NewStore bootstraps an empty registry, created once at process start.
func NewStore() *Store {
	return &Store{sessions: make(map[string]*interview.Session)}
}

// Create allocates a session with a fresh identifier, cursor at 0 and an
// empty answer map. The question order is preserved verbatim.
func (s *Store) Create(_ context.Context, params CreateParams) (interview.Session, error) {
	if len(params.Questions) == 0 {
		return interview.Session{}, ErrQuestionsMissing
	}

	sess := &interview.Session{
		ID:            uuid.NewString(),
		CompanyID:     params.CompanyID,
		JobID:         params.JobID,
		CreatedAt:     time.Now().UTC(),
		ResumeText:    params.ResumeText,
		SelfIntroText: params.SelfIntroText,
		JDText:        params.JDText,
		Delivery:      params.Delivery,
		Questions:     append([]interview.Question(nil), params.Questions...),
		Answers:       make(map[string]*interview.AnswerRecord),
	}

	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()

	return snapshot(sess), nil
}

// Get returns a deep-copied snapshot of the session.
func (s *Store) Get(_ context.Context, sessionID string) (interview.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return interview.Session{}, ErrSessionNotFound
	}
	return snapshot(sess), nil
}

// NextQuestion returns the question at the cursor and advances it by one.
// Once the sequence is exhausted it returns ErrNoMoreQuestions without side
// effects; no question is ever dispensed twice.
func (s *Store) NextQuestion(_ context.Context, sessionID string) (interview.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return interview.Question{}, ErrSessionNotFound
	}
	if sess.CurrentIndex >= len(sess.Questions) {
		return interview.Question{}, ErrNoMoreQuestions
	}

	q := sess.Questions[sess.CurrentIndex]
	sess.CurrentIndex++
	return q, nil
}

// RecordAnswer inserts or overwrites the answer record for the question.
// Question membership is the caller's responsibility; concurrent submissions
// for the same question are last-write-wins.
func (s *Store) RecordAnswer(_ context.Context, sessionID, questionID string, seconds float64, transcript string, wordCount int, wordsPerMinute float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return ErrSessionNotFound
	}

	sess.Answers[questionID] = &interview.AnswerRecord{
		QuestionID:     questionID,
		AnswerSeconds:  seconds,
		Transcript:     transcript,
		WordCount:      wordCount,
		WordsPerMinute: wordsPerMinute,
	}
	return nil
}

// End flags the session as ended. The flag is advisory: it blocks neither
// further answers nor reports. No-op when the session is absent.
func (s *Store) End(_ context.Context, sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sess, ok := s.sessions[sessionID]; ok {
		sess.Ended = true
	}
}

// SetModelAnswer fills the record's model answer unless one is already set.
// First write wins.
func (s *Store) SetModelAnswer(_ context.Context, sessionID, questionID, modelAnswer string) error {
	return s.updateAnswer(sessionID, questionID, func(rec *interview.AnswerRecord) {
		if rec.ModelAnswer == "" {
			rec.ModelAnswer = modelAnswer
		}
	})
}

// SetFeedback fills the record's feedback sentence unless one is already set.
// First write wins, which keeps the unreliable-transcript notice terminal.
func (s *Store) SetFeedback(_ context.Context, sessionID, questionID, feedback string) error {
	return s.updateAnswer(sessionID, questionID, func(rec *interview.AnswerRecord) {
		if rec.Feedback == "" {
			rec.Feedback = feedback
		}
	})
}

// SetSummaryLines memoizes the generated summary. The first non-empty write
// wins; the winning value is returned so concurrent builders agree.
func (s *Store) SetSummaryLines(_ context.Context, sessionID string, lines []string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	if len(sess.SummaryLines) == 0 && len(lines) > 0 {
		sess.SummaryLines = append([]string(nil), lines...)
	}
	return append([]string(nil), sess.SummaryLines...), nil
}

func (s *Store) updateAnswer(sessionID, questionID string, apply func(*interview.AnswerRecord)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return ErrSessionNotFound
	}
	rec, ok := sess.Answers[questionID]
	if !ok {
		return ErrAnswerNotFound
	}
	apply(rec)
	return nil
}

// snapshot deep-copies a session so callers never share mutable state with
// the store.
func snapshot(sess *interview.Session) interview.Session {
	out := *sess
	out.Questions = append([]interview.Question(nil), sess.Questions...)
	out.SummaryLines = append([]string(nil), sess.SummaryLines...)
	out.Answers = make(map[string]*interview.AnswerRecord, len(sess.Answers))
	for id, rec := range sess.Answers {
		copied := *rec
		out.Answers[id] = &copied
	}
	return out
}
