package session_test

import (
	"context"
	"sync"
	"testing"

	"github.com/AI-killer-project-team/backend/internal/model/interview"
	session "github.com/AI-killer-project-team/backend/internal/service/session"
)

func newTestStore(t *testing.T, questionCount int) (*session.Store, interview.Session) {
	t.Helper()

	questions := make([]interview.Question, 0, questionCount)
	for i := 0; i < questionCount; i++ {
		questions = append(questions, interview.Question{
			ID:               string(rune('a' + i)),
			Text:             "질문",
			TimeLimitSeconds: 120,
		})
	}

	store := session.NewStore()
	sess, err := store.Create(context.Background(), session.CreateParams{
		CompanyID: "nexon-kr",
		JobID:     "server-dev",
		Questions: questions,
	})
	if err != nil {
		t.Fatalf("Create err: %v", err)
	}
	return store, sess
}

func TestCreateRejectsEmptyQuestions(t *testing.T) {
	store := session.NewStore()
	if _, err := store.Create(context.Background(), session.CreateParams{}); err == nil {
		t.Fatal("expected error for empty question list")
	}
}

func TestGetNotFound(t *testing.T) {
	store := session.NewStore()
	if _, err := store.Get(context.Background(), "missing"); err != session.ErrSessionNotFound {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestNextQuestionDispensesEachOnce(t *testing.T) {
	store, sess := newTestStore(t, 3)
	ctx := context.Background()

	seen := make(map[string]bool)
	for i := 0; i < 3; i++ {
		q, err := store.NextQuestion(ctx, sess.ID)
		if err != nil {
			t.Fatalf("NextQuestion %d err: %v", i, err)
		}
		if seen[q.ID] {
			t.Fatalf("question %s dispensed twice", q.ID)
		}
		seen[q.ID] = true
		if q.ID != sess.Questions[i].ID {
			t.Fatalf("expected question %s at position %d, got %s", sess.Questions[i].ID, i, q.ID)
		}
	}

	if _, err := store.NextQuestion(ctx, sess.ID); err != session.ErrNoMoreQuestions {
		t.Fatalf("expected ErrNoMoreQuestions after exhaustion, got %v", err)
	}
	// Exhaustion has no side effects; a later call still reports the same.
	if _, err := store.NextQuestion(ctx, sess.ID); err != session.ErrNoMoreQuestions {
		t.Fatalf("expected ErrNoMoreQuestions on repeat, got %v", err)
	}
}

func TestNextQuestionConcurrent(t *testing.T) {
	const questionCount = 64
	store, sess := newTestStore(t, questionCount)
	ctx := context.Background()

	var mu sync.Mutex
	seen := make(map[string]int)

	var wg sync.WaitGroup
	for i := 0; i < questionCount; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			q, err := store.NextQuestion(ctx, sess.ID)
			if err != nil {
				t.Errorf("NextQuestion err: %v", err)
				return
			}
			mu.Lock()
			seen[q.ID]++
			mu.Unlock()
		}()
	}
	wg.Wait()

	if len(seen) != questionCount {
		t.Fatalf("expected %d distinct questions, got %d", questionCount, len(seen))
	}
	for id, count := range seen {
		if count != 1 {
			t.Fatalf("question %s dispensed %d times", id, count)
		}
	}
}

func TestRecordAnswerOverwrites(t *testing.T) {
	store, sess := newTestStore(t, 2)
	ctx := context.Background()
	qid := sess.Questions[0].ID

	if err := store.RecordAnswer(ctx, sess.ID, qid, 10, "첫 번째", 2, 12); err != nil {
		t.Fatalf("RecordAnswer err: %v", err)
	}
	if err := store.RecordAnswer(ctx, sess.ID, qid, 30, "두 번째", 2, 4); err != nil {
		t.Fatalf("RecordAnswer overwrite err: %v", err)
	}

	got, err := store.Get(ctx, sess.ID)
	if err != nil {
		t.Fatalf("Get err: %v", err)
	}
	if len(got.Answers) != 1 {
		t.Fatalf("expected exactly one record per question, got %d", len(got.Answers))
	}
	if got.Answers[qid].AnswerSeconds != 30 {
		t.Fatalf("expected last write to win, got %f", got.Answers[qid].AnswerSeconds)
	}
}

func TestSnapshotIsolation(t *testing.T) {
	store, sess := newTestStore(t, 1)
	ctx := context.Background()
	qid := sess.Questions[0].ID

	if err := store.RecordAnswer(ctx, sess.ID, qid, 10, "", 0, 0); err != nil {
		t.Fatalf("RecordAnswer err: %v", err)
	}

	snap, err := store.Get(ctx, sess.ID)
	if err != nil {
		t.Fatalf("Get err: %v", err)
	}
	snap.Answers[qid].Feedback = "mutated externally"

	fresh, err := store.Get(ctx, sess.ID)
	if err != nil {
		t.Fatalf("Get err: %v", err)
	}
	if fresh.Answers[qid].Feedback != "" {
		t.Fatal("snapshot mutation leaked into the store")
	}
}

func TestSetModelAnswerFirstWriteWins(t *testing.T) {
	store, sess := newTestStore(t, 1)
	ctx := context.Background()
	qid := sess.Questions[0].ID

	if err := store.RecordAnswer(ctx, sess.ID, qid, 10, "", 0, 0); err != nil {
		t.Fatalf("RecordAnswer err: %v", err)
	}
	if err := store.SetModelAnswer(ctx, sess.ID, qid, "first"); err != nil {
		t.Fatalf("SetModelAnswer err: %v", err)
	}
	if err := store.SetModelAnswer(ctx, sess.ID, qid, "second"); err != nil {
		t.Fatalf("SetModelAnswer err: %v", err)
	}

	got, _ := store.Get(ctx, sess.ID)
	if got.Answers[qid].ModelAnswer != "first" {
		t.Fatalf("expected first write to win, got %q", got.Answers[qid].ModelAnswer)
	}
}

func TestSetFeedbackMissingAnswer(t *testing.T) {
	store, sess := newTestStore(t, 1)
	err := store.SetFeedback(context.Background(), sess.ID, sess.Questions[0].ID, "feedback")
	if err != session.ErrAnswerNotFound {
		t.Fatalf("expected ErrAnswerNotFound, got %v", err)
	}
}

func TestSetSummaryLinesWriteOnce(t *testing.T) {
	store, sess := newTestStore(t, 1)
	ctx := context.Background()

	first, err := store.SetSummaryLines(ctx, sess.ID, []string{"a", "b", "c"})
	if err != nil {
		t.Fatalf("SetSummaryLines err: %v", err)
	}
	second, err := store.SetSummaryLines(ctx, sess.ID, []string{"x", "y", "z"})
	if err != nil {
		t.Fatalf("SetSummaryLines err: %v", err)
	}

	if len(first) != 3 || first[0] != "a" {
		t.Fatalf("unexpected first summary: %v", first)
	}
	if len(second) != 3 || second[0] != "a" {
		t.Fatalf("expected cached summary to win, got %v", second)
	}
}

func TestEndIsAdvisory(t *testing.T) {
	store, sess := newTestStore(t, 2)
	ctx := context.Background()

	store.End(ctx, sess.ID)
	store.End(ctx, "missing") // no-op

	got, err := store.Get(ctx, sess.ID)
	if err != nil {
		t.Fatalf("Get err: %v", err)
	}
	if !got.Ended {
		t.Fatal("expected session to be flagged ended")
	}

	// The flag blocks neither answers nor question flow.
	if _, err := store.NextQuestion(ctx, sess.ID); err != nil {
		t.Fatalf("NextQuestion after end err: %v", err)
	}
	if err := store.RecordAnswer(ctx, sess.ID, sess.Questions[0].ID, 5, "", 0, 0); err != nil {
		t.Fatalf("RecordAnswer after end err: %v", err)
	}
}
