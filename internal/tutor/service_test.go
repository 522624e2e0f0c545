package tutor

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/abhisek/adaptive/internal/adaptive"
	"github.com/abhisek/adaptive/internal/curriculum"
	"github.com/abhisek/adaptive/internal/store"
)

// mockAttemptRepo implements store.AttemptRepo in memory.
type mockAttemptRepo struct {
	recs      []store.AttemptRecord
	appendErr error
	recentErr error
	lastLimit int
}

func (m *mockAttemptRepo) Append(_ context.Context, rec *store.AttemptRecord) error {
	if m.appendErr != nil {
		return m.appendErr
	}
	rec.Sequence = int64(len(m.recs) + 1)
	m.recs = append(m.recs, *rec)
	return nil
}

func (m *mockAttemptRepo) Recent(_ context.Context, childID, subject string, limit int) ([]store.AttemptRecord, error) {
	m.lastLimit = limit
	if m.recentErr != nil {
		return nil, m.recentErr
	}
	var out []store.AttemptRecord
	for _, r := range m.recs {
		if r.ChildID == childID && r.Subject == subject {
			out = append(out, r)
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[len(out)-limit:]
	}
	return out, nil
}

// mockDecisionRepo implements store.DecisionRepo in memory.
type mockDecisionRepo struct {
	recs      []store.DecisionRecord
	appendErr error
}

func (m *mockDecisionRepo) Append(_ context.Context, rec *store.DecisionRecord) error {
	if m.appendErr != nil {
		return m.appendErr
	}
	rec.Sequence = int64(len(m.recs) + 1)
	if rec.ID == "" {
		rec.ID = "dec-" + string(rune('a'+len(m.recs)))
	}
	m.recs = append(m.recs, *rec)
	return nil
}

func (m *mockDecisionRepo) List(_ context.Context, childID string, _ store.QueryOpts) ([]store.DecisionRecord, error) {
	var out []store.DecisionRecord
	for i := len(m.recs) - 1; i >= 0; i-- {
		if m.recs[i].ChildID == childID {
			out = append(out, m.recs[i])
		}
	}
	return out, nil
}

func attempt(topic string, d adaptive.Difficulty, correct bool) adaptive.Attempt {
	return adaptive.Attempt{Topic: topic, Difficulty: d, IsCorrect: correct}
}

func newTestService(t *testing.T) (*Service, *mockAttemptRepo, *mockDecisionRepo) {
	t.Helper()
	attempts := &mockAttemptRepo{}
	decisions := &mockDecisionRepo{}
	svc := NewService(Options{
		Curriculum: curriculum.Default(),
		Attempts:   attempts,
		Decisions:  decisions,
		Window:     DefaultWindow,
	})
	return svc, attempts, decisions
}

func TestNext_AdvanceResolvesTopic(t *testing.T) {
	svc, attempts, decisions := newTestService(t)

	res, err := svc.Next(context.Background(), NextRequest{
		Subject: curriculum.SubjectMath,
		Attempts: []adaptive.Attempt{
			attempt("addition", adaptive.DifficultyEasy, true),
			attempt("addition", adaptive.DifficultyEasy, true),
		},
	})
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if res.Strategy != adaptive.StrategyAdvance {
		t.Errorf("Strategy = %s, want advance", res.Strategy)
	}
	if res.NextTopic != "subtraction" {
		t.Errorf("NextTopic = %q, want subtraction", res.NextTopic)
	}
	if !res.TopicResolved {
		t.Error("TopicResolved = false, want true")
	}
	if res.AttemptCount != 2 {
		t.Errorf("AttemptCount = %d, want 2", res.AttemptCount)
	}
	if len(attempts.recs) != 0 || len(decisions.recs) != 0 {
		t.Error("Next must not touch the history store")
	}
}

func TestNext_AdvanceWithoutCurriculumKeepsSentinel(t *testing.T) {
	svc := NewService(Options{})

	res, err := svc.Next(context.Background(), NextRequest{
		Attempts: []adaptive.Attempt{
			attempt("fractions", adaptive.DifficultyMedium, true),
			attempt("fractions", adaptive.DifficultyMedium, true),
		},
	})
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if res.NextTopic != adaptive.NextTopicSentinel {
		t.Errorf("NextTopic = %q, want %q", res.NextTopic, adaptive.NextTopicSentinel)
	}
}

func TestNext_LastTopicStaysWhenUnresolved(t *testing.T) {
	svc, _, _ := newTestService(t)

	res, err := svc.Next(context.Background(), NextRequest{
		Subject: curriculum.SubjectMath,
		Attempts: []adaptive.Attempt{
			attempt("decimals", adaptive.DifficultyHard, true),
			attempt("decimals", adaptive.DifficultyHard, true),
		},
	})
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if res.NextTopic != "decimals" {
		t.Errorf("NextTopic = %q, want decimals", res.NextTopic)
	}
	if res.TopicResolved {
		t.Error("TopicResolved = true, want false")
	}
}

func TestNext_RejectsInvalidHistory(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.Next(context.Background(), NextRequest{})
	if !errors.Is(err, adaptive.ErrEmptyHistory) {
		t.Errorf("err = %v, want ErrEmptyHistory", err)
	}

	_, err = svc.Next(context.Background(), NextRequest{
		Attempts: []adaptive.Attempt{attempt("addition", "expert", true)},
	})
	if !errors.Is(err, adaptive.ErrInvalidDifficulty) {
		t.Errorf("err = %v, want ErrInvalidDifficulty", err)
	}
}

func TestRecordAnswer_EvaluatesWindow(t *testing.T) {
	svc, attempts, decisions := newTestService(t)
	ctx := context.Background()

	// Six wrong answers followed by a correct one. With a window of five the
	// last two are wrong then correct, so no streak fires.
	for range 6 {
		if _, err := svc.RecordAnswer(ctx, AnswerRequest{
			ChildID: "kid-1",
			Subject: curriculum.SubjectMath,
			Attempt: attempt("addition", adaptive.DifficultyMedium, false),
		}); err != nil {
			t.Fatalf("RecordAnswer: %v", err)
		}
	}
	res, err := svc.RecordAnswer(ctx, AnswerRequest{
		ChildID: "kid-1",
		Subject: curriculum.SubjectMath,
		Attempt: attempt("addition", adaptive.DifficultyMedium, true),
	})
	if err != nil {
		t.Fatalf("RecordAnswer: %v", err)
	}

	if attempts.lastLimit != DefaultWindow {
		t.Errorf("Recent limit = %d, want %d", attempts.lastLimit, DefaultWindow)
	}
	if res.AttemptCount != DefaultWindow {
		t.Errorf("AttemptCount = %d, want %d", res.AttemptCount, DefaultWindow)
	}
	// Window: 4 wrong then 1 correct. mastery 0.5-0.32+0.06 = 0.24.
	if res.Rule != adaptive.RuleLowMastery {
		t.Errorf("Rule = %s, want low-mastery", res.Rule)
	}
	if res.Mastery != 0.24 {
		t.Errorf("Mastery = %v, want 0.24", res.Mastery)
	}
	if len(attempts.recs) != 7 {
		t.Errorf("stored attempts = %d, want 7", len(attempts.recs))
	}
	if len(decisions.recs) != 7 {
		t.Errorf("logged decisions = %d, want 7", len(decisions.recs))
	}
	if res.DecisionID == "" {
		t.Error("DecisionID is empty")
	}
}

func TestRecordAnswer_InvalidAttemptNotStored(t *testing.T) {
	svc, attempts, _ := newTestService(t)

	_, err := svc.RecordAnswer(context.Background(), AnswerRequest{
		ChildID: "kid-1",
		Subject: curriculum.SubjectMath,
		Attempt: attempt("  ", adaptive.DifficultyEasy, true),
	})
	if !errors.Is(err, adaptive.ErrInvalidTopic) {
		t.Errorf("err = %v, want ErrInvalidTopic", err)
	}
	if len(attempts.recs) != 0 {
		t.Errorf("stored attempts = %d, want 0", len(attempts.recs))
	}
}

func TestRecordAnswer_StoreErrors(t *testing.T) {
	boom := errors.New("disk full")
	ctx := context.Background()
	req := AnswerRequest{
		ChildID: "kid-1",
		Subject: curriculum.SubjectMath,
		Attempt: attempt("addition", adaptive.DifficultyEasy, true),
	}

	tests := []struct {
		name      string
		attempts  *mockAttemptRepo
		decisions *mockDecisionRepo
	}{
		{"append attempt", &mockAttemptRepo{appendErr: boom}, &mockDecisionRepo{}},
		{"recent", &mockAttemptRepo{recentErr: boom}, &mockDecisionRepo{}},
		{"append decision", &mockAttemptRepo{}, &mockDecisionRepo{appendErr: boom}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(Options{Attempts: tt.attempts, Decisions: tt.decisions})
			_, err := svc.RecordAnswer(ctx, req)
			if !errors.Is(err, boom) {
				t.Errorf("err = %v, want wrapped %v", err, boom)
			}
		})
	}
}

func TestStoreBackedOps_WithoutStore(t *testing.T) {
	svc := NewService(Options{})
	ctx := context.Background()

	if _, err := svc.RecordAnswer(ctx, AnswerRequest{}); !errors.Is(err, ErrNoHistoryStore) {
		t.Errorf("RecordAnswer err = %v, want ErrNoHistoryStore", err)
	}
	if _, err := svc.Decisions(ctx, "kid-1", store.QueryOpts{}); !errors.Is(err, ErrNoHistoryStore) {
		t.Errorf("Decisions err = %v, want ErrNoHistoryStore", err)
	}
}

func TestRecordAnswer_SQLiteStore(t *testing.T) {
	s, err := store.Open(filepath.Join(t.TempDir(), "adaptive.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	svc := NewService(Options{
		Curriculum: curriculum.Default(),
		Attempts:   s.AttemptRepo(),
		Decisions:  s.DecisionRepo(),
		Window:     DefaultWindow,
	})
	ctx := context.Background()

	for range 2 {
		if _, err := svc.RecordAnswer(ctx, AnswerRequest{
			ChildID: "kid-1",
			Subject: curriculum.SubjectMath,
			Attempt: attempt("numbers", adaptive.DifficultyEasy, true),
		}); err != nil {
			t.Fatalf("RecordAnswer: %v", err)
		}
	}

	recs, err := svc.Decisions(ctx, "kid-1", store.QueryOpts{})
	if err != nil {
		t.Fatalf("Decisions: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("decisions = %d, want 2", len(recs))
	}
	latest := recs[0].Decision
	if latest.Strategy != adaptive.StrategyAdvance || latest.NextTopic != "addition" {
		t.Errorf("latest = %s/%s, want advance/addition", latest.Strategy, latest.NextTopic)
	}
	if latest.NextDifficulty != adaptive.DifficultyMedium {
		t.Errorf("NextDifficulty = %s, want medium", latest.NextDifficulty)
	}
}
