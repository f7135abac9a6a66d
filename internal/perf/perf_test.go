package perf

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"auditprep/internal/bank"
	"auditprep/internal/session"
	"auditprep/internal/store"
)

func testKV(t *testing.T) *store.KV {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s.KV()
}

func loadRecorder(t *testing.T, kv *store.KV) *Recorder {
	t.Helper()
	r, err := Load(context.Background(), kv)
	if err != nil {
		t.Fatalf("load recorder: %v", err)
	}
	return r
}

// makeResult builds a finished result with one outcome per id.
func makeResult(id string, domain bank.Domain, correctIDs, wrongIDs []int) *session.Result {
	total := len(correctIDs) + len(wrongIDs)
	res := &session.Result{
		ID:             id,
		Timestamp:      time.Date(2026, 4, 2, 18, 0, 0, 0, time.UTC),
		Mode:           session.ModePractice,
		TotalQuestions: total,
		CorrectCount:   len(correctIDs),
		Percentage:     session.ScorePercent(len(correctIDs), total),
		Domains: map[bank.Domain]session.DomainScore{
			domain: {Correct: len(correctIDs), Total: total},
		},
	}
	for _, qid := range correctIDs {
		res.Outcomes = append(res.Outcomes, session.Outcome{
			QuestionID: qid, Domain: domain, Chosen: 0, Answered: true, Correct: true,
		})
	}
	for _, qid := range wrongIDs {
		res.Outcomes = append(res.Outcomes, session.Outcome{
			QuestionID: qid, Domain: domain, Chosen: 1, Answered: true, Correct: false,
		})
	}
	return res
}

func TestLoadEmptyStore(t *testing.T) {
	r := loadRecorder(t, testKV(t))

	if r.Sessions() != 0 {
		t.Errorf("sessions = %d, want 0", r.Sessions())
	}
	if _, ok := r.OverallAccuracy(); ok {
		t.Error("overall accuracy reported with no data")
	}
	if len(r.MissedSet()) != 0 || len(r.BookmarkSet()) != 0 {
		t.Error("fresh recorder has nonempty sets")
	}
}

func TestRecordAggregatesAdditively(t *testing.T) {
	ctx := context.Background()
	r := loadRecorder(t, testKV(t))

	r.Record(ctx, makeResult("a", bank.DomainGovernance, []int{1, 2}, []int{3}))
	r.Record(ctx, makeResult("b", bank.DomainGovernance, []int{3}, []int{1}))

	ds := r.DomainStats()[bank.DomainGovernance]
	if ds.Correct != 3 || ds.Total != 6 {
		t.Errorf("domain tally = %+v, want {3 6}", ds)
	}

	q1 := r.QuestionStats()[1]
	if q1.Correct != 1 || q1.Total != 2 || q1.LastCorrect {
		t.Errorf("question 1 tally = %+v, want {1 2 false}", q1)
	}
	q3 := r.QuestionStats()[3]
	if q3.Correct != 1 || q3.Total != 2 || !q3.LastCorrect {
		t.Errorf("question 3 tally = %+v, want {1 2 true}", q3)
	}
}

func TestRecordSameResultTwice(t *testing.T) {
	ctx := context.Background()
	r := loadRecorder(t, testKV(t))

	res := makeResult("once", bank.DomainAuditProcess, []int{1}, nil)
	r.Record(ctx, res)
	r.Record(ctx, res)

	if r.Sessions() != 1 {
		t.Errorf("sessions = %d, want 1 after duplicate record", r.Sessions())
	}
	if ds := r.DomainStats()[bank.DomainAuditProcess]; ds.Total != 1 {
		t.Errorf("domain total = %d, want 1", ds.Total)
	}
}

func TestMissedPoolMembershipIsPermanent(t *testing.T) {
	ctx := context.Background()
	r := loadRecorder(t, testKV(t))

	r.Record(ctx, makeResult("a", bank.DomainProtection, nil, []int{7, 9}))
	if missed := r.MissedSet(); !missed[7] || !missed[9] {
		t.Fatalf("missed = %v, want {7 9}", missed)
	}

	// Getting 7 right on a later pass does not remove it.
	r.Record(ctx, makeResult("b", bank.DomainProtection, []int{7}, nil))
	missed := r.MissedSet()
	if !missed[7] {
		t.Error("question 7 removed from missed pool by a later correct answer")
	}
	if !missed[9] {
		t.Error("question 9 dropped from missed pool")
	}
}

func TestExamResultsSkipMissedPool(t *testing.T) {
	ctx := context.Background()
	r := loadRecorder(t, testKV(t))

	res := makeResult("a", bank.DomainProtection, []int{1}, []int{2, 3})
	res.Mode = session.ModeExam
	r.Record(ctx, res)

	if missed := r.MissedSet(); len(missed) != 0 {
		t.Errorf("missed = %v, want empty after an exam-only result", missed)
	}
	if ds := r.DomainStats()[bank.DomainProtection]; ds.Total != 3 {
		t.Errorf("domain total = %d, want 3 (exam still counts toward stats)", ds.Total)
	}
}

func TestUnansweredJoinsMissedPool(t *testing.T) {
	ctx := context.Background()
	r := loadRecorder(t, testKV(t))

	res := makeResult("a", bank.DomainOperations, nil, nil)
	res.TotalQuestions = 1
	res.Domains[bank.DomainOperations] = session.DomainScore{Total: 1}
	res.Outcomes = []session.Outcome{{
		QuestionID: 5, Domain: bank.DomainOperations, Chosen: -1, Answered: false,
	}}
	r.Record(ctx, res)

	if !r.MissedSet()[5] {
		t.Error("unanswered question missing from missed pool")
	}
}

func TestToggleBookmarkInvolution(t *testing.T) {
	ctx := context.Background()
	r := loadRecorder(t, testKV(t))

	on, err := r.ToggleBookmark(ctx, 12)
	if err != nil || !on {
		t.Fatalf("first toggle = (%v, %v), want (true, nil)", on, err)
	}
	off, err := r.ToggleBookmark(ctx, 12)
	if err != nil || off {
		t.Fatalf("second toggle = (%v, %v), want (false, nil)", off, err)
	}
	if len(r.BookmarkSet()) != 0 {
		t.Errorf("bookmarks = %v, want empty after double toggle", r.BookmarkSet())
	}
}

func TestStateSurvivesReload(t *testing.T) {
	ctx := context.Background()
	kv := testKV(t)

	r := loadRecorder(t, kv)
	r.Record(ctx, makeResult("a", bank.DomainAcquisition, []int{1}, []int{2}))
	r.ToggleBookmark(ctx, 2)

	re := loadRecorder(t, kv)
	if re.Sessions() != 1 {
		t.Errorf("reloaded sessions = %d, want 1", re.Sessions())
	}
	if ds := re.DomainStats()[bank.DomainAcquisition]; ds.Correct != 1 || ds.Total != 2 {
		t.Errorf("reloaded domain tally = %+v, want {1 2}", ds)
	}
	if !re.MissedSet()[2] {
		t.Error("missed pool lost on reload")
	}
	if !re.Bookmarked(2) {
		t.Error("bookmark lost on reload")
	}
	if acc, ok := re.QuestionAccuracy(1); !ok || acc != 1.0 {
		t.Errorf("question 1 accuracy = (%v, %v), want (1.0, true)", acc, ok)
	}
}

func TestAccuracyProviders(t *testing.T) {
	ctx := context.Background()
	r := loadRecorder(t, testKV(t))
	r.Record(ctx, makeResult("a", bank.DomainGovernance, []int{1, 2, 3}, []int{4}))

	if acc, ok := r.DomainAccuracy(bank.DomainGovernance); !ok || acc != 0.75 {
		t.Errorf("domain accuracy = (%v, %v), want (0.75, true)", acc, ok)
	}
	if _, ok := r.DomainAccuracy(bank.DomainProtection); ok {
		t.Error("accuracy reported for unseen domain")
	}
	if acc, ok := r.QuestionAccuracy(4); !ok || acc != 0 {
		t.Errorf("question 4 accuracy = (%v, %v), want (0, true)", acc, ok)
	}
	if _, ok := r.QuestionAccuracy(99); ok {
		t.Error("accuracy reported for unseen question")
	}
}

func TestWeakestDomain(t *testing.T) {
	ctx := context.Background()
	r := loadRecorder(t, testKV(t))

	if _, ok := r.WeakestDomain(); ok {
		t.Error("weakest domain reported with no data")
	}

	r.Record(ctx, makeResult("a", bank.DomainGovernance, []int{1, 2, 3}, []int{4}))
	r.Record(ctx, makeResult("b", bank.DomainProtection, []int{5}, []int{6, 7, 8}))

	if d, ok := r.WeakestDomain(); !ok || d != bank.DomainProtection {
		t.Errorf("weakest = (%v, %v), want (%v, true)", d, ok, bank.DomainProtection)
	}
}

func TestRecordedSessionFeedsReviewPool(t *testing.T) {
	ctx := context.Background()
	r := loadRecorder(t, testKV(t))

	qs := []bank.Question{
		{ID: 1, Text: "q", Options: []string{"a", "b"}, CorrectIndex: 0, Domain: bank.DomainAuditProcess},
		{ID: 2, Text: "q", Options: []string{"a", "b"}, CorrectIndex: 0, Domain: bank.DomainAuditProcess},
		{ID: 3, Text: "q", Options: []string{"a", "b"}, CorrectIndex: 0, Domain: bank.DomainGovernance},
	}
	s, err := session.New(session.Config{Mode: session.ModePractice, Questions: qs})
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	s.Start()
	s.Answer(1, 0) // right
	s.Advance()
	s.Answer(2, 1) // wrong
	s.Advance()
	res, _ := s.Advance() // 3 left unanswered

	if err := r.Record(ctx, res); err != nil {
		t.Fatalf("record: %v", err)
	}

	missed := r.MissedSet()
	if missed[1] || !missed[2] || !missed[3] {
		t.Errorf("missed = %v, want {2 3}", missed)
	}
	if r.History()[0].Percentage != 33 {
		t.Errorf("percentage = %d, want 33", r.History()[0].Percentage)
	}
}

func TestExportRows(t *testing.T) {
	ctx := context.Background()
	r := loadRecorder(t, testKV(t))
	r.Record(ctx, makeResult("a", bank.DomainGovernance, []int{1}, []int{2}))

	summary := r.SummaryRows()
	if len(summary) < 2 || summary[0][0] != "metric" {
		t.Fatalf("summary header = %v", summary[0])
	}

	history := r.HistoryRows()
	wantCols := 7 + len(bank.Domains())
	if len(history) != 2 {
		t.Fatalf("history rows = %d, want header + 1", len(history))
	}
	for i, row := range history {
		if len(row) != wantCols {
			t.Errorf("row %d has %d columns, want %d", i, len(row), wantCols)
		}
	}
	if history[1][0] != "a" {
		t.Errorf("history row id = %q, want %q", history[1][0], "a")
	}
}
