// Package perf aggregates finished session results into the learner's
// long-run performance picture: session history, per-domain and
// per-question tallies, bookmarks, and the missed-question pool that
// feeds review practice.
package perf

import (
	"context"
	"sort"

	"auditprep/internal/bank"
	"auditprep/internal/session"
	"auditprep/internal/store"
)

// DomainStat is a cumulative correct/total tally for one domain.
type DomainStat struct {
	Correct int `json:"correct"`
	Total   int `json:"total"`
}

// QuestionStat is a cumulative tally for one question across sessions.
type QuestionStat struct {
	Correct     int  `json:"correct"`
	Total       int  `json:"total"`
	LastCorrect bool `json:"last_correct"`
}

// Recorder holds the aggregate state in memory and mirrors every
// mutation to the store before returning. A single Recorder lives for
// the life of the program.
type Recorder struct {
	kv *store.KV

	history   []session.Result // most recent first
	domains   map[bank.Domain]DomainStat
	questions map[int]QuestionStat
	bookmarks map[int]bool
	missed    map[int]bool
}

// Load builds a Recorder from stored state. Missing or unreadable keys
// start from their empty defaults.
func Load(ctx context.Context, kv *store.KV) (*Recorder, error) {
	r := &Recorder{kv: kv}

	if _, err := kv.Get(ctx, store.KeySessionHistory, &r.history); err != nil {
		return nil, err
	}
	if _, err := kv.Get(ctx, store.KeyDomainStats, &r.domains); err != nil {
		return nil, err
	}
	if _, err := kv.Get(ctx, store.KeyQuestionStats, &r.questions); err != nil {
		return nil, err
	}

	var bookmarkIDs, missedIDs []int
	if _, err := kv.Get(ctx, store.KeyBookmarks, &bookmarkIDs); err != nil {
		return nil, err
	}
	if _, err := kv.Get(ctx, store.KeyMissed, &missedIDs); err != nil {
		return nil, err
	}

	if r.domains == nil {
		r.domains = make(map[bank.Domain]DomainStat)
	}
	if r.questions == nil {
		r.questions = make(map[int]QuestionStat)
	}
	r.bookmarks = toSet(bookmarkIDs)
	r.missed = toSet(missedIDs)
	return r, nil
}

// Record folds one finished result into the aggregates and flushes.
// A result whose ID is already in the history is ignored, so recording
// the same completed session twice cannot double-count.
func (r *Recorder) Record(ctx context.Context, res *session.Result) error {
	for _, h := range r.history {
		if h.ID == res.ID {
			return nil
		}
	}

	r.history = append([]session.Result{*res}, r.history...)

	for d, ds := range res.Domains {
		cur := r.domains[d]
		cur.Correct += ds.Correct
		cur.Total += ds.Total
		r.domains[d] = cur
	}

	for _, o := range res.Outcomes {
		qs := r.questions[o.QuestionID]
		qs.Total++
		if o.Correct {
			qs.Correct++
		}
		qs.LastCorrect = o.Correct
		r.questions[o.QuestionID] = qs

		// Only practice feeds the pool, and membership is permanent:
		// a later correct answer does not remove the id.
		if res.Mode.IsPractice() && !o.Correct {
			r.missed[o.QuestionID] = true
		}
	}

	return r.flush(ctx)
}

// ToggleBookmark flips the bookmark state of a question and reports the
// new state.
func (r *Recorder) ToggleBookmark(ctx context.Context, questionID int) (bool, error) {
	if r.bookmarks[questionID] {
		delete(r.bookmarks, questionID)
	} else {
		r.bookmarks[questionID] = true
	}
	err := r.kv.Put(ctx, store.KeyBookmarks, sortedIDs(r.bookmarks))
	return r.bookmarks[questionID], err
}

// History returns the recorded results, most recent first.
func (r *Recorder) History() []session.Result { return r.history }

// Sessions returns how many results have been recorded.
func (r *Recorder) Sessions() int { return len(r.history) }

// DomainStats returns the cumulative per-domain tallies.
func (r *Recorder) DomainStats() map[bank.Domain]DomainStat { return r.domains }

// QuestionStats returns the cumulative per-question tallies.
func (r *Recorder) QuestionStats() map[int]QuestionStat { return r.questions }

// Bookmarked reports whether a question is bookmarked.
func (r *Recorder) Bookmarked(questionID int) bool { return r.bookmarks[questionID] }

// BookmarkSet returns a copy of the bookmarked question ids.
func (r *Recorder) BookmarkSet() map[int]bool { return copySet(r.bookmarks) }

// MissedSet returns a copy of the missed-question pool: every question
// ever answered wrong or left unanswered in a practice session.
func (r *Recorder) MissedSet() map[int]bool { return copySet(r.missed) }

// OverallAccuracy is the fraction of all recorded answers that were
// correct. found is false before any question has been seen.
func (r *Recorder) OverallAccuracy() (float64, bool) {
	var correct, total int
	for _, ds := range r.domains {
		correct += ds.Correct
		total += ds.Total
	}
	if total == 0 {
		return 0, false
	}
	return float64(correct) / float64(total), true
}

// DomainAccuracy returns the cumulative accuracy for a domain. found is
// false when the domain has never been seen.
func (r *Recorder) DomainAccuracy(d bank.Domain) (float64, bool) {
	ds, ok := r.domains[d]
	if !ok || ds.Total == 0 {
		return 0, false
	}
	return float64(ds.Correct) / float64(ds.Total), true
}

// QuestionAccuracy returns the cumulative accuracy for a question.
// found is false when the question has never been seen.
func (r *Recorder) QuestionAccuracy(questionID int) (float64, bool) {
	qs, ok := r.questions[questionID]
	if !ok || qs.Total == 0 {
		return 0, false
	}
	return float64(qs.Correct) / float64(qs.Total), true
}

// WeakestDomain returns the seen domain with the lowest accuracy. found
// is false before any domain has data. Ties resolve in canonical
// domain order.
func (r *Recorder) WeakestDomain() (bank.Domain, bool) {
	var (
		weakest bank.Domain
		worst   float64
		found   bool
	)
	for _, d := range bank.Domains() {
		acc, ok := r.DomainAccuracy(d)
		if !ok {
			continue
		}
		if !found || acc < worst {
			weakest, worst, found = d, acc, true
		}
	}
	return weakest, found
}

// flush writes every aggregate to the store.
func (r *Recorder) flush(ctx context.Context) error {
	if err := r.kv.Put(ctx, store.KeySessionHistory, r.history); err != nil {
		return err
	}
	if err := r.kv.Put(ctx, store.KeyDomainStats, r.domains); err != nil {
		return err
	}
	if err := r.kv.Put(ctx, store.KeyQuestionStats, r.questions); err != nil {
		return err
	}
	if err := r.kv.Put(ctx, store.KeyBookmarks, sortedIDs(r.bookmarks)); err != nil {
		return err
	}
	return r.kv.Put(ctx, store.KeyMissed, sortedIDs(r.missed))
}

func toSet(ids []int) map[int]bool {
	set := make(map[int]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}

func copySet(set map[int]bool) map[int]bool {
	out := make(map[int]bool, len(set))
	for id := range set {
		out[id] = true
	}
	return out
}

func sortedIDs(set map[int]bool) []int {
	ids := make([]int, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}
