// Package selection builds the ordered question list for a new session.
// It is stateless apart from its random source: every method is a pure
// function of the catalog, the learner's aggregate history, and the
// request parameters.
package selection

import (
	"math"
	"math/rand"
	"sort"
	"time"

	"auditprep/internal/bank"
)

// Adaptive weight baselines. A domain or question with no history counts
// as fully accurate (1.0), so unseen questions in strong domains still
// get a small positive weight instead of zero.
const (
	domainWeightFloor   = 0.5
	questionWeightFloor = 0.3
)

// HistoryProvider supplies cumulative accuracy for adaptive selection.
// The second return reports whether any history exists; without history
// accuracy is treated as 1.0.
type HistoryProvider interface {
	DomainAccuracy(d bank.Domain) (float64, bool)
	QuestionAccuracy(id int) (float64, bool)
}

// Exam is the result of a weighted exam draw.
type Exam struct {
	Questions []bank.Question
	Requested int
}

// Partial reports whether the catalog could not supply the requested
// count. Callers must surface this to the user rather than silently
// presenting a shorter exam.
func (e Exam) Partial() bool {
	return len(e.Questions) < e.Requested
}

// Selector draws question lists using a uniform random source.
type Selector struct {
	rng *rand.Rand
}

// New creates a Selector. A nil source gets a time-seeded one; tests
// inject a fixed source for deterministic draws.
func New(src rand.Source) *Selector {
	if src == nil {
		src = rand.NewSource(time.Now().UnixNano())
	}
	return &Selector{rng: rand.New(src)}
}

// Random draws count questions without replacement, uniformly, from the
// catalog filtered by domain. A count larger than the pool returns the
// whole pool; an empty pool returns nil and the caller must not start a
// session.
func (s *Selector) Random(catalog bank.Catalog, domain bank.Domain, count int) []bank.Question {
	pool := catalog.InDomain(domain)
	if len(pool) == 0 || count <= 0 {
		return nil
	}
	s.Shuffle(pool)
	if count < len(pool) {
		pool = pool[:count]
	}
	return pool
}

// FixedSet returns the catalog questions whose id is in ids, preserving
// catalog order. Used for incorrect-review and bookmark-review sets.
func (s *Selector) FixedSet(catalog bank.Catalog, ids map[int]bool) []bank.Question {
	if len(ids) == 0 {
		return nil
	}
	var out []bank.Question
	for _, q := range catalog {
		if ids[q.ID] {
			out = append(out, q)
		}
	}
	return out
}

// ExamSet composes a weighted exam: round(total*weight) uniform draws
// per domain, topped up from the remaining catalog when a domain pool or
// rounding leaves a shortfall, truncated to total, then globally
// shuffled so per-domain grouping never leaks into presentation order.
// A catalog smaller than total yields a partial exam (Exam.Partial).
func (s *Selector) ExamSet(catalog bank.Catalog, total int, weights []DomainWeight) Exam {
	exam := Exam{Requested: total}
	if total <= 0 || len(catalog) == 0 {
		return exam
	}

	taken := make(map[int]bool)
	for _, dw := range weights {
		want := int(math.Round(float64(total) * dw.Weight))
		pool := catalog.InDomain(dw.Domain)
		s.Shuffle(pool)
		if want > len(pool) {
			want = len(pool)
		}
		for _, q := range pool[:want] {
			if !taken[q.ID] {
				taken[q.ID] = true
				exam.Questions = append(exam.Questions, q)
			}
		}
	}

	// Top up from the rest of the catalog, any domain.
	if len(exam.Questions) < total {
		var rest []bank.Question
		for _, q := range catalog {
			if !taken[q.ID] {
				rest = append(rest, q)
			}
		}
		s.Shuffle(rest)
		for _, q := range rest {
			if len(exam.Questions) >= total {
				break
			}
			taken[q.ID] = true
			exam.Questions = append(exam.Questions, q)
		}
	}

	if len(exam.Questions) > total {
		exam.Questions = exam.Questions[:total]
	}
	s.Shuffle(exam.Questions)
	return exam
}

// Adaptive ranks the filtered pool by a weakness weight and takes the
// top count. This is deterministic rank selection, not weighted random
// sampling: the same weak questions recur until their accuracy improves,
// which keeps adaptive sessions reproducible. Ties keep catalog order.
func (s *Selector) Adaptive(catalog bank.Catalog, domain bank.Domain, count int, hist HistoryProvider) []bank.Question {
	pool := catalog.InDomain(domain)
	if len(pool) == 0 || count <= 0 {
		return nil
	}

	weights := make([]float64, len(pool))
	for i, q := range pool {
		weights[i] = adaptiveWeight(q, hist)
	}

	idx := make([]int, len(pool))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return weights[idx[a]] > weights[idx[b]]
	})

	if count > len(pool) {
		count = len(pool)
	}
	out := make([]bank.Question, count)
	for i := 0; i < count; i++ {
		out[i] = pool[idx[i]]
	}
	return out
}

// adaptiveWeight scores a question by how weak the learner's history is
// on its domain and on the question itself. Missing history counts as
// perfect accuracy, leaving only the baseline floors.
func adaptiveWeight(q bank.Question, hist HistoryProvider) float64 {
	domAcc, qAcc := 1.0, 1.0
	if hist != nil {
		if acc, ok := hist.DomainAccuracy(q.Domain); ok {
			domAcc = acc
		}
		if acc, ok := hist.QuestionAccuracy(q.ID); ok {
			qAcc = acc
		}
	}
	return (1 - domAcc + domainWeightFloor) * (1 - qAcc + questionWeightFloor)
}

// Shuffle permutes qs in place with a Fisher-Yates pass over the
// selector's random source.
func (s *Selector) Shuffle(qs []bank.Question) {
	for i := len(qs) - 1; i > 0; i-- {
		j := s.rng.Intn(i + 1)
		qs[i], qs[j] = qs[j], qs[i]
	}
}
