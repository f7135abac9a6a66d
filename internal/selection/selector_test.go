package selection

import (
	"math"
	"math/rand"
	"testing"

	"auditprep/internal/bank"
)

// buildCatalog creates perDomain questions for each canonical domain,
// with sequential unique ids.
func buildCatalog(perDomain int) bank.Catalog {
	var catalog bank.Catalog
	id := 0
	for _, d := range bank.Domains() {
		for i := 0; i < perDomain; i++ {
			id++
			catalog = append(catalog, bank.Question{
				ID:           id,
				Text:         "q",
				Options:      []string{"a", "b", "c", "d"},
				CorrectIndex: 0,
				Domain:       d,
				Difficulty:   3,
			})
		}
	}
	return catalog
}

func testSelector() *Selector {
	return New(rand.NewSource(1))
}

func TestRandomWithoutReplacement(t *testing.T) {
	catalog := buildCatalog(20)
	got := testSelector().Random(catalog, bank.DomainAll, 30)

	if len(got) != 30 {
		t.Fatalf("selected = %d, want 30", len(got))
	}
	seen := make(map[int]bool)
	for _, q := range got {
		if seen[q.ID] {
			t.Errorf("question %d drawn twice", q.ID)
		}
		seen[q.ID] = true
	}
}

func TestRandomCountExceedsPool(t *testing.T) {
	catalog := buildCatalog(2)
	got := testSelector().Random(catalog, bank.DomainGovernance, 50)
	if len(got) != 2 {
		t.Errorf("selected = %d, want entire pool of 2", len(got))
	}
}

func TestRandomEmptyPool(t *testing.T) {
	catalog := buildCatalog(3)
	// Filter by a label absent from the catalog.
	if got := testSelector().Random(catalog, bank.Domain("Nonexistent"), 5); got != nil {
		t.Errorf("selected = %v, want nil for empty pool", got)
	}
	if got := testSelector().Random(nil, bank.DomainAll, 5); got != nil {
		t.Errorf("selected = %v, want nil for empty catalog", got)
	}
}

func TestRandomDomainFilter(t *testing.T) {
	catalog := buildCatalog(10)
	got := testSelector().Random(catalog, bank.DomainProtection, 5)
	if len(got) != 5 {
		t.Fatalf("selected = %d, want 5", len(got))
	}
	for _, q := range got {
		if q.Domain != bank.DomainProtection {
			t.Errorf("question %d from domain %q, want %q", q.ID, q.Domain, bank.DomainProtection)
		}
	}
}

func TestFixedSetKeepsCatalogOrder(t *testing.T) {
	catalog := buildCatalog(3)
	ids := map[int]bool{9: true, 2: true, 14: true}

	got := testSelector().FixedSet(catalog, ids)
	if len(got) != 3 {
		t.Fatalf("selected = %d, want 3", len(got))
	}
	want := []int{2, 9, 14}
	for i, q := range got {
		if q.ID != want[i] {
			t.Errorf("position %d = id %d, want %d", i, q.ID, want[i])
		}
	}
}

func TestFixedSetEmpty(t *testing.T) {
	if got := testSelector().FixedSet(buildCatalog(2), nil); got != nil {
		t.Errorf("selected = %v, want nil for empty id set", got)
	}
}

func TestExamSetBlueprintComposition(t *testing.T) {
	catalog := buildCatalog(150)
	weights := DefaultExamWeights()

	exam := testSelector().ExamSet(catalog, 150, weights)

	if exam.Partial() {
		t.Fatal("unexpected partial exam with abundant catalog")
	}
	if len(exam.Questions) != 150 {
		t.Fatalf("exam size = %d, want 150", len(exam.Questions))
	}

	counts := make(map[bank.Domain]int)
	seen := make(map[int]bool)
	for _, q := range exam.Questions {
		counts[q.Domain]++
		if seen[q.ID] {
			t.Errorf("question %d appears twice", q.ID)
		}
		seen[q.ID] = true
	}

	for _, dw := range weights {
		want := int(math.Round(150 * dw.Weight))
		if counts[dw.Domain] != want {
			t.Errorf("domain %q count = %d, want %d", dw.Domain, counts[dw.Domain], want)
		}
	}
}

func TestExamSetSmallerSizes(t *testing.T) {
	catalog := buildCatalog(150)
	for _, total := range []int{50, 100} {
		exam := testSelector().ExamSet(catalog, total, DefaultExamWeights())
		if len(exam.Questions) != total {
			t.Errorf("exam size = %d, want %d", len(exam.Questions), total)
		}
		if exam.Partial() {
			t.Errorf("unexpected partial exam for total %d", total)
		}
	}
}

func TestExamSetTopUpCoversWeakDomain(t *testing.T) {
	// Protection has only 5 questions; its blueprint share of a 50-question
	// exam is 13. Top-up from other domains must still fill the exam.
	var catalog bank.Catalog
	id := 0
	for _, d := range bank.Domains() {
		n := 50
		if d == bank.DomainProtection {
			n = 5
		}
		for i := 0; i < n; i++ {
			id++
			catalog = append(catalog, bank.Question{ID: id, Domain: d, Options: []string{"a", "b"}})
		}
	}

	exam := testSelector().ExamSet(catalog, 50, DefaultExamWeights())
	if len(exam.Questions) != 50 {
		t.Fatalf("exam size = %d, want 50", len(exam.Questions))
	}
	if exam.Partial() {
		t.Error("exam flagged partial despite sufficient total catalog")
	}
}

func TestExamSetPartialSignal(t *testing.T) {
	catalog := buildCatalog(2) // 10 questions total
	exam := testSelector().ExamSet(catalog, 150, DefaultExamWeights())

	if len(exam.Questions) != 10 {
		t.Errorf("exam size = %d, want 10", len(exam.Questions))
	}
	if !exam.Partial() {
		t.Error("exam not flagged partial")
	}
	if exam.Requested != 150 {
		t.Errorf("requested = %d, want 150", exam.Requested)
	}
}

// fakeHistory implements HistoryProvider over fixed maps.
type fakeHistory struct {
	domains   map[bank.Domain]float64
	questions map[int]float64
}

func (f *fakeHistory) DomainAccuracy(d bank.Domain) (float64, bool) {
	acc, ok := f.domains[d]
	return acc, ok
}

func (f *fakeHistory) QuestionAccuracy(id int) (float64, bool) {
	acc, ok := f.questions[id]
	return acc, ok
}

func TestAdaptivePrioritizesWeakQuestions(t *testing.T) {
	catalog := bank.Catalog{
		{ID: 1, Domain: bank.DomainGovernance, Options: []string{"a", "b"}},
		{ID: 2, Domain: bank.DomainGovernance, Options: []string{"a", "b"}},
	}
	hist := &fakeHistory{
		questions: map[int]float64{
			1: 1.0, // 10/10 correct
			2: 0.0, // 0/10 correct
		},
	}

	got := testSelector().Adaptive(catalog, bank.DomainAll, 1, hist)
	if len(got) != 1 {
		t.Fatalf("selected = %d, want 1", len(got))
	}
	if got[0].ID != 2 {
		t.Errorf("top pick = %d, want the weaker-history question 2", got[0].ID)
	}
}

func TestAdaptiveNoHistoryKeepsCatalogOrder(t *testing.T) {
	catalog := buildCatalog(2)
	got := testSelector().Adaptive(catalog, bank.DomainAll, len(catalog), nil)

	if len(got) != len(catalog) {
		t.Fatalf("selected = %d, want %d", len(got), len(catalog))
	}
	for i, q := range got {
		if q.ID != catalog[i].ID {
			t.Errorf("position %d = id %d, want %d (ties keep catalog order)", i, q.ID, catalog[i].ID)
		}
	}
}

func TestAdaptiveWeakDomainOutranksStrongDomain(t *testing.T) {
	catalog := bank.Catalog{
		{ID: 1, Domain: bank.DomainGovernance, Options: []string{"a", "b"}},
		{ID: 2, Domain: bank.DomainProtection, Options: []string{"a", "b"}},
	}
	hist := &fakeHistory{
		domains: map[bank.Domain]float64{
			bank.DomainGovernance: 0.95,
			bank.DomainProtection: 0.40,
		},
	}

	got := testSelector().Adaptive(catalog, bank.DomainAll, 2, hist)
	if got[0].ID != 2 {
		t.Errorf("top pick = %d, want question 2 from the weaker domain", got[0].ID)
	}
}

func TestShuffleIsPermutation(t *testing.T) {
	catalog := buildCatalog(10)
	qs := make([]bank.Question, len(catalog))
	copy(qs, catalog)

	testSelector().Shuffle(qs)

	if len(qs) != len(catalog) {
		t.Fatalf("length changed: %d", len(qs))
	}
	seen := make(map[int]bool)
	for _, q := range qs {
		seen[q.ID] = true
	}
	for _, q := range catalog {
		if !seen[q.ID] {
			t.Errorf("question %d lost in shuffle", q.ID)
		}
	}
}
