package bank

import (
	"testing"
)

func TestLoadCollectsPresentOptions(t *testing.T) {
	catalog := Load([]RawRecord{
		{
			Question:      "Which control is preventive?",
			OptionA:       "Firewall",
			OptionB:       "Audit log review",
			OptionC:       "  ",
			CorrectAnswer: "A",
			Domain:        "protection of information assets",
		},
	})

	if len(catalog) != 1 {
		t.Fatalf("catalog size = %d, want 1", len(catalog))
	}
	q := catalog[0]
	if len(q.Options) != 2 {
		t.Errorf("options = %v, want 2 entries", q.Options)
	}
	if q.Options[0] != "Firewall" || q.Options[1] != "Audit log review" {
		t.Errorf("option order not preserved: %v", q.Options)
	}
	if q.Domain != DomainProtection {
		t.Errorf("domain = %q, want %q", q.Domain, DomainProtection)
	}
}

func TestLoadCorrectLetter(t *testing.T) {
	tests := []struct {
		name   string
		letter string
		want   int
	}{
		{"uppercase", "C", 2},
		{"lowercase", "b", 1},
		{"surrounding whitespace", "  d ", 3},
		{"invalid letter defaults to A", "Z", 0},
		{"empty defaults to A", "", 0},
		{"multi-char defaults to A", "AB", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			catalog := Load([]RawRecord{{
				Question:      "q",
				OptionA:       "1",
				OptionB:       "2",
				OptionC:       "3",
				OptionD:       "4",
				CorrectAnswer: tt.letter,
				Domain:        "general",
			}})
			if got := catalog[0].CorrectIndex; got != tt.want {
				t.Errorf("CorrectIndex(%q) = %d, want %d", tt.letter, got, tt.want)
			}
		})
	}
}

func TestLoadCorrectLetterBeyondOptionCount(t *testing.T) {
	// "D" with only two options present cannot resolve; defaults to A.
	catalog := Load([]RawRecord{{
		Question:      "q",
		OptionA:       "1",
		OptionB:       "2",
		CorrectAnswer: "D",
		Domain:        "general",
	}})
	if got := catalog[0].CorrectIndex; got != 0 {
		t.Errorf("CorrectIndex = %d, want 0", got)
	}
}

func TestLoadDifficulty(t *testing.T) {
	tests := []struct {
		name string
		raw  any
		want int
	}{
		{"absent", nil, 3},
		{"json number", float64(5), 5},
		{"numeric string", "2", 2},
		{"below range", float64(0), 3},
		{"above range", "9", 3},
		{"garbage string", "hard", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			catalog := Load([]RawRecord{{
				Question: "q", OptionA: "1", OptionB: "2",
				CorrectAnswer: "A", Domain: "general", Difficulty: tt.raw,
			}})
			if got := catalog[0].Difficulty; got != tt.want {
				t.Errorf("Difficulty(%v) = %d, want %d", tt.raw, got, tt.want)
			}
		})
	}
}

func TestLoadAssignsPositionalIDs(t *testing.T) {
	catalog := Load([]RawRecord{
		{Question: "a", OptionA: "1", OptionB: "2", CorrectAnswer: "A", Domain: "x"},
		{Question: "b", OptionA: "1", OptionB: "2", CorrectAnswer: "A", Domain: "x", ID: 40},
		{Question: "c", OptionA: "1", OptionB: "2", CorrectAnswer: "A", Domain: "x"},
	})

	if catalog[0].ID != 1 {
		t.Errorf("first id = %d, want 1", catalog[0].ID)
	}
	if catalog[1].ID != 40 {
		t.Errorf("explicit id = %d, want 40", catalog[1].ID)
	}
	if catalog[2].ID != 3 {
		t.Errorf("third id = %d, want 3", catalog[2].ID)
	}
}

func TestNormalizeDomainIdempotent(t *testing.T) {
	a := NormalizeDomain("  governance and management of it ")
	b := NormalizeDomain("Governance And Management Of It")

	if a != b {
		t.Errorf("normalized labels differ: %q vs %q", a, b)
	}
	if a != DomainGovernance {
		t.Errorf("label = %q, want %q", a, DomainGovernance)
	}
	if NormalizeDomain(string(a)) != a {
		t.Errorf("normalization is not idempotent for %q", a)
	}
}

func TestCatalogInDomain(t *testing.T) {
	catalog := Load([]RawRecord{
		{Question: "a", OptionA: "1", OptionB: "2", CorrectAnswer: "A", Domain: "protection of information assets"},
		{Question: "b", OptionA: "1", OptionB: "2", CorrectAnswer: "A", Domain: "governance and management of it"},
		{Question: "c", OptionA: "1", OptionB: "2", CorrectAnswer: "A", Domain: "Protection Of Information Assets"},
	})

	got := catalog.InDomain(DomainProtection)
	if len(got) != 2 {
		t.Fatalf("InDomain size = %d, want 2", len(got))
	}
	if got[0].ID != 1 || got[1].ID != 3 {
		t.Errorf("InDomain order = %d,%d, want catalog order 1,3", got[0].ID, got[1].ID)
	}

	if all := catalog.InDomain(DomainAll); len(all) != 3 {
		t.Errorf("InDomain(all) size = %d, want 3", len(all))
	}
}

func TestCatalogByID(t *testing.T) {
	catalog := Load([]RawRecord{
		{Question: "a", OptionA: "1", OptionB: "2", CorrectAnswer: "B", Domain: "x"},
	})
	if q := catalog.ByID(1); q == nil || q.Text != "a" {
		t.Errorf("ByID(1) = %v, want question a", q)
	}
	if q := catalog.ByID(99); q != nil {
		t.Errorf("ByID(99) = %v, want nil", q)
	}
}
