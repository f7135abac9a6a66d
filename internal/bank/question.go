package bank

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Domain is a canonical CISA knowledge-area label. Raw bank data arrives
// with arbitrary casing and spacing; NormalizeDomain collapses every
// variation to exactly one of the five canonical labels (or a canonical
// form of whatever unknown label the data carries).
type Domain string

const (
	DomainAuditProcess Domain = "Information Systems Auditing Process"
	DomainGovernance   Domain = "Governance And Management Of It"
	DomainAcquisition  Domain = "Information Systems Acquisition Development And Implementation"
	DomainOperations   Domain = "Information Systems Operations And Business Resilience"
	DomainProtection   Domain = "Protection Of Information Assets"

	// DomainAll is the filter value meaning "no domain filter".
	DomainAll Domain = "all"
)

// Domains returns the five canonical exam domains in blueprint order.
func Domains() []Domain {
	return []Domain{
		DomainAuditProcess,
		DomainGovernance,
		DomainAcquisition,
		DomainOperations,
		DomainProtection,
	}
}

var titleCaser = cases.Title(language.English)

// NormalizeDomain lowercases the raw label, title-cases each
// whitespace-separated token, and joins tokens with single spaces.
// Deterministic and idempotent: normalizing a canonical label yields
// the same label back.
func NormalizeDomain(raw string) Domain {
	fields := strings.Fields(strings.ToLower(raw))
	for i, f := range fields {
		fields[i] = titleCaser.String(f)
	}
	return Domain(strings.Join(fields, " "))
}

const (
	// MinDifficulty..MaxDifficulty is the accepted difficulty range.
	MinDifficulty = 1
	MaxDifficulty = 5

	// DefaultDifficulty is applied when a record carries no usable value.
	DefaultDifficulty = 3
)

// optionLetters maps option index to the displayed answer letter.
var optionLetters = []string{"A", "B", "C", "D"}

// Question is one validated bank entry. Immutable after Load.
type Question struct {
	ID           int
	Text         string
	Options      []string // 2-4 entries, insertion order defines letters A..D
	CorrectIndex int      // always a valid index into Options
	Domain       Domain
	Explanation  string
	Difficulty   int // 1-5
}

// OptionLetter returns the display letter for an option index, or ""
// when the index is out of range.
func (q Question) OptionLetter(i int) string {
	if i < 0 || i >= len(optionLetters) {
		return ""
	}
	return optionLetters[i]
}

// CorrectLetter returns the display letter of the correct option.
func (q Question) CorrectLetter() string {
	return q.OptionLetter(q.CorrectIndex)
}

// Catalog is the full immutable question list produced by Load.
type Catalog []Question

// ByID returns the question with the given id, or nil.
func (c Catalog) ByID(id int) *Question {
	for i := range c {
		if c[i].ID == id {
			return &c[i]
		}
	}
	return nil
}

// InDomain returns questions matching the filter, in catalog order.
// DomainAll (or "") matches everything.
func (c Catalog) InDomain(d Domain) []Question {
	if d == DomainAll || d == "" {
		out := make([]Question, len(c))
		copy(out, c)
		return out
	}
	var out []Question
	for _, q := range c {
		if q.Domain == d {
			out = append(out, q)
		}
	}
	return out
}
