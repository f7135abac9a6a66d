package bank

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// RawRecord is one entry of the imported question feed. Field values are
// taken as-is from the source; Load applies all normalization and
// defaulting. Unrecognized JSON fields are ignored by decoding.
type RawRecord struct {
	ID            int    `json:"id"`
	Question      string `json:"question"`
	OptionA       string `json:"option_a"`
	OptionB       string `json:"option_b"`
	OptionC       string `json:"option_c"`
	OptionD       string `json:"option_d"`
	CorrectAnswer string `json:"correct_answer"`
	Domain        string `json:"domain"`
	Explanation   string `json:"explanation"`
	Difficulty    any    `json:"difficulty"`
}

// options collects the present, non-empty option fields in A..D order.
func (r RawRecord) options() []string {
	var opts []string
	for _, o := range []string{r.OptionA, r.OptionB, r.OptionC, r.OptionD} {
		if strings.TrimSpace(o) != "" {
			opts = append(opts, o)
		}
	}
	return opts
}

// Load transforms raw records into the validated catalog. It is a pure
// function and never fails on a malformed record: the documented
// leniency defaults apply instead (correct letter -> A, difficulty -> 3,
// missing id -> 1-based source position). Duplicate source ids are a
// caller error; the selection and aggregation engines assume uniqueness.
func Load(records []RawRecord) Catalog {
	catalog := make(Catalog, 0, len(records))
	for i, r := range records {
		opts := r.options()

		id := r.ID
		if id <= 0 {
			id = i + 1
		}

		catalog = append(catalog, Question{
			ID:           id,
			Text:         r.Question,
			Options:      opts,
			CorrectIndex: correctIndex(r.CorrectAnswer, len(opts)),
			Domain:       NormalizeDomain(r.Domain),
			Explanation:  r.Explanation,
			Difficulty:   parseDifficulty(r.Difficulty),
		})
	}
	return catalog
}

// correctIndex resolves a correct-answer letter to an option index.
// Matching is case- and whitespace-insensitive over A..D. An invalid,
// missing, or out-of-range letter falls back to index 0 (option A);
// this is the documented leniency, not an error path.
func correctIndex(letter string, optionCount int) int {
	s := strings.ToUpper(strings.TrimSpace(letter))
	if len(s) != 1 {
		return 0
	}
	idx := int(s[0] - 'A')
	if idx < 0 || idx >= optionCount {
		return 0
	}
	return idx
}

// parseDifficulty accepts the loosely-typed difficulty field (JSON
// number, numeric string, or absent) and clamps to the documented
// default when unusable.
func parseDifficulty(v any) int {
	var d int
	switch t := v.(type) {
	case nil:
		return DefaultDifficulty
	case float64:
		d = int(t)
	case int:
		d = t
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(t))
		if err != nil {
			return DefaultDifficulty
		}
		d = n
	case json.Number:
		n, err := t.Int64()
		if err != nil {
			return DefaultDifficulty
		}
		d = int(n)
	default:
		return DefaultDifficulty
	}
	if d < MinDifficulty || d > MaxDifficulty {
		return DefaultDifficulty
	}
	return d
}

// ReadFile decodes a question bank JSON file into raw records.
func ReadFile(path string) ([]RawRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read bank file: %w", err)
	}
	var records []RawRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode bank file %s: %w", path, err)
	}
	return records, nil
}

// LoadFile reads and loads a bank file in one step.
func LoadFile(path string) (Catalog, error) {
	records, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Load(records), nil
}
