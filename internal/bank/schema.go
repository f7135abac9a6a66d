package bank

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// bankSchema describes the expected shape of a question bank file.
// Loading is deliberately lenient (see Load); this schema exists for the
// `bank vet` surface so authors can find feed problems before the
// defaults paper over them.
var bankSchema = map[string]any{
	"type": "array",
	"items": map[string]any{
		"type": "object",
		"properties": map[string]any{
			"id":       map[string]any{"type": "integer", "minimum": 1},
			"question": map[string]any{"type": "string", "minLength": 1},
			"option_a": map[string]any{"type": "string"},
			"option_b": map[string]any{"type": "string"},
			"option_c": map[string]any{"type": "string"},
			"option_d": map[string]any{"type": "string"},
			"correct_answer": map[string]any{
				"type":    "string",
				"pattern": "^\\s*[a-dA-D]\\s*$",
			},
			"domain":      map[string]any{"type": "string", "minLength": 1},
			"explanation": map[string]any{"type": "string"},
			"difficulty":  map[string]any{"type": []any{"integer", "string"}},
		},
		"required": []any{"question", "option_a", "option_b", "correct_answer", "domain"},
	},
}

var (
	compileOnce    sync.Once
	compiledSchema *jsonschema.Schema
	compileErr     error
)

func compiledBankSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		// The jsonschema library expects a parsed JSON value, not raw
		// bytes. Round-trip through encoding/json to get one.
		defBytes, err := json.Marshal(bankSchema)
		if err != nil {
			compileErr = fmt.Errorf("marshal bank schema: %w", err)
			return
		}
		var defParsed any
		if err := json.Unmarshal(defBytes, &defParsed); err != nil {
			compileErr = fmt.Errorf("parse bank schema: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		const schemaURL = "schema://question-bank.json"
		if err := c.AddResource(schemaURL, defParsed); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile(schemaURL)
	})
	return compiledSchema, compileErr
}

// VetReport summarizes schema findings and leniency fallbacks for a
// bank file.
type VetReport struct {
	Records     int
	SchemaError error    // nil when the file conforms
	Warnings    []string // per-record leniency notes
}

// Clean reports whether the file had neither schema errors nor warnings.
func (r *VetReport) Clean() bool {
	return r.SchemaError == nil && len(r.Warnings) == 0
}

// Vet validates raw bank JSON against the schema and reports every
// record where Load would fall back to a default. It never refuses the
// file: vetting is advisory, loading stays lenient.
func Vet(raw []byte) (*VetReport, error) {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}

	schema, err := compiledBankSchema()
	if err != nil {
		return nil, err
	}

	report := &VetReport{SchemaError: schema.Validate(parsed)}

	var records []RawRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		// Schema error above already covers unexpected shapes.
		return report, nil
	}
	report.Records = len(records)

	seen := make(map[int]int)
	for i, r := range records {
		pos := i + 1
		opts := r.options()

		if len(opts) < 2 {
			report.Warnings = append(report.Warnings,
				fmt.Sprintf("record %d: only %d option(s) present", pos, len(opts)))
		}
		if s := strings.ToUpper(strings.TrimSpace(r.CorrectAnswer)); len(s) != 1 || s[0] < 'A' || int(s[0]-'A') >= len(opts) {
			report.Warnings = append(report.Warnings,
				fmt.Sprintf("record %d: correct answer %q does not resolve, loader will default to A", pos, r.CorrectAnswer))
		}
		if r.Difficulty != nil && parseDifficulty(r.Difficulty) == DefaultDifficulty && !isDefaultDifficultyLiteral(r.Difficulty) {
			report.Warnings = append(report.Warnings,
				fmt.Sprintf("record %d: difficulty %v out of range, loader will default to %d", pos, r.Difficulty, DefaultDifficulty))
		}
		if r.ID > 0 {
			if prev, dup := seen[r.ID]; dup {
				report.Warnings = append(report.Warnings,
					fmt.Sprintf("record %d: duplicate id %d (first at record %d)", pos, r.ID, prev))
			} else {
				seen[r.ID] = pos
			}
		}
	}
	return report, nil
}

// isDefaultDifficultyLiteral reports whether the raw value literally
// spells the default, so a legitimate "3" is not flagged as a fallback.
func isDefaultDifficultyLiteral(v any) bool {
	switch t := v.(type) {
	case float64:
		return int(t) == DefaultDifficulty
	case int:
		return t == DefaultDifficulty
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(t))
		return err == nil && n == DefaultDifficulty
	case json.Number:
		n, err := t.Int64()
		return err == nil && int(n) == DefaultDifficulty
	}
	return false
}
