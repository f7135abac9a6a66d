package perf

import (
	"fmt"
	"strconv"
	"time"

	"auditprep/internal/bank"
)

// SummaryRows returns the aggregate picture as header + metric rows,
// ready for CSV output.
func (r *Recorder) SummaryRows() [][]string {
	rows := [][]string{{"metric", "value"}}
	rows = append(rows, []string{"sessions", strconv.Itoa(r.Sessions())})

	if acc, ok := r.OverallAccuracy(); ok {
		rows = append(rows, []string{"overall_accuracy", fmt.Sprintf("%.1f%%", acc*100)})
	} else {
		rows = append(rows, []string{"overall_accuracy", "n/a"})
	}

	for _, d := range bank.Domains() {
		ds := r.domains[d]
		rows = append(rows, []string{
			"domain: " + string(d),
			fmt.Sprintf("%d/%d", ds.Correct, ds.Total),
		})
	}

	rows = append(rows,
		[]string{"bookmarked", strconv.Itoa(len(r.bookmarks))},
		[]string{"missed_pool", strconv.Itoa(len(r.missed))},
	)
	return rows
}

// HistoryRows returns the session history as header + one row per
// result, most recent first. Each canonical domain gets its own
// correct/total column.
func (r *Recorder) HistoryRows() [][]string {
	header := []string{"id", "timestamp", "mode", "questions", "correct", "percentage", "elapsed_minutes"}
	for _, d := range bank.Domains() {
		header = append(header, string(d))
	}
	rows := [][]string{header}

	for _, res := range r.history {
		row := []string{
			res.ID,
			res.Timestamp.Format(time.RFC3339),
			res.Mode.String(),
			strconv.Itoa(res.TotalQuestions),
			strconv.Itoa(res.CorrectCount),
			strconv.Itoa(res.Percentage),
			strconv.Itoa(res.ElapsedMinutes),
		}
		for _, d := range bank.Domains() {
			ds, ok := res.Domains[d]
			if !ok {
				row = append(row, "")
				continue
			}
			row = append(row, fmt.Sprintf("%d/%d", ds.Correct, ds.Total))
		}
		rows = append(rows, row)
	}
	return rows
}
