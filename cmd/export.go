package cmd

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"auditprep/internal/perf"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export session history as CSV",
	RunE: func(cmd *cobra.Command, args []string) error {
		v := viperForCmd(cmd)
		setupLogging(v)

		st, err := openStore(v)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		rec, err := perf.Load(cmd.Context(), st.KV())
		if err != nil {
			return fmt.Errorf("load performance state: %w", err)
		}

		rows := rec.HistoryRows()
		if v.GetBool("summary") {
			rows = rec.SummaryRows()
		}

		outPath := v.GetString("output")
		var w io.Writer
		if outPath == "" || outPath == "-" {
			w = cmd.OutOrStdout()
		} else {
			f, err := os.Create(outPath)
			if err != nil {
				return fmt.Errorf("create output file: %w", err)
			}
			defer f.Close()
			w = f
		}

		cw := csv.NewWriter(w)
		if err := cw.WriteAll(rows); err != nil {
			return fmt.Errorf("write csv: %w", err)
		}
		return nil
	},
}

func init() {
	exportCmd.Flags().StringP("output", "o", "-", "Output file path (- for stdout)")
	exportCmd.Flags().Bool("summary", false, "Export the aggregate summary instead of the session history")
}
