package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"auditprep/internal/perf"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show study statistics",
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

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		for _, row := range rec.SummaryRows() {
			fmt.Fprintf(w, "%s\t%s\n", row[0], row[1])
		}
		return w.Flush()
	},
}
