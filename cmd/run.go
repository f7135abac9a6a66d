package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"auditprep/internal/app"
	"auditprep/internal/config"
	"auditprep/internal/perf"
	"auditprep/internal/selection"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	v := viperForCmd(cmd)
	setupLogging(v)

	st, err := openStore(v)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	catalog, err := loadCatalog(v)
	if err != nil {
		return err
	}

	kv := st.KV()
	rec, err := perf.Load(cmd.Context(), kv)
	if err != nil {
		return fmt.Errorf("load performance state: %w", err)
	}

	cfg := config.FromViper(v)
	sel := selection.New(nil)

	return app.Run(catalog, rec, sel, cfg, kv)
}
