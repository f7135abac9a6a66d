package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"auditprep/internal/config"
	"auditprep/internal/llm"
)

var explainCmd = &cobra.Command{
	Use:   "explain <question-id>",
	Short: "Ask an LLM for a walkthrough of one question",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		v := viperForCmd(cmd)
		setupLogging(v)

		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("question id must be a number, got %q", args[0])
		}

		catalog, err := loadCatalog(v)
		if err != nil {
			return err
		}
		q := catalog.ByID(id)
		if q == nil {
			return fmt.Errorf("no question with id %d in the bank", id)
		}

		cfg := config.FromViper(v)
		client := llm.New(cfg.LLMBaseURL, cfg.LLMKey, cfg.LLMModel)
		text, err := client.Explain(cmd.Context(), *q)
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), text)
		return nil
	},
}
