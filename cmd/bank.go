package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"auditprep/internal/bank"
)

var bankCmd = &cobra.Command{
	Use:   "bank",
	Short: "Question bank utilities",
}

var bankVetCmd = &cobra.Command{
	Use:   "vet [file]",
	Short: "Validate a question bank file and report fixups",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		v := viperForCmd(cmd)
		setupLogging(v)

		path := v.GetString("bank")
		if len(args) == 1 {
			path = args[0]
		}

		raw, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}

		report, err := bank.Vet(raw)
		if err != nil {
			return fmt.Errorf("vet %s: %w", path, err)
		}
		if report.SchemaError != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: schema violation: %v\n", path, report.SchemaError)
			return fmt.Errorf("%s failed validation", path)
		}

		for _, warning := range report.Warnings {
			fmt.Fprintf(cmd.OutOrStdout(), "warning: %s\n", warning)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %d questions, %d warnings\n",
			path, report.Records, len(report.Warnings))
		return nil
	},
}

func init() {
	bankCmd.AddCommand(bankVetCmd)
}
