package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"auditprep/internal/bank"
	"auditprep/internal/store"
)

var rootCmd = &cobra.Command{
	Use:          "auditprep",
	Short:        "Terminal trainer for the CISA exam",
	Long:         "AuditPrep — terminal study tool for the CISA certification: practice drills, weighted mock exams, and progress tracking.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("db", "", "Path to SQLite database file (overrides AUDITPREP_DB env var)")
	pf.String("bank", "questions.json", "Path to the question bank JSON file")
	pf.String("log-level", "warn", "Log level (debug, info, warn, error)")

	f := rootCmd.Flags()
	f.StringP("domain", "d", "all", "Restrict practice to one domain")
	f.IntP("questions", "n", 10, "Questions per practice session")
	f.Int("exam-size", 150, "Mock exam length (50, 100, 150)")
	f.Bool("adaptive", false, "Weight practice toward weak areas")

	pf.String("llm-url", "", "OpenAI-compatible API base URL for explain")
	pf.String("llm-key", "ollama", "API key for the LLM endpoint")
	pf.String("llm-model", "", "LLM model name")

	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(bankCmd)
	rootCmd.AddCommand(explainCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}

// viperForCmd binds a command's flags and environment to a fresh viper
// instance. The root is reached through the command itself; naming
// rootCmd here would create an initialization cycle through its RunE.
func viperForCmd(cmd *cobra.Command) *viper.Viper {
	v := viper.New()
	_ = v.BindPFlags(cmd.Flags())
	_ = v.BindPFlags(cmd.Root().PersistentFlags())

	v.SetEnvPrefix("AUDITPREP")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetConfigName("auditprep")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.config/auditprep")
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			slog.Warn("error reading config file", "error", err)
		}
	}

	return v
}

func setupLogging(v *viper.Viper) {
	var level slog.Level
	switch strings.ToLower(v.GetString("log-level")) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelWarn
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}

// openStore resolves the database path using --db (highest priority),
// then AUDITPREP_DB, then the default XDG path, and opens it.
func openStore(v *viper.Viper) (*store.Store, error) {
	path := v.GetString("db")
	if path != "" {
		if err := store.EnsureDir(path); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
	} else {
		var err error
		path, err = store.DefaultDBPath()
		if err != nil {
			return nil, fmt.Errorf("resolve DB path: %w", err)
		}
	}
	return store.Open(path)
}

func loadCatalog(v *viper.Viper) (bank.Catalog, error) {
	path := v.GetString("bank")
	catalog, err := bank.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load question bank %s: %w", path, err)
	}
	if len(catalog) == 0 {
		return nil, fmt.Errorf("question bank %s is empty", path)
	}
	slog.Info("loaded question bank", "path", path, "questions", len(catalog))
	return catalog, nil
}
