package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizgen/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "quizgen",
	Short: "Generate quiz questions from text with an LLM",
	Long: "quizgen turns source text into multiple-choice, true/false and short-answer\n" +
		"questions by prompting an LLM and repairing whatever JSON it sends back.",
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite event database (overrides QUIZGEN_DB env var)")
	rootCmd.PersistentFlags().String("config", os.Getenv("QUIZGEN_CONFIG"), "Path to YAML provider config (overrides QUIZGEN_CONFIG env var)")
	rootCmd.PersistentFlags().String("log-mode", envOr("QUIZGEN_LOG_MODE", "dev"), "Log format: dev or prod")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(templatesCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then QUIZGEN_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
