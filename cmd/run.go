package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizgen/internal/llm"
	"github.com/abhisek/quizgen/internal/logger"
	"github.com/abhisek/quizgen/internal/quiz"
	"github.com/abhisek/quizgen/internal/store"
)

// deps holds everything a generating command needs.
type deps struct {
	log       *logger.Logger
	store     *store.Store
	generator *quiz.Generator
	provider  string
}

func (d *deps) Close() {
	if d.store != nil {
		d.store.Close()
	}
	d.log.Sync()
}

// buildDeps opens the event store, loads provider configuration and
// builds the question generator.
func buildDeps(cmd *cobra.Command, templatesDir string) (*deps, error) {
	mode, _ := cmd.Flags().GetString("log-mode")
	log, err := logger.New(mode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	configPath, _ := cmd.Flags().GetString("config")
	cfg, err := llm.LoadConfig(configPath)
	if err != nil {
		return nil, &quiz.ConfigurationError{Msg: "load LLM config", Err: err}
	}
	if err := cfg.Validate(); err != nil {
		return nil, &quiz.ConfigurationError{Msg: "LLM provider not configured", Err: err}
	}

	d := &deps{log: log, provider: cfg.Provider}

	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	d.store = st

	provider, err := llm.NewProvider(cmd.Context(), cfg, st.EventRepo(), log)
	if err != nil {
		d.Close()
		return nil, &quiz.ConfigurationError{Msg: "initialize LLM provider", Err: err}
	}

	var templates quiz.TemplateSource
	if templatesDir != "" {
		if _, err := os.Stat(templatesDir); err != nil {
			d.Close()
			return nil, &quiz.ConfigurationError{Msg: "templates directory", Err: err}
		}
		templates = quiz.DirTemplates(templatesDir)
	}

	d.generator = quiz.New(provider, quiz.DefaultConfig(), templates, log)
	log.Debug("generator ready", "provider", cfg.Provider, "model", provider.ModelID(), "db", dbPath, "templates", templatesDir)
	return d, nil
}
