package cmd

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizgen/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve question generation over HTTP",
	Long: "Serve POST /v1/questions and GET /healthz. Each request runs an\n" +
		"independent generation; every LLM call is recorded in the event database.",
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, _ := cmd.Flags().GetString("addr")
		origins, _ := cmd.Flags().GetStringSlice("cors-origin")
		timeout, _ := cmd.Flags().GetDuration("timeout")
		maxCount, _ := cmd.Flags().GetInt("max-count")
		templatesDir, _ := cmd.Flags().GetString("templates")

		d, err := buildDeps(cmd, templatesDir)
		if err != nil {
			return err
		}
		defer d.Close()

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		srv := server.New(d.generator, server.Options{
			AllowedOrigins: origins,
			RequestTimeout: timeout,
			MaxCount:       maxCount,
		}, d.log)
		return srv.ListenAndServe(ctx, addr)
	},
}

func init() {
	serveCmd.Flags().String("addr", envOr("QUIZGEN_ADDR", ":8080"), "Listen address")
	serveCmd.Flags().StringSlice("cors-origin", nil, "Allowed CORS origin (repeatable, default any)")
	serveCmd.Flags().Duration("timeout", 0, "Per-request generation timeout (default 3m)")
	serveCmd.Flags().Int("max-count", 0, "Largest question count a request may ask for (default 50)")
	serveCmd.Flags().String("templates", envOr("QUIZGEN_TEMPLATES", ""), "Directory with {type}_template.txt prompt overrides")
}
