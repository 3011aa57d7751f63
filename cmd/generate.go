package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/colorprofile"
	"github.com/spf13/cobra"

	"github.com/abhisek/quizgen/internal/quiz"
	"github.com/abhisek/quizgen/internal/ui/components"
	"github.com/abhisek/quizgen/internal/ui/theme"
)

var generateCmd = &cobra.Command{
	Use:   "generate [text...]",
	Short: "Generate questions from text",
	Long: "Generate questions from source text given as arguments, a file (--file)\n" +
		"or standard input (--file -).",
	Example: "  quizgen generate --type mixed -n 10 --file notes.txt\n" +
		"  cat chapter.txt | quizgen generate -f - --json",
	RunE: func(cmd *cobra.Command, args []string) error {
		qtype, _ := cmd.Flags().GetString("type")
		count, _ := cmd.Flags().GetInt("count")
		difficulty, _ := cmd.Flags().GetString("difficulty")
		file, _ := cmd.Flags().GetString("file")
		templatesDir, _ := cmd.Flags().GetString("templates")
		asJSON, _ := cmd.Flags().GetBool("json")
		hideAnswers, _ := cmd.Flags().GetBool("hide-answers")

		source, err := readSource(cmd.InOrStdin(), file, args)
		if err != nil {
			return err
		}

		d, err := buildDeps(cmd, templatesDir)
		if err != nil {
			return err
		}
		defer d.Close()

		res, err := d.generator.Generate(cmd.Context(), quiz.Request{
			SourceText: source,
			Type:       quiz.QuestionType(qtype),
			N:          count,
			Difficulty: difficulty,
		})
		if err != nil {
			var parseErr *quiz.ParseError
			if errors.As(err, &parseErr) {
				fmt.Fprintf(cmd.ErrOrStderr(), "Raw model output:\n%s\n\n", parseErr.Raw)
			}
			return err
		}

		if asJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(res)
		}
		return renderResult(cmd.OutOrStdout(), res, count, !hideAnswers)
	},
}

// readSource returns text from --file (or stdin for "-"), else the
// joined arguments.
func readSource(stdin io.Reader, file string, args []string) (string, error) {
	switch {
	case file == "-":
		b, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(b), nil
	case file != "":
		b, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("read source file: %w", err)
		}
		return string(b), nil
	case len(args) > 0:
		return strings.Join(args, " "), nil
	}
	return "", errors.New("no source text: pass it as arguments, with --file, or --file - for stdin")
}

func renderResult(w io.Writer, res *quiz.Result, requested int, showAnswers bool) error {
	out := colorprofile.NewWriter(w, os.Environ())

	if len(res.Questions) == 0 {
		_, err := fmt.Fprintln(out, theme.Warning.Render("No questions generated."))
		return err
	}
	for _, r := range res.Questions {
		card := components.QuestionCard{Record: r, ShowAnswer: showAnswers}
		if _, err := fmt.Fprintln(out, card.View()); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(out, components.ReportLine(res.Report, requested, len(res.Questions)))
	return err
}

func init() {
	generateCmd.Flags().StringP("type", "t", "mcq", "Question type: mcq, tf, full or mixed")
	generateCmd.Flags().IntP("count", "n", 5, "Number of questions to request")
	generateCmd.Flags().StringP("difficulty", "d", "medium", "Difficulty: easy, medium, hard or auto")
	generateCmd.Flags().StringP("file", "f", "", "Read source text from a file (- for stdin)")
	generateCmd.Flags().String("templates", os.Getenv("QUIZGEN_TEMPLATES"), "Directory with {type}_template.txt prompt overrides")
	generateCmd.Flags().Bool("json", false, "Print the result as JSON")
	generateCmd.Flags().Bool("hide-answers", false, "Do not print answers and explanations")
}
