package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizgen/internal/quiz"
)

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "Manage prompt templates",
}

var templatesDumpCmd = &cobra.Command{
	Use:   "dump <dir>",
	Short: "Write the built-in prompt templates to a directory for editing",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")
		written, err := dumpTemplates(args[0], force)
		for _, p := range written {
			fmt.Fprintln(cmd.OutOrStdout(), "wrote", p)
		}
		return err
	},
}

var templatesShowCmd = &cobra.Command{
	Use:   "show <type>",
	Short: "Print the template that would be used for a question type",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, _ := cmd.Flags().GetString("templates")
		qtype := quiz.QuestionType(args[0])

		if dir != "" {
			tmpl, err := quiz.DirTemplates(dir).Load(qtype)
			if err == nil {
				fmt.Fprint(cmd.OutOrStdout(), tmpl)
				return nil
			}
			if !errors.Is(err, fs.ErrNotExist) {
				return err
			}
		}
		tmpl, ok := quiz.BuiltinTemplate(qtype)
		if !ok {
			return fmt.Errorf("no template for question type %q", args[0])
		}
		fmt.Fprintln(cmd.OutOrStdout(), tmpl)
		return nil
	},
}

// dumpTemplates writes one file per concrete question type and returns
// the paths written.
func dumpTemplates(dir string, force bool) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create %s: %w", dir, err)
	}

	var written []string
	for _, t := range quiz.ConcreteTypes {
		tmpl, _ := quiz.BuiltinTemplate(t)
		path := filepath.Join(dir, quiz.TemplateFileName(t))

		flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
		if !force {
			flags |= os.O_EXCL
		}
		f, err := os.OpenFile(path, flags, 0o644)
		if err != nil {
			if errors.Is(err, fs.ErrExist) {
				return written, fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}
			return written, err
		}
		_, werr := f.WriteString(tmpl + "\n")
		if cerr := f.Close(); werr == nil {
			werr = cerr
		}
		if werr != nil {
			return written, fmt.Errorf("write %s: %w", path, werr)
		}
		written = append(written, path)
	}
	return written, nil
}

func init() {
	templatesDumpCmd.Flags().Bool("force", false, "Overwrite existing template files")
	templatesShowCmd.Flags().String("templates", os.Getenv("QUIZGEN_TEMPLATES"), "Directory with {type}_template.txt prompt overrides")

	templatesCmd.AddCommand(templatesDumpCmd)
	templatesCmd.AddCommand(templatesShowCmd)
}
