package quiz

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
)

// TemplateSource loads user-overridable prompt templates.
type TemplateSource interface {
	// Load returns the template for t. A missing template is reported
	// with an error wrapping fs.ErrNotExist.
	Load(t QuestionType) (string, error)
}

// TemplateFileName is the file a template for t is read from.
func TemplateFileName(t QuestionType) string {
	return string(t) + "_template.txt"
}

// FSTemplates reads "{type}_template.txt" files from a file system.
type FSTemplates struct {
	FS fs.FS
}

// DirTemplates returns a TemplateSource backed by the directory dir.
func DirTemplates(dir string) FSTemplates {
	return FSTemplates{FS: os.DirFS(dir)}
}

func (s FSTemplates) Load(t QuestionType) (string, error) {
	b, err := fs.ReadFile(s.FS, TemplateFileName(t))
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Templates are plain text with {source_text}, {n} and {difficulty}
// placeholders. Literal braces are written doubled.
var builtinTemplates = map[QuestionType]string{
	TypeMCQ: "You are an exam creator. Given the following source text delimited by triple backticks, " +
		"create {n} multiple-choice questions (MCQs) at {difficulty} difficulty. RETURN ONLY A JSON ARRAY. " +
		"Each element must be an object with keys: id (int, optional), type ('mcq'), question (string), " +
		"options (list of 4 strings), answer (one of 'A','B','C','D'), explanation (short string, optional), " +
		"difficulty ('easy','medium','hard').\n\n" +
		"Source text:\n```{source_text}```\n\nReturn the JSON array only.",
	TypeTF: "You are an exam creator. Given the following source text delimited by triple backticks, " +
		"create {n} True/False questions at {difficulty} difficulty. RETURN ONLY A JSON ARRAY, where each object has keys: " +
		"id (int, optional), type ('tf'), question (string), answer (true/false), explanation (optional), " +
		"difficulty ('easy','medium','hard').\n\n" +
		"Source text:\n```{source_text}```\n\nReturn the JSON array only.",
	TypeFull: "You are an exam creator. Given the following source text delimited by triple backticks, create {n} " +
		"short-answer questions at {difficulty} difficulty. RETURN ONLY A JSON ARRAY where each object has keys: " +
		"id (int, optional), type ('full'), question (string), answer (string), explanation (optional), " +
		"difficulty ('easy','medium','hard').\n\n" +
		"Source text:\n```{source_text}```\n\nReturn the JSON array only.",
}

// BuiltinTemplate returns the fallback template for t.
func BuiltinTemplate(t QuestionType) (string, bool) {
	tmpl, ok := builtinTemplates[t]
	return tmpl, ok
}

// Prompt is a filled template.
type Prompt struct {
	Text string

	// External is true when the template came from the TemplateSource
	// rather than the built-in set.
	External bool
}

// PromptBuilder resolves and fills prompt templates.
type PromptBuilder struct {
	templates TemplateSource
}

// NewPromptBuilder returns a builder that prefers templates from src.
// src may be nil, in which case only built-in templates are used.
func NewPromptBuilder(src TemplateSource) *PromptBuilder {
	return &PromptBuilder{templates: src}
}

// Build fills the template for t with the source text, count and
// difficulty.
func (b *PromptBuilder) Build(t QuestionType, sourceText string, n int, difficulty string) (Prompt, error) {
	if !t.Concrete() {
		return Prompt{}, &ConfigurationError{Msg: fmt.Sprintf("no prompt template for question type %q", t)}
	}

	tmpl, external, err := b.resolve(t)
	if err != nil {
		return Prompt{}, err
	}

	r := strings.NewReplacer(
		"{source_text}", sourceText,
		"{n}", strconv.Itoa(n),
		"{difficulty}", difficulty,
		"{{", "{",
		"}}", "}",
	)
	return Prompt{Text: r.Replace(tmpl), External: external}, nil
}

func (b *PromptBuilder) resolve(t QuestionType) (string, bool, error) {
	if b.templates != nil {
		tmpl, err := b.templates.Load(t)
		switch {
		case err == nil:
			return tmpl, true, nil
		case !errors.Is(err, fs.ErrNotExist):
			return "", false, &ConfigurationError{Msg: "read template " + TemplateFileName(t), Err: err}
		}
	}

	tmpl, ok := BuiltinTemplate(t)
	if !ok {
		return "", false, &ConfigurationError{Msg: fmt.Sprintf("no prompt template for question type %q", t)}
	}
	return tmpl, false, nil
}
