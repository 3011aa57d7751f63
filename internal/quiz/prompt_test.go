package quiz

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"
)

func TestBuild_Builtin(t *testing.T) {
	b := NewPromptBuilder(nil)
	for _, qt := range ConcreteTypes {
		p, err := b.Build(qt, "Photosynthesis converts light.", 5, "hard")
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", qt, err)
		}
		if p.External {
			t.Errorf("%s: expected built-in template", qt)
		}
		for _, want := range []string{"```Photosynthesis converts light.```", "create 5 ", "at hard difficulty", "RETURN ONLY A JSON ARRAY", "type ('" + string(qt) + "')"} {
			if !strings.Contains(p.Text, want) {
				t.Errorf("%s: prompt missing %q:\n%s", qt, want, p.Text)
			}
		}
		if strings.Contains(p.Text, "{n}") || strings.Contains(p.Text, "{source_text}") {
			t.Errorf("%s: unfilled placeholder in %q", qt, p.Text)
		}
	}
}

func TestBuild_ExternalTemplate(t *testing.T) {
	src := FSTemplates{FS: fstest.MapFS{
		"tf_template.txt": {Data: []byte("Make {n} {difficulty} items as {{\"answer\": bool}} from: {source_text}")},
	}}
	b := NewPromptBuilder(src)

	p, err := b.Build(TypeTF, "TEXT {n}", 3, "easy")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !p.External {
		t.Error("expected external template")
	}
	want := `Make 3 easy items as {"answer": bool} from: TEXT {n}`
	if p.Text != want {
		t.Errorf("got %q, want %q", p.Text, want)
	}

	// No mcq file: built-in is used.
	p, err = b.Build(TypeMCQ, "TEXT", 3, "easy")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.External {
		t.Error("expected built-in fallback for mcq")
	}
}

func TestBuild_DirTemplates(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "full_template.txt"), []byte("Q({n}): {source_text}"), 0o644); err != nil {
		t.Fatal(err)
	}

	p, err := NewPromptBuilder(DirTemplates(dir)).Build(TypeFull, "abc", 2, "medium")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Text != "Q(2): abc" {
		t.Errorf("got %q", p.Text)
	}
}

func TestBuild_Mixed(t *testing.T) {
	_, err := NewPromptBuilder(nil).Build(TypeMixed, "abc", 2, "medium")
	var cfgErr *ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected ConfigurationError, got %v", err)
	}
}

type brokenTemplates struct{}

func (brokenTemplates) Load(QuestionType) (string, error) {
	return "", errors.New("permission denied")
}

func TestBuild_TemplateReadError(t *testing.T) {
	_, err := NewPromptBuilder(brokenTemplates{}).Build(TypeMCQ, "abc", 2, "medium")
	var cfgErr *ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected ConfigurationError, got %v", err)
	}
	if !strings.Contains(err.Error(), "mcq_template.txt") {
		t.Errorf("error should name the template file: %v", err)
	}
}
