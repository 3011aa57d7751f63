package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"

	"github.com/abhisek/quizgen/internal/quiz"
)

func TestQuestionCard_MCQ(t *testing.T) {
	card := QuestionCard{
		Record: quiz.Record{
			ID:          3,
			Type:        quiz.TypeMCQ,
			Question:    "Capital of France?",
			Options:     []string{"Paris", "Rome", "Madrid", "Berlin"},
			Answer:      quiz.LetterAnswer("A"),
			Explanation: "Paris is the capital.",
			Difficulty:  "easy",
		},
		ShowAnswer: true,
	}

	out := ansi.Strip(card.View())
	for _, want := range []string{"Q3", "Multiple choice", "easy", "Capital of France?", "A)  Paris", "D)  Berlin", "Answer: A", "Paris is the capital."} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
}

func TestQuestionCard_HidesAnswer(t *testing.T) {
	card := QuestionCard{Record: quiz.Record{
		ID:         1,
		Type:       quiz.TypeTF,
		Question:   "The sky is green.",
		Answer:     quiz.BoolAnswer(false),
		Difficulty: "medium",
	}}

	out := ansi.Strip(card.View())
	if strings.Contains(out, "Answer:") {
		t.Errorf("answer should be hidden:\n%s", out)
	}
	if !strings.Contains(out, "True / False") {
		t.Errorf("missing type label:\n%s", out)
	}
}

func TestReportLine(t *testing.T) {
	report := quiz.Report{Elements: []quiz.ElementReport{{Outcome: quiz.Kept}, {Outcome: quiz.Dropped}}}
	out := ansi.Strip(ReportLine(report, 5, 1))
	if out != "1 of 5 questions (1 kept, 0 coerced, 1 dropped)" {
		t.Errorf("unexpected line %q", out)
	}
}
