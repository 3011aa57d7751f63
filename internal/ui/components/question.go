package components

import (
	"fmt"
	"strings"

	"github.com/abhisek/quizgen/internal/quiz"
	"github.com/abhisek/quizgen/internal/ui/theme"
)

var optionLabels = []string{"A", "B", "C", "D"}

// QuestionCard renders one generated question.
type QuestionCard struct {
	Record quiz.Record

	// ShowAnswer highlights the correct option and prints the answer and
	// explanation.
	ShowAnswer bool
}

// View renders the card.
func (c QuestionCard) View() string {
	r := c.Record

	var b strings.Builder
	header := fmt.Sprintf("%s  %s  %s",
		theme.Title.Render(fmt.Sprintf("Q%d", r.ID)),
		theme.TypeBadge.Render(typeLabel(r.Type)),
		theme.Difficulty(r.Difficulty).Render(r.Difficulty))
	b.WriteString(header + "\n")
	b.WriteString(theme.Question.Render(r.Question) + "\n")

	if r.Type == quiz.TypeMCQ {
		b.WriteString("\n")
		for i, opt := range r.Options {
			line := fmt.Sprintf("  %s)  %s", optionLabels[i], opt)
			if c.ShowAnswer && optionLabels[i] == r.Answer.Letter() {
				b.WriteString(theme.Correct.Render(line) + "\n")
			} else {
				b.WriteString(theme.Option.Render(line) + "\n")
			}
		}
	}

	if c.ShowAnswer {
		b.WriteString("\n" + theme.Answer.Render("Answer: "+r.Answer.String()) + "\n")
		if r.Explanation != "" {
			b.WriteString(theme.Explanation.Render(r.Explanation) + "\n")
		}
	}

	return theme.Card.Render(strings.TrimRight(b.String(), "\n"))
}

func typeLabel(t quiz.QuestionType) string {
	switch t {
	case quiz.TypeMCQ:
		return "Multiple choice"
	case quiz.TypeTF:
		return "True / False"
	case quiz.TypeFull:
		return "Short answer"
	}
	return string(t)
}

// ReportLine summarizes a normalization report, flagging dropped
// elements and a shortfall against the requested count.
func ReportLine(report quiz.Report, requested, returned int) string {
	line := fmt.Sprintf("%d of %d questions (%s)", returned, requested, report)
	if returned < requested || report.Count(quiz.Dropped) > 0 {
		return theme.Warning.Render(line)
	}
	return theme.Hint.Render(line)
}
