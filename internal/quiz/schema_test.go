package quiz

import (
	"strings"
	"testing"
)

func validRecords() []Record {
	return []Record{
		{ID: 1, Type: TypeMCQ, Question: "Q", Options: []string{"a", "b", "c", "d"}, Answer: LetterAnswer("C"), Difficulty: "easy"},
		{ID: 2, Type: TypeTF, Question: "Q", Answer: BoolAnswer(false), Difficulty: "medium"},
		{ID: 3, Type: TypeFull, Question: "Q", Answer: TextAnswer("x"), Explanation: "e", Difficulty: "hard"},
	}
}

func TestCheckRecords(t *testing.T) {
	if err := CheckRecords(validRecords()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := CheckRecords(nil); err != nil {
		t.Fatalf("unexpected error for empty list: %v", err)
	}
}

func TestCheckRecords_Violations(t *testing.T) {
	tests := []struct {
		name   string
		mutate func([]Record)
		want   string
	}{
		{"duplicate id", func(r []Record) { r[2].ID = 1 }, "duplicate id"},
		{"zero id", func(r []Record) { r[0].ID = 0 }, "record 0"},
		{"three options", func(r []Record) { r[0].Options = r[0].Options[:3] }, "record 0"},
		{"bad letter", func(r []Record) { r[0].Answer = LetterAnswer("E") }, "record 0"},
		{"tf with options", func(r []Record) { r[1].Options = []string{"a"} }, "record 1"},
		{"tf with text answer", func(r []Record) { r[1].Answer = TextAnswer("yes") }, "record 1"},
		{"mixed type", func(r []Record) { r[2].Type = TypeMixed }, "invalid type"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records := validRecords()
			tt.mutate(records)
			err := CheckRecords(records)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestValidateElement(t *testing.T) {
	ok := map[string]any{"type": "tf", "question": "Q", "answer": true}
	if err := validateElement(TypeTF, ok); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	bad := map[string]any{"type": "tf", "question": "Q", "answer": "yes"}
	if err := validateElement(TypeTF, bad); err == nil {
		t.Error("expected string answer to fail the tf schema")
	}
}
