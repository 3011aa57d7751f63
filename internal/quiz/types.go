package quiz

import (
	"encoding/json"
	"fmt"
	"strings"
)

// QuestionType identifies the kind of question a request asks for.
type QuestionType string

const (
	TypeMCQ   QuestionType = "mcq"   // multiple choice, four options
	TypeTF    QuestionType = "tf"    // true/false
	TypeFull  QuestionType = "full"  // short free-form answer
	TypeMixed QuestionType = "mixed" // request-only blend of the three above
)

// ConcreteTypes lists the types a Record can carry, in mixed fan-out order.
var ConcreteTypes = []QuestionType{TypeMCQ, TypeTF, TypeFull}

// Concrete reports whether t is one of mcq, tf or full.
func (t QuestionType) Concrete() bool {
	switch t {
	case TypeMCQ, TypeTF, TypeFull:
		return true
	}
	return false
}

// ParseQuestionType accepts a request type in any case.
func ParseQuestionType(s string) (QuestionType, error) {
	t := QuestionType(strings.ToLower(strings.TrimSpace(s)))
	if t.Concrete() || t == TypeMixed {
		return t, nil
	}
	return "", &ConfigurationError{Msg: fmt.Sprintf("unknown question type %q (want mcq, tf, full or mixed)", s)}
}

// Difficulty levels accepted on a request. DifficultyAuto lets the model
// choose per question.
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
	DifficultyAuto   = "auto"
)

// ParseDifficulty accepts a request difficulty in any case. An empty
// value means medium.
func ParseDifficulty(s string) (string, error) {
	d := strings.ToLower(strings.TrimSpace(s))
	switch d {
	case "":
		return DifficultyMedium, nil
	case DifficultyEasy, DifficultyMedium, DifficultyHard, DifficultyAuto:
		return d, nil
	}
	return "", &ConfigurationError{Msg: fmt.Sprintf("unknown difficulty %q (want easy, medium, hard or auto)", s)}
}

// Request is one generation request.
type Request struct {
	SourceText string
	Type       QuestionType
	N          int
	Difficulty string
}

// Record is a single normalized question.
type Record struct {
	ID          int          `json:"id"`
	Type        QuestionType `json:"type"`
	Question    string       `json:"question"`
	Options     []string     `json:"options,omitempty"` // exactly 4 for mcq, nil otherwise
	Answer      Answer       `json:"answer"`
	Explanation string       `json:"explanation"`
	Difficulty  string       `json:"difficulty"`
}

// Answer holds the answer of a Record. Its JSON form depends on the
// record type: a letter for mcq, a boolean for tf, a string for full.
type Answer struct {
	kind   QuestionType
	letter string
	truth  bool
	text   string
}

// LetterAnswer returns an mcq answer. The letter must be one of A-D.
func LetterAnswer(letter string) Answer { return Answer{kind: TypeMCQ, letter: letter} }

// BoolAnswer returns a tf answer.
func BoolAnswer(b bool) Answer { return Answer{kind: TypeTF, truth: b} }

// TextAnswer returns a full answer.
func TextAnswer(s string) Answer { return Answer{kind: TypeFull, text: s} }

// Letter returns the mcq letter, or "" for other kinds.
func (a Answer) Letter() string { return a.letter }

// Bool returns the tf value, false for other kinds.
func (a Answer) Bool() bool { return a.truth }

// Text returns the full answer text, or "" for other kinds.
func (a Answer) Text() string { return a.text }

// Value returns the answer as its JSON-native Go value.
func (a Answer) Value() any {
	switch a.kind {
	case TypeMCQ:
		return a.letter
	case TypeTF:
		return a.truth
	case TypeFull:
		return a.text
	}
	return nil
}

func (a Answer) String() string {
	switch a.kind {
	case TypeMCQ:
		return a.letter
	case TypeTF:
		if a.truth {
			return "True"
		}
		return "False"
	}
	return a.text
}

func (a Answer) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.Value())
}
