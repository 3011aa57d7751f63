package quiz

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// Outcome tags what normalization did with one parsed element.
type Outcome int

const (
	Kept    Outcome = iota // already well-formed
	Coerced                // repaired with defaults or conversions
	Dropped                // not an object, discarded
)

func (o Outcome) String() string {
	switch o {
	case Kept:
		return "kept"
	case Coerced:
		return "coerced"
	case Dropped:
		return "dropped"
	}
	return "unknown"
}

func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// ElementReport describes the handling of one element of a response.
type ElementReport struct {
	// Batch is the question type the response was requested for.
	Batch QuestionType `json:"batch"`

	// Index is the element's position in the parsed response.
	Index   int      `json:"index"`
	Outcome Outcome  `json:"outcome"`
	Fixes   []string `json:"fixes,omitempty"`
	Reason  string   `json:"reason,omitempty"`
}

// Report collects ElementReports for every element seen.
type Report struct {
	Elements []ElementReport `json:"elements"`
}

// Count returns the number of elements with outcome o.
func (r Report) Count(o Outcome) int {
	n := 0
	for _, e := range r.Elements {
		if e.Outcome == o {
			n++
		}
	}
	return n
}

// Merge appends the elements of other.
func (r *Report) Merge(other Report) {
	r.Elements = append(r.Elements, other.Elements...)
}

func (r Report) String() string {
	return fmt.Sprintf("%d kept, %d coerced, %d dropped", r.Count(Kept), r.Count(Coerced), r.Count(Dropped))
}

var optionLetters = []string{"A", "B", "C", "D"}

// Normalize turns a parsed model response into records. A single object
// is treated as a one-element list. Elements that are not objects are
// dropped. The record type is the element's own type when it names a
// concrete kind, otherwise requested (mcq when requested is mixed).
// Missing difficulties take the request difficulty, or medium when that
// is auto.
//
// Ids supplied as positive integers are kept when unused; every other
// record gets the next free id at or above the watermark, which always
// sits one past the largest id handed out so far.
func Normalize(parsed any, requested QuestionType, difficulty string) ([]Record, Report, error) {
	var items []any
	switch v := parsed.(type) {
	case []any:
		items = v
	case map[string]any:
		items = []any{v}
	default:
		return nil, Report{}, fmt.Errorf("model output was not a JSON array of questions (got %s)", jsonKind(parsed))
	}

	fallbackType := requested
	if !fallbackType.Concrete() {
		fallbackType = TypeMCQ
	}
	fallbackDifficulty := difficulty
	if fallbackDifficulty == "" || fallbackDifficulty == DifficultyAuto {
		fallbackDifficulty = DifficultyMedium
	}

	type pending struct {
		rec    Record
		id     int
		hasID  bool
		report int
	}

	var (
		out    []pending
		report Report
	)
	for i, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			report.Elements = append(report.Elements, ElementReport{
				Batch:   requested,
				Index:   i,
				Outcome: Dropped,
				Reason:  "not an object (" + jsonKind(item) + ")",
			})
			continue
		}

		rec, fixes := normalizeElement(m, fallbackType, fallbackDifficulty)
		id, hasID := suppliedID(m["id"])
		if _, present := m["id"]; present && !hasID {
			fixes = append(fixes, "id replaced: not a positive integer")
		}
		if len(fixes) == 0 {
			if err := validateElement(rec.Type, m); err != nil {
				fixes = append(fixes, err.Error())
			}
		}

		report.Elements = append(report.Elements, ElementReport{
			Batch:   requested,
			Index:   i,
			Outcome: Kept,
			Fixes:   fixes,
		})
		out = append(out, pending{rec: rec, id: id, hasID: hasID, report: len(report.Elements) - 1})
	}

	used := make(map[int]bool, len(out))
	next := 1
	records := make([]Record, 0, len(out))
	for _, p := range out {
		if p.hasID && !used[p.id] {
			p.rec.ID = p.id
			if p.id >= next {
				next = p.id + 1
			}
		} else {
			if p.hasID {
				el := &report.Elements[p.report]
				el.Fixes = append(el.Fixes, fmt.Sprintf("id replaced: %d already used", p.id))
			}
			for used[next] {
				next++
			}
			p.rec.ID = next
			next++
		}
		used[p.rec.ID] = true
		records = append(records, p.rec)
	}

	for i := range report.Elements {
		if el := &report.Elements[i]; el.Outcome != Dropped && len(el.Fixes) > 0 {
			el.Outcome = Coerced
		}
	}
	return records, report, nil
}

// normalizeElement builds a Record (without id) from one parsed object
// and lists the fixes it needed.
func normalizeElement(m map[string]any, fallbackType QuestionType, fallbackDifficulty string) (Record, []string) {
	var fixes []string
	fix := func(f string) { fixes = append(fixes, f) }

	rec := Record{Type: fallbackType}
	if s, ok := m["type"].(string); ok {
		t := QuestionType(strings.ToLower(strings.TrimSpace(s)))
		if t.Concrete() {
			rec.Type = t
			if string(t) != s {
				fix("type normalized")
			}
		} else {
			fix("type defaulted: " + strconv.Quote(s) + " is not a question type")
		}
	} else {
		fix("type defaulted")
	}

	switch q := m["question"].(type) {
	case string:
		rec.Question = q
	case nil:
		fix("question missing")
	default:
		rec.Question = stringify(q)
		fix("question stringified")
	}

	switch e, present := m["explanation"]; {
	case !present:
	case e == nil:
		fix("explanation defaulted")
	default:
		if s, ok := e.(string); ok {
			rec.Explanation = s
		} else {
			rec.Explanation = stringify(e)
			fix("explanation stringified")
		}
	}

	rec.Difficulty = fallbackDifficulty
	if d, present := m["difficulty"]; present {
		if s, ok := d.(string); !ok {
			fix("difficulty defaulted")
		} else if s != "" {
			rec.Difficulty = s
		}
	}

	switch rec.Type {
	case TypeMCQ:
		var optFixes []string
		rec.Options, optFixes = normalizeOptions(m["options"])
		fixes = append(fixes, optFixes...)
		letter, f := mcqAnswer(m["answer"], rec.Options)
		rec.Answer = LetterAnswer(letter)
		if f != "" {
			fix(f)
		}
	case TypeTF:
		b, f := tfAnswer(m["answer"])
		rec.Answer = BoolAnswer(b)
		if f != "" {
			fix(f)
		}
	case TypeFull:
		s, f := fullAnswer(m["answer"])
		rec.Answer = TextAnswer(s)
		if f != "" {
			fix(f)
		}
	}
	if rec.Type != TypeMCQ && m["options"] != nil {
		fix("options removed")
	}
	return rec, fixes
}

// normalizeOptions returns exactly four option strings.
func normalizeOptions(v any) ([]string, []string) {
	var (
		opts  []string
		fixes []string
	)
	switch o := v.(type) {
	case []any:
		stringified := false
		for _, item := range o {
			s, ok := item.(string)
			if !ok {
				s = stringify(item)
				stringified = true
			}
			opts = append(opts, s)
		}
		if stringified {
			fixes = append(fixes, "options stringified")
		}
	case string:
		for _, line := range strings.Split(o, "\n") {
			if line = strings.TrimSpace(line); line != "" {
				opts = append(opts, line)
			}
		}
		fixes = append(fixes, "options split from text")
	case nil:
		fixes = append(fixes, "options missing")
	default:
		fixes = append(fixes, "options discarded: "+jsonKind(v))
	}

	if len(opts) < 4 {
		if v != nil {
			fixes = append(fixes, fmt.Sprintf("options padded from %d", len(opts)))
		}
		for len(opts) < 4 {
			opts = append(opts, fmt.Sprintf("Option %d", len(opts)+1))
		}
	}
	if len(opts) > 4 {
		fixes = append(fixes, fmt.Sprintf("options truncated from %d", len(opts)))
		opts = opts[:4]
	}
	return opts, fixes
}

// mcqAnswer resolves an mcq answer to a letter. It accepts a letter in
// any case, a letter followed by ")", ".", ":" or a space, or the text of
// one of the options. Anything else falls back to A.
func mcqAnswer(v any, options []string) (string, string) {
	s, ok := v.(string)
	if !ok {
		if v == nil {
			return "A", "answer defaulted"
		}
		return "A", "answer unrecognized"
	}

	s = strings.TrimSpace(s)
	if len(s) == 1 {
		if up := strings.ToUpper(s); isOptionLetter(up[0]) {
			if up != s {
				return up, "answer normalized"
			}
			return up, ""
		}
	}
	if s != "" {
		for i, o := range options {
			if strings.EqualFold(strings.TrimSpace(o), s) {
				return optionLetters[i], "answer matched option text"
			}
		}
	}
	trimmed := strings.TrimPrefix(s, "(")
	if len(trimmed) >= 2 && strings.ContainsRune(").: ", rune(trimmed[1])) {
		if up := byte(unicode.ToUpper(rune(trimmed[0]))); isOptionLetter(up) {
			return string(up), "answer normalized"
		}
	}
	if s == "" {
		return "A", "answer defaulted"
	}
	return "A", "answer unrecognized"
}

func isOptionLetter(c byte) bool {
	return c >= 'A' && c <= 'D'
}

// tfAnswer resolves a tf answer. Strings true, t and yes are true in any
// case, numbers are true when non-zero, and everything else is false.
func tfAnswer(v any) (bool, string) {
	switch a := v.(type) {
	case bool:
		return a, ""
	case string:
		switch strings.ToLower(strings.TrimSpace(a)) {
		case "true", "t", "yes":
			return true, "answer coerced"
		}
		return false, "answer coerced"
	case json.Number:
		f, err := a.Float64()
		return err == nil && f != 0, "answer coerced"
	case float64:
		return a != 0, "answer coerced"
	case nil:
		return false, "answer defaulted"
	}
	return false, "answer unrecognized"
}

func fullAnswer(v any) (string, string) {
	switch a := v.(type) {
	case string:
		return a, ""
	case nil:
		return "", "answer defaulted"
	}
	return stringify(v), "answer stringified"
}

// suppliedID reports a positive integral id.
func suppliedID(v any) (int, bool) {
	var f float64
	switch n := v.(type) {
	case json.Number:
		if i, err := n.Int64(); err == nil {
			f = float64(i)
		} else if x, err := n.Float64(); err == nil {
			f = x
		} else {
			return 0, false
		}
	case float64:
		f = n
	case int:
		f = float64(n)
	default:
		return 0, false
	}
	if f < 1 || f != math.Trunc(f) || f > math.MaxInt32 {
		return 0, false
	}
	return int(f), true
}

func stringify(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case json.Number:
		return x.String()
	case bool:
		return strconv.FormatBool(x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case int:
		return strconv.Itoa(x)
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(b)
}

func jsonKind(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case json.Number, float64, int:
		return "number"
	case string:
		return "string"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	}
	return fmt.Sprintf("%T", v)
}
