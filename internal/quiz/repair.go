package quiz

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Repairs applied by ParseJSON when the strict parse fails.
const (
	RepairSmartQuotes    = "smart-quotes"
	RepairSingleQuotes   = "single-quotes"
	RepairTrailingCommas = "trailing-commas"
)

// Parsed is the result of ParseJSON.
type Parsed struct {
	Value any

	// Repairs lists the repairs that changed the text before it parsed.
	// Empty when the strict parse succeeded.
	Repairs []string
}

var smartQuotes = strings.NewReplacer(
	"“", `"`, "”", `"`,
	"‘", "'", "’", "'",
)

// ParseJSON decodes text strictly. On failure it applies one pass of
// repairs and decodes once more. Numbers are decoded as json.Number.
func ParseJSON(text string) (Parsed, error) {
	v, err := decodeStrict(text)
	if err == nil {
		return Parsed{Value: v}, nil
	}

	fixed, repairs := repair(text)
	if len(repairs) == 0 {
		return Parsed{}, err
	}
	v, err2 := decodeStrict(fixed)
	if err2 != nil {
		return Parsed{}, fmt.Errorf("%w (after repairs %s: %v)", err, strings.Join(repairs, ", "), err2)
	}
	return Parsed{Value: v, Repairs: repairs}, nil
}

// decodeStrict decodes exactly one JSON value filling the whole input.
func decodeStrict(text string) (any, error) {
	dec := json.NewDecoder(strings.NewReader(text))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("invalid character after top-level value")
	}
	return v, nil
}

func repair(text string) (string, []string) {
	var repairs []string

	s := smartQuotes.Replace(text)
	if s != text {
		repairs = append(repairs, RepairSmartQuotes)
	}

	head := s
	if len(head) > 50 {
		head = head[:50]
	}
	if strings.Contains(s, "'") && !strings.Contains(head, `"`) {
		s = strings.ReplaceAll(s, "'", `"`)
		repairs = append(repairs, RepairSingleQuotes)
	}

	if t := stripTrailingCommas(s); t != s {
		s = t
		repairs = append(repairs, RepairTrailingCommas)
	}
	return s, repairs
}

// stripTrailingCommas removes commas that are followed only by
// whitespace and a closing bracket. Commas inside strings are kept.
func stripTrailingCommas(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	inString, escaped := false, false
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case escaped:
			escaped = false
		case inString:
			switch c {
			case '\\':
				escaped = true
			case '"':
				inString = false
			}
		case c == '"':
			inString = true
		case c == ',':
			j := skipSpace(s, i+1)
			if j < len(s) && (s[j] == ']' || s[j] == '}') {
				continue
			}
		}
		b.WriteByte(c)
	}
	return b.String()
}
