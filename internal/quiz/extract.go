package quiz

import (
	"regexp"
	"strings"
)

// Extraction methods, in the order they are tried.
const (
	ExtractArray   = "array"   // first balanced [...] span
	ExtractObjects = "objects" // first {...} plus comma-separated siblings
	ExtractLoose   = "loose"   // greedy regex span
	ExtractNone    = "none"    // input returned unchanged
)

// Extraction is the JSON candidate found in a model response.
type Extraction struct {
	Text   string
	Method string
}

var (
	looseArray  = regexp.MustCompile(`(?s)\[.*\]`)
	looseObject = regexp.MustCompile(`(?s)\{.*\}`)
)

// ExtractJSON returns the substring of raw most likely to be the JSON
// payload. Brackets and quotes inside string literals do not affect
// matching.
func ExtractJSON(raw string) Extraction {
	text := strings.TrimSpace(raw)

	if start := strings.IndexByte(text, '['); start >= 0 {
		if end, ok := matchClose(text, start); ok {
			return Extraction{Text: text[start : end+1], Method: ExtractArray}
		}
	}

	if start := strings.IndexByte(text, '{'); start >= 0 {
		if objs, ok := collectObjects(text, start); ok {
			if len(objs) == 1 {
				return Extraction{Text: objs[0], Method: ExtractObjects}
			}
			return Extraction{Text: "[" + strings.Join(objs, ",") + "]", Method: ExtractObjects}
		}
	}

	if m := looseArray.FindString(text); m != "" {
		return Extraction{Text: m, Method: ExtractLoose}
	}
	if m := looseObject.FindString(text); m != "" {
		return Extraction{Text: m, Method: ExtractLoose}
	}
	return Extraction{Text: raw, Method: ExtractNone}
}

// collectObjects matches the object opening at start and every sibling
// object that follows it separated by a comma.
func collectObjects(text string, start int) ([]string, bool) {
	end, ok := matchClose(text, start)
	if !ok {
		return nil, false
	}
	objs := []string{text[start : end+1]}

	for i := end + 1; ; {
		i = skipSpace(text, i)
		if i >= len(text) || text[i] != ',' {
			break
		}
		i = skipSpace(text, i+1)
		if i >= len(text) || text[i] != '{' {
			break
		}
		end, ok := matchClose(text, i)
		if !ok {
			break
		}
		objs = append(objs, text[i:end+1])
		i = end + 1
	}
	return objs, true
}

func skipSpace(text string, i int) int {
	for i < len(text) && isSpace(text[i]) {
		i++
	}
	return i
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' || c == '\v'
}

type scanState int

const (
	stateOutside scanState = iota
	stateInArray
	stateInObject
	stateInString
	stateEscaped
)

// scanner walks JSON-like text one byte at a time. Open containers are
// kept on a stack so the current state is always known when a string
// literal ends.
type scanner struct {
	state scanState
	stack []scanState
}

func (s *scanner) push(st scanState) {
	s.stack = append(s.stack, st)
	s.state = st
}

// pop closes the innermost container and reports whether the scan is
// back outside every container.
func (s *scanner) pop() bool {
	s.stack = s.stack[:len(s.stack)-1]
	if len(s.stack) == 0 {
		s.state = stateOutside
		return true
	}
	s.state = s.stack[len(s.stack)-1]
	return false
}

// step consumes c and reports whether it closed the outermost container.
func (s *scanner) step(c byte) bool {
	switch s.state {
	case stateEscaped:
		s.state = stateInString
	case stateInString:
		switch c {
		case '\\':
			s.state = stateEscaped
		case '"':
			s.state = s.stack[len(s.stack)-1]
		}
	case stateOutside, stateInArray, stateInObject:
		switch c {
		case '[':
			s.push(stateInArray)
		case '{':
			s.push(stateInObject)
		case '"':
			if s.state != stateOutside {
				s.state = stateInString
			}
		case ']':
			if s.state == stateInArray {
				return s.pop()
			}
		case '}':
			if s.state == stateInObject {
				return s.pop()
			}
		}
	}
	return false
}

// matchClose returns the index of the bracket closing the one at start.
// Closers of the wrong kind are treated as ordinary characters.
func matchClose(text string, start int) (int, bool) {
	var s scanner
	for i := start; i < len(text); i++ {
		if s.step(text[i]) {
			return i, true
		}
	}
	return 0, false
}
