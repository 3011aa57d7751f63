package quiz

import "fmt"

// ConfigurationError reports a request or setup problem that only the
// operator can fix: an unknown question type, a bad count or difficulty,
// an unreadable template, missing credentials.
type ConfigurationError struct {
	Msg string
	Err error
}

func (e *ConfigurationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("configuration error: %s: %v", e.Msg, e.Err)
	}
	return "configuration error: " + e.Msg
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

// GenerationError wraps a failed LLM call. It is never retried here.
type GenerationError struct {
	Type QuestionType
	Err  error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("LLM request for %s questions failed: %v", e.Type, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// ParseError reports that no usable JSON could be recovered from a model
// response. Raw holds the complete model output.
type ParseError struct {
	Raw string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse JSON from model response: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
