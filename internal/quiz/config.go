package quiz

// Config controls how the Generator talks to the LLM.
type Config struct {
	// MaxTokens bounds the length of each model response.
	MaxTokens int

	// Temperature is kept low so the model sticks to the requested shape.
	Temperature float64

	// System is sent ahead of every prompt.
	System string
}

// DefaultConfig returns the standard generation settings.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   2000,
		Temperature: 0.2,
		System:      "You are an assistant that outputs clean JSON and nothing else.",
	}
}
