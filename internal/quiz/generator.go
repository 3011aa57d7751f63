package quiz

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/abhisek/quizgen/internal/llm"
	"github.com/abhisek/quizgen/internal/logger"
)

// Generator turns source text into quiz questions using an LLM provider.
// It holds no per-request state and is safe for concurrent use when the
// provider is.
type Generator struct {
	provider llm.Provider
	config   Config
	prompts  *PromptBuilder
	log      *logger.Logger
}

// New creates a Generator. templates and log may be nil.
func New(provider llm.Provider, cfg Config, templates TemplateSource, log *logger.Logger) *Generator {
	if log == nil {
		log = logger.Nop()
	}
	return &Generator{
		provider: provider,
		config:   cfg,
		prompts:  NewPromptBuilder(templates),
		log:      log,
	}
}

// Result is the output of one Generate call.
type Result struct {
	RunID     string   `json:"run_id"`
	Questions []Record `json:"questions"`
	Report    Report   `json:"report"`
}

// Generate produces up to req.N questions from req.SourceText. Fewer
// questions are returned when the model under-delivers. A mixed request
// is split into mcq, tf and full sub-requests issued one after another;
// any failing sub-request fails the whole call.
func (g *Generator) Generate(ctx context.Context, req Request) (*Result, error) {
	qtype, err := ParseQuestionType(string(req.Type))
	if err != nil {
		return nil, err
	}
	difficulty, err := ParseDifficulty(req.Difficulty)
	if err != nil {
		return nil, err
	}
	if req.N < 1 {
		return nil, &ConfigurationError{Msg: fmt.Sprintf("question count must be positive, got %d", req.N)}
	}

	res := &Result{RunID: uuid.NewString(), Questions: []Record{}}
	source := strings.TrimSpace(req.SourceText)
	if source == "" {
		return res, nil
	}

	ctx = llm.WithRunID(ctx, res.RunID)
	log := g.log.With("run_id", res.RunID)
	log.Info("generating questions", "type", qtype, "n", req.N, "difficulty", difficulty, "source_chars", len(source))

	if qtype == TypeMixed {
		err = g.generateMixed(ctx, log, res, source, req.N, difficulty)
	} else {
		res.Questions, res.Report, err = g.generateBatch(ctx, log, qtype, source, req.N, difficulty)
	}
	if err != nil {
		return nil, err
	}

	if err := CheckRecords(res.Questions); err != nil {
		return nil, fmt.Errorf("normalized questions break the record contract: %w", err)
	}

	if len(res.Questions) < req.N {
		log.Warn("model returned fewer questions than requested",
			"requested", req.N, "returned", len(res.Questions))
	}
	log.Info("questions generated", "returned", len(res.Questions), "report", res.Report.String())
	return res, nil
}

// SplitMixed divides n across mcq, tf and full for a mixed request.
func SplitMixed(n int) (mcq, tf, full int) {
	mcq = max(1, n/2)
	tf = max(0, n/4)
	full = max(0, n-mcq-tf)
	return mcq, tf, full
}

func (g *Generator) generateMixed(ctx context.Context, log *logger.Logger, res *Result, source string, n int, difficulty string) error {
	mcqN, tfN, fullN := SplitMixed(n)
	log.Debug("mixed split", "mcq", mcqN, "tf", tfN, "full", fullN)

	for i, count := range []int{mcqN, tfN, fullN} {
		if count == 0 {
			continue
		}
		records, report, err := g.generateBatch(ctx, log, ConcreteTypes[i], source, count, difficulty)
		if err != nil {
			return err
		}
		res.Questions = append(res.Questions, records...)
		res.Report.Merge(report)
	}

	for i := range res.Questions {
		res.Questions[i].ID = i + 1
	}
	return nil
}

// generateBatch runs prompt, call, extraction, parse and normalization
// for one concrete type.
func (g *Generator) generateBatch(ctx context.Context, log *logger.Logger, qtype QuestionType, source string, n int, difficulty string) ([]Record, Report, error) {
	log = log.With("type", qtype)

	prompt, err := g.prompts.Build(qtype, source, n, difficulty)
	if err != nil {
		return nil, Report{}, err
	}
	log.Debug("prompt built", "external_template", prompt.External, "prompt_chars", len(prompt.Text))

	ctx = llm.WithPurpose(ctx, "quiz-"+string(qtype))
	resp, err := g.provider.Generate(ctx, llm.UserPrompt(g.config.System, prompt.Text, g.config.MaxTokens, g.config.Temperature))
	if err != nil {
		return nil, Report{}, &GenerationError{Type: qtype, Err: err}
	}

	ext := ExtractJSON(resp.Text)
	log.Debug("json extracted", "method", ext.Method, "response_chars", len(resp.Text), "extracted_chars", len(ext.Text))

	parsed, err := ParseJSON(ext.Text)
	if err != nil {
		log.Warn("model response is not valid JSON", "method", ext.Method, "error", err)
		return nil, Report{}, &ParseError{Raw: resp.Text, Err: err}
	}
	if len(parsed.Repairs) > 0 {
		log.Info("repaired model JSON", "repairs", strings.Join(parsed.Repairs, ","))
	}

	records, report, err := Normalize(parsed.Value, qtype, difficulty)
	if err != nil {
		return nil, Report{}, &ParseError{Raw: resp.Text, Err: err}
	}
	log.Debug("normalized", "report", report.String())
	return records, report, nil
}
