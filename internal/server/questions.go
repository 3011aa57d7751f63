package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/abhisek/quizgen/internal/quiz"
)

type generateRequest struct {
	SourceText string `json:"source_text"`
	Type       string `json:"type"`
	Count      int    `json:"count"`
	Difficulty string `json:"difficulty"`
}

type summary struct {
	Requested int `json:"requested"`
	Returned  int `json:"returned"`
	Kept      int `json:"kept"`
	Coerced   int `json:"coerced"`
	Dropped   int `json:"dropped"`
}

type generateResponse struct {
	*quiz.Result
	Summary summary `json:"summary"`
}

type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`

	// RawOutput is the model response that could not be parsed.
	RawOutput string `json:"raw_output,omitempty"`
}

func (s *Server) generate(w http.ResponseWriter, r *http.Request) {
	var body generateRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, s.opts.MaxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body: " + err.Error(), Kind: "request"})
		return
	}
	if body.Type == "" {
		body.Type = string(quiz.TypeMCQ)
	}
	if body.Count > s.opts.MaxCount {
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error: fmt.Sprintf("count %d exceeds the limit of %d", body.Count, s.opts.MaxCount),
			Kind:  "configuration",
		})
		return
	}

	res, err := s.gen.Generate(r.Context(), quiz.Request{
		SourceText: body.SourceText,
		Type:       quiz.QuestionType(body.Type),
		N:          body.Count,
		Difficulty: body.Difficulty,
	})
	if err != nil {
		s.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, generateResponse{
		Result: res,
		Summary: summary{
			Requested: body.Count,
			Returned:  len(res.Questions),
			Kept:      res.Report.Count(quiz.Kept),
			Coerced:   res.Report.Count(quiz.Coerced),
			Dropped:   res.Report.Count(quiz.Dropped),
		},
	})
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	var (
		cfgErr   *quiz.ConfigurationError
		genErr   *quiz.GenerationError
		parseErr *quiz.ParseError
	)
	switch {
	case errors.As(err, &cfgErr):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error(), Kind: "configuration"})
	case errors.Is(err, context.DeadlineExceeded):
		writeJSON(w, http.StatusGatewayTimeout, errorResponse{Error: err.Error(), Kind: "timeout"})
	case errors.As(err, &genErr):
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: err.Error(), Kind: "generation"})
	case errors.As(err, &parseErr):
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: err.Error(), Kind: "parse", RawOutput: parseErr.Raw})
	default:
		s.log.Error("question generation failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error", Kind: "internal"})
	}
}
