package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"placement-pro/internal/domain/interview"
)

const evaluationPrompt = `You are an expert interviewer evaluating a candidate's answer.

Question: %s

Candidate Answer: %s

Evaluate this answer on a scale of 0-100 for technical accuracy, completeness, and clarity.
Also provide specific feedback on what was good and what could be improved.
Return only JSON with keys: score (integer), feedback (string), strengths (array of strings), improvements (array of strings).`

// Evaluator scores interview answers with a JSON-producing model.
type Evaluator struct {
	gen     Generator
	timeout time.Duration
}

func NewEvaluator(gen Generator, timeout time.Duration) *Evaluator {
	return &Evaluator{gen: gen, timeout: timeout}
}

func (e *Evaluator) Evaluate(ctx context.Context, question, answer string) (interview.Evaluation, error) {
	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	text, err := e.gen.GenerateJSON(ctx, fmt.Sprintf(evaluationPrompt, question, answer))
	if err != nil {
		return interview.Evaluation{}, err
	}
	return parseEvaluation(text)
}

type rawEvaluation struct {
	Score        *float64 `json:"score"`
	Feedback     string   `json:"feedback"`
	Strengths    []string `json:"strengths"`
	Improvements []string `json:"improvements"`
}

func parseEvaluation(text string) (interview.Evaluation, error) {
	var raw rawEvaluation
	if err := json.Unmarshal([]byte(cleanJSONBlock(text)), &raw); err != nil {
		return interview.Evaluation{}, fmt.Errorf("%w: %v", interview.ErrMalformedEvaluation, err)
	}
	if raw.Score == nil {
		return interview.Evaluation{}, fmt.Errorf("%w: missing score", interview.ErrMalformedEvaluation)
	}
	if raw.Strengths == nil {
		raw.Strengths = []string{}
	}
	if raw.Improvements == nil {
		raw.Improvements = []string{}
	}
	return interview.Evaluation{
		Score:        int(math.Round(*raw.Score)),
		Feedback:     raw.Feedback,
		Strengths:    raw.Strengths,
		Improvements: raw.Improvements,
	}, nil
}
