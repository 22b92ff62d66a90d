package interview

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"golang.org/x/sync/errgroup"
)

var (
	ErrInvalidInput = errors.New("invalid interview input")
	// ErrMalformedEvaluation is returned by evaluators whose output cannot be
	// read as an Evaluation.
	ErrMalformedEvaluation = errors.New("malformed evaluation")
)

const (
	FallbackScore = 70

	feedbackUnavailable = "AI evaluation unavailable. Please consult with your mentor."
	feedbackMalformed   = "Answer shows basic understanding but could be more detailed."
)

type Answer struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type Evaluation struct {
	Score        int      `json:"score"`
	Feedback     string   `json:"feedback"`
	Strengths    []string `json:"strengths"`
	Improvements []string `json:"improvements"`
	Fallback     bool     `json:"fallback,omitempty"`
}

func (e Evaluation) valid() bool {
	return e.Score >= 0 && e.Score <= 100 && strings.TrimSpace(e.Feedback) != ""
}

type Evaluator interface {
	Evaluate(ctx context.Context, question, answer string) (Evaluation, error)
}

// FallbackEvaluator never fails: an unavailable or misbehaving evaluator is
// replaced by a fixed neutral evaluation.
type FallbackEvaluator struct {
	next   Evaluator
	logger *log.Logger
}

func NewFallbackEvaluator(next Evaluator, logger *log.Logger) *FallbackEvaluator {
	if logger == nil {
		logger = log.Default()
	}
	return &FallbackEvaluator{next: next, logger: logger}
}

func (f *FallbackEvaluator) Evaluate(ctx context.Context, question, answer string) (Evaluation, error) {
	if f.next == nil {
		return unavailableEvaluation(), nil
	}

	ev, err := f.next.Evaluate(ctx, question, answer)
	switch {
	case errors.Is(err, ErrMalformedEvaluation):
		f.logger.Printf("[Interview] malformed evaluation: %v", err)
		return malformedEvaluation(), nil
	case err != nil:
		if ctxErr := ctx.Err(); ctxErr != nil {
			return Evaluation{}, ctxErr
		}
		f.logger.Printf("[Interview] evaluator unavailable: %v", err)
		return unavailableEvaluation(), nil
	case !ev.valid():
		f.logger.Printf("[Interview] evaluation rejected: score=%d feedback_empty=%t", ev.Score, strings.TrimSpace(ev.Feedback) == "")
		return malformedEvaluation(), nil
	}

	if ev.Strengths == nil {
		ev.Strengths = []string{}
	}
	if ev.Improvements == nil {
		ev.Improvements = []string{}
	}
	return ev, nil
}

func unavailableEvaluation() Evaluation {
	return Evaluation{
		Score:        FallbackScore,
		Feedback:     feedbackUnavailable,
		Strengths:    []string{"Answer provided"},
		Improvements: []string{"Could be more detailed"},
		Fallback:     true,
	}
}

func malformedEvaluation() Evaluation {
	return Evaluation{
		Score:        FallbackScore,
		Feedback:     feedbackMalformed,
		Strengths:    []string{"Correct general direction"},
		Improvements: []string{"Add more specific examples", "Explain underlying concepts"},
		Fallback:     true,
	}
}

// EvaluateAll evaluates answers with at most limit calls in flight. Results
// keep the order of answers.
func EvaluateAll(ctx context.Context, ev Evaluator, answers []Answer, limit int) ([]Evaluation, error) {
	if ev == nil {
		return nil, errors.New("nil evaluator")
	}
	for i, a := range answers {
		if strings.TrimSpace(a.Question) == "" {
			return nil, fmt.Errorf("%w: answers[%d].question is empty", ErrInvalidInput, i)
		}
	}
	if limit <= 0 {
		limit = 1
	}

	out := make([]Evaluation, len(answers))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, a := range answers {
		g.Go(func() error {
			res, err := ev.Evaluate(gctx, a.Question, a.Answer)
			if err != nil {
				return fmt.Errorf("evaluate answer %d: %w", i, err)
			}
			out[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// Score is the truncated mean of the evaluation scores, 0 for none.
func Score(evaluations []Evaluation) int {
	if len(evaluations) == 0 {
		return 0
	}
	sum := 0
	for _, e := range evaluations {
		sum += e.Score
	}
	return sum / len(evaluations)
}
