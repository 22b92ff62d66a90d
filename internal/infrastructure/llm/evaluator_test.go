package llm

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"placement-pro/internal/domain/interview"
)

type stubGenerator struct {
	out    string
	err    error
	prompt string
}

func (s *stubGenerator) GenerateJSON(ctx context.Context, prompt string) (string, error) {
	s.prompt = prompt
	if _, ok := ctx.Deadline(); !ok {
		return "", errors.New("expected deadline")
	}
	return s.out, s.err
}

func (s *stubGenerator) Close() error { return nil }

func TestCleanJSONBlock(t *testing.T) {
	assert.Equal(t, `{"a":1}`, cleanJSONBlock("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, cleanJSONBlock("```\n{\"a\":1}```"))
	assert.Equal(t, `{"a":1}`, cleanJSONBlock(`  {"a":1} `))
}

func TestParseEvaluation(t *testing.T) {
	ev, err := parseEvaluation("```json\n{\"score\": 84.6, \"feedback\": \"Clear\", \"strengths\": [\"examples\"]}\n```")
	require.NoError(t, err)
	assert.Equal(t, 85, ev.Score)
	assert.Equal(t, "Clear", ev.Feedback)
	assert.Equal(t, []string{"examples"}, ev.Strengths)
	assert.Equal(t, []string{}, ev.Improvements)
}

func TestParseEvaluation_Malformed(t *testing.T) {
	for _, in := range []string{
		"The answer is good.",
		`{"feedback": "no score"}`,
		`{"score": "high", "feedback": "x"}`,
	} {
		_, err := parseEvaluation(in)
		assert.ErrorIs(t, err, interview.ErrMalformedEvaluation, in)
	}
}

func TestEvaluator_Evaluate(t *testing.T) {
	gen := &stubGenerator{out: `{"score": 72, "feedback": "ok", "strengths": [], "improvements": ["depth"]}`}
	e := NewEvaluator(gen, time.Second)

	ev, err := e.Evaluate(context.Background(), "What is a JOIN?", "It combines tables.")
	require.NoError(t, err)
	assert.Equal(t, 72, ev.Score)
	assert.True(t, strings.Contains(gen.prompt, "Question: What is a JOIN?"))
	assert.True(t, strings.Contains(gen.prompt, "Candidate Answer: It combines tables."))
}

func TestEvaluator_WithFallback(t *testing.T) {
	gen := &stubGenerator{err: errors.New("quota exceeded")}
	fb := interview.NewFallbackEvaluator(NewEvaluator(gen, time.Second), nil)

	ev, err := fb.Evaluate(context.Background(), "q", "a")
	require.NoError(t, err)
	assert.Equal(t, interview.FallbackScore, ev.Score)
	assert.True(t, ev.Fallback)
}

func TestNewGeminiClient_RequiresKey(t *testing.T) {
	_, err := NewGeminiClient(context.Background(), "", "")
	assert.Error(t, err)
}
