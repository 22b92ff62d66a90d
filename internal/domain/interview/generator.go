package interview

import (
	"fmt"
	"math/rand/v2"

	"placement-pro/internal/domain/skillgap"
)

const (
	DefaultQuestionCount = 5
	MaxQuestionCount     = 20

	focusGaps        = 3
	questionsPerGap  = 2
	pcgStreamPattern = 0x9e3779b97f4a7c15
)

type Question struct {
	Skill string `json:"skill"`
	Text  string `json:"question"`
}

// GenerateQuestions draws questions for the largest gaps first and fills the
// rest from the whole bank. The same seed and gaps always give the same
// questions.
func (b *QuestionBank) GenerateQuestions(gaps []skillgap.Gap, count int, seed int64) ([]Question, error) {
	if count <= 0 || count > MaxQuestionCount {
		return nil, fmt.Errorf("%w: count %d out of range [1,%d]", ErrInvalidInput, count, MaxQuestionCount)
	}

	r := rand.New(rand.NewPCG(uint64(seed), uint64(seed)^pcgStreamPattern))
	used := make(map[string]struct{})
	out := make([]Question, 0, count)

	top := gaps
	if len(top) > focusGaps {
		top = top[:focusGaps]
	}
	for _, g := range top {
		t, ok := b.Topic(g.Skill)
		if !ok {
			continue
		}
		perm := r.Perm(len(t.Questions))
		for _, i := range perm[:min(questionsPerGap, len(perm))] {
			q := t.Questions[i]
			if _, dup := used[q]; dup {
				continue
			}
			used[q] = struct{}{}
			out = append(out, Question{Skill: t.Skill, Text: q})
		}
	}

	if len(out) < count {
		pool := make([]Question, 0, b.Size())
		for _, t := range b.topics {
			for _, q := range t.Questions {
				if _, dup := used[q]; dup {
					continue
				}
				pool = append(pool, Question{Skill: t.Skill, Text: q})
			}
		}
		r.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
		for _, q := range pool {
			if len(out) >= count {
				break
			}
			out = append(out, q)
		}
	}

	if len(out) > count {
		out = out[:count]
	}
	return out, nil
}
