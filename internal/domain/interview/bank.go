package interview

import (
	"fmt"
	"strings"

	"placement-pro/internal/domain/skillgap"
)

type Topic struct {
	Skill     string   `json:"skill" yaml:"skill"`
	Questions []string `json:"questions" yaml:"questions"`
}

// QuestionBank keeps topics in declared order so that seeded draws are
// reproducible.
type QuestionBank struct {
	topics []Topic
	index  map[string]int
}

func NewQuestionBank(topics []Topic) (*QuestionBank, error) {
	if len(topics) == 0 {
		return nil, fmt.Errorf("%w: question bank is empty", ErrInvalidInput)
	}

	b := &QuestionBank{
		topics: make([]Topic, 0, len(topics)),
		index:  make(map[string]int, len(topics)),
	}
	for i, t := range topics {
		skill := strings.TrimSpace(t.Skill)
		if skill == "" {
			return nil, fmt.Errorf("%w: topic %d has no skill", ErrInvalidInput, i)
		}
		key := skillgap.NormalizeName(skill)
		if _, dup := b.index[key]; dup {
			return nil, fmt.Errorf("%w: duplicate topic %q", ErrInvalidInput, skill)
		}
		if len(t.Questions) == 0 {
			return nil, fmt.Errorf("%w: topic %q has no questions", ErrInvalidInput, skill)
		}
		qs := make([]string, 0, len(t.Questions))
		for _, q := range t.Questions {
			q = strings.TrimSpace(q)
			if q == "" {
				return nil, fmt.Errorf("%w: topic %q has an empty question", ErrInvalidInput, skill)
			}
			qs = append(qs, q)
		}
		b.index[key] = len(b.topics)
		b.topics = append(b.topics, Topic{Skill: skill, Questions: qs})
	}
	return b, nil
}

func (b *QuestionBank) Topics() []Topic {
	out := make([]Topic, 0, len(b.topics))
	for _, t := range b.topics {
		out = append(out, Topic{Skill: t.Skill, Questions: append([]string(nil), t.Questions...)})
	}
	return out
}

func (b *QuestionBank) Topic(skill string) (Topic, bool) {
	i, ok := b.index[skillgap.NormalizeName(skill)]
	if !ok {
		return Topic{}, false
	}
	t := b.topics[i]
	return Topic{Skill: t.Skill, Questions: append([]string(nil), t.Questions...)}, true
}

func (b *QuestionBank) Size() int {
	n := 0
	for _, t := range b.topics {
		n += len(t.Questions)
	}
	return n
}

func DefaultTopics() []Topic {
	return []Topic{
		{
			Skill: "Python",
			Questions: []string{
				"Explain the difference between list comprehension and generator expression.",
				"How does Python's garbage collection work?",
				"What are decorators and how do you use them?",
				"Explain the Global Interpreter Lock (GIL) in Python.",
			},
		},
		{
			Skill: "Machine Learning",
			Questions: []string{
				"Explain bias-variance tradeoff with examples.",
				"What is overfitting and how do you prevent it?",
				"Compare logistic regression and SVM.",
				"What are regularization techniques in ML?",
			},
		},
		{
			Skill: "SQL",
			Questions: []string{
				"Explain different types of JOINs in SQL.",
				"What is indexing and when should you use it?",
				"How do you optimize a slow SQL query?",
				"What is window function in SQL?",
			},
		},
	}
}

func MustDefaultBank() *QuestionBank {
	b, err := NewQuestionBank(DefaultTopics())
	if err != nil {
		panic(err)
	}
	return b
}
