package dto

import (
	"placement-pro/internal/domain/interview"
	"placement-pro/internal/domain/skillgap"
)

type GapInput struct {
	Skill string `json:"skill" validate:"required,max=120"`
	Gap   int    `json:"gap" validate:"min=0,max=100"`
}

type QuestionsRequest struct {
	Gaps         []GapInput   `json:"gaps" validate:"max=50,dive"`
	Skills       []SkillEntry `json:"skills" validate:"max=200,dive"`
	TargetRole   string       `json:"target_role" validate:"max=120"`
	MatchNearest bool         `json:"match_nearest"`
	Count        int          `json:"count" validate:"min=0,max=20"`
	Seed         *int64       `json:"seed"`
}

// DomainGaps keeps the caller's order; callers send gaps largest first.
func (r QuestionsRequest) DomainGaps() []skillgap.Gap {
	out := make([]skillgap.Gap, 0, len(r.Gaps))
	for _, g := range r.Gaps {
		out = append(out, skillgap.Gap{Skill: g.Skill, Gap: g.Gap})
	}
	return out
}

func (r QuestionsRequest) StudentSkills() []skillgap.StudentSkill {
	return toStudentSkills(r.Skills)
}

type QuestionsResponse struct {
	Seed      int64                `json:"seed"`
	Role      string               `json:"role,omitempty"`
	Questions []interview.Question `json:"questions"`
}

type AnswerInput struct {
	Question string `json:"question" validate:"required,max=2000"`
	Answer   string `json:"answer" validate:"max=10000"`
}

type EvaluateRequest struct {
	Answers []AnswerInput `json:"answers" validate:"required,min=1,max=20,dive"`
}

func (r EvaluateRequest) DomainAnswers() []interview.Answer {
	out := make([]interview.Answer, 0, len(r.Answers))
	for _, a := range r.Answers {
		out = append(out, interview.Answer{Question: a.Question, Answer: a.Answer})
	}
	return out
}

type EvaluateResponse struct {
	Evaluations  []interview.Evaluation `json:"evaluations"`
	OverallScore int                    `json:"overall_score"`
}
