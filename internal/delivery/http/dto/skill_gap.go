package dto

import (
	"placement-pro/internal/domain/skillgap"

	"github.com/google/uuid"
)

type SkillEntry struct {
	SkillName   string `json:"skill_name" validate:"required,max=120"`
	Proficiency *int   `json:"proficiency" validate:"required,min=0,max=100"`
	Category    string `json:"category,omitempty" validate:"max=120"`
}

type AnalyzeRequest struct {
	Skills       []SkillEntry `json:"skills" validate:"max=200,dive"`
	TargetRole   string       `json:"target_role" validate:"max=120"`
	MatchNearest bool         `json:"match_nearest"`
	StudentLevel string       `json:"student_level" validate:"max=32"`
}

func (r AnalyzeRequest) StudentSkills() []skillgap.StudentSkill {
	return toStudentSkills(r.Skills)
}

func toStudentSkills(entries []SkillEntry) []skillgap.StudentSkill {
	out := make([]skillgap.StudentSkill, 0, len(entries))
	for _, e := range entries {
		p := 0
		if e.Proficiency != nil {
			p = *e.Proficiency
		}
		out = append(out, skillgap.StudentSkill{SkillName: e.SkillName, Proficiency: p, Category: e.Category})
	}
	return out
}

type AnalyzeResponse struct {
	ReportID        uuid.UUID                 `json:"report_id"`
	Role            string                    `json:"role"`
	Match           skillgap.MatchKind        `json:"match"`
	Gaps            []skillgap.Gap            `json:"gaps"`
	Recommendations []skillgap.Recommendation `json:"recommendations"`
	HighPriority    int                       `json:"high_priority_count"`
	Cached          bool                      `json:"cached"`
}
