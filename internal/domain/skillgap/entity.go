package skillgap

type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
)

const (
	LevelBeginner     = "beginner"
	LevelIntermediate = "intermediate"
	LevelAdvanced     = "advanced"
)

const (
	RecommendationCourse  = "course_recommendation"
	RecommendationGeneral = "general_recommendation"
)

type MatchKind string

const (
	MatchDirect  MatchKind = "direct"
	MatchNearest MatchKind = "nearest"
	MatchDefault MatchKind = "default"
)

type Dimension struct {
	Index   int
	Name    string
	Aliases []string
}

type RoleProfile struct {
	Name   string
	Levels []int
}

type Resource struct {
	Skill string
	Name  string
	URL   string
	Level string
}

type StudentSkill struct {
	SkillName   string
	Proficiency int
	Category    string
}

type Gap struct {
	Skill            string   `json:"skill"`
	StudentLevel     int      `json:"student_level"`
	IndustryStandard int      `json:"industry_standard"`
	Gap              int      `json:"gap"`
	Priority         Priority `json:"priority"`
}

type Recommendation struct {
	Type         string   `json:"type"`
	Skill        string   `json:"skill,omitempty"`
	Gap          int      `json:"gap,omitempty"`
	Text         string   `json:"recommendation"`
	ResourceName string   `json:"resource_name,omitempty"`
	ResourceURL  string   `json:"resource_url,omitempty"`
	Priority     Priority `json:"priority"`
}

type Report struct {
	Role            string           `json:"role"`
	Match           MatchKind        `json:"match"`
	Gaps            []Gap            `json:"gaps"`
	Recommendations []Recommendation `json:"recommendations"`
}

func (r Report) HighPriorityCount() int {
	n := 0
	for _, g := range r.Gaps {
		if g.Priority == PriorityHigh {
			n++
		}
	}
	return n
}
