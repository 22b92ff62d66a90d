package skillgap

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDefaultScorer(t *testing.T) *Scorer {
	t.Helper()
	s, err := NewScorer(MustDefaultCatalog(), DefaultOptions())
	require.NoError(t, err)
	return s
}

func threeDimScorer(t *testing.T, reference []int) *Scorer {
	t.Helper()
	c, err := NewCatalog(CatalogSpec{
		Dimensions: []DimensionSpec{
			{Name: "Python"},
			{Name: "Statistics"},
			{Name: "SQL"},
		},
		Profiles: []ProfileSpec{{Name: "Data Scientist", Levels: reference}},
	})
	require.NoError(t, err)
	s, err := NewScorer(c, DefaultOptions())
	require.NoError(t, err)
	return s
}

func TestResolveStudentVector_AliasesAndCase(t *testing.T) {
	s := newDefaultScorer(t)

	v := s.ResolveStudentVector([]StudentSkill{
		{SkillName: "python programming", Proficiency: 70},
		{SkillName: "  machine   LEARNING ", Proficiency: 60},
		{SkillName: "aws", Proficiency: 40},
		{SkillName: "Soft Skills", Proficiency: 90},
	})

	assert.Equal(t, []int{70, 60, 0, 0, 0, 40, 90}, v)
}

func TestResolveStudentVector_IgnoresUnknownNames(t *testing.T) {
	s := newDefaultScorer(t)
	base := []StudentSkill{
		{SkillName: "Python", Proficiency: 80},
		{SkillName: "SQL", Proficiency: 55},
	}
	noisy := []StudentSkill{
		{SkillName: "Underwater Basket Weaving", Proficiency: 100},
		{SkillName: "Python", Proficiency: 80},
		{SkillName: "Rust", Proficiency: 10},
		{SkillName: "SQL", Proficiency: 55},
		{SkillName: "Excel", Proficiency: 0},
	}

	assert.Equal(t, s.ResolveStudentVector(base), s.ResolveStudentVector(noisy))
}

func TestResolveStudentVector_LastDuplicateWins(t *testing.T) {
	s := newDefaultScorer(t)

	v := s.ResolveStudentVector([]StudentSkill{
		{SkillName: "AWS", Proficiency: 30},
		{SkillName: "Cloud Computing", Proficiency: 50},
		{SkillName: "Azure", Proficiency: 45},
	})
	assert.Equal(t, 45, v[5])

	v = s.ResolveStudentVector([]StudentSkill{
		{SkillName: "Azure", Proficiency: 45},
		{SkillName: "AWS", Proficiency: 30},
	})
	assert.Equal(t, 30, v[5])
}

func TestComputeGaps_OnlyPositiveGapsReported(t *testing.T) {
	s := threeDimScorer(t, []int{90, 85, 85})
	p, ok := s.Catalog().Profile("Data Scientist")
	require.True(t, ok)

	gaps := s.ComputeGaps([]int{60, 85, 90}, p)

	require.Len(t, gaps, 1)
	assert.Equal(t, Gap{Skill: "Python", StudentLevel: 60, IndustryStandard: 90, Gap: 30, Priority: PriorityHigh}, gaps[0])
}

func TestComputeGaps_OrderAndTieBreak(t *testing.T) {
	s := newDefaultScorer(t)
	p := s.Catalog().DefaultProfile()

	gaps := s.ComputeGaps(make([]int, 7), p)

	names := make([]string, 0, len(gaps))
	for _, g := range gaps {
		assert.Greater(t, g.Gap, 0)
		assert.GreaterOrEqual(t, g.IndustryStandard, g.StudentLevel+1)
		names = append(names, g.Skill)
	}
	assert.Equal(t, []string{
		"Python", "Statistics",
		"Machine Learning", "SQL", "Communication",
		"Deep Learning", "Cloud Computing",
	}, names)
}

func TestComputeGaps_PriorityThreshold(t *testing.T) {
	s := threeDimScorer(t, []int{50, 50, 50})
	p := s.Catalog().DefaultProfile()

	gaps := s.ComputeGaps([]int{30, 29, 49}, p)

	require.Len(t, gaps, 3)
	assert.Equal(t, "Statistics", gaps[0].Skill)
	assert.Equal(t, PriorityHigh, gaps[0].Priority)
	assert.Equal(t, 20, gaps[1].Gap)
	assert.Equal(t, PriorityMedium, gaps[1].Priority)
	assert.Equal(t, PriorityMedium, gaps[2].Priority)

	custom, err := NewScorer(s.Catalog(), Options{HighPriorityThreshold: 10, MaxRecommendations: 3})
	require.NoError(t, err)
	gaps = custom.ComputeGaps([]int{30, 29, 49}, p)
	assert.Equal(t, PriorityHigh, gaps[1].Priority)
}

func TestAnalyze_DataScientistScenario(t *testing.T) {
	s := threeDimScorer(t, []int{90, 0, 85})

	req, err := NewRequest([]StudentSkill{
		{SkillName: "Python", Proficiency: 60},
		{SkillName: "SQL", Proficiency: 90},
	}, "Data Scientist", false, "")
	require.NoError(t, err)

	rep, err := s.Analyze(req)
	require.NoError(t, err)

	assert.Equal(t, "Data Scientist", rep.Role)
	assert.Equal(t, MatchDirect, rep.Match)
	assert.Equal(t, []Gap{{Skill: "Python", StudentLevel: 60, IndustryStandard: 90, Gap: 30, Priority: PriorityHigh}}, rep.Gaps)
	assert.Empty(t, rep.Recommendations)
}

func TestAnalyze_UnknownRole(t *testing.T) {
	s := newDefaultScorer(t)

	_, err := s.Analyze(Request{TargetRole: "Astronaut"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownRole))

	var roleErr *UnknownRoleError
	require.True(t, errors.As(err, &roleErr))
	assert.Equal(t, "Astronaut", roleErr.Role)
}

func TestAnalyze_UnknownRoleFallsBackToNearest(t *testing.T) {
	s := newDefaultScorer(t)
	skills := []StudentSkill{
		{SkillName: "Python", Proficiency: 85},
		{SkillName: "ML", Proficiency: 90},
		{SkillName: "SQL", Proficiency: 80},
		{SkillName: "Statistics", Proficiency: 85},
		{SkillName: "Deep Learning", Proficiency: 85},
		{SkillName: "Cloud Computing", Proficiency: 75},
		{SkillName: "Communication", Proficiency: 80},
	}

	rep, err := s.Analyze(Request{Skills: skills, TargetRole: "Astronaut", MatchNearest: true})
	require.NoError(t, err)
	assert.Equal(t, "ML Engineer", rep.Role)
	assert.Equal(t, MatchNearest, rep.Match)
	assert.Empty(t, rep.Gaps)
}

func TestAnalyze_EmptyRoleUsesDefault(t *testing.T) {
	s := newDefaultScorer(t)

	rep, err := s.Analyze(Request{})
	require.NoError(t, err)
	assert.Equal(t, DefaultRole, rep.Role)
	assert.Equal(t, MatchDefault, rep.Match)
	assert.Len(t, rep.Gaps, 7)
}

func TestAnalyze_NamedRoleSkipsNearest(t *testing.T) {
	s := newDefaultScorer(t)
	skills := []StudentSkill{{SkillName: "SQL", Proficiency: 90}, {SkillName: "Communication", Proficiency: 90}}

	rep, err := s.Analyze(Request{Skills: skills, TargetRole: "research scientist", MatchNearest: true})
	require.NoError(t, err)
	assert.Equal(t, "Research Scientist", rep.Role)
	assert.Equal(t, MatchDirect, rep.Match)
}

func TestNearestProfile_TieKeepsDeclaredOrder(t *testing.T) {
	c, err := NewCatalog(CatalogSpec{
		Dimensions: []DimensionSpec{{Name: "A"}, {Name: "B"}},
		Profiles: []ProfileSpec{
			{Name: "First", Levels: []int{50, 50}},
			{Name: "Second", Levels: []int{50, 50}},
		},
	})
	require.NoError(t, err)
	s, err := NewScorer(c, DefaultOptions())
	require.NoError(t, err)

	p, dist := s.NearestProfile([]int{10, 90})
	assert.Equal(t, "First", p.Name)
	assert.Greater(t, dist, 0.0)
}

func TestNearestProfile_UsesStandardizedDistance(t *testing.T) {
	// Raw distance favours Narrow, but dimension B barely varies across
	// profiles so a small difference there outweighs a large one on A.
	c, err := NewCatalog(CatalogSpec{
		Dimensions: []DimensionSpec{{Name: "A"}, {Name: "B"}},
		Profiles: []ProfileSpec{
			{Name: "Wide", Levels: []int{0, 50}},
			{Name: "Narrow", Levels: []int{100, 52}},
		},
	})
	require.NoError(t, err)
	s, err := NewScorer(c, DefaultOptions())
	require.NoError(t, err)

	p, _ := s.NearestProfile([]int{70, 50})
	assert.Equal(t, "Wide", p.Name)
}

func TestRecommend_DefaultCatalogLevels(t *testing.T) {
	s := newDefaultScorer(t)
	gaps := s.ComputeGaps(make([]int, 7), s.Catalog().DefaultProfile())

	recs := s.Recommend(gaps, LevelIntermediate, 3)
	require.Len(t, recs, 3)
	assert.Equal(t, RecommendationCourse, recs[0].Type)
	assert.Equal(t, "Machine Learning", recs[0].Skill)
	assert.Equal(t, "Take 'Machine Learning Specialization' to improve Machine Learning", recs[0].Text)
	assert.Equal(t, "https://coursera.org/ml-specialization", recs[0].ResourceURL)
	assert.Equal(t, PriorityHigh, recs[0].Priority)
	assert.Equal(t, RecommendationGeneral, recs[1].Type)
	assert.Equal(t, "Practice mock interviews focusing on your weak areas", recs[1].Text)
	assert.Equal(t, PriorityMedium, recs[1].Priority)
	assert.Equal(t, RecommendationGeneral, recs[2].Type)

	recs = s.Recommend(gaps, "Beginner", 3)
	require.Len(t, recs, 3)
	assert.Equal(t, "Python for Data Science", recs[0].ResourceName)
	assert.Equal(t, 90, recs[0].Gap)
}

func TestRecommend_OnlyTopGapsConsidered(t *testing.T) {
	s := newDefaultScorer(t)
	gaps := []Gap{
		{Skill: "Statistics", Gap: 50, Priority: PriorityHigh},
		{Skill: "Deep Learning", Gap: 40, Priority: PriorityHigh},
		{Skill: "Cloud Computing", Gap: 30, Priority: PriorityHigh},
		{Skill: "SQL", Gap: 10, Priority: PriorityMedium},
	}

	recs := s.Recommend(gaps, LevelBeginner, 3)
	for _, r := range recs {
		assert.NotEqual(t, "SQL", r.Skill)
		assert.Equal(t, RecommendationGeneral, r.Type)
	}
	assert.Len(t, recs, 3)
}

func TestRecommend_GenericPoolExhausted(t *testing.T) {
	c, err := NewCatalog(CatalogSpec{
		Dimensions:             []DimensionSpec{{Name: "Python"}},
		Profiles:               []ProfileSpec{{Name: "Dev", Levels: []int{80}}},
		GenericRecommendations: []string{"Keep practicing"},
	})
	require.NoError(t, err)
	s, err := NewScorer(c, DefaultOptions())
	require.NoError(t, err)

	recs := s.Recommend(nil, LevelIntermediate, 3)
	require.Len(t, recs, 1)
	assert.Equal(t, "Keep practicing", recs[0].Text)

	assert.Empty(t, s.Recommend(nil, LevelIntermediate, 0))
}

func TestAnalyze_Deterministic(t *testing.T) {
	s := newDefaultScorer(t)
	req, err := NewRequest([]StudentSkill{
		{SkillName: "Python", Proficiency: 60},
		{SkillName: "ML", Proficiency: 40},
		{SkillName: "Communication", Proficiency: 85},
	}, "", true, "beginner")
	require.NoError(t, err)

	first, err := s.Analyze(req)
	require.NoError(t, err)
	second, err := s.Analyze(req)
	require.NoError(t, err)

	a, err := json.Marshal(first)
	require.NoError(t, err)
	b, err := json.Marshal(second)
	require.NoError(t, err)
	assert.Equal(t, string(a), string(b))
}

func TestNewRequest_Validation(t *testing.T) {
	tests := []struct {
		name   string
		skills []StudentSkill
		level  string
		field  string
	}{
		{name: "negative", skills: []StudentSkill{{SkillName: "Python", Proficiency: -1}}, field: "skills[0].proficiency"},
		{name: "too high", skills: []StudentSkill{{SkillName: "SQL", Proficiency: 50}, {SkillName: "Python", Proficiency: 101}}, field: "skills[1].proficiency"},
		{name: "empty name", skills: []StudentSkill{{SkillName: "  ", Proficiency: 10}}, field: "skills[0].skill_name"},
		{name: "bad level", level: "expert", field: "student_level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRequest(tt.skills, "", false, tt.level)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrValidation))

			var ve *ValidationError
			require.True(t, errors.As(err, &ve))
			assert.Equal(t, tt.field, ve.Field)
		})
	}
}

func TestNewRequest_NormalizesLevel(t *testing.T) {
	req, err := NewRequest([]StudentSkill{{SkillName: "Python", Proficiency: 100}}, "  ML Engineer ", false, " ADVANCED ")
	require.NoError(t, err)
	assert.Equal(t, LevelAdvanced, req.Level)
	assert.Equal(t, "ML Engineer", req.TargetRole)
}

func TestNewScorer_InvalidOptions(t *testing.T) {
	c := MustDefaultCatalog()

	_, err := NewScorer(c, Options{HighPriorityThreshold: -1})
	assert.True(t, errors.Is(err, ErrValidation))

	_, err = NewScorer(c, Options{MaxRecommendations: -2})
	assert.True(t, errors.Is(err, ErrValidation))

	_, err = NewScorer(c, Options{DefaultLevel: "guru"})
	assert.True(t, errors.Is(err, ErrValidation))

	_, err = NewScorer(nil, DefaultOptions())
	assert.Error(t, err)

	s, err := NewScorer(c, Options{MaxRecommendations: 2})
	require.NoError(t, err)
	assert.Equal(t, LevelIntermediate, s.Options().DefaultLevel)
}
