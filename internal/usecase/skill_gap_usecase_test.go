package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"placement-pro/internal/domain/skillgap"
)

func sampleSkills() []skillgap.StudentSkill {
	return []skillgap.StudentSkill{
		{SkillName: "Python", Proficiency: 60},
		{SkillName: "SQL", Proficiency: 90},
	}
}

func TestSkillGapUsecase_Analyze(t *testing.T) {
	cache := newMockCache()
	notifier := &mockNotifier{}
	uc := NewSkillGapUsecase(defaultProvider(), skillgap.DefaultOptions(), cache, notifier, nil)

	res, err := uc.Analyze(context.Background(), AnalyzeInput{Skills: sampleSkills(), TargetRole: "data scientist"})
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, res.ReportID)
	assert.False(t, res.Cached)
	assert.Equal(t, "Data Scientist", res.Report.Role)
	assert.Equal(t, skillgap.MatchDirect, res.Report.Match)
	require.NotEmpty(t, res.Report.Gaps)
	assert.Equal(t, "Statistics", res.Report.Gaps[0].Skill)
	assert.Equal(t, 1, cache.sets)

	require.Len(t, notifier.events, 1)
	assert.Equal(t, res.ReportID.String(), notifier.events[0].ReportID)
	assert.Equal(t, res.Report.HighPriorityCount(), notifier.events[0].HighPriority)
}

func TestSkillGapUsecase_CacheHitReturnsSameReport(t *testing.T) {
	cache := newMockCache()
	notifier := &mockNotifier{}
	uc := NewSkillGapUsecase(defaultProvider(), skillgap.DefaultOptions(), cache, notifier, nil)
	ctx := context.Background()

	first, err := uc.Analyze(ctx, AnalyzeInput{Skills: sampleSkills()})
	require.NoError(t, err)

	// unknown skills and different spelling resolve to the same vector
	noisy := append(sampleSkills(), skillgap.StudentSkill{SkillName: "Juggling", Proficiency: 99})
	noisy[0].SkillName = "  python "
	second, err := uc.Analyze(ctx, AnalyzeInput{Skills: noisy, StudentLevel: "Intermediate"})
	require.NoError(t, err)

	assert.True(t, second.Cached)
	assert.Equal(t, first.Report, second.Report)
	assert.NotEqual(t, first.ReportID, second.ReportID)
	assert.Equal(t, 1, cache.sets)
	assert.Len(t, notifier.events, 2)
	assert.True(t, notifier.events[1].Cached)
}

func TestSkillGapUsecase_WithoutCache(t *testing.T) {
	uc := NewSkillGapUsecase(defaultProvider(), skillgap.DefaultOptions(), nil, nil, nil)

	res, err := uc.Analyze(context.Background(), AnalyzeInput{})
	require.NoError(t, err)
	assert.Equal(t, skillgap.MatchDefault, res.Report.Match)
	assert.Len(t, res.Report.Recommendations, 3)
}

func TestSkillGapUsecase_Errors(t *testing.T) {
	ctx := context.Background()

	uc := NewSkillGapUsecase(defaultProvider(), skillgap.DefaultOptions(), nil, nil, nil)

	_, err := uc.Analyze(ctx, AnalyzeInput{Skills: []skillgap.StudentSkill{{SkillName: "Python", Proficiency: 140}}})
	assert.True(t, errors.Is(err, ErrInvalidInput))
	var ve *skillgap.ValidationError
	assert.True(t, errors.As(err, &ve))

	_, err = uc.Analyze(ctx, AnalyzeInput{TargetRole: "Astronaut"})
	assert.True(t, errors.Is(err, ErrUnknownRole))

	broken := NewSkillGapUsecase(mockProvider{err: errors.New("db down")}, skillgap.DefaultOptions(), nil, nil, nil)
	_, err = broken.Analyze(ctx, AnalyzeInput{})
	assert.True(t, errors.Is(err, ErrCatalogUnavailable))

	badOpts := NewSkillGapUsecase(defaultProvider(), skillgap.Options{MaxRecommendations: -1}, nil, nil, nil)
	_, err = badOpts.Analyze(ctx, AnalyzeInput{})
	assert.True(t, errors.Is(err, ErrInternal))
}

func TestReportCacheKey(t *testing.T) {
	opts := skillgap.DefaultOptions()
	a := ReportCacheKey("fp", opts, []int{1, 2}, "Data  Scientist", false, "beginner")
	b := ReportCacheKey("fp", opts, []int{1, 2}, "data scientist", false, "beginner")
	c := ReportCacheKey("fp2", opts, []int{1, 2}, "data scientist", false, "beginner")
	d := ReportCacheKey("fp", opts, []int{1, 2}, "data scientist", true, "beginner")

	stricter := opts
	stricter.HighPriorityThreshold = 80
	e := ReportCacheKey("fp", stricter, []int{1, 2}, "data scientist", false, "beginner")
	fewer := opts
	fewer.MaxRecommendations = 1
	f := ReportCacheKey("fp", fewer, []int{1, 2}, "data scientist", false, "beginner")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.NotEqual(t, a, d)
	assert.NotEqual(t, a, e)
	assert.NotEqual(t, a, f)
	assert.NotEqual(t, e, f)
	assert.Contains(t, a, ReportKeyPrefix)
}

func TestSkillGapUsecase_SharedCacheKeepsOptionsApart(t *testing.T) {
	ctx := context.Background()
	cache := newMockCache()
	in := AnalyzeInput{Skills: sampleSkills(), TargetRole: "Data Scientist"}

	defaults := NewSkillGapUsecase(defaultProvider(), skillgap.DefaultOptions(), cache, nil, nil)
	first, err := defaults.Analyze(ctx, in)
	require.NoError(t, err)
	assert.False(t, first.Cached)

	opts := skillgap.Options{HighPriorityThreshold: 80, MaxRecommendations: 1, DefaultLevel: skillgap.LevelIntermediate}
	strict := NewSkillGapUsecase(defaultProvider(), opts, cache, nil, nil)
	second, err := strict.Analyze(ctx, in)
	require.NoError(t, err)
	assert.False(t, second.Cached)

	scorer, err := skillgap.NewScorer(skillgap.MustDefaultCatalog(), opts)
	require.NoError(t, err)
	req, err := skillgap.NewRequest(in.Skills, in.TargetRole, false, "")
	require.NoError(t, err)
	want, err := scorer.Analyze(req)
	require.NoError(t, err)

	assert.Equal(t, want, second.Report)
	assert.Len(t, second.Report.Recommendations, 1)
	assert.NotEqual(t, first.Report.HighPriorityCount(), second.Report.HighPriorityCount())
	assert.Equal(t, 2, cache.sets)

	again, err := strict.Analyze(ctx, in)
	require.NoError(t, err)
	assert.True(t, again.Cached)
	assert.Equal(t, want, again.Report)
}
