package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"

	"placement-pro/internal/domain/skillgap"
	"placement-pro/internal/ws"

	"github.com/google/uuid"
)

type AnalyzeInput struct {
	Skills       []skillgap.StudentSkill
	TargetRole   string
	MatchNearest bool
	StudentLevel string
}

type AnalysisResult struct {
	ReportID    uuid.UUID
	Report      skillgap.Report
	Cached      bool
	Fingerprint string
}

type SkillGapUsecase interface {
	Analyze(ctx context.Context, in AnalyzeInput) (AnalysisResult, error)
}

type SkillGap struct {
	catalog  CatalogProvider
	opts     skillgap.Options
	cache    ReportCache
	notifier AnalysisNotifier
	logger   *log.Logger
}

func NewSkillGapUsecase(catalog CatalogProvider, opts skillgap.Options, cache ReportCache, notifier AnalysisNotifier, logger *log.Logger) *SkillGap {
	return &SkillGap{catalog: catalog, opts: opts, cache: cache, notifier: notifier, logger: logger}
}

func (u *SkillGap) Analyze(ctx context.Context, in AnalyzeInput) (AnalysisResult, error) {
	req, err := skillgap.NewRequest(in.Skills, in.TargetRole, in.MatchNearest, in.StudentLevel)
	if err != nil {
		return AnalysisResult{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	scorer, fingerprint, err := scorerFor(ctx, u.catalog, u.opts)
	if err != nil {
		return AnalysisResult{}, err
	}

	level := req.Level
	if level == "" {
		level = scorer.Options().DefaultLevel
	}
	key := ReportCacheKey(fingerprint, scorer.Options(), scorer.ResolveStudentVector(req.Skills), req.TargetRole, req.MatchNearest, level)

	res := AnalysisResult{ReportID: uuid.New(), Fingerprint: fingerprint}

	if u.cache != nil {
		var cached skillgap.Report
		hit, err := u.cache.GetJSON(ctx, key, &cached)
		if err == nil && hit {
			if u.logger != nil {
				u.logger.Printf("[SkillGap] Cache HIT: %s", key)
			}
			res.Report = cached
			res.Cached = true
			u.notify(res)
			return res, nil
		}
		if u.logger != nil {
			u.logger.Printf("[SkillGap] Cache MISS: %s", key)
		}
	}

	report, err := scorer.Analyze(req)
	if err != nil {
		return AnalysisResult{}, mapScorerError(err)
	}
	res.Report = report

	if u.cache != nil {
		if err := u.cache.SetJSON(ctx, key, report, 0); err != nil && u.logger != nil {
			u.logger.Printf("[SkillGap] Cache SET failed: %s err=%v", key, err)
		}
	}

	u.notify(res)
	return res, nil
}

func (u *SkillGap) notify(res AnalysisResult) {
	if u.notifier == nil {
		return
	}
	u.notifier.AnalysisCompleted(ws.AnalysisCompletedEvent{
		ReportID:     res.ReportID.String(),
		Role:         res.Report.Role,
		Match:        string(res.Report.Match),
		GapCount:     len(res.Report.Gaps),
		HighPriority: res.Report.HighPriorityCount(),
		Cached:       res.Cached,
	})
}

func scorerFor(ctx context.Context, provider CatalogProvider, opts skillgap.Options) (*skillgap.Scorer, string, error) {
	if provider == nil {
		return nil, "", ErrCatalogUnavailable
	}
	snap, err := provider.Load(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %w", ErrCatalogUnavailable, err)
	}
	scorer, err := skillgap.NewScorer(snap.Catalog, opts)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %w", ErrInternal, err)
	}
	return scorer, snap.Catalog.Fingerprint(), nil
}

func mapScorerError(err error) error {
	switch {
	case errors.Is(err, skillgap.ErrUnknownRole):
		return fmt.Errorf("%w: %w", ErrUnknownRole, err)
	case errors.Is(err, skillgap.ErrValidation):
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	default:
		return fmt.Errorf("%w: %w", ErrInternal, err)
	}
}
