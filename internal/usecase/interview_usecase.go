package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"

	"placement-pro/internal/domain/interview"
	"placement-pro/internal/domain/skillgap"
	"placement-pro/internal/pkg/random"
)

const maxAnswers = 20

type GenerateQuestionsInput struct {
	// Gaps wins over Skills when both are set.
	Gaps         []skillgap.Gap
	Skills       []skillgap.StudentSkill
	TargetRole   string
	MatchNearest bool
	Count        int
	Seed         *int64
}

type QuestionSet struct {
	Seed      int64
	Role      string
	Questions []interview.Question
}

type EvaluationResult struct {
	Evaluations  []interview.Evaluation
	OverallScore int
}

type InterviewUsecase interface {
	GenerateQuestions(ctx context.Context, in GenerateQuestionsInput) (QuestionSet, error)
	EvaluateAnswers(ctx context.Context, answers []interview.Answer) (EvaluationResult, error)
}

type Interview struct {
	catalog     CatalogProvider
	opts        skillgap.Options
	evaluator   interview.Evaluator
	concurrency int
	newSeed     func() (int64, error)
	logger      *log.Logger
}

func NewInterviewUsecase(catalog CatalogProvider, opts skillgap.Options, evaluator interview.Evaluator, concurrency int, logger *log.Logger) *Interview {
	return &Interview{
		catalog:     catalog,
		opts:        opts,
		evaluator:   interview.NewFallbackEvaluator(evaluator, logger),
		concurrency: concurrency,
		newSeed:     random.NewSeed,
		logger:      logger,
	}
}

func (u *Interview) GenerateQuestions(ctx context.Context, in GenerateQuestionsInput) (QuestionSet, error) {
	if in.Count == 0 {
		in.Count = interview.DefaultQuestionCount
	}
	if in.Count < 0 || in.Count > interview.MaxQuestionCount {
		return QuestionSet{}, fmt.Errorf("%w: count must be between 1 and %d", ErrInvalidInput, interview.MaxQuestionCount)
	}

	if u.catalog == nil {
		return QuestionSet{}, ErrCatalogUnavailable
	}
	snap, err := u.catalog.Load(ctx)
	if err != nil {
		return QuestionSet{}, fmt.Errorf("%w: %w", ErrCatalogUnavailable, err)
	}

	out := QuestionSet{}
	gaps := in.Gaps
	if len(gaps) == 0 && len(in.Skills) > 0 {
		req, err := skillgap.NewRequest(in.Skills, in.TargetRole, in.MatchNearest, "")
		if err != nil {
			return QuestionSet{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
		}
		scorer, err := skillgap.NewScorer(snap.Catalog, u.opts)
		if err != nil {
			return QuestionSet{}, fmt.Errorf("%w: %w", ErrInternal, err)
		}
		report, err := scorer.Analyze(req)
		if err != nil {
			return QuestionSet{}, mapScorerError(err)
		}
		gaps = report.Gaps
		out.Role = report.Role
	}

	if in.Seed != nil {
		out.Seed = *in.Seed
	} else {
		seed, err := u.newSeed()
		if err != nil {
			return QuestionSet{}, fmt.Errorf("%w: %w", ErrInternal, err)
		}
		out.Seed = seed
	}

	qs, err := snap.Bank.GenerateQuestions(gaps, in.Count, out.Seed)
	if err != nil {
		if errors.Is(err, interview.ErrInvalidInput) {
			return QuestionSet{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
		}
		return QuestionSet{}, fmt.Errorf("%w: %w", ErrInternal, err)
	}
	out.Questions = qs

	if u.logger != nil {
		u.logger.Printf("[Interview] questions generated count=%d seed=%d", len(qs), out.Seed)
	}
	return out, nil
}

func (u *Interview) EvaluateAnswers(ctx context.Context, answers []interview.Answer) (EvaluationResult, error) {
	if len(answers) == 0 || len(answers) > maxAnswers {
		return EvaluationResult{}, fmt.Errorf("%w: between 1 and %d answers are required", ErrInvalidInput, maxAnswers)
	}

	evs, err := interview.EvaluateAll(ctx, u.evaluator, answers, u.concurrency)
	if err != nil {
		if errors.Is(err, interview.ErrInvalidInput) {
			return EvaluationResult{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
		}
		return EvaluationResult{}, fmt.Errorf("%w: %w", ErrInternal, err)
	}

	return EvaluationResult{Evaluations: evs, OverallScore: interview.Score(evs)}, nil
}
