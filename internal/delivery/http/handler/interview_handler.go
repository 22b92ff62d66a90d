package handler

import (
	"errors"

	"placement-pro/internal/delivery/http/dto"
	"placement-pro/internal/delivery/http/middleware"
	"placement-pro/internal/pkg/response"
	"placement-pro/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type InterviewHandler struct {
	uc usecase.InterviewUsecase
}

func NewInterviewHandler(uc usecase.InterviewUsecase) *InterviewHandler {
	return &InterviewHandler{uc: uc}
}

func (h *InterviewHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	grp := r.Group("/interviews")
	grp.Post("/questions", h.Questions)
	grp.Post("/evaluate", h.Evaluate)
}

func (h *InterviewHandler) Questions(c fiber.Ctx) error {
	var req dto.QuestionsRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	set, err := h.uc.GenerateQuestions(c.Context(), usecase.GenerateQuestionsInput{
		Gaps:         req.DomainGaps(),
		Skills:       req.StudentSkills(),
		TargetRole:   req.TargetRole,
		MatchNearest: req.MatchNearest,
		Count:        req.Count,
		Seed:         req.Seed,
	})
	if err != nil {
		return mapInterviewUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.QuestionsResponse{
		Seed:      set.Seed,
		Role:      set.Role,
		Questions: set.Questions,
	})
}

func (h *InterviewHandler) Evaluate(c fiber.Ctx) error {
	var req dto.EvaluateRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	res, err := h.uc.EvaluateAnswers(c.Context(), req.DomainAnswers())
	if err != nil {
		return mapInterviewUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.EvaluateResponse{
		Evaluations:  res.Evaluations,
		OverallScore: res.OverallScore,
	})
}

func mapInterviewUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		return invalidInputError(err)
	case errors.Is(err, usecase.ErrUnknownRole):
		return middleware.NewAppError(fiber.StatusNotFound, response.MessageRoleNotFound, nil, err)
	case errors.Is(err, usecase.ErrCatalogUnavailable):
		return middleware.NewAppError(fiber.StatusServiceUnavailable, response.MessageCatalogUnavailable, nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
