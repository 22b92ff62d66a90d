package handler

import (
	"errors"

	"placement-pro/internal/delivery/http/dto"
	"placement-pro/internal/delivery/http/middleware"
	"placement-pro/internal/domain/skillgap"
	"placement-pro/internal/pkg/response"
	"placement-pro/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type SkillGapHandler struct {
	uc usecase.SkillGapUsecase
}

func NewSkillGapHandler(uc usecase.SkillGapUsecase) *SkillGapHandler {
	return &SkillGapHandler{uc: uc}
}

func (h *SkillGapHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	grp := r.Group("/skill-gap")
	grp.Post("/analyze", h.Analyze)
}

func (h *SkillGapHandler) Analyze(c fiber.Ctx) error {
	var req dto.AnalyzeRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	res, err := h.uc.Analyze(c.Context(), usecase.AnalyzeInput{
		Skills:       req.StudentSkills(),
		TargetRole:   req.TargetRole,
		MatchNearest: req.MatchNearest,
		StudentLevel: req.StudentLevel,
	})
	if err != nil {
		return mapSkillGapUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.AnalyzeResponse{
		ReportID:        res.ReportID,
		Role:            res.Report.Role,
		Match:           res.Report.Match,
		Gaps:            res.Report.Gaps,
		Recommendations: res.Report.Recommendations,
		HighPriority:    res.Report.HighPriorityCount(),
		Cached:          res.Cached,
	})
}

func mapSkillGapUsecaseError(err error) error {
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

// invalidInputError keeps the offending field of a domain validation error
// in the envelope data.
func invalidInputError(err error) error {
	var ve *skillgap.ValidationError
	if errors.As(err, &ve) {
		fields := []dto.FieldError{{Field: ve.Field, Reason: ve.Reason}}
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageValidationFailed, fields, err)
	}
	return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
}

// bindAndValidate decodes the JSON body into req and runs its validate tags.
func bindAndValidate(c fiber.Ctx, req any) error {
	if err := c.Bind().Body(req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	fields, err := dto.Validate(req)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageValidationFailed, fields, err)
	}
	return nil
}
