package handler

import (
	"errors"

	"placement-pro/internal/delivery/http/dto"
	"placement-pro/internal/delivery/http/middleware"
	"placement-pro/internal/pkg/response"
	"placement-pro/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type CatalogHandler struct {
	uc usecase.CatalogUsecase
}

func NewCatalogHandler(uc usecase.CatalogUsecase) *CatalogHandler {
	return &CatalogHandler{uc: uc}
}

func (h *CatalogHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	grp := r.Group("/catalog")
	grp.Get("/dimensions", h.Dimensions)
	grp.Get("/roles", h.Roles)
}

func (h *CatalogHandler) Dimensions(c fiber.Ctx) error {
	dims, err := h.uc.ListDimensions(c.Context())
	if err != nil {
		return mapCatalogUsecaseError(err)
	}

	res := make([]dto.DimensionResponse, 0, len(dims))
	for _, d := range dims {
		aliases := d.Aliases
		if aliases == nil {
			aliases = []string{}
		}
		res = append(res, dto.DimensionResponse{Index: d.Index, Name: d.Name, Aliases: aliases})
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, res)
}

func (h *CatalogHandler) Roles(c fiber.Ctx) error {
	roles, err := h.uc.ListRoles(c.Context())
	if err != nil {
		return mapCatalogUsecaseError(err)
	}

	res := make([]dto.RoleResponse, 0, len(roles))
	for _, r := range roles {
		levels := make([]dto.RoleLevelResponse, 0, len(r.Levels))
		for _, l := range r.Levels {
			levels = append(levels, dto.RoleLevelResponse{Skill: l.Skill, Level: l.Level})
		}
		res = append(res, dto.RoleResponse{Name: r.Name, Default: r.Default, Levels: levels})
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, res)
}

func mapCatalogUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrCatalogUnavailable):
		return middleware.NewAppError(fiber.StatusServiceUnavailable, response.MessageCatalogUnavailable, nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
