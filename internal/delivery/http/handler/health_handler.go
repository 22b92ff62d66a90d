package handler

import (
	"placement-pro/internal/delivery/http/dto"
	"placement-pro/internal/pkg/response"
	"placement-pro/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type HealthHandler struct {
	catalog usecase.CatalogUsecase
}

func NewHealthHandler(catalog usecase.CatalogUsecase) *HealthHandler {
	return &HealthHandler{catalog: catalog}
}

func (h *HealthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/health", h.Health)
}

// Health reports liveness together with the catalog the scorer is using.
func (h *HealthHandler) Health(c fiber.Ctx) error {
	if h.catalog == nil {
		return response.Success(c, fiber.StatusOK, response.MessageOK, dto.HealthResponse{Status: "ok"})
	}

	info, err := h.catalog.Info(c.Context())
	if err != nil {
		return mapCatalogUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.HealthResponse{
		Status:      "ok",
		Source:      info.Source,
		Fingerprint: info.Fingerprint,
		Dimensions:  info.Dimensions,
		Profiles:    info.Profiles,
	})
}
