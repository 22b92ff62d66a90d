package v1

import (
	"placement-pro/internal/delivery/http/handler"

	"github.com/gofiber/fiber/v3"
)

func Register(r fiber.Router, skillGap *handler.SkillGapHandler, catalog *handler.CatalogHandler, interview *handler.InterviewHandler) {
	if r == nil {
		return
	}

	if skillGap != nil {
		skillGap.RegisterRoutes(r)
	}
	if catalog != nil {
		catalog.RegisterRoutes(r)
	}
	if interview != nil {
		interview.RegisterRoutes(r)
	}
}
