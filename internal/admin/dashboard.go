package admin

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/maybecook/mealbot/internal/domain/stats"
)

const (
	statsCacheKey = "admin:stats:overview"
	statsCacheTTL = 2 * time.Minute
)

// overview Сводка для дашборда и /admin/api/stats, пару минут живёт в кэше.
func (s *Server) overview(c *fiber.Ctx) (stats.Overview, error) {
	ctx := c.UserContext()

	var ov stats.Overview
	hit, err := s.cache.GetJSON(ctx, statsCacheKey, &ov)
	if err != nil {
		s.log.Warn("кэш статистики недоступен", "err", err)
	}
	if hit {
		return ov, nil
	}

	ov, err = s.stats.Overview(ctx, time.Now())
	if err != nil {
		return stats.Overview{}, err
	}
	if err := s.cache.SetJSON(ctx, statsCacheKey, ov, statsCacheTTL); err != nil {
		s.log.Warn("не удалось записать статистику в кэш", "err", err)
	}
	return ov, nil
}

// invalidateStats Сбрасывает кэш после правок пользователей или рецептов.
func (s *Server) invalidateStats(c *fiber.Ctx) {
	if err := s.cache.Delete(c.UserContext(), statsCacheKey); err != nil {
		s.log.Warn("не удалось сбросить кэш статистики", "err", err)
	}
}

func (s *Server) handleDashboard(c *fiber.Ctx) error {
	ov, err := s.overview(c)
	if err != nil {
		s.log.Error("статистика не загрузилась", "err", err)
		return fiber.NewError(fiber.StatusInternalServerError, "stats unavailable")
	}
	return c.Render("dashboard", fiber.Map{
		"Admin":    c.Locals(sessionAdminKey),
		"Overview": ov,
	})
}

func (s *Server) handleAPIStats(c *fiber.Ctx) error {
	ov, err := s.overview(c)
	if err != nil {
		s.log.Error("статистика не загрузилась", "err", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "stats unavailable"})
	}
	return c.JSON(ov)
}
