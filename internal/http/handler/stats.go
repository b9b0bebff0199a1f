package handler

import (
	"github.com/gofiber/fiber/v2"

	"docvault/internal/service"
)

// StatsHandler serves the admin dashboard counters.
type StatsHandler struct {
	stats service.StatsService
}

// NewStatsHandler constructs a new StatsHandler.
func NewStatsHandler(stats service.StatsService) *StatsHandler {
	return &StatsHandler{stats: stats}
}

// Overview returns document/user totals and the trailing-week upload count.
func (h *StatsHandler) Overview(c *fiber.Ctx) error {
	stats, err := h.stats.Overview(c.UserContext())
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(stats)
}
