package handler

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"docverify/internal/model"
)

// HistoryReader exposes the recorded action history.
type HistoryReader interface {
	All(ctx context.Context) []model.HistoryEntry
}

// ListHistory returns every history entry in the order it was recorded.
//
// @Summary Action history
// @Tags history
// @Produce json
// @Success 200 {object} map[string][]model.HistoryEntry
// @Router /history [get]
func ListHistory(h HistoryReader) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"data": h.All(c.UserContext())})
	}
}
