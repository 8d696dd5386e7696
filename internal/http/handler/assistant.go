package handler

import (
	"github.com/gofiber/fiber/v2"

	"docverify/internal/assistant"
)

type assistantRequest struct {
	Message string `json:"message" form:"message"`
}

// AssistantReply answers a help question.
//
// @Summary Ask the help assistant
// @Tags assistant
// @Accept json
// @Produce json
// @Param body body assistantRequest true "question"
// @Success 200 {object} assistant.Reply
// @Router /assistant [post]
func AssistantReply(r assistant.Responder) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req assistantRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		reply, err := r.Reply(c.UserContext(), req.Message)
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(reply)
	}
}

// AssistantTopics returns the greeting and quick options.
//
// @Summary Assistant greeting and topics
// @Tags assistant
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /assistant [get]
func AssistantTopics(r assistant.Responder) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"greeting": assistant.Greeting, "topics": r.Topics()})
	}
}
