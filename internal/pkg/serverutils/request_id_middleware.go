package serverutils

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// RequestIDMiddleware tags every request with an id for log correlation.
// An id supplied by the caller is kept so upstream proxies can trace through.
func RequestIDMiddleware(ctx *fiber.Ctx) error {
	id := ctx.Get("X-Request-Id")
	if id == "" {
		id = uuid.NewString()
	}
	ctx.Locals("request_id", id)
	ctx.Set("X-Request-Id", id)
	return ctx.Next()
}
