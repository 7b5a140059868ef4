package middleware

import (
	"fmt"
	"runtime/debug"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"notedelta/pkg/logger"
)

// NewRecoveryMiddleware создает промежуточное ПО, перехватывающее панику
// в обработчиках и возвращающее клиенту ответ 500.
func NewRecoveryMiddleware() fiber.Handler {
	return func(ctx fiber.Ctx) error {
		defer func() {
			if r := recover(); r != nil {
				requestCtx := ctx.Context()
				logger.Log(requestCtx).Error(requestCtx, "Panic recovered",
					zap.String("panic", fmt.Sprintf("%v", r)),
					zap.String("path", ctx.Path()),
					zap.String("method", ctx.Method()),
					zap.String("stack", string(debug.Stack())),
				)

				if err := ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"error": "Internal Server Error",
				}); err != nil {
					logger.Log(requestCtx).Error(requestCtx, "Failed to send error response after panic", zap.Error(err))
				}
			}
		}()

		return ctx.Next()
	}
}
