package serverutils

import (
	"direct-chat-be/internal/pkg/identity"

	"github.com/gofiber/fiber/v2"
)

// AuthMiddleware resolves the bearer credential through the identity verifier
// and stashes the caller's user id in Locals for downstream handlers.
func AuthMiddleware(verifier identity.Verifier) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		authHeader := ctx.Get("Authorization")
		if len(authHeader) < 7 || authHeader[:7] != "Bearer " {
			return ctx.Status(fiber.StatusUnauthorized).
				JSON(ErrorResponseWithKind(fiber.StatusUnauthorized, string(KindUnauthorized), "Missing token"))
		}
		tokenStr := authHeader[7:]

		userId, err := verifier.Verify(tokenStr)
		if err != nil {
			return ctx.Status(fiber.StatusUnauthorized).
				JSON(ErrorResponseWithKind(fiber.StatusUnauthorized, string(KindUnauthorized), "Invalid token"))
		}

		ctx.Locals("user_id", userId.String())
		return ctx.Next()
	}
}
