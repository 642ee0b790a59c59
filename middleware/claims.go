package middleware

import (
	authutils "smarthire-backend/lib/utils/auth-utils"
	"smarthire-backend/models"

	"github.com/gofiber/fiber/v2"
)

func GetUserID(ctx *fiber.Ctx) string {
	return GetActor(ctx).ID
}

func GetUserName(ctx *fiber.Ctx) string {
	return GetActor(ctx).Name
}

func GetUserRole(ctx *fiber.Ctx) models.UserRole {
	return GetActor(ctx).Role
}

// GetActor is the identity of the request, taken from the verified token.
func GetActor(ctx *fiber.Ctx) models.Actor {
	return authutils.Actor(authutils.GetClaims(ctx))
}
