package middleware

import (
	"facility-desk-backend/lib/rbac"
	"facility-desk-backend/models"
	apimodels "facility-desk-backend/models/api"

	"github.com/gofiber/fiber/v2"
)

func RbacMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		caller := GetCaller(ctx)
		if caller.UserID == 0 || caller.Role == "" {
			return forbidden(ctx)
		}
		handler, found := rbac.Instance.GetRuleFunc(ctx.Method(), ctx.Path())
		if !found {
			return ctx.Next()
		}
		if !handler(caller.UserID, caller.Role, ctx.Path()) {
			return forbidden(ctx)
		}
		return ctx.Next()
	}
}

func forbidden(ctx *fiber.Ctx) error {
	return ctx.Status(fiber.StatusForbidden).
		JSON(apimodels.NewErrorWithCode(string(models.KindForbidden), "операция недоступна"))
}
