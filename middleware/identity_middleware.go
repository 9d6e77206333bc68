package middleware

import (
	"facility-desk-backend/controllers"
	"facility-desk-backend/lib/identity"
	authutils "facility-desk-backend/lib/utils/auth-utils"
	"facility-desk-backend/models"
	apimodels "facility-desk-backend/models/api"

	"github.com/gofiber/fiber/v2"
)

const callerKey = "caller"

// IdentityRequired определяет пользователя по проверенному токену
func IdentityRequired() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		caller, err := identity.Instance.Resolve(authutils.GetClaims(ctx))
		if err != nil {
			kind := models.KindOf(err)
			return ctx.Status(controllers.StatusByKind(kind)).
				JSON(apimodels.NewErrorWithCode(string(kind), models.HumanMessage(err)))
		}
		ctx.Locals(callerKey, caller)
		ctx.Locals("userID", caller.UserID)
		return ctx.Next()
	}
}

func GetCaller(ctx *fiber.Ctx) models.Caller {
	caller, _ := ctx.Locals(callerKey).(models.Caller)
	return caller
}
