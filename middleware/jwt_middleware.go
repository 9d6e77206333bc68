package middleware

import (
	"facility-desk-backend/config"
	"facility-desk-backend/models"
	apimodels "facility-desk-backend/models/api"

	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

func AuthorizationRequired() fiber.Handler {
	return jwtware.New(jwtware.Config{
		Claims: jwt.MapClaims{},
		// браузерный websocket не умеет передавать заголовок
		TokenLookup: "header:Authorization,query:token",
		// при своем TokenLookup схема по умолчанию не подставляется
		AuthScheme: "Bearer",
		SigningKey: jwtware.SigningKey{
			JWTAlg: "HS256",
			Key:    []byte(config.Conf.Auth.JWTSecret),
		},
		ErrorHandler: func(ctx *fiber.Ctx, err error) error {
			return ctx.Status(fiber.StatusUnauthorized).
				JSON(apimodels.NewErrorWithCode(string(models.KindUnauthenticated), "требуется авторизация"))
		},
	})
}
