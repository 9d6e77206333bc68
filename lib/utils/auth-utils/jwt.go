package authutils

import (
	"facility-desk-backend/config"
	"facility-desk-backend/models"
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
)

// GetToken токены выпускает внешний сервис, используется для тестов и отладки
func GetToken(userID uint, name string, role models.UserRole) (tokenString string, err error) {
	claims := jwt.MapClaims{
		"name": name,
		"sub":  strconv.FormatUint(uint64(userID), 10),
		"role": string(role),
		"exp":  time.Now().Add(time.Second * time.Duration(config.Conf.Auth.JWTExpireInSec)).Unix(),
		"iat":  time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(config.Conf.Auth.JWTSecret))
}

func GetClaims(ctx *fiber.Ctx) jwt.MapClaims {
	token, ok := ctx.Locals("user").(*jwt.Token)
	if !ok {
		return jwt.MapClaims{}
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return jwt.MapClaims{}
	}
	return claims
}

// SubjectID id пользователя из claim sub
func SubjectID(claims jwt.MapClaims) (uint, error) {
	sub, exist := claims["sub"]
	if !exist {
		return 0, errors.New("в токене отсутствует sub")
	}
	var raw string
	switch v := sub.(type) {
	case string:
		raw = v
	case float64:
		raw = fmt.Sprintf("%.0f", v)
	default:
		return 0, errors.Errorf("некорректный sub: %v", sub)
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, errors.Errorf("некорректный sub: %v", sub)
	}
	return uint(id), nil
}
