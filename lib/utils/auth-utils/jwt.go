package authutils

import (
	"smarthire-backend/config"
	"smarthire-backend/models"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
)

func GetToken(userID, name string, role models.UserRole) (tokenString string, err error) {
	return SignToken([]byte(config.Conf.Auth.JWTSecret), time.Second*time.Duration(config.Conf.Auth.JWTExpireInSec), userID, name, role)
}

func SignToken(secret []byte, ttl time.Duration, userID, name string, role models.UserRole) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"name": name,
		"sub":  userID,
		"role": string(role),
		"exp":  now.Add(ttl).Unix(),
		"iat":  now.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// ParseToken verifies an HS256 token and returns its claims.
func ParseToken(secret []byte, tokenString string) (jwt.MapClaims, error) {
	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, errors.Wrap(err, "invalid token")
	}
	return claims, nil
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

// Actor builds the acting identity from token claims.
func Actor(claims jwt.MapClaims) models.Actor {
	return models.Actor{
		ID:   stringClaim(claims, "sub"),
		Name: stringClaim(claims, "name"),
		Role: models.UserRole(stringClaim(claims, "role")),
	}
}

func stringClaim(claims jwt.MapClaims, key string) string {
	if value, ok := claims[key].(string); ok {
		return value
	}
	return ""
}
