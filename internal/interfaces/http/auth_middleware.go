package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/fanfanvithon/ProPymeTransparente/internal/application/dto"
	"github.com/fanfanvithon/ProPymeTransparente/pkg/jwt"
)

// Locals keys para operador y rol en Fiber.
const (
	LocalOperator = "operator"
	LocalRole     = "role"
)

// Roles reconocidos en el token.
const (
	RoleAdmin   = "admin"
	RoleCashier = "cajero"
	RoleReader  = "lectura"
)

// AuthMiddleware valida el Bearer Token JWT y deja operador y rol en c.Locals.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"})
		}
		operator, role, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		if role == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_ROLE", Message: "el token no incluye rol"})
		}
		c.Locals(LocalOperator, operator)
		c.Locals(LocalRole, role)
		return c.Next()
	}
}

// hasRole indica si el rol del token está entre los permitidos.
func hasRole(c *fiber.Ctx, roles ...string) bool {
	role := GetRole(c)
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}

// GetOperator devuelve el operador del contexto (vacío si la API corre sin JWT).
func GetOperator(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalOperator).(string)
	return s
}

// GetRole devuelve el rol del contexto.
func GetRole(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalRole).(string)
	return s
}
