package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/fanfanvithon/ProPymeTransparente/internal/domain"
)

// Router registra el endpoint de acciones en /api y su alias /api.php.
// Con JWTSecret vacío la API queda abierta.
func Router(app *fiber.App, deps RouterDeps) {
	h := NewActionHandler(deps)

	handlers := make([]fiber.Handler, 0, 2)
	if deps.JWTSecret != "" {
		handlers = append(handlers, AuthMiddleware(deps.JWTSecret))
	}
	handlers = append(handlers, h.Handle)

	for _, path := range []string{"/api", "/api.php"} {
		app.Get(path, handlers...)
		app.Post(path, handlers...)
	}
}

// errBody marca un cuerpo JSON que no calza con la acción como entrada inválida.
func errBody(err error) error {
	return domain.NewValidationError("", fmt.Sprintf("cuerpo JSON inválido: %v", err))
}
