package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/fanfanvithon/ProPymeTransparente/internal/application/dto"
	"github.com/fanfanvithon/ProPymeTransparente/internal/domain"
)

const (
	msgInvalidAction     = "Acción no válida o método de solicitud no permitido."
	msgInvalidBody       = "Cuerpo JSON inválido."
	msgInsufficientStock = "Stock insuficiente para el producto."
)

// statusFor traduce un error de dominio a status HTTP y código.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest, "VALIDATION"
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, domain.ErrInsufficientStock):
		return fiber.StatusConflict, "INSUFFICIENT_STOCK"
	case errors.Is(err, domain.ErrConflict):
		return fiber.StatusConflict, "CONFLICT"
	default:
		return fiber.StatusInternalServerError, "INTERNAL"
	}
}

// publicMessage evita exponer detalles del driver en fallos de almacenamiento.
func publicMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return err.Error()
	case errors.Is(err, domain.ErrNotFound):
		return "producto no encontrado"
	case errors.Is(err, domain.ErrInsufficientStock):
		return domain.ErrInsufficientStock.Error()
	case errors.Is(err, domain.ErrConflict):
		return domain.ErrConflict.Error()
	default:
		return domain.ErrStorage.Error()
	}
}

// writeFailure responde {success:false} con el prefijo de la acción.
func writeFailure(c *fiber.Ctx, prefix string, err error) error {
	status, _ := statusFor(err)
	msg := prefix + ": " + publicMessage(err)
	if errors.Is(err, domain.ErrInsufficientStock) {
		msg = msgInsufficientStock
	}
	return c.Status(status).JSON(dto.ActionResponse{Success: false, Message: msg})
}

// readFailure responde {success:false, code, message} en lecturas y exportaciones.
func readFailure(c *fiber.Ctx, err error) error {
	status, code := statusFor(err)
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: publicMessage(err)})
}
