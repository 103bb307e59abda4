package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// ErrorResponse cuerpo de error HTTP para lecturas, exportaciones y autenticación.
// Success siempre viaja en false para que el cliente lo trate igual que ActionResponse.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ActionResponse cuerpo de respuesta de las acciones de escritura.
type ActionResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	ID      string `json:"id,omitempty"`
}

// Flag acepta true/false, 1/0 y sus versiones en texto, como envía el formulario web.
type Flag bool

func (f *Flag) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = false
		return nil
	}
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch v := raw.(type) {
	case bool:
		*f = Flag(v)
	case float64:
		*f = v != 0
	case string:
		s := strings.TrimSpace(strings.ToLower(v))
		if s == "" {
			*f = false
			return nil
		}
		if s == "si" || s == "sí" {
			*f = true
			return nil
		}
		b, err := strconv.ParseBool(s)
		if err != nil {
			return fmt.Errorf("valor booleano inválido %q", v)
		}
		*f = Flag(b)
	default:
		return fmt.Errorf("valor booleano inválido %s", string(data))
	}
	return nil
}
