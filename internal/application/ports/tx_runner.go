package ports

import (
	"context"

	"github.com/fanfanvithon/ProPymeTransparente/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción, pasando repositorios atados a esa tx.
// Si fn devuelve error (o entra en pánico) todo lo escrito se descarta; si no, se confirma.
type TxRunner interface {
	Run(ctx context.Context, fn func(tx repository.Tx) error) error
}
