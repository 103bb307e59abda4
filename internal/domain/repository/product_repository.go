package repository

import (
	"context"

	"github.com/fanfanvithon/ProPymeTransparente/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// GetByID y GetForUpdate devuelven (nil, nil) si el producto no existe.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	// GetForUpdate bloquea la fila hasta el fin de la transacción (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, id string) (*entity.Product, error)
	UpdateStock(ctx context.Context, id string, stock int) error
	// List devuelve el catálogo ordenado por nombre.
	List(ctx context.Context) ([]*entity.Product, error)
}
