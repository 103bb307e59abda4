package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/fanfanvithon/ProPymeTransparente/internal/domain"
	"github.com/fanfanvithon/ProPymeTransparente/internal/domain/entity"
	"github.com/fanfanvithon/ProPymeTransparente/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `id, nombre, costo_unitario_neto, precio_venta_neto, stock`

// Create persiste un nuevo producto; asigna ID si viene vacío.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	query := `
		INSERT INTO productos (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(ctx, query, p.ID, p.Name, p.UnitCostNet, p.SalePriceNet, p.Stock)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.NewStorageError("insert producto", domain.ErrConflict)
		}
		return domain.NewStorageError("insert producto", err)
	}
	return nil
}

// GetByID obtiene un producto por ID; (nil, nil) si no existe.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	return r.get(ctx, `SELECT `+productColumns+` FROM productos WHERE id = $1`, id)
}

// GetForUpdate obtiene el producto y bloquea la fila hasta el fin de la tx (SELECT FOR UPDATE).
func (r *ProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.get(ctx, `SELECT `+productColumns+` FROM productos WHERE id = $1 FOR UPDATE`, id)
}

func (r *ProductRepo) get(ctx context.Context, query, id string) (*entity.Product, error) {
	// un id que no es UUID no existe; consultarlo abortaría la tx en curso
	if uuid.Validate(id) != nil {
		return nil, nil
	}
	var p entity.Product
	err := r.q.QueryRow(ctx, query, id).Scan(&p.ID, &p.Name, &p.UnitCostNet, &p.SalePriceNet, &p.Stock)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, domain.NewStorageError("get producto", err)
	}
	return &p, nil
}

// UpdateStock fija el stock absoluto; la restricción CHECK impide valores negativos.
func (r *ProductRepo) UpdateStock(ctx context.Context, id string, stock int) error {
	tag, err := r.q.Exec(ctx, `UPDATE productos SET stock = $2 WHERE id = $1`, id, stock)
	if err != nil {
		if isInvalidText(err) {
			return domain.ErrNotFound
		}
		return domain.NewStorageError("update stock", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List devuelve el catálogo ordenado por nombre.
func (r *ProductRepo) List(ctx context.Context) ([]*entity.Product, error) {
	rows, err := r.q.Query(ctx, `SELECT `+productColumns+` FROM productos ORDER BY nombre`)
	if err != nil {
		return nil, domain.NewStorageError("list productos", err)
	}
	defer rows.Close()

	out := make([]*entity.Product, 0)
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.UnitCostNet, &p.SalePriceNet, &p.Stock); err != nil {
			return nil, domain.NewStorageError("scan producto", err)
		}
		out = append(out, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.NewStorageError("list productos", err)
	}
	return out, nil
}
