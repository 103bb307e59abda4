package usecase

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/fanfanvithon/ProPymeTransparente/internal/application/dto"
	"github.com/fanfanvithon/ProPymeTransparente/internal/domain"
	"github.com/fanfanvithon/ProPymeTransparente/internal/domain/entity"
	"github.com/fanfanvithon/ProPymeTransparente/internal/domain/repository"
	"github.com/fanfanvithon/ProPymeTransparente/pkg/logger"
)

// ProductUseCase alta de productos. El stock posterior se maneja vía ventas y compras.
type ProductUseCase struct {
	repo repository.ProductRepository
	log  *logger.Logger
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, log *logger.Logger) *ProductUseCase {
	return &ProductUseCase{repo: repo, log: log}
}

// Create crea un producto con precios netos y stock inicial.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*entity.Product, error) {
	name := strings.TrimSpace(in.Nombre)
	if name == "" {
		return nil, domain.NewValidationError("nombre", "es obligatorio")
	}
	if in.CostoUnitarioNeto == nil || in.CostoUnitarioNeto.IsNegative() {
		return nil, domain.NewValidationError("costo_unitario_neto", "es obligatorio y no puede ser negativo")
	}
	if in.PrecioVentaNeto == nil || in.PrecioVentaNeto.IsNegative() {
		return nil, domain.NewValidationError("precio_venta_neto", "es obligatorio y no puede ser negativo")
	}
	if in.Stock < 0 {
		return nil, domain.NewValidationError("stock", "no puede ser negativo")
	}

	product := &entity.Product{
		ID:           uuid.New().String(),
		Name:         name,
		UnitCostNet:  *in.CostoUnitarioNeto,
		SalePriceNet: *in.PrecioVentaNeto,
		Stock:        in.Stock,
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	uc.log.Info().Str("op", "create_product").Str("id", product.ID).Str("nombre", name).Int("stock", product.Stock).
		Msg("producto creado")
	return product, nil
}

// GetByID obtiene un producto por ID; ErrNotFound si no existe.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return product, nil
}
