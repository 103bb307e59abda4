package repository

// Tx agrupa los repositorios atados a una misma transacción.
// Todo lo escrito a través de ellos se confirma o se descarta junto.
type Tx interface {
	Products() ProductRepository
	CashMovements() CashMovementRepository
	Sales() SaleRepository
	Purchases() PurchaseRepository
}
