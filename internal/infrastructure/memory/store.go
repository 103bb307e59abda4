// Package memory implementa los repositorios del ledger en memoria.
// Respeta la misma semántica que PostgreSQL: las escrituras de una transacción quedan
// en un buffer hasta el commit y cada producto leído con GetForUpdate queda bloqueado
// hasta que la transacción termina.
package memory

import (
	"errors"
	"sort"
	"sync"

	"github.com/fanfanvithon/ProPymeTransparente/internal/domain"
	"github.com/fanfanvithon/ProPymeTransparente/internal/domain/entity"
	"github.com/fanfanvithon/ProPymeTransparente/internal/domain/repository"
)

var errStockCheck = errors.New(`violates check constraint "productos_stock_check"`)

// Store guarda las cuatro tablas del ledger.
type Store struct {
	mu        sync.RWMutex
	products  map[string]entity.Product
	movements []entity.CashMovement
	sales     []entity.Sale
	purchases []entity.Purchase
	leases    *leaseTable
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{
		products: make(map[string]entity.Product),
		leases:   newLeaseTable(),
	}
}

var _ repository.Tx = (*session)(nil)

// session entrega repositorios; tx nil significa autocommit.
type session struct {
	s  *Store
	tx *txState
}

func (ss session) Products() repository.ProductRepository {
	return &productRepo{s: ss.s, tx: ss.tx}
}

func (ss session) CashMovements() repository.CashMovementRepository {
	return &cashMovementRepo{s: ss.s, tx: ss.tx}
}

func (ss session) Sales() repository.SaleRepository {
	return &saleRepo{s: ss.s, tx: ss.tx}
}

func (ss session) Purchases() repository.PurchaseRepository {
	return &purchaseRepo{s: ss.s, tx: ss.tx}
}

// Products devuelve el repositorio fuera de transacción.
func (s *Store) Products() repository.ProductRepository { return session{s: s}.Products() }

// CashMovements devuelve el repositorio fuera de transacción.
func (s *Store) CashMovements() repository.CashMovementRepository {
	return session{s: s}.CashMovements()
}

// Sales devuelve el repositorio fuera de transacción.
func (s *Store) Sales() repository.SaleRepository { return session{s: s}.Sales() }

// Purchases devuelve el repositorio fuera de transacción.
func (s *Store) Purchases() repository.PurchaseRepository { return session{s: s}.Purchases() }

// lookupProduct resuelve un producto viendo las escrituras pendientes de tx. Requiere s.mu tomado.
func (s *Store) lookupProduct(tx *txState, id string) (entity.Product, bool) {
	var (
		p     entity.Product
		found bool
	)
	if tx != nil {
		for _, created := range tx.products {
			if created.ID == id {
				p, found = created, true
				break
			}
		}
	}
	if !found {
		p, found = s.products[id]
	}
	if found && tx != nil {
		if stock, ok := tx.stock[id]; ok {
			p.Stock = stock
		}
	}
	return p, found
}

// commit aplica el buffer de tx de forma atómica.
func (s *Store) commit(tx *txState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range tx.products {
		if _, exists := s.products[p.ID]; exists {
			return domain.NewStorageError("insert producto", domain.ErrConflict)
		}
	}
	for _, p := range tx.products {
		s.products[p.ID] = p
	}
	for id, stock := range tx.stock {
		p, ok := s.products[id]
		if !ok {
			continue
		}
		p.Stock = stock
		s.products[id] = p
	}
	s.movements = append(s.movements, tx.movements...)
	s.sales = append(s.sales, tx.sales...)
	s.purchases = append(s.purchases, tx.purchases...)
	return nil
}

func sortByName(products []*entity.Product) {
	sort.SliceStable(products, func(i, j int) bool {
		return products[i].Name < products[j].Name
	})
}
