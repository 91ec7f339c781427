// Package memory implementa el almacén de registros en memoria: repositorios y
// TxRunner con rollback por snapshot. Se inyecta en lugar del adaptador
// PostgreSQL en pruebas (sin singleton global de conexión).
package memory

import (
	"context"
	"sync"

	"github.com/Kauan-Sabino/almoxarifado-api/internal/application/stock"
	"github.com/Kauan-Sabino/almoxarifado-api/internal/domain"
	"github.com/Kauan-Sabino/almoxarifado-api/internal/domain/entity"
	"github.com/Kauan-Sabino/almoxarifado-api/internal/domain/repository"
)

var _ stock.TxRunner = (*Store)(nil)

// Store almacén en memoria. Las transacciones se serializan con txMu (el
// equivalente al bloqueo de fila del adaptador real) y hacen rollback
// restaurando un snapshot de ambos mapas si la unidad de trabajo falla.
type Store struct {
	txMu sync.Mutex
	mu   sync.RWMutex

	products  map[string]entity.Product
	movements map[string]entity.Movement

	// Ganchos de inyección de fallos para pruebas de atomicidad: si no son nil,
	// la operación correspondiente falla con ese error.
	FailUpdateQuantity error
	FailCreateMovement error
	FailUpdateMovement error
	FailDeleteMovement error
}

// NewStore construye un almacén vacío.
func NewStore() *Store {
	return &Store{
		products:  make(map[string]entity.Product),
		movements: make(map[string]entity.Movement),
	}
}

// Run ejecuta fn como unidad atómica: toma un snapshot de productos y
// movimientos y lo restaura si fn devuelve error, de modo que ninguna escritura
// parcial quede observable.
func (s *Store) Run(ctx context.Context, fn func(
	movRepo repository.MovementRepository,
	productRepo repository.ProductRepository,
) error) error {
	if err := ctx.Err(); err != nil {
		return domain.ErrStorageUnavailable
	}
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.Lock()
	prodSnap := make(map[string]entity.Product, len(s.products))
	for k, v := range s.products {
		prodSnap[k] = v
	}
	movSnap := make(map[string]entity.Movement, len(s.movements))
	for k, v := range s.movements {
		movSnap[k] = v
	}
	s.mu.Unlock()

	if err := fn(s.MovementRepo(), s.ProductRepo()); err != nil {
		s.mu.Lock()
		s.products = prodSnap
		s.movements = movSnap
		s.mu.Unlock()
		return err
	}
	return nil
}

// ProductRepo devuelve el repositorio de productos atado a este almacén.
func (s *Store) ProductRepo() repository.ProductRepository {
	return &productRepo{s: s}
}

// MovementRepo devuelve el repositorio de movimientos atado a este almacén.
func (s *Store) MovementRepo() repository.MovementRepository {
	return &movementRepo{s: s}
}

// SeedProduct inserta o reemplaza un producto directamente (solo para pruebas).
func (s *Store) SeedProduct(p entity.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products[p.ID] = p
}

// SeedMovement inserta o reemplaza un movimiento directamente (solo para pruebas).
func (s *Store) SeedMovement(m entity.Movement) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.movements[m.ID] = m
}

// MovementCount devuelve la cantidad de movimientos almacenados.
func (s *Store) MovementCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.movements)
}
