package repository

import (
	"time"

	"github.com/Kauan-Sabino/almoxarifado-api/internal/domain/entity"
)

// MovementFilter filtros opcionales para listar movimientos.
type MovementFilter struct {
	ProductID string
	UserID    string
	Type      string
	From      *time.Time
	To        *time.Time
}

// MovementRepository define el puerto de persistencia para movimientos de stock.
type MovementRepository interface {
	Create(movement *entity.Movement) error
	GetByID(id string) (*entity.Movement, error)
	// GetForUpdate bloquea la fila del movimiento dentro de una transacción
	// (correcciones concurrentes del mismo movimiento se serializan).
	GetForUpdate(id string) (*entity.Movement, error)
	Update(movement *entity.Movement) error
	Delete(id string) error
	List(filter MovementFilter, limit, offset int) ([]*entity.Movement, error)
}
