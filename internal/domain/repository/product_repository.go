package repository

import "github.com/Kauan-Sabino/almoxarifado-api/internal/domain/entity"

// ProductRepository define el puerto de persistencia para Product (DIP).
// UpdateQuantity es el único mutador de stock y lo invoca exclusivamente el motor
// de movimientos; no se expone incremento/decremento para mantener la aritmética
// centralizada y auditable.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	// GetForUpdate bloquea la fila del producto (SELECT FOR UPDATE) para
	// serializar operaciones concurrentes sobre el mismo producto.
	GetForUpdate(id string) (*entity.Product, error)
	// Update modifica atributos descriptivos (nombre, descripción, mínimo).
	// Nunca toca Quantity.
	Update(product *entity.Product) error
	// UpdateQuantity fija Quantity en el valor dado y refresca updated_at.
	UpdateQuantity(id string, quantity int64) error
	List(limit, offset int) ([]*entity.Product, error)
	Delete(id string) error
}
