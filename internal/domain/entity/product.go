package entity

import "time"

// Product representa un producto del almacén. Quantity es la única fuente de verdad
// del stock disponible y solo la modifica el motor de movimientos (vía UpdateQuantity).
type Product struct {
	ID           string
	Name         string
	Description  string
	Quantity     int64 // stock actual, nunca negativo
	MinimumStock int64 // umbral para la alerta de stock bajo
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
