package entity

import "time"

// Tipos de movimiento de stock.
const (
	MovementTypeEntry = "entry" // entrada
	MovementTypeExit  = "exit"  // salida
)

// ValidMovementType indica si el tipo es uno de los reconocidos.
func ValidMovementType(t string) bool {
	return t == MovementTypeEntry || t == MovementTypeExit
}

// Movement representa un hecho histórico: "la cantidad Q del producto P se movió
// en dirección Type en la fecha Date, atribuida al actor UserID". Inmutable salvo
// por la corrección explícita del motor; se elimina solo al revertir.
type Movement struct {
	ID        string
	ProductID string
	Quantity  int64 // magnitud, siempre > 0
	Type      string
	Date      time.Time // fecha de negocio, puede ser retroactiva
	UserID    string
	CreatedAt time.Time
}

// Delta devuelve el efecto con signo del movimiento sobre el stock del producto:
// +Quantity para entrada, -Quantity para salida.
func (m *Movement) Delta() int64 {
	if m.Type == MovementTypeExit {
		return -m.Quantity
	}
	return m.Quantity
}
