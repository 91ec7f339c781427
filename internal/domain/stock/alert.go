// Package stock contiene servicios de dominio puros del inventario.
package stock

// Alert es el aviso de stock bajo derivado tras una mutación exitosa.
type Alert struct {
	Message string `json:"message"`
	Current int64  `json:"current"`
	Minimum int64  `json:"minimum"`
}

// CheckLevel deriva la alerta de stock bajo comparando la cantidad resultante con
// el mínimo configurado. Función pura: sin efectos secundarios ni persistencia.
// Devuelve nil cuando la cantidad está en o por encima del mínimo.
func CheckLevel(quantity, minimumStock int64) *Alert {
	if quantity >= minimumStock {
		return nil
	}
	return &Alert{
		Message: "stock por debajo del mínimo configurado",
		Current: quantity,
		Minimum: minimumStock,
	}
}
