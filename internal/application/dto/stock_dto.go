package dto

import (
	"time"

	"github.com/Kauan-Sabino/almoxarifado-api/internal/domain/stock"
)

// CreateMovementRequest body para POST /api/movements.
type CreateMovementRequest struct {
	ProductID string     `json:"product_id" validate:"required,uuid"`
	UserID    string     `json:"user_id" validate:"required,uuid"`
	Quantity  int64      `json:"quantity" validate:"required,gt=0"`
	Type      string     `json:"type" validate:"required,oneof=entry exit"`
	Date      *time.Time `json:"date,omitempty"`
}

// CorrectMovementRequest body parcial para PATCH /api/movements/:id.
// Los campos ausentes conservan el valor almacenado.
type CorrectMovementRequest struct {
	Quantity *int64     `json:"quantity,omitempty" validate:"omitempty,gt=0"`
	Type     *string    `json:"type,omitempty" validate:"omitempty,oneof=entry exit"`
	Date     *time.Time `json:"date,omitempty"`
	UserID   *string    `json:"user_id,omitempty" validate:"omitempty,uuid"`
}

// MovementResponse representación de un movimiento en respuestas.
type MovementResponse struct {
	ID        string    `json:"id"`
	ProductID string    `json:"product_id"`
	Quantity  int64     `json:"quantity"`
	Type      string    `json:"type"`
	Date      time.Time `json:"date"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// MovementResultResponse respuesta de Apply/Correct: movimiento, producto
// actualizado y alerta de stock bajo (null si no aplica).
type MovementResultResponse struct {
	Data    MovementResponse `json:"data"`
	Product ProductResponse  `json:"product"`
	Alert   *stock.Alert     `json:"alert"`
}

// ReverseResultResponse respuesta de DELETE /api/movements/:id.
type ReverseResultResponse struct {
	Message string          `json:"message"`
	Product ProductResponse `json:"product"`
}

// MovementListResponse listado paginado de movimientos.
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
