package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrProductNotFound    = errors.New("producto no encontrado")
	ErrMovementNotFound   = errors.New("movimiento no encontrado")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrStorageUnavailable = errors.New("almacenamiento no disponible")
	ErrConflict           = errors.New("conflicto con el estado actual")
)
