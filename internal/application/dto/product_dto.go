package dto

import "time"

// CreateProductRequest body para POST /api/products. Quantity es el stock
// inicial; a partir de ahí solo cambia vía movimientos.
type CreateProductRequest struct {
	Name         string `json:"name" validate:"required,max=120"`
	Description  string `json:"description" validate:"required,max=500"`
	Quantity     int64  `json:"quantity" validate:"min=0"`
	MinimumStock int64  `json:"minimum_stock" validate:"min=0"`
}

// UpdateProductRequest body para PUT /api/products/:id. No permite modificar
// Quantity: el stock se maneja exclusivamente vía movimientos.
type UpdateProductRequest struct {
	Name         *string `json:"name,omitempty" validate:"omitempty,max=120"`
	Description  *string `json:"description,omitempty" validate:"omitempty,max=500"`
	MinimumStock *int64  `json:"minimum_stock,omitempty" validate:"omitempty,min=0"`
}

// ProductResponse representación de un producto en respuestas.
type ProductResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	Quantity     int64     `json:"quantity"`
	MinimumStock int64     `json:"minimum_stock"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ProductListResponse listado paginado de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
