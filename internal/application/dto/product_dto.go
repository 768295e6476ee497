package dto

import "time"

// UpdateProductRequest entrada para actualizar un producto. La actualización
// es de registro completo: cada llamada trae todos los atributos editables
// (no hay actualización parcial en este diseño).
type UpdateProductRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=200"`
	Unit     string `json:"unit"`
	Category string `json:"category"`
	Brand    string `json:"brand"`
	Stock    int    `json:"stock" validate:"min=0"`
	Status   string `json:"status"`
	Image    string `json:"image"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Unit     string `json:"unit"`
	Category string `json:"category"`
	Brand    string `json:"brand"`
	Stock    int    `json:"stock"`
	Status   string `json:"status"`
	Image    string `json:"image"`
}

// ProductListResponse lista de productos con el total de resultados.
type ProductListResponse struct {
	Results  int               `json:"results"`
	Products []ProductResponse `json:"products"`
}

// InventoryLogResponse una transición de stock del kardex.
type InventoryLogResponse struct {
	ID        int64     `json:"id"`
	ProductID int64     `json:"product_id"`
	OldStock  int       `json:"old_stock"`
	NewStock  int       `json:"new_stock"`
	ChangedBy string    `json:"changed_by"`
	Timestamp time.Time `json:"timestamp"`
}

// HistoryResponse historia de cambios de stock, más reciente primero.
type HistoryResponse struct {
	Results int                    `json:"results"`
	History []InventoryLogResponse `json:"history"`
}
