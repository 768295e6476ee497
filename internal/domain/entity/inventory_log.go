package entity

import "time"

// InventoryLog representa una transición de stock en el kardex (append-only).
// Se crea exactamente una vez, solo cuando una actualización cambia el stock;
// nunca se modifica ni se borra. ProductID es referencia débil: el registro
// sobrevive independiente del catálogo una vez escrito.
type InventoryLog struct {
	ID        int64
	ProductID int64
	OldStock  int
	NewStock  int
	ChangedBy string // etiqueta del actor, sin verificación de identidad
	Timestamp time.Time
}
