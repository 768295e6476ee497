package entity

// Product representa un ítem del catálogo.
// El nombre es único bajo comparación case-insensitive (índice sobre LOWER(name)).
// Stock nunca es negativo; solo se modifica vía la actualización auditada del ledger.
type Product struct {
	ID       int64
	Name     string
	Unit     string
	Category string
	Brand    string
	Stock    int
	Status   string // etiqueta informativa del caller, no se deriva del stock
	Image    string
}
