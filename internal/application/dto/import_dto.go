package dto

// ImportRow registro intermedio validado de una fila del CSV de importación.
// La capa de decodificación garantiza name no vacío y stock >= 0 antes de
// que la fila llegue al importador.
type ImportRow struct {
	Name     string `json:"name"`
	Unit     string `json:"unit"`
	Category string `json:"category"`
	Brand    string `json:"brand"`
	Stock    int    `json:"stock"`
	Status   string `json:"status"`
	Image    string `json:"image"`
}

// DuplicateEntry fila saltada por nombre duplicado (case-insensitive).
type DuplicateEntry struct {
	Name       string `json:"name"`
	ExistingID int64  `json:"existingId"`
}

// InvalidRow fila rechazada en la decodificación (no envenena el lote).
type InvalidRow struct {
	Line   int    `json:"line"`
	Reason string `json:"reason"`
}

// ImportResult reporte agregado de una importación masiva.
type ImportResult struct {
	BatchID    string           `json:"batch_id"`
	Added      int              `json:"added"`
	Skipped    int              `json:"skipped"`
	Duplicates []DuplicateEntry `json:"duplicates"`
	Invalid    []InvalidRow     `json:"invalid,omitempty"`
}
