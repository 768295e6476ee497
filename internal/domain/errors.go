package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("producto no encontrado")
	ErrDuplicateName      = errors.New("ya existe un producto con ese nombre")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrStorageUnavailable = errors.New("almacenamiento no disponible")
)

// IsClientFault indica si el error es responsabilidad del cliente (4xx)
// o del servidor (5xx). La capa HTTP usa esta severidad para mapear el status.
func IsClientFault(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrDuplicateName) ||
		errors.Is(err, ErrInvalidInput)
}
