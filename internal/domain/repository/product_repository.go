package repository

import "github.com/jhoicas/Kardex-api/internal/domain/entity"

// ProductRepository define el puerto de persistencia para Product (DIP).
// GetByID y FindByNameCI devuelven (nil, nil) si no existe.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id int64) (*entity.Product, error)
	// GetForUpdate obtiene el producto bloqueando la fila (SELECT FOR UPDATE).
	// Solo tiene sentido dentro de una transacción.
	GetForUpdate(id int64) (*entity.Product, error)
	// FindByNameCI busca por nombre exacto con comparación case-insensitive.
	FindByNameCI(name string) (*entity.Product, error)
	// SearchByName busca por substring case-insensitive sobre el nombre.
	SearchByName(query string) ([]*entity.Product, error)
	List() ([]*entity.Product, error)
	Update(product *entity.Product) error
}
