package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/jhoicas/Kardex-api/internal/application/usecase"
	"github.com/jhoicas/Kardex-api/internal/domain"
	"github.com/jhoicas/Kardex-api/internal/domain/entity"
	"github.com/jhoicas/Kardex-api/internal/domain/repository"
)

// Store almacenamiento en memoria con la misma semántica que el adaptador
// PostgreSQL: ids autoincrementales, unicidad case-insensitive del nombre,
// stock nunca negativo y transacciones con rollback (por snapshot).
// Se usa en tests y como modo de desarrollo sin base de datos.
type Store struct {
	mu            sync.RWMutex
	nextProductID int64
	nextLogID     int64
	products      map[int64]entity.Product
	logs          []entity.InventoryLog
}

// NewStore construye el almacenamiento vacío.
func NewStore() *Store {
	return &Store{
		nextProductID: 1,
		nextLogID:     1,
		products:      make(map[int64]entity.Product),
	}
}

// Products devuelve la vista repositorio de productos (con locking propio).
func (s *Store) Products() repository.ProductRepository {
	return &productView{s: s, locked: false}
}

// Logs devuelve la vista repositorio del kardex (con locking propio).
func (s *Store) Logs() repository.InventoryLogRepository {
	return &logView{s: s, locked: false}
}

var _ usecase.TxRunner = (*Store)(nil)

// Run emula la transacción del adaptador PostgreSQL: toma el lock de
// escritura, saca un snapshot y lo restaura si fn devuelve error, de modo
// que una escritura parcial nunca queda visible.
func (s *Store) Run(ctx context.Context, fn func(
	products repository.ProductRepository,
	logs repository.InventoryLogRepository,
) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapProducts := make(map[int64]entity.Product, len(s.products))
	for id, p := range s.products {
		snapProducts[id] = p
	}
	snapLogs := append([]entity.InventoryLog(nil), s.logs...)
	snapNextProductID, snapNextLogID := s.nextProductID, s.nextLogID

	err := fn(&productView{s: s, locked: true}, &logView{s: s, locked: true})
	if err != nil {
		s.products = snapProducts
		s.logs = snapLogs
		s.nextProductID, s.nextLogID = snapNextProductID, snapNextLogID
		return err
	}
	return nil
}

// productView implementa ProductRepository; locked indica que el caller
// (Run) ya sostiene el lock de escritura.
type productView struct {
	s      *Store
	locked bool
}

var _ repository.ProductRepository = (*productView)(nil)

func (v *productView) rlock() {
	if !v.locked {
		v.s.mu.RLock()
	}
}
func (v *productView) runlock() {
	if !v.locked {
		v.s.mu.RUnlock()
	}
}
func (v *productView) wlock() {
	if !v.locked {
		v.s.mu.Lock()
	}
}
func (v *productView) wunlock() {
	if !v.locked {
		v.s.mu.Unlock()
	}
}

func (v *productView) Create(product *entity.Product) error {
	v.wlock()
	defer v.wunlock()
	if product.Stock < 0 {
		return domain.ErrInvalidInput
	}
	for _, p := range v.s.products {
		if strings.EqualFold(p.Name, product.Name) {
			return domain.ErrDuplicateName
		}
	}
	product.ID = v.s.nextProductID
	v.s.nextProductID++
	v.s.products[product.ID] = *product
	return nil
}

func (v *productView) GetByID(id int64) (*entity.Product, error) {
	v.rlock()
	defer v.runlock()
	p, ok := v.s.products[id]
	if !ok {
		return nil, nil
	}
	cp := p
	return &cp, nil
}

func (v *productView) GetForUpdate(id int64) (*entity.Product, error) {
	// En memoria el lock de la tx ya serializa; equivale a GetByID.
	return v.GetByID(id)
}

func (v *productView) FindByNameCI(name string) (*entity.Product, error) {
	v.rlock()
	defer v.runlock()
	for _, p := range v.s.products {
		if strings.EqualFold(p.Name, name) {
			cp := p
			return &cp, nil
		}
	}
	return nil, nil
}

func (v *productView) SearchByName(query string) ([]*entity.Product, error) {
	v.rlock()
	defer v.runlock()
	q := strings.ToLower(query)
	var list []*entity.Product
	for _, p := range v.s.sortedProducts() {
		if strings.Contains(strings.ToLower(p.Name), q) {
			cp := p
			list = append(list, &cp)
		}
	}
	return list, nil
}

func (v *productView) List() ([]*entity.Product, error) {
	v.rlock()
	defer v.runlock()
	var list []*entity.Product
	for _, p := range v.s.sortedProducts() {
		cp := p
		list = append(list, &cp)
	}
	return list, nil
}

func (v *productView) Update(product *entity.Product) error {
	v.wlock()
	defer v.wunlock()
	if product.Stock < 0 {
		return domain.ErrInvalidInput
	}
	if _, ok := v.s.products[product.ID]; !ok {
		return domain.ErrNotFound
	}
	for id, p := range v.s.products {
		if id != product.ID && strings.EqualFold(p.Name, product.Name) {
			return domain.ErrDuplicateName
		}
	}
	v.s.products[product.ID] = *product
	return nil
}

// sortedProducts itera en orden de id (el orden nativo de inserción).
// El caller debe sostener al menos el lock de lectura.
func (s *Store) sortedProducts() []entity.Product {
	ids := make([]int64, 0, len(s.products))
	for id := range s.products {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	list := make([]entity.Product, 0, len(ids))
	for _, id := range ids {
		list = append(list, s.products[id])
	}
	return list
}

// logView implementa InventoryLogRepository.
type logView struct {
	s      *Store
	locked bool
}

var _ repository.InventoryLogRepository = (*logView)(nil)

func (v *logView) Create(log *entity.InventoryLog) error {
	if !v.locked {
		v.s.mu.Lock()
		defer v.s.mu.Unlock()
	}
	log.ID = v.s.nextLogID
	v.s.nextLogID++
	v.s.logs = append(v.s.logs, *log)
	return nil
}

func (v *logView) ListByProduct(productID int64) ([]*entity.InventoryLog, error) {
	if !v.locked {
		v.s.mu.RLock()
		defer v.s.mu.RUnlock()
	}
	var list []*entity.InventoryLog
	for _, l := range v.s.logs {
		if l.ProductID == productID {
			cp := l
			list = append(list, &cp)
		}
	}
	// Más reciente primero; desempate por id para timestamps iguales
	sort.Slice(list, func(i, j int) bool {
		if list[i].Timestamp.Equal(list[j].Timestamp) {
			return list[i].ID > list[j].ID
		}
		return list[i].Timestamp.After(list[j].Timestamp)
	})
	return list, nil
}
