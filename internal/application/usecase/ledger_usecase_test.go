package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Kardex-api/internal/application/dto"
	"github.com/jhoicas/Kardex-api/internal/application/usecase"
	"github.com/jhoicas/Kardex-api/internal/domain"
	"github.com/jhoicas/Kardex-api/internal/domain/entity"
	"github.com/jhoicas/Kardex-api/internal/domain/repository"
	"github.com/jhoicas/Kardex-api/internal/infrastructure/memory"
)

func newLedger(t *testing.T) (*usecase.LedgerUseCase, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	return usecase.NewLedgerUseCase(store, store.Products(), store.Logs()), store
}

func seedProduct(t *testing.T, store *memory.Store, name string, stock int) *entity.Product {
	t.Helper()
	p := &entity.Product{Name: name, Unit: "pcs", Stock: stock, Status: "In Stock"}
	require.NoError(t, store.Products().Create(p))
	return p
}

func fullUpdate(p *entity.Product, stock int) dto.UpdateProductRequest {
	return dto.UpdateProductRequest{
		Name:     p.Name,
		Unit:     p.Unit,
		Category: p.Category,
		Brand:    p.Brand,
		Stock:    stock,
		Status:   p.Status,
		Image:    p.Image,
	}
}

// Actualizar el stock debe devolver el producto actualizado y dejar
// exactamente una entrada en el kardex con la transición old -> new.
func TestUpdate_CambioDeStock_EscribeKardex(t *testing.T) {
	uc, store := newLedger(t)
	pen := seedProduct(t, store, "Pen", 10)

	out, err := uc.Update(context.Background(), pen.ID, "admin", fullUpdate(pen, 3))
	require.NoError(t, err)
	assert.Equal(t, 3, out.Stock, "el producto devuelto debe reflejar el nuevo stock")

	hist, err := uc.History(pen.ID)
	require.NoError(t, err)
	require.Len(t, hist.History, 1, "debe existir exactamente una entrada de kardex")
	assert.Equal(t, 10, hist.History[0].OldStock)
	assert.Equal(t, 3, hist.History[0].NewStock)
	assert.Equal(t, "admin", hist.History[0].ChangedBy)
}

// Una actualización que no cambia el stock (solo otros campos) no debe
// generar entrada de kardex.
func TestUpdate_StockIgual_NoEscribeKardex(t *testing.T) {
	uc, store := newLedger(t)
	pen := seedProduct(t, store, "Pen", 10)

	in := fullUpdate(pen, 10)
	in.Brand = "Bic"
	out, err := uc.Update(context.Background(), pen.ID, "admin", in)
	require.NoError(t, err)
	assert.Equal(t, "Bic", out.Brand)

	hist, err := uc.History(pen.ID)
	require.NoError(t, err)
	assert.Empty(t, hist.History, "un no-op de stock no debe auditar nada")
}

// Renombrar hacia el nombre de OTRO producto (case-insensitive) se rechaza
// atómicamente: el producto queda byte a byte como estaba.
func TestUpdate_NombreDuplicadoCI_Rechazado(t *testing.T) {
	uc, store := newLedger(t)
	seedProduct(t, store, "Pen", 10)
	ink := seedProduct(t, store, "Ink", 5)

	in := fullUpdate(ink, 5)
	in.Name = "PEN"
	_, err := uc.Update(context.Background(), ink.ID, "admin", in)
	require.ErrorIs(t, err, domain.ErrDuplicateName)

	got, err := store.Products().GetByID(ink.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ink", got.Name, "el producto rechazado no debe cambiar")
	assert.Equal(t, 5, got.Stock)
}

// Renombrar un producto a su propio nombre con otra caja está permitido
// (la colisión solo cuenta contra un producto distinto).
func TestUpdate_MismoProductoOtraCaja_Permitido(t *testing.T) {
	uc, store := newLedger(t)
	pen := seedProduct(t, store, "Pen", 10)

	in := fullUpdate(pen, 10)
	in.Name = "PEN"
	out, err := uc.Update(context.Background(), pen.ID, "admin", in)
	require.NoError(t, err)
	assert.Equal(t, "PEN", out.Name)
}

func TestUpdate_ProductoInexistente_NotFound(t *testing.T) {
	uc, _ := newLedger(t)
	_, err := uc.Update(context.Background(), 999, "admin", dto.UpdateProductRequest{Name: "X", Stock: 1})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdate_EntradaInvalida_Rechazada(t *testing.T) {
	uc, store := newLedger(t)
	pen := seedProduct(t, store, "Pen", 10)

	_, err := uc.Update(context.Background(), pen.ID, "admin", fullUpdate(pen, -1))
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "stock negativo debe rechazarse")

	in := fullUpdate(pen, 10)
	in.Name = ""
	_, err = uc.Update(context.Background(), pen.ID, "admin", in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "name vacío debe rechazarse")
}

var errKardexCaido = errors.New("kardex no disponible")

// failingLogs fuerza el fallo del append de auditoría dentro de la tx.
type failingLogs struct {
	repository.InventoryLogRepository
}

func (failingLogs) Create(*entity.InventoryLog) error { return errKardexCaido }

// failingTxRunner envuelve la tx del store inyectando el kardex que falla.
type failingTxRunner struct {
	store *memory.Store
}

func (r failingTxRunner) Run(ctx context.Context, fn func(
	products repository.ProductRepository,
	logs repository.InventoryLogRepository,
) error) error {
	return r.store.Run(ctx, func(
		products repository.ProductRepository,
		logs repository.InventoryLogRepository,
	) error {
		return fn(products, failingLogs{logs})
	})
}

// Si el append de auditoría falla, la transacción completa revierte: la fila
// del catálogo queda exactamente como antes de la llamada.
func TestUpdate_FalloDeKardex_RevierteTodo(t *testing.T) {
	store := memory.NewStore()
	pen := seedProduct(t, store, "Pen", 10)
	uc := usecase.NewLedgerUseCase(failingTxRunner{store: store}, store.Products(), store.Logs())

	in := fullUpdate(pen, 3)
	in.Brand = "Bic"
	_, err := uc.Update(context.Background(), pen.ID, "admin", in)
	require.ErrorIs(t, err, errKardexCaido)

	got, err := store.Products().GetByID(pen.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, got.Stock, "el stock no debe cambiar si la auditoría falló")
	assert.Equal(t, "", got.Brand, "ningún campo debe cambiar si la auditoría falló")

	hist, err := store.Logs().ListByProduct(pen.ID)
	require.NoError(t, err)
	assert.Empty(t, hist, "no debe quedar entrada de kardex de una tx revertida")
}

// La historia sale más reciente primero y reconstruye la secuencia de
// transiciones aplicada al producto.
func TestHistory_OrdenDescendente(t *testing.T) {
	uc, store := newLedger(t)
	pen := seedProduct(t, store, "Pen", 10)

	for _, stock := range []int{7, 4, 9} {
		_, err := uc.Update(context.Background(), pen.ID, "admin", fullUpdate(pen, stock))
		require.NoError(t, err)
	}

	hist, err := uc.History(pen.ID)
	require.NoError(t, err)
	require.Len(t, hist.History, 3)

	// Más reciente primero: 4->9, 7->4, 10->7
	assert.Equal(t, []int{4, 7, 10}, []int{
		hist.History[0].OldStock, hist.History[1].OldStock, hist.History[2].OldStock,
	})
	assert.Equal(t, []int{9, 4, 7}, []int{
		hist.History[0].NewStock, hist.History[1].NewStock, hist.History[2].NewStock,
	})
	for i := 0; i < len(hist.History)-1; i++ {
		assert.False(t, hist.History[i].Timestamp.Before(hist.History[i+1].Timestamp),
			"los timestamps deben ser no crecientes")
	}
}

// La historia no exige que el producto exista: para un id desconocido
// simplemente no hay entradas.
func TestHistory_ProductoDesconocido_Vacia(t *testing.T) {
	uc, _ := newLedger(t)
	hist, err := uc.History(12345)
	require.NoError(t, err)
	assert.Zero(t, hist.Results)
	assert.Empty(t, hist.History)
}

// Búsqueda por substring case-insensitive: "pe" encuentra Pen y Pencil
// pero no Ink (igualdad de conjuntos, el orden no se garantiza).
func TestSearch_SubstringCI(t *testing.T) {
	uc, store := newLedger(t)
	seedProduct(t, store, "Pen", 10)
	seedProduct(t, store, "Pencil", 20)
	seedProduct(t, store, "Ink", 30)

	out, err := uc.Search("pe")
	require.NoError(t, err)

	names := make([]string, 0, len(out.Products))
	for _, p := range out.Products {
		names = append(names, p.Name)
	}
	assert.ElementsMatch(t, []string{"Pen", "Pencil"}, names)
	assert.Equal(t, 2, out.Results)
}

func TestList_CatalogoVacio(t *testing.T) {
	uc, _ := newLedger(t)
	out, err := uc.List()
	require.NoError(t, err)
	assert.Zero(t, out.Results)
	assert.Empty(t, out.Products)
}
