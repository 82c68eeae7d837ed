package catalog_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/sigma-caixa-api/internal/application/apptest"
	"github.com/jhoicas/sigma-caixa-api/internal/application/catalog"
	"github.com/jhoicas/sigma-caixa-api/internal/application/dto"
	"github.com/jhoicas/sigma-caixa-api/internal/domain"
	"github.com/jhoicas/sigma-caixa-api/internal/domain/entity"
	"github.com/jhoicas/sigma-caixa-api/internal/domain/repository"
)

func newUC(t *testing.T) (*catalog.ProductUseCase, *apptest.Store) {
	t.Helper()
	store := apptest.NewStore()
	return catalog.NewProductUseCase(store.Products(), store), store
}

func strPtr(s string) *string { return &s }

func decPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func createProduct(t *testing.T, uc *catalog.ProductUseCase, name, price string) *dto.ProductResponse {
	t.Helper()
	out, err := uc.Create(context.Background(), dto.CreateProductRequest{Name: name, Price: decPtr(price)})
	require.NoError(t, err)
	return out
}

func addMovement(store *apptest.Store, productID *string, name string) string {
	id := uuid.New().String()
	store.PutMovement(entity.CashMovement{
		ID:          id,
		ProductID:   productID,
		ProductName: name,
		Quantity:    1,
		Kind:        entity.CashKindEntry,
		Amount:      decimal.NewFromInt(10),
		Date:        time.Now(),
	})
	return id
}

func TestCreate_Producto(t *testing.T) {
	uc, _ := newUC(t)
	out, err := uc.Create(context.Background(), dto.CreateProductRequest{
		Name:        "  Widget ",
		Description: strPtr("azul"),
		Price:       decPtr("10.50"),
	})
	require.NoError(t, err)

	_, err = uuid.Parse(out.ID)
	assert.NoError(t, err, "el id lo asigna el sistema")
	assert.Equal(t, "Widget", out.Name)
	assert.Equal(t, "azul", *out.Description)
	assert.True(t, out.Price.Equal(decimal.RequireFromString("10.5")))
}

func TestCreate_Validaciones(t *testing.T) {
	uc, store := newUC(t)
	ctx := context.Background()

	_, err := uc.Create(ctx, dto.CreateProductRequest{Name: "   ", Price: decPtr("1")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(ctx, dto.CreateProductRequest{Name: "x"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(ctx, dto.CreateProductRequest{Name: "x", Price: decPtr("-0.01")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	assert.Equal(t, 0, store.ProductCount())
}

func TestGetByID_NoExiste(t *testing.T) {
	uc, _ := newUC(t)
	_, err := uc.GetByID(context.Background(), uuid.New().String())
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.GetByID(context.Background(), "no-es-uuid")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestList_Paginacion(t *testing.T) {
	uc, _ := newUC(t)
	for _, n := range []string{"a", "b", "c"} {
		createProduct(t, uc, n, "1")
	}

	out, err := uc.List(context.Background(), dto.PageRequest{Limit: 2, Offset: 0})
	require.NoError(t, err)
	assert.Len(t, out.Items, 2)
	assert.Equal(t, 2, out.Page.Limit)

	out, err = uc.List(context.Background(), dto.PageRequest{Limit: 2, Offset: 2})
	require.NoError(t, err)
	assert.Len(t, out.Items, 1)

	out, err = uc.List(context.Background(), dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, out.Items, 3)
	assert.Equal(t, dto.DefaultPageLimit, out.Page.Limit)
}

func TestUpdate_SoloPrecio(t *testing.T) {
	uc, _ := newUC(t)
	ctx := context.Background()
	created, err := uc.Create(ctx, dto.CreateProductRequest{Name: "Widget", Description: strPtr("desc"), Price: decPtr("10")})
	require.NoError(t, err)

	out, err := uc.Update(ctx, created.ID, dto.UpdateProductRequest{Price: decPtr("12.5")})
	require.NoError(t, err)
	assert.Equal(t, "Widget", out.Name)
	assert.Equal(t, "desc", *out.Description)
	assert.True(t, out.Price.Equal(decimal.RequireFromString("12.5")))

	got, err := uc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Widget", got.Name)
	assert.Equal(t, "desc", *got.Description)
	assert.True(t, got.Price.Equal(decimal.RequireFromString("12.5")))
}

func TestUpdate_Errores(t *testing.T) {
	uc, _ := newUC(t)
	ctx := context.Background()

	_, err := uc.Update(ctx, uuid.New().String(), dto.UpdateProductRequest{Name: strPtr("x")})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	p := createProduct(t, uc, "Widget", "1")
	_, err = uc.Update(ctx, p.ID, dto.UpdateProductRequest{Name: strPtr("")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.Update(ctx, p.ID, dto.UpdateProductRequest{Price: decPtr("-1")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDelete_SinMovimientos(t *testing.T) {
	uc, store := newUC(t)
	p := createProduct(t, uc, "Widget", "10")

	out, err := uc.Delete(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, out.PreservedMovements)
	assert.Equal(t, "Produto removido com sucesso", out.Message)
	assert.Equal(t, 0, store.ProductCount())
}

func TestDelete_DesvinculaYConservaNombre(t *testing.T) {
	uc, store := newUC(t)
	p := createProduct(t, uc, "Widget", "10")
	other := createProduct(t, uc, "Gadget", "5")

	m1 := addMovement(store, strPtr(p.ID), "Widget")
	m2 := addMovement(store, strPtr(p.ID), "Nombre anterior")
	m3 := addMovement(store, strPtr(p.ID), "") // sin copia del nombre
	mOther := addMovement(store, strPtr(other.ID), "Gadget")

	out, err := uc.Delete(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, out.PreservedMovements)
	assert.Contains(t, out.Message, "3 movimentação(ões)")

	for id, want := range map[string]string{m1: "Widget", m2: "Nombre anterior", m3: "Widget"} {
		m := store.Movement(id)
		require.NotNil(t, m)
		assert.Nil(t, m.ProductID, "la referencia al producto se limpia")
		assert.Equal(t, want, m.ProductName)
	}

	untouched := store.Movement(mOther)
	require.NotNil(t, untouched.ProductID)
	assert.Equal(t, other.ID, *untouched.ProductID)

	_, err = uc.GetByID(context.Background(), p.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, 1, store.ProductCount())
}

func TestDelete_NoExiste(t *testing.T) {
	uc, _ := newUC(t)
	_, err := uc.Delete(context.Background(), uuid.New().String())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDelete_FalloRevierteDesvinculacion(t *testing.T) {
	uc, store := newUC(t)
	p := createProduct(t, uc, "Widget", "10")
	m := addMovement(store, strPtr(p.ID), "")

	store.FailProductDelete = apptest.ErrInjected
	_, err := uc.Delete(context.Background(), p.ID)
	require.ErrorIs(t, err, apptest.ErrInjected)

	got := store.Movement(m)
	require.NotNil(t, got.ProductID, "sin commit no debe quedar desvinculación parcial")
	assert.Equal(t, p.ID, *got.ProductID)
	assert.Equal(t, "", got.ProductName)
	assert.Equal(t, 1, store.ProductCount())
}

func TestCreate_ValorFueraDeNumeric(t *testing.T) {
	uc, store := newUC(t)
	ctx := context.Background()

	for _, price := range []string{"10.005", "1000000000000", "123456789012345.678"} {
		_, err := uc.Create(ctx, dto.CreateProductRequest{Name: "Widget", Price: decPtr(price)})
		assert.ErrorIs(t, err, domain.ErrInvalidAmount, price)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, price)
	}
	assert.Equal(t, 0, store.ProductCount())

	out, err := uc.Create(ctx, dto.CreateProductRequest{Name: "Widget", Price: decPtr("999999999999.99")})
	require.NoError(t, err)
	assert.True(t, out.Price.Equal(decimal.RequireFromString("999999999999.99")))
}

func TestCreate_TimestampsEnMicrosegundos(t *testing.T) {
	uc, _ := newUC(t)
	out := createProduct(t, uc, "Widget", "1")
	assert.True(t, out.CreatedAt.Equal(out.CreatedAt.Truncate(time.Microsecond)))
	assert.True(t, out.UpdatedAt.Equal(out.UpdatedAt.Truncate(time.Microsecond)))
}

func TestUpdate_ValorFueraDeNumericNoModifica(t *testing.T) {
	uc, _ := newUC(t)
	ctx := context.Background()
	p := createProduct(t, uc, "Widget", "10")

	_, err := uc.Update(ctx, p.ID, dto.UpdateProductRequest{Name: strPtr("Otro"), Price: decPtr("10.005")})
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)

	got, err := uc.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Widget", got.Name)
	assert.True(t, got.Price.Equal(decimal.NewFromInt(10)))
}

func TestGetByID_IDNoCanonico(t *testing.T) {
	uc, _ := newUC(t)
	p := createProduct(t, uc, "Widget", "1")

	for _, id := range []string{"urn:uuid:" + p.ID, "{" + p.ID + "}", strings.ReplaceAll(p.ID, "-", "")} {
		_, err := uc.GetByID(context.Background(), id)
		assert.ErrorIs(t, err, domain.ErrNotFound, id)
	}
}

// deleteFirstTx borra el producto justo antes de abrir la transacción, como un DELETE concurrente.
type deleteFirstTx struct {
	store *apptest.Store
	id    string
}

func (d deleteFirstTx) Run(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	movRepo repository.CashMovementRepository,
) error) error {
	if err := d.store.Products().Delete(ctx, d.id); err != nil {
		return err
	}
	return d.store.Run(ctx, fn)
}

func TestUpdate_ProductoBorradoEntreMedias(t *testing.T) {
	uc, store := newUC(t)
	p := createProduct(t, uc, "Widget", "10")

	racing := catalog.NewProductUseCase(store.Products(), deleteFirstTx{store: store, id: p.ID})
	_, err := racing.Update(context.Background(), p.ID, dto.UpdateProductRequest{Name: strPtr("Otro")})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, 0, store.ProductCount(), "el update no debe resucitar el producto")
}

func TestStore_UpdateProductoInexistente(t *testing.T) {
	store := apptest.NewStore()
	err := store.Products().Update(context.Background(), &entity.Product{ID: uuid.New().String(), Name: "x"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, 0, store.ProductCount())
}

func TestStore_BorrarProductoDejaMovimientosSinProducto(t *testing.T) {
	uc, store := newUC(t)
	p := createProduct(t, uc, "Widget", "10")
	m := addMovement(store, strPtr(p.ID), "Widget")

	require.NoError(t, store.Products().Delete(context.Background(), p.ID))

	got := store.Movement(m)
	require.NotNil(t, got)
	assert.Nil(t, got.ProductID)
	assert.Equal(t, "Widget", got.ProductName)
	assert.Equal(t, 0, store.ProductCount())
}
