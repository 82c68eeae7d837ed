//go:build integration

package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/jhoicas/sigma-caixa-api/internal/application/catalog"
	"github.com/jhoicas/sigma-caixa-api/internal/application/dto"
	"github.com/jhoicas/sigma-caixa-api/internal/application/ledger"
	"github.com/jhoicas/sigma-caixa-api/internal/domain"
	"github.com/jhoicas/sigma-caixa-api/internal/domain/entity"
	"github.com/jhoicas/sigma-caixa-api/internal/infrastructure/postgres"
	"github.com/jhoicas/sigma-caixa-api/pkg/logger"
)

// newTestPool levanta un PostgreSQL efímero, aplica las migraciones y devuelve el pool.
func newTestPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("sigma_test"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err, "no se pudo iniciar el contenedor PostgreSQL")
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("terminar contenedor: %v", err)
		}
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)
	require.NoError(t, postgres.Migrate(dsn, logger.Nop()))

	pool, err := postgres.NewPoolFromDSN(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	return pool
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func decPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestPostgres_BorrarProductoConservaHistorico(t *testing.T) {
	pool := newTestPool(t)
	ctx := context.Background()
	tx := postgres.NewTxRunner(pool)
	products := catalog.NewProductUseCase(postgres.NewProductRepository(pool), tx)
	cash := ledger.NewCashUseCase(postgres.NewCashMovementRepository(pool), tx)

	p, err := products.Create(ctx, dto.CreateProductRequest{Name: "Widget", Price: decPtr("10")})
	require.NoError(t, err)

	m, err := cash.Create(ctx, dto.CreateCashMovementRequest{
		ProductID: strPtr(p.ID), Quantity: intPtr(2), Kind: strPtr("entrada"), Amount: decPtr("100"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Widget", m.ProductName)

	_, err = cash.Create(ctx, dto.CreateCashMovementRequest{
		ProductID: strPtr(p.ID), Quantity: intPtr(1), Kind: strPtr("saida"), Amount: decPtr("40.25"),
	})
	require.NoError(t, err)

	del, err := products.Delete(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, del.PreservedMovements)

	_, err = products.GetByID(ctx, p.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	got, err := cash.GetByID(ctx, m.ID)
	require.NoError(t, err)
	assert.Nil(t, got.ProductID)
	assert.Equal(t, "Widget", got.ProductName)

	report, err := cash.List(ctx)
	require.NoError(t, err)
	require.Len(t, report.Movements, 2)
	assert.True(t, report.TotalEntries.Equal(decimal.NewFromInt(100)))
	assert.True(t, report.TotalExits.Equal(decimal.RequireFromString("40.25")))
	assert.True(t, report.Balance.Equal(decimal.RequireFromString("59.75")))
}

func TestPostgres_ProductoInexistenteNoPersiste(t *testing.T) {
	pool := newTestPool(t)
	ctx := context.Background()
	tx := postgres.NewTxRunner(pool)
	cash := ledger.NewCashUseCase(postgres.NewCashMovementRepository(pool), tx)

	_, err := cash.Create(ctx, dto.CreateCashMovementRequest{
		ProductID: strPtr(uuid.New().String()), Quantity: intPtr(1), Kind: strPtr("entrada"), Amount: decPtr("1"),
	})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)

	report, err := cash.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, report.Movements)
	assert.True(t, report.Balance.IsZero())
}

func TestPostgres_ProductRepo_CRUD(t *testing.T) {
	pool := newTestPool(t)
	ctx := context.Background()
	repo := postgres.NewProductRepository(pool)

	now := time.Now().UTC().Truncate(time.Microsecond)
	p := &entity.Product{ID: uuid.New().String(), Name: "Caneta", Price: decimal.RequireFromString("2.50"), CreatedAt: now, UpdatedAt: now}
	require.NoError(t, repo.Create(ctx, p))

	got, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Nil(t, got.Description)
	assert.True(t, got.Price.Equal(p.Price))

	desc := "azul"
	got.Description = &desc
	require.NoError(t, repo.Update(ctx, got))

	list, err := repo.List(ctx, 10, 0)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "azul", *list[0].Description)

	require.NoError(t, repo.Delete(ctx, p.ID))
	got, err = repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestPostgres_UpdateSobreFilaInexistente(t *testing.T) {
	pool := newTestPool(t)
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Microsecond)
	err := postgres.NewProductRepository(pool).Update(ctx, &entity.Product{
		ID: uuid.New().String(), Name: "x", Price: decimal.NewFromInt(1), UpdatedAt: now,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	err = postgres.NewCashMovementRepository(pool).Update(ctx, &entity.CashMovement{
		ID: uuid.New().String(), ProductName: "x", Quantity: 1, Kind: entity.CashKindEntry, Amount: decimal.NewFromInt(1),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPostgres_DeleteDirectoDejaMovimientosSinProducto(t *testing.T) {
	pool := newTestPool(t)
	ctx := context.Background()
	tx := postgres.NewTxRunner(pool)
	products := catalog.NewProductUseCase(postgres.NewProductRepository(pool), tx)
	cash := ledger.NewCashUseCase(postgres.NewCashMovementRepository(pool), tx)

	p, err := products.Create(ctx, dto.CreateProductRequest{Name: "Widget", Price: decPtr("10")})
	require.NoError(t, err)
	m, err := cash.Create(ctx, dto.CreateCashMovementRequest{
		ProductID: strPtr(p.ID), Quantity: intPtr(1), Kind: strPtr("entrada"), Amount: decPtr("99.99"),
	})
	require.NoError(t, err)

	require.NoError(t, postgres.NewProductRepository(pool).Delete(ctx, p.ID))

	got, err := cash.GetByID(ctx, m.ID)
	require.NoError(t, err)
	assert.Nil(t, got.ProductID)
	assert.Equal(t, "Widget", got.ProductName)
}

func TestPostgres_ValoresYFechasSeDevuelvenTalCual(t *testing.T) {
	pool := newTestPool(t)
	ctx := context.Background()
	tx := postgres.NewTxRunner(pool)
	products := catalog.NewProductUseCase(postgres.NewProductRepository(pool), tx)
	cash := ledger.NewCashUseCase(postgres.NewCashMovementRepository(pool), tx)

	p, err := products.Create(ctx, dto.CreateProductRequest{Name: "Widget", Price: decPtr("999999999999.99")})
	require.NoError(t, err)

	_, err = cash.Create(ctx, dto.CreateCashMovementRequest{
		ProductID: strPtr(p.ID), Quantity: intPtr(1), Kind: strPtr("entrada"), Amount: decPtr("123456789012345.678"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)

	m, err := cash.Create(ctx, dto.CreateCashMovementRequest{
		ProductID: strPtr(p.ID), Quantity: intPtr(1), Kind: strPtr("entrada"), Amount: decPtr("10.01"),
	})
	require.NoError(t, err)

	got, err := cash.GetByID(ctx, m.ID)
	require.NoError(t, err)
	assert.True(t, got.Amount.Equal(m.Amount))
	assert.True(t, got.Date.Equal(m.Date), "la fecha leída coincide con la devuelta al crear")

	gotP, err := products.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, gotP.Price.Equal(p.Price))
	assert.True(t, gotP.CreatedAt.Equal(p.CreatedAt))
}

func TestPostgres_UserRepo(t *testing.T) {
	pool := newTestPool(t)
	ctx := context.Background()
	repo := postgres.NewUserRepository(pool)

	u := &entity.User{ID: uuid.New().String(), Username: "admin", PasswordHash: "hash", Active: true, CreatedAt: time.Now().UTC()}
	require.NoError(t, repo.Create(ctx, u))
	assert.ErrorIs(t, repo.Create(ctx, &entity.User{ID: uuid.New().String(), Username: "admin", PasswordHash: "x", CreatedAt: time.Now()}), domain.ErrConflict)

	got, err := repo.FindByUsername(ctx, "admin")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, u.ID, got.ID)

	missing, err := repo.FindByUsername(ctx, "nadie")
	require.NoError(t, err)
	assert.Nil(t, missing)
}
