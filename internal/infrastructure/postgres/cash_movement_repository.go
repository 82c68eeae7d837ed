package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/sigma-caixa-api/internal/domain"
	"github.com/jhoicas/sigma-caixa-api/internal/domain/entity"
	"github.com/jhoicas/sigma-caixa-api/internal/domain/repository"
)

var _ repository.CashMovementRepository = (*CashMovementRepo)(nil)

const movementColumns = `id, produto_id, produto_nome, quantidade, tipo, valor_total, data_movimentacao`

// CashMovementRepo implementación sobre PostgreSQL (usable con pool o tx).
type CashMovementRepo struct {
	q Querier
}

// NewCashMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCashMovementRepository(q Querier) *CashMovementRepo {
	return &CashMovementRepo{q: q}
}

// Create persiste un movimiento. Si el producto desapareció entre la lectura y el insert
// (FK) devuelve ErrProductNotFound.
func (r *CashMovementRepo) Create(ctx context.Context, m *entity.CashMovement) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO caixa (`+movementColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		m.ID, m.ProductID, m.ProductName, m.Quantity, m.Kind, m.Amount, m.Date,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrProductNotFound
		}
		return fmt.Errorf("create cash movement: %w", err)
	}
	return nil
}

// GetByID obtiene un movimiento por ID. (nil, nil) si no existe.
func (r *CashMovementRepo) GetByID(ctx context.Context, id string) (*entity.CashMovement, error) {
	return r.get(ctx, `SELECT `+movementColumns+` FROM caixa WHERE id = $1`, id)
}

// GetForUpdate obtiene y bloquea la fila hasta el fin de la transacción.
func (r *CashMovementRepo) GetForUpdate(ctx context.Context, id string) (*entity.CashMovement, error) {
	return r.get(ctx, `SELECT `+movementColumns+` FROM caixa WHERE id = $1 FOR UPDATE`, id)
}

func (r *CashMovementRepo) get(ctx context.Context, query, id string) (*entity.CashMovement, error) {
	m, err := scanMovement(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cash movement: %w", err)
	}
	return m, nil
}

// Update reescribe los campos editables (la fecha no cambia). ErrNotFound si la fila ya no existe.
func (r *CashMovementRepo) Update(ctx context.Context, m *entity.CashMovement) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE caixa SET produto_id = $2, produto_nome = $3, quantidade = $4, tipo = $5, valor_total = $6
		WHERE id = $1`,
		m.ID, m.ProductID, m.ProductName, m.Quantity, m.Kind, m.Amount,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrProductNotFound
		}
		return fmt.Errorf("update cash movement: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete borra el movimiento. Devuelve false si no existía.
func (r *CashMovementRepo) Delete(ctx context.Context, id string) (bool, error) {
	cmd, err := r.q.Exec(ctx, `DELETE FROM caixa WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete cash movement: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}

// ListAll lista todos los movimientos, el más reciente primero.
func (r *CashMovementRepo) ListAll(ctx context.Context) ([]*entity.CashMovement, error) {
	return r.list(ctx, `
		SELECT `+movementColumns+`
		FROM caixa ORDER BY data_movimentacao DESC, id DESC`)
}

// ListByProduct lista (y bloquea) los movimientos que referencian al producto.
func (r *CashMovementRepo) ListByProduct(ctx context.Context, productID string) ([]*entity.CashMovement, error) {
	return r.list(ctx, `
		SELECT `+movementColumns+`
		FROM caixa WHERE produto_id = $1 ORDER BY data_movimentacao DESC FOR UPDATE`, productID)
}

func (r *CashMovementRepo) list(ctx context.Context, query string, args ...any) ([]*entity.CashMovement, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list cash movements: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.CashMovement, 0)
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan cash movement: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

func scanMovement(row pgx.Row) (*entity.CashMovement, error) {
	var m entity.CashMovement
	if err := row.Scan(&m.ID, &m.ProductID, &m.ProductName, &m.Quantity, &m.Kind, &m.Amount, &m.Date); err != nil {
		return nil, err
	}
	return &m, nil
}
