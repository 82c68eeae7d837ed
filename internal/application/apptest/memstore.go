// Package apptest provee un almacenamiento en memoria que implementa los puertos de
// repositorio y el TxRunner, para probar casos de uso y handlers sin PostgreSQL.
package apptest

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/jhoicas/sigma-caixa-api/internal/domain"
	"github.com/jhoicas/sigma-caixa-api/internal/domain/entity"
	"github.com/jhoicas/sigma-caixa-api/internal/domain/repository"
)

// ErrInjected error por defecto para fallos inyectados.
var ErrInjected = errors.New("apptest: fallo inyectado")

// Store base de datos en memoria. Run copia el estado antes de ejecutar fn y lo restaura
// si fn devuelve error, emulando el rollback.
type Store struct {
	txMu sync.Mutex
	mu   sync.Mutex

	products  map[string]entity.Product
	movements map[string]entity.CashMovement
	users     map[string]entity.User

	// FailProductDelete, si no es nil, se devuelve desde ProductRepository.Delete.
	FailProductDelete error
	// FailMovementCreate, si no es nil, se devuelve desde CashMovementRepository.Create.
	FailMovementCreate error
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{
		products:  map[string]entity.Product{},
		movements: map[string]entity.CashMovement{},
		users:     map[string]entity.User{},
	}
}

// Products repositorio de productos sobre el almacén.
func (s *Store) Products() repository.ProductRepository { return &productRepo{s: s} }

// Movements repositorio de movimientos sobre el almacén.
func (s *Store) Movements() repository.CashMovementRepository { return &movementRepo{s: s} }

// Users repositorio de usuarios sobre el almacén.
func (s *Store) Users() repository.UserRepository { return &userRepo{s: s} }

// Run ejecuta fn de forma atómica.
func (s *Store) Run(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	movRepo repository.CashMovementRepository,
) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.Lock()
	products := make(map[string]entity.Product, len(s.products))
	for k, v := range s.products {
		products[k] = v
	}
	movements := make(map[string]entity.CashMovement, len(s.movements))
	for k, v := range s.movements {
		movements[k] = v
	}
	s.mu.Unlock()

	if err := fn(s.Products(), s.Movements()); err != nil {
		s.mu.Lock()
		s.products = products
		s.movements = movements
		s.mu.Unlock()
		return err
	}
	return nil
}

// ProductCount número de productos almacenados.
func (s *Store) ProductCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.products)
}

// MovementCount número de movimientos almacenados.
func (s *Store) MovementCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.movements)
}

// Movement devuelve una copia del movimiento almacenado (nil si no existe).
func (s *Store) Movement(id string) *entity.CashMovement {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.movements[id]
	if !ok {
		return nil
	}
	return copyMovement(m)
}

// PutMovement inserta o reemplaza un movimiento tal cual (para preparar escenarios).
func (s *Store) PutMovement(m entity.CashMovement) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.movements[m.ID] = *copyMovement(m)
}

func copyMovement(m entity.CashMovement) *entity.CashMovement {
	if m.ProductID != nil {
		id := *m.ProductID
		m.ProductID = &id
	}
	return &m
}

func copyProduct(p entity.Product) *entity.Product {
	if p.Description != nil {
		d := *p.Description
		p.Description = &d
	}
	return &p
}

type productRepo struct{ s *Store }

func (r *productRepo) Create(_ context.Context, p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.products[p.ID] = *copyProduct(*p)
	return nil
}

func (r *productRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	return copyProduct(p), nil
}

func (r *productRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

func (r *productRepo) Update(_ context.Context, p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.products[p.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.products[p.ID] = *copyProduct(*p)
	return nil
}

func (r *productRepo) List(_ context.Context, limit, offset int) ([]*entity.Product, error) {
	r.s.mu.Lock()
	all := make([]*entity.Product, 0, len(r.s.products))
	for _, p := range r.s.products {
		all = append(all, copyProduct(p))
	}
	r.s.mu.Unlock()
	sort.Slice(all, func(i, j int) bool {
		if all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].ID < all[j].ID
		}
		return all[i].CreatedAt.Before(all[j].CreatedAt)
	})
	if offset >= len(all) {
		return []*entity.Product{}, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

// Delete emula ON DELETE SET NULL: los movimientos que apuntaban al producto quedan
// sin produto_id y conservan produto_nome.
func (r *productRepo) Delete(_ context.Context, id string) error {
	if r.s.FailProductDelete != nil {
		return r.s.FailProductDelete
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for mid, m := range r.s.movements {
		if m.ProductID != nil && *m.ProductID == id {
			m.ProductID = nil
			r.s.movements[mid] = m
		}
	}
	delete(r.s.products, id)
	return nil
}

type movementRepo struct{ s *Store }

func (r *movementRepo) Create(_ context.Context, m *entity.CashMovement) error {
	if r.s.FailMovementCreate != nil {
		return r.s.FailMovementCreate
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.movements[m.ID] = *copyMovement(*m)
	return nil
}

func (r *movementRepo) GetByID(_ context.Context, id string) (*entity.CashMovement, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	m, ok := r.s.movements[id]
	if !ok {
		return nil, nil
	}
	return copyMovement(m), nil
}

func (r *movementRepo) GetForUpdate(ctx context.Context, id string) (*entity.CashMovement, error) {
	return r.GetByID(ctx, id)
}

func (r *movementRepo) Update(_ context.Context, m *entity.CashMovement) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.movements[m.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.movements[m.ID] = *copyMovement(*m)
	return nil
}

func (r *movementRepo) Delete(_ context.Context, id string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.movements[id]; !ok {
		return false, nil
	}
	delete(r.s.movements, id)
	return true, nil
}

func (r *movementRepo) ListAll(_ context.Context) ([]*entity.CashMovement, error) {
	r.s.mu.Lock()
	list := make([]*entity.CashMovement, 0, len(r.s.movements))
	for _, m := range r.s.movements {
		list = append(list, copyMovement(m))
	}
	r.s.mu.Unlock()
	sort.Slice(list, func(i, j int) bool {
		if list[i].Date.Equal(list[j].Date) {
			return list[i].ID > list[j].ID
		}
		return list[i].Date.After(list[j].Date)
	})
	return list, nil
}

func (r *movementRepo) ListByProduct(ctx context.Context, productID string) ([]*entity.CashMovement, error) {
	all, err := r.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*entity.CashMovement, 0)
	for _, m := range all {
		if m.ProductID != nil && *m.ProductID == productID {
			out = append(out, m)
		}
	}
	return out, nil
}

type userRepo struct{ s *Store }

func (r *userRepo) Create(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.users {
		if existing.Username == u.Username {
			return errors.New("apptest: username duplicado")
		}
	}
	r.s.users[u.ID] = *u
	return nil
}

func (r *userRepo) FindByUsername(_ context.Context, username string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Username == username {
			cp := u
			return &cp, nil
		}
	}
	return nil, nil
}
