package memory

import (
	"sort"
	"time"

	"github.com/Kauan-Sabino/almoxarifado-api/internal/domain"
	"github.com/Kauan-Sabino/almoxarifado-api/internal/domain/entity"
	"github.com/Kauan-Sabino/almoxarifado-api/internal/domain/repository"
)

var (
	_ repository.ProductRepository  = (*productRepo)(nil)
	_ repository.MovementRepository = (*movementRepo)(nil)
)

// productRepo repositorio de productos sobre el almacén en memoria. Devuelve
// copias para que el caller no pueda mutar el estado almacenado.
type productRepo struct {
	s *Store
}

func (r *productRepo) Create(product *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.products[product.ID] = *product
	return nil
}

func (r *productRepo) GetByID(id string) (*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

// GetForUpdate en memoria equivale a GetByID: la serialización por producto la
// da el mutex de transacción del Store.
func (r *productRepo) GetForUpdate(id string) (*entity.Product, error) {
	return r.GetByID(id)
}

func (r *productRepo) Update(product *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	current, ok := r.s.products[product.ID]
	if !ok {
		return domain.ErrProductNotFound
	}
	current.Name = product.Name
	current.Description = product.Description
	current.MinimumStock = product.MinimumStock
	current.UpdatedAt = time.Now()
	r.s.products[product.ID] = current
	return nil
}

func (r *productRepo) UpdateQuantity(id string, quantity int64) error {
	if r.s.FailUpdateQuantity != nil {
		return r.s.FailUpdateQuantity
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products[id]
	if !ok {
		return domain.ErrProductNotFound
	}
	p.Quantity = quantity
	p.UpdatedAt = time.Now()
	r.s.products[id] = p
	return nil
}

func (r *productRepo) List(limit, offset int) ([]*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	all := make([]*entity.Product, 0, len(r.s.products))
	for _, p := range r.s.products {
		cp := p
		all = append(all, &cp)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	return paginate(all, limit, offset), nil
}

func (r *productRepo) Delete(id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.products[id]; !ok {
		return domain.ErrProductNotFound
	}
	delete(r.s.products, id)
	return nil
}

// movementRepo repositorio de movimientos sobre el almacén en memoria.
type movementRepo struct {
	s *Store
}

func (r *movementRepo) Create(movement *entity.Movement) error {
	if r.s.FailCreateMovement != nil {
		return r.s.FailCreateMovement
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.movements[movement.ID] = *movement
	return nil
}

func (r *movementRepo) GetByID(id string) (*entity.Movement, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	m, ok := r.s.movements[id]
	if !ok {
		return nil, nil
	}
	return &m, nil
}

func (r *movementRepo) GetForUpdate(id string) (*entity.Movement, error) {
	return r.GetByID(id)
}

func (r *movementRepo) Update(movement *entity.Movement) error {
	if r.s.FailUpdateMovement != nil {
		return r.s.FailUpdateMovement
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.movements[movement.ID]; !ok {
		return domain.ErrMovementNotFound
	}
	r.s.movements[movement.ID] = *movement
	return nil
}

func (r *movementRepo) Delete(id string) error {
	if r.s.FailDeleteMovement != nil {
		return r.s.FailDeleteMovement
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.movements[id]; !ok {
		return domain.ErrMovementNotFound
	}
	delete(r.s.movements, id)
	return nil
}

func (r *movementRepo) List(filter repository.MovementFilter, limit, offset int) ([]*entity.Movement, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var all []*entity.Movement
	for _, m := range r.s.movements {
		if filter.ProductID != "" && m.ProductID != filter.ProductID {
			continue
		}
		if filter.UserID != "" && m.UserID != filter.UserID {
			continue
		}
		if filter.Type != "" && m.Type != filter.Type {
			continue
		}
		if filter.From != nil && m.Date.Before(*filter.From) {
			continue
		}
		if filter.To != nil && m.Date.After(*filter.To) {
			continue
		}
		cp := m
		all = append(all, &cp)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Date.After(all[j].Date) })
	return paginate(all, limit, offset), nil
}

func paginate[T any](all []*T, limit, offset int) []*T {
	if offset >= len(all) {
		return nil
	}
	all = all[offset:]
	if limit > 0 && limit < len(all) {
		all = all[:limit]
	}
	return all
}
