// Package memory implementa los repositorios de inventario en memoria.
// Se usa con STORAGE_DRIVER=memory (desarrollo local sin PostgreSQL) y en los tests.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/jhoicas/stock-tracker/internal/application/inventory"
	"github.com/jhoicas/stock-tracker/internal/domain"
	"github.com/jhoicas/stock-tracker/internal/domain/entity"
	"github.com/jhoicas/stock-tracker/internal/domain/repository"
)

var (
	_ repository.ItemRepository     = (*ItemRepo)(nil)
	_ repository.MovementRepository = (*MovementRepo)(nil)
	_ inventory.TxRunner            = (*Store)(nil)
)

// Store guarda items y movimientos. mu serializa las transacciones completas.
type Store struct {
	mu        sync.Mutex
	items     map[int64]entity.Item
	movements []entity.Movement
	nextItem  int64
	nextMov   int64
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{items: make(map[int64]entity.Item)}
}

// Items devuelve el repositorio de items fuera de transacción.
func (s *Store) Items() *ItemRepo { return &ItemRepo{s: s} }

// Movements devuelve el repositorio de movimientos fuera de transacción.
func (s *Store) Movements() *MovementRepo { return &MovementRepo{s: s} }

// Run ejecuta fn con el almacén bloqueado; si fn falla se restaura el estado previo.
func (s *Store) Run(ctx context.Context, fn func(
	itemRepo repository.ItemRepository,
	movRepo repository.MovementRepository,
) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make(map[int64]entity.Item, len(s.items))
	for k, v := range s.items {
		items[k] = v
	}
	movements := append([]entity.Movement(nil), s.movements...)
	nextItem, nextMov := s.nextItem, s.nextMov

	if err := fn(&ItemRepo{s: s, inTx: true}, &MovementRepo{s: s, inTx: true}); err != nil {
		s.items, s.movements, s.nextItem, s.nextMov = items, movements, nextItem, nextMov
		return err
	}
	return nil
}

func (s *Store) lock(inTx bool) func() {
	if inTx {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

// ItemRepo implementación en memoria de repository.ItemRepository.
type ItemRepo struct {
	s    *Store
	inTx bool
}

// Create persiste el item y asigna su ID. SKU repetido devuelve domain.ErrDuplicate.
func (r *ItemRepo) Create(_ context.Context, item *entity.Item) error {
	defer r.s.lock(r.inTx)()
	for _, existing := range r.s.items {
		if existing.SKU == item.SKU {
			return domain.ErrDuplicate
		}
	}
	r.s.nextItem++
	item.ID = r.s.nextItem
	r.s.items[item.ID] = *item
	return nil
}

// GetByID devuelve una copia del item o (nil, nil).
func (r *ItemRepo) GetByID(_ context.Context, id int64) (*entity.Item, error) {
	defer r.s.lock(r.inTx)()
	item, ok := r.s.items[id]
	if !ok {
		return nil, nil
	}
	return &item, nil
}

// GetForUpdate equivale a GetByID: el bloqueo lo da Store.Run.
func (r *ItemRepo) GetForUpdate(ctx context.Context, id int64) (*entity.Item, error) {
	return r.GetByID(ctx, id)
}

// UpdateStock fija la existencia del item.
func (r *ItemRepo) UpdateStock(_ context.Context, id, stock int64) error {
	defer r.s.lock(r.inTx)()
	item, ok := r.s.items[id]
	if !ok {
		return domain.ErrNotFound
	}
	item.Stock = stock
	r.s.items[id] = item
	return nil
}

// List devuelve los items ordenados por nombre.
func (r *ItemRepo) List(_ context.Context) ([]*entity.Item, error) {
	defer r.s.lock(r.inTx)()
	list := make([]*entity.Item, 0, len(r.s.items))
	for _, item := range r.s.items {
		item := item
		list = append(list, &item)
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].Name != list[j].Name {
			return list[i].Name < list[j].Name
		}
		return list[i].ID < list[j].ID
	})
	return list, nil
}

// MovementRepo implementación en memoria de repository.MovementRepository.
type MovementRepo struct {
	s    *Store
	inTx bool
}

// Create agrega el movimiento y asigna su ID.
func (r *MovementRepo) Create(_ context.Context, movement *entity.Movement) error {
	defer r.s.lock(r.inTx)()
	r.s.nextMov++
	movement.ID = r.s.nextMov
	r.s.movements = append(r.s.movements, *movement)
	return nil
}

// ListByItem devuelve los movimientos del item, más recientes primero.
func (r *MovementRepo) ListByItem(_ context.Context, itemID int64) ([]*entity.Movement, error) {
	defer r.s.lock(r.inTx)()
	var list []*entity.Movement
	for i := len(r.s.movements) - 1; i >= 0; i-- {
		if m := r.s.movements[i]; m.ItemID == itemID {
			list = append(list, &m)
		}
	}
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].InsertedAt.After(list[j].InsertedAt)
	})
	return list, nil
}
