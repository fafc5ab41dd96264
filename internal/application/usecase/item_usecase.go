package usecase

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/jhoicas/stock-tracker/internal/application/dto"
	"github.com/jhoicas/stock-tracker/internal/domain"
	"github.com/jhoicas/stock-tracker/internal/domain/entity"
	"github.com/jhoicas/stock-tracker/internal/domain/repository"
)

// ItemUseCase casos de uso para items. Stock se maneja vía movimientos.
type ItemUseCase struct {
	repo repository.ItemRepository
}

// NewItemUseCase construye el caso de uso.
func NewItemUseCase(repo repository.ItemRepository) *ItemUseCase {
	return &ItemUseCase{repo: repo}
}

// Create crea un nuevo item. Stock inicia en 0.
func (uc *ItemUseCase) Create(ctx context.Context, in dto.ItemParams) (*dto.ItemResponse, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.SKU = strings.TrimSpace(in.SKU)
	in.Unit = strings.TrimSpace(in.Unit)

	verr := &domain.ValidationError{}
	if in.Name == "" {
		verr.Add("name", "can't be blank")
	}
	if in.SKU == "" {
		verr.Add("sku", "can't be blank")
	}
	if in.Unit == "" {
		verr.Add("unit", "can't be blank")
	}
	if !verr.Empty() {
		return nil, verr
	}

	now := time.Now().UTC()
	item := &entity.Item{
		Name:       in.Name,
		SKU:        in.SKU,
		Unit:       in.Unit,
		Stock:      0,
		InsertedAt: now,
		UpdatedAt:  now,
	}
	if err := uc.repo.Create(ctx, item); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, domain.NewValidationError("sku", "has already been taken")
		}
		return nil, err
	}
	out := dto.ToItemResponse(item)
	return &out, nil
}

// GetByID obtiene un item por ID. Devuelve (nil, nil) si no existe o el id no es numérico.
func (uc *ItemUseCase) GetByID(ctx context.Context, rawID string) (*dto.ItemResponse, error) {
	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		return nil, nil
	}
	item, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, nil
	}
	out := dto.ToItemResponse(item)
	return &out, nil
}

// List lista todos los items.
func (uc *ItemUseCase) List(ctx context.Context) ([]dto.ItemResponse, error) {
	items, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ItemResponse, 0, len(items))
	for _, i := range items {
		out = append(out, dto.ToItemResponse(i))
	}
	return out, nil
}
