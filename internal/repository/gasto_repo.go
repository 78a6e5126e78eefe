package repository

import (
	"context"

	"minegocio/internal/dto"
	"minegocio/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GastoRepository interface {
	Create(ctx context.Context, g *model.Gasto) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Gasto, error)
	List(ctx context.Context, filter dto.GastoFilter) ([]model.Gasto, int64, error)
	Update(ctx context.Context, g *model.Gasto) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type gastoRepo struct{ db *gorm.DB }

func NewGastoRepository(db *gorm.DB) GastoRepository { return &gastoRepo{db: db} }

func (r *gastoRepo) Create(ctx context.Context, g *model.Gasto) error {
	return r.db.WithContext(ctx).Create(g).Error
}

func (r *gastoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Gasto, error) {
	var g model.Gasto
	err := r.db.WithContext(ctx).First(&g, "id = ?", id).Error
	return &g, err
}

func (r *gastoRepo) List(ctx context.Context, filter dto.GastoFilter) ([]model.Gasto, int64, error) {
	var gastos []model.Gasto
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Gasto{})
	if filter.Categoria != "" {
		q = q.Where("categoria = ?", filter.Categoria)
	}
	if !filter.Desde.IsZero() {
		q = q.Where("fecha >= ?", filter.Desde)
	}
	if !filter.Hasta.IsZero() {
		q = q.Where("fecha < ?", filter.Hasta)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Order("fecha DESC").Offset(offset).Limit(filter.Limit).Find(&gastos).Error
	return gastos, total, err
}

func (r *gastoRepo) Update(ctx context.Context, g *model.Gasto) error {
	return r.db.WithContext(ctx).Save(g).Error
}

func (r *gastoRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Gasto{}, "id = ?", id).Error
}
