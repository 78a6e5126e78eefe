package repository

import (
	"context"

	"minegocio/internal/dto"
	"minegocio/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DeudaProveedorRepository interface {
	Create(ctx context.Context, d *model.DeudaProveedor) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.DeudaProveedor, error)
	List(ctx context.Context, filter dto.DeudaFilter) ([]model.DeudaProveedor, int64, error)
	UpdateTx(tx *gorm.DB, d *model.DeudaProveedor) error
	Delete(ctx context.Context, id uuid.UUID) error
	CreatePagoTx(tx *gorm.DB, p *model.PagoProveedor) error
	ListPagos(ctx context.Context, deudaID uuid.UUID) ([]model.PagoProveedor, error)
	DB() *gorm.DB
}

type deudaProveedorRepo struct{ db *gorm.DB }

func NewDeudaProveedorRepository(db *gorm.DB) DeudaProveedorRepository {
	return &deudaProveedorRepo{db: db}
}

func (r *deudaProveedorRepo) DB() *gorm.DB { return r.db }

func (r *deudaProveedorRepo) Create(ctx context.Context, d *model.DeudaProveedor) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *deudaProveedorRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.DeudaProveedor, error) {
	var d model.DeudaProveedor
	err := r.db.WithContext(ctx).Preload("Pagos").First(&d, "id = ?", id).Error
	return &d, err
}

func (r *deudaProveedorRepo) List(ctx context.Context, filter dto.DeudaFilter) ([]model.DeudaProveedor, int64, error) {
	var deudas []model.DeudaProveedor
	var total int64

	q := r.db.WithContext(ctx).Model(&model.DeudaProveedor{})
	if filter.Estado != "" && filter.Estado != "all" {
		q = q.Where("estado = ?", filter.Estado)
	}
	if filter.Acreedor != "" {
		q = q.Where("acreedor LIKE ?", "%"+filter.Acreedor+"%")
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Preload("Pagos").Order("created_at DESC").
		Offset(offset).Limit(filter.Limit).Find(&deudas).Error
	return deudas, total, err
}

func (r *deudaProveedorRepo) UpdateTx(tx *gorm.DB, d *model.DeudaProveedor) error {
	return tx.Save(d).Error
}

func (r *deudaProveedorRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.DeudaProveedor{}, "id = ?", id).Error
}

func (r *deudaProveedorRepo) CreatePagoTx(tx *gorm.DB, p *model.PagoProveedor) error {
	return tx.Create(p).Error
}

func (r *deudaProveedorRepo) ListPagos(ctx context.Context, deudaID uuid.UUID) ([]model.PagoProveedor, error) {
	var pagos []model.PagoProveedor
	err := r.db.WithContext(ctx).Where("deuda_id = ?", deudaID).
		Order("fecha ASC").Find(&pagos).Error
	return pagos, err
}
