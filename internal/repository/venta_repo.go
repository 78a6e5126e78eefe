package repository

import (
	"context"
	"errors"

	"minegocio/internal/dto"
	"minegocio/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type VentaRepository interface {
	Create(ctx context.Context, tx *gorm.DB, v *model.Venta) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Venta, error)
	UpdateEstadoTx(tx *gorm.DB, id uuid.UUID, estado string) error
	List(ctx context.Context, filter dto.VentaFilter) ([]model.Venta, int64, error)

	// NextNumeroVenta atomically increments the "ventas" counter row and
	// returns the new value. Must be called inside the sale transaction so
	// the number is rolled back together with everything else.
	NextNumeroVenta(ctx context.Context, tx *gorm.DB) (int64, error)

	DB() *gorm.DB // exposes the DB for transaction creation in service layer
}

type ventaRepo struct{ db *gorm.DB }

func NewVentaRepository(db *gorm.DB) VentaRepository { return &ventaRepo{db: db} }

func (r *ventaRepo) DB() *gorm.DB { return r.db }

func (r *ventaRepo) Create(ctx context.Context, tx *gorm.DB, v *model.Venta) error {
	return tx.WithContext(ctx).Create(v).Error
}

func (r *ventaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Venta, error) {
	var v model.Venta
	err := r.db.WithContext(ctx).
		Preload("Items.Producto").Preload("Items.Variante").
		Preload("CostosExtra").Preload("Cliente").
		First(&v, "id = ?", id).Error
	return &v, err
}

func (r *ventaRepo) UpdateEstadoTx(tx *gorm.DB, id uuid.UUID, estado string) error {
	return tx.Model(&model.Venta{}).Where("id = ?", id).Update("estado", estado).Error
}

func (r *ventaRepo) NextNumeroVenta(ctx context.Context, tx *gorm.DB) (int64, error) {
	res := tx.WithContext(ctx).Model(&model.Contador{}).
		Where("nombre = ?", "ventas").
		Update("valor", gorm.Expr("valor + 1"))
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected == 0 {
		// First sale ever: seed the counter row.
		if err := tx.WithContext(ctx).Create(&model.Contador{Nombre: "ventas", Valor: 1}).Error; err != nil {
			return 0, err
		}
		return 1, nil
	}
	var c model.Contador
	if err := tx.WithContext(ctx).Where("nombre = ?", "ventas").First(&c).Error; err != nil {
		return 0, err
	}
	if c.Valor <= 0 {
		return 0, errors.New("contador de ventas corrupto")
	}
	return c.Valor, nil
}

func (r *ventaRepo) List(ctx context.Context, filter dto.VentaFilter) ([]model.Venta, int64, error) {
	var ventas []model.Venta
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Venta{})

	if filter.Estado != "" && filter.Estado != "all" {
		q = q.Where("estado = ?", filter.Estado)
	}
	if filter.ClienteID != "" {
		q = q.Where("cliente_id = ?", filter.ClienteID)
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
	err := q.Preload("Items.Producto").Preload("Items.Variante").Preload("CostosExtra").
		Order("fecha DESC").
		Offset(offset).Limit(filter.Limit).
		Find(&ventas).Error

	return ventas, total, err
}
