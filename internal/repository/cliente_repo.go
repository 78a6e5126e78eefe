package repository

import (
	"context"
	"time"

	"minegocio/internal/dto"
	"minegocio/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ClienteRepository interface {
	Create(ctx context.Context, c *model.Cliente) error
	CreateTx(tx *gorm.DB, c *model.Cliente) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Cliente, error)
	FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Cliente, error)
	FindByCedula(ctx context.Context, cedula string) (*model.Cliente, error)
	List(ctx context.Context, filter dto.ClienteFilter) ([]model.Cliente, int64, error)
	Update(ctx context.Context, c *model.Cliente) error
	UpdateTx(tx *gorm.DB, c *model.Cliente) error
	Delete(ctx context.Context, id uuid.UUID) error

	// AplicarCompraTx bumps the denormalized aggregates inside a sale tx:
	// total_compras += total, numero_compras += 1, ultima_compra = now.
	// RevertirCompraTx undoes one attributed sale on cancellation.
	AplicarCompraTx(tx *gorm.DB, id uuid.UUID, total decimal.Decimal, fecha time.Time) error
	RevertirCompraTx(tx *gorm.DB, id uuid.UUID, total decimal.Decimal) error

	// RecomputarAgregados rebuilds the aggregates from the ventas table,
	// the reconciliation path for drift.
	RecomputarAgregados(ctx context.Context, id uuid.UUID) error
}

type clienteRepo struct{ db *gorm.DB }

func NewClienteRepository(db *gorm.DB) ClienteRepository { return &clienteRepo{db: db} }

func (r *clienteRepo) Create(ctx context.Context, c *model.Cliente) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *clienteRepo) CreateTx(tx *gorm.DB, c *model.Cliente) error {
	return tx.Create(c).Error
}

func (r *clienteRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Cliente, error) {
	var c model.Cliente
	err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error
	return &c, err
}

func (r *clienteRepo) FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Cliente, error) {
	var c model.Cliente
	err := tx.First(&c, "id = ?", id).Error
	return &c, err
}

func (r *clienteRepo) FindByCedula(ctx context.Context, cedula string) (*model.Cliente, error) {
	var c model.Cliente
	err := r.db.WithContext(ctx).Where("cedula = ?", cedula).First(&c).Error
	return &c, err
}

func (r *clienteRepo) List(ctx context.Context, filter dto.ClienteFilter) ([]model.Cliente, int64, error) {
	var clientes []model.Cliente
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Cliente{})
	if filter.Nombre != "" {
		q = q.Where("nombre LIKE ?", "%"+filter.Nombre+"%")
	}
	if filter.Cedula != "" {
		q = q.Where("cedula = ?", filter.Cedula)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Order("nombre ASC").Limit(filter.Limit).Offset(offset).Find(&clientes).Error
	return clientes, total, err
}

func (r *clienteRepo) Update(ctx context.Context, c *model.Cliente) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *clienteRepo) UpdateTx(tx *gorm.DB, c *model.Cliente) error {
	return tx.Save(c).Error
}

func (r *clienteRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Cliente{}, "id = ?", id).Error
}

func (r *clienteRepo) AplicarCompraTx(tx *gorm.DB, id uuid.UUID, total decimal.Decimal, fecha time.Time) error {
	return tx.Model(&model.Cliente{}).Where("id = ?", id).Updates(map[string]interface{}{
		"total_compras":  gorm.Expr("total_compras + ?", total),
		"numero_compras": gorm.Expr("numero_compras + 1"),
		"ultima_compra":  fecha,
	}).Error
}

func (r *clienteRepo) RevertirCompraTx(tx *gorm.DB, id uuid.UUID, total decimal.Decimal) error {
	return tx.Model(&model.Cliente{}).Where("id = ?", id).Updates(map[string]interface{}{
		"total_compras":  gorm.Expr("total_compras - ?", total),
		"numero_compras": gorm.Expr("numero_compras - 1"),
	}).Error
}

func (r *clienteRepo) RecomputarAgregados(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Exec(`
		UPDATE clientes SET
			total_compras  = COALESCE((SELECT SUM(total) FROM ventas WHERE cliente_id = clientes.id AND estado <> ?), 0),
			numero_compras = COALESCE((SELECT COUNT(*)   FROM ventas WHERE cliente_id = clientes.id AND estado <> ?), 0),
			ultima_compra  =          (SELECT MAX(fecha) FROM ventas WHERE cliente_id = clientes.id AND estado <> ?)
		WHERE id = ?`,
		model.VentaCancelada, model.VentaCancelada, model.VentaCancelada, id).Error
}
