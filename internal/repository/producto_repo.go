package repository

import (
	"context"
	"errors"

	"minegocio/internal/dto"
	"minegocio/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrStockInsuficiente is returned by the conditional stock decrement when the
// row no longer has enough units. Inside a sale transaction it aborts the whole
// sale, so stock can never go negative.
var ErrStockInsuficiente = errors.New("stock insuficiente")

// ProductoRepository defines the data access contract for the product catalog
// and its sized variants. Services depend on this interface, not on the
// concrete GORM implementation, enabling unit testing via in-memory stubs.
type ProductoRepository interface {
	Create(ctx context.Context, p *model.Producto) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Producto, error)
	FindByReferencia(ctx context.Context, referencia string) (*model.Producto, error)
	List(ctx context.Context, filter dto.ProductoFilter) ([]model.Producto, int64, error)
	Update(ctx context.Context, p *model.Producto) error
	Desactivar(ctx context.Context, id uuid.UUID) error
	Reactivar(ctx context.Context, id uuid.UUID) error

	// Variantes
	CreateVariante(ctx context.Context, v *model.Variante) error
	FindVarianteByID(ctx context.Context, id uuid.UUID) (*model.Variante, error)
	UpdateVariante(ctx context.Context, v *model.Variante) error
	DeleteVariante(ctx context.Context, id uuid.UUID) error

	// In-transaction stock mutations — callers must pass the tx instance.
	// The decrements are conditional (cantidad >= delta) and return
	// ErrStockInsuficiente when no row qualifies.
	DescontarStockVarianteTx(tx *gorm.DB, id uuid.UUID, cantidad int) error
	DescontarStockProductoTx(tx *gorm.DB, id uuid.UUID, cantidad int) error
	RestaurarStockVarianteTx(tx *gorm.DB, id uuid.UUID, cantidad int) error
	RestaurarStockProductoTx(tx *gorm.DB, id uuid.UUID, cantidad int) error

	// AjustarStock applies a manual delta outside a sale. Negative deltas are
	// conditional like the sale-time decrement.
	AjustarStock(ctx context.Context, productoID uuid.UUID, varianteID *uuid.UUID, delta int) error

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type productoRepo struct{ db *gorm.DB }

func NewProductoRepository(db *gorm.DB) ProductoRepository { return &productoRepo{db: db} }

func (r *productoRepo) DB() *gorm.DB { return r.db }

func (r *productoRepo) Create(ctx context.Context, p *model.Producto) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *productoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Producto, error) {
	var p model.Producto
	err := r.db.WithContext(ctx).Preload("Variantes").First(&p, "id = ?", id).Error
	return &p, err
}

func (r *productoRepo) FindByReferencia(ctx context.Context, referencia string) (*model.Producto, error) {
	var p model.Producto
	err := r.db.WithContext(ctx).Preload("Variantes").
		Where("referencia = ? AND activo = true", referencia).First(&p).Error
	return &p, err
}

func (r *productoRepo) List(ctx context.Context, filter dto.ProductoFilter) ([]model.Producto, int64, error) {
	var productos []model.Producto
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Producto{})

	// Activo filter: "false" = inactivos, "all" = todos, anything else = activos
	switch filter.Activo {
	case "false":
		q = q.Where("activo = false")
	case "all":
		// no filter
	default:
		q = q.Where("activo = true")
	}

	if filter.Referencia != "" {
		q = q.Where("referencia = ?", filter.Referencia)
	}
	if filter.Nombre != "" {
		q = q.Where("nombre LIKE ?", "%"+filter.Nombre+"%")
	}
	if filter.Categoria != "" {
		q = q.Where("categoria = ?", filter.Categoria)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Preload("Variantes").Order("nombre ASC").
		Limit(filter.Limit).Offset(offset).Find(&productos).Error
	return productos, total, err
}

func (r *productoRepo) Update(ctx context.Context, p *model.Producto) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *productoRepo) Desactivar(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Producto{}).Where("id = ?", id).Update("activo", false).Error
}

func (r *productoRepo) Reactivar(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Producto{}).Where("id = ?", id).Update("activo", true).Error
}

func (r *productoRepo) CreateVariante(ctx context.Context, v *model.Variante) error {
	return r.db.WithContext(ctx).Create(v).Error
}

func (r *productoRepo) FindVarianteByID(ctx context.Context, id uuid.UUID) (*model.Variante, error) {
	var v model.Variante
	err := r.db.WithContext(ctx).First(&v, "id = ?", id).Error
	return &v, err
}

func (r *productoRepo) UpdateVariante(ctx context.Context, v *model.Variante) error {
	return r.db.WithContext(ctx).Save(v).Error
}

func (r *productoRepo) DeleteVariante(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Variante{}, "id = ?", id).Error
}

func (r *productoRepo) DescontarStockVarianteTx(tx *gorm.DB, id uuid.UUID, cantidad int) error {
	res := tx.Model(&model.Variante{}).
		Where("id = ? AND cantidad >= ?", id, cantidad).
		Update("cantidad", gorm.Expr("cantidad - ?", cantidad))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrStockInsuficiente
	}
	return nil
}

func (r *productoRepo) DescontarStockProductoTx(tx *gorm.DB, id uuid.UUID, cantidad int) error {
	res := tx.Model(&model.Producto{}).
		Where("id = ? AND stock >= ?", id, cantidad).
		Update("stock", gorm.Expr("stock - ?", cantidad))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrStockInsuficiente
	}
	return nil
}

func (r *productoRepo) RestaurarStockVarianteTx(tx *gorm.DB, id uuid.UUID, cantidad int) error {
	return tx.Model(&model.Variante{}).Where("id = ?", id).
		Update("cantidad", gorm.Expr("cantidad + ?", cantidad)).Error
}

func (r *productoRepo) RestaurarStockProductoTx(tx *gorm.DB, id uuid.UUID, cantidad int) error {
	return tx.Model(&model.Producto{}).Where("id = ?", id).
		Update("stock", gorm.Expr("stock + ?", cantidad)).Error
}

func (r *productoRepo) AjustarStock(ctx context.Context, productoID uuid.UUID, varianteID *uuid.UUID, delta int) error {
	db := r.db.WithContext(ctx)
	if varianteID != nil {
		if delta < 0 {
			return r.DescontarStockVarianteTx(db, *varianteID, -delta)
		}
		return r.RestaurarStockVarianteTx(db, *varianteID, delta)
	}
	if delta < 0 {
		return r.DescontarStockProductoTx(db, productoID, -delta)
	}
	return r.RestaurarStockProductoTx(db, productoID, delta)
}
