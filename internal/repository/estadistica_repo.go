package repository

import (
	"context"
	"time"

	"minegocio/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TopProductoResult is the raw row of the top-products query.
type TopProductoResult struct {
	ProductoID     string
	Referencia     string
	Nombre         string
	UnidadesVendidas int64
	Ingresos       decimal.Decimal
}

// MargenProductoResult carries revenue vs cost per product.
// Utilidad = Ingresos − Costo (costo_base × unidades).
type MargenProductoResult struct {
	ProductoID       string
	Referencia       string
	Nombre           string
	UnidadesVendidas int64
	Ingresos         decimal.Decimal
	Costo            decimal.Decimal
	Utilidad         decimal.Decimal
}

// GastoCategoriaResult is one row of the expenses-by-category rollup.
type GastoCategoriaResult struct {
	Categoria string
	Total     decimal.Decimal
	Registros int64
}

// EstadisticaRepository defines the read-only aggregation queries behind the
// statistics dashboard. Implementations never modify data. Date ranges are
// computed by the caller in Go so the SQL stays portable across sqlite and
// postgres (no engine-specific date functions).
type EstadisticaRepository interface {
	SumVentas(ctx context.Context, desde, hasta time.Time) (decimal.Decimal, int64, error)
	SumGastos(ctx context.Context, desde, hasta time.Time) (decimal.Decimal, error)
	TopProductos(ctx context.Context, desde, hasta time.Time, limit int) ([]TopProductoResult, error)
	MargenesPorProducto(ctx context.Context, desde, hasta time.Time, limit int) ([]MargenProductoResult, error)
	GastosPorCategoria(ctx context.Context, desde, hasta time.Time) ([]GastoCategoriaResult, error)
	DeudasClientePendientes(ctx context.Context) (decimal.Decimal, int64, error)
	DeudasProveedorPendientes(ctx context.Context) (decimal.Decimal, int64, error)
}

type estadisticaRepo struct{ db *gorm.DB }

func NewEstadisticaRepository(db *gorm.DB) EstadisticaRepository { return &estadisticaRepo{db: db} }

func (r *estadisticaRepo) SumVentas(ctx context.Context, desde, hasta time.Time) (decimal.Decimal, int64, error) {
	var row struct {
		Total decimal.Decimal
		N     int64
	}
	err := r.db.WithContext(ctx).Model(&model.Venta{}).
		Select("COALESCE(SUM(total), 0) AS total, COUNT(*) AS n").
		Where("fecha >= ? AND fecha < ? AND estado <> ?", desde, hasta, model.VentaCancelada).
		Scan(&row).Error
	return row.Total, row.N, err
}

func (r *estadisticaRepo) SumGastos(ctx context.Context, desde, hasta time.Time) (decimal.Decimal, error) {
	var row struct{ Total decimal.Decimal }
	err := r.db.WithContext(ctx).Model(&model.Gasto{}).
		Select("COALESCE(SUM(monto), 0) AS total").
		Where("fecha >= ? AND fecha < ?", desde, hasta).
		Scan(&row).Error
	return row.Total, err
}

func (r *estadisticaRepo) TopProductos(ctx context.Context, desde, hasta time.Time, limit int) ([]TopProductoResult, error) {
	var rows []TopProductoResult
	err := r.db.WithContext(ctx).Raw(`
		SELECT p.id AS producto_id, p.referencia, p.nombre,
		       SUM(vi.cantidad) AS unidades_vendidas,
		       SUM(vi.subtotal) AS ingresos
		FROM venta_items vi
		JOIN ventas v ON v.id = vi.venta_id
		JOIN productos p ON p.id = vi.producto_id
		WHERE v.fecha >= ? AND v.fecha < ? AND v.estado <> ?
		GROUP BY p.id, p.referencia, p.nombre
		ORDER BY unidades_vendidas DESC
		LIMIT ?`,
		desde, hasta, model.VentaCancelada, limit).Scan(&rows).Error
	return rows, err
}

func (r *estadisticaRepo) MargenesPorProducto(ctx context.Context, desde, hasta time.Time, limit int) ([]MargenProductoResult, error) {
	var rows []MargenProductoResult
	err := r.db.WithContext(ctx).Raw(`
		SELECT p.id AS producto_id, p.referencia, p.nombre,
		       SUM(vi.cantidad) AS unidades_vendidas,
		       SUM(vi.subtotal) AS ingresos,
		       SUM(vi.cantidad * p.costo_base) AS costo,
		       SUM(vi.subtotal) - SUM(vi.cantidad * p.costo_base) AS utilidad
		FROM venta_items vi
		JOIN ventas v ON v.id = vi.venta_id
		JOIN productos p ON p.id = vi.producto_id
		WHERE v.fecha >= ? AND v.fecha < ? AND v.estado <> ?
		GROUP BY p.id, p.referencia, p.nombre
		ORDER BY utilidad DESC
		LIMIT ?`,
		desde, hasta, model.VentaCancelada, limit).Scan(&rows).Error
	return rows, err
}

func (r *estadisticaRepo) GastosPorCategoria(ctx context.Context, desde, hasta time.Time) ([]GastoCategoriaResult, error) {
	var rows []GastoCategoriaResult
	err := r.db.WithContext(ctx).Model(&model.Gasto{}).
		Select("categoria, COALESCE(SUM(monto), 0) AS total, COUNT(*) AS registros").
		Where("fecha >= ? AND fecha < ?", desde, hasta).
		Group("categoria").
		Order("total DESC").
		Scan(&rows).Error
	return rows, err
}

func (r *estadisticaRepo) DeudasClientePendientes(ctx context.Context) (decimal.Decimal, int64, error) {
	var row struct {
		Total decimal.Decimal
		N     int64
	}
	err := r.db.WithContext(ctx).Model(&model.DeudaCliente{}).
		Select("COALESCE(SUM(monto_pendiente), 0) AS total, COUNT(*) AS n").
		Where("estado = ?", model.DeudaPendiente).
		Scan(&row).Error
	return row.Total, row.N, err
}

func (r *estadisticaRepo) DeudasProveedorPendientes(ctx context.Context) (decimal.Decimal, int64, error) {
	var row struct {
		Total decimal.Decimal
		N     int64
	}
	err := r.db.WithContext(ctx).Model(&model.DeudaProveedor{}).
		Select("COALESCE(SUM(monto_pendiente), 0) AS total, COUNT(*) AS n").
		Where("estado = ?", model.DeudaPendiente).
		Scan(&row).Error
	return row.Total, row.N, err
}
