package tests

// estadisticas_test.go
// Unit tests for the dashboard aggregations: monthly summary with the
// month-over-month variation, top products limit clamping and the debt
// snapshot. Redis is nil, so every call computes against the stub.

import (
	"context"
	"testing"
	"time"

	"minegocio/internal/repository"
	"minegocio/internal/service"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── Stub EstadisticaRepository ───────────────────────────────────────────────

// stubEstadisticaRepo answers with canned values keyed by month start, and
// records the limit it was asked for.
type stubEstadisticaRepo struct {
	ventasPorMes map[string]decimal.Decimal
	numVentas    int64
	gastos       decimal.Decimal
	top          []repository.TopProductoResult
	margenes     []repository.MargenProductoResult
	categorias   []repository.GastoCategoriaResult

	deudaClientes    decimal.Decimal
	nClientes        int64
	deudaProveedores decimal.Decimal
	nProveedores     int64

	lastLimit int
}

func (r *stubEstadisticaRepo) SumVentas(_ context.Context, desde, _ time.Time) (decimal.Decimal, int64, error) {
	total, ok := r.ventasPorMes[desde.Format("2006-01")]
	if !ok {
		return decimal.Zero, 0, nil
	}
	return total, r.numVentas, nil
}

func (r *stubEstadisticaRepo) SumGastos(_ context.Context, _, _ time.Time) (decimal.Decimal, error) {
	return r.gastos, nil
}

func (r *stubEstadisticaRepo) TopProductos(_ context.Context, _, _ time.Time, limit int) ([]repository.TopProductoResult, error) {
	r.lastLimit = limit
	return r.top, nil
}

func (r *stubEstadisticaRepo) MargenesPorProducto(_ context.Context, _, _ time.Time, limit int) ([]repository.MargenProductoResult, error) {
	r.lastLimit = limit
	return r.margenes, nil
}

func (r *stubEstadisticaRepo) GastosPorCategoria(_ context.Context, _, _ time.Time) ([]repository.GastoCategoriaResult, error) {
	return r.categorias, nil
}

func (r *stubEstadisticaRepo) DeudasClientePendientes(_ context.Context) (decimal.Decimal, int64, error) {
	return r.deudaClientes, r.nClientes, nil
}

func (r *stubEstadisticaRepo) DeudasProveedorPendientes(_ context.Context) (decimal.Decimal, int64, error) {
	return r.deudaProveedores, r.nProveedores, nil
}

var _ repository.EstadisticaRepository = (*stubEstadisticaRepo)(nil)

// ── Tests ────────────────────────────────────────────────────────────────────

func TestResumenMensualConVariacion(t *testing.T) {
	repo := &stubEstadisticaRepo{
		ventasPorMes: map[string]decimal.Decimal{
			"2026-07": decimal.NewFromInt(1000),
			"2026-08": decimal.NewFromInt(1500),
		},
		numVentas: 42,
		gastos:    decimal.NewFromInt(400),
	}
	svc := service.NewEstadisticaService(repo, nil, 5*time.Second)

	resp, err := svc.ResumenMensual(context.Background(), 2026, 8)
	require.NoError(t, err)

	assert.Equal(t, 2026, resp.Anio)
	assert.Equal(t, 8, resp.Mes)
	assert.Equal(t, int64(42), resp.NumeroVentas)
	assert.True(t, resp.Utilidad.Equal(decimal.NewFromInt(1100)), "utilidad = %s", resp.Utilidad)
	// (1500 − 1000) / 1000 × 100 = 50%
	assert.True(t, resp.VariacionPct.Equal(decimal.NewFromInt(50)), "variacion = %s", resp.VariacionPct)
}

func TestResumenMensualSinMesAnterior(t *testing.T) {
	repo := &stubEstadisticaRepo{
		ventasPorMes: map[string]decimal.Decimal{
			"2026-08": decimal.NewFromInt(900),
		},
	}
	svc := service.NewEstadisticaService(repo, nil, 5*time.Second)

	resp, err := svc.ResumenMensual(context.Background(), 2026, 8)
	require.NoError(t, err)
	// No prior-month baseline: variation reports zero instead of dividing by it.
	assert.True(t, resp.VariacionPct.IsZero())
}

func TestTopProductosLimiteClamp(t *testing.T) {
	repo := &stubEstadisticaRepo{
		top: []repository.TopProductoResult{
			{ProductoID: "p1", Referencia: "REF-1", Nombre: "Camiseta", UnidadesVendidas: 12, Ingresos: decimal.NewFromInt(300)},
		},
	}
	svc := service.NewEstadisticaService(repo, nil, 5*time.Second)

	resp, err := svc.TopProductos(context.Background(), 2026, 8, 0)
	require.NoError(t, err)
	assert.Equal(t, 10, repo.lastLimit, "limit fuera de rango cae al default")
	require.Len(t, resp, 1)
	assert.Equal(t, "REF-1", resp[0].Referencia)

	_, err = svc.TopProductos(context.Background(), 2026, 8, 500)
	require.NoError(t, err)
	assert.Equal(t, 10, repo.lastLimit)

	_, err = svc.TopProductos(context.Background(), 2026, 8, 25)
	require.NoError(t, err)
	assert.Equal(t, 25, repo.lastLimit)
}

func TestMargenesPorProducto(t *testing.T) {
	repo := &stubEstadisticaRepo{
		margenes: []repository.MargenProductoResult{
			{
				ProductoID: "p1", Referencia: "REF-1", Nombre: "Zapato",
				UnidadesVendidas: 4,
				Ingresos:         decimal.NewFromInt(400),
				Costo:            decimal.NewFromInt(180),
				Utilidad:         decimal.NewFromInt(220),
			},
		},
	}
	svc := service.NewEstadisticaService(repo, nil, 5*time.Second)

	resp, err := svc.MargenesPorProducto(context.Background(), 2026, 8, 10)
	require.NoError(t, err)
	require.Len(t, resp, 1)
	assert.True(t, resp[0].Utilidad.Equal(decimal.NewFromInt(220)))
}

func TestGastosPorCategoria(t *testing.T) {
	repo := &stubEstadisticaRepo{
		categorias: []repository.GastoCategoriaResult{
			{Categoria: "Arriendo", Total: decimal.NewFromInt(800), Registros: 1},
			{Categoria: "Servicios", Total: decimal.NewFromInt(230), Registros: 3},
		},
	}
	svc := service.NewEstadisticaService(repo, nil, 5*time.Second)

	resp, err := svc.GastosPorCategoria(context.Background(), 2026, 8)
	require.NoError(t, err)
	require.Len(t, resp, 2)
	assert.Equal(t, "Arriendo", resp[0].Categoria)
	assert.Equal(t, int64(3), resp[1].Registros)
}

func TestResumenDeudas(t *testing.T) {
	repo := &stubEstadisticaRepo{
		deudaClientes:    decimal.NewFromInt(320),
		nClientes:        5,
		deudaProveedores: decimal.NewFromInt(1200),
		nProveedores:     2,
	}
	svc := service.NewEstadisticaService(repo, nil, 5*time.Second)

	resp, err := svc.ResumenDeudas(context.Background())
	require.NoError(t, err)
	assert.True(t, resp.ClientesPendiente.Equal(decimal.NewFromInt(320)))
	assert.Equal(t, int64(5), resp.ClientesRegistros)
	assert.True(t, resp.ProveedoresPendiente.Equal(decimal.NewFromInt(1200)))
	assert.Equal(t, int64(2), resp.ProveedoresRegistros)
}
