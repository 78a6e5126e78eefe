package tests

// gastos_test.go
// Unit tests for the expense ledger and the customer directory.

import (
	"context"
	"testing"
	"time"

	"minegocio/internal/dto"
	"minegocio/internal/model"
	"minegocio/internal/repository"
	"minegocio/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// ── In-memory GastoRepository stub ───────────────────────────────────────────

type stubGastoRepo struct {
	gastos map[uuid.UUID]*model.Gasto
}

func newStubGastoRepo() *stubGastoRepo {
	return &stubGastoRepo{gastos: make(map[uuid.UUID]*model.Gasto)}
}

func (r *stubGastoRepo) Create(_ context.Context, g *model.Gasto) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	cloned := *g
	r.gastos[g.ID] = &cloned
	return nil
}

func (r *stubGastoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Gasto, error) {
	g, ok := r.gastos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cloned := *g
	return &cloned, nil
}

func (r *stubGastoRepo) List(_ context.Context, filter dto.GastoFilter) ([]model.Gasto, int64, error) {
	var out []model.Gasto
	for _, g := range r.gastos {
		if filter.Categoria != "" && g.Categoria != filter.Categoria {
			continue
		}
		out = append(out, *g)
	}
	return out, int64(len(out)), nil
}

func (r *stubGastoRepo) Update(_ context.Context, g *model.Gasto) error {
	cloned := *g
	r.gastos[g.ID] = &cloned
	return nil
}

func (r *stubGastoRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.gastos, id)
	return nil
}

var _ repository.GastoRepository = (*stubGastoRepo)(nil)

// ── Gastos ───────────────────────────────────────────────────────────────────

func TestCrearGasto(t *testing.T) {
	svc := service.NewGastoService(newStubGastoRepo(), 5*time.Second)

	resp, err := svc.CrearGasto(context.Background(), dto.CrearGastoRequest{
		Fecha:       "2026-08-15",
		Descripcion: "Arriendo local agosto",
		Categoria:   "Arriendo",
		Monto:       decimal.NewFromInt(800),
		MetodoPago:  "Transferencia",
	})
	require.NoError(t, err)
	assert.Equal(t, "2026-08-15", resp.Fecha)
	assert.Equal(t, "Arriendo", resp.Categoria)
	assert.True(t, resp.Monto.Equal(decimal.NewFromInt(800)))
}

func TestCrearGastoMontoInvalido(t *testing.T) {
	svc := service.NewGastoService(newStubGastoRepo(), 5*time.Second)

	_, err := svc.CrearGasto(context.Background(), dto.CrearGastoRequest{
		Fecha:       "2026-08-15",
		Descripcion: "Nada",
		Categoria:   "Otros",
		Monto:       decimal.Zero,
		MetodoPago:  "Efectivo",
	})
	assert.ErrorIs(t, err, service.ErrMontoInvalido)
}

func TestCrearGastoFechaInvalida(t *testing.T) {
	svc := service.NewGastoService(newStubGastoRepo(), 5*time.Second)

	_, err := svc.CrearGasto(context.Background(), dto.CrearGastoRequest{
		Fecha:       "15/08/2026",
		Descripcion: "Servicios",
		Categoria:   "Servicios",
		Monto:       decimal.NewFromInt(90),
		MetodoPago:  "Efectivo",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fecha")
}

func TestActualizarGasto(t *testing.T) {
	repo := newStubGastoRepo()
	svc := service.NewGastoService(repo, 5*time.Second)

	creado, err := svc.CrearGasto(context.Background(), dto.CrearGastoRequest{
		Fecha:       "2026-08-01",
		Descripcion: "Factura de luz",
		Categoria:   "Servicios",
		Monto:       decimal.NewFromInt(120),
		MetodoPago:  "Efectivo",
	})
	require.NoError(t, err)

	nuevoMonto := decimal.NewFromInt(135)
	resp, err := svc.ActualizarGasto(context.Background(), uuid.MustParse(creado.ID), dto.ActualizarGastoRequest{
		Monto: &nuevoMonto,
	})
	require.NoError(t, err)
	assert.True(t, resp.Monto.Equal(nuevoMonto))
	assert.Equal(t, "Factura de luz", resp.Descripcion)
}

func TestEliminarGastoNoExistente(t *testing.T) {
	svc := service.NewGastoService(newStubGastoRepo(), 5*time.Second)
	err := svc.EliminarGasto(context.Background(), uuid.New())
	assert.ErrorIs(t, err, service.ErrNoEncontrado)
}

// ── Clientes ─────────────────────────────────────────────────────────────────

func TestCrearClienteCedulaDuplicada(t *testing.T) {
	repo := newStubClienteRepo()
	svc := service.NewClienteService(repo, 5*time.Second)

	cedula := "1043567890"
	_, err := svc.CrearCliente(context.Background(), dto.CrearClienteRequest{
		Nombre: "Laura Pérez", Cedula: &cedula,
	})
	require.NoError(t, err)

	_, err = svc.CrearCliente(context.Background(), dto.CrearClienteRequest{
		Nombre: "Laura P. (duplicada)", Cedula: &cedula,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cédula")
}

func TestActualizarClienteParcial(t *testing.T) {
	repo := newStubClienteRepo()
	svc := service.NewClienteService(repo, 5*time.Second)

	creado, err := svc.CrearCliente(context.Background(), dto.CrearClienteRequest{
		Nombre: "Pedro Lara",
	})
	require.NoError(t, err)

	celular := "3001234567"
	resp, err := svc.ActualizarCliente(context.Background(), uuid.MustParse(creado.ID), dto.ActualizarClienteRequest{
		Celular: &celular,
	})
	require.NoError(t, err)
	assert.Equal(t, "Pedro Lara", resp.Nombre)
	require.NotNil(t, resp.Celular)
	assert.Equal(t, celular, *resp.Celular)
}

func TestRecomputarAgregadosClienteNoExistente(t *testing.T) {
	svc := service.NewClienteService(newStubClienteRepo(), 5*time.Second)
	_, err := svc.RecomputarAgregados(context.Background(), uuid.New())
	assert.ErrorIs(t, err, service.ErrNoEncontrado)
}

func TestEliminarClienteNoExistente(t *testing.T) {
	svc := service.NewClienteService(newStubClienteRepo(), 5*time.Second)
	err := svc.EliminarCliente(context.Background(), uuid.New())
	assert.ErrorIs(t, err, service.ErrNoEncontrado)
}
