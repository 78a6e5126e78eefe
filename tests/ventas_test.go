package tests

// ventas_test.go
// Unit tests for the sale flow: totals, cambio, estados, sale numbering,
// debt creation for underpaid sales and cancellation with stock restore.
// Repositories are in-memory stubs; DB() returns nil so the service runs
// its transaction body directly.

import (
	"context"
	"errors"
	"strings"
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

// ── In-memory ProductoRepository stub ────────────────────────────────────────

type stubProductoRepo struct {
	productos map[uuid.UUID]*model.Producto
	variantes map[uuid.UUID]*model.Variante
}

func newStubProductoRepo() *stubProductoRepo {
	return &stubProductoRepo{
		productos: make(map[uuid.UUID]*model.Producto),
		variantes: make(map[uuid.UUID]*model.Variante),
	}
}

func (r *stubProductoRepo) Create(_ context.Context, p *model.Producto) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	for i := range p.Variantes {
		v := &p.Variantes[i]
		if v.ID == uuid.Nil {
			v.ID = uuid.New()
		}
		v.ProductoID = p.ID
		cloned := *v
		r.variantes[v.ID] = &cloned
	}
	r.productos[p.ID] = p
	return nil
}

func (r *stubProductoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Producto, error) {
	p, ok := r.productos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	// Rebuild the variant slice from the live map, like a Preload would.
	cloned := *p
	cloned.Variantes = nil
	for _, v := range r.variantes {
		if v.ProductoID == id {
			cloned.Variantes = append(cloned.Variantes, *v)
		}
	}
	return &cloned, nil
}

func (r *stubProductoRepo) FindByReferencia(_ context.Context, referencia string) (*model.Producto, error) {
	for id, p := range r.productos {
		if p.Referencia == referencia && p.Activo {
			return r.FindByID(context.Background(), id)
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubProductoRepo) List(_ context.Context, _ dto.ProductoFilter) ([]model.Producto, int64, error) {
	var out []model.Producto
	for _, p := range r.productos {
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (r *stubProductoRepo) Update(_ context.Context, p *model.Producto) error {
	r.productos[p.ID] = p
	return nil
}

func (r *stubProductoRepo) Desactivar(_ context.Context, id uuid.UUID) error {
	p, ok := r.productos[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.Activo = false
	return nil
}

func (r *stubProductoRepo) Reactivar(_ context.Context, id uuid.UUID) error {
	p, ok := r.productos[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.Activo = true
	return nil
}

func (r *stubProductoRepo) CreateVariante(_ context.Context, v *model.Variante) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	cloned := *v
	r.variantes[v.ID] = &cloned
	return nil
}

func (r *stubProductoRepo) FindVarianteByID(_ context.Context, id uuid.UUID) (*model.Variante, error) {
	v, ok := r.variantes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cloned := *v
	return &cloned, nil
}

func (r *stubProductoRepo) UpdateVariante(_ context.Context, v *model.Variante) error {
	cloned := *v
	r.variantes[v.ID] = &cloned
	return nil
}

func (r *stubProductoRepo) DeleteVariante(_ context.Context, id uuid.UUID) error {
	delete(r.variantes, id)
	return nil
}

func (r *stubProductoRepo) DescontarStockVarianteTx(_ *gorm.DB, id uuid.UUID, cantidad int) error {
	v, ok := r.variantes[id]
	if !ok || v.Cantidad < cantidad {
		return repository.ErrStockInsuficiente
	}
	v.Cantidad -= cantidad
	return nil
}

func (r *stubProductoRepo) DescontarStockProductoTx(_ *gorm.DB, id uuid.UUID, cantidad int) error {
	p, ok := r.productos[id]
	if !ok || p.Stock < cantidad {
		return repository.ErrStockInsuficiente
	}
	p.Stock -= cantidad
	return nil
}

func (r *stubProductoRepo) RestaurarStockVarianteTx(_ *gorm.DB, id uuid.UUID, cantidad int) error {
	v, ok := r.variantes[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	v.Cantidad += cantidad
	return nil
}

func (r *stubProductoRepo) RestaurarStockProductoTx(_ *gorm.DB, id uuid.UUID, cantidad int) error {
	p, ok := r.productos[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.Stock += cantidad
	return nil
}

func (r *stubProductoRepo) AjustarStock(_ context.Context, productoID uuid.UUID, varianteID *uuid.UUID, delta int) error {
	if varianteID != nil {
		if delta < 0 {
			return r.DescontarStockVarianteTx(nil, *varianteID, -delta)
		}
		return r.RestaurarStockVarianteTx(nil, *varianteID, delta)
	}
	if delta < 0 {
		return r.DescontarStockProductoTx(nil, productoID, -delta)
	}
	return r.RestaurarStockProductoTx(nil, productoID, delta)
}

func (r *stubProductoRepo) DB() *gorm.DB { return nil }

var _ repository.ProductoRepository = (*stubProductoRepo)(nil)

// ── In-memory ClienteRepository stub ─────────────────────────────────────────

type stubClienteRepo struct {
	clientes map[uuid.UUID]*model.Cliente
}

func newStubClienteRepo() *stubClienteRepo {
	return &stubClienteRepo{clientes: make(map[uuid.UUID]*model.Cliente)}
}

func (r *stubClienteRepo) Create(_ context.Context, c *model.Cliente) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.clientes[c.ID] = c
	return nil
}

func (r *stubClienteRepo) CreateTx(_ *gorm.DB, c *model.Cliente) error {
	return r.Create(context.Background(), c)
}

func (r *stubClienteRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Cliente, error) {
	c, ok := r.clientes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cloned := *c
	return &cloned, nil
}

func (r *stubClienteRepo) FindByIDTx(_ *gorm.DB, id uuid.UUID) (*model.Cliente, error) {
	return r.FindByID(context.Background(), id)
}

func (r *stubClienteRepo) FindByCedula(_ context.Context, cedula string) (*model.Cliente, error) {
	for _, c := range r.clientes {
		if c.Cedula != nil && *c.Cedula == cedula {
			cloned := *c
			return &cloned, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubClienteRepo) List(_ context.Context, _ dto.ClienteFilter) ([]model.Cliente, int64, error) {
	var out []model.Cliente
	for _, c := range r.clientes {
		out = append(out, *c)
	}
	return out, int64(len(out)), nil
}

func (r *stubClienteRepo) Update(_ context.Context, c *model.Cliente) error {
	cloned := *c
	r.clientes[c.ID] = &cloned
	return nil
}

func (r *stubClienteRepo) UpdateTx(_ *gorm.DB, c *model.Cliente) error {
	return r.Update(context.Background(), c)
}

func (r *stubClienteRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.clientes, id)
	return nil
}

func (r *stubClienteRepo) AplicarCompraTx(_ *gorm.DB, id uuid.UUID, total decimal.Decimal, fecha time.Time) error {
	c, ok := r.clientes[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	c.TotalCompras = c.TotalCompras.Add(total)
	c.NumeroCompras++
	c.UltimaCompra = &fecha
	return nil
}

func (r *stubClienteRepo) RevertirCompraTx(_ *gorm.DB, id uuid.UUID, total decimal.Decimal) error {
	c, ok := r.clientes[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	c.TotalCompras = c.TotalCompras.Sub(total)
	c.NumeroCompras--
	return nil
}

func (r *stubClienteRepo) RecomputarAgregados(_ context.Context, _ uuid.UUID) error { return nil }

var _ repository.ClienteRepository = (*stubClienteRepo)(nil)

// ── In-memory VentaRepository stub ───────────────────────────────────────────

type stubVentaRepo struct {
	ventas  map[uuid.UUID]*model.Venta
	counter int64
}

func newStubVentaRepo() *stubVentaRepo {
	return &stubVentaRepo{ventas: make(map[uuid.UUID]*model.Venta)}
}

func (r *stubVentaRepo) Create(_ context.Context, _ *gorm.DB, v *model.Venta) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	cloned := *v
	r.ventas[v.ID] = &cloned
	return nil
}

func (r *stubVentaRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Venta, error) {
	v, ok := r.ventas[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cloned := *v
	return &cloned, nil
}

func (r *stubVentaRepo) UpdateEstadoTx(_ *gorm.DB, id uuid.UUID, estado string) error {
	v, ok := r.ventas[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	v.Estado = estado
	return nil
}

func (r *stubVentaRepo) List(_ context.Context, _ dto.VentaFilter) ([]model.Venta, int64, error) {
	var out []model.Venta
	for _, v := range r.ventas {
		out = append(out, *v)
	}
	return out, int64(len(out)), nil
}

func (r *stubVentaRepo) NextNumeroVenta(_ context.Context, _ *gorm.DB) (int64, error) {
	r.counter++
	return r.counter, nil
}

func (r *stubVentaRepo) DB() *gorm.DB { return nil }

var _ repository.VentaRepository = (*stubVentaRepo)(nil)

// ── In-memory DeudaClienteRepository stub ────────────────────────────────────

type stubDeudaClienteRepo struct {
	deudas map[uuid.UUID]*model.DeudaCliente
	abonos map[uuid.UUID][]model.Abono
}

func newStubDeudaClienteRepo() *stubDeudaClienteRepo {
	return &stubDeudaClienteRepo{
		deudas: make(map[uuid.UUID]*model.DeudaCliente),
		abonos: make(map[uuid.UUID][]model.Abono),
	}
}

func (r *stubDeudaClienteRepo) CreateTx(_ *gorm.DB, d *model.DeudaCliente) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	cloned := *d
	r.deudas[d.ID] = &cloned
	return nil
}

func (r *stubDeudaClienteRepo) FindByID(_ context.Context, id uuid.UUID) (*model.DeudaCliente, error) {
	d, ok := r.deudas[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cloned := *d
	cloned.Abonos = append([]model.Abono(nil), r.abonos[id]...)
	return &cloned, nil
}

func (r *stubDeudaClienteRepo) FindAbiertaPorVentaTx(_ *gorm.DB, ventaID uuid.UUID) (*model.DeudaCliente, error) {
	for _, d := range r.deudas {
		if d.VentaID == ventaID && d.Estado == model.DeudaPendiente {
			cloned := *d
			return &cloned, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubDeudaClienteRepo) List(_ context.Context, _ dto.DeudaFilter) ([]model.DeudaCliente, int64, error) {
	var out []model.DeudaCliente
	for _, d := range r.deudas {
		out = append(out, *d)
	}
	return out, int64(len(out)), nil
}

func (r *stubDeudaClienteRepo) UpdateTx(_ *gorm.DB, d *model.DeudaCliente) error {
	cloned := *d
	r.deudas[d.ID] = &cloned
	return nil
}

func (r *stubDeudaClienteRepo) CreateAbonoTx(_ *gorm.DB, a *model.Abono) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	r.abonos[a.DeudaID] = append(r.abonos[a.DeudaID], *a)
	return nil
}

func (r *stubDeudaClienteRepo) ListAbonos(_ context.Context, deudaID uuid.UUID) ([]model.Abono, error) {
	return r.abonos[deudaID], nil
}

func (r *stubDeudaClienteRepo) ListPendientesVencidas(_ context.Context, antesDe, recordatorioAntesDe time.Time, limit int) ([]model.DeudaCliente, error) {
	var out []model.DeudaCliente
	for _, d := range r.deudas {
		if d.Estado != model.DeudaPendiente || !d.CreatedAt.Before(antesDe) {
			continue
		}
		if d.RecordatorioEnviadoAt != nil && !d.RecordatorioEnviadoAt.Before(recordatorioAntesDe) {
			continue
		}
		out = append(out, *d)
		if len(out) >= limit {
			break
		}
	}
	return out, nil
}

func (r *stubDeudaClienteRepo) MarcarRecordatorio(_ context.Context, id uuid.UUID, enviadoAt time.Time) error {
	d, ok := r.deudas[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	d.RecordatorioEnviadoAt = &enviadoAt
	return nil
}

func (r *stubDeudaClienteRepo) DB() *gorm.DB { return nil }

var _ repository.DeudaClienteRepository = (*stubDeudaClienteRepo)(nil)

// ── Fixture helpers ──────────────────────────────────────────────────────────

type ventaFixture struct {
	svc          service.VentaService
	ventaRepo    *stubVentaRepo
	productoRepo *stubProductoRepo
	clienteRepo  *stubClienteRepo
	deudaRepo    *stubDeudaClienteRepo
}

func newVentaFixture() *ventaFixture {
	f := &ventaFixture{
		ventaRepo:    newStubVentaRepo(),
		productoRepo: newStubProductoRepo(),
		clienteRepo:  newStubClienteRepo(),
		deudaRepo:    newStubDeudaClienteRepo(),
	}
	f.svc = service.NewVentaService(f.ventaRepo, f.productoRepo, f.clienteRepo, f.deudaRepo, nil, 5*time.Second)
	return f
}

func (f *ventaFixture) seedProducto(referencia string, stock int, precio float64) *model.Producto {
	p := &model.Producto{
		Referencia:      referencia,
		Nombre:          "Producto " + referencia,
		Categoria:       "General",
		CostoBase:       decimal.NewFromFloat(precio / 2),
		PrecioVentaBase: decimal.NewFromFloat(precio),
		Stock:           stock,
		Activo:          true,
	}
	_ = f.productoRepo.Create(context.Background(), p)
	return p
}

func (f *ventaFixture) seedProductoConTallas(referencia string, tallas map[string]int, precio float64) *model.Producto {
	p := &model.Producto{
		Referencia:      referencia,
		Nombre:          "Producto " + referencia,
		Categoria:       "Calzado",
		CostoBase:       decimal.NewFromFloat(precio / 2),
		PrecioVentaBase: decimal.NewFromFloat(precio),
		TieneVariantes:  true,
		Activo:          true,
	}
	for talla, cantidad := range tallas {
		p.Variantes = append(p.Variantes, model.Variante{Talla: talla, Cantidad: cantidad})
	}
	_ = f.productoRepo.Create(context.Background(), p)
	return p
}

func itemReq(p *model.Producto, cantidad int, precio float64) dto.ItemVentaRequest {
	return dto.ItemVentaRequest{
		ProductoID:     p.ID.String(),
		Cantidad:       cantidad,
		PrecioUnitario: decimal.NewFromFloat(precio),
	}
}

// ── Tests ────────────────────────────────────────────────────────────────────

func TestRegistrarVentaEfectivoConCambio(t *testing.T) {
	f := newVentaFixture()
	p := f.seedProducto("REF-001", 10, 25)

	resp, err := f.svc.RegistrarVenta(context.Background(), dto.RegistrarVentaRequest{
		Items:       []dto.ItemVentaRequest{itemReq(p, 2, 25)},
		MetodoPago:  "Efectivo",
		MontoPagado: decimal.NewFromInt(60),
	})
	require.NoError(t, err)

	assert.Equal(t, "VTA-000001", resp.NumeroVenta)
	assert.Equal(t, model.VentaPagada, resp.Estado)
	assert.True(t, resp.Total.Equal(decimal.NewFromInt(50)), "total = %s", resp.Total)
	assert.True(t, resp.Cambio.Equal(decimal.NewFromInt(10)), "cambio = %s", resp.Cambio)
	assert.False(t, resp.DeudaGenerada)
	assert.Equal(t, 8, f.productoRepo.productos[p.ID].Stock)
}

func TestRegistrarVentaNumeracionConsecutiva(t *testing.T) {
	f := newVentaFixture()
	p := f.seedProducto("REF-002", 10, 10)

	for i, esperado := range []string{"VTA-000001", "VTA-000002", "VTA-000003"} {
		resp, err := f.svc.RegistrarVenta(context.Background(), dto.RegistrarVentaRequest{
			Items:       []dto.ItemVentaRequest{itemReq(p, 1, 10)},
			MetodoPago:  "Efectivo",
			MontoPagado: decimal.NewFromInt(10),
		})
		require.NoError(t, err, "venta %d", i+1)
		assert.Equal(t, esperado, resp.NumeroVenta)
	}
}

func TestRegistrarVentaTarjetaSinCambio(t *testing.T) {
	f := newVentaFixture()
	p := f.seedProducto("REF-003", 5, 30)

	// Overpaying with card never produces change.
	resp, err := f.svc.RegistrarVenta(context.Background(), dto.RegistrarVentaRequest{
		Items:       []dto.ItemVentaRequest{itemReq(p, 1, 30)},
		MetodoPago:  "Tarjeta",
		MontoPagado: decimal.NewFromInt(40),
	})
	require.NoError(t, err)
	assert.True(t, resp.Cambio.IsZero(), "cambio = %s", resp.Cambio)
	assert.Equal(t, model.VentaPagada, resp.Estado)
}

func TestRegistrarVentaParcialGeneraDeuda(t *testing.T) {
	f := newVentaFixture()
	p := f.seedProducto("REF-004", 5, 100)
	nombre := "María Gómez"

	resp, err := f.svc.RegistrarVenta(context.Background(), dto.RegistrarVentaRequest{
		Items:       []dto.ItemVentaRequest{itemReq(p, 1, 100)},
		Cliente:     &dto.ClienteVentaRequest{Nombre: &nombre},
		MetodoPago:  "Efectivo",
		MontoPagado: decimal.NewFromInt(40),
	})
	require.NoError(t, err)

	assert.Equal(t, model.VentaPendiente, resp.Estado)
	assert.True(t, resp.DeudaGenerada)
	assert.True(t, resp.Cambio.IsZero())
	require.NotNil(t, resp.ClienteNombre)
	assert.Equal(t, nombre, *resp.ClienteNombre)

	// One debt for the remainder, attached to the newly created customer.
	require.Len(t, f.deudaRepo.deudas, 1)
	for _, d := range f.deudaRepo.deudas {
		assert.True(t, d.MontoPendiente.Equal(decimal.NewFromInt(60)), "pendiente = %s", d.MontoPendiente)
		assert.Equal(t, model.DeudaPendiente, d.Estado)
	}

	// Customer aggregates bumped inside the same flow.
	require.Len(t, f.clienteRepo.clientes, 1)
	for _, c := range f.clienteRepo.clientes {
		assert.Equal(t, 1, c.NumeroCompras)
		assert.True(t, c.TotalCompras.Equal(decimal.NewFromInt(100)))
	}
}

func TestRegistrarVentaAnonimaParcialRechazada(t *testing.T) {
	f := newVentaFixture()
	p := f.seedProducto("REF-005", 5, 100)

	_, err := f.svc.RegistrarVenta(context.Background(), dto.RegistrarVentaRequest{
		Items:       []dto.ItemVentaRequest{itemReq(p, 1, 100)},
		MetodoPago:  "Efectivo",
		MontoPagado: decimal.NewFromInt(40),
	})
	assert.ErrorIs(t, err, service.ErrClienteRequerido)
	assert.Empty(t, f.ventaRepo.ventas)
}

func TestRegistrarVentaStockInsuficiente(t *testing.T) {
	f := newVentaFixture()
	p := f.seedProducto("REF-006", 1, 20)

	_, err := f.svc.RegistrarVenta(context.Background(), dto.RegistrarVentaRequest{
		Items:       []dto.ItemVentaRequest{itemReq(p, 3, 20)},
		MetodoPago:  "Efectivo",
		MontoPagado: decimal.NewFromInt(60),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, repository.ErrStockInsuficiente)
	// The conditional decrement refused; stock untouched.
	assert.Equal(t, 1, f.productoRepo.productos[p.ID].Stock)
}

func TestRegistrarVentaTallaRequerida(t *testing.T) {
	f := newVentaFixture()
	p := f.seedProductoConTallas("REF-007", map[string]int{"38": 4}, 80)

	_, err := f.svc.RegistrarVenta(context.Background(), dto.RegistrarVentaRequest{
		Items:       []dto.ItemVentaRequest{itemReq(p, 1, 80)},
		MetodoPago:  "Efectivo",
		MontoPagado: decimal.NewFromInt(80),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "talla")
}

func TestRegistrarVentaVarianteDescuentaTalla(t *testing.T) {
	f := newVentaFixture()
	p := f.seedProductoConTallas("REF-008", map[string]int{"40": 3}, 90)

	var varianteID uuid.UUID
	for id := range f.productoRepo.variantes {
		varianteID = id
	}
	vid := varianteID.String()

	item := itemReq(p, 2, 90)
	item.VarianteID = &vid
	resp, err := f.svc.RegistrarVenta(context.Background(), dto.RegistrarVentaRequest{
		Items:       []dto.ItemVentaRequest{item},
		MetodoPago:  "Efectivo",
		MontoPagado: decimal.NewFromInt(180),
	})
	require.NoError(t, err)

	require.Len(t, resp.Items, 1)
	require.NotNil(t, resp.Items[0].Talla)
	assert.Equal(t, "40", *resp.Items[0].Talla)
	assert.Equal(t, 1, f.productoRepo.variantes[varianteID].Cantidad)
}

func TestRegistrarVentaItemDuplicado(t *testing.T) {
	f := newVentaFixture()
	p := f.seedProducto("REF-009", 10, 15)

	_, err := f.svc.RegistrarVenta(context.Background(), dto.RegistrarVentaRequest{
		Items:       []dto.ItemVentaRequest{itemReq(p, 1, 15), itemReq(p, 2, 15)},
		MetodoPago:  "Efectivo",
		MontoPagado: decimal.NewFromInt(45),
	})
	assert.ErrorIs(t, err, service.ErrItemDuplicado)
}

func TestRegistrarVentaCostosExtra(t *testing.T) {
	f := newVentaFixture()
	p := f.seedProducto("REF-010", 5, 50)

	resp, err := f.svc.RegistrarVenta(context.Background(), dto.RegistrarVentaRequest{
		Items: []dto.ItemVentaRequest{itemReq(p, 1, 50)},
		CostosExtra: []dto.CostoExtraRequest{
			{Concepto: "Domicilio", Monto: decimal.NewFromInt(8)},
		},
		MetodoPago:  "Efectivo",
		MontoPagado: decimal.NewFromInt(58),
	})
	require.NoError(t, err)
	assert.True(t, resp.Subtotal.Equal(decimal.NewFromInt(50)))
	assert.True(t, resp.Total.Equal(decimal.NewFromInt(58)), "total = %s", resp.Total)
	assert.Equal(t, model.VentaPagada, resp.Estado)
}

func TestRegistrarVentaProductoInactivo(t *testing.T) {
	f := newVentaFixture()
	p := f.seedProducto("REF-011", 5, 20)
	p.Activo = false

	_, err := f.svc.RegistrarVenta(context.Background(), dto.RegistrarVentaRequest{
		Items:       []dto.ItemVentaRequest{itemReq(p, 1, 20)},
		MetodoPago:  "Efectivo",
		MontoPagado: decimal.NewFromInt(20),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "inactivo")
}

func TestAnularVentaRestauraStockYCancelaDeuda(t *testing.T) {
	f := newVentaFixture()
	p := f.seedProducto("REF-012", 10, 100)
	nombre := "Carlos Ruiz"

	resp, err := f.svc.RegistrarVenta(context.Background(), dto.RegistrarVentaRequest{
		Items:       []dto.ItemVentaRequest{itemReq(p, 3, 100)},
		Cliente:     &dto.ClienteVentaRequest{Nombre: &nombre},
		MetodoPago:  "Efectivo",
		MontoPagado: decimal.NewFromInt(100),
	})
	require.NoError(t, err)
	require.Equal(t, 7, f.productoRepo.productos[p.ID].Stock)

	ventaID := uuid.MustParse(resp.ID)
	require.NoError(t, f.svc.AnularVenta(context.Background(), ventaID))

	assert.Equal(t, 10, f.productoRepo.productos[p.ID].Stock)
	assert.Equal(t, model.VentaCancelada, f.ventaRepo.ventas[ventaID].Estado)
	for _, d := range f.deudaRepo.deudas {
		assert.Equal(t, model.DeudaCancelada, d.Estado)
	}
	for _, c := range f.clienteRepo.clientes {
		assert.Equal(t, 0, c.NumeroCompras)
		assert.True(t, c.TotalCompras.IsZero())
	}
}

func TestAnularVentaDosVeces(t *testing.T) {
	f := newVentaFixture()
	p := f.seedProducto("REF-013", 10, 10)

	resp, err := f.svc.RegistrarVenta(context.Background(), dto.RegistrarVentaRequest{
		Items:       []dto.ItemVentaRequest{itemReq(p, 1, 10)},
		MetodoPago:  "Efectivo",
		MontoPagado: decimal.NewFromInt(10),
	})
	require.NoError(t, err)

	ventaID := uuid.MustParse(resp.ID)
	require.NoError(t, f.svc.AnularVenta(context.Background(), ventaID))

	// Second cancellation is rejected and must not restock again.
	err = f.svc.AnularVenta(context.Background(), ventaID)
	assert.ErrorIs(t, err, service.ErrVentaYaAnulada)
	assert.Equal(t, 10, f.productoRepo.productos[p.ID].Stock)
}

func TestAnularVentaNoExistente(t *testing.T) {
	f := newVentaFixture()
	err := f.svc.AnularVenta(context.Background(), uuid.New())
	assert.True(t, errors.Is(err, service.ErrNoEncontrado), "err = %v", err)
}

func TestRegistrarVentaClienteExistenteActualizaContacto(t *testing.T) {
	f := newVentaFixture()
	p := f.seedProducto("REF-014", 5, 20)

	cliente := &model.Cliente{Nombre: "Ana Torres"}
	require.NoError(t, f.clienteRepo.Create(context.Background(), cliente))

	id := cliente.ID.String()
	correo := "ana@example.com"
	_, err := f.svc.RegistrarVenta(context.Background(), dto.RegistrarVentaRequest{
		Items:       []dto.ItemVentaRequest{itemReq(p, 1, 20)},
		Cliente:     &dto.ClienteVentaRequest{ID: &id, Correo: &correo},
		MetodoPago:  "Efectivo",
		MontoPagado: decimal.NewFromInt(20),
	})
	require.NoError(t, err)

	actualizado := f.clienteRepo.clientes[cliente.ID]
	require.NotNil(t, actualizado.Correo)
	assert.Equal(t, correo, *actualizado.Correo)
	assert.Equal(t, 1, actualizado.NumeroCompras)
}

func TestObtenerVentaNoExistente(t *testing.T) {
	f := newVentaFixture()
	_, err := f.svc.ObtenerVenta(context.Background(), uuid.New())
	assert.ErrorIs(t, err, service.ErrNoEncontrado)
}

func TestListVentasPaginacionPorDefecto(t *testing.T) {
	f := newVentaFixture()
	p := f.seedProducto("REF-015", 20, 5)
	for i := 0; i < 3; i++ {
		_, err := f.svc.RegistrarVenta(context.Background(), dto.RegistrarVentaRequest{
			Items:       []dto.ItemVentaRequest{itemReq(p, 1, 5)},
			MetodoPago:  "Efectivo",
			MontoPagado: decimal.NewFromInt(5),
		})
		require.NoError(t, err)
	}

	resp, err := f.svc.ListVentas(context.Background(), dto.VentaFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), resp.Total)
	assert.Equal(t, 1, resp.Page)
	assert.Equal(t, 50, resp.Limit)
	for _, v := range resp.Data {
		assert.True(t, strings.HasPrefix(v.NumeroVenta, "VTA-"), "numero = %s", v.NumeroVenta)
	}
}
