package tests

// inventario_test.go
// Unit tests for the product catalog: creation with and without tallas,
// duplicate references, variant management and manual stock adjustments.

import (
	"context"
	"testing"
	"time"

	"minegocio/internal/dto"
	"minegocio/internal/repository"
	"minegocio/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProductoService(repo *stubProductoRepo) service.ProductoService {
	return service.NewProductoService(repo, 5*time.Second)
}

func TestCrearProductoSimple(t *testing.T) {
	repo := newStubProductoRepo()
	svc := newProductoService(repo)

	resp, err := svc.CrearProducto(context.Background(), dto.CrearProductoRequest{
		Referencia:      "CAM-001",
		Nombre:          "Camiseta blanca",
		Categoria:       "Ropa",
		CostoBase:       decimal.NewFromInt(10),
		PrecioVentaBase: decimal.NewFromInt(25),
		Stock:           15,
	})
	require.NoError(t, err)
	assert.False(t, resp.TieneVariantes)
	assert.Equal(t, 15, resp.Stock)
	assert.True(t, resp.Activo)
}

func TestCrearProductoConVariantes(t *testing.T) {
	repo := newStubProductoRepo()
	svc := newProductoService(repo)

	resp, err := svc.CrearProducto(context.Background(), dto.CrearProductoRequest{
		Referencia:      "ZAP-001",
		Nombre:          "Zapato deportivo",
		Categoria:       "Calzado",
		CostoBase:       decimal.NewFromInt(40),
		PrecioVentaBase: decimal.NewFromInt(95),
		Stock:           99, // ignored: with tallas the stock lives on the variants
		Variantes: []dto.VarianteRequest{
			{Talla: "38", Cantidad: 3},
			{Talla: "39", Cantidad: 5, AjustePrecio: decimal.NewFromInt(5)},
		},
	})
	require.NoError(t, err)
	assert.True(t, resp.TieneVariantes)
	assert.Equal(t, 8, resp.Stock, "stock del producto = suma de tallas")
	require.Len(t, resp.Variantes, 2)
	for _, v := range resp.Variantes {
		if v.Talla == "39" {
			assert.True(t, v.PrecioVenta.Equal(decimal.NewFromInt(100)), "precio talla 39 = %s", v.PrecioVenta)
		}
	}
}

func TestCrearProductoReferenciaDuplicada(t *testing.T) {
	repo := newStubProductoRepo()
	svc := newProductoService(repo)

	req := dto.CrearProductoRequest{
		Referencia:      "DUP-001",
		Nombre:          "Original",
		Categoria:       "Ropa",
		PrecioVentaBase: decimal.NewFromInt(20),
	}
	_, err := svc.CrearProducto(context.Background(), req)
	require.NoError(t, err)

	req.Nombre = "Copia"
	_, err = svc.CrearProducto(context.Background(), req)
	assert.ErrorIs(t, err, service.ErrReferenciaDuplicada)
}

func TestCrearProductoTallaRepetida(t *testing.T) {
	repo := newStubProductoRepo()
	svc := newProductoService(repo)

	_, err := svc.CrearProducto(context.Background(), dto.CrearProductoRequest{
		Referencia:      "ZAP-002",
		Nombre:          "Bota",
		Categoria:       "Calzado",
		PrecioVentaBase: decimal.NewFromInt(120),
		Variantes: []dto.VarianteRequest{
			{Talla: "40", Cantidad: 1},
			{Talla: "40", Cantidad: 2},
		},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "repetida")
}

func TestAgregarVarianteActivaTallas(t *testing.T) {
	repo := newStubProductoRepo()
	svc := newProductoService(repo)

	resp, err := svc.CrearProducto(context.Background(), dto.CrearProductoRequest{
		Referencia:      "PAN-001",
		Nombre:          "Pantalón",
		Categoria:       "Ropa",
		PrecioVentaBase: decimal.NewFromInt(60),
		Stock:           7,
	})
	require.NoError(t, err)
	id := uuid.MustParse(resp.ID)

	// Adding the first talla converts the product to variant mode.
	resp, err = svc.AgregarVariante(context.Background(), id, dto.VarianteRequest{Talla: "M", Cantidad: 4})
	require.NoError(t, err)
	assert.True(t, resp.TieneVariantes)
	assert.Equal(t, 4, resp.Stock)

	// Same talla twice is rejected.
	_, err = svc.AgregarVariante(context.Background(), id, dto.VarianteRequest{Talla: "M", Cantidad: 1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "talla")
}

func TestActualizarVarianteDeOtroProducto(t *testing.T) {
	repo := newStubProductoRepo()
	svc := newProductoService(repo)

	a, err := svc.CrearProducto(context.Background(), dto.CrearProductoRequest{
		Referencia: "A-001", Nombre: "A", Categoria: "Ropa",
		PrecioVentaBase: decimal.NewFromInt(10),
		Variantes:       []dto.VarianteRequest{{Talla: "S", Cantidad: 1}},
	})
	require.NoError(t, err)
	b, err := svc.CrearProducto(context.Background(), dto.CrearProductoRequest{
		Referencia: "B-001", Nombre: "B", Categoria: "Ropa",
		PrecioVentaBase: decimal.NewFromInt(10),
		Variantes:       []dto.VarianteRequest{{Talla: "S", Cantidad: 1}},
	})
	require.NoError(t, err)

	varianteDeA := uuid.MustParse(a.Variantes[0].ID)
	_, err = svc.ActualizarVariante(context.Background(), uuid.MustParse(b.ID), varianteDeA,
		dto.VarianteRequest{Talla: "S", Cantidad: 9})
	assert.ErrorIs(t, err, service.ErrNoEncontrado)
}

func TestAjustarStockPositivoYNegativo(t *testing.T) {
	repo := newStubProductoRepo()
	svc := newProductoService(repo)

	resp, err := svc.CrearProducto(context.Background(), dto.CrearProductoRequest{
		Referencia: "AJ-001", Nombre: "Gorra", Categoria: "Accesorios",
		PrecioVentaBase: decimal.NewFromInt(15), Stock: 10,
	})
	require.NoError(t, err)
	id := uuid.MustParse(resp.ID)

	resp, err = svc.AjustarStock(context.Background(), id, dto.AjustarStockRequest{Delta: 5})
	require.NoError(t, err)
	assert.Equal(t, 15, resp.Stock)

	resp, err = svc.AjustarStock(context.Background(), id, dto.AjustarStockRequest{Delta: -12})
	require.NoError(t, err)
	assert.Equal(t, 3, resp.Stock)

	// Draining below zero is refused and leaves the count intact.
	_, err = svc.AjustarStock(context.Background(), id, dto.AjustarStockRequest{Delta: -4})
	assert.ErrorIs(t, err, repository.ErrStockInsuficiente)
	actual, err := svc.ObtenerProducto(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, 3, actual.Stock)
}

func TestAjustarStockVarianteObligatoria(t *testing.T) {
	repo := newStubProductoRepo()
	svc := newProductoService(repo)

	resp, err := svc.CrearProducto(context.Background(), dto.CrearProductoRequest{
		Referencia: "AJ-002", Nombre: "Tenis", Categoria: "Calzado",
		PrecioVentaBase: decimal.NewFromInt(70),
		Variantes:       []dto.VarianteRequest{{Talla: "41", Cantidad: 2}},
	})
	require.NoError(t, err)

	_, err = svc.AjustarStock(context.Background(), uuid.MustParse(resp.ID), dto.AjustarStockRequest{Delta: 1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "variante_id")
}

func TestDesactivarYReactivarProducto(t *testing.T) {
	repo := newStubProductoRepo()
	svc := newProductoService(repo)

	resp, err := svc.CrearProducto(context.Background(), dto.CrearProductoRequest{
		Referencia: "OFF-001", Nombre: "Bufanda", Categoria: "Accesorios",
		PrecioVentaBase: decimal.NewFromInt(12), Stock: 2,
	})
	require.NoError(t, err)
	id := uuid.MustParse(resp.ID)

	require.NoError(t, svc.DesactivarProducto(context.Background(), id))
	// Inactive products disappear from the reference lookup.
	_, err = svc.BuscarPorReferencia(context.Background(), "OFF-001")
	assert.ErrorIs(t, err, service.ErrNoEncontrado)

	require.NoError(t, svc.ReactivarProducto(context.Background(), id))
	encontrado, err := svc.BuscarPorReferencia(context.Background(), "OFF-001")
	require.NoError(t, err)
	assert.Equal(t, resp.ID, encontrado.ID)
}

func TestEliminarVariante(t *testing.T) {
	repo := newStubProductoRepo()
	svc := newProductoService(repo)

	resp, err := svc.CrearProducto(context.Background(), dto.CrearProductoRequest{
		Referencia: "DEL-001", Nombre: "Sandalias", Categoria: "Calzado",
		PrecioVentaBase: decimal.NewFromInt(35),
		Variantes: []dto.VarianteRequest{
			{Talla: "36", Cantidad: 2},
			{Talla: "37", Cantidad: 3},
		},
	})
	require.NoError(t, err)
	id := uuid.MustParse(resp.ID)
	varianteID := uuid.MustParse(resp.Variantes[0].ID)

	require.NoError(t, svc.EliminarVariante(context.Background(), id, varianteID))
	actual, err := svc.ObtenerProducto(context.Background(), id)
	require.NoError(t, err)
	assert.Len(t, actual.Variantes, 1)
}
