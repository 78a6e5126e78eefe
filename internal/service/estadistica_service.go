package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"minegocio/internal/dto"
	"minegocio/internal/repository"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// statsCacheTTL keeps the dashboard snappy without serving stale numbers for
// long: a sale registered now shows up within a minute.
const statsCacheTTL = 60 * time.Second

var cien = decimal.NewFromInt(100)

type EstadisticaService interface {
	ResumenMensual(ctx context.Context, anio, mes int) (*dto.ResumenMensualResponse, error)
	TopProductos(ctx context.Context, anio, mes, limit int) ([]dto.TopProductoResponse, error)
	MargenesPorProducto(ctx context.Context, anio, mes, limit int) ([]dto.MargenProductoResponse, error)
	GastosPorCategoria(ctx context.Context, anio, mes int) ([]dto.GastoCategoriaResponse, error)
	ResumenDeudas(ctx context.Context) (*dto.DeudasResumenResponse, error)
}

type estadisticaService struct {
	repo      repository.EstadisticaRepository
	rdb       *redis.Client
	opTimeout time.Duration
}

// NewEstadisticaService builds the dashboard service. rdb may be nil, in
// which case every call hits the database directly.
func NewEstadisticaService(repo repository.EstadisticaRepository, rdb *redis.Client, opTimeout time.Duration) EstadisticaService {
	return &estadisticaService{repo: repo, rdb: rdb, opTimeout: opTimeout}
}

// rangoMes returns [first day of month, first day of next month) in local
// time. Computing ranges here keeps the SQL free of engine-specific date
// functions.
func rangoMes(anio, mes int) (time.Time, time.Time) {
	desde := time.Date(anio, time.Month(mes), 1, 0, 0, 0, 0, time.Local)
	return desde, desde.AddDate(0, 1, 0)
}

func (s *estadisticaService) ResumenMensual(ctx context.Context, anio, mes int) (*dto.ResumenMensualResponse, error) {
	ctx, cancel := boundCtx(ctx, s.opTimeout)
	defer cancel()

	cacheKey := fmt.Sprintf("stats:resumen:%04d-%02d", anio, mes)
	var cached dto.ResumenMensualResponse
	if s.cacheGet(ctx, cacheKey, &cached) {
		return &cached, nil
	}

	desde, hasta := rangoMes(anio, mes)
	totalVentas, numVentas, err := s.repo.SumVentas(ctx, desde, hasta)
	if err != nil {
		return nil, err
	}
	totalGastos, err := s.repo.SumGastos(ctx, desde, hasta)
	if err != nil {
		return nil, err
	}

	// Previous month for the month-over-month variation.
	prevDesde := desde.AddDate(0, -1, 0)
	ventasPrev, _, err := s.repo.SumVentas(ctx, prevDesde, desde)
	if err != nil {
		return nil, err
	}

	variacion := decimal.Zero
	if ventasPrev.GreaterThan(decimal.Zero) {
		variacion = totalVentas.Sub(ventasPrev).Div(ventasPrev).Mul(cien).Round(2)
	}

	resp := &dto.ResumenMensualResponse{
		Anio:         anio,
		Mes:          mes,
		TotalVentas:  totalVentas,
		NumeroVentas: numVentas,
		TotalGastos:  totalGastos,
		Utilidad:     totalVentas.Sub(totalGastos),
		VariacionPct: variacion,
	}
	s.cacheSet(ctx, cacheKey, resp)
	return resp, nil
}

func (s *estadisticaService) TopProductos(ctx context.Context, anio, mes, limit int) ([]dto.TopProductoResponse, error) {
	ctx, cancel := boundCtx(ctx, s.opTimeout)
	defer cancel()

	if limit < 1 || limit > 100 {
		limit = 10
	}
	cacheKey := fmt.Sprintf("stats:top:%04d-%02d:%d", anio, mes, limit)
	var cached []dto.TopProductoResponse
	if s.cacheGet(ctx, cacheKey, &cached) {
		return cached, nil
	}

	desde, hasta := rangoMes(anio, mes)
	rows, err := s.repo.TopProductos(ctx, desde, hasta, limit)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.TopProductoResponse, 0, len(rows))
	for _, r := range rows {
		resp = append(resp, dto.TopProductoResponse{
			ProductoID:       r.ProductoID,
			Referencia:       r.Referencia,
			Nombre:           r.Nombre,
			UnidadesVendidas: r.UnidadesVendidas,
			Ingresos:         r.Ingresos,
		})
	}
	s.cacheSet(ctx, cacheKey, resp)
	return resp, nil
}

func (s *estadisticaService) MargenesPorProducto(ctx context.Context, anio, mes, limit int) ([]dto.MargenProductoResponse, error) {
	ctx, cancel := boundCtx(ctx, s.opTimeout)
	defer cancel()

	if limit < 1 || limit > 100 {
		limit = 10
	}
	cacheKey := fmt.Sprintf("stats:margen:%04d-%02d:%d", anio, mes, limit)
	var cached []dto.MargenProductoResponse
	if s.cacheGet(ctx, cacheKey, &cached) {
		return cached, nil
	}

	desde, hasta := rangoMes(anio, mes)
	rows, err := s.repo.MargenesPorProducto(ctx, desde, hasta, limit)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.MargenProductoResponse, 0, len(rows))
	for _, r := range rows {
		resp = append(resp, dto.MargenProductoResponse{
			ProductoID:       r.ProductoID,
			Referencia:       r.Referencia,
			Nombre:           r.Nombre,
			UnidadesVendidas: r.UnidadesVendidas,
			Ingresos:         r.Ingresos,
			Costo:            r.Costo,
			Utilidad:         r.Utilidad,
		})
	}
	s.cacheSet(ctx, cacheKey, resp)
	return resp, nil
}

func (s *estadisticaService) GastosPorCategoria(ctx context.Context, anio, mes int) ([]dto.GastoCategoriaResponse, error) {
	ctx, cancel := boundCtx(ctx, s.opTimeout)
	defer cancel()

	cacheKey := fmt.Sprintf("stats:gastos:%04d-%02d", anio, mes)
	var cached []dto.GastoCategoriaResponse
	if s.cacheGet(ctx, cacheKey, &cached) {
		return cached, nil
	}

	desde, hasta := rangoMes(anio, mes)
	rows, err := s.repo.GastosPorCategoria(ctx, desde, hasta)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.GastoCategoriaResponse, 0, len(rows))
	for _, r := range rows {
		resp = append(resp, dto.GastoCategoriaResponse{
			Categoria: r.Categoria,
			Total:     r.Total,
			Registros: r.Registros,
		})
	}
	s.cacheSet(ctx, cacheKey, resp)
	return resp, nil
}

func (s *estadisticaService) ResumenDeudas(ctx context.Context) (*dto.DeudasResumenResponse, error) {
	ctx, cancel := boundCtx(ctx, s.opTimeout)
	defer cancel()

	const cacheKey = "stats:deudas"
	var cached dto.DeudasResumenResponse
	if s.cacheGet(ctx, cacheKey, &cached) {
		return &cached, nil
	}

	clientes, nClientes, err := s.repo.DeudasClientePendientes(ctx)
	if err != nil {
		return nil, err
	}
	proveedores, nProveedores, err := s.repo.DeudasProveedorPendientes(ctx)
	if err != nil {
		return nil, err
	}
	resp := &dto.DeudasResumenResponse{
		ClientesPendiente:    clientes,
		ClientesRegistros:    nClientes,
		ProveedoresPendiente: proveedores,
		ProveedoresRegistros: nProveedores,
	}
	s.cacheSet(ctx, cacheKey, resp)
	return resp, nil
}

// cacheGet loads a cached value into dest. A miss, a nil client or a decode
// failure all report false and the caller recomputes.
func (s *estadisticaService) cacheGet(ctx context.Context, key string, dest interface{}) bool {
	if s.rdb == nil {
		return false
	}
	raw, err := s.rdb.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("stats cache: corrupt entry, ignoring")
		return false
	}
	return true
}

func (s *estadisticaService) cacheSet(ctx context.Context, key string, value interface{}) {
	if s.rdb == nil {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := s.rdb.Set(ctx, key, raw, statsCacheTTL).Err(); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("stats cache: set failed")
	}
}
