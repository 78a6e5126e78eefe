package service

import (
	"context"
	"fmt"
	"time"

	"minegocio/internal/dto"
	"minegocio/internal/model"
	"minegocio/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const fechaLayout = "2006-01-02"

type GastoService interface {
	CrearGasto(ctx context.Context, req dto.CrearGastoRequest) (*dto.GastoResponse, error)
	ObtenerGasto(ctx context.Context, id uuid.UUID) (*dto.GastoResponse, error)
	ListGastos(ctx context.Context, filter dto.GastoFilter) (*dto.GastoListResponse, error)
	ActualizarGasto(ctx context.Context, id uuid.UUID, req dto.ActualizarGastoRequest) (*dto.GastoResponse, error)
	EliminarGasto(ctx context.Context, id uuid.UUID) error
}

type gastoService struct {
	repo      repository.GastoRepository
	opTimeout time.Duration
}

func NewGastoService(repo repository.GastoRepository, opTimeout time.Duration) GastoService {
	return &gastoService{repo: repo, opTimeout: opTimeout}
}

func (s *gastoService) CrearGasto(ctx context.Context, req dto.CrearGastoRequest) (*dto.GastoResponse, error) {
	ctx, cancel := boundCtx(ctx, s.opTimeout)
	defer cancel()

	if !req.Monto.GreaterThan(decimal.Zero) {
		return nil, ErrMontoInvalido
	}
	fecha, err := time.Parse(fechaLayout, req.Fecha)
	if err != nil {
		return nil, fmt.Errorf("fecha inválida: %w", err)
	}

	g := model.Gasto{
		Fecha:       fecha,
		Descripcion: req.Descripcion,
		Categoria:   req.Categoria,
		Monto:       req.Monto,
		MetodoPago:  req.MetodoPago,
		Proveedor:   req.Proveedor,
		Notas:       req.Notas,
	}
	if err := s.repo.Create(ctx, &g); err != nil {
		return nil, err
	}
	return gastoToResponse(&g), nil
}

func (s *gastoService) ObtenerGasto(ctx context.Context, id uuid.UUID) (*dto.GastoResponse, error) {
	ctx, cancel := boundCtx(ctx, s.opTimeout)
	defer cancel()

	g, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("gasto %s: %w", id, ErrNoEncontrado)
	}
	return gastoToResponse(g), nil
}

func (s *gastoService) ListGastos(ctx context.Context, filter dto.GastoFilter) (*dto.GastoListResponse, error) {
	ctx, cancel := boundCtx(ctx, s.opTimeout)
	defer cancel()

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	gastos, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.GastoResponse, 0, len(gastos))
	for i := range gastos {
		items = append(items, *gastoToResponse(&gastos[i]))
	}
	return &dto.GastoListResponse{Data: items, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

func (s *gastoService) ActualizarGasto(ctx context.Context, id uuid.UUID, req dto.ActualizarGastoRequest) (*dto.GastoResponse, error) {
	ctx, cancel := boundCtx(ctx, s.opTimeout)
	defer cancel()

	g, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("gasto %s: %w", id, ErrNoEncontrado)
	}
	if req.Fecha != nil {
		fecha, err := time.Parse(fechaLayout, *req.Fecha)
		if err != nil {
			return nil, fmt.Errorf("fecha inválida: %w", err)
		}
		g.Fecha = fecha
	}
	if req.Descripcion != nil {
		g.Descripcion = *req.Descripcion
	}
	if req.Categoria != nil {
		g.Categoria = *req.Categoria
	}
	if req.Monto != nil {
		if !req.Monto.GreaterThan(decimal.Zero) {
			return nil, ErrMontoInvalido
		}
		g.Monto = *req.Monto
	}
	if req.MetodoPago != nil {
		g.MetodoPago = *req.MetodoPago
	}
	if req.Proveedor != nil {
		g.Proveedor = req.Proveedor
	}
	if req.Notas != nil {
		g.Notas = req.Notas
	}
	if err := s.repo.Update(ctx, g); err != nil {
		return nil, err
	}
	return gastoToResponse(g), nil
}

func (s *gastoService) EliminarGasto(ctx context.Context, id uuid.UUID) error {
	ctx, cancel := boundCtx(ctx, s.opTimeout)
	defer cancel()

	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return fmt.Errorf("gasto %s: %w", id, ErrNoEncontrado)
	}
	return s.repo.Delete(ctx, id)
}

func gastoToResponse(g *model.Gasto) *dto.GastoResponse {
	return &dto.GastoResponse{
		ID:          g.ID.String(),
		Fecha:       g.Fecha.Format(fechaLayout),
		Descripcion: g.Descripcion,
		Categoria:   g.Categoria,
		Monto:       g.Monto,
		MetodoPago:  g.MetodoPago,
		Proveedor:   g.Proveedor,
		Notas:       g.Notas,
	}
}
