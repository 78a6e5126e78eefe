package service

import (
	"context"
	"fmt"
	"time"

	"minegocio/internal/dto"
	"minegocio/internal/model"
	"minegocio/internal/repository"

	"github.com/google/uuid"
)

type ClienteService interface {
	CrearCliente(ctx context.Context, req dto.CrearClienteRequest) (*dto.ClienteResponse, error)
	ObtenerCliente(ctx context.Context, id uuid.UUID) (*dto.ClienteResponse, error)
	ListClientes(ctx context.Context, filter dto.ClienteFilter) (*dto.ClienteListResponse, error)
	ActualizarCliente(ctx context.Context, id uuid.UUID, req dto.ActualizarClienteRequest) (*dto.ClienteResponse, error)
	EliminarCliente(ctx context.Context, id uuid.UUID) error
	RecomputarAgregados(ctx context.Context, id uuid.UUID) (*dto.ClienteResponse, error)
}

type clienteService struct {
	repo      repository.ClienteRepository
	opTimeout time.Duration
}

func NewClienteService(repo repository.ClienteRepository, opTimeout time.Duration) ClienteService {
	return &clienteService{repo: repo, opTimeout: opTimeout}
}

func (s *clienteService) CrearCliente(ctx context.Context, req dto.CrearClienteRequest) (*dto.ClienteResponse, error) {
	ctx, cancel := boundCtx(ctx, s.opTimeout)
	defer cancel()

	if req.Cedula != nil && *req.Cedula != "" {
		if existing, err := s.repo.FindByCedula(ctx, *req.Cedula); err == nil && existing.ID != uuid.Nil {
			return nil, fmt.Errorf("ya existe un cliente con la cédula %s", *req.Cedula)
		}
	}

	c := model.Cliente{
		Nombre:    req.Nombre,
		Cedula:    req.Cedula,
		Correo:    req.Correo,
		Celular:   req.Celular,
		Direccion: req.Direccion,
	}
	if err := s.repo.Create(ctx, &c); err != nil {
		return nil, err
	}
	return clienteToResponse(&c), nil
}

func (s *clienteService) ObtenerCliente(ctx context.Context, id uuid.UUID) (*dto.ClienteResponse, error) {
	ctx, cancel := boundCtx(ctx, s.opTimeout)
	defer cancel()

	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("cliente %s: %w", id, ErrNoEncontrado)
	}
	return clienteToResponse(c), nil
}

func (s *clienteService) ListClientes(ctx context.Context, filter dto.ClienteFilter) (*dto.ClienteListResponse, error) {
	ctx, cancel := boundCtx(ctx, s.opTimeout)
	defer cancel()

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	clientes, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ClienteResponse, 0, len(clientes))
	for i := range clientes {
		items = append(items, *clienteToResponse(&clientes[i]))
	}
	return &dto.ClienteListResponse{Data: items, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

func (s *clienteService) ActualizarCliente(ctx context.Context, id uuid.UUID, req dto.ActualizarClienteRequest) (*dto.ClienteResponse, error) {
	ctx, cancel := boundCtx(ctx, s.opTimeout)
	defer cancel()

	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("cliente %s: %w", id, ErrNoEncontrado)
	}
	if req.Nombre != nil {
		c.Nombre = *req.Nombre
	}
	if req.Cedula != nil {
		c.Cedula = req.Cedula
	}
	if req.Correo != nil {
		c.Correo = req.Correo
	}
	if req.Celular != nil {
		c.Celular = req.Celular
	}
	if req.Direccion != nil {
		c.Direccion = req.Direccion
	}
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return clienteToResponse(c), nil
}

func (s *clienteService) EliminarCliente(ctx context.Context, id uuid.UUID) error {
	ctx, cancel := boundCtx(ctx, s.opTimeout)
	defer cancel()

	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return fmt.Errorf("cliente %s: %w", id, ErrNoEncontrado)
	}
	return s.repo.Delete(ctx, id)
}

// RecomputarAgregados rebuilds total_compras / numero_compras / ultima_compra
// from the ventas table and returns the reconciled cliente.
func (s *clienteService) RecomputarAgregados(ctx context.Context, id uuid.UUID) (*dto.ClienteResponse, error) {
	ctx, cancel := boundCtx(ctx, s.opTimeout)
	defer cancel()

	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return nil, fmt.Errorf("cliente %s: %w", id, ErrNoEncontrado)
	}
	if err := s.repo.RecomputarAgregados(ctx, id); err != nil {
		return nil, err
	}
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return clienteToResponse(c), nil
}

func clienteToResponse(c *model.Cliente) *dto.ClienteResponse {
	var ultima *string
	if c.UltimaCompra != nil {
		t := c.UltimaCompra.Format("2006-01-02T15:04:05Z")
		ultima = &t
	}
	return &dto.ClienteResponse{
		ID:            c.ID.String(),
		Nombre:        c.Nombre,
		Cedula:        c.Cedula,
		Correo:        c.Correo,
		Celular:       c.Celular,
		Direccion:     c.Direccion,
		TotalCompras:  c.TotalCompras,
		NumeroCompras: c.NumeroCompras,
		UltimaCompra:  ultima,
	}
}
