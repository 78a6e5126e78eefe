package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"minegocio/internal/dto"
	"minegocio/internal/model"
	"minegocio/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrReferenciaDuplicada: product references identify the item on the tag,
// two products cannot share one.
var ErrReferenciaDuplicada = errors.New("ya existe un producto con esa referencia")

type ProductoService interface {
	CrearProducto(ctx context.Context, req dto.CrearProductoRequest) (*dto.ProductoResponse, error)
	ObtenerProducto(ctx context.Context, id uuid.UUID) (*dto.ProductoResponse, error)
	BuscarPorReferencia(ctx context.Context, referencia string) (*dto.ProductoResponse, error)
	ListProductos(ctx context.Context, filter dto.ProductoFilter) (*dto.ProductoListResponse, error)
	ActualizarProducto(ctx context.Context, id uuid.UUID, req dto.ActualizarProductoRequest) (*dto.ProductoResponse, error)
	DesactivarProducto(ctx context.Context, id uuid.UUID) error
	ReactivarProducto(ctx context.Context, id uuid.UUID) error

	AgregarVariante(ctx context.Context, productoID uuid.UUID, req dto.VarianteRequest) (*dto.ProductoResponse, error)
	ActualizarVariante(ctx context.Context, productoID, varianteID uuid.UUID, req dto.VarianteRequest) (*dto.ProductoResponse, error)
	EliminarVariante(ctx context.Context, productoID, varianteID uuid.UUID) error

	AjustarStock(ctx context.Context, productoID uuid.UUID, req dto.AjustarStockRequest) (*dto.ProductoResponse, error)
}

type productoService struct {
	repo      repository.ProductoRepository
	opTimeout time.Duration
}

func NewProductoService(repo repository.ProductoRepository, opTimeout time.Duration) ProductoService {
	return &productoService{repo: repo, opTimeout: opTimeout}
}

func (s *productoService) CrearProducto(ctx context.Context, req dto.CrearProductoRequest) (*dto.ProductoResponse, error) {
	ctx, cancel := boundCtx(ctx, s.opTimeout)
	defer cancel()

	if existing, err := s.repo.FindByReferencia(ctx, req.Referencia); err == nil && existing != nil && existing.ID != uuid.Nil {
		return nil, ErrReferenciaDuplicada
	}

	p := model.Producto{
		Referencia:      req.Referencia,
		Nombre:          req.Nombre,
		Categoria:       req.Categoria,
		CostoBase:       req.CostoBase,
		PrecioVentaBase: req.PrecioVentaBase,
		TieneVariantes:  len(req.Variantes) > 0,
		Stock:           req.Stock,
		ImagenURL:       req.ImagenURL,
		Activo:          true,
	}
	if p.TieneVariantes {
		// With variants the per-talla counts are the stock; the product
		// level counter stays at zero.
		p.Stock = 0
		seen := make(map[string]bool, len(req.Variantes))
		for _, v := range req.Variantes {
			if seen[v.Talla] {
				return nil, fmt.Errorf("talla %q repetida en el producto", v.Talla)
			}
			seen[v.Talla] = true
			p.Variantes = append(p.Variantes, model.Variante{
				Talla:        v.Talla,
				Cantidad:     v.Cantidad,
				AjustePrecio: v.AjustePrecio,
			})
		}
	}

	if err := s.repo.Create(ctx, &p); err != nil {
		return nil, err
	}
	return productoToResponse(&p), nil
}

func (s *productoService) ObtenerProducto(ctx context.Context, id uuid.UUID) (*dto.ProductoResponse, error) {
	ctx, cancel := boundCtx(ctx, s.opTimeout)
	defer cancel()

	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("producto %s: %w", id, ErrNoEncontrado)
	}
	return productoToResponse(p), nil
}

func (s *productoService) BuscarPorReferencia(ctx context.Context, referencia string) (*dto.ProductoResponse, error) {
	ctx, cancel := boundCtx(ctx, s.opTimeout)
	defer cancel()

	p, err := s.repo.FindByReferencia(ctx, referencia)
	if err != nil {
		return nil, fmt.Errorf("referencia %q: %w", referencia, ErrNoEncontrado)
	}
	return productoToResponse(p), nil
}

func (s *productoService) ListProductos(ctx context.Context, filter dto.ProductoFilter) (*dto.ProductoListResponse, error) {
	ctx, cancel := boundCtx(ctx, s.opTimeout)
	defer cancel()

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	productos, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductoResponse, 0, len(productos))
	for i := range productos {
		items = append(items, *productoToResponse(&productos[i]))
	}
	return &dto.ProductoListResponse{Data: items, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

func (s *productoService) ActualizarProducto(ctx context.Context, id uuid.UUID, req dto.ActualizarProductoRequest) (*dto.ProductoResponse, error) {
	ctx, cancel := boundCtx(ctx, s.opTimeout)
	defer cancel()

	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("producto %s: %w", id, ErrNoEncontrado)
	}
	if req.Nombre != nil {
		p.Nombre = *req.Nombre
	}
	if req.Categoria != nil {
		p.Categoria = *req.Categoria
	}
	if req.CostoBase != nil {
		p.CostoBase = *req.CostoBase
	}
	if req.PrecioVentaBase != nil {
		p.PrecioVentaBase = *req.PrecioVentaBase
	}
	if req.ImagenURL != nil {
		p.ImagenURL = req.ImagenURL
	}
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return productoToResponse(p), nil
}

// DesactivarProducto hides the product from the catalog without touching the
// sales that reference it.
func (s *productoService) DesactivarProducto(ctx context.Context, id uuid.UUID) error {
	ctx, cancel := boundCtx(ctx, s.opTimeout)
	defer cancel()

	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return fmt.Errorf("producto %s: %w", id, ErrNoEncontrado)
	}
	return s.repo.Desactivar(ctx, id)
}

func (s *productoService) ReactivarProducto(ctx context.Context, id uuid.UUID) error {
	ctx, cancel := boundCtx(ctx, s.opTimeout)
	defer cancel()

	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return fmt.Errorf("producto %s: %w", id, ErrNoEncontrado)
	}
	return s.repo.Reactivar(ctx, id)
}

func (s *productoService) AgregarVariante(ctx context.Context, productoID uuid.UUID, req dto.VarianteRequest) (*dto.ProductoResponse, error) {
	ctx, cancel := boundCtx(ctx, s.opTimeout)
	defer cancel()

	p, err := s.repo.FindByID(ctx, productoID)
	if err != nil {
		return nil, fmt.Errorf("producto %s: %w", productoID, ErrNoEncontrado)
	}
	for _, v := range p.Variantes {
		if v.Talla == req.Talla {
			return nil, fmt.Errorf("el producto ya tiene la talla %q", req.Talla)
		}
	}

	v := model.Variante{
		ProductoID:   productoID,
		Talla:        req.Talla,
		Cantidad:     req.Cantidad,
		AjustePrecio: req.AjustePrecio,
	}
	if err := s.repo.CreateVariante(ctx, &v); err != nil {
		return nil, err
	}
	if !p.TieneVariantes {
		p.TieneVariantes = true
		p.Stock = 0
		if err := s.repo.Update(ctx, p); err != nil {
			return nil, err
		}
	}
	return s.ObtenerProducto(ctx, productoID)
}

func (s *productoService) ActualizarVariante(ctx context.Context, productoID, varianteID uuid.UUID, req dto.VarianteRequest) (*dto.ProductoResponse, error) {
	ctx, cancel := boundCtx(ctx, s.opTimeout)
	defer cancel()

	v, err := s.repo.FindVarianteByID(ctx, varianteID)
	if err != nil || v.ProductoID != productoID {
		return nil, fmt.Errorf("variante %s: %w", varianteID, ErrNoEncontrado)
	}
	v.Talla = req.Talla
	v.Cantidad = req.Cantidad
	v.AjustePrecio = req.AjustePrecio
	if err := s.repo.UpdateVariante(ctx, v); err != nil {
		return nil, err
	}
	return s.ObtenerProducto(ctx, productoID)
}

func (s *productoService) EliminarVariante(ctx context.Context, productoID, varianteID uuid.UUID) error {
	ctx, cancel := boundCtx(ctx, s.opTimeout)
	defer cancel()

	v, err := s.repo.FindVarianteByID(ctx, varianteID)
	if err != nil || v.ProductoID != productoID {
		return fmt.Errorf("variante %s: %w", varianteID, ErrNoEncontrado)
	}
	return s.repo.DeleteVariante(ctx, varianteID)
}

// AjustarStock applies a manual inventory correction. Negative deltas go
// through the conditional decrement, so an adjustment can never leave
// negative stock.
func (s *productoService) AjustarStock(ctx context.Context, productoID uuid.UUID, req dto.AjustarStockRequest) (*dto.ProductoResponse, error) {
	ctx, cancel := boundCtx(ctx, s.opTimeout)
	defer cancel()

	p, err := s.repo.FindByID(ctx, productoID)
	if err != nil {
		return nil, fmt.Errorf("producto %s: %w", productoID, ErrNoEncontrado)
	}

	var varianteID *uuid.UUID
	if req.VarianteID != nil {
		vid, err := uuid.Parse(*req.VarianteID)
		if err != nil {
			return nil, fmt.Errorf("variante_id inválido: %w", err)
		}
		v, err := s.repo.FindVarianteByID(ctx, vid)
		if err != nil || v.ProductoID != productoID {
			return nil, fmt.Errorf("variante %s: %w", vid, ErrNoEncontrado)
		}
		varianteID = &vid
	} else if p.TieneVariantes {
		return nil, errors.New("el producto maneja tallas, indique variante_id")
	}

	if err := s.repo.AjustarStock(ctx, productoID, varianteID, req.Delta); err != nil {
		if errors.Is(err, repository.ErrStockInsuficiente) {
			return nil, err
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoEncontrado
		}
		return nil, err
	}
	return s.ObtenerProducto(ctx, productoID)
}

func productoToResponse(p *model.Producto) *dto.ProductoResponse {
	resp := &dto.ProductoResponse{
		ID:              p.ID.String(),
		Referencia:      p.Referencia,
		Nombre:          p.Nombre,
		Categoria:       p.Categoria,
		CostoBase:       p.CostoBase,
		PrecioVentaBase: p.PrecioVentaBase,
		TieneVariantes:  p.TieneVariantes,
		Stock:           p.Stock,
		ImagenURL:       p.ImagenURL,
		Activo:          p.Activo,
	}
	total := 0
	for _, v := range p.Variantes {
		total += v.Cantidad
		resp.Variantes = append(resp.Variantes, dto.VarianteResponse{
			ID:           v.ID.String(),
			Talla:        v.Talla,
			Cantidad:     v.Cantidad,
			AjustePrecio: v.AjustePrecio,
			PrecioVenta:  v.PrecioVenta(p.PrecioVentaBase),
		})
	}
	if p.TieneVariantes {
		resp.Stock = total
	}
	return resp
}
