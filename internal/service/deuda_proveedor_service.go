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
	"gorm.io/gorm"
)

type DeudaProveedorService interface {
	CrearDeuda(ctx context.Context, req dto.CrearDeudaProveedorRequest) (*dto.DeudaProveedorResponse, error)
	ObtenerDeuda(ctx context.Context, id uuid.UUID) (*dto.DeudaProveedorResponse, error)
	ListDeudas(ctx context.Context, filter dto.DeudaFilter) (*dto.DeudaProveedorListResponse, error)
	RegistrarPago(ctx context.Context, deudaID uuid.UUID, req dto.RegistrarAbonoRequest) (*dto.DeudaProveedorResponse, error)
	EliminarDeuda(ctx context.Context, id uuid.UUID) error
}

type deudaProveedorService struct {
	repo      repository.DeudaProveedorRepository
	opTimeout time.Duration
}

func NewDeudaProveedorService(repo repository.DeudaProveedorRepository, opTimeout time.Duration) DeudaProveedorService {
	return &deudaProveedorService{repo: repo, opTimeout: opTimeout}
}

func (s *deudaProveedorService) CrearDeuda(ctx context.Context, req dto.CrearDeudaProveedorRequest) (*dto.DeudaProveedorResponse, error) {
	ctx, cancel := boundCtx(ctx, s.opTimeout)
	defer cancel()

	if !req.MontoTotal.GreaterThan(decimal.Zero) {
		return nil, ErrMontoInvalido
	}
	d := model.DeudaProveedor{
		Acreedor:       req.Acreedor,
		Descripcion:    req.Descripcion,
		MontoTotal:     req.MontoTotal,
		MontoPagado:    decimal.Zero,
		MontoPendiente: req.MontoTotal,
		Estado:         model.DeudaPendiente,
	}
	if err := s.repo.Create(ctx, &d); err != nil {
		return nil, err
	}
	return deudaProveedorToResponse(&d), nil
}

func (s *deudaProveedorService) ObtenerDeuda(ctx context.Context, id uuid.UUID) (*dto.DeudaProveedorResponse, error) {
	ctx, cancel := boundCtx(ctx, s.opTimeout)
	defer cancel()

	d, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("deuda %s: %w", id, ErrNoEncontrado)
	}
	return deudaProveedorToResponse(d), nil
}

func (s *deudaProveedorService) ListDeudas(ctx context.Context, filter dto.DeudaFilter) (*dto.DeudaProveedorListResponse, error) {
	ctx, cancel := boundCtx(ctx, s.opTimeout)
	defer cancel()

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	deudas, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.DeudaProveedorResponse, 0, len(deudas))
	for i := range deudas {
		items = append(items, *deudaProveedorToResponse(&deudas[i]))
	}
	return &dto.DeudaProveedorListResponse{Data: items, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

// RegistrarPago mirrors the customer-side abono: same cent tolerance, same
// single-transaction payment + balance update.
func (s *deudaProveedorService) RegistrarPago(ctx context.Context, deudaID uuid.UUID, req dto.RegistrarAbonoRequest) (*dto.DeudaProveedorResponse, error) {
	ctx, cancel := boundCtx(ctx, s.opTimeout)
	defer cancel()

	if !req.Monto.GreaterThan(decimal.Zero) {
		return nil, ErrMontoInvalido
	}

	deuda, err := s.repo.FindByID(ctx, deudaID)
	if err != nil {
		return nil, fmt.Errorf("deuda %s: %w", deudaID, ErrNoEncontrado)
	}
	if deuda.Estado != model.DeudaPendiente {
		return nil, ErrDeudaNoAbierta
	}
	if req.Monto.Sub(deuda.MontoPendiente).GreaterThan(centTolerance) {
		return nil, fmt.Errorf("%w: saldo %s, pago %s",
			ErrAbonoExcedeSaldo, deuda.MontoPendiente.StringFixed(2), req.Monto.StringFixed(2))
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		pago := model.PagoProveedor{
			DeudaID:    deudaID,
			Monto:      req.Monto,
			MetodoPago: req.MetodoPago,
			Notas:      req.Notas,
			Fecha:      time.Now(),
		}
		if err := s.repo.CreatePagoTx(tx, &pago); err != nil {
			return err
		}

		deuda.MontoPagado = deuda.MontoPagado.Add(req.Monto)
		deuda.MontoPendiente = deuda.MontoPendiente.Sub(req.Monto)
		if deuda.MontoPendiente.LessThanOrEqual(centTolerance) {
			deuda.MontoPendiente = decimal.Zero
			deuda.Estado = model.DeudaPagada
		}
		return s.repo.UpdateTx(tx, deuda)
	})
	if txErr != nil {
		return nil, txErr
	}

	return s.ObtenerDeuda(ctx, deudaID)
}

// EliminarDeuda removes a vendor debt registered by mistake, along with its
// payment history.
func (s *deudaProveedorService) EliminarDeuda(ctx context.Context, id uuid.UUID) error {
	ctx, cancel := boundCtx(ctx, s.opTimeout)
	defer cancel()

	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return fmt.Errorf("deuda %s: %w", id, ErrNoEncontrado)
	}
	return s.repo.Delete(ctx, id)
}

func deudaProveedorToResponse(d *model.DeudaProveedor) *dto.DeudaProveedorResponse {
	pagos := make([]dto.AbonoResponse, 0, len(d.Pagos))
	for _, p := range d.Pagos {
		pagos = append(pagos, dto.AbonoResponse{
			ID:         p.ID.String(),
			Monto:      p.Monto,
			MetodoPago: p.MetodoPago,
			Notas:      p.Notas,
			Fecha:      p.Fecha.Format("2006-01-02T15:04:05Z"),
		})
	}
	return &dto.DeudaProveedorResponse{
		ID:             d.ID.String(),
		Acreedor:       d.Acreedor,
		Descripcion:    d.Descripcion,
		MontoTotal:     d.MontoTotal,
		MontoPagado:    d.MontoPagado,
		MontoPendiente: d.MontoPendiente,
		Estado:         d.Estado,
		Pagos:          pagos,
		CreatedAt:      d.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
