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
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	// ErrAbonoExcedeSaldo: a payment may overshoot the balance by at most
	// one cent of rounding; anything beyond that is a caller mistake.
	ErrAbonoExcedeSaldo = errors.New("el abono excede el saldo pendiente")
	// ErrDeudaNoAbierta: only open debts accept payments.
	ErrDeudaNoAbierta = errors.New("la deuda no está pendiente")
	// ErrMontoInvalido: payments must be strictly positive.
	ErrMontoInvalido = errors.New("el monto debe ser mayor que cero")
)

type DeudaClienteService interface {
	ObtenerDeuda(ctx context.Context, id uuid.UUID) (*dto.DeudaClienteResponse, error)
	ListDeudas(ctx context.Context, filter dto.DeudaFilter) (*dto.DeudaClienteListResponse, error)
	RegistrarAbono(ctx context.Context, deudaID uuid.UUID, req dto.RegistrarAbonoRequest) (*dto.DeudaClienteResponse, error)
}

type deudaClienteService struct {
	repo      repository.DeudaClienteRepository
	opTimeout time.Duration
}

func NewDeudaClienteService(repo repository.DeudaClienteRepository, opTimeout time.Duration) DeudaClienteService {
	return &deudaClienteService{repo: repo, opTimeout: opTimeout}
}

func (s *deudaClienteService) ObtenerDeuda(ctx context.Context, id uuid.UUID) (*dto.DeudaClienteResponse, error) {
	ctx, cancel := boundCtx(ctx, s.opTimeout)
	defer cancel()

	d, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("deuda %s: %w", id, ErrNoEncontrado)
	}
	return deudaClienteToResponse(d), nil
}

func (s *deudaClienteService) ListDeudas(ctx context.Context, filter dto.DeudaFilter) (*dto.DeudaClienteListResponse, error) {
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
	items := make([]dto.DeudaClienteResponse, 0, len(deudas))
	for i := range deudas {
		items = append(items, *deudaClienteToResponse(&deudas[i]))
	}
	return &dto.DeudaClienteListResponse{Data: items, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

// RegistrarAbono applies a partial payment to an open debt. The payment and
// the balance update commit together; when the remaining balance drops
// within one cent of zero the debt closes as Pagado.
func (s *deudaClienteService) RegistrarAbono(ctx context.Context, deudaID uuid.UUID, req dto.RegistrarAbonoRequest) (*dto.DeudaClienteResponse, error) {
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
		return nil, fmt.Errorf("%w: saldo %s, abono %s",
			ErrAbonoExcedeSaldo, deuda.MontoPendiente.StringFixed(2), req.Monto.StringFixed(2))
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		abono := model.Abono{
			DeudaID:    deudaID,
			Monto:      req.Monto,
			MetodoPago: req.MetodoPago,
			Notas:      req.Notas,
			Fecha:      time.Now(),
		}
		if err := s.repo.CreateAbonoTx(tx, &abono); err != nil {
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

func deudaClienteToResponse(d *model.DeudaCliente) *dto.DeudaClienteResponse {
	clienteNombre := ""
	if d.Cliente != nil {
		clienteNombre = d.Cliente.Nombre
	}
	abonos := make([]dto.AbonoResponse, 0, len(d.Abonos))
	for _, a := range d.Abonos {
		abonos = append(abonos, dto.AbonoResponse{
			ID:         a.ID.String(),
			Monto:      a.Monto,
			MetodoPago: a.MetodoPago,
			Notas:      a.Notas,
			Fecha:      a.Fecha.Format("2006-01-02T15:04:05Z"),
		})
	}
	return &dto.DeudaClienteResponse{
		ID:             d.ID.String(),
		VentaID:        d.VentaID.String(),
		ClienteID:      d.ClienteID.String(),
		ClienteNombre:  clienteNombre,
		MontoTotal:     d.MontoTotal,
		MontoPagado:    d.MontoPagado,
		MontoPendiente: d.MontoPendiente,
		Estado:         d.Estado,
		Abonos:         abonos,
		CreatedAt:      d.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
