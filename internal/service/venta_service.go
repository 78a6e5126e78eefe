package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"minegocio/internal/dto"
	"minegocio/internal/model"
	"minegocio/internal/repository"
	"minegocio/internal/worker"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	// ErrVentaYaAnulada: cancelling an already-cancelled sale is a no-op —
	// in particular it must never restock twice.
	ErrVentaYaAnulada = errors.New("la venta ya está cancelada")
	// ErrClienteRequerido: an underpaid sale needs a customer to carry the
	// debt. Walk-in (anonymous) sales must be paid in full.
	ErrClienteRequerido = errors.New("una venta con saldo pendiente requiere un cliente")
	// ErrItemDuplicado: the same product/size appears twice in the cart.
	ErrItemDuplicado = errors.New("el carrito contiene la misma talla dos veces")
)

type VentaService interface {
	RegistrarVenta(ctx context.Context, req dto.RegistrarVentaRequest) (*dto.VentaResponse, error)
	AnularVenta(ctx context.Context, id uuid.UUID) error
	ObtenerVenta(ctx context.Context, id uuid.UUID) (*dto.VentaResponse, error)
	ListVentas(ctx context.Context, filter dto.VentaFilter) (*dto.VentaListResponse, error)
}

type ventaService struct {
	repo         repository.VentaRepository
	productoRepo repository.ProductoRepository
	clienteRepo  repository.ClienteRepository
	deudaRepo    repository.DeudaClienteRepository
	dispatcher   *worker.Dispatcher
	opTimeout    time.Duration
}

func NewVentaService(
	repo repository.VentaRepository,
	productoRepo repository.ProductoRepository,
	clienteRepo repository.ClienteRepository,
	deudaRepo repository.DeudaClienteRepository,
	dispatcher *worker.Dispatcher,
	opTimeout time.Duration,
) VentaService {
	return &ventaService{
		repo:         repo,
		productoRepo: productoRepo,
		clienteRepo:  clienteRepo,
		deudaRepo:    deudaRepo,
		dispatcher:   dispatcher,
		opTimeout:    opTimeout,
	}
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// centTolerance absorbs floating-point dust in money comparisons.
var centTolerance = decimal.NewFromFloat(0.01)

// ── RegistrarVenta ────────────────────────────────────────────────────────────
// All side effects of one sale commit together or not at all:
//   1. Resolve or create the Cliente
//   2. Next numero de venta from the contadores row
//   3. Insert Venta (estado, cambio)
//   4. Insert items + conditional stock decrement (never below zero)
//   5. Insert costos extra
//   6. Create DeudaCliente when underpaid
//   7. Bump customer aggregates
// After commit: best-effort receipt job (PDF + optional email).

func (s *ventaService) RegistrarVenta(ctx context.Context, req dto.RegistrarVentaRequest) (*dto.VentaResponse, error) {
	ctx, cancel := boundCtx(ctx, s.opTimeout)
	defer cancel()

	// Pre-flight: resolve products and variants, compute totals (outside TX).
	type resolvedItem struct {
		productoID     uuid.UUID
		varianteID     *uuid.UUID
		nombre         string
		talla          *string
		tieneVariantes bool
		cantidad       int
		precioUnitario decimal.Decimal
		subtotal       decimal.Decimal
	}

	var resolved []resolvedItem
	seen := make(map[string]bool, len(req.Items))
	subtotal := decimal.Zero

	for _, item := range req.Items {
		pid, err := uuid.Parse(item.ProductoID)
		if err != nil {
			return nil, fmt.Errorf("producto_id inválido: %w", err)
		}
		p, err := s.productoRepo.FindByID(ctx, pid)
		if err != nil {
			return nil, fmt.Errorf("producto %s: %w", item.ProductoID, ErrNoEncontrado)
		}
		if !p.Activo {
			return nil, fmt.Errorf("producto %s está inactivo y no puede venderse", p.Nombre)
		}

		r := resolvedItem{
			productoID:     pid,
			nombre:         p.Nombre,
			tieneVariantes: p.TieneVariantes,
			cantidad:       item.Cantidad,
			precioUnitario: item.PrecioUnitario,
		}
		key := item.ProductoID
		if item.VarianteID != nil {
			vid, err := uuid.Parse(*item.VarianteID)
			if err != nil {
				return nil, fmt.Errorf("variante_id inválido: %w", err)
			}
			v, err := s.productoRepo.FindVarianteByID(ctx, vid)
			if err != nil || v.ProductoID != pid {
				return nil, fmt.Errorf("variante %s no pertenece al producto %s", *item.VarianteID, p.Nombre)
			}
			r.varianteID = &vid
			talla := v.Talla
			r.talla = &talla
			key += ":" + vid.String()
		} else if p.TieneVariantes {
			return nil, fmt.Errorf("el producto %s requiere seleccionar una talla", p.Nombre)
		}
		if seen[key] {
			return nil, ErrItemDuplicado
		}
		seen[key] = true

		r.subtotal = item.PrecioUnitario.Mul(decimal.NewFromInt(int64(item.Cantidad)))
		subtotal = subtotal.Add(r.subtotal)
		resolved = append(resolved, r)
	}

	total := subtotal
	for _, ce := range req.CostosExtra {
		total = total.Add(ce.Monto)
	}

	// Cambio only exists for cash overpayment.
	cambio := decimal.Zero
	if req.MetodoPago == model.MetodoEfectivo && req.MontoPagado.GreaterThan(total) {
		cambio = req.MontoPagado.Sub(total)
	}

	estado := model.VentaPendiente
	if req.MontoPagado.GreaterThanOrEqual(total) {
		estado = model.VentaPagada
	}

	generaDeuda := total.Sub(req.MontoPagado).GreaterThan(centTolerance)
	if generaDeuda && !tieneCliente(req.Cliente) {
		return nil, ErrClienteRequerido
	}

	ahora := time.Now()
	var venta model.Venta
	var clienteID *uuid.UUID
	var clienteNombre *string

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		// 1. Resolve or create the customer.
		cliente, err := s.resolverCliente(tx, req.Cliente)
		if err != nil {
			return err
		}
		if cliente != nil {
			clienteID = &cliente.ID
			clienteNombre = &cliente.Nombre
		}

		// 2. Monotonic sale number.
		numero, err := s.repo.NextNumeroVenta(ctx, tx)
		if err != nil {
			return err
		}

		// 3. Sale row with items and extra costs.
		venta = model.Venta{
			NumeroVenta:   fmt.Sprintf("VTA-%06d", numero),
			ClienteID:     clienteID,
			ClienteNombre: clienteNombre,
			Subtotal:      subtotal,
			Total:         total,
			MontoPagado:   req.MontoPagado,
			Cambio:        cambio,
			Estado:        estado,
			MetodoPago:    req.MetodoPago,
			Notas:         req.Notas,
			Fecha:         ahora,
		}
		for _, r := range resolved {
			venta.Items = append(venta.Items, model.VentaItem{
				ProductoID:     r.productoID,
				VarianteID:     r.varianteID,
				Cantidad:       r.cantidad,
				PrecioUnitario: r.precioUnitario,
				Subtotal:       r.subtotal,
			})
		}
		for _, ce := range req.CostosExtra {
			venta.CostosExtra = append(venta.CostosExtra, model.CostoExtra{
				Concepto: ce.Concepto,
				Monto:    ce.Monto,
			})
		}
		if err := s.repo.Create(ctx, tx, &venta); err != nil {
			return err
		}

		// 4. Conditional stock decrement — a short row aborts the whole sale.
		for _, r := range resolved {
			var err error
			if r.varianteID != nil {
				err = s.productoRepo.DescontarStockVarianteTx(tx, *r.varianteID, r.cantidad)
			} else {
				err = s.productoRepo.DescontarStockProductoTx(tx, r.productoID, r.cantidad)
			}
			if err != nil {
				if errors.Is(err, repository.ErrStockInsuficiente) {
					return fmt.Errorf("stock insuficiente para %s: %w", r.nombre, err)
				}
				return fmt.Errorf("error descontando stock de %s: %w", r.nombre, err)
			}
		}

		// 6. Debt for the unpaid remainder.
		if generaDeuda {
			deuda := model.DeudaCliente{
				VentaID:        venta.ID,
				ClienteID:      *clienteID,
				MontoTotal:     total,
				MontoPagado:    req.MontoPagado,
				MontoPendiente: total.Sub(req.MontoPagado),
				Estado:         model.DeudaPendiente,
			}
			if err := s.deudaRepo.CreateTx(tx, &deuda); err != nil {
				return err
			}
		}

		// 7. Customer lifetime aggregates.
		if clienteID != nil {
			if err := s.clienteRepo.AplicarCompraTx(tx, *clienteID, total, ahora); err != nil {
				return err
			}
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	// Receipt job — fire & forget.
	if s.dispatcher != nil {
		if err := s.dispatcher.EnqueueRecibo(ctx, worker.ReciboJobPayload{VentaID: venta.ID.String()}); err != nil {
			log.Warn().Err(err).Str("venta_id", venta.ID.String()).Msg("no se pudo encolar el recibo")
		}
	}

	resp := ventaToResponse(&venta)
	resp.DeudaGenerada = generaDeuda
	for i, r := range resolved {
		resp.Items[i].Producto = r.nombre
		resp.Items[i].Talla = r.talla
	}
	return resp, nil
}

// tieneCliente reports whether the request identifies or names a customer.
func tieneCliente(c *dto.ClienteVentaRequest) bool {
	if c == nil {
		return false
	}
	if c.ID != nil && *c.ID != "" {
		return true
	}
	return c.Nombre != nil && *c.Nombre != ""
}

// resolverCliente returns the sale's customer inside the transaction:
// existing id → refresh contact fields; bare name → new row; neither → nil
// (anonymous sale).
func (s *ventaService) resolverCliente(tx *gorm.DB, req *dto.ClienteVentaRequest) (*model.Cliente, error) {
	if !tieneCliente(req) {
		return nil, nil
	}

	if req.ID != nil && *req.ID != "" {
		id, err := uuid.Parse(*req.ID)
		if err != nil {
			return nil, fmt.Errorf("cliente.id inválido: %w", err)
		}
		cliente, err := s.clienteRepo.FindByIDTx(tx, id)
		if err != nil {
			return nil, fmt.Errorf("cliente %s: %w", *req.ID, ErrNoEncontrado)
		}
		if req.Cedula != nil {
			cliente.Cedula = req.Cedula
		}
		if req.Correo != nil {
			cliente.Correo = req.Correo
		}
		if req.Celular != nil {
			cliente.Celular = req.Celular
		}
		if err := s.clienteRepo.UpdateTx(tx, cliente); err != nil {
			return nil, err
		}
		return cliente, nil
	}

	cliente := &model.Cliente{
		Nombre:  *req.Nombre,
		Cedula:  req.Cedula,
		Correo:  req.Correo,
		Celular: req.Celular,
	}
	if err := s.clienteRepo.CreateTx(tx, cliente); err != nil {
		return nil, err
	}
	return cliente, nil
}

// ── AnularVenta ───────────────────────────────────────────────────────────────
// Restores every line's stock, reverses the customer aggregates, and cancels
// any open debt of the sale, all in one transaction. Guarded against double
// cancellation.

func (s *ventaService) AnularVenta(ctx context.Context, id uuid.UUID) error {
	ctx, cancel := boundCtx(ctx, s.opTimeout)
	defer cancel()

	venta, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("venta %s: %w", id, ErrNoEncontrado)
	}
	if venta.Estado == model.VentaCancelada {
		return ErrVentaYaAnulada
	}

	return runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		for _, item := range venta.Items {
			var err error
			if item.VarianteID != nil {
				err = s.productoRepo.RestaurarStockVarianteTx(tx, *item.VarianteID, item.Cantidad)
			} else {
				err = s.productoRepo.RestaurarStockProductoTx(tx, item.ProductoID, item.Cantidad)
			}
			if err != nil {
				return err
			}
		}

		if venta.ClienteID != nil {
			if err := s.clienteRepo.RevertirCompraTx(tx, *venta.ClienteID, venta.Total); err != nil {
				return err
			}
		}

		// The debt dies with the sale.
		if deuda, err := s.deudaRepo.FindAbiertaPorVentaTx(tx, venta.ID); err == nil && deuda != nil {
			deuda.Estado = model.DeudaCancelada
			if err := s.deudaRepo.UpdateTx(tx, deuda); err != nil {
				return err
			}
		} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		return s.repo.UpdateEstadoTx(tx, id, model.VentaCancelada)
	})
}

// ── Queries ───────────────────────────────────────────────────────────────────

func (s *ventaService) ObtenerVenta(ctx context.Context, id uuid.UUID) (*dto.VentaResponse, error) {
	ctx, cancel := boundCtx(ctx, s.opTimeout)
	defer cancel()

	venta, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("venta %s: %w", id, ErrNoEncontrado)
	}
	return ventaToResponse(venta), nil
}

func (s *ventaService) ListVentas(ctx context.Context, filter dto.VentaFilter) (*dto.VentaListResponse, error) {
	ctx, cancel := boundCtx(ctx, s.opTimeout)
	defer cancel()

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	ventas, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.VentaResponse, 0, len(ventas))
	for i := range ventas {
		items = append(items, *ventaToResponse(&ventas[i]))
	}
	return &dto.VentaListResponse{
		Data:  items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func ventaToResponse(v *model.Venta) *dto.VentaResponse {
	items := make([]dto.ItemVentaResponse, 0, len(v.Items))
	for _, item := range v.Items {
		nombre := ""
		if item.Producto != nil {
			nombre = item.Producto.Nombre
		}
		var talla *string
		if item.Variante != nil {
			t := item.Variante.Talla
			talla = &t
		}
		items = append(items, dto.ItemVentaResponse{
			Producto:       nombre,
			Talla:          talla,
			Cantidad:       item.Cantidad,
			PrecioUnitario: item.PrecioUnitario,
			Subtotal:       item.Subtotal,
		})
	}
	costos := make([]dto.CostoExtraResponse, 0, len(v.CostosExtra))
	for _, ce := range v.CostosExtra {
		costos = append(costos, dto.CostoExtraResponse{Concepto: ce.Concepto, Monto: ce.Monto})
	}
	var clienteID *string
	if v.ClienteID != nil {
		id := v.ClienteID.String()
		clienteID = &id
	}
	return &dto.VentaResponse{
		ID:            v.ID.String(),
		NumeroVenta:   v.NumeroVenta,
		ClienteID:     clienteID,
		ClienteNombre: v.ClienteNombre,
		Items:         items,
		CostosExtra:   costos,
		Subtotal:      v.Subtotal,
		Total:         v.Total,
		MontoPagado:   v.MontoPagado,
		Cambio:        v.Cambio,
		Estado:        v.Estado,
		MetodoPago:    v.MetodoPago,
		Fecha:         v.Fecha.Format("2006-01-02T15:04:05Z"),
	}
}
