package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ─── Filter / List ──────────────────────────────────────────────────────────

// VentaFilter is bound from the query string of GET /v1/ventas.
// Desde/Hasta are parsed from YYYY-MM-DD by the handler.
type VentaFilter struct {
	Desde     time.Time `form:"-"`
	Hasta     time.Time `form:"-"`
	ClienteID string    `form:"cliente_id"`
	Estado    string    `form:"estado"` // Pendiente | Pagado | Cancelado | all
	Page      int       `form:"page,default=1"   validate:"min=1"`
	Limit     int       `form:"limit,default=50" validate:"min=1,max=200"`
}

type VentaListResponse struct {
	Data  []VentaResponse `json:"data"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}

// ─── Request DTOs ────────────────────────────────────────────────────────────

type ItemVentaRequest struct {
	ProductoID     string          `json:"producto_id"     validate:"required,uuid"`
	VarianteID     *string         `json:"variante_id"     validate:"omitempty,uuid"`
	Cantidad       int             `json:"cantidad"        validate:"required,min=1"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario" validate:"required"`
}

type CostoExtraRequest struct {
	Concepto string          `json:"concepto" validate:"required"`
	Monto    decimal.Decimal `json:"monto"    validate:"required"`
}

// ClienteVentaRequest identifies or creates the sale's customer. With ID the
// contact fields update the existing row; with only Nombre a new customer is
// created; fully empty means an anonymous walk-in sale.
type ClienteVentaRequest struct {
	ID      *string `json:"id"      validate:"omitempty,uuid"`
	Nombre  *string `json:"nombre"`
	Cedula  *string `json:"cedula"`
	Correo  *string `json:"correo"  validate:"omitempty,email"`
	Celular *string `json:"celular"`
}

type RegistrarVentaRequest struct {
	Items       []ItemVentaRequest   `json:"items"        validate:"required,min=1,dive"`
	CostosExtra []CostoExtraRequest  `json:"costos_extra" validate:"omitempty,dive"`
	Cliente     *ClienteVentaRequest `json:"cliente"`
	MetodoPago  string               `json:"metodo_pago"  validate:"required,oneof=Efectivo Tarjeta Transferencia"`
	MontoPagado decimal.Decimal      `json:"monto_pagado" validate:"min=0"`
	Notas       *string              `json:"notas"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ItemVentaResponse struct {
	Producto       string          `json:"producto"`
	Talla          *string         `json:"talla,omitempty"`
	Cantidad       int             `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	Subtotal       decimal.Decimal `json:"subtotal"`
}

type CostoExtraResponse struct {
	Concepto string          `json:"concepto"`
	Monto    decimal.Decimal `json:"monto"`
}

type VentaResponse struct {
	ID            string               `json:"id"`
	NumeroVenta   string               `json:"numero_venta"`
	ClienteID     *string              `json:"cliente_id,omitempty"`
	ClienteNombre *string              `json:"cliente_nombre,omitempty"`
	Items         []ItemVentaResponse  `json:"items"`
	CostosExtra   []CostoExtraResponse `json:"costos_extra,omitempty"`
	Subtotal      decimal.Decimal      `json:"subtotal"`
	Total         decimal.Decimal      `json:"total"`
	MontoPagado   decimal.Decimal      `json:"monto_pagado"`
	Cambio        decimal.Decimal      `json:"cambio"`
	Estado        string               `json:"estado"`
	MetodoPago    string               `json:"metodo_pago"`
	DeudaGenerada bool                 `json:"deuda_generada"`
	Fecha         string               `json:"fecha"`
}
