package dto

import "github.com/shopspring/decimal"

// DeudaFilter serves both customer and vendor debt listings.
type DeudaFilter struct {
	Estado    string `form:"estado"` // Pendiente | Pagado | Cancelado | all
	ClienteID string `form:"cliente_id"`
	Acreedor  string `form:"acreedor"`
	Page      int    `form:"page,default=1"   validate:"min=1"`
	Limit     int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type RegistrarAbonoRequest struct {
	Monto      decimal.Decimal `json:"monto"       validate:"required"`
	MetodoPago string          `json:"metodo_pago" validate:"required,oneof=Efectivo Tarjeta Transferencia"`
	Notas      *string         `json:"notas"`
}

type CrearDeudaProveedorRequest struct {
	Acreedor    string          `json:"acreedor"    validate:"required"`
	Descripcion *string         `json:"descripcion"`
	MontoTotal  decimal.Decimal `json:"monto_total" validate:"required"`
}

type AbonoResponse struct {
	ID         string          `json:"id"`
	Monto      decimal.Decimal `json:"monto"`
	MetodoPago string          `json:"metodo_pago"`
	Notas      *string         `json:"notas,omitempty"`
	Fecha      string          `json:"fecha"`
}

type DeudaClienteResponse struct {
	ID             string          `json:"id"`
	VentaID        string          `json:"venta_id"`
	ClienteID      string          `json:"cliente_id"`
	ClienteNombre  string          `json:"cliente_nombre"`
	MontoTotal     decimal.Decimal `json:"monto_total"`
	MontoPagado    decimal.Decimal `json:"monto_pagado"`
	MontoPendiente decimal.Decimal `json:"monto_pendiente"`
	Estado         string          `json:"estado"`
	Abonos         []AbonoResponse `json:"abonos,omitempty"`
	CreatedAt      string          `json:"created_at"`
}

type DeudaClienteListResponse struct {
	Data  []DeudaClienteResponse `json:"data"`
	Total int64                  `json:"total"`
	Page  int                    `json:"page"`
	Limit int                    `json:"limit"`
}

type DeudaProveedorResponse struct {
	ID             string          `json:"id"`
	Acreedor       string          `json:"acreedor"`
	Descripcion    *string         `json:"descripcion,omitempty"`
	MontoTotal     decimal.Decimal `json:"monto_total"`
	MontoPagado    decimal.Decimal `json:"monto_pagado"`
	MontoPendiente decimal.Decimal `json:"monto_pendiente"`
	Estado         string          `json:"estado"`
	Pagos          []AbonoResponse `json:"pagos,omitempty"`
	CreatedAt      string          `json:"created_at"`
}

type DeudaProveedorListResponse struct {
	Data  []DeudaProveedorResponse `json:"data"`
	Total int64                    `json:"total"`
	Page  int                      `json:"page"`
	Limit int                      `json:"limit"`
}
