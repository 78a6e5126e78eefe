package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type GastoFilter struct {
	Desde     time.Time `form:"-"`
	Hasta     time.Time `form:"-"`
	Categoria string    `form:"categoria"`
	Page      int       `form:"page,default=1"   validate:"min=1"`
	Limit     int       `form:"limit,default=50" validate:"min=1,max=200"`
}

type CrearGastoRequest struct {
	Fecha       string          `json:"fecha"       validate:"required,datetime=2006-01-02"`
	Descripcion string          `json:"descripcion" validate:"required"`
	Categoria   string          `json:"categoria"   validate:"required"`
	Monto       decimal.Decimal `json:"monto"       validate:"required"`
	MetodoPago  string          `json:"metodo_pago" validate:"required,oneof=Efectivo Tarjeta Transferencia"`
	Proveedor   *string         `json:"proveedor"`
	Notas       *string         `json:"notas"`
}

type ActualizarGastoRequest struct {
	Fecha       *string          `json:"fecha" validate:"omitempty,datetime=2006-01-02"`
	Descripcion *string          `json:"descripcion"`
	Categoria   *string          `json:"categoria"`
	Monto       *decimal.Decimal `json:"monto"`
	MetodoPago  *string          `json:"metodo_pago" validate:"omitempty,oneof=Efectivo Tarjeta Transferencia"`
	Proveedor   *string          `json:"proveedor"`
	Notas       *string          `json:"notas"`
}

type GastoResponse struct {
	ID          string          `json:"id"`
	Fecha       string          `json:"fecha"`
	Descripcion string          `json:"descripcion"`
	Categoria   string          `json:"categoria"`
	Monto       decimal.Decimal `json:"monto"`
	MetodoPago  string          `json:"metodo_pago"`
	Proveedor   *string         `json:"proveedor,omitempty"`
	Notas       *string         `json:"notas,omitempty"`
}

type GastoListResponse struct {
	Data  []GastoResponse `json:"data"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}
