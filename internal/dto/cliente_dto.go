package dto

import "github.com/shopspring/decimal"

type ClienteFilter struct {
	Nombre string `form:"nombre"`
	Cedula string `form:"cedula"`
	Page   int    `form:"page,default=1"   validate:"min=1"`
	Limit  int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type CrearClienteRequest struct {
	Nombre    string  `json:"nombre"  validate:"required"`
	Cedula    *string `json:"cedula"`
	Correo    *string `json:"correo"  validate:"omitempty,email"`
	Celular   *string `json:"celular"`
	Direccion *string `json:"direccion"`
}

type ActualizarClienteRequest struct {
	Nombre    *string `json:"nombre"`
	Cedula    *string `json:"cedula"`
	Correo    *string `json:"correo" validate:"omitempty,email"`
	Celular   *string `json:"celular"`
	Direccion *string `json:"direccion"`
}

type ClienteResponse struct {
	ID            string          `json:"id"`
	Nombre        string          `json:"nombre"`
	Cedula        *string         `json:"cedula,omitempty"`
	Correo        *string         `json:"correo,omitempty"`
	Celular       *string         `json:"celular,omitempty"`
	Direccion     *string         `json:"direccion,omitempty"`
	TotalCompras  decimal.Decimal `json:"total_compras"`
	NumeroCompras int             `json:"numero_compras"`
	UltimaCompra  *string         `json:"ultima_compra,omitempty"`
}

type ClienteListResponse struct {
	Data  []ClienteResponse `json:"data"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}
