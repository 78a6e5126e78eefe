package dto

import "github.com/shopspring/decimal"

type ProductoFilter struct {
	Referencia string `form:"referencia"`
	Nombre     string `form:"nombre"`
	Categoria  string `form:"categoria"`
	Activo     string `form:"activo"` // "" = activos, "false" = inactivos, "all" = todos
	Page       int    `form:"page,default=1"   validate:"min=1"`
	Limit      int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type VarianteRequest struct {
	Talla        string          `json:"talla"         validate:"required"`
	Cantidad     int             `json:"cantidad"      validate:"min=0"`
	AjustePrecio decimal.Decimal `json:"ajuste_precio"`
}

type CrearProductoRequest struct {
	Referencia      string            `json:"referencia"        validate:"required"`
	Nombre          string            `json:"nombre"            validate:"required"`
	Categoria       string            `json:"categoria"         validate:"required"`
	CostoBase       decimal.Decimal   `json:"costo_base"        validate:"min=0"`
	PrecioVentaBase decimal.Decimal   `json:"precio_venta_base" validate:"required"`
	Stock           int               `json:"stock"             validate:"min=0"`
	ImagenURL       *string           `json:"imagen_url"`
	Variantes       []VarianteRequest `json:"variantes"         validate:"omitempty,dive"`
}

type ActualizarProductoRequest struct {
	Nombre          *string          `json:"nombre"`
	Categoria       *string          `json:"categoria"`
	CostoBase       *decimal.Decimal `json:"costo_base"`
	PrecioVentaBase *decimal.Decimal `json:"precio_venta_base"`
	ImagenURL       *string          `json:"imagen_url"`
}

// AjustarStockRequest applies a manual delta to a variant or to the
// product-level stock. Negative deltas fail when they would leave stock < 0.
type AjustarStockRequest struct {
	VarianteID *string `json:"variante_id" validate:"omitempty,uuid"`
	Delta      int     `json:"delta"       validate:"required"`
}

type VarianteResponse struct {
	ID           string          `json:"id"`
	Talla        string          `json:"talla"`
	Cantidad     int             `json:"cantidad"`
	AjustePrecio decimal.Decimal `json:"ajuste_precio"`
	PrecioVenta  decimal.Decimal `json:"precio_venta"`
}

type ProductoResponse struct {
	ID              string             `json:"id"`
	Referencia      string             `json:"referencia"`
	Nombre          string             `json:"nombre"`
	Categoria       string             `json:"categoria"`
	CostoBase       decimal.Decimal    `json:"costo_base"`
	PrecioVentaBase decimal.Decimal    `json:"precio_venta_base"`
	TieneVariantes  bool               `json:"tiene_variantes"`
	Stock           int                `json:"stock"`
	ImagenURL       *string            `json:"imagen_url,omitempty"`
	Activo          bool               `json:"activo"`
	Variantes       []VarianteResponse `json:"variantes,omitempty"`
}

type ProductoListResponse struct {
	Data  []ProductoResponse `json:"data"`
	Total int64              `json:"total"`
	Page  int                `json:"page"`
	Limit int                `json:"limit"`
}
