package dto

import "github.com/shopspring/decimal"

// ResumenMensualResponse is the dashboard header: totals for the requested
// month plus the percentage change against the previous month.
type ResumenMensualResponse struct {
	Anio           int             `json:"anio"`
	Mes            int             `json:"mes"`
	TotalVentas    decimal.Decimal `json:"total_ventas"`
	NumeroVentas   int64           `json:"numero_ventas"`
	TotalGastos    decimal.Decimal `json:"total_gastos"`
	Utilidad       decimal.Decimal `json:"utilidad"`
	VariacionPct   decimal.Decimal `json:"variacion_pct"`
}

type TopProductoResponse struct {
	ProductoID       string          `json:"producto_id"`
	Referencia       string          `json:"referencia"`
	Nombre           string          `json:"nombre"`
	UnidadesVendidas int64           `json:"unidades_vendidas"`
	Ingresos         decimal.Decimal `json:"ingresos"`
}

type MargenProductoResponse struct {
	ProductoID       string          `json:"producto_id"`
	Referencia       string          `json:"referencia"`
	Nombre           string          `json:"nombre"`
	UnidadesVendidas int64           `json:"unidades_vendidas"`
	Ingresos         decimal.Decimal `json:"ingresos"`
	Costo            decimal.Decimal `json:"costo"`
	Utilidad         decimal.Decimal `json:"utilidad"`
}

type GastoCategoriaResponse struct {
	Categoria string          `json:"categoria"`
	Total     decimal.Decimal `json:"total"`
	Registros int64           `json:"registros"`
}

type DeudasResumenResponse struct {
	ClientesPendiente   decimal.Decimal `json:"clientes_pendiente"`
	ClientesRegistros   int64           `json:"clientes_registros"`
	ProveedoresPendiente decimal.Decimal `json:"proveedores_pendiente"`
	ProveedoresRegistros int64           `json:"proveedores_registros"`
}
