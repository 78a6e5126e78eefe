package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Estados de una venta. Ventas are never hard-deleted: cancellation is a state
// transition that restores stock and reverses customer aggregates.
const (
	VentaPendiente = "Pendiente"
	VentaPagada    = "Pagado"
	VentaCancelada = "Cancelado"
)

// MetodoEfectivo is the only payment method that produces change (cambio).
const MetodoEfectivo = "Efectivo"

// Venta is a completed point-of-sale transaction. ClienteNombre is snapshotted
// at sale time so renaming a customer does not rewrite history.
type Venta struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	NumeroVenta   string    `gorm:"uniqueIndex;not null"`
	ClienteID     *uuid.UUID `gorm:"type:uuid;index"`
	ClienteNombre *string
	Subtotal      decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	Total         decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	MontoPagado   decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	Cambio        decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	Estado        string          `gorm:"type:varchar(20);not null;default:'Pendiente'"`
	MetodoPago    string          `gorm:"type:varchar(30);not null"`
	Notas         *string
	Fecha         time.Time `gorm:"index;not null"`
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Cliente     *Cliente     `gorm:"foreignKey:ClienteID"`
	Items       []VentaItem  `gorm:"foreignKey:VentaID;constraint:OnDelete:CASCADE"`
	CostosExtra []CostoExtra `gorm:"foreignKey:VentaID;constraint:OnDelete:CASCADE"`
}

func (Venta) TableName() string { return "ventas" }

func (v *Venta) BeforeCreate(_ *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}

// VentaItem is one product/variant line within a sale.
// Subtotal = Cantidad × PrecioUnitario.
type VentaItem struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey"`
	VentaID        uuid.UUID  `gorm:"type:uuid;index;not null"`
	ProductoID     uuid.UUID  `gorm:"type:uuid;not null"`
	VarianteID     *uuid.UUID `gorm:"type:uuid"`
	Cantidad       int             `gorm:"not null"`
	PrecioUnitario decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Subtotal       decimal.Decimal `gorm:"type:decimal(14,2);not null"`

	Producto *Producto `gorm:"foreignKey:ProductoID"`
	Variante *Variante `gorm:"foreignKey:VarianteID"`
}

func (VentaItem) TableName() string { return "venta_items" }

func (i *VentaItem) BeforeCreate(_ *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// CostoExtra is a fee added to a sale beyond product prices (packaging,
// shipping, etc.).
type CostoExtra struct {
	ID       uuid.UUID       `gorm:"type:uuid;primaryKey"`
	VentaID  uuid.UUID       `gorm:"type:uuid;index;not null"`
	Concepto string          `gorm:"not null"`
	Monto    decimal.Decimal `gorm:"type:decimal(12,2);not null"`
}

func (CostoExtra) TableName() string { return "costos_extra" }

func (c *CostoExtra) BeforeCreate(_ *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
