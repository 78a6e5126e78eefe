package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Producto represents a catalog entry. When TieneVariantes is true, stock lives
// on the Variante rows and the Stock column is ignored; otherwise Stock holds
// the product-level quantity.
type Producto struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey"`
	Referencia       string    `gorm:"uniqueIndex;not null"`
	Nombre           string    `gorm:"index;not null"`
	Categoria        string    `gorm:"not null"`
	CostoBase        decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	PrecioVentaBase  decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	TieneVariantes   bool            `gorm:"not null;default:false"`
	Stock            int             `gorm:"not null;default:0"`
	ImagenURL        *string
	Activo           bool `gorm:"not null;default:true"`
	CreatedAt        time.Time
	UpdatedAt        time.Time

	Variantes []Variante `gorm:"foreignKey:ProductoID;constraint:OnDelete:CASCADE"`
}

func (Producto) TableName() string { return "productos" }

func (p *Producto) BeforeCreate(_ *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// Variante is one size of a product, with its own stock count and a price
// delta applied on top of the product's base sale price.
// Unique per (producto, talla).
type Variante struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	ProductoID   uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_producto_talla"`
	Talla        string          `gorm:"not null;uniqueIndex:idx_producto_talla"`
	Cantidad     int             `gorm:"not null;default:0"`
	AjustePrecio decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (Variante) TableName() string { return "variantes" }

func (v *Variante) BeforeCreate(_ *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}

// PrecioVenta is the effective unit price of the variant.
func (v *Variante) PrecioVenta(base decimal.Decimal) decimal.Decimal {
	return base.Add(v.AjustePrecio)
}
