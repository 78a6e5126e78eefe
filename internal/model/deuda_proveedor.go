package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DeudaProveedor is money the business owes to a supplier. Independent of
// sales; created and settled by explicit user action.
type DeudaProveedor struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Acreedor       string          `gorm:"index;not null"`
	Descripcion    *string
	MontoTotal     decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	MontoPagado    decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	MontoPendiente decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	Estado         string          `gorm:"type:varchar(20);not null;default:'Pendiente'"`
	CreatedAt      time.Time
	UpdatedAt      time.Time

	Pagos []PagoProveedor `gorm:"foreignKey:DeudaID;constraint:OnDelete:CASCADE"`
}

func (DeudaProveedor) TableName() string { return "deudas_proveedor" }

func (d *DeudaProveedor) BeforeCreate(_ *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

// PagoProveedor is an immutable payment applied against a vendor debt.
type PagoProveedor struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey"`
	DeudaID    uuid.UUID       `gorm:"type:uuid;index;not null"`
	Monto      decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	MetodoPago string          `gorm:"type:varchar(30);not null"`
	Notas      *string
	Fecha      time.Time `gorm:"not null"`
	CreatedAt  time.Time
}

func (PagoProveedor) TableName() string { return "pagos_proveedor" }

func (p *PagoProveedor) BeforeCreate(_ *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
