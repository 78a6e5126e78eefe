package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Cliente stores customer identity plus denormalized lifetime purchase
// aggregates. TotalCompras and NumeroCompras are maintained inside the sale
// transaction (and reversed on cancellation) so they stay consistent with the
// ventas table.
type Cliente struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	Nombre        string    `gorm:"index;not null"`
	Cedula        *string   `gorm:"uniqueIndex"`
	Correo        *string
	Celular       *string
	Direccion     *string
	TotalCompras  decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	NumeroCompras int             `gorm:"not null;default:0"`
	UltimaCompra  *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (Cliente) TableName() string { return "clientes" }

func (c *Cliente) BeforeCreate(_ *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
