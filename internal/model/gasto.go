package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Gasto is a flat categorized expense record with no relationships.
type Gasto struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Fecha       time.Time       `gorm:"index;not null"`
	Descripcion string          `gorm:"not null"`
	Categoria   string          `gorm:"index;not null"`
	Monto       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	MetodoPago  string          `gorm:"type:varchar(30);not null"`
	Proveedor   *string
	Notas       *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (Gasto) TableName() string { return "gastos" }

func (g *Gasto) BeforeCreate(_ *gorm.DB) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	return nil
}
