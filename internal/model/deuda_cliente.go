package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Estados compartidos por deudas de cliente y de proveedor.
const (
	DeudaPendiente = "Pendiente"
	DeudaPagada    = "Pagado"
	DeudaCancelada = "Cancelado"
)

// DeudaCliente is the unpaid remainder of a sale, tracked against a specific
// customer. MontoPendiente = MontoTotal − MontoPagado; the row flips to Pagado
// when the pending amount falls within the cent tolerance.
type DeudaCliente struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey"`
	VentaID        uuid.UUID       `gorm:"type:uuid;index;not null"`
	ClienteID      uuid.UUID       `gorm:"type:uuid;index;not null"`
	MontoTotal     decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	MontoPagado    decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	MontoPendiente decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	Estado         string          `gorm:"type:varchar(20);not null;default:'Pendiente'"`
	// RecordatorioEnviadoAt throttles the reminder cron (max one mail per week)
	RecordatorioEnviadoAt *time.Time
	CreatedAt             time.Time
	UpdatedAt             time.Time

	Cliente *Cliente `gorm:"foreignKey:ClienteID"`
	Venta   *Venta   `gorm:"foreignKey:VentaID"`
	Abonos  []Abono  `gorm:"foreignKey:DeudaID;constraint:OnDelete:CASCADE"`
}

func (DeudaCliente) TableName() string { return "deudas_cliente" }

func (d *DeudaCliente) BeforeCreate(_ *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

// Abono is an immutable partial payment applied against a customer debt.
type Abono struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey"`
	DeudaID    uuid.UUID       `gorm:"type:uuid;index;not null"`
	Monto      decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	MetodoPago string          `gorm:"type:varchar(30);not null"`
	Notas      *string
	Fecha      time.Time `gorm:"not null"`
	CreatedAt  time.Time
}

func (Abono) TableName() string { return "abonos" }

func (a *Abono) BeforeCreate(_ *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
