package model

// Contador is a named monotonic sequence. The "ventas" row backs the
// human-readable sale numbers: it is incremented atomically inside the sale
// transaction, so numbers survive row deletions and concurrent inserts
// (unlike a COUNT(*)-derived scheme).
type Contador struct {
	Nombre string `gorm:"primaryKey"`
	Valor  int64  `gorm:"not null;default:0"`
}

func (Contador) TableName() string { return "contadores" }
