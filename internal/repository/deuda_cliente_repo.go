package repository

import (
	"context"
	"time"

	"minegocio/internal/dto"
	"minegocio/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DeudaClienteRepository interface {
	CreateTx(tx *gorm.DB, d *model.DeudaCliente) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.DeudaCliente, error)
	FindAbiertaPorVentaTx(tx *gorm.DB, ventaID uuid.UUID) (*model.DeudaCliente, error)
	List(ctx context.Context, filter dto.DeudaFilter) ([]model.DeudaCliente, int64, error)
	UpdateTx(tx *gorm.DB, d *model.DeudaCliente) error
	CreateAbonoTx(tx *gorm.DB, a *model.Abono) error
	ListAbonos(ctx context.Context, deudaID uuid.UUID) ([]model.Abono, error)

	// ListPendientesVencidas feeds the reminder cron: open debts created
	// before the cutoff whose last reminder (if any) is older than the
	// throttle window.
	ListPendientesVencidas(ctx context.Context, antesDe, recordatorioAntesDe time.Time, limit int) ([]model.DeudaCliente, error)
	MarcarRecordatorio(ctx context.Context, id uuid.UUID, enviadoAt time.Time) error

	DB() *gorm.DB
}

type deudaClienteRepo struct{ db *gorm.DB }

func NewDeudaClienteRepository(db *gorm.DB) DeudaClienteRepository { return &deudaClienteRepo{db: db} }

func (r *deudaClienteRepo) DB() *gorm.DB { return r.db }

func (r *deudaClienteRepo) CreateTx(tx *gorm.DB, d *model.DeudaCliente) error {
	return tx.Create(d).Error
}

func (r *deudaClienteRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.DeudaCliente, error) {
	var d model.DeudaCliente
	err := r.db.WithContext(ctx).Preload("Cliente").Preload("Abonos").First(&d, "id = ?", id).Error
	return &d, err
}

func (r *deudaClienteRepo) FindAbiertaPorVentaTx(tx *gorm.DB, ventaID uuid.UUID) (*model.DeudaCliente, error) {
	var d model.DeudaCliente
	err := tx.Where("venta_id = ? AND estado = ?", ventaID, model.DeudaPendiente).First(&d).Error
	return &d, err
}

func (r *deudaClienteRepo) List(ctx context.Context, filter dto.DeudaFilter) ([]model.DeudaCliente, int64, error) {
	var deudas []model.DeudaCliente
	var total int64

	q := r.db.WithContext(ctx).Model(&model.DeudaCliente{})
	if filter.Estado != "" && filter.Estado != "all" {
		q = q.Where("estado = ?", filter.Estado)
	}
	if filter.ClienteID != "" {
		q = q.Where("cliente_id = ?", filter.ClienteID)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Preload("Cliente").Preload("Abonos").
		Order("created_at DESC").
		Offset(offset).Limit(filter.Limit).
		Find(&deudas).Error
	return deudas, total, err
}

func (r *deudaClienteRepo) UpdateTx(tx *gorm.DB, d *model.DeudaCliente) error {
	return tx.Save(d).Error
}

func (r *deudaClienteRepo) CreateAbonoTx(tx *gorm.DB, a *model.Abono) error {
	return tx.Create(a).Error
}

func (r *deudaClienteRepo) ListAbonos(ctx context.Context, deudaID uuid.UUID) ([]model.Abono, error) {
	var abonos []model.Abono
	err := r.db.WithContext(ctx).Where("deuda_id = ?", deudaID).
		Order("fecha ASC").Find(&abonos).Error
	return abonos, err
}

func (r *deudaClienteRepo) ListPendientesVencidas(ctx context.Context, antesDe, recordatorioAntesDe time.Time, limit int) ([]model.DeudaCliente, error) {
	var deudas []model.DeudaCliente
	err := r.db.WithContext(ctx).
		Preload("Cliente").
		Where("estado = ? AND created_at < ?", model.DeudaPendiente, antesDe).
		Where("recordatorio_enviado_at IS NULL OR recordatorio_enviado_at < ?", recordatorioAntesDe).
		Order("created_at ASC").
		Limit(limit).
		Find(&deudas).Error
	return deudas, err
}

func (r *deudaClienteRepo) MarcarRecordatorio(ctx context.Context, id uuid.UUID, enviadoAt time.Time) error {
	return r.db.WithContext(ctx).Model(&model.DeudaCliente{}).
		Where("id = ?", id).
		Update("recordatorio_enviado_at", enviadoAt).Error
}
