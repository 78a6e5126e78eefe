package worker

// recordatorio_cron.go
// Background goroutine that periodically looks for customer debts that have
// been open longer than the configured grace period and emails the customer
// a reminder. A debt is reminded at most once per throttle window, tracked
// via recordatorio_enviado_at.

import (
	"context"
	"fmt"
	"time"

	"minegocio/internal/repository"

	"github.com/rs/zerolog/log"
)

const (
	recordatorioBatchSize = 25
	// A reminded debt is left alone for a week before the next nudge.
	recordatorioThrottle = 7 * 24 * time.Hour
)

// RecordatorioCronConfig holds all dependencies for the reminder goroutine.
type RecordatorioCronConfig struct {
	DeudaRepo     repository.DeudaClienteRepository
	Dispatcher    *Dispatcher
	NegocioNombre string
	// GraciaDias is how long a debt may sit open before reminders start.
	GraciaDias int
	// TickInterval defaults to one hour when zero.
	TickInterval time.Duration
}

// StartRecordatorioCron launches the reminder loop. It respects the context
// for graceful shutdown.
func StartRecordatorioCron(ctx context.Context, cfg RecordatorioCronConfig) {
	interval := cfg.TickInterval
	if interval <= 0 {
		interval = time.Hour
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		log.Info().Int("gracia_dias", cfg.GraciaDias).Msg("recordatorio_cron: started")

		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("recordatorio_cron: shutting down")
				return
			case <-ticker.C:
				processRecordatorios(ctx, cfg)
			}
		}
	}()
}

func processRecordatorios(ctx context.Context, cfg RecordatorioCronConfig) {
	now := time.Now()
	antesDe := now.AddDate(0, 0, -cfg.GraciaDias)
	recordatorioAntesDe := now.Add(-recordatorioThrottle)

	deudas, err := cfg.DeudaRepo.ListPendientesVencidas(ctx, antesDe, recordatorioAntesDe, recordatorioBatchSize)
	if err != nil {
		log.Error().Err(err).Msg("recordatorio_cron: failed to query overdue debts")
		return
	}
	if len(deudas) == 0 {
		return
	}

	log.Info().Int("count", len(deudas)).Msg("recordatorio_cron: processing overdue debts")

	for i := range deudas {
		deuda := &deudas[i]
		if deuda.Cliente == nil || deuda.Cliente.Correo == nil || *deuda.Cliente.Correo == "" {
			// No way to reach the customer; mark anyway so the query
			// does not return the same row every tick.
			_ = cfg.DeudaRepo.MarcarRecordatorio(ctx, deuda.ID, now)
			continue
		}

		job := EmailJobPayload{
			ToEmail: *deuda.Cliente.Correo,
			Subject: fmt.Sprintf("%s — Recordatorio de saldo pendiente", cfg.NegocioNombre),
			Body: fmt.Sprintf(
				"Hola %s,\n\nTienes un saldo pendiente de $%s con nosotros.\nPuedes pasar por la tienda cuando gustes para ponerte al día.\n\n%s",
				deuda.Cliente.Nombre,
				deuda.MontoPendiente.StringFixed(2),
				cfg.NegocioNombre,
			),
		}
		if err := cfg.Dispatcher.EnqueueEmail(ctx, job); err != nil {
			log.Warn().Err(err).Str("deuda_id", deuda.ID.String()).Msg("recordatorio_cron: failed to enqueue reminder")
			continue
		}
		if err := cfg.DeudaRepo.MarcarRecordatorio(ctx, deuda.ID, now); err != nil {
			log.Warn().Err(err).Str("deuda_id", deuda.ID.String()).Msg("recordatorio_cron: failed to mark reminder")
		}
	}
}
