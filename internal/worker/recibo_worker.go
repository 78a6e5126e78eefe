package worker

// recibo_worker.go
// Processes receipt jobs from QueueRecibos: renders the sale's PDF receipt
// and, when the customer has an email on file, hands the attachment off to
// the email queue.

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"minegocio/internal/infra"
	"minegocio/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// ReciboJobPayload is the job envelope sent to QueueRecibos.
type ReciboJobPayload struct {
	VentaID string `json:"venta_id"`
}

type ReciboWorker struct {
	ventaRepo      repository.VentaRepository
	dispatcher     *Dispatcher
	rdb            *redis.Client
	pdfStoragePath string
	negocioNombre  string
}

func NewReciboWorker(
	ventaRepo repository.VentaRepository,
	dispatcher *Dispatcher,
	rdb *redis.Client,
	pdfStoragePath string,
	negocioNombre string,
) *ReciboWorker {
	return &ReciboWorker{
		ventaRepo:      ventaRepo,
		dispatcher:     dispatcher,
		rdb:            rdb,
		pdfStoragePath: pdfStoragePath,
		negocioNombre:  negocioNombre,
	}
}

// Process handles a single receipt job:
//  1. Parse ReciboJobPayload from the job envelope
//  2. Fetch the Venta (with items and cliente) from DB
//  3. Render the PDF receipt, with backoff (max 3 attempts)
//  4. Enqueue an email job when the customer has a correo on file
func (w *ReciboWorker) Process(ctx context.Context, raw json.RawMessage) {
	var payload ReciboJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("recibo_worker: invalid payload")
		return
	}

	ventaID, err := uuid.Parse(payload.VentaID)
	if err != nil {
		log.Error().Str("venta_id", payload.VentaID).Msg("recibo_worker: invalid venta_id")
		return
	}

	venta, err := w.ventaRepo.FindByID(ctx, ventaID)
	if err != nil {
		log.Error().Err(err).Str("venta_id", payload.VentaID).Msg("recibo_worker: venta not found")
		return
	}

	var pdfPath string
	genErr := withRetry(ctx, 3, func(attempt int) error {
		path, err := infra.GenerateReciboPDF(venta, w.pdfStoragePath, w.negocioNombre)
		if err != nil {
			log.Warn().
				Err(err).
				Int("attempt", attempt+1).
				Str("venta_id", payload.VentaID).
				Msg("recibo_worker: PDF attempt failed, retrying")
			return err
		}
		pdfPath = path
		return nil
	})
	if genErr != nil {
		log.Error().Err(genErr).Str("venta_id", payload.VentaID).Msg("recibo_worker: PDF failed after all retries")
		SendToDLQ(ctx, w.rdb, QueueRecibos, "recibo", raw,
			fmt.Sprintf("pdf generation failed: %v", genErr), 3)
		return
	}
	log.Info().Str("pdf", pdfPath).Str("venta_id", payload.VentaID).Msg("recibo_worker: PDF generated")

	if venta.Cliente == nil || venta.Cliente.Correo == nil || *venta.Cliente.Correo == "" {
		return
	}
	emailJob := EmailJobPayload{
		ToEmail: *venta.Cliente.Correo,
		Subject: fmt.Sprintf("%s — Recibo %s", w.negocioNombre, venta.NumeroVenta),
		Body: fmt.Sprintf("Adjunto encontrarás el recibo de tu compra.\nTotal: $%s",
			venta.Total.StringFixed(2)),
		PDFPath: pdfPath,
	}
	if err := w.dispatcher.EnqueueEmail(ctx, emailJob); err != nil {
		log.Warn().Err(err).Str("email", *venta.Cliente.Correo).Msg("recibo_worker: failed to enqueue email")
	}
}

// withRetry calls fn up to maxAttempts times with exponential backoff.
// Backoff schedule: attempt 1 = immediate, 2 = 1s, 3 = 2s.
// Returns nil if any attempt succeeds; last error otherwise.
func withRetry(ctx context.Context, maxAttempts int, fn func(attempt int) error) error {
	var lastErr error
	for i := 0; i < maxAttempts; i++ {
		if i > 0 {
			wait := time.Duration(1<<uint(i-1)) * time.Second
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(wait):
			}
		}
		if err := fn(i); err != nil {
			lastErr = err
			continue
		}
		return nil
	}
	return lastErr
}
