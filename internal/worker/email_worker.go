package worker

// email_worker.go
// Processes email jobs from QueueEmail: PDF receipts and debt reminders
// go out through the same SMTP mailer.

import (
	"context"
	"encoding/json"
	"fmt"

	"minegocio/internal/infra"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// EmailJobPayload is the job envelope sent to QueueEmail.
type EmailJobPayload struct {
	ToEmail string `json:"to_email"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
	PDFPath string `json:"pdf_path,omitempty"`
}

type EmailWorker struct {
	mailer *infra.Mailer
	rdb    *redis.Client
}

func NewEmailWorker(mailer *infra.Mailer, rdb *redis.Client) *EmailWorker {
	return &EmailWorker{mailer: mailer, rdb: rdb}
}

// Process sends the email, attaching the PDF when the payload carries one.
func (w *EmailWorker) Process(ctx context.Context, raw json.RawMessage) {
	var payload EmailJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("email_worker: invalid payload")
		return
	}
	if payload.ToEmail == "" {
		log.Warn().Msg("email_worker: empty to_email — skipping")
		return
	}

	sendErr := withRetry(ctx, 3, func(attempt int) error {
		err := w.mailer.Send(payload.ToEmail, payload.Subject, payload.Body, payload.PDFPath)
		if err != nil {
			log.Warn().
				Err(err).
				Int("attempt", attempt+1).
				Str("to", payload.ToEmail).
				Msg("email_worker: send attempt failed, retrying")
		}
		return err
	})
	if sendErr != nil {
		log.Error().Err(sendErr).Str("to", payload.ToEmail).Msg("email_worker: failed after all retries")
		SendToDLQ(ctx, w.rdb, QueueEmail, "email", raw,
			fmt.Sprintf("smtp send failed: %v", sendErr), 3)
		return
	}
	log.Info().Str("to", payload.ToEmail).Msg("email_worker: correo enviado")
}
