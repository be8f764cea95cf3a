package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/kbyiringiro/momoverify/internal/api/middleware"
	"github.com/kbyiringiro/momoverify/internal/archive"
	"github.com/kbyiringiro/momoverify/internal/extract"
	"github.com/kbyiringiro/momoverify/internal/metrics"
	"github.com/kbyiringiro/momoverify/internal/store"
	"github.com/kbyiringiro/momoverify/internal/verify"
)

// SMSHandler handles the inbound SMS webhook.
type SMSHandler struct {
	repo     store.MessageRepository
	archiver archive.Archiver
	log      zerolog.Logger
}

// NewSMSHandler creates a new SMS webhook handler.
func NewSMSHandler(repo store.MessageRepository, archiver archive.Archiver, log zerolog.Logger) *SMSHandler {
	return &SMSHandler{
		repo:     repo,
		archiver: archiver,
		log:      log,
	}
}

// ReceiveSMS handles POST /receive-sms.
//
// A message without a transaction id is a valid no-op: the gateway forwards
// every SMS on the line, so non-payment traffic is acknowledged as "ignored"
// rather than rejected.
func (h *SMSHandler) ReceiveSMS(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	metrics.MessagesReceived.Inc()

	// Malformed JSON is treated the same as a missing message.
	var req struct {
		Message string `json:"message"`
	}
	_ = json.NewDecoder(r.Body).Decode(&req)

	message := strings.TrimSpace(req.Message)
	if message == "" {
		middleware.WriteJSON(w, http.StatusBadRequest, map[string]string{
			"status": "error",
			"error":  "Missing 'message'",
		})
		return
	}

	rec, err := extract.Extract(message)
	if err != nil {
		metrics.MessagesIgnored.Inc()
		middleware.WriteJSON(w, http.StatusOK, map[string]string{
			"status": "ignored",
			"reason": "TxId not found in message.",
		})
		return
	}

	if err := h.repo.InsertMessage(ctx, rec); err != nil {
		metrics.StoreErrors.Inc()
		h.log.Error().Err(err).Str("txid", rec.TxID).Msg("Failed to insert message")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to save message")
		return
	}

	// Archiving is best-effort; a failed archive never fails the ingestion.
	if uri, err := h.archiver.ArchiveMessage(ctx, rec); err != nil {
		h.log.Warn().Err(err).Str("txid", rec.TxID).Msg("Failed to archive raw message")
	} else if uri != "" {
		h.log.Debug().Str("txid", rec.TxID).Str("uri", uri).Msg("Raw message archived")
	}

	metrics.MessagesSaved.Inc()
	h.log.Info().
		Str("txid", rec.TxID).
		Int64("amount_rwf", rec.AmountRWF).
		Str("payer_name", rec.PayerName).
		Msg("Message saved")

	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status": "saved",
		"data":   rec,
	})
}

// VerificationsHandler handles payment-verification queries.
type VerificationsHandler struct {
	verifier *verify.Verifier
	log      zerolog.Logger
}

// NewVerificationsHandler creates a new verification handler.
func NewVerificationsHandler(verifier *verify.Verifier, log zerolog.Logger) *VerificationsHandler {
	return &VerificationsHandler{
		verifier: verifier,
		log:      log,
	}
}

// VerifyPayment handles POST /verify-payment.
func (h *VerificationsHandler) VerifyPayment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	start := time.Now()

	var req struct {
		Name        string `json:"name"`
		PhoneNumber string `json:"phone_number"`
		TxID        string `json:"txid"`
	}
	_ = json.NewDecoder(r.Body).Decode(&req)

	// Missing fields are rejected before any store access.
	if strings.TrimSpace(req.Name) == "" ||
		strings.TrimSpace(req.PhoneNumber) == "" ||
		strings.TrimSpace(req.TxID) == "" {
		middleware.WriteJSON(w, http.StatusBadRequest, verify.Result{
			Status:  verify.StatusNotApproved,
			Message: "name, phone_number, and txid are required.",
		})
		return
	}

	result, err := h.verifier.Verify(ctx, req.TxID, req.Name, req.PhoneNumber)
	if err != nil {
		metrics.StoreErrors.Inc()
		h.log.Error().Err(err).Str("txid", req.TxID).Msg("Verification lookup failed")
		middleware.WriteError(w, http.StatusInternalServerError, "Verification failed")
		return
	}

	metrics.Verifications.WithLabelValues(string(result.Status)).Inc()
	metrics.VerificationDuration.Observe(float64(time.Since(start).Milliseconds()))

	h.log.Info().
		Str("txid", req.TxID).
		Str("status", string(result.Status)).
		Msg("Verification completed")

	middleware.WriteJSON(w, http.StatusOK, result)
}

// Health handles GET /health and GET /.
func Health(w http.ResponseWriter, r *http.Request) {
	middleware.WriteJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
		"time":   time.Now().Format(time.RFC3339),
	})
}
