package handler

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/cvboost/scoring-system/internal/api/metrics"
	"github.com/cvboost/scoring-system/internal/core/domain"
	"github.com/cvboost/scoring-system/internal/core/ports"
)

const signatureHeader = "X-Signature"

// BillingDispatcher is the interface the webhook handler uses to hand events
// to the async reconciler.
type BillingDispatcher interface {
	Enqueue(event ports.BillingEventInput)
}

// BillingHandler receives provider webhook deliveries. It verifies the HMAC
// signature, acknowledges fast, and defers all state changes to the worker
// pool; the provider retries on anything but a 2xx.
type BillingHandler struct {
	dispatcher BillingDispatcher
	secret     []byte
	log        zerolog.Logger
}

func NewBillingHandler(dispatcher BillingDispatcher, webhookSecret string, log zerolog.Logger) *BillingHandler {
	return &BillingHandler{
		dispatcher: dispatcher,
		secret:     []byte(webhookSecret),
		log:        log,
	}
}

// Receive handles POST /webhooks/billing — verifies and enqueues one event.
//
// @Summary      Ingest a billing provider webhook
// @Tags         billing
// @Accept       json
// @Produce      json
// @Param        X-Signature  header    string          true  "Hex HMAC-SHA256 of the raw body"
// @Param        body         body      webhookRequest  true  "Provider event envelope"
// @Success      202          {object}  acceptedResponse
// @Failure      400          {object}  errorResponse
// @Failure      401          {object}  errorResponse
// @Router       /webhooks/billing [post]
func (h *BillingHandler) Receive(c echo.Context) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "unreadable body")
	}

	if !h.verifySignature(body, c.Request().Header.Get(signatureHeader)) {
		metrics.WebhookRejectionsTotal.Inc()
		h.log.Warn().Msg("webhook signature verification failed")
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid signature")
	}

	// A signature-valid but malformed payload is acknowledged, not erred:
	// returning 4xx would make the provider retry it forever.
	var req webhookRequest
	if err := json.Unmarshal(body, &req); err != nil {
		h.log.Warn().Err(err).Msg("malformed webhook payload dropped")
		return c.JSON(http.StatusAccepted, acceptedResponse{Message: "event ignored"})
	}
	if err := c.Validate(&req); err != nil {
		h.log.Warn().Err(err).
			Str("event_id", req.Meta.EventID).
			Msg("incomplete webhook payload dropped")
		return c.JSON(http.StatusAccepted, acceptedResponse{Message: "event ignored"})
	}

	// Unknown event names are acknowledged without enqueueing so the
	// provider does not retry deliveries we will never handle.
	if !domain.KnownEventType(domain.BillingEventType(req.Meta.EventName)) {
		h.log.Info().
			Str("event_id", req.Meta.EventID).
			Str("event_name", req.Meta.EventName).
			Msg("ignoring unhandled billing event type")
		return c.JSON(http.StatusAccepted, acceptedResponse{Message: "event ignored"})
	}

	h.dispatcher.Enqueue(toBillingEventInput(req))
	metrics.BillingEventsTotal.WithLabelValues(req.Meta.EventName, "accepted").Inc()
	return c.JSON(http.StatusAccepted, acceptedResponse{Message: "event accepted"})
}

// verifySignature compares the hex HMAC-SHA256 of body against the header
// value in constant time.
func (h *BillingHandler) verifySignature(body []byte, signature string) bool {
	if len(h.secret) == 0 || signature == "" {
		return false
	}
	mac := hmac.New(sha256.New, h.secret)
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
