package handler

import (
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/fundbridge/platform/internal/api/metrics"
	"github.com/fundbridge/platform/internal/core/domain"
	"github.com/fundbridge/platform/internal/core/ports"
)

const maxWebhookBytes = 64 << 10

// PaymentDispatcher is the interface the handler uses to enqueue events.
type PaymentDispatcher interface {
	Enqueue(event domain.PaymentEvent)
}

// PaymentHandler receives payment gateway webhooks.
type PaymentHandler struct {
	gateway    ports.PaymentGateway
	dispatcher PaymentDispatcher
	log        zerolog.Logger
}

func NewPaymentHandler(gateway ports.PaymentGateway, dispatcher PaymentDispatcher, log zerolog.Logger) *PaymentHandler {
	return &PaymentHandler{gateway: gateway, dispatcher: dispatcher, log: log.With().Str("component", "webhook").Logger()}
}

// Webhook handles POST /api/payments/webhook. The signature is checked
// against the raw body before anything is decoded. Succeeded payments are
// queued (202); every other verified event is acknowledged and ignored (200).
//
// @Summary      Payment gateway webhook
// @Tags         investments
// @Accept       json
// @Produce      json
// @Param        Stripe-Signature  header    string  true  "Gateway signature"
// @Success      200               {object}  webhookResponse
// @Success      202               {object}  webhookResponse
// @Failure      400               {object}  errorResponse
// @Router       /payments/webhook [post]
func (h *PaymentHandler) Webhook(c echo.Context) error {
	payload, err := io.ReadAll(io.LimitReader(c.Request().Body, maxWebhookBytes))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "unreadable body")
	}

	event, err := h.gateway.ParseWebhook(payload, c.Request().Header.Get("Stripe-Signature"))
	if err != nil {
		metrics.PaymentEventsErrorsTotal.WithLabelValues("invalid_signature").Inc()
		h.log.Warn().Err(err).Msg("webhook rejected")
		return echo.NewHTTPError(http.StatusBadRequest, domain.ErrInvalidSignature.Error())
	}

	if event.Type != domain.EventPaymentSucceeded {
		h.log.Debug().Str("event", event.ID).Str("type", event.Type).Msg("webhook ignored")
		return c.JSON(http.StatusOK, webhookResponse{Received: true, Type: event.Type})
	}

	h.dispatcher.Enqueue(*event)
	return c.JSON(http.StatusAccepted, webhookResponse{Received: true, Queued: true, Type: event.Type})
}
