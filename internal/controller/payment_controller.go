package controller

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/vzabara/nuvei-gateway/internal/application/authorize"
	domainErrors "github.com/vzabara/nuvei-gateway/internal/domain/errors"
	"github.com/vzabara/nuvei-gateway/internal/domain/order"
	"github.com/vzabara/nuvei-gateway/internal/infrastructure/observability"
)

// PaymentController handles the authorization and refund endpoints.
type PaymentController struct {
	authorize *authorize.AuthorizeUseCase
	refund    *authorize.RefundUseCase
	metrics   *observability.Metrics
	logger    zerolog.Logger
}

// NewPaymentController creates a new PaymentController.
func NewPaymentController(
	authorizeUC *authorize.AuthorizeUseCase,
	refundUC *authorize.RefundUseCase,
	metrics *observability.Metrics,
	logger zerolog.Logger,
) *PaymentController {
	return &PaymentController{
		authorize: authorizeUC,
		refund:    refundUC,
		metrics:   metrics,
		logger:    logger,
	}
}

// Authorize handles POST /api/v1/payments/authorize
func (h *PaymentController) Authorize(w http.ResponseWriter, r *http.Request) {
	var req AuthorizeRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, err)
		return
	}

	correlationID := uuid.New().String()
	start := time.Now()

	result, err := h.authorize.Execute(r.Context(), req.toOrder(), req.toCard())
	outcome := outcomeLabel(err)
	h.metrics.AuthorizationsTotal.WithLabelValues(outcome).Inc()
	h.metrics.AuthorizationDuration.WithLabelValues(outcome).Observe(time.Since(start).Seconds())

	if err != nil {
		h.logger.Warn().
			Str("correlation_id", correlationID).
			Int64("order_id", req.OrderID).
			Str("outcome", outcome).
			Msg("authorization did not complete")
		writeError(w, err)
		return
	}

	h.logger.Info().
		Str("correlation_id", correlationID).
		Int64("order_id", req.OrderID).
		Str("unique_ref", result.UniqueRef).
		Bool("recording_pending", result.RecordingFailed).
		Msg("authorization approved")

	writeJSON(w, http.StatusOK, AuthorizeResponse{
		UniqueRef:        result.UniqueRef,
		Redirect:         result.Redirect,
		RecordingPending: result.RecordingFailed,
	})
}

// Refund handles POST /api/v1/payments/{orderID}/refund
func (h *PaymentController) Refund(w http.ResponseWriter, r *http.Request) {
	orderID, err := strconv.ParseInt(chi.URLParam(r, "orderID"), 10, 64)
	if err != nil || orderID <= 0 {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid order id", Code: "invalid_id"})
		return
	}

	var req RefundRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, err)
		return
	}

	amount := order.Amount{ValueCents: floatToCents(req.Amount), Currency: req.Currency}
	if err := h.refund.Execute(r.Context(), orderID, amount, req.Reason); err != nil {
		writeError(w, err)
		return
	}
	h.metrics.RefundsTotal.Inc()

	writeJSON(w, http.StatusAccepted, RefundResponse{OrderID: orderID, Status: "accepted"})
}

// outcomeLabel maps an authorization result to a bounded metric label.
func outcomeLabel(err error) string {
	if err == nil {
		return "approved"
	}
	var declined *domainErrors.DeclinedError
	if errors.As(err, &declined) {
		return "declined"
	}
	var invalid *domainErrors.ValidationError
	if errors.As(err, &invalid) {
		return "invalid"
	}
	if errors.Is(err, domainErrors.ErrGatewayUnreachable) {
		return "unreachable"
	}
	return "error"
}
