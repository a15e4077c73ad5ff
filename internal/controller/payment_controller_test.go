package controller

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vzabara/nuvei-gateway/internal/application/authorize"
	domainErrors "github.com/vzabara/nuvei-gateway/internal/domain/errors"
	"github.com/vzabara/nuvei-gateway/internal/infrastructure/observability"
	"github.com/vzabara/nuvei-gateway/internal/testutil"
)

type controllerFixture struct {
	gateway *testutil.MockGateway
	repo    *testutil.MockTransactionRepository
	orders  *testutil.MockOrderSink
	router  *chi.Mux
}

func newControllerFixture(t *testing.T) *controllerFixture {
	t.Helper()

	f := &controllerFixture{
		gateway: &testutil.MockGateway{},
		repo:    testutil.NewMockTransactionRepository(),
		orders:  testutil.NewMockOrderSink(),
	}

	logger := zerolog.Nop()
	authorizeUC := authorize.NewAuthorizeUseCase(
		f.gateway,
		testutil.StaticCredentials{Creds: testutil.TestCredentials()},
		f.repo,
		f.orders,
		logger,
	)
	refundUC := authorize.NewRefundUseCase(logger)
	metrics := observability.NewMetrics("test", prometheus.NewRegistry())

	paymentH := NewPaymentController(authorizeUC, refundUC, metrics, logger)
	transactionH := NewTransactionController(f.repo)

	r := chi.NewRouter()
	r.Post("/api/v1/payments/authorize", paymentH.Authorize)
	r.Post("/api/v1/payments/{orderID}/refund", paymentH.Refund)
	r.Get("/api/v1/orders/{orderID}/transactions", transactionH.ListByOrder)
	r.Get("/api/v1/transactions/{uniqueRef}", transactionH.GetByUniqueRef)
	f.router = r
	return f
}

func validAuthorizeBody() map[string]any {
	return map[string]any{
		"order_id":   int64(100),
		"amount":     49.99,
		"currency":   "USD",
		"return_url": "https://shop.example.com/checkout/thank-you",
		"card": map[string]any{
			"number": "4242424242424242",
			"expiry": "1229",
			"holder": "Jane Doe",
			"cvv":    "123",
		},
	}
}

func (f *controllerFixture) post(t *testing.T, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest("POST", path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func TestAuthorize_Approved(t *testing.T) {
	f := newControllerFixture(t)
	f.gateway.Response = testutil.ApprovedResponse("AB12345678")

	w := f.post(t, "/api/v1/payments/authorize", validAuthorizeBody())

	require.Equal(t, http.StatusOK, w.Code)
	var resp AuthorizeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "AB12345678", resp.UniqueRef)
	assert.Equal(t, "https://shop.example.com/checkout/thank-you", resp.Redirect)
	assert.False(t, resp.RecordingPending)
	assert.Equal(t, 1, f.repo.Count())
}

func TestAuthorize_Declined(t *testing.T) {
	f := newControllerFixture(t)
	f.gateway.Response = testutil.DeclinedResponse("DECLINED")

	w := f.post(t, "/api/v1/payments/authorize", validAuthorizeBody())

	require.Equal(t, http.StatusPaymentRequired, w.Code)
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "declined", resp.Code)
	assert.Contains(t, resp.Error, "DECLINED")
	assert.Equal(t, 0, f.repo.Count())
}

func TestAuthorize_GatewayErrorHidesDetail(t *testing.T) {
	f := newControllerFixture(t)
	f.gateway.Response = testutil.ErrorResponse("Invalid TERMINALID field")

	w := f.post(t, "/api/v1/payments/authorize", validAuthorizeBody())

	require.Equal(t, http.StatusBadGateway, w.Code)
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "gateway_error", resp.Code)
	assert.NotContains(t, resp.Error, "TERMINALID")
}

func TestAuthorize_GatewayUnreachable(t *testing.T) {
	f := newControllerFixture(t)
	f.gateway.Err = domainErrors.ErrGatewayUnreachable

	w := f.post(t, "/api/v1/payments/authorize", validAuthorizeBody())

	require.Equal(t, http.StatusBadGateway, w.Code)
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "gateway_unreachable", resp.Code)
}

func TestAuthorize_ValidationFailure(t *testing.T) {
	f := newControllerFixture(t)

	body := validAuthorizeBody()
	body["currency"] = "DOLLARS"
	w := f.post(t, "/api/v1/payments/authorize", body)

	require.Equal(t, http.StatusBadRequest, w.Code)
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "validation_error", resp.Code)
	assert.Empty(t, f.gateway.Submitted, "invalid request must not reach the gateway")
}

func TestAuthorize_InvalidJSON(t *testing.T) {
	f := newControllerFixture(t)

	req := httptest.NewRequest("POST", "/api/v1/payments/authorize", bytes.NewReader([]byte("{not json")))
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthorize_ResponseNeverEchoesCard(t *testing.T) {
	f := newControllerFixture(t)
	f.gateway.Response = testutil.ApprovedResponse("AB98765432")

	w := f.post(t, "/api/v1/payments/authorize", validAuthorizeBody())

	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "4242424242424242")
	assert.NotContains(t, w.Body.String(), "123")
}

func TestRefund_Accepted(t *testing.T) {
	f := newControllerFixture(t)

	w := f.post(t, "/api/v1/payments/100/refund", map[string]any{
		"amount":   25.00,
		"currency": "USD",
		"reason":   "customer request",
	})

	require.Equal(t, http.StatusAccepted, w.Code)
	var resp RefundResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(100), resp.OrderID)
	assert.Equal(t, "accepted", resp.Status)
}

func TestRefund_InvalidOrderID(t *testing.T) {
	f := newControllerFixture(t)

	w := f.post(t, "/api/v1/payments/not-a-number/refund", map[string]any{
		"amount":   25.00,
		"currency": "USD",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListTransactions_ByOrder(t *testing.T) {
	f := newControllerFixture(t)
	f.gateway.Response = testutil.ApprovedResponse("AB12345678")
	require.Equal(t, http.StatusOK, f.post(t, "/api/v1/payments/authorize", validAuthorizeBody()).Code)

	req := httptest.NewRequest("GET", "/api/v1/orders/100/transactions", nil)
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp []*TransactionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp, 1)
	assert.Equal(t, int64(100), resp[0].OrderID)
	assert.Equal(t, "AB12345678", resp[0].UniqueRef)
}

func TestGetTransaction_NotFound(t *testing.T) {
	f := newControllerFixture(t)

	req := httptest.NewRequest("GET", "/api/v1/transactions/ZZ99999999", nil)
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusNotFound, w.Code)
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "not_found", resp.Code)
}
