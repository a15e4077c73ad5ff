package authorize_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vzabara/nuvei-gateway/internal/application/authorize"
	domainErrors "github.com/vzabara/nuvei-gateway/internal/domain/errors"
	"github.com/vzabara/nuvei-gateway/internal/domain/transaction"
	"github.com/vzabara/nuvei-gateway/internal/testutil"
)

type fixture struct {
	gateway      *testutil.MockGateway
	transactions *testutil.MockTransactionRepository
	orders       *testutil.MockOrderSink
	uc           *authorize.AuthorizeUseCase
}

func newFixture() *fixture {
	f := &fixture{
		gateway:      &testutil.MockGateway{},
		transactions: testutil.NewMockTransactionRepository(),
		orders:       testutil.NewMockOrderSink(),
	}
	f.uc = authorize.NewAuthorizeUseCase(
		f.gateway,
		testutil.StaticCredentials{Creds: testutil.TestCredentials()},
		f.transactions,
		f.orders,
		zerolog.Nop(),
		authorize.WithClock(func() time.Time {
			return time.Date(2026, 8, 29, 11, 22, 33, 444*int(time.Millisecond), time.UTC)
		}),
	)
	return f
}

func TestAuthorize_Approved_EndToEnd(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.gateway.Response = testutil.ApprovedResponse("AB12345678")

	res, err := f.uc.Execute(ctx, testutil.TestOrder(100, 4999, "USD"), testutil.TestVisaCard())
	require.NoError(t, err)
	assert.Equal(t, "AB12345678", res.UniqueRef)
	assert.Equal(t, "https://shop.example.com/checkout/thank-you", res.Redirect)
	assert.False(t, res.RecordingFailed)

	// Order side effects ran.
	assert.Equal(t, "AB12345678", f.orders.PaidOrders[100])
	assert.Equal(t, []int64{100}, f.orders.StockDecremented)
	assert.Equal(t, []int64{100}, f.orders.CartsCleared)

	// Exactly one record exists for the order, carrying the raw payload.
	recs, err := f.transactions.GetByOrderID(ctx, 100)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "AB12345678", recs[0].UniqueRef)
	assert.Contains(t, recs[0].Payload, "<RESPONSECODE>A</RESPONSECODE>")
	assert.Equal(t, time.Date(2026, 8, 29, 11, 22, 34, 1*int(time.Millisecond), time.UTC), recs[0].SettledAt)

	// The submitted request was signed for this order.
	req := f.gateway.LastRequest()
	require.NotNil(t, req)
	assert.Equal(t, "100", req.OrderID)
	assert.Equal(t, "49.99", req.Amount)
	assert.Equal(t, "VISA", req.CardType)
}

func TestAuthorize_TransportFailure(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.gateway.Err = domainErrors.ErrGatewayUnreachable

	_, err := f.uc.Execute(ctx, testutil.TestOrder(100, 4999, "USD"), testutil.TestVisaCard())
	assert.ErrorIs(t, err, domainErrors.ErrGatewayUnreachable)

	// No record, order untouched.
	assert.Equal(t, 0, f.transactions.Count())
	assert.Empty(t, f.orders.PaidOrders)
	assert.Empty(t, f.orders.StockDecremented)
}

func TestAuthorize_GatewayError(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.gateway.Response = testutil.ErrorResponse("INVALID TERMINALID")

	_, err := f.uc.Execute(ctx, testutil.TestOrder(100, 4999, "USD"), testutil.TestVisaCard())
	var ge *domainErrors.GatewayError
	require.ErrorAs(t, err, &ge)
	assert.Equal(t, "INVALID TERMINALID", ge.Message)
	assert.Equal(t, 0, f.transactions.Count())
}

func TestAuthorize_Declined(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.gateway.Response = testutil.DeclinedResponse("Insufficient funds")

	_, err := f.uc.Execute(ctx, testutil.TestOrder(100, 4999, "USD"), testutil.TestVisaCard())
	var de *domainErrors.DeclinedError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "Insufficient funds", de.Message)
	assert.Equal(t, 0, f.transactions.Count())
	assert.Empty(t, f.orders.PaidOrders)
}

func TestAuthorize_UninterpretableResponse(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.gateway.Response = []byte("<HTML>gateway maintenance page</HTML>")

	_, err := f.uc.Execute(ctx, testutil.TestOrder(100, 4999, "USD"), testutil.TestVisaCard())
	var ge *domainErrors.GatewayError
	require.ErrorAs(t, err, &ge)
	assert.Equal(t, "unknown gateway error", ge.Message)
}

func TestAuthorize_ValidationFailsBeforeSubmit(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	_, err := f.uc.Execute(ctx, testutil.TestOrder(0, 4999, "USD"), testutil.TestVisaCard())
	var ve *domainErrors.ValidationError
	assert.ErrorAs(t, err, &ve)
	assert.Empty(t, f.gateway.Submitted)

	_, err = f.uc.Execute(ctx, testutil.TestOrder(100, -1, "USD"), testutil.TestVisaCard())
	assert.ErrorAs(t, err, &ve)
	assert.Empty(t, f.gateway.Submitted)
}

func TestAuthorize_MissingCredentials(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	creds := testutil.TestCredentials()
	creds.SharedSecret = ""
	f.uc = authorize.NewAuthorizeUseCase(
		f.gateway,
		testutil.StaticCredentials{Creds: creds},
		f.transactions,
		f.orders,
		zerolog.Nop(),
	)

	_, err := f.uc.Execute(ctx, testutil.TestOrder(100, 4999, "USD"), testutil.TestVisaCard())
	assert.ErrorIs(t, err, domainErrors.ErrMissingCredentials)
	assert.Empty(t, f.gateway.Submitted)
}

func TestAuthorize_DuplicateRecordIsStillSuccess(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.gateway.Response = testutil.ApprovedResponse("AB12345678")

	// First attempt records the transaction.
	res, err := f.uc.Execute(ctx, testutil.TestOrder(100, 4999, "USD"), testutil.TestVisaCard())
	require.NoError(t, err)
	require.False(t, res.RecordingFailed)

	// A second approval with the same reference hits the uniqueness guard
	// after the order effects already ran; it still reports success.
	res, err = f.uc.Execute(ctx, testutil.TestOrder(100, 4999, "USD"), testutil.TestVisaCard())
	require.NoError(t, err)
	assert.Equal(t, "AB12345678", res.UniqueRef)
	assert.False(t, res.RecordingFailed)
	assert.Equal(t, 1, f.transactions.Count())
}

func TestAuthorize_RecordingFailureStillSuccess(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.gateway.Response = testutil.ApprovedResponse("AB12345678")
	f.transactions.CreateFunc = func(_ context.Context, _ *transaction.Transaction) error {
		return errors.New("storage offline")
	}

	res, err := f.uc.Execute(ctx, testutil.TestOrder(100, 4999, "USD"), testutil.TestVisaCard())
	require.NoError(t, err)
	assert.Equal(t, "AB12345678", res.UniqueRef)
	assert.True(t, res.RecordingFailed)
	// The payment is not reversed: the order stays paid.
	assert.Equal(t, "AB12345678", f.orders.PaidOrders[100])
}

func TestAuthorize_MalformedUniqueRefSurfacesRecordingFailure(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.gateway.Response = testutil.ApprovedResponse("SHORT")

	res, err := f.uc.Execute(ctx, testutil.TestOrder(100, 4999, "USD"), testutil.TestVisaCard())
	require.NoError(t, err)
	assert.True(t, res.RecordingFailed)
	assert.Equal(t, 0, f.transactions.Count())
}
