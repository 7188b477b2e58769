package create_booking

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	createBooking "github.com/remedyhq/RMT-SchedulingService/internal/usecase/create_booking"
	"github.com/remedyhq/RMT-SchedulingService/pkg/metrics"
)

// Регистрация коллекторов глобальная, поэтому один набор на весь пакет
var testMetrics = metrics.New("test")

type fakeUseCase struct {
	resp *createBooking.Response
	err  error
}

func (f *fakeUseCase) Execute(context.Context, *createBooking.Request) (*createBooking.Response, error) {
	return f.resp, f.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

const validBody = `{"serviceOptionId": 10, "bookingDate": "2026-06-08", "startTime": "10:00", "paymentMethod": "cash"}`

func postBooking(h *Handler) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(validBody))
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandle_SlotConflictCountsMetric(t *testing.T) {
	h := NewHandler(&fakeUseCase{err: createBooking.ErrSlotConflict}, nopLogger{}, testMetrics)

	before := testutil.ToFloat64(testMetrics.SlotConflictsTotal)
	rec := postBooking(h)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, before+1, testutil.ToFloat64(testMetrics.SlotConflictsTotal))
}

func TestHandle_CreatedCountsMetric(t *testing.T) {
	h := NewHandler(&fakeUseCase{resp: &createBooking.Response{
		ID:        1,
		Reference: "ref-1",
		Status:    "pending_confirmation",
	}}, nopLogger{}, testMetrics)

	counter, err := testMetrics.BookingsTotal.GetMetricWithLabelValues("pending_confirmation")
	require.NoError(t, err)

	before := testutil.ToFloat64(counter)
	rec := postBooking(h)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, before+1, testutil.ToFloat64(counter))
}

func TestHandle_NilMetricsIsSafe(t *testing.T) {
	h := NewHandler(&fakeUseCase{err: createBooking.ErrSlotConflict}, nopLogger{}, nil)

	rec := postBooking(h)
	assert.Equal(t, http.StatusConflict, rec.Code)
}
