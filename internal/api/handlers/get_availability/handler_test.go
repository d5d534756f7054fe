package get_availability

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fitcrm/FC-ReservationService/internal/domain"
	getAvailability "github.com/fitcrm/FC-ReservationService/internal/usecase/get_availability"
	"github.com/fitcrm/FC-ReservationService/pkg/types"
)

type fakeUseCase struct {
	resp *getAvailability.Response
	err  error
}

func (f *fakeUseCase) Execute(_ context.Context, _ *getAvailability.Request) (*getAvailability.Response, error) {
	return f.resp, f.err
}

func mustDate(s string) time.Time {
	d, err := time.Parse(domain.DateFormat, s)
	if err != nil {
		panic(err)
	}
	return d
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func serveAvailability(uc GetAvailabilityUseCase, url string) *httptest.ResponseRecorder {
	h := NewHandler(uc, nopLogger{})
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/trainers/{trainerId}/availability", h.Handle).Methods(http.MethodGet)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, url, nil))
	return rec
}

func TestHandle_ReturnsSlots(t *testing.T) {
	uc := &fakeUseCase{resp: &getAvailability.Response{
		TrainerID: 7,
		Date:      mustDate("2026-09-14"),
		Slots: []getAvailability.Slot{
			{StartTime: types.TimeString("10:00"), EndTime: types.TimeString("11:00"), DurationMinutes: 60},
		},
	}}

	rec := serveAvailability(uc, "/api/v1/trainers/7/availability?date=2026-09-14")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp AvailabilityResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(7), resp.TrainerID)
	require.Len(t, resp.Slots, 1)
	assert.Equal(t, "10:00", resp.Slots[0].StartTime)
}

func TestHandle_InternalFailureDegradesToEmptyDay(t *testing.T) {
	// Отказ расчета не должен превращаться в ошибку для клиента
	uc := &fakeUseCase{err: fmt.Errorf("%w: failed to get reservations", getAvailability.ErrInternal)}

	rec := serveAvailability(uc, "/api/v1/trainers/7/availability?date=2026-09-14")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp AvailabilityResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(7), resp.TrainerID)
	assert.Equal(t, "2026-09-14", resp.Date)
	assert.Empty(t, resp.Slots)
}

func TestHandle_BadInput(t *testing.T) {
	uc := &fakeUseCase{err: getAvailability.ErrInvalidInput}

	rec := serveAvailability(uc, "/api/v1/trainers/7/availability?date=2026-09-14")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Отсутствие даты отсеивается до вызова use case
	rec = serveAvailability(&fakeUseCase{}, "/api/v1/trainers/7/availability")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serveAvailability(&fakeUseCase{}, "/api/v1/trainers/abc/availability?date=2026-09-14")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
