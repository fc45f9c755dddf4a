package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"dzdelivery/internal/core/domain/model/courier"
	"dzdelivery/internal/core/domain/model/order"
	"dzdelivery/internal/core/ports"
	"dzdelivery/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func Test_StatusForError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", errs.NewObjectNotFoundError("order", "DZ-20250615-001"), http.StatusNotFound},
		{"forbidden", order.ErrForbidden, http.StatusForbidden},
		{"invalid transition", order.ErrInvalidTransition, http.StatusConflict},
		{"non cancellable", order.ErrNonCancellable, http.StatusConflict},
		{"already cancelled", order.ErrAlreadyCancelled, http.StatusConflict},
		{"already assigned", order.ErrAlreadyAssigned, http.StatusConflict},
		{"courier not available", courier.ErrCourierNotAvailable, http.StatusConflict},
		{"precondition failed", ports.ErrPreconditionFailed, http.StatusConflict},
		{"bad confirmation code", order.ErrInvalidConfirmationCode, http.StatusBadRequest},
		{"invalid value", errs.NewValueIsInvalidError("subtotal"), http.StatusBadRequest},
		{"required value", errs.NewValueIsRequiredError("address"), http.StatusBadRequest},
		{"out of range", errs.NewValueIsOutOfRangeError("days", 3, 7, 30), http.StatusBadRequest},
		{"unknown", assert.AnError, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, statusForError(tt.err))
		})
	}
}

func Test_GetDemandTrends_RejectsMalformedDays(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/pricing/demand/trends?days=soon", nil)
	rec := httptest.NewRecorder()
	ctx := e.NewContext(req, rec)

	server := &Server{}
	err := server.GetDemandTrends(ctx)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func Test_GetDemandTrends_RejectsUnsupportedWindow(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/pricing/demand/trends?days=13", nil)
	rec := httptest.NewRecorder()
	ctx := e.NewContext(req, rec)

	server := &Server{}
	err := server.GetDemandTrends(ctx)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func Test_PredictDemand_RejectsMalformedTimestamp(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/pricing/demand/predict?at=tomorrow", nil)
	rec := httptest.NewRecorder()
	ctx := e.NewContext(req, rec)

	server := &Server{}
	err := server.PredictDemand(ctx)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func Test_GetOrder_RejectsMalformedID(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders/not-a-uuid", nil)
	rec := httptest.NewRecorder()
	ctx := e.NewContext(req, rec)
	ctx.SetParamNames("id")
	ctx.SetParamValues("not-a-uuid")

	server := &Server{}
	err := server.GetOrder(ctx)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
