package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/bot-scheduler/internal/httperr"
	"github.com/BruksfildServices01/bot-scheduler/internal/lock"
)

func TestWriteError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		err    error
		status int
		code   string
	}{
		{httperr.Validation("missing_date"), http.StatusBadRequest, "missing_date"},
		{httperr.NotFound("bot_not_found"), http.StatusNotFound, "bot_not_found"},
		{httperr.ErrSlotUnavailable, http.StatusConflict, "slot_unavailable"},
		{fmt.Errorf("create: %w", httperr.ErrSlotUnavailable), http.StatusConflict, "slot_unavailable"},
		{httperr.InvalidTransition("completed", "pending"), http.StatusConflict, "invalid_transition"},
		{httperr.Config("invalid_shift_cycle", "work=0 off=0"), http.StatusUnprocessableEntity, "invalid_shift_cycle"},
		{lock.ErrLockTimeout, http.StatusServiceUnavailable, "booking_busy"},
		{httperr.ErrBookingBusy, http.StatusServiceUnavailable, "booking_busy"},
		{errors.New("connection refused"), http.StatusInternalServerError, "internal_error"},
	}

	for _, tt := range tests {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		writeError(c, zap.NewNop(), tt.err)

		assert.Equal(t, tt.status, w.Code, tt.err.Error())
		assert.Contains(t, w.Body.String(), `"error_code":"`+tt.code+`"`)
	}
}
