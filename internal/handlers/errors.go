package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/bot-scheduler/internal/httperr"
	"github.com/BruksfildServices01/bot-scheduler/internal/lock"
)

var kindMessages = map[httperr.Kind]string{
	httperr.KindValidation:        "Invalid request.",
	httperr.KindNotFound:          "Resource not found.",
	httperr.KindSlotUnavailable:   "The requested time is no longer available.",
	httperr.KindConfig:            "The schedule configuration is invalid.",
	httperr.KindInvalidTransition: "Status change not allowed.",
	httperr.KindBusy:              "Too many bookings in progress, try again.",
}

// writeError renders a use case error. Unknown errors are logged and
// reported as a generic 500.
func writeError(c *gin.Context, log *zap.Logger, err error) {
	if be, ok := httperr.As(err); ok {
		msg := kindMessages[be.Kind]
		if be.Detail != "" {
			msg = be.Detail
		}
		httperr.Write(c, httperr.StatusFor(be.Kind), be.Code, msg)
		return
	}

	switch {
	case errors.Is(err, lock.ErrLockTimeout):
		httperr.Write(c, http.StatusServiceUnavailable, "booking_busy", "Too many bookings in progress, try again.")
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		httperr.Write(c, http.StatusServiceUnavailable, "request_cancelled", "The request did not complete in time.")
	default:
		_ = c.Error(err)
		log.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
		httperr.Internal(c, "internal_error", "Unexpected error.")
	}
}
