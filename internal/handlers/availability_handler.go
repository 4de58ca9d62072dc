package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	domain "github.com/BruksfildServices01/bot-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/bot-scheduler/internal/httperr"
	"github.com/BruksfildServices01/bot-scheduler/internal/httpresp"
	ucAppointment "github.com/BruksfildServices01/bot-scheduler/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AvailabilityHandler struct {
	getAvailability *ucAppointment.GetAvailability
	log             *zap.Logger
}

func NewAvailabilityHandler(
	getAvailability *ucAppointment.GetAvailability,
	log *zap.Logger,
) *AvailabilityHandler {
	return &AvailabilityHandler{getAvailability: getAvailability, log: log}
}

// ======================================================
// GET /bots/:botId/availability?date=&service_id=
// ======================================================

func (h *AvailabilityHandler) Get(c *gin.Context) {
	botID, err := uintParam(c, "botId", "missing_bot_id")
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	date, err := calendarDate(c.Query("date"), "missing_date", "invalid_date")
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	serviceID, err := optionalUintQuery(c, "service_id", "invalid_service_id")
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	out, err := h.getAvailability.Execute(c.Request.Context(), domain.AvailabilityInput{
		TenantID:  tenantFrom(c),
		BotID:     botID,
		ServiceID: serviceID,
		Date:      date,
	})
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	httpresp.OK(c, out)
}

// ======================================================
// GET /bots/:botId/availability/range?from=&days=&service_id=
// ======================================================

func (h *AvailabilityHandler) Range(c *gin.Context) {
	botID, err := uintParam(c, "botId", "missing_bot_id")
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	from, err := calendarDate(c.Query("from"), "missing_date", "invalid_date")
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	days, err := strconv.Atoi(c.DefaultQuery("days", "7"))
	if err != nil {
		writeError(c, h.log, httperr.Validation("invalid_range"))
		return
	}

	serviceID, err := optionalUintQuery(c, "service_id", "invalid_service_id")
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	out, err := h.getAvailability.ExecuteRange(c.Request.Context(), ucAppointment.AvailabilityRangeInput{
		TenantID:  tenantFrom(c),
		BotID:     botID,
		ServiceID: serviceID,
		From:      from,
		Days:      days,
	})
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	httpresp.List(c, out)
}
