package handlers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	domain "github.com/BruksfildServices01/bot-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/bot-scheduler/internal/dto"
	"github.com/BruksfildServices01/bot-scheduler/internal/httperr"
	"github.com/BruksfildServices01/bot-scheduler/internal/httpresp"
	ucAppointment "github.com/BruksfildServices01/bot-scheduler/internal/usecase/appointment"
	"github.com/BruksfildServices01/bot-scheduler/internal/validators"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	create       *ucAppointment.CreateAppointment
	updateStatus *ucAppointment.UpdateAppointmentStatus
	remove       *ucAppointment.DeleteAppointment
	list         *ucAppointment.ListAppointments
	conflicts    *ucAppointment.CheckConflict
	log          *zap.Logger
}

func NewAppointmentHandler(
	create *ucAppointment.CreateAppointment,
	updateStatus *ucAppointment.UpdateAppointmentStatus,
	remove *ucAppointment.DeleteAppointment,
	list *ucAppointment.ListAppointments,
	conflicts *ucAppointment.CheckConflict,
	log *zap.Logger,
) *AppointmentHandler {
	return &AppointmentHandler{
		create:       create,
		updateStatus: updateStatus,
		remove:       remove,
		list:         list,
		conflicts:    conflicts,
		log:          log,
	}
}

// ======================================================
// REQUESTS
// ======================================================

const (
	SourceDashboard = "dashboard"
	SourceAssistant = "assistant"
)

type CreateAppointmentRequest struct {
	LeadID          *uint  `json:"lead_id"`
	ServiceID       *uint  `json:"service_id"`
	StartTime       string `json:"start_time" binding:"required"`
	ClientName      string `json:"client_name" binding:"required,max=100"`
	ClientPhone     string `json:"client_phone"`
	Notes           string `json:"notes" binding:"max=255"`
	ReminderMinutes *int   `json:"reminder_minutes"`

	// dashboard bookings start confirmed, assistant bookings pending
	Source string `json:"source" binding:"required,oneof=dashboard assistant"`

	RequireWorkingHours bool `json:"require_working_hours"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func initialStatusFor(source string) domain.Status {
	if source == SourceDashboard {
		return domain.StatusConfirmed
	}
	return domain.StatusPending
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	botID, err := uintParam(c, "botId", "missing_bot_id")
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	start, err := instant(req.StartTime, "invalid_start_time")
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	phone := req.ClientPhone
	if phone != "" {
		normalized, ok := validators.NormalizePhone(phone)
		if !ok {
			writeError(c, h.log, httperr.Validation("invalid_client_phone"))
			return
		}
		phone = normalized
	}

	ap, err := h.create.Execute(c.Request.Context(), ucAppointment.CreateAppointmentInput{
		TenantID:            tenantFrom(c),
		BotID:               botID,
		LeadID:              req.LeadID,
		ServiceID:           req.ServiceID,
		StartTime:           start,
		ClientName:          req.ClientName,
		ClientPhone:         phone,
		Notes:               req.Notes,
		ReminderMinutes:     req.ReminderMinutes,
		InitialStatus:       initialStatusFor(req.Source),
		RequireWorkingHours: req.RequireWorkingHours,
	})
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	httpresp.Created(c, ap)
}

// ======================================================
// STATUS
// ======================================================

func (h *AppointmentHandler) UpdateStatus(c *gin.Context) {
	botID, err := uintParam(c, "botId", "missing_bot_id")
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	id, err := uintParam(c, "id", "invalid_appointment_id")
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	ap, err := h.updateStatus.Execute(c.Request.Context(), tenantFrom(c), botID, id, req.Status)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	httpresp.OK(c, ap)
}

// ======================================================
// LIST
// ======================================================

func (h *AppointmentHandler) List(c *gin.Context) {
	botID, err := uintParam(c, "botId", "missing_bot_id")
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	from, err := optionalBound(c.Query("from"), "invalid_from")
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	to, err := optionalBound(c.Query("to"), "invalid_to")
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	out, err := h.list.Execute(c.Request.Context(), ucAppointment.ListAppointmentsInput{
		TenantID: tenantFrom(c),
		BotID:    botID,
		From:     from,
		To:       to,
		Status:   c.Query("status"),
	})
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	httpresp.List[dto.AppointmentListDTO](c, out)
}

// ======================================================
// DELETE
// ======================================================

func (h *AppointmentHandler) Delete(c *gin.Context) {
	botID, err := uintParam(c, "botId", "missing_bot_id")
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	id, err := uintParam(c, "id", "invalid_appointment_id")
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	if err := h.remove.Execute(c.Request.Context(), tenantFrom(c), botID, id); err != nil {
		writeError(c, h.log, err)
		return
	}

	httpresp.NoContent(c)
}

// ======================================================
// CONFLICT PREVIEW
// ======================================================

func (h *AppointmentHandler) Conflicts(c *gin.Context) {
	botID, err := uintParam(c, "botId", "missing_bot_id")
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	start, err := instant(c.Query("start"), "invalid_start_time")
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	end, err := instant(c.Query("end"), "invalid_end_time")
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	out, err := h.conflicts.Execute(c.Request.Context(), tenantFrom(c), botID, start, end)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	httpresp.OK(c, out)
}
