package handlers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	domain "github.com/BruksfildServices01/bot-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/bot-scheduler/internal/httperr"
	"github.com/BruksfildServices01/bot-scheduler/internal/infra/repository"
)

// ======================================================
// HANDLER
// ======================================================

type AuditLogsHandler struct {
	bots domain.ScheduleConfigStore
	logs *repository.AuditLogGormRepository
	log  *zap.Logger
}

func NewAuditLogsHandler(
	bots domain.ScheduleConfigStore,
	logs *repository.AuditLogGormRepository,
	log *zap.Logger,
) *AuditLogsHandler {
	return &AuditLogsHandler{bots: bots, logs: logs, log: log}
}

func (h *AuditLogsHandler) List(c *gin.Context) {
	botID, err := uintParam(c, "botId", "missing_bot_id")
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	// --------------------------------------------------
	// Ownership
	// --------------------------------------------------
	bot, err := h.bots.GetBot(c.Request.Context(), botID)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	if bot.TenantID != tenantFrom(c) {
		writeError(c, h.log, httperr.NotFound("bot_not_found"))
		return
	}

	// --------------------------------------------------
	// Optional filters
	// --------------------------------------------------
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

	page, limit := pageParams(c)

	logs, total, err := h.logs.List(c.Request.Context(), repository.AuditLogFilter{
		BotID:  botID,
		Action: c.Query("action"),
		Entity: c.Query("entity"),
		From:   from,
		To:     to,
		Limit:  limit,
		Offset: (page - 1) * limit,
	})
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	c.JSON(200, gin.H{
		"page":  page,
		"limit": limit,
		"total": total,
		"logs":  logs,
	})
}
