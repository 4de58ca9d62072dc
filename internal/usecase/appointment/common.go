package appointment

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/bot-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/bot-scheduler/internal/httperr"
	"github.com/BruksfildServices01/bot-scheduler/internal/models"
	"github.com/BruksfildServices01/bot-scheduler/internal/timezone"
)

// DefaultBookingMinutes applies when a booking names no service.
const DefaultBookingMinutes = 60

type Clock func() time.Time

// authorizeBot loads the bot and checks it belongs to tenantID. A foreign
// bot is reported as missing.
func authorizeBot(
	ctx context.Context,
	store domain.ScheduleConfigStore,
	tenantID uint,
	botID uint,
) (*models.Bot, error) {

	if botID == 0 {
		return nil, httperr.Validation("missing_bot_id")
	}

	bot, err := store.GetBot(ctx, botID)
	if err != nil {
		return nil, err
	}
	if bot.TenantID != tenantID {
		return nil, httperr.NotFound("bot_not_found")
	}
	return bot, nil
}

// dayBounds is [midnight, next midnight) of date's calendar day in loc.
func dayBounds(date time.Time, loc *time.Location) (time.Time, time.Time) {
	start := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, loc)
	return start, start.AddDate(0, 0, 1)
}

func orNow(now Clock) Clock {
	if now == nil {
		return timezone.Now
	}
	return now
}
