package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/campuskit/attendance-api/internal/service"
	appErrors "github.com/campuskit/attendance-api/pkg/errors"
	"github.com/campuskit/attendance-api/pkg/response"
)

// ScheduleHandler exposes the period timetable and markability checks.
// All endpoints evaluate against the server's local clock unless an
// explicit date is supplied.
type ScheduleHandler struct {
	resolver *service.PeriodResolver
	now      func() time.Time
}

// NewScheduleHandler constructs the handler.
func NewScheduleHandler(resolver *service.PeriodResolver) *ScheduleHandler {
	return &ScheduleHandler{resolver: resolver, now: time.Now}
}

// Windows godoc
// @Summary Period timetable for a date
// @Tags Schedule
// @Produce json
// @Param date query string false "Date (YYYY-MM-DD), defaults to today"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /schedule/windows [get]
func (h *ScheduleHandler) Windows(c *gin.Context) {
	day, err := h.dayFromQuery(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, h.resolver.Windows(day), nil)
}

// Markable godoc
// @Summary Check whether a period can be marked right now
// @Tags Schedule
// @Produce json
// @Param period query int true "Period number (1-5)"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /schedule/markable [get]
func (h *ScheduleHandler) Markable(c *gin.Context) {
	period, err := strconv.Atoi(c.Query("period"))
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "period must be a number"))
		return
	}
	now := h.now()
	verdict := h.resolver.IsMarkable(now.Weekday(), period, now)
	response.JSON(c, http.StatusOK, verdict, nil)
}

// Current godoc
// @Summary The period in progress right now
// @Tags Schedule
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /schedule/current [get]
func (h *ScheduleHandler) Current(c *gin.Context) {
	now := h.now()
	period := h.resolver.CurrentPeriod(now.Weekday(), now)
	response.JSON(c, http.StatusOK, gin.H{"period": period}, nil)
}

// Today godoc
// @Summary Today's timetable with per-period markability
// @Tags Schedule
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /schedule/today [get]
func (h *ScheduleHandler) Today(c *gin.Context) {
	now := h.now()
	day := now.Weekday()

	type slot struct {
		service.PeriodSlot
		Markable service.MarkableVerdict `json:"markable"`
	}
	windows := h.resolver.Windows(day)
	slots := make([]slot, 0, len(windows))
	for _, window := range windows {
		slots = append(slots, slot{
			PeriodSlot: window,
			Markable:   h.resolver.IsMarkable(day, window.Period, now),
		})
	}

	response.JSON(c, http.StatusOK, gin.H{
		"date":           now.Format("2006-01-02"),
		"current_period": h.resolver.CurrentPeriod(day, now),
		"periods":        slots,
	}, nil)
}

func (h *ScheduleHandler) dayFromQuery(c *gin.Context) (time.Weekday, error) {
	raw := c.Query("date")
	if raw == "" {
		return h.now().Weekday(), nil
	}
	date, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return 0, appErrors.Clone(appErrors.ErrValidation, "date must be YYYY-MM-DD")
	}
	return date.Weekday(), nil
}
