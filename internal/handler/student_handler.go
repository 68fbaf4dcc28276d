package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campuskit/attendance-api/internal/service"
	appErrors "github.com/campuskit/attendance-api/pkg/errors"
	"github.com/campuskit/attendance-api/pkg/response"
)

// StudentHandler serves rosters and per-student attendance views.
type StudentHandler struct {
	roster     *service.RosterService
	aggregator *service.AggregatorService
}

// NewStudentHandler constructs the handler.
func NewStudentHandler(roster *service.RosterService, aggregator *service.AggregatorService) *StudentHandler {
	return &StudentHandler{roster: roster, aggregator: aggregator}
}

// Create godoc
// @Summary Register a student
// @Tags Students
// @Accept json
// @Produce json
// @Param payload body service.CreateStudentRequest true "Student payload"
// @Success 201 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /students [post]
func (h *StudentHandler) Create(c *gin.Context) {
	var req service.CreateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	student, err := h.roster.CreateStudent(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, student)
}

// Roster godoc
// @Summary List the active students of a cohort
// @Tags Students
// @Produce json
// @Param semesterId query string true "Semester ID"
// @Param departmentId query string true "Department ID"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /students/roster [get]
func (h *StudentHandler) Roster(c *gin.Context) {
	entries, err := h.roster.Roster(c.Request.Context(), c.Query("semesterId"), c.Query("departmentId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, entries, nil)
}

// SubjectStats godoc
// @Summary Attendance summary for one subject
// @Tags Students
// @Produce json
// @Param id path string true "Student ID"
// @Param subjectId path string true "Subject ID"
// @Success 200 {object} response.Envelope
// @Router /students/{id}/subjects/{subjectId}/attendance [get]
func (h *StudentHandler) SubjectStats(c *gin.Context) {
	stats, err := h.aggregator.StatsForStudentSubject(c.Request.Context(), c.Param("id"), c.Param("subjectId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, stats, nil)
}

// Calendar godoc
// @Summary Present/absent date buckets for a semester
// @Tags Students
// @Produce json
// @Param id path string true "Student ID"
// @Param semesterId query string true "Semester ID"
// @Success 200 {object} response.Envelope
// @Router /students/{id}/attendance/calendar [get]
func (h *StudentHandler) Calendar(c *gin.Context) {
	semesterID := c.Query("semesterId")
	if semesterID == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "semesterId query parameter required"))
		return
	}
	buckets, err := h.aggregator.CalendarBuckets(c.Request.Context(), c.Param("id"), semesterID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, buckets, nil)
}

// GroupedStats godoc
// @Summary Per-subject attendance breakdown for a semester
// @Tags Students
// @Produce json
// @Param id path string true "Student ID"
// @Param semesterId query string true "Semester ID"
// @Success 200 {object} response.Envelope
// @Router /students/{id}/attendance/subjects [get]
func (h *StudentHandler) GroupedStats(c *gin.Context) {
	semesterID := c.Query("semesterId")
	if semesterID == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "semesterId query parameter required"))
		return
	}
	rows, err := h.aggregator.GroupedStatsBySubject(c.Request.Context(), c.Param("id"), semesterID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, rows, nil)
}
