package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campuskit/attendance-api/internal/models"
	"github.com/campuskit/attendance-api/internal/service"
	appErrors "github.com/campuskit/attendance-api/pkg/errors"
	"github.com/campuskit/attendance-api/pkg/response"
)

// AttendanceHandler wires marking sessions and read-backs. The access
// service enforces the instructor-of-record boundary before any write
// reaches the store; admins bypass the assignment check.
type AttendanceHandler struct {
	attendance *service.AttendanceService
	access     *service.AccessService
	reports    *service.ReportService
}

// NewAttendanceHandler constructs the handler.
func NewAttendanceHandler(attendance *service.AttendanceService, access *service.AccessService, reports *service.ReportService) *AttendanceHandler {
	return &AttendanceHandler{attendance: attendance, access: access, reports: reports}
}

// Submit godoc
// @Summary Submit a batch of attendance decisions
// @Tags Attendance
// @Accept json
// @Produce json
// @Param payload body service.SubmitBatchRequest true "Batch payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 422 {object} response.Envelope
// @Router /attendance [post]
func (h *AttendanceHandler) Submit(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req service.SubmitBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	markedBy, err := h.markerIdentity(c, claims, req.SubjectID)
	if err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.attendance.SubmitBatch(c.Request.Context(), req, markedBy)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// ListByDate godoc
// @Summary Stored decisions for a subject and date
// @Tags Attendance
// @Produce json
// @Param subjectId query string true "Subject ID"
// @Param date query string true "Date (YYYY-MM-DD)"
// @Param own query bool false "Restrict to the caller's own marks"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /attendance [get]
func (h *AttendanceHandler) ListByDate(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	subjectID := c.Query("subjectId")
	markedBy := ""
	if c.Query("own") == "true" {
		id, err := h.markerIdentity(c, claims, subjectID)
		if err != nil {
			response.Error(c, err)
			return
		}
		markedBy = id
	}

	records, err := h.attendance.GetByDate(c.Request.Context(), subjectID, c.Query("date"), markedBy)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, records, nil)
}

// Export godoc
// @Summary Download an attendance sheet
// @Tags Attendance
// @Produce text/csv
// @Produce application/pdf
// @Param subjectId query string true "Subject ID"
// @Param date query string true "Date (YYYY-MM-DD)"
// @Param format query string false "csv or pdf" default(csv)
// @Success 200 {file} file
// @Failure 400 {object} response.Envelope
// @Router /attendance/export [get]
func (h *AttendanceHandler) Export(c *gin.Context) {
	format := service.ExportFormat(c.DefaultQuery("format", "csv"))
	result, err := h.reports.AttendanceSheet(c.Request.Context(), c.Query("subjectId"), c.Query("date"), format)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+result.FileName+`"`)
	c.Data(http.StatusOK, result.ContentType, result.Data)
}

// markerIdentity maps the session to the marked_by identity. Faculty must
// be an instructor of record; admins act under their own user id.
func (h *AttendanceHandler) markerIdentity(c *gin.Context, claims *models.JWTClaims, subjectID string) (string, error) {
	if claims.Role == models.RoleAdmin {
		return claims.UserID, nil
	}
	return h.access.InstructorOf(c.Request.Context(), claims.UserID, subjectID)
}
