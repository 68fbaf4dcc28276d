package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campuskit/attendance-api/internal/service"
	appErrors "github.com/campuskit/attendance-api/pkg/errors"
	"github.com/campuskit/attendance-api/pkg/response"
)

// MDCHandler manages cross-department elective courses.
type MDCHandler struct {
	service *service.MDCService
}

// NewMDCHandler constructs the handler.
func NewMDCHandler(svc *service.MDCService) *MDCHandler {
	return &MDCHandler{service: svc}
}

// Create godoc
// @Summary Register an elective course
// @Tags MDC
// @Accept json
// @Produce json
// @Param payload body service.CreateCourseRequest true "Course payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /mdc/courses [post]
func (h *MDCHandler) Create(c *gin.Context) {
	var req service.CreateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	course, err := h.service.CreateCourse(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, course)
}

// Eligible godoc
// @Summary Elective catalog for a home department
// @Tags MDC
// @Produce json
// @Param homeDepartmentId query string true "Home department ID"
// @Success 200 {object} response.Envelope
// @Router /mdc/courses/eligible [get]
func (h *MDCHandler) Eligible(c *gin.Context) {
	courses, err := h.service.EligibleCourses(c.Request.Context(), c.Query("homeDepartmentId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, courses, nil)
}

type enrollRequest struct {
	StudentID string `json:"student_id" binding:"required"`
}

// Enroll godoc
// @Summary Add a student to an elective roster
// @Tags MDC
// @Accept json
// @Produce json
// @Param id path string true "Course ID"
// @Param payload body enrollRequest true "Enrollment payload"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 410 {object} response.Envelope
// @Router /mdc/courses/{id}/students [post]
func (h *MDCHandler) Enroll(c *gin.Context) {
	var req enrollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	course, err := h.service.Enroll(c.Request.Context(), c.Param("id"), req.StudentID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, course, nil)
}

// Withdraw godoc
// @Summary Remove a student from an elective roster
// @Tags MDC
// @Produce json
// @Param id path string true "Course ID"
// @Param studentId path string true "Student ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /mdc/courses/{id}/students/{studentId} [delete]
func (h *MDCHandler) Withdraw(c *gin.Context) {
	course, err := h.service.Withdraw(c.Request.Context(), c.Param("id"), c.Param("studentId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, course, nil)
}

// EligibleFaculty godoc
// @Summary Faculty eligible to teach an elective
// @Tags MDC
// @Produce json
// @Param id path string true "Course ID"
// @Success 200 {object} response.Envelope
// @Router /mdc/courses/{id}/eligible-faculty [get]
func (h *MDCHandler) EligibleFaculty(c *gin.Context) {
	rows, err := h.service.EligibleFaculty(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, rows, nil)
}

type assignFacultyRequest struct {
	FacultyID string `json:"faculty_id" binding:"required"`
}

// AssignFaculty godoc
// @Summary Assign the instructor for an elective
// @Tags MDC
// @Accept json
// @Produce json
// @Param id path string true "Course ID"
// @Param payload body assignFacultyRequest true "Assignment payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /mdc/courses/{id}/faculty [put]
func (h *MDCHandler) AssignFaculty(c *gin.Context) {
	var req assignFacultyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	course, err := h.service.AssignFaculty(c.Request.Context(), c.Param("id"), req.FacultyID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, course, nil)
}
