package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campuskit/attendance-api/internal/service"
	appErrors "github.com/campuskit/attendance-api/pkg/errors"
	"github.com/campuskit/attendance-api/pkg/response"
)

// TransitionHandler exposes semester reassignment and its ledger.
type TransitionHandler struct {
	service *service.TransitionService
}

// NewTransitionHandler constructs the handler.
func NewTransitionHandler(svc *service.TransitionService) *TransitionHandler {
	return &TransitionHandler{service: svc}
}

type transitionRequest struct {
	NewSemesterID string `json:"new_semester_id" binding:"required"`
	Reason        string `json:"reason"`
}

// Transition godoc
// @Summary Move a student to another semester
// @Tags Transitions
// @Accept json
// @Produce json
// @Param id path string true "Student ID"
// @Param payload body transitionRequest true "Transition payload"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Failure 410 {object} response.Envelope
// @Failure 422 {object} response.Envelope
// @Router /students/{id}/transition [post]
func (h *TransitionHandler) Transition(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req transitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	result, err := h.service.Transition(c.Request.Context(), c.Param("id"), req.NewSemesterID, claims.UserID, req.Reason)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// History godoc
// @Summary Transition ledger for a student, newest first
// @Tags Transitions
// @Produce json
// @Param id path string true "Student ID"
// @Success 200 {object} response.Envelope
// @Router /students/{id}/transitions [get]
func (h *TransitionHandler) History(c *gin.Context) {
	history, err := h.service.History(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, history, nil)
}
