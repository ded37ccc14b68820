package appointment

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/glucocare/glucocare-api/internal/middleware"
	"github.com/glucocare/glucocare-api/internal/model"
	"github.com/glucocare/glucocare-api/internal/service/appointment"
	apperrors "github.com/glucocare/glucocare-api/pkg/errors"
	"github.com/glucocare/glucocare-api/pkg/httputil"
)

type Handler struct {
	service *appointment.Service
	auth    *middleware.AuthMiddleware
}

func NewHandler(service *appointment.Service, auth *middleware.AuthMiddleware) *Handler {
	return &Handler{service: service, auth: auth}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	appointments := r.Group("/appointments")
	{
		appointments.POST("", h.Create)
		appointments.GET("", h.List)
		appointments.PATCH("/:id/status", h.auth.RequireRole(model.RoleDoctor), h.UpdateStatus)
	}
}

// Create routes on the caller's role: patients request, doctors
// schedule directly into CONFIRMED.
func (h *Handler) Create(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		httputil.RespondWithError(c, apperrors.Unauthorized(nil))
		return
	}

	var req model.CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest(err.Error(), err))
		return
	}

	var created *model.Appointment
	var err error
	switch middleware.UserRole(c) {
	case model.RoleDoctor:
		if req.PatientID == uuid.Nil {
			httputil.RespondWithError(c, apperrors.BadRequest("patient_id is required", nil))
			return
		}
		created, err = h.service.Schedule(c.Request.Context(), userID, &req)
	default:
		created, err = h.service.Request(c.Request.Context(), userID, &req)
	}
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithCreated(c, created)
}

func (h *Handler) List(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		httputil.RespondWithError(c, apperrors.Unauthorized(nil))
		return
	}

	var appointments []*model.Appointment
	var err error
	if middleware.UserRole(c) == model.RoleDoctor {
		appointments, err = h.service.ListForDoctor(c.Request.Context(), userID)
	} else {
		appointments, err = h.service.ListForPatient(c.Request.Context(), userID)
	}
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, appointments)
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	doctorID, ok := middleware.UserID(c)
	if !ok {
		httputil.RespondWithError(c, apperrors.Unauthorized(nil))
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid appointment ID", err))
		return
	}

	var req model.UpdateAppointmentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest(err.Error(), err))
		return
	}

	updated, err := h.service.UpdateStatus(c.Request.Context(), doctorID, id, req.Status)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, updated)
}
