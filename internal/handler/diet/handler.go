package diet

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/glucocare/glucocare-api/internal/middleware"
	"github.com/glucocare/glucocare-api/internal/model"
	"github.com/glucocare/glucocare-api/internal/service/diet"
	"github.com/glucocare/glucocare-api/internal/service/user"
	apperrors "github.com/glucocare/glucocare-api/pkg/errors"
	"github.com/glucocare/glucocare-api/pkg/httputil"
)

type Handler struct {
	service *diet.Service
	userSvc *user.Service
	auth    *middleware.AuthMiddleware
}

func NewHandler(service *diet.Service, userSvc *user.Service, auth *middleware.AuthMiddleware) *Handler {
	return &Handler{service: service, userSvc: userSvc, auth: auth}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	plans := r.Group("/patients/:id/diet-plans")
	{
		plans.POST("", h.auth.RequireRole(model.RoleDoctor), h.CreatePlan)
		plans.GET("", h.ListPlans)
	}
}

func (h *Handler) CreatePlan(c *gin.Context) {
	doctorID, ok := middleware.UserID(c)
	if !ok {
		httputil.RespondWithError(c, apperrors.Unauthorized(nil))
		return
	}

	patientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid patient ID", err))
		return
	}

	var req model.CreateDietPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest(err.Error(), err))
		return
	}

	plan, err := h.service.CreatePlan(c.Request.Context(), doctorID, patientID, req.Advice)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithCreated(c, plan)
}

func (h *Handler) ListPlans(c *gin.Context) {
	callerID, ok := middleware.UserID(c)
	if !ok {
		httputil.RespondWithError(c, apperrors.Unauthorized(nil))
		return
	}

	patientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid patient ID", err))
		return
	}

	allowed, err := h.userSvc.CanAccessPatient(c.Request.Context(), callerID, patientID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	if !allowed {
		httputil.RespondWithError(c, apperrors.Forbidden("no access to this patient", nil))
		return
	}

	plans, err := h.service.ListPlans(c.Request.Context(), patientID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, plans)
}
