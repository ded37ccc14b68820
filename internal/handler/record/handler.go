package record

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/glucocare/glucocare-api/internal/middleware"
	"github.com/glucocare/glucocare-api/internal/model"
	"github.com/glucocare/glucocare-api/internal/service/record"
	"github.com/glucocare/glucocare-api/internal/service/user"
	apperrors "github.com/glucocare/glucocare-api/pkg/errors"
	"github.com/glucocare/glucocare-api/pkg/httputil"
)

type Handler struct {
	service *record.Service
	userSvc *user.Service
}

func NewHandler(service *record.Service, userSvc *user.Service) *Handler {
	return &Handler{service: service, userSvc: userSvc}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	records := r.Group("/patients/:id/records")
	{
		records.POST("", h.AddRecord)
		records.GET("", h.ListRecords)
		records.GET("/chart", h.ChartSeries)
		records.GET("/spike", h.SpikeAnalysis)
	}
}

// authorize resolves the patient id and checks the caller may touch
// that patient's records: the patient themselves or their doctor.
func (h *Handler) authorize(c *gin.Context) (patientID, callerID uuid.UUID, ok bool) {
	callerID, valid := middleware.UserID(c)
	if !valid {
		httputil.RespondWithError(c, apperrors.Unauthorized(nil))
		return uuid.Nil, uuid.Nil, false
	}

	patientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid patient ID", err))
		return uuid.Nil, uuid.Nil, false
	}

	allowed, err := h.userSvc.CanAccessPatient(c.Request.Context(), callerID, patientID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return uuid.Nil, uuid.Nil, false
	}
	if !allowed {
		httputil.RespondWithError(c, apperrors.Forbidden("no access to this patient", nil))
		return uuid.Nil, uuid.Nil, false
	}

	return patientID, callerID, true
}

func (h *Handler) AddRecord(c *gin.Context) {
	patientID, callerID, ok := h.authorize(c)
	if !ok {
		return
	}

	var req model.CreateRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest(err.Error(), err))
		return
	}

	created, err := h.service.AddRecord(c.Request.Context(), patientID, callerID, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithCreated(c, created)
}

func (h *Handler) ListRecords(c *gin.Context) {
	patientID, _, ok := h.authorize(c)
	if !ok {
		return
	}

	records, err := h.service.ListRecords(c.Request.Context(), patientID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, records)
}

func (h *Handler) ChartSeries(c *gin.Context) {
	patientID, _, ok := h.authorize(c)
	if !ok {
		return
	}

	points, _ := strconv.Atoi(c.DefaultQuery("points", "0"))

	series, err := h.service.ChartSeries(c.Request.Context(), patientID, points)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, series)
}

func (h *Handler) SpikeAnalysis(c *gin.Context) {
	patientID, _, ok := h.authorize(c)
	if !ok {
		return
	}

	spike, err := h.service.SpikeAnalysis(c.Request.Context(), patientID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, spike)
}
