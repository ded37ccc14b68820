package demo

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/glucocare/glucocare-api/internal/model"
	"github.com/glucocare/glucocare-api/pkg/httputil"
)

// Handler serves the standalone marketing/demo dashboard feed: static
// in-memory sample data shaped like the real payloads. Nothing here
// touches storage.
type Handler struct {
	overview     overview
	glucoseTrend []model.ChartPoint
	appointments []sampleAppointment
}

type overview struct {
	Patients          int     `json:"patients"`
	AvgGlucose        float64 `json:"avg_glucose"`
	PendingRequests   int     `json:"pending_requests"`
	MessagesThisWeek  int     `json:"messages_this_week"`
	HighestGlucose    float64 `json:"highest_glucose"`
	HighestGlucoseDay string  `json:"highest_glucose_day"`
}

type sampleAppointment struct {
	PatientName string                  `json:"patient_name"`
	Type        model.AppointmentType   `json:"type"`
	Status      model.AppointmentStatus `json:"status"`
	ScheduledAt time.Time               `json:"scheduled_at"`
}

func NewHandler() *Handler {
	base := time.Date(2025, time.March, 1, 9, 0, 0, 0, time.UTC)

	glucose := []float64{102, 118, 96, 141, 110, 189, 124, 99, 132, 108, 95, 121, 145, 104}
	weights := []float64{82.1, 82.0, 81.8, 81.9, 81.5, 81.6, 81.2, 81.3, 81.0, 80.8, 80.9, 80.5, 80.6, 80.4}

	trend := make([]model.ChartPoint, 0, len(glucose))
	for i := range glucose {
		trend = append(trend, model.ChartPoint{
			Date:    base.AddDate(0, 0, i),
			Glucose: glucose[i],
			Weight:  weights[i],
		})
	}

	return &Handler{
		overview: overview{
			Patients:          24,
			AvgGlucose:        120.3,
			PendingRequests:   3,
			MessagesThisWeek:  57,
			HighestGlucose:    189,
			HighestGlucoseDay: base.AddDate(0, 0, 5).Format("2006-01-02"),
		},
		glucoseTrend: trend,
		appointments: []sampleAppointment{
			{PatientName: "Amira Haddad", Type: model.AppointmentTypeCheckup, Status: model.AppointmentStatusRequested, ScheduledAt: base.AddDate(0, 0, 16).Add(10 * time.Hour)},
			{PatientName: "Jean Petit", Type: model.AppointmentTypeFollowUp, Status: model.AppointmentStatusRequested, ScheduledAt: base.AddDate(0, 0, 17).Add(14 * time.Hour)},
			{PatientName: "Sara Lindgren", Type: model.AppointmentTypeConsultation, Status: model.AppointmentStatusConfirmed, ScheduledAt: base.AddDate(0, 0, 15).Add(11 * time.Hour)},
			{PatientName: "Omar Khalil", Type: model.AppointmentTypeUrgent, Status: model.AppointmentStatusConfirmed, ScheduledAt: base.AddDate(0, 0, 14).Add(9 * time.Hour)},
			{PatientName: "Lea Moreau", Type: model.AppointmentTypeCheckup, Status: model.AppointmentStatusCancelled, ScheduledAt: base.AddDate(0, 0, 12).Add(16 * time.Hour)},
		},
	}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	demo := r.Group("/demo")
	{
		demo.GET("/overview", h.Overview)
		demo.GET("/glucose-trend", h.GlucoseTrend)
		demo.GET("/appointments", h.Appointments)
	}
}

func (h *Handler) Overview(c *gin.Context) {
	httputil.RespondWithSuccess(c, h.overview)
}

func (h *Handler) GlucoseTrend(c *gin.Context) {
	httputil.RespondWithSuccess(c, h.glucoseTrend)
}

func (h *Handler) Appointments(c *gin.Context) {
	httputil.RespondWithSuccess(c, h.appointments)
}
