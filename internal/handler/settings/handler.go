package settings

import (
	"github.com/gin-gonic/gin"

	apperrors "github.com/glucocare/glucocare-api/pkg/errors"
	"github.com/glucocare/glucocare-api/pkg/httputil"
	"github.com/glucocare/glucocare-api/pkg/i18n"
)

type Handler struct {
	store *i18n.Store
}

func NewHandler(store *i18n.Store) *Handler {
	return &Handler{store: store}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	settings := r.Group("/settings")
	{
		settings.GET("/language", h.GetLanguage)
		settings.PUT("/language", h.SetLanguage)
	}
}

type setLanguageRequest struct {
	Locale string `json:"locale" binding:"required,min=2,max=8"`
}

func (h *Handler) GetLanguage(c *gin.Context) {
	httputil.RespondWithSuccess(c, gin.H{
		"locale":    h.store.Locale(),
		"available": h.store.Locales(),
		"strings":   h.store.Table(),
	})
}

func (h *Handler) SetLanguage(c *gin.Context) {
	var req setLanguageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest(err.Error(), err))
		return
	}

	if err := h.store.SetLocale(c.Request.Context(), req.Locale); err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest(err.Error(), err))
		return
	}

	httputil.RespondWithSuccess(c, gin.H{"locale": h.store.Locale()})
}
