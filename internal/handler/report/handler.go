package report

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/jwalitptl/clinic-api/internal/middleware"
	"github.com/jwalitptl/clinic-api/internal/service/report"
	apperrors "github.com/jwalitptl/clinic-api/pkg/errors"
	"github.com/jwalitptl/clinic-api/pkg/httputil"
)

type Handler struct {
	service *report.Service
}

func NewHandler(service *report.Service) *Handler {
	return &Handler{service: service}
}

// Overview aggregates a clinic's appointments over a period. The period is one
// of day/week/month/year, or custom with explicit start_date and end_date.
func (h *Handler) Overview(c *gin.Context) {
	clinicID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid clinic ID", err))
		return
	}
	if actor := middleware.ActorFrom(c); !actor.CanViewReports(clinicID) {
		httputil.RespondWithError(c, apperrors.Forbidden("cannot view reports for this clinic"))
		return
	}

	period := report.Period(c.DefaultQuery("period", string(report.PeriodMonth)))
	rep, err := h.service.Overview(c.Request.Context(), clinicID, period,
		c.Query("start_date"), c.Query("end_date"))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, rep)
}

// Today is the landing dashboard for the clinic's current local date.
func (h *Handler) Today(c *gin.Context) {
	clinicID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid clinic ID", err))
		return
	}
	if actor := middleware.ActorFrom(c); !actor.CanViewReports(clinicID) {
		httputil.RespondWithError(c, apperrors.Forbidden("cannot view reports for this clinic"))
		return
	}

	rep, err := h.service.Today(c.Request.Context(), clinicID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, rep)
}
