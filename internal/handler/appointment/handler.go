package appointment

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jwalitptl/clinic-api/internal/middleware"
	"github.com/jwalitptl/clinic-api/internal/model"
	"github.com/jwalitptl/clinic-api/internal/service/appointment"
	apperrors "github.com/jwalitptl/clinic-api/pkg/errors"
	"github.com/jwalitptl/clinic-api/pkg/httputil"
	"github.com/jwalitptl/clinic-api/pkg/metrics"
	"github.com/jwalitptl/clinic-api/pkg/validator"
)

type Handler struct {
	service   *appointment.Service
	validator validator.Validator
	metrics   *metrics.Metrics
}

func NewHandler(service *appointment.Service, v validator.Validator, m *metrics.Metrics) *Handler {
	return &Handler{service: service, validator: v, metrics: m}
}

func (h *Handler) CreateAppointment(c *gin.Context) {
	var req model.CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithValidationError(c, err)
		return
	}
	if err := h.validator.Validate(&req); err != nil {
		httputil.RespondWithValidationError(c, err)
		return
	}
	if actor := middleware.ActorFrom(c); !actor.CanBookAppointments(req.ClinicID) {
		httputil.RespondWithError(c, apperrors.Forbidden("cannot book appointments for this clinic"))
		return
	}

	created, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		if apperrors.Code(err) == apperrors.ErrConflict {
			h.metrics.BookingConflicts.Inc()
		}
		httputil.RespondWithError(c, err)
		return
	}

	h.metrics.AppointmentsCreated.WithLabelValues(created.ClinicID.String()).Inc()
	httputil.RespondWithCreated(c, created)
}

func (h *Handler) GetAppointment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid appointment ID", err))
		return
	}

	apt, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, apt)
}

func (h *Handler) ListAppointments(c *gin.Context) {
	clinicID, err := uuid.Parse(c.Query("clinic_id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid clinic ID", err))
		return
	}

	filters := &model.AppointmentFilters{
		ClinicID:  clinicID,
		Status:    model.AppointmentStatus(c.Query("status")),
		StartDate: c.Query("start_date"),
		EndDate:   c.Query("end_date"),
	}
	if id := c.Query("doctor_id"); id != "" {
		doctorID, err := uuid.Parse(id)
		if err != nil {
			httputil.RespondWithError(c, apperrors.BadRequest("invalid doctor ID", err))
			return
		}
		filters.DoctorID = doctorID
	}
	if id := c.Query("patient_id"); id != "" {
		patientID, err := uuid.Parse(id)
		if err != nil {
			httputil.RespondWithError(c, apperrors.BadRequest("invalid patient ID", err))
			return
		}
		filters.PatientID = patientID
	}

	appointments, err := h.service.List(c.Request.Context(), filters)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, appointments)
}

// Transition moves the appointment through its lifecycle. Illegal moves are
// rejected with a conflict before anything is written.
func (h *Handler) Transition(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid appointment ID", err))
		return
	}

	var req model.TransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithValidationError(c, err)
		return
	}
	if !model.KnownStatus(req.Status) {
		httputil.RespondWithError(c, apperrors.BadRequest("unknown appointment status", nil))
		return
	}

	apt, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	if actor := middleware.ActorFrom(c); !actor.CanTransitionAppointments(apt.ClinicID) {
		httputil.RespondWithError(c, apperrors.Forbidden("cannot transition appointments for this clinic"))
		return
	}
	from := apt.Status

	updated, err := h.service.Transition(c.Request.Context(), id, req.Status)
	if err != nil {
		if apperrors.Code(err) == apperrors.ErrInvalidTransition {
			h.metrics.InvalidTransitions.WithLabelValues(string(from), string(req.Status)).Inc()
		}
		httputil.RespondWithError(c, err)
		return
	}

	h.metrics.StatusTransitions.WithLabelValues(string(from), string(updated.Status)).Inc()
	httputil.RespondWithSuccess(c, updated)
}

// AvailableTransitions lists the legal next statuses with display labels.
func (h *Handler) AvailableTransitions(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid appointment ID", err))
		return
	}

	transitions, err := h.service.AvailableTransitions(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	options := make([]gin.H, 0, len(transitions))
	for _, status := range transitions {
		options = append(options, gin.H{
			"status":      status,
			"label":       status.Label(),
			"description": status.Description(),
		})
	}
	httputil.RespondWithSuccess(c, options)
}

// Statuses exposes the full status catalogue for UI pickers.
func (h *Handler) Statuses(c *gin.Context) {
	statuses := model.AllAppointmentStatuses()
	catalogue := make([]gin.H, 0, len(statuses))
	for _, status := range statuses {
		catalogue = append(catalogue, gin.H{
			"status":      status,
			"label":       status.Label(),
			"description": status.Description(),
			"terminal":    model.IsTerminal(status),
		})
	}
	httputil.RespondWithSuccess(c, catalogue)
}

type rescheduleRequest struct {
	Date      string `json:"date" validate:"required,datetime=2006-01-02"`
	StartTime string `json:"start_time" validate:"required,hhmm"`
	EndTime   string `json:"end_time" validate:"required,hhmm,gtfield=StartTime"`
}

func (h *Handler) Reschedule(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid appointment ID", err))
		return
	}

	var req rescheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithValidationError(c, err)
		return
	}
	if err := h.validator.Validate(&req); err != nil {
		httputil.RespondWithValidationError(c, err)
		return
	}

	updated, err := h.service.Reschedule(c.Request.Context(), id, req.Date, req.StartTime, req.EndTime)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, updated)
}

func (h *Handler) DeleteAppointment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid appointment ID", err))
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, gin.H{"deleted": id})
}

type createTypeRequest struct {
	ClinicID        uuid.UUID       `json:"clinic_id" validate:"required"`
	Name            string          `json:"name" validate:"required,max=255"`
	DurationMinutes int             `json:"duration_minutes" validate:"required,min=5,max=480"`
	Price           decimal.Decimal `json:"price"`
}

func (h *Handler) CreateType(c *gin.Context) {
	var req createTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithValidationError(c, err)
		return
	}
	if err := h.validator.Validate(&req); err != nil {
		httputil.RespondWithValidationError(c, err)
		return
	}
	if req.Price.IsNegative() {
		httputil.RespondWithError(c, apperrors.BadRequest("price cannot be negative", nil))
		return
	}
	if actor := middleware.ActorFrom(c); !actor.CanManageClinic(req.ClinicID) {
		httputil.RespondWithError(c, apperrors.Forbidden("cannot manage this clinic"))
		return
	}

	t := &model.AppointmentType{
		Base:            model.Base{ID: uuid.New()},
		ClinicID:        req.ClinicID,
		Name:            req.Name,
		DurationMinutes: req.DurationMinutes,
		Price:           req.Price,
		IsActive:        true,
	}
	if err := h.service.CreateType(c.Request.Context(), t); err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithCreated(c, t)
}

func (h *Handler) ListTypes(c *gin.Context) {
	clinicID, err := uuid.Parse(c.Query("clinic_id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid clinic ID", err))
		return
	}

	types, err := h.service.ListTypes(c.Request.Context(), clinicID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, types)
}

func (h *Handler) DeleteType(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid type ID", err))
		return
	}

	if err := h.service.DeleteType(c.Request.Context(), id); err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, gin.H{"deleted": id})
}

// EstimatedIncome reports projected revenue over an inclusive date range.
func (h *Handler) EstimatedIncome(c *gin.Context) {
	clinicID, err := uuid.Parse(c.Query("clinic_id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid clinic ID", err))
		return
	}
	start, end := c.Query("start_date"), c.Query("end_date")
	if start == "" || end == "" {
		httputil.RespondWithError(c, apperrors.BadRequest("start_date and end_date are required", nil))
		return
	}
	if actor := middleware.ActorFrom(c); !actor.CanViewReports(clinicID) {
		httputil.RespondWithError(c, apperrors.Forbidden("cannot view reports for this clinic"))
		return
	}

	income, err := h.service.EstimatedIncome(c.Request.Context(), clinicID, start, end)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, gin.H{
		"start_date":       start,
		"end_date":         end,
		"estimated_income": income,
	})
}
