package doctor

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/jwalitptl/clinic-api/internal/middleware"
	"github.com/jwalitptl/clinic-api/internal/model"
	"github.com/jwalitptl/clinic-api/internal/service/doctor"
	"github.com/jwalitptl/clinic-api/internal/service/schedule"
	apperrors "github.com/jwalitptl/clinic-api/pkg/errors"
	"github.com/jwalitptl/clinic-api/pkg/httputil"
	"github.com/jwalitptl/clinic-api/pkg/validator"
)

type Handler struct {
	service     *doctor.Service
	scheduleSvc *schedule.Service
	validator   validator.Validator
}

func NewHandler(service *doctor.Service, scheduleSvc *schedule.Service, v validator.Validator) *Handler {
	return &Handler{service: service, scheduleSvc: scheduleSvc, validator: v}
}

func (h *Handler) CreateDoctor(c *gin.Context) {
	var req model.CreateDoctorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithValidationError(c, err)
		return
	}
	if err := h.validator.Validate(&req); err != nil {
		httputil.RespondWithValidationError(c, err)
		return
	}
	if actor := middleware.ActorFrom(c); !actor.CanManageDoctors(req.ClinicID) {
		httputil.RespondWithError(c, apperrors.Forbidden("cannot manage doctors for this clinic"))
		return
	}

	created, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithCreated(c, created)
}

func (h *Handler) GetDoctor(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid doctor ID", err))
		return
	}

	found, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, found)
}

func (h *Handler) DeleteDoctor(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid doctor ID", err))
		return
	}

	existing, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	if actor := middleware.ActorFrom(c); !actor.CanManageDoctors(existing.ClinicID) {
		httputil.RespondWithError(c, apperrors.Forbidden("cannot manage doctors for this clinic"))
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, gin.H{"deleted": id})
}

func (h *Handler) ListDoctors(c *gin.Context) {
	clinicID, err := uuid.Parse(c.Query("clinic_id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid clinic ID", err))
		return
	}

	doctors, err := h.service.List(c.Request.Context(), clinicID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, doctors)
}

func (h *Handler) CreateSchedule(c *gin.Context) {
	doctorID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid doctor ID", err))
		return
	}

	existing, err := h.service.Get(c.Request.Context(), doctorID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	if actor := middleware.ActorFrom(c); !actor.CanManageSchedule(existing.ClinicID, doctorID) {
		httputil.RespondWithError(c, apperrors.Forbidden("cannot manage this doctor's schedule"))
		return
	}

	var req model.CreateDoctorScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithValidationError(c, err)
		return
	}
	req.DoctorID = doctorID
	if err := h.validator.Validate(&req); err != nil {
		httputil.RespondWithValidationError(c, err)
		return
	}

	row := &model.DoctorSchedule{
		DoctorID:  doctorID,
		Weekday:   time.Weekday(req.Weekday),
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		IsActive:  true,
	}
	if err := h.scheduleSvc.CreateDoctorSchedule(c.Request.Context(), row); err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithCreated(c, row)
}

func (h *Handler) ListSchedules(c *gin.Context) {
	doctorID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid doctor ID", err))
		return
	}

	rows, err := h.scheduleSvc.ListDoctorSchedules(c.Request.Context(), doctorID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, rows)
}

func (h *Handler) DeleteSchedule(c *gin.Context) {
	doctorID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid doctor ID", err))
		return
	}
	scheduleID, err := uuid.Parse(c.Param("scheduleId"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid schedule ID", err))
		return
	}

	existing, err := h.service.Get(c.Request.Context(), doctorID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	if actor := middleware.ActorFrom(c); !actor.CanManageSchedule(existing.ClinicID, doctorID) {
		httputil.RespondWithError(c, apperrors.Forbidden("cannot manage this doctor's schedule"))
		return
	}

	if err := h.scheduleSvc.DeleteDoctorSchedule(c.Request.Context(), scheduleID); err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, gin.H{"deleted": scheduleID})
}

func (h *Handler) CreateException(c *gin.Context) {
	doctorID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid doctor ID", err))
		return
	}

	existing, err := h.service.Get(c.Request.Context(), doctorID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	if actor := middleware.ActorFrom(c); !actor.CanManageSchedule(existing.ClinicID, doctorID) {
		httputil.RespondWithError(c, apperrors.Forbidden("cannot manage this doctor's schedule"))
		return
	}

	var req model.CreateDoctorExceptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithValidationError(c, err)
		return
	}
	req.DoctorID = doctorID
	if err := h.validator.Validate(&req); err != nil {
		httputil.RespondWithValidationError(c, err)
		return
	}

	row := &model.DoctorException{
		DoctorID:  doctorID,
		Date:      req.Date,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Reason:    req.Reason,
	}
	if err := h.scheduleSvc.CreateDoctorException(c.Request.Context(), row); err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithCreated(c, row)
}

func (h *Handler) ListExceptions(c *gin.Context) {
	doctorID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid doctor ID", err))
		return
	}
	date := c.Query("date")
	if date == "" {
		httputil.RespondWithError(c, apperrors.BadRequest("date is required", nil))
		return
	}

	rows, err := h.scheduleSvc.ListDoctorExceptions(c.Request.Context(), doctorID, date)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, rows)
}

func (h *Handler) DeleteException(c *gin.Context) {
	doctorID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid doctor ID", err))
		return
	}
	exceptionID, err := uuid.Parse(c.Param("exceptionId"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid exception ID", err))
		return
	}

	existing, err := h.service.Get(c.Request.Context(), doctorID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	if actor := middleware.ActorFrom(c); !actor.CanManageSchedule(existing.ClinicID, doctorID) {
		httputil.RespondWithError(c, apperrors.Forbidden("cannot manage this doctor's schedule"))
		return
	}

	if err := h.scheduleSvc.DeleteDoctorException(c.Request.Context(), exceptionID); err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, gin.H{"deleted": exceptionID})
}

// Availability returns the doctor's bookable intervals for a clinic-local date.
func (h *Handler) Availability(c *gin.Context) {
	doctorID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid doctor ID", err))
		return
	}
	date := c.Query("date")
	if date == "" {
		httputil.RespondWithError(c, apperrors.BadRequest("date is required", nil))
		return
	}

	intervals, err := h.scheduleSvc.ResolveAvailability(c.Request.Context(), doctorID, date)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, gin.H{"date": date, "intervals": intervals})
}

// Slots returns the concrete start times still open for booking.
func (h *Handler) Slots(c *gin.Context) {
	doctorID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid doctor ID", err))
		return
	}
	date := c.Query("date")
	if date == "" {
		httputil.RespondWithError(c, apperrors.BadRequest("date is required", nil))
		return
	}

	slots, err := h.scheduleSvc.AvailableSlots(c.Request.Context(), doctorID, date)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, gin.H{"date": date, "slots": slots})
}

// Occupancy reports the doctor's slot usage for one clinic-local date.
func (h *Handler) Occupancy(c *gin.Context) {
	doctorID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid doctor ID", err))
		return
	}
	date := c.Query("date")
	if date == "" {
		httputil.RespondWithError(c, apperrors.BadRequest("date is required", nil))
		return
	}

	occ, err := h.scheduleSvc.DoctorOccupancy(c.Request.Context(), doctorID, date)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, occ)
}
