package clinic

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/jwalitptl/clinic-api/internal/middleware"
	"github.com/jwalitptl/clinic-api/internal/model"
	"github.com/jwalitptl/clinic-api/internal/service/clinic"
	"github.com/jwalitptl/clinic-api/internal/service/schedule"
	apperrors "github.com/jwalitptl/clinic-api/pkg/errors"
	"github.com/jwalitptl/clinic-api/pkg/httputil"
	"github.com/jwalitptl/clinic-api/pkg/validator"
)

type Handler struct {
	service     *clinic.Service
	scheduleSvc *schedule.Service
	validator   validator.Validator
}

func NewHandler(service *clinic.Service, scheduleSvc *schedule.Service, v validator.Validator) *Handler {
	return &Handler{service: service, scheduleSvc: scheduleSvc, validator: v}
}

func (h *Handler) CreateClinic(c *gin.Context) {
	var req model.CreateClinicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithValidationError(c, err)
		return
	}
	if err := h.validator.Validate(&req); err != nil {
		httputil.RespondWithValidationError(c, err)
		return
	}

	created, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithCreated(c, created)
}

func (h *Handler) GetClinic(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid clinic ID", err))
		return
	}

	found, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, found)
}

func (h *Handler) UpdateClinic(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid clinic ID", err))
		return
	}
	if actor := middleware.ActorFrom(c); !actor.CanManageClinic(id) {
		httputil.RespondWithError(c, apperrors.Forbidden("cannot manage this clinic"))
		return
	}

	existing, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	var req model.CreateClinicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithValidationError(c, err)
		return
	}
	if err := h.validator.Validate(&req); err != nil {
		httputil.RespondWithValidationError(c, err)
		return
	}

	existing.Name = req.Name
	existing.Timezone = req.Timezone
	if req.SlotMinutes > 0 {
		existing.SlotMinutes = req.SlotMinutes
	}
	if err := h.service.Update(c.Request.Context(), existing); err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, existing)
}

func (h *Handler) DeleteClinic(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid clinic ID", err))
		return
	}
	if actor := middleware.ActorFrom(c); !actor.CanManageClinic(id) {
		httputil.RespondWithError(c, apperrors.Forbidden("cannot manage this clinic"))
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, gin.H{"deleted": id})
}

func (h *Handler) ListClinics(c *gin.Context) {
	clinics, err := h.service.List(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, clinics)
}

func (h *Handler) CreateRoom(c *gin.Context) {
	clinicID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid clinic ID", err))
		return
	}
	if actor := middleware.ActorFrom(c); !actor.CanManageClinic(clinicID) {
		httputil.RespondWithError(c, apperrors.Forbidden("cannot manage this clinic"))
		return
	}

	var req struct {
		Name string `json:"name" validate:"required,max=255"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithValidationError(c, err)
		return
	}
	if err := h.validator.Validate(&req); err != nil {
		httputil.RespondWithValidationError(c, err)
		return
	}

	room := &model.Room{ClinicID: clinicID, Name: req.Name}
	if err := h.service.CreateRoom(c.Request.Context(), room); err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithCreated(c, room)
}

func (h *Handler) ListRooms(c *gin.Context) {
	clinicID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid clinic ID", err))
		return
	}

	rooms, err := h.service.ListRooms(c.Request.Context(), clinicID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, rooms)
}

func (h *Handler) CreateSchedule(c *gin.Context) {
	clinicID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid clinic ID", err))
		return
	}
	if actor := middleware.ActorFrom(c); !actor.CanManageClinic(clinicID) {
		httputil.RespondWithError(c, apperrors.Forbidden("cannot manage this clinic"))
		return
	}

	var req model.CreateClinicScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithValidationError(c, err)
		return
	}
	req.ClinicID = clinicID
	if err := h.validator.Validate(&req); err != nil {
		httputil.RespondWithValidationError(c, err)
		return
	}

	row := &model.ClinicSchedule{
		ClinicID:  clinicID,
		Weekday:   time.Weekday(req.Weekday),
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		IsActive:  true,
	}
	if err := h.scheduleSvc.CreateClinicSchedule(c.Request.Context(), row); err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithCreated(c, row)
}

func (h *Handler) ListSchedules(c *gin.Context) {
	clinicID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid clinic ID", err))
		return
	}

	rows, err := h.scheduleSvc.ListClinicSchedules(c.Request.Context(), clinicID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, rows)
}

func (h *Handler) DeleteSchedule(c *gin.Context) {
	clinicID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid clinic ID", err))
		return
	}
	scheduleID, err := uuid.Parse(c.Param("scheduleId"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid schedule ID", err))
		return
	}
	if actor := middleware.ActorFrom(c); !actor.CanManageClinic(clinicID) {
		httputil.RespondWithError(c, apperrors.Forbidden("cannot manage this clinic"))
		return
	}

	if err := h.scheduleSvc.DeleteClinicSchedule(c.Request.Context(), scheduleID); err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, gin.H{"deleted": scheduleID})
}

// Occupancy reports clinic-wide slot usage for one clinic-local date.
func (h *Handler) Occupancy(c *gin.Context) {
	clinicID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid clinic ID", err))
		return
	}
	date := c.Query("date")
	if date == "" {
		httputil.RespondWithError(c, apperrors.BadRequest("date is required", fmt.Errorf("missing query parameter")))
		return
	}

	occ, err := h.scheduleSvc.ClinicOccupancy(c.Request.Context(), clinicID, date)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, occ)
}
