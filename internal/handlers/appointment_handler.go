package handlers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/httpresp"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	ucappt "github.com/BruksfildServices01/barber-booking/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	create       *ucappt.CreateAppointment
	availability *ucappt.GetAvailability
	list         *ucappt.ListAppointments
	cancel       *ucappt.CancelAppointment
	setStatus    *ucappt.SetStatus
	update       *ucappt.UpdateAppointment
	remove       *ucappt.DeleteAppointment
}

func NewAppointmentHandler(
	repo domain.Repository,
	locker *domain.SlotLocker,
	dispatcher *audit.Dispatcher,
	log *zap.Logger,
	now ucappt.Clock,
) *AppointmentHandler {
	if locker == nil {
		locker = domain.NewSlotLocker()
	}
	return &AppointmentHandler{
		create:       ucappt.NewCreateAppointment(repo, locker, dispatcher, log, now),
		availability: ucappt.NewGetAvailability(repo, now),
		list:         ucappt.NewListAppointments(repo, now),
		cancel:       ucappt.NewCancelAppointment(repo, dispatcher, now),
		setStatus:    ucappt.NewSetStatus(repo, dispatcher, now),
		update:       ucappt.NewUpdateAppointment(repo, locker, dispatcher, now),
		remove:       ucappt.NewDeleteAppointment(repo, dispatcher),
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	UserID    *uint  `json:"userId" binding:"omitempty,min=1"`
	BarberID  *uint  `json:"barberId" binding:"omitempty,min=1"`
	ServiceID uint   `json:"serviceId" binding:"required"`
	Date      string `json:"date" binding:"required,datetime=2006-01-02"`
	Time      string `json:"time" binding:"required,datetime=15:04"`
	Notes     string `json:"notes" binding:"max=500"`

	// legacy client field
	Observacoes string `json:"observacoes" binding:"max=500"`
}

type UpdateAppointmentRequest struct {
	BarberID  *uint   `json:"barberId" binding:"omitempty,min=1"`
	ServiceID *uint   `json:"serviceId" binding:"omitempty,min=1"`
	Date      *string `json:"date" binding:"omitempty,datetime=2006-01-02"`
	Time      *string `json:"time" binding:"omitempty,datetime=15:04"`
	Status    *string `json:"status"`
	Notes     *string `json:"notes" binding:"omitempty,max=500"`

	Observacoes *string `json:"observacoes" binding:"omitempty,max=500"`
}

type StatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ======================================================
// READ
// ======================================================

// List returns every appointment for admins and the caller's own otherwise.
func (h *AppointmentHandler) List(c *gin.Context) {
	views, err := h.list.Execute(c.Request.Context(), ucappt.ListInput{
		Actor:    actorOf(c),
		BarberID: queryUint(c, "barberId"),
		Date:     c.Query("date"),
	})
	if err != nil {
		httperr.FromError(c, middleware.Logger(c), err)
		return
	}
	httpresp.List(c, views)
}

func (h *AppointmentHandler) ListByUser(c *gin.Context) {
	userID, ok := paramID(c, "userId")
	if !ok {
		return
	}

	views, err := h.list.Execute(c.Request.Context(), ucappt.ListInput{
		Actor:  actorOf(c),
		UserID: &userID,
	})
	if err != nil {
		httperr.FromError(c, middleware.Logger(c), err)
		return
	}
	httpresp.List(c, views)
}

// ListAdmin is List behind RequireAdmin; views carry the customer name
// and email.
func (h *AppointmentHandler) ListAdmin(c *gin.Context) {
	views, err := h.list.Execute(c.Request.Context(), ucappt.ListInput{
		Actor:    actorOf(c),
		UserID:   queryUint(c, "userId"),
		BarberID: queryUint(c, "barberId"),
		Date:     c.Query("date"),
	})
	if err != nil {
		httperr.FromError(c, middleware.Logger(c), err)
		return
	}
	httpresp.List(c, views)
}

func (h *AppointmentHandler) AvailableSlots(c *gin.Context) {
	in := ucappt.AvailabilityInput{
		Date:     c.Query("date"),
		BarberID: queryUint(c, "barberId"),
	}
	if id := queryUint(c, "serviceId"); id != nil {
		in.ServiceID = *id
	}

	out, err := h.availability.Execute(c.Request.Context(), in)
	if err != nil {
		httperr.FromError(c, middleware.Logger(c), err)
		return
	}
	httpresp.OK(c, out)
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req CreateAppointmentRequest
	if !bindJSON(c, &req) {
		return
	}

	view, err := h.create.Execute(c.Request.Context(), ucappt.CreateAppointmentInput{
		Actor:     actorOf(c),
		OwnerID:   req.UserID,
		BarberID:  req.BarberID,
		ServiceID: req.ServiceID,
		Date:      req.Date,
		Time:      req.Time,
		Notes:     firstNonEmpty(req.Notes, req.Observacoes),
	})
	if err != nil {
		httperr.FromError(c, middleware.Logger(c), err)
		return
	}

	httpresp.Created(c, "Agendamento criado com sucesso.", view)
}

// ======================================================
// MUTATIONS
// ======================================================

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	view, err := h.cancel.Execute(c.Request.Context(), actorOf(c), id)
	if err != nil {
		httperr.FromError(c, middleware.Logger(c), err)
		return
	}
	httpresp.OK(c, view)
}

func (h *AppointmentHandler) SetStatus(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Business(c, httperr.CodeInvalidStatus)
		return
	}

	view, err := h.setStatus.Execute(c.Request.Context(), actorOf(c), id, req.Status)
	if err != nil {
		httperr.FromError(c, middleware.Logger(c), err)
		return
	}
	httpresp.OK(c, view)
}

func (h *AppointmentHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req UpdateAppointmentRequest
	if !bindJSON(c, &req) {
		return
	}

	notes := req.Notes
	if notes == nil {
		notes = req.Observacoes
	}

	view, err := h.update.Execute(c.Request.Context(), ucappt.UpdateAppointmentInput{
		Actor:         actorOf(c),
		AppointmentID: id,
		BarberID:      req.BarberID,
		ServiceID:     req.ServiceID,
		Date:          req.Date,
		Time:          req.Time,
		Status:        req.Status,
		Notes:         notes,
	})
	if err != nil {
		httperr.FromError(c, middleware.Logger(c), err)
		return
	}
	httpresp.OK(c, view)
}

func (h *AppointmentHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.remove.Execute(c.Request.Context(), actorOf(c), id); err != nil {
		httperr.FromError(c, middleware.Logger(c), err)
		return
	}
	httpresp.Message(c, "Agendamento excluído com sucesso.")
}
