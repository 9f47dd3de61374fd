package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/dentalcare/clinic-portal/internal/core/ports"
)

// RecordsHandler exposes the four record collections with server-side
// free-text filtering. These are the read endpoints the aggregator's lookups
// mirror, kept available to the views directly.
type RecordsHandler struct {
	patients     ports.PatientRepository
	appointments ports.AppointmentRepository
	plans        ports.TreatmentPlanRepository
	orders       ports.TreatmentOrderRepository
}

func NewRecordsHandler(
	patients ports.PatientRepository,
	appointments ports.AppointmentRepository,
	plans ports.TreatmentPlanRepository,
	orders ports.TreatmentOrderRepository,
) *RecordsHandler {
	return &RecordsHandler{
		patients:     patients,
		appointments: appointments,
		plans:        plans,
		orders:       orders,
	}
}

// scope resolves the caller's clinic scope from claims and query.
func (h *RecordsHandler) scope(c echo.Context) (int64, error) {
	_, role, clinicID, err := ctxIdentity(c)
	if err != nil {
		return 0, err
	}
	requested, _ := strconv.ParseInt(c.QueryParam("clinic_id"), 10, 64)
	return searchScope(role, clinicID, requested), nil
}

// ListPatients handles GET /patients.
//
// @Summary      List patients
// @Tags         records
// @Produce      json
// @Security     BearerAuth
// @Param        search  query  string  false  "Filter by name, IIN or phone"
// @Success      200  {array}  domain.Patient
// @Router       /patients [get]
func (h *RecordsHandler) ListPatients(c echo.Context) error {
	scope, err := h.scope(c)
	if err != nil {
		return err
	}
	patients, err := h.patients.Search(c.Request().Context(), c.QueryParam("search"), scope)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, patients)
}

// ListAppointments handles GET /appointments.
//
// @Summary      List appointments
// @Tags         records
// @Produce      json
// @Security     BearerAuth
// @Param        search  query  string  false  "Filter by patient name or service type"
// @Success      200  {array}  domain.Appointment
// @Router       /appointments [get]
func (h *RecordsHandler) ListAppointments(c echo.Context) error {
	scope, err := h.scope(c)
	if err != nil {
		return err
	}
	appointments, err := h.appointments.Search(c.Request().Context(), c.QueryParam("search"), scope)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, appointments)
}

// ListTreatmentPlans handles GET /treatment-plans.
//
// @Summary      List treatment plans
// @Tags         records
// @Produce      json
// @Security     BearerAuth
// @Param        search  query  string  false  "Filter by diagnosis or status"
// @Success      200  {array}  domain.TreatmentPlan
// @Router       /treatment-plans [get]
func (h *RecordsHandler) ListTreatmentPlans(c echo.Context) error {
	scope, err := h.scope(c)
	if err != nil {
		return err
	}
	plans, err := h.plans.Search(c.Request().Context(), c.QueryParam("search"), scope)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, plans)
}

// ListTreatmentOrders handles GET /treatment-orders.
//
// @Summary      List treatment orders
// @Tags         records
// @Produce      json
// @Security     BearerAuth
// @Param        search  query  string  false  "Filter by status"
// @Success      200  {array}  domain.TreatmentOrder
// @Router       /treatment-orders [get]
func (h *RecordsHandler) ListTreatmentOrders(c echo.Context) error {
	scope, err := h.scope(c)
	if err != nil {
		return err
	}
	orders, err := h.orders.Search(c.Request().Context(), c.QueryParam("search"), scope)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, orders)
}
