package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/dentalcare/clinic-portal/internal/api/metrics"
	"github.com/dentalcare/clinic-portal/internal/core/domain"
	"github.com/dentalcare/clinic-portal/internal/core/ports"
)

// SearchAggregator fans one free-text query out to the four record
// collections concurrently and merges the results into a single ranked list.
// A failed collection lookup is logged and omitted, never surfaced: the
// caller only ever sees a (possibly incomplete) result list.
type SearchAggregator struct {
	patients     ports.PatientRepository
	appointments ports.AppointmentRepository
	plans        ports.TreatmentPlanRepository
	orders       ports.TreatmentOrderRepository
	log          zerolog.Logger
}

func NewSearchAggregator(
	patients ports.PatientRepository,
	appointments ports.AppointmentRepository,
	plans ports.TreatmentPlanRepository,
	orders ports.TreatmentOrderRepository,
	log zerolog.Logger,
) *SearchAggregator {
	return &SearchAggregator{
		patients:     patients,
		appointments: appointments,
		plans:        plans,
		orders:       orders,
		log:          log,
	}
}

// lookupResult carries one collection's mapped results back from its goroutine.
type lookupResult struct {
	entity  domain.EntityType
	results []domain.SearchResult
	err     error
}

// Search implements ports.SearchService. A blank query returns an empty list
// without touching any collection. All lookups are launched before any is
// awaited, so total latency is bounded by the slowest one.
func (a *SearchAggregator) Search(ctx context.Context, query string, clinicID int64) ([]domain.SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}

	timer := time.Now()
	ch := make(chan lookupResult, len(domain.SearchPriority))

	go func() {
		patients, err := a.patients.Search(ctx, query, clinicID)
		ch <- lookupResult{entity: domain.EntityPatient, results: mapPatients(patients), err: err}
	}()
	go func() {
		appointments, err := a.appointments.Search(ctx, query, clinicID)
		ch <- lookupResult{entity: domain.EntityAppointment, results: mapAppointments(appointments), err: err}
	}()
	go func() {
		plans, err := a.plans.Search(ctx, query, clinicID)
		ch <- lookupResult{entity: domain.EntityTreatmentPlan, results: mapTreatmentPlans(plans), err: err}
	}()
	go func() {
		orders, err := a.orders.Search(ctx, query, clinicID)
		ch <- lookupResult{entity: domain.EntityTreatmentOrder, results: mapTreatmentOrders(orders), err: err}
	}()

	byEntity := make(map[domain.EntityType][]domain.SearchResult, len(domain.SearchPriority))
	for range domain.SearchPriority {
		l := <-ch
		if l.err != nil {
			metrics.SearchLookupsTotal.WithLabelValues(string(l.entity), "error").Inc()
			a.log.Warn().Err(l.err).Str("entity", string(l.entity)).Str("query", query).Msg("search lookup failed")
			continue
		}
		metrics.SearchLookupsTotal.WithLabelValues(string(l.entity), "ok").Inc()
		byEntity[l.entity] = l.results
	}

	merged := make([]domain.SearchResult, 0, domain.MaxSearchResults)
	for _, entity := range domain.SearchPriority {
		merged = append(merged, byEntity[entity]...)
	}
	if len(merged) > domain.MaxSearchResults {
		merged = merged[:domain.MaxSearchResults]
	}

	metrics.SearchDuration.Observe(time.Since(timer).Seconds())
	return merged, nil
}

func mapPatients(patients []domain.Patient) []domain.SearchResult {
	results := make([]domain.SearchResult, 0, len(patients))
	for i, p := range patients {
		results = append(results, domain.SearchResult{
			EntityType: domain.EntityPatient,
			ID:         p.ID,
			Title:      p.FullName,
			Subtitle:   fmt.Sprintf("Phone: %s | IIN: %s", p.Phone, p.IIN),
			Rank:       i,
		})
	}
	return results
}

func mapAppointments(appointments []domain.Appointment) []domain.SearchResult {
	results := make([]domain.SearchResult, 0, len(appointments))
	for i, ap := range appointments {
		patient := ap.PatientName
		if patient == "" {
			patient = "unknown"
		}
		results = append(results, domain.SearchResult{
			EntityType: domain.EntityAppointment,
			ID:         ap.ID,
			Title:      fmt.Sprintf("Appointment #%d", ap.ID),
			Subtitle:   fmt.Sprintf("Patient: %s | %s", patient, ap.Datetime.Format("02.01.2006 15:04")),
			Rank:       i,
		})
	}
	return results
}

func mapTreatmentPlans(plans []domain.TreatmentPlan) []domain.SearchResult {
	results := make([]domain.SearchResult, 0, len(plans))
	for i, p := range plans {
		diagnosis := p.Diagnosis
		if diagnosis == "" {
			diagnosis = "not specified"
		}
		results = append(results, domain.SearchResult{
			EntityType: domain.EntityTreatmentPlan,
			ID:         p.ID,
			Title:      fmt.Sprintf("Treatment plan #%d", p.ID),
			Subtitle:   fmt.Sprintf("Diagnosis: %s | Status: %s", diagnosis, p.Status),
			Rank:       i,
		})
	}
	return results
}

func mapTreatmentOrders(orders []domain.TreatmentOrder) []domain.SearchResult {
	results := make([]domain.SearchResult, 0, len(orders))
	for i, o := range orders {
		results = append(results, domain.SearchResult{
			EntityType: domain.EntityTreatmentOrder,
			ID:         o.ID,
			Title:      fmt.Sprintf("Order #%d", o.ID),
			Subtitle:   fmt.Sprintf("Total: %.2f | Status: %s", o.TotalAmount, o.Status),
			Rank:       i,
		})
	}
	return results
}
