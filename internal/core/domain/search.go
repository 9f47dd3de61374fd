package domain

// EntityType identifies which record collection a search result came from.
type EntityType string

const (
	EntityPatient        EntityType = "patient"
	EntityAppointment    EntityType = "appointment"
	EntityTreatmentPlan  EntityType = "treatment_plan"
	EntityTreatmentOrder EntityType = "treatment_order"
)

// SearchPriority is the fixed merge order of the cross-entity search:
// per-entity result lists are concatenated in this order before truncation.
var SearchPriority = []EntityType{
	EntityPatient,
	EntityAppointment,
	EntityTreatmentPlan,
	EntityTreatmentOrder,
}

// MaxSearchResults caps the merged result list.
const MaxSearchResults = 10

// SearchResult is one entry of the unified search list. Immutable value
// object; a fresh set is built per query. Rank is the position the owning
// collection returned the record at (its own relevance ordering).
type SearchResult struct {
	EntityType EntityType `json:"type"`
	ID         int64      `json:"id"`
	Title      string     `json:"title"`
	Subtitle   string     `json:"subtitle"`
	Rank       int        `json:"rank"`
}
