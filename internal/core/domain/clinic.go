package domain

// Clinic is one branch of the chain; the tenant boundary for non-admin users.
type Clinic struct {
	ID          int64  `json:"id" bson:"_id"`
	Name        string `json:"name" bson:"name"`
	Description string `json:"description,omitempty" bson:"description,omitempty"`
	Address     string `json:"address" bson:"address"`
	Contacts    string `json:"contacts" bson:"contacts"`
	Active      bool   `json:"is_active" bson:"is_active"`
}

// DefaultClinic is the display identity used when no clinic can be resolved
// for the session. Callers fall back to it instead of failing.
func DefaultClinic() Clinic {
	return Clinic{Name: "DentalCare", Active: true}
}
