package domain

import "time"

// Audit actions recorded by the portal.
const (
	AuditActionLogin       = "login"
	AuditActionLoginFailed = "login_failed"
	AuditActionLogout      = "logout"
	AuditActionSearch      = "search"
)

// AuditEvent is one entry of the activity trail.
type AuditEvent struct {
	Actor     string    `json:"actor" bson:"actor"`
	Action    string    `json:"action" bson:"action"`
	Detail    string    `json:"detail,omitempty" bson:"detail,omitempty"`
	ClinicID  *int64    `json:"clinic_id,omitempty" bson:"clinic_id,omitempty"`
	Timestamp time.Time `json:"timestamp" bson:"timestamp"`
}
