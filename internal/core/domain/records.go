package domain

import "time"

// AppointmentStatus is the lifecycle state of an appointment.
type AppointmentStatus string

const (
	AppointmentScheduled AppointmentStatus = "scheduled"
	AppointmentCompleted AppointmentStatus = "completed"
	AppointmentCancelled AppointmentStatus = "cancelled"
)

// Patient is a clinic patient record.
type Patient struct {
	ID               int64     `json:"id" bson:"_id"`
	FullName         string    `json:"full_name" bson:"full_name"`
	Phone            string    `json:"phone" bson:"phone"`
	IIN              string    `json:"iin" bson:"iin"`
	BirthDate        time.Time `json:"birth_date" bson:"birth_date"`
	Allergies        string    `json:"allergies,omitempty" bson:"allergies,omitempty"`
	ChronicDiseases  string    `json:"chronic_diseases,omitempty" bson:"chronic_diseases,omitempty"`
	Contraindication string    `json:"contraindications,omitempty" bson:"contraindications,omitempty"`
	SpecialNotes     string    `json:"special_notes,omitempty" bson:"special_notes,omitempty"`
	ClinicID         int64     `json:"clinic_id" bson:"clinic_id"`
	CreatedAt        time.Time `json:"created_at" bson:"created_at"`
}

// Appointment is a scheduled visit. PatientName is denormalized for display
// and search.
type Appointment struct {
	ID          int64             `json:"id" bson:"_id"`
	PatientID   int64             `json:"patient_id" bson:"patient_id"`
	PatientName string            `json:"patient_name" bson:"patient_name"`
	DoctorID    *int64            `json:"doctor_id" bson:"doctor_id,omitempty"`
	RegistrarID int64             `json:"registrar_id" bson:"registrar_id"`
	Datetime    time.Time         `json:"appointment_datetime" bson:"appointment_datetime"`
	Status      AppointmentStatus `json:"status" bson:"status"`
	ServiceType string            `json:"service_type,omitempty" bson:"service_type,omitempty"`
	Notes       string            `json:"notes,omitempty" bson:"notes,omitempty"`
	ClinicID    int64             `json:"clinic_id" bson:"clinic_id"`
}

// TreatmentPlan is a doctor's plan of services for a patient.
type TreatmentPlan struct {
	ID           int64     `json:"id" bson:"_id"`
	PatientID    int64     `json:"patient_id" bson:"patient_id"`
	DoctorID     int64     `json:"doctor_id" bson:"doctor_id"`
	ClinicID     int64     `json:"clinic_id" bson:"clinic_id"`
	Diagnosis    string    `json:"diagnosis,omitempty" bson:"diagnosis,omitempty"`
	Status       string    `json:"status" bson:"status"`
	Notes        string    `json:"notes,omitempty" bson:"notes,omitempty"`
	TreatedTeeth []int     `json:"treated_teeth,omitempty" bson:"treated_teeth,omitempty"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
}

// TreatmentOrder is the billed record of services performed in a visit.
type TreatmentOrder struct {
	ID            int64     `json:"id" bson:"_id"`
	PatientID     int64     `json:"patient_id" bson:"patient_id"`
	CreatedByID   int64     `json:"created_by_id" bson:"created_by_id"`
	AppointmentID *int64    `json:"appointment_id" bson:"appointment_id,omitempty"`
	VisitDate     time.Time `json:"visit_date" bson:"visit_date"`
	TotalAmount   float64   `json:"total_amount" bson:"total_amount"`
	Status        string    `json:"status" bson:"status"`
	ClinicID      int64     `json:"clinic_id" bson:"clinic_id"`
	CreatedAt     time.Time `json:"created_at" bson:"created_at"`
}
