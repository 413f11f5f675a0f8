package consultation

import "time"

// Consultation statuses. New bookings default to scheduled.
const (
	StatusScheduled = "scheduled"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// ValidStatus reports whether s is one of the three known statuses.
func ValidStatus(s string) bool {
	return s == StatusScheduled || s == StatusCompleted || s == StatusCancelled
}

// Consultation is an appointment between a patient and an optionally
// assigned doctor. DoctorName is joined in on patient-facing reads,
// PatientName on doctor-facing reads.
type Consultation struct {
	ID               int64     `json:"id"`
	UserID           int64     `json:"user_id"`
	DoctorID         *int64    `json:"doctor_id"`
	ConsultationDate string    `json:"consultation_date"`
	ConsultationTime string    `json:"consultation_time"`
	Reason           *string   `json:"reason"`
	Status           string    `json:"status"`
	Notes            *string   `json:"notes"`
	DoctorName       *string   `json:"doctor_name,omitempty"`
	PatientName      *string   `json:"patient_name,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

type CreateInput struct {
	DoctorID         *int64  `json:"doctor_id"`
	ConsultationDate string  `json:"consultation_date"`
	ConsultationTime string  `json:"consultation_time"`
	Reason           *string `json:"reason"`
	Status           string  `json:"status"`
	Notes            *string `json:"notes"`
}

// Update carries the writable columns for a patient-side partial
// update. Only non-nil fields reach the SET clause. Status is absent:
// only the assigned doctor may transition it, through UpdateStatus.
type Update struct {
	DoctorID         *int64  `json:"doctor_id"`
	ConsultationDate *string `json:"consultation_date"`
	ConsultationTime *string `json:"consultation_time"`
	Reason           *string `json:"reason"`
	Notes            *string `json:"notes"`
}

func (u *Update) empty() bool {
	return u.DoctorID == nil && u.ConsultationDate == nil && u.ConsultationTime == nil &&
		u.Reason == nil && u.Notes == nil
}
