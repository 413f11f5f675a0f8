package medication

import "time"

// Reminder is a recurring medication schedule owned by a single user.
// TimeSlots holds HH:MM entries in the order the user supplied them;
// the column stores them as a JSON array.
type Reminder struct {
	ID             int64     `json:"id"`
	UserID         int64     `json:"user_id"`
	MedicationName string    `json:"medication_name"`
	Dosage         *string   `json:"dosage"`
	Frequency      string    `json:"frequency"`
	StartDate      string    `json:"start_date"`
	EndDate        *string   `json:"end_date"`
	TimeSlots      []string  `json:"time_slots"`
	Notes          *string   `json:"notes"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type CreateInput struct {
	MedicationName string   `json:"medication_name"`
	Dosage         *string  `json:"dosage"`
	Frequency      string   `json:"frequency"`
	StartDate      string   `json:"start_date"`
	EndDate        *string  `json:"end_date"`
	TimeSlots      []string `json:"time_slots"`
	Notes          *string  `json:"notes"`
}

// Update carries the writable columns for a partial update. A nil
// TimeSlots leaves the stored slots untouched; an empty non-nil slice
// is rejected, a reminder always keeps at least one slot.
type Update struct {
	MedicationName *string   `json:"medication_name"`
	Dosage         *string   `json:"dosage"`
	Frequency      *string   `json:"frequency"`
	StartDate      *string   `json:"start_date"`
	EndDate        *string   `json:"end_date"`
	TimeSlots      *[]string `json:"time_slots"`
	Notes          *string   `json:"notes"`
}

func (u *Update) empty() bool {
	return u.MedicationName == nil && u.Dosage == nil && u.Frequency == nil &&
		u.StartDate == nil && u.EndDate == nil && u.TimeSlots == nil && u.Notes == nil
}
