package healthrecord

import "time"

// Record is a dated health entry owned by a single user.
type Record struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"user_id"`
	RecordDate string    `json:"record_date"`
	Symptoms   *string   `json:"symptoms"`
	Diagnosis  *string   `json:"diagnosis"`
	Treatment  *string   `json:"treatment"`
	Notes      *string   `json:"notes"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// CreateInput is the creation payload. record_date is required by the
// route validation; the rest default to NULL.
type CreateInput struct {
	RecordDate string  `json:"record_date"`
	Symptoms   *string `json:"symptoms"`
	Diagnosis  *string `json:"diagnosis"`
	Treatment  *string `json:"treatment"`
	Notes      *string `json:"notes"`
}

// Update carries the writable columns for a partial update. Only
// non-nil fields reach the SET clause.
type Update struct {
	RecordDate *string `json:"record_date"`
	Symptoms   *string `json:"symptoms"`
	Diagnosis  *string `json:"diagnosis"`
	Treatment  *string `json:"treatment"`
	Notes      *string `json:"notes"`
}

func (u *Update) empty() bool {
	return u.RecordDate == nil && u.Symptoms == nil && u.Diagnosis == nil &&
		u.Treatment == nil && u.Notes == nil
}
