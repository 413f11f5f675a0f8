package user

import "time"

// Roles assignable to an account. Registration defaults to patient.
const (
	RolePatient = "patient"
	RoleDoctor  = "doctor"
	RoleAdmin   = "admin"
)

// User is an account row. Password carries the bcrypt hash and is never
// serialized; doctor profile columns are nil for patients and admins.
type User struct {
	ID             int64    `json:"id"`
	Name           string   `json:"name"`
	Email          string   `json:"email"`
	Password       string   `json:"-"`
	Role           string   `json:"role,omitempty"`
	Phone          *string  `json:"phone"`
	Address        *string  `json:"address"`
	DateOfBirth    *string  `json:"date_of_birth"`
	Gender         *string  `json:"gender"`
	ProfilePicture *string  `json:"profile_picture"`
	Specialization *string  `json:"specialization,omitempty"`
	PracticeYears  *int     `json:"practice_years,omitempty"`
	DoctorLicense  *string  `json:"doctor_license,omitempty"`
	DoctorBio      *string  `json:"doctor_bio,omitempty"`
	ConsultationFee *float64 `json:"consultation_fee,omitempty"`
	AvailableDays  *string  `json:"available_days,omitempty"`
	AvailableHours *string  `json:"available_hours,omitempty"`
	Category       *string  `json:"category,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// RegisterInput is the registration payload. Optional fields stay nil
// and land as NULL columns.
type RegisterInput struct {
	Name           string   `json:"name"`
	Email          string   `json:"email"`
	Password       string   `json:"password"`
	Role           string   `json:"role"`
	Phone          *string  `json:"phone"`
	Address        *string  `json:"address"`
	DateOfBirth    *string  `json:"date_of_birth"`
	Gender         *string  `json:"gender"`
	Specialization *string  `json:"specialization"`
	PracticeYears  *int     `json:"practice_years"`
	DoctorLicense  *string  `json:"doctor_license"`
	DoctorBio      *string  `json:"doctor_bio"`
	ConsultationFee *float64 `json:"consultation_fee"`
	AvailableDays  *string  `json:"available_days"`
	AvailableHours *string  `json:"available_hours"`
	Category       *string  `json:"category"`
}

// Update is the partial-update payload for a profile. Only non-nil
// fields are written; password changes go through UpdatePassword.
type Update struct {
	Name           *string  `json:"name"`
	Email          *string  `json:"email"`
	Phone          *string  `json:"phone"`
	Address        *string  `json:"address"`
	DateOfBirth    *string  `json:"date_of_birth"`
	Gender         *string  `json:"gender"`
	ProfilePicture *string  `json:"profile_picture"`
	Specialization *string  `json:"specialization"`
	PracticeYears  *int     `json:"practice_years"`
	DoctorLicense  *string  `json:"doctor_license"`
	DoctorBio      *string  `json:"doctor_bio"`
	ConsultationFee *float64 `json:"consultation_fee"`
	AvailableDays  *string  `json:"available_days"`
	AvailableHours *string  `json:"available_hours"`
	Category       *string  `json:"category"`
}

// DoctorFilter narrows the public doctor listing.
type DoctorFilter struct {
	Specialization string
	Category       string

	// Limit of 0 disables paging and returns the full set.
	Limit  int
	Offset int
}

// AuthResult is returned by register and login.
type AuthResult struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}
