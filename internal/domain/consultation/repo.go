package consultation

import "context"

// Repository is the persistence contract for consultations. Patient
// operations are scoped by user_id, doctor operations by doctor_id.
type Repository interface {
	Create(ctx context.Context, userID int64, in *CreateInput) (int64, error)
	GetByID(ctx context.Context, id, userID int64) (*Consultation, error)
	GetForDoctor(ctx context.Context, id, doctorID int64) (*Consultation, error)
	ListByUser(ctx context.Context, userID int64) ([]*Consultation, error)
	ListByDoctor(ctx context.Context, doctorID int64) ([]*Consultation, error)
	ListUpcoming(ctx context.Context, userID int64, from string) ([]*Consultation, error)
	Update(ctx context.Context, id, userID int64, upd *Update) (int64, error)
	UpdateStatus(ctx context.Context, id, doctorID int64, status string) (int64, error)
	Delete(ctx context.Context, id, userID int64) (int64, error)
}
