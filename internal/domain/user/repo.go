package user

import "context"

// Repository is the persistence contract for accounts.
type Repository interface {
	Create(ctx context.Context, in *RegisterInput, passwordHash string) (int64, error)
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	Update(ctx context.Context, id int64, upd *Update) (int64, error)
	UpdatePassword(ctx context.Context, id int64, passwordHash string) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
	ListDoctors(ctx context.Context, f DoctorFilter) ([]*User, error)
	CountDoctors(ctx context.Context, f DoctorFilter) (int, error)
	DoctorCategories(ctx context.Context) ([]string, error)
	DoctorSpecializations(ctx context.Context) ([]string, error)
}
