package medication

import "context"

// Repository is the persistence contract for medication reminders.
// Reads and writes are scoped to the owning user in the query itself.
type Repository interface {
	Create(ctx context.Context, userID int64, in *CreateInput) (int64, error)
	GetByID(ctx context.Context, id, userID int64) (*Reminder, error)
	ListByUser(ctx context.Context, userID int64) ([]*Reminder, error)
	ListActiveOn(ctx context.Context, userID int64, date string) ([]*Reminder, error)
	Update(ctx context.Context, id, userID int64, upd *Update) (int64, error)
	Delete(ctx context.Context, id, userID int64) (int64, error)
}
