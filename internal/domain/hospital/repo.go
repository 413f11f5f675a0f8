package hospital

import "context"

// Repository is the persistence contract for favorite hospitals.
type Repository interface {
	Create(ctx context.Context, userID int64, in *CreateInput) (int64, error)
	GetByID(ctx context.Context, id, userID int64) (*Favorite, error)
	ListByUser(ctx context.Context, userID int64) ([]*Favorite, error)
	Update(ctx context.Context, id, userID int64, upd *Update) (int64, error)
	Delete(ctx context.Context, id, userID int64) (int64, error)
}
