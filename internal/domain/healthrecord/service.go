package healthrecord

import (
	"context"
	"errors"
)

var (
	ErrNotFound     = errors.New("Health record not found")
	ErrNoFields     = errors.New("No fields to update")
	ErrUpdateDenied = errors.New("Health record not found or you do not have permission to update it")
	ErrDeleteDenied = errors.New("Health record not found or you do not have permission to delete it")
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create inserts the record for userID and returns the stored row so
// the response carries server-side defaults.
func (s *Service) Create(ctx context.Context, userID int64, in *CreateInput) (*Record, error) {
	id, err := s.repo.Create(ctx, userID, in)
	if err != nil {
		return nil, err
	}
	rec, err := s.repo.GetByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, ErrNotFound
	}
	return rec, nil
}

func (s *Service) List(ctx context.Context, userID int64) ([]*Record, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *Service) Get(ctx context.Context, id, userID int64) (*Record, error) {
	rec, err := s.repo.GetByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, ErrNotFound
	}
	return rec, nil
}

// Update applies the non-nil fields, scoped to the owner. A zero row
// count means the record does not exist or belongs to someone else.
func (s *Service) Update(ctx context.Context, id, userID int64, upd *Update) (*Record, error) {
	if upd.empty() {
		return nil, ErrNoFields
	}
	rows, err := s.repo.Update(ctx, id, userID, upd)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, ErrUpdateDenied
	}
	return s.Get(ctx, id, userID)
}

func (s *Service) Delete(ctx context.Context, id, userID int64) error {
	rows, err := s.repo.Delete(ctx, id, userID)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrDeleteDenied
	}
	return nil
}
