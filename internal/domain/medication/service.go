package medication

import (
	"context"
	"errors"
	"time"
)

var (
	ErrNotFound     = errors.New("Medication reminder not found")
	ErrNoFields     = errors.New("No fields to update")
	ErrUpdateDenied = errors.New("Medication reminder not found or you do not have permission to update it")
	ErrDeleteDenied = errors.New("Medication reminder not found or you do not have permission to delete it")
	ErrEmptySlots   = errors.New("Time slots must not be empty")
	ErrDateRange    = errors.New("End date must be on or after start date")
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

func (s *Service) Create(ctx context.Context, userID int64, in *CreateInput) (*Reminder, error) {
	if in.EndDate != nil && *in.EndDate != "" && *in.EndDate < in.StartDate {
		return nil, ErrDateRange
	}
	id, err := s.repo.Create(ctx, userID, in)
	if err != nil {
		return nil, err
	}
	rem, err := s.repo.GetByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if rem == nil {
		return nil, ErrNotFound
	}
	return rem, nil
}

func (s *Service) List(ctx context.Context, userID int64) ([]*Reminder, error) {
	return s.repo.ListByUser(ctx, userID)
}

// Today returns the reminders active on the current date.
func (s *Service) Today(ctx context.Context, userID int64) ([]*Reminder, error) {
	return s.repo.ListActiveOn(ctx, userID, s.now().Format("2006-01-02"))
}

func (s *Service) Get(ctx context.Context, id, userID int64) (*Reminder, error) {
	rem, err := s.repo.GetByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if rem == nil {
		return nil, ErrNotFound
	}
	return rem, nil
}

func (s *Service) Update(ctx context.Context, id, userID int64, upd *Update) (*Reminder, error) {
	if upd.empty() {
		return nil, ErrNoFields
	}
	if upd.TimeSlots != nil && len(*upd.TimeSlots) == 0 {
		return nil, ErrEmptySlots
	}
	// The date range invariant spans stored and incoming values, so a
	// date change needs the current row.
	if upd.StartDate != nil || upd.EndDate != nil {
		cur, err := s.repo.GetByID(ctx, id, userID)
		if err != nil {
			return nil, err
		}
		if cur == nil {
			return nil, ErrUpdateDenied
		}
		start := cur.StartDate
		if upd.StartDate != nil {
			start = *upd.StartDate
		}
		end := cur.EndDate
		if upd.EndDate != nil {
			end = upd.EndDate
		}
		if end != nil && *end != "" && *end < start {
			return nil, ErrDateRange
		}
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
