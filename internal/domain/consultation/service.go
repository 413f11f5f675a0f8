package consultation

import (
	"context"
	"errors"
	"time"
)

var (
	ErrNotFound      = errors.New("Consultation not found")
	ErrNoFields      = errors.New("No fields to update")
	ErrUpdateDenied  = errors.New("Consultation not found or you do not have permission to update it")
	ErrDeleteDenied  = errors.New("Consultation not found or you do not have permission to delete it")
	ErrInvalidStatus = errors.New("Valid status is required (scheduled, completed, or cancelled)")
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

func (s *Service) Create(ctx context.Context, userID int64, in *CreateInput) (*Consultation, error) {
	if in.Status != "" && !ValidStatus(in.Status) {
		return nil, ErrInvalidStatus
	}
	id, err := s.repo.Create(ctx, userID, in)
	if err != nil {
		return nil, err
	}
	con, err := s.repo.GetByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if con == nil {
		return nil, ErrNotFound
	}
	return con, nil
}

func (s *Service) List(ctx context.Context, userID int64) ([]*Consultation, error) {
	return s.repo.ListByUser(ctx, userID)
}

// Upcoming returns scheduled consultations from today onward, soonest
// first.
func (s *Service) Upcoming(ctx context.Context, userID int64) ([]*Consultation, error) {
	return s.repo.ListUpcoming(ctx, userID, s.now().Format("2006-01-02"))
}

// ForDoctor lists the consultations assigned to the doctor, with
// patient names joined in.
func (s *Service) ForDoctor(ctx context.Context, doctorID int64) ([]*Consultation, error) {
	return s.repo.ListByDoctor(ctx, doctorID)
}

func (s *Service) Get(ctx context.Context, id, userID int64) (*Consultation, error) {
	con, err := s.repo.GetByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if con == nil {
		return nil, ErrNotFound
	}
	return con, nil
}

func (s *Service) Update(ctx context.Context, id, userID int64, upd *Update) (*Consultation, error) {
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

// UpdateStatus is the doctor-side status transition. It only touches
// rows assigned to the calling doctor.
func (s *Service) UpdateStatus(ctx context.Context, id, doctorID int64, status string) (*Consultation, error) {
	if !ValidStatus(status) {
		return nil, ErrInvalidStatus
	}
	rows, err := s.repo.UpdateStatus(ctx, id, doctorID, status)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, ErrUpdateDenied
	}
	con, err := s.repo.GetForDoctor(ctx, id, doctorID)
	if err != nil {
		return nil, err
	}
	if con == nil {
		return nil, ErrNotFound
	}
	return con, nil
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
