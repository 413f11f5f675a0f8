package user

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/crypto/bcrypt"

	"github.com/meditrack/meditrack/internal/platform/auth"
)

var (
	ErrNotFound           = errors.New("User not found")
	ErrEmailTaken         = errors.New("Email already in use")
	ErrInvalidCredentials = errors.New("Invalid email or password")
	ErrWrongPassword      = errors.New("Current password is incorrect")
	ErrNoFields           = errors.New("No fields to update")
)

const bcryptCost = 10

type Service struct {
	repo   Repository
	tokens *auth.TokenIssuer
}

func NewService(repo Repository, tokens *auth.TokenIssuer) *Service {
	return &Service{repo: repo, tokens: tokens}
}

// Register creates an account, defaulting the role to patient, and
// returns the stored profile with a fresh token.
func (s *Service) Register(ctx context.Context, in *RegisterInput) (*AuthResult, error) {
	if in.Role == "" {
		in.Role = RolePatient
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcryptCost)
	if err != nil {
		return nil, err
	}
	id, err := s.repo.Create(ctx, in, string(hash))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrNotFound
	}
	token, err := s.tokens.Generate(u.ID, u.Role)
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: u, Token: token}, nil
}

// Login verifies credentials. Unknown email and wrong password report
// the same error so the response does not reveal which one failed.
func (s *Service) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	token, err := s.tokens.Generate(u.ID, u.Role)
	if err != nil {
		return nil, err
	}
	u.Password = ""
	return &AuthResult{User: u, Token: token}, nil
}

func (s *Service) GetUser(ctx context.Context, id int64) (*User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrNotFound
	}
	return u, nil
}

// UpdateUser applies the non-nil fields of upd and returns the
// refreshed profile.
func (s *Service) UpdateUser(ctx context.Context, id int64, upd *Update) (*User, error) {
	rows, err := s.repo.Update(ctx, id, upd)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	if rows == 0 {
		if isEmpty(upd) {
			return nil, ErrNoFields
		}
		return nil, ErrNotFound
	}
	return s.GetUser(ctx, id)
}

func (s *Service) UpdatePassword(ctx context.Context, id int64, current, next string) error {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if u == nil {
		return ErrNotFound
	}
	// GetByID strips the hash, so fetch it through the email lookup.
	full, err := s.repo.GetByEmail(ctx, u.Email)
	if err != nil {
		return err
	}
	if full == nil {
		return ErrNotFound
	}
	if bcrypt.CompareHashAndPassword([]byte(full.Password), []byte(current)) != nil {
		return ErrWrongPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(next), bcryptCost)
	if err != nil {
		return err
	}
	rows, err := s.repo.UpdatePassword(ctx, id, string(hash))
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Service) DeleteUser(ctx context.Context, id int64) error {
	rows, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Service) ListDoctors(ctx context.Context, f DoctorFilter) ([]*User, error) {
	return s.repo.ListDoctors(ctx, f)
}

func (s *Service) CountDoctors(ctx context.Context, f DoctorFilter) (int, error) {
	return s.repo.CountDoctors(ctx, f)
}

func (s *Service) DoctorCategories(ctx context.Context) ([]string, error) {
	return s.repo.DoctorCategories(ctx)
}

func (s *Service) DoctorSpecializations(ctx context.Context) ([]string, error) {
	return s.repo.DoctorSpecializations(ctx)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func isEmpty(upd *Update) bool {
	return upd.Name == nil && upd.Email == nil && upd.Phone == nil &&
		upd.Address == nil && upd.DateOfBirth == nil && upd.Gender == nil &&
		upd.ProfilePicture == nil && upd.Specialization == nil &&
		upd.PracticeYears == nil && upd.DoctorLicense == nil &&
		upd.DoctorBio == nil && upd.ConsultationFee == nil &&
		upd.AvailableDays == nil && upd.AvailableHours == nil && upd.Category == nil
}
