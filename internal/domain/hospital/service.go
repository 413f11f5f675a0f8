package hospital

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
)

var (
	ErrNotFound     = errors.New("Favorite hospital not found")
	ErrNoFields     = errors.New("No fields to update")
	ErrUpdateDenied = errors.New("Favorite hospital not found or you do not have permission to update it")
	ErrDeleteDenied = errors.New("Favorite hospital not found or you do not have permission to delete it")
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, userID int64, in *CreateInput) (*Favorite, error) {
	id, err := s.repo.Create(ctx, userID, in)
	if err != nil {
		return nil, err
	}
	f, err := s.repo.GetByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if f == nil {
		return nil, ErrNotFound
	}
	return f, nil
}

func (s *Service) List(ctx context.Context, userID int64) ([]*Favorite, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *Service) Get(ctx context.Context, id, userID int64) (*Favorite, error) {
	f, err := s.repo.GetByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if f == nil {
		return nil, ErrNotFound
	}
	return f, nil
}

func (s *Service) Update(ctx context.Context, id, userID int64, upd *Update) (*Favorite, error) {
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

var nearbyNames = []string{"Umum Sejahtera", "Medika Utama", "Husada Sehat", "Kasih Ibu", "Mitra Keluarga"}
var nearbyStreets = []string{"Sudirman", "Gatot Subroto", "Ahmad Yani", "Diponegoro"}

// Nearby returns a deterministic placeholder result set around the
// given coordinates. There is no live provider behind this search; the
// list is generated, sorted nearest first, and capped at the radius.
func (s *Service) Nearby(lat, long float64, radiusMeters int) []NearbyHospital {
	if radiusMeters <= 0 {
		radiusMeters = 5000
	}
	// Seed from the coordinates so the same query returns the same set.
	rng := rand.New(rand.NewSource(int64(lat*1e6) ^ int64(long*1e6)))
	count := rng.Intn(4) + 4

	out := make([]NearbyHospital, 0, count)
	for i := 0; i < count; i++ {
		dist := float64(rng.Intn(radiusMeters))
		out = append(out, NearbyHospital{
			Name:     fmt.Sprintf("RS %s %d", nearbyNames[rng.Intn(len(nearbyNames))], i+1),
			Address:  fmt.Sprintf("Jl. %s No. %d", nearbyStreets[rng.Intn(len(nearbyStreets))], rng.Intn(100)+1),
			Phone:    fmt.Sprintf("08%09d", rng.Intn(1000000000)),
			Distance: dist,
			Lat:      lat + float64(rng.Intn(100)-50)/10000,
			Long:     long + float64(rng.Intn(100)-50)/10000,
		})
	}
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j].Distance < out[j-1].Distance; j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}
