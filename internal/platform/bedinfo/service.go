package bedinfo

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/url"
	"time"

	"github.com/rs/zerolog"
)

// Fetcher is the slice of Client the service needs; tests swap in a
// failing or canned implementation.
type Fetcher interface {
	JSON(ctx context.Context, path string, query url.Values, v interface{}) error
	HTML(ctx context.Context, path string, query url.Values) ([]byte, error)
}

// Service answers reference-data and bed-availability queries. Upstream
// or parse failures never surface to callers: the service logs them and
// substitutes synthetic data tagged SourceSynthetic.
type Service struct {
	fetcher Fetcher
	log     zerolog.Logger
	now     func() time.Time
}

func NewService(fetcher Fetcher, log zerolog.Logger) *Service {
	return &Service{
		fetcher: fetcher,
		log:     log,
		now:     time.Now,
	}
}

// rand.Rand is not safe for concurrent use, so each degraded request
// gets its own generator.
func (s *Service) newRNG() *rand.Rand {
	return rand.New(rand.NewSource(s.now().UnixNano()))
}

func (s *Service) degraded(op string, err error) {
	s.log.Warn().Err(err).Str("op", op).Msg("bed availability upstream failed, serving synthetic data")
}

type upstreamProvinces struct {
	Data []struct {
		Code string `json:"kode_propinsi"`
		Name string `json:"nama_propinsi"`
	} `json:"data"`
}

func (s *Service) Provinces(ctx context.Context) *ProvincesResult {
	var raw upstreamProvinces
	if err := s.fetcher.JSON(ctx, "Propinsi", nil, &raw); err != nil || len(raw.Data) == 0 {
		if err == nil {
			err = fmt.Errorf("empty province list")
		}
		s.degraded("provinces", err)
		return &ProvincesResult{Provinces: syntheticProvinces, Source: SourceSynthetic}
	}
	provinces := make([]Region, 0, len(raw.Data))
	for _, p := range raw.Data {
		provinces = append(provinces, Region{ID: p.Code, Name: p.Name})
	}
	return &ProvincesResult{Provinces: provinces, Source: SourceLive}
}

type upstreamCities struct {
	Data []struct {
		Code string `json:"kode_kabkota"`
		Name string `json:"nama_kabkota"`
	} `json:"data"`
}

func (s *Service) Cities(ctx context.Context, provinceID string) *CitiesResult {
	query := url.Values{"kode_propinsi": {provinceID}}
	var raw upstreamCities
	if err := s.fetcher.JSON(ctx, "Kabkota", query, &raw); err != nil || len(raw.Data) == 0 {
		if err == nil {
			err = fmt.Errorf("empty city list")
		}
		s.degraded("cities", err)
		return &CitiesResult{Cities: syntheticCities(provinceID), Source: SourceSynthetic}
	}
	cities := make([]Region, 0, len(raw.Data))
	for _, c := range raw.Data {
		cities = append(cities, Region{ID: c.Code, Name: c.Name})
	}
	return &CitiesResult{Cities: cities, Source: SourceLive}
}

func (s *Service) Hospitals(ctx context.Context, hospitalType int, provinceID, cityID string) *HospitalsResult {
	if hospitalType != TypeCovid && hospitalType != TypeGeneral {
		hospitalType = TypeCovid
	}
	query := url.Values{
		"jenis":    {fmt.Sprintf("%d", hospitalType)},
		"propinsi": {provinceID},
		"kabkota":  {cityID},
	}
	page, err := s.fetcher.HTML(ctx, "rumah_sakit", query)
	if err == nil {
		var hospitals []Hospital
		hospitals, err = ParseHospitals(page, hospitalType)
		if err == nil {
			return &HospitalsResult{Hospitals: hospitals, Source: SourceLive}
		}
	}
	s.degraded("hospitals", err)
	return &HospitalsResult{
		Hospitals: syntheticHospitals(s.newRNG(), hospitalType, provinceID, cityID),
		Source:    SourceSynthetic,
	}
}

func (s *Service) BedDetail(ctx context.Context, hospitalID string, hospitalType int) *BedDetailResult {
	query := url.Values{
		"kode_rs": {hospitalID},
		"jenis":   {fmt.Sprintf("%d", hospitalType)},
	}
	page, err := s.fetcher.HTML(ctx, "tempat_tidur", query)
	if err == nil {
		var detail *BedDetail
		detail, err = ParseBedDetail(page, hospitalID)
		if err == nil {
			return &BedDetailResult{Data: detail, Source: SourceLive}
		}
	}
	s.degraded("bed_detail", err)
	return &BedDetailResult{
		Data:   syntheticBedDetail(s.newRNG(), hospitalID, s.now()),
		Source: SourceSynthetic,
	}
}

type upstreamHospitalMap struct {
	Data struct {
		Name    string      `json:"RUMAH_SAKIT"`
		Address string      `json:"ALAMAT"`
		Lat     json.Number `json:"alt"`
		Long    json.Number `json:"long"`
	} `json:"data"`
}

func (s *Service) HospitalMap(ctx context.Context, hospitalID string) *HospitalMapResult {
	var raw upstreamHospitalMap
	if err := s.fetcher.JSON(ctx, "rumah_sakit/"+hospitalID, nil, &raw); err != nil || raw.Data.Name == "" {
		if err == nil {
			err = fmt.Errorf("empty hospital record")
		}
		s.degraded("hospital_map", err)
		return &HospitalMapResult{Data: syntheticHospitalMap(hospitalID), Source: SourceSynthetic}
	}
	lat, long := raw.Data.Lat.String(), raw.Data.Long.String()
	return &HospitalMapResult{
		Data: &HospitalMap{
			ID:      hospitalID,
			Name:    raw.Data.Name,
			Address: raw.Data.Address,
			Lat:     lat,
			Long:    long,
			Gmaps:   fmt.Sprintf("https://www.google.com/maps/search/?api=1&query=%s,%s", lat, long),
		},
		Source: SourceLive,
	}
}
