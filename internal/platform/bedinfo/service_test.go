package bedinfo

import (
	"context"
	"encoding/json"
	"errors"
	"net/url"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFetcher struct {
	jsonBody string
	htmlBody string
	err      error
}

func (f *fakeFetcher) JSON(_ context.Context, _ string, _ url.Values, v interface{}) error {
	if f.err != nil {
		return f.err
	}
	return json.Unmarshal([]byte(f.jsonBody), v)
}

func (f *fakeFetcher) HTML(_ context.Context, _ string, _ url.Values) ([]byte, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []byte(f.htmlBody), nil
}

func newTestService(f Fetcher) *Service {
	return NewService(f, zerolog.Nop())
}

func TestProvinces_Live(t *testing.T) {
	svc := newTestService(&fakeFetcher{
		jsonBody: `{"data":[{"kode_propinsi":"31prop","nama_propinsi":"DKI Jakarta"}]}`,
	})

	result := svc.Provinces(context.Background())
	require.Len(t, result.Provinces, 1)
	assert.Equal(t, SourceLive, result.Source)
	assert.Equal(t, "31prop", result.Provinces[0].ID)
	assert.Equal(t, "DKI Jakarta", result.Provinces[0].Name)
}

func TestProvinces_FallbackOnError(t *testing.T) {
	svc := newTestService(&fakeFetcher{err: errors.New("connection refused")})

	result := svc.Provinces(context.Background())
	assert.Equal(t, SourceSynthetic, result.Source)
	assert.NotEmpty(t, result.Provinces)
	for _, p := range result.Provinces {
		assert.NotEmpty(t, p.ID)
		assert.NotEmpty(t, p.Name)
	}
}

func TestProvinces_FallbackOnEmptyData(t *testing.T) {
	svc := newTestService(&fakeFetcher{jsonBody: `{"data":[]}`})

	result := svc.Provinces(context.Background())
	assert.Equal(t, SourceSynthetic, result.Source)
	assert.NotEmpty(t, result.Provinces)
}

func TestCities_Live(t *testing.T) {
	svc := newTestService(&fakeFetcher{
		jsonBody: `{"data":[{"kode_kabkota":"3171","nama_kabkota":"Jakarta Pusat"}]}`,
	})

	result := svc.Cities(context.Background(), "31prop")
	require.Len(t, result.Cities, 1)
	assert.Equal(t, SourceLive, result.Source)
	assert.Equal(t, "3171", result.Cities[0].ID)
}

func TestCities_Fallback(t *testing.T) {
	svc := newTestService(&fakeFetcher{err: errors.New("timeout")})

	result := svc.Cities(context.Background(), "31prop")
	assert.Equal(t, SourceSynthetic, result.Source)
	assert.NotEmpty(t, result.Cities)
}

func TestHospitals_Live(t *testing.T) {
	svc := newTestService(&fakeFetcher{htmlBody: covidListingPage})

	result := svc.Hospitals(context.Background(), TypeCovid, "31prop", "3171")
	assert.Equal(t, SourceLive, result.Source)
	require.Len(t, result.Hospitals, 2)
	assert.Equal(t, "RSUD Tarakan", result.Hospitals[0].Name)
}

func TestHospitals_FallbackOnBadMarkup(t *testing.T) {
	svc := newTestService(&fakeFetcher{htmlBody: `<html><body>under maintenance</body></html>`})

	result := svc.Hospitals(context.Background(), TypeCovid, "31prop", "")
	assert.Equal(t, SourceSynthetic, result.Source)
	require.NotEmpty(t, result.Hospitals)
	for _, h := range result.Hospitals {
		assert.NotEmpty(t, h.ID)
		assert.NotEmpty(t, h.Name)
		assert.NotNil(t, h.BedAvailability)
	}
}

func TestHospitals_FallbackKeepsGeneralShape(t *testing.T) {
	svc := newTestService(&fakeFetcher{err: errors.New("unreachable")})

	result := svc.Hospitals(context.Background(), TypeGeneral, "32prop", "3201")
	assert.Equal(t, SourceSynthetic, result.Source)
	require.NotEmpty(t, result.Hospitals)
	for _, h := range result.Hospitals {
		assert.NotEmpty(t, h.AvailableBeds)
		assert.Nil(t, h.BedAvailability)
	}
}

func TestBedDetail_Live(t *testing.T) {
	svc := newTestService(&fakeFetcher{htmlBody: bedDetailPage})

	result := svc.BedDetail(context.Background(), "3171045", TypeCovid)
	assert.Equal(t, SourceLive, result.Source)
	require.NotNil(t, result.Data)
	assert.Equal(t, "3171045", result.Data.ID)
}

func TestBedDetail_Fallback(t *testing.T) {
	svc := newTestService(&fakeFetcher{err: errors.New("unreachable")})

	result := svc.BedDetail(context.Background(), "3171045", TypeCovid)
	assert.Equal(t, SourceSynthetic, result.Source)
	require.NotNil(t, result.Data)
	assert.Equal(t, "3171045", result.Data.ID)
	assert.NotEmpty(t, result.Data.BedDetail)
}

func TestHospitalMap_Live(t *testing.T) {
	svc := newTestService(&fakeFetcher{
		jsonBody: `{"data":{"RUMAH_SAKIT":"RSUD Tarakan","ALAMAT":"Jl. Kyai Caringin No. 7","alt":-6.17,"long":106.81}}`,
	})

	result := svc.HospitalMap(context.Background(), "3171045")
	assert.Equal(t, SourceLive, result.Source)
	require.NotNil(t, result.Data)
	assert.Equal(t, "RSUD Tarakan", result.Data.Name)
	assert.Contains(t, result.Data.Gmaps, "-6.17")
}

func TestHospitalMap_Fallback(t *testing.T) {
	svc := newTestService(&fakeFetcher{err: errors.New("unreachable")})

	result := svc.HospitalMap(context.Background(), "3171045")
	assert.Equal(t, SourceSynthetic, result.Source)
	require.NotNil(t, result.Data)
	assert.Equal(t, "3171045", result.Data.ID)
}
