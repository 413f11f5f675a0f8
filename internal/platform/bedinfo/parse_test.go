package bedinfo

import (
	"errors"
	"testing"
)

const covidListingPage = `
<html><body><div class="row">
  <div class="cardRS">
    <h3>RSUD Tarakan</h3>
    <p>Jl. Kyai Caringin No. 7</p>
    <span>hotline 021-350-3150</span>
    <b>12 bed tersedia</b>
    <a href="tempat_tidur?kode_rs=3171045&jenis=1">Detail</a>
  </div>
  <div class="cardRS">
    <h3>RSUP Persahabatan</h3>
    <p>Jl. Persahabatan Raya No. 1</p>
    <b>0 bed tersedia</b>
    <a href="tempat_tidur?kode_rs=3172020&jenis=1">Detail</a>
  </div>
</div></body></html>`

const generalListingPage = `
<html><body><div class="row">
  <div class="card">
    <h4>RS Harapan Bunda</h4>
    <p>Jl. Raya Bogor Km 22</p>
    <table>
      <tr><td>Kelas I</td><td>Ruang Melati</td><td>4 tersedia</td></tr>
      <tr><td>Kelas III</td><td>Ruang Anggrek</td><td>0 tersedia</td></tr>
    </table>
    <a href="tempat_tidur?kode_rs=3175100&jenis=2">Detail</a>
  </div>
</div></body></html>`

const bedDetailPage = `
<html><body>
  <div class="col-11 col-md-11"><p>RSUD Tarakan
    <small>Jl. Kyai Caringin No. 7</small>
    <small>021-350-3150</small>
  </p></div>
  <div class="col-md-12 mb-2"><div class="card"><div class="card-body"><div class="row">
    <div class="col-md-6 col-12"><p class="mb-0">IGD <small>Update 22-07-2021 10:00</small></p></div>
    <div class="col-md-6 col-12">
      <div class="col-md-4 col-4"><div class="text-center pt-1 pb-1"><div>Total</div><div>10</div></div></div>
      <div class="col-md-4 col-4"><div class="text-center pt-1 pb-1"><div>Kosong</div><div>3</div></div></div>
      <div class="col-md-4 col-4"><div class="text-center pt-1 pb-1"><div>Antrian</div><div>1</div></div></div>
    </div>
  </div></div></div></div>
</body></html>`

func TestParseHospitals_Covid(t *testing.T) {
	hospitals, err := ParseHospitals([]byte(covidListingPage), TypeCovid)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(hospitals) != 2 {
		t.Fatalf("expected 2 hospitals, got %d", len(hospitals))
	}
	first := hospitals[0]
	if first.ID != "3171045" {
		t.Errorf("expected id 3171045, got %s", first.ID)
	}
	if first.Name != "RSUD Tarakan" {
		t.Errorf("unexpected name: %s", first.Name)
	}
	if first.BedAvailability == nil || *first.BedAvailability != 12 {
		t.Errorf("unexpected bed availability: %v", first.BedAvailability)
	}
	if hospitals[1].BedAvailability == nil || *hospitals[1].BedAvailability != 0 {
		t.Errorf("zero beds should parse as 0, got %v", hospitals[1].BedAvailability)
	}
}

func TestParseHospitals_General(t *testing.T) {
	hospitals, err := ParseHospitals([]byte(generalListingPage), TypeGeneral)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(hospitals) != 1 {
		t.Fatalf("expected 1 hospital, got %d", len(hospitals))
	}
	beds := hospitals[0].AvailableBeds
	if len(beds) != 2 {
		t.Fatalf("expected 2 rooms, got %d", len(beds))
	}
	if beds[0].BedClass != "Kelas I" || beds[0].RoomName != "Ruang Melati" || beds[0].Available != 4 {
		t.Errorf("unexpected first room: %+v", beds[0])
	}
}

func TestParseHospitals_UnrecognizedMarkup(t *testing.T) {
	for name, page := range map[string]string{
		"empty page":      `<html><body></body></html>`,
		"no card class":   `<html><body><div class="list"><h3>RS X</h3></div></body></html>`,
		"card w/o name":   `<html><body><div class="cardRS"><a href="?kode_rs=1">x</a></div></body></html>`,
		"covid w/o count": `<html><body><div class="cardRS"><h3>RS X</h3><a href="?kode_rs=1">x</a></div></body></html>`,
	} {
		if _, err := ParseHospitals([]byte(page), TypeCovid); !errors.Is(err, ErrUnrecognizedMarkup) {
			t.Errorf("%s: expected ErrUnrecognizedMarkup, got %v", name, err)
		}
	}
}

func TestParseBedDetail(t *testing.T) {
	detail, err := ParseBedDetail([]byte(bedDetailPage), "3171045")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if detail.ID != "3171045" {
		t.Errorf("unexpected id: %s", detail.ID)
	}
	if detail.Address != "Jl. Kyai Caringin No. 7" {
		t.Errorf("unexpected address: %s", detail.Address)
	}
	if detail.Phone != "021-350-3150" {
		t.Errorf("unexpected phone: %s", detail.Phone)
	}
	if len(detail.BedDetail) != 1 {
		t.Fatalf("expected 1 room, got %d", len(detail.BedDetail))
	}
	stats := detail.BedDetail[0].Stats
	if stats.BedAvailable != 10 || stats.BedEmpty != 3 || stats.Queue != 1 {
		t.Errorf("unexpected counters: %+v", stats)
	}
}

func TestParseBedDetail_UnrecognizedMarkup(t *testing.T) {
	_, err := ParseBedDetail([]byte(`<html><body><p>maintenance</p></body></html>`), "1")
	if !errors.Is(err, ErrUnrecognizedMarkup) {
		t.Errorf("expected ErrUnrecognizedMarkup, got %v", err)
	}
}
