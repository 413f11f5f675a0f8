package bedinfo

// Data sources. Every payload carries one so a degraded (generated)
// response is distinguishable from a live one.
const (
	SourceLive      = "live"
	SourceSynthetic = "synthetic"
)

// Hospital types understood by the upstream.
const (
	TypeCovid   = 1
	TypeGeneral = 2
)

// Region is a province or city reference entry.
type Region struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// BedRoom is one room row in a general hospital listing.
type BedRoom struct {
	Available int    `json:"available"`
	BedClass  string `json:"bed_class"`
	RoomName  string `json:"room_name"`
	Info      string `json:"info"`
}

// Hospital is one listing entry. Covid listings carry Queue and
// BedAvailability; general listings carry AvailableBeds.
type Hospital struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Address         string    `json:"address"`
	Phone           string    `json:"phone"`
	Queue           *int      `json:"queue,omitempty"`
	BedAvailability *int      `json:"bed_availability,omitempty"`
	Info            string    `json:"info,omitempty"`
	AvailableBeds   []BedRoom `json:"available_beds,omitempty"`
}

// BedStats is one room's live bed counters.
type BedStats struct {
	Title        string `json:"title"`
	BedAvailable int    `json:"bed_available"`
	BedEmpty     int    `json:"bed_empty"`
	Queue        int    `json:"queue"`
}

// BedDetailItem pairs the counters with their upstream update time.
type BedDetailItem struct {
	Time  string   `json:"time"`
	Stats BedStats `json:"stats"`
}

// BedDetail is the per-hospital bed breakdown.
type BedDetail struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Address   string          `json:"address"`
	Phone     string          `json:"phone"`
	BedDetail []BedDetailItem `json:"bedDetail"`
}

// HospitalMap is the location record for one hospital.
type HospitalMap struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
	Lat     string `json:"lat"`
	Long    string `json:"long"`
	Gmaps   string `json:"gmaps"`
}

// Result payloads, each tagged with the data source.

type ProvincesResult struct {
	Provinces []Region `json:"provinces"`
	Source    string   `json:"source"`
}

type CitiesResult struct {
	Cities []Region `json:"cities"`
	Source string   `json:"source"`
}

type HospitalsResult struct {
	Hospitals []Hospital `json:"hospitals"`
	Source    string     `json:"source"`
}

type BedDetailResult struct {
	Data   *BedDetail `json:"data"`
	Source string     `json:"source"`
}

type HospitalMapResult struct {
	Data   *HospitalMap `json:"data"`
	Source string       `json:"source"`
}
