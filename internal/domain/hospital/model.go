package hospital

import "time"

// Favorite is a hospital bookmarked by a user. Coordinates are stored
// as the free-form "lat,long" string the client supplies.
type Favorite struct {
	ID                  int64     `json:"id"`
	UserID              int64     `json:"user_id"`
	HospitalName        string    `json:"hospital_name"`
	HospitalAddress     *string   `json:"hospital_address"`
	HospitalPhone       *string   `json:"hospital_phone"`
	HospitalCoordinates *string   `json:"hospital_coordinates"`
	CreatedAt           time.Time `json:"created_at"`
}

type CreateInput struct {
	HospitalName        string  `json:"hospital_name"`
	HospitalAddress     *string `json:"hospital_address"`
	HospitalPhone       *string `json:"hospital_phone"`
	HospitalCoordinates *string `json:"hospital_coordinates"`
}

// Update carries the writable columns for a partial update.
type Update struct {
	HospitalName        *string `json:"hospital_name"`
	HospitalAddress     *string `json:"hospital_address"`
	HospitalPhone       *string `json:"hospital_phone"`
	HospitalCoordinates *string `json:"hospital_coordinates"`
}

func (u *Update) empty() bool {
	return u.HospitalName == nil && u.HospitalAddress == nil &&
		u.HospitalPhone == nil && u.HospitalCoordinates == nil
}

// NearbyHospital is a search hit around a coordinate pair.
type NearbyHospital struct {
	Name     string  `json:"name"`
	Address  string  `json:"address"`
	Phone    string  `json:"phone"`
	Distance float64 `json:"distance_m"`
	Lat      float64 `json:"lat"`
	Long     float64 `json:"long"`
}
