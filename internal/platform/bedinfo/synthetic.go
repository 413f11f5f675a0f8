package bedinfo

import (
	"fmt"
	"math/rand"
	"strings"
	"time"
)

// Synthetic data keeps the API shape intact when the upstream is down.
// Every caller receives it through a payload tagged SourceSynthetic.

var syntheticProvinces = []Region{
	{ID: "11prop", Name: "Aceh"},
	{ID: "12prop", Name: "Sumatera Utara"},
	{ID: "13prop", Name: "Sumatera Barat"},
	{ID: "14prop", Name: "Riau"},
	{ID: "31prop", Name: "DKI Jakarta"},
	{ID: "32prop", Name: "Jawa Barat"},
	{ID: "33prop", Name: "Jawa Tengah"},
	{ID: "35prop", Name: "Jawa Timur"},
	{ID: "51prop", Name: "Bali"},
}

var provinceNames = func() map[string]string {
	m := make(map[string]string, len(syntheticProvinces))
	for _, p := range syntheticProvinces {
		m[p.ID] = p.Name
	}
	return m
}()

var (
	hospitalKinds  = []string{"Umum", "Swasta", "Daerah"}
	hospitalBrands = []string{"Sejahtera", "Medika", "Husada", "Sehat"}
	streetNames    = []string{"Sudirman", "Gatot Subroto", "Ahmad Yani", "Diponegoro"}
	bedClasses     = []string{"Kelas I", "Kelas II", "Kelas III", "VIP"}
	roomNames      = []string{"Ruang Melati", "Ruang Mawar", "Ruang Anggrek", "ICU", "Ruang Anak",
		"Ruang Bersalin", "Ruang Operasi", "Ruang Isolasi", "HCU", "NICU"}
)

func syntheticCities(provinceID string) []Region {
	prefix := strings.TrimSuffix(provinceID, "prop")
	cities := make([]Region, 0, 4)
	for i, name := range []string{"Kota Utara", "Kota Selatan", "Kabupaten Barat", "Kabupaten Timur"} {
		cities = append(cities, Region{
			ID:   fmt.Sprintf("%s%02d", prefix, i+1),
			Name: name,
		})
	}
	return cities
}

func syntheticHospitals(rng *rand.Rand, hospitalType int, provinceID, cityID string) []Hospital {
	provinceName := provinceNames[provinceID]
	if provinceName == "" {
		provinceName = "Indonesia"
	}
	if cityID == "" {
		cityID = "00"
	}

	count := rng.Intn(6) + 5
	hospitals := make([]Hospital, 0, count)
	for i := 1; i <= count; i++ {
		id := fmt.Sprintf("%s%s%03d", strings.TrimSuffix(provinceID, "prop"), cityID, i)
		phone := fmt.Sprintf("08%d%d%07d", rng.Intn(10), rng.Intn(10), rng.Intn(10000000))

		if hospitalType == TypeGeneral {
			rooms := make([]BedRoom, 0, 4)
			for j := 0; j < rng.Intn(4)+1; j++ {
				rooms = append(rooms, BedRoom{
					Available: rng.Intn(10),
					BedClass:  bedClasses[rng.Intn(len(bedClasses))],
					RoomName:  roomNames[rng.Intn(5)],
					Info:      "Tersedia",
				})
			}
			hospitals = append(hospitals, Hospital{
				ID:   id,
				Name: fmt.Sprintf("RS %s %s %s", hospitalKinds[rng.Intn(len(hospitalKinds))], hospitalBrands[rng.Intn(len(hospitalBrands))], provinceName),
				Address: fmt.Sprintf("Jl. %s No. %d, %s",
					streetNames[rng.Intn(len(streetNames))], rng.Intn(100)+1, provinceName),
				Phone:         phone,
				AvailableBeds: rooms,
			})
			continue
		}

		queue := rng.Intn(5)
		beds := rng.Intn(20)
		hospitals = append(hospitals, Hospital{
			ID:   id,
			Name: fmt.Sprintf("RS COVID Rujukan %s %d", provinceName, i),
			Address: fmt.Sprintf("Jl. %s No. %d, %s",
				streetNames[rng.Intn(len(streetNames))], rng.Intn(100)+1, provinceName),
			Phone:           phone,
			Queue:           &queue,
			BedAvailability: &beds,
			Info:            fmt.Sprintf("Diupdate %d jam yang lalu", rng.Intn(24)),
		})
	}
	return hospitals
}

func syntheticBedDetail(rng *rand.Rand, hospitalID string, now time.Time) *BedDetail {
	count := rng.Intn(5) + 3
	items := make([]BedDetailItem, 0, count)
	for i := 0; i < count; i++ {
		items = append(items, BedDetailItem{
			Time: now.Format("02-01-2006 15:04"),
			Stats: BedStats{
				Title:        roomNames[i%len(roomNames)],
				BedAvailable: rng.Intn(10),
				BedEmpty:     rng.Intn(5),
				Queue:        rng.Intn(3),
			},
		})
	}
	idPart := hospitalID
	if len(idPart) > 4 {
		idPart = idPart[:4]
	}
	return &BedDetail{
		ID:        hospitalID,
		Name:      fmt.Sprintf("Rumah Sakit %s", hospitalID),
		Address:   fmt.Sprintf("Jl. Rumah Sakit No. %s", hospitalID),
		Phone:     fmt.Sprintf("08123456%s", idPart),
		BedDetail: items,
	}
}

func syntheticHospitalMap(hospitalID string) *HospitalMap {
	lat, long := "-6.2088", "106.8456"
	return &HospitalMap{
		ID:      hospitalID,
		Name:    fmt.Sprintf("Rumah Sakit %s", hospitalID),
		Address: "Jl. Rumah Sakit No. 1",
		Lat:     lat,
		Long:    long,
		Gmaps:   fmt.Sprintf("https://www.google.com/maps/search/?api=1&query=%s,%s", lat, long),
	}
}
