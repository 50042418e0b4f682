package service

import "math"

type cityEntry struct {
	Name string
	Lat  float64
	Lon  float64
}

// CityMapper is a static nearest-match lookup: a coordinate maps to the first
// known city within a ~20 km box, otherwise "Unknown".
type CityMapper struct {
	cities []cityEntry
}

func NewCityMapper() *CityMapper {
	return &CityMapper{cities: []cityEntry{
		{"Pune", 18.5204, 73.8567},
		{"Mumbai", 19.0760, 72.8777},
		{"Delhi", 28.7041, 77.1025},
		{"Bangalore", 12.9716, 77.5946},
		{"Kolkata", 22.5726, 88.3639},
		{"Chennai", 13.0827, 80.2707},
		{"Hyderabad", 17.3850, 78.4867},
		{"Mysore", 12.2958, 76.6394},
		{"Nagpur", 21.1458, 79.0882},
		{"Ahmedabad", 23.0225, 72.5714},
	}}
}

func (m *CityMapper) Resolve(lat, lon float64) string {
	for _, c := range m.cities {
		if math.Abs(c.Lat-lat) < 0.2 && math.Abs(c.Lon-lon) < 0.2 {
			return c.Name
		}
	}
	return "Unknown"
}
