package service

import "testing"

func TestCityMapper_Resolve(t *testing.T) {
	m := NewCityMapper()

	tests := []struct {
		name     string
		lat, lon float64
		want     string
	}{
		{"exact Pune", 18.5204, 73.8567, "Pune"},
		{"near Mumbai", 19.0900, 72.9000, "Mumbai"},
		{"near Bangalore", 12.9500, 77.6100, "Bangalore"},
		{"middle of nowhere", 20.0, 80.0, "Unknown"},
		{"ocean", 0.0, 0.0, "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := m.Resolve(tt.lat, tt.lon); got != tt.want {
				t.Errorf("Resolve(%v, %v) = %q, expected %q", tt.lat, tt.lon, got, tt.want)
			}
		})
	}
}
