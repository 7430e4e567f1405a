package utils

import (
	"math"
	"testing"
)

func TestHaversineDistanceKm(t *testing.T) {
	cases := []struct {
		name                   string
		lat1, lon1, lat2, lon2 float64
		wantKm                 float64
		toleranceKm            float64
	}{
		{"same point", 12.97, 77.59, 12.97, 77.59, 0, 0.001},
		{"bangalore to chennai", 12.9716, 77.5946, 13.0827, 80.2707, 290, 10},
		{"delhi to mumbai", 28.6139, 77.2090, 19.0760, 72.8777, 1150, 20},
		{"one degree latitude", 0, 0, 1, 0, 111.19, 0.5},
	}
	for _, c := range cases {
		got := HaversineDistanceKm(c.lat1, c.lon1, c.lat2, c.lon2)
		if math.Abs(got-c.wantKm) > c.toleranceKm {
			t.Errorf("%s: HaversineDistanceKm = %.2f, want %.2f +/- %.2f", c.name, got, c.wantKm, c.toleranceKm)
		}
	}
}
