package geo

import (
	"math"
	"testing"
)

func TestDistanceZero(t *testing.T) {
	p := Point{Lat: 48.137, Lon: 11.575}
	if d := Distance(p, p); d != 0 {
		t.Errorf("Distance(p, p) = %v, want 0", d)
	}
}

func TestDistanceKnownPairs(t *testing.T) {
	tests := []struct {
		name string
		a, b Point
		want float64 // meters
		tol  float64
	}{
		{
			name: "one degree latitude",
			a:    Point{Lat: 0, Lon: 0},
			b:    Point{Lat: 1, Lon: 0},
			want: 111195,
			tol:  100,
		},
		{
			name: "munich to berlin",
			a:    Point{Lat: 48.1351, Lon: 11.5820},
			b:    Point{Lat: 52.5200, Lon: 13.4050},
			want: 504000,
			tol:  2000,
		},
		{
			name: "short hop",
			a:    Point{Lat: 48.137000, Lon: 11.575000},
			b:    Point{Lat: 48.137090, Lon: 11.575000},
			want: 10.0,
			tol:  0.1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Distance(tt.a, tt.b)
			if math.Abs(got-tt.want) > tt.tol {
				t.Errorf("Distance = %v, want %v +/- %v", got, tt.want, tt.tol)
			}
		})
	}
}

func TestDistanceSymmetric(t *testing.T) {
	a := Point{Lat: 48.1351, Lon: 11.5820}
	b := Point{Lat: 48.2082, Lon: 11.6680}

	d1 := Distance(a, b)
	d2 := Distance(b, a)
	if math.Abs(d1-d2) > 1e-9 {
		t.Errorf("Distance not symmetric: %v vs %v", d1, d2)
	}
}

func TestDestinationRoundTrip(t *testing.T) {
	start := Point{Lat: 48.137, Lon: 11.575}

	for _, dist := range []float64{10, 100, 1000, 5000} {
		end := Destination(start, 90, dist)
		got := Distance(start, end)
		if math.Abs(got-dist) > dist*0.001 {
			t.Errorf("Distance(start, Destination(%v m)) = %v, want %v", dist, got, dist)
		}
	}
}
